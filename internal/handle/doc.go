// Package handle tracks ownership of strings handed across the C boundary.
//
// Every string the bridge returns to a native caller is an owned handle: the
// caller must release it exactly once through its family's release function.
// The boundary itself is untyped, so each provider family (app detection,
// OCR) keeps its own Registry; the registry is the family tag the wire
// format lacks. Double releases and cross-family releases surface as
// ErrNotOwned instead of undefined behavior, and the live count makes leaks
// assertable in tests.
package handle
