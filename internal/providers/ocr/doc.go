// Package ocr implements the OCR provider family over the platform's native
// recognition engine (Vision on macOS, unavailable elsewhere).
//
// The provider validates every buffer before it reaches the engine: empty
// and oversized buffers are rejected, and content is sniffed so that random
// bytes fail cleanly instead of crashing a native decoder. Recognition is a
// blocking single-shot call with no cancellation; callers wanting
// responsiveness run it off their hot path.
package ocr
