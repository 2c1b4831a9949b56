// Package bridge adapts the provider families to the flat surface exported
// across the C boundary. Rich errors collapse into (value, ok) pairs here;
// the export layer in cmd/libbridge turns those into owned C strings or
// null.
package bridge
