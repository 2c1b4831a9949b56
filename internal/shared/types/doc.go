// Package types provides shared data structures for the native bridge.
//
// Core Types:
//   - AppRecord: One application (bundle id + display name)
//   - Service: Capability provider definition
//   - Tool: Provider operation specification
//   - Context: Caller identity for a provider call
//   - Result: Tagged outcome of a provider call
//
// Example Usage:
//
//	rec := types.AppRecord{BundleID: "com.example.editor", Name: "Editor"}
//	if rec.Valid() {
//	    // safe to serialize
//	}
package types
