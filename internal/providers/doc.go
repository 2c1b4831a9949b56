// Package providers implements the bridge's capability provider families.
//
// Each family exposes its operations through a standardized tool-based
// interface and is registered with the service registry under its family
// ID.
//
// Available Providers:
//   - appdetect: Frontmost-application queries and installed-application
//     enumeration over the platform's native facilities
//   - ocr: Text recognition over encoded image bytes
//   - knownapps: Curated catalog mapping bundle identifiers to display
//     names and categories
//
// Provider Interface:
//   - Definition(): Returns service metadata and tool definitions
//   - Execute(): Executes a tool with parameters and context
package providers
