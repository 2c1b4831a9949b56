// Package appdetect implements the app-detection provider family.
//
// The native facility differs per platform: NSWorkspace on macOS, the
// foreground-window APIs on Windows, xprop on X11 Linux, and a stub
// elsewhere. All of them sit behind the Detector interface and are treated
// as opaque collaborators; this package owns serialization, filtering,
// logging, and the JSON wire shape.
//
// Enumeration is best-effort: applications that are partially installed,
// corrupt, or unreadable are silently omitted, and an empty result does not
// mean the system has no applications.
package appdetect
