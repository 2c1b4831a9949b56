// Package config provides 12-factor configuration management for the bridge.
//
// Configuration is loaded from environment variables with sensible defaults;
// a YAML file can overlay the environment for embedded deployments where the
// host process controls no environment of its own.
//
// Configuration Sections:
//   - Logging: Log level and output format
//   - Detection: Installed-applications scan roots and patterns
//   - OCR: Image size limits
//   - KnownApps: Known-applications catalog overrides
//
// Environment Variables:
//   - BRIDGE_LOG_LEVEL, BRIDGE_LOG_DEV
//   - BRIDGE_SCAN_ROOTS, BRIDGE_SCAN_PATTERNS, BRIDGE_DETECT_SERIALIZE
//   - BRIDGE_OCR_MAX_BYTES, BRIDGE_OCR_SERIALIZE
//   - BRIDGE_KNOWN_APPS
package config
