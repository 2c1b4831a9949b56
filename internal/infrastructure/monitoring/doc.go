/*
Package monitoring provides Prometheus metrics for the native bridge.

# Overview

Tracks boundary calls (count, outcome, latency), owned-string handle
lifecycle (live gauge, allocation and release counters, invalid-release
counters per family), and OCR input sizes.

# Usage

	m := monitoring.NewMetrics(nil)
	m.RecordCall("frontmost_bundle_id", true, elapsed)
	m.RecordAlloc("app")

Metrics are exposed by whatever process hosts the bridge; the bridge itself
opens no network listener.
*/
package monitoring
