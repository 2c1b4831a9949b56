// Command libbridge builds as a c-shared library exposing the native bridge
// contract: frontmost-application queries, installed-application
// enumeration, and OCR, plus the per-family release functions for the owned
// strings those calls return.
//
//	go build -buildmode=c-shared -o libbridge.dylib ./cmd/libbridge
package main

/*
#include <stdlib.h>
#include <string.h>
*/
import "C"

import (
	"sync"
	"unsafe"

	"go.uber.org/zap"

	"github.com/contextkit/nativebridge/internal/bridge"
	"github.com/contextkit/nativebridge/internal/config"
	"github.com/contextkit/nativebridge/internal/handle"
	"github.com/contextkit/nativebridge/internal/infrastructure/monitoring"
	"github.com/contextkit/nativebridge/internal/logging"
	"github.com/contextkit/nativebridge/internal/providers/appdetect"
	"github.com/contextkit/nativebridge/internal/providers/knownapps"
	"github.com/contextkit/nativebridge/internal/providers/ocr"
)

var (
	initOnce sync.Once

	br *bridge.Bridge

	// Owned strings are tagged by the family that produced them. Each
	// family's release function accepts only its own handles.
	appHandles *handle.Registry
	ocrHandles *handle.Registry
)

func setup() {
	cfg := config.LoadOrDefault()

	log, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		log = logging.NewNop()
	}

	metrics := monitoring.NewMetrics(nil)

	catalog := knownapps.New()
	if cfg.KnownApps.Path != "" {
		if err := catalog.LoadFile(cfg.KnownApps.Path); err != nil {
			log.Warn("known apps overlay not loaded",
				zap.String("path", cfg.KnownApps.Path),
				zap.Error(err))
		}
	}

	detector := appdetect.NewDetector(cfg.Detection)
	appProvider := appdetect.NewProvider(detector, catalog, log, cfg.Detection.Serialize)

	engine := ocr.NewEngine()
	ocrProvider := ocr.NewProvider(engine, log, cfg.OCR.MaxImageBytes, cfg.OCR.Serialize)

	br = bridge.New(appProvider, ocrProvider, log, metrics)

	free := func(p uintptr) { C.free(unsafe.Pointer(p)) }
	appHandles = handle.NewRegistry(handle.FamilyApp, free, metrics)
	ocrHandles = handle.NewRegistry(handle.FamilyOCR, free, metrics)
}

// export copies a Go string into a C-allocated buffer and records ownership
// in the family registry. The caller owns the result until it hands the
// pointer back to the matching release function.
func export(reg *handle.Registry, s string) *C.char {
	p := C.CString(s)
	reg.Track(uintptr(unsafe.Pointer(p)))
	return p
}

//export get_frontmost_app_bundle_id
func get_frontmost_app_bundle_id() *C.char {
	initOnce.Do(setup)
	s, ok := br.FrontmostBundleID()
	if !ok {
		return nil
	}
	return export(appHandles, s)
}

//export get_frontmost_app_name
func get_frontmost_app_name() *C.char {
	initOnce.Do(setup)
	s, ok := br.FrontmostName()
	if !ok {
		return nil
	}
	return export(appHandles, s)
}

//export get_installed_applications_json
func get_installed_applications_json() *C.char {
	initOnce.Do(setup)
	s, ok := br.InstalledApps()
	if !ok {
		return nil
	}
	return export(appHandles, s)
}

//export free_string
func free_string(s *C.char) {
	if s == nil {
		return
	}
	initOnce.Do(setup)
	// Release errors (double free, foreign handle) are swallowed at the
	// boundary; the registry records them for diagnostics.
	_ = appHandles.Release(uintptr(unsafe.Pointer(s)))
}

// validImageArgs guards the image-buffer contract: a null pointer is never
// dereferenced regardless of the claimed length, and non-positive lengths
// are rejected before any copy.
func validImageArgs(data unsafe.Pointer, length int) bool {
	return data != nil && length > 0
}

//export extract_text_from_image
func extract_text_from_image(data *C.uchar, length C.int) *C.char {
	if !validImageArgs(unsafe.Pointer(data), int(length)) {
		return nil
	}
	initOnce.Do(setup)
	// Copy out of the caller's buffer; it is only valid for this call.
	image := C.GoBytes(unsafe.Pointer(data), length)

	s, ok := br.ExtractText(image)
	if !ok {
		return nil
	}
	return export(ocrHandles, s)
}

//export free_ocr_string
func free_ocr_string(s *C.char) {
	if s == nil {
		return
	}
	initOnce.Do(setup)
	_ = ocrHandles.Release(uintptr(unsafe.Pointer(s)))
}

func main() {}
