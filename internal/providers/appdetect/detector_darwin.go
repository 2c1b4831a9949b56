//go:build darwin

package appdetect

/*
#cgo CFLAGS: -x objective-c -fobjc-arc
#cgo LDFLAGS: -framework AppKit -framework Foundation
#include <stdlib.h>
#include <string.h>
#import <AppKit/AppKit.h>

static int bridge_frontmost_app(char **bundle_id, char **name) {
	NSRunningApplication *app = [[NSWorkspace sharedWorkspace] frontmostApplication];
	if (app == nil) {
		return 0;
	}
	*bundle_id = app.bundleIdentifier ? strdup([app.bundleIdentifier UTF8String]) : NULL;
	*name = app.localizedName ? strdup([app.localizedName UTF8String]) : NULL;
	return 1;
}

static char *bridge_bundle_id_at_path(const char *path) {
	NSString *p = [NSString stringWithUTF8String:path];
	NSBundle *bundle = [NSBundle bundleWithPath:p];
	if (bundle == nil || bundle.bundleIdentifier == nil) {
		return NULL;
	}
	return strdup([bundle.bundleIdentifier UTF8String]);
}
*/
import "C"

import (
	"os"
	"path/filepath"
	"strings"
	"unsafe"

	"github.com/contextkit/nativebridge/internal/config"
	"github.com/contextkit/nativebridge/internal/shared/types"
)

// darwinDetector queries NSWorkspace for focus and resolves bundle ids
// through NSBundle during the installed-applications scan.
type darwinDetector struct {
	scanner *Scanner
}

// NewDetector creates the macOS detector.
func NewDetector(cfg config.DetectionConfig) Detector {
	roots := cfg.ScanRoots
	if len(roots) == 0 {
		roots = []string{"/Applications", "/System/Applications", "~/Applications"}
	}
	patterns := cfg.ScanPatterns
	if len(patterns) == 0 {
		patterns = []string{"*.app", "*/*.app"}
	}

	d := &darwinDetector{}
	d.scanner = &Scanner{
		Roots:    roots,
		Patterns: patterns,
		Extract:  d.extractBundle,
	}
	return d
}

func (d *darwinDetector) FrontmostApp() (types.AppRecord, error) {
	// Both fields come out of one NSWorkspace query; two separate queries
	// could straddle a focus change and pair fields from different apps.
	var cBundleID, cName *C.char
	if C.bridge_frontmost_app(&cBundleID, &cName) == 0 {
		return types.AppRecord{}, ErrUnavailable
	}

	rec := types.AppRecord{
		BundleID: takeCString(cBundleID),
		Name:     takeCString(cName),
	}
	if rec.BundleID == "" && rec.Name == "" {
		return types.AppRecord{}, ErrUnavailable
	}
	return rec, nil
}

func (d *darwinDetector) InstalledApps() ([]types.AppRecord, error) {
	return d.scanner.Scan(), nil
}

func (d *darwinDetector) extractBundle(path string, _ os.DirEntry) (types.AppRecord, bool) {
	cPath := C.CString(path)
	defer C.free(unsafe.Pointer(cPath))

	bundleID := takeCString(C.bridge_bundle_id_at_path(cPath))
	if bundleID == "" {
		return types.AppRecord{}, false
	}

	name := strings.TrimSuffix(filepath.Base(path), ".app")
	return types.AppRecord{BundleID: bundleID, Name: name}, true
}

// takeCString converts a native C string to a Go string and frees it.
func takeCString(s *C.char) string {
	if s == nil {
		return ""
	}
	defer C.free(unsafe.Pointer(s))
	return C.GoString(s)
}
