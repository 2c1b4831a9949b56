package appdetect

import (
	"errors"

	"github.com/contextkit/nativebridge/internal/shared/types"
)

// ErrUnavailable reports that no focused application could be determined.
// Focus on a system surface with no owning app, a missing display server, or
// a platform without detection support all collapse to this error.
var ErrUnavailable = errors.New("frontmost application unavailable")

// Detector is the opaque native provider behind the app-detection family.
// Implementations wrap one platform facility and make no thread-safety
// promises; the Provider serializes calls on their behalf.
type Detector interface {
	// FrontmostApp returns the application currently holding input focus.
	// Both fields come from the same native query, so the pair is
	// consistent; either field may still be empty when the platform lacks
	// the metadata.
	FrontmostApp() (types.AppRecord, error)

	// InstalledApps enumerates installed applications best-effort. Order is
	// unspecified and entries that cannot be resolved are omitted, so an
	// empty result does not mean no applications are installed.
	InstalledApps() ([]types.AppRecord, error)
}
