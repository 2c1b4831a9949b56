//go:build !darwin && !windows && !linux

package appdetect

import (
	"github.com/contextkit/nativebridge/internal/config"
	"github.com/contextkit/nativebridge/internal/shared/types"
)

// stubDetector is used on platforms without a detection facility. Every
// query reports unavailable; the host degrades gracefully by contract.
type stubDetector struct{}

// NewDetector creates the no-op detector.
func NewDetector(cfg config.DetectionConfig) Detector {
	return stubDetector{}
}

func (stubDetector) FrontmostApp() (types.AppRecord, error) {
	return types.AppRecord{}, ErrUnavailable
}

func (stubDetector) InstalledApps() ([]types.AppRecord, error) {
	return nil, nil
}
