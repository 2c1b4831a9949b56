package bridge

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/contextkit/nativebridge/internal/infrastructure/monitoring"
	"github.com/contextkit/nativebridge/internal/logging"
	"github.com/contextkit/nativebridge/internal/shared/id"
)

// AppDetector is the detection surface the bridge exposes across the
// boundary. Implementations return a failure for any miss; the bridge does
// not distinguish causes.
type AppDetector interface {
	FrontmostBundleID() (string, error)
	FrontmostName() (string, error)
	InstalledAppsJSON() (string, error)
}

// TextExtractor is the recognition surface the bridge exposes.
type TextExtractor interface {
	Extract(ctx context.Context, image []byte) (string, error)
}

// slowCallThreshold marks calls worth flagging in logs. Detection calls are
// expected to return in milliseconds; OCR legitimately exceeds this and is
// logged at its own level.
const slowCallThreshold = 250 * time.Millisecond

// Bridge collapses the providers' rich results into the binary contract the
// boundary speaks: a value and an ok flag, nothing else. Every failure
// cause, from a fullscreen game hiding the frontmost app to a corrupt
// image, folds into ok=false.
type Bridge struct {
	detector  AppDetector
	extractor TextExtractor
	log       *logging.Logger
	metrics   *monitoring.Metrics
}

// New creates a bridge. log and metrics may be nil.
func New(detector AppDetector, extractor TextExtractor, log *logging.Logger, metrics *monitoring.Metrics) *Bridge {
	if log == nil {
		log = logging.NewNop()
	}
	return &Bridge{
		detector:  detector,
		extractor: extractor,
		log:       log.Named("bridge"),
		metrics:   metrics,
	}
}

// FrontmostBundleID reports the bundle identifier of the frontmost
// application, or ok=false when none is determinable.
func (b *Bridge) FrontmostBundleID() (string, bool) {
	return b.call("frontmost_bundle_id", b.detector.FrontmostBundleID)
}

// FrontmostName reports the display name of the frontmost application, or
// ok=false when none is determinable.
func (b *Bridge) FrontmostName() (string, bool) {
	return b.call("frontmost_name", b.detector.FrontmostName)
}

// InstalledApps reports the installed-application inventory as a JSON array
// of objects with bundle_id and name fields. An empty inventory is the
// empty array, not a failure.
func (b *Bridge) InstalledApps() (string, bool) {
	return b.call("installed_apps", b.detector.InstalledAppsJSON)
}

// ExtractText recognizes text in encoded image bytes. Returns ok=false for
// anything short of recognized text: nil or empty input, undecodable bytes,
// an image with no text, or a platform without a recognition engine.
func (b *Bridge) ExtractText(image []byte) (string, bool) {
	if len(image) == 0 {
		if b.metrics != nil {
			b.metrics.RecordCall("extract_text", false, 0)
		}
		return "", false
	}
	if b.metrics != nil {
		b.metrics.OCRImageBytes.Observe(float64(len(image)))
	}

	start := time.Now()
	text, err := b.extractor.Extract(context.Background(), image)
	elapsed := time.Since(start)

	if b.metrics != nil {
		b.metrics.RecordCall("extract_text", err == nil, elapsed)
	}
	if err != nil {
		b.log.Debug("extract_text failed",
			zap.String("call_id", string(id.NewCallID())),
			zap.Int("bytes", len(image)),
			zap.Duration("duration", elapsed),
			zap.Error(err))
		return "", false
	}

	b.log.Debug("extract_text completed",
		zap.Int("bytes", len(image)),
		zap.Int("chars", len(text)),
		zap.Duration("duration", elapsed))
	return text, true
}

// call runs a detection operation and folds its outcome into the binary
// contract.
func (b *Bridge) call(op string, fn func() (string, error)) (string, bool) {
	start := time.Now()
	value, err := fn()
	elapsed := time.Since(start)

	if b.metrics != nil {
		b.metrics.RecordCall(op, err == nil, elapsed)
	}
	if err != nil {
		b.log.Debug("call failed",
			zap.String("op", op),
			zap.Duration("duration", elapsed),
			zap.Error(err))
		return "", false
	}
	if elapsed > slowCallThreshold {
		b.log.Warn("slow call",
			zap.String("op", op),
			zap.String("call_id", string(id.NewCallID())),
			zap.Duration("duration", elapsed))
	}
	return value, true
}
