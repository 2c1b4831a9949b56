package ocr

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/contextkit/nativebridge/internal/logging"
	"github.com/contextkit/nativebridge/internal/shared/types"
)

// Provider fronts the OCR family. All input validation happens here, before
// the native engine sees the buffer: the engine is trusted to recognize
// text, not to survive garbage.
type Provider struct {
	engine   Engine
	log      *logging.Logger
	maxBytes int

	// The Vision framework documents no reentrancy guarantees for a shared
	// request queue, so calls are serialized unless the deployment opts out.
	serialize bool
	mu        sync.Mutex
}

// NewProvider creates an OCR provider. maxBytes <= 0 disables the size cap.
func NewProvider(engine Engine, log *logging.Logger, maxBytes int, serialize bool) *Provider {
	if log == nil {
		log = logging.NewNop()
	}
	return &Provider{
		engine:    engine,
		log:       log.Named("ocr"),
		maxBytes:  maxBytes,
		serialize: serialize,
	}
}

// Extract runs text recognition over encoded image bytes. The buffer is a
// non-owning view owned by the caller; it is not retained past the return.
// The call blocks for the full recognition with no progress reporting.
func (p *Provider) Extract(ctx context.Context, image []byte) (string, error) {
	if len(image) == 0 {
		return "", ErrNoImage
	}
	if p.maxBytes > 0 && len(image) > p.maxBytes {
		return "", fmt.Errorf("%w: %d bytes (limit %d)", ErrTooLarge, len(image), p.maxBytes)
	}

	// Sniff by content, never by caller claim. Random bytes get rejected
	// here instead of reaching the native decoder.
	mtype := mimetype.Detect(image)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", fmt.Errorf("%w: detected %s", ErrNotImage, mtype.String())
	}

	if p.serialize {
		p.mu.Lock()
		defer p.mu.Unlock()
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	start := time.Now()
	text, err := p.engine.ExtractText(ctx, image)
	if err != nil {
		p.log.Debug("recognition failed",
			zap.String("mime_type", mtype.String()),
			zap.Int("bytes", len(image)),
			zap.Error(err))
		return "", err
	}

	if strings.TrimSpace(text) == "" {
		return "", ErrNoText
	}

	p.log.Debug("recognition completed",
		zap.Duration("duration", time.Since(start)),
		zap.Int("bytes", len(image)),
		zap.Int("chars", len(text)))
	return text, nil
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "ocr",
		Name:        "OCR Service",
		Description: "Text recognition over encoded image bytes",
		Category:    types.CategoryVision,
		Capabilities: []string{
			"text_extraction",
			"format_sniffing",
		},
		Tools: []types.Tool{
			{
				ID:          "ocr.extract_text",
				Name:        "Extract Text",
				Description: "Recognize text in an image (blocking, latency scales with resolution)",
				Parameters: []types.Parameter{
					{Name: "data", Type: "string", Description: "Base64-encoded image bytes", Required: true},
				},
				Returns: "object",
			},
		},
	}
}

// Execute runs an OCR operation
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "ocr.extract_text":
		return p.execExtract(ctx, params)
	default:
		return types.Failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

func (p *Provider) execExtract(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	encoded, ok := params["data"].(string)
	if !ok || encoded == "" {
		return types.Failure("data parameter required")
	}

	image, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return types.Failure(fmt.Sprintf("invalid base64 data: %v", err))
	}

	text, err := p.Extract(ctx, image)
	if err != nil {
		return types.Failure(err.Error())
	}

	return types.Success(map[string]interface{}{
		"text":  text,
		"chars": len(text),
	})
}
