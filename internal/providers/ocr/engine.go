package ocr

import (
	"context"
	"errors"
)

// Recognition failure modes. At the C boundary all of these collapse to a
// null result; internally they stay distinguishable for logs and tests.
var (
	ErrNoImage     = errors.New("empty image buffer")
	ErrTooLarge    = errors.New("image buffer exceeds configured limit")
	ErrNotImage    = errors.New("buffer is not a recognized image format")
	ErrNoText      = errors.New("no text recognized")
	ErrUnavailable = errors.New("ocr engine unavailable on this platform")
)

// Engine is the opaque native provider behind the OCR family. The image
// bytes are a non-owning view: implementations must not retain them past the
// call's return. The call blocks for the full recognition; there is no
// cancellation once the native request is running.
type Engine interface {
	ExtractText(ctx context.Context, image []byte) (string, error)
}
