//go:build !darwin

package ocr

import "context"

// stubEngine is used on platforms without a native recognition facility.
type stubEngine struct{}

// NewEngine creates the no-op engine.
func NewEngine() Engine {
	return stubEngine{}
}

func (stubEngine) ExtractText(ctx context.Context, image []byte) (string, error) {
	return "", ErrUnavailable
}
