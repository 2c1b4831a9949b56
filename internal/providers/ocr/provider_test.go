package ocr

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEngine simulates the native recognizer.
type fakeEngine struct {
	text  string
	err   error
	calls int
}

func (f *fakeEngine) ExtractText(ctx context.Context, image []byte) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

// pngBytes is a minimal PNG header plus padding; enough for content sniffing
// to identify image/png.
func pngBytes() []byte {
	header := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	return append(header, make([]byte, 64)...)
}

func TestExtractText(t *testing.T) {
	engine := &fakeEngine{text: "hello world"}
	p := NewProvider(engine, nil, 0, true)

	text, err := p.Extract(context.Background(), pngBytes())
	require.NoError(t, err)
	assert.Equal(t, "hello world", text)
	assert.Equal(t, 1, engine.calls)
}

func TestExtractEmptyBufferRejected(t *testing.T) {
	engine := &fakeEngine{text: "never"}
	p := NewProvider(engine, nil, 0, true)

	_, err := p.Extract(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoImage)

	_, err = p.Extract(context.Background(), []byte{})
	assert.ErrorIs(t, err, ErrNoImage)

	assert.Equal(t, 0, engine.calls, "engine must not see invalid input")
}

func TestExtractRandomBytesRejected(t *testing.T) {
	engine := &fakeEngine{text: "never"}
	p := NewProvider(engine, nil, 0, true)

	// 10 bytes of non-image noise must fail sniffing, not crash.
	_, err := p.Extract(context.Background(), []byte{0x01, 0x55, 0xfe, 0x03, 0x99, 0x12, 0x34, 0x56, 0x78, 0x9a})
	assert.ErrorIs(t, err, ErrNotImage)
	assert.Equal(t, 0, engine.calls)
}

func TestExtractOversizedRejected(t *testing.T) {
	engine := &fakeEngine{text: "never"}
	p := NewProvider(engine, nil, 16, true)

	_, err := p.Extract(context.Background(), pngBytes())
	assert.ErrorIs(t, err, ErrTooLarge)
	assert.Equal(t, 0, engine.calls)
}

func TestExtractNoTextFound(t *testing.T) {
	p := NewProvider(&fakeEngine{text: "   \n "}, nil, 0, true)

	_, err := p.Extract(context.Background(), pngBytes())
	assert.ErrorIs(t, err, ErrNoText)
}

func TestExtractEngineFailureCollapses(t *testing.T) {
	p := NewProvider(&fakeEngine{err: ErrUnavailable}, nil, 0, true)

	_, err := p.Extract(context.Background(), pngBytes())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestExtractCanceledContext(t *testing.T) {
	engine := &fakeEngine{text: "never"}
	p := NewProvider(engine, nil, 0, true)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Extract(ctx, pngBytes())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, engine.calls)
}

func TestExecuteExtractText(t *testing.T) {
	p := NewProvider(&fakeEngine{text: "receipt total 42"}, nil, 0, true)
	ctx := context.Background()

	result, err := p.Execute(ctx, "ocr.extract_text", map[string]interface{}{
		"data": base64.StdEncoding.EncodeToString(pngBytes()),
	}, nil)
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, "receipt total 42", result.Data["text"])
	assert.Equal(t, len("receipt total 42"), result.Data["chars"])
}

func TestExecuteExtractTextBadParams(t *testing.T) {
	p := NewProvider(&fakeEngine{text: "x"}, nil, 0, true)
	ctx := context.Background()

	result, err := p.Execute(ctx, "ocr.extract_text", nil, nil)
	require.NoError(t, err)
	assert.False(t, result.Success)

	result, err = p.Execute(ctx, "ocr.extract_text", map[string]interface{}{
		"data": "!!! not base64 !!!",
	}, nil)
	require.NoError(t, err)
	assert.False(t, result.Success)
}

func TestExecuteUnknownTool(t *testing.T) {
	p := NewProvider(&fakeEngine{}, nil, 0, true)

	result, err := p.Execute(context.Background(), "ocr.bogus", nil, nil)
	require.NoError(t, err)
	assert.False(t, result.Success)
}
