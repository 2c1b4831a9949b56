package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contextkit/nativebridge/internal/shared/types"
)

type fakeProvider struct {
	id       string
	category types.Category
	tools    []types.Tool
	lastTool string
}

func (f *fakeProvider) Definition() types.Service {
	return types.Service{
		ID:       f.id,
		Name:     f.id,
		Category: f.category,
		Tools:    f.tools,
	}
}

func (f *fakeProvider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	f.lastTool = toolID
	return types.Success(map[string]interface{}{"tool": toolID})
}

func TestRegisterAndGet(t *testing.T) {
	r := NewRegistry()
	p := &fakeProvider{id: "appdetect", category: types.CategoryDetection}

	require.NoError(t, r.Register(p))

	got, ok := r.Get("appdetect")
	require.True(t, ok)
	assert.Equal(t, "appdetect", got.Definition().ID)
}

func TestRegisterEmptyID(t *testing.T) {
	r := NewRegistry()
	assert.Error(t, r.Register(&fakeProvider{id: ""}))
}

func TestUnregister(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&fakeProvider{id: "ocr", category: types.CategoryVision}))

	r.Unregister("ocr")

	_, ok := r.Get("ocr")
	assert.False(t, ok)
}

func TestListByCategory(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&fakeProvider{id: "appdetect", category: types.CategoryDetection}))
	require.NoError(t, r.Register(&fakeProvider{id: "ocr", category: types.CategoryVision}))

	all := r.List(nil)
	assert.Len(t, all, 2)

	vision := types.CategoryVision
	filtered := r.List(&vision)
	require.Len(t, filtered, 1)
	assert.Equal(t, "ocr", filtered[0].ID)
}

func TestExecuteDispatch(t *testing.T) {
	r := NewRegistry()
	p := &fakeProvider{id: "appdetect", category: types.CategoryDetection}
	require.NoError(t, r.Register(p))

	result, err := r.Execute(context.Background(), "appdetect.frontmost", nil, nil)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "appdetect.frontmost", p.lastTool)
}

func TestExecuteInvalidToolID(t *testing.T) {
	r := NewRegistry()

	result, err := r.Execute(context.Background(), "notool", nil, nil)
	assert.Error(t, err)
	require.NotNil(t, result)
	assert.False(t, result.Success)
}

func TestExecuteUnknownService(t *testing.T) {
	r := NewRegistry()

	result, err := r.Execute(context.Background(), "ghost.frontmost", nil, nil)
	assert.Error(t, err)
	require.NotNil(t, result)
	assert.False(t, result.Success)
}

func TestStats(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&fakeProvider{
		id:       "appdetect",
		category: types.CategoryDetection,
		tools:    []types.Tool{{ID: "appdetect.frontmost"}, {ID: "appdetect.installed_apps"}},
	}))
	require.NoError(t, r.Register(&fakeProvider{
		id:       "ocr",
		category: types.CategoryVision,
		tools:    []types.Tool{{ID: "ocr.extract_text"}},
	}))

	stats := r.Stats()
	assert.Equal(t, 2, stats["total_services"])
	assert.Equal(t, 3, stats["total_tools"])
}
