package appdetect

import (
	"context"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contextkit/nativebridge/internal/providers/knownapps"
	"github.com/contextkit/nativebridge/internal/shared/types"
)

// fakeDetector simulates the native provider with fixed answers.
type fakeDetector struct {
	frontmost types.AppRecord
	focusErr  error
	installed []types.AppRecord
	calls     int
}

func (f *fakeDetector) FrontmostApp() (types.AppRecord, error) {
	f.calls++
	if f.focusErr != nil {
		return types.AppRecord{}, f.focusErr
	}
	return f.frontmost, nil
}

func (f *fakeDetector) InstalledApps() ([]types.AppRecord, error) {
	return f.installed, nil
}

func newTestProvider(d Detector) *Provider {
	return NewProvider(d, knownapps.New(), nil, true)
}

func TestFrontmostScenario(t *testing.T) {
	d := &fakeDetector{frontmost: types.AppRecord{BundleID: "com.example.editor", Name: "Editor"}}
	p := newTestProvider(d)

	bundleID, err := p.FrontmostBundleID()
	require.NoError(t, err)
	assert.Equal(t, "com.example.editor", bundleID)

	name, err := p.FrontmostName()
	require.NoError(t, err)
	assert.Equal(t, "Editor", name)

	rec, err := p.Frontmost()
	require.NoError(t, err)
	assert.Equal(t, types.AppRecord{BundleID: "com.example.editor", Name: "Editor"}, rec)
}

func TestFrontmostIdempotentUnderStableFocus(t *testing.T) {
	d := &fakeDetector{frontmost: types.AppRecord{BundleID: "com.example.editor", Name: "Editor"}}
	p := newTestProvider(d)

	first, err := p.FrontmostBundleID()
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		got, err := p.FrontmostBundleID()
		require.NoError(t, err)
		assert.Equal(t, first, got)
	}
}

func TestFrontmostUnavailable(t *testing.T) {
	p := newTestProvider(&fakeDetector{focusErr: ErrUnavailable})

	_, err := p.FrontmostBundleID()
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = p.FrontmostName()
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestFrontmostPartialMetadata(t *testing.T) {
	// Name present, bundle id missing: the id query is unavailable but the
	// name query still answers.
	p := newTestProvider(&fakeDetector{frontmost: types.AppRecord{Name: "Mystery"}})

	_, err := p.FrontmostBundleID()
	assert.ErrorIs(t, err, ErrUnavailable)

	name, err := p.FrontmostName()
	require.NoError(t, err)
	assert.Equal(t, "Mystery", name)
}

func TestInstalledAppsFiltersEmptyBundleIDs(t *testing.T) {
	d := &fakeDetector{installed: []types.AppRecord{
		{BundleID: "com.example.a", Name: "A"},
		{BundleID: "", Name: "corrupt entry"},
		{BundleID: "com.example.b"},
	}}
	p := newTestProvider(d)

	apps, err := p.InstalledApps()
	require.NoError(t, err)
	assert.Len(t, apps, 2)
	for _, app := range apps {
		assert.NotEmpty(t, app.BundleID)
	}
}

func TestInstalledAppsJSON(t *testing.T) {
	d := &fakeDetector{installed: []types.AppRecord{
		{BundleID: "com.example.a", Name: "A"},
		{BundleID: "com.example.b", Name: ""},
	}}
	p := newTestProvider(d)

	payload, err := p.InstalledAppsJSON()
	require.NoError(t, err)

	var parsed []map[string]string
	require.NoError(t, sonic.Unmarshal([]byte(payload), &parsed))
	require.Len(t, parsed, 2)
	for _, el := range parsed {
		assert.NotEmpty(t, el["bundle_id"])
	}
}

func TestInstalledAppsJSONEmpty(t *testing.T) {
	p := newTestProvider(&fakeDetector{})

	payload, err := p.InstalledAppsJSON()
	require.NoError(t, err)
	assert.Equal(t, "[]", payload)
}

func TestExecuteFrontmost(t *testing.T) {
	d := &fakeDetector{frontmost: types.AppRecord{BundleID: "com.example.editor", Name: "Editor"}}
	p := newTestProvider(d)
	ctx := context.Background()

	result, err := p.Execute(ctx, "appdetect.frontmost", nil, nil)
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, "com.example.editor", result.Data["bundle_id"])
	assert.Equal(t, "Editor", result.Data["name"])
}

func TestExecuteUnavailableIsFailureNotError(t *testing.T) {
	p := newTestProvider(&fakeDetector{focusErr: ErrUnavailable})
	ctx := context.Background()

	result, err := p.Execute(ctx, "appdetect.frontmost_bundle_id", nil, nil)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.NotNil(t, result.Error)
}

func TestExecuteSuggestCategory(t *testing.T) {
	p := newTestProvider(&fakeDetector{})
	ctx := context.Background()

	result, err := p.Execute(ctx, "appdetect.suggest_category", map[string]interface{}{
		"bundle_id": "com.google.Chrome",
	}, nil)
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, "browsing", result.Data["category"])
	assert.Equal(t, true, result.Data["known"])

	result, err = p.Execute(ctx, "appdetect.suggest_category", map[string]interface{}{
		"bundle_id": "com.example.unknown",
	}, nil)
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, false, result.Data["known"])
}

func TestExecuteSuggestCategoryMissingParam(t *testing.T) {
	p := newTestProvider(&fakeDetector{})

	result, err := p.Execute(context.Background(), "appdetect.suggest_category", nil, nil)
	require.NoError(t, err)
	assert.False(t, result.Success)
}

func TestExecuteUnknownTool(t *testing.T) {
	p := newTestProvider(&fakeDetector{})

	result, err := p.Execute(context.Background(), "appdetect.bogus", nil, nil)
	require.NoError(t, err)
	assert.False(t, result.Success)
}

func TestDefinitionToolsRouted(t *testing.T) {
	p := newTestProvider(&fakeDetector{frontmost: types.AppRecord{BundleID: "a", Name: "b"}})
	def := p.Definition()
	assert.Equal(t, "appdetect", def.ID)

	// Every advertised tool must dispatch somewhere real.
	for _, tool := range def.Tools {
		params := map[string]interface{}{"bundle_id": "com.example.x"}
		result, err := p.Execute(context.Background(), tool.ID, params, nil)
		require.NoError(t, err, tool.ID)
		assert.True(t, result.Success, tool.ID)
	}
}
