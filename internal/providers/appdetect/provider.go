package appdetect

import (
	"context"
	"fmt"
	"sync"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/contextkit/nativebridge/internal/logging"
	"github.com/contextkit/nativebridge/internal/providers/knownapps"
	"github.com/contextkit/nativebridge/internal/shared/types"
)

// Provider fronts the app-detection family: frontmost-application queries
// and best-effort enumeration of installed applications.
type Provider struct {
	detector Detector
	catalog  *knownapps.Catalog
	log      *logging.Logger

	// The platform frameworks document no reentrancy guarantees, so native
	// calls are serialized unless the deployment opts out.
	serialize bool
	mu        sync.Mutex
}

// NewProvider creates an app-detection provider. catalog may be nil when no
// category suggestions are wanted.
func NewProvider(detector Detector, catalog *knownapps.Catalog, log *logging.Logger, serialize bool) *Provider {
	if log == nil {
		log = logging.NewNop()
	}
	return &Provider{
		detector:  detector,
		catalog:   catalog,
		log:       log.Named("appdetect"),
		serialize: serialize,
	}
}

func (p *Provider) lock() func() {
	if !p.serialize {
		return func() {}
	}
	p.mu.Lock()
	return p.mu.Unlock
}

// Frontmost returns the focused application as a consistent pair. Callers
// that need bundle id and name together should prefer this over two separate
// queries, which may race with genuine focus changes.
func (p *Provider) Frontmost() (types.AppRecord, error) {
	defer p.lock()()

	rec, err := p.detector.FrontmostApp()
	if err != nil {
		p.log.Debug("frontmost app unavailable", zap.Error(err))
		return types.AppRecord{}, err
	}

	p.log.Debug("detected frontmost app",
		zap.String("bundle_id", rec.BundleID),
		zap.String("name", rec.Name))
	return rec, nil
}

// FrontmostBundleID returns the focused application's bundle identifier.
func (p *Provider) FrontmostBundleID() (string, error) {
	rec, err := p.Frontmost()
	if err != nil {
		return "", err
	}
	if rec.BundleID == "" {
		return "", ErrUnavailable
	}
	return rec.BundleID, nil
}

// FrontmostName returns the focused application's display name.
func (p *Provider) FrontmostName() (string, error) {
	rec, err := p.Frontmost()
	if err != nil {
		return "", err
	}
	if rec.Name == "" {
		return "", ErrUnavailable
	}
	return rec.Name, nil
}

// InstalledApps enumerates installed applications. Records with an empty
// bundle id are dropped; order is unspecified.
func (p *Provider) InstalledApps() ([]types.AppRecord, error) {
	defer p.lock()()

	apps, err := p.detector.InstalledApps()
	if err != nil {
		return nil, err
	}

	apps = types.FilterValid(apps)
	p.log.Debug("enumerated installed applications", zap.Int("count", len(apps)))
	return apps, nil
}

// InstalledAppsJSON returns the enumeration as a single JSON array string,
// the wire shape of the C boundary. An empty enumeration yields "[]".
func (p *Provider) InstalledAppsJSON() (string, error) {
	apps, err := p.InstalledApps()
	if err != nil {
		return "", err
	}

	data, err := sonic.Marshal(apps)
	if err != nil {
		return "", fmt.Errorf("failed to serialize applications: %w", err)
	}
	return string(data), nil
}

// SuggestCategory returns the catalog's suggested category for a bundle id,
// or "" when unknown.
func (p *Provider) SuggestCategory(bundleID string) string {
	if p.catalog == nil {
		return ""
	}
	return p.catalog.SuggestCategory(bundleID)
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "appdetect",
		Name:        "App Detection Service",
		Description: "Frontmost-application detection and installed-application enumeration",
		Category:    types.CategoryDetection,
		Capabilities: []string{
			"frontmost",
			"enumeration",
			"category_suggestions",
		},
		Tools: []types.Tool{
			{
				ID:          "appdetect.frontmost",
				Name:        "Frontmost Application",
				Description: "Get the focused application's bundle id and name as one consistent record",
				Parameters:  []types.Parameter{},
				Returns:     "object",
			},
			{
				ID:          "appdetect.frontmost_bundle_id",
				Name:        "Frontmost Bundle ID",
				Description: "Get the focused application's bundle identifier",
				Parameters:  []types.Parameter{},
				Returns:     "string",
			},
			{
				ID:          "appdetect.frontmost_name",
				Name:        "Frontmost App Name",
				Description: "Get the focused application's display name",
				Parameters:  []types.Parameter{},
				Returns:     "string",
			},
			{
				ID:          "appdetect.installed_apps",
				Name:        "Installed Applications",
				Description: "Enumerate installed applications (best-effort, order unspecified)",
				Parameters:  []types.Parameter{},
				Returns:     "array",
			},
			{
				ID:          "appdetect.installed_apps_json",
				Name:        "Installed Applications JSON",
				Description: "Enumerate installed applications as a single JSON array string",
				Parameters:  []types.Parameter{},
				Returns:     "string",
			},
			{
				ID:          "appdetect.suggest_category",
				Name:        "Suggest Category",
				Description: "Suggest a category for a bundle id from the known-apps catalog",
				Parameters: []types.Parameter{
					{Name: "bundle_id", Type: "string", Description: "Bundle identifier to look up", Required: true},
				},
				Returns: "object",
			},
		},
	}
}

// Execute runs an app-detection operation
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "appdetect.frontmost":
		return p.execFrontmost()
	case "appdetect.frontmost_bundle_id":
		return p.execBundleID()
	case "appdetect.frontmost_name":
		return p.execName()
	case "appdetect.installed_apps":
		return p.execInstalled()
	case "appdetect.installed_apps_json":
		return p.execInstalledJSON()
	case "appdetect.suggest_category":
		return p.execSuggest(params)
	default:
		return types.Failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

func (p *Provider) execFrontmost() (*types.Result, error) {
	rec, err := p.Frontmost()
	if err != nil {
		return types.Failure(err.Error())
	}
	return types.Success(map[string]interface{}{
		"bundle_id": rec.BundleID,
		"name":      rec.Name,
	})
}

func (p *Provider) execBundleID() (*types.Result, error) {
	bundleID, err := p.FrontmostBundleID()
	if err != nil {
		return types.Failure(err.Error())
	}
	return types.Success(map[string]interface{}{"bundle_id": bundleID})
}

func (p *Provider) execName() (*types.Result, error) {
	name, err := p.FrontmostName()
	if err != nil {
		return types.Failure(err.Error())
	}
	return types.Success(map[string]interface{}{"name": name})
}

func (p *Provider) execInstalled() (*types.Result, error) {
	apps, err := p.InstalledApps()
	if err != nil {
		return types.Failure(fmt.Sprintf("enumeration failed: %v", err))
	}
	return types.Success(map[string]interface{}{
		"apps":  apps,
		"count": len(apps),
	})
}

func (p *Provider) execInstalledJSON() (*types.Result, error) {
	payload, err := p.InstalledAppsJSON()
	if err != nil {
		return types.Failure(fmt.Sprintf("enumeration failed: %v", err))
	}
	return types.Success(map[string]interface{}{"json": payload})
}

func (p *Provider) execSuggest(params map[string]interface{}) (*types.Result, error) {
	bundleID, ok := params["bundle_id"].(string)
	if !ok || bundleID == "" {
		return types.Failure("bundle_id parameter required")
	}

	category := p.SuggestCategory(bundleID)
	return types.Success(map[string]interface{}{
		"bundle_id": bundleID,
		"category":  category,
		"known":     category != "",
	})
}
