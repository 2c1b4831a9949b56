// Package knownapps maps bundle identifiers of popular applications to
// suggested categories. The catalog is best-effort metadata layered on top of
// detection: an unknown bundle id is not an error, it just has no suggestion.
package knownapps

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/goccy/go-yaml"
)

// Entry is one known application with its suggested category.
type Entry struct {
	BundleID string `json:"bundle_id" yaml:"bundle_id"`
	Name     string `json:"name" yaml:"name"`
	Category string `json:"category" yaml:"category"`
}

// Catalog is an immutable-after-load lookup table keyed by bundle id.
// Lookups are case-insensitive; bundle ids are case-preserving but compared
// folded, matching how macOS treats them.
type Catalog struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// New creates a catalog seeded with the built-in entries.
func New() *Catalog {
	c := &Catalog{entries: make(map[string]Entry, len(builtin))}
	for _, e := range builtin {
		c.entries[fold(e.BundleID)] = e
	}
	return c
}

// Lookup returns the entry for a bundle id, if known.
func (c *Catalog) Lookup(bundleID string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[fold(bundleID)]
	return e, ok
}

// SuggestCategory returns the suggested category for a bundle id, or "" when
// the application is not in the catalog.
func (c *Catalog) SuggestCategory(bundleID string) string {
	e, ok := c.Lookup(bundleID)
	if !ok {
		return ""
	}
	return e.Category
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// LoadFile merges entries from a YAML file over the catalog. File entries win
// on bundle-id collisions. Entries without a bundle id are skipped.
func (c *Catalog) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read known-apps file: %w", err)
	}

	var extra []Entry
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return fmt.Errorf("failed to parse known-apps file: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range extra {
		if e.BundleID == "" {
			continue
		}
		c.entries[fold(e.BundleID)] = e
	}
	return nil
}

func fold(s string) string {
	return strings.ToLower(s)
}

// builtin is the curated list of popular applications. Display names follow
// the vendor's branding, categories are advisory.
var builtin = []Entry{
	// Development environments
	{BundleID: "com.todesktop.230313mzl4w4u92", Name: "Cursor", Category: "development"},
	{BundleID: "dev.zed.Zed", Name: "Zed", Category: "development"},
	{BundleID: "com.codeium.windsurf", Name: "Windsurf", Category: "development"},
	{BundleID: "com.microsoft.VSCode", Name: "Visual Studio Code", Category: "development"},
	{BundleID: "com.microsoft.VSCodeInsiders", Name: "VS Code Insiders", Category: "development"},
	{BundleID: "com.apple.dt.Xcode", Name: "Xcode", Category: "development"},
	{BundleID: "com.jetbrains.intellij", Name: "IntelliJ IDEA", Category: "development"},
	{BundleID: "com.jetbrains.intellij.ce", Name: "IntelliJ IDEA CE", Category: "development"},
	{BundleID: "com.jetbrains.goland", Name: "GoLand", Category: "development"},
	{BundleID: "com.jetbrains.pycharm", Name: "PyCharm", Category: "development"},
	{BundleID: "com.sublimetext.4", Name: "Sublime Text", Category: "development"},
	{BundleID: "com.neovide.neovide", Name: "Neovide", Category: "development"},

	// Terminals
	{BundleID: "com.apple.Terminal", Name: "Terminal", Category: "development"},
	{BundleID: "com.googlecode.iterm2", Name: "iTerm2", Category: "development"},
	{BundleID: "com.mitchellh.ghostty", Name: "Ghostty", Category: "development"},
	{BundleID: "dev.warp.Warp-Stable", Name: "Warp", Category: "development"},
	{BundleID: "net.kovidgoyal.kitty", Name: "kitty", Category: "development"},

	// Browsers
	{BundleID: "com.apple.Safari", Name: "Safari", Category: "browsing"},
	{BundleID: "com.google.Chrome", Name: "Google Chrome", Category: "browsing"},
	{BundleID: "org.mozilla.firefox", Name: "Firefox", Category: "browsing"},
	{BundleID: "company.thebrowser.Browser", Name: "Arc", Category: "browsing"},
	{BundleID: "com.brave.Browser", Name: "Brave", Category: "browsing"},
	{BundleID: "com.microsoft.edgemac", Name: "Microsoft Edge", Category: "browsing"},

	// Communication
	{BundleID: "com.tinyspeck.slackmacgap", Name: "Slack", Category: "communication"},
	{BundleID: "com.hnc.Discord", Name: "Discord", Category: "communication"},
	{BundleID: "us.zoom.xos", Name: "Zoom", Category: "communication"},
	{BundleID: "com.microsoft.teams2", Name: "Microsoft Teams", Category: "communication"},
	{BundleID: "com.apple.MobileSMS", Name: "Messages", Category: "communication"},
	{BundleID: "com.apple.mail", Name: "Mail", Category: "communication"},
	{BundleID: "net.whatsapp.WhatsApp", Name: "WhatsApp", Category: "communication"},
	{BundleID: "org.telegram.desktop", Name: "Telegram", Category: "communication"},

	// Writing and notes
	{BundleID: "md.obsidian", Name: "Obsidian", Category: "writing"},
	{BundleID: "notion.id", Name: "Notion", Category: "writing"},
	{BundleID: "com.apple.Notes", Name: "Notes", Category: "writing"},
	{BundleID: "com.microsoft.Word", Name: "Microsoft Word", Category: "writing"},
	{BundleID: "com.apple.iWork.Pages", Name: "Pages", Category: "writing"},
	{BundleID: "com.literatureandlatte.scrivener3", Name: "Scrivener", Category: "writing"},

	// Design and media
	{BundleID: "com.figma.Desktop", Name: "Figma", Category: "design"},
	{BundleID: "com.bohemiancoding.sketch3", Name: "Sketch", Category: "design"},
	{BundleID: "com.adobe.Photoshop", Name: "Adobe Photoshop", Category: "design"},
	{BundleID: "com.apple.FinalCut", Name: "Final Cut Pro", Category: "media"},
	{BundleID: "com.spotify.client", Name: "Spotify", Category: "media"},
	{BundleID: "com.apple.Music", Name: "Music", Category: "media"},

	// Productivity
	{BundleID: "com.apple.iCal", Name: "Calendar", Category: "productivity"},
	{BundleID: "com.culturedcode.ThingsMac", Name: "Things", Category: "productivity"},
	{BundleID: "com.omnigroup.OmniFocus4", Name: "OmniFocus", Category: "productivity"},
	{BundleID: "com.microsoft.Excel", Name: "Microsoft Excel", Category: "productivity"},
	{BundleID: "com.apple.iWork.Numbers", Name: "Numbers", Category: "productivity"},
	{BundleID: "com.apple.finder", Name: "Finder", Category: "productivity"},
}
