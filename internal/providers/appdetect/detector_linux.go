//go:build linux

package appdetect

import (
	"bufio"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/contextkit/nativebridge/internal/config"
	"github.com/contextkit/nativebridge/internal/shared/types"
)

// linuxDetector reads the active X11 window via xprop and enumerates
// .desktop entries. Desktop-file basenames are commonly reverse-DNS
// (org.gnome.Calculator.desktop) and serve as the bundle id.
type linuxDetector struct {
	scanner *Scanner
}

// NewDetector creates the Linux detector.
func NewDetector(cfg config.DetectionConfig) Detector {
	roots := cfg.ScanRoots
	if len(roots) == 0 {
		roots = []string{
			"/usr/share/applications",
			"/usr/local/share/applications",
			"~/.local/share/applications",
		}
	}
	patterns := cfg.ScanPatterns
	if len(patterns) == 0 {
		patterns = []string{"*.desktop", "**/*.desktop"}
	}

	return &linuxDetector{
		scanner: &Scanner{
			Roots:    roots,
			Patterns: patterns,
			Extract:  extractDesktopEntry,
		},
	}
}

func (l *linuxDetector) FrontmostApp() (types.AppRecord, error) {
	out, err := exec.Command("xprop", "-root", "_NET_ACTIVE_WINDOW").Output()
	if err != nil {
		return types.AppRecord{}, ErrUnavailable // no X11, or no window manager
	}

	fields := strings.Fields(string(out))
	if len(fields) < 5 {
		return types.AppRecord{}, ErrUnavailable
	}
	windowID := fields[len(fields)-1]
	if windowID == "0x0" {
		return types.AppRecord{}, ErrUnavailable
	}

	out, err = exec.Command("xprop", "-id", windowID, "WM_CLASS").Output()
	if err != nil {
		return types.AppRecord{}, ErrUnavailable
	}

	// WM_CLASS(STRING) = "instance", "Class"
	instance, class, ok := parseWMClass(string(out))
	if !ok {
		return types.AppRecord{}, ErrUnavailable
	}

	return types.AppRecord{BundleID: instance, Name: class}, nil
}

func (l *linuxDetector) InstalledApps() ([]types.AppRecord, error) {
	return l.scanner.Scan(), nil
}

func parseWMClass(out string) (instance, class string, ok bool) {
	_, value, found := strings.Cut(out, "=")
	if !found {
		return "", "", false
	}

	var parts []string
	for _, p := range strings.Split(value, ",") {
		p = strings.Trim(strings.TrimSpace(p), `"`)
		if p != "" {
			parts = append(parts, p)
		}
	}

	switch len(parts) {
	case 0:
		return "", "", false
	case 1:
		return strings.ToLower(parts[0]), parts[0], true
	default:
		return strings.ToLower(parts[0]), parts[1], true
	}
}

func extractDesktopEntry(path string, d os.DirEntry) (types.AppRecord, bool) {
	if d.IsDir() {
		return types.AppRecord{}, false
	}

	rec := types.AppRecord{
		BundleID: strings.TrimSuffix(filepath.Base(path), ".desktop"),
	}

	f, err := os.Open(path)
	if err != nil {
		return types.AppRecord{}, false // unreadable entries are omitted
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		// Stop at the next section to avoid picking up action names.
		if strings.HasPrefix(line, "[") && line != "[Desktop Entry]" {
			break
		}
		if name, found := strings.CutPrefix(line, "Name="); found && rec.Name == "" {
			rec.Name = name
		}
		if line == "NoDisplay=true" {
			return types.AppRecord{}, false // not a launchable application
		}
	}

	return rec, true
}
