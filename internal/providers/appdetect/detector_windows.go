//go:build windows

package appdetect

import (
	"os"
	"path/filepath"
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/contextkit/nativebridge/internal/config"
	"github.com/contextkit/nativebridge/internal/shared/types"
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")
	psapi    = windows.NewLazySystemDLL("psapi.dll")

	procGetForegroundWindow      = user32.NewProc("GetForegroundWindow")
	procGetWindowThreadProcessId = user32.NewProc("GetWindowThreadProcessId")
	procOpenProcess              = kernel32.NewProc("OpenProcess")
	procCloseHandle              = kernel32.NewProc("CloseHandle")
	procGetModuleFileNameExW     = psapi.NewProc("GetModuleFileNameExW")
)

const (
	processQueryInformation = 0x0400
	processVMRead           = 0x0010
)

// windowsDetector resolves the foreground window to its owning executable.
// Windows has no bundle identifiers; the lowercased executable file name
// stands in as the stable id.
type windowsDetector struct {
	scanner *Scanner
}

// NewDetector creates the Windows detector.
func NewDetector(cfg config.DetectionConfig) Detector {
	roots := cfg.ScanRoots
	if len(roots) == 0 {
		roots = defaultWindowsRoots()
	}
	patterns := cfg.ScanPatterns
	if len(patterns) == 0 {
		patterns = []string{"*/*.exe", "*/*/*.exe"}
	}

	return &windowsDetector{
		scanner: &Scanner{
			Roots:    roots,
			Patterns: patterns,
			Extract:  extractExecutable,
		},
	}
}

func defaultWindowsRoots() []string {
	var roots []string
	for _, env := range []string{"ProgramFiles", "ProgramFiles(x86)", "LocalAppData"} {
		if dir := os.Getenv(env); dir != "" {
			roots = append(roots, dir)
		}
	}
	return roots
}

func (w *windowsDetector) FrontmostApp() (types.AppRecord, error) {
	hwnd, _, _ := procGetForegroundWindow.Call()
	if hwnd == 0 {
		return types.AppRecord{}, ErrUnavailable
	}

	var processID uint32
	procGetWindowThreadProcessId.Call(hwnd, uintptr(unsafe.Pointer(&processID)))
	if processID == 0 {
		return types.AppRecord{}, ErrUnavailable
	}

	hProcess, _, _ := procOpenProcess.Call(processQueryInformation|processVMRead, 0, uintptr(processID))
	if hProcess == 0 {
		return types.AppRecord{}, ErrUnavailable
	}
	defer procCloseHandle.Call(hProcess)

	var buffer [windows.MAX_PATH]uint16
	ret, _, _ := procGetModuleFileNameExW.Call(hProcess, 0, uintptr(unsafe.Pointer(&buffer[0])), windows.MAX_PATH)
	if ret == 0 {
		return types.AppRecord{}, ErrUnavailable
	}

	exePath := windows.UTF16ToString(buffer[:])
	if exePath == "" {
		return types.AppRecord{}, ErrUnavailable
	}

	filename := filepath.Base(exePath)
	return types.AppRecord{
		BundleID: strings.ToLower(filename),
		Name:     strings.TrimSuffix(filename, filepath.Ext(filename)),
	}, nil
}

func (w *windowsDetector) InstalledApps() ([]types.AppRecord, error) {
	return w.scanner.Scan(), nil
}

func extractExecutable(path string, d os.DirEntry) (types.AppRecord, bool) {
	if d.IsDir() {
		return types.AppRecord{}, false
	}
	filename := filepath.Base(path)
	return types.AppRecord{
		BundleID: strings.ToLower(filename),
		Name:     strings.TrimSuffix(filename, filepath.Ext(filename)),
	}, true
}
