// Package editor integrates with externally-managed macOS editor windows.
// Enumeration and manipulation go through the Accessibility layer via
// osascript; everything above this package treats the editor as an opaque
// collaborator.
package editor

import "strings"

// Config describes one supported editor application.
type Config struct {
	ID          string // "vscode", "cursor", "zed"
	DisplayName string
	BundleID    string
	AppName     string // process/app name used in title parsing
}

// Editors lists the supported editors, tried in order when no explicit
// editor is configured.
var Editors = []Config{
	{
		ID:          "vscode",
		DisplayName: "Visual Studio Code",
		BundleID:    "com.microsoft.VSCode",
		AppName:     "Visual Studio Code",
	},
	{
		ID:          "cursor",
		DisplayName: "Cursor",
		BundleID:    "com.todesktop.230313mzl4w4u92",
		AppName:     "Cursor",
	},
	{
		ID:          "zed",
		DisplayName: "Zed",
		BundleID:    "dev.zed.Zed",
		AppName:     "Zed",
	},
}

// ByID returns the editor config for an id, or false when unsupported.
func ByID(id string) (Config, bool) {
	for _, cfg := range Editors {
		if cfg.ID == strings.TrimSpace(id) {
			return cfg, true
		}
	}
	return Config{}, false
}

// ByBundleID returns the editor config for a macOS bundle identifier.
func ByBundleID(bundleID string) (Config, bool) {
	for _, cfg := range Editors {
		if cfg.BundleID == bundleID {
			return cfg, true
		}
	}
	return Config{}, false
}

// BundleIDs returns all supported bundle identifiers.
func BundleIDs() []string {
	ids := make([]string, len(Editors))
	for i, cfg := range Editors {
		ids[i] = cfg.BundleID
	}
	return ids
}
