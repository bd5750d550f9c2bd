package editor

import "strings"

// Title formats vary by editor family:
//
//	VSCode/Cursor: "filename — folder — Editor", "folder — Editor", "Editor"
//	Zed:           "project — filename", "project"
//
// The separator is an em dash surrounded by spaces.
const titleSeparator = " — "

// ProjectName extracts the project identifier from a window title. This is
// the only cross-update identity a window carries, so the extraction rules
// mirror each editor's title scheme exactly.
func ProjectName(title string, cfg Config) string {
	parts := strings.Split(title, titleSeparator)

	if cfg.ID == "zed" {
		switch len(parts) {
		case 1, 2:
			return parts[0]
		default:
			return title
		}
	}

	switch len(parts) {
	case 3:
		return parts[1]
	case 2:
		if strings.Contains(parts[1], cfg.DisplayName) || parts[1] == cfg.AppName {
			return parts[0]
		}
		return parts[1]
	case 1:
		if strings.Contains(parts[0], cfg.DisplayName) || parts[0] == cfg.AppName {
			return "New Window"
		}
		return parts[0]
	default:
		return title
	}
}

// SkipTitle reports whether a window title identifies a transient window
// that should not become a tab.
func SkipTitle(title string) bool {
	return title == "" || title == "Untitled"
}
