package editor

import (
	"os"
	"path/filepath"
	"strings"
)

// Branch returns the checked-out git branch for a project directory, or ""
// when the directory is not a repository (or the HEAD is detached to a raw
// hash). Reading .git/HEAD directly keeps enrichment cheap enough to run
// on every snapshot.
func Branch(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, ".git", "HEAD"))
	if err != nil {
		return ""
	}
	head := strings.TrimSpace(string(data))
	const refPrefix = "ref: refs/heads/"
	if strings.HasPrefix(head, refPrefix) {
		return strings.TrimPrefix(head, refPrefix)
	}
	return ""
}
