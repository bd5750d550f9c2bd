// Package statusfile tails the append-only session-events file and
// maintains the full project→status map derived from it. Every effective
// change yields the complete replacement map, never a delta.
package statusfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// Reader incrementally consumes one events file. Lines are
//
//	g <path>   project started generating
//	w <path>   project is waiting for input
//	c <path>   project cleared
//
// Trailing slashes on paths are stripped. Lines shorter than three bytes,
// unknown prefixes and empty paths are ignored. File truncation resets the
// read offset and clears the map; file removal clears the map.
type Reader struct {
	path     string
	offset   int64
	statuses map[string]string
}

// NewReader returns a reader positioned at the start of the file.
func NewReader(path string) *Reader {
	return &Reader{path: path, statuses: map[string]string{}}
}

// Statuses returns a copy of the current full map.
func (r *Reader) Statuses() map[string]string {
	out := make(map[string]string, len(r.statuses))
	for k, v := range r.statuses {
		out[k] = v
	}
	return out
}

// Poll reads any data appended since the previous call and reports whether
// the map changed. Callers emit the full map downstream when changed is
// true.
func (r *Reader) Poll() (map[string]string, bool, error) {
	info, err := os.Stat(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			changed := len(r.statuses) > 0
			r.statuses = map[string]string{}
			r.offset = 0
			return r.Statuses(), changed, nil
		}
		return r.Statuses(), false, fmt.Errorf("stat events file: %w", err)
	}

	changed := false
	if info.Size() < r.offset {
		// Truncated out from under us; start over.
		r.offset = 0
		changed = len(r.statuses) > 0
		r.statuses = map[string]string{}
	}
	if info.Size() == r.offset {
		return r.Statuses(), changed, nil
	}

	f, err := os.Open(r.path)
	if err != nil {
		return r.Statuses(), changed, fmt.Errorf("open events file: %w", err)
	}
	defer f.Close()
	if _, err := f.Seek(r.offset, io.SeekStart); err != nil {
		return r.Statuses(), changed, fmt.Errorf("seek events file: %w", err)
	}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if applyLine(scanner.Text(), r.statuses) {
			changed = true
		}
	}
	if err := scanner.Err(); err != nil {
		return r.Statuses(), changed, fmt.Errorf("read events file: %w", err)
	}
	r.offset = info.Size()
	return r.Statuses(), changed, nil
}

// Remove deletes the events file so a fresh run does not replay stale
// entries. Called once at startup; a missing file is fine.
func (r *Reader) Remove() {
	_ = os.Remove(r.path)
}

// applyLine folds one event line into the map and reports whether the map
// changed.
func applyLine(line string, statuses map[string]string) bool {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < 3 || trimmed[1] != ' ' {
		return false
	}
	prefix := trimmed[:1]
	project := strings.TrimRight(trimmed[2:], "/")
	if project == "" {
		return false
	}
	switch prefix {
	case "g":
		prev, had := statuses[project]
		statuses[project] = "generating"
		return !had || prev != "generating"
	case "w":
		prev, had := statuses[project]
		statuses[project] = "waiting"
		return !had || prev != "waiting"
	case "c":
		if _, had := statuses[project]; had {
			delete(statuses, project)
			return true
		}
		return false
	}
	return false
}
