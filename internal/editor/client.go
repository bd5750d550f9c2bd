package editor

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/mtakeda/editor-tab-sync/internal/engine"
)

// Client is the window-integration surface the rest of the program uses.
// Snapshot failures must leave callers free to keep their previous view;
// Focus/Open/Close are fire-and-forget from the caller's perspective.
type Client interface {
	Snapshot(ctx context.Context) (engine.Snapshot, error)
	Focus(ctx context.Context, windowID int) error
	OpenWindow(ctx context.Context) error
	CloseWindow(ctx context.Context, title string) error
}

// OSAClient drives one editor through osascript/System Events.
type OSAClient struct {
	cfg Config

	// runScript is swappable for tests.
	runScript func(ctx context.Context, script string) ([]byte, error)
}

// NewOSAClient returns a client bound to one editor configuration.
func NewOSAClient(cfg Config) *OSAClient {
	return &OSAClient{cfg: cfg, runScript: runOsascript}
}

func runOsascript(ctx context.Context, script string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "osascript", "-e", script)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("osascript: %w", err)
	}
	return out, nil
}

// Snapshot enumerates the editor's windows. Each output line carries
// "id<TAB>frontmost<TAB>title"; the first line reports whether the editor
// process is the frontmost application. Transient windows are filtered out
// before index assignment so active_index stays aligned with the returned
// list.
func (c *OSAClient) Snapshot(ctx context.Context) (engine.Snapshot, error) {
	out, err := c.runScript(ctx, listWindowsScript(c.cfg))
	if err != nil {
		return engine.Snapshot{}, fmt.Errorf("enumerate %s windows: %w", c.cfg.DisplayName, err)
	}
	return parseSnapshot(out, c.cfg)
}

func parseSnapshot(out []byte, cfg Config) (engine.Snapshot, error) {
	snap := engine.Snapshot{ActiveIndex: -1}
	scanner := bufio.NewScanner(bytes.NewReader(out))
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			first = false
			snap.IsActive = strings.TrimSpace(line) == "true"
			continue
		}
		fields := strings.SplitN(line, "\t", 3)
		if len(fields) != 3 {
			continue
		}
		id, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil {
			continue
		}
		title := fields[2]
		if SkipTitle(title) {
			continue
		}
		snap.Windows = append(snap.Windows, engine.Window{
			ID:   id,
			Name: ProjectName(title, cfg),
			Path: title,
		})
		if strings.TrimSpace(fields[1]) == "true" {
			snap.ActiveIndex = len(snap.Windows) - 1
		}
	}
	if err := scanner.Err(); err != nil {
		return engine.Snapshot{}, fmt.Errorf("scan window list: %w", err)
	}
	return snap, nil
}

// Focus raises a window by its OS handle. The handle is only valid for the
// window's lifetime, so a failed focus on a stale id is expected churn.
func (c *OSAClient) Focus(ctx context.Context, windowID int) error {
	_, err := c.runScript(ctx, focusWindowScript(c.cfg, windowID))
	if err != nil {
		return fmt.Errorf("focus window %d: %w", windowID, err)
	}
	return nil
}

// OpenWindow asks the editor for a new window.
func (c *OSAClient) OpenWindow(ctx context.Context) error {
	_, err := c.runScript(ctx, openWindowScript(c.cfg))
	if err != nil {
		return fmt.Errorf("open %s window: %w", c.cfg.DisplayName, err)
	}
	return nil
}

// CloseWindow closes the window whose title matches exactly. Title-based
// matching avoids index drift between enumeration and the close call.
func (c *OSAClient) CloseWindow(ctx context.Context, title string) error {
	_, err := c.runScript(ctx, closeWindowScript(c.cfg, title))
	if err != nil {
		return fmt.Errorf("close window %q: %w", title, err)
	}
	return nil
}
