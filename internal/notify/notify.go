// Package notify posts desktop notifications. Requests are fire-and-forget:
// delivery failures are logged and never surfaced to the state machine.
package notify

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/mtakeda/editor-tab-sync/internal/logging"
	"github.com/mtakeda/editor-tab-sync/internal/logging/events"
)

const sendTimeout = 5 * time.Second

// Sender posts one notification per call.
type Sender interface {
	Send(title, body, projectPath string)
}

// OSASender delivers notifications through osascript.
type OSASender struct {
	run func(ctx context.Context, script string) error
}

// NewOSASender returns the default desktop sender.
func NewOSASender() *OSASender {
	return &OSASender{run: runOsascript}
}

func runOsascript(ctx context.Context, script string) error {
	if err := exec.CommandContext(ctx, "osascript", "-e", script).Run(); err != nil {
		return fmt.Errorf("osascript: %w", err)
	}
	return nil
}

// Send posts the notification in the background and returns immediately.
func (s *OSASender) Send(title, body, projectPath string) {
	events.Status.Notify(projectPath)
	script := fmt.Sprintf("display notification %q with title %q sound name %q",
		body, title, "default")
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()
		if err := s.run(ctx, script); err != nil {
			logging.Error(fmt.Errorf("send notification for %s: %w", projectPath, err))
		}
	}()
}
