package notify

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestSendBuildsNotificationScript(t *testing.T) {
	scripts := make(chan string, 1)
	s := &OSASender{run: func(ctx context.Context, script string) error {
		scripts <- script
		return nil
	}}

	s.Send("alpha", "alpha is waiting for input", "/Users/dev/alpha")

	select {
	case script := <-scripts:
		if !strings.Contains(script, "display notification") {
			t.Fatalf("script missing notification command: %s", script)
		}
		if !strings.Contains(script, `"alpha is waiting for input"`) {
			t.Fatalf("script missing body: %s", script)
		}
		if !strings.Contains(script, `"alpha"`) {
			t.Fatalf("script missing title: %s", script)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Send never invoked the runner")
	}
}
