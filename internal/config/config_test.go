package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// noFileEnv points the config-file lookup at a path that never exists so
// the developer's real config cannot leak into tests.
func noFileEnv(t *testing.T, extra ...string) []string {
	t.Helper()
	env := []string{envConfigFile + "=" + filepath.Join(t.TempDir(), "absent.toml")}
	return append(env, extra...)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, noFileEnv(t))
	if err != nil {
		t.Fatalf("LoadArgs returned error: %v", err)
	}
	if cfg.App.EditorID != "vscode" {
		t.Fatalf("default editor = %q, want vscode", cfg.App.EditorID)
	}
	if cfg.App.EventsFile != "/tmp/claude-code-events" {
		t.Fatalf("default events file = %q", cfg.App.EventsFile)
	}
	if cfg.App.PollInterval != 1500*time.Millisecond {
		t.Fatalf("default poll interval = %v", cfg.App.PollInterval)
	}
	if cfg.App.ClickDebounce != 200*time.Millisecond {
		t.Fatalf("default debounce = %v", cfg.App.ClickDebounce)
	}
	if cfg.App.ResetDelay != 150*time.Millisecond {
		t.Fatalf("default reset delay = %v", cfg.App.ResetDelay)
	}
	if cfg.App.AutoDismissDelay != 15*time.Second {
		t.Fatalf("default auto-dismiss = %v", cfg.App.AutoDismissDelay)
	}
	if !cfg.App.Notifications {
		t.Fatalf("notifications should default on")
	}
	if cfg.App.ShowFooter {
		t.Fatalf("footer should default off")
	}
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	env := noFileEnv(t,
		"EDITOR_TAB_SYNC_EDITOR=zed",
		"EDITOR_TAB_SYNC_POLL_MS=5000",
	)
	cfg, err := LoadArgs([]string{"--editor", "cursor", "--poll-ms", "800"}, env)
	if err != nil {
		t.Fatalf("LoadArgs returned error: %v", err)
	}
	if cfg.App.EditorID != "cursor" {
		t.Fatalf("flag must beat env, got %q", cfg.App.EditorID)
	}
	if cfg.App.PollInterval != 800*time.Millisecond {
		t.Fatalf("flag must beat env, got %v", cfg.App.PollInterval)
	}
}

func TestEnvironmentBeatsDefaults(t *testing.T) {
	env := noFileEnv(t,
		"EDITOR_TAB_SYNC_EDITOR=zed",
		"EDITOR_TAB_SYNC_NOTIFICATIONS=false",
	)
	cfg, err := LoadArgs(nil, env)
	if err != nil {
		t.Fatalf("LoadArgs returned error: %v", err)
	}
	if cfg.App.EditorID != "zed" {
		t.Fatalf("env editor = %q, want zed", cfg.App.EditorID)
	}
	if cfg.App.Notifications {
		t.Fatalf("env must be able to disable notifications")
	}
}

func TestConfigFileBeatsEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	file := "editor = \"cursor\"\npoll_ms = 900\nfooter = true\n"
	if err := os.WriteFile(path, []byte(file), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	env := []string{
		envConfigFile + "=" + path,
		"EDITOR_TAB_SYNC_EDITOR=zed",
	}
	cfg, err := LoadArgs(nil, env)
	if err != nil {
		t.Fatalf("LoadArgs returned error: %v", err)
	}
	if cfg.App.EditorID != "cursor" {
		t.Fatalf("file must beat env, got %q", cfg.App.EditorID)
	}
	if cfg.App.PollInterval != 900*time.Millisecond {
		t.Fatalf("file poll interval = %v", cfg.App.PollInterval)
	}
	if !cfg.App.ShowFooter {
		t.Fatalf("file must be able to enable the footer")
	}
}

func TestInvalidPollRejected(t *testing.T) {
	if _, err := LoadArgs([]string{"--poll-ms", "0"}, noFileEnv(t)); err == nil {
		t.Fatalf("poll-ms 0 must be rejected")
	}
	if _, err := LoadArgs([]string{"--debounce-ms", "-5"}, noFileEnv(t)); err == nil {
		t.Fatalf("negative debounce must be rejected")
	}
}

func TestValidateRejectsUnknownEditor(t *testing.T) {
	cfg, err := LoadArgs([]string{"--editor", "emacs"}, noFileEnv(t))
	if err != nil {
		t.Fatalf("LoadArgs returned error: %v", err)
	}
	if err := Validate(cfg); err == nil {
		t.Fatalf("unknown editor must fail validation")
	}
}

func TestValidateRejectsEmptyEventsFile(t *testing.T) {
	cfg, err := LoadArgs([]string{"--events-file", " "}, noFileEnv(t))
	if err != nil {
		t.Fatalf("LoadArgs returned error: %v", err)
	}
	if err := Validate(cfg); err == nil {
		t.Fatalf("blank events file must fail validation")
	}
}

func TestFlagsMapMirrorsResolvedValues(t *testing.T) {
	cfg, err := LoadArgs([]string{"--editor", "zed", "--trace"}, noFileEnv(t))
	if err != nil {
		t.Fatalf("LoadArgs returned error: %v", err)
	}
	if cfg.Flags["editor"] != "zed" {
		t.Fatalf("flags map editor = %q", cfg.Flags["editor"])
	}
	if cfg.Flags["trace"] != "true" {
		t.Fatalf("flags map trace = %q", cfg.Flags["trace"])
	}
	if !cfg.Logging.Trace {
		t.Fatalf("trace flag must reach logging config")
	}
}
