package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/mtakeda/editor-tab-sync/internal/app"
	"github.com/mtakeda/editor-tab-sync/internal/editor"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

// fileConfig is the optional TOML config file. Values sit between the
// environment and explicit flags: flags win, then the file, then env.
type fileConfig struct {
	Editor         string `toml:"editor"`
	EventsFile     string `toml:"events_file"`
	OrderFile      string `toml:"order_file"`
	PollMs         int    `toml:"poll_ms"`
	DebounceMs     int    `toml:"debounce_ms"`
	ResetDelayMs   int    `toml:"reset_delay_ms"`
	AutoDismissSec int    `toml:"auto_dismiss_sec"`
	Notifications  *bool  `toml:"notifications"`
	Footer         *bool  `toml:"footer"`
	LogFile        string `toml:"log_file"`
	Trace          *bool  `toml:"trace"`
}

const (
	envEditor      = "EDITOR_TAB_SYNC_EDITOR"
	envEventsFile  = "EDITOR_TAB_SYNC_EVENTS_FILE"
	envOrderFile   = "EDITOR_TAB_SYNC_ORDER_FILE"
	envPollMs      = "EDITOR_TAB_SYNC_POLL_MS"
	envNotify      = "EDITOR_TAB_SYNC_NOTIFICATIONS"
	envFooter      = "EDITOR_TAB_SYNC_FOOTER"
	envTrace       = "EDITOR_TAB_SYNC_TRACE"
	envLogFile     = "EDITOR_TAB_SYNC_LOG_FILE"
	envConfigFile  = "EDITOR_TAB_SYNC_CONFIG"
	defaultEvents  = "/tmp/claude-code-events"
	defaultPollMs  = 1500
	defaultEditor  = "vscode"
	defaultConfigN = "editor-tab-sync/config.toml"
	defaultOrderN  = "editor-tab-sync/order.yaml"
)

// Load parses configuration from CLI arguments, the optional config file
// and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	file, err := loadFile(envOrDefault(env, envConfigFile, defaultConfigPath()))
	if err != nil {
		return Config{}, err
	}

	fs := flag.NewFlagSet("editor-tab-sync", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	editorID := fs.String("editor", pickString(file.Editor, envOrDefault(env, envEditor, defaultEditor)), "editor to sync tabs for (vscode, cursor, zed)")
	eventsFile := fs.String("events-file", pickString(file.EventsFile, envOrDefault(env, envEventsFile, defaultEvents)), "path to the session events file")
	orderFile := fs.String("order-file", pickString(file.OrderFile, envOrDefault(env, envOrderFile, defaultOrderPath())), "path to the persisted tab-order file")
	pollMs := fs.Int("poll-ms", pickInt(file.PollMs, envOrInt(env, envPollMs, defaultPollMs)), "window poll interval in milliseconds")
	debounceMs := fs.Int("debounce-ms", pickInt(file.DebounceMs, 200), "focus-echo debounce window in milliseconds")
	resetMs := fs.Int("reset-delay-ms", pickInt(file.ResetDelayMs, 150), "badge reset sequencing delay in milliseconds")
	dismissSec := fs.Int("auto-dismiss-sec", pickInt(file.AutoDismissSec, 15), "waiting-badge auto-dismiss delay in seconds")
	notify := fs.Bool("notifications", pickBool(file.Notifications, envOrBool(env, envNotify, true)), "send desktop notifications when a session completes")
	footer := fs.Bool("footer", pickBool(file.Footer, envOrBool(env, envFooter, false)), "enable footer hint row (disabled by default)")
	trace := fs.Bool("trace", pickBool(file.Trace, envOrBool(env, envTrace, false)), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", pickString(file.LogFile, envOrDefault(env, envLogFile, "")), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *pollMs <= 0 {
		return Config{}, fmt.Errorf("poll-ms must be > 0 (got %d)", *pollMs)
	}
	if *debounceMs <= 0 || *resetMs <= 0 || *dismissSec <= 0 {
		return Config{}, errors.New("debounce-ms, reset-delay-ms and auto-dismiss-sec must be > 0")
	}

	cfg := Config{
		App: app.Config{
			EditorID:         *editorID,
			EventsFile:       *eventsFile,
			OrderFile:        *orderFile,
			PollInterval:     time.Duration(*pollMs) * time.Millisecond,
			ClickDebounce:    time.Duration(*debounceMs) * time.Millisecond,
			ResetDelay:       time.Duration(*resetMs) * time.Millisecond,
			AutoDismissDelay: time.Duration(*dismissSec) * time.Second,
			Notifications:    *notify,
			ShowFooter:       *footer,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"editor":         *editorID,
			"eventsFile":     *eventsFile,
			"orderFile":      *orderFile,
			"pollMs":         strconv.Itoa(*pollMs),
			"debounceMs":     strconv.Itoa(*debounceMs),
			"resetDelayMs":   strconv.Itoa(*resetMs),
			"autoDismissSec": strconv.Itoa(*dismissSec),
			"notifications":  strconv.FormatBool(*notify),
			"footer":         strconv.FormatBool(*footer),
			"trace":          strconv.FormatBool(*trace),
			"logFile":        *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if _, ok := editor.ByID(cfg.App.EditorID); !ok {
		return fmt.Errorf("unsupported editor %q", cfg.App.EditorID)
	}
	if strings.TrimSpace(cfg.App.EventsFile) == "" {
		return errors.New("events-file must not be empty")
	}
	return nil
}

func loadFile(path string) (fileConfig, error) {
	var file fileConfig
	if strings.TrimSpace(path) == "" {
		return file, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return file, nil
		}
		return file, fmt.Errorf("read config file: %w", err)
	}
	if err := toml.Unmarshal(data, &file); err != nil {
		return file, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return file, nil
}

func defaultConfigPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, defaultConfigN)
	}
	return ""
}

func defaultOrderPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, defaultOrderN)
	}
	return "order.yaml"
}

func pickString(fromFile, fallback string) string {
	if strings.TrimSpace(fromFile) != "" {
		return fromFile
	}
	return fallback
}

func pickInt(fromFile, fallback int) int {
	if fromFile > 0 {
		return fromFile
	}
	return fallback
}

func pickBool(fromFile *bool, fallback bool) bool {
	if fromFile != nil {
		return *fromFile
	}
	return fallback
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
