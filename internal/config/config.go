package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	scruberrors "github.com/tessro/scrub/internal/errors"
)

// Load reads configuration from standard locations with environment overrides.
// Search order: ~/.scrubrc, $XDG_CONFIG_HOME/scrub/config.toml, ~/.config/scrub/config.toml
func Load() (*Config, error) {
	cfg := &Config{}

	// Try loading from file
	path := findConfigFile()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", scruberrors.ErrInvalidConfig, path, err)
		}
	}

	// Apply defaults, then environment variable overrides
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)

	return cfg, nil
}

// LoadFrom reads configuration from a specific file path.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", scruberrors.ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", scruberrors.ErrInvalidConfig, path, err)
	}
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)
	return cfg, nil
}

// Path returns the file Load would read, or the default location when
// none exists yet.
func Path() string {
	if p := findConfigFile(); p != "" {
		return p
	}
	return DefaultPath()
}

// DefaultPath returns ~/.scrubrc.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".scrubrc"
	}
	return filepath.Join(home, ".scrubrc")
}

// findConfigFile returns the first existing config file path.
func findConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	paths := []string{
		filepath.Join(home, ".scrubrc"),
	}

	// XDG_CONFIG_HOME or default
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}
	paths = append(paths, filepath.Join(xdgConfig, "scrub", "config.toml"))

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	// Playback
	if v := os.Getenv("SCRUB_PLAYBACK_TICK_INTERVAL"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Playback.TickInterval = i
		}
	}
	if v := os.Getenv("SCRUB_PLAYBACK_LOOP_DURATION"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Playback.LoopDuration = i
		}
	}
	if v := os.Getenv("SCRUB_PLAYBACK_STEP"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Playback.Step = f
		}
	}
	if v := os.Getenv("SCRUB_PLAYBACK_SPEED"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Playback.Speed = i
		}
	}
	if v := os.Getenv("SCRUB_PLAYBACK_DRAG_POLICY"); v != "" {
		cfg.Playback.DragPolicy = v
	}

	// Timeline
	if v := os.Getenv("SCRUB_TIMELINE_DATE_CHANGE"); v != "" {
		cfg.Timeline.DateChange = v
	}
	if v := os.Getenv("SCRUB_TIMELINE_ZOOM"); v != "" {
		cfg.Timeline.Zoom = v
	}
	if v := os.Getenv("SCRUB_TIMELINE_SEGMENTS"); v != "" {
		cfg.Timeline.Segments = v
	}

	// TUI
	if v := os.Getenv("SCRUB_TUI_THEME"); v != "" {
		cfg.TUI.Theme = v
	}
	if v := os.Getenv("SCRUB_TUI_CHANNEL"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.TUI.Channel = i
		}
	}

	// Log
	if v := os.Getenv("SCRUB_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("SCRUB_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}

type keyKind int

const (
	kindString keyKind = iota
	kindInt
	kindFloat
)

// settable lists the keys Set accepts.
var settable = map[string]keyKind{
	"playback.tick_interval": kindInt,
	"playback.loop_duration": kindInt,
	"playback.step":          kindFloat,
	"playback.speed":         kindInt,
	"playback.drag_policy":   kindString,
	"timeline.date_change":   kindString,
	"timeline.zoom":          kindString,
	"timeline.segments":      kindString,
	"tui.theme":              kindString,
	"tui.channel":            kindInt,
	"log.level":              kindString,
	"log.file":               kindString,
}

// Keys returns the keys Set accepts, sorted.
func Keys() []string {
	keys := make([]string, 0, len(settable))
	for k := range settable {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Encode writes cfg as TOML with a header comment.
func Encode(w io.Writer, v any) error {
	_, _ = fmt.Fprintln(w, "# Scrub Configuration")
	_, _ = fmt.Fprintln(w, "# https://github.com/tessro/scrub")
	_, _ = fmt.Fprintln(w, "")

	encoder := toml.NewEncoder(w)
	encoder.Indent = "  "
	return encoder.Encode(v)
}

// Write saves v to path, creating the directory if needed.
func Write(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	if err := Encode(f, v); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write config: %w", err)
	}
	return f.Close()
}

// Set updates one key in the file at path, keeping every other value as
// written. The result must still validate.
func Set(path, key, value string) error {
	kind, ok := settable[key]
	if !ok {
		return fmt.Errorf("%w: unknown key %q (valid: %s)", scruberrors.ErrInvalidConfig, key, strings.Join(Keys(), ", "))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", scruberrors.ErrConfigNotFound, path)
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	var raw map[string]any
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return fmt.Errorf("%w: %v", scruberrors.ErrInvalidConfig, err)
	}
	if raw == nil {
		raw = make(map[string]any)
	}

	section, field, _ := strings.Cut(key, ".")
	sectionMap, ok := raw[section].(map[string]any)
	if !ok {
		sectionMap = make(map[string]any)
		raw[section] = sectionMap
	}

	switch kind {
	case kindInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: value must be an integer for %s", scruberrors.ErrInvalidConfig, key)
		}
		sectionMap[field] = int64(i)
	case kindFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: value must be a number for %s", scruberrors.ErrInvalidConfig, key)
		}
		sectionMap[field] = f
	default:
		sectionMap[field] = value
	}

	// Round-trip through the schema so bad values never reach disk.
	var buf strings.Builder
	if err := toml.NewEncoder(&buf).Encode(raw); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	var check Config
	if _, err := toml.Decode(buf.String(), &check); err != nil {
		return fmt.Errorf("%w: %v", scruberrors.ErrInvalidConfig, err)
	}
	if err := check.Validate(); err != nil {
		return err
	}

	return Write(path, raw)
}
