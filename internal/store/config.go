package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
)

const (
	configFileName = "config.json"

	DefaultHoursPerDay = 8.0
	// DefaultCellWidth is how many px one terminal column stands for when
	// measuring swipes.
	DefaultCellWidth = 10
)

// GlobalConfig is ~/.timecard/config.json. Comments and trailing commas are
// accepted on read.
type GlobalConfig struct {
	// HoursPerDay is the daily target set by the hours wizard.
	HoursPerDay float64 `json:"hoursPerDay,omitempty"`

	// RequireLogin sends the editor to /login when no session is active.
	RequireLogin bool `json:"requireLogin,omitempty"`

	// TUI holds optional user preferences for the interactive TUI.
	TUI *TUIConfig `json:"tui,omitempty"`
}

type TUIConfig struct {
	// Theme is one of light|dark|auto.
	Theme string `json:"theme,omitempty"`
	// Glyphs selects the glyph set (e.g. "unicode", "ascii").
	Glyphs string `json:"glyphs,omitempty"`
	// CellWidth is the px width of one terminal column for swipe distances.
	CellWidth int `json:"cellWidth,omitempty"`
	// DeleteThreshold overrides the swipe-to-delete distance in px.
	DeleteThreshold int `json:"deleteThreshold,omitempty"`
}

func (c *GlobalConfig) EffectiveHoursPerDay() float64 {
	if c == nil || c.HoursPerDay <= 0 {
		return DefaultHoursPerDay
	}
	return c.HoursPerDay
}

func (c *GlobalConfig) EffectiveCellWidth() int {
	if c == nil || c.TUI == nil || c.TUI.CellWidth <= 0 {
		return DefaultCellWidth
	}
	return c.TUI.CellWidth
}

func (c *GlobalConfig) DeleteThreshold() int {
	if c == nil || c.TUI == nil {
		return 0
	}
	return c.TUI.DeleteThreshold
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.timecard).
	if v := strings.TrimSpace(os.Getenv("TIMECARD_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".timecard"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

func LoadConfig() (*GlobalConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(path)
}

func LoadConfigFile(path string) (*GlobalConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &GlobalConfig{}, nil
		}
		return nil, err
	}
	var cfg GlobalConfig
	if err := json.Unmarshal(jsonc.ToJSON(b), &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func SaveConfig(cfg *GlobalConfig) error {
	if cfg == nil {
		return errors.New("nil config")
	}
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	// Best-effort: keep the previous config around for recovery.
	if prev, err := os.ReadFile(path); err == nil && len(prev) > 0 {
		_ = atomicWriteFile(dir, "config.json.bak.*.tmp", path+".bak", prev, 0o644)
	}
	return atomicWriteFile(dir, "config.json.*.tmp", path, b, 0o600)
}
