package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestLoadConfig_MissingFileIsEmpty(t *testing.T) {
	t.Setenv("TIMECARD_CONFIG_DIR", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got := cfg.EffectiveHoursPerDay(); got != DefaultHoursPerDay {
		t.Fatalf("expected default hours %v, got %v", DefaultHoursPerDay, got)
	}
	if got := cfg.EffectiveCellWidth(); got != DefaultCellWidth {
		t.Fatalf("expected default cell width %d, got %d", DefaultCellWidth, got)
	}
}

func TestLoadConfig_AcceptsComments(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TIMECARD_CONFIG_DIR", dir)

	raw := `{
  // daily target from the wizard
  "hoursPerDay": 7.5,
  "requireLogin": true,
  "tui": {
    "theme": "light", /* forced */
    "cellWidth": 12,
  },
}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.HoursPerDay != 7.5 || !cfg.RequireLogin {
		t.Fatalf("unexpected config: %#v", cfg)
	}
	if cfg.TUI == nil || cfg.TUI.Theme != "light" || cfg.EffectiveCellWidth() != 12 {
		t.Fatalf("unexpected tui config: %#v", cfg.TUI)
	}
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TIMECARD_CONFIG_DIR", dir)
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{"hoursPerDay": "eight"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestSaveConfig_KeepsBackup(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TIMECARD_CONFIG_DIR", dir)

	if err := SaveConfig(&GlobalConfig{HoursPerDay: 6}); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	if err := SaveConfig(&GlobalConfig{HoursPerDay: 7}); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.HoursPerDay != 7 {
		t.Fatalf("expected 7 hours, got %v", cfg.HoursPerDay)
	}
	bak, err := LoadConfigFile(filepath.Join(dir, "config.json.bak"))
	if err != nil {
		t.Fatalf("load backup: %v", err)
	}
	if bak.HoursPerDay != 6 {
		t.Fatalf("expected backup to hold previous config, got %v", bak.HoursPerDay)
	}
}

func TestSaveConfig_ConcurrentWriters_DoesNotCorruptConfig(t *testing.T) {
	t.Setenv("TIMECARD_CONFIG_DIR", t.TempDir())

	const n = 32
	errCh := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := SaveConfig(&GlobalConfig{HoursPerDay: float64(i%24 + 1)}); err != nil {
				errCh <- fmt.Errorf("writer %d: %w", i, err)
			}
		}(i)
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Errorf("concurrent SaveConfig: %v", err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig after concurrent writes: %v", err)
	}
	if cfg.HoursPerDay < 1 || cfg.HoursPerDay > 24 {
		t.Fatalf("unexpected hours after concurrent writes: %v", cfg.HoursPerDay)
	}
}
