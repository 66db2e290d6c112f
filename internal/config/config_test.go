package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()
	assert.Equal(t, DefaultMaxHistory, cfg.Editor.MaxHistory)
	assert.Equal(t, DefaultMergeWindowMS, cfg.Editor.MergeWindowMS)
	assert.Equal(t, DefaultDragThresholdPx, cfg.Editor.DragThresholdPx)
	assert.Equal(t, DefaultNudgeStepPx, cfg.Editor.NudgeStepPx)
	assert.Equal(t, true, cfg.Editor.SystemClipboard)
	assert.Equal(t, "info", cfg.Logger.LogLevel)
}

func TestLoadFromFile_Missing(t *testing.T) {
	cfg, err := loadFromFile(filepath.Join(t.TempDir(), "nope.toml"), false)
	if err != nil {
		t.Fatalf("loadFromFile() error = %v", err)
	}
	if cfg != nil {
		t.Fatalf("loadFromFile() = %+v for missing file, want nil", cfg)
	}
}

func TestLoadFromFile_MergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[logger]
log_level = "debug"

[editor]
max_history = 100
merge_window_ms = 0
system_clipboard = true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	fileCfg, err := loadFromFile(path, false)
	if err != nil {
		t.Fatalf("loadFromFile() error = %v", err)
	}

	cfg := NewDefaultConfig()
	merge(cfg, fileCfg)
	cfg.validate()

	assert.Equal(t, "debug", cfg.Logger.LogLevel)
	assert.Equal(t, 100, cfg.Editor.MaxHistory)
	// Zero is a real setting here: it turns coalescing off.
	assert.Equal(t, 0, cfg.Editor.MergeWindowMS)
	// Omitted keys keep their defaults.
	assert.Equal(t, DefaultNudgeStepPx, cfg.Editor.NudgeStepPx)
}

func TestLoadFromFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[editor\nbroken"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := loadFromFile(path, false); err == nil {
		t.Fatalf("loadFromFile() expected parse error")
	}
}

func TestValidate_ResetsInvalidValues(t *testing.T) {
	cfg := &Config{}
	cfg.Editor.MaxHistory = -1
	cfg.Editor.MergeWindowMS = -5
	cfg.Editor.NudgeStepPx = 0
	cfg.validate()

	assert.Equal(t, DefaultMaxHistory, cfg.Editor.MaxHistory)
	assert.Equal(t, DefaultMergeWindowMS, cfg.Editor.MergeWindowMS)
	assert.Equal(t, DefaultNudgeStepPx, cfg.Editor.NudgeStepPx)
	assert.Equal(t, "info", cfg.Logger.LogLevel)
}
