// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/forma-editor/forma/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger logger.Config `toml:"logger"` // Embed logger config under [logger] table
	Editor EditorConfig  `toml:"editor"` // Editor-specific settings
}

// EditorConfig holds editor-specific settings.
type EditorConfig struct {
	MaxHistory      int  `toml:"max_history"`       // undo stack depth
	MergeWindowMS   int  `toml:"merge_window_ms"`   // coalescing window, 0 disables
	DragThresholdPx int  `toml:"drag_threshold_px"` // below this a drag is a click
	NudgeStepPx     int  `toml:"nudge_step_px"`
	SystemClipboard bool `toml:"system_clipboard"`
	StatusBarHeight int  `toml:"status_bar_height"`
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.Config{
			LogLevel:    "info",
			LogFilePath: "", // Empty means default path logic in logger.Init applies
		},
		Editor: EditorConfig{
			MaxHistory:      DefaultMaxHistory,
			MergeWindowMS:   DefaultMergeWindowMS,
			DragThresholdPx: DefaultDragThresholdPx,
			NudgeStepPx:     DefaultNudgeStepPx,
			SystemClipboard: SystemClipboard,
			StatusBarHeight: StatusBarHeight,
		},
	}
}

// loadFromFile attempts to load configuration from a TOML file. A missing
// file is not an error; defaults apply.
func loadFromFile(filePath string, verbose bool) (*Config, error) {
	cfg := &Config{} // Start empty, merged into defaults by the caller
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		if verbose {
			logger.Debugf("Config file not found: %s", filePath)
		}
		return nil, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	if len(metadata.Undecoded()) > 0 && verbose {
		logger.Warnf("Config file '%s': Unrecognized keys: %v", filePath, metadata.Undecoded())
	}
	return cfg, nil
}

// merge copies file-provided settings over cfg, leaving defaults in place
// for anything the file omits or sets to an out-of-range zero value.
func merge(cfg, fileCfg *Config) {
	if fileCfg.Logger.LogLevel != "" {
		cfg.Logger = fileCfg.Logger
	}
	if fileCfg.Editor.MaxHistory > 0 {
		cfg.Editor.MaxHistory = fileCfg.Editor.MaxHistory
	}
	if fileCfg.Editor.MergeWindowMS >= 0 { // 0 is meaningful: coalescing off
		cfg.Editor.MergeWindowMS = fileCfg.Editor.MergeWindowMS
	}
	if fileCfg.Editor.DragThresholdPx >= 0 {
		cfg.Editor.DragThresholdPx = fileCfg.Editor.DragThresholdPx
	}
	if fileCfg.Editor.NudgeStepPx > 0 {
		cfg.Editor.NudgeStepPx = fileCfg.Editor.NudgeStepPx
	}
	if fileCfg.Editor.StatusBarHeight > 0 {
		cfg.Editor.StatusBarHeight = fileCfg.Editor.StatusBarHeight
	}
	cfg.Editor.SystemClipboard = fileCfg.Editor.SystemClipboard
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Editor.MaxHistory <= 0 {
		c.Editor.MaxHistory = defaults.Editor.MaxHistory
	}
	if c.Editor.MergeWindowMS < 0 {
		c.Editor.MergeWindowMS = defaults.Editor.MergeWindowMS
	}
	if c.Editor.DragThresholdPx < 0 {
		c.Editor.DragThresholdPx = defaults.Editor.DragThresholdPx
	}
	if c.Editor.NudgeStepPx <= 0 {
		c.Editor.NudgeStepPx = defaults.Editor.NudgeStepPx
	}
	if c.Editor.StatusBarHeight <= 0 {
		c.Editor.StatusBarHeight = defaults.Editor.StatusBarHeight
	}
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
}

// LoadConfig orchestrates loading defaults, file, applying flags, and
// validation. It should be called only once, typically from main.
func LoadConfig(configFilePath string, flags *Flags) (*Config, error) {
	loadOnce.Do(func() {
		// During initial load, avoid logging as logger isn't initialized yet
		verbose := false

		cfg := NewDefaultConfig()

		effectivePath := configFilePath
		if effectivePath == "" { // If flag not set, try default location
			configDir, err := os.UserConfigDir()
			if err == nil {
				effectivePath = filepath.Join(configDir, ConfigDirName, DefaultConfigFileName)
			} else {
				effectivePath = "" // Cannot load default path
			}
		}

		if effectivePath != "" {
			fileCfg, err := loadFromFile(effectivePath, verbose)
			if err != nil {
				loadErr = err
			} else if fileCfg != nil {
				merge(cfg, fileCfg)
			}
		}

		if flags != nil {
			flags.ApplyOverrides(cfg, verbose)
		}

		cfg.validate()
		loadedConfig = cfg
	})

	return loadedConfig, loadErr
}

// Get returns the loaded application configuration. Panics if LoadConfig wasn't called.
func Get() *Config {
	if loadedConfig == nil {
		panic("config.Get() called before config.LoadConfig()")
	}
	return loadedConfig
}
