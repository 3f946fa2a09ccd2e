package config

import "time"

// Config is the complete configuration.
type Config struct {
	History HistoryConfig `toml:"history" yaml:"history"`
	Swipe   SwipeConfig   `toml:"swipe" yaml:"swipe"`
	Pull    PullConfig    `toml:"pull" yaml:"pull"`
	Haptics HapticsConfig `toml:"haptics" yaml:"haptics"`
	Input   InputConfig   `toml:"input" yaml:"input"`
	Log     LogConfig     `toml:"log" yaml:"log"`
	Refresh RefreshConfig `toml:"refresh" yaml:"refresh"`

	// Keys rebinds actions to key specifications, for example
	// undo = ["Ctrl+Z", "u"]. Actions not listed keep their defaults.
	Keys map[string][]string `toml:"keys,omitempty" yaml:"keys,omitempty"`
}

// HistoryConfig configures the undo/redo stack.
type HistoryConfig struct {
	// MaxEntries bounds the number of undo entries.
	MaxEntries int `toml:"max_entries" yaml:"max_entries"`
}

// SwipeConfig configures the swipe recognizer.
type SwipeConfig struct {
	// Threshold is the horizontal travel, in gesture units, that commits a swipe.
	Threshold float64 `toml:"threshold" yaml:"threshold"`
}

// PullConfig configures pull-to-refresh.
type PullConfig struct {
	// Threshold is the vertical travel, in gesture units, that commits a refresh.
	Threshold float64 `toml:"threshold" yaml:"threshold"`
}

// HapticsConfig configures feedback on committed gestures.
type HapticsConfig struct {
	Enabled bool `toml:"enabled" yaml:"enabled"`
}

// InputConfig configures the mapping from terminal cells to gesture units.
type InputConfig struct {
	CellWidth   float64 `toml:"cell_width" yaml:"cell_width"`
	CellHeight  float64 `toml:"cell_height" yaml:"cell_height"`
	Slop        int     `toml:"slop" yaml:"slop"`
	ScrollLines int     `toml:"scroll_lines" yaml:"scroll_lines"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level" yaml:"level"`
	// File is the log file path. Empty disables logging.
	File string `toml:"file" yaml:"file"`
	// MaxSizeMB is the size at which the log file is rotated.
	MaxSizeMB int `toml:"max_size_mb" yaml:"max_size_mb"`
	// MaxBackups is the number of rotated files kept.
	MaxBackups int `toml:"max_backups" yaml:"max_backups"`
	// MaxAgeDays is how long rotated files are kept.
	MaxAgeDays int `toml:"max_age_days" yaml:"max_age_days"`
}

// RefreshConfig configures where pull-to-refresh reloads content from.
type RefreshConfig struct {
	// Pages is a pages file, plain text or JSON.
	Pages string `toml:"pages" yaml:"pages"`
	// JSONPath selects page bodies in a JSON pages file.
	JSONPath string `toml:"json_path" yaml:"json_path"`
	// Script is a Lua script defining refresh(). Takes precedence over Pages.
	Script string `toml:"script" yaml:"script"`
	// Timeout bounds a single refresh.
	Timeout Duration `toml:"timeout" yaml:"timeout"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		History: HistoryConfig{MaxEntries: 10},
		Swipe:   SwipeConfig{Threshold: 100},
		Pull:    PullConfig{Threshold: 80},
		Haptics: HapticsConfig{Enabled: true},
		Input: InputConfig{
			CellWidth:   10,
			CellHeight:  20,
			Slop:        1,
			ScrollLines: 3,
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  1,
			MaxBackups: 2,
			MaxAgeDays: 30,
		},
		Refresh: RefreshConfig{
			JSONPath: "pages.#.body",
			Timeout:  Duration(10 * time.Second),
		},
	}
}
