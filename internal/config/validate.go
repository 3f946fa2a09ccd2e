package config

import (
	"errors"
	"strings"
)

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}

// Validate checks every setting and returns all failures joined.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, path, msg string, v any) {
		if !ok {
			errs = append(errs, &ValidationError{Path: path, Message: msg, Value: v})
		}
	}

	check(c.History.MaxEntries > 0, "history.max_entries", "must be positive", c.History.MaxEntries)
	check(c.Swipe.Threshold > 0, "swipe.threshold", "must be positive", c.Swipe.Threshold)
	check(c.Pull.Threshold > 0, "pull.threshold", "must be positive", c.Pull.Threshold)
	check(c.Input.CellWidth > 0, "input.cell_width", "must be positive", c.Input.CellWidth)
	check(c.Input.CellHeight > 0, "input.cell_height", "must be positive", c.Input.CellHeight)
	check(c.Input.Slop >= 0, "input.slop", "must not be negative", c.Input.Slop)
	check(c.Input.ScrollLines > 0, "input.scroll_lines", "must be positive", c.Input.ScrollLines)
	check(logLevels[strings.ToLower(c.Log.Level)], "log.level", "must be debug, info, warn or error", c.Log.Level)
	check(c.Log.MaxSizeMB > 0, "log.max_size_mb", "must be positive", c.Log.MaxSizeMB)
	check(c.Log.MaxBackups >= 0, "log.max_backups", "must not be negative", c.Log.MaxBackups)
	check(c.Log.MaxAgeDays >= 0, "log.max_age_days", "must not be negative", c.Log.MaxAgeDays)
	check(c.Refresh.Timeout >= 0, "refresh.timeout", "must not be negative", c.Refresh.Timeout)

	return errors.Join(errs...)
}
