package config

import (
	"sort"
	"strconv"
	"strings"
)

// EnvPrefix is the prefix of all configuration environment variables.
const EnvPrefix = "TACTILE_"

type envSetter func(cfg *Config, value string) error

var envMapping = map[string]envSetter{
	"HISTORY_MAX":     intSetter(func(c *Config) *int { return &c.History.MaxEntries }),
	"SWIPE_THRESHOLD": floatSetter(func(c *Config) *float64 { return &c.Swipe.Threshold }),
	"PULL_THRESHOLD":  floatSetter(func(c *Config) *float64 { return &c.Pull.Threshold }),
	"HAPTICS":         boolSetter(func(c *Config) *bool { return &c.Haptics.Enabled }),
	"LOG_LEVEL":       stringSetter(func(c *Config) *string { return &c.Log.Level }),
	"LOG_FILE":        stringSetter(func(c *Config) *string { return &c.Log.File }),
	"LOG_MAX_SIZE":    intSetter(func(c *Config) *int { return &c.Log.MaxSizeMB }),
	"LOG_MAX_BACKUPS": intSetter(func(c *Config) *int { return &c.Log.MaxBackups }),
	"LOG_MAX_AGE":     intSetter(func(c *Config) *int { return &c.Log.MaxAgeDays }),
	"REFRESH_PAGES":   stringSetter(func(c *Config) *string { return &c.Refresh.Pages }),
	"REFRESH_SCRIPT":  stringSetter(func(c *Config) *string { return &c.Refresh.Script }),
	"REFRESH_TIMEOUT": func(c *Config, v string) error { return c.Refresh.Timeout.UnmarshalText([]byte(v)) },
}

// EnvVars returns the sorted names of the supported environment variables.
func EnvVars() []string {
	names := make([]string, 0, len(envMapping))
	for k := range envMapping {
		names = append(names, EnvPrefix+k)
	}
	sort.Strings(names)
	return names
}

// applyEnv overrides cfg with any set TACTILE_* variables.
func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if lookup == nil {
		return nil
	}
	for suffix, set := range envMapping {
		name := EnvPrefix + suffix
		v, ok := lookup(name)
		if !ok {
			continue
		}
		if err := set(cfg, strings.TrimSpace(v)); err != nil {
			return &ParseError{Path: "$" + name, Message: err.Error(), Err: err}
		}
	}
	return nil
}

func intSetter(field func(*Config) *int) envSetter {
	return func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*field(c) = n
		return nil
	}
}

func floatSetter(field func(*Config) *float64) envSetter {
	return func(c *Config, v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		*field(c) = f
		return nil
	}
}

func boolSetter(field func(*Config) *bool) envSetter {
	return func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		*field(c) = b
		return nil
	}
}

func stringSetter(field func(*Config) *string) envSetter {
	return func(c *Config, v string) error {
		*field(c) = v
		return nil
	}
}
