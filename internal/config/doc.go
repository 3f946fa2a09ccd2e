// Package config provides configuration for the interaction engine and
// its terminal host.
//
// Configuration is assembled in layers, later layers overriding earlier:
//
//  1. Built-in defaults (Default)
//  2. A configuration file, TOML or YAML chosen by extension
//  3. TACTILE_* environment variables
//
// The result is validated before it is returned. A Watcher reloads the
// file when it changes on disk and hands the new Config to subscribers;
// a file that fails to parse or validate is reported and the previous
// configuration stays in effect.
//
// # File Format
//
//	[history]
//	max_entries = 10
//
//	[swipe]
//	threshold = 100
//
//	[pull]
//	threshold = 80
//
//	[haptics]
//	enabled = true
//
// YAML files use the same keys.
package config
