// Package config holds the settings of the code intelligence engine.
//
// Settings are resolved in three layers, later layers overriding earlier
// ones:
//
//  1. Built-in defaults (Default)
//  2. A TOML file, plus any files it lists under "include"
//  3. CODEINTEL_* environment variables
//
// A file looks like:
//
//	[log]
//	level = "debug"
//
//	[highlight]
//	theme = "dracula"
//	syncThreshold = 5000
//	debounceMs = 100
//
//	[indent]
//	tabWidth = 4
//
//	[languages.python]
//	indentSize = 2
//
//	languageDirs = ["~/.config/codeintel/languages"]
//
// Environment variables name a section and a setting:
// CODEINTEL_HIGHLIGHT_SYNC_THRESHOLD sets highlight.syncThreshold.
//
// # Sub-packages
//
//   - loader: TOML and environment sources
//   - watcher: reloads the file when it changes on disk
package config
