// Package config loads the assistant configuration.
//
// Settings come from three places, later ones overriding earlier ones:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← NESCASSIST_TAB_SIZE, ...
//	├─────────────────────────────┤
//	│  2. Config File             │  ← .nescassist.toml or .nescassist.yaml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │
//	└─────────────────────────────┘
//
// A config file holds any subset of the settings:
//
//	[editor]
//	tabSize = 4
//	insertSpaces = false
//
//	[assist]
//	closeBrackets = true
//	closeStrings = false
//
//	[log]
//	level = "debug"
//
// Watch reloads a config file whenever it changes on disk.
package config
