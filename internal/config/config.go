package config

import (
	"fmt"
	"strings"
)

// Defaults.
const (
	DefaultTabSize           = 4
	DefaultPasteContextLines = 100
	DefaultLogLevel          = "info"

	maxTabSize = 16
)

// Config holds every setting of the assistant.
type Config struct {
	Editor EditorConfig `toml:"editor" yaml:"editor"`
	Assist AssistConfig `toml:"assist" yaml:"assist"`
	Log    LogConfig    `toml:"log" yaml:"log"`
}

// EditorConfig holds indentation settings.
type EditorConfig struct {
	// TabSize is the number of columns a tab advances to.
	TabSize int `toml:"tabSize" yaml:"tabSize"`

	// InsertSpaces indents with spaces instead of tabs.
	InsertSpaces bool `toml:"insertSpaces" yaml:"insertSpaces"`
}

// AssistConfig switches the individual typing aids.
type AssistConfig struct {
	// SmartInsert enables closing-character insertion altogether.
	SmartInsert bool `toml:"smartInsert" yaml:"smartInsert"`

	// CloseBrackets closes ( and [.
	CloseBrackets bool `toml:"closeBrackets" yaml:"closeBrackets"`

	// CloseAngularBrackets closes < of interface type arguments.
	CloseAngularBrackets bool `toml:"closeAngularBrackets" yaml:"closeAngularBrackets"`

	// CloseStrings closes ' and ".
	CloseStrings bool `toml:"closeStrings" yaml:"closeStrings"`

	// CloseBraces completes a block when a line break follows {.
	CloseBraces bool `toml:"closeBraces" yaml:"closeBraces"`

	// PasteContextLines caps how many lines before a paste are scanned.
	PasteContextLines int `toml:"pasteContextLines" yaml:"pasteContextLines"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is one of "debug", "info", "warn", "error".
	Level string `toml:"level" yaml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			TabSize: DefaultTabSize,
		},
		Assist: AssistConfig{
			SmartInsert:          true,
			CloseBrackets:        true,
			CloseAngularBrackets: true,
			CloseStrings:         true,
			CloseBraces:          true,
			PasteContextLines:    DefaultPasteContextLines,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// Clone returns a copy of c.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Validate checks every setting and returns the first problem found.
func (c *Config) Validate() error {
	if c.Editor.TabSize < 1 || c.Editor.TabSize > maxTabSize {
		return &ValidationError{
			Path:    "editor.tabSize",
			Value:   c.Editor.TabSize,
			Message: fmt.Sprintf("must be between 1 and %d", maxTabSize),
		}
	}
	if c.Assist.PasteContextLines < 1 {
		return &ValidationError{
			Path:    "assist.pasteContextLines",
			Value:   c.Assist.PasteContextLines,
			Message: "must be positive",
		}
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{
			Path:    "log.level",
			Value:   c.Log.Level,
			Message: "must be one of debug, info, warn, error",
		}
	}
	return nil
}
