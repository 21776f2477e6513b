package replay

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dshills/nescassist/internal/config"
)

// Errors returned when loading scripts.
var (
	ErrScriptNotFound = errors.New("script not found")
	ErrInvalidStep    = errors.New("invalid step")
)

// Script is a parsed keystroke script.
type Script struct {
	Name   string    `yaml:"name"`
	Text   string    `yaml:"text"`
	Caret  *int      `yaml:"caret"`
	Config yaml.Node `yaml:"config"`
	Steps  []Step    `yaml:"steps"`
}

// Step is one scripted action.
type Step struct {
	Type      *string      `yaml:"type"`
	Paste     *string      `yaml:"paste"`
	Move      *int         `yaml:"move"`
	Backspace *int         `yaml:"backspace"`
	Replace   *Replacement `yaml:"replace"`
	Undo      *int         `yaml:"undo"`
	Redo      *int         `yaml:"redo"`
	Reindent  *bool        `yaml:"reindent"`
	Expect    *string      `yaml:"expect"`
}

// Replacement is an edit made behind the assistant's back.
type Replacement struct {
	Offset int    `yaml:"offset"`
	Length int    `yaml:"length"`
	Text   string `yaml:"text"`
}

// Action returns the name of the step's action.
func (s Step) Action() string {
	names := s.actions()
	if len(names) != 1 {
		return ""
	}
	return names[0]
}

func (s Step) actions() []string {
	var names []string
	add := func(set bool, name string) {
		if set {
			names = append(names, name)
		}
	}
	add(s.Type != nil, "type")
	add(s.Paste != nil, "paste")
	add(s.Move != nil, "move")
	add(s.Backspace != nil, "backspace")
	add(s.Replace != nil, "replace")
	add(s.Undo != nil, "undo")
	add(s.Redo != nil, "redo")
	add(s.Reindent != nil, "reindent")
	add(s.Expect != nil, "expect")
	return names
}

// Parse decodes a script. source names the input in errors.
func Parse(source string, data []byte) (*Script, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var s Script
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, &config.ParseError{Path: source, Message: err.Error(), Err: err}
	}
	for i, step := range s.Steps {
		switch n := len(step.actions()); {
		case n == 0:
			return nil, fmt.Errorf("%s: step %d has no action: %w", source, i+1, ErrInvalidStep)
		case n > 1:
			return nil, fmt.Errorf("%s: step %d has %d actions: %w", source, i+1, n, ErrInvalidStep)
		}
	}
	return &s, nil
}

// Load reads and parses the script at path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrScriptNotFound)
		}
		return nil, fmt.Errorf("reading script %s: %w", path, err)
	}
	return Parse(path, data)
}

// ApplyConfig returns base overlaid with the script's config block.
func (s *Script) ApplyConfig(base *config.Config) (*config.Config, error) {
	cfg := base.Clone()
	if s.Config.IsZero() {
		return cfg, nil
	}
	if err := s.Config.Decode(cfg); err != nil {
		return nil, fmt.Errorf("script config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("script config: %w", err)
	}
	return cfg, nil
}
