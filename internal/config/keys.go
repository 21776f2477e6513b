package config

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// checkTOMLKeys rejects keys that go-toml accepted only by ignoring case.
func checkTOMLKeys(source string, data []byte) error {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return &ParseError{Path: source, Message: err.Error(), Err: err}
	}
	return checkKeys(source, "", raw, reflect.TypeOf(Config{}))
}

func checkKeys(source, prefix string, raw map[string]any, t reflect.Type) error {
	fields := make(map[string]reflect.Type, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("toml"), ",")
		fields[name] = f.Type
	}

	for _, key := range slices.Sorted(maps.Keys(raw)) {
		ft, ok := fields[key]
		if !ok {
			return &ParseError{
				Path:    source,
				Message: fmt.Sprintf("%s %q", ErrUnknownKey, prefix+key),
				Err:     ErrUnknownKey,
			}
		}
		if sub, ok := raw[key].(map[string]any); ok && ft.Kind() == reflect.Struct {
			if err := checkKeys(source, prefix+key+".", sub, ft); err != nil {
				return err
			}
		}
	}
	return nil
}
