package config

import (
	"fmt"
	"strconv"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "NESCASSIST_"

// envMapping maps environment variables to setting paths.
var envMapping = map[string]string{
	EnvPrefix + "TAB_SIZE":               "editor.tabSize",
	EnvPrefix + "INSERT_SPACES":          "editor.insertSpaces",
	EnvPrefix + "SMART_INSERT":           "assist.smartInsert",
	EnvPrefix + "CLOSE_BRACKETS":         "assist.closeBrackets",
	EnvPrefix + "CLOSE_ANGULAR_BRACKETS": "assist.closeAngularBrackets",
	EnvPrefix + "CLOSE_STRINGS":          "assist.closeStrings",
	EnvPrefix + "CLOSE_BRACES":           "assist.closeBraces",
	EnvPrefix + "PASTE_CONTEXT_LINES":    "assist.pasteContextLines",
	EnvPrefix + "LOG_LEVEL":              "log.level",
}

// EnvVars returns the recognized environment variables and the settings
// they override.
func EnvVars() map[string]string {
	out := make(map[string]string, len(envMapping))
	for k, v := range envMapping {
		out[k] = v
	}
	return out
}

// ApplyEnv overrides settings of cfg from the environment seen through
// lookup. Empty values are treated as set.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	for env, path := range envMapping {
		val, ok := lookup(env)
		if !ok {
			continue
		}
		if err := cfg.set(path, val); err != nil {
			return &ParseError{Path: env, Message: err.Error(), Err: err}
		}
	}
	return nil
}

// set assigns the setting at path from its string form.
func (c *Config) set(path, val string) error {
	switch path {
	case "editor.tabSize":
		return setInt(&c.Editor.TabSize, val)
	case "editor.insertSpaces":
		return setBool(&c.Editor.InsertSpaces, val)
	case "assist.smartInsert":
		return setBool(&c.Assist.SmartInsert, val)
	case "assist.closeBrackets":
		return setBool(&c.Assist.CloseBrackets, val)
	case "assist.closeAngularBrackets":
		return setBool(&c.Assist.CloseAngularBrackets, val)
	case "assist.closeStrings":
		return setBool(&c.Assist.CloseStrings, val)
	case "assist.closeBraces":
		return setBool(&c.Assist.CloseBraces, val)
	case "assist.pasteContextLines":
		return setInt(&c.Assist.PasteContextLines, val)
	case "log.level":
		c.Log.Level = val
		return nil
	}
	return fmt.Errorf("unknown setting %q", path)
}

func setInt(dst *int, val string) error {
	n, err := strconv.Atoi(val)
	if err != nil {
		return err
	}
	*dst = n
	return nil
}

func setBool(dst *bool, val string) error {
	b, err := strconv.ParseBool(val)
	if err != nil {
		return err
	}
	*dst = b
	return nil
}
