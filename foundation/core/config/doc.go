// File: doc.go
// Title: Configuration Management Package Documentation
// Description: Package config loads TOML or YAML settings, overlays
//              environment variables and binds sections onto structs.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation with TOML/YAML support
// - 2026-10-19 v0.2.0: Reduced to the loading, overlay and binding features
//                      used by the cstr tool

/*
Package config provides configuration management for the cstr tool.

Key Features:
  • TOML and YAML files with format detection by extension
  • Environment overrides (prefix CSTR, e.g. CSTR_SPLIT_DELIMITER)
  • Defaults merged per section
  • Declarative validation rules
  • Struct binding with `config` tags and nested sections
  • Thread-safe access

# Loading

	cfg, err := mdwconfig.LoadWithOptions("cstr.toml", mdwconfig.LoadOptions{
		EnvPrefix: "CSTR",
		Defaults: map[string]interface{}{
			"split": map[string]interface{}{"delimiter": ",", "max_tokens": -1},
		},
	})

	delim := cfg.GetString("split.delimiter", ",")
	limit := cfg.GetInt("split.max_tokens", -1)

# Discovery

Discover searches the working directory, the user config directory
(~/.config/cstr) and ~/.cstr for cstr.toml, cstr.yaml or config.toml:

	cfg, err := mdwconfig.Discover(mdwconfig.DefaultDiscoveryOptions())

# Validation

	result := cfg.Validate(mdwconfig.ValidationRules{
		"unit.element": {Type: "string", OneOf: []string{"byte", "rune", "utf16"}},
		"split.max_tokens": {Type: "int", Min: -1},
	})
	if err := result.Err(); err != nil {
		return err
	}

# Struct Binding

	type Settings struct {
		Split struct {
			Delimiter string `config:"delimiter"`
			MaxTokens int    `config:"max_tokens"`
		} `config:"split"`
	}

	var s Settings
	err := cfg.BindToStruct("", &s)
*/
package config
