// ============================================================================
// cstring - Terminated string buffers
// ============================================================================
//
// Package:     config
// Description: Typed settings of the cstr tool on top of foundation config
// Author:      msto63
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	mdwconfig "github.com/msto63/cstring/foundation/core/config"
	mdwerror "github.com/msto63/cstring/foundation/core/error"
)

// EnvPrefix is the prefix of environment overrides, e.g. CSTR_SPLIT_DELIMITER
const EnvPrefix = "CSTR"

// Config holds the complete application configuration
type Config struct {
	Log     LogConfig     `toml:"log" yaml:"log" config:"log"`
	Unit    UnitConfig    `toml:"unit" yaml:"unit" config:"unit"`
	Split   SplitConfig   `toml:"split" yaml:"split" config:"split"`
	Join    JoinConfig    `toml:"join" yaml:"join" config:"join"`
	Trim    TrimConfig    `toml:"trim" yaml:"trim" config:"trim"`
	Fix     FixConfig     `toml:"fix" yaml:"fix" config:"fix"`
	Output  OutputConfig  `toml:"output" yaml:"output" config:"output"`
	History HistoryConfig `toml:"history" yaml:"history" config:"history"`
	Pipe    PipeConfig    `toml:"pipe" yaml:"pipe" config:"pipe"`

	path   string
	source *mdwconfig.Config
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `toml:"level" yaml:"level" config:"level"`
	Format string `toml:"format" yaml:"format" config:"format"`
	File   string `toml:"file" yaml:"file" config:"file"`
}

// UnitConfig selects the code unit of all buffers
type UnitConfig struct {
	Element string `toml:"element" yaml:"element" config:"element"` // byte, rune or utf16
}

// SplitConfig holds tokenizer defaults
type SplitConfig struct {
	Delimiter string `toml:"delimiter" yaml:"delimiter" config:"delimiter"`
	MaxTokens int    `toml:"max_tokens" yaml:"max_tokens" config:"max_tokens"`
}

// JoinConfig holds join defaults
type JoinConfig struct {
	Separator string `toml:"separator" yaml:"separator" config:"separator"`
}

// TrimConfig holds trim defaults
type TrimConfig struct {
	Value string `toml:"value" yaml:"value" config:"value"`
	Mode  string `toml:"mode" yaml:"mode" config:"mode"`
}

// FixConfig holds fix defaults
type FixConfig struct {
	Fill string `toml:"fill" yaml:"fill" config:"fill"`
	Mode string `toml:"mode" yaml:"mode" config:"mode"`
}

// OutputConfig controls result rendering
type OutputConfig struct {
	Format    string `toml:"format" yaml:"format" config:"format"` // text, json or yaml
	Highlight bool   `toml:"highlight" yaml:"highlight" config:"highlight"`
}

// HistoryConfig controls the run history
type HistoryConfig struct {
	Enabled bool   `toml:"enabled" yaml:"enabled" config:"enabled"`
	Path    string `toml:"path" yaml:"path" config:"path"` // empty uses the user config dir
	Limit   int    `toml:"limit" yaml:"limit" config:"limit"`
}

// PipeConfig holds pipeline limits
type PipeConfig struct {
	MaxStages int `toml:"max_stages" yaml:"max_stages" config:"max_stages"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Log:     LogConfig{Level: "warn", Format: "text"},
		Unit:    UnitConfig{Element: "byte"},
		Split:   SplitConfig{Delimiter: " ", MaxTokens: -1},
		Join:    JoinConfig{Separator: " "},
		Trim:    TrimConfig{Value: " ", Mode: "both"},
		Fix:     FixConfig{Fill: " ", Mode: "tail"},
		Output:  OutputConfig{Format: "text"},
		History: HistoryConfig{Enabled: true, Limit: 1000},
		Pipe:    PipeConfig{MaxStages: 32},
	}
}

// Rules returns the validation rules for configuration files
func Rules() mdwconfig.ValidationRules {
	sides := []string{"head", "left", "leading", "tail", "right", "trailing", "both"}
	return mdwconfig.ValidationRules{
		"log.level":        {Type: "string", OneOf: []string{"trace", "debug", "info", "warn", "error"}},
		"log.format":       {Type: "string", OneOf: []string{"text", "json", "console", "logfmt"}},
		"unit.element":     {Type: "string", OneOf: []string{"byte", "rune", "utf16"}},
		"split.delimiter":  {Type: "string", Min: 1},
		"split.max_tokens": {Type: "int", Min: -1},
		"trim.value":       {Type: "string", Min: 1},
		"trim.mode":        {Type: "string", OneOf: sides},
		"fix.fill":         {Type: "string", Min: 1},
		"fix.mode":         {Type: "string", OneOf: sides},
		"output.format":    {Type: "string", OneOf: []string{"text", "json", "yaml"}},
		"output.highlight": {Type: "bool"},
		"history.enabled":  {Type: "bool"},
		"history.limit":    {Type: "int", Min: 1},
		"pipe.max_stages":  {Type: "int", Min: 1, Max: 256},
	}
}

// Load reads the configuration from path. An empty path searches the
// default locations and falls back to the built-in values when no file
// exists. Environment variables with prefix CSTR override file values.
func Load(path string) (*Config, error) {
	var (
		source *mdwconfig.Config
		err    error
	)
	if path == "" {
		source, err = mdwconfig.DiscoverWithDefaults()
	} else {
		source, err = mdwconfig.LoadWithOptions(os.ExpandEnv(path), mdwconfig.LoadOptions{
			Format:    mdwconfig.FormatAuto,
			EnvPrefix: EnvPrefix,
		})
	}
	if err != nil {
		return nil, err
	}
	return FromSource(source)
}

// FromSource validates source and binds it over the built-in values
func FromSource(source *mdwconfig.Config) (*Config, error) {
	if err := source.Validate(Rules()).Err(); err != nil {
		return nil, err
	}

	cfg := Default()
	if err := source.BindToStruct("", cfg); err != nil {
		return nil, err
	}
	cfg.path = source.FilePath()
	cfg.source = source
	cfg.expandEnvVars()
	return cfg, nil
}

// expandEnvVars expands environment variables in path settings
func (c *Config) expandEnvVars() {
	c.Log.File = os.ExpandEnv(c.Log.File)
	c.History.Path = os.ExpandEnv(c.History.Path)
}

// Path returns the loaded file, empty for built-in values
func (c *Config) Path() string {
	return c.path
}

// stageParams maps configuration keys onto pipeline stage parameters
var stageParams = []struct {
	key   string
	stage string
	param string
}{
	{"split.delimiter", "split", "delim"},
	{"split.max_tokens", "split", "max"},
	{"join.separator", "join", "sep"},
	{"trim.value", "trim", "value"},
	{"trim.mode", "trim", "mode"},
	{"fix.fill", "fix", "fill"},
	{"fix.mode", "fix", "mode"},
}

// PipeDefaults returns the stage parameter defaults set in the file or the
// environment. Built-in values are left to the stage definitions.
func (c *Config) PipeDefaults() map[string]map[string]string {
	out := make(map[string]map[string]string)
	if c.source == nil {
		return out
	}
	values := map[string]string{
		"split.delimiter":  c.Split.Delimiter,
		"split.max_tokens": fmt.Sprint(c.Split.MaxTokens),
		"join.separator":   c.Join.Separator,
		"trim.value":       c.Trim.Value,
		"trim.mode":        c.Trim.Mode,
		"fix.fill":         c.Fix.Fill,
		"fix.mode":         c.Fix.Mode,
	}
	for _, sp := range stageParams {
		if !c.source.Has(sp.key) {
			continue
		}
		if out[sp.stage] == nil {
			out[sp.stage] = make(map[string]string)
		}
		out[sp.stage][sp.param] = values[sp.key]
	}
	return out
}

// Encode writes the configuration as TOML or YAML
func (c *Config) Encode(w io.Writer, format string) error {
	switch strings.ToLower(format) {
	case "", "toml":
		if err := toml.NewEncoder(w).Encode(c); err != nil {
			return mdwerror.Wrap(err, "failed to encode configuration").
				WithCode(mdwerror.CodeInternal).
				WithOperation("config.Encode")
		}
		return nil
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return mdwerror.Wrap(err, "failed to encode configuration").
				WithCode(mdwerror.CodeInternal).
				WithOperation("config.Encode")
		}
		return enc.Close()
	}
	return mdwerror.New("unsupported configuration format: "+format).
		WithCode(mdwerror.CodeInvalidInput).
		WithOperation("config.Encode").
		WithDetail("expected", "toml or yaml")
}
