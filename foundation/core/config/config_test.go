// File: config_test.go
// Title: Configuration Module Tests
// Description: Tests for TOML/YAML parsing, environment overrides, defaults,
//              validation, struct binding and discovery.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial test implementation
// - 2026-10-19 v0.2.0: Validation, binding and discovery coverage

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	mdwerror "github.com/msto63/cstring/foundation/core/error"
)

const sampleTOML = `
[split]
delimiter = ";"
max_tokens = 3

[output]
format = "json"
highlight = true

[history]
limit = "10"
timeout = "5s"
stages = ["trim", "upper"]
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestLoad(t *testing.T) {
	tempDir := t.TempDir()

	t.Run("load TOML config", func(t *testing.T) {
		cfg, err := Load(writeFile(t, tempDir, "cstr.toml", sampleTOML))
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		if got := cfg.GetString("split.delimiter"); got != ";" {
			t.Errorf("GetString() = %q, want %q", got, ";")
		}
		if got := cfg.GetInt("split.max_tokens"); got != 3 {
			t.Errorf("GetInt() = %d, want 3", got)
		}
		if got := cfg.GetInt("history.limit"); got != 10 {
			t.Errorf("GetInt() on string = %d, want 10", got)
		}
		if !cfg.GetBool("output.highlight") {
			t.Error("GetBool() = false, want true")
		}
		if got := cfg.GetDuration("history.timeout"); got != 5*time.Second {
			t.Errorf("GetDuration() = %v, want 5s", got)
		}
		if got := cfg.GetStringSlice("history.stages"); !reflect.DeepEqual(got, []string{"trim", "upper"}) {
			t.Errorf("GetStringSlice() = %v", got)
		}
		if cfg.Format() != FormatTOML {
			t.Errorf("Format() = %v, want toml", cfg.Format())
		}
	})

	t.Run("load YAML config", func(t *testing.T) {
		content := "split:\n  delimiter: \"|\"\n  max_tokens: -1\nunit:\n  element: rune\n"
		cfg, err := Load(writeFile(t, tempDir, "cstr.yaml", content))
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if got := cfg.GetString("split.delimiter"); got != "|" {
			t.Errorf("GetString() = %q, want |", got)
		}
		if got := cfg.GetInt("split.max_tokens"); got != -1 {
			t.Errorf("GetInt() = %d, want -1", got)
		}
		if cfg.Format() != FormatYAML {
			t.Errorf("Format() = %v, want yaml", cfg.Format())
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(tempDir, "absent.toml"))
		if !mdwerror.HasCode(err, mdwerror.CodeNotFound) {
			t.Errorf("Load() error = %v, want NOT_FOUND", err)
		}
	})

	t.Run("empty path", func(t *testing.T) {
		if _, err := Load("  "); err == nil {
			t.Error("Load() with blank path should fail")
		}
	})

	t.Run("invalid syntax", func(t *testing.T) {
		_, err := Load(writeFile(t, tempDir, "broken.toml", "[split\ndelimiter="))
		if !mdwerror.HasCode(err, mdwerror.CodeInvalidConfig) {
			t.Errorf("Load() error = %v, want INVALID_CONFIG", err)
		}
	})
}

func TestEnvironmentVariables(t *testing.T) {
	cfg, err := LoadFromString(sampleTOML, FormatTOML)
	if err != nil {
		t.Fatalf("LoadFromString() error = %v", err)
	}
	cfg.envPrefix = "CSTR"

	t.Setenv("CSTR_SPLIT_DELIMITER", ",")
	t.Setenv("CSTR_SPLIT_MAX_TOKENS", "7")
	t.Setenv("CSTR_OUTPUT_HIGHLIGHT", "false")
	t.Setenv("CSTR_HISTORY_STAGES", "a,b,c")

	tests := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{"string override", cfg.GetString("split.delimiter"), ","},
		{"int override", cfg.GetInt("split.max_tokens"), 7},
		{"bool override", cfg.GetBool("output.highlight"), false},
		{"slice override", cfg.GetStringSlice("history.stages"), []string{"a", "b", "c"}},
		{"env only key is present", cfg.Has("split.delimiter"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.got, tt.want) {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}

	if got := cfg.formatEnvKey("split.max_tokens"); got != "CSTR_SPLIT_MAX_TOKENS" {
		t.Errorf("formatEnvKey() = %q", got)
	}
}

func TestDefaults(t *testing.T) {
	tempDir := t.TempDir()
	path := writeFile(t, tempDir, "cstr.toml", "[split]\ndelimiter = \";\"\n")

	cfg, err := LoadWithOptions(path, LoadOptions{
		Defaults: map[string]interface{}{
			"split": map[string]interface{}{"delimiter": ",", "max_tokens": -1},
			"join":  map[string]interface{}{"separator": " "},
		},
	})
	if err != nil {
		t.Fatalf("LoadWithOptions() error = %v", err)
	}

	if got := cfg.GetString("split.delimiter"); got != ";" {
		t.Errorf("file value should win, got %q", got)
	}
	if got := cfg.GetInt("split.max_tokens"); got != -1 {
		t.Errorf("section default should survive, got %d", got)
	}
	if got := cfg.GetString("join.separator"); got != " " {
		t.Errorf("default section missing, got %q", got)
	}
	if got := cfg.GetString("absent.key", "fallback"); got != "fallback" {
		t.Errorf("call default = %q, want fallback", got)
	}
}

func TestHasSetKeys(t *testing.T) {
	cfg := FromDefaults(nil, "")

	if cfg.Has("trim.mode") {
		t.Error("Has() on empty config = true")
	}

	cfg.Set("trim.mode", "both")
	cfg.Set("trim.value", " ")

	if !cfg.Has("trim.mode") {
		t.Error("Has() after Set = false")
	}
	if got := cfg.Keys(); !reflect.DeepEqual(got, []string{"trim.mode", "trim.value"}) {
		t.Errorf("Keys() = %v", got)
	}

	all := cfg.GetAll()
	all["trim"].(map[string]interface{})["mode"] = "left"
	if got := cfg.GetString("trim.mode"); got != "both" {
		t.Errorf("GetAll() must return a copy, config now has %q", got)
	}
}

func TestRequire(t *testing.T) {
	cfg := FromDefaults(map[string]interface{}{"unit": map[string]interface{}{"element": "byte"}}, "")

	if v, err := cfg.Require("unit.element"); err != nil || v != "byte" {
		t.Errorf("Require() = %q, %v", v, err)
	}
	if _, err := cfg.Require("unit.missing"); !mdwerror.HasCode(err, mdwerror.CodeMissingConfig) {
		t.Errorf("Require() error = %v, want MISSING_CONFIG", err)
	}
}

func TestValidate(t *testing.T) {
	cfg, err := LoadFromString(sampleTOML+"\n[unit]\nelement = \"word\"\n", FormatTOML)
	if err != nil {
		t.Fatalf("LoadFromString() error = %v", err)
	}

	t.Run("passing rules apply defaults", func(t *testing.T) {
		result := cfg.Validate(ValidationRules{
			"split.max_tokens": {Type: "int", Min: -1, Max: 100},
			"split.delimiter":  {Type: "string", Min: 1},
			"history.timeout":  {Type: "duration"},
			"history.stages":   {Type: "[]string", Max: 5},
			"join.separator":   {Type: "string", Default: " "},
		})
		if !result.Valid {
			t.Fatalf("Validate() errors = %v", result.Errors)
		}
		if result.Err() != nil {
			t.Errorf("Err() = %v, want nil", result.Err())
		}
		if got := cfg.GetString("join.separator"); got != " " {
			t.Errorf("default not applied, got %q", got)
		}
	})

	t.Run("failing rules", func(t *testing.T) {
		result := cfg.Validate(ValidationRules{
			"unit.element":     {OneOf: []string{"byte", "rune", "utf16"}},
			"split.max_tokens": {Max: 2},
			"output.format":    {Pattern: `^(text|yaml)$`},
			"pipe.max_stages":  {Required: true},
			"output.highlight": {Type: "string"},
		})
		if result.Valid {
			t.Fatal("Validate() = valid, want invalid")
		}
		if len(result.Errors) != 5 {
			t.Errorf("len(Errors) = %d, want 5: %v", len(result.Errors), result.Errors)
		}
		err := result.Err()
		if !mdwerror.HasCode(err, mdwerror.CodeInvalidConfig) {
			t.Errorf("Err() code = %v", mdwerror.GetCode(err))
		}
		if !strings.Contains(err.Error(), "unit.element") {
			t.Errorf("Err() = %v, should name the key", err)
		}
	})
}

type testSettings struct {
	Split struct {
		Delimiter string `config:"delimiter"`
		MaxTokens int    `config:"max_tokens"`
	} `config:"split"`
	Output struct {
		Format    string `config:"format"`
		Highlight bool   `config:"highlight"`
	} `config:"output"`
	History struct {
		Limit   int           `config:"limit"`
		Timeout time.Duration `config:"timeout"`
		Stages  []string      `config:"stages"`
	} `config:"history"`
	Ignored string `config:"-"`
}

func TestBindToStruct(t *testing.T) {
	cfg, err := LoadFromString(sampleTOML, FormatTOML)
	if err != nil {
		t.Fatalf("LoadFromString() error = %v", err)
	}
	cfg.envPrefix = "CSTR"
	t.Setenv("CSTR_OUTPUT_FORMAT", "yaml")

	var s testSettings
	s.Ignored = "keep"
	if err := cfg.BindToStruct("", &s); err != nil {
		t.Fatalf("BindToStruct() error = %v", err)
	}

	if s.Split.Delimiter != ";" || s.Split.MaxTokens != 3 {
		t.Errorf("Split = %+v", s.Split)
	}
	if s.Output.Format != "yaml" || !s.Output.Highlight {
		t.Errorf("Output = %+v, env override expected", s.Output)
	}
	if s.History.Limit != 10 || s.History.Timeout != 5*time.Second {
		t.Errorf("History = %+v", s.History)
	}
	if !reflect.DeepEqual(s.History.Stages, []string{"trim", "upper"}) {
		t.Errorf("Stages = %v", s.History.Stages)
	}
	if s.Ignored != "keep" {
		t.Errorf("Ignored field was overwritten")
	}

	t.Run("section prefix", func(t *testing.T) {
		var split struct {
			Delimiter string `config:"delimiter"`
		}
		if err := cfg.BindToStruct("split", &split); err != nil || split.Delimiter != ";" {
			t.Errorf("BindToStruct(split) = %+v, %v", split, err)
		}
	})

	t.Run("required missing", func(t *testing.T) {
		var target struct {
			Path string `config:"path" validate:"required"`
		}
		err := cfg.BindToStruct("history", &target)
		if !mdwerror.HasCode(err, mdwerror.CodeMissingConfig) {
			t.Errorf("BindToStruct() error = %v, want MISSING_CONFIG", err)
		}
	})

	t.Run("type mismatch", func(t *testing.T) {
		var target struct {
			Delimiter int `config:"delimiter"`
		}
		err := cfg.BindToStruct("split", &target)
		if !mdwerror.HasCode(err, mdwerror.CodeInvalidConfig) {
			t.Errorf("BindToStruct() error = %v, want INVALID_CONFIG", err)
		}
	})

	t.Run("non pointer target", func(t *testing.T) {
		if err := cfg.BindToStruct("", testSettings{}); err == nil {
			t.Error("BindToStruct() with value target should fail")
		}
	})
}

func TestDiscover(t *testing.T) {
	tempDir := t.TempDir()
	options := DiscoveryOptions{
		Paths:     []string{filepath.Join(tempDir, "missing"), tempDir},
		Filenames: []string{"cstr"},
		Defaults:  map[string]interface{}{"join": map[string]interface{}{"separator": "-"}},
	}

	t.Run("nothing found falls back to defaults", func(t *testing.T) {
		cfg, err := Discover(options)
		if err != nil {
			t.Fatalf("Discover() error = %v", err)
		}
		if got := cfg.GetString("join.separator"); got != "-" {
			t.Errorf("GetString() = %q, want -", got)
		}
		if cfg.FilePath() != "" {
			t.Errorf("FilePath() = %q, want empty", cfg.FilePath())
		}
	})

	t.Run("required and missing", func(t *testing.T) {
		required := options
		required.Required = true
		if _, err := Discover(required); !mdwerror.HasCode(err, mdwerror.CodeMissingConfig) {
			t.Errorf("Discover() error = %v, want MISSING_CONFIG", err)
		}
	})

	t.Run("finds file", func(t *testing.T) {
		path := writeFile(t, tempDir, "cstr.yml", "join:\n  separator: \"+\"\n")
		cfg, err := Discover(options)
		if err != nil {
			t.Fatalf("Discover() error = %v", err)
		}
		if cfg.FilePath() != path {
			t.Errorf("FilePath() = %q, want %q", cfg.FilePath(), path)
		}
		if got := cfg.GetString("join.separator"); got != "+" {
			t.Errorf("GetString() = %q, want +", got)
		}
	})

	if got := len(ListPossibleConfigFiles(options)); got != 0 {
		// Extensions are filled in by Discover only.
		t.Errorf("ListPossibleConfigFiles() without extensions = %d, want 0", got)
	}
}

func TestDiscoverWithDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, ".config"))
	t.Chdir(dir)
	if err := os.MkdirAll(filepath.Join(dir, ".cstr"), 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}

	path := writeFile(t, filepath.Join(dir, ".cstr"), "config.yaml", "split:\n  delimiter: \";\"\n")
	cfg, err := DiscoverWithDefaults()
	if err != nil {
		t.Fatalf("DiscoverWithDefaults() error = %v", err)
	}
	if cfg.FilePath() != path {
		t.Errorf("FilePath() = %q, want %q", cfg.FilePath(), path)
	}
	if got := cfg.GetString("split.delimiter"); got != ";" {
		t.Errorf("GetString() = %q, want ;", got)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CSTRTEST_SPLIT_MAX_TOKENS", "4")
	t.Setenv("CSTRTEST_OUTPUT_HIGHLIGHT", "true")

	cfg := LoadFromEnv("CSTRTEST")
	data := cfg.GetAll()

	split, ok := data["split"].(map[string]interface{})
	if !ok || split["max_tokens"] != 4 {
		t.Errorf("split section = %v", data["split"])
	}
	if got := cfg.GetBool("output.highlight"); !got {
		t.Error("GetBool() = false, want true")
	}
}

func TestFormatString(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{FormatTOML, "toml"},
		{FormatYAML, "yaml"},
		{FormatAuto, "auto"},
		{Format(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("Format(%d).String() = %q, want %q", tt.format, got, tt.want)
		}
	}

	if detectFormat("a.yml") != FormatYAML || detectFormat("a.toml") != FormatTOML {
		t.Error("detectFormat() mismatch")
	}
}
