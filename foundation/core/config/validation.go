// File: validation.go
// Title: Configuration Validation and Struct Binding
// Description: Validates configuration values against declarative rules and
//              binds configuration sections onto tagged Go structs.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation of validation
// - 2026-10-19 v0.2.0: OneOf rule, environment overlay and nested sections
//                      in BindToStruct, rule defaults no longer mutate under
//                      a read lock

package config

import (
	"fmt"
	"reflect"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	mdwerror "github.com/msto63/cstring/foundation/core/error"
	mdwerrors "github.com/msto63/cstring/foundation/core/errors"
)

// ValidationRule defines validation criteria for configuration values
type ValidationRule struct {
	Required bool        // Whether the field is required
	Type     string      // Expected type: "string", "int", "bool", "float", "duration", "[]string"
	Min      interface{} // Minimum value (for numbers) or length (for strings/slices)
	Max      interface{} // Maximum value (for numbers) or length (for strings/slices)
	Default  interface{} // Default value if not present
	Pattern  string      // Regex pattern for string validation
	OneOf    []string    // Allowed string values
}

// ValidationRules maps configuration keys to their validation rules
type ValidationRules map[string]ValidationRule

// ValidationResult contains the results of configuration validation
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// Err returns nil for a valid result, otherwise a validation error listing
// every failed rule.
func (r *ValidationResult) Err() error {
	if r == nil || r.Valid {
		return nil
	}
	return mdwerror.New("configuration validation failed: "+strings.Join(r.Errors, "; ")).
		WithCode(mdwerror.CodeInvalidConfig).
		WithOperation("config.Validate").
		WithDetail("errors", r.Errors)
}

// Validate validates the configuration against the provided rules. Missing
// optional keys with a rule default receive that default.
func (c *Config) Validate(rules ValidationRules) *ValidationResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := &ValidationResult{Valid: true}

	keys := make([]string, 0, len(rules))
	for key := range rules {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	for _, key := range keys {
		if err := c.validateField(key, rules[key]); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, err.Error())
		}
	}

	return result
}

// effectiveValue returns the environment override if present, otherwise the
// stored value.
func (c *Config) effectiveValue(key string) interface{} {
	if envValue, ok := c.getEnvValue(key); ok {
		return parseEnvValue(envValue)
	}
	return c.getValue(key)
}

func (c *Config) validateField(key string, rule ValidationRule) error {
	value := c.effectiveValue(key)

	if value == nil {
		if rule.Required {
			return fmt.Errorf("required field '%s' is missing", key)
		}
		if rule.Default != nil {
			c.set(key, rule.Default)
		}
		return nil
	}

	if rule.Type != "" {
		if err := validateType(key, value, rule.Type); err != nil {
			return err
		}
	}

	if rule.Min != nil {
		if err := validateMin(key, value, rule.Min); err != nil {
			return err
		}
	}
	if rule.Max != nil {
		if err := validateMax(key, value, rule.Max); err != nil {
			return err
		}
	}

	if rule.Pattern != "" {
		if err := validatePattern(key, value, rule.Pattern); err != nil {
			return err
		}
	}

	if len(rule.OneOf) > 0 {
		s := fmt.Sprintf("%v", value)
		if !slices.Contains(rule.OneOf, s) {
			return fmt.Errorf("field '%s' value '%s' must be one of [%s]", key, s, strings.Join(rule.OneOf, ", "))
		}
	}

	return nil
}

func validateType(key string, value interface{}, expectedType string) error {
	switch expectedType {
	case "string":
		if _, ok := value.(string); !ok {
			return fmt.Errorf("field '%s' must be a string, got %T", key, value)
		}

	case "int":
		if _, ok := toInt(value); !ok {
			return fmt.Errorf("field '%s' must be an integer, got %T", key, value)
		}

	case "float":
		if _, ok := toFloat(value); !ok {
			return fmt.Errorf("field '%s' must be a float, got %T", key, value)
		}

	case "bool":
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("field '%s' must be a boolean, got %T", key, value)
		}

	case "duration":
		switch v := value.(type) {
		case time.Duration:
		case string:
			if _, err := time.ParseDuration(v); err != nil {
				return fmt.Errorf("field '%s' must be a valid duration string, got '%v'", key, value)
			}
		default:
			return fmt.Errorf("field '%s' must be a duration, got %T", key, value)
		}

	case "[]string":
		switch value.(type) {
		case []string, []interface{}:
		default:
			return fmt.Errorf("field '%s' must be a slice of strings, got %T", key, value)
		}

	default:
		return fmt.Errorf("unknown validation type: %s", expectedType)
	}

	return nil
}

func toFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	}
	return 0, false
}

// measure returns the numeric value of numbers and the length of strings
// and slices.
func measure(value interface{}) (float64, string, bool) {
	switch v := value.(type) {
	case string:
		return float64(len(v)), "length", true
	case []string:
		return float64(len(v)), "length", true
	case []interface{}:
		return float64(len(v)), "length", true
	}
	if f, ok := toFloat(value); ok {
		return f, "value", true
	}
	return 0, "", false
}

func validateMin(key string, value, min interface{}) error {
	got, what, ok := measure(value)
	limit, lok := toFloat(min)
	if !ok || !lok {
		return nil
	}
	if got < limit {
		return fmt.Errorf("field '%s' %s %g is less than minimum %g", key, what, got, limit)
	}
	return nil
}

func validateMax(key string, value, max interface{}) error {
	got, what, ok := measure(value)
	limit, lok := toFloat(max)
	if !ok || !lok {
		return nil
	}
	if got > limit {
		return fmt.Errorf("field '%s' %s %g is greater than maximum %g", key, what, got, limit)
	}
	return nil
}

func validatePattern(key string, value interface{}, pattern string) error {
	strValue, ok := value.(string)
	if !ok {
		return fmt.Errorf("field '%s' pattern validation requires string value", key)
	}

	regex, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("invalid regex pattern for field '%s': %w", key, err)
	}

	if !regex.MatchString(strValue) {
		return fmt.Errorf("field '%s' value '%s' does not match pattern '%s'", key, strValue, pattern)
	}

	return nil
}

// BindToStruct binds configuration values to a Go struct. Fields are matched
// by their `config:"key"` tag (lower-cased field name otherwise). Struct
// fields bind to nested sections. Environment overrides take precedence over
// file values. Fields tagged `validate:"required"` must be present.
func (c *Config) BindToStruct(keyPrefix string, target interface{}) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	targetValue := reflect.ValueOf(target)
	if targetValue.Kind() != reflect.Ptr || targetValue.Elem().Kind() != reflect.Struct {
		return mdwerror.New("target must be a pointer to struct").
			WithCode(mdwerror.CodeValidationFailed).
			WithOperation("config.BindToStruct")
	}

	if keyPrefix != "" {
		if value := c.getValue(keyPrefix); value != nil {
			if _, ok := value.(map[string]interface{}); !ok {
				return mdwerror.New(fmt.Sprintf("configuration key '%s' is not a section", keyPrefix)).
					WithCode(mdwerror.CodeValidationFailed).
					WithOperation("config.BindToStruct").
					WithDetail("keyPrefix", keyPrefix)
			}
		}
	}

	return c.bindStruct(keyPrefix, targetValue.Elem())
}

var durationType = reflect.TypeOf(time.Duration(0))

func (c *Config) bindStruct(prefix string, target reflect.Value) error {
	targetType := target.Type()

	for i := 0; i < target.NumField(); i++ {
		field := target.Field(i)
		fieldType := targetType.Field(i)

		if !field.CanSet() {
			continue
		}

		configKey := fieldType.Tag.Get("config")
		if configKey == "" {
			configKey = strings.ToLower(fieldType.Name)
		}
		if configKey == "-" {
			continue
		}

		fullKey := configKey
		if prefix != "" {
			fullKey = prefix + "." + configKey
		}

		if field.Kind() == reflect.Struct && field.Type() != durationType {
			if err := c.bindStruct(fullKey, field); err != nil {
				return err
			}
			continue
		}

		configValue := c.effectiveValue(fullKey)
		if configValue == nil {
			if strings.Contains(fieldType.Tag.Get("validate"), "required") {
				return mdwerrors.ConfigKeyMissing(fullKey).
					WithOperation("config.BindToStruct")
			}
			continue
		}

		if err := setFieldValue(field, configValue); err != nil {
			return mdwerrors.ConfigTypeMismatch(fullKey, field.Type().String(), configValue).
				WithOperation("config.BindToStruct").
				WithDetail("fieldName", fieldType.Name).
				WithDetail("reason", err.Error())
		}
	}

	return nil
}

func setFieldValue(field reflect.Value, configValue interface{}) error {
	if field.Type() == durationType {
		switch v := configValue.(type) {
		case string:
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("cannot convert '%v' to duration", v)
			}
			field.SetInt(int64(d))
		default:
			n, ok := toInt(v)
			if !ok {
				return fmt.Errorf("cannot convert '%v' to duration", v)
			}
			field.SetInt(int64(n))
		}
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		if str, ok := configValue.(string); ok {
			field.SetString(str)
		} else {
			field.SetString(fmt.Sprintf("%v", configValue))
		}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := toInt(configValue)
		if !ok {
			return fmt.Errorf("cannot convert '%v' to integer", configValue)
		}
		if field.OverflowInt(int64(n)) {
			return fmt.Errorf("value %d overflows %s", n, field.Type())
		}
		field.SetInt(int64(n))

	case reflect.Float32, reflect.Float64:
		f, ok := toFloat(configValue)
		if !ok {
			return fmt.Errorf("cannot convert '%v' to float", configValue)
		}
		field.SetFloat(f)

	case reflect.Bool:
		switch v := configValue.(type) {
		case bool:
			field.SetBool(v)
		case string:
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("cannot convert '%v' to boolean", v)
			}
			field.SetBool(b)
		default:
			return fmt.Errorf("cannot convert '%v' to boolean", v)
		}

	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice type %s", field.Type())
		}
		var items []string
		switch v := configValue.(type) {
		case string:
			items = strings.Split(v, ",")
		default:
			s, ok := toStringSlice(v)
			if !ok {
				return fmt.Errorf("cannot convert '%v' to []string", v)
			}
			items = s
		}
		field.Set(reflect.ValueOf(items))

	default:
		return fmt.Errorf("unsupported field type %s", field.Type())
	}

	return nil
}
