// ============================================================================
// cstring - Terminated string buffers
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating the command line loggers
// Author:      msto63
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"
	"path/filepath"

	mdwerrors "github.com/msto63/cstring/foundation/core/errors"
	mdwlog "github.com/msto63/cstring/foundation/core/log"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Logger name
	Name string

	// Log level (trace, debug, info, warn, error)
	Level string

	// Output format (text, json, console, logfmt)
	Format string

	// Optional log file, appended to
	File string

	// Console output, defaults to stderr so stdout stays free for results
	Output io.Writer

	// Additional outputs
	AdditionalOutputs []io.Writer
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(name string) LoggerConfig {
	return LoggerConfig{
		Name:   name,
		Level:  "warn",
		Format: "text",
	}
}

// NewLogger creates a Foundation logger. The returned closer releases the
// log file and is never nil.
func NewLogger(cfg LoggerConfig) (*mdwlog.Logger, io.Closer, error) {
	level, err := mdwlog.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nopCloser{}, err
	}
	format, err := mdwlog.ParseFormat(cfg.Format)
	if err != nil {
		return nil, nopCloser{}, err
	}

	var output io.Writer = os.Stderr
	if cfg.Output != nil {
		output = cfg.Output
	}

	writers := []io.Writer{output}
	var closer io.Closer = nopCloser{}
	if cfg.File != "" {
		f, err := openLogFile(cfg.File)
		if err != nil {
			return nil, nopCloser{}, err
		}
		writers = append(writers, f)
		closer = f
	}
	writers = append(writers, cfg.AdditionalOutputs...)
	if len(writers) > 1 {
		output = io.MultiWriter(writers...)
	}

	logger := mdwlog.New().
		WithLevel(level).
		WithFormat(format).
		WithOutput(output).
		WithName(cfg.Name)
	return logger, closer, nil
}

// NewSimpleLogger creates a logger with the default configuration
func NewSimpleLogger(name string) *mdwlog.Logger {
	logger, _, err := NewLogger(DefaultLoggerConfig(name))
	if err != nil {
		return mdwlog.Discard()
	}
	return logger
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, mdwerrors.OperationFailed(mdwerrors.ModuleConfig, "openLogFile", err).
			WithDetail("path", path)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, mdwerrors.OperationFailed(mdwerrors.ModuleConfig, "openLogFile", err).
			WithDetail("path", path)
	}
	return f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
