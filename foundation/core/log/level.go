// File: level.go
// Title: Log Level Definitions
// Description: Defines log levels, their textual forms and the terminal
//              styles used by the console formatter.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with standard log levels
// - 2026-10-19 v0.2.0: Raw ANSI colour codes replaced by lipgloss styles,
//                      parse errors reported as structured errors

package log

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	mdwerror "github.com/msto63/cstring/foundation/core/error"
)

// Level represents the importance level of a log message
type Level int

const (
	// LevelTrace logs every pipeline stage and parameter
	LevelTrace Level = iota

	// LevelDebug logs stage timings and buffer sizes
	LevelDebug

	// LevelInfo logs command level events
	LevelInfo

	// LevelWarn logs recoverable problems such as a missing config file
	LevelWarn

	// LevelError logs failed commands
	LevelError

	// LevelFatal logs a failure that terminates the program
	LevelFatal

	// LevelAudit is always logged regardless of the minimum level
	LevelAudit
)

var levelNames = [...]string{"trace", "debug", "info", "warn", "error", "fatal", "audit"}

var levelShort = [...]string{"TRC", "DBG", "INF", "WRN", "ERR", "FTL", "AUD"}

var levelStyles = [...]lipgloss.Style{
	lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#22D3EE")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#D946EF")).Bold(true),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED")),
}

func (l Level) valid() bool {
	return l >= LevelTrace && l <= LevelAudit
}

// String returns the string representation of the log level
func (l Level) String() string {
	if !l.valid() {
		return "unknown"
	}
	return levelNames[l]
}

// ShortString returns a three letter representation of the log level
func (l Level) ShortString() string {
	if !l.valid() {
		return "???"
	}
	return levelShort[l]
}

// Style returns the terminal style used for the level by the console formatter
func (l Level) Style() lipgloss.Style {
	if !l.valid() {
		return lipgloss.NewStyle()
	}
	return levelStyles[l]
}

// ShouldLog returns true if this level should be logged given the minimum level
func (l Level) ShouldLog(minLevel Level) bool {
	if l == LevelAudit {
		return true
	}
	return l >= minLevel
}

// ParseLevel parses a string into a log level
func ParseLevel(level string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "trc":
		return LevelTrace, nil
	case "debug", "dbg":
		return LevelDebug, nil
	case "info", "inf", "information":
		return LevelInfo, nil
	case "warn", "wrn", "warning":
		return LevelWarn, nil
	case "error", "err":
		return LevelError, nil
	case "fatal", "ftl":
		return LevelFatal, nil
	case "audit", "aud":
		return LevelAudit, nil
	default:
		return LevelInfo, mdwerror.New("invalid log level: " + level).
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("log.ParseLevel").
			WithDetail("input", level)
	}
}

// AllLevels returns all available log levels
func AllLevels() []Level {
	return []Level{LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError, LevelFatal, LevelAudit}
}

// DefaultLevel returns the default log level of the command line tool
func DefaultLevel() Level {
	return LevelWarn
}
