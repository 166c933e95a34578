// ============================================================================
// cstring - Terminated string buffers
// ============================================================================
//
// Package:     version
// Description: Central version information for the cstr tool
// Author:      msto63
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Version constants
const (
	// Library version of the cstring package
	Library = "1.0.0"

	// Pipe expression language version
	Pipe = "1.0.0"
)

// Set at build time via -ldflags "-X github.com/msto63/cstring/pkg/core/version.GitCommit=..."
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// BuildInfo describes the running binary
type BuildInfo struct {
	Version   string `json:"version" yaml:"version"`
	Library   string `json:"library" yaml:"library"`
	Pipe      string `json:"pipe" yaml:"pipe"`
	GitCommit string `json:"git_commit" yaml:"git_commit"`
	BuildDate string `json:"build_date" yaml:"build_date"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
}

// Info returns the build information
func Info() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Library:   Library,
		Pipe:      Pipe,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String returns a one line version banner
func String() string {
	return fmt.Sprintf("cstr %s (commit %s, built %s, %s)", Version, GitCommit, BuildDate, runtime.Version())
}

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "library", "cstring":
		return Library
	case "pipe":
		return Pipe
	default:
		return Version
	}
}
