// ============================================================================
// cstring - Terminated string buffers
// ============================================================================
//
// Package:     cmd
// Description: Root command, global flags and shared command state
// Author:      msto63
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	mdwerror "github.com/msto63/cstring/foundation/core/error"
	mdwerrors "github.com/msto63/cstring/foundation/core/errors"
	mdwlog "github.com/msto63/cstring/foundation/core/log"
	"github.com/msto63/cstring/foundation/pipe"
	"github.com/msto63/cstring/internal/history"
	"github.com/msto63/cstring/pkg/core/config"
	"github.com/msto63/cstring/pkg/core/logging"
)

// app carries the global flags and everything built from them
type app struct {
	cfgFile     string
	logLevel    string
	logFormat   string
	unit        string
	output      string
	inputFile   string
	keepNewline bool

	cfg     *config.Config
	logger  *mdwlog.Logger
	runner  runner
	store   history.Store
	closers []io.Closer
}

// NewRootCommand builds the cstr command tree
func NewRootCommand() *cobra.Command {
	rootCmd, _ := newRootCommand()
	return rootCmd
}

func newRootCommand() (*cobra.Command, *app) {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "cstr",
		Short: "cstr - terminated string buffer toolkit",
		Long: `cstr works on text through growable, always terminated string
buffers of byte, rune or UTF-16 code units.

Input is taken from --input, the remaining arguments or stdin.

Examples:
  cstr split -d , "a,b,c"
  echo "  padded  " | cstr trim
  cstr fix 8 --fill . --mode head 42
  cstr pipe 'split "," | pick 1 | reverse' "ab,cd,ef"
  cstr play`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.teardown()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: ./cstr.toml, ~/.config/cstr/cstr.toml)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	flags.StringVar(&a.logFormat, "log-format", "", "log format (text, json, console, logfmt)")
	flags.StringVarP(&a.unit, "unit", "u", "", "code unit (byte, rune, utf16)")
	flags.StringVarP(&a.output, "output", "o", "", "output format (text, json, yaml)")
	flags.StringVarP(&a.inputFile, "input", "i", "", "read input from file ('-' for stdin)")
	flags.BoolVar(&a.keepNewline, "keep-newline", false, "keep the trailing newline of stdin and file input")

	rootCmd.AddCommand(
		newSplitCommand(a),
		newJoinCommand(a),
		newFindCommand(a),
		newTrimCommand(a),
		newFixCommand(a),
		newReplaceCommand(a),
		newReverseCommand(a),
		newCompareCommand(a),
		newPipeCommand(a),
		newStagesCommand(a),
		newHistoryCommand(a),
		newPlayCommand(a),
		newConfigCommand(a),
		newVersionCommand(a),
	)

	return rootCmd, a
}

// Execute runs the root command and prints errors to stderr
func Execute() error {
	rootCmd, a := newRootCommand()
	// PersistentPostRunE is skipped when a command fails
	defer a.teardown()

	if err := rootCmd.Execute(); err != nil {
		printError(rootCmd.ErrOrStderr(), err)
		return err
	}
	return nil
}

// ExitCode returns the process exit status for err: 0 for nil, the code's
// exit status for structured errors and 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var mdwErr *mdwerror.Error
	if errors.As(err, &mdwErr) {
		return mdwErr.Code().ExitCode()
	}
	return 1
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
}

// setup loads the configuration, applies flag overrides and builds the
// logger and the pipeline engine for the selected unit
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}

	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Log.Format = a.logFormat
	}
	if a.unit != "" {
		cfg.Unit.Element = strings.ToLower(a.unit)
	}
	if a.output != "" {
		cfg.Output.Format = strings.ToLower(a.output)
	}
	if err := checkChoice("output", cfg.Output.Format, "text", "json", "yaml"); err != nil {
		return err
	}

	logger, closer, err := logging.NewLogger(logging.LoggerConfig{
		Name:   "cstr",
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	a.closers = append(a.closers, closer)

	r, err := newRunner(cfg.Unit.Element, pipe.Options{
		Logger:              logger,
		MaxStages:           cfg.Pipe.MaxStages,
		Defaults:            cfg.PipeDefaults(),
		EnableAbbreviations: true,
		EnableAliases:       true,
	})
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger.WithField("command", cmd.Name())
	a.runner = r

	a.logger.Debug("Configuration loaded", mdwlog.Fields{
		"config": cfg.Path(),
		"unit":   cfg.Unit.Element,
		"output": cfg.Output.Format,
	})
	return nil
}

// teardown releases the history store and the log file
func (a *app) teardown() error {
	var first error
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			first = err
		}
		a.store = nil
	}
	for _, c := range a.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

// historyStore opens the configured history store on first use. It returns
// nil when the history is disabled.
func (a *app) historyStore() (history.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	if !a.cfg.History.Enabled {
		return nil, nil
	}

	hc := history.DefaultConfig()
	if a.cfg.History.Path != "" {
		hc.Path = a.cfg.History.Path
	}
	if a.cfg.History.Limit > 0 {
		hc.Limit = a.cfg.History.Limit
	}

	store, err := history.NewSQLiteStore(hc)
	if err != nil {
		return nil, err
	}
	a.store = store
	return store, nil
}

func checkChoice(name, value string, choices ...string) error {
	for _, c := range choices {
		if value == c {
			return nil
		}
	}
	return mdwerrors.InvalidInput(mdwerrors.ModuleCLI, name, value, strings.Join(choices, ", "))
}
