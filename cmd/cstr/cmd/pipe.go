// ============================================================================
// cstring - Terminated string buffers
// ============================================================================
//
// Package:     cmd
// Description: pipe and stages commands for the pipeline language
// Author:      msto63
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package cmd

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	mdwlog "github.com/msto63/cstring/foundation/core/log"
	"github.com/msto63/cstring/foundation/pipe"
	"github.com/msto63/cstring/internal/history"
)

func newPipeCommand(a *app) *cobra.Command {
	var (
		noHistory bool
		trace     bool
	)

	cmd := &cobra.Command{
		Use:     "pipe <expression> [text...]",
		Aliases: []string{"p", "run"},
		Short:   "Run a pipeline expression",
		Long: `Runs a chain of stages separated by '|' on the input. Parameters
are positional or named (name=value); strings are single or double
quoted. Runs are recorded in the history unless --no-history is set.

Examples:
  cstr pipe 'trim | split "," | join sep=";"' " a,b,c "
  cstr pipe 'split delim=" " | pick -1 | reverse' "one two three"
  cstr pipe 'fix 8 fill="0" mode=head' 42
  cstr stages    # list all stages`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expr := args[0]
			input, err := a.readInput(cmd, args[1:])
			if err != nil {
				return err
			}

			out, runErr := a.runPipeline(cmd.Context(), expr, input)
			if !noHistory {
				a.record(cmd.Context(), expr, input, out, runErr)
			}
			if runErr != nil {
				return runErr
			}

			if trace {
				w := tabwriter.NewWriter(cmd.ErrOrStderr(), 0, 4, 2, ' ', 0)
				for _, s := range out.Stages {
					fmt.Fprintf(w, "%s\t%s -> %s\t%s\n", s.Name, s.Input, s.Output, s.Duration)
				}
				w.Flush()
			}
			return a.printOutcome(cmd, expr, input, out)
		},
	}

	cmd.Flags().BoolVar(&noHistory, "no-history", false, "do not record the run")
	cmd.Flags().BoolVarP(&trace, "trace", "t", false, "print every stage with its value kinds and time to stderr")
	return cmd
}

func (a *app) runPipeline(ctx context.Context, expr, input string) (*outcome, error) {
	p, err := a.runner.Parse(expr)
	if err != nil {
		return nil, err
	}
	return a.runner.Run(ctx, p, input)
}

// record stores the run in the history. Failures are logged and never fail
// the command.
func (a *app) record(ctx context.Context, expr, input string, out *outcome, runErr error) {
	store, err := a.historyStore()
	if err != nil {
		a.logger.WarnWithErr("History unavailable", err)
		return
	}
	if store == nil {
		return
	}

	run := &history.Run{
		Expression: expr,
		Input:      input,
		Unit:       a.runner.Unit(),
	}
	if runErr != nil {
		run.Error = runErr.Error()
	} else {
		run.ID = out.ID
		run.Output = out.Output
		run.DurationMs = millis(out.Duration.Microseconds())
		for _, s := range out.Stages {
			run.Stages = append(run.Stages, s.Name)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := store.Record(ctx, run); err != nil {
		a.logger.WarnWithErr("Recording run failed", err)
		return
	}
	a.logger.Debug("Run recorded", mdwlog.Fields{"id": run.ID})
}

// stageInfo is the structured form of a stage definition
type stageInfo struct {
	Name        string   `json:"name" yaml:"name"`
	Usage       string   `json:"usage" yaml:"usage"`
	Description string   `json:"description" yaml:"description"`
	Input       string   `json:"input" yaml:"input"`
	Output      string   `json:"output" yaml:"output"`
	Aliases     []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Examples    []string `json:"examples,omitempty" yaml:"examples,omitempty"`
}

func newStagesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stages [name]",
		Short: "List the pipeline stages",
		Long: `Lists every stage with its parameters. With a name, aliases and
unique abbreviations included, only that stage is shown.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := a.runner.Registry()

			aliases := make(map[string][]string)
			for alias, name := range reg.Aliases() {
				aliases[name] = append(aliases[name], alias)
			}

			var infos []stageInfo
			for _, def := range a.runner.Definitions() {
				if len(args) == 1 {
					want, err := reg.Resolve(args[0])
					if err != nil {
						return err
					}
					if want.Name != def.Name {
						continue
					}
				}
				names := append(append([]string(nil), def.Aliases...), aliases[def.Name]...)
				sort.Strings(names)
				names = slices.Compact(names)
				infos = append(infos, stageInfo{
					Name:        def.Name,
					Usage:       pipe.Usage(def),
					Description: def.Description,
					Input:       def.Input.String(),
					Output:      def.Output.String(),
					Aliases:     names,
					Examples:    def.Examples,
				})
			}
			sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })

			if a.cfg.Output.Format != "text" {
				return a.encode(cmd.OutOrStdout(), infos)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, info := range infos {
				fmt.Fprintf(w, "%s\t%s -> %s\t%s\n", info.Usage, info.Input, info.Output, info.Description)
				if len(args) == 1 {
					if len(info.Aliases) > 0 {
						fmt.Fprintf(w, "  aliases:\t%s\n", strings.Join(info.Aliases, ", "))
					}
					for _, ex := range info.Examples {
						fmt.Fprintf(w, "  example:\t%s\n", ex)
					}
				}
			}
			return w.Flush()
		},
	}
}
