// ============================================================================
// cstring - Terminated string buffers
// ============================================================================
//
// Package:     cmd
// Description: history command group over the recorded pipeline runs
// Author:      msto63
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	mdwerror "github.com/msto63/cstring/foundation/core/error"
	"github.com/msto63/cstring/internal/history"
)

var failedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))

func newHistoryCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "history",
		Aliases: []string{"hist"},
		Short:   "Inspect recorded pipeline runs",
	}

	cmd.AddCommand(
		newHistoryListCommand(a),
		newHistoryShowCommand(a),
		newHistorySearchCommand(a),
		newHistoryDeleteCommand(a),
		newHistoryClearCommand(a),
		newHistoryStatsCommand(a),
	)
	return cmd
}

// requireStore returns the history store or an error when it is disabled
func (a *app) requireStore() (history.Store, error) {
	store, err := a.historyStore()
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, mdwerror.New("history is disabled").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("cli.history").
			WithDetail("key", "history.enabled")
	}
	return store, nil
}

func newHistoryListCommand(a *app) *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the most recent runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.requireStore()
			if err != nil {
				return err
			}
			runs, err := store.List(cmd.Context(), limit, offset)
			if err != nil {
				return err
			}
			return a.printRuns(cmd, runs)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of runs")
	cmd.Flags().IntVar(&offset, "offset", 0, "number of runs to skip")
	return cmd
}

func newHistoryShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a single run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.requireStore()
			if err != nil {
				return err
			}
			run, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if a.cfg.Output.Format != "text" {
				return a.encode(cmd.OutOrStdout(), run)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "ID:\t%s\n", run.ID)
			fmt.Fprintf(w, "Created:\t%s\n", run.CreatedAt.Format(time.RFC3339))
			fmt.Fprintf(w, "Unit:\t%s\n", run.Unit)
			fmt.Fprintf(w, "Expression:\t%s\n", run.Expression)
			fmt.Fprintf(w, "Input:\t%q\n", run.Input)
			if run.Failed() {
				fmt.Fprintf(w, "Error:\t%s\n", failedStyle.Render(run.Error))
			} else {
				fmt.Fprintf(w, "Output:\t%q\n", run.Output)
				fmt.Fprintf(w, "Stages:\t%s\n", strings.Join(run.Stages, " | "))
				fmt.Fprintf(w, "Duration:\t%.3f ms\n", run.DurationMs)
			}
			return w.Flush()
		},
	}
}

func newHistorySearchCommand(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <text>",
		Short: "Find runs whose expression or input contains text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.requireStore()
			if err != nil {
				return err
			}
			runs, err := store.Search(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			return a.printRuns(cmd, runs)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of runs")
	return cmd
}

func newHistoryDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a run",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.requireStore()
			if err != nil {
				return err
			}
			if err := store.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			return a.printLines(cmd, []string{"deleted " + args[0]})
		},
	}
}

func newHistoryClearCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.requireStore()
			if err != nil {
				return err
			}
			n, err := store.Clear(cmd.Context())
			if err != nil {
				return err
			}
			return a.printLines(cmd, []string{fmt.Sprintf("deleted %d runs", n)})
		},
	}
}

func newHistoryStatsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize the recorded runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.requireStore()
			if err != nil {
				return err
			}
			stats, err := store.Statistics(cmd.Context())
			if err != nil {
				return err
			}
			if a.cfg.Output.Format != "text" {
				return a.encode(cmd.OutOrStdout(), stats)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "Runs:\t%d\n", stats.Total)
			fmt.Fprintf(w, "Failed:\t%d\n", stats.Failed)
			fmt.Fprintf(w, "Average:\t%.3f ms\n", stats.AvgDurationMs)
			if !stats.LastRun.IsZero() {
				fmt.Fprintf(w, "Last run:\t%s\n", stats.LastRun.Format(time.RFC3339))
			}
			return w.Flush()
		},
	}
}

func (a *app) printRuns(cmd *cobra.Command, runs []*history.Run) error {
	if a.cfg.Output.Format != "text" {
		if runs == nil {
			runs = []*history.Run{}
		}
		return a.encode(cmd.OutOrStdout(), runs)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, run := range runs {
		result := fmt.Sprintf("%q", run.Output)
		if run.Failed() {
			result = failedStyle.Render("error: " + run.Error)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			run.ID, run.CreatedAt.Format("2006-01-02 15:04:05"), run.Expression, result)
	}
	return w.Flush()
}
