// ============================================================================
// cstring - Terminated string buffers
// ============================================================================
//
// Package:     cmd
// Description: CLI command for the interactive pipeline playground
// Author:      msto63
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/msto63/cstring/internal/tui/playground"
)

func newPlayCommand(a *app) *cobra.Command {
	var expression string

	cmd := &cobra.Command{
		Use:     "play [text...]",
		Aliases: []string{"playground", "tui"},
		Short:   "Start the interactive pipeline playground",
		Long: `Starts a terminal UI that evaluates a pipeline expression against
the input on every keystroke.

Keys:
  Tab          switch between expression and input
  Ctrl+S       save the run to the history
  PgUp/PgDn    scroll the result
  Esc/Ctrl+C   quit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if a.inputFile != "" || len(args) > 0 {
				var err error
				if input, err = a.readInput(cmd, args); err != nil {
					return err
				}
			}

			store, err := a.historyStore()
			if err != nil {
				a.logger.WarnWithErr("History unavailable", err)
			}

			model := playground.New(playground.Config{
				Expression: expression,
				Input:      input,
				Unit:       a.runner.Unit(),
				Evaluate:   a.runner.Evaluator(),
				Store:      store,
				Logger:     a.logger,
			})

			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&expression, "expression", "e", "", "initial pipeline expression")
	return cmd
}
