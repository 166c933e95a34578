// ============================================================================
// cstring - Terminated string buffers
// ============================================================================
//
// Package:     cmd
// Description: config command group: effective settings and search paths
// Author:      msto63
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package cmd

import (
	"github.com/spf13/cobra"

	mdwconfig "github.com/msto63/cstring/foundation/core/config"
)

func newConfigCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}

	var format string
	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Prints the configuration after defaults, the config file, CSTR_*
environment variables and command line flags were applied. The output
is a valid config file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.cfg.Encode(cmd.OutOrStdout(), format)
		},
	}
	show.Flags().StringVarP(&format, "format", "f", "toml", "file format (toml, yaml)")

	path := &cobra.Command{
		Use:   "path",
		Short: "Print the loaded config file and the search locations",
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded := a.cfg.Path()
			if loaded == "" {
				loaded = "(none, built-in defaults)"
			}
			lines := []string{"loaded: " + loaded, "searched:"}
			for _, p := range mdwconfig.ListPossibleConfigFiles(mdwconfig.DefaultDiscoveryOptions()) {
				lines = append(lines, "  "+p)
			}
			return a.printLines(cmd, lines)
		},
	}

	cmd.AddCommand(show, path)
	return cmd
}
