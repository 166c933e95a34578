package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/cstring/pkg/core/version"
)

func newVersionCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the version",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Info()
			if a.cfg.Output.Format != "text" {
				return a.encode(cmd.OutOrStdout(), info)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "cstr v%s\n", info.Version)
			fmt.Fprintf(w, "  Library:    %s\n", info.Library)
			fmt.Fprintf(w, "  Pipe:       %s\n", info.Pipe)
			fmt.Fprintf(w, "  Git Commit: %s\n", info.GitCommit)
			fmt.Fprintf(w, "  Build Date: %s\n", info.BuildDate)
			fmt.Fprintf(w, "  Go Version: %s\n", info.GoVersion)
			fmt.Fprintf(w, "  OS/Arch:    %s\n", info.Platform)
			return nil
		},
	}
}
