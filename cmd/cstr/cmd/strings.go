// ============================================================================
// cstring - Terminated string buffers
// ============================================================================
//
// Package:     cmd
// Description: Single operation commands built on one or two pipeline stages
// Author:      msto63
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package cmd

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	mdwerrors "github.com/msto63/cstring/foundation/core/errors"
	mdwlog "github.com/msto63/cstring/foundation/core/log"
	"github.com/msto63/cstring/foundation/pipe/ast"
	"github.com/msto63/cstring/foundation/pipe/registry"
)

// runStages executes stages on input and prints the result
func (a *app) runStages(cmd *cobra.Command, name, input string, stages ...*ast.Stage) error {
	p := pipeline(stages...)
	out, err := a.runner.Run(cmd.Context(), p, input)
	if err != nil {
		return err
	}
	a.logger.Debug("Command completed", mdwlog.Fields{
		"pipeline": p.Source,
		"run_id":   out.ID,
		"duration": out.Duration.String(),
	})

	var result interface{} = out.Output
	if out.Kind == registry.KindArray {
		result = out.Elements
		if out.Elements == nil {
			result = []string{}
		}
	}
	return a.printValue(cmd, name, input, result)
}

// flagOr returns the flag value when it was set, the configured value otherwise
func flagOr(cmd *cobra.Command, name, flagValue, configured string) string {
	if cmd.Flags().Changed(name) {
		return flagValue
	}
	return configured
}

func intArg(name, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, mdwerrors.InvalidInput(mdwerrors.ModuleCLI, name, value, "an integer")
	}
	return n, nil
}

func newSplitCommand(a *app) *cobra.Command {
	var (
		delimiter string
		maxTokens int
	)

	cmd := &cobra.Command{
		Use:   "split [text...]",
		Short: "Split the input into tokens",
		Long: `Splits the input on every occurrence of the delimiter and prints one
token per line. Empty tokens are kept. With --max the last token holds
the unsplit remainder.

Examples:
  cstr split -d , "a,b,,c"
  cstr split -d , -n 2 "a,b,c"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := a.readInput(cmd, args)
			if err != nil {
				return err
			}
			limit := a.cfg.Split.MaxTokens
			if cmd.Flags().Changed("max") {
				limit = maxTokens
			}
			return a.runStages(cmd, "split", input, stage("split",
				strParam("delim", flagOr(cmd, "delimiter", delimiter, a.cfg.Split.Delimiter)),
				intParam("max", limit)))
		},
	}

	cmd.Flags().StringVarP(&delimiter, "delimiter", "d", " ", "token delimiter")
	cmd.Flags().IntVarP(&maxTokens, "max", "n", -1, "maximum number of tokens (-1 for unlimited)")
	return cmd
}

func newJoinCommand(a *app) *cobra.Command {
	var (
		separator string
		from      string
	)

	cmd := &cobra.Command{
		Use:   "join [items...]",
		Short: "Join items with a separator",
		Long: `Joins the arguments, or the lines of the input, with a separator.

Examples:
  cstr join -s , a b c
  printf 'a\nb\nc\n' | cstr join -s ' + '
  cstr join --from , -s ';' -i list.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if a.inputFile == "" && len(args) > 0 {
				input = strings.Join(args, "\n")
			} else {
				var err error
				if input, err = a.readInput(cmd, nil); err != nil {
					return err
				}
			}
			if input == "" {
				return a.printValue(cmd, "join", input, "")
			}
			return a.runStages(cmd, "join", input,
				stage("split", strParam("delim", from)),
				stage("join", strParam("sep", flagOr(cmd, "separator", separator, a.cfg.Join.Separator))))
		},
	}

	cmd.Flags().StringVarP(&separator, "separator", "s", " ", "separator placed between items")
	cmd.Flags().StringVar(&from, "from", "\n", "delimiter separating the items of the input")
	return cmd
}

func newTrimCommand(a *app) *cobra.Command {
	var (
		value string
		mode  string
	)

	cmd := &cobra.Command{
		Use:   "trim [text...]",
		Short: "Remove a repeated character from the ends",
		Long: `Removes every leading and/or trailing occurrence of a character.

Examples:
  cstr trim "  padded  "
  cstr trim -v 0 -m head 000123`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := a.readInput(cmd, args)
			if err != nil {
				return err
			}
			return a.runStages(cmd, "trim", input, stage("trim",
				strParam("value", flagOr(cmd, "value", value, a.cfg.Trim.Value)),
				strParam("mode", flagOr(cmd, "mode", mode, a.cfg.Trim.Mode))))
		},
	}

	cmd.Flags().StringVarP(&value, "value", "v", " ", "character to remove")
	cmd.Flags().StringVarP(&mode, "mode", "m", "both", "side to trim (head, tail, both)")
	return cmd
}

func newFixCommand(a *app) *cobra.Command {
	var (
		fill string
		mode string
	)

	cmd := &cobra.Command{
		Use:   "fix <length> [text...]",
		Short: "Pad or cut the input to an exact length",
		Long: `Brings the input to exactly length code units. Longer input is cut,
shorter input is padded with the fill character on the chosen side.
With mode both the head takes the larger half.

Examples:
  cstr fix 6 -f 0 -m head 42
  cstr fix 3 abcdef
  cstr fix 7 -f . -m both ab`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			length, err := intArg("length", args[0])
			if err != nil {
				return err
			}
			input, err := a.readInput(cmd, args[1:])
			if err != nil {
				return err
			}
			return a.runStages(cmd, "fix", input, stage("fix",
				intParam("length", length),
				strParam("fill", flagOr(cmd, "fill", fill, a.cfg.Fix.Fill)),
				strParam("mode", flagOr(cmd, "mode", mode, a.cfg.Fix.Mode))))
		},
	}

	cmd.Flags().StringVarP(&fill, "fill", "f", " ", "padding character")
	cmd.Flags().StringVarP(&mode, "mode", "m", "tail", "side to pad or cut (head, tail, both)")
	return cmd
}

func newReplaceCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "replace <pos> <count> <with> [text...]",
		Short: "Replace a range of the input",
		Long: `Replaces count code units starting at pos. A negative count
replaces up to the end.

Examples:
  cstr replace 0 5 Howdy "Hello world"
  cstr replace -- 6 -1 there "Hello world"`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := intArg("pos", args[0])
			if err != nil {
				return err
			}
			count, err := intArg("count", args[1])
			if err != nil {
				return err
			}
			input, err := a.readInput(cmd, args[3:])
			if err != nil {
				return err
			}
			return a.runStages(cmd, "replace", input, stage("replace",
				intParam("pos", pos),
				intParam("count", count),
				strParam("text", args[2])))
		},
	}
}

func newReverseCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reverse [text...]",
		Short: "Reverse the code units of the input",
		Long: `Reverses the input unit by unit. With --unit byte multi-byte
characters are reversed byte by byte; use --unit rune for text.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := a.readInput(cmd, args)
			if err != nil {
				return err
			}
			return a.runStages(cmd, "reverse", input, stage("reverse"))
		},
	}
}

func newCompareCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "compare <other> [text...]",
		Short: "Compare the input with another string",
		Long: `Prints -1, 0 or 1 when the input orders before, equal to or after
other. Code units compare as unsigned values; a prefix orders first.

Examples:
  cstr compare abd abc
  echo hello | cstr compare hello`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := a.readInput(cmd, args[1:])
			if err != nil {
				return err
			}
			return a.runStages(cmd, "compare", input, stage("compare", strParam("text", args[0])))
		},
	}
}
