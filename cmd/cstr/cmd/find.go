// ============================================================================
// cstring - Terminated string buffers
// ============================================================================
//
// Package:     cmd
// Description: find command with reverse, all and highlight modes
// Author:      msto63
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package cmd

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	mdwerrors "github.com/msto63/cstring/foundation/core/errors"
	mdwlog "github.com/msto63/cstring/foundation/core/log"
	"github.com/msto63/cstring/foundation/utils/cstring"
)

var highlightStyle = lipgloss.NewStyle().
	Bold(true).
	Reverse(true).
	Foreground(lipgloss.Color("#F59E0B"))

// segment is a piece of the haystack, either matched or not
type segment struct {
	Text  string
	Match bool
}

type findResult struct {
	Positions []int
	Segments  []segment
}

// findIn locates needle in haystack. Positions count code units of T.
// Matches found with all do not overlap.
func findIn[T cstring.Element](haystack, needle string, reverse, all bool) findResult {
	hay := cstring.FromString[T](haystack)
	defer hay.Free()
	n := cstring.Encode[T](needle)

	var positions []int
	switch {
	case !reverse:
		for pos := 0; ; {
			p := hay.Find(pos, n)
			if p == cstring.NotFound {
				break
			}
			positions = append(positions, p)
			if !all {
				break
			}
			pos = p + len(n)
		}
	default:
		for pos := -1; ; {
			p := hay.RFind(pos, n)
			if p == cstring.NotFound {
				break
			}
			positions = append(positions, p)
			if !all || p-len(n) < 0 {
				break
			}
			pos = p - len(n)
		}
	}

	return findResult{Positions: positions, Segments: segments(hay.Data(), positions, len(n))}
}

// segments cuts data into matched and unmatched pieces
func segments[T cstring.Element](data []T, positions []int, width int) []segment {
	sorted := append([]int(nil), positions...)
	if len(sorted) > 1 && sorted[0] > sorted[len(sorted)-1] {
		for i, j := 0, len(sorted)-1; i < j; i, j = i+1, j-1 {
			sorted[i], sorted[j] = sorted[j], sorted[i]
		}
	}

	var out []segment
	last := 0
	for _, p := range sorted {
		if p > last {
			out = append(out, segment{Text: cstring.Decode(data[last:p])})
		}
		out = append(out, segment{Text: cstring.Decode(data[p : p+width]), Match: true})
		last = p + width
	}
	if last < len(data) {
		out = append(out, segment{Text: cstring.Decode(data[last:])})
	}
	return out
}

func highlight(segs []segment) string {
	var b strings.Builder
	for _, s := range segs {
		if s.Match {
			b.WriteString(highlightStyle.Render(s.Text))
		} else {
			b.WriteString(s.Text)
		}
	}
	return b.String()
}

func newFindCommand(a *app) *cobra.Command {
	var (
		reverse bool
		all     bool
		mark    bool
	)

	cmd := &cobra.Command{
		Use:   "find <needle> [text...]",
		Short: "Find a substring",
		Long: `Prints the position of needle in the input in code units of the
selected unit, or -1 when it does not occur.

Examples:
  cstr find lo "hello world"
  cstr find --all o "hello world"
  cstr find --reverse --all --highlight o "hello world"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			needle := args[0]
			if needle == "" {
				return mdwerrors.InvalidInput(mdwerrors.ModuleCLI, "find", needle, "a non-empty needle")
			}
			input, err := a.readInput(cmd, args[1:])
			if err != nil {
				return err
			}

			res := a.runner.Find(input, needle, reverse, all)
			a.logger.Debug("Find completed", mdwlog.Fields{
				"needle":  needle,
				"matches": len(res.Positions),
			})

			useHighlight := a.cfg.Output.Highlight
			if cmd.Flags().Changed("highlight") {
				useHighlight = mark
			}
			if useHighlight && a.cfg.Output.Format == "text" {
				return a.printLines(cmd, []string{highlight(res.Segments)})
			}

			positions := res.Positions
			if len(positions) == 0 && !all {
				positions = []int{cstring.NotFound}
			}
			return a.printValue(cmd, "find", input, positions)
		},
	}

	cmd.Flags().BoolVarP(&reverse, "reverse", "r", false, "search from the end")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "report every non-overlapping match")
	cmd.Flags().BoolVar(&mark, "highlight", false, "print the input with matches highlighted")
	return cmd
}
