// ============================================================================
// cstring - Terminated string buffers
// ============================================================================
//
// Package:     cmd
// Description: Input reading and text, JSON or YAML result rendering
// Author:      msto63
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	mdwerrors "github.com/msto63/cstring/foundation/core/errors"
	mdwlog "github.com/msto63/cstring/foundation/core/log"
	"github.com/msto63/cstring/foundation/pipe/registry"
	"github.com/msto63/cstring/foundation/utils/cstring"
)

// readInput returns the text to work on: the --input file, the arguments
// joined by spaces, or stdin.
func (a *app) readInput(cmd *cobra.Command, args []string) (string, error) {
	switch {
	case a.inputFile != "" && a.inputFile != "-":
		f, err := os.Open(a.inputFile)
		if err != nil {
			return "", mdwerrors.OperationFailed(mdwerrors.ModuleCLI, "readInput", err).
				WithDetail("path", a.inputFile)
		}
		defer f.Close()
		return a.readStream(f)

	case a.inputFile == "" && len(args) > 0:
		return strings.Join(args, " "), nil

	default:
		return a.readStream(cmd.InOrStdin())
	}
}

// readStream reads r through a byte buffer filled in place
func (a *app) readStream(r io.Reader) (string, error) {
	buf := cstring.New[byte]()
	defer buf.Free()

	n, err := cstring.ReadFrom(buf, r)
	if err != nil {
		return "", mdwerrors.OperationFailed(mdwerrors.ModuleCLI, "readInput", err)
	}
	a.logger.Trace("Input read", mdwlog.Fields{"bytes": n})

	if !a.keepNewline {
		if c, ok := buf.Back(); ok && c == '\n' {
			buf.PopBack()
			if c, ok := buf.Back(); ok && c == '\r' {
				buf.PopBack()
			}
		}
	}
	return buf.String(), nil
}

// valueOutput is the structured form of a single command result
type valueOutput struct {
	Command string      `json:"command" yaml:"command"`
	Unit    string      `json:"unit" yaml:"unit"`
	Input   string      `json:"input" yaml:"input"`
	Result  interface{} `json:"result" yaml:"result"`
}

// pipelineOutput is the structured form of a pipeline run
type pipelineOutput struct {
	ID         string        `json:"id" yaml:"id"`
	Expression string        `json:"expression" yaml:"expression"`
	Unit       string        `json:"unit" yaml:"unit"`
	Kind       string        `json:"kind" yaml:"kind"`
	Input      string        `json:"input" yaml:"input"`
	Result     interface{}   `json:"result" yaml:"result"`
	Stages     []stageOutput `json:"stages" yaml:"stages"`
	DurationMs float64       `json:"duration_ms" yaml:"duration_ms"`
}

type stageOutput struct {
	Name       string  `json:"name" yaml:"name"`
	Input      string  `json:"input" yaml:"input"`
	Output     string  `json:"output" yaml:"output"`
	DurationMs float64 `json:"duration_ms" yaml:"duration_ms"`
}

// printValue renders the result of a simple command
func (a *app) printValue(cmd *cobra.Command, command, input string, result interface{}) error {
	if a.cfg.Output.Format == "text" {
		return a.printLines(cmd, textLines(result))
	}
	return a.encode(cmd.OutOrStdout(), valueOutput{
		Command: command,
		Unit:    a.runner.Unit(),
		Input:   input,
		Result:  result,
	})
}

// printOutcome renders a pipeline result
func (a *app) printOutcome(cmd *cobra.Command, expr, input string, out *outcome) error {
	var result interface{} = out.Output
	if out.Kind == registry.KindArray {
		result = out.Elements
		if out.Elements == nil {
			result = []string{}
		}
	}

	if a.cfg.Output.Format == "text" {
		return a.printLines(cmd, textLines(result))
	}

	stages := make([]stageOutput, len(out.Stages))
	for i, s := range out.Stages {
		stages[i] = stageOutput{Name: s.Name, Input: s.Input, Output: s.Output, DurationMs: millis(s.Duration.Microseconds())}
	}
	return a.encode(cmd.OutOrStdout(), pipelineOutput{
		ID:         out.ID,
		Expression: expr,
		Unit:       a.runner.Unit(),
		Kind:       out.Kind.String(),
		Input:      input,
		Result:     result,
		Stages:     stages,
		DurationMs: millis(out.Duration.Microseconds()),
	})
}

func (a *app) printLines(cmd *cobra.Command, lines []string) error {
	w := cmd.OutOrStdout()
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}

// encode writes v as JSON or YAML according to the output format
func (a *app) encode(w io.Writer, v interface{}) error {
	switch a.cfg.Output.Format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return mdwerrors.InvalidInput(mdwerrors.ModuleCLI, "output", a.cfg.Output.Format, "text, json or yaml")
}

func textLines(v interface{}) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []string:
		return t
	case []int:
		lines := make([]string, len(t))
		for i, n := range t {
			lines[i] = strconv.Itoa(n)
		}
		return lines
	default:
		return []string{fmt.Sprint(t)}
	}
}

func millis(us int64) float64 {
	return float64(us) / 1000
}
