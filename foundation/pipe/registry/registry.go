// File: registry.go
// Title: Pipeline Stage Registry
// Description: Registers stage definitions and resolves stage names,
//              aliases and generated abbreviations case-insensitively.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial registry implementation
// - 2026-10-19 v0.2.0: Stage registry with ambiguous abbreviation tracking

package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	mdwerrors "github.com/msto63/cstring/foundation/core/errors"
	mdwlog "github.com/msto63/cstring/foundation/core/log"
)

// Registry holds the available pipeline stages
type Registry struct {
	stages        map[string]*StageDefinition
	aliases       map[string]string
	abbreviations map[string]string
	ambiguous     map[string]bool
	logger        *mdwlog.Logger
	mutex         sync.RWMutex
	options       Options
}

// New creates a registry populated with the built-in stages
func New(opts Options) (*Registry, error) {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}

	r := &Registry{
		stages:        make(map[string]*StageDefinition),
		aliases:       make(map[string]string),
		abbreviations: make(map[string]string),
		ambiguous:     make(map[string]bool),
		logger:        opts.Logger.WithField("component", "pipe-registry"),
		options:       opts,
	}

	for _, def := range Builtins() {
		if err := r.Register(def); err != nil {
			return nil, fmt.Errorf("failed to register builtin stage %s: %w", def.Name, err)
		}
	}

	r.logger.Debug("Stage registry initialized", mdwlog.Fields{
		"stageCount":          len(r.stages),
		"enableAbbreviations": opts.EnableAbbreviations,
		"enableAliases":       opts.EnableAliases,
	})

	return r, nil
}

// Register adds a stage definition
func (r *Registry) Register(def *StageDefinition) error {
	if def == nil {
		return mdwerrors.InvalidInput(mdwerrors.ModulePipe, "register", nil, "stage definition")
	}
	name := strings.ToLower(strings.TrimSpace(def.Name))
	if name == "" {
		return mdwerrors.InvalidInput(mdwerrors.ModulePipe, "register", def.Name, "non-empty stage name")
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.stages[name]; exists {
		return fmt.Errorf("stage %s already registered", name)
	}

	seen := make(map[string]bool, len(def.Params))
	for _, p := range def.Params {
		if seen[p.Name] {
			return fmt.Errorf("stage %s: duplicate parameter %s", name, p.Name)
		}
		seen[p.Name] = true
	}

	def.Name = name
	r.stages[name] = def

	if r.options.EnableAliases {
		for _, alias := range def.Aliases {
			r.aliases[strings.ToLower(alias)] = name
		}
	}

	if r.options.EnableAbbreviations {
		r.updateAbbreviations()
	}

	r.logger.Debug("Stage registered", mdwlog.Fields{
		"stage":      name,
		"paramCount": len(def.Params),
		"input":      def.Input.String(),
		"output":     def.Output.String(),
	})

	return nil
}

// RegisterAlias maps alias to an existing stage
func (r *Registry) RegisterAlias(alias, stage string) error {
	if !r.options.EnableAliases {
		return fmt.Errorf("aliases are disabled in this registry")
	}
	alias = strings.ToLower(strings.TrimSpace(alias))
	if alias == "" {
		return mdwerrors.InvalidInput(mdwerrors.ModulePipe, "alias", alias, "non-empty alias")
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	target := strings.ToLower(stage)
	if _, exists := r.stages[target]; !exists {
		return mdwerrors.PipeUnknownStage(stage)
	}
	if _, exists := r.stages[alias]; exists {
		return fmt.Errorf("alias %s shadows a stage", alias)
	}

	r.aliases[alias] = target
	r.logger.Debug("Stage alias registered", mdwlog.Fields{
		"alias": alias,
		"stage": target,
	})
	return nil
}

// Resolve returns the definition for a stage name, alias or abbreviation
func (r *Registry) Resolve(name string) (*StageDefinition, error) {
	key := strings.ToLower(name)

	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if def, ok := r.stages[key]; ok {
		return def, nil
	}
	if target, ok := r.aliases[key]; ok {
		return r.stages[target], nil
	}
	if target, ok := r.abbreviations[key]; ok {
		return r.stages[target], nil
	}
	if r.ambiguous[key] {
		return nil, mdwerrors.InvalidInput(mdwerrors.ModulePipe, "resolve", name, "an unambiguous stage name")
	}
	return nil, mdwerrors.PipeUnknownStage(name)
}

// Has reports whether name resolves to a stage
func (r *Registry) Has(name string) bool {
	_, err := r.Resolve(name)
	return err == nil
}

// Names returns the sorted stage names
func (r *Registry) Names() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	names := make([]string, 0, len(r.stages))
	for name := range r.stages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Definitions returns the stage definitions sorted by name
func (r *Registry) Definitions() []*StageDefinition {
	names := r.Names()

	r.mutex.RLock()
	defer r.mutex.RUnlock()

	defs := make([]*StageDefinition, len(names))
	for i, name := range names {
		defs[i] = r.stages[name]
	}
	return defs
}

// Aliases returns a copy of the alias table
func (r *Registry) Aliases() map[string]string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	aliases := make(map[string]string, len(r.aliases))
	for k, v := range r.aliases {
		aliases[k] = v
	}
	return aliases
}

// Abbreviations returns a copy of the abbreviation table
func (r *Registry) Abbreviations() map[string]string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	abbrevs := make(map[string]string, len(r.abbreviations))
	for k, v := range r.abbreviations {
		abbrevs[k] = v
	}
	return abbrevs
}

// updateAbbreviations regenerates the abbreviation table. An abbreviation
// shared by two stages is dropped, and so is one equal to a stage name.
func (r *Registry) updateAbbreviations() {
	counts := make(map[string][]string)
	for name := range r.stages {
		abbrev := generateAbbreviation(name)
		if abbrev == name {
			continue
		}
		counts[abbrev] = append(counts[abbrev], name)
	}

	r.abbreviations = make(map[string]string, len(counts))
	r.ambiguous = make(map[string]bool)
	for abbrev, names := range counts {
		if _, isStage := r.stages[abbrev]; isStage {
			continue
		}
		if len(names) > 1 {
			r.ambiguous[abbrev] = true
			continue
		}
		r.abbreviations[abbrev] = names[0]
	}
}

// generateAbbreviation keeps the first letter and the following consonants
// up to three letters, falling back to the first three letters
func generateAbbreviation(name string) string {
	if len(name) <= 3 {
		return name
	}

	var abbrev strings.Builder
	for i, ch := range name {
		if i == 0 || (!isVowel(ch) && ch != '_' && ch != '-') {
			abbrev.WriteRune(ch)
			if abbrev.Len() >= 3 {
				break
			}
		}
	}

	if abbrev.Len() >= 3 {
		return abbrev.String()
	}
	return name[:3]
}

func isVowel(ch rune) bool {
	return strings.ContainsRune("aeiou", ch)
}
