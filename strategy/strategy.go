/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package strategy holds the immutable configuration of an equivalence
// comparison.
//
// A Strategy is built once, usually with the builder package, and is then
// read-only: it may be shared by any number of concurrent comparisons.
package strategy

import (
	"fmt"
	"log/slog"
	"strings"

	"dirpx.dev/eqx/apis"
	"dirpx.dev/eqx/config"
	"dirpx.dev/eqx/format"
	"dirpx.dev/eqx/registry"
	"dirpx.dev/eqx/rules"
	uref "dirpx.dev/eqx/utils/reflect"
)

// Params are the parts a Strategy is made of. Slices and the registry are
// copied by New, so the caller may keep mutating its own values.
type Params struct {
	// Config carries the comparison knobs. The zero value is replaced by
	// config.DefaultConfig.
	Config apis.Config
	// Selection rules, in insertion order.
	Selection []apis.SelectionRule
	// Matching rules, in insertion order. Matching by name is always
	// appended as the last rule.
	Matching []apis.MatchingRule
	// Registry holds per-type semantics overrides. It may be nil.
	Registry *registry.Registry
	// Steps run before the built-in comparison steps.
	Steps []apis.Step
	// Formatter renders values. Defaults to format.Default().
	Formatter apis.Formatter
	// Logger receives debug logs. Defaults to a discarding logger.
	Logger *slog.Logger
}

// Strategy is an immutable comparison configuration.
type Strategy struct {
	cfg       apis.Config
	selection []apis.SelectionRule
	matching  []apis.MatchingRule
	reg       *registry.Registry
	steps     []apis.Step
	formatter apis.Formatter
	logger    *slog.Logger
}

var discard = slog.New(slog.DiscardHandler)

// New freezes p into a Strategy.
func New(p Params) *Strategy {
	s := &Strategy{
		cfg:       p.Config,
		selection: append([]apis.SelectionRule(nil), p.Selection...),
		matching:  append(append([]apis.MatchingRule(nil), p.Matching...), rules.ByName()),
		steps:     append([]apis.Step(nil), p.Steps...),
		formatter: p.Formatter,
		logger:    p.Logger,
	}
	if s.cfg == (apis.Config{}) {
		s.cfg = config.DefaultConfig()
	}
	s.cfg = config.Normalize(s.cfg)
	if p.Registry != nil {
		s.reg = p.Registry.Clone()
	} else {
		s.reg = registry.New()
	}
	if s.formatter == nil {
		s.formatter = format.Default()
	}
	if s.logger == nil {
		s.logger = discard
	}
	return s
}

// Default returns a Strategy with the default configuration.
func Default() *Strategy { return New(Params{Config: config.DefaultConfig()}) }

// Config returns the comparison knobs.
func (s *Strategy) Config() apis.Config { return s.cfg }

// SelectionRules returns the selection rules in insertion order.
// The returned slice must not be modified.
func (s *Strategy) SelectionRules() []apis.SelectionRule { return s.selection }

// MatchingRules returns the matching rules in insertion order, ending with
// matching by name. The returned slice must not be modified.
func (s *Strategy) MatchingRules() []apis.MatchingRule { return s.matching }

// Registry returns the frozen per-type semantics overrides.
func (s *Strategy) Registry() apis.Registry { return s.reg }

// Steps returns the user steps. The returned slice must not be modified.
func (s *Strategy) Steps() []apis.Step { return s.steps }

// Formatter returns the value formatter.
func (s *Strategy) Formatter() apis.Formatter { return s.formatter }

// Logger returns the logger.
func (s *Strategy) Logger() *slog.Logger { return s.logger }

// Params returns the parts of s, with slices and registry copied, so a
// builder can derive a new Strategy from it.
func (s *Strategy) Params() Params {
	return Params{
		Config:    s.cfg,
		Selection: append([]apis.SelectionRule(nil), s.selection...),
		// The trailing name rule is appended again by New.
		Matching:  append([]apis.MatchingRule(nil), s.matching[:len(s.matching)-1]...),
		Registry:  s.reg.Clone(),
		Steps:     append([]apis.Step(nil), s.steps...),
		Formatter: s.formatter,
		Logger:    s.logger,
	}
}

// String describes the configuration, one "- " line per setting, for use
// in failure reports.
func (s *Strategy) String() string {
	c := s.cfg
	var lines []string
	add := func(format string, args ...any) { lines = append(lines, "- "+fmt.Sprintf(format, args...)) }

	if c.Members.Has(apis.Fields) {
		add("Include all public fields")
	}
	if c.Members.Has(apis.Properties) {
		add("Include all public properties")
	}
	if c.Types == apis.TypesRuntime {
		add("Use runtime types for member access")
	} else {
		add("Use declared types for member access")
	}
	switch c.Enums {
	case apis.EnumByName:
		add("Compare enums by name")
	case apis.EnumByValue:
		add("Compare enums by value")
	default:
		add("Compare enums by their underlying value")
	}
	if c.CyclicReferences == apis.CycleIgnore {
		add("Ignore cyclic references")
	} else {
		add("Fail on cyclic references")
	}
	if c.InfiniteRecursion {
		add("Allow infinite recursion")
	} else {
		add("Limit recursion depth to %d", c.MaxDepth)
	}
	if c.NestedObjects == apis.NestedSimpleEquality {
		add("Compare nested objects with simple equality")
	}
	if c.MissingMembers == apis.MissingIgnore {
		add("Ignore members missing on either side")
	}
	if c.AutoConversion {
		add("Try conversion of values of different types")
	} else {
		add("Do not convert values of different types")
	}
	if !c.StrictOrdering {
		add("Match collection items in any order")
	}
	for _, e := range s.reg.Entries() {
		add("Compare %s %s", uref.TypeName(e.Type), e.Semantics)
	}
	for _, r := range s.selection {
		add("%s", r)
	}
	for _, r := range s.matching {
		add("%s", r)
	}
	return strings.Join(lines, "\n")
}
