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

// Package builder assembles strategies with a fluent API.
//
// A Builder accumulates configuration and yields a frozen
// strategy.Strategy from Build. Invalid input (a malformed member path, a
// nil predicate, a conflicting type registration) does not panic: it is
// collected and returned by Build. A Builder is not safe for concurrent use;
// the strategies it builds are.
package builder

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"dirpx.dev/eqx/apis"
	"dirpx.dev/eqx/config"
	"dirpx.dev/eqx/registry"
	"dirpx.dev/eqx/rules"
	"dirpx.dev/eqx/strategy"
)

var (
	// ErrNilPredicate is returned for a nil member predicate.
	ErrNilPredicate = errors.New("eqx(builder): nil member predicate")
	// ErrNilStep is returned for a nil comparison step.
	ErrNilStep = errors.New("eqx(builder): nil comparison step")
	// ErrInvalidDepth is returned for a negative recursion depth.
	ErrInvalidDepth = errors.New("eqx(builder): recursion depth must not be negative")
)

// Builder accumulates a strategy configuration.
type Builder struct {
	cfg       apis.Config
	selection []apis.SelectionRule
	matching  []apis.MatchingRule
	reg       *registry.Registry
	steps     []apis.Step
	formatter apis.Formatter
	logger    *slog.Logger
	errs      []error
}

// New returns a Builder starting from config.DefaultConfig.
func New() *Builder {
	return FromConfig(config.DefaultConfig())
}

// FromConfig returns a Builder starting from cfg.
func FromConfig(cfg apis.Config) *Builder {
	return &Builder{cfg: config.Normalize(cfg), reg: registry.New()}
}

// From returns a Builder starting from everything s holds.
func From(s *strategy.Strategy) *Builder {
	if s == nil {
		return New()
	}
	p := s.Params()
	return &Builder{
		cfg:       p.Config,
		selection: p.Selection,
		matching:  p.Matching,
		reg:       p.Registry,
		steps:     p.Steps,
		formatter: p.Formatter,
		logger:    p.Logger,
	}
}

func (b *Builder) fail(err error) *Builder {
	b.errs = append(b.errs, err)
	return b
}

func (b *Builder) apply(opts ...config.Option) *Builder {
	for _, opt := range opts {
		opt(&b.cfg)
	}
	return b
}

// Including restricts the comparison to the members at paths, such as
// "Age" or "Level.Level.Text". Ancestors of a path are compared as far as
// needed to reach it.
func (b *Builder) Including(paths ...string) *Builder {
	for _, p := range paths {
		if err := rules.ValidatePath(p); err != nil {
			b.fail(err)
			continue
		}
		b.selection = append(b.selection, rules.IncludePath(p))
	}
	return b
}

// IncludingMembersMatching restricts the comparison to the members accepted
// by pred. desc describes pred in failure reports.
func (b *Builder) IncludingMembersMatching(desc string, pred func(apis.MemberInfo) bool) *Builder {
	if pred == nil {
		return b.fail(ErrNilPredicate)
	}
	b.selection = append(b.selection, rules.IncludeMatching(desc, pred))
	return b
}

// Excluding removes the members at paths, and everything below them, from
// the comparison. Exclusion always wins over inclusion.
func (b *Builder) Excluding(paths ...string) *Builder {
	for _, p := range paths {
		if err := rules.ValidatePath(p); err != nil {
			b.fail(err)
			continue
		}
		b.selection = append(b.selection, rules.ExcludePath(p))
	}
	return b
}

// ExcludingMembersMatching removes the members accepted by pred.
func (b *Builder) ExcludingMembersMatching(desc string, pred func(apis.MemberInfo) bool) *Builder {
	if pred == nil {
		return b.fail(ErrNilPredicate)
	}
	b.selection = append(b.selection, rules.ExcludeMatching(desc, pred))
	return b
}

// IncludingFields compares exported fields. This is the default.
func (b *Builder) IncludingFields() *Builder {
	return b.apply(config.WithMembers(b.cfg.Members | apis.Fields))
}

// ExcludingFields stops comparing fields.
func (b *Builder) ExcludingFields() *Builder {
	return b.apply(config.WithMembers(b.cfg.Members &^ apis.Fields))
}

// IncludingProperties compares getter methods.
func (b *Builder) IncludingProperties() *Builder {
	return b.apply(config.WithMembers(b.cfg.Members | apis.Properties))
}

// ExcludingProperties stops comparing getter methods. This is the default.
func (b *Builder) ExcludingProperties() *Builder {
	return b.apply(config.WithMembers(b.cfg.Members &^ apis.Properties))
}

// IncludingAllMembers compares fields and getter methods.
func (b *Builder) IncludingAllMembers() *Builder {
	return b.apply(config.WithMembers(apis.Fields | apis.Properties))
}

// RespectingRuntimeTypes introspects the dynamic type of interface members.
func (b *Builder) RespectingRuntimeTypes() *Builder {
	return b.apply(config.WithTypes(apis.TypesRuntime))
}

// RespectingDeclaredTypes introspects the declared type of members where it
// exposes members. This is the default.
func (b *Builder) RespectingDeclaredTypes() *Builder {
	return b.apply(config.WithTypes(apis.TypesDeclared))
}

// ComparingEnumsByName compares enums by their String names.
func (b *Builder) ComparingEnumsByName() *Builder {
	return b.apply(config.WithEnums(apis.EnumByName))
}

// ComparingEnumsByValue compares enums by numeric value, also against
// plain integers.
func (b *Builder) ComparingEnumsByValue() *Builder {
	return b.apply(config.WithEnums(apis.EnumByValue))
}

// ComparingByValue compares values of types with simple equality instead
// of member by member. Interface types apply to every implementation.
func (b *Builder) ComparingByValue(types ...reflect.Type) *Builder {
	return b.register(apis.ByValue, types)
}

// ComparingByMembers compares values of types member by member, even when
// they would be compared by value otherwise.
func (b *Builder) ComparingByMembers(types ...reflect.Type) *Builder {
	return b.register(apis.ByMembers, types)
}

func (b *Builder) register(s apis.Semantics, types []reflect.Type) *Builder {
	for _, t := range types {
		if err := b.reg.Register(t, s); err != nil {
			b.fail(fmt.Errorf("%w: %v %s", err, t, s))
		}
	}
	return b
}

// IgnoringCyclicReferences silently skips branches that close a cycle.
func (b *Builder) IgnoringCyclicReferences() *Builder {
	return b.apply(config.WithCyclicReferences(apis.CycleIgnore))
}

// ThrowingOnCyclicReferences reports branches that close a cycle.
// This is the default.
func (b *Builder) ThrowingOnCyclicReferences() *Builder {
	return b.apply(config.WithCyclicReferences(apis.CycleThrow))
}

// WithMaxRecursionDepth caps the nesting depth of compared objects.
func (b *Builder) WithMaxRecursionDepth(n int) *Builder {
	if n < 0 {
		return b.fail(fmt.Errorf("%w: %d", ErrInvalidDepth, n))
	}
	return b.apply(config.WithMaxDepth(n))
}

// AllowingInfiniteRecursion removes the depth cap.
func (b *Builder) AllowingInfiniteRecursion() *Builder {
	return b.apply(config.WithInfiniteRecursion(true))
}

// ExcludingNestedObjects compares nested complex objects with simple
// equality instead of member by member.
func (b *Builder) ExcludingNestedObjects() *Builder {
	return b.apply(config.WithNestedObjects(apis.NestedSimpleEquality))
}

// IncludingNestedObjects compares nested complex objects member by member.
// This is the default.
func (b *Builder) IncludingNestedObjects() *Builder {
	return b.apply(config.WithNestedObjects(apis.NestedRecurse))
}

// ExcludingMissingMembers stops reporting members found on one side only.
func (b *Builder) ExcludingMissingMembers() *Builder {
	return b.apply(config.WithMissingMembers(apis.MissingIgnore))
}

// WithMapping compares the expectation member at expectationPath with the
// subject member at subjectPath. Two plain names map members of that name
// at any depth; paths must share their parent.
func (b *Builder) WithMapping(expectationPath, subjectPath string) *Builder {
	var (
		r   apis.MatchingRule
		err error
	)
	if isName(expectationPath) && isName(subjectPath) {
		r, err = rules.MappingNames(expectationPath, subjectPath)
	} else {
		r, err = rules.Mapping(expectationPath, subjectPath)
	}
	if err != nil {
		return b.fail(err)
	}
	b.matching = append(b.matching, r)
	return b
}

func isName(p string) bool { return !strings.ContainsAny(p, ".[") }

// WithAutoConversion converts between strings, numbers and booleans when
// the two sides have different types. This is the default.
func (b *Builder) WithAutoConversion() *Builder {
	return b.apply(config.WithAutoConversion(true))
}

// WithoutAutoConversion reports scalars of different types as a type
// mismatch instead of converting them.
func (b *Builder) WithoutAutoConversion() *Builder {
	return b.apply(config.WithAutoConversion(false))
}

// WithStrictOrdering compares collection items by position. This is the
// default.
func (b *Builder) WithStrictOrdering() *Builder {
	return b.apply(config.WithStrictOrdering(true))
}

// WithoutStrictOrdering matches collection items in any order.
func (b *Builder) WithoutStrictOrdering() *Builder {
	return b.apply(config.WithStrictOrdering(false))
}

// Using adds a comparison step that runs before the built-in steps.
func (b *Builder) Using(step apis.Step) *Builder {
	if step == nil {
		return b.fail(ErrNilStep)
	}
	b.steps = append(b.steps, step)
	return b
}

// UsingFormatter replaces the value formatter. nil restores the default.
func (b *Builder) UsingFormatter(f apis.Formatter) *Builder {
	b.formatter = f
	return b
}

// WithLogger sets the debug logger. nil restores the silent default.
func (b *Builder) WithLogger(l *slog.Logger) *Builder {
	b.logger = l
	return b
}

// Build freezes the configuration. It returns every configuration error
// collected so far, joined.
func (b *Builder) Build() (*strategy.Strategy, error) {
	if err := errors.Join(b.errs...); err != nil {
		return nil, err
	}
	return strategy.New(strategy.Params{
		Config:    b.cfg,
		Selection: b.selection,
		Matching:  b.matching,
		Registry:  b.reg,
		Steps:     b.steps,
		Formatter: b.formatter,
		Logger:    b.logger,
	}), nil
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *strategy.Strategy {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
