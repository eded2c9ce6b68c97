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

package builder_test

import (
	"bytes"
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"dirpx.dev/eqx/apis"
	"dirpx.dev/eqx/builder"
	"dirpx.dev/eqx/config"
	"dirpx.dev/eqx/format"
	"dirpx.dev/eqx/registry"
	"dirpx.dev/eqx/rules"
)

type money struct{ Cents int }

// TestNew_Defaults asserts that an untouched builder yields the default
// configuration and only the name matching rule.
func TestNew_Defaults(t *testing.T) {
	s, err := builder.New().Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got, want := s.Config(), config.DefaultConfig(); got != want {
		t.Fatalf("config mismatch:\n got=%+v\nwant=%+v", got, want)
	}
	if n := len(s.SelectionRules()); n != 0 {
		t.Fatalf("unexpected selection rules: %d", n)
	}
	if m := s.MatchingRules(); len(m) != 1 || m[0].String() != "Match members by name" {
		t.Fatalf("expected the name matching rule only, got %v", m)
	}
	if s.Registry().Count() != 0 {
		t.Fatal("registry should be empty")
	}
	if s.Formatter() != format.Default() {
		t.Fatal("expected the default formatter")
	}
	if s.Logger() == nil {
		t.Fatal("logger must never be nil")
	}
}

func TestSetters(t *testing.T) {
	tests := []struct {
		name  string
		build func(*builder.Builder)
		check func(apis.Config) bool
	}{
		{"properties", func(b *builder.Builder) { b.IncludingProperties() },
			func(c apis.Config) bool { return c.Members == apis.Fields|apis.Properties }},
		{"no fields", func(b *builder.Builder) { b.IncludingProperties().ExcludingFields() },
			func(c apis.Config) bool { return c.Members == apis.Properties }},
		{"all members", func(b *builder.Builder) { b.IncludingAllMembers().ExcludingProperties() },
			func(c apis.Config) bool { return c.Members == apis.Fields }},
		{"runtime types", func(b *builder.Builder) { b.RespectingRuntimeTypes() },
			func(c apis.Config) bool { return c.Types == apis.TypesRuntime }},
		{"declared types", func(b *builder.Builder) { b.RespectingRuntimeTypes().RespectingDeclaredTypes() },
			func(c apis.Config) bool { return c.Types == apis.TypesDeclared }},
		{"enums by name", func(b *builder.Builder) { b.ComparingEnumsByName() },
			func(c apis.Config) bool { return c.Enums == apis.EnumByName }},
		{"enums by value", func(b *builder.Builder) { b.ComparingEnumsByValue() },
			func(c apis.Config) bool { return c.Enums == apis.EnumByValue }},
		{"ignore cycles", func(b *builder.Builder) { b.IgnoringCyclicReferences() },
			func(c apis.Config) bool { return c.CyclicReferences == apis.CycleIgnore }},
		{"throw on cycles", func(b *builder.Builder) { b.IgnoringCyclicReferences().ThrowingOnCyclicReferences() },
			func(c apis.Config) bool { return c.CyclicReferences == apis.CycleThrow }},
		{"depth", func(b *builder.Builder) { b.WithMaxRecursionDepth(4) },
			func(c apis.Config) bool { return c.MaxDepth == 4 && !c.InfiniteRecursion }},
		{"zero depth", func(b *builder.Builder) { b.WithMaxRecursionDepth(0) },
			func(c apis.Config) bool { return c.MaxDepth == 0 }},
		{"infinite", func(b *builder.Builder) { b.AllowingInfiniteRecursion() },
			func(c apis.Config) bool { return c.InfiniteRecursion }},
		{"depth after infinite", func(b *builder.Builder) { b.AllowingInfiniteRecursion().WithMaxRecursionDepth(5) },
			func(c apis.Config) bool { return c.MaxDepth == 5 && !c.InfiniteRecursion }},
		{"simple equality", func(b *builder.Builder) { b.ExcludingNestedObjects() },
			func(c apis.Config) bool { return c.NestedObjects == apis.NestedSimpleEquality }},
		{"nested again", func(b *builder.Builder) { b.ExcludingNestedObjects().IncludingNestedObjects() },
			func(c apis.Config) bool { return c.NestedObjects == apis.NestedRecurse }},
		{"missing members", func(b *builder.Builder) { b.ExcludingMissingMembers() },
			func(c apis.Config) bool { return c.MissingMembers == apis.MissingIgnore }},
		{"no auto conversion", func(b *builder.Builder) { b.WithoutAutoConversion() },
			func(c apis.Config) bool { return !c.AutoConversion }},
		{"auto conversion", func(b *builder.Builder) { b.WithoutAutoConversion().WithAutoConversion() },
			func(c apis.Config) bool { return c.AutoConversion }},
		{"unordered", func(b *builder.Builder) { b.WithoutStrictOrdering() },
			func(c apis.Config) bool { return !c.StrictOrdering }},
		{"ordered", func(b *builder.Builder) { b.WithoutStrictOrdering().WithStrictOrdering() },
			func(c apis.Config) bool { return c.StrictOrdering }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := builder.New()
			tt.build(b)
			s, err := b.Build()
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if !tt.check(s.Config()) {
				t.Fatalf("unexpected config: %+v", s.Config())
			}
		})
	}
}

// TestBuild_CollectsErrors asserts that invalid input never panics and that
// Build reports every problem at once.
func TestBuild_CollectsErrors(t *testing.T) {
	b := builder.New().
		Including("").
		Excluding("Name()").
		IncludingMembersMatching("nothing", nil).
		Using(nil).
		WithMaxRecursionDepth(-1).
		WithMapping("A.B", "C.D").
		ComparingByValue(reflect.TypeOf(money{})).
		ComparingByMembers(reflect.TypeOf(money{}))

	_, err := b.Build()
	if err == nil {
		t.Fatal("expected an error")
	}
	for _, want := range []error{
		rules.ErrEmptyPath,
		rules.ErrNotAMember,
		builder.ErrNilPredicate,
		builder.ErrNilStep,
		builder.ErrInvalidDepth,
		rules.ErrMappingParents,
		registry.ErrConflictingRegistration,
	} {
		if !errors.Is(err, want) {
			t.Errorf("error %q does not wrap %q", err, want)
		}
	}
}

func TestMustBuild_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("MustBuild should panic on invalid input")
		}
	}()
	builder.New().Using(nil).MustBuild()
}

// TestFrom_DoesNotShareState asserts that deriving a strategy never mutates
// the strategy it was derived from.
func TestFrom_DoesNotShareState(t *testing.T) {
	base := builder.New().Including("Age").WithMapping("FullName", "Name").MustBuild()

	derived := builder.From(base).
		Excluding("Name").
		WithMapping("Id", "ID").
		ComparingByValue(reflect.TypeOf(money{})).
		ComparingEnumsByName().
		MustBuild()

	if n := len(base.SelectionRules()); n != 1 {
		t.Fatalf("base selection rules changed: %d", n)
	}
	if n := len(base.MatchingRules()); n != 2 {
		t.Fatalf("base matching rules changed: %d", n)
	}
	if base.Registry().Count() != 0 {
		t.Fatal("base registry changed")
	}
	if base.Config().Enums != apis.EnumDefault {
		t.Fatal("base config changed")
	}

	if n := len(derived.SelectionRules()); n != 2 {
		t.Fatalf("derived selection rules: %d", n)
	}
	// Two mappings plus the trailing name rule.
	if n := len(derived.MatchingRules()); n != 3 {
		t.Fatalf("derived matching rules: %d", n)
	}
	if derived.Registry().Count() != 1 {
		t.Fatal("derived registry should hold money")
	}
}

func TestFrom_Nil(t *testing.T) {
	s := builder.From(nil).MustBuild()
	if s.Config() != config.DefaultConfig() {
		t.Fatal("From(nil) should start from the defaults")
	}
}

func TestFromConfig(t *testing.T) {
	cfg := config.NewConfig(config.WithEnums(apis.EnumByName), config.WithMaxDepth(2))
	s := builder.FromConfig(cfg).MustBuild()
	if s.Config() != cfg {
		t.Fatalf("config mismatch: %+v", s.Config())
	}
}

func TestWithMapping(t *testing.T) {
	s := builder.New().
		WithMapping("FullName", "Name").
		WithMapping("Customer.FullName", "Customer.Name").
		MustBuild()

	m := s.MatchingRules()
	if len(m) != 3 {
		t.Fatalf("expected 3 matching rules, got %d", len(m))
	}
	desc := s.String()
	for _, want := range []string{
		"- Map expectation members named FullName to subject members named Name",
		"- Map expectation member Customer.FullName to subject member Name",
		"- Match members by name",
	} {
		if !strings.Contains(desc, want) {
			t.Errorf("description lacks %q:\n%s", want, desc)
		}
	}
}

func TestUsingFormatterAndLogger(t *testing.T) {
	f := format.New(format.WithMaxItems(2))
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, nil))

	s := builder.New().UsingFormatter(f).WithLogger(l).MustBuild()
	if s.Formatter() != f {
		t.Fatal("formatter not applied")
	}
	if s.Logger() != l {
		t.Fatal("logger not applied")
	}

	s = builder.From(s).UsingFormatter(nil).WithLogger(nil).MustBuild()
	if s.Formatter() != format.Default() {
		t.Fatal("nil formatter should restore the default")
	}
}
