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

// Package comparer runs equivalence comparisons.
//
// A Comparer walks the subject and expectation graphs depth-first and hands
// every node to an ordered chain of steps: the strategy's user steps, then
// the built-in steps of package steps. The first step that handles a node
// stops the chain for it.
package comparer

import (
	"context"
	"log/slog"
	"reflect"

	"dirpx.dev/eqx/apis"
	"dirpx.dev/eqx/strategy"
	"dirpx.dev/eqx/steps"
	uref "dirpx.dev/eqx/utils/reflect"
)

// Comparer is an immutable, order-preserving chain of steps bound to a
// strategy. It is safe for concurrent use provided the user steps are.
type Comparer struct {
	strategy *strategy.Strategy
	chain    []apis.Step
}

// New returns a Comparer for s. A nil s means strategy.Default().
func New(s *strategy.Strategy) *Comparer {
	if s == nil {
		s = strategy.Default()
	}
	user := s.Steps()
	builtin := steps.Defaults()
	chain := make([]apis.Step, 0, len(user)+len(builtin))
	for _, st := range user {
		// Filter out nils to avoid nil-interface panics in the chain.
		if st != nil {
			chain = append(chain, st)
		}
	}
	chain = append(chain, builtin...)
	return &Comparer{strategy: s, chain: chain}
}

// Strategy returns the strategy the comparer runs with.
func (c *Comparer) Strategy() *strategy.Strategy { return c.strategy }

// Compare compares subject with expectation. reason, typically built with
// report.Because, is attached to every discrepancy.
//
// The error is a configuration error: an invalid path rule, a type without
// members to compare or a panicking getter. Discrepancies are not errors.
func (c *Comparer) Compare(subject, expectation any, reason string) ([]apis.Discrepancy, error) {
	return c.CompareValues(reflect.ValueOf(subject), reflect.ValueOf(expectation), reason)
}

// CompareValues is Compare for values already held in reflect.Values.
func (c *Comparer) CompareValues(subject, expectation reflect.Value, reason string) ([]apis.Discrepancy, error) {
	var declared, runtime reflect.Type
	if expectation.IsValid() {
		declared = expectation.Type()
	}
	if rv := uref.Unwrap(expectation); rv.IsValid() {
		runtime = rv.Type()
	}
	if err := c.strategy.Validate(declared); err != nil {
		return nil, err
	}

	r := newRun(c, reason)
	root := &apis.Node{
		Subject:      subject,
		Expectation:  expectation,
		DeclaredType: declared,
		RuntimeType:  runtime,
	}
	r.Recurse(root)

	log := c.strategy.Logger()
	if r.err != nil {
		log.LogAttrs(context.Background(), slog.LevelDebug, "eqx: comparison aborted",
			slog.String("expectation", typeName(expectation)),
			slog.String("error", r.err.Error()))
		return nil, r.err
	}
	log.LogAttrs(context.Background(), slog.LevelDebug, "eqx: comparison done",
		slog.String("subject", typeName(subject)),
		slog.String("expectation", typeName(expectation)),
		slog.Int("discrepancies", len(r.ds)))
	return r.ds, nil
}

// Compare compares subject with expectation using s.
func Compare(subject, expectation any, s *strategy.Strategy) ([]apis.Discrepancy, error) {
	return New(s).Compare(subject, expectation, "")
}

func typeName(v reflect.Value) string {
	if !v.IsValid() {
		return "<nil>"
	}
	return uref.TypeName(v.Type())
}
