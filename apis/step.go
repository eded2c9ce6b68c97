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

package apis

import (
	"log/slog"
	"reflect"
)

// Step is one link of the comparison chain. A comparer runs its steps in
// order until one of them handles the node.
type Step interface {
	// Handle compares node and reports discrepancies through ctx.
	// It returns false to fall through to the next step.
	Handle(ctx Context, node *Node) (handled bool)
}

// StepFunc adapts a function to the Step interface.
type StepFunc func(ctx Context, node *Node) bool

// Handle calls f(ctx, node).
func (f StepFunc) Handle(ctx Context, node *Node) bool { return f(ctx, node) }

// Context is the view of a running comparison handed to steps.
// It is owned by a single top-level comparison and is not safe for
// concurrent use.
type Context interface {
	// Config returns the strategy knobs.
	Config() Config
	// Registry returns the per-type semantics overrides.
	Registry() Registry
	// Formatter renders values for discrepancy descriptions.
	Formatter() Formatter
	// SelectionRules returns the ordered selection rules.
	SelectionRules() []SelectionRule
	// MatchingRules returns the ordered matching rules.
	MatchingRules() []MatchingRule
	// Logger returns the comparison logger.
	Logger() *slog.Logger

	// Classify unwraps pointers and interfaces of v and returns the resulting
	// value together with its comparison class.
	Classify(v reflect.Value) (reflect.Value, Class)
	// Recurse compares a child node.
	Recurse(node *Node)
	// Probe compares node without reporting and tells whether it is equivalent.
	Probe(node *Node) bool
	// Report records a discrepancy.
	Report(d Discrepancy)
	// Fail aborts the comparison with a configuration error.
	Fail(err error)
	// Failed reports whether the comparison has been aborted.
	Failed() bool
	// Track marks the identity of v as active on the current path. cyclic is
	// true when it already was; leave must then not be called. Values without
	// identity are never cyclic and get a no-op leave.
	Track(v reflect.Value) (leave func(), cyclic bool)
}
