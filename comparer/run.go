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

package comparer

import (
	"context"
	"log/slog"
	"reflect"

	"dirpx.dev/eqx/apis"
	"dirpx.dev/eqx/classify"
	"dirpx.dev/eqx/cycle"
)

// run is the state of one top-level comparison. It implements apis.Context
// and is never shared between comparisons.
type run struct {
	chain     []apis.Step
	cfg       apis.Config
	reg       apis.Registry
	formatter apis.Formatter
	selection []apis.SelectionRule
	matching  []apis.MatchingRule
	logger    *slog.Logger

	guard   *cycle.Guard
	reason  string
	ds      []apis.Discrepancy
	err     error
	probing int
}

// Ensure run implements apis.Context.
var _ apis.Context = (*run)(nil)

func newRun(c *Comparer, reason string) *run {
	s := c.strategy
	return &run{
		chain:     c.chain,
		cfg:       s.Config(),
		reg:       s.Registry(),
		formatter: s.Formatter(),
		selection: s.SelectionRules(),
		matching:  s.MatchingRules(),
		logger:    s.Logger(),
		guard:     cycle.New(),
		reason:    reason,
	}
}

func (r *run) Config() apis.Config { return r.cfg }
func (r *run) Registry() apis.Registry { return r.reg }
func (r *run) Formatter() apis.Formatter { return r.formatter }
func (r *run) SelectionRules() []apis.SelectionRule { return r.selection }
func (r *run) MatchingRules() []apis.MatchingRule { return r.matching }
func (r *run) Logger() *slog.Logger { return r.logger }
func (r *run) Failed() bool { return r.err != nil }

// Classify unwraps and classifies v.
func (r *run) Classify(v reflect.Value) (reflect.Value, apis.Class) {
	return classify.Resolve(v, r.reg, r.cfg.MaxUnwrap)
}

// Recurse classifies both sides of node and runs the chain until a step
// handles it.
func (r *run) Recurse(node *apis.Node) {
	if r.err != nil {
		return
	}
	node.SubjectValue, node.SubjectClass = r.Classify(node.Subject)
	node.ExpectationValue, node.ExpectationClass = r.Classify(node.Expectation)
	for _, st := range r.chain {
		if st.Handle(r, node) {
			return
		}
	}
}

// Probe compares node into a scratch list and reports whether it came out
// clean. Nothing found while probing is reported or logged.
func (r *run) Probe(node *apis.Node) bool {
	saved := r.ds
	r.ds = nil
	r.probing++
	r.Recurse(node)
	clean := len(r.ds) == 0
	r.probing--
	r.ds = saved
	return clean && r.err == nil
}

// Report records d, attaching the comparison reason.
func (r *run) Report(d apis.Discrepancy) {
	if d.Reason == "" {
		d.Reason = r.reason
	}
	if r.probing == 0 && r.logger.Enabled(context.Background(), slog.LevelDebug) {
		r.logger.LogAttrs(context.Background(), slog.LevelDebug, "eqx: discrepancy",
			slog.String("path", d.Path),
			slog.String("kind", d.Kind.String()),
			slog.String("subject", d.Subject),
			slog.String("expectation", d.Expectation))
	}
	r.ds = append(r.ds, d)
}

// Fail aborts the comparison. Only the first error is kept.
func (r *run) Fail(err error) {
	if r.err == nil && err != nil {
		r.err = err
	}
}

// Track pushes the identity of v onto the active path.
func (r *run) Track(v reflect.Value) (leave func(), cyclic bool) {
	id, ok := cycle.IdentityOf(v)
	if !ok {
		return func() {}, false
	}
	if !r.guard.Enter(id) {
		return nil, true
	}
	return func() { r.guard.Leave(id) }, false
}
