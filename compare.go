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

package eqx

import (
	"testing"

	"dirpx.dev/eqx/builder"
	"dirpx.dev/eqx/comparer"
	"dirpx.dev/eqx/report"
	"dirpx.dev/eqx/strategy"
)

// Option customizes a single comparison.
type Option func(*options)

type options struct {
	strategy  *strategy.Strategy
	configure []func(*builder.Builder)
	reason    string
	color     bool
}

// WithStrategy compares with s instead of the defaults.
func WithStrategy(s *strategy.Strategy) Option {
	return func(o *options) { o.strategy = s }
}

// Using adjusts the strategy for this comparison only.
func Using(configure func(*builder.Builder)) Option {
	return func(o *options) {
		if configure != nil {
			o.configure = append(o.configure, configure)
		}
	}
}

// Because explains why the values are expected to be equivalent. The
// reason is added to every reported discrepancy.
func Because(format string, args ...any) Option {
	return func(o *options) { o.reason = report.Because(format, args...) }
}

// WithColor colours the failure message.
func WithColor(enabled bool) Option {
	return func(o *options) { o.color = enabled }
}

func (o *options) comparer() (*comparer.Comparer, error) {
	cur := st.Load()
	s := o.strategy
	if s == nil {
		s = cur.strategy
	}
	if len(o.configure) > 0 {
		b := builder.From(s)
		for _, fn := range o.configure {
			fn(b)
		}
		var err error
		if s, err = b.Build(); err != nil {
			return nil, err
		}
	}
	if s == cur.strategy {
		return cur.comparer, nil
	}
	return comparer.New(s), nil
}

func collect(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

// Compare returns every discrepancy between subject and expectation. The
// error reports an invalid configuration, never a difference.
func Compare(subject, expectation any, opts ...Option) ([]Discrepancy, error) {
	o := collect(opts)
	c, err := o.comparer()
	if err != nil {
		return nil, err
	}
	return c.Compare(subject, expectation, o.reason)
}

// Equivalent returns nil when subject is equivalent to expectation, a
// *Failure listing every discrepancy when it is not, or a configuration
// error.
func Equivalent(subject, expectation any, opts ...Option) error {
	o := collect(opts)
	c, err := o.comparer()
	if err != nil {
		return err
	}
	ds, err := c.Compare(subject, expectation, o.reason)
	if err != nil {
		return err
	}
	if !report.HasFailures(ds) {
		return nil
	}
	return report.NewFailure(ds,
		report.WithColor(o.color),
		report.WithConfiguration(c.Strategy().String()))
}

// Assert reports a test error through t when subject is not equivalent to
// expectation, and returns whether it was.
func Assert(t testing.TB, subject, expectation any, opts ...Option) bool {
	t.Helper()
	if err := Equivalent(subject, expectation, opts...); err != nil {
		t.Errorf("%v", err)
		return false
	}
	return true
}
