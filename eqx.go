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
	"sync"
	"sync/atomic"

	"dirpx.dev/eqx/apis"
	"dirpx.dev/eqx/builder"
	"dirpx.dev/eqx/comparer"
	"dirpx.dev/eqx/config"
	"dirpx.dev/eqx/report"
	"dirpx.dev/eqx/steps"
	"dirpx.dev/eqx/strategy"
)

// init publishes the default snapshot.
func init() {
	st.Store(newState(strategy.Default()))
}

var (
	// ErrNoMembers is returned when a complex object has no members to compare.
	ErrNoMembers = steps.ErrNoMembers
	// ErrNotEquivalent matches every *Failure with errors.Is.
	ErrNotEquivalent = report.ErrNotEquivalent
)

// Failure is the error returned by Equivalent when discrepancies were found.
type Failure = report.Failure

// Discrepancy is one reported difference.
type Discrepancy = apis.Discrepancy

// Defaults returns the process-wide default strategy.
func Defaults() *strategy.Strategy {
	return st.Load().strategy
}

// SetDefaults replaces the process-wide default strategy. nil restores the
// built-in defaults.
func SetDefaults(s *strategy.Strategy) {
	if s == nil {
		s = strategy.Default()
	}
	buildMu.Lock()
	defer buildMu.Unlock()
	st.Store(newState(s))
}

// ConfigureDefaults derives a new default strategy from the current one.
// On error the defaults are left unchanged.
func ConfigureDefaults(configure func(*builder.Builder)) error {
	buildMu.Lock()
	defer buildMu.Unlock()

	b := builder.From(st.Load().strategy)
	if configure != nil {
		configure(b)
	}
	s, err := b.Build()
	if err != nil {
		return err
	}
	st.Store(newState(s))
	return nil
}

// LoadDefaults replaces the default configuration with the profile in the
// YAML file at path. Rules and type registrations of the current defaults
// are kept.
func LoadDefaults(path string) error {
	cfg, err := config.LoadFile(path)
	if err != nil {
		return err
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	p := st.Load().strategy.Params()
	p.Config = cfg
	st.Store(newState(strategy.New(p)))
	return nil
}

// ResetDefaults restores the built-in default strategy.
func ResetDefaults() {
	SetDefaults(nil)
}

// buildMu serializes writers so that a snapshot derived from the current
// one is never lost to a concurrent swap.
var buildMu sync.Mutex

// st is the published default snapshot.
var st atomic.Pointer[state]

// state is an immutable snapshot; writers build a new one and swap it in.
type state struct {
	// strategy is the default strategy.
	strategy *strategy.Strategy
	// comparer is bound to strategy.
	comparer *comparer.Comparer
}

func newState(s *strategy.Strategy) *state {
	return &state{strategy: s, comparer: comparer.New(s)}
}
