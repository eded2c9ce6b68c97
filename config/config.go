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

package config

import (
	"dirpx.dev/eqx/apis"
)

const (
	// DefaultMembers represents the default for Members.
	// Exported fields carry the data of Go values; getters are opt-in.
	DefaultMembers = apis.Fields
	// DefaultTypes represents the default for Types.
	DefaultTypes = apis.TypesDeclared
	// DefaultEnums represents the default for Enums.
	DefaultEnums = apis.EnumDefault
	// DefaultCyclicReferences represents the default for CyclicReferences.
	DefaultCyclicReferences = apis.CycleThrow
	// DefaultMaxDepth represents the default for MaxDepth.
	// A value of 10 matches the nesting of any sane test fixture.
	DefaultMaxDepth = 10
	// DefaultNestedObjects represents the default for NestedObjects.
	DefaultNestedObjects = apis.NestedRecurse
	// DefaultMissingMembers represents the default for MissingMembers.
	DefaultMissingMembers = apis.MissingReport
	// DefaultAutoConversion represents the default for AutoConversion.
	// Scalars of different types are converted before they are reported
	// as a type mismatch.
	DefaultAutoConversion = true
	// DefaultStrictOrdering represents the default for StrictOrdering.
	DefaultStrictOrdering = true
	// DefaultMaxUnwrap represents the default for MaxUnwrap.
	// A value of 8 should be sufficient for all practical purposes.
	DefaultMaxUnwrap = 8
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return Normalize(cfg)
}

// Normalize replaces out-of-range values with their defaults.
func Normalize(cfg apis.Config) apis.Config {
	if cfg.MaxDepth < 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	if cfg.MaxUnwrap <= 0 {
		cfg.MaxUnwrap = DefaultMaxUnwrap
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		Members:          DefaultMembers,
		Types:            DefaultTypes,
		Enums:            DefaultEnums,
		CyclicReferences: DefaultCyclicReferences,
		MaxDepth:         DefaultMaxDepth,
		NestedObjects:    DefaultNestedObjects,
		MissingMembers:   DefaultMissingMembers,
		AutoConversion:   DefaultAutoConversion,
		StrictOrdering:   DefaultStrictOrdering,
		MaxUnwrap:        DefaultMaxUnwrap,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithMembers sets the Members option.
func WithMembers(kinds apis.MemberKinds) Option {
	return func(c *apis.Config) {
		c.Members = kinds
	}
}

// WithTypes sets the Types option.
func WithTypes(src apis.TypeSource) Option {
	return func(c *apis.Config) {
		c.Types = src
	}
}

// WithEnums sets the Enums option.
func WithEnums(mode apis.EnumMode) Option {
	return func(c *apis.Config) {
		c.Enums = mode
	}
}

// WithCyclicReferences sets the CyclicReferences option.
func WithCyclicReferences(p apis.CyclePolicy) Option {
	return func(c *apis.Config) {
		c.CyclicReferences = p
	}
}

// WithMaxDepth sets the MaxDepth option and re-enables the depth cap.
// A negative value resets to the default.
func WithMaxDepth(max int) Option {
	return func(c *apis.Config) {
		c.InfiniteRecursion = false
		if max < 0 {
			c.MaxDepth = DefaultMaxDepth
			return
		}
		c.MaxDepth = max
	}
}

// WithInfiniteRecursion sets the InfiniteRecursion option.
func WithInfiniteRecursion(allow bool) Option {
	return func(c *apis.Config) {
		c.InfiniteRecursion = allow
	}
}

// WithNestedObjects sets the NestedObjects option.
func WithNestedObjects(p apis.NestedPolicy) Option {
	return func(c *apis.Config) {
		c.NestedObjects = p
	}
}

// WithMissingMembers sets the MissingMembers option.
func WithMissingMembers(p apis.MissingPolicy) Option {
	return func(c *apis.Config) {
		c.MissingMembers = p
	}
}

// WithAutoConversion sets the AutoConversion option.
func WithAutoConversion(enabled bool) Option {
	return func(c *apis.Config) {
		c.AutoConversion = enabled
	}
}

// WithStrictOrdering sets the StrictOrdering option.
func WithStrictOrdering(strict bool) Option {
	return func(c *apis.Config) {
		c.StrictOrdering = strict
	}
}

// WithMaxUnwrap sets the MaxUnwrap option.
// A non-positive value resets to the default.
func WithMaxUnwrap(max int) Option {
	return func(c *apis.Config) {
		if max <= 0 {
			c.MaxUnwrap = DefaultMaxUnwrap
			return
		}
		c.MaxUnwrap = max
	}
}
