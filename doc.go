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

// Package eqx compares Go values for structural equivalence.
//
// Two values are equivalent when they hold the same data, member by member,
// regardless of their identity or even of their exact types: a struct can
// be equivalent to another struct type with the same fields, an int32 to an
// int64 of the same value, a slice to an array with the same elements.
//
//	err := eqx.Equivalent(got, want)
//
// returns nil, a configuration error, or a *report.Failure describing every
// discrepancy found, with its path:
//
//	Expected member Level.Level.Text to be "Level2", but found "Level3",
//	which differs near "3" (index 5).
//
// # Design
//
// The work is split in layers, each in its own package:
//
//   - classify decides how a value is compared: as null, a primitive, a
//     string, an enum, a convertible scalar, a collection, a dictionary or
//     a complex object.
//
//   - members enumerates the fields and getter properties of a type,
//     caching descriptors process-wide.
//
//   - rules holds the selection rules (which members take part) and the
//     matching rules (which subject member a given expectation member is
//     compared with).
//
//   - strategy is the immutable configuration of a comparison, assembled
//     by the fluent builder package.
//
//   - comparer walks both graphs depth-first and hands every node to an
//     ordered chain of steps (package steps); the first step that handles a
//     node stops the chain for it. User steps run first.
//
//   - cycle guards against cyclic graphs; report renders discrepancies;
//     format renders values.
//
// # Global defaults
//
// The package holds a process-wide default strategy in an immutable
// snapshot behind an atomic pointer. Readers load it without locking;
// writers (SetDefaults, ConfigureDefaults, LoadDefaults, ResetDefaults)
// take a short build lock, assemble a new snapshot and swap it in. Per-call
// options derive a new strategy from the defaults without touching them:
//
//	eqx.Equivalent(got, want,
//		eqx.Using(func(b *builder.Builder) {
//			b.Excluding("UpdatedAt").WithoutStrictOrdering()
//		}),
//		eqx.Because("the cache returns a copy"))
//
// # Concurrency model
//
// Strategies are immutable and can be shared by concurrent comparisons;
// every comparison owns its traversal state (cycle guard, discrepancies).
// Compare, Equivalent and Assert are safe for concurrent use.
package eqx
