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

// Config carries the read-only comparison knobs of a strategy.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// Members selects which member kinds (fields, getter properties)
	// participate in structural comparison.
	Members MemberKinds

	// Types controls whether the declared (static) or the runtime (dynamic)
	// type of a member drives member introspection.
	Types TypeSource

	// Enums selects how enum values are compared.
	Enums EnumMode

	// CyclicReferences decides what happens when the subject graph closes
	// a cycle on the active path.
	CyclicReferences CyclePolicy

	// MaxDepth limits the nesting depth of collections and complex objects.
	// Ignored when InfiniteRecursion is set.
	MaxDepth int

	// InfiniteRecursion disables the MaxDepth cap.
	InfiniteRecursion bool

	// NestedObjects controls whether members holding complex objects are
	// compared structurally or by simple equality.
	NestedObjects NestedPolicy

	// MissingMembers controls whether unmatched members are reported.
	MissingMembers MissingPolicy

	// AutoConversion enables string <-> number/bool conversion of scalars.
	// Enabled by default. Numeric widening between number kinds is always
	// performed.
	AutoConversion bool

	// StrictOrdering requires collection elements to appear in the same
	// positions on both sides. When false, elements are matched in any order.
	StrictOrdering bool

	// MaxUnwrap limits pointer/interface unwrapping during classification.
	// Acts as a safety guard against pathological pointer chains.
	MaxUnwrap int
}
