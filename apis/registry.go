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

import "reflect"

// Semantics forces how values of a type are compared.
type Semantics int

const (
	// ByValue compares values with simple equality instead of members.
	ByValue Semantics = iota
	// ByMembers compares values member by member, even for types that would
	// otherwise be compared by value.
	ByMembers
)

// String returns "by-value" or "by-members".
func (s Semantics) String() string {
	if s == ByMembers {
		return "by-members"
	}
	return "by-value"
}

// Registry provides per-type comparison semantics overrides.
// A registry held by a strategy is read-only and safe for concurrent use.
type Registry interface {
	// Lookup returns the semantics registered for t, its pointer element or
	// a registered interface t implements.
	Lookup(t reflect.Type) (Semantics, bool)
	// Entries returns a snapshot ordered by type name.
	Entries() []Entry
	// Count returns the number of registered entries.
	Count() int
}

// Entry is a single (type, semantics) association in a Registry snapshot.
type Entry struct {
	// Type is the registered reflect.Type.
	Type reflect.Type
	// Semantics is the associated override.
	Semantics Semantics
}
