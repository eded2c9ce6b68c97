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

// AccessKind tells how a member is read.
type AccessKind int

const (
	// FieldAccess reads a struct field.
	FieldAccess AccessKind = iota
	// PropertyAccess calls a getter method with no parameters and one result.
	PropertyAccess
)

// String returns "field" or "property".
func (k AccessKind) String() string {
	if k == PropertyAccess {
		return "property"
	}
	return "field"
}

// Visibility of a member accessor.
type Visibility int

const (
	// NoAccessor means the accessor does not exist.
	NoAccessor Visibility = iota
	// Private accessors are unexported.
	Private
	// Public accessors are exported.
	Public
)

// Member describes one field or property candidate for comparison.
// Members are computed once per type and never mutated.
type Member struct {
	// Name is the member name as written in Go source.
	Name string
	// DeclaringType is the struct or interface type that declares the member.
	// For promoted fields it is the embedded struct type.
	DeclaringType reflect.Type
	// Type is the declared (static) type of the member value.
	Type reflect.Type
	// Access tells whether the member is a field or a getter.
	Access AccessKind
	// Getter is the visibility of the read accessor.
	Getter Visibility
	// Setter is the visibility of the write accessor.
	Setter Visibility
	// Indexer marks methods that take parameters. They are never compared.
	Indexer bool
	// Index is the field index sequence for reflect.Value.FieldByIndex.
	Index []int
}

// Readable reports whether the member can be read and compared.
func (m Member) Readable() bool {
	return m.Getter == Public && !m.Indexer
}

// MemberInfo is the context handed to selection and matching rules.
type MemberInfo struct {
	// Path is the full path of the member, e.g. "Orders[2].Customer.Name".
	Path string
	// Member is the candidate descriptor.
	Member Member
	// ParentType is the type whose members are being selected.
	ParentType reflect.Type
}
