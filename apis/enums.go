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
	"fmt"
	"strings"
)

// EnumMode selects how enum values are compared.
//
// # Values
//
//   - EnumDefault: both sides must be enums; they are equivalent when their
//     underlying numeric values match, even across enum types.
//   - EnumByValue: only the numeric value matters; an enum may be compared
//     against any integer.
//   - EnumByName: the symbolic names (String()) are compared case-sensitively.
//
// The textual forms are "default", "by-value" and "by-name". They are used by
// configuration files and MUST remain stable.
type EnumMode int

const (
	// EnumDefault compares enums by numeric value and requires both sides to be enums.
	EnumDefault EnumMode = iota
	// EnumByValue compares the numeric value only.
	EnumByValue
	// EnumByName compares the symbolic names.
	EnumByName
)

var enumModeNames = []string{"default", "by-value", "by-name"}

// String returns a stable, human-readable representation.
// Unknown values are rendered as "Unknown(<n>)" and never panic.
func (m EnumMode) String() string { return enumString(int(m), enumModeNames) }

// ParseEnumMode parses the textual form of an EnumMode (case-insensitive).
func ParseEnumMode(s string) (EnumMode, error) {
	i, err := enumParse("enum mode", s, enumModeNames)
	return EnumMode(i), err
}

// MarshalText implements encoding.TextMarshaler.
func (m EnumMode) MarshalText() ([]byte, error) {
	return enumMarshal("enum mode", int(m), enumModeNames)
}

// UnmarshalText implements encoding.TextUnmarshaler. On failure m is left unchanged.
func (m *EnumMode) UnmarshalText(text []byte) error {
	v, err := ParseEnumMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// CyclePolicy decides what happens when a cyclic reference is found.
type CyclePolicy int

const (
	// CycleThrow reports a CyclicReferenceDetected discrepancy and stops
	// descending into that branch.
	CycleThrow CyclePolicy = iota
	// CycleIgnore silently skips the branch that closes the cycle.
	CycleIgnore
)

var cyclePolicyNames = []string{"throw", "ignore"}

// String returns a stable, human-readable representation.
func (p CyclePolicy) String() string { return enumString(int(p), cyclePolicyNames) }

// ParseCyclePolicy parses the textual form of a CyclePolicy (case-insensitive).
func ParseCyclePolicy(s string) (CyclePolicy, error) {
	i, err := enumParse("cycle policy", s, cyclePolicyNames)
	return CyclePolicy(i), err
}

// MarshalText implements encoding.TextMarshaler.
func (p CyclePolicy) MarshalText() ([]byte, error) {
	return enumMarshal("cycle policy", int(p), cyclePolicyNames)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *CyclePolicy) UnmarshalText(text []byte) error {
	v, err := ParseCyclePolicy(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// NestedPolicy controls how members holding complex objects are compared.
type NestedPolicy int

const (
	// NestedRecurse compares nested objects member by member.
	NestedRecurse NestedPolicy = iota
	// NestedSimpleEquality compares nested objects with simple equality
	// (Equal method, == or reflect.DeepEqual) without descending.
	NestedSimpleEquality
)

var nestedPolicyNames = []string{"recurse", "simple-equality"}

// String returns a stable, human-readable representation.
func (p NestedPolicy) String() string { return enumString(int(p), nestedPolicyNames) }

// ParseNestedPolicy parses the textual form of a NestedPolicy (case-insensitive).
func ParseNestedPolicy(s string) (NestedPolicy, error) {
	i, err := enumParse("nested policy", s, nestedPolicyNames)
	return NestedPolicy(i), err
}

// MarshalText implements encoding.TextMarshaler.
func (p NestedPolicy) MarshalText() ([]byte, error) {
	return enumMarshal("nested policy", int(p), nestedPolicyNames)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *NestedPolicy) UnmarshalText(text []byte) error {
	v, err := ParseNestedPolicy(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// MissingPolicy controls whether unmatched members are reported.
type MissingPolicy int

const (
	// MissingReport reports members that exist on only one side.
	MissingReport MissingPolicy = iota
	// MissingIgnore silently skips unmatched members.
	MissingIgnore
)

var missingPolicyNames = []string{"report", "ignore"}

// String returns a stable, human-readable representation.
func (p MissingPolicy) String() string { return enumString(int(p), missingPolicyNames) }

// ParseMissingPolicy parses the textual form of a MissingPolicy (case-insensitive).
func ParseMissingPolicy(s string) (MissingPolicy, error) {
	i, err := enumParse("missing-member policy", s, missingPolicyNames)
	return MissingPolicy(i), err
}

// MarshalText implements encoding.TextMarshaler.
func (p MissingPolicy) MarshalText() ([]byte, error) {
	return enumMarshal("missing-member policy", int(p), missingPolicyNames)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *MissingPolicy) UnmarshalText(text []byte) error {
	v, err := ParseMissingPolicy(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// TypeSource selects which type drives member introspection.
type TypeSource int

const (
	// TypesDeclared uses the static type of a member.
	TypesDeclared TypeSource = iota
	// TypesRuntime uses the dynamic type of the value held by a member.
	TypesRuntime
)

var typeSourceNames = []string{"declared", "runtime"}

// String returns a stable, human-readable representation.
func (s TypeSource) String() string { return enumString(int(s), typeSourceNames) }

// ParseTypeSource parses the textual form of a TypeSource (case-insensitive).
func ParseTypeSource(s string) (TypeSource, error) {
	i, err := enumParse("type source", s, typeSourceNames)
	return TypeSource(i), err
}

// MarshalText implements encoding.TextMarshaler.
func (s TypeSource) MarshalText() ([]byte, error) {
	return enumMarshal("type source", int(s), typeSourceNames)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *TypeSource) UnmarshalText(text []byte) error {
	v, err := ParseTypeSource(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// MemberKinds is a bit set of member kinds taking part in a comparison.
type MemberKinds uint8

const (
	// Fields selects exported struct fields.
	Fields MemberKinds = 1 << iota
	// Properties selects exported getter methods.
	Properties
)

// Has reports whether every kind in k is present in m.
func (m MemberKinds) Has(k MemberKinds) bool { return m&k == k }

// String renders the set as "fields", "properties", "fields+properties" or "none".
func (m MemberKinds) String() string {
	var parts []string
	if m.Has(Fields) {
		parts = append(parts, "fields")
	}
	if m.Has(Properties) {
		parts = append(parts, "properties")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "+")
}

func enumString(i int, names []string) string {
	if i >= 0 && i < len(names) {
		return names[i]
	}
	return fmt.Sprintf("Unknown(%d)", i)
}

func enumParse(what, s string, names []string) (int, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, fmt.Errorf("eqx: empty %s", what)
	}
	for i, n := range names {
		if strings.EqualFold(n, trimmed) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("eqx: unknown %s %q", what, s)
}

func enumMarshal(what string, i int, names []string) ([]byte, error) {
	if i < 0 || i >= len(names) {
		return nil, fmt.Errorf("eqx: cannot marshal unknown %s %d", what, i)
	}
	return []byte(names[i]), nil
}
