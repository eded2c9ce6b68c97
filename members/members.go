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

// Package members enumerates the data members of Go types.
//
// A member is either a field (an exported struct field, including fields
// promoted from embedded structs) or a property (an exported method with no
// parameters and a single result). Private fields, write-only properties
// (a SetX method without an X getter) and indexers (single-parameter lookups
// such as At(i int)) are reported by Candidates but never selected for
// comparison.
//
// An embedded struct is replaced by its promoted fields, unless it is opaque:
// a standard library struct such as time.Time, or a struct without exported
// fields. Opaque embedded structs are members themselves, named after their
// type, so their data is still compared. Collapse keeps further embedded
// structs whole on request.
package members

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"dirpx.dev/eqx/apis"
	uref "dirpx.dev/eqx/utils/reflect"
)

var (
	// ErrGetterPanicked is returned when a property getter panics.
	ErrGetterPanicked = errors.New("eqx(members): getter panicked")
	// ErrNotAMember is returned when a member cannot be read from a value.
	ErrNotAMember = errors.New("eqx(members): not a member of value")
)

// protocolMethods are never treated as properties.
var protocolMethods = map[string]bool{
	"String":   true,
	"GoString": true,
	"Error":    true,
	"Unwrap":   true,
}

// Candidates returns every member candidate of t, including the ones that
// can never be compared. Pointer types are dereferenced first.
func Candidates(t reflect.Type) []apis.Member {
	if t == nil {
		return nil
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Struct:
		out := fields(t)
		seen := make(map[string]bool, len(out))
		for _, m := range out {
			seen[m.Name] = true
		}
		for _, m := range methods(reflect.PointerTo(t), t) {
			if !seen[m.Name] {
				out = append(out, m)
			}
		}
		return out
	case reflect.Interface:
		return methods(t, t)
	default:
		return nil
	}
}

func fields(t reflect.Type) []apis.Member {
	var (
		out   []apis.Member
		whole [][]int
	)
	for _, f := range reflect.VisibleFields(t) {
		if under(whole, f.Index) {
			continue
		}
		if f.Anonymous && isStructLike(f.Type) {
			if !Opaque(f.Type) {
				// Promoted fields are listed on their own.
				continue
			}
			whole = append(whole, f.Index)
		}
		vis := apis.Private
		if f.IsExported() {
			vis = apis.Public
		}
		out = append(out, apis.Member{
			Name:          f.Name,
			DeclaringType: declaringType(t, f.Index),
			Type:          f.Type,
			Access:        apis.FieldAccess,
			Getter:        vis,
			Setter:        vis,
			Index:         f.Index,
		})
	}
	return out
}

// Opaque reports whether the struct t (or *t) must be compared as a whole
// when embedded: it is declared in the standard library or none of its
// visible fields is exported.
func Opaque(t reflect.Type) bool {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return false
	}
	if uref.IsStdlib(t) {
		return true
	}
	for _, f := range reflect.VisibleFields(t) {
		if f.IsExported() && !(f.Anonymous && isStructLike(f.Type)) {
			return false
		}
	}
	return true
}

// Collapse returns ms with the promoted fields of every exported embedded
// struct of t for which whole reports true replaced by a single member for
// the embedded field. ms is returned as is when nothing collapses.
func Collapse(t reflect.Type, ms []apis.Member, whole func(reflect.Type) bool) []apis.Member {
	if t == nil || whole == nil {
		return ms
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return ms
	}

	var embedded []apis.Member
	var idx [][]int
	for _, f := range reflect.VisibleFields(t) {
		if !f.Anonymous || !f.IsExported() || !isStructLike(f.Type) || Opaque(f.Type) || under(idx, f.Index) {
			continue
		}
		if whole(f.Type) {
			idx = append(idx, f.Index)
			embedded = append(embedded, apis.Member{
				Name:          f.Name,
				DeclaringType: declaringType(t, f.Index),
				Type:          f.Type,
				Access:        apis.FieldAccess,
				Getter:        apis.Public,
				Setter:        apis.Public,
				Index:         f.Index,
			})
		}
	}
	if len(embedded) == 0 {
		return ms
	}

	out := make([]apis.Member, 0, len(ms))
	emitted := make([]bool, len(embedded))
	for _, m := range ms {
		if m.Access != apis.FieldAccess {
			out = append(out, m)
			continue
		}
		i := owner(idx, m.Index)
		if i < 0 {
			out = append(out, m)
			continue
		}
		if !emitted[i] {
			emitted[i] = true
			out = append(out, embedded[i])
		}
	}
	return out
}

// under reports whether index lies strictly below one of prefixes.
func under(prefixes [][]int, index []int) bool {
	return owner(prefixes, index) >= 0
}

// owner returns the position of the prefix index lies strictly below, or -1.
func owner(prefixes [][]int, index []int) int {
	for i, p := range prefixes {
		if len(index) > len(p) && equalIndex(p, index[:len(p)]) {
			return i
		}
	}
	return -1
}

func equalIndex(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func isStructLike(t reflect.Type) bool {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct
}

// declaringType walks all but the last index step to find the struct that
// declares a (possibly promoted) field.
func declaringType(t reflect.Type, index []int) reflect.Type {
	for _, i := range index[:len(index)-1] {
		t = t.Field(i).Type
		if t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
	}
	return t
}

// methods lists getters, indexers and write-only properties of the method
// set of mt. owner is reported as the declaring type.
func methods(mt, owner reflect.Type) []apis.Member {
	// Interface method types have no receiver parameter.
	recv := 1
	if mt.Kind() == reflect.Interface {
		recv = 0
	}

	var out []apis.Member
	getters := make(map[string]int)
	setters := make(map[string]reflect.Type)
	for i := 0; i < mt.NumMethod(); i++ {
		m := mt.Method(i)
		if !m.IsExported() || protocolMethods[m.Name] {
			continue
		}
		ft := m.Type
		in := ft.NumIn() - recv
		switch {
		case in == 0 && ft.NumOut() == 1:
			getters[m.Name] = len(out)
			out = append(out, apis.Member{
				Name:          m.Name,
				DeclaringType: owner,
				Type:          ft.Out(0),
				Access:        apis.PropertyAccess,
				Getter:        apis.Public,
			})
		case in == 1 && ft.NumOut() == 1 && isIndexKind(ft.In(recv).Kind()):
			out = append(out, apis.Member{
				Name:          m.Name,
				DeclaringType: owner,
				Type:          ft.Out(0),
				Access:        apis.PropertyAccess,
				Getter:        apis.Public,
				Indexer:       true,
			})
		case in == 1 && ft.NumOut() == 0 && strings.HasPrefix(m.Name, "Set") && len(m.Name) > 3:
			setters[m.Name[3:]] = ft.In(recv)
		}
	}

	for name, vt := range setters {
		if i, ok := getters[name]; ok {
			out[i].Setter = apis.Public
			continue
		}
		// Write-only property: nothing to read.
		out = append(out, apis.Member{
			Name:          name,
			DeclaringType: owner,
			Type:          vt,
			Access:        apis.PropertyAccess,
			Getter:        apis.NoAccessor,
			Setter:        apis.Public,
		})
	}
	// Map iteration is random; order the write-only tail by name.
	tail := out[len(out)-countWriteOnly(out):]
	sort.SliceStable(tail, func(i, j int) bool { return tail[i].Name < tail[j].Name })
	return out
}

func isIndexKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.String:
		return true
	}
	return false
}

func countWriteOnly(ms []apis.Member) int {
	n := 0
	for _, m := range ms {
		if m.Getter == apis.NoAccessor {
			n++
		}
	}
	return n
}

// Value reads member m from v. v may be a struct, a pointer to a struct or,
// for properties, any value with the method. A nil embedded pointer on the
// way to a promoted field yields an invalid value and no error.
func Value(v reflect.Value, m apis.Member) (out reflect.Value, err error) {
	for v.IsValid() && v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	if !v.IsValid() {
		return reflect.Value{}, fmt.Errorf("%w: %s", ErrNotAMember, m.Name)
	}

	if m.Access == apis.FieldAccess {
		if v.Kind() == reflect.Ptr {
			v = v.Elem()
		}
		if v.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("%w: %s", ErrNotAMember, m.Name)
		}
		f, ferr := v.FieldByIndexErr(m.Index)
		if ferr != nil {
			return reflect.Value{}, nil
		}
		return f, nil
	}

	fn := v.MethodByName(m.Name)
	if !fn.IsValid() && v.Kind() != reflect.Ptr {
		fn = addressable(v).MethodByName(m.Name)
	}
	if !fn.IsValid() || fn.Type().NumIn() != 0 || fn.Type().NumOut() != 1 {
		return reflect.Value{}, fmt.Errorf("%w: %s", ErrNotAMember, m.Name)
	}

	defer func() {
		if r := recover(); r != nil {
			out, err = reflect.Value{}, fmt.Errorf("%w: %s: %v", ErrGetterPanicked, m.Name, r)
		}
	}()
	return fn.Call(nil)[0], nil
}

func addressable(v reflect.Value) reflect.Value {
	if v.CanAddr() {
		return v.Addr()
	}
	p := reflect.New(v.Type())
	p.Elem().Set(v)
	return p
}

// Select applies selection rules, in order, to the members of a type found
// at parentPath. When any inclusion rule exists, only members accepted by at
// least one inclusion rule survive. A member accepted by any exclusion rule
// is removed; exclusion always wins.
func Select(parentPath string, parent reflect.Type, ms []apis.Member, rules []apis.SelectionRule) []apis.Member {
	hasInclude := false
	for _, r := range rules {
		if r.IncludesMembers() {
			hasInclude = true
			break
		}
	}

	out := make([]apis.Member, 0, len(ms))
	for _, m := range ms {
		info := apis.MemberInfo{Path: Join(parentPath, m.Name), Member: m, ParentType: parent}
		if hasInclude && !accepted(rules, info, true) {
			continue
		}
		if accepted(rules, info, false) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func accepted(rules []apis.SelectionRule, info apis.MemberInfo, include bool) bool {
	for _, r := range rules {
		if r.IncludesMembers() == include && r.Applies(info) {
			return true
		}
	}
	return false
}

// Join appends a member name to a path.
func Join(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}
