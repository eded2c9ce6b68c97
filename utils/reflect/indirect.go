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

package reflect

import (
	"errors"
	"path"
	"reflect"
	"strings"
)

var (
	// ErrUnwrapLimit is returned when a pointer/interface chain is longer
	// than the configured unwrap limit.
	ErrUnwrapLimit = errors.New("reflect: unwrap limit exceeded")
)

// IsNil reports whether v is invalid or a nil pointer, interface, map,
// slice, func or chan.
func IsNil(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return v.IsNil()
	default:
		return false
	}
}

// Indirect unwraps pointers and interfaces until it reaches a value that is
// neither, or a nil. At most maxUnwrap levels are unwrapped.
//
// Unwrapping policy:
//   - interface -> Elem() (the dynamic value)
//   - ptr       -> Elem(), unless stop reports that the pointer type must be kept
//   - nil on the chain yields an invalid reflect.Value
//
// stop may be nil.
func Indirect(v reflect.Value, maxUnwrap int, stop func(reflect.Type) bool) (reflect.Value, error) {
	for i := 0; ; i++ {
		if !v.IsValid() {
			return v, nil
		}
		k := v.Kind()
		if k != reflect.Ptr && k != reflect.Interface {
			return v, nil
		}
		if v.IsNil() {
			return reflect.Value{}, nil
		}
		if stop != nil && stop(v.Type()) {
			return v, nil
		}
		if i >= maxUnwrap {
			return v, ErrUnwrapLimit
		}
		v = v.Elem()
	}
}

// Unwrap returns the dynamic value of an interface, leaving pointers intact.
func Unwrap(v reflect.Value) reflect.Value {
	for v.IsValid() && v.Kind() == reflect.Interface && !v.IsNil() {
		v = v.Elem()
	}
	if v.IsValid() && v.Kind() == reflect.Interface {
		return reflect.Value{}
	}
	return v
}

// IsStdlib reports whether t is declared in the Go standard library.
// Builtin types (no package path) are not considered stdlib types.
func IsStdlib(t reflect.Type) bool {
	for t != nil && t.Name() == "" && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil {
		return false
	}
	p := t.PkgPath()
	if p == "" {
		return false
	}
	first, _, _ := strings.Cut(p, "/")
	return !strings.Contains(first, ".")
}

// TypeName returns a short, stable "pkg.Type" name for t.
// Generic instantiation parameters are stripped: "pkg.T[int]" -> "pkg.T".
func TypeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	if t.Name() == "" {
		return t.String()
	}
	name := stripTypeParams(t.Name())
	if p := t.PkgPath(); p != "" {
		name = path.Base(p) + "." + name
	}
	return name
}

// stripTypeParams removes generic type instantiation suffix: "T[int,string]" -> "T".
func stripTypeParams(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		return s[:i]
	}
	return s
}
