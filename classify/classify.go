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

// Package classify decides how two values are compared: by value, as text,
// as enums, element by element, or member by member.
package classify

import (
	"encoding"
	"reflect"

	"github.com/google/uuid"

	"dirpx.dev/eqx/apis"
	uref "dirpx.dev/eqx/utils/reflect"
)

var (
	uuidType          = reflect.TypeOf(uuid.UUID{})
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
)

// Resolve unwraps pointers and interfaces of v (at most maxUnwrap levels)
// and classifies the result. A nil anywhere on the chain yields an invalid
// value classified as apis.Null. reg may be nil.
func Resolve(v reflect.Value, reg apis.Registry, maxUnwrap int) (reflect.Value, apis.Class) {
	iv, err := uref.Indirect(v, maxUnwrap, nil)
	if err != nil {
		// Pathological pointer chain: compare the remaining pointer by identity.
		return iv, apis.Primitive
	}
	return iv, Of(iv, reg)
}

// Of classifies an already unwrapped value.
//
// Rules, in priority order:
//   - invalid or nil values are Null;
//   - registry overrides: ByValue is Primitive, ByMembers on a struct is ComplexObject;
//   - uuid.UUID and standard library types are Primitive;
//   - named integers with a String method outside the stdlib are Enum;
//   - string kinds are String;
//   - slices and arrays are Collection, maps are Dictionary, structs ComplexObject;
//   - other named types implementing encoding.TextMarshaler are ConvertibleScalar;
//   - everything else (bool, numbers, funcs, chans) is Primitive.
func Of(v reflect.Value, reg apis.Registry) apis.Class {
	if uref.IsNil(v) {
		return apis.Null
	}
	t := v.Type()

	if reg != nil {
		if s, ok := reg.Lookup(t); ok {
			if s == apis.ByValue {
				return apis.Primitive
			}
			if t.Kind() == reflect.Struct {
				return apis.ComplexObject
			}
		}
	}

	if t == uuidType || uref.IsStdlib(t) {
		return apis.Primitive
	}

	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if IsEnum(t) {
			return apis.Enum
		}
	case reflect.String:
		return apis.String
	case reflect.Slice, reflect.Array:
		return apis.Collection
	case reflect.Map:
		return apis.Dictionary
	case reflect.Struct:
		return apis.ComplexObject
	}

	if t.Name() != "" && implements(t, textMarshalerType) {
		return apis.ConvertibleScalar
	}
	return apis.Primitive
}

// IsScalar reports whether c is compared by value rather than by structure.
func IsScalar(c apis.Class) bool {
	switch c {
	case apis.Primitive, apis.String, apis.Enum, apis.ConvertibleScalar:
		return true
	default:
		return false
	}
}

// implements reports whether t or *t implements iface.
func implements(t, iface reflect.Type) bool {
	return t.Implements(iface) || reflect.PointerTo(t).Implements(iface)
}

// addressable returns v itself when its method set is complete, or an
// addressable copy so that pointer-receiver methods can be called.
func addressable(v reflect.Value) reflect.Value {
	if v.CanAddr() {
		return v.Addr()
	}
	p := reflect.New(v.Type())
	p.Elem().Set(v)
	return p
}
