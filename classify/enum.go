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

package classify

import (
	"fmt"
	"reflect"

	uref "dirpx.dev/eqx/utils/reflect"
)

var stringerType = reflect.TypeFor[fmt.Stringer]()

// IsEnum reports whether t is an enum: a named integer type declared outside
// the standard library whose value or pointer implements fmt.Stringer.
func IsEnum(t reflect.Type) bool {
	if t == nil || t.Name() == "" || t.PkgPath() == "" || uref.IsStdlib(t) {
		return false
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return implements(t, stringerType)
	default:
		return false
	}
}

// EnumName returns the symbolic name of an enum value.
func EnumName(v reflect.Value) string {
	if v.Type().Implements(stringerType) && v.CanInterface() {
		return v.Interface().(fmt.Stringer).String()
	}
	return addressable(v).Interface().(fmt.Stringer).String()
}
