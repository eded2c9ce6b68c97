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
	"math"
	"reflect"

	uref "dirpx.dev/eqx/utils/reflect"
)

// Equal implements simple equality: an Equal(T) bool method when the type has
// one, then == for comparable types (NaN equals NaN), then reflect.DeepEqual.
// Values of different numeric kinds are compared numerically. Pointers
// and funcs compare by identity.
func Equal(a, b reflect.Value) (eq bool) {
	a, b = uref.Unwrap(a), uref.Unwrap(b)
	if uref.IsNil(a) || uref.IsNil(b) {
		return uref.IsNil(a) && uref.IsNil(b) && sameNilKind(a, b)
	}
	if a.Type() != b.Type() {
		if eq, ok := NumericEqual(a, b); ok {
			return eq
		}
		return false
	}
	if a.Kind() == reflect.Func {
		return a.Pointer() == b.Pointer()
	}
	if !a.CanInterface() || !b.CanInterface() {
		return false
	}

	if m, ok := equalMethod(a); ok {
		return m.Call([]reflect.Value{b})[0].Bool()
	}

	if isFloat(a.Kind()) {
		x, y := a.Float(), b.Float()
		return x == y || (math.IsNaN(x) && math.IsNaN(y))
	}

	if a.Type().Comparable() {
		// Interface-typed fields may still hold incomparable dynamic values.
		defer func() {
			if recover() != nil {
				eq = reflect.DeepEqual(a.Interface(), b.Interface())
			}
		}()
		return a.Interface() == b.Interface()
	}
	return reflect.DeepEqual(a.Interface(), b.Interface())
}

// sameNilKind keeps typed nils of unrelated kinds apart; an invalid value
// (untyped nil) equals any nil.
func sameNilKind(a, b reflect.Value) bool {
	if !a.IsValid() || !b.IsValid() {
		return true
	}
	return a.Kind() == b.Kind()
}

// equalMethod returns the bound Equal method of v when it has the shape
// func(T) bool for v's own type T.
func equalMethod(v reflect.Value) (reflect.Value, bool) {
	t := v.Type()
	m, ok := t.MethodByName("Equal")
	recv := v
	if !ok {
		if t.Kind() == reflect.Ptr {
			return reflect.Value{}, false
		}
		m, ok = reflect.PointerTo(t).MethodByName("Equal")
		if !ok {
			return reflect.Value{}, false
		}
		recv = addressable(v)
	}
	ft := m.Type // includes the receiver
	if ft.NumIn() != 2 || ft.In(1) != t || ft.NumOut() != 1 || ft.Out(0).Kind() != reflect.Bool {
		return reflect.Value{}, false
	}
	return recv.MethodByName("Equal"), true
}

// NumericEqual compares two numeric values of any kinds. ok is false when
// either value is not a number.
func NumericEqual(a, b reflect.Value) (eq, ok bool) {
	ka, kb := a.Kind(), b.Kind()
	if !isNumber(ka) || !isNumber(kb) {
		return false, false
	}

	if isComplex(ka) || isComplex(kb) {
		return toComplex(a) == toComplex(b), true
	}
	if isFloat(ka) || isFloat(kb) {
		x, y := toFloat(a), toFloat(b)
		return x == y || (math.IsNaN(x) && math.IsNaN(y)), true
	}

	// Integers: a negative signed value only equals another signed value.
	if isSigned(ka) && a.Int() < 0 {
		return isSigned(kb) && a.Int() == b.Int(), true
	}
	if isSigned(kb) && b.Int() < 0 {
		return false, true
	}
	return toUint(a) == toUint(b), true
}

func isSigned(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUnsigned(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func isFloat(k reflect.Kind) bool { return k == reflect.Float32 || k == reflect.Float64 }

func isComplex(k reflect.Kind) bool { return k == reflect.Complex64 || k == reflect.Complex128 }

func isNumber(k reflect.Kind) bool {
	return isSigned(k) || isUnsigned(k) || isFloat(k) || isComplex(k)
}

func toUint(v reflect.Value) uint64 {
	if isSigned(v.Kind()) {
		return uint64(v.Int())
	}
	return v.Uint()
}

func toFloat(v reflect.Value) float64 {
	switch {
	case isSigned(v.Kind()):
		return float64(v.Int())
	case isUnsigned(v.Kind()):
		return float64(v.Uint())
	default:
		return v.Float()
	}
}

func toComplex(v reflect.Value) complex128 {
	if isComplex(v.Kind()) {
		return v.Complex()
	}
	return complex(toFloat(v), 0)
}
