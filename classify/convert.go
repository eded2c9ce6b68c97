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
	"encoding"
	"reflect"
	"strconv"
)

var textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()

// Convert attempts to convert v to type t. It never panics; ok is false when
// no conversion applies or the conversion fails.
//
// Supported conversions:
//   - number <-> number, bool <-> bool, string <-> string (including named types);
//   - string -> number or bool (strconv parsing);
//   - number, bool, enum or encoding.TextMarshaler -> string;
//   - string -> encoding.TextUnmarshaler.
func Convert(v reflect.Value, t reflect.Type) (out reflect.Value, ok bool) {
	if !v.IsValid() || t == nil || !v.CanInterface() {
		return reflect.Value{}, false
	}
	defer func() {
		if recover() != nil {
			out, ok = reflect.Value{}, false
		}
	}()

	vk, tk := v.Kind(), t.Kind()
	switch {
	case v.Type() == t:
		return v, true
	case isNumber(vk) && isNumber(tk), vk == reflect.Bool && tk == reflect.Bool,
		vk == reflect.String && tk == reflect.String:
		if v.Type().ConvertibleTo(t) {
			c := v.Convert(t)
			// Reject lossy numeric conversions.
			if isNumber(vk) {
				if eq, _ := NumericEqual(v, c); !eq {
					return reflect.Value{}, false
				}
			}
			return c, true
		}
	case vk == reflect.String && implements(t, textUnmarshalerType) && tk != reflect.Ptr:
		p := reflect.New(t)
		if err := p.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(v.String())); err != nil {
			return reflect.Value{}, false
		}
		return p.Elem(), true
	case vk == reflect.String:
		return parse(v.String(), t)
	case tk == reflect.String:
		s, ok := Text(v)
		if !ok {
			return reflect.Value{}, false
		}
		return reflect.ValueOf(s).Convert(t), true
	}
	return reflect.Value{}, false
}

// Text renders a scalar as the text used for cross-type comparison.
func Text(v reflect.Value) (string, bool) {
	t := v.Type()
	switch {
	case IsEnum(t):
		return EnumName(v), true
	case implements(t, textMarshalerType) && t.Kind() != reflect.Struct:
		b, err := addressable(v).Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return "", false
		}
		return string(b), true
	}
	switch k := v.Kind(); {
	case k == reflect.String:
		return v.String(), true
	case k == reflect.Bool:
		return strconv.FormatBool(v.Bool()), true
	case isSigned(k):
		return strconv.FormatInt(v.Int(), 10), true
	case isUnsigned(k):
		return strconv.FormatUint(v.Uint(), 10), true
	case isFloat(k):
		return strconv.FormatFloat(v.Float(), 'g', -1, 64), true
	}
	return "", false
}

func parse(s string, t reflect.Type) (reflect.Value, bool) {
	out := reflect.New(t).Elem()
	k := t.Kind()
	switch {
	case k == reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return reflect.Value{}, false
		}
		out.SetBool(b)
	case isSigned(k):
		i, err := strconv.ParseInt(s, 10, t.Bits())
		if err != nil {
			return reflect.Value{}, false
		}
		out.SetInt(i)
	case isUnsigned(k):
		u, err := strconv.ParseUint(s, 10, t.Bits())
		if err != nil {
			return reflect.Value{}, false
		}
		out.SetUint(u)
	case isFloat(k):
		f, err := strconv.ParseFloat(s, t.Bits())
		if err != nil {
			return reflect.Value{}, false
		}
		out.SetFloat(f)
	default:
		return reflect.Value{}, false
	}
	return out, true
}
