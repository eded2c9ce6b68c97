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

package strategy

import (
	"errors"
	"fmt"
	"reflect"

	"dirpx.dev/eqx/apis"
	"dirpx.dev/eqx/rules"
	uref "dirpx.dev/eqx/utils/reflect"
)

// ErrUnknownMember is returned by Validate when a rule names a member the
// compared type does not have.
var ErrUnknownMember = errors.New("eqx(strategy): unknown member")

// pathRule is implemented by rules that address a member by path.
type pathRule interface {
	Path() string
}

// Validate checks every path rule against root, the static type of the
// expectation. Paths that cross an interface or any other type whose
// members are only known at runtime are accepted as is.
func (s *Strategy) Validate(root reflect.Type) error {
	if root == nil {
		return nil
	}
	var errs []error
	check := func(r any) {
		pr, ok := r.(pathRule)
		if !ok {
			return
		}
		if err := resolve(root, pr.Path(), s.cfg.Members); err != nil {
			errs = append(errs, err)
		}
	}
	for _, r := range s.selection {
		check(r)
	}
	for _, r := range s.matching {
		check(r)
	}
	return errors.Join(errs...)
}

func resolve(root reflect.Type, path string, kinds apis.MemberKinds) error {
	if err := rules.ValidatePath(path); err != nil {
		return err
	}
	t := root
	for _, seg := range rules.Segments(path) {
		t = elem(t)
		switch t.Kind() {
		case reflect.Struct:
			if f, ok := t.FieldByName(seg); ok && f.IsExported() {
				t = f.Type
				continue
			}
			if m, ok := reflect.PointerTo(t).MethodByName(seg); ok && getter(m.Type, 1) {
				t = m.Type.Out(0)
				continue
			}
		case reflect.Interface:
			if t.NumMethod() == 0 {
				return nil
			}
			if m, ok := t.MethodByName(seg); ok && getter(m.Type, 0) {
				t = m.Type.Out(0)
				continue
			}
			if kinds.Has(apis.Fields) {
				// Fields of the dynamic type are only known at runtime.
				return nil
			}
		default:
			return nil
		}
		return fmt.Errorf("%w: %s has no member %q (in %q)", ErrUnknownMember, uref.TypeName(t), seg, path)
	}
	return nil
}

// elem strips pointers and steps into collection and map element types.
func elem(t reflect.Type) reflect.Type {
	for {
		switch t.Kind() {
		case reflect.Ptr, reflect.Slice, reflect.Array, reflect.Map:
			t = t.Elem()
		default:
			return t
		}
	}
}

func getter(ft reflect.Type, recv int) bool {
	return ft.NumIn() == recv && ft.NumOut() == 1
}
