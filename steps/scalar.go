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

package steps

import (
	"reflect"

	"dirpx.dev/eqx/apis"
	"dirpx.dev/eqx/classify"
	"dirpx.dev/eqx/cycle"
	"dirpx.dev/eqx/report"
)

// Reference treats two references to the same object as equivalent.
func Reference() apis.Step { return apis.StepFunc(reference) }

func reference(_ apis.Context, node *apis.Node) bool {
	s, sok := cycle.IdentityOf(node.Subject)
	e, eok := cycle.IdentityOf(node.Expectation)
	return sok && eok && s == e
}

// Null handles nodes where either side is nil.
func Null() apis.Step { return apis.StepFunc(null) }

func null(ctx apis.Context, node *apis.Node) bool {
	sn, en := node.SubjectClass == apis.Null, node.ExpectationClass == apis.Null
	if !sn && !en {
		return false
	}
	if sn != en {
		mismatch(ctx, node, apis.ValueMismatch)
	}
	return true
}

// ByValue compares types registered with by-value semantics using simple
// equality.
func ByValue() apis.Step { return apis.StepFunc(byValue) }

func byValue(ctx apis.Context, node *apis.Node) bool {
	e := node.ExpectationValue
	if s, ok := ctx.Registry().Lookup(e.Type()); !ok || s != apis.ByValue {
		return false
	}
	if !classify.Equal(node.SubjectValue, e) {
		mismatch(ctx, node, apis.ValueMismatch)
	}
	return true
}

// Enum compares enums according to the configured apis.EnumMode.
func Enum() apis.Step { return apis.StepFunc(enum) }

func enum(ctx apis.Context, node *apis.Node) bool {
	sc, ec := node.SubjectClass, node.ExpectationClass
	if sc != apis.Enum && ec != apis.Enum {
		return false
	}
	s, e := node.SubjectValue, node.ExpectationValue

	switch ctx.Config().Enums {
	case apis.EnumByName:
		sn, sok := enumText(s, sc)
		en, eok := enumText(e, ec)
		switch {
		case !sok || !eok:
			typeMismatch(ctx, node)
		case sn != en:
			mismatch(ctx, node, apis.ValueMismatch)
		}
	case apis.EnumByValue:
		eq, ok := classify.NumericEqual(s, e)
		switch {
		case !ok || !isInteger(s) || !isInteger(e):
			typeMismatch(ctx, node)
		case !eq:
			mismatch(ctx, node, apis.ValueMismatch)
		}
	default:
		if sc != ec {
			typeMismatch(ctx, node)
		} else if eq, _ := classify.NumericEqual(s, e); !eq {
			mismatch(ctx, node, apis.ValueMismatch)
		}
	}
	return true
}

// enumText returns the symbolic name of an enum or the text of a string.
func enumText(v reflect.Value, c apis.Class) (string, bool) {
	switch c {
	case apis.Enum:
		return classify.EnumName(v), true
	case apis.String:
		return v.String(), true
	default:
		return "", false
	}
}

func isInteger(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	default:
		return false
	}
}

// String compares two strings and locates their first difference.
func String() apis.Step { return apis.StepFunc(str) }

func str(ctx apis.Context, node *apis.Node) bool {
	if node.SubjectClass != apis.String || node.ExpectationClass != apis.String {
		return false
	}
	s, e := node.SubjectValue.String(), node.ExpectationValue.String()
	if s == e {
		return true
	}
	f := ctx.Formatter()
	ctx.Report(apis.Discrepancy{
		Path:        node.Path,
		Kind:        apis.ValueMismatch,
		Subject:     f.Format(node.Subject),
		Expectation: f.Format(node.Expectation),
		Detail:      report.StringDetail(s, e),
	})
	return true
}

// Scalar compares primitives and convertible scalars by value. Numbers of
// different kinds are always compared numerically; strings are converted
// to numbers and booleans, and back, only with auto conversion enabled.
func Scalar() apis.Step { return apis.StepFunc(scalar) }

func scalar(ctx apis.Context, node *apis.Node) bool {
	sc, ec := node.SubjectClass, node.ExpectationClass
	if !classify.IsScalar(sc) && !classify.IsScalar(ec) {
		return false
	}
	eq, ok := scalarEqual(ctx.Config(), node.SubjectValue, sc, node.ExpectationValue, ec)
	switch {
	case !ok:
		typeMismatch(ctx, node)
	case !eq:
		mismatch(ctx, node, apis.ValueMismatch)
	}
	return true
}

func scalarEqual(cfg apis.Config, s reflect.Value, sc apis.Class, e reflect.Value, ec apis.Class) (eq, ok bool) {
	st, et := s.Type(), e.Type()
	if st == et {
		return classify.Equal(s, e), true
	}
	if eq, ok := classify.NumericEqual(s, e); ok {
		return eq, true
	}

	// Convertible scalars compare through their text form with strings and
	// with each other.
	if (sc == apis.ConvertibleScalar || ec == apis.ConvertibleScalar) &&
		(sc == apis.ConvertibleScalar || sc == apis.String) &&
		(ec == apis.ConvertibleScalar || ec == apis.String) {
		stxt, sok := classify.Text(s)
		etxt, eok := classify.Text(e)
		if sok && eok {
			return stxt == etxt, true
		}
	}

	// Named types over the same basic kind, e.g. type ID string.
	if st.Kind() == et.Kind() && isBasic(st.Kind()) && et.ConvertibleTo(st) {
		return classify.Equal(s, e.Convert(st)), true
	}

	if cfg.AutoConversion {
		if c, ok := classify.Convert(e, st); ok {
			return classify.Equal(s, c), true
		}
		if c, ok := classify.Convert(s, et); ok {
			return classify.Equal(c, e), true
		}
	}
	return false, false
}

func isBasic(k reflect.Kind) bool {
	return k == reflect.Bool || k == reflect.String
}

// Fallback compares whatever no other step handled with simple equality.
func Fallback() apis.Step { return apis.StepFunc(fallback) }

func fallback(ctx apis.Context, node *apis.Node) bool {
	if !classify.Equal(node.SubjectValue, node.ExpectationValue) {
		mismatch(ctx, node, apis.ValueMismatch)
	}
	return true
}
