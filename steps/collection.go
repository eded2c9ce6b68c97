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
	"sort"

	"dirpx.dev/eqx/apis"
	"dirpx.dev/eqx/classify"
	uref "dirpx.dev/eqx/utils/reflect"
)

// Collection compares slices and arrays. With strict ordering elements are
// compared by position; otherwise every expectation element is matched
// against any not yet matched subject element. A length difference is
// reported once and the common elements are still compared.
func Collection() apis.Step { return apis.StepFunc(collection) }

func collection(ctx apis.Context, node *apis.Node) bool {
	if node.ExpectationClass != apis.Collection {
		return false
	}
	if node.SubjectClass != apis.Collection {
		typeMismatch(ctx, node)
		return true
	}
	leave, ok := descend(ctx, node)
	if !ok {
		return true
	}
	defer leave()

	s, e := node.SubjectValue, node.ExpectationValue
	if s.Len() != e.Len() {
		f := ctx.Formatter()
		ctx.Report(apis.Discrepancy{
			Path:             node.Path,
			Kind:             apis.CollectionLengthMismatch,
			Subject:          f.Format(node.Subject),
			Expectation:      f.Format(node.Expectation),
			SubjectCount:     s.Len(),
			ExpectationCount: e.Len(),
		})
	}

	elem := e.Type().Elem()
	if ctx.Config().StrictOrdering {
		for i := 0; i < min(s.Len(), e.Len()) && !ctx.Failed(); i++ {
			ctx.Recurse(node.Element(i, s.Index(i), e.Index(i), elem))
		}
		return true
	}
	unordered(ctx, node, s, e, elem)
	return true
}

func unordered(ctx apis.Context, node *apis.Node, s, e reflect.Value, elem reflect.Type) {
	matched := make([]bool, s.Len())
	var missing []int
	for i := 0; i < e.Len() && !ctx.Failed(); i++ {
		found := false
		for j := 0; j < s.Len(); j++ {
			if matched[j] {
				continue
			}
			if ctx.Probe(node.Element(i, s.Index(j), e.Index(i), elem)) {
				matched[j], found = true, true
				break
			}
		}
		if !found {
			missing = append(missing, i)
		}
	}

	// Unmatched expectation elements are compared with the leftover subject
	// elements in order, so their differences get reported.
	j := 0
	for _, i := range missing {
		for j < len(matched) && matched[j] {
			j++
		}
		if j == len(matched) || ctx.Failed() {
			return
		}
		matched[j] = true
		ctx.Recurse(node.Element(i, s.Index(j), e.Index(i), elem))
	}
}

// Dictionary compares maps entry by entry. Entries are visited in the order
// of their rendered keys; keys present on one side only are reported as
// missing members at "[key]".
func Dictionary() apis.Step { return apis.StepFunc(dictionary) }

func dictionary(ctx apis.Context, node *apis.Node) bool {
	if node.ExpectationClass != apis.Dictionary {
		return false
	}
	if node.SubjectClass != apis.Dictionary {
		typeMismatch(ctx, node)
		return true
	}
	leave, ok := descend(ctx, node)
	if !ok {
		return true
	}
	defer leave()

	s, e := node.SubjectValue, node.ExpectationValue
	f := ctx.Formatter()
	elem := e.Type().Elem()

	for _, k := range sortedKeys(f, e) {
		ev := e.MapIndex(k.v)
		sk, ok := mapKey(k.v, s.Type().Key())
		var sv reflect.Value
		if ok {
			sv = s.MapIndex(sk)
		}
		if !sv.IsValid() {
			ctx.Report(apis.Discrepancy{
				Path:        node.Key(k.text, sv, ev, elem).Path,
				Kind:        apis.MissingOnSubject,
				Expectation: f.Format(ev),
			})
			continue
		}
		ctx.Recurse(node.Key(k.text, sv, ev, elem))
		if ctx.Failed() {
			return true
		}
	}

	for _, k := range sortedKeys(f, s) {
		ek, ok := mapKey(k.v, e.Type().Key())
		if ok && e.MapIndex(ek).IsValid() {
			continue
		}
		ctx.Report(apis.Discrepancy{
			Path:    node.Key(k.text, s.MapIndex(k.v), reflect.Value{}, elem).Path,
			Kind:    apis.MissingOnExpectation,
			Subject: f.Format(s.MapIndex(k.v)),
		})
	}
	return true
}

type key struct {
	v    reflect.Value
	text string
}

func sortedKeys(f apis.Formatter, m reflect.Value) []key {
	keys := make([]key, 0, m.Len())
	for _, k := range m.MapKeys() {
		keys = append(keys, key{v: k, text: keyText(f, k)})
	}
	sort.SliceStable(keys, func(i, j int) bool { return keys[i].text < keys[j].text })
	return keys
}

// keyText renders a map key for paths: strings and scalars with a text
// form are used verbatim, anything else goes through the formatter.
func keyText(f apis.Formatter, k reflect.Value) string {
	k = uref.Unwrap(k)
	if k.IsValid() && k.Kind() != reflect.Ptr {
		if s, ok := classify.Text(k); ok {
			return s
		}
	}
	return f.Format(k)
}

// mapKey converts a key of one map into a key of another map type.
func mapKey(k reflect.Value, t reflect.Type) (reflect.Value, bool) {
	if k.Type().AssignableTo(t) {
		return k, true
	}
	if k.Kind() == reflect.Interface && !k.IsNil() && k.Elem().Type().AssignableTo(t) {
		return k.Elem(), true
	}
	return classify.Convert(uref.Unwrap(k), t)
}
