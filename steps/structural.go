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
	"fmt"
	"reflect"

	"dirpx.dev/eqx/apis"
	"dirpx.dev/eqx/classify"
	"dirpx.dev/eqx/members"
	uref "dirpx.dev/eqx/utils/reflect"
)

// Structural compares complex objects member by member.
//
// When either side has no members left after selection the comparison
// fails with ErrNoMembers. The expectation drives the comparison: its
// selected members are matched
// against the subject's members with the strategy matching rules, and every
// matched pair is compared recursively. Unmatched members on either side are
// reported unless missing members are excluded. Nested complex objects are
// compared with simple equality when nested objects are excluded.
func Structural() apis.Step { return apis.StepFunc(structural) }

func structural(ctx apis.Context, node *apis.Node) bool {
	if node.ExpectationClass != apis.ComplexObject {
		return false
	}
	if node.SubjectClass != apis.ComplexObject {
		typeMismatch(ctx, node)
		return true
	}
	cfg := ctx.Config()
	if cfg.NestedObjects == apis.NestedSimpleEquality && !node.IsRoot() {
		if !classify.Equal(node.SubjectValue, node.ExpectationValue) {
			mismatch(ctx, node, apis.ValueMismatch)
		}
		return true
	}

	leave, ok := descend(ctx, node)
	if !ok {
		return true
	}
	defer leave()

	s, e := node.SubjectValue, node.ExpectationValue
	et, st, kinds := introspected(cfg, node)
	rules, whole := ctx.SelectionRules(), wholeByValue(ctx.Registry())
	expMembers := members.Select(node.Path, et, members.Collapse(et, members.Enumerate(et, kinds), whole), rules)
	if len(expMembers) == 0 {
		ctx.Fail(fmt.Errorf("%w: %s", ErrNoMembers, uref.TypeName(et)))
		return true
	}
	subjMembers := members.Select(node.Path, st, members.Collapse(st, members.Enumerate(st, kinds), whole), rules)
	if len(subjMembers) == 0 {
		ctx.Fail(fmt.Errorf("%w: %s", ErrNoMembers, uref.TypeName(st)))
		return true
	}

	matched := make(map[string]bool, len(subjMembers))
	for _, em := range expMembers {
		if ctx.Failed() {
			return true
		}
		info := apis.MemberInfo{Path: members.Join(node.Path, em.Name), Member: em, ParentType: et}
		sm, found := match(ctx.MatchingRules(), info, subjMembers)
		if !found {
			if cfg.MissingMembers == apis.MissingReport {
				ctx.Report(apis.Discrepancy{Path: info.Path, Kind: apis.MissingOnSubject, Expectation: em.Name})
			}
			continue
		}
		matched[sm.Name] = true

		ev, err := members.Value(e, em)
		if err != nil {
			ctx.Fail(err)
			return true
		}
		sv, err := members.Value(s, sm)
		if err != nil {
			ctx.Fail(err)
			return true
		}
		child := node.Child(em.Name, sv, ev, em.Type)
		child.Member = &em
		ctx.Recurse(child)
	}

	if cfg.MissingMembers == apis.MissingIgnore {
		return true
	}
	for _, sm := range subjMembers {
		if !matched[sm.Name] {
			ctx.Report(apis.Discrepancy{Path: members.Join(node.Path, sm.Name), Kind: apis.MissingOnExpectation, Subject: sm.Name})
		}
	}
	return true
}

// introspected picks the types whose members are compared. A non-empty
// interface declared for the expectation exposes its getters when
// properties are compared and types are declared; otherwise the runtime
// types are used.
func introspected(cfg apis.Config, node *apis.Node) (et, st reflect.Type, kinds apis.MemberKinds) {
	et, st, kinds = node.ExpectationValue.Type(), node.SubjectValue.Type(), cfg.Members
	if cfg.Types != apis.TypesDeclared || !cfg.Members.Has(apis.Properties) {
		return et, st, kinds
	}
	dt := node.DeclaredType
	for dt != nil && dt.Kind() == reflect.Ptr {
		dt = dt.Elem()
	}
	if dt == nil || dt.Kind() != reflect.Interface || dt.NumMethod() == 0 {
		return et, st, kinds
	}
	if len(members.Enumerate(dt, apis.Properties)) == 0 {
		return et, st, kinds
	}
	return dt, dt, apis.Properties
}

// wholeByValue reports the embedded structs registered for by-value comparison;
// they are compared as one member instead of through their promoted fields.
func wholeByValue(reg apis.Registry) func(reflect.Type) bool {
	return func(t reflect.Type) bool {
		s, ok := reg.Lookup(t)
		return ok && s == apis.ByValue
	}
}

func match(rules []apis.MatchingRule, info apis.MemberInfo, subject []apis.Member) (apis.Member, bool) {
	for _, r := range rules {
		if m, ok := r.Match(info, subject); ok {
			return m, true
		}
	}
	return apis.Member{}, false
}
