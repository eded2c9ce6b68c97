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

// Package rules holds the selection and matching rules of a strategy.
package rules

import (
	"dirpx.dev/eqx/apis"
)

// IncludePath returns an inclusion rule for the member at path. Ancestors of
// the member are kept so that it can be reached, descendants are kept with it.
// path must satisfy ValidatePath.
func IncludePath(path string) apis.SelectionRule {
	return includePath{path: path}
}

type includePath struct{ path string }

// Ensure includePath implements apis.SelectionRule.
var _ apis.SelectionRule = includePath{}

func (includePath) IncludesMembers() bool { return true }

func (r includePath) Applies(info apis.MemberInfo) bool {
	mp := memberPath(info.Path, r.path)
	return mp == r.path || isAncestor(mp, r.path) || isAncestor(r.path, mp)
}

func (r includePath) String() string { return "Include member " + r.path }

// Path returns the member path of the rule.
func (r includePath) Path() string { return r.path }

// ExcludePath returns an exclusion rule for the member at path and everything below it.
func ExcludePath(path string) apis.SelectionRule {
	return excludePath{path: path}
}

type excludePath struct{ path string }

// Ensure excludePath implements apis.SelectionRule.
var _ apis.SelectionRule = excludePath{}

func (excludePath) IncludesMembers() bool { return false }

func (r excludePath) Applies(info apis.MemberInfo) bool {
	mp := memberPath(info.Path, r.path)
	return mp == r.path || isAncestor(r.path, mp)
}

func (r excludePath) String() string { return "Exclude member " + r.path }

// Path returns the member path of the rule.
func (r excludePath) Path() string { return r.path }

// IncludeMatching returns an inclusion rule driven by a predicate.
// desc describes the predicate in failure reports.
func IncludeMatching(desc string, pred func(apis.MemberInfo) bool) apis.SelectionRule {
	return predicate{desc: desc, pred: pred, include: true}
}

// ExcludeMatching returns an exclusion rule driven by a predicate.
func ExcludeMatching(desc string, pred func(apis.MemberInfo) bool) apis.SelectionRule {
	return predicate{desc: desc, pred: pred}
}

type predicate struct {
	desc    string
	pred    func(apis.MemberInfo) bool
	include bool
}

func (r predicate) IncludesMembers() bool { return r.include }

func (r predicate) Applies(info apis.MemberInfo) bool { return r.pred(info) }

func (r predicate) String() string {
	if r.include {
		return "Include members where " + r.desc
	}
	return "Exclude members where " + r.desc
}
