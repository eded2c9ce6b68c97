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

package rules

import (
	"errors"
	"fmt"
	"strings"

	"dirpx.dev/eqx/apis"
)

// ErrMappingParents is returned when a mapping relates members of different parents.
var ErrMappingParents = errors.New("eqx(rules): mapped members must share the same parent")

// ByName matches members with the same, case-sensitive, name.
func ByName() apis.MatchingRule { return byName{} }

type byName struct{}

func (byName) Match(info apis.MemberInfo, subject []apis.Member) (apis.Member, bool) {
	return find(subject, info.Member.Name)
}

func (byName) String() string { return "Match members by name" }

// Mapping maps the expectation member at expectationPath onto the subject
// member at subjectPath. Both paths must share their parent.
func Mapping(expectationPath, subjectPath string) (apis.MatchingRule, error) {
	for _, p := range []string{expectationPath, subjectPath} {
		if err := ValidatePath(p); err != nil {
			return nil, err
		}
	}
	ep, en := split(expectationPath)
	sp, sn := split(subjectPath)
	if ep != sp {
		return nil, fmt.Errorf("%w: %q and %q", ErrMappingParents, expectationPath, subjectPath)
	}
	return pathMapping{path: expectationPath, from: en, to: sn}, nil
}

type pathMapping struct {
	path     string
	from, to string
}

func (r pathMapping) Match(info apis.MemberInfo, subject []apis.Member) (apis.Member, bool) {
	if memberPath(info.Path, r.path) != r.path {
		return apis.Member{}, false
	}
	return find(subject, r.to)
}

// Path returns the expectation member path of the rule.
func (r pathMapping) Path() string { return r.path }

func (r pathMapping) String() string {
	return "Map expectation member " + r.path + " to subject member " + r.to
}

// MappingNames maps every expectation member named from onto the subject
// member named to, at any depth.
func MappingNames(from, to string) (apis.MatchingRule, error) {
	for _, n := range []string{from, to} {
		if err := ValidatePath(n); err != nil {
			return nil, err
		}
		if strings.ContainsAny(n, ".[") {
			return nil, fmt.Errorf("%w: %q is not a member name", ErrNotAMember, n)
		}
	}
	return nameMapping{from: from, to: to}, nil
}

type nameMapping struct{ from, to string }

func (r nameMapping) Match(info apis.MemberInfo, subject []apis.Member) (apis.Member, bool) {
	if info.Member.Name != r.from {
		return apis.Member{}, false
	}
	return find(subject, r.to)
}

func (r nameMapping) String() string {
	return "Map expectation members named " + r.from + " to subject members named " + r.to
}

func find(ms []apis.Member, name string) (apis.Member, bool) {
	for _, m := range ms {
		if m.Name == name {
			return m, true
		}
	}
	return apis.Member{}, false
}

// split returns the parent path and the last member name of path.
func split(path string) (parent, name string) {
	i := strings.LastIndexByte(path, '.')
	if i < 0 {
		return "", path
	}
	return path[:i], path[i+1:]
}
