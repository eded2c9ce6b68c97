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

package apis

// SelectionRule widens or narrows the set of members taking part in a
// comparison. Rules are evaluated in the order they were added.
type SelectionRule interface {
	// IncludesMembers reports whether the rule is an inclusion rule.
	// Inclusion rules widen an initially empty selection; exclusion rules
	// narrow the selection and always win over inclusion rules.
	IncludesMembers() bool
	// Applies reports whether the rule matches the member.
	Applies(info MemberInfo) bool
	// String describes the rule for failure reports.
	String() string
}

// MatchingRule finds the subject member that corresponds to an expectation member.
type MatchingRule interface {
	// Match returns the subject member for the expectation member described
	// by info, or false to fall through to the next rule.
	Match(info MemberInfo, subject []Member) (Member, bool)
	// String describes the rule for failure reports.
	String() string
}
