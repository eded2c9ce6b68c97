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

package report

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pmezard/go-difflib/difflib"
)

// contextRunes is how much of the subject is quoted around a difference.
const contextRunes = 10

// StringDetail describes how subject differs from expectation, or returns ""
// when they are equal. Multi-line strings get a unified diff on the lines
// following the first one.
func StringDetail(subject, expectation string) string {
	if subject == expectation {
		return ""
	}
	s, e := []rune(subject), []rune(expectation)
	i := 0
	for i < len(s) && i < len(e) && s[i] == e[i] {
		i++
	}
	near := string(s[i:min(len(s), i+contextRunes)])

	var detail string
	if len(s) != len(e) {
		detail = fmt.Sprintf("which has a length of %d instead of %d and differs near %q (index %d)",
			utf8.RuneCountInString(subject), utf8.RuneCountInString(expectation), near, i)
	} else {
		detail = fmt.Sprintf("which differs near %q (index %d)", near, i)
	}

	if strings.Contains(subject, "\n") || strings.Contains(expectation, "\n") {
		if diff := Diff(subject, expectation); diff != "" {
			detail += "\n" + diff
		}
	}
	return detail
}

// Diff returns a unified diff from expectation to subject.
func Diff(subject, expectation string) string {
	out, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expectation),
		B:        difflib.SplitLines(subject),
		FromFile: "expectation",
		ToFile:   "subject",
		Context:  2,
	})
	if err != nil {
		return ""
	}
	return strings.TrimRight(out, "\n")
}
