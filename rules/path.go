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
	"regexp"
	"strings"
)

var (
	// ErrEmptyPath is returned for an empty member path.
	ErrEmptyPath = errors.New("eqx(rules): member path cannot be empty")
	// ErrNotAMember is returned when a path is not a member access expression,
	// e.g. a method call or an arithmetic expression.
	ErrNotAMember = errors.New("eqx(rules): expression is not a member path")
)

var segmentRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\[[^\[\]]+\])*$`)

// ValidatePath checks that path is a dotted member path such as
// "Orders[1].Customer.Name".
func ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return ErrEmptyPath
	}
	for _, seg := range strings.Split(path, ".") {
		if !segmentRe.MatchString(seg) {
			return fmt.Errorf("%w: %q", ErrNotAMember, path)
		}
	}
	return nil
}

// Segments returns the member names of path, without index segments.
func Segments(path string) []string {
	norm := StripIndices(path)
	if norm == "" {
		return nil
	}
	return strings.Split(norm, ".")
}

// StripIndices removes every "[...]" segment: "Items[3].Name" -> "Items.Name".
// A path that starts with an index (collection root) loses its leading dot.
func StripIndices(path string) string {
	if !strings.Contains(path, "[") {
		return path
	}
	var b strings.Builder
	depth := 0
	for _, r := range path {
		switch {
		case r == '[':
			depth++
		case r == ']':
			depth--
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return strings.TrimPrefix(b.String(), ".")
}

// hasIndex reports whether a rule path addresses specific elements.
func hasIndex(path string) bool { return strings.Contains(path, "[") }

// memberPath returns the form of a member path a rule path is compared with.
func memberPath(path, rulePath string) string {
	if hasIndex(rulePath) {
		return path
	}
	return StripIndices(path)
}

// isAncestor reports whether a is a strict ancestor of b.
func isAncestor(a, b string) bool {
	return strings.HasPrefix(b, a+".") || strings.HasPrefix(b, a+"[")
}
