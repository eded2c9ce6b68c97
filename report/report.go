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

// Package report turns discrepancies into human-readable failure messages.
//
// Every discrepancy of one comparison renders as one line; the lines are
// emitted in the order the comparison found them, so repeated runs over
// the same input produce identical reports.
package report

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"dirpx.dev/eqx/apis"
)

type options struct {
	color  bool
	config string
}

// Option customizes rendering.
type Option func(*options)

// WithColor enables ANSI colours: paths in cyan, expectations in green and
// subjects in red. Colours are off by default.
func WithColor(enabled bool) Option {
	return func(o *options) { o.color = enabled }
}

// WithConfiguration appends a description of the comparison configuration.
func WithConfiguration(desc string) Option {
	return func(o *options) { o.config = desc }
}

// HasFailures reports whether ds contains any discrepancy.
func HasFailures(ds []apis.Discrepancy) bool { return len(ds) > 0 }

// Because normalises a caller supplied reason into a " because ..." clause.
// Without args, format is used verbatim. A blank reason yields "".
func Because(format string, args ...any) string {
	s := format
	if len(args) > 0 {
		s = fmt.Sprintf(format, args...)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if !strings.HasPrefix(strings.ToLower(s), "because") {
		s = "because " + s
	}
	return " " + s
}

// Render renders ds, one line per discrepancy.
func Render(ds []apis.Discrepancy, opts ...Option) string {
	o := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	p := newPalette(o.color)

	var b strings.Builder
	for i, d := range ds {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line(d, p))
	}
	if o.config != "" {
		b.WriteString("\n\nWith configuration:\n")
		b.WriteString(o.config)
	}
	return b.String()
}

type palette struct {
	path, expectation, subject func(a ...any) string
}

func newPalette(enabled bool) palette {
	mk := func(attr color.Attribute) func(a ...any) string {
		c := color.New(attr)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.SprintFunc()
	}
	return palette{
		path:        mk(color.FgCyan),
		expectation: mk(color.FgGreen),
		subject:     mk(color.FgRed),
	}
}

// Line renders a single discrepancy without colours.
func Line(d apis.Discrepancy) string { return line(d, newPalette(false)) }

func line(d apis.Discrepancy, p palette) string {
	who := p.path(Subject(d.Path))
	exp, subj := p.expectation(d.Expectation), p.subject(d.Subject)

	switch d.Kind {
	case apis.MissingOnSubject:
		return fmt.Sprintf("Expectation has %s that the other object does not have%s.", who, d.Reason)
	case apis.MissingOnExpectation:
		return fmt.Sprintf("Subject has %s that the expectation does not have%s.", who, d.Reason)
	case apis.CyclicReferenceDetected:
		return fmt.Sprintf("Expected %s to be %s%s, but it contains a cyclic reference.", who, exp, d.Reason)
	case apis.DepthLimitReached:
		return fmt.Sprintf("Expected %s to be %s%s, but the maximum recursion depth of %s was reached.",
			who, exp, d.Reason, d.Detail)
	case apis.CollectionLengthMismatch:
		diff, rel := d.SubjectCount-d.ExpectationCount, "more"
		if diff < 0 {
			diff, rel = -diff, "less"
		}
		return fmt.Sprintf("Expected %s to be a collection with %d item(s)%s, but %s contains %d item(s) %s than %s.",
			who, d.ExpectationCount, d.Reason, subj, diff, rel, exp)
	case apis.TypeMismatch:
		return fmt.Sprintf("Expected %s to be %s%s, but found %s.", who, exp, d.Reason, subj)
	default:
		msg := fmt.Sprintf("Expected %s to be %s%s, but found %s", who, exp, d.Reason, subj)
		if d.Detail == "" {
			return msg + "."
		}
		head, diff, multi := strings.Cut(d.Detail, "\n")
		msg += ", " + head + "."
		if multi {
			msg += "\n" + diff
		}
		return msg
	}
}

// Subject names the location of a path in a message: "subject" for the
// root, "subject[1]" for root elements and "member A.B" otherwise.
func Subject(path string) string {
	switch {
	case path == "":
		return "subject"
	case strings.HasPrefix(path, "["):
		return "subject" + path
	default:
		return "member " + path
	}
}
