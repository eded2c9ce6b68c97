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

// Package format renders values into the short descriptions used in
// equivalence failure reports.
package format

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"

	"dirpx.dev/eqx/apis"
	"dirpx.dev/eqx/classify"
	uref "dirpx.dev/eqx/utils/reflect"
)

const (
	// DefaultMaxItems is the number of collection items rendered before truncation.
	DefaultMaxItems = 32
	// DefaultMaxDepth limits how deep nested collections and structs are rendered.
	DefaultMaxDepth = 3

	// Null is the rendering of nil and invalid values.
	Null = "<null>"

	timeLayout = "2006-01-02 15:04:05.000 -0700"
)

var (
	timeType     = reflect.TypeOf(time.Time{})
	durationType = reflect.TypeOf(time.Duration(0))
	stringerType = reflect.TypeFor[fmt.Stringer]()
)

// Formatter is the default apis.Formatter. It is immutable and safe for
// concurrent use.
type Formatter struct {
	maxItems int
	maxDepth int
	spew     *spew.ConfigState
}

// Ensure Formatter implements apis.Formatter.
var _ apis.Formatter = (*Formatter)(nil)

// Option customizes a Formatter.
type Option func(*Formatter)

// WithMaxItems sets how many collection items are rendered. Non-positive
// values reset to DefaultMaxItems.
func WithMaxItems(n int) Option {
	return func(f *Formatter) {
		if n <= 0 {
			n = DefaultMaxItems
		}
		f.maxItems = n
	}
}

// WithMaxDepth sets how deep nested values are rendered. Non-positive values
// reset to DefaultMaxDepth.
func WithMaxDepth(n int) Option {
	return func(f *Formatter) {
		if n <= 0 {
			n = DefaultMaxDepth
		}
		f.maxDepth = n
	}
}

// New returns a Formatter configured by opts.
func New(opts ...Option) *Formatter {
	f := &Formatter{maxItems: DefaultMaxItems, maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	f.spew = &spew.ConfigState{
		Indent:                  " ",
		MaxDepth:                f.maxDepth,
		DisablePointerAddresses: true,
		DisableCapacities:       true,
		SortKeys:                true,
	}
	return f
}

var std = New()

// Default returns the shared default Formatter.
func Default() *Formatter { return std }

// Value formats v with the default Formatter.
func Value(v any) string { return std.Format(reflect.ValueOf(v)) }

// Format describes v.
func (f *Formatter) Format(v reflect.Value) string {
	return f.format(v, 0)
}

func (f *Formatter) format(v reflect.Value, depth int) string {
	v = uref.Unwrap(v)
	for i := 0; v.IsValid() && v.Kind() == reflect.Ptr && i < f.maxDepth; i++ {
		if v.IsNil() {
			break
		}
		v = v.Elem()
	}
	if uref.IsNil(v) {
		return Null
	}

	t := v.Type()
	switch {
	case t == timeType && v.CanInterface():
		return "<" + v.Interface().(time.Time).Format(timeLayout) + ">"
	case t == durationType:
		return time.Duration(v.Int()).String()
	case classify.IsEnum(t) && v.CanInterface():
		return fmt.Sprintf("%s {value: %s}", classify.EnumName(v), numeric(v))
	}

	switch t.Kind() {
	case reflect.String:
		return strconv.Quote(v.String())
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return numeric(v)
	case reflect.Float32:
		return strconv.FormatFloat(v.Float(), 'g', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'g', -1, 64)
	case reflect.Slice, reflect.Array:
		if s, ok := stringer(v); ok {
			return s
		}
		return f.items(v, depth)
	case reflect.Map:
		return f.entries(v, depth)
	case reflect.Struct:
		return f.object(v)
	}
	if s, ok := stringer(v); ok {
		return s
	}
	return fmt.Sprint(v)
}

func numeric(v reflect.Value) string {
	switch v.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(v.Uint(), 10)
	default:
		return strconv.FormatInt(v.Int(), 10)
	}
}

// stringer renders named types with a String method, e.g. uuid.UUID or net.IP.
func stringer(v reflect.Value) (string, bool) {
	if v.Type().Name() == "" || !v.CanInterface() || !v.Type().Implements(stringerType) {
		return "", false
	}
	return v.Interface().(fmt.Stringer).String(), true
}

func (f *Formatter) items(v reflect.Value, depth int) string {
	if depth >= f.maxDepth {
		return "{…}"
	}
	n := v.Len()
	if n == 0 {
		return "{empty}"
	}
	parts := make([]string, 0, min(n, f.maxItems)+1)
	for i := 0; i < n && i < f.maxItems; i++ {
		parts = append(parts, f.format(v.Index(i), depth+1))
	}
	if n > f.maxItems {
		parts = append(parts, fmt.Sprintf("…%d more", n-f.maxItems))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (f *Formatter) entries(v reflect.Value, depth int) string {
	if depth >= f.maxDepth {
		return "{…}"
	}
	if v.Len() == 0 {
		return "{empty}"
	}
	type entry struct{ k, v string }
	es := make([]entry, 0, v.Len())
	it := v.MapRange()
	for it.Next() {
		es = append(es, entry{k: f.format(it.Key(), depth+1), v: f.format(it.Value(), depth+1)})
	}
	sort.Slice(es, func(i, j int) bool { return es[i].k < es[j].k })

	parts := make([]string, 0, min(len(es), f.maxItems)+1)
	for i, e := range es {
		if i == f.maxItems {
			parts = append(parts, fmt.Sprintf("…%d more", len(es)-f.maxItems))
			break
		}
		parts = append(parts, e.k+": "+e.v)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// object renders structs compactly with go-spew, prefixed by the type name.
// Cycles and excessive depth are marked by spew itself.
func (f *Formatter) object(v reflect.Value) string {
	if !v.CanInterface() {
		return uref.TypeName(v.Type()) + fmt.Sprintf("%+v", v)
	}
	return uref.TypeName(v.Type()) + f.spew.Sprintf("%+v", v.Interface())
}
