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

package members_test

import (
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/eqx/apis"
	"dirpx.dev/eqx/members"
	"dirpx.dev/eqx/rules"
)

type Base struct {
	ID   int
	Name string
}

type Derived struct {
	Base
	Name    string // hides Base.Name
	Count   int
	private int
}

func (d Derived) Total() int              { return d.Count * 2 }
func (d *Derived) Label() string          { return "label:" + d.Name }
func (d *Derived) SetSecret(s string)     {}
func (d Derived) At(i int) int            { return i }
func (d Derived) String() string          { return "derived" }
func (d Derived) Combine(a, b string) int { return 0 }

type Boom struct{}

func (Boom) Explode() int { panic("boom") }

type Outer struct {
	*Base
	Extra string
}

type Knobs struct{}

func (*Knobs) SetZeta(int)   {}
func (*Knobs) SetAlpha(int)  {}
func (*Knobs) SetMid(string) {}

type hidden struct{ n int }

type Stamped struct {
	time.Time
	hidden
	Note string
}

type Wrapped struct {
	Base
	Note string
}

type Shape interface {
	Area() float64
	Scale(f float64) Shape
}

func names(ms []apis.Member) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.Name)
	}
	return out
}

func TestCandidates_Derived(t *testing.T) {
	cands := members.Candidates(reflect.TypeOf(Derived{}))
	byName := map[string]apis.Member{}
	for _, m := range cands {
		byName[m.Name] = m
	}

	require.Contains(t, byName, "ID")
	assert.Equal(t, reflect.TypeOf(Base{}), byName["ID"].DeclaringType)
	assert.Equal(t, reflect.TypeOf(Derived{}), byName["Name"].DeclaringType, "derived field hides base field")

	assert.Equal(t, apis.Private, byName["private"].Getter)
	assert.Equal(t, apis.NoAccessor, byName["Secret"].Getter, "write-only property")
	assert.True(t, byName["At"].Indexer)
	assert.NotContains(t, byName, "String")
	assert.NotContains(t, byName, "Combine")
	assert.NotContains(t, byName, "Base", "embedded struct is flattened")
}

func TestCandidates_WriteOnlyOrder(t *testing.T) {
	var writeOnly []apis.Member
	for _, m := range members.Candidates(reflect.TypeOf(Knobs{})) {
		if m.Getter == apis.NoAccessor {
			writeOnly = append(writeOnly, m)
		}
	}
	assert.Equal(t, []string{"Alpha", "Mid", "Zeta"}, names(writeOnly))
}

func TestEnumerate_Kinds(t *testing.T) {
	typ := reflect.TypeOf(Derived{})

	got := names(members.Enumerate(typ, apis.Fields))
	if diff := cmp.Diff([]string{"ID", "Name", "Count"}, got); diff != "" {
		t.Fatalf("fields (-want +got):\n%s", diff)
	}

	got = names(members.Enumerate(typ, apis.Properties))
	if diff := cmp.Diff([]string{"Label", "Total"}, got); diff != "" {
		t.Fatalf("properties (-want +got):\n%s", diff)
	}

	assert.Len(t, members.Enumerate(typ, apis.Fields|apis.Properties), 5)
	assert.Empty(t, members.Enumerate(typ, 0))
	assert.Empty(t, members.Enumerate(reflect.TypeOf(struct{}{}), apis.Fields))
}

func TestEnumerate_OpaqueEmbedded(t *testing.T) {
	ms := members.Enumerate(reflect.TypeOf(Stamped{}), apis.Fields)
	require.Equal(t, []string{"Time", "Note"}, names(ms))
	assert.Equal(t, reflect.TypeFor[time.Time](), ms[0].Type)

	v, err := members.Value(reflect.ValueOf(Stamped{Time: time.Unix(5, 0)}), ms[0])
	require.NoError(t, err)
	assert.True(t, v.Interface().(time.Time).Equal(time.Unix(5, 0)))
}

func TestOpaque(t *testing.T) {
	assert.True(t, members.Opaque(reflect.TypeFor[time.Time]()))
	assert.True(t, members.Opaque(reflect.TypeFor[*time.Time]()))
	assert.True(t, members.Opaque(reflect.TypeFor[hidden]()))
	assert.False(t, members.Opaque(reflect.TypeFor[Base]()))
	assert.False(t, members.Opaque(reflect.TypeFor[int]()))
}

func TestCollapse(t *testing.T) {
	typ := reflect.TypeOf(Wrapped{})
	ms := members.Enumerate(typ, apis.Fields)
	require.Equal(t, []string{"ID", "Name", "Note"}, names(ms))

	isBase := func(t reflect.Type) bool { return t == reflect.TypeFor[Base]() }
	got := members.Collapse(typ, ms, isBase)
	require.Equal(t, []string{"Base", "Note"}, names(got))
	assert.Equal(t, apis.FieldAccess, got[0].Access)

	v, err := members.Value(reflect.ValueOf(Wrapped{Base: Base{ID: 7}}), got[0])
	require.NoError(t, err)
	assert.Equal(t, Base{ID: 7}, v.Interface())

	never := func(reflect.Type) bool { return false }
	assert.Equal(t, ms, members.Collapse(typ, ms, never))
	assert.Equal(t, ms, members.Collapse(typ, ms, nil))
}

func TestEnumerate_Interface(t *testing.T) {
	got := names(members.Enumerate(reflect.TypeFor[Shape](), apis.Fields|apis.Properties))
	assert.Equal(t, []string{"Area"}, got)
}

func TestEnumerate_ConcurrentSameKey(t *testing.T) {
	typ := reflect.TypeOf(Outer{})
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := names(members.Enumerate(typ, apis.Fields)); len(got) != 3 {
				t.Errorf("Enumerate = %v, want 3 members", got)
			}
		}()
	}
	wg.Wait()
}

func TestValue(t *testing.T) {
	d := Derived{Base: Base{ID: 7, Name: "base"}, Name: "derived", Count: 3}
	ms := members.Enumerate(reflect.TypeOf(d), apis.Fields|apis.Properties)
	byName := map[string]apis.Member{}
	for _, m := range ms {
		byName[m.Name] = m
	}

	v, err := members.Value(reflect.ValueOf(d), byName["ID"])
	require.NoError(t, err)
	assert.Equal(t, int64(7), v.Int())

	v, err = members.Value(reflect.ValueOf(&d), byName["Name"])
	require.NoError(t, err)
	assert.Equal(t, "derived", v.String())

	v, err = members.Value(reflect.ValueOf(d), byName["Label"])
	require.NoError(t, err, "pointer receiver getter on a value")
	assert.Equal(t, "label:derived", v.String())

	v, err = members.Value(reflect.ValueOf(d), byName["Total"])
	require.NoError(t, err)
	assert.Equal(t, int64(6), v.Int())
}

func TestValue_NilEmbeddedPointer(t *testing.T) {
	o := Outer{Extra: "x"}
	ms := members.Enumerate(reflect.TypeOf(o), apis.Fields)
	require.Equal(t, []string{"ID", "Name", "Extra"}, names(ms))

	v, err := members.Value(reflect.ValueOf(o), ms[0])
	require.NoError(t, err)
	assert.False(t, v.IsValid())
}

func TestValue_GetterPanics(t *testing.T) {
	ms := members.Enumerate(reflect.TypeOf(Boom{}), apis.Properties)
	require.Len(t, ms, 1)

	_, err := members.Value(reflect.ValueOf(Boom{}), ms[0])
	require.ErrorIs(t, err, members.ErrGetterPanicked)
}

func TestValue_NotAMember(t *testing.T) {
	_, err := members.Value(reflect.ValueOf(42), apis.Member{Name: "X", Access: apis.FieldAccess, Index: []int{0}})
	require.ErrorIs(t, err, members.ErrNotAMember)
}

func TestSelect(t *testing.T) {
	typ := reflect.TypeOf(Derived{})
	ms := members.Enumerate(typ, apis.Fields)

	got := members.Select("", typ, ms, nil)
	assert.Equal(t, []string{"ID", "Name", "Count"}, names(got))

	got = members.Select("", typ, ms, []apis.SelectionRule{rules.ExcludePath("Name")})
	assert.Equal(t, []string{"ID", "Count"}, names(got))

	got = members.Select("", typ, ms, []apis.SelectionRule{rules.IncludePath("Count")})
	assert.Equal(t, []string{"Count"}, names(got))

	got = members.Select("", typ, ms, []apis.SelectionRule{
		rules.IncludePath("Count"),
		rules.IncludePath("ID"),
		rules.ExcludePath("Count"),
	})
	assert.Equal(t, []string{"ID"}, names(got), "exclusion wins over inclusion")

	got = members.Select("Child", typ, ms, []apis.SelectionRule{rules.ExcludePath("Child.ID")})
	assert.Equal(t, []string{"Name", "Count"}, names(got))
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "A", members.Join("", "A"))
	assert.Equal(t, "A.B", members.Join("A", "B"))
	assert.Equal(t, "A[1].B", members.Join("A[1]", "B"))
}
