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

package rules_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/eqx/apis"
	"dirpx.dev/eqx/rules"
)

func info(path, name string) apis.MemberInfo {
	return apis.MemberInfo{Path: path, Member: apis.Member{Name: name, Type: reflect.TypeOf("")}}
}

func TestValidatePath(t *testing.T) {
	ok := []string{"Name", "Level.Level.Text", "Orders[1].Customer", "Items[key][2]", "_x"}
	for _, p := range ok {
		assert.NoError(t, rules.ValidatePath(p), p)
	}

	assert.ErrorIs(t, rules.ValidatePath(""), rules.ErrEmptyPath)
	assert.ErrorIs(t, rules.ValidatePath("   "), rules.ErrEmptyPath)

	bad := []string{"Name()", "Age + 1", "Level..Text", ".Name", "Name.", "1Name", "Items[]", "Items[[1]]"}
	for _, p := range bad {
		assert.ErrorIs(t, rules.ValidatePath(p), rules.ErrNotAMember, p)
	}
}

func TestStripIndices(t *testing.T) {
	cases := map[string]string{
		"Name":               "Name",
		"Items[3].Name":      "Items.Name",
		"[1].Name":           "Name",
		"[1]":                "",
		"Grid[1][2].Cell":    "Grid.Cell",
		"Tags[a.b].Value":    "Tags.Value",
		"Orders[0].Lines[4]": "Orders.Lines",
	}
	for in, want := range cases {
		assert.Equal(t, want, rules.StripIndices(in), in)
	}
	assert.Equal(t, []string{"Items", "Name"}, rules.Segments("Items[3].Name"))
	assert.Nil(t, rules.Segments("[0]"))
}

func TestIncludePath(t *testing.T) {
	r := rules.IncludePath("Level.Text")
	assert.True(t, r.IncludesMembers())
	assert.True(t, r.Applies(info("Level", "Level")), "ancestor kept")
	assert.True(t, r.Applies(info("Level.Text", "Text")))
	assert.True(t, r.Applies(info("Level.Text.Length", "Length")), "descendant kept")
	assert.False(t, r.Applies(info("Level.Code", "Code")))
	assert.False(t, r.Applies(info("Levels", "Levels")))
	assert.Equal(t, "Include member Level.Text", r.String())
}

func TestIncludePath_Indices(t *testing.T) {
	all := rules.IncludePath("Items.Name")
	assert.True(t, all.Applies(info("Items[0].Name", "Name")))
	assert.True(t, all.Applies(info("Items[7].Name", "Name")))

	one := rules.IncludePath("Items[1].Name")
	assert.True(t, one.Applies(info("Items", "Items")))
	assert.True(t, one.Applies(info("Items[1].Name", "Name")))
	assert.False(t, one.Applies(info("Items[2].Name", "Name")))
}

func TestExcludePath(t *testing.T) {
	r := rules.ExcludePath("Level.Text")
	assert.False(t, r.IncludesMembers())
	assert.True(t, r.Applies(info("Level.Text", "Text")))
	assert.True(t, r.Applies(info("Level.Text.Length", "Length")))
	assert.False(t, r.Applies(info("Level", "Level")), "ancestors are not excluded")
	assert.False(t, r.Applies(info("Level.TextColor", "TextColor")))
	assert.True(t, rules.ExcludePath("Name").Applies(info("[2].Name", "Name")))
}

func TestMatchingPredicates(t *testing.T) {
	isID := func(i apis.MemberInfo) bool { return i.Member.Name == "ID" }

	inc := rules.IncludeMatching("name is ID", isID)
	assert.True(t, inc.IncludesMembers())
	assert.True(t, inc.Applies(info("Order.ID", "ID")))
	assert.False(t, inc.Applies(info("Order.Total", "Total")))
	assert.Equal(t, "Include members where name is ID", inc.String())

	exc := rules.ExcludeMatching("name is ID", isID)
	assert.False(t, exc.IncludesMembers())
	assert.Equal(t, "Exclude members where name is ID", exc.String())
}

func TestByName(t *testing.T) {
	subject := []apis.Member{{Name: "ID"}, {Name: "Name"}}
	m, ok := rules.ByName().Match(info("Name", "Name"), subject)
	require.True(t, ok)
	assert.Equal(t, "Name", m.Name)

	_, ok = rules.ByName().Match(info("name", "name"), subject)
	assert.False(t, ok, "names are case-sensitive")
}

func TestMapping(t *testing.T) {
	r, err := rules.Mapping("Customer.FullName", "Customer.Name")
	require.NoError(t, err)

	subject := []apis.Member{{Name: "ID"}, {Name: "Name"}}
	m, ok := r.Match(info("Customer.FullName", "FullName"), subject)
	require.True(t, ok)
	assert.Equal(t, "Name", m.Name)

	m, ok = r.Match(info("Orders[3].Customer.FullName", "FullName"), subject)
	assert.False(t, ok, "different parent")
	assert.Empty(t, m.Name)

	_, err = rules.Mapping("Customer.FullName", "Buyer.Name")
	assert.ErrorIs(t, err, rules.ErrMappingParents)
	_, err = rules.Mapping("", "Name")
	assert.ErrorIs(t, err, rules.ErrEmptyPath)
}

func TestMappingNames(t *testing.T) {
	r, err := rules.MappingNames("FullName", "Name")
	require.NoError(t, err)

	subject := []apis.Member{{Name: "Name"}}
	for _, p := range []string{"FullName", "A.B.FullName", "Items[2].FullName"} {
		m, ok := r.Match(info(p, "FullName"), subject)
		require.True(t, ok, p)
		assert.Equal(t, "Name", m.Name)
	}

	_, err = rules.MappingNames("A.FullName", "Name")
	assert.ErrorIs(t, err, rules.ErrNotAMember)
}
