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

package registry_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/eqx/apis"
	"dirpx.dev/eqx/registry"
)

type Money struct{ Cents int }

type Point struct{ X, Y int }

type Tagged struct{ Tag string }

func (Tagged) String() string { return "tagged" }

func TestRegister_NilType(t *testing.T) {
	reg := registry.New()
	require.ErrorIs(t, reg.Register(nil, apis.ByValue), registry.ErrNilType)
}

func TestRegister_IdempotentAndConflict(t *testing.T) {
	reg := registry.New()
	mt := reflect.TypeOf(Money{})

	require.NoError(t, reg.Register(mt, apis.ByValue))
	require.NoError(t, reg.Register(mt, apis.ByValue))
	assert.Equal(t, 1, reg.Count())

	err := reg.Register(mt, apis.ByMembers)
	require.ErrorIs(t, err, registry.ErrConflictingRegistration)
}

func TestLookup_ExactAndPointer(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.Register(reflect.TypeOf(Money{}), apis.ByValue))

	s, ok := reg.Lookup(reflect.TypeOf(Money{}))
	require.True(t, ok)
	assert.Equal(t, apis.ByValue, s)

	s, ok = reg.Lookup(reflect.TypeOf(&Money{}))
	require.True(t, ok)
	assert.Equal(t, apis.ByValue, s)

	_, ok = reg.Lookup(reflect.TypeOf(Point{}))
	assert.False(t, ok)

	_, ok = reg.Lookup(nil)
	assert.False(t, ok)
}

func TestLookup_Interface(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.Register(reflect.TypeFor[fmt.Stringer](), apis.ByMembers))

	s, ok := reg.Lookup(reflect.TypeOf(Tagged{}))
	require.True(t, ok)
	assert.Equal(t, apis.ByMembers, s)

	_, ok = reg.Lookup(reflect.TypeOf(Point{}))
	assert.False(t, ok)
}

func TestEntries_SortedAndClone(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.Register(reflect.TypeOf(Point{}), apis.ByMembers))
	require.NoError(t, reg.Register(reflect.TypeOf(Money{}), apis.ByValue))

	entries := reg.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, reflect.TypeOf(Money{}), entries[0].Type)
	assert.Equal(t, reflect.TypeOf(Point{}), entries[1].Type)

	clone := reg.Clone()
	reg.Reset()
	assert.Equal(t, 0, reg.Count())
	assert.Equal(t, 2, clone.Count())

	_, ok := clone.Lookup(reflect.TypeOf(Money{}))
	assert.True(t, ok)
}
