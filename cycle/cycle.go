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

// Package cycle tracks the reference identities active on the current
// comparison path so that cyclic object graphs terminate.
package cycle

import (
	"reflect"
)

// Identity is the reference identity of a value: the address it points to
// together with its type, so that a struct and its first field never collide.
type Identity struct {
	addr uintptr
	typ  reflect.Type
	len  int
}

// IdentityOf returns the identity of v. Only non-nil pointers, maps and
// slices have one; every other value (including structs held by value) is
// reported with ok == false. Interfaces are unwrapped first.
func IdentityOf(v reflect.Value) (id Identity, ok bool) {
	for v.IsValid() && v.Kind() == reflect.Interface {
		if v.IsNil() {
			return Identity{}, false
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return Identity{}, false
	}
	switch v.Kind() {
	case reflect.Ptr, reflect.Map:
		if v.IsNil() {
			return Identity{}, false
		}
		return Identity{addr: v.Pointer(), typ: v.Type()}, true
	case reflect.Slice:
		if v.IsNil() || v.Len() == 0 {
			return Identity{}, false
		}
		return Identity{addr: v.Pointer(), typ: v.Type(), len: v.Len()}, true
	default:
		return Identity{}, false
	}
}

// Guard is the set of identities on the active comparison path. It is owned
// by one comparison and is not safe for concurrent use.
type Guard struct {
	active map[Identity]struct{}
}

// New returns an empty guard.
func New() *Guard {
	return &Guard{active: make(map[Identity]struct{})}
}

// Enter marks id as active. It returns false, leaving the guard unchanged,
// when id already is active: the value closes a cycle.
func (g *Guard) Enter(id Identity) bool {
	if _, ok := g.active[id]; ok {
		return false
	}
	g.active[id] = struct{}{}
	return true
}

// Leave removes id from the active path.
func (g *Guard) Leave(id Identity) {
	delete(g.active, id)
}

// Active reports whether id is on the active path.
func (g *Guard) Active(id Identity) bool {
	_, ok := g.active[id]
	return ok
}

// Depth returns the number of identities on the active path.
func (g *Guard) Depth() int { return len(g.active) }
