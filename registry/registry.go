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

package registry

import (
	"errors"
	"reflect"
	"sort"
	"sync"

	"dirpx.dev/eqx/apis"
	uref "dirpx.dev/eqx/utils/reflect"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("eqx(registry): nil reflect.Type provided")
	// ErrConflictingRegistration indicates an attempt to register a type
	// both by value and by members.
	ErrConflictingRegistration = errors.New("eqx(registry): conflicting type registration")
)

// New constructs an empty Registry.
func New() *Registry {
	return &Registry{}
}

// Registry maps types to comparison semantics overrides.
//
// Writes are expected while a strategy is being built; a strategy keeps a
// Clone that is never written again. Reads are safe for concurrent use.
type Registry struct {
	// mu guards write-side consistency and counter
	mu sync.Mutex
	// m maps reflect.Type to apis.Semantics.
	m sync.Map // map[reflect.Type]apis.Semantics
	// ifaces holds registered interface types, in registration order.
	ifaces []reflect.Type
	// count tracks the number of registered entries.
	count int
}

// Ensure Registry implements apis.Registry.
var _ apis.Registry = (*Registry)(nil)

// Register associates t with the given semantics.
// It is idempotent for the same (type, semantics) pair.
func (r *Registry) Register(t reflect.Type, s apis.Semantics) error {
	if t == nil {
		return ErrNilType
	}

	// Fast read path: idempotency / conflict check without locking.
	if old, ok := r.m.Load(t); ok {
		if old.(apis.Semantics) == s {
			return nil
		}
		return ErrConflictingRegistration
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if old, ok := r.m.Load(t); ok {
		if old.(apis.Semantics) == s {
			return nil
		}
		return ErrConflictingRegistration
	}

	r.m.Store(t, s)
	if t.Kind() == reflect.Interface {
		r.ifaces = append(r.ifaces, t)
	}
	r.count++
	return nil
}

// Lookup returns the semantics for t. It tries, in order: t itself, the
// element of a pointer type, then registered interfaces t implements.
func (r *Registry) Lookup(t reflect.Type) (apis.Semantics, bool) {
	if t == nil {
		return 0, false
	}
	if v, ok := r.m.Load(t); ok {
		return v.(apis.Semantics), true
	}
	if t.Kind() == reflect.Ptr {
		if v, ok := r.m.Load(t.Elem()); ok {
			return v.(apis.Semantics), true
		}
	}

	r.mu.Lock()
	ifaces := r.ifaces
	r.mu.Unlock()
	for _, it := range ifaces {
		if t.Implements(it) {
			v, _ := r.m.Load(it)
			return v.(apis.Semantics), true
		}
	}
	return 0, false
}

// Entries returns a snapshot ordered by type name.
func (r *Registry) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, r.Count())
	r.m.Range(func(key, value any) bool {
		entries = append(entries, apis.Entry{
			Type:      key.(reflect.Type),
			Semantics: value.(apis.Semantics),
		})
		return true
	})
	sort.Slice(entries, func(i, j int) bool {
		return entryKey(entries[i].Type) < entryKey(entries[j].Type)
	})
	return entries
}

// Count returns the number of registered entries.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset clears all registered entries.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m = sync.Map{}
	r.ifaces = nil
	r.count = 0
}

// Clone returns an independent copy of r.
func (r *Registry) Clone() *Registry {
	c := New()
	for _, e := range r.Entries() {
		_ = c.Register(e.Type, e.Semantics)
	}
	return c
}

func entryKey(t reflect.Type) string {
	return t.PkgPath() + "." + uref.TypeName(t) + "/" + t.String()
}
