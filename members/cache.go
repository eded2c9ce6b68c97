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

package members

import (
	"fmt"
	"reflect"
	"sync"

	"golang.org/x/sync/singleflight"

	"dirpx.dev/eqx/apis"
)

// cacheKey ensures memoization respects the member kinds requested.
type cacheKey struct {
	t     reflect.Type
	kinds apis.MemberKinds
}

// cached pairs a result with the type it was computed for, so a singleflight
// result shared under a colliding key can be detected.
type cached struct {
	t       reflect.Type
	members []apis.Member
}

var (
	// memberCache caches selected descriptors by (type, kinds).
	memberCache sync.Map // key: cacheKey, val: []apis.Member
	// group collapses concurrent first lookups of the same key.
	group singleflight.Group
)

// Enumerate returns the comparable members of t restricted to kinds, in
// declaration order: fields in struct order, then properties by name.
// Results are cached process-wide; the returned slice must not be modified.
func Enumerate(t reflect.Type, kinds apis.MemberKinds) []apis.Member {
	if t == nil {
		return nil
	}
	key := cacheKey{t: t, kinds: kinds}
	if v, ok := memberCache.Load(key); ok {
		return v.([]apis.Member)
	}

	sk := fmt.Sprintf("%s|%s|%d", t.PkgPath(), t.String(), kinds)
	v, _, _ := group.Do(sk, func() (any, error) {
		return cached{t: t, members: enumerate(t, kinds)}, nil
	})
	res := v.(cached)
	if res.t != t {
		// Distinct types with the same textual identity (function-local types).
		res.members = enumerate(t, kinds)
	}
	memberCache.Store(key, res.members)
	return res.members
}

func enumerate(t reflect.Type, kinds apis.MemberKinds) []apis.Member {
	var out []apis.Member
	for _, m := range Candidates(t) {
		if !m.Readable() {
			continue
		}
		switch m.Access {
		case apis.FieldAccess:
			if !kinds.Has(apis.Fields) {
				continue
			}
		case apis.PropertyAccess:
			if !kinds.Has(apis.Properties) {
				continue
			}
		}
		out = append(out, m)
	}
	return out
}
