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

// Package steps holds the built-in links of the comparison chain.
//
// Each step inspects a node and either handles it, reporting zero or more
// discrepancies through the context, or falls through to the next step.
// The built-in order is:
//
//	Reference, Null, ByValue, Enum, String, Scalar,
//	Dictionary, Collection, Structural, Fallback
//
// Steps are stateless and safe for concurrent use.
package steps

import (
	"errors"
	"reflect"
	"strconv"

	"dirpx.dev/eqx/apis"
	uref "dirpx.dev/eqx/utils/reflect"
)

// ErrNoMembers is returned when a complex object has no members left to
// compare after member kinds and selection rules were applied.
var ErrNoMembers = errors.New("eqx(steps): the objects have no members to compare")

// Defaults returns the built-in steps in chain order.
func Defaults() []apis.Step {
	return []apis.Step{
		Reference(),
		Null(),
		ByValue(),
		Enum(),
		String(),
		Scalar(),
		Dictionary(),
		Collection(),
		Structural(),
		Fallback(),
	}
}

// mismatch reports a discrepancy of kind at node, describing both sides
// with the strategy formatter.
func mismatch(ctx apis.Context, node *apis.Node, kind apis.DiscrepancyKind) {
	f := ctx.Formatter()
	ctx.Report(apis.Discrepancy{
		Path:        node.Path,
		Kind:        kind,
		Subject:     f.Format(node.Subject),
		Expectation: f.Format(node.Expectation),
	})
}

// typeMismatch reports incompatible sides, naming their types.
func typeMismatch(ctx apis.Context, node *apis.Node) {
	f := ctx.Formatter()
	ctx.Report(apis.Discrepancy{
		Path:        node.Path,
		Kind:        apis.TypeMismatch,
		Subject:     typed(f, node.SubjectValue),
		Expectation: typed(f, node.ExpectationValue),
	})
}

func typed(f apis.Formatter, v reflect.Value) string {
	if !v.IsValid() {
		return f.Format(v)
	}
	return f.Format(v) + " (" + uref.TypeName(v.Type()) + ")"
}

// descend applies the cycle policy and the depth cap before a node is
// expanded into elements, entries or members. When ok is true the caller
// must call leave once the node is done.
func descend(ctx apis.Context, node *apis.Node) (leave func(), ok bool) {
	cfg := ctx.Config()
	leave, cyclic := ctx.Track(node.Subject)
	if cyclic {
		if cfg.CyclicReferences == apis.CycleThrow {
			mismatch(ctx, node, apis.CyclicReferenceDetected)
		}
		return nil, false
	}
	if !cfg.InfiniteRecursion && node.Depth > cfg.MaxDepth {
		leave()
		ctx.Report(apis.Discrepancy{
			Path:        node.Path,
			Kind:        apis.DepthLimitReached,
			Subject:     ctx.Formatter().Format(node.Subject),
			Expectation: ctx.Formatter().Format(node.Expectation),
			Detail:      strconv.Itoa(cfg.MaxDepth),
		})
		return nil, false
	}
	return leave, true
}
