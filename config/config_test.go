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

package config_test

import (
	"testing"

	"dirpx.dev/eqx/apis"
	"dirpx.dev/eqx/config"
)

func TestDefaultConfigValues(t *testing.T) {
	got := config.DefaultConfig()

	if got.Members != config.DefaultMembers {
		t.Fatalf("Members = %v, want %v", got.Members, config.DefaultMembers)
	}
	if got.MaxDepth != config.DefaultMaxDepth {
		t.Fatalf("MaxDepth = %d, want %d", got.MaxDepth, config.DefaultMaxDepth)
	}
	if got.CyclicReferences != apis.CycleThrow {
		t.Fatalf("CyclicReferences = %v, want throw", got.CyclicReferences)
	}
	if !got.StrictOrdering {
		t.Fatal("StrictOrdering = false, want true")
	}
	if got.InfiniteRecursion {
		t.Fatalf("unexpected flags in default config: %+v", got)
	}
	if !got.AutoConversion {
		t.Fatal("AutoConversion = false, want true")
	}
}

func TestNewConfig_NoOptions_EqualsDefault(t *testing.T) {
	def := config.DefaultConfig()
	got := config.NewConfig()
	if got != def {
		t.Fatalf("NewConfig() = %+v, want default %+v", got, def)
	}
}

func TestWithMembers(t *testing.T) {
	c := config.NewConfig(config.WithMembers(apis.Fields | apis.Properties))
	if !c.Members.Has(apis.Properties) || !c.Members.Has(apis.Fields) {
		t.Fatalf("Members = %v, want fields+properties", c.Members)
	}

	c2 := config.NewConfig(config.WithMembers(apis.Properties))
	if c2.Members.Has(apis.Fields) {
		t.Fatalf("Members = %v, want properties only", c2.Members)
	}
}

func TestWithMaxDepth_Negative_ResetsToDefault(t *testing.T) {
	c := config.NewConfig(config.WithMaxDepth(-1))
	if c.MaxDepth != config.DefaultMaxDepth {
		t.Fatalf("MaxDepth = %d, want default %d", c.MaxDepth, config.DefaultMaxDepth)
	}
}

func TestWithMaxDepth_ReenablesCap(t *testing.T) {
	c := config.NewConfig(
		config.WithInfiniteRecursion(true),
		config.WithMaxDepth(3),
	)
	if c.InfiniteRecursion {
		t.Fatal("InfiniteRecursion = true, want false after WithMaxDepth")
	}
	if c.MaxDepth != 3 {
		t.Fatalf("MaxDepth = %d, want 3", c.MaxDepth)
	}
}

func TestWithMaxUnwrap_NonPositive_ResetsToDefault(t *testing.T) {
	for _, v := range []int{0, -4} {
		c := config.NewConfig(config.WithMaxUnwrap(v))
		if c.MaxUnwrap != config.DefaultMaxUnwrap {
			t.Fatalf("WithMaxUnwrap(%d): MaxUnwrap = %d, want %d", v, c.MaxUnwrap, config.DefaultMaxUnwrap)
		}
	}
}

func TestOptionsOrder_LastWins(t *testing.T) {
	c := config.NewConfig(
		config.WithEnums(apis.EnumByName),
		config.WithEnums(apis.EnumByValue),
		config.WithCyclicReferences(apis.CycleIgnore),
		config.WithCyclicReferences(apis.CycleThrow),
		config.WithStrictOrdering(false),
		config.WithStrictOrdering(true),
	)

	if c.Enums != apis.EnumByValue {
		t.Errorf("Enums = %v, want by-value (last option wins)", c.Enums)
	}
	if c.CyclicReferences != apis.CycleThrow {
		t.Errorf("CyclicReferences = %v, want throw (last option wins)", c.CyclicReferences)
	}
	if !c.StrictOrdering {
		t.Errorf("StrictOrdering = %v, want true (last option wins)", c.StrictOrdering)
	}
}

func TestNormalize_ZeroDepthAllowed(t *testing.T) {
	c := config.NewConfig(config.WithMaxDepth(0))
	if c.MaxDepth != 0 {
		t.Fatalf("MaxDepth = %d, want 0", c.MaxDepth)
	}
}
