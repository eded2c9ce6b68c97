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

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"dirpx.dev/eqx/apis"
)

// ErrInvalidProfile is returned when a profile cannot be decoded.
var ErrInvalidProfile = errors.New("eqx(config): invalid profile")

// profile is the YAML shape of a comparison profile. Pointer fields keep
// absent keys at their defaults.
type profile struct {
	Members *struct {
		Fields     *bool `yaml:"fields"`
		Properties *bool `yaml:"properties"`
	} `yaml:"members"`
	Types             *apis.TypeSource    `yaml:"types"`
	Enums             *apis.EnumMode      `yaml:"enums"`
	CyclicReferences  *apis.CyclePolicy   `yaml:"cyclic_references"`
	MaxDepth          *int                `yaml:"max_depth"`
	InfiniteRecursion *bool               `yaml:"infinite_recursion"`
	NestedObjects     *apis.NestedPolicy  `yaml:"nested_objects"`
	MissingMembers    *apis.MissingPolicy `yaml:"missing_members"`
	AutoConversion    *bool               `yaml:"auto_conversion"`
	StrictOrdering    *bool               `yaml:"strict_ordering"`
	MaxUnwrap         *int                `yaml:"max_unwrap"`
}

// Load decodes a YAML comparison profile on top of DefaultConfig.
//
// Example:
//
//	enums: by-name
//	cyclic_references: ignore
//	max_depth: 20
//	members:
//	  properties: true
//
// Unknown keys are rejected.
func Load(r io.Reader) (apis.Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return apis.Config{}, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}

	var p profile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return apis.Config{}, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}

	var opts []Option
	if p.Members != nil {
		kinds := DefaultMembers
		if f := p.Members.Fields; f != nil {
			kinds = toggle(kinds, apis.Fields, *f)
		}
		if f := p.Members.Properties; f != nil {
			kinds = toggle(kinds, apis.Properties, *f)
		}
		opts = append(opts, WithMembers(kinds))
	}
	if p.Types != nil {
		opts = append(opts, WithTypes(*p.Types))
	}
	if p.Enums != nil {
		opts = append(opts, WithEnums(*p.Enums))
	}
	if p.CyclicReferences != nil {
		opts = append(opts, WithCyclicReferences(*p.CyclicReferences))
	}
	if p.MaxDepth != nil {
		opts = append(opts, WithMaxDepth(*p.MaxDepth))
	}
	if p.InfiniteRecursion != nil {
		opts = append(opts, WithInfiniteRecursion(*p.InfiniteRecursion))
	}
	if p.NestedObjects != nil {
		opts = append(opts, WithNestedObjects(*p.NestedObjects))
	}
	if p.MissingMembers != nil {
		opts = append(opts, WithMissingMembers(*p.MissingMembers))
	}
	if p.AutoConversion != nil {
		opts = append(opts, WithAutoConversion(*p.AutoConversion))
	}
	if p.StrictOrdering != nil {
		opts = append(opts, WithStrictOrdering(*p.StrictOrdering))
	}
	if p.MaxUnwrap != nil {
		opts = append(opts, WithMaxUnwrap(*p.MaxUnwrap))
	}
	return NewConfig(opts...), nil
}

// LoadFile reads a YAML comparison profile from path.
func LoadFile(path string) (apis.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return apis.Config{}, err
	}
	defer f.Close()
	return Load(f)
}

func toggle(kinds, k apis.MemberKinds, on bool) apis.MemberKinds {
	if on {
		return kinds | k
	}
	return kinds &^ k
}
