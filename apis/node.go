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

package apis

import (
	"fmt"
	"reflect"
)

// Class is the comparison category a value falls into.
type Class int

const (
	// Null is an invalid value or a nil pointer/interface/map/slice/func/chan.
	Null Class = iota
	// Primitive values are compared by value equality, never by members.
	Primitive
	// String values are compared with string-specific diffing.
	String
	// Enum values are named integers with symbolic names.
	Enum
	// ConvertibleScalar values can be converted to text for cross-type comparison.
	ConvertibleScalar
	// Collection is a slice or an array.
	Collection
	// Dictionary is a map.
	Dictionary
	// ComplexObject is a struct compared member by member.
	ComplexObject
)

var classNames = []string{
	"null", "primitive", "string", "enum", "convertible scalar",
	"collection", "dictionary", "complex object",
}

// String returns a human-readable class name.
func (c Class) String() string { return enumString(int(c), classNames) }

// Node is one comparison in progress. A node is owned by the comparison
// call that created it and must not be retained after that call returns.
type Node struct {
	// Path locates the node, e.g. "Level.Level.Text" or "Values[1]".
	// The root node has an empty path.
	Path string
	// Subject is the actual value. It may be invalid when the value is nil.
	Subject reflect.Value
	// Expectation is the expected value. It may be invalid when the value is nil.
	Expectation reflect.Value
	// DeclaredType is the static type of the expectation at this location.
	DeclaredType reflect.Type
	// RuntimeType is the dynamic type of the expectation, when known.
	RuntimeType reflect.Type
	// Depth is 0 for the root and grows by one per member or element.
	Depth int
	// Member is the descriptor that produced this node, nil for the root
	// and for collection elements.
	Member *Member

	// SubjectValue and ExpectationValue are Subject and Expectation with
	// pointers and interfaces unwrapped; SubjectClass and ExpectationClass
	// classify them. The comparer fills them before the steps run.
	SubjectValue, ExpectationValue reflect.Value
	SubjectClass, ExpectationClass Class
}

// IsRoot reports whether n is the root of the comparison.
func (n *Node) IsRoot() bool { return n.Path == "" }

// Child returns a node for a member of n.
func (n *Node) Child(name string, subject, expectation reflect.Value, declared reflect.Type) *Node {
	path := name
	if n.Path != "" {
		path = n.Path + "." + name
	}
	return n.derive(path, subject, expectation, declared)
}

// Element returns a node for the i-th element of a collection node.
func (n *Node) Element(i int, subject, expectation reflect.Value, declared reflect.Type) *Node {
	return n.derive(fmt.Sprintf("%s[%d]", n.Path, i), subject, expectation, declared)
}

// Key returns a node for a dictionary entry. key is already rendered.
func (n *Node) Key(key string, subject, expectation reflect.Value, declared reflect.Type) *Node {
	return n.derive(n.Path+"["+key+"]", subject, expectation, declared)
}

func (n *Node) derive(path string, subject, expectation reflect.Value, declared reflect.Type) *Node {
	c := &Node{
		Path:         path,
		Subject:      subject,
		Expectation:  expectation,
		DeclaredType: declared,
		Depth:        n.Depth + 1,
	}
	if expectation.IsValid() {
		c.RuntimeType = expectation.Type()
	}
	return c
}
