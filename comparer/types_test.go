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

package comparer_test

import (
	"math"
	"time"
)

type Person struct {
	Name string
	Age  int
}

type PersonDTO struct {
	Name string
	Age  int64
}

type Extended struct {
	Name string
	Age  int
	City string
}

type Sub struct {
	SubProperty1 string
}

type Outer struct {
	Property1 string
	SubType1  Sub
}

type Level struct {
	Text  string
	Level *Level
}

type Root struct {
	Text  string
	Level *Level
}

type Node struct {
	Name   string
	Parent *Node
	Child  *Node
}

type Chain struct {
	Value int
	Next  *Chain
}

func chain(n int) *Chain {
	var head *Chain
	for i := n - 1; i >= 0; i-- {
		head = &Chain{Value: i, Next: head}
	}
	return head
}

type EnumA int

const (
	AOne EnumA = iota
	ATwo
)

func (e EnumA) String() string {
	if e == ATwo {
		return "Two"
	}
	return "One"
}

type EnumB int

const (
	BZero EnumB = iota
	BOne
)

func (e EnumB) String() string {
	if e == BOne {
		return "One"
	}
	return "Zero"
}

type Flagged struct {
	Level *EnumA
}

type Empty struct {
	hidden int
}

func (e Empty) internal() int { return e.hidden }

type Customer struct {
	FullName string
}

type Client struct {
	Name string
}

type Temperature struct {
	celsius float64
}

func (t Temperature) Celsius() float64 { return t.celsius }
func (t Temperature) Fahrenheit() float64 { return t.celsius*9/5 + 32 }

type Shape interface {
	Area() float64
}

type Square struct {
	Side float64
	Name string
}

func (s Square) Area() float64 { return s.Side * s.Side }

type Rect struct {
	W, H float64
	Name string
}

func (r Rect) Area() float64 { return r.W * r.H }

type Holder struct {
	Shape Shape
}

type Wrapper struct {
	Inner Person
}

type Money struct {
	Cents int
}

// Equal compares whole currency units.
func (m Money) Equal(o Money) bool { return m.Cents/100 == o.Cents/100 }

type Invoice struct {
	Money
	Note string
}

type Event struct {
	time.Time
	Name string
}

type Stamp struct {
	time.Time
}

type Fragile struct{}

func (Fragile) Value() int { panic("boom") }

type Lazy struct {
	N int
}

func (l Lazy) Next() Lazy { return Lazy{N: l.N + 1} }

type Graph struct {
	Name     string
	Score    float64
	Tags     []string
	Counts   map[string]int
	Owner    *Person
	Children []*Graph
	OnSave   func()
}

func save() {}

func graph() *Graph {
	return &Graph{
		Name:   "root",
		Score:  math.NaN(),
		Tags:   []string{"a", "b"},
		Counts: map[string]int{"x": 1, "y": 2},
		Owner:  &Person{Name: "Jane", Age: 30},
		Children: []*Graph{
			{Name: "leaf", Tags: []string{}, OnSave: save},
		},
		OnSave: save,
	}
}
