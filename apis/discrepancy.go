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

// DiscrepancyKind classifies a reported difference.
type DiscrepancyKind int

const (
	// ValueMismatch means both sides are comparable but unequal.
	ValueMismatch DiscrepancyKind = iota
	// MissingOnExpectation means the subject has a member the expectation lacks.
	MissingOnExpectation
	// MissingOnSubject means the expectation has a member the subject lacks.
	MissingOnSubject
	// TypeMismatch means the two values cannot be compared meaningfully.
	TypeMismatch
	// CyclicReferenceDetected means the subject closes a cycle at this path.
	CyclicReferenceDetected
	// CollectionLengthMismatch means two collections differ in length.
	CollectionLengthMismatch
	// DepthLimitReached means the recursion cap cut this branch short.
	DepthLimitReached
)

var discrepancyKindNames = []string{
	"ValueMismatch", "MissingOnExpectation", "MissingOnSubject", "TypeMismatch",
	"CyclicReferenceDetected", "CollectionLengthMismatch", "DepthLimitReached",
}

// String returns the kind name.
func (k DiscrepancyKind) String() string { return enumString(int(k), discrepancyKindNames) }

// Discrepancy is one reported mismatch between subject and expectation.
type Discrepancy struct {
	// Path locates the mismatch. Empty for the root.
	Path string
	// Kind classifies the mismatch.
	Kind DiscrepancyKind
	// Subject is the rendered actual value (or type, or member name).
	Subject string
	// Expectation is the rendered expected value (or type, or member name).
	Expectation string
	// Detail carries kind-specific facts: where two strings diverge for
	// ValueMismatch, the depth limit for DepthLimitReached.
	Detail string
	// SubjectCount and ExpectationCount are the item counts of a
	// CollectionLengthMismatch.
	SubjectCount, ExpectationCount int
	// Reason is the caller supplied "because ..." clause, if any.
	Reason string
}
