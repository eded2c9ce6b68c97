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

package report

import (
	"errors"

	"dirpx.dev/eqx/apis"
)

// ErrNotEquivalent matches every *Failure with errors.Is.
var ErrNotEquivalent = errors.New("eqx: subject is not equivalent to the expectation")

// Failure is the aggregate error of a comparison with discrepancies.
type Failure struct {
	// Discrepancies in the order they were found.
	Discrepancies []apis.Discrepancy
	// Reason is the " because ..." clause, if any.
	Reason string
	// Configuration describes the strategy that was used.
	Configuration string

	message string
}

// NewFailure renders ds into a Failure. It returns nil when ds is empty.
func NewFailure(ds []apis.Discrepancy, opts ...Option) *Failure {
	if !HasFailures(ds) {
		return nil
	}
	o := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return &Failure{
		Discrepancies: ds,
		Reason:        ds[0].Reason,
		Configuration: o.config,
		message:       Render(ds, opts...),
	}
}

// Error returns the rendered report.
func (f *Failure) Error() string { return f.message }

// Is makes errors.Is(err, ErrNotEquivalent) true for failures.
func (f *Failure) Is(target error) bool { return target == ErrNotEquivalent }
