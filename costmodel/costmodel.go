// Copyright 2019 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package costmodel defines the pure cost functions every TED algorithm
// queries during its dynamic program.
package costmodel

import "github.com/salikh/go-ted/label"

// Model maps label ids to non-negative edit costs. All three methods
// must be finite, non-negative and side-effect free: implementations
// may borrow a label.Dictionary read-only, but never mutate it.
//
// Ren(x, x) must always be 0, so that TED(T, T) == 0 for any tree T.
type Model interface {
	// Del is the cost of deleting a node labeled id.
	Del(id label.ID) float64
	// Ins is the cost of inserting a node labeled id.
	Ins(id label.ID) float64
	// Ren is the cost of relabeling a node labeled from to a node
	// labeled to.
	Ren(from, to label.ID) float64
}

// Unit is the unit-cost model: deleting or inserting any node costs 1,
// relabeling costs 1 unless the two labels are identical, in which case
// it costs 0.
type Unit struct{}

// NewUnit returns the unit-cost model.
func NewUnit() Unit { return Unit{} }

// Del implements Model.
func (Unit) Del(label.ID) float64 { return 1 }

// Ins implements Model.
func (Unit) Ins(label.ID) float64 { return 1 }

// Ren implements Model.
func (Unit) Ren(from, to label.ID) float64 {
	if from == to {
		return 0
	}
	return 1
}
