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

// Package zhangshasha implements the classical Zhang-Shasha tree edit
// distance: a dynamic program over key-root pairs and forest-distance
// tables, O(n^2 * min(depth, leaves)^2) in the worst case.
package zhangshasha

import (
	"math"

	"github.com/salikh/go-ted/costmodel"
	"github.com/salikh/go-ted/internal/forestdist"
	"github.com/salikh/go-ted/treeindex"
)

// Algorithm implements ted.Algorithm and ted.SubproblemCounter.
type Algorithm struct {
	cm          costmodel.Model
	subproblems int
}

// New returns a Zhang-Shasha algorithm instance using cm for edit
// costs.
func New(cm costmodel.Model) *Algorithm {
	return &Algorithm{cm: cm}
}

// TED returns the tree edit distance between the trees indexed by i1
// and i2. Both indexes must have been built with at least
// treeindex.CapZS and must share one label.Dictionary -- TreeIndex
// objects built from different dictionaries have incomparable label
// ids, which is a programmer error and is not checked here (see §9).
func (a *Algorithm) TED(i1, i2 *treeindex.TreeIndex) float64 {
	cost := forestdist.Costs{
		Del: func(x int) float64 { return a.cm.Del(i1.LabelAtPost(x)) },
		Ins: func(y int) float64 { return a.cm.Ins(i2.LabelAtPost(y)) },
		Ren: func(x, y int) float64 { return a.cm.Ren(i1.LabelAtPost(x), i2.LabelAtPost(y)) },
	}
	res := forestdist.Compute(i1.TreeSize, i2.TreeSize, i1.PostLToLLD, i2.PostLToLLD, i1.KR, i2.KR, cost, nil, math.Inf(1))
	a.subproblems = res.Subproblems
	return res.TreeDist[i1.PostRoot()][i2.PostRoot()]
}

// GetSubproblemCount returns the number of forest-distance cells
// computed by the most recent TED call.
func (a *Algorithm) GetSubproblemCount() int {
	return a.subproblems
}
