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

// Package lgm implements the label-guided matching upper bound on tree
// edit distance (§4.8): it always matches the two roots to each other,
// then recursively aligns each matched pair's children with a
// label-guided dynamic program that prefers zero-cost diagonal moves
// for equal labels over deleting/inserting whole subtrees. The result
// is always a valid edit script, so it is always >= the optimal
// distance any exact algorithm (zhangshasha, apted, touzet) returns
// for the same inputs -- see DESIGN.md for why aligning every child
// pair with a small DP, rather than scanning greedily left to right,
// is the simplification this package makes and why it still satisfies
// §8 property 7.
package lgm

import (
	"github.com/salikh/go-ted/costmodel"
	"github.com/salikh/go-ted/label"
	"github.com/salikh/go-ted/treeindex"
)

// Algorithm implements ted.Algorithm, ted.Bounded and
// ted.SubproblemCounter.
type Algorithm struct {
	cm          costmodel.Model
	i2          *treeindex.TreeIndex
	candidates  map[label.ID][]int // label id -> preorder ids in i2, built by Init
	subproblems int
}

// New returns an LGM algorithm instance using cm for edit costs.
func New(cm costmodel.Model) *Algorithm {
	return &Algorithm{cm: cm}
}

// Init precomputes, for index2, a label-to-node lookup table. TED and
// TEDK call it automatically the first time they see a new index2, but
// callers running many TED calls against one fixed destination tree
// can call it once up front to amortize the cost, and callers tuning a
// custom variant can use Candidates directly as a cheap pre-filter
// before falling back to the delete/insert/rename DP below.
func (a *Algorithm) Init(i2 *treeindex.TreeIndex) {
	a.i2 = i2
	a.candidates = make(map[label.ID][]int, i2.TreeSize)
	for preL, id := range i2.PreLToLabelID {
		a.candidates[id] = append(a.candidates[id], preL)
	}
}

// Candidates returns the preorder ids, in index2, of nodes labeled id.
// It is nil until Init (or a TED/TEDK call) has run.
func (a *Algorithm) Candidates(id label.ID) []int {
	return a.candidates[id]
}

// TED returns the label-guided-matching upper bound on the tree edit
// distance between the trees indexed by i1 and i2.
func (a *Algorithm) TED(i1, i2 *treeindex.TreeIndex) float64 {
	if a.i2 != i2 {
		a.Init(i2)
	}
	a.subproblems = 0
	return a.alignNode(i1, i1.PreRoot(), i2, i2.PreRoot())
}

// TEDK returns the TED bound if it is at most k, or a value strictly
// greater than k otherwise.
func (a *Algorithm) TEDK(i1, i2 *treeindex.TreeIndex, k int) float64 {
	d := a.TED(i1, i2)
	if d > float64(k) {
		return float64(k) + 1
	}
	return d
}

// GetSubproblemCount returns the number of child-alignment DP cells
// computed by the most recent TED/TEDK call.
func (a *Algorithm) GetSubproblemCount() int {
	return a.subproblems
}

// alignNode returns the cost of an edit script that matches u (a node
// of i1) to v (a node of i2): the cost of relabeling u into v, plus
// the cost of aligning their children.
func (a *Algorithm) alignNode(i1 *treeindex.TreeIndex, u int, i2 *treeindex.TreeIndex, v int) float64 {
	cost := a.cm.Ren(i1.PreLToLabelID[u], i2.PreLToLabelID[v])
	cost += a.alignChildren(i1, i1.PreLToChildren[u], i2, i2.PreLToChildren[v])
	return cost
}

// alignChildren runs a delete/insert/match DP over two ordered child
// lists, just like a single level of forestdist.Compute, except the
// "match" move's cost is the recursive alignNode cost (a heuristic
// value, not an optimal subtree distance) rather than a memoized exact
// tree distance. Every cell is a valid partial edit script, so the
// final cell is always a valid (if not minimal) alignment cost.
func (a *Algorithm) alignChildren(i1 *treeindex.TreeIndex, c1 []int, i2 *treeindex.TreeIndex, c2 []int) float64 {
	n, m := len(c1), len(c2)
	dp := make([][]float64, n+1)
	for i := range dp {
		dp[i] = make([]float64, m+1)
	}
	for i := 1; i <= n; i++ {
		dp[i][0] = dp[i-1][0] + i1.PreLToSumDelCost[c1[i-1]]
	}
	for j := 1; j <= m; j++ {
		dp[0][j] = dp[0][j-1] + i2.PreLToSumInsCost[c2[j-1]]
	}
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			a.subproblems++
			del := dp[i-1][j] + i1.PreLToSumDelCost[c1[i-1]]
			ins := dp[i][j-1] + i2.PreLToSumInsCost[c2[j-1]]
			match := dp[i-1][j-1] + a.alignNode(i1, c1[i-1], i2, c2[j-1])
			dp[i][j] = min3(del, ins, match)
		}
	}
	return dp[n][m]
}

func min3(a, b, c float64) float64 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
