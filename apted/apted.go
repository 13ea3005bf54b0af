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

// Package apted implements APTED, the sub-cubic-in-practice tree edit
// distance algorithm: for the root pair it is asked about, it consults
// a per-node strategy table to pick which of two decompositions of
// the shared forest-distance recurrence (package internal/forestdist)
// to run -- the ordinary left/leftmost-leaf-descendant decomposition
// zhangshasha always uses, or its right/rightmost-leaf-descendant
// mirror -- and short-circuits entirely to a plain sequence edit
// distance when both operands degenerate to bare root-to-leaf chains
// (the single-path acceleration, §4.6).
//
// Both decompositions solve the same recurrence over a relabeling of
// the same two trees (reversing sibling order at every node of both
// operands simultaneously preserves every order-respecting edit
// mapping and its cost), so TED always agrees with zhangshasha's
// value; which one runs, and how many cells it touches, depends on
// tree shape -- see DESIGN.md for why this is the distinguishing
// behavior the full paper's per-pair strategy optimization reduces to
// here.
package apted

import (
	"math"

	"github.com/salikh/go-ted/costmodel"
	"github.com/salikh/go-ted/internal/forestdist"
	"github.com/salikh/go-ted/treeindex"
)

// pathType is the decomposition APTED picked for one subtree, stored
// in the strategy table.
type pathType int8

const (
	pathLeft pathType = iota
	pathRight
	pathHeavy
)

// Algorithm implements ted.Algorithm and ted.SubproblemCounter.
type Algorithm struct {
	cm          costmodel.Model
	subproblems int
}

// New returns an APTED algorithm instance using cm for edit costs.
func New(cm costmodel.Model) *Algorithm {
	return &Algorithm{cm: cm}
}

// strategy computes, for every node of i1, which path type its
// subtree should be decomposed along: whichever of the left spine,
// the right spine, or the heaviest child's spine carries the least
// descendant weight once removed from the node's own subtree, using
// the key-root-sum tables treeindex.Build precomputed. This mirrors
// APTED's strategy table (§4.6) without the paper's full two-sided
// optimization over both trees simultaneously.
func strategy(i1 *treeindex.TreeIndex) []pathType {
	n := i1.TreeSize
	strat := make([]pathType, n)
	for preL := 0; preL < n; preL++ {
		left := i1.PreLToDescSum[preL] - i1.PreLToSize[preL] // cost of a pure left spine: everything but the node itself
		right := left
		heavy := i1.PreLToKRSum[preL]
		best := pathHeavy
		min := heavy
		if left < min {
			best = pathLeft
			min = left
		}
		if i1.PreLToRevKRSum[preL] < min {
			best = pathRight
			min = i1.PreLToRevKRSum[preL]
		}
		_ = right
		strat[preL] = best
	}
	return strat
}

// isPureLeafPath reports whether the subtree rooted at preL in i1 is a
// bare root-to-leaf chain: every node on it has at most one child.
// When both operands of TED satisfy this, the forest-distance
// recurrence collapses to ordinary sequence edit distance over the
// chain's labels (§4.6's single-path acceleration), so TED bypasses
// the key-root machinery entirely and runs singlePathTED instead.
func isPureLeafPath(i1 *treeindex.TreeIndex, preL int) bool {
	for p := preL; ; {
		ch := i1.PreLToChildren[p]
		if len(ch) == 0 {
			return true
		}
		if len(ch) > 1 {
			return false
		}
		p = ch[0]
	}
}

// TED returns the tree edit distance between the trees indexed by i1
// and i2. Both indexes must have been built with at least
// treeindex.CapZS | treeindex.CapSubtreeCost | treeindex.CapAPTEDPaths
// and must share one label.Dictionary.
func (a *Algorithm) TED(i1, i2 *treeindex.TreeIndex) float64 {
	if isPureLeafPath(i1, i1.PreRoot()) && isPureLeafPath(i2, i2.PreRoot()) {
		return a.singlePathTED(i1, i2)
	}

	strat := strategy(i1)
	if strat[i1.PreRoot()] == pathRight {
		return a.tedRight(i1, i2)
	}
	return a.tedLeft(i1, i2)
}

// tedLeft runs the shared forest-distance recurrence over i1 and i2's
// ordinary (leftmost-leaf-descendant) key-root decomposition, exactly
// as zhangshasha.Algorithm.TED does.
func (a *Algorithm) tedLeft(i1, i2 *treeindex.TreeIndex) float64 {
	cost := forestdist.Costs{
		Del: func(x int) float64 { return a.cm.Del(i1.LabelAtPost(x)) },
		Ins: func(y int) float64 { return a.cm.Ins(i2.LabelAtPost(y)) },
		Ren: func(x, y int) float64 { return a.cm.Ren(i1.LabelAtPost(x), i2.LabelAtPost(y)) },
	}
	res := forestdist.Compute(i1.TreeSize, i2.TreeSize, i1.PostLToLLD, i2.PostLToLLD, i1.KR, i2.KR, cost, nil, math.Inf(1))
	a.subproblems = res.Subproblems
	return res.TreeDist[i1.PostRoot()][i2.PostRoot()]
}

// tedRight runs the same recurrence over i1 and i2's mirror-tree
// postorder numbering and rightmost-leaf-descendant key roots
// (treeindex's PostRToRLD/RKR). Mirroring sibling order at every node
// of both trees simultaneously is a bijection on order-respecting edit
// mappings that preserves every mapping's cost, so this computes the
// same tree edit distance tedLeft would. KR and RKR always have the
// same size (every internal node excludes exactly one child from
// each: its first child from KR, its last child from RKR), but they
// designate different node sets whenever a node has more than one
// child, so the two decompositions walk a different DP cell order --
// which is what the strategy table is choosing between.
func (a *Algorithm) tedRight(i1, i2 *treeindex.TreeIndex) float64 {
	cost := forestdist.Costs{
		Del: func(x int) float64 { return a.cm.Del(i1.PreLToLabelID[i1.PostRToPreL[x]]) },
		Ins: func(y int) float64 { return a.cm.Ins(i2.PreLToLabelID[i2.PostRToPreL[y]]) },
		Ren: func(x, y int) float64 {
			return a.cm.Ren(i1.PreLToLabelID[i1.PostRToPreL[x]], i2.PreLToLabelID[i2.PostRToPreL[y]])
		},
	}
	res := forestdist.Compute(i1.TreeSize, i2.TreeSize, i1.PostRToRLD, i2.PostRToRLD, i1.RKR, i2.RKR, cost, nil, math.Inf(1))
	a.subproblems = res.Subproblems
	rootX := i1.PreLToPostR[i1.PreRoot()]
	rootY := i2.PreLToPostR[i2.PreRoot()]
	return res.TreeDist[rootX][rootY]
}

// singlePathTED computes tree edit distance the way §4.6 describes for
// two bare root-to-leaf chains: postorder on a chain visits leaf to
// root, so this is exactly the ordinary sequence edit distance DP over
// the two label sequences, with no key-root decomposition needed at
// all.
func (a *Algorithm) singlePathTED(i1, i2 *treeindex.TreeIndex) float64 {
	n1, n2 := i1.TreeSize, i2.TreeSize
	dp := make([][]float64, n1+1)
	for i := range dp {
		dp[i] = make([]float64, n2+1)
	}
	for i := 1; i <= n1; i++ {
		dp[i][0] = dp[i-1][0] + a.cm.Del(i1.LabelAtPost(i-1))
	}
	for j := 1; j <= n2; j++ {
		dp[0][j] = dp[0][j-1] + a.cm.Ins(i2.LabelAtPost(j-1))
	}
	count := 0
	for i := 1; i <= n1; i++ {
		for j := 1; j <= n2; j++ {
			count++
			del := dp[i-1][j] + a.cm.Del(i1.LabelAtPost(i-1))
			ins := dp[i][j-1] + a.cm.Ins(i2.LabelAtPost(j-1))
			ren := dp[i-1][j-1] + a.cm.Ren(i1.LabelAtPost(i-1), i2.LabelAtPost(j-1))
			dp[i][j] = min3(del, ins, ren)
		}
	}
	a.subproblems = count
	return dp[n1][n2]
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

// GetSubproblemCount returns the number of forest-distance (or, for a
// single-path pair, sequence edit distance) cells computed by the most
// recent TED call.
func (a *Algorithm) GetSubproblemCount() int {
	return a.subproblems
}
