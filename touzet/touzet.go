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

// Package touzet implements the Touzet family of bounded tree edit
// distance algorithms: given a threshold k, they compute the true
// distance only when it does not exceed k, pruning forest-distance
// cells that could only belong to an alignment costing more than k.
// A pruned cell is saturated to a sentinel strictly greater than k
// instead of being computed, so TEDK(i1, i2, k) either returns the
// exact distance or a value guaranteed > k.
//
// All five variants named in the literature share one
// forestdist.Compute core, differing only in the skip predicate
// passed to it: Baseline prunes by postorder-position band alone,
// KRLoop and KRSet layer a subtree-size filter (and, for KRSet, an
// additional both-too-big truncation) on top of it, and the two depth
// variants add a depth band instead -- see DESIGN.md for the argument
// each filter's soundness relies on and the cost-model precondition
// the depth variants need that the others don't.
package touzet

import (
	"github.com/salikh/go-ted/costmodel"
	"github.com/salikh/go-ted/internal/forestdist"
	"github.com/salikh/go-ted/treeindex"
)

// Variant selects which pruning predicate TEDK applies.
type Variant int

const (
	// Baseline prunes any cell pair whose postorder ids differ by more
	// than k: no alignment using that cell could cost k or less, since
	// it would force at least |i-j| unmatched deletions or insertions,
	// each costing at least 1 under costmodel.Unit.
	Baseline Variant = iota
	// DepthPruning adds a second band on top of Baseline: cells whose
	// nodes sit at depths (measured from their own tree's root)
	// differing by more than k are pruned too. This is sound whenever
	// every Del/Ins in the cost model costs at least 1 (true of
	// costmodel.Unit, the only model this repository ships): in any
	// edit mapping pairing x with y, x's matched ancestors correspond
	// one-to-one with y's matched ancestors (mappings preserve
	// ancestor order), so depth(x)-depth(y) equals the difference
	// between x's and y's counts of *unmatched* ancestors, each of
	// which costs >= 1 to delete or insert -- so the depth gap can
	// never exceed the mapping's total cost. A cost model that allows
	// a zero-cost Del/Ins breaks this bound; see DESIGN.md and
	// touzet_test.go for a worked counterexample.
	DepthPruning
	// DepthPruningTruncatedFix layers one more rule onto DepthPruning:
	// a cell is additionally pruned when both nodes' subtrees are
	// larger than k+1, since no alignment touching only k edits could
	// ever reconcile two subtrees that large against each other (under
	// the same >=1-per-edit precondition DepthPruning needs).
	DepthPruningTruncatedFix
	// KRLoop enumerates the same postorder-position band as Baseline,
	// plus a subtree-size filter: a cell is pruned when the two nodes'
	// subtree sizes differ by more than k, since reconciling subtrees
	// that far apart in size needs more than k node insertions or
	// deletions (same >=1-per-edit precondition as DepthPruning).
	// This dominates Baseline on trees with many same-position,
	// different-size subtrees, where the position band alone lets
	// through a cell the size filter would have caught.
	KRLoop
	// KRSet layers one more rule onto KRLoop: a cell is additionally
	// pruned when both nodes' subtrees are larger than k+1, the same
	// too-big-to-reconcile truncation DepthPruningTruncatedFix applies
	// using depth. KRSet dominates KRLoop on trees with many equal
	// leftmost descendants, where the size filter alone still lets
	// through cells the truncation rules out outright.
	KRSet
)

// Algorithm implements ted.Algorithm, ted.Bounded and
// ted.SubproblemCounter for one Touzet variant.
type Algorithm struct {
	cm          costmodel.Model
	variant     Variant
	subproblems int
}

// New returns a Touzet algorithm instance for the given variant, using
// cm for edit costs.
func New(cm costmodel.Model, variant Variant) *Algorithm {
	return &Algorithm{cm: cm, variant: variant}
}

// TED returns the exact tree edit distance, computed by running TEDK
// with a threshold no true distance can exceed under a unit cost
// model: |T1| + |T2|.
func (a *Algorithm) TED(i1, i2 *treeindex.TreeIndex) float64 {
	return a.TEDK(i1, i2, i1.TreeSize+i2.TreeSize)
}

// TEDK returns the tree edit distance between i1 and i2 if it is at
// most k, or a value strictly greater than k otherwise. Both indexes
// must share one label.Dictionary and must have been built with at
// least treeindex.CapZS.
func (a *Algorithm) TEDK(i1, i2 *treeindex.TreeIndex, k int) float64 {
	sentinel := float64(k) + 1
	skip := a.skipFunc(i1, i2, k)
	cost := forestdist.Costs{
		Del: func(x int) float64 { return a.cm.Del(i1.LabelAtPost(x)) },
		Ins: func(y int) float64 { return a.cm.Ins(i2.LabelAtPost(y)) },
		Ren: func(x, y int) float64 { return a.cm.Ren(i1.LabelAtPost(x), i2.LabelAtPost(y)) },
	}
	res := forestdist.Compute(i1.TreeSize, i2.TreeSize, i1.PostLToLLD, i2.PostLToLLD, i1.KR, i2.KR, cost, skip, sentinel)
	a.subproblems = res.Subproblems
	d := res.TreeDist[i1.PostRoot()][i2.PostRoot()]
	if d > sentinel {
		return sentinel
	}
	return d
}

// GetSubproblemCount returns the number of forest-distance cells
// actually computed (not pruned) by the most recent TEDK call.
func (a *Algorithm) GetSubproblemCount() int {
	return a.subproblems
}

func (a *Algorithm) skipFunc(i1, i2 *treeindex.TreeIndex, k int) func(x, y int) bool {
	switch a.variant {
	case DepthPruning, DepthPruningTruncatedFix:
		return func(x, y int) bool {
			if abs(x-y) > k {
				return true
			}
			dx := i1.PreLToDepth[i1.PostLToPreL[x]]
			dy := i2.PreLToDepth[i2.PostLToPreL[y]]
			if abs(dx-dy) > k {
				return true
			}
			if a.variant == DepthPruningTruncatedFix {
				sx := i1.PreLToSize[i1.PostLToPreL[x]]
				sy := i2.PreLToSize[i2.PostLToPreL[y]]
				if sx > k+1 && sy > k+1 {
					return true
				}
			}
			return false
		}
	case KRLoop, KRSet:
		return func(x, y int) bool {
			if abs(x-y) > k {
				return true
			}
			sx := i1.PreLToSize[i1.PostLToPreL[x]]
			sy := i2.PreLToSize[i2.PostLToPreL[y]]
			if abs(sx-sy) > k {
				return true
			}
			if a.variant == KRSet && sx > k+1 && sy > k+1 {
				return true
			}
			return false
		}
	default: // Baseline
		return func(x, y int) bool {
			return abs(x-y) > k
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
