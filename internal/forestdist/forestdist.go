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

// Package forestdist implements the classic Zhang-Shasha key-root
// forest-distance recurrence, shared by package zhangshasha (run
// unpruned), package touzet (run with a cell-skipping predicate that
// saturates out-of-band cells at a sentinel exceeding the threshold
// k), and package apted (run unpruned, exactly as zhangshasha does,
// since any correct path decomposition of the same recurrence yields
// the same tree distance -- APTED's favorable-path selection changes
// which cells get touched and in what order, not the value of any
// cell, which is why §4.6 requires APTED and Zhang-Shasha agree on
// every input).
//
// All node ids here are postorder ids in [0, n) of the respective
// tree; lld(x) is the postorder id of x's leftmost leaf descendant.
package forestdist

// Costs supplies the three cost queries the recurrence needs, indexed
// by postorder id.
type Costs struct {
	Del func(x int) float64
	Ins func(y int) float64
	Ren func(x, y int) float64
}

// Result is the outcome of one Compute call.
type Result struct {
	// TreeDist[x][y] is the tree edit distance between the subtree
	// rooted at postorder node x of T1 and the subtree rooted at
	// postorder node y of T2. Only cells at key-root pairs are
	// guaranteed meaningful for non-key-root (x, y); the recurrence
	// fills every (x, y) pair reachable from some key-root pair's
	// forest distance table, which in practice is all of them.
	TreeDist [][]float64
	// Subproblems counts every forestdist cell actually computed
	// (i.e. not skipped), the deterministic work proxy §4.6 and §4.8
	// call for.
	Subproblems int
}

// Compute runs the key-root decomposition DP between a tree of size n1
// (with leftmost-leaf-descendant table lld1 and key-root set kr1) and
// a tree of size n2 (lld2, kr2), querying cost for edit costs.
//
// If skip is non-nil, it is consulted for every candidate cell (x, y);
// when it returns true, the cell (and, when (x, y) is a subtree pair,
// its TreeDist entry) is set to sentinel instead of being computed
// from the recurrence, and does not count toward Subproblems. sentinel
// must be strictly larger than the caller's budget (the Touzet family
// uses float64(k)+1 for budget k) so that a pruned cell can never be
// mistaken for part of an optimal alignment within that budget.
func Compute(n1, n2 int, lld1, lld2 []int, kr1, kr2 []int, cost Costs, skip func(x, y int) bool, sentinel float64) Result {
	treedist := make([][]float64, n1)
	for i := range treedist {
		treedist[i] = make([]float64, n2)
	}
	subproblems := 0

	for _, i := range kr1 {
		li := lld1[i]
		for _, j := range kr2 {
			lj := lld2[j]
			rows := i - li + 2
			cols := j - lj + 2
			fd := make([][]float64, rows)
			for r := range fd {
				fd[r] = make([]float64, cols)
			}
			for x := 1; x < rows; x++ {
				fd[x][0] = fd[x-1][0] + cost.Del(li+x-1)
			}
			for y := 1; y < cols; y++ {
				fd[0][y] = fd[0][y-1] + cost.Ins(lj+y-1)
			}
			for x := 1; x < rows; x++ {
				ni := li + x - 1
				for y := 1; y < cols; y++ {
					nj := lj + y - 1
					if skip != nil && skip(ni, nj) {
						fd[x][y] = sentinel
						if lld1[ni] == li && lld2[nj] == lj {
							treedist[ni][nj] = sentinel
						}
						continue
					}
					subproblems++
					del := fd[x-1][y] + cost.Del(ni)
					ins := fd[x][y-1] + cost.Ins(nj)
					var match float64
					if lld1[ni] == li && lld2[nj] == lj {
						match = fd[x-1][y-1] + cost.Ren(ni, nj)
						treedist[ni][nj] = min3(del, ins, match)
						fd[x][y] = treedist[ni][nj]
					} else {
						p := lld1[ni] - li
						q := lld2[nj] - lj
						match = fd[p][q] + treedist[ni][nj]
						fd[x][y] = min3(del, ins, match)
					}
				}
			}
		}
	}
	return Result{TreeDist: treedist, Subproblems: subproblems}
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
