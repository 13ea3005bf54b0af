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

// Package treeindex builds the struct-of-arrays every TED algorithm
// consumes: pre/post order conversions, subtree sizes, parent links,
// leftmost/rightmost leaf descendants, key-roots, and the extra tables
// APTED's path decomposition and LGM's subtree-cost DP need. A
// TreeIndex is built once from a node.Node tree and is immutable (and
// therefore freely shareable) afterwards.
package treeindex

import (
	"sort"

	"github.com/salikh/go-ted/costmodel"
	"github.com/salikh/go-ted/label"
	"github.com/salikh/go-ted/node"
)

// Capability selects which of TreeIndex's arrays Build fills in,
// following §3's note that implementations may expose projections of
// one fat struct rather than separate types per algorithm.
type Capability uint8

const (
	// CapBasic is the set every algorithm needs: sizes, parent links,
	// children lists, label ids, depths, leaf descendants, and the
	// pre/post order conversion tables.
	CapBasic Capability = 1 << iota
	// CapZS additionally fills PostLToLLD and KR, for Zhang-Shasha and
	// the Touzet family, which reuse the same key-root decomposition.
	CapZS
	// CapSubtreeCost additionally fills PreLToSumDelCost and
	// PreLToSumInsCost: the total cost of deleting (inserting) an
	// entire subtree, used by APTED's single-path acceleration and by
	// LGM's child-alignment DP.
	CapSubtreeCost
	// CapAPTEDPaths additionally fills the descendant-sum / key-root-sum
	// tables APTED's path strategy selection consults, and the
	// mirror-image postorder tables its right-path decomposition runs on.
	CapAPTEDPaths

	// CapAll fills every array.
	CapAll = CapBasic | CapZS | CapSubtreeCost | CapAPTEDPaths
)

// TreeIndex is the immutable struct-of-arrays view of one tree. All
// slices of length TreeSize are indexed by preorder id unless their
// name starts with PostL (postorder id) or PostR (postorder id of the
// mirror image, i.e. visiting each node's children from last to
// first).
type TreeIndex struct {
	TreeSize int

	// Filled whenever CapBasic is requested.
	PreLToSize     []int
	PreLToParent   []int // root's parent is -1
	PreLToChildren [][]int
	PreLToLabelID  []label.ID
	PreLToDepth    []int
	PreLToLn       []int // leftmost leaf descendant, preorder id
	PreLToRn       []int // rightmost leaf descendant, preorder id
	PreLToPostL    []int
	PostLToPreL    []int

	// Filled when CapZS is requested.
	PostLToLLD []int // leftmost leaf descendant, postorder id
	KR         []int // key-roots, ascending postorder ids

	// Filled when CapSubtreeCost is requested.
	PreLToSumDelCost []float64
	PreLToSumInsCost []float64

	// Filled when CapAPTEDPaths is requested.
	PreLToDescSum  []int // sum of sizes over the whole subtree
	PreLToKRSum    []int // path-weight table for the left/heavy decomposition
	PreLToRevKRSum []int // path-weight table for the right/heavy decomposition (mirror)

	// PreLToPostR/PostRToPreL are the preR_* mirror §3 describes: the
	// postorder numbering of the mirror image of the tree (every
	// node's children visited right-to-left instead of left-to-right).
	// PostRToRLD and RKR are that mirror's own leftmost-leaf-descendant
	// and key-root tables -- which, read against the original tree,
	// are exactly its rightmost-leaf-descendant and right-key-root
	// tables. APTED's right-path decomposition runs the ordinary
	// forestdist recurrence over these instead of PostLToLLD/KR.
	PreLToPostR []int // preL id -> postR id
	PostRToPreL []int // postR id -> preL id
	PostRToRLD  []int // postR-indexed rightmost leaf descendant, in postR terms
	RKR         []int // right key-roots, ascending postR ids
}

// PreRoot is the preorder id of the root (always 0).
func (t *TreeIndex) PreRoot() int { return 0 }

// PostRoot is the postorder id of the root (always TreeSize-1).
func (t *TreeIndex) PostRoot() int { return t.TreeSize - 1 }

// LabelAtPost returns the label id of the node whose postorder id is x.
func (t *TreeIndex) LabelAtPost(x int) label.ID {
	return t.PreLToLabelID[t.PostLToPreL[x]]
}

// Build traverses tree once, interning its labels into dict and
// querying cm for the subtree cost sums, and returns the populated
// index. It panics if tree is nil -- an indexer is only ever invoked
// by a caller holding a tree it just parsed or constructed, so a nil
// tree is always a programmer error, not malformed input.
func Build[L comparable](tree *node.Node[L], dict *label.Dictionary[L], cm costmodel.Model, cap Capability) *TreeIndex {
	if tree == nil {
		panic("treeindex: Build called with a nil tree")
	}
	n := tree.Size()
	b := &builder[L]{
		dict:     dict,
		n:        n,
		parent:   make([]int, n),
		size:     make([]int, n),
		children: make([][]int, n),
		labelID:  make([]label.ID, n),
		depth:    make([]int, n),
		postSeq:  make([]int, 0, n),
	}
	b.dfs(tree, -1, 0)

	idx := &TreeIndex{
		TreeSize:       n,
		PreLToSize:     b.size,
		PreLToParent:   b.parent,
		PreLToChildren: b.children,
		PreLToLabelID:  b.labelID,
		PreLToDepth:    b.depth,
		PostLToPreL:    b.postSeq,
	}
	idx.PreLToPostL = make([]int, n)
	for postL, preL := range idx.PostLToPreL {
		idx.PreLToPostL[preL] = postL
	}

	idx.PreLToLn = make([]int, n)
	idx.PreLToRn = make([]int, n)
	for _, preL := range idx.PostLToPreL { // children always precede their parent in postorder
		ch := idx.PreLToChildren[preL]
		if len(ch) == 0 {
			idx.PreLToLn[preL] = preL
			idx.PreLToRn[preL] = preL
			continue
		}
		idx.PreLToLn[preL] = idx.PreLToLn[ch[0]]
		idx.PreLToRn[preL] = idx.PreLToRn[ch[len(ch)-1]]
	}

	if cap&CapZS != 0 {
		idx.buildZS()
	}
	if cap&CapSubtreeCost != 0 {
		idx.buildSubtreeCost(cm)
	}
	if cap&CapAPTEDPaths != 0 {
		idx.buildAPTEDPaths()
	}
	return idx
}

type builder[L comparable] struct {
	dict     *label.Dictionary[L]
	n        int
	next     int
	parent   []int
	size     []int
	children [][]int
	labelID  []label.ID
	depth    []int
	postSeq  []int // postorder id -> preorder id
}

func (b *builder[L]) dfs(n *node.Node[L], parent, depth int) int {
	preL := b.next
	b.next++
	b.parent[preL] = parent
	b.depth[preL] = depth
	b.labelID[preL] = b.dict.Insert(n.Label)
	children := make([]int, 0, len(n.Children))
	size := 1
	for _, ch := range n.Children {
		childPreL := b.dfs(ch, preL, depth+1)
		children = append(children, childPreL)
		size += b.size[childPreL]
	}
	b.children[preL] = children
	b.size[preL] = size
	b.postSeq = append(b.postSeq, preL)
	return preL
}

// buildZS fills PostLToLLD and KR, the arrays the Zhang-Shasha forest
// distance recurrence and the Touzet family's key-root enumeration
// consume.
func (idx *TreeIndex) buildZS() {
	n := idx.TreeSize
	idx.PostLToLLD = make([]int, n)
	for postL, preL := range idx.PostLToPreL {
		idx.PostLToLLD[postL] = idx.PreLToPostL[idx.PreLToLn[preL]]
	}
	var kr []int
	for preL := 0; preL < n; preL++ {
		parent := idx.PreLToParent[preL]
		if parent == -1 || idx.PreLToLn[preL] != idx.PreLToLn[parent] {
			kr = append(kr, idx.PreLToPostL[preL])
		}
	}
	sort.Ints(kr)
	idx.KR = kr
}

// buildSubtreeCost fills the total cost of deleting (PreLToSumDelCost)
// or inserting (PreLToSumInsCost) an entire subtree, bottom-up.
func (idx *TreeIndex) buildSubtreeCost(cm costmodel.Model) {
	n := idx.TreeSize
	idx.PreLToSumDelCost = make([]float64, n)
	idx.PreLToSumInsCost = make([]float64, n)
	for _, preL := range idx.PostLToPreL { // children before parents
		del := cm.Del(idx.PreLToLabelID[preL])
		ins := cm.Ins(idx.PreLToLabelID[preL])
		for _, ch := range idx.PreLToChildren[preL] {
			del += idx.PreLToSumDelCost[ch]
			ins += idx.PreLToSumInsCost[ch]
		}
		idx.PreLToSumDelCost[preL] = del
		idx.PreLToSumInsCost[preL] = ins
	}
}

// buildAPTEDPaths fills the descendant-sum / key-root-sum path-weight
// tables APTED's strategy-table computation consults to pick, for each
// subtree pair, which of the left/right/heavy paths to decompose
// along, plus the mirror-tree postorder/LLD/key-root tables its
// right-path decomposition runs the shared forest-distance recurrence
// over.
func (idx *TreeIndex) buildAPTEDPaths() {
	n := idx.TreeSize
	idx.PreLToDescSum = make([]int, n)
	idx.PreLToKRSum = make([]int, n)
	idx.PreLToRevKRSum = make([]int, n)

	for _, preL := range idx.PostLToPreL {
		descSum := idx.PreLToSize[preL]
		for _, ch := range idx.PreLToChildren[preL] {
			descSum += idx.PreLToDescSum[ch]
		}
		idx.PreLToDescSum[preL] = descSum
	}

	for _, preL := range idx.PostLToPreL {
		ch := idx.PreLToChildren[preL]
		krSum := idx.PreLToSize[preL]
		revKRSum := idx.PreLToSize[preL]
		if len(ch) > 0 {
			// Heavy child (largest subtree) is excluded from its
			// parent's key-root sum: the DP walks down the heavy path
			// for free and only pays for the other children's subtrees.
			heavy := ch[0]
			for _, c := range ch[1:] {
				if idx.PreLToSize[c] > idx.PreLToSize[heavy] {
					heavy = c
				}
			}
			for _, c := range ch {
				if c != heavy {
					krSum += idx.PreLToDescSum[c]
				}
			}
			// The reverse table excludes the rightmost child instead,
			// mirroring the left/right symmetry of APTED's path types.
			rightmost := ch[len(ch)-1]
			for _, c := range ch {
				if c != rightmost {
					revKRSum += idx.PreLToDescSum[c]
				}
			}
		}
		idx.PreLToKRSum[preL] = krSum
		idx.PreLToRevKRSum[preL] = revKRSum
	}

	// Mirror postorder: visit every node's children right-to-left and
	// number nodes as they complete, exactly as the builder's main dfs
	// does left-to-right for PostLToPreL.
	idx.PreLToPostR = make([]int, n)
	idx.PostRToPreL = make([]int, n)
	next := 0
	var dfs func(preL int)
	dfs = func(preL int) {
		ch := idx.PreLToChildren[preL]
		for i := len(ch) - 1; i >= 0; i-- {
			dfs(ch[i])
		}
		postR := next
		next++
		idx.PreLToPostR[preL] = postR
		idx.PostRToPreL[postR] = preL
	}
	dfs(idx.PreRoot())

	idx.PostRToRLD = make([]int, n)
	for postR, preL := range idx.PostRToPreL {
		idx.PostRToRLD[postR] = idx.PreLToPostR[idx.PreLToRn[preL]]
	}
	var rkr []int
	for preL := 0; preL < n; preL++ {
		parent := idx.PreLToParent[preL]
		if parent == -1 || idx.PreLToRn[preL] != idx.PreLToRn[parent] {
			rkr = append(rkr, idx.PreLToPostR[preL])
		}
	}
	sort.Ints(rkr)
	idx.RKR = rkr
}
