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

package apted

import (
	"reflect"
	"testing"

	"github.com/salikh/go-ted/bracket"
	"github.com/salikh/go-ted/costmodel"
	"github.com/salikh/go-ted/label"
	"github.com/salikh/go-ted/treeindex"
	"github.com/salikh/go-ted/zhangshasha"
)

const fullCap = treeindex.CapZS | treeindex.CapSubtreeCost | treeindex.CapAPTEDPaths

func ted(t *testing.T, t1, t2 string) float64 {
	t.Helper()
	tree1, err := bracket.ParseSingle(t1)
	if err != nil {
		t.Fatalf("ParseSingle(%q) returned error %v", t1, err)
	}
	tree2, err := bracket.ParseSingle(t2)
	if err != nil {
		t.Fatalf("ParseSingle(%q) returned error %v", t2, err)
	}
	dict := label.NewDictionary[string]()
	cm := costmodel.NewUnit()
	idx1 := treeindex.Build(tree1, dict, cm, fullCap)
	idx2 := treeindex.Build(tree2, dict, cm, fullCap)
	return New(cm).TED(idx1, idx2)
}

func TestEndToEndScenarios(t *testing.T) {
	tests := []struct {
		name string
		t1   string
		t2   string
		want float64
	}{
		{"identical leaves", "{a}", "{a}", 0},
		{"distinct leaves", "{a}", "{b}", 1},
		{"identical subtrees", "{a{b}{c}}", "{a{b}{c}}", 0},
		{"swapped children", "{a{b}{c}}", "{a{c}{b}}", 2},
		{"single relabel", "{x{a}}", "{x{b}}", 1},
		{"canonical ZS example", "{f{d{a}{c{b}}}{e}}", "{f{c{d{a}{b}}}{e}}", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ted(t, tt.t1, tt.t2); got != tt.want {
				t.Errorf("TED(%s, %s) = %v, want %v", tt.t1, tt.t2, got, tt.want)
			}
		})
	}
}

// TestAgreesWithZhangShasha exercises the property APTED's package doc
// promises: sharing the forestdist recurrence means APTED and
// Zhang-Shasha never diverge, on any input, despite using different
// treeindex capability sets and decomposition bookkeeping.
func TestAgreesWithZhangShasha(t *testing.T) {
	pairs := [][2]string{
		{"{a}", "{a}"},
		{"{a}", "{b}"},
		{"{a{b}{c}}", "{a{c}{b}}"},
		{"{f{d{a}{c{b}}}{e}}", "{f{c{d{a}{b}}}{e}}"},
		{"{x{y{z}}}", "{x{y}{z}}"},
	}
	for _, p := range pairs {
		tree1, _ := bracket.ParseSingle(p[0])
		tree2, _ := bracket.ParseSingle(p[1])

		dict1 := label.NewDictionary[string]()
		cm := costmodel.NewUnit()
		zsIdx1 := treeindex.Build(tree1, dict1, cm, treeindex.CapZS)
		zsIdx2 := treeindex.Build(tree2, dict1, cm, treeindex.CapZS)
		zs := zhangshasha.New(cm).TED(zsIdx1, zsIdx2)

		dict2 := label.NewDictionary[string]()
		apIdx1 := treeindex.Build(tree1, dict2, cm, fullCap)
		apIdx2 := treeindex.Build(tree2, dict2, cm, fullCap)
		ap := New(cm).TED(apIdx1, apIdx2)

		if zs != ap {
			t.Errorf("TED(%s, %s): zhangshasha=%v apted=%v, want equal", p[0], p[1], zs, ap)
		}
	}
}

func TestSubproblemCountIsPositive(t *testing.T) {
	tree1, _ := bracket.ParseSingle("{f{d{a}{c{b}}}{e}}")
	tree2, _ := bracket.ParseSingle("{f{c{d{a}{b}}}{e}}")
	dict := label.NewDictionary[string]()
	cm := costmodel.NewUnit()
	idx1 := treeindex.Build(tree1, dict, cm, fullCap)
	idx2 := treeindex.Build(tree2, dict, cm, fullCap)
	alg := New(cm)
	alg.TED(idx1, idx2)
	if alg.GetSubproblemCount() <= 0 {
		t.Errorf("GetSubproblemCount() = %d, want > 0", alg.GetSubproblemCount())
	}
}

// TestSinglePathShortcutMatchesGeneralCase checks that the §4.6
// single-path acceleration (two bare root-to-leaf chains) agrees with
// zhangshasha on the same inputs, exercising singlePathTED rather than
// the key-root decomposition.
func TestSinglePathShortcutMatchesGeneralCase(t *testing.T) {
	pairs := [][2]string{
		{"{a{b{c}}}", "{x{y{z}}}"},
		{"{a{b{c}}}", "{a{b{c}}}"},
		{"{a}", "{a{b{c{d}}}}"},
	}
	for _, p := range pairs {
		tree1, _ := bracket.ParseSingle(p[0])
		tree2, _ := bracket.ParseSingle(p[1])

		dict1 := label.NewDictionary[string]()
		cm := costmodel.NewUnit()
		zsIdx1 := treeindex.Build(tree1, dict1, cm, treeindex.CapZS)
		zsIdx2 := treeindex.Build(tree2, dict1, cm, treeindex.CapZS)
		zs := zhangshasha.New(cm).TED(zsIdx1, zsIdx2)

		dict2 := label.NewDictionary[string]()
		apIdx1 := treeindex.Build(tree1, dict2, cm, fullCap)
		apIdx2 := treeindex.Build(tree2, dict2, cm, fullCap)
		alg := New(cm)
		ap := alg.TED(apIdx1, apIdx2)

		if !isPureLeafPath(apIdx1, apIdx1.PreRoot()) || !isPureLeafPath(apIdx2, apIdx2.PreRoot()) {
			t.Fatalf("test inputs %s, %s must both be chains", p[0], p[1])
		}
		if zs != ap {
			t.Errorf("TED(%s, %s): zhangshasha=%v apted=%v, want equal", p[0], p[1], zs, ap)
		}
	}
}

// TestRightDecompositionPicksDifferentKeyRoots checks that APTED's
// right-path decomposition is not zhangshasha's left-path loop under a
// new name: for an asymmetric tree, the set of nodes RKR designates as
// right key roots (read back to preorder ids through PostRToPreL)
// differs from the set KR designates as ordinary (left) key roots
// (read back through PostLToPreL), even though both sets always have
// the same size (one exclusion per internal node, on either its first
// or its last child).
func TestRightDecompositionPicksDifferentKeyRoots(t *testing.T) {
	tree, _ := bracket.ParseSingle("{a{p}{b{q}{c{r}{d}}}}")
	dict := label.NewDictionary[string]()
	cm := costmodel.NewUnit()
	idx := treeindex.Build(tree, dict, cm, fullCap)

	left := make(map[int]bool, len(idx.KR))
	for _, postL := range idx.KR {
		left[idx.PostLToPreL[postL]] = true
	}
	right := make(map[int]bool, len(idx.RKR))
	for _, postR := range idx.RKR {
		right[idx.PostRToPreL[postR]] = true
	}
	if len(left) != len(right) {
		t.Fatalf("len(KR)=%d != len(RKR)=%d, want equal sizes", len(left), len(right))
	}
	if reflect.DeepEqual(left, right) {
		t.Errorf("KR and RKR designate the same node set %v, want a genuinely different decomposition", left)
	}

	// Whichever decomposition TED actually runs for this shape, it
	// must still agree with zhangshasha's left-only computation.
	zsIdx := treeindex.Build(tree, dict, cm, treeindex.CapZS)
	zs := zhangshasha.New(cm).TED(zsIdx, zsIdx)
	ap := New(cm).TED(idx, idx)
	if zs != ap {
		t.Errorf("TED(T, T): zhangshasha=%v apted=%v, want equal", zs, ap)
	}
}

func TestIsPureLeafPath(t *testing.T) {
	tree, _ := bracket.ParseSingle("{a{b{c}}}")
	dict := label.NewDictionary[string]()
	cm := costmodel.NewUnit()
	idx := treeindex.Build(tree, dict, cm, fullCap)
	if !isPureLeafPath(idx, idx.PreRoot()) {
		t.Errorf("isPureLeafPath(root) = false, want true for a single-child chain")
	}

	branchy, _ := bracket.ParseSingle("{a{b}{c}}")
	dict2 := label.NewDictionary[string]()
	idx2 := treeindex.Build(branchy, dict2, cm, fullCap)
	if isPureLeafPath(idx2, idx2.PreRoot()) {
		t.Errorf("isPureLeafPath(root) = true, want false for a two-child root")
	}
}
