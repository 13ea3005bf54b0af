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

package zhangshasha

import (
	"testing"

	"github.com/salikh/go-ted/bracket"
	"github.com/salikh/go-ted/costmodel"
	"github.com/salikh/go-ted/label"
	"github.com/salikh/go-ted/treeindex"
)

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
	idx1 := treeindex.Build(tree1, dict, cm, treeindex.CapZS)
	idx2 := treeindex.Build(tree2, dict, cm, treeindex.CapZS)
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

func TestIdentity(t *testing.T) {
	trees := []string{"{a}", "{a{b}{c}}", "{f{d{a}{c{b}}}{e}}"}
	for _, tr := range trees {
		if got := ted(t, tr, tr); got != 0 {
			t.Errorf("TED(%s, %s) = %v, want 0", tr, tr, got)
		}
	}
}

func TestSymmetry(t *testing.T) {
	tests := [][2]string{
		{"{a{b}{c}}", "{a{c}{b}}"},
		{"{f{d{a}{c{b}}}{e}}", "{f{c{d{a}{b}}}{e}}"},
	}
	for _, tt := range tests {
		forward := ted(t, tt[0], tt[1])
		backward := ted(t, tt[1], tt[0])
		if forward != backward {
			t.Errorf("TED(%s, %s) = %v, TED(%s, %s) = %v, want equal", tt[0], tt[1], forward, tt[1], tt[0], backward)
		}
	}
}

func TestTriangleInequality(t *testing.T) {
	a, b, c := "{a{b}{c}}", "{a{c}{b}}", "{x{y}}"
	ab := ted(t, a, b)
	bc := ted(t, b, c)
	ac := ted(t, a, c)
	if ac > ab+bc {
		t.Errorf("TED(A, C) = %v, want <= TED(A, B) + TED(B, C) = %v", ac, ab+bc)
	}
}

func TestUnitCostUpperBound(t *testing.T) {
	tree1, _ := bracket.ParseSingle("{a{b}{c}}")
	tree2, _ := bracket.ParseSingle("{x{y}{z}}")
	dict := label.NewDictionary[string]()
	cm := costmodel.NewUnit()
	idx1 := treeindex.Build(tree1, dict, cm, treeindex.CapZS)
	idx2 := treeindex.Build(tree2, dict, cm, treeindex.CapZS)
	got := New(cm).TED(idx1, idx2)
	bound := float64(idx1.TreeSize + idx2.TreeSize)
	if got > bound {
		t.Errorf("TED = %v, want <= |T1|+|T2| = %v", got, bound)
	}
	if got != 3 {
		t.Errorf("TED = %v with fully disjoint labels, want exactly 3 (one relabel per node)", got)
	}
}

func TestSubproblemCountIsPositive(t *testing.T) {
	tree1, _ := bracket.ParseSingle("{f{d{a}{c{b}}}{e}}")
	tree2, _ := bracket.ParseSingle("{f{c{d{a}{b}}}{e}}")
	dict := label.NewDictionary[string]()
	cm := costmodel.NewUnit()
	idx1 := treeindex.Build(tree1, dict, cm, treeindex.CapZS)
	idx2 := treeindex.Build(tree2, dict, cm, treeindex.CapZS)
	alg := New(cm)
	alg.TED(idx1, idx2)
	if alg.GetSubproblemCount() <= 0 {
		t.Errorf("GetSubproblemCount() = %d, want > 0", alg.GetSubproblemCount())
	}
}
