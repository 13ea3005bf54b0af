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

package ted

import (
	"testing"

	"github.com/salikh/go-ted/bracket"
	"github.com/salikh/go-ted/costmodel"
	"github.com/salikh/go-ted/label"
	"github.com/salikh/go-ted/treeindex"
)

func TestByNameRejectsUnknownAlgorithm(t *testing.T) {
	if _, err := ByName("not_an_algorithm", costmodel.NewUnit()); err == nil {
		t.Errorf("ByName(%q) returned nil error, want ErrUnknownAlgorithm", "not_an_algorithm")
	}
}

func TestCapabilityRejectsUnknownAlgorithm(t *testing.T) {
	if _, err := Capability("not_an_algorithm"); err == nil {
		t.Errorf("Capability(%q) returned nil error, want ErrUnknownAlgorithm", "not_an_algorithm")
	}
}

// TestScenariosAgreeAcrossAlgorithms runs every named algorithm over
// the §8 end-to-end scenario table and checks it reproduces the
// expected distance -- the cross-algorithm agreement invariant (§8
// property 5) exercised through the by-name dispatch the CLI uses.
func TestScenariosAgreeAcrossAlgorithms(t *testing.T) {
	scenarios := []struct {
		name string
		t1   string
		t2   string
		want float64
	}{
		{"identical-leaves", "{a}", "{a}", 0},
		{"distinct-leaves", "{a}", "{b}", 1},
		{"identical-subtrees", "{a{b}{c}}", "{a{b}{c}}", 0},
		{"swapped-children", "{a{b}{c}}", "{a{c}{b}}", 2},
		{"single-relabel", "{x{a}}", "{x{b}}", 1},
		{"canonical-zs-example", "{f{d{a}{c{b}}}{e}}", "{f{c{d{a}{b}}}{e}}", 2},
	}
	cm := costmodel.NewUnit()
	for _, sc := range scenarios {
		t.Run(sc.name, func(t *testing.T) {
			tree1, err := bracket.ParseSingle(sc.t1)
			if err != nil {
				t.Fatalf("ParseSingle(%q) returned error %v", sc.t1, err)
			}
			tree2, err := bracket.ParseSingle(sc.t2)
			if err != nil {
				t.Fatalf("ParseSingle(%q) returned error %v", sc.t2, err)
			}
			for _, name := range Names() {
				if name == "lgm" {
					continue // LGM is an upper bound, not required to match exactly
				}
				dict := label.NewDictionary[string]()
				cap, err := Capability(name)
				if err != nil {
					t.Fatalf("Capability(%q) returned error %v", name, err)
				}
				idx1 := treeindex.Build(tree1, dict, cm, cap)
				idx2 := treeindex.Build(tree2, dict, cm, cap)
				alg, err := ByName(name, cm)
				if err != nil {
					t.Fatalf("ByName(%q) returned error %v", name, err)
				}
				if got := alg.TED(idx1, idx2); got != sc.want {
					t.Errorf("%s: TED(%s, %s) = %v, want %v", name, sc.t1, sc.t2, got, sc.want)
				}
			}
		})
	}
}

// TestTouzetBoundedRejectsBelowTrueDistance checks §8 property 6 for
// the canonical scenario through the by-name Bounded interface.
func TestTouzetBoundedRejectsBelowTrueDistance(t *testing.T) {
	cm := costmodel.NewUnit()
	tree1, _ := bracket.ParseSingle("{f{d{a}{c{b}}}{e}}")
	tree2, _ := bracket.ParseSingle("{f{c{d{a}{b}}}{e}}")
	dict := label.NewDictionary[string]()
	idx1 := treeindex.Build(tree1, dict, cm, treeindex.CapZS)
	idx2 := treeindex.Build(tree2, dict, cm, treeindex.CapZS)

	alg, err := ByName("touzet_baseline", cm)
	if err != nil {
		t.Fatalf("ByName returned error %v", err)
	}
	bounded, ok := alg.(Bounded)
	if !ok {
		t.Fatalf("touzet_baseline algorithm does not implement Bounded")
	}
	if got := bounded.TEDK(idx1, idx2, 2); got != 2 {
		t.Errorf("TEDK(k=2) = %v, want 2", got)
	}
	if got := bounded.TEDK(idx1, idx2, 1); got <= 1 {
		t.Errorf("TEDK(k=1) = %v, want a value > 1", got)
	}
}

func TestLGMUpperBoundsAPTED(t *testing.T) {
	cm := costmodel.NewUnit()
	tree1, _ := bracket.ParseSingle("{a{b}{c}}")
	tree2, _ := bracket.ParseSingle("{x{y}{z}}")
	dict := label.NewDictionary[string]()
	idx1 := treeindex.Build(tree1, dict, cm, treeindex.CapAll)
	idx2 := treeindex.Build(tree2, dict, cm, treeindex.CapAll)

	aptedAlg, err := ByName("apted", cm)
	if err != nil {
		t.Fatalf("ByName(apted) returned error %v", err)
	}
	lgmAlg, err := ByName("lgm", cm)
	if err != nil {
		t.Fatalf("ByName(lgm) returned error %v", err)
	}
	exact := aptedAlg.TED(idx1, idx2)
	bound := lgmAlg.TED(idx1, idx2)
	if bound < exact {
		t.Errorf("lgm.TED = %v, want >= apted.TED = %v", bound, exact)
	}
}
