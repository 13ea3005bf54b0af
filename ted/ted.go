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

// Package ted is the narrow capability abstraction every TED
// algorithm variant satisfies, plus a by-name registry (§4.9) the CLI
// front end dispatches through.
package ted

import (
	"errors"
	"fmt"

	"github.com/salikh/go-ted/apted"
	"github.com/salikh/go-ted/costmodel"
	"github.com/salikh/go-ted/lgm"
	"github.com/salikh/go-ted/touzet"
	"github.com/salikh/go-ted/treeindex"
	"github.com/salikh/go-ted/zhangshasha"
)

// ErrUnknownAlgorithm is returned by ByName when name does not match
// any registered algorithm.
var ErrUnknownAlgorithm = errors.New("ted: unknown algorithm")

// Algorithm is the capability every TED variant provides: an exact (or,
// for LGM, upper-bound) distance between two indexed trees.
type Algorithm interface {
	TED(i1, i2 *treeindex.TreeIndex) float64
}

// Bounded is the capability the Touzet family and LGM add: a distance
// computation that short-circuits once it is certain to exceed k,
// returning a sentinel strictly greater than k in that case.
type Bounded interface {
	Algorithm
	TEDK(i1, i2 *treeindex.TreeIndex, k int) float64
}

// SubproblemCounter is the optional deterministic work hook §4.6 and
// §4.8 call for: the number of forest-distance cells the most recent
// TED/TEDK call actually computed.
type SubproblemCounter interface {
	GetSubproblemCount() int
}

// Capability reports the treeindex.Capability bits an algorithm needs
// from a TreeIndex it will be called with.
func Capability(name string) (treeindex.Capability, error) {
	switch name {
	case "zhang_shasha":
		return treeindex.CapBasic | treeindex.CapZS, nil
	case "apted":
		return treeindex.CapAll, nil
	case "touzet_baseline", "touzet_depth_pruning",
		"touzet_depth_pruning_truncated_tree_fix", "touzet_kr_loop", "touzet_kr_set":
		return treeindex.CapBasic | treeindex.CapZS, nil
	case "lgm":
		return treeindex.CapBasic | treeindex.CapZS | treeindex.CapSubtreeCost, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// ByName resolves one of the seven algorithm names from §6, plus
// "lgm", to an Algorithm instance using cm for edit costs. touzet_*
// names select a touzet.Variant; zhang_shasha and apted ignore the
// variant distinction entirely.
func ByName(name string, cm costmodel.Model) (Algorithm, error) {
	switch name {
	case "zhang_shasha":
		return zhangshasha.New(cm), nil
	case "apted":
		return apted.New(cm), nil
	case "touzet_baseline":
		return touzet.New(cm, touzet.Baseline), nil
	case "touzet_depth_pruning":
		return touzet.New(cm, touzet.DepthPruning), nil
	case "touzet_depth_pruning_truncated_tree_fix":
		return touzet.New(cm, touzet.DepthPruningTruncatedFix), nil
	case "touzet_kr_loop":
		return touzet.New(cm, touzet.KRLoop), nil
	case "touzet_kr_set":
		return touzet.New(cm, touzet.KRSet), nil
	case "lgm":
		return lgm.New(cm), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// Names lists every algorithm name ByName accepts, in the order §6
// lists the seven TED variants, followed by "lgm".
func Names() []string {
	return []string{
		"zhang_shasha",
		"apted",
		"touzet_baseline",
		"touzet_depth_pruning",
		"touzet_depth_pruning_truncated_tree_fix",
		"touzet_kr_loop",
		"touzet_kr_set",
		"lgm",
	}
}
