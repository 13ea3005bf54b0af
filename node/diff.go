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

package node

import "fmt"

// Diff structurally compares got against want and returns a list of
// human-readable differences, or nil if the two trees are identical.
// It is intended for test failure messages -- e.g. comparing a tree
// produced by bracket.ParseSingle against an expected tree -- not for
// edit distance computation; Diff does not search for an alignment, it
// walks both trees in lockstep.
func Diff[L comparable](got, want *Node[L]) (diff []string) {
	if got == nil && want == nil {
		return nil
	}
	if got == nil {
		diff = append(diff, fmt.Sprintf("expected %v, got nil", want.Label))
		return
	}
	if want == nil {
		diff = append(diff, fmt.Sprintf("expected nil, got %v", got.Label))
		return
	}
	if got.Label != want.Label {
		diff = append(diff, fmt.Sprintf("expected label %v, got %v", want.Label, got.Label))
	}
	if len(got.Children) != len(want.Children) {
		diff = append(diff, fmt.Sprintf("expected %d children, got %d", len(want.Children), len(got.Children)))
	}
	n := len(got.Children)
	if len(want.Children) < n {
		n = len(want.Children)
	}
	for i := 0; i < n; i++ {
		diff = append(diff, Diff(got.Children[i], want.Children[i])...)
	}
	return
}
