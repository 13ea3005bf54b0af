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

// Package bracket implements the single-pass, linear-time bracket
// notation parser: tree := '{' label children '}', children := tree*.
// A run of characters terminated by an unescaped '{' or '}' is the
// label; whitespace is significant only within a label.
//
// Escape convention: inside a label, a back-tick escapes the character
// that follows it, so `` `{ ``, `` `} `` and `` `` `` produce literal
// '{', '}' and '`' in the label text. This is an implementation choice
// -- the source spec leaves the escape convention unspecified -- and is
// exercised by the round-trip tests in bracket_test.go.
package bracket

import (
	"errors"
	"fmt"
	"strings"

	log "github.com/golang/glog"

	"github.com/salikh/go-ted/node"
)

// ErrMalformedInput is returned (possibly wrapped) whenever the input
// text is not a well-formed bracket-notation tree: unbalanced braces,
// a dangling escape, or an empty document.
var ErrMalformedInput = errors.New("bracket: malformed input")

// Validate reports whether text is balanced bracket notation: the
// number of unescaped '{' equals the number of unescaped '}', and
// braces nest without ever going negative. It does not by itself
// guarantee ParseSingle will succeed (e.g. top-level sibling trees are
// balanced but not a single tree), but any input that fails Validate
// is certain to fail ParseSingle and ParseCollection too.
func Validate(text string) bool {
	r := []rune(text)
	if len(r) == 0 {
		return false
	}
	depth := 0
	for i := 0; i < len(r); i++ {
		switch r[i] {
		case '`':
			i++ // skip the escaped character, if any
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

type parser struct {
	r   []rune
	pos int
}

func (p *parser) skipSpace() {
	for p.pos < len(p.r) {
		switch p.r[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) parseLabel() (string, error) {
	var b strings.Builder
	for p.pos < len(p.r) {
		c := p.r[p.pos]
		if c == '{' || c == '}' {
			break
		}
		if c == '`' {
			p.pos++
			if p.pos >= len(p.r) {
				return "", fmt.Errorf("%w: dangling escape at end of input", ErrMalformedInput)
			}
			b.WriteRune(p.r[p.pos])
			p.pos++
			continue
		}
		b.WriteRune(c)
		p.pos++
	}
	return b.String(), nil
}

func (p *parser) parseNode() (*node.Node[string], error) {
	if p.pos >= len(p.r) || p.r[p.pos] != '{' {
		return nil, fmt.Errorf("%w: expected '{' at position %d", ErrMalformedInput, p.pos)
	}
	p.pos++
	label, err := p.parseLabel()
	if err != nil {
		return nil, err
	}
	var children []*node.Node[string]
	for p.pos < len(p.r) && p.r[p.pos] == '{' {
		child, err := p.parseNode()
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	if p.pos >= len(p.r) || p.r[p.pos] != '}' {
		return nil, fmt.Errorf("%w: expected '}' at position %d", ErrMalformedInput, p.pos)
	}
	p.pos++
	return &node.Node[string]{Label: label, Children: children}, nil
}

// ParseSingle parses text as a single bracket-notation tree. It fails
// with ErrMalformedInput on any structural violation; an empty label
// ("{}") is permitted and yields a leaf with the empty-string label.
func ParseSingle(text string) (*node.Node[string], error) {
	if !Validate(text) {
		return nil, fmt.Errorf("%w: unbalanced braces or empty input", ErrMalformedInput)
	}
	p := &parser{r: []rune(text)}
	p.skipSpace()
	n, err := p.parseNode()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.r) {
		return nil, fmt.Errorf("%w: trailing input after top-level tree at position %d", ErrMalformedInput, p.pos)
	}
	log.V(5).Infof("parsed tree:\n%s", n)
	return n, nil
}

// ParseCollection splits text at top-level siblings and parses each as
// a tree, returning them in input order.
func ParseCollection(text string) ([]*node.Node[string], error) {
	if !Validate(text) {
		return nil, fmt.Errorf("%w: unbalanced braces or empty input", ErrMalformedInput)
	}
	p := &parser{r: []rune(text)}
	var result []*node.Node[string]
	p.skipSpace()
	for p.pos < len(p.r) {
		n, err := p.parseNode()
		if err != nil {
			return nil, err
		}
		result = append(result, n)
		p.skipSpace()
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("%w: no trees found", ErrMalformedInput)
	}
	return result, nil
}

// Render is the inverse of ParseSingle: it produces the canonical
// bracket-notation text for tree, escaping '{', '}' and '`' inside
// labels. Render(ParseSingle(s)) == s for any s already in canonical
// form (no whitespace outside of labels).
func Render(tree *node.Node[string]) string {
	var b strings.Builder
	render(tree, &b)
	return b.String()
}

func render(n *node.Node[string], b *strings.Builder) {
	b.WriteByte('{')
	for _, r := range n.Label {
		if r == '{' || r == '}' || r == '`' {
			b.WriteByte('`')
		}
		b.WriteRune(r)
	}
	for _, ch := range n.Children {
		render(ch, b)
	}
	b.WriteByte('}')
}
