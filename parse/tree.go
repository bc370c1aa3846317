// Copyright 2023 Matthew P. Dargan. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import (
	"github.com/pkg/errors"

	"github.com/matthewdargan/gfmtable/scan"
)

// Node is a token with the tokens nested inside it.
type Node struct {
	*scan.Token
	Children []*Node
}

// Build nests a balanced event list into a tree under a Document node.
// It reports an error for an exit without a matching enter and for
// tokens left open.
func Build(events []scan.Event) (*Node, error) {
	root := &Node{Token: &scan.Token{Type: scan.Document}}
	stack := []*Node{root}
	for i, ev := range events {
		top := stack[len(stack)-1]
		switch ev.Kind {
		case scan.Enter:
			n := &Node{Token: ev.Token}
			top.Children = append(top.Children, n)
			stack = append(stack, n)
		case scan.Exit:
			if len(stack) == 1 {
				return nil, errors.Errorf("event %d: exit %s with no open token", i, ev.Token.Type)
			}
			if top.Token != ev.Token {
				return nil, errors.Errorf("event %d: exit %s while %s is open", i, ev.Token, top.Token)
			}
			stack = stack[:len(stack)-1]
		}
		if ev.Token.End > root.End {
			root.End = ev.Token.End
		}
	}
	if n := len(stack) - 1; n > 0 {
		return nil, errors.Errorf("%d tokens left open, innermost %s", n, stack[n].Token)
	}
	return root, nil
}

// Parse tokenizes src and builds its tree.
func Parse(src *scan.Source, opts Options) (*Node, error) {
	return Tree(src, Events(src, opts), opts)
}

// Tree builds the tree of the events Events returned for src. The
// lines of each block quote are replaced by the blocks they hold.
func Tree(src *scan.Source, events []scan.Event, opts Options) (*Node, error) {
	root, err := Build(events)
	if err != nil {
		return nil, errors.Wrap(err, "build tree")
	}
	if err := expand(src, root, opts); err != nil {
		return nil, err
	}
	return root, nil
}

// expand tokenizes the content of each block quote among the children
// of n and makes the resulting blocks the children of the quote.
func expand(src *scan.Source, n *Node, opts Options) error {
	for _, c := range n.Children {
		if c.Type != scan.BlockQuote {
			continue
		}
		sub := src.Extract(quoteLines(c))
		inner, err := Build(Events(sub, opts))
		if err != nil {
			line, _ := src.Position(c.Start)
			return errors.Wrapf(err, "block quote on line %d", line)
		}
		for _, b := range inner.Children {
			b.Walk(func(m *Node) bool {
				m.Start, m.End = span(sub, m.Start, m.End)
				return true
			})
		}
		c.Children = inner.Children
		if err := expand(src, c, opts); err != nil {
			return err
		}
	}
	return nil
}

// span maps [start, end) in sub to the source sub was extracted from.
func span(sub *scan.Source, start, end int) (int, int) {
	if end <= start {
		o := sub.Origin(start)
		return o, o
	}
	return sub.Origin(start), sub.Origin(end-1) + 1
}

// Walk calls fn for n and each of its descendants in document order.
// If fn returns false, the children of that node are skipped.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Find returns the descendants of n, n included, that have type typ.
func (n *Node) Find(typ scan.Type) []*Node {
	var nodes []*Node
	n.Walk(func(c *Node) bool {
		if c.Type == typ {
			nodes = append(nodes, c)
		}
		return true
	})
	return nodes
}

// Child returns the first child of n with type typ, or nil.
func (n *Node) Child(typ scan.Type) *Node {
	for _, c := range n.Children {
		if c.Type == typ {
			return c
		}
	}
	return nil
}

// Text returns the source text of n.
func (n *Node) Text(src *scan.Source) string {
	return src.Slice(n.Start, n.End)
}
