// Copyright 2023 Matthew P. Dargan. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package parse splits a document into blocks and builds a tree of them.
//
// The document tokenizer reads one line at a time. At the start of each
// line it tries, in order, a blank line, indented code and then, after at
// most three columns of indentation, the block constructs: ATX heading,
// thematic break, fenced code, HTML, block quote, list item, table and
// paragraph. The first construct that matches consumes the block.
//
// A block quote keeps the text after its markers as one chunk per line.
// Parse tokenizes that text again as a document of its own, so quotes
// nest and hold any block. List items are single lines of text.
package parse

import (
	"fmt"

	"github.com/matthewdargan/gfmtable/scan"
	"github.com/matthewdargan/gfmtable/table"
)

// Options switches host constructs off.
type Options struct {
	DisableIndentedCode bool // indented lines are paragraph text
	DisableTables       bool // pipe tables are paragraph text
}

// flow holds the state of the document tokenizer.
type flow struct {
	t      *scan.Tokenizer
	blocks []*scan.Construct // constructs tried after the line prefix
}

// Events tokenizes src and returns its flow-level events.
func Events(src *scan.Source, opts Options) []scan.Event {
	var disabled []string
	if opts.DisableIndentedCode {
		disabled = append(disabled, codeIndented.Name)
	}
	if opts.DisableTables {
		disabled = append(disabled, table.Construct.Name)
	}
	t := scan.NewTokenizer(src, disabled...)
	t.Interrupters = []*scan.Construct{blockQuote, listItem, headingATX, thematicBreak, codeFenced, htmlFlow}
	f := &flow{
		t:      t,
		blocks: []*scan.Construct{headingATX, thematicBreak, codeFenced, htmlFlow, blockQuote, listItem},
	}
	if !opts.DisableTables {
		f.blocks = append(f.blocks, table.Construct)
	}
	f.blocks = append(f.blocks, paragraph)
	t.Run(f.lineStart)
	return t.Events()
}

// options returns the options t was made with.
func options(t *scan.Tokenizer) Options {
	return Options{
		DisableIndentedCode: t.Disabled(codeIndented.Name),
		DisableTables:       t.Disabled(table.Construct.Name),
	}
}

// lineStart scans the start of a line.
func (f *flow) lineStart(c scan.Code) scan.State {
	if c == scan.EOF {
		return nil
	}
	next := f.prefixed
	if !f.t.Disabled(codeIndented.Name) {
		next = f.t.Attempt(codeIndented, f.after, f.prefixed)
	}
	return f.t.Attempt(blankLine, f.after, next)(c)
}

// prefixed skips the line prefix and tries each block construct.
func (f *flow) prefixed(c scan.Code) scan.State {
	max := scan.TabSize
	if f.t.Disabled(codeIndented.Name) {
		max = 0
	}
	return f.t.Space(attempt(f.t, f.blocks, f.after, f.after), scan.LinePrefix, max)(c)
}

// after scans the line ending that follows a block.
// Every block ends at a line ending or at the end of input.
func (f *flow) after(c scan.Code) scan.State {
	switch {
	case c == scan.EOF:
		return nil
	case scan.IsLineEnding(c):
		f.t.LineEnding(c)
		return f.lineStart
	}
	line, col := f.t.Source().Position(f.t.Index())
	panic(fmt.Sprintf("parse: block ended inside line %d at column %d", line, col))
}

// attempt tries each construct in cs in turn and continues with ok after
// the first one that matches, or with nok if none does.
func attempt(t *scan.Tokenizer, cs []*scan.Construct, ok, nok scan.State) scan.State {
	if len(cs) == 0 {
		return nok
	}
	return t.Attempt(cs[0], ok, attempt(t, cs[1:], ok, nok))
}

// check is like attempt but never keeps what the constructs scanned.
func check(t *scan.Tokenizer, cs []*scan.Construct, ok, nok scan.State) scan.State {
	if len(cs) == 0 {
		return nok
	}
	return t.Check(cs[0], ok, check(t, cs[1:], ok, nok))
}

// startsNextLine returns a lookahead construct that matches a line ending
// followed, after at most three columns of indentation, by any of cs.
func startsNextLine(name string, cs ...*scan.Construct) *scan.Construct {
	return &scan.Construct{
		Name: name,
		Tokenize: func(t *scan.Tokenizer, ok, nok scan.State) scan.State {
			return func(c scan.Code) scan.State {
				if !scan.IsLineEnding(c) {
					return nok(c)
				}
				t.LineEnding(c)
				return t.Space(check(t, cs, ok, nok), scan.LinePrefix, scan.TabSize)
			}
		},
		Partial: true,
	}
}
