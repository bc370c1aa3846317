// Copyright 2023 Matthew P. Dargan. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import (
	"strings"

	"golang.org/x/net/html/atom"

	"github.com/matthewdargan/gfmtable/scan"
)

// blockTags are the elements that start an HTML block ending at a blank line.
var blockTags = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true, atom.Base: true,
	atom.Basefont: true, atom.Blockquote: true, atom.Body: true, atom.Caption: true,
	atom.Center: true, atom.Col: true, atom.Colgroup: true, atom.Dd: true,
	atom.Details: true, atom.Dialog: true, atom.Dir: true, atom.Div: true,
	atom.Dl: true, atom.Dt: true, atom.Fieldset: true, atom.Figcaption: true,
	atom.Figure: true, atom.Footer: true, atom.Form: true, atom.Frame: true,
	atom.Frameset: true, atom.H1: true, atom.H2: true, atom.H3: true,
	atom.H4: true, atom.H5: true, atom.H6: true, atom.Head: true,
	atom.Header: true, atom.Hr: true, atom.Html: true, atom.Iframe: true,
	atom.Legend: true, atom.Li: true, atom.Link: true, atom.Main: true,
	atom.Menu: true, atom.Menuitem: true, atom.Nav: true, atom.Noframes: true,
	atom.Ol: true, atom.Optgroup: true, atom.Option: true, atom.P: true,
	atom.Param: true, atom.Section: true, atom.Summary: true, atom.Table: true,
	atom.Tbody: true, atom.Td: true, atom.Tfoot: true, atom.Th: true,
	atom.Thead: true, atom.Title: true, atom.Tr: true, atom.Track: true,
	atom.Ul: true,
}

// rawTags are the elements whose block ends at their closing tag.
var rawTags = map[atom.Atom]bool{
	atom.Pre: true, atom.Script: true, atom.Style: true, atom.Textarea: true,
}

// htmlBlock holds the state of one HTML block.
type htmlBlock struct {
	t       *scan.Tokenizer
	ok, nok scan.State
	closing bool   // the opening tag is an end tag
	name    int    // index where the tag name starts
	end     string // text that ends the block, or "" to end at a blank line
}

// tokenizeHTMLFlow matches a block of raw HTML: a comment, a processing
// instruction, a declaration, CDATA, an element whose content is raw text,
// or a block-level element. Each line is kept as one ChunkText.
func tokenizeHTMLFlow(t *scan.Tokenizer, ok, nok scan.State) scan.State {
	s := &htmlBlock{t: t, ok: ok, nok: nok}
	return func(c scan.Code) scan.State {
		if c != '<' {
			return nok(c)
		}
		t.Enter(scan.HTMLFlow)
		t.Enter(scan.ChunkText)
		t.Consume(c)
		return s.open
	}
}

func isASCIIAlpha(c scan.Code) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isASCIIAlphanumeric(c scan.Code) bool {
	return isASCIIAlpha(c) || c >= '0' && c <= '9'
}

// open scans the code after '<'.
func (s *htmlBlock) open(c scan.Code) scan.State {
	switch {
	case c == '!':
		s.t.Consume(c)
		return s.declaration
	case c == '?':
		s.t.Consume(c)
		s.end = "?>"
		return s.content
	case c == '/':
		s.t.Consume(c)
		s.closing = true
		return s.tagStart
	}
	return s.tagStart(c)
}

// declaration scans the code after "<!".
func (s *htmlBlock) declaration(c scan.Code) scan.State {
	switch {
	case c == '-':
		s.t.Consume(c)
		return s.commentStart
	case c == '[':
		s.t.Consume(c)
		return s.expect("CDATA[", "]]>")
	case isASCIIAlpha(c):
		s.end = ">"
		return s.content(c)
	}
	return s.nok(c)
}

func (s *htmlBlock) commentStart(c scan.Code) scan.State {
	if c != '-' {
		return s.nok(c)
	}
	s.t.Consume(c)
	s.end = "-->"
	return s.content
}

// expect scans the literal text want and then sets the end marker.
func (s *htmlBlock) expect(want, end string) scan.State {
	if want == "" {
		s.end = end
		return s.content
	}
	return func(c scan.Code) scan.State {
		if c != scan.Code(want[0]) {
			return s.nok(c)
		}
		s.t.Consume(c)
		return s.expect(want[1:], end)
	}
}

func (s *htmlBlock) tagStart(c scan.Code) scan.State {
	if !isASCIIAlpha(c) {
		return s.nok(c)
	}
	s.name = s.t.Index()
	return s.tagName(c)
}

// tagName scans a tag name and decides which kind of block it opens.
func (s *htmlBlock) tagName(c scan.Code) scan.State {
	if isASCIIAlphanumeric(c) || c == '-' {
		s.t.Consume(c)
		return s.tagName
	}
	name := strings.ToLower(s.t.Source().Slice(s.name, s.t.Index()))
	a := atom.Lookup([]byte(name))
	switch {
	case !s.closing && rawTags[a] && (c == '>' || isEnd(c) || scan.IsSpace(c)):
		s.end = "</" + name + ">"
		return s.content(c)
	case blockTags[a] && (c == '>' || isEnd(c) || scan.IsSpace(c)):
		return s.content(c)
	case blockTags[a] && c == '/':
		s.t.Consume(c)
		return s.selfClosing
	}
	return s.nok(c)
}

func (s *htmlBlock) selfClosing(c scan.Code) scan.State {
	if c != '>' {
		return s.nok(c)
	}
	return s.content(c)
}

func (s *htmlBlock) content(c scan.Code) scan.State {
	if isEnd(c) {
		return s.lineEnd(c)
	}
	s.t.Consume(c)
	return s.content
}

// lineEnd ends the block if the line holds its end marker, and otherwise
// continues on the next line.
func (s *htmlBlock) lineEnd(c scan.Code) scan.State {
	tok := s.t.Exit(scan.ChunkText)
	text := s.t.Source().Slice(tok.Start, tok.End)
	switch {
	case s.end != "" && strings.Contains(strings.ToLower(text), s.end):
		return s.done(c)
	case c == scan.EOF:
		return s.done(c)
	case s.end == "":
		return s.t.Check(nextBlank, s.done, s.next)(c)
	}
	return s.next(c)
}

func (s *htmlBlock) next(c scan.Code) scan.State {
	s.t.LineEnding(c)
	s.t.Enter(scan.ChunkText)
	return s.content
}

func (s *htmlBlock) done(c scan.Code) scan.State {
	s.t.Exit(scan.HTMLFlow)
	return s.ok(c)
}
