// Copyright 2023 Matthew P. Dargan. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import (
	"strings"

	"github.com/matthewdargan/gfmtable/scan"
	"github.com/matthewdargan/gfmtable/table"
)

// ListMarker is the Meta of a ListItem token.
type ListMarker struct {
	Ordered bool
	Start   int  // number of an ordered item
	Delim   rune // '-', '+' or '*' for bullets; '.' or ')' for ordered items
}

var (
	blankLine     = &scan.Construct{Name: "blankLine", Tokenize: tokenizeBlankLine}
	codeIndented  = &scan.Construct{Name: "codeIndented", Tokenize: tokenizeCodeIndented}
	headingATX    = &scan.Construct{Name: "headingAtx", Tokenize: tokenizeHeadingATX, Interruptible: true}
	thematicBreak = &scan.Construct{Name: "thematicBreak", Tokenize: tokenizeThematicBreak, Interruptible: true}
	codeFenced    = &scan.Construct{Name: "codeFenced", Tokenize: tokenizeCodeFenced, Interruptible: true}
	htmlFlow      = &scan.Construct{Name: "htmlFlow", Tokenize: tokenizeHTMLFlow, Interruptible: true}
	blockQuote    = &scan.Construct{Name: "blockQuote", Interruptible: true}
	listItem      = &scan.Construct{Name: "listItem", Tokenize: tokenizeListItem(false), Interruptible: true}
	paragraph     = &scan.Construct{Name: "paragraph", Tokenize: tokenizeParagraph}

	// listItemInterrupt is a list item that may end a paragraph:
	// it has content and, if ordered, starts at 1.
	listItemInterrupt = &scan.Construct{Name: "listItemInterrupt", Tokenize: tokenizeListItem(true), Partial: true}

	nextBlank        = &scan.Construct{Name: "nextBlank", Tokenize: tokenizeNextBlank, Partial: true}
	furtherIndented  = &scan.Construct{Name: "furtherIndented", Tokenize: tokenizeFurtherIndented, Partial: true}
	setextUnderline  = &scan.Construct{Name: "setextUnderline", Tokenize: tokenizeSetextUnderline, Partial: true}
	quoteMarker      = &scan.Construct{Name: "quoteMarker", Tokenize: tokenizeQuoteMarker, Partial: true}
	nextSetext       = startsNextLine("nextSetext", setextUnderline)
	nextQuoteLine    = startsNextLine("nextQuoteLine", quoteMarker)
	paragraphEnders  = []*scan.Construct{headingATX, thematicBreak, codeFenced, htmlFlow, blockQuote, listItemInterrupt}
	nextParagraphEnd = startsNextLine("nextParagraphEnd", paragraphEnders...)
	nextTableStart   = startsNextLine("nextTableStart", table.Construct)
)

// init sets blockQuote's tokenizer here to break the package
// initialization cycle through paragraphEnders.
func init() {
	blockQuote.Tokenize = tokenizeBlockQuote
}

func isEnd(c scan.Code) bool {
	return c == scan.EOF || scan.IsLineEnding(c)
}

// tokenizeBlankLine matches a line of only spaces and tabs.
func tokenizeBlankLine(t *scan.Tokenizer, ok, nok scan.State) scan.State {
	var rest scan.State
	rest = func(c scan.Code) scan.State {
		switch {
		case scan.IsSpace(c):
			t.Consume(c)
			return rest
		case isEnd(c):
			t.Exit(scan.BlankLine)
			return ok(c)
		}
		return nok(c)
	}
	return func(c scan.Code) scan.State {
		t.Enter(scan.BlankLine)
		return rest(c)
	}
}

// tokenizeNextBlank matches a line ending followed by a blank line or the
// end of input.
func tokenizeNextBlank(t *scan.Tokenizer, ok, nok scan.State) scan.State {
	var rest scan.State
	rest = func(c scan.Code) scan.State {
		switch {
		case scan.IsSpace(c):
			t.Consume(c)
			return rest
		case isEnd(c):
			return ok(c)
		}
		return nok(c)
	}
	return func(c scan.Code) scan.State {
		if !scan.IsLineEnding(c) {
			return nok(c)
		}
		t.LineEnding(c)
		return rest
	}
}

// line scans the rest of a line into a ChunkText token and continues with
// next at the line ending or the end of input.
func line(t *scan.Tokenizer, next scan.State) scan.State {
	var content scan.State
	content = func(c scan.Code) scan.State {
		if isEnd(c) {
			t.Exit(scan.ChunkText)
			return next(c)
		}
		t.Consume(c)
		return content
	}
	return func(c scan.Code) scan.State {
		t.Enter(scan.ChunkText)
		return content(c)
	}
}

// indented holds the state of one indented code block.
type indented struct {
	t       *scan.Tokenizer
	ok, nok scan.State
	size    int  // columns of the current line prefix
	first   bool // scanning the first line
}

func tokenizeCodeIndented(t *scan.Tokenizer, ok, nok scan.State) scan.State {
	s := &indented{t: t, ok: ok, nok: nok, first: true}
	return func(c scan.Code) scan.State {
		if !scan.IsSpace(c) {
			return nok(c)
		}
		t.Enter(scan.CodeIndented)
		return s.lineStart(c)
	}
}

func (s *indented) lineStart(c scan.Code) scan.State {
	s.size = 0
	if !scan.IsSpace(c) {
		return s.content(c)
	}
	s.t.Enter(scan.LinePrefix)
	return s.prefix(c)
}

// prefix scans up to a tab stop of indentation.
func (s *indented) prefix(c scan.Code) scan.State {
	if scan.IsSpace(c) && s.size < scan.TabSize {
		s.t.Consume(c)
		s.size++
		return s.prefix
	}
	s.t.Exit(scan.LinePrefix)
	if s.first && s.size < scan.TabSize {
		return s.nok(c)
	}
	s.first = false
	return s.content(c)
}

// content scans the code on one line. Every line, even an empty one,
// gets a ChunkText token.
func (s *indented) content(c scan.Code) scan.State {
	return line(s.t, s.lineEnd)(c)
}

func (s *indented) lineEnd(c scan.Code) scan.State {
	if c == scan.EOF {
		return s.done(c)
	}
	return s.t.Check(furtherIndented, s.next, s.done)(c)
}

func (s *indented) next(c scan.Code) scan.State {
	s.t.LineEnding(c)
	return s.lineStart
}

func (s *indented) done(c scan.Code) scan.State {
	s.t.Exit(scan.CodeIndented)
	return s.ok(c)
}

// tokenizeFurtherIndented matches a line ending followed by any number of
// blank lines and then a line indented by a full tab stop.
func tokenizeFurtherIndented(t *scan.Tokenizer, ok, nok scan.State) scan.State {
	var size int
	var lineStart, prefix scan.State
	lineStart = func(c scan.Code) scan.State {
		if !scan.IsLineEnding(c) {
			return nok(c)
		}
		t.LineEnding(c)
		size = 0
		return prefix
	}
	prefix = func(c scan.Code) scan.State {
		switch {
		case scan.IsSpace(c):
			t.Consume(c)
			size++
			return prefix
		case scan.IsLineEnding(c):
			return lineStart(c)
		case c == scan.EOF || size < scan.TabSize:
			return nok(c)
		}
		return ok(c)
	}
	return lineStart
}

// tokenizeHeadingATX matches one to six '#' characters followed by a
// space, a tab or the end of the line. The level is stored in Meta.
func tokenizeHeadingATX(t *scan.Tokenizer, ok, nok scan.State) scan.State {
	var (
		heading *scan.Token
		level   int
	)
	var sequence, whitespace, done scan.State
	done = func(c scan.Code) scan.State {
		heading.Meta = level
		t.Exit(scan.HeadingATX)
		return ok(c)
	}
	sequence = func(c scan.Code) scan.State {
		switch {
		case c == '#':
			if level == 6 {
				return nok(c)
			}
			level++
			t.Consume(c)
			return sequence
		case isEnd(c):
			return done(c)
		case scan.IsSpace(c):
			t.Enter(scan.Whitespace)
			return whitespace(c)
		}
		return nok(c)
	}
	whitespace = func(c scan.Code) scan.State {
		if scan.IsSpace(c) {
			t.Consume(c)
			return whitespace
		}
		t.Exit(scan.Whitespace)
		if isEnd(c) {
			return done(c)
		}
		return line(t, done)(c)
	}
	return func(c scan.Code) scan.State {
		if c != '#' {
			return nok(c)
		}
		heading = t.Enter(scan.HeadingATX)
		return sequence(c)
	}
}

// tokenizeThematicBreak matches three or more '*', '-' or '_' characters,
// all the same, with optional spaces between them.
func tokenizeThematicBreak(t *scan.Tokenizer, ok, nok scan.State) scan.State {
	var (
		marker scan.Code
		count  int
	)
	var rest scan.State
	rest = func(c scan.Code) scan.State {
		switch {
		case c == marker:
			count++
			t.Consume(c)
			return rest
		case scan.IsSpace(c):
			t.Consume(c)
			return rest
		case isEnd(c) && count >= 3:
			t.Exit(scan.ThematicBreak)
			return ok(c)
		}
		return nok(c)
	}
	return func(c scan.Code) scan.State {
		if c != '*' && c != '-' && c != '_' {
			return nok(c)
		}
		marker = c
		t.Enter(scan.ThematicBreak)
		return rest(c)
	}
}

// fence holds the state of one fenced code block.
type fence struct {
	t       *scan.Tokenizer
	ok, nok scan.State
	block   *scan.Token
	close   *scan.Construct
	marker  scan.Code
	size    int // length of the opening sequence
	indent  int // columns before the opening sequence
	info    int // index where the info string starts
}

// tokenizeCodeFenced matches a fence of three or more '`' or '~'
// characters and the lines up to a closing fence or the end of input.
// The info string after the opening fence is stored in Meta.
func tokenizeCodeFenced(t *scan.Tokenizer, ok, nok scan.State) scan.State {
	s := &fence{t: t, ok: ok, nok: nok}
	s.close = &scan.Construct{Name: "codeFenceClose", Tokenize: s.tokenizeClose, Partial: true}
	return s.start
}

func (s *fence) start(c scan.Code) scan.State {
	if c != '`' && c != '~' {
		return s.nok(c)
	}
	_, col := s.t.Source().Position(s.t.Index())
	s.indent = col - 1
	s.marker = c
	s.block = s.t.Enter(scan.CodeFenced)
	s.t.Enter(scan.CodeFence)
	return s.sequence(c)
}

func (s *fence) sequence(c scan.Code) scan.State {
	if c == s.marker {
		s.size++
		s.t.Consume(c)
		return s.sequence
	}
	if s.size < 3 {
		return s.nok(c)
	}
	return s.beforeInfo(c)
}

func (s *fence) beforeInfo(c scan.Code) scan.State {
	if scan.IsSpace(c) {
		s.t.Consume(c)
		return s.beforeInfo
	}
	s.info = s.t.Index()
	return s.infoText(c)
}

func (s *fence) infoText(c scan.Code) scan.State {
	if isEnd(c) {
		s.block.Meta = strings.TrimSpace(s.t.Source().Slice(s.info, s.t.Index()))
		s.t.Exit(scan.CodeFence)
		return s.lineEnd(c)
	}
	if c == '`' && s.marker == '`' {
		return s.nok(c)
	}
	s.t.Consume(c)
	return s.infoText
}

func (s *fence) lineEnd(c scan.Code) scan.State {
	if c == scan.EOF {
		return s.done(c)
	}
	s.t.LineEnding(c)
	return s.t.Attempt(s.close, s.done, s.lineStart)
}

// lineStart strips up to the opening fence's indentation from a content line.
func (s *fence) lineStart(c scan.Code) scan.State {
	if c == scan.EOF {
		return s.done(c)
	}
	if s.indent == 0 || !scan.IsSpace(c) {
		return line(s.t, s.lineEnd)(c)
	}
	s.t.Enter(scan.LinePrefix)
	size := 0
	var prefix scan.State
	prefix = func(c scan.Code) scan.State {
		if scan.IsSpace(c) && size < s.indent {
			size++
			s.t.Consume(c)
			return prefix
		}
		s.t.Exit(scan.LinePrefix)
		return line(s.t, s.lineEnd)(c)
	}
	return prefix(c)
}

func (s *fence) done(c scan.Code) scan.State {
	s.t.Exit(scan.CodeFenced)
	return s.ok(c)
}

// tokenizeClose matches a closing fence: at least as many markers as the
// opening fence and nothing else but spaces.
func (s *fence) tokenizeClose(t *scan.Tokenizer, ok, nok scan.State) scan.State {
	size := 0
	var sequence, after scan.State
	sequence = func(c scan.Code) scan.State {
		if c == s.marker {
			size++
			t.Consume(c)
			return sequence
		}
		if size < s.size {
			return nok(c)
		}
		return after(c)
	}
	after = func(c scan.Code) scan.State {
		switch {
		case scan.IsSpace(c):
			t.Consume(c)
			return after
		case isEnd(c):
			t.Exit(scan.CodeFence)
			return ok(c)
		}
		return nok(c)
	}
	return t.Space(func(c scan.Code) scan.State {
		if c != s.marker {
			return nok(c)
		}
		t.Enter(scan.CodeFence)
		return sequence(c)
	}, scan.LinePrefix, scan.TabSize)
}

// quote holds the state of one block quote.
type quote struct {
	t     *scan.Tokenizer
	ok    scan.State
	lines []scan.Line // text of each line after the marker
}

// tokenizeBlockQuote matches lines that start with '>', and lazy lines
// that continue a paragraph inside the quote. The text of each line is
// kept as one ChunkText, for Parse to tokenize again.
func tokenizeBlockQuote(t *scan.Tokenizer, ok, nok scan.State) scan.State {
	q := &quote{t: t, ok: ok}
	return func(c scan.Code) scan.State {
		if c != '>' {
			return nok(c)
		}
		t.Enter(scan.BlockQuote)
		return q.marker(c)
	}
}

func (q *quote) marker(c scan.Code) scan.State {
	q.t.Enter(scan.LinePrefix)
	q.t.Consume(c)
	return q.afterMarker
}

// afterMarker scans the code after '>'.
// One space or one tab belongs to the prefix.
func (q *quote) afterMarker(c scan.Code) scan.State {
	switch c {
	case ' ':
		q.t.Consume(c)
		return q.content
	case scan.HorizontalTab:
		q.t.Consume(c)
		return q.padding
	}
	return q.content(c)
}

func (q *quote) padding(c scan.Code) scan.State {
	if c == scan.VirtualSpace {
		q.t.Consume(c)
		return q.padding
	}
	return q.content(c)
}

func (q *quote) content(c scan.Code) scan.State {
	q.t.Exit(scan.LinePrefix)
	return q.text(false)(c)
}

// text scans the rest of a line into a ChunkText.
func (q *quote) text(lazy bool) scan.State {
	var rest scan.State
	rest = func(c scan.Code) scan.State {
		if isEnd(c) {
			tok := q.t.Exit(scan.ChunkText)
			q.lines = append(q.lines, scan.Line{Start: tok.Start, End: tok.End, Lazy: lazy})
			return q.lineEnd(c)
		}
		q.t.Consume(c)
		return rest
	}
	return func(c scan.Code) scan.State {
		q.t.Enter(scan.ChunkText)
		return rest(c)
	}
}

// lineEnd decides whether the quote goes on after a line.
func (q *quote) lineEnd(c scan.Code) scan.State {
	if c == scan.EOF {
		return q.done(c)
	}
	return q.t.Check(nextQuoteLine, q.next,
		q.t.Check(nextBlank, q.done,
			q.t.Check(nextParagraphEnd, q.done, q.lazy)))(c)
}

func (q *quote) next(c scan.Code) scan.State {
	q.t.LineEnding(c)
	return q.t.Space(q.marker, scan.LinePrefix, scan.TabSize)
}

// lazy takes the next line, marker or not, when it continues a paragraph
// left open at the end of the quote.
func (q *quote) lazy(c scan.Code) scan.State {
	if !openParagraph(q.t.Source(), q.lines, options(q.t)) {
		return q.done(c)
	}
	q.t.LineEnding(c)
	return q.text(true)
}

func (q *quote) done(c scan.Code) scan.State {
	q.t.Exit(scan.BlockQuote)
	return q.ok(c)
}

// quoteLines returns the lines of a block quote node. A line with no
// marker before it is lazy.
func quoteLines(n *Node) []scan.Line {
	var lines []scan.Line
	for i, c := range n.Children {
		if c.Type != scan.ChunkText {
			continue
		}
		lazy := i == 0 || n.Children[i-1].Type != scan.LinePrefix
		lines = append(lines, scan.Line{Start: c.Start, End: c.End, Lazy: lazy})
	}
	return lines
}

// openParagraph reports whether a document made of lines of src ends in
// a paragraph that another line could continue.
func openParagraph(src *scan.Source, lines []scan.Line, opts Options) bool {
	sub := src.Extract(lines)
	root, err := Build(Events(sub, opts))
	if err != nil {
		return false
	}
	var last *Node
	for _, n := range root.Children {
		switch n.Type {
		case scan.LineEnding, scan.LinePrefix:
		default:
			last = n
		}
	}
	switch {
	case last == nil:
		return false
	case last.Type == scan.BlockQuote:
		return openParagraph(sub, quoteLines(last), opts)
	}
	return last.Type == scan.Paragraph
}

func tokenizeQuoteMarker(t *scan.Tokenizer, ok, nok scan.State) scan.State {
	return func(c scan.Code) scan.State {
		if c != '>' {
			return nok(c)
		}
		return ok(c)
	}
}

// tokenizeListItem returns the tokenizer of a single-line list item.
// When interrupt is set, the item must have content and an ordered item
// must start at 1, as required to end a paragraph.
func tokenizeListItem(interrupt bool) func(t *scan.Tokenizer, ok, nok scan.State) scan.State {
	return func(t *scan.Tokenizer, ok, nok scan.State) scan.State {
		var (
			item   *scan.Token
			marker ListMarker
			digits int
		)
		var number, afterMarker, whitespace, done scan.State
		done = func(c scan.Code) scan.State {
			item.Meta = marker
			t.Exit(scan.ListItem)
			return ok(c)
		}
		number = func(c scan.Code) scan.State {
			switch {
			case c >= '0' && c <= '9' && digits < 9:
				marker.Start = marker.Start*10 + int(c-'0')
				digits++
				t.Consume(c)
				return number
			case c == '.' || c == ')':
				marker.Delim = rune(c)
				t.Consume(c)
				return afterMarker
			}
			return nok(c)
		}
		afterMarker = func(c scan.Code) scan.State {
			switch {
			case isEnd(c):
				if interrupt {
					return nok(c)
				}
				return done(c)
			case scan.IsSpace(c):
				t.Enter(scan.Whitespace)
				return whitespace(c)
			}
			return nok(c)
		}
		whitespace = func(c scan.Code) scan.State {
			if scan.IsSpace(c) {
				t.Consume(c)
				return whitespace
			}
			t.Exit(scan.Whitespace)
			switch {
			case isEnd(c) && interrupt:
				return nok(c)
			case isEnd(c):
				return done(c)
			case interrupt && marker.Ordered && marker.Start != 1:
				return nok(c)
			}
			return line(t, done)(c)
		}
		return func(c scan.Code) scan.State {
			switch {
			case c == '-' || c == '+' || c == '*':
				item = t.Enter(scan.ListItem)
				marker.Delim = rune(c)
				t.Consume(c)
				return afterMarker
			case c >= '0' && c <= '9':
				item = t.Enter(scan.ListItem)
				marker.Ordered = true
				return number(c)
			}
			return nok(c)
		}
	}
}

// para holds the state of one paragraph.
type para struct {
	t      *scan.Tokenizer
	ok     scan.State
	tok    *scan.Token
	ending scan.State // checks for a block that ends the paragraph
}

// tokenizeParagraph matches a paragraph. It ends before a blank line or a
// block that may interrupt it, and becomes a setext heading when an
// underline follows. Every other line continues it.
func tokenizeParagraph(t *scan.Tokenizer, ok, nok scan.State) scan.State {
	p := &para{t: t, ok: ok}
	p.ending = t.Check(nextParagraphEnd, p.done, p.lazy)
	if !t.Disabled(table.Construct.Name) {
		p.ending = t.Check(nextParagraphEnd, p.done, t.Check(nextTableStart, p.done, p.lazy))
	}
	return func(c scan.Code) scan.State {
		if isEnd(c) {
			return nok(c)
		}
		p.tok = t.Enter(scan.Paragraph)
		return line(t, p.lineEnd)(c)
	}
}

func (p *para) lineEnd(c scan.Code) scan.State {
	if c == scan.EOF {
		return p.done(c)
	}
	return p.t.Check(nextBlank, p.done, p.t.Check(nextSetext, p.underline, p.ending))(c)
}

// lazy scans the line ending before a continuation line.
// The continuation may be indented by any amount.
func (p *para) lazy(c scan.Code) scan.State {
	p.t.LineEnding(c)
	return p.t.Space(line(p.t, p.lineEnd), scan.LinePrefix, 0)
}

// underline scans a setext underline and turns the paragraph into a
// heading: level 1 for '=' and level 2 for '-'.
func (p *para) underline(c scan.Code) scan.State {
	p.t.LineEnding(c)
	return p.t.Space(func(c scan.Code) scan.State {
		level := 2
		if c == '=' {
			level = 1
		}
		p.t.Enter(scan.SetextUnderline)
		var rest scan.State
		rest = func(c scan.Code) scan.State {
			if !isEnd(c) {
				p.t.Consume(c)
				return rest
			}
			p.t.Exit(scan.SetextUnderline)
			p.tok.Type = scan.HeadingSetext
			p.tok.Meta = level
			p.t.Exit(scan.HeadingSetext)
			return p.ok(c)
		}
		return rest(c)
	}, scan.LinePrefix, scan.TabSize)
}

func (p *para) done(c scan.Code) scan.State {
	p.t.Exit(scan.Paragraph)
	return p.ok(c)
}

// tokenizeSetextUnderline matches a run of '=' or '-' characters followed
// only by spaces.
func tokenizeSetextUnderline(t *scan.Tokenizer, ok, nok scan.State) scan.State {
	var marker scan.Code
	var sequence, whitespace scan.State
	sequence = func(c scan.Code) scan.State {
		if c == marker {
			t.Consume(c)
			return sequence
		}
		return whitespace(c)
	}
	whitespace = func(c scan.Code) scan.State {
		switch {
		case scan.IsSpace(c):
			t.Consume(c)
			return whitespace
		case isEnd(c):
			return ok(c)
		}
		return nok(c)
	}
	return func(c scan.Code) scan.State {
		if (c != '=' && c != '-') || t.Source().Lazy(t.Index()) {
			return nok(c)
		}
		marker = c
		return sequence(c)
	}
}
