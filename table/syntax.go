// Copyright 2023 Matthew P. Dargan. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package table recognizes pipe tables: a head row, a delimiter row of
// dashes and colons, and any number of body rows.
//
// The construct scans one candidate table at a time and either accepts
// it, emitting a flat list of events, or rejects it without committing
// anything. Its resolver then turns the flat list into nested
// rows and cells.
package table

import "github.com/matthewdargan/gfmtable/scan"

// Construct is the table construct. It may interrupt a paragraph.
var Construct = &scan.Construct{
	Name:          "table",
	Tokenize:      tokenize,
	Resolve:       Resolve,
	Interruptible: true,
}

var (
	setextUnderlineMini = &scan.Construct{
		Name:     "setextUnderlineMini",
		Tokenize: tokenizeSetextUnderlineMini,
		Partial:  true,
	}
	nextPrefixedOrBlank = &scan.Construct{
		Name:     "nextPrefixedOrBlank",
		Tokenize: tokenizeNextPrefixedOrBlank,
		Partial:  true,
	}
	nextInterrupted = &scan.Construct{
		Name:     "nextInterrupted",
		Tokenize: tokenizeNextInterrupted,
		Partial:  true,
	}
)

// session holds the state of one table attempt.
// It is discarded with the attempt.
type session struct {
	t           *scan.Tokenizer
	ok, nok     scan.State
	table       *scan.Token
	align       []Align // one entry per delimiter cell
	headerCount int     // cells seen in the head row
	seenDivider bool    // a divider was seen since the last head cell started
	hasDash     bool    // the delimiter row has at least one dash
	inFiller    bool    // the current delimiter cell already has dashes
	cellOpen    bool    // a delimiter row divider has no filler after it yet
}

func tokenize(t *scan.Tokenizer, ok, nok scan.State) scan.State {
	s := &session{t: t, ok: ok, nok: nok}
	return s.start
}

// prefixMax is the indentation limit, as passed to Space, before the
// delimiter row.
func (s *session) prefixMax() int {
	if s.t.Disabled("codeIndented") {
		return 0
	}
	return scan.TabSize
}

func (s *session) divider(c scan.Code) {
	s.t.Enter(scan.TableCellDivider)
	s.t.Consume(c)
	s.t.Exit(scan.TableCellDivider)
}

// start scans the first code of the head row.
// A table never starts on a lazy line.
func (s *session) start(c scan.Code) scan.State {
	if c == scan.EOF || scan.IsLineEndingOrSpace(c) || s.t.Source().Lazy(s.t.Index()) {
		return s.nok(c)
	}
	s.table = s.t.Enter(scan.Table)
	s.t.Enter(scan.TableHead)
	s.t.Enter(scan.TableRow)
	if c == '|' {
		return s.headDivider(c)
	}
	s.headerCount++
	s.t.Enter(scan.TemporaryTableCellContent)
	return s.headContent(c)
}

// headDivider scans a pipe in the head row.
func (s *session) headDivider(c scan.Code) scan.State {
	s.divider(c)
	s.seenDivider = true
	return s.headBreak
}

// headBreak scans between cells of the head row.
func (s *session) headBreak(c scan.Code) scan.State {
	switch {
	case c == scan.EOF || scan.IsLineEnding(c):
		return s.headRowEnd(c)
	case scan.IsSpace(c):
		s.t.Enter(scan.Whitespace)
		s.t.Consume(c)
		return s.headWhitespace
	}
	if s.seenDivider {
		s.seenDivider = false
		s.headerCount++
	}
	if c == '|' {
		return s.headDivider(c)
	}
	s.t.Enter(scan.TemporaryTableCellContent)
	return s.headContent(c)
}

// headWhitespace scans a run of spaces in the head row.
func (s *session) headWhitespace(c scan.Code) scan.State {
	if scan.IsSpace(c) {
		s.t.Consume(c)
		return s.headWhitespace
	}
	s.t.Exit(scan.Whitespace)
	return s.headBreak(c)
}

// headContent scans cell content in the head row.
func (s *session) headContent(c scan.Code) scan.State {
	if c == scan.EOF || c == '|' || scan.IsLineEndingOrSpace(c) {
		s.t.Exit(scan.TemporaryTableCellContent)
		return s.headBreak(c)
	}
	s.t.Consume(c)
	if c == '\\' {
		return s.headEscape
	}
	return s.headContent
}

// headEscape scans the code after a backslash in the head row.
// Only a backslash or a pipe is escaped.
func (s *session) headEscape(c scan.Code) scan.State {
	if c == '\\' || c == '|' {
		s.t.Consume(c)
		return s.headContent
	}
	return s.headContent(c)
}

// headRowEnd scans the end of the head row.
// A head row alone is never a table.
func (s *session) headRowEnd(c scan.Code) scan.State {
	if c == scan.EOF {
		return s.nok(c)
	}
	s.t.Exit(scan.TableRow)
	s.t.Exit(scan.TableHead)
	s.t.LineEnding(c)
	return s.delimiterLine
}

// delimiterLine scans the start of the line after the head row.
// A lazy line is never a delimiter row.
func (s *session) delimiterLine(c scan.Code) scan.State {
	if s.t.Source().Lazy(s.t.Index()) {
		return s.nok(c)
	}
	return s.t.Check(setextUnderlineMini, s.nok,
		s.t.Space(s.delimiterStart, scan.LinePrefix, s.prefixMax()))(c)
}

// delimiterStart scans the first code of the delimiter row.
func (s *session) delimiterStart(c scan.Code) scan.State {
	if c == scan.EOF || scan.IsLineEndingOrSpace(c) {
		return s.nok(c)
	}
	s.t.Enter(scan.TableDelimiterRow)
	return s.delimiterBreak(c)
}

// delimiterBreak scans between cells of the delimiter row.
func (s *session) delimiterBreak(c scan.Code) scan.State {
	switch {
	case c == scan.EOF || scan.IsLineEnding(c):
		return s.delimiterRowEnd(c)
	case scan.IsSpace(c):
		s.t.Enter(scan.Whitespace)
		s.t.Consume(c)
		return s.delimiterWhitespace
	case (c == '-' || c == ':') && s.inFiller:
		// Cells are separated by pipes, not spaces.
		return s.nok(c)
	case c == '-':
		s.t.Enter(scan.TableDelimiterFiller)
		s.t.Consume(c)
		s.hasDash = true
		s.inFiller = true
		s.cellOpen = false
		s.align = append(s.align, AlignNone)
		return s.delimiterFiller
	case c == ':':
		s.inFiller = true
		s.cellOpen = false
		s.t.Enter(scan.TableDelimiterAlignment)
		s.t.Consume(c)
		s.t.Exit(scan.TableDelimiterAlignment)
		s.align = append(s.align, AlignLeft)
		return s.afterLeftAlignment
	case c == '|' && s.cellOpen:
		// Every delimiter cell needs a filler.
		return s.nok(c)
	case c == '|':
		return s.delimiterDivider(c)
	}
	return s.nok(c)
}

func (s *session) delimiterDivider(c scan.Code) scan.State {
	s.divider(c)
	s.inFiller = false
	s.cellOpen = true
	return s.delimiterBreak
}

// delimiterWhitespace scans a run of spaces in the delimiter row.
func (s *session) delimiterWhitespace(c scan.Code) scan.State {
	if scan.IsSpace(c) {
		s.t.Consume(c)
		return s.delimiterWhitespace
	}
	s.t.Exit(scan.Whitespace)
	return s.delimiterBreak(c)
}

// delimiterFiller scans a run of dashes.
func (s *session) delimiterFiller(c scan.Code) scan.State {
	if c == '-' {
		s.t.Consume(c)
		return s.delimiterFiller
	}
	s.t.Exit(scan.TableDelimiterFiller)
	if c == ':' {
		s.t.Enter(scan.TableDelimiterAlignment)
		s.t.Consume(c)
		s.t.Exit(scan.TableDelimiterAlignment)
		last := &s.align[len(s.align)-1]
		if *last == AlignLeft {
			*last = AlignCenter
		} else {
			*last = AlignRight
		}
		return s.afterRightAlignment
	}
	return s.delimiterBreak(c)
}

// afterLeftAlignment scans the code after a leading colon,
// which must be a dash.
func (s *session) afterLeftAlignment(c scan.Code) scan.State {
	if c == '-' {
		s.t.Enter(scan.TableDelimiterFiller)
		s.t.Consume(c)
		s.hasDash = true
		return s.delimiterFiller
	}
	return s.nok(c)
}

// afterRightAlignment scans the code after a trailing colon.
func (s *session) afterRightAlignment(c scan.Code) scan.State {
	switch {
	case c == scan.EOF || scan.IsLineEnding(c):
		return s.delimiterRowEnd(c)
	case scan.IsSpace(c):
		s.t.Enter(scan.Whitespace)
		s.t.Consume(c)
		return s.delimiterWhitespace
	case c == '|':
		return s.delimiterDivider(c)
	}
	return s.nok(c)
}

// delimiterRowEnd scans the end of the delimiter row and decides
// whether the table exists.
func (s *session) delimiterRowEnd(c scan.Code) scan.State {
	s.t.Exit(scan.TableDelimiterRow)
	if !s.hasDash || s.headerCount != len(s.align) {
		return s.nok(c)
	}
	if c == scan.EOF {
		return s.tableClose(c)
	}
	return s.t.Check(nextPrefixedOrBlank, s.tableClose,
		s.t.Check(nextInterrupted, s.tableClose, s.tableContinue))(c)
}

func (s *session) tableClose(c scan.Code) scan.State {
	s.table.Meta = s.align
	s.t.Exit(scan.Table)
	return s.ok(c)
}

// tableContinue scans the line ending before the first body row.
func (s *session) tableContinue(c scan.Code) scan.State {
	s.t.LineEnding(c)
	return s.t.Space(s.bodyStart, scan.LinePrefix, scan.TabSize)
}

func (s *session) bodyStart(c scan.Code) scan.State {
	s.t.Enter(scan.TableBody)
	return s.bodyRowStart(c)
}

// bodyRowStart scans the first code of a body row.
func (s *session) bodyRowStart(c scan.Code) scan.State {
	s.t.Enter(scan.TableRow)
	if c == '|' {
		return s.bodyDivider(c)
	}
	s.t.Enter(scan.TemporaryTableCellContent)
	return s.bodyContent(c)
}

// bodyDivider scans a pipe in a body row.
func (s *session) bodyDivider(c scan.Code) scan.State {
	s.divider(c)
	return s.bodyBreak
}

// bodyBreak scans between cells of a body row.
func (s *session) bodyBreak(c scan.Code) scan.State {
	switch {
	case c == scan.EOF || scan.IsLineEnding(c):
		return s.bodyRowEnd(c)
	case scan.IsSpace(c):
		s.t.Enter(scan.Whitespace)
		s.t.Consume(c)
		return s.bodyWhitespace
	case c == '|':
		return s.bodyDivider(c)
	}
	s.t.Enter(scan.TemporaryTableCellContent)
	return s.bodyContent(c)
}

// bodyWhitespace scans a run of spaces in a body row.
func (s *session) bodyWhitespace(c scan.Code) scan.State {
	if scan.IsSpace(c) {
		s.t.Consume(c)
		return s.bodyWhitespace
	}
	s.t.Exit(scan.Whitespace)
	return s.bodyBreak(c)
}

// bodyContent scans cell content in a body row.
func (s *session) bodyContent(c scan.Code) scan.State {
	if c == scan.EOF || c == '|' || scan.IsLineEndingOrSpace(c) {
		s.t.Exit(scan.TemporaryTableCellContent)
		return s.bodyBreak(c)
	}
	s.t.Consume(c)
	if c == '\\' {
		return s.bodyEscape
	}
	return s.bodyContent
}

// bodyEscape scans the code after a backslash in a body row.
func (s *session) bodyEscape(c scan.Code) scan.State {
	if c == '\\' || c == '|' {
		s.t.Consume(c)
		return s.bodyContent
	}
	return s.bodyContent(c)
}

// bodyRowEnd scans the end of a body row.
func (s *session) bodyRowEnd(c scan.Code) scan.State {
	s.t.Exit(scan.TableRow)
	if c == scan.EOF {
		return s.bodyClose(c)
	}
	return s.t.Check(nextPrefixedOrBlank, s.bodyClose,
		s.t.Check(nextInterrupted, s.bodyClose, s.bodyContinue))(c)
}

func (s *session) bodyClose(c scan.Code) scan.State {
	s.t.Exit(scan.TableBody)
	return s.tableClose(c)
}

// bodyContinue scans the line ending before another body row.
func (s *session) bodyContinue(c scan.Code) scan.State {
	s.t.LineEnding(c)
	return s.t.Space(s.bodyRowStart, scan.LinePrefix, scan.TabSize)
}

// tokenizeSetextUnderlineMini matches a line of only dashes and trailing
// spaces directly after the head row. Such a line underlines a heading,
// so the table is rejected.
func tokenizeSetextUnderlineMini(t *scan.Tokenizer, ok, nok scan.State) scan.State {
	var sequence, whitespace scan.State
	whitespace = func(c scan.Code) scan.State {
		switch {
		case c == scan.EOF || scan.IsLineEnding(c):
			return ok(c)
		case scan.IsSpace(c):
			t.Consume(c)
			return whitespace
		}
		return nok(c)
	}
	sequence = func(c scan.Code) scan.State {
		if c == '-' {
			t.Consume(c)
			return sequence
		}
		return whitespace(c)
	}
	return func(c scan.Code) scan.State {
		if c != '-' {
			return nok(c)
		}
		t.Enter(scan.SetextUnderline)
		return sequence(c)
	}
}

// tokenizeNextPrefixedOrBlank matches a line ending followed by a blank
// line, the end of input, a lazy line, or indentation of a tab or a full
// tab stop. Any of these ends the table.
func tokenizeNextPrefixedOrBlank(t *scan.Tokenizer, ok, nok scan.State) scan.State {
	var size int
	var whitespace scan.State
	whitespace = func(c scan.Code) scan.State {
		if c == scan.VirtualSpace || c == ' ' {
			t.Consume(c)
			size++
			if size == scan.TabSize {
				return ok
			}
			return whitespace
		}
		if c == scan.EOF || scan.IsLineEndingOrSpace(c) {
			return ok(c)
		}
		return nok(c)
	}
	return func(c scan.Code) scan.State {
		if c == scan.EOF {
			return ok(c)
		}
		t.Enter(scan.Check)
		t.Consume(c)
		if t.Source().Lazy(t.Index()) {
			return ok
		}
		return whitespace
	}
}

// tokenizeNextInterrupted matches a line ending followed by a line on
// which one of the tokenizer's interrupters starts.
func tokenizeNextInterrupted(t *scan.Tokenizer, ok, nok scan.State) scan.State {
	return func(c scan.Code) scan.State {
		if !scan.IsLineEnding(c) {
			return nok(c)
		}
		t.LineEnding(c)
		return t.Space(interrupt(t, t.Interrupters, ok, nok), scan.LinePrefix, scan.TabSize)
	}
}

// interrupt checks each construct in cs in turn.
func interrupt(t *scan.Tokenizer, cs []*scan.Construct, ok, nok scan.State) scan.State {
	if len(cs) == 0 {
		return nok
	}
	return t.Check(cs[0], ok, interrupt(t, cs[1:], ok, nok))
}
