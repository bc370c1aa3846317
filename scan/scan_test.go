// Copyright 2023 Matthew P. Dargan. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scan

import (
	"fmt"
	"testing"
)

type preprocessTest struct {
	name  string
	input string
	codes []Code
}

const (
	vs  = VirtualSpace
	tab = HorizontalTab
)

var preprocessTests = []preprocessTest{
	{"empty", "", []Code{EOF}},
	{"text", "ab", []Code{'a', 'b', EOF}},
	{"multibyte", "é|", []Code{'é', '|', EOF}},
	{"tab at line start", "\tx", []Code{tab, vs, vs, vs, 'x', EOF}},
	{"tab after text", "a\tb", []Code{'a', tab, vs, vs, 'b', EOF}},
	{"tab at a tab stop", "abc\td", []Code{'a', 'b', 'c', tab, 'd', EOF}},
	{"two tabs", "\t\t", []Code{tab, vs, vs, vs, tab, vs, vs, vs, EOF}},
	{"line feed", "a\nb", []Code{'a', LineFeed, 'b', EOF}},
	{"carriage return", "a\rb", []Code{'a', CarriageReturn, 'b', EOF}},
	{"crlf", "a\r\nb", []Code{'a', CRLF, 'b', EOF}},
	{"line ending resets columns", "ab\n\tc", []Code{'a', 'b', LineFeed, tab, vs, vs, vs, 'c', EOF}},
	{"invalid utf-8", "\xff", []Code{0xFFFD, EOF}},
}

func TestPreprocess(t *testing.T) {
	for _, test := range preprocessTests {
		src := Preprocess(test.input)
		got := make([]Code, src.Len())
		for i := range got {
			got[i] = src.At(i)
		}
		if fmt.Sprint(got) != fmt.Sprint(test.codes) {
			t.Errorf("%s: got\n\t%v\nexpected\n\t%v", test.name, got, test.codes)
		}
		if s := src.Slice(0, src.Len()-1); s != test.input {
			t.Errorf("%s: slice of all codes is %q", test.name, s)
		}
	}
}

func TestSlice(t *testing.T) {
	src := Preprocess("a\tb\r\nc")
	tests := []struct {
		start, end int
		want       string
	}{
		{0, 1, "a"},
		{1, 2, "\t"},
		{1, 4, "\t"},
		{2, 4, ""},
		{0, 5, "a\tb"},
		{5, 6, "\r\n"},
		{6, 7, "c"},
		{3, 3, ""},
		{4, 2, ""},
	}
	for _, test := range tests {
		if got := src.Slice(test.start, test.end); got != test.want {
			t.Errorf("Slice(%d, %d) = %q, expected %q", test.start, test.end, got, test.want)
		}
	}
	if off := src.Offset(6); off != 5 {
		t.Errorf("Offset(6) = %d, expected 5", off)
	}
}

func TestPosition(t *testing.T) {
	src := Preprocess("ab\ncd\r\n\te")
	tests := []struct {
		i, line, col int
	}{
		{0, 1, 1},
		{1, 1, 2},
		{2, 1, 3},
		{3, 2, 1},
		{5, 2, 3},
		{6, 3, 1},
		{10, 3, 5},
		{11, 3, 6},
	}
	for _, test := range tests {
		line, col := src.Position(test.i)
		if line != test.line || col != test.col {
			t.Errorf("Position(%d) = %d:%d, expected %d:%d", test.i, line, col, test.line, test.col)
		}
	}
}

// letters is a construct that wraps a run of letters in a ChunkText token.
var letters = &Construct{
	Name: "letters",
	Tokenize: func(t *Tokenizer, ok, nok State) State {
		var more State
		more = func(c Code) State {
			if c >= 'a' && c <= 'z' {
				t.Consume(c)
				return more
			}
			t.Exit(ChunkText)
			if c != EOF && c != '!' {
				return nok(c)
			}
			return ok(c)
		}
		return func(c Code) State {
			if c < 'a' || c > 'z' {
				return nok(c)
			}
			t.Enter(ChunkText)
			return more(c)
		}
	},
}

// outcome records which continuation a try ended in.
type outcome struct {
	ok, nok bool
	index   int
}

func (o *outcome) states(t *Tokenizer) (ok, nok State) {
	ok = func(Code) State { o.ok, o.index = true, t.Index(); return nil }
	nok = func(Code) State { o.nok, o.index = true, t.Index(); return nil }
	return ok, nok
}

func TestCheck(t *testing.T) {
	tests := []struct {
		input string
		ok    bool
	}{
		{"abc", true},
		{"abc!", true},
		{"ab1", false},
		{"1", false},
	}
	for _, test := range tests {
		tok := NewTokenizer(Preprocess(test.input))
		var o outcome
		ok, nok := o.states(tok)
		tok.Run(tok.Check(letters, ok, nok))
		if o.ok != test.ok || o.nok == test.ok {
			t.Errorf("%q: ok = %t, nok = %t", test.input, o.ok, o.nok)
		}
		if o.index != 0 || len(tok.Events()) != 0 {
			t.Errorf("%q: check left index %d and %d events", test.input, o.index, len(tok.Events()))
		}
	}
}

func TestAttempt(t *testing.T) {
	tok := NewTokenizer(Preprocess("abc!"))
	var o outcome
	ok, nok := o.states(tok)
	tok.Run(tok.Attempt(letters, ok, nok))
	if !o.ok || o.index != 3 {
		t.Fatalf("ok = %t at %d, expected ok at 3", o.ok, o.index)
	}
	if got := fmt.Sprint(tok.Events()); got != "[enter:chunkText exit:chunkText]" {
		t.Fatalf("got events %s", got)
	}
	if span := tok.Events()[0].Token; span.Start != 0 || span.End != 3 {
		t.Fatalf("got span %v", span)
	}
}

func TestAttemptFailureRestores(t *testing.T) {
	tok := NewTokenizer(Preprocess("ab1"))
	tok.Enter(Paragraph)
	var o outcome
	ok, nok := o.states(tok)
	tok.Run(tok.Attempt(letters, ok, nok))
	if !o.nok || o.index != 0 {
		t.Fatalf("nok = %t at %d, expected nok at 0", o.nok, o.index)
	}
	if n := len(tok.Events()); n != 1 {
		t.Fatalf("%d events after a failed attempt, expected 1", n)
	}
	// The paragraph must still be the innermost open token.
	tok.Exit(Paragraph)
}

func TestAttemptResolve(t *testing.T) {
	wrapped := *letters
	wrapped.Resolve = func(events []Event) []Event {
		outer := &Token{Type: Paragraph, Start: events[0].Token.Start, End: events[len(events)-1].Token.End}
		out := []Event{{Enter, outer}}
		out = append(out, events...)
		return append(out, Event{Exit, outer})
	}
	tok := NewTokenizer(Preprocess("ab"))
	var o outcome
	ok, nok := o.states(tok)
	tok.Run(tok.Attempt(&wrapped, ok, nok))
	want := "[enter:paragraph enter:chunkText exit:chunkText exit:paragraph]"
	if got := fmt.Sprint(tok.Events()); got != want {
		t.Fatalf("got %s, expected %s", got, want)
	}
}

func TestNestedTry(t *testing.T) {
	// A failed attempt inside a successful check leaves nothing behind.
	outer := &Construct{
		Name: "outer",
		Tokenize: func(t *Tokenizer, ok, nok State) State {
			return func(c Code) State {
				t.Enter(Check)
				t.Consume(c)
				return t.Attempt(letters, nok, func(Code) State {
					t.Exit(Check)
					return ok
				})
			}
		},
	}
	tok := NewTokenizer(Preprocess("-1"))
	var o outcome
	ok, nok := o.states(tok)
	tok.Run(tok.Check(outer, ok, nok))
	if !o.ok || o.index != 0 || len(tok.Events()) != 0 {
		t.Fatalf("ok = %t at %d with %d events", o.ok, o.index, len(tok.Events()))
	}
}

func TestSpace(t *testing.T) {
	tests := []struct {
		input string
		max   int
		end   int
		token bool
	}{
		{"x", 4, 0, false},
		{"  x", 4, 2, true},
		{"   x", 4, 3, true},
		{"     x", 4, 3, true},
		{"     x", 0, 5, true},
		{"\tx", 4, 3, true},
		{"\tx", 0, 4, true},
		{"  x", 1, 0, false},
	}
	for _, test := range tests {
		tok := NewTokenizer(Preprocess(test.input))
		var end int
		tok.Run(tok.Space(func(Code) State { end = tok.Index(); return nil }, LinePrefix, test.max))
		if end != test.end {
			t.Errorf("%q max %d: ended at %d, expected %d", test.input, test.max, end, test.end)
		}
		if got := len(tok.Events()) == 2; got != test.token {
			t.Errorf("%q max %d: token = %t, expected %t", test.input, test.max, got, test.token)
		}
	}
}

func TestPanics(t *testing.T) {
	tests := []struct {
		name string
		f    func(t *Tokenizer)
	}{
		{"exit with nothing open", func(t *Tokenizer) { t.Exit(Paragraph) }},
		{"exit mismatch", func(t *Tokenizer) { t.Enter(Paragraph); t.Exit(Table) }},
		{"consume at eof", func(t *Tokenizer) { t.Consume(EOF) }},
		{"consume wrong code", func(t *Tokenizer) { t.Consume('x') }},
	}
	for _, test := range tests {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("%s: did not panic", test.name)
				}
			}()
			tok := NewTokenizer(Preprocess(""))
			test.f(tok)
		}()
	}
}

func TestNames(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{Table.String(), "table"},
		{TemporaryTableCellContent.String(), "temporaryTableCellContent"},
		{Type(999).String(), "Type(999)"},
		{Event{Exit, &Token{Type: TableRow}}.String(), "exit:tableRow"},
		{(&Token{Type: ChunkText, Start: 1, End: 4}).String(), "chunkText[1:4]"},
	}
	for _, test := range tests {
		if test.got != test.want {
			t.Errorf("got %q, expected %q", test.got, test.want)
		}
	}
	tok := NewTokenizer(Preprocess(""), "codeIndented")
	if !tok.Disabled("codeIndented") || tok.Disabled("table") {
		t.Error("Disabled does not match the names passed to NewTokenizer")
	}
}

func TestExtract(t *testing.T) {
	src := Preprocess("> a\n> b\nc")
	sub := src.Extract([]Line{{Start: 2, End: 3}, {Start: 6, End: 7}, {Start: 8, End: 9, Lazy: true}})
	got := make([]Code, sub.Len())
	for i := range got {
		got[i] = sub.At(i)
	}
	want := []Code{'a', LineFeed, 'b', LineFeed, 'c', EOF}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("got %v, expected %v", got, want)
	}
	origins := []int{2, 3, 6, 7, 8, 9}
	for i, o := range origins {
		if got := sub.Origin(i); got != o {
			t.Errorf("Origin(%d) = %d, expected %d", i, got, o)
		}
	}
	for i, lazy := range []bool{false, false, false, false, true, true} {
		if got := sub.Lazy(i); got != lazy {
			t.Errorf("Lazy(%d) = %t, expected %t", i, got, lazy)
		}
	}
	if s := sub.Slice(2, 3); s != "b" {
		t.Errorf("Slice(2, 3) = %q", s)
	}
	if line, col := sub.Position(4); line != 3 || col != 1 {
		t.Errorf("Position(4) = %d:%d, expected 3:1", line, col)
	}
	if src.Lazy(8) || src.Origin(8) != 8 {
		t.Error("preprocessed source has lazy lines or origins")
	}

	// Extracting again maps back to the first source and keeps lazy lines.
	inner := sub.Extract([]Line{{Start: 2, End: 3}, {Start: 4, End: 5}})
	if o := inner.Origin(0); o != 6 {
		t.Errorf("inner Origin(0) = %d, expected 6", o)
	}
	if inner.Lazy(0) || !inner.Lazy(2) {
		t.Error("inner lazy lines are wrong")
	}

	empty := src.Extract(nil)
	if empty.Len() != 1 || empty.At(0) != EOF || empty.Lazy(0) {
		t.Errorf("empty extract has %d codes", empty.Len())
	}
}
