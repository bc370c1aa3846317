// Copyright 2023 Matthew P. Dargan. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scan

import (
	"sort"
	"unicode/utf8"
)

// Code is one character of preprocessed input.
// Non-negative codes are runes; negative codes are sentinels.
type Code rune

const (
	EOF            Code = -(iota + 1) // EOF marks the end of the input
	VirtualSpace                      // VirtualSpace pads a tab out to its tab stop
	HorizontalTab                     // HorizontalTab is a tab character
	CRLF                              // CRLF is a carriage return followed by a line feed
	LineFeed                          // LineFeed is a line feed
	CarriageReturn                    // CarriageReturn is a carriage return not followed by a line feed
)

// TabSize is the number of columns between tab stops.
const TabSize = 4

// IsLineEnding reports whether c ends a line.
func IsLineEnding(c Code) bool {
	return c == LineFeed || c == CarriageReturn || c == CRLF
}

// IsSpace reports whether c is a space, a tab, or the padding after a tab.
func IsSpace(c Code) bool {
	return c == ' ' || c == HorizontalTab || c == VirtualSpace
}

// IsLineEndingOrSpace reports whether c is a line ending or a space.
func IsLineEndingOrSpace(c Code) bool {
	return IsLineEnding(c) || IsSpace(c)
}

// Source holds input text and its preprocessed codes.
type Source struct {
	text    string
	codes   []Code
	offsets []int // byte offset of each code
	lines   []int // index of the first code of each line
	lazy    []bool
	origin  []int // index in the outermost source of each code
}

// Line is the range [Start, End) of codes on one line of a Source.
// A lazy line continues a paragraph inside a container but lacks the
// container's marker.
type Line struct {
	Start, End int
	Lazy       bool
}

// Preprocess splits text into codes.
// Line endings become single sentinel codes, tabs are followed by virtual
// spaces up to the next tab stop, and the result always ends with EOF.
// Bytes that are not valid UTF-8 become utf8.RuneError codes.
func Preprocess(text string) *Source {
	s := &Source{
		text:    text,
		codes:   make([]Code, 0, len(text)+1),
		offsets: make([]int, 0, len(text)+1),
		lines:   []int{0},
	}
	col := 0
	for i := 0; i < len(text); {
		r, w := utf8.DecodeRuneInString(text[i:])
		switch r {
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				s.add(CRLF, i)
				w = 2
			} else {
				s.add(CarriageReturn, i)
			}
			s.lines = append(s.lines, len(s.codes))
			col = 0
		case '\n':
			s.add(LineFeed, i)
			s.lines = append(s.lines, len(s.codes))
			col = 0
		case '\t':
			n := TabSize - col%TabSize
			s.add(HorizontalTab, i)
			for j := 1; j < n; j++ {
				s.add(VirtualSpace, i+1)
			}
			col += n
		default:
			s.add(Code(r), i)
			col++
		}
		i += w
	}
	s.add(EOF, len(text))
	return s
}

func (s *Source) add(c Code, offset int) {
	s.codes = append(s.codes, c)
	s.offsets = append(s.offsets, offset)
}

// Text returns the original input.
func (s *Source) Text() string {
	return s.text
}

// Len returns the number of codes, including the final EOF.
func (s *Source) Len() int {
	return len(s.codes)
}

// At returns the code at index i.
func (s *Source) At(i int) Code {
	return s.codes[i]
}

// Offset returns the byte offset in the input of the code at index i.
func (s *Source) Offset(i int) int {
	return s.offsets[i]
}

// Slice returns the input text of the codes in [start, end).
func (s *Source) Slice(start, end int) string {
	if start >= end {
		return ""
	}
	return s.text[s.offsets[start]:s.offsets[end]]
}

// Extract returns a source made of the given lines of s. Each line is
// followed by the code after it in s, a line ending, except the last,
// which is followed by EOF. The result shares the text of s.
func (s *Source) Extract(lines []Line) *Source {
	x := &Source{text: s.text}
	for i, l := range lines {
		x.lines = append(x.lines, len(x.codes))
		x.lazy = append(x.lazy, l.Lazy || s.Lazy(l.Start))
		for j := l.Start; j < l.End; j++ {
			x.add(s.codes[j], s.offsets[j])
			x.origin = append(x.origin, s.Origin(j))
		}
		c := EOF
		if i < len(lines)-1 {
			c = s.codes[l.End]
		}
		x.add(c, s.offsets[l.End])
		x.origin = append(x.origin, s.Origin(l.End))
	}
	if len(lines) == 0 {
		x.lines = []int{0}
		x.lazy = []bool{false}
		x.add(EOF, 0)
		x.origin = append(x.origin, 0)
	}
	return x
}

// Origin returns the index of the code at index i in the source that
// s was first extracted from.
func (s *Source) Origin(i int) int {
	if s.origin == nil {
		return i
	}
	return s.origin[i]
}

// Lazy reports whether the code at index i is on a lazy line.
func (s *Source) Lazy(i int) bool {
	if s.lazy == nil {
		return false
	}
	line, _ := s.Position(i)
	return s.lazy[line-1]
}

// Position returns the 1-based line and column of the code at index i.
// Columns count codes, so a tab and its virtual spaces span several columns.
func (s *Source) Position(i int) (line, col int) {
	n := sort.Search(len(s.lines), func(k int) bool { return s.lines[k] > i })
	return n, i - s.lines[n-1] + 1
}
