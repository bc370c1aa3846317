// Copyright 2023 Matthew P. Dargan. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import "github.com/matthewdargan/gfmtable/scan"

// Align is the alignment of a table column, taken from the colons in
// its delimiter cell.
type Align uint8

const (
	AlignNone   Align = iota // AlignNone has no colons: "-"
	AlignLeft                // AlignLeft has a leading colon: ":-"
	AlignCenter              // AlignCenter has both colons: ":-:"
	AlignRight               // AlignRight has a trailing colon: "-:"
)

var alignName = [...]string{
	AlignNone:   "",
	AlignLeft:   "left",
	AlignCenter: "center",
	AlignRight:  "right",
}

// String returns the name used for the alignment in markup,
// or the empty string for AlignNone.
func (a Align) String() string {
	if int(a) < len(alignName) {
		return alignName[a]
	}
	return ""
}

// Alignment returns the column alignments recorded on a Table token,
// one per header cell. It returns nil for any other token.
func Alignment(tok *scan.Token) []Align {
	if tok == nil || tok.Type != scan.Table {
		return nil
	}
	align, _ := tok.Meta.([]Align)
	return align
}
