// Copyright 2023 Matthew P. Dargan. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import "github.com/matthewdargan/gfmtable/scan"

// section is the part of the table the resolver is in.
type section int

const (
	sectionNone      section = iota // sectionNone is before the head or in the body
	sectionHead                     // sectionHead is inside the head
	sectionDelimiter                // sectionDelimiter is inside the delimiter row
)

// resolver holds the state of one pass over a table's events.
type resolver struct {
	out     []scan.Event
	pending []scan.Event // events of the current cell, not yet written
	section section
	inRow   bool
	leading bool // no cell boundary seen yet in the current row
	depth   int  // nesting inside cells that were already resolved
}

// Resolve rewrites the events of one table.
// Within each row, consecutive content fragments are merged into a single
// content token and every cell is wrapped in a header, data or delimiter
// cell token. Events outside rows are copied unchanged.
// Resolving resolved events returns an equal list.
func Resolve(events []scan.Event) []scan.Event {
	r := &resolver{out: make([]scan.Event, 0, len(events)+len(events)/2)}
	for _, ev := range events {
		r.step(ev)
	}
	r.flush()
	return r.out
}

func (r *resolver) step(ev scan.Event) {
	typ := ev.Token.Type
	switch {
	case typ == scan.TableHead:
		r.section = sectionNone
		if ev.Kind == scan.Enter {
			r.section = sectionHead
		}
	case typ == scan.TableRow || typ == scan.TableDelimiterRow:
		if ev.Kind == scan.Enter {
			r.out = append(r.out, ev)
			r.inRow, r.leading = true, true
			if typ == scan.TableDelimiterRow {
				r.section = sectionDelimiter
			}
			return
		}
		r.closeCell(false)
		r.inRow = false
		if typ == scan.TableDelimiterRow {
			r.section = sectionNone
		}
	case !r.inRow:
	case typ == scan.TableHeader || typ == scan.TableData || typ == scan.TableDelimiter:
		r.flush()
		if ev.Kind == scan.Enter {
			r.depth++
		} else {
			r.depth--
		}
	case r.depth > 0:
	default:
		r.pending = append(r.pending, ev)
		if typ == scan.TableCellDivider && ev.Kind == scan.Exit {
			r.closeCell(true)
		}
		return
	}
	r.out = append(r.out, ev)
}

// closeCell ends the pending cell at a divider or at the end of the row.
func (r *resolver) closeCell(divider bool) {
	switch {
	case len(r.pending) == 0:
		return
	case divider && r.leading && len(r.pending) == 2:
		// A pipe that starts the row opens the first cell.
		r.leading = false
		return
	case !divider && len(r.pending) == 2 && r.pending[0].Token.Type == scan.Whitespace:
		// Trailing whitespace after the last pipe is not a cell.
		r.flush()
		return
	}
	r.leading = false
	cell := &scan.Token{
		Type:  r.cellType(),
		Start: r.pending[0].Token.Start,
		End:   r.pending[len(r.pending)-1].Token.End,
	}
	r.out = append(r.out, scan.Event{Kind: scan.Enter, Token: cell})
	r.flush()
	r.out = append(r.out, scan.Event{Kind: scan.Exit, Token: cell})
}

func (r *resolver) cellType() scan.Type {
	switch r.section {
	case sectionDelimiter:
		return scan.TableDelimiter
	case sectionHead:
		return scan.TableHeader
	}
	return scan.TableData
}

// flush writes the pending events, replacing the run from the first to
// the last content fragment with one content token.
func (r *resolver) flush() {
	first, last := -1, -1
	for i, ev := range r.pending {
		if ev.Token.Type == scan.TemporaryTableCellContent {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		r.out = append(r.out, r.pending...)
		r.pending = r.pending[:0]
		return
	}
	start, end := r.pending[first].Token.Start, r.pending[last].Token.End
	content := &scan.Token{Type: scan.TableContent, Start: start, End: end}
	text := &scan.Token{Type: scan.ChunkText, Start: start, End: end}
	r.out = append(r.out, r.pending[:first]...)
	r.out = append(r.out,
		scan.Event{Kind: scan.Enter, Token: content},
		scan.Event{Kind: scan.Enter, Token: text},
		scan.Event{Kind: scan.Exit, Token: text},
		scan.Event{Kind: scan.Exit, Token: content},
	)
	r.out = append(r.out, r.pending[last+1:]...)
	r.pending = r.pending[:0]
}
