// Copyright 2023 Matthew P. Dargan. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gfmtable

import (
	"io"

	"github.com/pkg/errors"

	"github.com/matthewdargan/gfmtable/parse"
	"github.com/matthewdargan/gfmtable/render"
	"github.com/matthewdargan/gfmtable/scan"
	"github.com/matthewdargan/gfmtable/table"
)

// Options configures parsing.
type Options = parse.Options

// Document is a parsed document.
type Document struct {
	Source *scan.Source
	Events []scan.Event
	Root   *parse.Node
}

// Parse parses text.
func Parse(text string, opts Options) (*Document, error) {
	src := scan.Preprocess(text)
	events := parse.Events(src, opts)
	root, err := parse.Tree(src, events, opts)
	if err != nil {
		return nil, errors.Wrap(err, "parse document")
	}
	return &Document{Source: src, Events: events, Root: root}, nil
}

// Tables returns the tables of the document in order.
func (d *Document) Tables() []*Table {
	var tables []*Table
	for _, n := range d.Root.Find(scan.Table) {
		tables = append(tables, newTable(d.Source, n))
	}
	return tables
}

// WriteHTML writes the document as HTML.
func (d *Document) WriteHTML(w io.Writer) error {
	return render.HTML(w, d.Source, d.Root)
}

// Convert parses text and writes it to w as HTML.
func Convert(w io.Writer, text string, opts Options) error {
	d, err := Parse(text, opts)
	if err != nil {
		return err
	}
	return d.WriteHTML(w)
}

// Table is a table's cell text, without markup.
type Table struct {
	Align  []table.Align
	Header []string
	Rows   [][]string // body rows as written, not padded to the header
	Line   int        // line of the head row
}

func newTable(src *scan.Source, n *parse.Node) *Table {
	t := &Table{Align: table.Alignment(n.Token)}
	t.Line, _ = src.Position(n.Start)
	if head := n.Child(scan.TableHead); head != nil {
		if row := head.Child(scan.TableRow); row != nil {
			t.Header = cells(src, row, scan.TableHeader)
		}
	}
	if body := n.Child(scan.TableBody); body != nil {
		for _, row := range body.Children {
			if row.Type == scan.TableRow {
				t.Rows = append(t.Rows, cells(src, row, scan.TableData))
			}
		}
	}
	return t
}

func cells(src *scan.Source, row *parse.Node, typ scan.Type) []string {
	out := []string{}
	for _, cell := range row.Children {
		if cell.Type != typ {
			continue
		}
		var text string
		if content := cell.Child(scan.TableContent); content != nil {
			text = content.Text(src)
		}
		out = append(out, text)
	}
	return out
}
