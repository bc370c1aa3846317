// Copyright 2023 Matthew P. Dargan. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render writes a block tree as HTML.
//
// Text is written as it appears in the source, with backslash escapes
// of ASCII punctuation removed and HTML special characters escaped.
// Inline markup such as emphasis and links is not interpreted.
package render

import (
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/html"

	"github.com/matthewdargan/gfmtable/parse"
	"github.com/matthewdargan/gfmtable/scan"
	"github.com/matthewdargan/gfmtable/table"
)

// renderer holds the state of one HTML rendering.
type renderer struct {
	w   io.Writer
	src *scan.Source
	err error // first write error
}

// HTML writes the blocks of root as HTML to w, one block after another
// separated by line endings.
func HTML(w io.Writer, src *scan.Source, root *parse.Node) error {
	r := &renderer{w: w, src: src}
	r.blocks(root.Children)
	return errors.Wrap(r.err, "write html")
}

func (r *renderer) print(s ...string) {
	for _, v := range s {
		if r.err != nil {
			return
		}
		_, r.err = io.WriteString(r.w, v)
	}
}

// blocks writes nodes separated by line endings and reports whether it
// wrote anything. Consecutive list items of the same kind form one list.
func (r *renderer) blocks(nodes []*parse.Node) bool {
	var blocks []*parse.Node
	for _, n := range nodes {
		switch n.Type {
		case scan.LineEnding, scan.LinePrefix, scan.BlankLine:
			continue
		}
		blocks = append(blocks, n)
	}
	for i := 0; i < len(blocks); i++ {
		if i > 0 {
			r.print("\n")
		}
		if blocks[i].Type != scan.ListItem {
			r.block(blocks[i])
			continue
		}
		j := i + 1
		for j < len(blocks) && blocks[j].Type == scan.ListItem && sameList(blocks[i], blocks[j]) {
			j++
		}
		r.list(blocks[i:j])
		i = j - 1
	}
	return len(blocks) > 0
}

func (r *renderer) block(n *parse.Node) {
	switch n.Type {
	case scan.Table:
		r.table(n)
	case scan.Paragraph:
		r.print("<p>", r.text(strings.Join(r.lines(n), "\n")), "</p>")
	case scan.HeadingATX:
		var text string
		if c := n.Child(scan.ChunkText); c != nil {
			text = trimClosingSequence(c.Text(r.src))
		}
		r.heading(n, text)
	case scan.HeadingSetext:
		r.heading(n, strings.Join(r.lines(n), "\n"))
	case scan.ThematicBreak:
		r.print("<hr />")
	case scan.CodeIndented, scan.CodeFenced:
		r.code(n)
	case scan.HTMLFlow:
		r.print(strings.Join(r.rawLines(n), "\n"))
	case scan.BlockQuote:
		r.quote(n)
	default:
		r.print(r.text(n.Text(r.src)))
	}
}

// lines returns the trimmed text of each ChunkText child of n.
func (r *renderer) lines(n *parse.Node) []string {
	var lines []string
	for _, c := range n.Children {
		if c.Type == scan.ChunkText {
			lines = append(lines, strings.Trim(c.Text(r.src), " \t"))
		}
	}
	return lines
}

// rawLines returns the text of each ChunkText child of n as is.
func (r *renderer) rawLines(n *parse.Node) []string {
	var lines []string
	for _, c := range n.Children {
		if c.Type == scan.ChunkText {
			lines = append(lines, c.Text(r.src))
		}
	}
	return lines
}

func (r *renderer) heading(n *parse.Node, text string) {
	level, _ := n.Meta.(int)
	if level < 1 || level > 6 {
		level = 1
	}
	tag := "h" + strconv.Itoa(level)
	r.print("<", tag, ">", r.text(text), "</", tag, ">")
}

// trimClosingSequence removes trailing spaces and an optional closing
// sequence of '#' characters from ATX heading text.
func trimClosingSequence(s string) string {
	s = strings.TrimRight(s, " \t")
	t := strings.TrimRight(s, "#")
	switch {
	case t == "":
		return ""
	case strings.HasSuffix(t, " ") || strings.HasSuffix(t, "\t"):
		return strings.TrimRight(t, " \t")
	}
	return s
}

func (r *renderer) code(n *parse.Node) {
	r.print("<pre><code")
	if info, _ := n.Meta.(string); info != "" {
		lang := strings.Fields(info)[0]
		r.print(` class="language-`, html.EscapeString(unescape(lang)), `"`)
	}
	r.print(">")
	for _, line := range r.rawLines(n) {
		r.print(html.EscapeString(line), "\n")
	}
	r.print("</code></pre>")
}

func (r *renderer) quote(n *parse.Node) {
	r.print("<blockquote>\n")
	if r.blocks(n.Children) {
		r.print("\n")
	}
	r.print("</blockquote>")
}

func sameList(a, b *parse.Node) bool {
	ma, _ := a.Meta.(parse.ListMarker)
	mb, _ := b.Meta.(parse.ListMarker)
	return ma.Ordered == mb.Ordered && ma.Delim == mb.Delim
}

// list writes consecutive list items as one list.
func (r *renderer) list(items []*parse.Node) {
	m, _ := items[0].Meta.(parse.ListMarker)
	tag := "ul"
	if m.Ordered {
		tag = "ol"
	}
	r.print("<", tag)
	if m.Ordered && m.Start != 1 {
		r.print(` start="`, strconv.Itoa(m.Start), `"`)
	}
	r.print(">\n")
	for _, item := range items {
		r.print("<li>", r.text(strings.Join(r.lines(item), "\n")), "</li>\n")
	}
	r.print("</", tag, ">")
}

// table writes a table. Body rows are cut or padded to the number of
// columns in the head.
func (r *renderer) table(n *parse.Node) {
	align := table.Alignment(n.Token)
	r.print("<table>\n<thead>\n")
	if head := n.Child(scan.TableHead); head != nil {
		if row := head.Child(scan.TableRow); row != nil {
			r.row(row, scan.TableHeader, "th", align)
		}
	}
	r.print("</thead>")
	if body := n.Child(scan.TableBody); body != nil {
		r.print("\n<tbody>\n")
		for _, row := range body.Children {
			if row.Type == scan.TableRow {
				r.row(row, scan.TableData, "td", align)
			}
		}
		r.print("</tbody>")
	}
	r.print("\n</table>")
}

func (r *renderer) row(row *parse.Node, typ scan.Type, tag string, align []table.Align) {
	r.print("<tr>\n")
	col := 0
	for _, cell := range row.Children {
		if cell.Type != typ || col == len(align) {
			continue
		}
		var text string
		if content := cell.Child(scan.TableContent); content != nil {
			text = content.Text(r.src)
		}
		r.cell(tag, align[col], r.text(text))
		col++
	}
	for ; col < len(align); col++ {
		r.cell(tag, align[col], "")
	}
	r.print("</tr>\n")
}

func (r *renderer) cell(tag string, a table.Align, text string) {
	r.print("<", tag)
	if a != table.AlignNone {
		r.print(` align="`, a.String(), `"`)
	}
	r.print(">", text, "</", tag, ">\n")
}

// text prepares source text for HTML.
func (r *renderer) text(s string) string {
	return html.EscapeString(unescape(s))
}

func isASCIIPunct(b byte) bool {
	return b >= '!' && b <= '/' || b >= ':' && b <= '@' || b >= '[' && b <= '`' || b >= '{' && b <= '~'
}

// unescape removes the backslash from each backslash escape of an ASCII
// punctuation character.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && isASCIIPunct(s[i+1]) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
