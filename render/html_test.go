// Copyright 2023 Matthew P. Dargan. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/matthewdargan/gfmtable/parse"
	"github.com/matthewdargan/gfmtable/scan"
)

type htmlTest struct {
	name  string
	input string
	opts  parse.Options
	html  string
}

const (
	tableA  = "<table>\n<thead>\n<tr>\n<th>a</th>\n</tr>\n</thead>\n</table>"
	tableAB = "<table>\n<thead>\n<tr>\n<th>a</th>\n</tr>\n</thead>\n<tbody>\n<tr>\n<td>b</td>\n</tr>\n</tbody>\n</table>"
)

var htmlTests = []htmlTest{
	{"head and delimiter", "| a |\n| - |", parse.Options{}, tableA},
	{"no pipes", "| a\n| -", parse.Options{}, tableA},
	{"body row", "| a |\n| - |\n| b |", parse.Options{}, tableAB},
	{"body row without pipes", "| a\n| -\n| b", parse.Options{}, tableAB},
	{"two columns", "| a | b |\n| - | - |\n| c | d |", parse.Options{},
		"<table>\n<thead>\n<tr>\n<th>a</th>\n<th>b</th>\n</tr>\n</thead>\n<tbody>\n<tr>\n<td>c</td>\n<td>d</td>\n</tr>\n</tbody>\n</table>"},
	{"empty first header cell", "||a|\n|-|-|", parse.Options{},
		"<table>\n<thead>\n<tr>\n<th></th>\n<th>a</th>\n</tr>\n</thead>\n</table>"},
	{"empty last header cell", "|a||\n|-|-|", parse.Options{},
		"<table>\n<thead>\n<tr>\n<th>a</th>\n<th></th>\n</tr>\n</thead>\n</table>"},
	{"empty middle header cell", "a||b\n-|-|-", parse.Options{},
		"<table>\n<thead>\n<tr>\n<th>a</th>\n<th></th>\n<th>b</th>\n</tr>\n</thead>\n</table>"},
	{"empty first body cell", "|a|b|\n|-|-|\n||c|", parse.Options{},
		"<table>\n<thead>\n<tr>\n<th>a</th>\n<th>b</th>\n</tr>\n</thead>\n<tbody>\n<tr>\n<td></td>\n<td>c</td>\n</tr>\n</tbody>\n</table>"},
	{"empty middle body cell", "a|b|c\n-|-|-\nd||e", parse.Options{},
		"<table>\n<thead>\n<tr>\n<th>a</th>\n<th>b</th>\n<th>c</th>\n</tr>\n</thead>\n<tbody>\n<tr>\n<td>d</td>\n<td></td>\n<td>e</td>\n</tr>\n</tbody>\n</table>"},
	{"alignment and padding", "| a | b | c |\n|:-|:-:|-:|\n| d |", parse.Options{},
		"<table>\n<thead>\n<tr>\n<th align=\"left\">a</th>\n<th align=\"center\">b</th>\n<th align=\"right\">c</th>\n</tr>\n</thead>\n" +
			"<tbody>\n<tr>\n<td align=\"left\">d</td>\n<td align=\"center\"></td>\n<td align=\"right\"></td>\n</tr>\n</tbody>\n</table>"},
	{"extra body cells are dropped", "| a |\n| - |\n| b | c |", parse.Options{}, tableAB},
	{"escaped pipe", "| a \\| b |\n| - |", parse.Options{},
		"<table>\n<thead>\n<tr>\n<th>a | b</th>\n</tr>\n</thead>\n</table>"},
	{"special characters", "| <b> & \" |\n| - |", parse.Options{},
		"<table>\n<thead>\n<tr>\n<th>&lt;b&gt; &amp; &#34;</th>\n</tr>\n</thead>\n</table>"},
	// around tables
	{"list after table", "| a |\n| - |\n- b", parse.Options{}, tableA + "\n<ul>\n<li>b</li>\n</ul>"},
	{"delimiter indented 3 spaces", "| a |\n   | - |", parse.Options{}, tableA},
	{"delimiter indented 4 spaces", "| a |\n    | - |", parse.Options{}, "<p>| a |\n| - |</p>"},
	{"delimiter indented 4 spaces, no code", "| a |\n    | - |", parse.Options{DisableIndentedCode: true}, tableA},
	{"tables disabled", "| a |\n| - |", parse.Options{DisableTables: true}, "<p>| a |\n| - |</p>"},
	{"block quote", "| a |\n| - |\n> block quote?", parse.Options{}, tableA + "\n<blockquote>\n<p>block quote?</p>\n</blockquote>"},
	{"empty block quote", "| a |\n| - |\n>", parse.Options{}, tableA + "\n<blockquote>\n</blockquote>"},
	{"list", "| a |\n| - |\n- list?", parse.Options{}, tableA + "\n<ul>\n<li>list?</li>\n</ul>"},
	{"empty list item", "| a |\n| - |\n-", parse.Options{}, tableA + "\n<ul>\n<li></li>\n</ul>"},
	{"html", "| a |\n| - |\n<!-- HTML? -->", parse.Options{}, tableA + "\n<!-- HTML? -->"},
	{"indented code", "| a |\n| - |\n\tcode?", parse.Options{}, tableA + "\n<pre><code>code?\n</code></pre>"},
	{"fenced code", "| a |\n| - |\n```js\ncode?", parse.Options{}, tableA + "\n<pre><code class=\"language-js\">code?\n</code></pre>"},
	{"thematic break", "| a |\n| - |\n***", parse.Options{}, tableA + "\n<hr />"},
	{"atx heading", "| a |\n| - |\n# heading?", parse.Options{}, tableA + "\n<h1>heading?</h1>"},
	{"setext equals", "| a |\n| - |\nheading\n=", parse.Options{},
		"<table>\n<thead>\n<tr>\n<th>a</th>\n</tr>\n</thead>\n<tbody>\n<tr>\n<td>heading</td>\n</tr>\n<tr>\n<td>=</td>\n</tr>\n</tbody>\n</table>"},
	{"setext dashes", "| a |\n| - |\nheading\n---", parse.Options{},
		"<table>\n<thead>\n<tr>\n<th>a</th>\n</tr>\n</thead>\n<tbody>\n<tr>\n<td>heading</td>\n</tr>\n</tbody>\n</table>\n<hr />"},
	{"setext dash", "| a |\n| - |\nheading\n-", parse.Options{},
		"<table>\n<thead>\n<tr>\n<th>a</th>\n</tr>\n</thead>\n<tbody>\n<tr>\n<td>heading</td>\n</tr>\n</tbody>\n</table>\n<ul>\n<li></li>\n</ul>"},
	// block quotes
	{"lazy delimiter row", "> | a |\n| - |", parse.Options{}, "<blockquote>\n<p>| a |\n| - |</p>\n</blockquote>"},
	{"lazy delimiter row after paragraph", "> a\n> | b |\n| - |", parse.Options{}, "<blockquote>\n<p>a\n| b |\n| - |</p>\n</blockquote>"},
	{"delimiter row in quote", "| a |\n> | - |", parse.Options{}, "<p>| a |</p>\n<blockquote>\n<p>| - |</p>\n</blockquote>"},
	{"lazy short delimiter row", "> a\n> | b |\n|-", parse.Options{}, "<blockquote>\n<p>a\n| b |\n|-</p>\n</blockquote>"},
	{"lazy body row", "> | a |\n> | - |\n| b |", parse.Options{}, "<blockquote>\n" + tableA + "\n</blockquote>\n<p>| b |</p>"},
	{"lazy body row after paragraph", "> a\n> | b |\n> | - |\n| c |", parse.Options{},
		"<blockquote>\n<p>a</p>\n<table>\n<thead>\n<tr>\n<th>b</th>\n</tr>\n</thead>\n</table>\n</blockquote>\n<p>| c |</p>"},
	{"lazy body row after body", "> | A |\n> | - |\n> | 1 |\n| 2 |", parse.Options{},
		"<blockquote>\n<table>\n<thead>\n<tr>\n<th>A</th>\n</tr>\n</thead>\n<tbody>\n<tr>\n<td>1</td>\n</tr>\n</tbody>\n</table>\n</blockquote>\n<p>| 2 |</p>"},
	{"nested quotes", "> > a\n> b", parse.Options{}, "<blockquote>\n<blockquote>\n<p>a\nb</p>\n</blockquote>\n</blockquote>"},
	// other blocks
	{"setext heading", "a\n---", parse.Options{}, "<h2>a</h2>"},
	{"closed atx heading", "### b ###", parse.Options{}, "<h3>b</h3>"},
	{"atx heading of hashes", "## ###", parse.Options{}, "<h2></h2>"},
	{"ordered lists", "1. a\n2. b\n\n3) c", parse.Options{},
		"<ol>\n<li>a</li>\n<li>b</li>\n</ol>\n<ol start=\"3\">\n<li>c</li>\n</ol>"},
	{"quote paragraphs", "> a\n> b\n>\n> c", parse.Options{}, "<blockquote>\n<p>a\nb</p>\n<p>c</p>\n</blockquote>"},
	{"code escapes", "    <a>\n\n    b", parse.Options{}, "<pre><code>&lt;a&gt;\n\nb\n</code></pre>"},
	{"paragraph escapes", "a \\* b <c>", parse.Options{}, "<p>a * b &lt;c&gt;</p>"},
}

func render(t *testing.T, input string, opts parse.Options) string {
	t.Helper()
	src := scan.Preprocess(input)
	root, err := parse.Parse(src, opts)
	if err != nil {
		t.Fatalf("%q: %v", input, err)
	}
	var b strings.Builder
	if err := HTML(&b, src, root); err != nil {
		t.Fatalf("%q: %v", input, err)
	}
	return b.String()
}

func TestHTML(t *testing.T) {
	for _, test := range htmlTests {
		if got := render(t, test.input, test.opts); got != test.html {
			t.Errorf("%s: got\n\t%q\nexpected\n\t%q", test.name, got, test.html)
		}
	}
}

func TestHTMLTableStructure(t *testing.T) {
	out := render(t, "| a | b | c |\n|:-|:-:|-:|\n| d |\n| e | f | g | h |", parse.Options{})
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	if err != nil {
		t.Fatal(err)
	}
	if n := doc.Find("thead th").Length(); n != 3 {
		t.Fatalf("%d header cells, expected 3", n)
	}
	want := []string{"left", "center", "right"}
	doc.Find("tbody tr").Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() != 3 {
			t.Errorf("row %d has %d cells, expected 3", i, cells.Length())
		}
		cells.Each(func(j int, cell *goquery.Selection) {
			if a := cell.AttrOr("align", ""); a != want[j] {
				t.Errorf("row %d cell %d: align %q, expected %q", i, j, a, want[j])
			}
		})
	})
	if text := doc.Find("tbody tr").Last().Text(); !strings.Contains(text, "g") || strings.Contains(text, "h") {
		t.Errorf("last row text %q", text)
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestHTMLWriteError(t *testing.T) {
	src := scan.Preprocess("| a |\n| - |")
	root, err := parse.Parse(src, parse.Options{})
	if err != nil {
		t.Fatal(err)
	}
	err = HTML(failWriter{}, src, root)
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("got error %v", err)
	}
}
