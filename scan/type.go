// Copyright 2023 Matthew P. Dargan. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scan

//go:generate stringer -type Type -linecomment

// Type identifies the type of a token.
type Type int

const (
	// Document is the root of a token tree
	Document Type = iota // document

	// Table tokens.

	// Table wraps a whole table
	Table // table
	// TableHead wraps the head row
	TableHead // tableHead
	// TableBody wraps the body rows
	TableBody // tableBody
	// TableRow is a head or body row
	TableRow // tableRow
	// TableDelimiterRow is the row of dashes under the head
	TableDelimiterRow // tableDelimiterRow
	// TableCellDivider is a pipe between cells
	TableCellDivider // tableCellDivider
	// TableHeader is a cell in the head row
	TableHeader // tableHeader
	// TableData is a cell in a body row
	TableData // tableData
	// TableDelimiter is a cell in the delimiter row
	TableDelimiter // tableDelimiter
	// TableDelimiterFiller is a run of dashes
	TableDelimiterFiller // tableDelimiterFiller
	// TableDelimiterAlignment is a colon in the delimiter row
	TableDelimiterAlignment // tableDelimiterAlignment
	// TableContent wraps the content of one cell
	TableContent // tableContent
	// TemporaryTableCellContent is a fragment of cell content before resolution
	TemporaryTableCellContent // temporaryTableCellContent

	// Shared tokens.

	// ChunkText is raw text for a later inline pass
	ChunkText // chunkText
	// Whitespace is a run of spaces and tabs
	Whitespace // whitespace
	// LineEnding is a line ending
	LineEnding // lineEnding
	// LinePrefix is indentation at the start of a line
	LinePrefix // linePrefix
	// Check is opened by lookahead constructs and never committed
	Check // check
	// SetextUnderline is a run of '=' or '-' under a heading
	SetextUnderline // setextUnderline

	// Host block tokens.

	// Paragraph is a run of text lines
	Paragraph // paragraph
	// HeadingATX is a heading opened by '#' characters
	HeadingATX // headingAtx
	// HeadingSetext is a paragraph closed by an underline
	HeadingSetext // headingSetext
	// ThematicBreak is a line of '*', '-' or '_'
	ThematicBreak // thematicBreak
	// CodeFenced is code between fences
	CodeFenced // codeFenced
	// CodeFence is an opening or closing fence line
	CodeFence // codeFence
	// CodeIndented is code indented by a tab stop
	CodeIndented // codeIndented
	// HTMLFlow is a block of raw HTML
	HTMLFlow // htmlFlow
	// BlockQuote is a run of lines starting with '>'
	BlockQuote // blockQuote
	// ListItem is one list item line
	ListItem // listItem
	// BlankLine is a line of only spaces
	BlankLine // blankLine
)
