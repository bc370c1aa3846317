// Copyright 2023 Matthew P. Dargan. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package gfmtable recognizes GitHub Flavored Markdown pipe tables and renders
documents containing them as HTML.

A table is a head row, a delimiter row of dashes with optional colons for
alignment, and any number of body rows:

	| name  | size |
	| :---- | ---: |
	| a.txt |   12 |

Refer to the [GitHub Flavored Markdown Spec] for the table syntax.

The work is split between packages. Package scan holds the tokenizer that
constructs are written against, package table the table construct and its
resolver, package parse the surrounding block structure and package render
the HTML output.

[GitHub Flavored Markdown Spec]: https://github.github.com/gfm/#tables-extension-
*/
package gfmtable
