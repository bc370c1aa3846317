// Copyright 2023 Matthew P. Dargan. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scan

import "fmt"

// Token is a typed region of the input.
type Token struct {
	Type  Type // The type of this token.
	Start int  // Index of the first code in the token.
	End   int  // Index one past the last code in the token.

	// Meta holds construct data, such as the column alignment of a table.
	// Generic code treats it as opaque.
	Meta any
}

func (t *Token) String() string {
	return fmt.Sprintf("%s[%d:%d]", t.Type, t.Start, t.End)
}

// Kind says whether an event opens or closes its token.
type Kind uint8

const (
	Enter Kind = iota // Enter opens a token
	Exit              // Exit closes a token
)

func (k Kind) String() string {
	if k == Enter {
		return "enter"
	}
	return "exit"
}

// Event is one half of a token in a flat, ordered event list.
// A well-formed list nests like parentheses.
type Event struct {
	Kind  Kind
	Token *Token
}

func (e Event) String() string {
	return fmt.Sprintf("%s:%s", e.Kind, e.Token.Type)
}
