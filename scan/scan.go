// Copyright 2023 Matthew P. Dargan. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scan provides the character-level machinery that block constructs
// are written against: preprocessed input, tokens and events, and a
// tokenizer that can try a construct and roll it back.
package scan

import "fmt"

// State represents the state of a construct as a function that
// receives the current code and returns the next state.
// A nil state stops the tokenizer.
type State func(c Code) State

// Construct is a named grammar rule that can be tried at the current code.
type Construct struct {
	Name string

	// Tokenize returns the start state of the construct.
	// The construct must end by returning ok or nok with the
	// first code it did not consume.
	Tokenize func(t *Tokenizer, ok, nok State) State

	// Resolve, if set, rewrites the events the construct produced
	// once an Attempt succeeds. It must return a new slice.
	Resolve func(events []Event) []Event

	// Interruptible constructs may end an open paragraph.
	Interruptible bool

	// Partial constructs are only used as lookahead inside other constructs.
	Partial bool
}

// Tokenizer holds the state of the scanner.
type Tokenizer struct {
	// Interrupters are host constructs that may start a new block on a
	// line following a construct's row or line. Constructs check them
	// to decide whether to stop.
	Interrupters []*Construct

	src      *Source
	index    int             // current code index
	events   []Event         // emitted events
	stack    []*Token        // open tokens, innermost last
	disabled map[string]bool // names of host constructs switched off
}

// NewTokenizer creates a tokenizer positioned at the start of src.
// Disabled names host constructs, such as "codeIndented", that are
// switched off.
func NewTokenizer(src *Source, disabled ...string) *Tokenizer {
	t := &Tokenizer{src: src, disabled: make(map[string]bool)}
	for _, name := range disabled {
		t.disabled[name] = true
	}
	return t
}

// Source returns the input being scanned.
func (t *Tokenizer) Source() *Source {
	return t.src
}

// Index returns the index of the current code.
func (t *Tokenizer) Index() int {
	return t.index
}

// Current returns the current code.
func (t *Tokenizer) Current() Code {
	return t.src.codes[t.index]
}

// Events returns the events emitted so far.
func (t *Tokenizer) Events() []Event {
	return t.events
}

// Disabled reports whether the named host construct is switched off.
func (t *Tokenizer) Disabled(name string) bool {
	return t.disabled[name]
}

// Enter opens a token of type typ at the current code.
func (t *Tokenizer) Enter(typ Type) *Token {
	tok := &Token{Type: typ, Start: t.index, End: t.index}
	t.stack = append(t.stack, tok)
	t.events = append(t.events, Event{Kind: Enter, Token: tok})
	return tok
}

// Exit closes the innermost open token, which must have type typ.
func (t *Tokenizer) Exit(typ Type) *Token {
	if len(t.stack) == 0 {
		panic(fmt.Sprintf("scan: exit %s with no open token", typ))
	}
	tok := t.stack[len(t.stack)-1]
	if tok.Type != typ {
		panic(fmt.Sprintf("scan: exit %s while %s is open", typ, tok.Type))
	}
	t.stack = t.stack[:len(t.stack)-1]
	tok.End = t.index
	t.events = append(t.events, Event{Kind: Exit, Token: tok})
	return tok
}

// Consume advances past c, which must be the current code.
// The code becomes part of every open token.
func (t *Tokenizer) Consume(c Code) {
	if c == EOF {
		panic("scan: consume at EOF")
	}
	if cur := t.Current(); c != cur {
		panic(fmt.Sprintf("scan: consume %d, current code is %d", c, cur))
	}
	t.index++
}

// LineEnding wraps the line ending c in a LineEnding token.
func (t *Tokenizer) LineEnding(c Code) {
	t.Enter(LineEnding)
	t.Consume(c)
	t.Exit(LineEnding)
}

// Space returns a state that consumes up to max-1 space codes into a
// token of type typ and then continues with ok.
// A max of zero or less means no limit.
func (t *Tokenizer) Space(ok State, typ Type, max int) State {
	var size int
	var prefix State
	prefix = func(c Code) State {
		if IsSpace(c) && (max <= 0 || size < max-1) {
			size++
			t.Consume(c)
			return prefix
		}
		t.Exit(typ)
		return ok(c)
	}
	return func(c Code) State {
		if IsSpace(c) && max != 1 {
			t.Enter(typ)
			return prefix(c)
		}
		return ok(c)
	}
}

// Check tries c without committing anything: whatever the outcome,
// the tokenizer returns to the current code before continuing with
// ok or nok.
func (t *Tokenizer) Check(c *Construct, ok, nok State) State {
	return t.try(c, ok, nok, false)
}

// Attempt tries c and keeps its events when it succeeds, after running
// the construct's resolver over them. On failure the tokenizer returns
// to the current code before continuing with nok.
func (t *Tokenizer) Attempt(c *Construct, ok, nok State) State {
	return t.try(c, ok, nok, true)
}

// snapshot is the part of the tokenizer a failed try must undo.
type snapshot struct {
	index  int
	events int
	stack  []*Token
}

func (t *Tokenizer) save() snapshot {
	return snapshot{
		index:  t.index,
		events: len(t.events),
		stack:  append([]*Token(nil), t.stack...),
	}
}

func (t *Tokenizer) restore(s snapshot) {
	t.index = s.index
	t.events = t.events[:s.events]
	t.stack = s.stack
}

func (t *Tokenizer) try(c *Construct, ok, nok State, keep bool) State {
	return func(code Code) State {
		s := t.save()
		succeed := func(code Code) State {
			if !keep {
				t.restore(s)
				return ok(t.Current())
			}
			if c.Resolve != nil {
				resolved := c.Resolve(t.events[s.events:])
				t.events = append(t.events[:s.events], resolved...)
			}
			return ok(code)
		}
		fail := func(Code) State {
			t.restore(s)
			return nok(t.Current())
		}
		return c.Tokenize(t, succeed, fail)(code)
	}
}

// Run drives the tokenizer from state until a state returns nil.
func (t *Tokenizer) Run(state State) {
	for state != nil {
		state = state(t.Current())
	}
}
