// Package parsec provides parser combinators over an in-memory text buffer.
//
// A Parser is a plain function from a State to a Result. Parsers never mutate
// the state they are given: every successful step returns a new State, and a
// caller that wants to backtrack simply keeps the State it started from.
package parsec

import (
	"fmt"
	"sort"
	"sync"
)

// Position is a resolved location in the input, used for diagnostics.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Input is the immutable text shared by every State derived from it.
type Input struct {
	text string

	linesOnce sync.Once
	lines     []int // offsets of line starts
}

// NewInput wraps text in a shared buffer.
func NewInput(text string) *Input {
	return &Input{text: text}
}

// Len returns the length of the buffer in bytes.
func (in *Input) Len() int {
	return len(in.text)
}

// Text returns the whole buffer.
func (in *Input) Text() string {
	return in.text
}

// At returns a State positioned at pos. pos is clamped to [0, Len()].
func (in *Input) At(pos int) State {
	if pos < 0 {
		pos = 0
	}
	if pos > len(in.text) {
		pos = len(in.text)
	}
	return State{pos: pos, input: in}
}

// Position resolves a byte offset into line and column, both 1-based.
// Columns count bytes.
func (in *Input) Position(offset int) Position {
	in.linesOnce.Do(func() { in.lines = lineStarts(in.text) })
	line := sort.Search(len(in.lines), func(i int) bool { return in.lines[i] > offset }) - 1
	if line < 0 {
		line = 0
	}
	return Position{
		Offset: offset,
		Line:   line + 1,
		Column: offset - in.lines[line] + 1,
	}
}

func lineStarts(text string) []int {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// State is a cursor into an Input. It is cheap to copy.
type State struct {
	pos   int
	input *Input
}

// NewState creates a State at the start of a fresh buffer holding text.
func NewState(text string) State {
	return NewInput(text).At(0)
}

// Offset returns the cursor as a byte offset into the input.
func (s State) Offset() int {
	return s.pos
}

// Input returns the shared buffer.
func (s State) Input() *Input {
	return s.input
}

// At returns a State on the same buffer at pos.
func (s State) At(pos int) State {
	return s.input.At(pos)
}

// AtEnd reports whether the cursor is at the end of the buffer.
func (s State) AtEnd() bool {
	return s.pos >= len(s.input.text)
}

// Remaining returns the unconsumed part of the buffer.
func (s State) Remaining() string {
	return s.input.text[s.pos:]
}

// Position resolves the cursor into line and column.
func (s State) Position() Position {
	return s.input.Position(s.pos)
}

func (s State) String() string {
	return s.Position().String()
}
