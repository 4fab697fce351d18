// Package ebnf checks text against EBNF grammars.
//
// It loads grammars with golang.org/x/exp/ebnf and runs a small backtrack-free
// recognizer over them. The recognizer is used as an independent reference
// for the combinator grammar: both must accept exactly the same inputs.
package ebnf

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	xebnf "golang.org/x/exp/ebnf"
)

// ErrNoMatch is returned when input is not in the language of the grammar.
var ErrNoMatch = errors.New("no match")

// Grammar is a parsed EBNF grammar.
type Grammar = xebnf.Grammar

// Parse reads an EBNF grammar from r.
func Parse(filename string, r io.Reader) (Grammar, error) {
	g, err := xebnf.Parse(filename, r)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	return g, nil
}

// ParseString parses an EBNF grammar held in memory.
func ParseString(filename, src string) (Grammar, error) {
	return Parse(filename, strings.NewReader(src))
}

// LoadGrammar loads an EBNF grammar from a file.
func LoadGrammar(filename string) (Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()

	return Parse(filename, f)
}

// Verify checks that every production referenced from start exists and
// that every production is reachable from start.
func Verify(g Grammar, start string) error {
	if err := xebnf.Verify(g, start); err != nil {
		return fmt.Errorf("verify grammar: %w", err)
	}
	return nil
}

// memoKey is used for memoization of match results.
type memoKey struct {
	name   string
	offset int
}

type match struct {
	n  int
	ok bool
}

// Recognizer matches input against one production of a grammar.
//
// Alternatives pick the longest match, repetitions and options are greedy,
// and sequences never backtrack into an earlier item. This is enough for
// grammars whose alternatives start with distinct characters.
type Recognizer struct {
	grammar Grammar
	start   string
}

// NewRecognizer creates a recognizer for the production named start.
func NewRecognizer(g Grammar, start string) *Recognizer {
	return &Recognizer{grammar: g, start: start}
}

// Match returns the length of the longest prefix of input matched by the
// start production.
func (r *Recognizer) Match(input []byte) (int, bool) {
	m := r.newMatcher(input)
	res := m.matchName(r.start, 0)
	return res.n, res.ok
}

// Recognize succeeds only if the start production matches all of input.
func (r *Recognizer) Recognize(input []byte) error {
	n, ok := r.Match(input)
	if !ok {
		return fmt.Errorf("%w: %s does not match at offset 0", ErrNoMatch, r.start)
	}
	if n != len(input) {
		return fmt.Errorf("%w: %s stops at offset %d of %d", ErrNoMatch, r.start, n, len(input))
	}
	return nil
}

func (r *Recognizer) newMatcher(input []byte) *matcher {
	return &matcher{
		grammar:  r.grammar,
		input:    input,
		memo:     make(map[memoKey]match),
		visiting: make(map[memoKey]bool),
	}
}

// matcher holds the per-input state of one Match call.
type matcher struct {
	grammar  Grammar
	input    []byte
	memo     map[memoKey]match
	visiting map[memoKey]bool // cycle detection
}

func (m *matcher) match(expr xebnf.Expression, offset int) match {
	switch e := expr.(type) {
	case nil:
		// An empty production matches the empty string.
		return match{ok: true}

	case *xebnf.Token:
		return m.matchToken(e.String, offset)

	case *xebnf.Range:
		return m.matchRange(e.Begin.String, e.End.String, offset)

	case xebnf.Sequence:
		total := 0
		for _, item := range e {
			res := m.match(item, offset+total)
			if !res.ok {
				return match{}
			}
			total += res.n
		}
		return match{n: total, ok: true}

	case xebnf.Alternative:
		best := match{}
		for _, alt := range e {
			res := m.match(alt, offset)
			if res.ok && (!best.ok || res.n > best.n) {
				best = res
			}
		}
		return best

	case *xebnf.Repetition:
		total := 0
		for {
			res := m.match(e.Body, offset+total)
			if !res.ok || res.n == 0 {
				break
			}
			total += res.n
		}
		return match{n: total, ok: true}

	case *xebnf.Option:
		if res := m.match(e.Body, offset); res.ok {
			return res
		}
		return match{ok: true}

	case *xebnf.Group:
		return m.match(e.Body, offset)

	case *xebnf.Name:
		return m.matchName(e.String, offset)

	default:
		return match{}
	}
}

// matchName matches a named production with memoization and cycle detection.
func (m *matcher) matchName(name string, offset int) match {
	key := memoKey{name: name, offset: offset}

	if res, ok := m.memo[key]; ok {
		return res
	}

	// Left recursion: refuse to re-enter a production at the same offset.
	if m.visiting[key] {
		return match{}
	}

	prod, ok := m.grammar[name]
	if !ok {
		m.memo[key] = match{}
		return match{}
	}

	m.visiting[key] = true
	res := m.match(prod.Expr, offset)
	delete(m.visiting, key)

	m.memo[key] = res
	return res
}

// matchToken matches a literal token.
func (m *matcher) matchToken(token string, offset int) match {
	if offset+len(token) > len(m.input) {
		return match{}
	}
	if string(m.input[offset:offset+len(token)]) == token {
		return match{n: len(token), ok: true}
	}
	return match{}
}

// matchRange matches one character between begin and end inclusive.
func (m *matcher) matchRange(begin, end string, offset int) match {
	if offset >= len(m.input) {
		return match{}
	}
	lo, _ := utf8.DecodeRuneInString(begin)
	hi, _ := utf8.DecodeRuneInString(end)
	ch, size := utf8.DecodeRune(m.input[offset:])
	if ch >= lo && ch <= hi {
		return match{n: size, ok: true}
	}
	return match{}
}
