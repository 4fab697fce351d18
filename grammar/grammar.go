// Package grammar recognizes JSON-like text using the parsec combinators and
// produces value trees.
//
// The grammar is a plain recursive descent over six alternatives tried in
// order: null, boolean, number, string, array and object. Every alternative
// skips the whitespace around it, so there is no separate lexing pass.
// Numbers have no exponent part and strings have no \u escapes.
package grammar

import (
	_ "embed"

	"github.com/dhamidi/parsec/parsec"
	"github.com/dhamidi/parsec/value"
	"github.com/tliron/commonlog"
)

//go:embed json.ebnf
var ebnfSource string

// EBNF returns the EBNF description of the language accepted by Document.
// Its start production is "document".
func EBNF() string {
	return ebnfSource
}

// Option configures a Grammar.
type Option func(*Grammar)

// WithTrace logs every rule entry and exit to log at debug level.
func WithTrace(log commonlog.Logger) Option {
	return func(g *Grammar) {
		g.log = log
	}
}

// WithAccumulatedErrors makes every alternation report the messages of all
// of its alternatives instead of only the last one.
func WithAccumulatedErrors() Option {
	return func(g *Grammar) {
		g.accumulate = true
	}
}

// Grammar builds the value parsers. The zero value uses the defaults.
type Grammar struct {
	log        commonlog.Logger
	accumulate bool
}

// New creates a grammar configured by opts.
func New(opts ...Option) *Grammar {
	g := &Grammar{}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Value returns the default value parser.
func Value() parsec.Parser[value.Value] {
	return New().Value()
}

// Document returns the default document parser.
func Document() parsec.Parser[value.Value] {
	return New().Document()
}

// Parse parses text as a single document.
func Parse(text string) (value.Value, error) {
	return parsec.Parse(Document(), text).Unwrap()
}

// Value parses one value, leaving whatever follows it unconsumed.
func (g *Grammar) Value() parsec.Parser[value.Value] {
	return g.rule("value", g.choice(
		g.null(),
		g.boolean(),
		g.number(),
		g.str(),
		parsec.Lazy(g.array),
		parsec.Lazy(g.object),
	))
}

// Document parses one value that must span the whole input.
func (g *Grammar) Document() parsec.Parser[value.Value] {
	return parsec.Left(g.Value(), parsec.EndOfInput())
}

func (g *Grammar) rule(name string, p parsec.Parser[value.Value]) parsec.Parser[value.Value] {
	if g.log == nil {
		return p
	}
	return parsec.Trace(g.log, name, p)
}

func (g *Grammar) choice(first parsec.Parser[value.Value], rest ...parsec.Parser[value.Value]) parsec.Parser[value.Value] {
	if g.accumulate {
		return parsec.ChoiceAll(first, rest...)
	}
	return parsec.Choice(first, rest...)
}

func (g *Grammar) null() parsec.Parser[value.Value] {
	return g.rule("null", parsec.Trim(parsec.Map(parsec.Literal("null"),
		func(string) value.Value { return value.Null() })))
}

func (g *Grammar) boolean() parsec.Parser[value.Value] {
	return g.rule("boolean", parsec.Trim(g.choice(
		parsec.Map(parsec.Literal("true"), func(string) value.Value { return value.Bool(true) }),
		parsec.Map(parsec.Literal("false"), func(string) value.Value { return value.Bool(false) }),
	)))
}

func (g *Grammar) number() parsec.Parser[value.Value] {
	return g.rule("number", parsec.Trim(parsec.Map(parsec.Decimal(), value.Number)))
}

func (g *Grammar) str() parsec.Parser[value.Value] {
	return g.rule("string", parsec.Map(quoted(), value.String))
}

func (g *Grammar) array() parsec.Parser[value.Value] {
	elem := parsec.Lazy(g.Value)
	elems := g.choice(
		parsec.And(elem, parsec.Many(parsec.Right(parsec.Char(','), elem)),
			func(first value.Value, rest []value.Value) value.Value {
				return value.Array(append([]value.Value{first}, rest...)...)
			}),
		parsec.Pure(value.Array()),
	)
	return g.rule("array", parsec.Trim(parsec.Between(parsec.Char('['), parsec.Char(']'), elems)))
}

func (g *Grammar) object() parsec.Parser[value.Value] {
	elem := parsec.Lazy(g.Value)
	member := parsec.And(quoted(), parsec.Right(parsec.Char(':'), elem),
		func(k string, v value.Value) value.Member {
			return value.Member{Key: k, Value: v}
		})
	members := g.choice(
		parsec.And(member, parsec.Many(parsec.Right(parsec.Char(','), member)),
			func(first value.Member, rest []value.Member) value.Value {
				return value.Object(append([]value.Member{first}, rest...)...)
			}),
		parsec.Pure(value.Object()),
	)
	return g.rule("object", parsec.Trim(parsec.Between(parsec.Char('{'), parsec.Char('}'), members)))
}
