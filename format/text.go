package format

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/dhamidi/parsec/parsec"
	"github.com/dhamidi/parsec/value"
)

// TextEncoder writes values in the syntax accepted by the grammar package,
// so its output parses back into an equal tree. Numbers never use exponent
// notation and are written in the form the number grammar folds back to
// the same value. Strings only use the escapes the grammar understands.
type TextEncoder struct {
	w      io.Writer
	indent string
}

// NewTextEncoder writes indented, multi-line output.
func NewTextEncoder(w io.Writer) *TextEncoder {
	return &TextEncoder{w: w, indent: "  "}
}

// NewCompactEncoder writes everything on one line without spaces.
func NewCompactEncoder(w io.Writer) *TextEncoder {
	return &TextEncoder{w: w}
}

// SetIndent changes the indentation unit. An empty indent selects the
// compact layout.
func (e *TextEncoder) SetIndent(indent string) {
	e.indent = indent
}

func (e *TextEncoder) Encode(v value.Value) error {
	return encode(e.w, e, v)
}

func (e *TextEncoder) Marshal(v value.Value) ([]byte, error) {
	var sb strings.Builder
	e.write(&sb, v, 0)
	if e.indent != "" {
		sb.WriteByte('\n')
	}
	return []byte(sb.String()), nil
}

// String renders v compactly.
func String(v value.Value) string {
	var sb strings.Builder
	(&TextEncoder{}).write(&sb, v, 0)
	return sb.String()
}

func (e *TextEncoder) write(sb *strings.Builder, v value.Value, depth int) {
	switch v.Kind() {
	case value.KindNull:
		sb.WriteString("null")
	case value.KindBool:
		b, _ := v.AsBool()
		sb.WriteString(strconv.FormatBool(b))
	case value.KindNumber:
		n, _ := v.AsNumber()
		sb.WriteString(formatNumber(n))
	case value.KindString:
		s, _ := v.AsString()
		writeQuoted(sb, s)
	case value.KindArray:
		if v.Len() == 0 {
			sb.WriteString("[]")
			return
		}
		sb.WriteByte('[')
		for i, elem := range v.Elements() {
			if i > 0 {
				sb.WriteByte(',')
			}
			e.newline(sb, depth+1)
			e.write(sb, elem, depth+1)
		}
		e.newline(sb, depth)
		sb.WriteByte(']')
	case value.KindObject:
		if v.Len() == 0 {
			sb.WriteString("{}")
			return
		}
		sb.WriteByte('{')
		first := true
		for k, member := range v.All() {
			if !first {
				sb.WriteByte(',')
			}
			first = false
			e.newline(sb, depth+1)
			writeQuoted(sb, k)
			sb.WriteByte(':')
			if e.indent != "" {
				sb.WriteByte(' ')
			}
			e.write(sb, member, depth+1)
		}
		e.newline(sb, depth)
		sb.WriteByte('}')
	}
}

func (e *TextEncoder) newline(sb *strings.Builder, depth int) {
	if e.indent == "" {
		return
	}
	sb.WriteByte('\n')
	for i := 0; i < depth; i++ {
		sb.WriteString(e.indent)
	}
}

const maxFractionDigits = 20

// formatNumber returns the shortest fixed-point text that parsec.Decimal
// reads back as exactly n. Decimal adds the fraction to a signed integer
// part, so a negative non-integer is written with its floor as the integer
// part: -1.5 is "-2.5". Numbers with no such text, like integers above
// 2^63, fall back to the shortest fixed-point form.
func formatNumber(n float64) string {
	whole := math.Floor(n)
	if n == whole {
		// 2^63 only reads back through the largest int, which rounds up to it.
		for _, s := range []string{strconv.FormatFloat(n, 'f', 0, 64), strconv.Itoa(math.MaxInt)} {
			if readsBack(s, n) {
				return s
			}
		}
		return strconv.FormatFloat(n, 'f', -1, 64)
	}

	prefix := strconv.FormatFloat(whole, 'f', 0, 64)
	frac := n - whole
	for prec := 1; prec <= maxFractionDigits; prec++ {
		digits := strconv.FormatFloat(frac, 'f', prec, 64)
		if digits[0] != '0' {
			continue
		}
		if s := prefix + digits[1:]; readsBack(s, n) {
			return s
		}
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

func readsBack(s string, n float64) bool {
	r := parsec.Parse(parsec.Decimal(), s)
	v, ok := r.Value()
	return ok && r.State().AtEnd() && v == n
}

var quoteEscapes = map[byte]string{
	'"':  `\"`,
	'\\': `\\`,
	'\n': `\n`,
	'\t': `\t`,
	'\r': `\r`,
	'\b': `\b`,
	'\f': `\f`,
	'\v': `\v`,
	0:    `\0`,
}

func writeQuoted(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		if esc, ok := quoteEscapes[s[i]]; ok {
			sb.WriteString(esc)
			continue
		}
		sb.WriteByte(s[i])
	}
	sb.WriteByte('"')
}
