package parsec

import "strings"

// AnyChar consumes one byte.
func AnyChar() Parser[byte] {
	return anyChar
}

func anyChar(s State) Result[byte] {
	if s.AtEnd() {
		return Failure[byte](s, "end of file")
	}
	return Success(s.At(s.pos+1), s.input.text[s.pos])
}

// Satisfy consumes one byte accepted by pred. A rejected byte is reported
// as "unexpect <c>" at the position after it; callers backtrack by keeping
// their own state.
func Satisfy(pred func(byte) bool) Parser[byte] {
	return func(s State) Result[byte] {
		r := anyChar(s)
		if !r.ok {
			return r
		}
		if !pred(r.value) {
			return Failure[byte](r.state, "unexpect "+string([]byte{r.value}))
		}
		return r
	}
}

// Char matches the byte c.
func Char(c byte) Parser[byte] {
	return Satisfy(func(x byte) bool { return x == c })
}

// OneOf matches any byte contained in set.
func OneOf(set string) Parser[byte] {
	return Satisfy(func(x byte) bool { return strings.IndexByte(set, x) >= 0 })
}

// Literal matches text exactly. The empty literal always succeeds.
func Literal(text string) Parser[string] {
	if text == "" {
		return Pure("")
	}
	return And(Char(text[0]), Lazy(func() Parser[string] { return Literal(text[1:]) }),
		func(byte, string) string { return text })
}

// EndOfInput succeeds only at the end of the buffer.
func EndOfInput() Parser[struct{}] {
	return func(s State) Result[struct{}] {
		if s.AtEnd() {
			return Success(s, struct{}{})
		}
		return Failure[struct{}](s, "expect end of file")
	}
}

// Space matches a single blank, newline or tab.
func Space() Parser[byte] {
	return OneOf(" \n\t")
}

// Spaces skips any run of Space, including none.
func Spaces() Parser[[]byte] {
	return Many(Space())
}
