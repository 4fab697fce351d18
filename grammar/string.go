package grammar

import "github.com/dhamidi/parsec/parsec"

// escapes maps the byte after a backslash to the byte it stands for. Any
// other byte stands for itself, which covers \" and \\.
var escapes = map[byte]byte{
	'0': 0,
	'b': '\b',
	't': '\t',
	'n': '\n',
	'v': '\v',
	'f': '\f',
	'r': '\r',
}

func escaped() parsec.Parser[byte] {
	return parsec.Map(parsec.AnyChar(), func(c byte) byte {
		if e, ok := escapes[c]; ok {
			return e
		}
		return c
	})
}

// quoted matches a double-quoted string with surrounding whitespace and
// yields its unescaped contents. It is shared by string values and object
// keys.
func quoted() parsec.Parser[string] {
	char := parsec.Choice(
		parsec.Right(parsec.Char('\\'), escaped()),
		parsec.Satisfy(func(c byte) bool { return c != '"' }),
	)
	body := parsec.Map(parsec.Many(char), func(cs []byte) string { return string(cs) })
	return parsec.Trim(parsec.Between(parsec.Char('"'), parsec.Char('"'), body))
}
