package format

import (
	"io"
	"strconv"
	"strings"

	"github.com/dhamidi/parsec/value"
)

// DebugEncoder writes a loose diagnostic layout. Every element is
// followed by ", ", strings are written unquoted and numbers use six
// significant digits. The output is not meant to be parsed again.
type DebugEncoder struct {
	w io.Writer
}

func NewDebugEncoder(w io.Writer) *DebugEncoder {
	return &DebugEncoder{w: w}
}

func (e *DebugEncoder) Encode(v value.Value) error {
	return encode(e.w, e, v)
}

func (e *DebugEncoder) Marshal(v value.Value) ([]byte, error) {
	var sb strings.Builder
	writeDebug(&sb, v)
	sb.WriteByte('\n')
	return []byte(sb.String()), nil
}

func writeDebug(sb *strings.Builder, v value.Value) {
	switch v.Kind() {
	case value.KindNull:
		sb.WriteString("null")
	case value.KindBool:
		b, _ := v.AsBool()
		sb.WriteString(strconv.FormatBool(b))
	case value.KindNumber:
		n, _ := v.AsNumber()
		sb.WriteString(strconv.FormatFloat(n, 'g', 6, 64))
	case value.KindString:
		s, _ := v.AsString()
		sb.WriteString(s)
	case value.KindArray:
		sb.WriteByte('[')
		for _, elem := range v.Elements() {
			writeDebug(sb, elem)
			sb.WriteString(", ")
		}
		sb.WriteByte(']')
	case value.KindObject:
		sb.WriteByte('{')
		for k, member := range v.All() {
			sb.WriteString(`"` + k + `" : `)
			writeDebug(sb, member)
			sb.WriteString(", ")
		}
		sb.WriteByte('}')
	}
}
