package format

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/dhamidi/parsec/value"
)

// LineEncoder writes one tab-separated line per leaf:
//
//	path	kind	value
//
// Paths use JSONPath syntax so they can be passed back to the query
// package. Empty arrays and objects count as leaves.
type LineEncoder struct {
	w io.Writer
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(v value.Value) error {
	return encode(e.w, e, v)
}

func (e *LineEncoder) Marshal(v value.Value) ([]byte, error) {
	var sb strings.Builder
	writeLines(&sb, "$", v)
	return []byte(sb.String()), nil
}

func writeLines(sb *strings.Builder, path string, v value.Value) {
	switch {
	case v.Kind() == value.KindArray && v.Len() > 0:
		for i, elem := range v.Elements() {
			writeLines(sb, fmt.Sprintf("%s[%d]", path, i), elem)
		}
	case v.Kind() == value.KindObject && v.Len() > 0:
		for k, member := range v.All() {
			writeLines(sb, path+memberPath(k), member)
		}
	default:
		fmt.Fprintf(sb, "%s\t%s\t%s\n", path, v.Kind(), String(v))
	}
}

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

var pathEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`, "\t", `\t`, "\r", `\r`)

// memberPath returns the shortest JSONPath segment selecting key.
func memberPath(key string) string {
	if identifier.MatchString(key) {
		return "." + key
	}
	return "['" + pathEscaper.Replace(key) + "']"
}
