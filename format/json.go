package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/parsec/value"
)

// JSONEncoder writes standard JSON through encoding/json.
type JSONEncoder struct {
	w io.Writer
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(v value.Value) error {
	return encode(e.w, e, v)
}

func (e *JSONEncoder) Marshal(v value.Value) ([]byte, error) {
	text, err := json.MarshalIndent(v.Interface(), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(text, '\n'), nil
}
