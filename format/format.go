// Package format renders value trees.
//
// Every encoder writes one value per Encode call. Objects are always
// rendered in the sorted key order kept by the tree.
package format

import (
	"fmt"
	"io"
	"sort"

	"github.com/dhamidi/parsec/value"
)

type Encoder interface {
	Encode(v value.Value) error
	Marshal(v value.Value) ([]byte, error)
}

var encoders = map[string]func(io.Writer) Encoder{
	"text":    func(w io.Writer) Encoder { return NewTextEncoder(w) },
	"compact": func(w io.Writer) Encoder { return NewCompactEncoder(w) },
	"json":    func(w io.Writer) Encoder { return NewJSONEncoder(w) },
	"yaml":    func(w io.Writer) Encoder { return NewYAMLEncoder(w) },
	"lines":   func(w io.Writer) Encoder { return NewLineEncoder(w) },
	"debug":   func(w io.Writer) Encoder { return NewDebugEncoder(w) },
}

// New returns the encoder registered under name.
func New(name string, w io.Writer) (Encoder, error) {
	mk, ok := encoders[name]
	if !ok {
		return nil, fmt.Errorf("unknown format: %s", name)
	}
	return mk(w), nil
}

// Names lists the registered encoder names.
func Names() []string {
	names := make([]string, 0, len(encoders))
	for name := range encoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func encode(w io.Writer, e Encoder, v value.Value) error {
	text, err := e.Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(text)
	return err
}
