package format

import (
	"fmt"
	"io"

	"github.com/goccy/go-yaml"

	"github.com/dhamidi/parsec/value"
)

type YAMLEncoder struct {
	w io.Writer
}

func NewYAMLEncoder(w io.Writer) *YAMLEncoder {
	return &YAMLEncoder{w: w}
}

func (e *YAMLEncoder) Encode(v value.Value) error {
	return encode(e.w, e, v)
}

func (e *YAMLEncoder) Marshal(v value.Value) ([]byte, error) {
	payload, err := yaml.Marshal(yamlValue(v))
	if err != nil {
		return nil, fmt.Errorf("encode YAML: %w", err)
	}
	return payload, nil
}

// yamlValue converts objects to MapSlice so keys keep the tree's order.
func yamlValue(v value.Value) any {
	switch v.Kind() {
	case value.KindArray:
		items := make([]any, 0, v.Len())
		for _, elem := range v.Elements() {
			items = append(items, yamlValue(elem))
		}
		return items
	case value.KindObject:
		items := make(yaml.MapSlice, 0, v.Len())
		for k, member := range v.All() {
			items = append(items, yaml.MapItem{Key: k, Value: yamlValue(member)})
		}
		return items
	default:
		return v.Interface()
	}
}
