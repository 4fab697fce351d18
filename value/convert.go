package value

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// ErrUnsupportedType is returned by FromInterface for Go values that have no
// counterpart in the tree.
var ErrUnsupportedType = errors.New("unsupported type")

// Interface converts v into the shapes produced by encoding/json:
// nil, bool, float64, string, []any and map[string]any.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.boolean
	case KindNumber:
		return v.number
	case KindString:
		return v.str
	case KindArray:
		out := make([]any, len(v.array))
		for i, e := range v.array {
			out[i] = e.Interface()
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.members))
		for _, m := range v.members {
			out[m.Key] = m.Value.Interface()
		}
		return out
	}
	return nil
}

// FromInterface converts decoded JSON-like Go data into a Value.
func FromInterface(x any) (Value, error) {
	switch current := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return current, nil
	case bool:
		return Bool(current), nil
	case string:
		return String(current), nil
	case float64:
		return Number(current), nil
	case float32:
		return Number(float64(current)), nil
	case int:
		return Number(float64(current)), nil
	case int64:
		return Number(float64(current)), nil
	case json.Number:
		f, err := current.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("convert number %q: %w", current, err)
		}
		return Number(f), nil
	case []any:
		elems := make([]Value, len(current))
		for i, e := range current {
			ev, err := FromInterface(e)
			if err != nil {
				return Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			elems[i] = ev
		}
		return Array(elems...), nil
	case map[string]any:
		keys := make([]string, 0, len(current))
		for k := range current {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		members := make([]Member, 0, len(current))
		for _, k := range keys {
			mv, err := FromInterface(current[k])
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", k, err)
			}
			members = append(members, Member{Key: k, Value: mv})
		}
		return Object(members...), nil
	default:
		return Value{}, fmt.Errorf("%w: %T", ErrUnsupportedType, x)
	}
}
