// Package query selects parts of a value tree with RFC 9535 JSONPath
// expressions.
package query

import (
	"errors"
	"fmt"

	"github.com/theory/jsonpath"

	"github.com/dhamidi/parsec/value"
)

// ErrInvalidPath is returned for expressions that are not valid JSONPath.
var ErrInvalidPath = errors.New("invalid path")

// Path is a compiled query.
type Path struct {
	expr string
	path *jsonpath.Path
}

// Compile parses expr once so it can be applied to many trees.
func Compile(expr string) (*Path, error) {
	if expr == "" {
		return nil, fmt.Errorf("%w: expression is empty", ErrInvalidPath)
	}
	path, err := jsonpath.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPath, expr, err)
	}
	return &Path{expr: expr, path: path}, nil
}

func (p *Path) String() string {
	return p.expr
}

// Select returns the nodes matched in v, in document order.
func (p *Path) Select(v value.Value) ([]value.Value, error) {
	nodes := p.path.Select(v.Interface())
	out := make([]value.Value, 0, len(nodes))
	for _, node := range nodes {
		sel, err := value.FromInterface(node)
		if err != nil {
			return nil, fmt.Errorf("select %s: %w", p.expr, err)
		}
		out = append(out, sel)
	}
	return out, nil
}

// Select compiles expr and applies it to v.
func Select(v value.Value, expr string) ([]value.Value, error) {
	p, err := Compile(expr)
	if err != nil {
		return nil, err
	}
	return p.Select(v)
}

// First returns the first node matched by expr.
func First(v value.Value, expr string) (value.Value, bool, error) {
	nodes, err := Select(v, expr)
	if err != nil || len(nodes) == 0 {
		return value.Value{}, false, err
	}
	return nodes[0], true, nil
}
