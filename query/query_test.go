package query

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dhamidi/parsec/grammar"
	"github.com/dhamidi/parsec/value"
)

const doc = `{
  "store": {
    "book": [
      {"title": "A", "price": 8.5, "tags": ["x"]},
      {"title": "B", "price": 12, "tags": []}
    ],
    "open": true
  },
  "note": null
}`

func mustParse(t *testing.T, text string) value.Value {
	t.Helper()
	v, err := grammar.Parse(text)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return v
}

func TestSelect(t *testing.T) {
	t.Parallel()

	v := mustParse(t, doc)
	tests := []struct {
		name string
		expr string
		want []value.Value
	}{
		{name: "root", expr: "$", want: []value.Value{v}},
		{name: "member", expr: "$.store.open", want: []value.Value{value.Bool(true)}},
		{name: "null_member", expr: "$.note", want: []value.Value{value.Null()}},
		{name: "index", expr: "$.store.book[1].title", want: []value.Value{value.String("B")}},
		{
			name: "wildcard",
			expr: "$.store.book[*].price",
			want: []value.Value{value.Number(8.5), value.Number(12)},
		},
		{
			name: "filter",
			expr: "$.store.book[?@.price < 10].title",
			want: []value.Value{value.String("A")},
		},
		{
			name: "descendant",
			expr: "$..tags",
			want: []value.Value{value.Array(value.String("x")), value.Array()},
		},
		{name: "missing", expr: "$.nope", want: []value.Value{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Select(v, tt.expr)
			if err != nil {
				t.Fatalf("Select(%q): %v", tt.expr, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Select(%q) mismatch (-want +got):\n%s", tt.expr, diff)
			}
		})
	}
}

func TestInvalidPath(t *testing.T) {
	t.Parallel()

	for _, expr := range []string{"", "store", "$[", "$.a[?"} {
		if _, err := Select(value.Null(), expr); !errors.Is(err, ErrInvalidPath) {
			t.Errorf("Select(%q): expected ErrInvalidPath, got %v", expr, err)
		}
	}
}

func TestFirst(t *testing.T) {
	t.Parallel()

	v := mustParse(t, doc)
	got, ok, err := First(v, "$.store.book[*].title")
	if err != nil || !ok {
		t.Fatalf("First: (%v, %v)", ok, err)
	}
	if s, _ := got.AsString(); s != "A" {
		t.Errorf("expected A, got %#v", got)
	}
	if _, ok, err := First(v, "$.absent"); ok || err != nil {
		t.Errorf("expected no match, got (%v, %v)", ok, err)
	}
}

func TestCompileReuse(t *testing.T) {
	t.Parallel()

	p, err := Compile("$[0]")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	for i, text := range []string{"[1]", `["a", "b"]`} {
		nodes, err := p.Select(mustParse(t, text))
		if err != nil || len(nodes) != 1 {
			t.Errorf("case %d: got %v, %v", i, nodes, err)
		}
	}
	if p.String() != "$[0]" {
		t.Errorf("unexpected String %q", p.String())
	}
}
