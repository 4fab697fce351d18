package ebnf

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const listGrammar = `
list   = "(" [ item { "," item } ] ")" .
item   = word | list .
word   = letter { letter } .
letter = "a" … "z" .
`

func TestRecognize(t *testing.T) {
	t.Parallel()

	g, err := ParseString("list.ebnf", listGrammar)
	if err != nil {
		t.Fatalf("parse grammar: %v", err)
	}
	if err := Verify(g, "list"); err != nil {
		t.Fatalf("verify grammar: %v", err)
	}

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "empty_list", input: "()"},
		{name: "words", input: "(ab,c)"},
		{name: "nested", input: "(a,(b,(c)),d)"},
		{name: "trailing_comma", input: "(a,)", wantErr: true},
		{name: "unclosed", input: "(a", wantErr: true},
		{name: "trailing_garbage", input: "(a)b", wantErr: true},
		{name: "empty_input", input: "", wantErr: true},
	}

	r := NewRecognizer(g, "list")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.Recognize([]byte(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Recognize(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrNoMatch) {
				t.Errorf("expected ErrNoMatch, got %v", err)
			}
		})
	}
}

func TestMatchPrefix(t *testing.T) {
	t.Parallel()

	g, err := ParseString("list.ebnf", listGrammar)
	if err != nil {
		t.Fatalf("parse grammar: %v", err)
	}

	n, ok := NewRecognizer(g, "word").Match([]byte("abc,d"))
	if !ok || n != 3 {
		t.Errorf("expected match of length 3, got (%d, %v)", n, ok)
	}
}

func TestRangeMatchesRunes(t *testing.T) {
	t.Parallel()

	g, err := ParseString("runes.ebnf", `text = { "\x00" … "\U0010FFFF" } .`)
	if err != nil {
		t.Fatalf("parse grammar: %v", err)
	}
	if err := NewRecognizer(g, "text").Recognize([]byte("héllo ✓")); err != nil {
		t.Errorf("expected multi-byte runes to match: %v", err)
	}
}

func TestVerifyReportsMissingProduction(t *testing.T) {
	t.Parallel()

	g, err := ParseString("bad.ebnf", `start = missing .`)
	if err != nil {
		t.Fatalf("parse grammar: %v", err)
	}
	if err := Verify(g, "start"); err == nil {
		t.Error("expected error for missing production")
	}
}

func TestLoadGrammar(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "list.ebnf")
	if err := os.WriteFile(path, []byte(listGrammar), 0o644); err != nil {
		t.Fatalf("write grammar: %v", err)
	}
	g, err := LoadGrammar(path)
	if err != nil {
		t.Fatalf("LoadGrammar: %v", err)
	}
	if _, ok := g["item"]; !ok {
		t.Error("expected production item")
	}

	if _, err := LoadGrammar(filepath.Join(t.TempDir(), "missing.ebnf")); err == nil {
		t.Error("expected error for missing file")
	}
}
