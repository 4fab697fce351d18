package parsec

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAnyChar(t *testing.T) {
	t.Parallel()

	for _, c := range []byte("az{ \n0\"") {
		r := Parse(AnyChar(), string([]byte{c, 'x'}))
		got, ok := r.Value()
		if !ok {
			t.Fatalf("AnyChar on %q failed: %v", c, r.Errors())
		}
		if got != c {
			t.Errorf("expected %q, got %q", c, got)
		}
		if r.State().Offset() != 1 {
			t.Errorf("expected offset 1, got %d", r.State().Offset())
		}
	}
}

func TestAnyCharEmpty(t *testing.T) {
	t.Parallel()

	r := Parse(AnyChar(), "")
	if r.Ok() {
		t.Fatal("expected failure on empty input")
	}
	if diff := cmp.Diff([]string{"end of file"}, r.Errors()); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}
	if _, ok := r.Value(); ok {
		t.Error("Value() of a failure must report false")
	}
}

func TestSatisfyDoesNotRollBack(t *testing.T) {
	t.Parallel()

	r := Parse(Char('a'), "b")
	if r.Ok() {
		t.Fatal("expected failure")
	}
	if diff := cmp.Diff([]string{"unexpect b"}, r.Errors()); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}
	if r.State().Offset() != 1 {
		t.Errorf("expected failure offset 1, got %d", r.State().Offset())
	}
}

func TestSomeOneOf(t *testing.T) {
	t.Parallel()

	r := Parse(Some(OneOf("a")), "aaa")
	got, ok := r.Value()
	if !ok {
		t.Fatalf("unexpected failure: %v", r.Errors())
	}
	if diff := cmp.Diff([]byte{'a', 'a', 'a'}, got); diff != "" {
		t.Errorf("value mismatch (-want +got):\n%s", diff)
	}
	if !r.State().AtEnd() {
		t.Errorf("expected whole input consumed, stopped at %d", r.State().Offset())
	}
}

func TestSomeRequiresOne(t *testing.T) {
	t.Parallel()

	r := Parse(Some(OneOf("a")), "b")
	if r.Ok() {
		t.Fatal("expected failure")
	}
}

func TestManyNoMatch(t *testing.T) {
	t.Parallel()

	r := Parse(Many(Char('x')), "abc")
	got, ok := r.Value()
	if !ok {
		t.Fatalf("Many must not fail: %v", r.Errors())
	}
	if len(got) != 0 {
		t.Errorf("expected empty slice, got %v", got)
	}
	if r.State().Offset() != 0 {
		t.Errorf("expected offset 0, got %d", r.State().Offset())
	}
}

func TestManyZeroWidth(t *testing.T) {
	t.Parallel()

	r := Parse(Many(Pure(1)), "abc")
	got, ok := r.Value()
	if !ok {
		t.Fatalf("unexpected failure: %v", r.Errors())
	}
	if diff := cmp.Diff([]int{1}, got); diff != "" {
		t.Errorf("value mismatch (-want +got):\n%s", diff)
	}
}

func TestIntegerAndDecimal(t *testing.T) {
	t.Parallel()

	intTests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "negative", input: "-25", want: -25},
		{name: "positive", input: "25", want: 25},
		{name: "leading_zero", input: "007", want: 7},
		{name: "bare_minus", input: "-", wantErr: true},
		{name: "double_minus", input: "--1", wantErr: true},
		{name: "plus_sign", input: "+1", wantErr: true},
	}
	for _, tt := range intTests {
		t.Run("integer_"+tt.name, func(t *testing.T) {
			r := Parse(Integer(), tt.input)
			got, err := r.Unwrap()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Integer(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Integer(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}

	decimalTests := []struct {
		name     string
		input    string
		want     float64
		consumed int
	}{
		{name: "fraction", input: "12.25", want: 12.25, consumed: 5},
		{name: "whole", input: "12", want: 12, consumed: 2},
		{name: "negative_fraction", input: "-2.5", want: -1.5, consumed: 4},
		{name: "negative_zero_whole", input: "-0.5", want: 0.5, consumed: 4},
		{name: "negative_whole", input: "-3", want: -3, consumed: 2},
		{name: "dangling_dot", input: "3.", want: 3, consumed: 1},
		{name: "no_exponent", input: "1e5", want: 1, consumed: 1},
	}
	for _, tt := range decimalTests {
		t.Run("decimal_"+tt.name, func(t *testing.T) {
			r := Parse(Decimal(), tt.input)
			got, err := r.Unwrap()
			if err != nil {
				t.Fatalf("Decimal(%q) failed: %v", tt.input, err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Decimal(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if r.State().Offset() != tt.consumed {
				t.Errorf("Decimal(%q) consumed %d, want %d", tt.input, r.State().Offset(), tt.consumed)
			}
		})
	}
}

func TestSignedDecimal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  float64
	}{
		{input: "-2.5", want: -2.5},
		{input: "-0.5", want: -0.5},
		{input: "2.5", want: 2.5},
		{input: "-7", want: -7},
	}
	for _, tt := range tests {
		got, err := Parse(SignedDecimal(), tt.input).Unwrap()
		if err != nil {
			t.Fatalf("SignedDecimal(%q) failed: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("SignedDecimal(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLiteral(t *testing.T) {
	t.Parallel()

	if got, err := Parse(Literal("null"), "null!").Unwrap(); err != nil || got != "null" {
		t.Fatalf("Literal(null) = (%q, %v)", got, err)
	}

	r := Parse(Literal(""), "abc")
	if !r.Ok() || r.State().Offset() != 0 {
		t.Errorf("empty literal must succeed without consuming, got %v", r)
	}

	r = Parse(Literal("null"), "nul")
	if diff := cmp.Diff([]string{"end of file"}, r.Errors()); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}

	r = Parse(Literal("null"), "nuxl")
	if diff := cmp.Diff([]string{"unexpect x"}, r.Errors()); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestEndOfInput(t *testing.T) {
	t.Parallel()

	if !Parse(EndOfInput(), "").Ok() {
		t.Error("expected success on empty input")
	}
	r := Parse(Right(Char('a'), EndOfInput()), "ab")
	if diff := cmp.Diff([]string{"expect end of file"}, r.Errors()); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestChoiceBacktracksFully(t *testing.T) {
	t.Parallel()

	// p1 consumes "abc" and then fails on the fourth byte.
	p1 := Literal("abcd")
	p2 := Literal("abcx")

	r := Parse(Choice(p1, p2), "abcx")
	got, err := r.Unwrap()
	if err != nil {
		t.Fatalf("unexpected failure: %v", err)
	}
	if got != "abcx" {
		t.Errorf("expected abcx, got %q", got)
	}
	if r.State().Offset() != 4 {
		t.Errorf("expected offset 4, got %d", r.State().Offset())
	}
}

func TestChoiceKeepsLastFailure(t *testing.T) {
	t.Parallel()

	r := Parse(Choice(Literal("a"), Literal("bb"), Literal("c")), "bx")
	if diff := cmp.Diff([]string{"unexpect b"}, r.Errors()); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}

	r = Parse(ChoiceAll(Literal("a"), Literal("bb"), Literal("c")), "bx")
	want := []string{"unexpect b", "unexpect x", "unexpect b"}
	if diff := cmp.Diff(want, r.Errors()); diff != "" {
		t.Errorf("accumulated errors mismatch (-want +got):\n%s", diff)
	}
}

func TestChoiceFirstSuccessWins(t *testing.T) {
	t.Parallel()

	r := Parse(Choice(Literal("a"), Literal("ab")), "ab")
	got, _ := r.Value()
	if got != "a" || r.State().Offset() != 1 {
		t.Errorf("expected first alternative to win, got %q at %d", got, r.State().Offset())
	}
}

func TestAndPropagatesSecondFailure(t *testing.T) {
	t.Parallel()

	p := And(Char('a'), Char('b'), func(a, b byte) string { return string([]byte{a, b}) })
	r := Parse(p, "ac")
	if diff := cmp.Diff([]string{"unexpect c"}, r.Errors()); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}
	r = Parse(p, "xb")
	if diff := cmp.Diff([]string{"unexpect x"}, r.Errors()); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestBetweenAndTrim(t *testing.T) {
	t.Parallel()

	p := Between(Char('('), Char(')'), Trim(Natural()))
	got, err := Parse(p, "( 42\t\n)").Unwrap()
	if err != nil {
		t.Fatalf("unexpected failure: %v", err)
	}
	if got != 42 {
		t.Errorf("expected 42, got %d", got)
	}
}

func TestLazyRecursion(t *testing.T) {
	t.Parallel()

	// nested = '(' nested ')' | ""
	var nested func() Parser[int]
	nested = func() Parser[int] {
		return Choice(
			Map(Between(Char('('), Char(')'), Lazy(nested)), func(n int) int { return n + 1 }),
			Pure(0),
		)
	}

	got, err := Parse(Left(nested(), EndOfInput()), "((()))").Unwrap()
	if err != nil {
		t.Fatalf("unexpected failure: %v", err)
	}
	if got != 3 {
		t.Errorf("expected depth 3, got %d", got)
	}
}

func TestResultEquality(t *testing.T) {
	t.Parallel()

	a := Parse(Natural(), "12")
	b := Parse(Left(Natural(), Spaces()), "12   ")
	if !Equal(a, b) {
		t.Error("results with equal values must be equal regardless of position")
	}
	if Equal(a, Parse(Natural(), "13")) {
		t.Error("results with different values must differ")
	}
	if Equal(a, Parse(Natural(), "x")) {
		t.Error("success must not equal failure")
	}
	if !Equal(Parse(Natural(), "x"), Parse(Natural(), "x1")) {
		t.Error("failures with equal messages must be equal")
	}
	if !EqualFunc(Parse(Some(Digit()), "12"), Parse(Some(Digit()), "12"), func(a, b []int) bool { return slices.Equal(a, b) }) {
		t.Error("EqualFunc must compare slice values")
	}
}

func TestParseError(t *testing.T) {
	t.Parallel()

	_, err := Parse(Right(Literal("ab\nc"), Char('d')), "ab\ncx").Unwrap()
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrSyntax) {
		t.Errorf("expected ErrSyntax, got %v", err)
	}
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if perr.Position.Line != 2 || perr.Position.Column != 3 {
		t.Errorf("expected 2:3, got %s", perr.Position)
	}
	if got := err.Error(); got != "2:3: unexpect x" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestLabel(t *testing.T) {
	t.Parallel()

	r := Parse(Label(Digit(), "digit"), "x")
	if diff := cmp.Diff([]string{"digit"}, r.Errors()); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestStatePosition(t *testing.T) {
	t.Parallel()

	s := NewState("ab\ncd\n")
	tests := []struct {
		offset int
		line   int
		column int
	}{
		{0, 1, 1},
		{2, 1, 3},
		{3, 2, 1},
		{5, 2, 3},
		{6, 3, 1},
	}
	for _, tt := range tests {
		p := s.At(tt.offset).Position()
		if p.Line != tt.line || p.Column != tt.column {
			t.Errorf("offset %d: expected %d:%d, got %s", tt.offset, tt.line, tt.column, p)
		}
	}
}
