package parsec

import "sync"

// Parser turns a State into a Result. Parsers are pure: running the same
// parser on the same State always yields the same Result.
type Parser[T any] func(State) Result[T]

// Parse runs p on a fresh buffer holding text, starting at offset 0.
func Parse[T any](p Parser[T], text string) Result[T] {
	return p(NewState(text))
}

// Map applies f to the value of a successful parse.
func Map[A, B any](p Parser[A], f func(A) B) Parser[B] {
	return func(s State) Result[B] {
		r := p(s)
		if !r.ok {
			return failed[B](r)
		}
		return Success(r.state, f(r.value))
	}
}

// Pure succeeds with x without consuming input.
func Pure[T any](x T) Parser[T] {
	return func(s State) Result[T] {
		return Success(s, x)
	}
}

// And runs pa and then pb from where pa stopped, combining both values with f.
// The first failure is returned as is; nothing about pa survives a failure
// of pb.
func And[A, B, C any](pa Parser[A], pb Parser[B], f func(A, B) C) Parser[C] {
	return func(s State) Result[C] {
		ra := pa(s)
		if !ra.ok {
			return failed[C](ra)
		}
		rb := pb(ra.state)
		if !rb.ok {
			return failed[C](rb)
		}
		return Success(rb.state, f(ra.value, rb.value))
	}
}

// Left runs pa then pb and keeps the value of pa.
func Left[A, B any](pa Parser[A], pb Parser[B]) Parser[A] {
	return And(pa, pb, func(a A, _ B) A { return a })
}

// Right runs pa then pb and keeps the value of pb.
func Right[A, B any](pa Parser[A], pb Parser[B]) Parser[B] {
	return And(pa, pb, func(_ A, b B) B { return b })
}

// Choice tries each alternative from the same starting state, in order, and
// returns the first success. Input consumed by a failed alternative is
// discarded. When every alternative fails the failure of the last one is
// returned unchanged; earlier messages are dropped.
func Choice[T any](first Parser[T], rest ...Parser[T]) Parser[T] {
	return func(s State) Result[T] {
		r := first(s)
		for _, p := range rest {
			if r.ok {
				return r
			}
			r = p(s)
		}
		return r
	}
}

// ChoiceAll behaves like Choice on success. On total failure it reports the
// messages of every alternative, in order, at the position of the last one.
func ChoiceAll[T any](first Parser[T], rest ...Parser[T]) Parser[T] {
	return func(s State) Result[T] {
		r := first(s)
		if r.ok {
			return r
		}
		msgs := append([]string(nil), r.errors...)
		for _, p := range rest {
			r = p(s)
			if r.ok {
				return r
			}
			msgs = append(msgs, r.errors...)
		}
		return Failure[T](r.state, msgs...)
	}
}

// Many applies p zero or more times and never fails. It stops at the first
// failure of p, keeping the state from before that attempt.
func Many[T any](p Parser[T]) Parser[[]T] {
	return func(s State) Result[[]T] {
		values := []T{}
		for {
			r := p(s)
			if !r.ok {
				return Success(s, values)
			}
			// A success that consumes nothing would repeat forever.
			if r.state.pos == s.pos {
				values = append(values, r.value)
				return Success(s, values)
			}
			values = append(values, r.value)
			s = r.state
		}
	}
}

// Some applies p one or more times.
func Some[T any](p Parser[T]) Parser[[]T] {
	return And(p, Many(p), func(x T, xs []T) []T {
		return append([]T{x}, xs...)
	})
}

// Lazy defers building a parser until it is first run. It makes recursive
// grammars possible: a rule can refer to itself through Lazy without
// recursing at construction time. The built parser is cached.
func Lazy[T any](build func() Parser[T]) Parser[T] {
	get := sync.OnceValue(build)
	return func(s State) Result[T] {
		return get()(s)
	}
}

// Between parses opening, p and closing, keeping the value of p.
func Between[A, B, C any](opening Parser[A], closing Parser[B], p Parser[C]) Parser[C] {
	return Right(opening, Left(p, closing))
}

// Trim skips whitespace around p.
func Trim[T any](p Parser[T]) Parser[T] {
	return Right(Spaces(), Left(p, Spaces()))
}

// Label replaces the messages of a failure of p with msgs.
func Label[T any](p Parser[T], msgs ...string) Parser[T] {
	return func(s State) Result[T] {
		r := p(s)
		if r.ok {
			return r
		}
		return Failure[T](r.state, msgs...)
	}
}
