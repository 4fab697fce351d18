package parsec

// Digit matches '0'..'9' and yields its value.
func Digit() Parser[int] {
	return Map(Satisfy(func(c byte) bool { return '0' <= c && c <= '9' }),
		func(c byte) int { return int(c - '0') })
}

// Natural matches one or more digits. Long runs overflow silently.
func Natural() Parser[int] {
	return Map(Some(Digit()), func(ds []int) int {
		n := 0
		for _, d := range ds {
			n = n*10 + d
		}
		return n
	})
}

// Integer matches a Natural with an optional leading minus.
func Integer() Parser[int] {
	return Choice(
		Map(Right(Char('-'), Natural()), func(n int) int { return -n }),
		Natural(),
	)
}

// Decimal matches an Integer optionally followed by '.' and one or more
// fractional digits, and yields the integer plus the fraction. The fraction
// is always added, so "-2.5" is -1.5 and "-0.5" is 0.5. SignedDecimal
// applies the sign to the whole number instead. Exponents are not
// recognized.
func Decimal() Parser[float64] {
	whole := Map(Integer(), func(n int) float64 { return float64(n) })
	return Choice(
		And(whole, Right(Char('.'), fraction()), func(w, f float64) float64 { return w + f }),
		whole,
	)
}

// SignedDecimal is Decimal with the leading minus applied to both the
// integer and the fractional part: "-2.5" is -2.5.
func SignedDecimal() Parser[float64] {
	return Choice(
		Map(Right(Char('-'), unsignedDecimal()), func(x float64) float64 { return -x }),
		unsignedDecimal(),
	)
}

func unsignedDecimal() Parser[float64] {
	whole := Map(Natural(), func(n int) float64 { return float64(n) })
	return Choice(
		And(whole, Right(Char('.'), fraction()), func(w, f float64) float64 { return w + f }),
		whole,
	)
}

// fraction folds digits one at a time: 0.d1 + 0.0d2 + ...
func fraction() Parser[float64] {
	return Map(Some(Digit()), func(ds []int) float64 {
		sum, base := 0.0, 0.1
		for _, d := range ds {
			sum += float64(d) * base
			base /= 10
		}
		return sum
	})
}
