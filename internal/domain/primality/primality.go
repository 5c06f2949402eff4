// Package primality implements the trial-division primality test.
package primality

// IsPrime reports whether n is prime.
//
// Odd candidates are tried up to ISqrt(n), so no floating point is involved.
// For n <= 10^12 the loop runs at most 5*10^5 times.
func IsPrime(n int64) bool {
	if n < 2 {
		return false
	}
	if n%2 == 0 {
		return n == 2
	}
	limit := ISqrt(n)
	for i := int64(3); i <= limit; i += 2 {
		if n%i == 0 {
			return false
		}
	}
	return true
}

// ISqrt returns floor(sqrt(n)) for n >= 0, and 0 for negative n.
func ISqrt(n int64) int64 {
	if n < 2 {
		if n < 0 {
			return 0
		}
		return n
	}
	// Newton iteration on integers; x decreases monotonically to the floor root.
	x := n
	y := x/2 + x&1
	for y < x {
		x = y
		y = (x + n/x) / 2
	}
	return x
}
