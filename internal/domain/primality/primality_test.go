package primality_test

import (
	"testing"

	"github.com/okian/primecheck/internal/domain/primality"
	. "github.com/smartystreets/goconvey/convey"
)

// sieve returns composite[i] == false for every prime i <= limit.
func sieve(limit int) []bool {
	composite := make([]bool, limit+1)
	composite[0], composite[1] = true, true
	for i := 2; i*i <= limit; i++ {
		if composite[i] {
			continue
		}
		for j := i * i; j <= limit; j += i {
			composite[j] = true
		}
	}
	return composite
}

func TestIsPrime_SmallValues(t *testing.T) {
	Convey("Given the first few integers", t, func() {
		So(primality.IsPrime(0), ShouldBeFalse)
		So(primality.IsPrime(1), ShouldBeFalse)
		So(primality.IsPrime(2), ShouldBeTrue)
		So(primality.IsPrime(3), ShouldBeTrue)
		So(primality.IsPrime(4), ShouldBeFalse)
		So(primality.IsPrime(9), ShouldBeFalse)
		So(primality.IsPrime(25), ShouldBeFalse)
		So(primality.IsPrime(97), ShouldBeTrue)
	})

	Convey("Given negative integers", t, func() {
		So(primality.IsPrime(-1), ShouldBeFalse)
		So(primality.IsPrime(-7), ShouldBeFalse)
	})
}

func TestIsPrime_MatchesSieve(t *testing.T) {
	limit := 10_000_000
	if testing.Short() {
		limit = 1_000_000
	}

	Convey("Given a reference sieve", t, func() {
		composite := sieve(limit)

		Convey("Then every verdict up to the limit should agree with it", func() {
			var mismatches []int
			for n := 0; n <= limit; n++ {
				if primality.IsPrime(int64(n)) == composite[n] {
					mismatches = append(mismatches, n)
					if len(mismatches) > 10 {
						break
					}
				}
			}
			So(mismatches, ShouldBeEmpty)
		})
	})
}

func TestIsPrime_LargeValues(t *testing.T) {
	Convey("Given known primes and composites near the upper bound", t, func() {
		Convey("Then known primes should be classified as prime", func() {
			for _, p := range []int64{999_983, 1_000_003, 999_999_937, 1_000_000_007, 2_147_483_647, 999_999_999_989} {
				So(primality.IsPrime(p), ShouldBeTrue)
			}
		})

		Convey("Then the bound itself should be composite", func() {
			So(primality.IsPrime(1_000_000_000_000), ShouldBeFalse)
		})

		Convey("Then the square of a large prime should be composite", func() {
			// 999983^2: the only odd divisor sits exactly on the square-root bound.
			So(primality.IsPrime(999_966_000_289), ShouldBeFalse)
		})

		Convey("Then a semiprime with two large factors should be composite", func() {
			// 999979 * 999983
			So(primality.IsPrime(999_962_000_357), ShouldBeFalse)
		})

		Convey("Then a repunit of nines should be composite", func() {
			So(primality.IsPrime(999_999_999_999), ShouldBeFalse)
		})
	})
}

func TestISqrt(t *testing.T) {
	Convey("Given integer square roots", t, func() {
		cases := map[int64]int64{
			-5:                0,
			0:                 0,
			1:                 1,
			2:                 1,
			3:                 1,
			4:                 2,
			8:                 2,
			9:                 3,
			10:                3,
			999_966_000_288:   999_982,
			999_966_000_289:   999_983,
			999_999_999_999:   999_999,
			1_000_000_000_000: 1_000_000,
		}
		for n, want := range cases {
			So(primality.ISqrt(n), ShouldEqual, want)
		}

		Convey("Then odd prime squares should sit exactly on the trial bound", func() {
			for _, p := range []int64{3, 5, 7, 11, 101, 9_973, 999_983} {
				So(primality.ISqrt(p*p), ShouldEqual, p)
				So(primality.ISqrt(p*p-1), ShouldEqual, p-1)
				So(primality.IsPrime(p*p), ShouldBeFalse)
			}
		})
	})
}

func BenchmarkIsPrime_WorstCase(b *testing.B) {
	for i := 0; i < b.N; i++ {
		primality.IsPrime(999_999_999_989)
	}
}
