package types_test

import (
	"encoding/json"
	"testing"

	"github.com/okian/primecheck/internal/domain/primality"
	types "github.com/okian/primecheck/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNewPrimeCheckResponse(t *testing.T) {
	Convey("Given a prime verdict", t, func() {
		resp := types.NewPrimeCheckResponse(97, true)

		Convey("Then the message should say it is prime", func() {
			So(resp.Number, ShouldEqual, 97)
			So(resp.IsPrime, ShouldBeTrue)
			So(resp.Message, ShouldEqual, "97 is a prime number")
		})
	})

	Convey("Given a composite verdict", t, func() {
		resp := types.NewPrimeCheckResponse(1_000_000_000_000, false)

		Convey("Then the message should say it is not prime", func() {
			So(resp.IsPrime, ShouldBeFalse)
			So(resp.Message, ShouldEqual, "1000000000000 is not a prime number")
		})
	})

	Convey("Given verdicts from the oracle", t, func() {
		Convey("Then the message should always agree with is_prime", func() {
			for n := int64(0); n < 200; n++ {
				resp := types.NewPrimeCheckResponse(n, primality.IsPrime(n))
				if resp.IsPrime {
					So(resp.Message, ShouldEndWith, " is a prime number")
				} else {
					So(resp.Message, ShouldEndWith, " is not a prime number")
				}
			}
		})
	})
}

func TestResponseJSON(t *testing.T) {
	Convey("Given a success response", t, func() {
		data, err := json.Marshal(types.NewPrimeCheckResponse(2, true))

		Convey("Then it should use snake_case field names", func() {
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, `{"number":2,"is_prime":true,"message":"2 is a prime number"}`)
		})
	})

	Convey("Given an error response without details", t, func() {
		data, err := json.Marshal(types.ErrorResponse{Error: "MissingParameter", Message: "m"})

		Convey("Then details should be omitted", func() {
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, `{"error":"MissingParameter","message":"m"}`)
		})
	})

	Convey("Given an error response with details", t, func() {
		data, err := json.Marshal(types.ErrorResponse{
			Error:   "ValidationError",
			Message: "Invalid input data",
			Details: map[string][]string{"number": {"This field is required."}},
		})

		Convey("Then details should be keyed by field", func() {
			So(err, ShouldBeNil)
			So(string(data), ShouldContainSubstring, `"details":{"number":["This field is required."]}`)
		})
	})
}
