// Package types contains the request and response shapes shared across layers.
package types

import "strconv"

// MaxNumber is the largest input the service accepts (10^12).
const MaxNumber int64 = 1_000_000_000_000

// PrimeCheckRequest is the POST /prime body. Number is a pointer so a missing
// field can be told apart from zero.
type PrimeCheckRequest struct {
	Number *int64 `json:"number" validate:"required,min=0,max=1000000000000"`
}

// PrimeCheckResponse is the successful result of a check.
type PrimeCheckResponse struct {
	Number  int64  `json:"number"`
	IsPrime bool   `json:"is_prime"`
	Message string `json:"message"`
}

// ErrorResponse is the body of every 4xx/5xx response.
type ErrorResponse struct {
	Error   string              `json:"error"`
	Message string              `json:"message"`
	Details map[string][]string `json:"details,omitempty"`
}

// NewPrimeCheckResponse assembles the response for n and its verdict.
func NewPrimeCheckResponse(n int64, isPrime bool) PrimeCheckResponse {
	phrase := " is not a prime number"
	if isPrime {
		phrase = " is a prime number"
	}
	return PrimeCheckResponse{
		Number:  n,
		IsPrime: isPrime,
		Message: strconv.FormatInt(n, 10) + phrase,
	}
}
