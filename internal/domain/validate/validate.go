// Package validate turns raw request input into a bounded, validated number.
//
// Both entry points share one set of constraints, declared as struct tags on
// types.PrimeCheckRequest and enforced by go-playground/validator. The Source
// decides how a violated constraint is reported: the query path returns a
// dedicated category per failure, the body path returns ValidationError with
// field-level details.
package validate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/okian/primecheck/internal/domain/types"
)

// Source identifies the entry point a number arrived through.
type Source string

// Entry points.
const (
	SourceQuery Source = "query"
	SourceBody  Source = "body"
)

const numberField = "number"

// trailingZeroFraction matches "7.0", "7.000 " and the like, which count as integers.
var trailingZeroFraction = regexp.MustCompile(`\.0*\s*$`)

// integerText is a decimal literal with an optional sign and single
// underscores between digit groups, as in "1_000".
var integerText = regexp.MustCompile(`^[+-]?[0-9]+(_[0-9]+)*$`)

// maxPlainFloat is the magnitude from which a float is rendered in exponent
// form ("1e+16"), which no longer reads as an integer.
const maxPlainFloat = 1e16

var structValidator = newStructValidator()

func newStructValidator() *validator.Validate {
	v := validator.New()
	// Report json names so details are keyed by "number", not "Number".
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Check enforces the request constraints and maps any violation to the
// category expected by src.
func Check(req types.PrimeCheckRequest, src Source) (int64, error) {
	err := structValidator.Struct(req)
	if err == nil {
		return *req.Number, nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return 0, fmt.Errorf("validate request: %w", err)
	}

	if src == SourceQuery {
		switch fieldErrs[0].Tag() {
		case "required":
			return 0, newError(CategoryMissingParameter, msgMissingParameter)
		case "min":
			return 0, newError(CategoryNegativeInput, msgNegativeInput)
		default:
			return 0, newError(CategoryTooLarge, msgTooLarge)
		}
	}

	details := make(map[string][]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[fe.Field()] = append(details[fe.Field()], detailFor(fe))
	}
	return 0, &Error{Category: CategoryValidationError, Message: msgValidationError, Details: details}
}

func detailFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return detailRequired
	case "min":
		return detailMin
	case "max":
		return detailMax
	default:
		return detailNotInteger
	}
}

// Query validates the raw value of the "number" query parameter.
//
// Only an empty value counts as missing. A blank value such as " " was
// supplied and fails as InvalidFormat.
func Query(raw string) (int64, error) {
	if raw == "" {
		return 0, newError(CategoryMissingParameter, msgMissingParameter)
	}

	n, ok := parseIntText(raw)
	if !ok {
		return 0, newError(CategoryInvalidFormat, fmt.Sprintf(msgInvalidFormat, raw))
	}
	return Check(types.PrimeCheckRequest{Number: &n}, SourceQuery)
}

// Body validates a JSON request body of the form {"number": <int>}. At most
// limit bytes are read.
func Body(r io.Reader, limit int64) (int64, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return 0, fmt.Errorf("read body: %w", err)
	}
	if int64(len(data)) > limit {
		return 0, fieldError("body", fmt.Sprintf(detailTooLarge, limit))
	}

	fields := map[string]json.RawMessage{}
	if len(bytes.TrimSpace(data)) > 0 {
		var probe any
		if err := json.Unmarshal(data, &probe); err != nil {
			return 0, fieldError("body", fmt.Sprintf(detailMalformed, err))
		}
		if err := json.Unmarshal(data, &fields); err != nil {
			return 0, fieldError("body", detailNotObject)
		}
	}

	var req types.PrimeCheckRequest
	if raw, ok := fields[numberField]; ok {
		if string(bytes.TrimSpace(raw)) == "null" {
			return 0, fieldError(numberField, detailNull)
		}
		n, ok := parseInteger(raw)
		if !ok {
			return 0, fieldError(numberField, detailNotInteger)
		}
		req.Number = &n
	}
	return Check(req, SourceBody)
}

// parseInteger accepts JSON integers, integral floats below 1e16 and numeric
// strings. Out-of-range integer literals are clamped to the int64 limits so
// Check reports them as bounds violations.
func parseInteger(raw json.RawMessage) (int64, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0, false
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false
		}
		s = trailingZeroFraction.ReplaceAllString(strings.TrimSpace(s), "")
		return parseIntText(s)
	}

	if raw[0] != '-' && (raw[0] < '0' || raw[0] > '9') {
		// true, false, objects and arrays.
		return 0, false
	}
	text := string(raw)
	if n, ok := parseIntText(text); ok {
		return n, true
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	// ErrRange leaves f at ±Inf, which the magnitude check rejects.
	if math.IsNaN(f) || math.Abs(f) >= maxPlainFloat || f != math.Trunc(f) {
		return 0, false
	}
	return int64(f), true
}

// parseIntText parses a decimal integer, ignoring surrounding whitespace.
// On overflow the result is clamped to MinInt64/MaxInt64, which Check
// rejects by sign.
func parseIntText(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if !integerText.MatchString(s) {
		return 0, false
	}
	n, err := strconv.ParseInt(strings.ReplaceAll(s, "_", ""), 10, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return n, true
}
