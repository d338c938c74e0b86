// Package codec converts the loosely typed scalar values found in a node's
// JSON-RPC responses, hex strings in various byte orders, compact targets and
// decimal BTC amounts, into domain types and back.
package codec

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrOddLength is returned when a hex string has an odd number of
	// characters.
	ErrOddLength = errors.New("odd length hex string")

	// ErrInvalidHex is returned when a hex string contains a character
	// outside of [0-9a-fA-F].
	ErrInvalidHex = errors.New("invalid hex character")

	// ErrLengthMismatch is returned when decoded bytes do not match the
	// width of the fixed size target.
	ErrLengthMismatch = errors.New("length mismatch")

	// ErrOutOfRange is returned when a numeric value does not fit the
	// domain type.
	ErrOutOfRange = errors.New("value out of range")

	// ErrUnknownValue is returned when a value does not match the single
	// literal a witness or constant field accepts.
	ErrUnknownValue = errors.New("unknown value")

	// ErrUnknownVariant is returned when a tagged record carries a
	// discriminant outside of its closed set.
	ErrUnknownVariant = errors.New("unknown variant")

	// ErrMissingField is returned when a required field is absent.
	ErrMissingField = errors.New("missing field")

	// ErrUnexpectedField is returned when a record carries a field that
	// does not belong to its declared shape.
	ErrUnexpectedField = errors.New("unexpected field")

	// ErrDuplicateKey is returned when an object carries the same key, or
	// two aliases of the same field, more than once.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrTooManyDecimals is returned when an amount carries more
	// fractional digits than the smallest unit supports.
	ErrTooManyDecimals = errors.New("too many decimal places")

	// ErrNegativeZero is returned for amounts such as "-0.0" whose sign
	// is ambiguous.
	ErrNegativeZero = errors.New("negative zero")

	// ErrInvalidNumber is returned when a decimal string is not a well
	// formed number.
	ErrInvalidNumber = errors.New("invalid number")

	// ErrTrailingBytes is returned when a consensus encoded value does not
	// consume all of its input.
	ErrTrailingBytes = errors.New("trailing bytes")

	// ErrInvalidType is returned when a JSON value has the wrong kind,
	// e.g. a number where a string is expected.
	ErrInvalidType = errors.New("invalid JSON type")
)

// DecodeError describes a wire value that could not be converted into its
// domain type. Field is a dotted path to the offending value, built up as
// decoding descends into nested objects and arrays.
type DecodeError struct {
	// Field is the path of the field that failed to decode. It may be
	// empty when the failing value is the top level response.
	Field string

	// Value is the raw wire value, truncated for display.
	Value string

	// Err is the underlying cause, usually one of the sentinel errors of
	// this package.
	Err error
}

// maxValueLen is the maximum number of characters of the offending value
// that are kept in a DecodeError.
const maxValueLen = 80

// NewDecodeError creates a DecodeError for the given field and raw value.
func NewDecodeError(field, value string, err error) *DecodeError {
	if len(value) > maxValueLen {
		value = value[:maxValueLen] + "..."
	}

	return &DecodeError{
		Field: field,
		Value: value,
		Err:   err,
	}
}

// Error returns a human readable description of the decode failure.
func (e *DecodeError) Error() string {
	var b strings.Builder
	b.WriteString("decode")
	if e.Field != "" {
		fmt.Fprintf(&b, " field %q", e.Field)
	}
	if e.Value != "" {
		fmt.Fprintf(&b, " value %q", e.Value)
	}
	fmt.Fprintf(&b, ": %v", e.Err)

	return b.String()
}

// Unwrap returns the underlying cause.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// WithField prefixes the field path of err with field if err is, or wraps,
// a DecodeError. Any other error is turned into a DecodeError for field.
// A nil error stays nil.
func WithField(field string, err error) error {
	if err == nil {
		return nil
	}

	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		return &DecodeError{Field: field, Err: classifyJSONError(err)}
	}

	path := field
	switch {
	case decodeErr.Field == "":
	case strings.HasPrefix(decodeErr.Field, "["):
		path = field + decodeErr.Field
	default:
		path = field + "." + decodeErr.Field
	}

	return &DecodeError{
		Field: path,
		Value: decodeErr.Value,
		Err:   decodeErr.Err,
	}
}

// WithIndex is WithField for an element of an array.
func WithIndex(field string, idx int, err error) error {
	return WithField(fmt.Sprintf("%s[%d]", field, idx), err)
}
