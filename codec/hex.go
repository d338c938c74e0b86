package codec

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// HexCase selects the letter case used when encoding hex.
type HexCase uint8

const (
	// Lower encodes hex digits a-f in lower case. This is what the node
	// emits and expects.
	Lower HexCase = iota

	// Upper encodes hex digits A-F in upper case.
	Upper
)

// String returns the name of the case.
func (c HexCase) String() string {
	switch c {
	case Lower:
		return "lower"
	case Upper:
		return "upper"
	default:
		return "unknown"
	}
}

// EncodeHex encodes b as a hex string using the given case.
func EncodeHex(b []byte, c HexCase) string {
	s := hex.EncodeToString(b)
	if c == Upper {
		return strings.ToUpper(s)
	}

	return s
}

// DecodeHex decodes a hex string of any even length. Both upper and lower
// case digits are accepted.
func DecodeHex(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, NewDecodeError("", s, ErrOddLength)
	}

	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, NewDecodeError(
			"", s, fmt.Errorf("%w: %v", ErrInvalidHex, err),
		)
	}

	return b, nil
}

// DecodeFixedHex decodes s into dst, failing unless s encodes exactly
// len(dst) bytes.
func DecodeFixedHex(s string, dst []byte) error {
	b, err := DecodeHex(s)
	if err != nil {
		return err
	}

	if len(b) != len(dst) {
		return NewDecodeError(
			"", s, fmt.Errorf("%w: want %d bytes, got %d",
				ErrLengthMismatch, len(dst), len(b)),
		)
	}
	copy(dst, b)

	return nil
}

// unquote extracts the string from a JSON string literal. A null literal
// is rejected rather than read as the empty string.
func unquote(data []byte) (string, error) {
	if IsNull(data) {
		return "", NewDecodeError(
			"", "null", fmt.Errorf("%w: expected string",
				ErrInvalidType),
		)
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", NewDecodeError(
			"", string(data), fmt.Errorf("%w: expected string",
				ErrInvalidType),
		)
	}

	return s, nil
}

// HexBytes is a variable length byte string encoded as lower case hex.
type HexBytes []byte

// String returns the lower case hex encoding.
func (h HexBytes) String() string {
	return EncodeHex(h, Lower)
}

// MarshalJSON encodes the bytes as a hex JSON string.
func (h HexBytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

// UnmarshalJSON decodes a hex JSON string.
func (h *HexBytes) UnmarshalJSON(data []byte) error {
	s, err := unquote(data)
	if err != nil {
		return err
	}

	b, err := DecodeHex(s)
	if err != nil {
		return err
	}
	*h = b

	return nil
}

// Hex4 is a 4 byte array encoded as exactly 8 hex digits.
type Hex4 [4]byte

// String returns the lower case hex encoding.
func (h Hex4) String() string {
	return EncodeHex(h[:], Lower)
}

// MarshalJSON encodes the array as a hex JSON string.
func (h Hex4) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

// UnmarshalJSON decodes a hex JSON string of exactly 4 bytes.
func (h *Hex4) UnmarshalJSON(data []byte) error {
	return unmarshalFixedHex(data, h[:])
}

// Hex8 is an 8 byte array encoded as exactly 16 hex digits.
type Hex8 [8]byte

// String returns the lower case hex encoding.
func (h Hex8) String() string {
	return EncodeHex(h[:], Lower)
}

// MarshalJSON encodes the array as a hex JSON string.
func (h Hex8) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

// UnmarshalJSON decodes a hex JSON string of exactly 8 bytes.
func (h *Hex8) UnmarshalJSON(data []byte) error {
	return unmarshalFixedHex(data, h[:])
}

// Hex20 is a 20 byte array, such as a RIPEMD-160 digest, encoded as plain
// hex in the order it is stored.
type Hex20 [20]byte

// String returns the lower case hex encoding.
func (h Hex20) String() string {
	return EncodeHex(h[:], Lower)
}

// MarshalJSON encodes the array as a hex JSON string.
func (h Hex20) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

// UnmarshalJSON decodes a hex JSON string of exactly 20 bytes.
func (h *Hex20) UnmarshalJSON(data []byte) error {
	return unmarshalFixedHex(data, h[:])
}

// Hex32 is a 32 byte array encoded as plain hex in the order it is stored.
// Unlike the hash types it is not byte reversed.
type Hex32 [32]byte

// String returns the lower case hex encoding.
func (h Hex32) String() string {
	return EncodeHex(h[:], Lower)
}

// MarshalJSON encodes the array as a hex JSON string.
func (h Hex32) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

// UnmarshalJSON decodes a hex JSON string of exactly 32 bytes.
func (h *Hex32) UnmarshalJSON(data []byte) error {
	return unmarshalFixedHex(data, h[:])
}

func unmarshalFixedHex(data []byte, dst []byte) error {
	s, err := unquote(data)
	if err != nil {
		return err
	}

	return DecodeFixedHex(s, dst)
}
