package codec

import (
	"encoding/json"
	"slices"
)

// EncodeReversedHex encodes b as hex after reversing its byte order. b is
// left untouched.
func EncodeReversedHex(b []byte, c HexCase) string {
	reversed := slices.Clone(b)
	slices.Reverse(reversed)

	return EncodeHex(reversed, c)
}

// DecodeReversedHex decodes s, reverses the decoded bytes and stores them
// in dst. It fails unless s encodes exactly len(dst) bytes.
func DecodeReversedHex(s string, dst []byte) error {
	if err := DecodeFixedHex(s, dst); err != nil {
		return err
	}
	slices.Reverse(dst)

	return nil
}

// ReversedHex32 is a 32 byte value stored in internal byte order but
// reported on the wire in reversed (display) order, the way the node prints
// hashes. It is used for raw commitment fields that are not hashes of a
// known kind.
type ReversedHex32 [32]byte

// String returns the reversed lower case hex encoding.
func (h ReversedHex32) String() string {
	return EncodeReversedHex(h[:], Lower)
}

// MarshalJSON encodes the value as a reversed hex JSON string.
func (h ReversedHex32) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

// UnmarshalJSON decodes a reversed hex JSON string of exactly 32 bytes.
func (h *ReversedHex32) UnmarshalJSON(data []byte) error {
	return unmarshalReversedHex(data, h[:])
}

func unmarshalReversedHex(data []byte, dst []byte) error {
	s, err := unquote(data)
	if err != nil {
		return err
	}

	return DecodeReversedHex(s, dst)
}
