package codec

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/blockchain"
)

// compactTargetHexLen is the number of hex digits of an encoded compact
// target.
const compactTargetHexLen = 8

// CompactTarget is the 32 bit packed encoding of a proof of work target,
// the header's nBits field. On the wire it is 8 unprefixed hex digits of the
// big endian value, e.g. "1d00ffff".
type CompactTarget uint32

// ParseCompactTarget decodes exactly 8 hex digits into a compact target.
// Upper case digits are accepted; a 0x prefix is not.
func ParseCompactTarget(s string) (CompactTarget, error) {
	if len(s) != compactTargetHexLen {
		// Still prefer the more specific hex error where there is one.
		if _, err := DecodeHex(s); err != nil {
			return 0, err
		}

		return 0, NewDecodeError(
			"", s, fmt.Errorf("%w: want %d hex digits, got %d",
				ErrLengthMismatch, compactTargetHexLen, len(s)),
		)
	}

	var b [4]byte
	if err := DecodeFixedHex(s, b[:]); err != nil {
		return 0, err
	}

	return CompactTarget(binary.BigEndian.Uint32(b[:])), nil
}

// String returns the 8 digit lower case hex encoding.
func (c CompactTarget) String() string {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(c))

	return EncodeHex(b[:], Lower)
}

// Target expands the compact encoding into the 256 bit target. A block hash
// must be less than or equal to it.
func (c CompactTarget) Target() *big.Int {
	return blockchain.CompactToBig(uint32(c))
}

// Work returns the expected number of hashes needed to find a block at this
// target, 2^256 / (target + 1).
func (c CompactTarget) Work() *big.Int {
	return blockchain.CalcWork(uint32(c))
}

// CompactTargetFromBig packs a 256 bit target into its compact encoding.
// Precision beyond the 23 bit mantissa is truncated, as in the node.
func CompactTargetFromBig(target *big.Int) CompactTarget {
	return CompactTarget(blockchain.BigToCompact(target))
}

// MarshalJSON encodes the target as an 8 digit hex JSON string.
func (c CompactTarget) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes an 8 digit hex JSON string.
func (c *CompactTarget) UnmarshalJSON(data []byte) error {
	s, err := unquote(data)
	if err != nil {
		return err
	}

	target, err := ParseCompactTarget(s)
	if err != nil {
		return err
	}
	*c = target

	return nil
}
