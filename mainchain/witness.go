package mainchain

import (
	"encoding/json"
	"fmt"

	"github.com/torkelrogstad/bip300301/codec"
)

// The witness types below each stand for exactly one literal parameter
// value. They encode to that literal and refuse to decode from anything
// else, so the type of a witness alone determines what a call returns.

// U8Zero is the literal 0.
type U8Zero struct{}

// U8One is the literal 1.
type U8One struct{}

// U8Two is the literal 2.
type U8Two struct{}

// BoolFalse is the literal false.
type BoolFalse struct{}

// BoolTrue is the literal true.
type BoolTrue struct{}

// Value returns the literal.
func (U8Zero) Value() uint8 { return 0 }

// Value returns the literal.
func (U8One) Value() uint8 { return 1 }

// Value returns the literal.
func (U8Two) Value() uint8 { return 2 }

// Value returns the literal.
func (BoolFalse) Value() bool { return false }

// Value returns the literal.
func (BoolTrue) Value() bool { return true }

// MarshalJSON encodes the witness as 0.
func (U8Zero) MarshalJSON() ([]byte, error) { return []byte("0"), nil }

// MarshalJSON encodes the witness as 1.
func (U8One) MarshalJSON() ([]byte, error) { return []byte("1"), nil }

// MarshalJSON encodes the witness as 2.
func (U8Two) MarshalJSON() ([]byte, error) { return []byte("2"), nil }

// MarshalJSON encodes the witness as false.
func (BoolFalse) MarshalJSON() ([]byte, error) { return []byte("false"), nil }

// MarshalJSON encodes the witness as true.
func (BoolTrue) MarshalJSON() ([]byte, error) { return []byte("true"), nil }

// UnmarshalJSON accepts only the literal 0.
func (*U8Zero) UnmarshalJSON(data []byte) error {
	return codec.ExpectLiteral(data, uint8(0))
}

// UnmarshalJSON accepts only the literal 1.
func (*U8One) UnmarshalJSON(data []byte) error {
	return codec.ExpectLiteral(data, uint8(1))
}

// UnmarshalJSON accepts only the literal 2.
func (*U8Two) UnmarshalJSON(data []byte) error {
	return codec.ExpectLiteral(data, uint8(2))
}

// UnmarshalJSON accepts only the literal false.
func (*BoolFalse) UnmarshalJSON(data []byte) error {
	return codec.ExpectLiteral(data, false)
}

// UnmarshalJSON accepts only the literal true.
func (*BoolTrue) UnmarshalJSON(data []byte) error {
	return codec.ExpectLiteral(data, true)
}

// RawMempoolIDs selects the plain txid list from getrawmempool.
type RawMempoolIDs struct {
	Verbose         BoolFalse
	MempoolSequence BoolFalse
}

// RawMempoolIDsWithSequence selects the txid list together with the mempool
// sequence number.
type RawMempoolIDsWithSequence struct {
	Verbose         BoolFalse
	MempoolSequence BoolTrue
}

// RawMempoolDetailed selects the txid to entry mapping.
type RawMempoolDetailed struct {
	Verbose         BoolTrue
	MempoolSequence BoolFalse
}

// params returns the two positional getrawmempool parameters.
func (p RawMempoolIDs) params() []any {
	return []any{p.Verbose, p.MempoolSequence}
}

// params returns the two positional getrawmempool parameters.
func (p RawMempoolIDsWithSequence) params() []any {
	return []any{p.Verbose, p.MempoolSequence}
}

// params returns the two positional getrawmempool parameters.
func (p RawMempoolDetailed) params() []any {
	return []any{p.Verbose, p.MempoolSequence}
}

// MarshalJSON encodes the parameter list.
func (p RawMempoolIDs) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.params())
}

// MarshalJSON encodes the parameter list.
func (p RawMempoolIDsWithSequence) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.params())
}

// MarshalJSON encodes the parameter list.
func (p RawMempoolDetailed) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.params())
}

// UnmarshalJSON decodes the parameter list [false, false].
func (p *RawMempoolIDs) UnmarshalJSON(data []byte) error {
	return unmarshalWitnessPair(data, &p.Verbose, &p.MempoolSequence)
}

// UnmarshalJSON decodes the parameter list [false, true].
func (p *RawMempoolIDsWithSequence) UnmarshalJSON(data []byte) error {
	return unmarshalWitnessPair(data, &p.Verbose, &p.MempoolSequence)
}

// UnmarshalJSON decodes the parameter list [true, false].
func (p *RawMempoolDetailed) UnmarshalJSON(data []byte) error {
	return unmarshalWitnessPair(data, &p.Verbose, &p.MempoolSequence)
}

// unmarshalWitnessPair decodes a two element array into the given
// witnesses.
func unmarshalWitnessPair(data []byte, verbose,
	sequence json.Unmarshaler) error {

	var elems []json.RawMessage
	if err := codec.Unmarshal(data, &elems); err != nil {
		return err
	}
	if len(elems) != 2 {
		return codec.NewDecodeError(
			"", string(data), fmt.Errorf("%w: want 2 parameters, "+
				"got %d", codec.ErrLengthMismatch, len(elems)),
		)
	}

	if err := verbose.UnmarshalJSON(elems[0]); err != nil {
		return codec.WithField("verbose", err)
	}
	if err := sequence.UnmarshalJSON(elems[1]); err != nil {
		return codec.WithField("mempool_sequence", err)
	}

	return nil
}
