package codec

import (
	"bytes"
	"fmt"
	"io"
)

// ConsensusEncodable is satisfied by pointers to btcd wire types that
// serialize to the Bitcoin consensus encoding, e.g. *wire.MsgBlock,
// *wire.MsgTx and *wire.BlockHeader.
type ConsensusEncodable[T any] interface {
	*T

	Serialize(w io.Writer) error
	Deserialize(r io.Reader) error
}

// EncodeConsensusHex serializes v and encodes the bytes as hex.
func EncodeConsensusHex[T any, P ConsensusEncodable[T]](v P,
	c HexCase) (string, error) {

	var buf bytes.Buffer
	if err := v.Serialize(&buf); err != nil {
		return "", fmt.Errorf("unable to serialize %T: %w", v, err)
	}

	return EncodeHex(buf.Bytes(), c), nil
}

// DecodeConsensusHex decodes a hex string and deserializes it into a new T.
// Input that is not fully consumed is rejected so that encoding the result
// reproduces the input.
func DecodeConsensusHex[T any, P ConsensusEncodable[T]](s string) (*T, error) {
	b, err := DecodeHex(s)
	if err != nil {
		return nil, err
	}

	return DecodeConsensus[T, P](b)
}

// DecodeConsensus deserializes b into a new T, rejecting trailing bytes.
func DecodeConsensus[T any, P ConsensusEncodable[T]](b []byte) (*T, error) {
	var v T
	r := bytes.NewReader(b)
	if err := P(&v).Deserialize(r); err != nil {
		return nil, NewDecodeError(
			"", "", fmt.Errorf("unable to deserialize %T: %w", v,
				err),
		)
	}

	if r.Len() != 0 {
		return nil, NewDecodeError(
			"", "", fmt.Errorf("%w: %d bytes after %T",
				ErrTrailingBytes, r.Len(), v),
		)
	}

	return &v, nil
}
