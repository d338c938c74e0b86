package codec

import (
	"encoding/json"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// hash32 is satisfied by the hash newtypes of this package.
type hash32 interface {
	~[chainhash.HashSize]byte
}

// parseHash decodes a display order hash string. Unlike
// chainhash.NewHashFromStr it refuses short strings instead of zero padding
// them.
func parseHash[H hash32](s string) (H, error) {
	var h H
	if err := DecodeReversedHex(s, h[:]); err != nil {
		return h, err
	}

	return h, nil
}

// BlockHash identifies a block. It is stored in internal byte order and
// encoded in display order.
type BlockHash chainhash.Hash

// NewBlockHashFromStr parses a 64 character display order block hash.
func NewBlockHashFromStr(s string) (BlockHash, error) {
	return parseHash[BlockHash](s)
}

// Hash returns the hash as a chainhash.Hash.
func (h BlockHash) Hash() chainhash.Hash {
	return chainhash.Hash(h)
}

// String returns the display order hex encoding.
func (h BlockHash) String() string {
	return chainhash.Hash(h).String()
}

// MarshalJSON encodes the hash in display order.
func (h BlockHash) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

// UnmarshalJSON decodes a display order hash.
func (h *BlockHash) UnmarshalJSON(data []byte) error {
	return unmarshalReversedHex(data, h[:])
}

// Txid identifies a transaction by its witness-stripped hash.
type Txid chainhash.Hash

// NewTxidFromStr parses a 64 character display order txid.
func NewTxidFromStr(s string) (Txid, error) {
	return parseHash[Txid](s)
}

// Hash returns the txid as a chainhash.Hash.
func (h Txid) Hash() chainhash.Hash {
	return chainhash.Hash(h)
}

// String returns the display order hex encoding.
func (h Txid) String() string {
	return chainhash.Hash(h).String()
}

// MarshalJSON encodes the txid in display order.
func (h Txid) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

// UnmarshalJSON decodes a display order txid.
func (h *Txid) UnmarshalJSON(data []byte) error {
	return unmarshalReversedHex(data, h[:])
}

// Wtxid identifies a transaction by its hash including witness data.
type Wtxid chainhash.Hash

// NewWtxidFromStr parses a 64 character display order wtxid.
func NewWtxidFromStr(s string) (Wtxid, error) {
	return parseHash[Wtxid](s)
}

// Hash returns the wtxid as a chainhash.Hash.
func (h Wtxid) Hash() chainhash.Hash {
	return chainhash.Hash(h)
}

// String returns the display order hex encoding.
func (h Wtxid) String() string {
	return chainhash.Hash(h).String()
}

// MarshalJSON encodes the wtxid in display order.
func (h Wtxid) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

// UnmarshalJSON decodes a display order wtxid.
func (h *Wtxid) UnmarshalJSON(data []byte) error {
	return unmarshalReversedHex(data, h[:])
}

// TxMerkleNode is the root, or an inner node, of a block's transaction
// merkle tree.
type TxMerkleNode chainhash.Hash

// Hash returns the node as a chainhash.Hash.
func (h TxMerkleNode) Hash() chainhash.Hash {
	return chainhash.Hash(h)
}

// String returns the display order hex encoding.
func (h TxMerkleNode) String() string {
	return chainhash.Hash(h).String()
}

// MarshalJSON encodes the node in display order.
func (h TxMerkleNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

// UnmarshalJSON decodes a display order merkle node.
func (h *TxMerkleNode) UnmarshalJSON(data []byte) error {
	return unmarshalReversedHex(data, h[:])
}
