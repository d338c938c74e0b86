package mainchain

import (
	"encoding/json"
	"math/big"
	"time"

	"github.com/btcsuite/btcd/wire"
	"github.com/torkelrogstad/bip300301/codec"
)

// Header is the result of getblockheader.
type Header struct {
	Hash    codec.BlockHash `json:"hash"`
	Height  uint32          `json:"height"`
	Version int32           `json:"version"`

	// PrevBlockHash is all zeros for the genesis block, which has no
	// previousblockhash member.
	PrevBlockHash codec.BlockHash `json:"previousblockhash"`

	MerkleRoot codec.TxMerkleNode  `json:"merkleroot"`
	Time       uint32              `json:"time"`
	Bits       codec.CompactTarget `json:"bits"`
	Nonce      uint32              `json:"nonce"`
}

// UnmarshalJSON decodes a getblockheader result.
func (h *Header) UnmarshalJSON(data []byte) error {
	var header Header

	r := newFieldReader(data)
	r.required("hash", &header.Hash)
	r.required("height", &header.Height)
	r.required("version", &header.Version)
	r.optional("previousblockhash", &header.PrevBlockHash)
	r.required("merkleroot", &header.MerkleRoot)
	r.required("time", &header.Time)
	r.required("bits", &header.Bits)
	r.required("nonce", &header.Nonce)
	if err := r.done(); err != nil {
		return err
	}

	*h = header

	return nil
}

// Target returns the inclusive upper bound a block hash must not exceed.
func (h *Header) Target() *big.Int {
	return h.Bits.Target()
}

// Work returns the expected number of hashes needed to find a block at
// this header's target.
func (h *Header) Work() *big.Int {
	return h.Bits.Work()
}

// WireHeader converts the header into its consensus form. The hash of the
// result equals Hash for headers reported by an honest node.
func (h *Header) WireHeader() wire.BlockHeader {
	return wire.BlockHeader{
		Version:    h.Version,
		PrevBlock:  h.PrevBlockHash.Hash(),
		MerkleRoot: h.MerkleRoot.Hash(),
		Timestamp:  time.Unix(int64(h.Time), 0),
		Bits:       uint32(h.Bits),
		Nonce:      h.Nonce,
	}
}

// Block is the result of getblock at verbosity 1.
type Block struct {
	Hash codec.BlockHash `json:"hash"`

	// Confirmations is -1 for blocks that are not on the main chain.
	Confirmations int64 `json:"confirmations"`

	StrippedSize uint64              `json:"strippedsize"`
	Size         uint64              `json:"size"`
	Weight       uint64              `json:"weight"`
	Height       uint32              `json:"height"`
	Version      int32               `json:"version"`
	VersionHex   string              `json:"versionHex"`
	MerkleRoot   codec.TxMerkleNode  `json:"merkleroot"`
	Tx           []codec.Txid        `json:"tx"`
	Time         uint32              `json:"time"`
	MedianTime   uint32              `json:"mediantime"`
	Nonce        uint32              `json:"nonce"`
	Bits         codec.CompactTarget `json:"bits"`
	Difficulty   float64             `json:"difficulty"`

	// ChainWork is the total work of the chain up to and including this
	// block, as a big endian 256-bit number.
	ChainWork codec.Hex32 `json:"chainwork"`

	PrevBlockHash *codec.BlockHash `json:"previousblockhash,omitempty"`
	NextBlockHash *codec.BlockHash `json:"nextblockhash,omitempty"`
}

// UnmarshalJSON decodes a getblock result at verbosity 1.
func (b *Block) UnmarshalJSON(data []byte) error {
	var block Block

	r := newFieldReader(data)
	block.decodeFields(r)
	r.required("tx", &block.Tx)
	if err := r.done(); err != nil {
		return err
	}

	*b = block

	return nil
}

// decodeFields reads every member except the transaction list, which
// differs between verbosity levels.
func (b *Block) decodeFields(r *fieldReader) {
	r.required("hash", &b.Hash)
	r.required("confirmations", &b.Confirmations)
	r.required("strippedsize", &b.StrippedSize)
	r.required("size", &b.Size)
	r.required("weight", &b.Weight)
	r.required("height", &b.Height)
	r.required("version", &b.Version)
	r.required("versionHex", &b.VersionHex)
	r.required("merkleroot", &b.MerkleRoot)
	r.required("time", &b.Time)
	r.required("mediantime", &b.MedianTime)
	r.required("nonce", &b.Nonce)
	r.required("bits", &b.Bits)
	r.required("difficulty", &b.Difficulty)
	r.required("chainwork", &b.ChainWork)
	r.optional("previousblockhash", &b.PrevBlockHash)
	r.optional("nextblockhash", &b.NextBlockHash)
}

// Target returns the inclusive upper bound a block hash must not exceed.
func (b *Block) Target() *big.Int {
	return b.Bits.Target()
}

// TotalWork returns ChainWork as a number.
func (b *Block) TotalWork() *big.Int {
	return new(big.Int).SetBytes(b.ChainWork[:])
}

// Header returns the header fields of the block.
func (b *Block) Header() Header {
	header := Header{
		Hash:       b.Hash,
		Height:     b.Height,
		Version:    b.Version,
		MerkleRoot: b.MerkleRoot,
		Time:       b.Time,
		Bits:       b.Bits,
		Nonce:      b.Nonce,
	}
	if b.PrevBlockHash != nil {
		header.PrevBlockHash = *b.PrevBlockHash
	}

	return header
}

// BlockTx is a transaction as listed by getblock at verbosity 2.
type BlockTx struct {
	Txid     codec.Txid  `json:"txid"`
	Wtxid    codec.Wtxid `json:"hash"`
	Version  int32       `json:"version"`
	Size     uint64      `json:"size"`
	VSize    uint64      `json:"vsize"`
	Weight   uint64      `json:"weight"`
	LockTime uint32      `json:"locktime"`

	// Fee is unset for the coinbase and when undo data is unavailable.
	Fee *codec.AmountBTC `json:"fee,omitempty"`

	Hex codec.HexBytes `json:"hex"`
}

// UnmarshalJSON decodes a transaction entry. The vin and vout members are
// not kept; MsgTx recovers them from the raw transaction.
func (t *BlockTx) UnmarshalJSON(data []byte) error {
	var tx BlockTx

	r := newFieldReader(data)
	r.required("txid", &tx.Txid)
	r.required("hash", &tx.Wtxid)
	r.required("version", &tx.Version)
	r.required("size", &tx.Size)
	r.required("vsize", &tx.VSize)
	r.required("weight", &tx.Weight)
	r.required("locktime", &tx.LockTime)
	r.optional("fee", &tx.Fee)
	r.required("hex", &tx.Hex)
	if err := r.done(); err != nil {
		return err
	}

	*t = tx

	return nil
}

// MsgTx deserializes the raw transaction.
func (t *BlockTx) MsgTx() (*wire.MsgTx, error) {
	return codec.DecodeConsensus[wire.MsgTx](t.Hex)
}

// BlockWithTxs is the result of getblock at verbosity 2. The embedded
// Block's Tx holds the txids of Transactions.
type BlockWithTxs struct {
	Block

	Transactions []BlockTx `json:"tx"`
}

// UnmarshalJSON decodes a getblock result at verbosity 2.
func (b *BlockWithTxs) UnmarshalJSON(data []byte) error {
	var block BlockWithTxs

	r := newFieldReader(data)
	block.decodeFields(r)

	var rawTxs json.RawMessage
	r.required("tx", &rawTxs)
	if err := r.done(); err != nil {
		return err
	}

	txs, err := decodeList[BlockTx](rawTxs)
	if err != nil {
		return codec.WithField("tx", err)
	}

	block.Transactions = txs
	block.Tx = make([]codec.Txid, 0, len(txs))
	for _, tx := range txs {
		block.Tx = append(block.Tx, tx.Txid)
	}

	*b = block

	return nil
}
