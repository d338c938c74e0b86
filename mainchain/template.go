package mainchain

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/wire"
	"github.com/torkelrogstad/bip300301/codec"
)

// BlockTemplateRequest is the template_request parameter of
// getblocktemplate.
type BlockTemplateRequest struct {
	Rules        []string `json:"rules"`
	Capabilities []string `json:"capabilities"`
}

// DefaultBlockTemplateRequest requests the segwit rule and no capabilities,
// which is the minimum bitcoind accepts.
func DefaultBlockTemplateRequest() BlockTemplateRequest {
	return BlockTemplateRequest{
		Rules:        []string{"segwit"},
		Capabilities: []string{},
	}
}

// MarshalJSON encodes the request, writing empty lists rather than null.
func (r BlockTemplateRequest) MarshalJSON() ([]byte, error) {
	type plain BlockTemplateRequest

	req := plain(r)
	if req.Rules == nil {
		req.Rules = []string{}
	}
	if req.Capabilities == nil {
		req.Capabilities = []string{}
	}

	return json.Marshal(req)
}

// UnmarshalJSON decodes a request. Both lists default to empty.
func (r *BlockTemplateRequest) UnmarshalJSON(data []byte) error {
	req := BlockTemplateRequest{
		Rules:        []string{},
		Capabilities: []string{},
	}

	fields := newFieldReader(data)
	fields.optional("rules", &req.Rules)
	fields.optional("capabilities", &req.Capabilities)
	if err := fields.done(); err != nil {
		return err
	}

	*r = req

	return nil
}

// BlockTemplateTransaction is a transaction to include in a template block.
type BlockTemplateTransaction struct {
	// Data is the serialized transaction.
	Data codec.HexBytes `json:"data"`

	Txid codec.Txid  `json:"txid"`
	Hash codec.Wtxid `json:"hash"`

	// Depends lists the 1-based positions of transactions in the template
	// that must come before this one.
	Depends []uint32 `json:"depends"`

	// Fee is in satoshis.
	Fee int64 `json:"fee"`

	// SigOps is unset when the node does not report sigop counts.
	SigOps *uint64 `json:"sigops,omitempty"`

	Weight uint64 `json:"weight"`
}

// UnmarshalJSON decodes a template transaction.
func (t *BlockTemplateTransaction) UnmarshalJSON(data []byte) error {
	var tx BlockTemplateTransaction

	r := newFieldReader(data)
	r.required("data", &tx.Data)
	r.required("txid", &tx.Txid)
	r.required("hash", &tx.Hash)
	r.required("depends", &tx.Depends)
	r.required("fee", &tx.Fee)
	r.optional("sigops", &tx.SigOps)
	r.required("weight", &tx.Weight)
	if err := r.done(); err != nil {
		return err
	}

	*t = tx

	return nil
}

// MsgTx deserializes Data.
func (t *BlockTemplateTransaction) MsgTx() (*wire.MsgTx, error) {
	return codec.DecodeConsensus[wire.MsgTx](t.Data)
}

// CoinbaseTxnOrValue is either the coinbase transaction the node wants mined,
// CoinbaseTxn, or the value the miner may claim, CoinbaseValue.
type CoinbaseTxnOrValue interface {
	isCoinbaseTxnOrValue()
}

// CoinbaseTxn is a coinbase transaction supplied by the node.
type CoinbaseTxn struct {
	Txn BlockTemplateTransaction
}

// CoinbaseValue is the total value, subsidy plus fees, the coinbase may
// claim.
type CoinbaseValue struct {
	Value btcutil.Amount
}

func (CoinbaseTxn) isCoinbaseTxnOrValue()   {}
func (CoinbaseValue) isCoinbaseTxnOrValue() {}

// ErrCoinbaseTxnAndValue is returned when a template carries both
// coinbasetxn and coinbasevalue.
var ErrCoinbaseTxnAndValue = errors.New("both coinbasetxn and coinbasevalue " +
	"present")

// BlockTemplate is the result of getblocktemplate.
type BlockTemplate struct {
	Version int32    `json:"version"`
	Rules   []string `json:"rules"`

	// VersionBitsAvailable maps pending deployments to their bit.
	VersionBitsAvailable codec.OrderedMap[json.RawMessage] `json:"vbavailable"`

	VersionBitsRequired int32                      `json:"vbrequired"`
	PrevBlockHash       codec.BlockHash            `json:"previousblockhash"`
	Transactions        []BlockTemplateTransaction `json:"transactions"`

	// CoinbaseAux holds data to be included in the coinbase scriptSig,
	// in the order the node listed it.
	CoinbaseAux codec.OrderedMap[codec.HexBytes] `json:"coinbaseaux"`

	CoinbaseTxnOrValue CoinbaseTxnOrValue `json:"-"`

	// LongPollID is unset if the node does not support long polling.
	LongPollID *string `json:"longpollid,omitempty"`

	Target      codec.Hex32         `json:"target"`
	MinTime     uint64              `json:"mintime"`
	Mutable     []string            `json:"mutable"`
	NonceRange  codec.Hex8          `json:"noncerange"`
	SigOpLimit  uint64              `json:"sigoplimit"`
	SizeLimit   uint64              `json:"sizelimit"`
	WeightLimit uint64              `json:"weightlimit"`
	CurTime     uint64              `json:"curtime"`
	Bits        codec.CompactTarget `json:"bits"`
	Height      uint32              `json:"height"`

	// SignetChallenge is only set on signet.
	SignetChallenge *codec.HexBytes `json:"signet_challenge,omitempty"`

	// DefaultWitnessCommitment is unset when the template has no
	// witness transactions.
	DefaultWitnessCommitment *codec.HexBytes `json:"default_witness_commitment,omitempty"`
}

// MarshalJSON encodes the template, flattening CoinbaseTxnOrValue into a
// coinbasetxn or coinbasevalue member.
func (t BlockTemplate) MarshalJSON() ([]byte, error) {
	type plain BlockTemplate

	out := struct {
		plain
		CoinbaseTxn   *BlockTemplateTransaction `json:"coinbasetxn,omitempty"`
		CoinbaseValue *int64                    `json:"coinbasevalue,omitempty"`
	}{plain: plain(t)}

	switch coinbase := t.CoinbaseTxnOrValue.(type) {
	case CoinbaseTxn:
		out.CoinbaseTxn = &coinbase.Txn

	case CoinbaseValue:
		value := int64(coinbase.Value)
		out.CoinbaseValue = &value

	default:
		return nil, fmt.Errorf("block template has no coinbase "+
			"txn or value: %T", coinbase)
	}

	return json.Marshal(out)
}

// UnmarshalJSON decodes a getblocktemplate result. Exactly one of
// coinbasetxn and coinbasevalue must be present.
func (t *BlockTemplate) UnmarshalJSON(data []byte) error {
	var tmpl BlockTemplate

	r := newFieldReader(data)
	r.required("version", &tmpl.Version)
	r.required("rules", &tmpl.Rules)
	r.required("vbavailable", &tmpl.VersionBitsAvailable)
	r.required("vbrequired", &tmpl.VersionBitsRequired)
	r.required("previousblockhash", &tmpl.PrevBlockHash)
	r.required("transactions", &tmpl.Transactions)
	r.required("coinbaseaux", &tmpl.CoinbaseAux)
	r.optional("longpollid", &tmpl.LongPollID)
	r.required("target", &tmpl.Target)
	r.required("mintime", &tmpl.MinTime)
	r.required("mutable", &tmpl.Mutable)
	r.required("noncerange", &tmpl.NonceRange)
	r.required("sigoplimit", &tmpl.SigOpLimit)
	r.required("sizelimit", &tmpl.SizeLimit)
	r.required("weightlimit", &tmpl.WeightLimit)
	r.required("curtime", &tmpl.CurTime)
	r.required("bits", &tmpl.Bits)
	r.required("height", &tmpl.Height)
	r.optional("signet_challenge", &tmpl.SignetChallenge)
	r.optional(
		"default_witness_commitment", &tmpl.DefaultWitnessCommitment,
	)

	hasTxn, hasValue := r.has("coinbasetxn"), r.has("coinbasevalue")
	switch {
	case hasTxn && hasValue:
		return codec.NewDecodeError(
			"coinbasetxn", "", ErrCoinbaseTxnAndValue,
		)

	case hasTxn:
		var coinbase CoinbaseTxn
		r.required("coinbasetxn", &coinbase.Txn)
		tmpl.CoinbaseTxnOrValue = coinbase

	default:
		// A missing coinbasevalue is reported by required.
		var value int64
		r.required("coinbasevalue", &value)
		tmpl.CoinbaseTxnOrValue = CoinbaseValue{
			Value: btcutil.Amount(value),
		}
	}

	if err := r.done(); err != nil {
		return err
	}

	*t = tmpl

	return nil
}
