package mainchain

import (
	"github.com/torkelrogstad/bip300301/codec"
)

// RawMempoolTxFees are the fees of a mempool entry. The node reports them in
// BTC.
type RawMempoolTxFees struct {
	Base       codec.AmountBTC `json:"base"`
	Modified   codec.AmountBTC `json:"modified"`
	Ancestor   codec.AmountBTC `json:"ancestor"`
	Descendant codec.AmountBTC `json:"descendant"`
}

// UnmarshalJSON decodes the fees object of a mempool entry.
func (f *RawMempoolTxFees) UnmarshalJSON(data []byte) error {
	var fees RawMempoolTxFees

	r := newFieldReader(data)
	r.required("base", &fees.Base)
	r.required("modified", &fees.Modified)
	r.required("ancestor", &fees.Ancestor)
	r.required("descendant", &fees.Descendant)
	if err := r.done(); err != nil {
		return err
	}

	*f = fees

	return nil
}

// RawMempoolTxInfo is a mempool entry as returned by getmempoolentry and
// verbose getrawmempool.
type RawMempoolTxInfo struct {
	VSize           uint64           `json:"vsize"`
	Weight          uint64           `json:"weight"`
	Time            int64            `json:"time"`
	Height          uint32           `json:"height"`
	DescendantCount uint64           `json:"descendantcount"`
	DescendantSize  uint64           `json:"descendantsize"`
	AncestorCount   uint64           `json:"ancestorcount"`
	AncestorSize    uint64           `json:"ancestorsize"`
	Wtxid           codec.Wtxid      `json:"wtxid"`
	Fees            RawMempoolTxFees `json:"fees"`
	Depends         []codec.Txid     `json:"depends"`
	SpentBy         []codec.Txid     `json:"spentby"`

	// BIP125Replaceable is reported as bip125-replaceable by bitcoind and
	// as bip125replaceable by some forks.
	BIP125Replaceable bool `json:"bip125-replaceable"`

	Unbroadcast bool `json:"unbroadcast"`
}

// UnmarshalJSON decodes a mempool entry.
func (i *RawMempoolTxInfo) UnmarshalJSON(data []byte) error {
	var info RawMempoolTxInfo

	r := newFieldReader(data)
	r.required("vsize", &info.VSize)
	r.required("weight", &info.Weight)
	r.optional("time", &info.Time)
	r.optional("height", &info.Height)
	r.required("descendantcount", &info.DescendantCount)
	r.required("descendantsize", &info.DescendantSize)
	r.required("ancestorcount", &info.AncestorCount)
	r.required("ancestorsize", &info.AncestorSize)
	r.required("wtxid", &info.Wtxid)
	r.required("fees", &info.Fees)
	r.required("depends", &info.Depends)
	r.required("spentby", &info.SpentBy)
	r.alias(
		&info.BIP125Replaceable, "bip125-replaceable",
		"bip125replaceable",
	)
	r.required("unbroadcast", &info.Unbroadcast)
	if err := r.done(); err != nil {
		return err
	}

	*i = info

	return nil
}

// RawMempoolWithSequence is the result of getrawmempool with
// mempool_sequence set.
type RawMempoolWithSequence struct {
	Txids           []codec.Txid `json:"txids"`
	MempoolSequence uint64       `json:"mempool_sequence"`
}

// UnmarshalJSON decodes the txid list and sequence number.
func (m *RawMempoolWithSequence) UnmarshalJSON(data []byte) error {
	var mempool RawMempoolWithSequence

	r := newFieldReader(data)
	r.required("txids", &mempool.Txids)
	r.required("mempool_sequence", &mempool.MempoolSequence)
	if err := r.done(); err != nil {
		return err
	}

	*m = mempool

	return nil
}

// RawMempoolEntry pairs a txid with its mempool entry.
type RawMempoolEntry struct {
	Txid codec.Txid
	Info RawMempoolTxInfo
}

// RawMempoolVerbose is the result of verbose getrawmempool. Entries are in
// the order the node listed them.
type RawMempoolVerbose struct {
	Entries []RawMempoolEntry
}

// Get returns the entry for txid.
func (m *RawMempoolVerbose) Get(txid codec.Txid) (*RawMempoolTxInfo, bool) {
	for i := range m.Entries {
		if m.Entries[i].Txid == txid {
			return &m.Entries[i].Info, true
		}
	}

	return nil, false
}

// MarshalJSON encodes the entries as an object keyed by txid.
func (m RawMempoolVerbose) MarshalJSON() ([]byte, error) {
	entries := make(codec.OrderedMap[RawMempoolTxInfo], 0, len(m.Entries))
	for _, entry := range m.Entries {
		entries = append(entries, codec.KeyValue[RawMempoolTxInfo]{
			Key:   entry.Txid.String(),
			Value: entry.Info,
		})
	}

	return entries.MarshalJSON()
}

// UnmarshalJSON decodes an object keyed by txid.
func (m *RawMempoolVerbose) UnmarshalJSON(data []byte) error {
	var entries codec.OrderedMap[RawMempoolTxInfo]
	if err := codec.Unmarshal(data, &entries); err != nil {
		return err
	}

	mempool := RawMempoolVerbose{
		Entries: make([]RawMempoolEntry, 0, len(entries)),
	}
	for _, entry := range entries {
		txid, err := codec.NewTxidFromStr(entry.Key)
		if err != nil {
			return codec.WithField(entry.Key, err)
		}

		mempool.Entries = append(mempool.Entries, RawMempoolEntry{
			Txid: txid,
			Info: entry.Value,
		})
	}

	*m = mempool

	return nil
}
