package mainchain

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/torkelrogstad/bip300301/codec"
)

// TxOutSetInfo is the result of gettxoutsetinfo.
type TxOutSetInfo struct {
	Height    uint32          `json:"height"`
	BestBlock codec.BlockHash `json:"bestblock"`
	NumTxs    uint64          `json:"transactions"`
	NumTxOuts uint64          `json:"txouts"`

	// HashSerialized is the hash of the UTXO set as written by the node.
	// Older nodes report it as hash_serialized_2.
	HashSerialized codec.Hex32 `json:"hash_serialized_3"`

	// TotalAmount is unset if the node did not report it.
	TotalAmount *codec.AmountBTC `json:"total_amount,omitempty"`
}

// UnmarshalJSON decodes a gettxoutsetinfo result.
func (i *TxOutSetInfo) UnmarshalJSON(data []byte) error {
	var info TxOutSetInfo

	r := newFieldReader(data)
	r.required("height", &info.Height)
	r.required("bestblock", &info.BestBlock)
	r.required("transactions", &info.NumTxs)
	r.required("txouts", &info.NumTxOuts)
	r.alias(&info.HashSerialized, "hash_serialized_3", "hash_serialized_2")
	r.optional("total_amount", &info.TotalAmount)
	if err := r.done(); err != nil {
		return err
	}

	*i = info

	return nil
}

// NetworkInfo is the result of getnetworkinfo.
type NetworkInfo struct {
	Version         int32  `json:"version"`
	Subversion      string `json:"subversion"`
	ProtocolVersion int32  `json:"protocolversion"`

	// TimeOffset is the node's clock offset from its peers, in seconds.
	TimeOffset int64 `json:"timeoffset"`

	Connections uint32 `json:"connections"`
}

// UnmarshalJSON decodes a getnetworkinfo result.
func (i *NetworkInfo) UnmarshalJSON(data []byte) error {
	var info NetworkInfo

	r := newFieldReader(data)
	r.optional("version", &info.Version)
	r.optional("subversion", &info.Subversion)
	r.optional("protocolversion", &info.ProtocolVersion)
	r.required("timeoffset", &info.TimeOffset)
	r.optional("connections", &info.Connections)
	if err := r.done(); err != nil {
		return err
	}

	*i = info

	return nil
}

// Network is a chain name as reported by getblockchaininfo.
type Network string

const (
	NetworkMain     Network = "main"
	NetworkTest     Network = "test"
	NetworkTestnet4 Network = "testnet4"
	NetworkSignet   Network = "signet"
	NetworkRegtest  Network = "regtest"
)

// ErrNoNetworkParams is returned by Network.Params for networks without
// chain parameters in btcd.
var ErrNoNetworkParams = errors.New("no chain parameters for network")

// ParseNetwork validates a chain name.
func ParseNetwork(s string) (Network, error) {
	switch n := Network(s); n {
	case NetworkMain, NetworkTest, NetworkTestnet4, NetworkSignet,
		NetworkRegtest:

		return n, nil

	default:
		return "", codec.NewDecodeError("", s, codec.ErrUnknownValue)
	}
}

// Params returns the btcd chain parameters of the network.
func (n Network) Params() (*chaincfg.Params, error) {
	switch n {
	case NetworkMain:
		return &chaincfg.MainNetParams, nil
	case NetworkTest:
		return &chaincfg.TestNet3Params, nil
	case NetworkSignet:
		return &chaincfg.SigNetParams, nil
	case NetworkRegtest:
		return &chaincfg.RegressionNetParams, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrNoNetworkParams, n)
	}
}

// UnmarshalJSON decodes a chain name, rejecting unknown names.
func (n *Network) UnmarshalJSON(data []byte) error {
	var s string
	if err := codec.Unmarshal(data, &s); err != nil {
		return err
	}

	network, err := ParseNetwork(s)
	if err != nil {
		return err
	}
	*n = network

	return nil
}

// BlockchainInfo is the result of getblockchaininfo.
type BlockchainInfo struct {
	Chain         Network         `json:"chain"`
	Blocks        uint32          `json:"blocks"`
	Headers       uint32          `json:"headers"`
	BestBlockHash codec.BlockHash `json:"bestblockhash"`
	Difficulty    float64         `json:"difficulty"`

	InitialBlockDownload bool `json:"initialblockdownload"`
}

// UnmarshalJSON decodes a getblockchaininfo result.
func (i *BlockchainInfo) UnmarshalJSON(data []byte) error {
	var info BlockchainInfo

	r := newFieldReader(data)
	r.required("chain", &info.Chain)
	r.required("blocks", &info.Blocks)
	r.optional("headers", &info.Headers)
	r.required("bestblockhash", &info.BestBlockHash)
	r.required("difficulty", &info.Difficulty)
	r.optional("initialblockdownload", &info.InitialBlockDownload)
	if err := r.done(); err != nil {
		return err
	}

	*i = info

	return nil
}

// Address is an encoded address whose network has not been checked.
type Address string

// NewAddress encodes addr.
func NewAddress(addr btcutil.Address) Address {
	return Address(addr.EncodeAddress())
}

// Decode parses the address and checks that it belongs to the network
// described by params.
func (a Address) Decode(params *chaincfg.Params) (btcutil.Address, error) {
	addr, err := btcutil.DecodeAddress(string(a), params)
	if err != nil {
		return nil, fmt.Errorf("unable to decode address %q: %w",
			string(a), err)
	}

	if !addr.IsForNet(params) {
		return nil, fmt.Errorf("address %q is not for %s", string(a),
			params.Name)
	}

	return addr, nil
}

// String returns the encoded address.
func (a Address) String() string {
	return string(a)
}

// AddressInfo is the result of getaddressinfo.
type AddressInfo struct {
	Address      Address        `json:"address"`
	ScriptPubKey codec.HexBytes `json:"scriptPubKey"`
	IsMine       bool           `json:"ismine"`
	IsWatchOnly  bool           `json:"iswatchonly"`
	IsScript     bool           `json:"isscript"`
	IsWitness    bool           `json:"iswitness"`

	// HDKeyPath and HDSeedID are unset for keys that were not derived
	// from the wallet's seed.
	HDKeyPath *string `json:"hdkeypath,omitempty"`
	HDSeedID  *string `json:"hdseedid,omitempty"`
}

// UnmarshalJSON decodes a getaddressinfo result.
func (i *AddressInfo) UnmarshalJSON(data []byte) error {
	var info AddressInfo

	r := newFieldReader(data)
	r.required("address", &info.Address)
	r.required("scriptPubKey", &info.ScriptPubKey)
	r.required("ismine", &info.IsMine)
	r.required("iswatchonly", &info.IsWatchOnly)
	r.required("isscript", &info.IsScript)
	r.required("iswitness", &info.IsWitness)
	r.optional("hdkeypath", &info.HDKeyPath)
	r.optional("hdseedid", &info.HDSeedID)
	if err := r.done(); err != nil {
		return err
	}

	*i = info

	return nil
}
