package mainchain

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/btcsuite/btcd/wire"
	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/torkelrogstad/bip300301/codec"
)

// GetBlockVerbosity is implemented by the witnesses accepted as the
// verbosity of getblock. R is the result type the witness selects:
//
//	U8Zero -> *wire.MsgBlock
//	U8One  -> *Block
//	U8Two  -> *BlockWithTxs
type GetBlockVerbosity[R any] interface {
	json.Marshaler

	decodeBlock(raw json.RawMessage) (R, error)
}

// GetRawMempoolParams is implemented by the parameter pairs accepted by
// getrawmempool. R is the result type the pair selects:
//
//	RawMempoolIDs             -> []codec.Txid
//	RawMempoolIDsWithSequence -> *RawMempoolWithSequence
//	RawMempoolDetailed        -> *RawMempoolVerbose
//
// Verbose output together with the mempool sequence is rejected by the
// node and has no parameter type.
type GetRawMempoolParams[R any] interface {
	params() []any

	decodeRawMempool(raw json.RawMessage) (R, error)
}

// GetRawTransactionVerbosity is implemented by the witnesses accepted as
// the verbose flag of getrawtransaction. R is the result type the witness
// selects:
//
//	BoolFalse -> codec.HexBytes
//	BoolTrue  -> json.RawMessage
type GetRawTransactionVerbosity[R any] interface {
	json.Marshaler

	decodeRawTransaction(raw json.RawMessage) (R, error)
}

func (U8Zero) decodeBlock(raw json.RawMessage) (*wire.MsgBlock, error) {
	s, err := decodeJSON[string](raw)
	if err != nil {
		return nil, err
	}

	return codec.DecodeConsensusHex[wire.MsgBlock](s)
}

func (U8One) decodeBlock(raw json.RawMessage) (*Block, error) {
	return decodeObject[Block](raw)
}

func (U8Two) decodeBlock(raw json.RawMessage) (*BlockWithTxs, error) {
	return decodeObject[BlockWithTxs](raw)
}

func (RawMempoolIDs) decodeRawMempool(raw json.RawMessage) ([]codec.Txid,
	error) {

	return decodeList[codec.Txid](raw)
}

func (RawMempoolIDsWithSequence) decodeRawMempool(
	raw json.RawMessage) (*RawMempoolWithSequence, error) {

	return decodeObject[RawMempoolWithSequence](raw)
}

func (RawMempoolDetailed) decodeRawMempool(
	raw json.RawMessage) (*RawMempoolVerbose, error) {

	return decodeObject[RawMempoolVerbose](raw)
}

func (BoolFalse) decodeRawTransaction(
	raw json.RawMessage) (codec.HexBytes, error) {

	return decodeJSON[codec.HexBytes](raw)
}

func (BoolTrue) decodeRawTransaction(
	raw json.RawMessage) (json.RawMessage, error) {

	return decodeRaw(raw)
}

// GetBlock calls getblock. The result type follows from the verbosity
// witness:
//
//	block, err := GetBlock(ctx, client, hash, U8One{}) // block is *Block
func GetBlock[R any](ctx context.Context, c *Client, hash codec.BlockHash,
	verbosity GetBlockVerbosity[R]) (R, error) {

	return call(ctx, c, "getblock", verbosity.decodeBlock, hash, verbosity)
}

// GetRawMempool calls getrawmempool. The result type follows from the
// parameter pair.
func GetRawMempool[R any](ctx context.Context, c *Client,
	params GetRawMempoolParams[R]) (R, error) {

	return call(
		ctx, c, "getrawmempool", params.decodeRawMempool,
		params.params()...,
	)
}

// GetRawTransaction calls getrawtransaction. The result type follows from
// the verbose witness. blockHash is required by nodes without a transaction
// index for transactions that are not in the mempool.
func GetRawTransaction[R any](ctx context.Context, c *Client,
	txid codec.Txid, verbose GetRawTransactionVerbosity[R],
	blockHash fn.Option[codec.BlockHash]) (R, error) {

	return call(
		ctx, c, "getrawtransaction", verbose.decodeRawTransaction,
		txid, verbose, optionalParam(blockHash),
	)
}

// BlockVerbosity selects a getblock result shape at runtime.
type BlockVerbosity uint8

const (
	// BlockVerbosityRaw returns the serialized block.
	BlockVerbosityRaw BlockVerbosity = 0

	// BlockVerbosityObject returns the block with its txids.
	BlockVerbosityObject BlockVerbosity = 1

	// BlockVerbosityTxs returns the block with decoded transactions.
	BlockVerbosityTxs BlockVerbosity = 2
)

// ResolveBlockVerbosity maps a getblock verbosity onto the closed set of
// supported values.
func ResolveBlockVerbosity(v uint8) (BlockVerbosity, error) {
	switch verbosity := BlockVerbosity(v); verbosity {
	case BlockVerbosityRaw, BlockVerbosityObject, BlockVerbosityTxs:
		return verbosity, nil

	default:
		return 0, fmt.Errorf("%w: getblock verbosity %d",
			codec.ErrUnknownValue, v)
	}
}

// BlockResult is a getblock result of a runtime selected verbosity. Only
// the field matching Kind is set.
type BlockResult struct {
	Kind BlockVerbosity

	Raw          *wire.MsgBlock
	Block        *Block
	BlockWithTxs *BlockWithTxs
}

// GetBlockAny calls getblock with a verbosity chosen at runtime.
func (c *Client) GetBlockAny(ctx context.Context, hash codec.BlockHash,
	verbosity BlockVerbosity) (*BlockResult, error) {

	var (
		result = &BlockResult{Kind: verbosity}
		err    error
	)
	switch verbosity {
	case BlockVerbosityRaw:
		result.Raw, err = GetBlock(ctx, c, hash, U8Zero{})

	case BlockVerbosityObject:
		result.Block, err = GetBlock(ctx, c, hash, U8One{})

	case BlockVerbosityTxs:
		result.BlockWithTxs, err = GetBlock(ctx, c, hash, U8Two{})

	default:
		return nil, fmt.Errorf("%w: getblock verbosity %d",
			codec.ErrUnknownValue, verbosity)
	}
	if err != nil {
		return nil, err
	}

	return result, nil
}

// RawMempoolMode selects a getrawmempool result shape at runtime.
type RawMempoolMode uint8

const (
	// RawMempoolModeIDs returns the txids.
	RawMempoolModeIDs RawMempoolMode = iota

	// RawMempoolModeIDsWithSequence returns the txids and the mempool
	// sequence number.
	RawMempoolModeIDsWithSequence

	// RawMempoolModeVerbose returns every entry keyed by txid.
	RawMempoolModeVerbose
)

// ResolveRawMempoolMode maps the verbose and mempool_sequence flags of
// getrawmempool onto a mode. Setting both is rejected.
func ResolveRawMempoolMode(verbose, sequence bool) (RawMempoolMode, error) {
	switch {
	case !verbose && !sequence:
		return RawMempoolModeIDs, nil

	case !verbose && sequence:
		return RawMempoolModeIDsWithSequence, nil

	case verbose && !sequence:
		return RawMempoolModeVerbose, nil

	default:
		return 0, fmt.Errorf("%w: getrawmempool verbose with "+
			"mempool_sequence", codec.ErrUnknownValue)
	}
}

// RawMempoolResult is a getrawmempool result of a runtime selected mode.
// Only the field matching Kind is set.
type RawMempoolResult struct {
	Kind RawMempoolMode

	Txids        []codec.Txid
	WithSequence *RawMempoolWithSequence
	Verbose      *RawMempoolVerbose
}

// GetRawMempoolAny calls getrawmempool in a mode chosen at runtime.
func (c *Client) GetRawMempoolAny(ctx context.Context,
	mode RawMempoolMode) (*RawMempoolResult, error) {

	var (
		result = &RawMempoolResult{Kind: mode}
		err    error
	)
	switch mode {
	case RawMempoolModeIDs:
		result.Txids, err = GetRawMempool(ctx, c, RawMempoolIDs{})

	case RawMempoolModeIDsWithSequence:
		result.WithSequence, err = GetRawMempool(
			ctx, c, RawMempoolIDsWithSequence{},
		)

	case RawMempoolModeVerbose:
		result.Verbose, err = GetRawMempool(
			ctx, c, RawMempoolDetailed{},
		)

	default:
		return nil, fmt.Errorf("%w: getrawmempool mode %d",
			codec.ErrUnknownValue, mode)
	}
	if err != nil {
		return nil, err
	}

	return result, nil
}

// RawTransactionVerbosity selects a getrawtransaction result shape at
// runtime.
type RawTransactionVerbosity uint8

const (
	// RawTransactionHex returns the serialized transaction.
	RawTransactionHex RawTransactionVerbosity = 0

	// RawTransactionObject returns the decoded transaction as JSON.
	RawTransactionObject RawTransactionVerbosity = 1
)

// ResolveRawTransactionVerbosity maps a getrawtransaction verbosity onto
// the closed set of supported values.
func ResolveRawTransactionVerbosity(v uint8) (RawTransactionVerbosity,
	error) {

	switch verbosity := RawTransactionVerbosity(v); verbosity {
	case RawTransactionHex, RawTransactionObject:
		return verbosity, nil

	default:
		return 0, fmt.Errorf("%w: getrawtransaction verbosity %d",
			codec.ErrUnknownValue, v)
	}
}

// RawTransactionResult is a getrawtransaction result of a runtime selected
// verbosity. Only the field matching Kind is set.
type RawTransactionResult struct {
	Kind RawTransactionVerbosity

	Hex    codec.HexBytes
	Object json.RawMessage
}

// GetRawTransactionAny calls getrawtransaction with a verbosity chosen at
// runtime.
func (c *Client) GetRawTransactionAny(ctx context.Context, txid codec.Txid,
	verbosity RawTransactionVerbosity,
	blockHash fn.Option[codec.BlockHash]) (*RawTransactionResult, error) {

	var (
		result = &RawTransactionResult{Kind: verbosity}
		err    error
	)
	switch verbosity {
	case RawTransactionHex:
		result.Hex, err = GetRawTransaction(
			ctx, c, txid, BoolFalse{}, blockHash,
		)

	case RawTransactionObject:
		result.Object, err = GetRawTransaction(
			ctx, c, txid, BoolTrue{}, blockHash,
		)

	default:
		return nil, fmt.Errorf("%w: getrawtransaction verbosity %d",
			codec.ErrUnknownValue, verbosity)
	}
	if err != nil {
		return nil, err
	}

	return result, nil
}
