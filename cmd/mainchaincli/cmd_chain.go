package main

import (
	"fmt"
	"math"

	"github.com/torkelrogstad/bip300301/codec"
	"github.com/torkelrogstad/bip300301/mainchain"
	"github.com/urfave/cli"
)

var getBlockchainInfoCommand = cli.Command{
	Name:     "getblockchaininfo",
	Category: "Chain",
	Usage:    "Returns the state of the block chain.",
	Action:   getBlockchainInfo,
}

func getBlockchainInfo(ctx *cli.Context) error {
	client, ctxc, cleanUp := getClient(ctx)
	defer cleanUp()

	resp, err := client.GetBlockchainInfo(ctxc)
	if err != nil {
		return err
	}

	printRespJSON(ctx, resp)

	return nil
}

var getBestBlockHashCommand = cli.Command{
	Name:     "getbestblockhash",
	Category: "Chain",
	Usage:    "Returns the hash of the tip of the best chain.",
	Action:   getBestBlockHash,
}

func getBestBlockHash(ctx *cli.Context) error {
	client, ctxc, cleanUp := getClient(ctx)
	defer cleanUp()

	resp, err := client.GetBestBlockHash(ctxc)
	if err != nil {
		return err
	}

	printRespJSON(ctx, resp)

	return nil
}

var getBlockCountCommand = cli.Command{
	Name:     "getblockcount",
	Category: "Chain",
	Usage:    "Returns the height of the best chain.",
	Action:   getBlockCount,
}

func getBlockCount(ctx *cli.Context) error {
	client, ctxc, cleanUp := getClient(ctx)
	defer cleanUp()

	resp, err := client.GetBlockCount(ctxc)
	if err != nil {
		return err
	}

	printRespJSON(ctx, resp)

	return nil
}

var getBlockHeaderCommand = cli.Command{
	Name:      "getblockheader",
	Category:  "Chain",
	Usage:     "Returns the header of a block.",
	ArgsUsage: "blockhash",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "blockhash",
			Usage: "the hash of the block",
		},
	},
	Action: getBlockHeader,
}

func getBlockHeader(ctx *cli.Context) error {
	args := newArgParser(ctx)
	hash, err := args.blockHash("blockhash")
	if err != nil {
		return err
	}

	client, ctxc, cleanUp := getClient(ctx)
	defer cleanUp()

	resp, err := client.GetBlockHeader(ctxc, hash)
	if err != nil {
		return err
	}

	printRespJSON(ctx, resp)

	return nil
}

var getHeadersCommand = cli.Command{
	Name:      "getheaders",
	Category:  "Chain",
	Usage:     "Returns the headers of several blocks.",
	ArgsUsage: "blockhash...",
	Action:    getHeaders,
}

func getHeaders(ctx *cli.Context) error {
	if !ctx.Args().Present() {
		return cli.ShowCommandHelp(ctx, "getheaders")
	}

	hashes := make([]codec.BlockHash, 0, ctx.NArg())
	for _, arg := range ctx.Args() {
		hash, err := codec.NewBlockHashFromStr(arg)
		if err != nil {
			return err
		}
		hashes = append(hashes, hash)
	}

	client, ctxc, cleanUp := getClient(ctx)
	defer cleanUp()

	resp, err := client.GetHeaders(ctxc, hashes)
	if err != nil {
		return err
	}

	printRespJSON(ctx, resp)

	return nil
}

var getBlockCommand = cli.Command{
	Name:      "getblock",
	Category:  "Chain",
	Usage:     "Returns a block at the chosen verbosity.",
	ArgsUsage: "blockhash",
	Description: `
	Verbosity 0 returns the serialized block, 1 the block with its txids
	and 2 the block with every transaction decoded.`,
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "blockhash",
			Usage: "the hash of the block",
		},
		cli.UintFlag{
			Name:  "verbosity",
			Value: 1,
			Usage: "0, 1 or 2",
		},
	},
	Action: getBlock,
}

func getBlock(ctx *cli.Context) error {
	args := newArgParser(ctx)
	hash, err := args.blockHash("blockhash")
	if err != nil {
		return err
	}

	v, err := verbosityFlag(ctx)
	if err != nil {
		return err
	}
	verbosity, err := mainchain.ResolveBlockVerbosity(v)
	if err != nil {
		return err
	}

	client, ctxc, cleanUp := getClient(ctx)
	defer cleanUp()

	resp, err := client.GetBlockAny(ctxc, hash, verbosity)
	if err != nil {
		return err
	}

	switch resp.Kind {
	case mainchain.BlockVerbosityRaw:
		if ctx.GlobalBool("raw") {
			printRespJSON(ctx, resp.Raw)
			return nil
		}

		blockHex, err := codec.EncodeConsensusHex(resp.Raw, codec.Lower)
		if err != nil {
			return err
		}
		printJSON(blockHex)

	case mainchain.BlockVerbosityObject:
		printRespJSON(ctx, resp.Block)

	case mainchain.BlockVerbosityTxs:
		printRespJSON(ctx, resp.BlockWithTxs)
	}

	return nil
}

var getNetworkInfoCommand = cli.Command{
	Name:     "getnetworkinfo",
	Category: "Chain",
	Usage:    "Returns the node's P2P networking state.",
	Action:   getNetworkInfo,
}

func getNetworkInfo(ctx *cli.Context) error {
	client, ctxc, cleanUp := getClient(ctx)
	defer cleanUp()

	resp, err := client.GetNetworkInfo(ctxc)
	if err != nil {
		return err
	}

	printRespJSON(ctx, resp)

	return nil
}

var getTxOutSetInfoCommand = cli.Command{
	Name:     "gettxoutsetinfo",
	Category: "Chain",
	Usage:    "Returns statistics about the UTXO set.",
	Action:   getTxOutSetInfo,
}

func getTxOutSetInfo(ctx *cli.Context) error {
	client, ctxc, cleanUp := getClient(ctx)
	defer cleanUp()

	resp, err := client.GetTxOutSetInfo(ctxc)
	if err != nil {
		return err
	}

	printRespJSON(ctx, resp)

	return nil
}

var invalidateBlockCommand = cli.Command{
	Name:      "invalidateblock",
	Category:  "Chain",
	Usage:     "Marks a block as invalid.",
	ArgsUsage: "blockhash",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "blockhash",
			Usage: "the hash of the block to invalidate",
		},
	},
	Action: invalidateBlock,
}

func invalidateBlock(ctx *cli.Context) error {
	args := newArgParser(ctx)
	hash, err := args.blockHash("blockhash")
	if err != nil {
		return err
	}

	client, ctxc, cleanUp := getClient(ctx)
	defer cleanUp()

	return client.InvalidateBlock(ctxc, hash)
}

var stopCommand = cli.Command{
	Name:     "stop",
	Category: "Chain",
	Usage:    "Stops the node.",
	Action:   stop,
}

func stop(ctx *cli.Context) error {
	client, ctxc, cleanUp := getClient(ctx)
	defer cleanUp()

	resp, err := client.Stop(ctxc)
	if err != nil {
		return err
	}

	printJSON(resp)

	return nil
}

var getRawMempoolCommand = cli.Command{
	Name:     "getrawmempool",
	Category: "Mempool",
	Usage:    "Returns the transactions in the mempool.",
	Flags: []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "return every entry keyed by txid",
		},
		cli.BoolFlag{
			Name: "sequence",
			Usage: "return the txids together with the mempool " +
				"sequence number",
		},
	},
	Action: getRawMempool,
}

func getRawMempool(ctx *cli.Context) error {
	mode, err := mainchain.ResolveRawMempoolMode(
		ctx.Bool("verbose"), ctx.Bool("sequence"),
	)
	if err != nil {
		return err
	}

	client, ctxc, cleanUp := getClient(ctx)
	defer cleanUp()

	resp, err := client.GetRawMempoolAny(ctxc, mode)
	if err != nil {
		return err
	}

	switch resp.Kind {
	case mainchain.RawMempoolModeIDs:
		printRespJSON(ctx, resp.Txids)

	case mainchain.RawMempoolModeIDsWithSequence:
		printRespJSON(ctx, resp.WithSequence)

	case mainchain.RawMempoolModeVerbose:
		printRespJSON(ctx, resp.Verbose)
	}

	return nil
}

var getMempoolEntryCommand = cli.Command{
	Name:      "getmempoolentry",
	Category:  "Mempool",
	Usage:     "Returns a single mempool entry.",
	ArgsUsage: "txid",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "txid",
			Usage: "the id of the transaction",
		},
	},
	Action: getMempoolEntry,
}

func getMempoolEntry(ctx *cli.Context) error {
	args := newArgParser(ctx)
	txid, err := args.txid("txid")
	if err != nil {
		return err
	}

	client, ctxc, cleanUp := getClient(ctx)
	defer cleanUp()

	resp, err := client.GetMempoolEntry(ctxc, txid)
	if err != nil {
		return err
	}

	printRespJSON(ctx, resp)

	return nil
}

var getRawTransactionCommand = cli.Command{
	Name:      "getrawtransaction",
	Category:  "Mempool",
	Usage:     "Returns a transaction, serialized or decoded.",
	ArgsUsage: "txid [blockhash]",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "txid",
			Usage: "the id of the transaction",
		},
		cli.StringFlag{
			Name:  "blockhash",
			Usage: "the block to look the transaction up in",
		},
		cli.UintFlag{
			Name:  "verbosity",
			Usage: "0 for the serialized transaction, 1 to decode it",
		},
	},
	Action: getRawTransaction,
}

func getRawTransaction(ctx *cli.Context) error {
	args := newArgParser(ctx)
	txid, err := args.txid("txid")
	if err != nil {
		return err
	}
	blockHash, err := args.optionalBlockHash("blockhash")
	if err != nil {
		return err
	}

	v, err := verbosityFlag(ctx)
	if err != nil {
		return err
	}
	verbosity, err := mainchain.ResolveRawTransactionVerbosity(v)
	if err != nil {
		return err
	}

	client, ctxc, cleanUp := getClient(ctx)
	defer cleanUp()

	resp, err := client.GetRawTransactionAny(
		ctxc, txid, verbosity, blockHash,
	)
	if err != nil {
		return err
	}

	switch resp.Kind {
	case mainchain.RawTransactionHex:
		printRespJSON(ctx, resp.Hex)

	case mainchain.RawTransactionObject:
		printRespJSON(ctx, resp.Object)
	}

	return nil
}

// verbosityFlag reads the verbosity flag, rejecting values that do not fit
// the wire type.
func verbosityFlag(ctx *cli.Context) (uint8, error) {
	v := ctx.Uint("verbosity")
	if v > math.MaxUint8 {
		return 0, fmt.Errorf("invalid verbosity: %d", v)
	}

	return uint8(v), nil
}
