package main

import (
	"github.com/btcsuite/btcd/wire"
	"github.com/torkelrogstad/bip300301/codec"
	"github.com/torkelrogstad/bip300301/mainchain"
	"github.com/urfave/cli"
)

var generateCommand = cli.Command{
	Name:      "generate",
	Category:  "Mining",
	Usage:     "Mines blocks to the node's wallet.",
	ArgsUsage: "num_blocks",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "num_blocks",
			Usage: "the number of blocks to mine",
		},
	},
	Action: generate,
}

func generate(ctx *cli.Context) error {
	args := newArgParser(ctx)
	numBlocks, err := args.uint32("num_blocks")
	if err != nil {
		return err
	}

	client, ctxc, cleanUp := getClient(ctx)
	defer cleanUp()

	resp, err := client.Generate(ctxc, numBlocks)
	if err != nil {
		return err
	}

	printRespJSON(ctx, resp)

	return nil
}

var generateToAddressCommand = cli.Command{
	Name:      "generatetoaddress",
	Category:  "Mining",
	Usage:     "Mines blocks paying the coinbase to an address.",
	ArgsUsage: "num_blocks address",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "num_blocks",
			Usage: "the number of blocks to mine",
		},
		cli.StringFlag{
			Name:  "address",
			Usage: "the address to pay the coinbase to",
		},
	},
	Action: generateToAddress,
}

func generateToAddress(ctx *cli.Context) error {
	args := newArgParser(ctx)
	numBlocks, err := args.uint32("num_blocks")
	if err != nil {
		return err
	}
	addr, err := args.address("address")
	if err != nil {
		return err
	}

	client, ctxc, cleanUp := getClient(ctx)
	defer cleanUp()

	resp, err := client.GenerateToAddress(ctxc, numBlocks, addr)
	if err != nil {
		return err
	}

	printRespJSON(ctx, resp)

	return nil
}

var getBlockTemplateCommand = cli.Command{
	Name:     "getblocktemplate",
	Category: "Mining",
	Usage:    "Returns a template to mine the next block on.",
	Flags: []cli.Flag{
		cli.StringSliceFlag{
			Name:  "rule",
			Usage: "a rule the client supports, defaults to segwit",
		},
		cli.StringSliceFlag{
			Name:  "capability",
			Usage: "a capability the client supports",
		},
	},
	Action: getBlockTemplate,
}

func getBlockTemplate(ctx *cli.Context) error {
	req := mainchain.DefaultBlockTemplateRequest()
	if ctx.IsSet("rule") {
		req.Rules = ctx.StringSlice("rule")
	}
	if ctx.IsSet("capability") {
		req.Capabilities = ctx.StringSlice("capability")
	}

	client, ctxc, cleanUp := getClient(ctx)
	defer cleanUp()

	resp, err := client.GetBlockTemplate(ctxc, req)
	if err != nil {
		return err
	}

	printRespJSON(ctx, resp)

	return nil
}

var getBlockCommitmentsCommand = cli.Command{
	Name:      "getblockcommitments",
	Category:  "Mining",
	Usage:     "Lists the drivechain commitments in a block's coinbase.",
	ArgsUsage: "blockhash",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "blockhash",
			Usage: "the hash of the block",
		},
	},
	Action: getBlockCommitments,
}

func getBlockCommitments(ctx *cli.Context) error {
	args := newArgParser(ctx)
	hash, err := args.blockHash("blockhash")
	if err != nil {
		return err
	}

	client, ctxc, cleanUp := getClient(ctx)
	defer cleanUp()

	resp, err := client.GetBlockCommitments(ctxc, hash)
	if err != nil {
		return err
	}

	printRespJSON(ctx, resp)

	return nil
}

var submitBlockCommand = cli.Command{
	Name:      "submitblock",
	Category:  "Mining",
	Usage:     "Submits a serialized block to the node.",
	ArgsUsage: "hexdata",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "hexdata",
			Usage: "the hex encoded block",
		},
	},
	Action: submitBlock,
}

func submitBlock(ctx *cli.Context) error {
	args := newArgParser(ctx)
	hexData, err := args.required("hexdata")
	if err != nil {
		return err
	}
	block, err := codec.DecodeConsensusHex[wire.MsgBlock](hexData)
	if err != nil {
		return err
	}

	client, ctxc, cleanUp := getClient(ctx)
	defer cleanUp()

	return client.SubmitBlock(ctxc, block)
}

var prioritiseTransactionCommand = cli.Command{
	Name:      "prioritisetransaction",
	Category:  "Mempool",
	Usage:     "Changes the fee a mempool transaction is mined by.",
	ArgsUsage: "txid fee_delta",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "txid",
			Usage: "the id of the transaction",
		},
		cli.StringFlag{
			Name:  "fee_delta",
			Usage: "the fee delta in satoshis, may be negative",
		},
	},
	Action: prioritiseTransaction,
}

func prioritiseTransaction(ctx *cli.Context) error {
	args := newArgParser(ctx)
	txid, err := args.txid("txid")
	if err != nil {
		return err
	}
	feeDelta, err := args.int64("fee_delta")
	if err != nil {
		return err
	}

	client, ctxc, cleanUp := getClient(ctx)
	defer cleanUp()

	resp, err := client.PrioritiseTransaction(ctxc, txid, feeDelta)
	if err != nil {
		return err
	}

	printJSON(resp)

	return nil
}

var sendRawTransactionCommand = cli.Command{
	Name:      "sendrawtransaction",
	Category:  "Mempool",
	Usage:     "Broadcasts a serialized transaction.",
	ArgsUsage: "hexstring [maxfeerate] [maxburnamount]",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "hexstring",
			Usage: "the hex encoded transaction",
		},
		cli.StringFlag{
			Name:  "maxfeerate",
			Usage: "reject fee rates above this, in BTC/kvB",
		},
		cli.StringFlag{
			Name: "maxburnamount",
			Usage: "reject unspendable outputs above this " +
				"amount, in BTC",
		},
	},
	Action: sendRawTransaction,
}

func sendRawTransaction(ctx *cli.Context) error {
	args := newArgParser(ctx)
	hexString, err := args.required("hexstring")
	if err != nil {
		return err
	}
	tx, err := codec.DecodeConsensusHex[wire.MsgTx](hexString)
	if err != nil {
		return err
	}
	maxFeeRate, err := args.optionalAmount("maxfeerate")
	if err != nil {
		return err
	}
	maxBurnAmount, err := args.optionalAmount("maxburnamount")
	if err != nil {
		return err
	}

	client, ctxc, cleanUp := getClient(ctx)
	defer cleanUp()

	resp, err := client.SendRawTransaction(
		ctxc, tx, maxFeeRate, maxBurnAmount,
	)
	if err != nil {
		return err
	}

	printRespJSON(ctx, resp)

	return nil
}

var getNewAddressCommand = cli.Command{
	Name:     "getnewaddress",
	Category: "Wallet",
	Usage:    "Returns a new address from the node's wallet.",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "label",
			Usage: "the label to attach to the address",
		},
		cli.StringFlag{
			Name:  "address_type",
			Value: "bech32",
			Usage: "legacy, p2sh-segwit, bech32 or bech32m",
		},
	},
	Action: getNewAddress,
}

func getNewAddress(ctx *cli.Context) error {
	client, ctxc, cleanUp := getClient(ctx)
	defer cleanUp()

	resp, err := client.GetNewAddress(
		ctxc, ctx.String("label"), ctx.String("address_type"),
	)
	if err != nil {
		return err
	}

	printRespJSON(ctx, resp)

	return nil
}

var getAddressInfoCommand = cli.Command{
	Name:      "getaddressinfo",
	Category:  "Wallet",
	Usage:     "Returns what the wallet knows about an address.",
	ArgsUsage: "address",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "address",
			Usage: "the address to look up",
		},
	},
	Action: getAddressInfo,
}

func getAddressInfo(ctx *cli.Context) error {
	args := newArgParser(ctx)
	addr, err := args.address("address")
	if err != nil {
		return err
	}

	client, ctxc, cleanUp := getClient(ctx)
	defer cleanUp()

	resp, err := client.GetAddressInfo(ctxc, addr)
	if err != nil {
		return err
	}

	printRespJSON(ctx, resp)

	return nil
}
