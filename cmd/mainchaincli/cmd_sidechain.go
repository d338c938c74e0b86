package main

import (
	"github.com/torkelrogstad/bip300301/codec"
	"github.com/urfave/cli"
)

var listActiveSidechainsCommand = cli.Command{
	Name:     "listactivesidechains",
	Category: "Sidechain",
	Usage:    "Lists the activated sidechains.",
	Action:   listActiveSidechains,
}

func listActiveSidechains(ctx *cli.Context) error {
	client, ctxc, cleanUp := getClient(ctx)
	defer cleanUp()

	resp, err := client.ListActiveSidechains(ctxc)
	if err != nil {
		return err
	}

	printRespJSON(ctx, resp)

	return nil
}

var listSidechainActivationStatusCommand = cli.Command{
	Name:     "listsidechainactivationstatus",
	Category: "Sidechain",
	Usage:    "Lists the proposals currently being voted on.",
	Action:   listSidechainActivationStatus,
}

func listSidechainActivationStatus(ctx *cli.Context) error {
	client, ctxc, cleanUp := getClient(ctx)
	defer cleanUp()

	resp, err := client.ListSidechainActivationStatus(ctxc)
	if err != nil {
		return err
	}

	printRespJSON(ctx, resp)

	return nil
}

var listSidechainProposalsCommand = cli.Command{
	Name:     "listsidechainproposals",
	Category: "Sidechain",
	Usage:    "Lists the sidechain proposals created by this node.",
	Action:   listSidechainProposals,
}

func listSidechainProposals(ctx *cli.Context) error {
	client, ctxc, cleanUp := getClient(ctx)
	defer cleanUp()

	resp, err := client.ListSidechainProposals(ctxc)
	if err != nil {
		return err
	}

	printRespJSON(ctx, resp)

	return nil
}

var createSidechainProposalCommand = cli.Command{
	Name:      "createsidechainproposal",
	Category:  "Sidechain",
	Usage:     "Proposes a new sidechain in a slot.",
	ArgsUsage: "nsidechain title description",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "nsidechain",
			Usage: "the slot to propose the sidechain in",
		},
		cli.StringFlag{
			Name:  "title",
			Usage: "the title of the sidechain",
		},
		cli.StringFlag{
			Name:  "description",
			Usage: "a description of the sidechain",
		},
	},
	Action: createSidechainProposal,
}

func createSidechainProposal(ctx *cli.Context) error {
	args := newArgParser(ctx)
	sidechain, err := args.sidechain("nsidechain")
	if err != nil {
		return err
	}
	title, err := args.required("title")
	if err != nil {
		return err
	}
	description, err := args.required("description")
	if err != nil {
		return err
	}

	client, ctxc, cleanUp := getClient(ctx)
	defer cleanUp()

	resp, err := client.CreateSidechainProposal(
		ctxc, sidechain, title, description,
	)
	if err != nil {
		return err
	}

	printRespJSON(ctx, resp)

	return nil
}

var createSidechainDepositCommand = cli.Command{
	Name:      "createsidechaindeposit",
	Category:  "Sidechain",
	Usage:     "Deposits coins into a sidechain.",
	ArgsUsage: "nsidechain depositaddress amount fee",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "nsidechain",
			Usage: "the slot of the sidechain",
		},
		cli.StringFlag{
			Name:  "depositaddress",
			Usage: "the sidechain address to credit",
		},
		cli.StringFlag{
			Name:  "amount",
			Usage: "the amount to deposit, in BTC",
		},
		cli.StringFlag{
			Name:  "fee",
			Usage: "the fee to pay, in BTC",
		},
	},
	Action: createSidechainDeposit,
}

func createSidechainDeposit(ctx *cli.Context) error {
	args := newArgParser(ctx)
	sidechain, err := args.sidechain("nsidechain")
	if err != nil {
		return err
	}
	depositAddress, err := args.required("depositaddress")
	if err != nil {
		return err
	}
	amount, err := args.amount("amount")
	if err != nil {
		return err
	}
	fee, err := args.amount("fee")
	if err != nil {
		return err
	}

	client, ctxc, cleanUp := getClient(ctx)
	defer cleanUp()

	resp, err := client.CreateSidechainDeposit(
		ctxc, sidechain, depositAddress, amount, fee,
	)
	if err != nil {
		return err
	}

	printRespJSON(ctx, resp)

	return nil
}

var countSidechainDepositsCommand = cli.Command{
	Name:      "countsidechaindeposits",
	Category:  "Sidechain",
	Usage:     "Counts the deposits made to a sidechain.",
	ArgsUsage: "nsidechain",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "nsidechain",
			Usage: "the slot of the sidechain",
		},
	},
	Action: countSidechainDeposits,
}

func countSidechainDeposits(ctx *cli.Context) error {
	args := newArgParser(ctx)
	sidechain, err := args.sidechain("nsidechain")
	if err != nil {
		return err
	}

	client, ctxc, cleanUp := getClient(ctx)
	defer cleanUp()

	resp, err := client.CountSidechainDeposits(ctxc, sidechain)
	if err != nil {
		return err
	}

	printRespJSON(ctx, resp)

	return nil
}

var listSidechainDepositsByBlockCommand = cli.Command{
	Name:      "listsidechaindepositsbyblock",
	Category:  "Sidechain",
	Usage:     "Lists the deposits to a sidechain up to a block.",
	ArgsUsage: "nsidechain end_blockhash [start_blockhash]",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "nsidechain",
			Usage: "the slot of the sidechain",
		},
		cli.StringFlag{
			Name:  "end_blockhash",
			Usage: "the last block to include",
		},
		cli.StringFlag{
			Name:  "start_blockhash",
			Usage: "the first block to include",
		},
	},
	Action: listSidechainDepositsByBlock,
}

func listSidechainDepositsByBlock(ctx *cli.Context) error {
	args := newArgParser(ctx)
	sidechain, err := args.sidechain("nsidechain")
	if err != nil {
		return err
	}
	end, err := args.optionalBlockHash("end_blockhash")
	if err != nil {
		return err
	}
	start, err := args.optionalBlockHash("start_blockhash")
	if err != nil {
		return err
	}

	client, ctxc, cleanUp := getClient(ctx)
	defer cleanUp()

	resp, err := client.ListSidechainDepositsByBlock(
		ctxc, sidechain, end, start,
	)
	if err != nil {
		return err
	}

	printRespJSON(ctx, resp)

	return nil
}

var listWithdrawalStatusCommand = cli.Command{
	Name:      "listwithdrawalstatus",
	Category:  "Sidechain",
	Usage:     "Lists the withdrawal bundles pending for a sidechain.",
	ArgsUsage: "nsidechain",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "nsidechain",
			Usage: "the slot of the sidechain",
		},
	},
	Action: listWithdrawalStatus,
}

func listWithdrawalStatus(ctx *cli.Context) error {
	args := newArgParser(ctx)
	sidechain, err := args.sidechain("nsidechain")
	if err != nil {
		return err
	}

	client, ctxc, cleanUp := getClient(ctx)
	defer cleanUp()

	resp, err := client.ListWithdrawalStatus(ctxc, sidechain)
	if err != nil {
		return err
	}

	printRespJSON(ctx, resp)

	return nil
}

var listSpentWithdrawalsCommand = cli.Command{
	Name:     "listspentwithdrawals",
	Category: "Sidechain",
	Usage:    "Lists the withdrawal bundles that were paid out.",
	Action:   listSpentWithdrawals,
}

func listSpentWithdrawals(ctx *cli.Context) error {
	client, ctxc, cleanUp := getClient(ctx)
	defer cleanUp()

	resp, err := client.ListSpentWithdrawals(ctxc)
	if err != nil {
		return err
	}

	printRespJSON(ctx, resp)

	return nil
}

var listFailedWithdrawalsCommand = cli.Command{
	Name:     "listfailedwithdrawals",
	Category: "Sidechain",
	Usage:    "Lists the withdrawal bundles that failed to gather work.",
	Action:   listFailedWithdrawals,
}

func listFailedWithdrawals(ctx *cli.Context) error {
	client, ctxc, cleanUp := getClient(ctx)
	defer cleanUp()

	resp, err := client.ListFailedWithdrawals(ctxc)
	if err != nil {
		return err
	}

	printRespJSON(ctx, resp)

	return nil
}

var receiveWithdrawalBundleCommand = cli.Command{
	Name:      "receivewithdrawalbundle",
	Category:  "Sidechain",
	Usage:     "Hands a withdrawal bundle transaction to the node.",
	ArgsUsage: "nsidechain rawtx",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "nsidechain",
			Usage: "the slot of the sidechain",
		},
		cli.StringFlag{
			Name:  "rawtx",
			Usage: "the hex encoded bundle transaction",
		},
	},
	Action: receiveWithdrawalBundle,
}

func receiveWithdrawalBundle(ctx *cli.Context) error {
	args := newArgParser(ctx)
	sidechain, err := args.sidechain("nsidechain")
	if err != nil {
		return err
	}
	rawTxHex, err := args.required("rawtx")
	if err != nil {
		return err
	}
	rawTx, err := codec.DecodeHex(rawTxHex)
	if err != nil {
		return err
	}

	client, ctxc, cleanUp := getClient(ctx)
	defer cleanUp()

	resp, err := client.ReceiveWithdrawalBundle(ctxc, sidechain, rawTx)
	if err != nil {
		return err
	}

	printRespJSON(ctx, resp)

	return nil
}

var createBmmCriticalDataTxCommand = cli.Command{
	Name:      "createbmmcriticaldatatx",
	Category:  "Sidechain",
	Usage:     "Creates a blind merged mining request.",
	ArgsUsage: "amount height criticalhash nsidechain prevbytes",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "amount",
			Usage: "the bid, in BTC",
		},
		cli.StringFlag{
			Name:  "height",
			Usage: "the mainchain height the request is valid at",
		},
		cli.StringFlag{
			Name:  "criticalhash",
			Usage: "the sidechain block hash to commit to",
		},
		cli.StringFlag{
			Name:  "nsidechain",
			Usage: "the slot of the sidechain",
		},
		cli.StringFlag{
			Name:  "prevbytes",
			Usage: "the last 4 bytes of the previous block hash",
		},
	},
	Action: createBmmCriticalDataTx,
}

func createBmmCriticalDataTx(ctx *cli.Context) error {
	args := newArgParser(ctx)
	amount, err := args.amount("amount")
	if err != nil {
		return err
	}
	height, err := args.uint32("height")
	if err != nil {
		return err
	}
	criticalHash, err := args.blockHash("criticalhash")
	if err != nil {
		return err
	}
	sidechain, err := args.sidechain("nsidechain")
	if err != nil {
		return err
	}
	prevBytes, err := args.required("prevbytes")
	if err != nil {
		return err
	}

	client, ctxc, cleanUp := getClient(ctx)
	defer cleanUp()

	resp, err := client.CreateBmmCriticalDataTx(
		ctxc, amount, height, criticalHash, sidechain, prevBytes,
	)
	if err != nil {
		return err
	}

	printRespJSON(ctx, resp)

	return nil
}

var verifyBmmCommand = cli.Command{
	Name:      "verifybmm",
	Category:  "Sidechain",
	Usage:     "Checks that a block carries a BMM commitment.",
	ArgsUsage: "blockhash criticalhash nsidechain",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "blockhash",
			Usage: "the mainchain block to check",
		},
		cli.StringFlag{
			Name:  "criticalhash",
			Usage: "the committed sidechain block hash",
		},
		cli.StringFlag{
			Name:  "nsidechain",
			Usage: "the slot of the sidechain",
		},
	},
	Action: verifyBmm,
}

func verifyBmm(ctx *cli.Context) error {
	args := newArgParser(ctx)
	hash, err := args.blockHash("blockhash")
	if err != nil {
		return err
	}
	criticalHash, err := args.blockHash("criticalhash")
	if err != nil {
		return err
	}
	sidechain, err := args.sidechain("nsidechain")
	if err != nil {
		return err
	}

	client, ctxc, cleanUp := getClient(ctx)
	defer cleanUp()

	resp, err := client.VerifyBmm(ctxc, hash, criticalHash, sidechain)
	if err != nil {
		return err
	}

	printRespJSON(ctx, resp)

	return nil
}
