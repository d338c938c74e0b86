package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/btcsuite/btcd/rpcclient"
	"github.com/btcsuite/btclog/v2"
	"github.com/davecgh/go-spew/spew"
	flags "github.com/jessevdk/go-flags"
	"github.com/torkelrogstad/bip300301/build"
	"github.com/torkelrogstad/bip300301/mainchain"
	"github.com/torkelrogstad/bip300301/rpccfg"
	"github.com/urfave/cli"
)

const defaultConfigFilename = "mainchaincli.conf"

var (
	defaultConfigFile = filepath.Join(
		rpccfg.DefaultMainchain().Dir, defaultConfigFilename,
	)
)

// config is the layout of the optional config file.
type config struct {
	Mainchain *rpccfg.Mainchain `group:"mainchain" namespace:"mainchain"`
	Log       *build.LogConfig  `group:"log" namespace:"log"`
}

func defaultConfig() *config {
	return &config{
		Mainchain: rpccfg.DefaultMainchain(),
		Log:       build.DefaultLogConfig(),
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[mainchaincli] %v\n", err)
	os.Exit(1)
}

// loadConfig builds the effective config: defaults, then the config file if
// present, then any global flag the user set explicitly.
func loadConfig(ctx *cli.Context) (*config, error) {
	cfg := defaultConfig()

	configFile := ctx.GlobalString("configfile")
	switch _, err := os.Stat(configFile); {
	case err == nil:
		parser := flags.NewParser(cfg, flags.Default)
		err := flags.NewIniParser(parser).ParseFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("unable to parse %v: %w",
				configFile, err)
		}

	case errors.Is(err, os.ErrNotExist):
		// A missing default config file is fine, an explicitly
		// requested one is not.
		if ctx.GlobalIsSet("configfile") {
			return nil, err
		}

	default:
		return nil, err
	}

	m := cfg.Mainchain
	if ctx.GlobalIsSet("rpchost") {
		m.RPCHost = ctx.GlobalString("rpchost")
	}
	if ctx.GlobalIsSet("rpcuser") {
		m.RPCUser = ctx.GlobalString("rpcuser")
	}
	if ctx.GlobalIsSet("rpcpass") {
		m.RPCPass = ctx.GlobalString("rpcpass")
	}
	if ctx.GlobalIsSet("rpccookie") {
		m.RPCCookie = ctx.GlobalString("rpccookie")
	}
	if ctx.GlobalIsSet("datadir") {
		m.Dir = ctx.GlobalString("datadir")
	}
	if ctx.GlobalIsSet("network") {
		m.Network = ctx.GlobalString("network")
	}
	if ctx.GlobalIsSet("timeout") {
		m.Timeout = ctx.GlobalDuration("timeout")
	}
	if ctx.GlobalIsSet("debuglevel") {
		cfg.Log.Console.Level = ctx.GlobalString("debuglevel")
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Log.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setupLogging routes the library logs to stderr at the configured level.
func setupLogging(cfg *build.LogConfig) error {
	if cfg.Console.Disable {
		mainchain.DisableLog()
		return nil
	}

	handler := btclog.NewDefaultHandler(
		os.Stderr, cfg.Console.HandlerOptions()...,
	)
	manager := build.NewSubLoggerManager(handler)
	mainchain.UseLogger(build.NewSubLogger(
		mainchain.Subsystem, manager.GenSubLogger,
	))

	return build.ParseAndSetDebugLevels(cfg.Console.Level, manager)
}

// getClient connects to the node described by the global flags. The
// returned context is bounded by the configured timeout and the returned
// function releases both.
func getClient(ctx *cli.Context) (*mainchain.Client, context.Context,
	func()) {

	cfg, err := loadConfig(ctx)
	if err != nil {
		fatal(err)
	}
	if err := setupLogging(cfg.Log); err != nil {
		fatal(err)
	}

	connCfg, err := cfg.Mainchain.ConnConfig()
	if err != nil {
		fatal(err)
	}

	rpcClient, err := rpcclient.New(connCfg, nil)
	if err != nil {
		fatal(fmt.Errorf("unable to create rpc client: %w", err))
	}

	client := mainchain.NewClient(
		mainchain.NewRPCClientTransport(rpcClient),
	)

	ctxc, cancel := context.WithTimeout(
		context.Background(), cfg.Mainchain.Timeout,
	)
	cleanUp := func() {
		cancel()
		rpcClient.Shutdown()
	}

	return client, ctxc, cleanUp
}

func printJSON(resp interface{}) {
	b, err := json.MarshalIndent(resp, "", "    ")
	if err != nil {
		fatal(err)
	}

	fmt.Printf("%s\n", b)
}

// printRespJSON prints a call result as indented JSON, or as a go-spew dump
// of the decoded value when --raw is set.
func printRespJSON(ctx *cli.Context, resp interface{}) {
	if ctx.GlobalBool("raw") {
		spew.Dump(resp)
		return
	}

	printJSON(resp)
}

var globalFlags = []cli.Flag{
	cli.StringFlag{
		Name:      "configfile",
		Value:     defaultConfigFile,
		Usage:     "Path to an optional config file.",
		TakesFile: true,
	},
	cli.StringFlag{
		Name: "rpchost",
		Usage: "The host:port of the node. If the port is " +
			"omitted the default port of the network is used.",
	},
	cli.StringFlag{
		Name:  "rpcuser",
		Usage: "Username for RPC connections.",
	},
	cli.StringFlag{
		Name:  "rpcpass",
		Usage: "Password for RPC connections.",
	},
	cli.StringFlag{
		Name:      "rpccookie",
		Usage:     "Path to the node's auth cookie.",
		TakesFile: true,
	},
	cli.StringFlag{
		Name:      "datadir",
		Usage:     "The node's data directory.",
		TakesFile: true,
	},
	cli.StringFlag{
		Name: "network, n",
		Usage: "The network the node is running on, e.g. " +
			"main, signet, regtest.",
	},
	cli.DurationFlag{
		Name:  "timeout",
		Usage: "Timeout applied to the call.",
	},
	cli.StringFlag{
		Name: "debuglevel",
		Usage: "Log level for all subsystems, or " +
			"subsystem=level pairs.",
	},
	cli.BoolFlag{
		Name:  "raw",
		Usage: "Dump the decoded result instead of JSON.",
	},
}

func main() {
	app := cli.NewApp()
	app.Name = "mainchaincli"
	app.Usage = "typed client for a drivechain enabled bitcoin node"
	app.Flags = globalFlags
	app.Commands = []cli.Command{
		getBlockchainInfoCommand,
		getBestBlockHashCommand,
		getBlockCountCommand,
		getBlockHeaderCommand,
		getHeadersCommand,
		getBlockCommand,
		getRawMempoolCommand,
		getMempoolEntryCommand,
		getRawTransactionCommand,
		getNetworkInfoCommand,
		getTxOutSetInfoCommand,
		invalidateBlockCommand,
		stopCommand,
		generateCommand,
		generateToAddressCommand,
		getBlockTemplateCommand,
		getBlockCommitmentsCommand,
		submitBlockCommand,
		prioritiseTransactionCommand,
		sendRawTransactionCommand,
		getNewAddressCommand,
		getAddressInfoCommand,
		listActiveSidechainsCommand,
		listSidechainActivationStatusCommand,
		listSidechainProposalsCommand,
		createSidechainProposalCommand,
		createSidechainDepositCommand,
		countSidechainDepositsCommand,
		listSidechainDepositsByBlockCommand,
		listWithdrawalStatusCommand,
		listSpentWithdrawalsCommand,
		listFailedWithdrawalsCommand,
		receiveWithdrawalBundleCommand,
		createBmmCriticalDataTxCommand,
		verifyBmmCommand,
	}

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}
