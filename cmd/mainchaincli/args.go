package main

import (
	"fmt"
	"strconv"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/torkelrogstad/bip300301/codec"
	"github.com/torkelrogstad/bip300301/mainchain"
	"github.com/torkelrogstad/bip300301/rpccfg"
	"github.com/urfave/cli"
)

// argParser reads command parameters either from a flag of the same name or
// from the next positional argument.
type argParser struct {
	ctx  *cli.Context
	args cli.Args
}

func newArgParser(ctx *cli.Context) *argParser {
	return &argParser{
		ctx:  ctx,
		args: ctx.Args(),
	}
}

func (p *argParser) optional(name string) (string, bool) {
	switch {
	case p.ctx.IsSet(name):
		return p.ctx.String(name), true

	case p.args.Present():
		s := p.args.First()
		p.args = p.args.Tail()

		return s, true
	}

	return "", false
}

func (p *argParser) required(name string) (string, error) {
	s, ok := p.optional(name)
	if !ok {
		return "", fmt.Errorf("%s argument missing", name)
	}

	return s, nil
}

func (p *argParser) blockHash(name string) (codec.BlockHash, error) {
	s, err := p.required(name)
	if err != nil {
		return codec.BlockHash{}, err
	}

	return codec.NewBlockHashFromStr(s)
}

func (p *argParser) optionalBlockHash(
	name string) (fn.Option[codec.BlockHash], error) {

	s, ok := p.optional(name)
	if !ok {
		return fn.None[codec.BlockHash](), nil
	}

	hash, err := codec.NewBlockHashFromStr(s)
	if err != nil {
		return fn.None[codec.BlockHash](), err
	}

	return fn.Some(hash), nil
}

func (p *argParser) txid(name string) (codec.Txid, error) {
	s, err := p.required(name)
	if err != nil {
		return codec.Txid{}, err
	}

	return codec.NewTxidFromStr(s)
}

func (p *argParser) uint32(name string) (uint32, error) {
	s, err := p.required(name)
	if err != nil {
		return 0, err
	}

	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}

	return uint32(n), nil
}

func (p *argParser) int64(name string) (int64, error) {
	s, err := p.required(name)
	if err != nil {
		return 0, err
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}

	return n, nil
}

func (p *argParser) sidechain(name string) (mainchain.SidechainID, error) {
	s, err := p.required(name)
	if err != nil {
		return 0, err
	}

	n, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}

	return mainchain.SidechainID(n), nil
}

func parseAmount(name, s string) (codec.AmountBTC, error) {
	amt, err := codec.ParseAmountBTC(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}

	return codec.NewAmountBTC(amt), nil
}

func (p *argParser) amount(name string) (codec.AmountBTC, error) {
	s, err := p.required(name)
	if err != nil {
		return 0, err
	}

	return parseAmount(name, s)
}

func (p *argParser) optionalAmount(
	name string) (fn.Option[codec.AmountBTC], error) {

	s, ok := p.optional(name)
	if !ok {
		return fn.None[codec.AmountBTC](), nil
	}

	amt, err := parseAmount(name, s)
	if err != nil {
		return fn.None[codec.AmountBTC](), err
	}

	return fn.Some(amt), nil
}

// address parses an address for the configured network so that a mainnet
// address is not sent to a regtest node by mistake.
func (p *argParser) address(name string) (mainchain.Address, error) {
	s, err := p.required(name)
	if err != nil {
		return "", err
	}

	network, err := mainchain.ParseNetwork(networkName(p.ctx))
	if err != nil {
		return "", err
	}
	params, err := network.Params()
	if err != nil {
		// No params to check against, pass the address through.
		return mainchain.Address(s), nil
	}

	addr, err := btcutil.DecodeAddress(s, params)
	if err != nil {
		return "", fmt.Errorf("invalid %s: %w", name, err)
	}
	if !addr.IsForNet(params) {
		return "", fmt.Errorf("%s is not a %v address", s, network)
	}

	return mainchain.NewAddress(addr), nil
}

func networkName(ctx *cli.Context) string {
	if ctx.GlobalIsSet("network") {
		return ctx.GlobalString("network")
	}

	return rpccfg.DefaultMainchain().Network
}
