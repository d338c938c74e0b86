package mainchain

import (
	"context"
	"encoding/json"

	"github.com/btcsuite/btcd/wire"
	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/torkelrogstad/bip300301/codec"
	"golang.org/x/sync/errgroup"
)

// CountSidechainDeposits returns the number of deposits made to a
// sidechain.
func (c *Client) CountSidechainDeposits(ctx context.Context,
	sidechain SidechainID) (uint32, error) {

	return call(
		ctx, c, "countsidechaindeposits", decodeJSON[uint32], sidechain,
	)
}

// CreateBmmCriticalDataTx creates a blind merged mining request paying
// amount for the inclusion of criticalHash in the coinbase at height. A
// height of zero lets the node use its current height.
func (c *Client) CreateBmmCriticalDataTx(ctx context.Context,
	amount codec.AmountBTC, height uint32, criticalHash codec.BlockHash,
	sidechain SidechainID, prevBytes string) (json.RawMessage, error) {

	return call(
		ctx, c, "createbmmcriticaldatatx", decodeRaw, amount, height,
		criticalHash, sidechain, prevBytes,
	)
}

// CreateSidechainDeposit deposits amount, paying fee, to an address on the
// given sidechain.
func (c *Client) CreateSidechainDeposit(ctx context.Context,
	sidechain SidechainID, depositAddress string, amount,
	fee codec.AmountBTC) (json.RawMessage, error) {

	return call(
		ctx, c, "createsidechaindeposit", decodeRaw, sidechain,
		depositAddress, amount, fee,
	)
}

// CreateSidechainProposal proposes a new sidechain in the given slot.
func (c *Client) CreateSidechainProposal(ctx context.Context,
	sidechain SidechainID, name,
	description string) (*SidechainProposal, error) {

	return call(
		ctx, c, "createsidechainproposal",
		decodeObject[SidechainProposal], sidechain, name, description,
	)
}

// Generate mines numBlocks blocks.
func (c *Client) Generate(ctx context.Context,
	numBlocks uint32) (json.RawMessage, error) {

	return call(ctx, c, "generate", decodeRaw, numBlocks)
}

// GenerateToAddress mines numBlocks blocks paying to addr.
func (c *Client) GenerateToAddress(ctx context.Context, numBlocks uint32,
	addr Address) ([]codec.BlockHash, error) {

	return call(
		ctx, c, "generatetoaddress", decodeList[codec.BlockHash],
		numBlocks, addr,
	)
}

// GetBlockCommitments returns the drivechain commitments in the coinbase of
// a block, in output order.
func (c *Client) GetBlockCommitments(ctx context.Context,
	hash codec.BlockHash) ([]TxOutCommitment, error) {

	return call(
		ctx, c, "getblockcommitments", DecodeBlockCommitments, hash,
	)
}

// GetBlockTemplate requests a block template.
func (c *Client) GetBlockTemplate(ctx context.Context,
	req BlockTemplateRequest) (*BlockTemplate, error) {

	return call(
		ctx, c, "getblocktemplate", decodeObject[BlockTemplate], req,
	)
}

// GetBlockchainInfo returns the state of the node's chain.
func (c *Client) GetBlockchainInfo(
	ctx context.Context) (*BlockchainInfo, error) {

	return call(ctx, c, "getblockchaininfo", decodeObject[BlockchainInfo])
}

// GetMempoolEntry returns the mempool entry of a transaction.
func (c *Client) GetMempoolEntry(ctx context.Context,
	txid codec.Txid) (*RawMempoolTxInfo, error) {

	return call(
		ctx, c, "getmempoolentry", decodeObject[RawMempoolTxInfo], txid,
	)
}

// GetNetworkInfo returns the state of the node's networking.
func (c *Client) GetNetworkInfo(ctx context.Context) (*NetworkInfo, error) {
	return call(ctx, c, "getnetworkinfo", decodeObject[NetworkInfo])
}

// GetBestBlockHash returns the hash of the chain tip.
func (c *Client) GetBestBlockHash(
	ctx context.Context) (codec.BlockHash, error) {

	return call(ctx, c, "getbestblockhash", decodeJSON[codec.BlockHash])
}

// GetBlockCount returns the height of the chain tip.
func (c *Client) GetBlockCount(ctx context.Context) (uint64, error) {
	return call(ctx, c, "getblockcount", decodeJSON[uint64])
}

// GetBlockHeader returns the header of a block. With a header cache
// configured, headers seen before are served without a call.
func (c *Client) GetBlockHeader(ctx context.Context,
	hash codec.BlockHash) (*Header, error) {

	if c.headers != nil {
		if header, ok := c.headers.Get(hash); ok {
			log.Tracef("Header %v served from cache", hash)
			return &header, nil
		}
	}

	header, err := call(
		ctx, c, "getblockheader", decodeObject[Header], hash,
	)
	if err != nil {
		return nil, err
	}

	if c.headers != nil {
		c.headers.Add(hash, *header)
	}

	return header, nil
}

// GetHeaders fetches the headers of many blocks, keeping at most the
// client's configured number of requests in flight. The result has the
// order of hashes. The first failure cancels the remaining requests.
func (c *Client) GetHeaders(ctx context.Context,
	hashes []codec.BlockHash) ([]*Header, error) {

	headers := make([]*Header, len(hashes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.maxConcurrentRequests)
	for i, hash := range hashes {
		g.Go(func() error {
			header, err := c.GetBlockHeader(gctx, hash)
			if err != nil {
				return err
			}
			headers[i] = header

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return headers, nil
}

// GetAddressInfo returns wallet information about an address.
func (c *Client) GetAddressInfo(ctx context.Context,
	addr Address) (*AddressInfo, error) {

	return call(
		ctx, c, "getaddressinfo", decodeObject[AddressInfo], addr,
	)
}

// GetNewAddress returns a new wallet address of the given type, e.g.
// "bech32".
func (c *Client) GetNewAddress(ctx context.Context, label,
	addressType string) (Address, error) {

	return call(
		ctx, c, "getnewaddress", decodeJSON[Address], label,
		addressType,
	)
}

// GetTxOutSetInfo returns statistics about the UTXO set.
func (c *Client) GetTxOutSetInfo(ctx context.Context) (*TxOutSetInfo, error) {
	return call(ctx, c, "gettxoutsetinfo", decodeObject[TxOutSetInfo])
}

// InvalidateBlock marks a block and its descendants invalid.
func (c *Client) InvalidateBlock(ctx context.Context,
	hash codec.BlockHash) error {

	_, err := call(ctx, c, "invalidateblock", decodeNull, hash)
	return err
}

// ListActiveSidechains returns the active sidechains. Their shape differs
// between node versions, so they are returned undecoded.
func (c *Client) ListActiveSidechains(
	ctx context.Context) ([]json.RawMessage, error) {

	return call(
		ctx, c, "listactivesidechains", decodeList[json.RawMessage],
	)
}

// ListSidechainActivationStatus returns the sidechain proposals that are
// being voted on.
func (c *Client) ListSidechainActivationStatus(
	ctx context.Context) ([]SidechainActivationStatus, error) {

	return call(
		ctx, c, "listsidechainactivationstatus",
		decodeList[SidechainActivationStatus],
	)
}

// ListSidechainProposals returns the sidechain proposals created by this
// node.
func (c *Client) ListSidechainProposals(
	ctx context.Context) ([]SidechainInfo, error) {

	return call(
		ctx, c, "listsidechainproposals", decodeList[SidechainInfo],
	)
}

// ListFailedWithdrawals returns the withdrawal bundles that failed.
func (c *Client) ListFailedWithdrawals(
	ctx context.Context) ([]FailedWithdrawal, error) {

	return call(
		ctx, c, "listfailedwithdrawals", decodeList[FailedWithdrawal],
	)
}

// ListSidechainDepositsByBlock returns the deposits to a sidechain, up to
// end and back to start when given.
func (c *Client) ListSidechainDepositsByBlock(ctx context.Context,
	sidechain SidechainID, end,
	start fn.Option[codec.BlockHash]) ([]Deposit, error) {

	return call(
		ctx, c, "listsidechaindepositsbyblock", decodeList[Deposit],
		sidechain, optionalParam(end), optionalParam(start),
	)
}

// ListSpentWithdrawals returns the withdrawal bundles that were paid out.
func (c *Client) ListSpentWithdrawals(
	ctx context.Context) ([]SpentWithdrawal, error) {

	return call(
		ctx, c, "listspentwithdrawals", decodeList[SpentWithdrawal],
	)
}

// ListWithdrawalStatus returns the withdrawal bundles of a sidechain that
// are being voted on.
func (c *Client) ListWithdrawalStatus(ctx context.Context,
	sidechain SidechainID) ([]WithdrawalStatus, error) {

	return call(
		ctx, c, "listwithdrawalstatus", decodeList[WithdrawalStatus],
		sidechain,
	)
}

// prioritiseParams are the named parameters of prioritisetransaction.
type prioritiseParams struct {
	Txid     codec.Txid `json:"txid"`
	FeeDelta int64      `json:"fee_delta"`
}

// PrioritiseTransaction changes the fee the node assumes a transaction pays
// by feeDelta satoshis when selecting transactions for a block. Transports
// that implement NamedTransport receive named parameters, all others the
// positional form with a null dummy argument.
func (c *Client) PrioritiseTransaction(ctx context.Context, txid codec.Txid,
	feeDelta int64) (bool, error) {

	const method = "prioritisetransaction"

	named, ok := c.transport.(NamedTransport)
	if !ok {
		return call(
			ctx, c, method, decodeJSON[bool], txid, absentParam{},
			feeDelta,
		)
	}

	params, err := json.Marshal(prioritiseParams{
		Txid:     txid,
		FeeDelta: feeDelta,
	})
	if err != nil {
		return false, err
	}

	invoke := func(ctx context.Context) (json.RawMessage, error) {
		return named.InvokeNamed(ctx, method, params)
	}

	return roundTrip(ctx, c, method, invoke, decodeJSON[bool])
}

// ReceiveWithdrawalBundle hands a withdrawal bundle transaction for a
// sidechain to the node.
func (c *Client) ReceiveWithdrawalBundle(ctx context.Context,
	sidechain SidechainID, rawTx codec.HexBytes) (json.RawMessage, error) {

	return call(
		ctx, c, "receivewithdrawalbundle", decodeRaw, sidechain, rawTx,
	)
}

// SendRawTransaction broadcasts tx. maxFeeRate is in BTC/kvB and
// maxBurnAmount in BTC; the node's defaults apply when they are unset.
func (c *Client) SendRawTransaction(ctx context.Context, tx *wire.MsgTx,
	maxFeeRate, maxBurnAmount fn.Option[codec.AmountBTC]) (codec.Txid,
	error) {

	txHex, err := codec.EncodeConsensusHex(tx, codec.Lower)
	if err != nil {
		return codec.Txid{}, err
	}

	return call(
		ctx, c, "sendrawtransaction", decodeJSON[codec.Txid], txHex,
		optionalParam(maxFeeRate), optionalParam(maxBurnAmount),
	)
}

// Stop asks the node to shut down and returns its farewell message.
func (c *Client) Stop(ctx context.Context) (string, error) {
	return call(ctx, c, "stop", decodeJSON[string])
}

// SubmitBlock submits a mined block. A rejection by the node is returned as
// a *SubmitBlockError.
func (c *Client) SubmitBlock(ctx context.Context, block *wire.MsgBlock) error {
	blockHex, err := codec.EncodeConsensusHex(block, codec.Lower)
	if err != nil {
		return err
	}

	reason, err := call(
		ctx, c, "submitblock", decodeNullable[string], blockHex,
	)
	if err != nil {
		return err
	}
	if reason != nil {
		return &SubmitBlockError{Reason: *reason}
	}

	return nil
}

// VerifyBmm checks that the blind merged mining request for criticalHash
// was included in the given mainchain block.
func (c *Client) VerifyBmm(ctx context.Context, hash,
	criticalHash codec.BlockHash,
	sidechain SidechainID) (json.RawMessage, error) {

	return call(
		ctx, c, "verifybmm", decodeRaw, hash, criticalHash, sidechain,
	)
}
