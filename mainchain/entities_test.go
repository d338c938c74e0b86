package mainchain

import (
	"encoding/json"
	"math/big"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/stretchr/testify/require"
	"github.com/torkelrogstad/bip300301/codec"
)

// TestHeaderGenesis checks that a decoded header converts back to the
// consensus header it describes.
func TestHeaderGenesis(t *testing.T) {
	t.Parallel()

	var header Header
	require.NoError(t, json.Unmarshal([]byte(genesisHeaderJSON), &header))

	require.Equal(t, codec.BlockHash{}, header.PrevBlockHash)
	require.EqualValues(t, 0x1d00ffff, header.Bits)

	wireHeader := header.WireHeader()
	require.Equal(t, chaincfg.MainNetParams.GenesisBlock.Header, wireHeader)
	require.Equal(t, header.Hash.Hash(), wireHeader.BlockHash())
	require.Equal(t, big.NewInt(0x100010001), header.Work())
}

// TestHeaderPrevBlockHash checks that previousblockhash is decoded when
// present.
func TestHeaderPrevBlockHash(t *testing.T) {
	t.Parallel()

	var header Header
	require.NoError(t, json.Unmarshal([]byte(block1HeaderJSON), &header))

	require.Equal(t, mustBlockHash(t, genesisHashStr), header.PrevBlockHash)
	require.EqualValues(t, 1, header.Height)
}

// TestHeaderMissingField checks that required members are enforced.
func TestHeaderMissingField(t *testing.T) {
	t.Parallel()

	data := strings.Replace(
		genesisHeaderJSON, `"nonce": 2083236893,`, "", 1,
	)

	var header Header
	err := json.Unmarshal([]byte(data), &header)
	require.ErrorIs(t, err, codec.ErrMissingField)

	var decodeErr *codec.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	require.Equal(t, "nonce", decodeErr.Field)
}

// TestBlockDecode checks the verbosity 1 block object.
func TestBlockDecode(t *testing.T) {
	t.Parallel()

	data := genesisBlockJSON(`["` + genesisMerkleRootStr + `"]`)

	var block Block
	require.NoError(t, json.Unmarshal([]byte(data), &block))

	require.Equal(t, []codec.Txid{mustTxid(t, genesisMerkleRootStr)},
		block.Tx)
	require.Nil(t, block.PrevBlockHash)
	require.NotNil(t, block.NextBlockHash)
	require.Equal(t, mustBlockHash(t, block1HashStr), *block.NextBlockHash)
	require.Equal(t, big.NewInt(0x100010001), block.TotalWork())
	require.EqualValues(t, 1140, block.Weight)

	header := block.Header()
	wireHeader := header.WireHeader()
	require.Equal(t, block.Hash.Hash(), wireHeader.BlockHash())
}

// TestBlockTemplateCoinbase checks that exactly one of coinbasetxn and
// coinbasevalue is accepted.
func TestBlockTemplateCoinbase(t *testing.T) {
	t.Parallel()

	coinbaseTxn := `"coinbasetxn": {"data": "02", "txid": "` +
		genesisMerkleRootStr + `", "hash": "` + genesisMerkleRootStr +
		`", "depends": [], "fee": 0, "weight": 4}`

	testCases := []struct {
		name     string
		coinbase string
		want     CoinbaseTxnOrValue
		err      error
	}{
		{
			name:     "value",
			coinbase: `"coinbasevalue": 5000000000`,
			want:     CoinbaseValue{Value: 50 * btcutil.SatoshiPerBitcoin},
		},
		{
			name:     "txn",
			coinbase: coinbaseTxn,
			want: CoinbaseTxn{Txn: BlockTemplateTransaction{
				Data:    codec.HexBytes{0x02},
				Txid:    mustTxid(t, genesisMerkleRootStr),
				Hash:    codec.Wtxid(mustTxid(t, genesisMerkleRootStr)),
				Depends: []uint32{},
				Weight:  4,
			}},
		},
		{
			name: "both",
			coinbase: `"coinbasevalue": 5000000000, ` +
				coinbaseTxn,
			err: ErrCoinbaseTxnAndValue,
		},
		{
			name:     "neither",
			coinbase: "",
			err:      codec.ErrMissingField,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var tmpl BlockTemplate
			err := json.Unmarshal(
				[]byte(blockTemplateJSON(tc.coinbase)), &tmpl,
			)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.want, tmpl.CoinbaseTxnOrValue)
		})
	}
}

// TestBlockTemplateFields checks order preservation and byte order of the
// template's members, and that encoding decodes back to the same value.
func TestBlockTemplateFields(t *testing.T) {
	t.Parallel()

	var tmpl BlockTemplate
	require.NoError(t, json.Unmarshal(
		[]byte(blockTemplateJSON(`"coinbasevalue": 1`)), &tmpl,
	))

	require.Equal(t, []string{"testdummy", "other"},
		tmpl.VersionBitsAvailable.Keys())
	require.Equal(t, []string{"flags", "b"}, tmpl.CoinbaseAux.Keys())

	aux, ok := tmpl.CoinbaseAux.Get("b")
	require.True(t, ok)
	require.Equal(t, codec.HexBytes{0x0a, 0x0b}, aux)

	require.Equal(t, byte(0xff), tmpl.Target[4])
	require.Equal(t, codec.Hex8{0, 0, 0, 0, 0xff, 0xff, 0xff, 0xff},
		tmpl.NonceRange)
	require.NotNil(t, tmpl.LongPollID)
	require.Nil(t, tmpl.SignetChallenge)
	require.NotNil(t, tmpl.DefaultWitnessCommitment)
	require.Len(t, tmpl.Transactions, 1)
	require.NotNil(t, tmpl.Transactions[0].SigOps)

	encoded, err := json.Marshal(tmpl)
	require.NoError(t, err)

	var decoded BlockTemplate
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	require.Equal(t, tmpl, decoded)
}

// TestMempoolEntryReplaceableAlias checks both spellings of the
// replaceability flag.
func TestMempoolEntryReplaceableAlias(t *testing.T) {
	t.Parallel()

	for _, key := range []string{"bip125-replaceable", "bip125replaceable"} {
		var info RawMempoolTxInfo
		require.NoError(t, json.Unmarshal(
			[]byte(mempoolEntryJSON(141, key)), &info,
		))
		require.True(t, info.BIP125Replaceable)
		require.EqualValues(t, 141, info.Fees.Base)
		require.EqualValues(t, 241, info.Fees.Modified)
		require.EqualValues(t, 141, info.Fees.Descendant)
	}

	var info RawMempoolTxInfo
	err := json.Unmarshal([]byte(mempoolEntryJSON(
		141, "bip125-replaceable", "bip125replaceable",
	)), &info)
	require.ErrorIs(t, err, codec.ErrDuplicateKey)

	err = json.Unmarshal([]byte(mempoolEntryJSON(141)), &info)
	require.ErrorIs(t, err, codec.ErrMissingField)
}

// TestRawMempoolVerboseOrder checks that entries keep the order of the
// response rather than any sorted order.
func TestRawMempoolVerboseOrder(t *testing.T) {
	t.Parallel()

	data := `{"` + genesisMerkleRootStr + `": ` +
		mempoolEntryJSON(200, "bip125-replaceable") + `, "` +
		genesisHashStr + `": ` +
		mempoolEntryJSON(100, "bip125-replaceable") + `}`

	var mempool RawMempoolVerbose
	require.NoError(t, json.Unmarshal([]byte(data), &mempool))
	require.Len(t, mempool.Entries, 2)
	require.Equal(t, mustTxid(t, genesisMerkleRootStr),
		mempool.Entries[0].Txid)
	require.EqualValues(t, 200, mempool.Entries[0].Info.VSize)
	require.Equal(t, mustTxid(t, genesisHashStr), mempool.Entries[1].Txid)

	info, ok := mempool.Get(mustTxid(t, genesisHashStr))
	require.True(t, ok)
	require.EqualValues(t, 100, info.VSize)

	encoded, err := json.Marshal(mempool)
	require.NoError(t, err)
	require.Less(t,
		strings.Index(string(encoded), genesisMerkleRootStr),
		strings.Index(string(encoded), genesisHashStr),
	)

	// A key that is not a txid names itself in the error.
	bad := `{"nope": ` + mempoolEntryJSON(1, "bip125-replaceable") + `}`
	err = json.Unmarshal([]byte(bad), &mempool)

	var decodeErr *codec.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	require.Equal(t, "nope", decodeErr.Field)
}

// TestSidechainInfoAliases checks the historical spellings of the sidechain
// description fields.
func TestSidechainInfoAliases(t *testing.T) {
	t.Parallel()

	hash1 := strings.Repeat("11", 31) + "22"
	hash2 := strings.Repeat("33", 19) + "44"

	testCases := []struct {
		name string
		data string
		err  error
	}{
		{
			name: "camel case",
			data: `{"title": "Thunder", "nversion": 0, ` +
				`"description": "d", "hashID1": "` + hash1 +
				`", "hashID2": "` + hash2 + `"}`,
		},
		{
			name: "lower case",
			data: `{"title": "Thunder", "version": 0, ` +
				`"description": "d", "hashid1": "` + hash1 +
				`", "hashid2": "` + hash2 + `"}`,
		},
		{
			name: "snake case",
			data: `{"title": "Thunder", "version": 0, ` +
				`"description": "d", "hash_id_1": "` + hash1 +
				`", "hash_id_2": "` + hash2 + `"}`,
		},
		{
			name: "two spellings",
			data: `{"title": "Thunder", "version": 0, ` +
				`"nversion": 0, "description": "d", ` +
				`"hashid1": "` + hash1 + `", "hashid2": "` +
				hash2 + `"}`,
			err: codec.ErrDuplicateKey,
		},
		{
			name: "missing hash",
			data: `{"title": "Thunder", "version": 0, ` +
				`"description": "d", "hashid1": "` + hash1 +
				`"}`,
			err: codec.ErrMissingField,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var info SidechainInfo
			err := json.Unmarshal([]byte(tc.data), &info)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, "Thunder", info.Name)
			require.Equal(t, byte(0x11), info.HashID1[0])
			require.Equal(t, byte(0x22), info.HashID1[31])
			require.Equal(t, byte(0x44), info.HashID2[19])

			encoded, err := json.Marshal(info)
			require.NoError(t, err)
			require.Contains(t, string(encoded), `"hash_id_1":"`+
				hash1+`"`)
		})
	}
}

// TestSidechainProposal checks that the description is flattened into the
// proposal object.
func TestSidechainProposal(t *testing.T) {
	t.Parallel()

	data := `{"nSidechain": 9, "title": "zside", "nversion": 1, ` +
		`"description": "z", "hashID1": "` + strings.Repeat("00", 32) +
		`", "hashID2": "` + strings.Repeat("00", 20) + `"}`

	var proposal SidechainProposal
	require.NoError(t, json.Unmarshal([]byte(data), &proposal))
	require.Equal(t, SidechainID(9), proposal.SidechainID)
	require.Equal(t, "zside", proposal.Name)
	require.EqualValues(t, 1, proposal.Version)

	encoded, err := json.Marshal(proposal)
	require.NoError(t, err)

	var decoded SidechainProposal
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	require.Equal(t, proposal, decoded)
}

// TestSidechainActivationStatusAliases checks both spellings of age and
// fail.
func TestSidechainActivationStatusAliases(t *testing.T) {
	t.Parallel()

	for _, data := range []string{
		`{"title": "t", "description": "d", "nage": 5, "nfail": 2}`,
		`{"title": "t", "description": "d", "age": 5, "fail": 2}`,
	} {
		var status SidechainActivationStatus
		require.NoError(t, json.Unmarshal([]byte(data), &status))
		require.Equal(t, SidechainActivationStatus{
			Name:        "t",
			Description: "d",
			Age:         5,
			Fail:        2,
		}, status)
	}
}

// TestTxOutSetInfoAlias checks that older nodes' hash_serialized_2 is
// accepted.
func TestTxOutSetInfoAlias(t *testing.T) {
	t.Parallel()

	hash := strings.Repeat("ab", 31) + "cd"
	for _, key := range []string{"hash_serialized_3", "hash_serialized_2"} {
		data := `{"height": 1, "bestblock": "` + genesisHashStr +
			`", "transactions": 1, "txouts": 1, "` + key +
			`": "` + hash + `", "total_amount": 50.00000000}`

		var info TxOutSetInfo
		require.NoError(t, json.Unmarshal([]byte(data), &info))
		require.Equal(t, byte(0xcd), info.HashSerialized[31])
		require.NotNil(t, info.TotalAmount)
		require.Equal(t, btcutil.Amount(50*btcutil.SatoshiPerBitcoin),
			info.TotalAmount.Amount())
	}
}

// TestNetwork checks chain name decoding and parameter lookup.
func TestNetwork(t *testing.T) {
	t.Parallel()

	var info BlockchainInfo
	data := `{"chain": "regtest", "blocks": 101, "bestblockhash": "` +
		genesisHashStr + `", "difficulty": 4.6e-10}`
	require.NoError(t, json.Unmarshal([]byte(data), &info))
	require.Equal(t, NetworkRegtest, info.Chain)

	params, err := info.Chain.Params()
	require.NoError(t, err)
	require.Equal(t, chaincfg.RegressionNetParams.Name, params.Name)

	network, err := ParseNetwork("testnet4")
	require.NoError(t, err)
	_, err = network.Params()
	require.ErrorIs(t, err, ErrNoNetworkParams)

	data = strings.Replace(data, "regtest", "mainnet", 1)
	err = json.Unmarshal([]byte(data), &info)
	require.ErrorIs(t, err, codec.ErrUnknownValue)
}

// TestAddressDecode checks that addresses are checked against the network.
func TestAddressDecode(t *testing.T) {
	t.Parallel()

	pkHash, err := btcutil.NewAddressPubKeyHash(
		make([]byte, 20), &chaincfg.MainNetParams,
	)
	require.NoError(t, err)

	addr := NewAddress(pkHash)
	decoded, err := addr.Decode(&chaincfg.MainNetParams)
	require.NoError(t, err)
	require.Equal(t, pkHash.EncodeAddress(), decoded.EncodeAddress())

	_, err = addr.Decode(&chaincfg.RegressionNetParams)
	require.Error(t, err)

	var info AddressInfo
	data := `{"address": "` + addr.String() + `", ` +
		`"scriptPubKey": "76a914000000000000000000000000000000000000000088ac", ` +
		`"ismine": true, "iswatchonly": false, "isscript": false, ` +
		`"iswitness": false, "hdkeypath": "m/0'/0'/1'"}`
	require.NoError(t, json.Unmarshal([]byte(data), &info))
	require.Equal(t, addr, info.Address)
	require.Len(t, info.ScriptPubKey, 25)
	require.NotNil(t, info.HDKeyPath)
	require.Nil(t, info.HDSeedID)
}

// TestVote checks the wire names of votes.
func TestVote(t *testing.T) {
	t.Parallel()

	for _, vote := range []Vote{VoteUpvote, VoteAbstain, VoteDownvote} {
		encoded, err := json.Marshal(vote)
		require.NoError(t, err)

		var decoded Vote
		require.NoError(t, json.Unmarshal(encoded, &decoded))
		require.Equal(t, vote, decoded)
	}

	var vote Vote
	require.NoError(t, json.Unmarshal([]byte(`"abstain"`), &vote))
	require.Equal(t, VoteAbstain, vote)

	err := json.Unmarshal([]byte(`"veto"`), &vote)
	require.ErrorIs(t, err, codec.ErrUnknownValue)

	_, err = json.Marshal(Vote(7))
	require.Error(t, err)
}

// TestDepositTx checks that the deposit transaction can be deserialized.
func TestDepositTx(t *testing.T) {
	t.Parallel()

	tx := chaincfg.MainNetParams.GenesisBlock.Transactions[0]
	txHex, err := codec.EncodeConsensusHex(tx, codec.Lower)
	require.NoError(t, err)

	data := `{"hashblock": "` + genesisHashStr + `", "nburnindex": 1, ` +
		`"ntx": 3, "strdest": "s1_dest", "txhex": "` + txHex + `"}`

	var deposit Deposit
	require.NoError(t, json.Unmarshal([]byte(data), &deposit))

	msgTx, err := deposit.Tx()
	require.NoError(t, err)
	require.Equal(t, tx.TxHash(), msgTx.TxHash())
}

// TestWithdrawalEntries checks the withdrawal list entries.
func TestWithdrawalEntries(t *testing.T) {
	t.Parallel()

	var status WithdrawalStatus
	require.NoError(t, json.Unmarshal([]byte(`{"hash": "`+
		genesisMerkleRootStr+`", "nblocksleft": 10, "nworkscore": 3}`),
		&status))
	require.EqualValues(t, 10, status.BlocksLeft)
	require.EqualValues(t, 3, status.WorkScore)

	var failed FailedWithdrawal
	err := json.Unmarshal([]byte(`{"nsidechain": 1, "hash": "zz"}`),
		&failed)
	require.ErrorIs(t, err, codec.ErrInvalidHex)
}
