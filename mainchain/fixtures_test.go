package mainchain

import (
	"fmt"
	"strings"
)

// genesisHeaderJSON is getblockheader for the main network genesis block,
// which has no previousblockhash.
var genesisHeaderJSON = `{
	"hash": "` + genesisHashStr + `",
	"confirmations": 850000,
	"height": 0,
	"version": 1,
	"versionHex": "00000001",
	"merkleroot": "` + genesisMerkleRootStr + `",
	"time": 1231006505,
	"mediantime": 1231006505,
	"nonce": 2083236893,
	"bits": "1d00ffff",
	"difficulty": 1,
	"chainwork": "0000000000000000000000000000000000000000000000000000000100010001",
	"nTx": 1,
	"nextblockhash": "` + block1HashStr + `"
}`

// block1HeaderJSON is getblockheader for main network block 1.
var block1HeaderJSON = `{
	"hash": "` + block1HashStr + `",
	"confirmations": 849999,
	"height": 1,
	"version": 1,
	"versionHex": "00000001",
	"merkleroot": "0e3e2357e806b6cdb1f70b54c3a3a17b6714ee1f0e68bebb44a74b1efd512098",
	"time": 1231469665,
	"mediantime": 1231469665,
	"nonce": 2573394689,
	"bits": "1d00ffff",
	"difficulty": 1,
	"chainwork": "0000000000000000000000000000000000000000000000000000000200020002",
	"nTx": 1,
	"previousblockhash": "` + genesisHashStr + `"
}`

// genesisBlockJSON is getblock at verbosity 1 for the genesis block, with
// the transaction list replaced by txs.
func genesisBlockJSON(txs string) string {
	return `{
	"hash": "` + genesisHashStr + `",
	"confirmations": 850000,
	"height": 0,
	"version": 1,
	"versionHex": "00000001",
	"merkleroot": "` + genesisMerkleRootStr + `",
	"time": 1231006505,
	"mediantime": 1231006505,
	"nonce": 2083236893,
	"bits": "1d00ffff",
	"difficulty": 1,
	"chainwork": "0000000000000000000000000000000000000000000000000000000100010001",
	"nTx": 1,
	"nextblockhash": "` + block1HashStr + `",
	"strippedsize": 285,
	"size": 285,
	"weight": 1140,
	"tx": ` + txs + `
}`
}

// blockTemplateJSON is a getblocktemplate result carrying the given
// coinbase members, which may be empty.
func blockTemplateJSON(coinbase string) string {
	if coinbase != "" {
		coinbase += ","
	}

	return `{
	"capabilities": ["proposal"],
	"version": 536870912,
	"rules": ["csv", "!segwit", "taproot"],
	"vbavailable": {"testdummy": 28, "other": 1},
	"vbrequired": 0,
	"previousblockhash": "` + genesisHashStr + `",
	"transactions": [{
		"data": "0100",
		"txid": "` + genesisMerkleRootStr + `",
		"hash": "` + genesisMerkleRootStr + `",
		"depends": [],
		"fee": 100,
		"sigops": 4,
		"weight": 400
	}],
	"coinbaseaux": {"flags": "", "b": "0a0b"},
	` + coinbase + `
	"longpollid": "` + genesisHashStr + `1",
	"target": "00000000ffff0000000000000000000000000000000000000000000000000000",
	"mintime": 1231006506,
	"mutable": ["time", "transactions", "prevblock"],
	"noncerange": "00000000ffffffff",
	"sigoplimit": 80000,
	"sizelimit": 4000000,
	"weightlimit": 4000000,
	"curtime": 1231006600,
	"bits": "1d00ffff",
	"height": 1,
	"default_witness_commitment": "6a24aa21a9ed"
}`
}

// mempoolEntryJSON is a mempool entry with the replaceability flag under
// the given keys.
func mempoolEntryJSON(vsize int, replaceableKeys ...string) string {
	replaceable := make([]string, 0, len(replaceableKeys))
	for _, key := range replaceableKeys {
		replaceable = append(replaceable, fmt.Sprintf("%q: true", key))
	}

	members := []string{
		fmt.Sprintf(`"vsize": %d`, vsize),
		`"weight": 561`,
		`"time": 1700000000`,
		`"height": 100`,
		`"descendantcount": 1`,
		`"descendantsize": 141`,
		`"ancestorcount": 1`,
		`"ancestorsize": 141`,
		`"wtxid": "` + genesisMerkleRootStr + `"`,
		`"fees": {"base": 0.00000141, "modified": 0.00000241, ` +
			`"ancestor": 0.00000141, "descendant": "0.00000141"}`,
		`"depends": []`,
		`"spentby": ["` + genesisMerkleRootStr + `"]`,
		`"unbroadcast": false`,
	}
	members = append(members, replaceable...)

	return "{" + strings.Join(members, ", ") + "}"
}
