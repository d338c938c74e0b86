package mainchain

import (
	"encoding/json"
	"fmt"

	"github.com/btcsuite/btcd/wire"
	"github.com/torkelrogstad/bip300301/codec"
)

// SidechainID is the slot number of a sidechain.
type SidechainID uint8

// Vote is a miner's vote on a withdrawal bundle.
type Vote uint8

const (
	VoteUpvote Vote = iota
	VoteAbstain
	VoteDownvote
)

// String returns the wire name of the vote.
func (v Vote) String() string {
	switch v {
	case VoteUpvote:
		return "upvote"
	case VoteAbstain:
		return "abstain"
	case VoteDownvote:
		return "downvote"
	default:
		return fmt.Sprintf("Vote(%d)", uint8(v))
	}
}

// ParseVote parses the wire name of a vote.
func ParseVote(s string) (Vote, error) {
	switch s {
	case "upvote":
		return VoteUpvote, nil
	case "abstain":
		return VoteAbstain, nil
	case "downvote":
		return VoteDownvote, nil
	default:
		return 0, codec.NewDecodeError("", s, codec.ErrUnknownValue)
	}
}

// MarshalJSON encodes the vote as its wire name.
func (v Vote) MarshalJSON() ([]byte, error) {
	if v > VoteDownvote {
		return nil, fmt.Errorf("%w: %v", codec.ErrUnknownValue, v)
	}

	return json.Marshal(v.String())
}

// UnmarshalJSON decodes a vote from its wire name.
func (v *Vote) UnmarshalJSON(data []byte) error {
	var s string
	if err := codec.Unmarshal(data, &s); err != nil {
		return err
	}

	vote, err := ParseVote(s)
	if err != nil {
		return err
	}
	*v = vote

	return nil
}

// SidechainInfo describes a sidechain proposal.
type SidechainInfo struct {
	Name        string `json:"title"`
	Version     int32  `json:"version"`
	Description string `json:"description"`

	// HashID1 is a sha256 hash and HashID2 a ripemd160 hash identifying
	// the sidechain software. Both are kept in the byte order the node
	// writes them in.
	HashID1 codec.Hex32 `json:"hash_id_1"`
	HashID2 codec.Hex20 `json:"hash_id_2"`
}

// UnmarshalJSON decodes a sidechain description, accepting the spellings
// used by different node versions.
func (s *SidechainInfo) UnmarshalJSON(data []byte) error {
	var info SidechainInfo

	r := newFieldReader(data)
	info.decodeFields(r)
	if err := r.done(); err != nil {
		return err
	}

	*s = info

	return nil
}

func (s *SidechainInfo) decodeFields(r *fieldReader) {
	r.required("title", &s.Name)
	r.alias(&s.Version, "version", "nversion")
	r.required("description", &s.Description)
	r.alias(&s.HashID1, "hashID1", "hashid1", "hash_id_1")
	r.alias(&s.HashID2, "hashID2", "hashid2", "hash_id_2")
}

// SidechainProposal is the result of createsidechainproposal.
type SidechainProposal struct {
	SidechainID SidechainID `json:"nSidechain"`

	SidechainInfo
}

// UnmarshalJSON decodes the sidechain number and the flattened description.
func (p *SidechainProposal) UnmarshalJSON(data []byte) error {
	var proposal SidechainProposal

	r := newFieldReader(data)
	r.required("nSidechain", &proposal.SidechainID)
	proposal.decodeFields(r)
	if err := r.done(); err != nil {
		return err
	}

	*p = proposal

	return nil
}

// SidechainActivationStatus is an entry of listsidechainactivationstatus.
type SidechainActivationStatus struct {
	Name        string `json:"title"`
	Description string `json:"description"`

	// Age is the number of blocks the proposal has been tracked for.
	Age uint32 `json:"age"`

	// Fail is the number of blocks that did not ack the proposal.
	Fail uint32 `json:"fail"`
}

// UnmarshalJSON decodes an activation status entry.
func (s *SidechainActivationStatus) UnmarshalJSON(data []byte) error {
	var status SidechainActivationStatus

	r := newFieldReader(data)
	r.required("title", &status.Name)
	r.required("description", &status.Description)
	r.alias(&status.Age, "age", "nage")
	r.alias(&status.Fail, "fail", "nfail")
	if err := r.done(); err != nil {
		return err
	}

	*s = status

	return nil
}

// WithdrawalStatus is an entry of listwithdrawalstatus.
type WithdrawalStatus struct {
	Hash       codec.Txid `json:"hash"`
	BlocksLeft uint32     `json:"nblocksleft"`
	WorkScore  uint32     `json:"nworkscore"`
}

// UnmarshalJSON decodes a withdrawal status entry.
func (s *WithdrawalStatus) UnmarshalJSON(data []byte) error {
	var status WithdrawalStatus

	r := newFieldReader(data)
	r.required("hash", &status.Hash)
	r.required("nblocksleft", &status.BlocksLeft)
	r.required("nworkscore", &status.WorkScore)
	if err := r.done(); err != nil {
		return err
	}

	*s = status

	return nil
}

// SpentWithdrawal is an entry of listspentwithdrawals.
type SpentWithdrawal struct {
	SidechainID SidechainID     `json:"nsidechain"`
	Hash        codec.Txid      `json:"hash"`
	BlockHash   codec.BlockHash `json:"hashblock"`
}

// UnmarshalJSON decodes a spent withdrawal entry.
func (w *SpentWithdrawal) UnmarshalJSON(data []byte) error {
	var spent SpentWithdrawal

	r := newFieldReader(data)
	r.required("nsidechain", &spent.SidechainID)
	r.required("hash", &spent.Hash)
	r.required("hashblock", &spent.BlockHash)
	if err := r.done(); err != nil {
		return err
	}

	*w = spent

	return nil
}

// FailedWithdrawal is an entry of listfailedwithdrawals.
type FailedWithdrawal struct {
	SidechainID SidechainID `json:"nsidechain"`
	Hash        codec.Txid  `json:"hash"`
}

// UnmarshalJSON decodes a failed withdrawal entry.
func (w *FailedWithdrawal) UnmarshalJSON(data []byte) error {
	var failed FailedWithdrawal

	r := newFieldReader(data)
	r.required("nsidechain", &failed.SidechainID)
	r.required("hash", &failed.Hash)
	if err := r.done(); err != nil {
		return err
	}

	*w = failed

	return nil
}

// Deposit is an entry of listsidechaindepositsbyblock.
type Deposit struct {
	BlockHash codec.BlockHash `json:"hashblock"`
	BurnIndex uint32          `json:"nburnindex"`
	TxIndex   uint32          `json:"ntx"`

	// Destination is the sidechain address the deposit pays to.
	Destination string `json:"strdest"`

	TxHex codec.HexBytes `json:"txhex"`
}

// UnmarshalJSON decodes a deposit entry.
func (d *Deposit) UnmarshalJSON(data []byte) error {
	var deposit Deposit

	r := newFieldReader(data)
	r.required("hashblock", &deposit.BlockHash)
	r.required("nburnindex", &deposit.BurnIndex)
	r.required("ntx", &deposit.TxIndex)
	r.required("strdest", &deposit.Destination)
	r.required("txhex", &deposit.TxHex)
	if err := r.done(); err != nil {
		return err
	}

	*d = deposit

	return nil
}

// Tx deserializes the deposit transaction.
func (d *Deposit) Tx() (*wire.MsgTx, error) {
	return codec.DecodeConsensus[wire.MsgTx](d.TxHex)
}
