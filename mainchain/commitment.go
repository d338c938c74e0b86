package mainchain

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/torkelrogstad/bip300301/codec"
)

// Wire tags of the commitment variants reported by getblockcommitments.
const (
	TypeBmmHStar                    = "BMM h*"
	TypeScdbUpdateBytes             = "SCDB update bytes"
	TypeSidechainActivationAck      = "Sidechain activation ack"
	TypeSidechainProposalCommitment = "Sidechain proposal"
	TypeWithdrawalBundleHash        = "Withdrawal bundle hash"
	TypeWitnessCommitment           = "Witness commitment"
)

// BlockCommitment is a drivechain commitment found in a coinbase output.
// The set of implementations is closed: BmmHStar, ScdbUpdateBytes,
// SidechainActivationAck, SidechainProposalCommitment, WithdrawalBundleHash
// and WitnessCommitment.
type BlockCommitment interface {
	// Type returns the wire tag of the commitment.
	Type() string

	json.Marshaler

	isBlockCommitment()
}

// BmmHStar is a blind merged mining request committing to a sidechain block.
type BmmHStar struct {
	// Commitment is the sidechain's h*, in internal byte order.
	Commitment codec.ReversedHex32 `json:"h"`

	SidechainID SidechainID `json:"nsidechain"`

	// PrevBytes are the trailing bytes of the previous mainchain block
	// hash, as written.
	PrevBytes codec.Hex4 `json:"prevbytes"`
}

// ScdbUpdateBytes carries a sidechain database update script.
type ScdbUpdateBytes struct {
	Script string `json:"script"`
}

// SidechainActivationAck acknowledges a sidechain proposal.
type SidechainActivationAck struct {
	Commitment codec.ReversedHex32 `json:"hash"`
}

// SidechainProposalCommitment marks an output that proposes a new sidechain.
// The proposal itself is not part of the commitment record.
type SidechainProposalCommitment struct{}

// WithdrawalBundleHash commits to a sidechain withdrawal bundle.
type WithdrawalBundleHash struct {
	Commitment codec.ReversedHex32 `json:"hash"`

	SidechainID SidechainID `json:"nsidechain"`
}

// WitnessCommitment is the segwit witness commitment of the block.
type WitnessCommitment struct {
	Script string `json:"script"`
}

// Type returns TypeBmmHStar.
func (BmmHStar) Type() string { return TypeBmmHStar }

// Type returns TypeScdbUpdateBytes.
func (ScdbUpdateBytes) Type() string { return TypeScdbUpdateBytes }

// Type returns TypeSidechainActivationAck.
func (SidechainActivationAck) Type() string { return TypeSidechainActivationAck }

// Type returns TypeSidechainProposalCommitment.
func (SidechainProposalCommitment) Type() string {
	return TypeSidechainProposalCommitment
}

// Type returns TypeWithdrawalBundleHash.
func (WithdrawalBundleHash) Type() string { return TypeWithdrawalBundleHash }

// Type returns TypeWitnessCommitment.
func (WitnessCommitment) Type() string { return TypeWitnessCommitment }

func (BmmHStar) isBlockCommitment()                    {}
func (ScdbUpdateBytes) isBlockCommitment()             {}
func (SidechainActivationAck) isBlockCommitment()      {}
func (SidechainProposalCommitment) isBlockCommitment() {}
func (WithdrawalBundleHash) isBlockCommitment()        {}
func (WitnessCommitment) isBlockCommitment()           {}

// MarshalJSON encodes the commitment with its type tag.
func (c BmmHStar) MarshalJSON() ([]byte, error) {
	type plain BmmHStar
	return json.Marshal(struct {
		Type string `json:"type"`
		plain
	}{c.Type(), plain(c)})
}

// MarshalJSON encodes the commitment with its type tag.
func (c ScdbUpdateBytes) MarshalJSON() ([]byte, error) {
	type plain ScdbUpdateBytes
	return json.Marshal(struct {
		Type string `json:"type"`
		plain
	}{c.Type(), plain(c)})
}

// MarshalJSON encodes the commitment with its type tag.
func (c SidechainActivationAck) MarshalJSON() ([]byte, error) {
	type plain SidechainActivationAck
	return json.Marshal(struct {
		Type string `json:"type"`
		plain
	}{c.Type(), plain(c)})
}

// MarshalJSON encodes the commitment with its type tag.
func (c SidechainProposalCommitment) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
	}{c.Type()})
}

// MarshalJSON encodes the commitment with its type tag.
func (c WithdrawalBundleHash) MarshalJSON() ([]byte, error) {
	type plain WithdrawalBundleHash
	return json.Marshal(struct {
		Type string `json:"type"`
		plain
	}{c.Type(), plain(c)})
}

// MarshalJSON encodes the commitment with its type tag.
func (c WitnessCommitment) MarshalJSON() ([]byte, error) {
	type plain WitnessCommitment
	return json.Marshal(struct {
		Type string `json:"type"`
		plain
	}{c.Type(), plain(c)})
}

// TxOutCommitment is a commitment together with the index of the coinbase
// output that carries it.
type TxOutCommitment struct {
	TxOut      uint32
	Commitment BlockCommitment
}

// MarshalJSON encodes the entry as the commitment object with a leading
// txout member.
func (c TxOutCommitment) MarshalJSON() ([]byte, error) {
	if c.Commitment == nil {
		return nil, fmt.Errorf("txout %d: nil commitment", c.TxOut)
	}

	body, err := c.Commitment.MarshalJSON()
	if err != nil {
		return nil, err
	}

	var members codec.OrderedMap[json.RawMessage]
	if err := json.Unmarshal(body, &members); err != nil {
		return nil, err
	}

	txout := json.RawMessage(strconv.FormatUint(uint64(c.TxOut), 10))
	members = append(codec.OrderedMap[json.RawMessage]{
		{Key: "txout", Value: txout},
	}, members...)

	return members.MarshalJSON()
}

// UnmarshalJSON decodes a single getblockcommitments entry. The type tag is
// read first and selects the only fields the entry may carry; anything else
// is rejected.
func (c *TxOutCommitment) UnmarshalJSON(data []byte) error {
	r := newFieldReader(data)

	var tag string
	r.required("type", &tag)
	if err := r.done(); err != nil {
		return err
	}

	var txout uint32
	r.required("txout", &txout)

	var commitment BlockCommitment
	switch tag {
	case TypeBmmHStar:
		var v BmmHStar
		r.required("h", &v.Commitment)
		r.required("nsidechain", &v.SidechainID)
		r.required("prevbytes", &v.PrevBytes)
		commitment = v

	case TypeScdbUpdateBytes:
		var v ScdbUpdateBytes
		r.required("script", &v.Script)
		commitment = v

	case TypeSidechainActivationAck:
		var v SidechainActivationAck
		r.required("hash", &v.Commitment)
		commitment = v

	case TypeSidechainProposalCommitment:
		commitment = SidechainProposalCommitment{}

	case TypeWithdrawalBundleHash:
		var v WithdrawalBundleHash
		r.required("hash", &v.Commitment)
		r.required("nsidechain", &v.SidechainID)
		commitment = v

	case TypeWitnessCommitment:
		var v WitnessCommitment
		r.required("script", &v.Script)
		commitment = v

	default:
		return codec.NewDecodeError("type", tag, codec.ErrUnknownVariant)
	}

	if err := r.strict(); err != nil {
		return err
	}

	*c = TxOutCommitment{
		TxOut:      txout,
		Commitment: commitment,
	}

	return nil
}

// DecodeBlockCommitments decodes a getblockcommitments result. Entries keep
// their order, and repeated txout indexes are kept as they are.
func DecodeBlockCommitments(raw json.RawMessage) ([]TxOutCommitment, error) {
	return decodeList[TxOutCommitment](raw)
}
