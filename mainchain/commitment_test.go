package mainchain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/torkelrogstad/bip300301/codec"
)

// TestDecodeBlockCommitmentsOrder checks that entries keep their order and
// output index.
func TestDecodeBlockCommitmentsOrder(t *testing.T) {
	t.Parallel()

	data := `[{"txout":2,"type":"Sidechain proposal"},` +
		`{"txout":0,"type":"Witness commitment","script":"6a24..."}]`

	commitments, err := DecodeBlockCommitments(json.RawMessage(data))
	require.NoError(t, err)
	require.Equal(t, []TxOutCommitment{
		{TxOut: 2, Commitment: SidechainProposalCommitment{}},
		{TxOut: 0, Commitment: WitnessCommitment{Script: "6a24..."}},
	}, commitments)
}

// TestDecodeBlockCommitmentsVariants decodes one entry of every variant and
// checks the byte order of each hash-like field.
func TestDecodeBlockCommitmentsVariants(t *testing.T) {
	t.Parallel()

	h := strings.Repeat("00", 31) + "ff"
	data := `[
		{"txout": 1, "type": "BMM h*", "h": "` + h + `",
		 "nsidechain": 3, "prevbytes": "a1b2c3d4"},
		{"txout": 1, "type": "SCDB update bytes", "script": "6a04d77d1776"},
		{"txout": 3, "type": "Sidechain activation ack", "hash": "` + h + `"},
		{"txout": 4, "type": "Withdrawal bundle hash", "hash": "` + h + `",
		 "nsidechain": 0},
		{"txout": 5, "type": "Witness commitment", "script": "6a24aa21a9ed"}
	]`

	commitments, err := DecodeBlockCommitments(json.RawMessage(data))
	require.NoError(t, err)
	require.Len(t, commitments, 5)

	var reversed codec.ReversedHex32
	reversed[0] = 0xff

	require.Equal(t, BmmHStar{
		Commitment:  reversed,
		SidechainID: 3,
		PrevBytes:   codec.Hex4{0xa1, 0xb2, 0xc3, 0xd4},
	}, commitments[0].Commitment)

	// Repeated output indexes are kept.
	require.EqualValues(t, 1, commitments[1].TxOut)
	require.Equal(t, ScdbUpdateBytes{Script: "6a04d77d1776"},
		commitments[1].Commitment)

	require.Equal(t, SidechainActivationAck{Commitment: reversed},
		commitments[2].Commitment)
	require.Equal(t, WithdrawalBundleHash{Commitment: reversed},
		commitments[3].Commitment)
	require.Equal(t, TypeWitnessCommitment,
		commitments[4].Commitment.Type())

	// Encoding writes the same wire shape back.
	encoded, err := json.Marshal(commitments)
	require.NoError(t, err)
	require.JSONEq(t, data, string(encoded))
	require.True(t, strings.HasPrefix(
		string(encoded), `[{"txout":1,"type":"BMM h*",`,
	))
}

// TestDecodeBlockCommitmentsErrors checks the rejected entries.
func TestDecodeBlockCommitmentsErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		data  string
		err   error
		field string
	}{
		{
			name: "unknown type",
			data: `[{"txout":0,"type":"Witness commitment",` +
				`"script":"6a"},{"txout":1,"type":"Mystery"}]`,
			err:   codec.ErrUnknownVariant,
			field: "[1].type",
		},
		{
			name:  "missing type",
			data:  `[{"txout":0}]`,
			err:   codec.ErrMissingField,
			field: "[0].type",
		},
		{
			name:  "missing txout",
			data:  `[{"type":"Sidechain proposal"}]`,
			err:   codec.ErrMissingField,
			field: "[0].txout",
		},
		{
			name:  "missing variant field",
			data:  `[{"txout":0,"type":"Withdrawal bundle hash"}]`,
			err:   codec.ErrMissingField,
			field: "[0].hash",
		},
		{
			name: "field of another variant",
			data: `[{"txout":0,"type":"Sidechain activation ack",` +
				`"hash":"` + strings.Repeat("00", 32) +
				`","nsidechain":1}]`,
			err:   codec.ErrUnexpectedField,
			field: "[0].nsidechain",
		},
		{
			name: "short h",
			data: `[{"txout":0,"type":"BMM h*","h":"00",` +
				`"nsidechain":1,"prevbytes":"00000000"}]`,
			err:   codec.ErrLengthMismatch,
			field: "[0].h",
		},
		{
			name: "sidechain out of range",
			data: `[{"txout":0,"type":"Withdrawal bundle hash",` +
				`"hash":"` + strings.Repeat("00", 32) +
				`","nsidechain":300}]`,
			err:   codec.ErrOutOfRange,
			field: "[0].nsidechain",
		},
		{
			name:  "not a list",
			data:  `null`,
			err:   codec.ErrInvalidType,
			field: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := DecodeBlockCommitments(json.RawMessage(tc.data))
			require.ErrorIs(t, err, tc.err)

			var decodeErr *codec.DecodeError
			require.ErrorAs(t, err, &decodeErr)
			require.Equal(t, tc.field, decodeErr.Field)
		})
	}
}
