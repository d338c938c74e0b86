package mainchain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/torkelrogstad/bip300301/codec"
)

// TestWitnessLiterals checks that each witness encodes to its literal and
// decodes from nothing else.
func TestWitnessLiterals(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		witness interface {
			json.Marshaler
			json.Unmarshaler
		}
		literal  string
		rejected []string
	}{
		{
			name:     "u8 zero",
			witness:  &U8Zero{},
			literal:  "0",
			rejected: []string{"1", "false", `"0"`, "0.0", "null"},
		},
		{
			name:     "u8 one",
			witness:  &U8One{},
			literal:  "1",
			rejected: []string{"5", "true", `"1"`, "1.0", "2"},
		},
		{
			name:     "u8 two",
			witness:  &U8Two{},
			literal:  "2",
			rejected: []string{"1", "20", `"2"`},
		},
		{
			name:     "bool false",
			witness:  &BoolFalse{},
			literal:  "false",
			rejected: []string{"0", "true", `"false"`, "null"},
		},
		{
			name:     "bool true",
			witness:  &BoolTrue{},
			literal:  "true",
			rejected: []string{"1", "false", `"true"`},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			encoded, err := tc.witness.MarshalJSON()
			require.NoError(t, err)
			require.Equal(t, tc.literal, string(encoded))

			require.NoError(t, tc.witness.UnmarshalJSON(encoded))
			require.NoError(t, tc.witness.UnmarshalJSON(
				[]byte(" "+tc.literal+" "),
			))

			for _, value := range tc.rejected {
				err := tc.witness.UnmarshalJSON([]byte(value))
				require.ErrorIs(t, err, codec.ErrUnknownValue,
					"value %s", value)
			}
		})
	}
}

// TestU8OneRejectsFive checks that the verbosity 1 witness cannot be built
// from the wire value 5.
func TestU8OneRejectsFive(t *testing.T) {
	t.Parallel()

	var witness U8One
	err := json.Unmarshal([]byte("5"), &witness)
	require.ErrorIs(t, err, codec.ErrUnknownValue)

	var decodeErr *codec.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	require.Equal(t, "5", decodeErr.Value)
}

// TestRawMempoolParamPairs checks the getrawmempool parameter pairs.
func TestRawMempoolParamPairs(t *testing.T) {
	t.Parallel()

	encoded, err := json.Marshal(RawMempoolIDs{})
	require.NoError(t, err)
	require.Equal(t, "[false,false]", string(encoded))

	encoded, err = json.Marshal(RawMempoolIDsWithSequence{})
	require.NoError(t, err)
	require.Equal(t, "[false,true]", string(encoded))

	encoded, err = json.Marshal(RawMempoolDetailed{})
	require.NoError(t, err)
	require.Equal(t, "[true,false]", string(encoded))

	var ids RawMempoolIDs
	require.NoError(t, json.Unmarshal([]byte("[false, false]"), &ids))

	var withSeq RawMempoolIDsWithSequence
	require.NoError(t, json.Unmarshal([]byte("[false,true]"), &withSeq))

	var detailed RawMempoolDetailed
	require.NoError(t, json.Unmarshal([]byte("[true,false]"), &detailed))

	err = json.Unmarshal([]byte("[true,true]"), &detailed)
	require.ErrorIs(t, err, codec.ErrUnknownValue)

	var decodeErr *codec.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	require.Equal(t, "mempool_sequence", decodeErr.Field)

	err = json.Unmarshal([]byte("[false]"), &ids)
	require.ErrorIs(t, err, codec.ErrLengthMismatch)
}
