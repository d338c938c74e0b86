package codec

import (
	"encoding/json"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// TestParseCompactTarget covers accepted and rejected encodings.
func TestParseCompactTarget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    CompactTarget
		wantErr error
	}{
		{
			name:  "genesis bits",
			input: "1d00ffff",
			want:  0x1d00ffff,
		},
		{
			name:  "upper case",
			input: "1D00FFFF",
			want:  0x1d00ffff,
		},
		{
			name:  "regtest bits",
			input: "207fffff",
			want:  0x207fffff,
		},
		{
			name:    "too short",
			input:   "1d00fff0"[:6],
			wantErr: ErrLengthMismatch,
		},
		{
			name:    "too long",
			input:   "1d00ffff00",
			wantErr: ErrLengthMismatch,
		},
		{
			name:    "prefixed",
			input:   "0x1d00ff",
			wantErr: ErrInvalidHex,
		},
		{
			name:    "odd",
			input:   "1d00fff",
			wantErr: ErrOddLength,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseCompactTarget(test.input)
			if test.wantErr != nil {
				require.ErrorIs(t, err, test.wantErr)
				return
			}

			require.NoError(t, err)
			require.Equal(t, test.want, got)
			require.Equal(t, strings.ToLower(test.input), got.String())
		})
	}
}

// TestCompactTargetRoundTrip checks that decode then encode reproduces any
// 8 digit hex string, up to case.
func TestCompactTargetRoundTrip(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		s := rapid.StringMatching(`[0-9a-fA-F]{8}`).Draw(t, "bits")

		target, err := ParseCompactTarget(s)
		require.NoError(t, err)
		require.Equal(t, strings.ToLower(s), target.String())

		out, err := json.Marshal(target)
		require.NoError(t, err)

		var decoded CompactTarget
		require.NoError(t, json.Unmarshal(out, &decoded))
		require.Equal(t, target, decoded)
	})
}

// TestCompactTargetWork checks the target and work of the genesis bits.
func TestCompactTargetWork(t *testing.T) {
	t.Parallel()

	bits := CompactTarget(0x1d00ffff)

	wantTarget, ok := new(big.Int).SetString(
		"00000000ffff0000000000000000000000000000000000000000000000000000",
		16,
	)
	require.True(t, ok)
	require.Zero(t, wantTarget.Cmp(bits.Target()))

	// 2^256 / (0xffff * 2^208 + 1) = 0x100010001.
	require.Zero(t, big.NewInt(0x100010001).Cmp(bits.Work()))

	require.Equal(t, bits, CompactTargetFromBig(bits.Target()))

	// A lower target means more work.
	harder := CompactTarget(0x1c00ffff)
	require.Equal(t, 1, harder.Work().Cmp(bits.Work()))
}
