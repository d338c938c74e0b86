package codec

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
)

// btcDecimals is the number of decimal places between one bitcoin and one
// satoshi.
const btcDecimals = 8

// ParseAmountBTC parses a fixed point decimal amount denominated in BTC,
// such as "1.50000000", into satoshis. The parse is exact: there is no
// floating point step, more than 8 fractional digits is an error, and so is
// any magnitude above the 21 million BTC supply. An optional leading minus
// sign is accepted, but negative zero is rejected since its sign cannot be
// represented.
func ParseAmountBTC(s string) (btcutil.Amount, error) {
	fail := func(err error) (btcutil.Amount, error) {
		return 0, NewDecodeError("", s, err)
	}

	digits := s
	negative := strings.HasPrefix(digits, "-")
	if negative {
		digits = digits[1:]
	}

	intPart, fracPart, hasPoint := strings.Cut(digits, ".")
	if intPart == "" || (hasPoint && fracPart == "") {
		return fail(ErrInvalidNumber)
	}
	if !allDigits(intPart) || !allDigits(fracPart) {
		return fail(ErrInvalidNumber)
	}
	if len(fracPart) > btcDecimals {
		return fail(fmt.Errorf("%w: %d > %d", ErrTooManyDecimals,
			len(fracPart), btcDecimals))
	}

	// Pad the fraction so that the concatenation is a satoshi count.
	fracPart += strings.Repeat("0", btcDecimals-len(fracPart))

	const maxSats = uint64(btcutil.MaxSatoshi)
	var sats uint64
	for _, c := range intPart + fracPart {
		sats = sats*10 + uint64(c-'0')
		if sats > maxSats {
			return fail(ErrOutOfRange)
		}
	}

	if negative {
		if sats == 0 {
			return fail(ErrNegativeZero)
		}

		return -btcutil.Amount(sats), nil
	}

	return btcutil.Amount(sats), nil
}

// FormatAmountBTC renders a satoshi amount as a BTC decimal with exactly 8
// fractional digits. It is the inverse of ParseAmountBTC for every
// canonical input.
func FormatAmountBTC(a btcutil.Amount) string {
	sign := ""
	sats := uint64(a)
	if a < 0 {
		sign = "-"
		sats = uint64(-a)
	}

	return fmt.Sprintf("%s%d.%08d", sign, sats/btcutil.SatoshiPerBitcoin,
		sats%btcutil.SatoshiPerBitcoin)
}

func allDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}

	return true
}

// AmountBTC is an amount held in satoshis that travels over the wire as a
// decimal BTC value. It encodes as a JSON number with 8 fractional digits,
// and decodes from either a JSON number or a JSON string.
type AmountBTC btcutil.Amount

// NewAmountBTC wraps a satoshi amount.
func NewAmountBTC(a btcutil.Amount) AmountBTC {
	return AmountBTC(a)
}

// Amount returns the amount in satoshis.
func (a AmountBTC) Amount() btcutil.Amount {
	return btcutil.Amount(a)
}

// String returns the 8 decimal BTC representation.
func (a AmountBTC) String() string {
	return FormatAmountBTC(btcutil.Amount(a))
}

// MarshalJSON encodes the amount as a JSON number token.
func (a AmountBTC) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalJSON decodes a JSON number or string holding a BTC decimal.
func (a *AmountBTC) UnmarshalJSON(data []byte) error {
	if IsNull(data) {
		return NewDecodeError(
			"", "null", fmt.Errorf("%w: expected amount",
				ErrInvalidType),
		)
	}

	s := string(data)
	if strings.HasPrefix(s, `"`) {
		var err error
		s, err = unquote(data)
		if err != nil {
			return err
		}
	}

	amt, err := ParseAmountBTC(s)
	if err != nil {
		return err
	}
	*a = AmountBTC(amt)

	return nil
}
