package format

import (
	"math/big"
	"strings"
)

// SignificantDigits is the significant-figure budget applied to every
// numeric price string.
const SignificantDigits = 5

var (
	q96 = new(big.Int).Lsh(big.NewInt(1), 96)
	ten = big.NewInt(10)
)

// FixedPointToDecimalString renders an unsigned Q64.96 fixed-point
// ratio as a plain decimal string with SignificantDigits significant
// digits. Digits past the budget are truncated, never rounded up:
//
//   - ratios at or above 10^5 render as a bare integer, the leading
//     five digits kept and the rest zero-filled;
//   - ratios in [1, 10^5) render as "<int>.<frac>" with five
//     significant digits total, trailing fractional zeros kept;
//   - ratios below one render as "0." followed by the verbatim
//     leading zeros of the expansion and five significant digits.
//
// The decomposition is exact base-10 long division of value / 2^96;
// no floating point is involved at any step.
func FixedPointToDecimalString(ratio *big.Int) string {
	return decimalString(ratio, q96)
}

// decimalString formats the non-negative rational num/den. A nil or
// negative numerator, or a non-positive denominator, is a caller bug.
func decimalString(num, den *big.Int) string {
	if num == nil || num.Sign() < 0 {
		panic("format: numerator must be non-negative")
	}
	if den == nil || den.Sign() <= 0 {
		panic("format: denominator must be positive")
	}
	if num.Sign() == 0 {
		return "0"
	}

	intPart := new(big.Int)
	frac := new(big.Int)
	intPart.QuoRem(num, den, frac)

	if intPart.Sign() > 0 {
		s := intPart.String()
		if len(s) > SignificantDigits {
			return s[:SignificantDigits] + strings.Repeat("0", len(s)-SignificantDigits)
		}
		if len(s) == SignificantDigits {
			return s
		}

		var b strings.Builder
		b.WriteString(s)
		b.WriteByte('.')
		for i := len(s); i < SignificantDigits; i++ {
			b.WriteByte(nextDigit(frac, den))
		}
		return b.String()
	}

	// Below one: leading fractional zeros are emitted verbatim and do
	// not consume the budget.
	var b strings.Builder
	b.WriteString("0.")
	d := nextDigit(frac, den)
	for d == '0' {
		b.WriteByte('0')
		d = nextDigit(frac, den)
	}
	b.WriteByte(d)
	for i := 1; i < SignificantDigits; i++ {
		b.WriteByte(nextDigit(frac, den))
	}
	return b.String()
}

// nextDigit advances the long division by one base-10 step, mutating
// the remainder in place.
func nextDigit(rem, den *big.Int) byte {
	rem.Mul(rem, ten)
	quo := new(big.Int)
	quo.QuoRem(rem, den, rem)
	return byte('0' + quo.Uint64())
}
