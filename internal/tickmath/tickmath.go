package tickmath

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
)

// MinTick and MaxTick bound the tick domain of the price curve.
const (
	MinTick int32 = -887272
	MaxTick int32 = 887272
)

var (
	ErrTickOutOfBounds    = errors.New("tick out of bounds")
	ErrInvalidTickSpacing = errors.New("tick spacing must be positive")
)

// sqrtRatios[i] is sqrt(1.0001^-(2^i)) in Q128.128.
var sqrtRatios = [20]*uint256.Int{
	uint256.MustFromHex("0xfffcb933bd6fad37aa2d162d1a594001"),
	uint256.MustFromHex("0xfff97272373d413259a46990580e213a"),
	uint256.MustFromHex("0xfff2e50f5f656932ef12357cf3c7fdcc"),
	uint256.MustFromHex("0xffe5caca7e10e4e61c3624eaa0941cd0"),
	uint256.MustFromHex("0xffcb9843d60f6159c9db58835c926644"),
	uint256.MustFromHex("0xff973b41fa98c081472e6896dfb254c0"),
	uint256.MustFromHex("0xff2ea16466c96a3843ec78b326b52861"),
	uint256.MustFromHex("0xfe5dee046a99a2a811c461f1969c3053"),
	uint256.MustFromHex("0xfcbe86c7900a88aedcffc83b479aa3a4"),
	uint256.MustFromHex("0xf987a7253ac413176f2b074cf7815e54"),
	uint256.MustFromHex("0xf3392b0822b70005940c7a398e4b70f3"),
	uint256.MustFromHex("0xe7159475a2c29b7443b29c7fa6e889d9"),
	uint256.MustFromHex("0xd097f3bdfd2022b8845ad8f792aa5825"),
	uint256.MustFromHex("0xa9f746462d870fdf8a65dc1f90e061e5"),
	uint256.MustFromHex("0x70d869a156d2a1b890bb3df62baf32f7"),
	uint256.MustFromHex("0x31be135f97d08fd981231505542fcfa6"),
	uint256.MustFromHex("0x9aa508b5b7a84e1c677de54f3e99bc9"),
	uint256.MustFromHex("0x5d6af8dedb81196699c329225ee604"),
	uint256.MustFromHex("0x2216e584f5fa1ea926041bedfe98"),
	uint256.MustFromHex("0x48a170391f7dc42444e8fa2"),
}

var (
	oneQ128 = uint256.MustFromHex("0x100000000000000000000000000000000")
	mask32  = uint256.NewInt(0xffffffff)
	maxU256 = new(uint256.Int).Not(uint256.NewInt(0))
)

// MinTickForSpacing returns the smallest usable tick for a spacing:
// the global minimum rounded toward zero to a multiple of spacing.
func MinTickForSpacing(spacing int32) (int32, error) {
	if spacing <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidTickSpacing, spacing)
	}
	return (MinTick / spacing) * spacing, nil
}

// MaxTickForSpacing returns the largest usable tick for a spacing.
func MaxTickForSpacing(spacing int32) (int32, error) {
	if spacing <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidTickSpacing, spacing)
	}
	return (MaxTick / spacing) * spacing, nil
}

// GetSqrtRatioAtTick computes sqrt(1.0001^tick) * 2^96 by the
// canonical bit-table walk: the product of precomputed Q128.128
// factors for each set bit of |tick|, inverted for positive ticks,
// then shifted to Q64.96 rounding up.
func GetSqrtRatioAtTick(tick int32) (*big.Int, error) {
	if tick < MinTick || tick > MaxTick {
		return nil, fmt.Errorf("%w: %d", ErrTickOutOfBounds, tick)
	}

	absTick := uint32(tick)
	if tick < 0 {
		absTick = uint32(-tick)
	}

	ratio := new(uint256.Int)
	if absTick&1 != 0 {
		ratio.Set(sqrtRatios[0])
	} else {
		ratio.Set(oneQ128)
	}
	for i := 1; i < len(sqrtRatios); i++ {
		if absTick&(1<<uint(i)) != 0 {
			ratio.Mul(ratio, sqrtRatios[i])
			ratio.Rsh(ratio, 128)
		}
	}

	if tick > 0 {
		ratio.Div(maxU256, ratio)
	}

	rem := new(uint256.Int).And(ratio, mask32)
	ratio.Rsh(ratio, 32)
	if !rem.IsZero() {
		ratio.AddUint64(ratio, 1)
	}
	return ratio.ToBig(), nil
}

// GetRatioAtTick computes the price ratio 1.0001^tick in Q64.96 by
// squaring the sqrt ratio. The square is taken in big.Int space since
// it can exceed 256 bits before the shift.
func GetRatioAtTick(tick int32) (*big.Int, error) {
	sqrt, err := GetSqrtRatioAtTick(tick)
	if err != nil {
		return nil, err
	}
	ratio := new(big.Int).Mul(sqrt, sqrt)
	return ratio.Rsh(ratio, 96), nil
}
