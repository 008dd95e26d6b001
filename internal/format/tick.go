package format

import (
	"fmt"

	"github.com/0x0042/uniswap-v3-periphery/internal/tickmath"
)

// Sentinels returned for the spacing-aligned boundary ticks.
const (
	MinTickString = "MIN"
	MaxTickString = "MAX"
)

// TickToDecimalString renders the price 1.0001^tick as a decimal
// string. Exactly the spacing-aligned boundary ticks map to the MIN
// and MAX sentinels; a tick one step inside either bound formats
// normally. Ticks outside the bounds are rejected, never clamped.
//
// Negative ticks format the multiplicative inverse of the equivalent
// positive tick's ratio, so both directions carry the same
// significant-digit policy across the full tick range.
func TickToDecimalString(tick, tickSpacing int32) (string, error) {
	minTick, err := tickmath.MinTickForSpacing(tickSpacing)
	if err != nil {
		return "", err
	}
	maxTick, err := tickmath.MaxTickForSpacing(tickSpacing)
	if err != nil {
		return "", err
	}

	switch {
	case tick == minTick:
		return MinTickString, nil
	case tick == maxTick:
		return MaxTickString, nil
	case tick < minTick || tick > maxTick:
		return "", fmt.Errorf("tick %d outside [%d, %d] for spacing %d: %w",
			tick, minTick, maxTick, tickSpacing, tickmath.ErrTickOutOfBounds)
	}

	if tick >= 0 {
		ratio, err := tickmath.GetRatioAtTick(tick)
		if err != nil {
			return "", err
		}
		return FixedPointToDecimalString(ratio), nil
	}

	ratio, err := tickmath.GetRatioAtTick(-tick)
	if err != nil {
		return "", err
	}
	// 1 / (ratio / 2^96) as an exact rational.
	return decimalString(q96, ratio), nil
}
