package tickmath

import (
	"errors"
	"math/big"
	"testing"
)

func fromString(t *testing.T, s string) *big.Int {
	t.Helper()
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		t.Fatalf("parse %q", s)
	}
	return n
}

func TestGetSqrtRatioAtTickKnownValues(t *testing.T) {
	cases := []struct {
		tick int32
		want string
	}{
		{MinTick, "4295128739"},
		{0, "79228162514264337593543950336"},
		{MaxTick, "1461446703485210103287273052203988822378723970342"},
	}
	for _, tc := range cases {
		got, err := GetSqrtRatioAtTick(tc.tick)
		if err != nil {
			t.Fatalf("tick %d: %v", tc.tick, err)
		}
		if got.Cmp(fromString(t, tc.want)) != 0 {
			t.Fatalf("tick %d: got %s, want %s", tc.tick, got, tc.want)
		}
	}
}

func TestGetSqrtRatioAtTickMonotonic(t *testing.T) {
	ticks := []int32{MinTick, -500000, -1000, -1, 0, 1, 1000, 500000, MaxTick}
	var prev *big.Int
	for _, tick := range ticks {
		ratio, err := GetSqrtRatioAtTick(tick)
		if err != nil {
			t.Fatalf("tick %d: %v", tick, err)
		}
		if prev != nil && ratio.Cmp(prev) <= 0 {
			t.Fatalf("ratio not increasing at tick %d", tick)
		}
		prev = ratio
	}
}

func TestGetSqrtRatioAtTickOutOfBounds(t *testing.T) {
	if _, err := GetSqrtRatioAtTick(MinTick - 1); !errors.Is(err, ErrTickOutOfBounds) {
		t.Fatalf("expected out-of-bounds error, got %v", err)
	}
	if _, err := GetSqrtRatioAtTick(MaxTick + 1); !errors.Is(err, ErrTickOutOfBounds) {
		t.Fatalf("expected out-of-bounds error, got %v", err)
	}
}

func TestGetRatioAtTickZero(t *testing.T) {
	ratio, err := GetRatioAtTick(0)
	if err != nil {
		t.Fatalf("tick 0: %v", err)
	}
	want := new(big.Int).Lsh(big.NewInt(1), 96)
	if ratio.Cmp(want) != 0 {
		t.Fatalf("tick 0 ratio: %s", ratio)
	}
}

func TestGetRatioAtTickInverseSymmetry(t *testing.T) {
	// ratio(t) * ratio(-t) must land within rounding error of 2^192.
	q192 := new(big.Int).Lsh(big.NewInt(1), 192)
	for _, tick := range []int32{1, 60, 887, 10000} {
		pos, err := GetSqrtRatioAtTick(tick)
		if err != nil {
			t.Fatalf("tick %d: %v", tick, err)
		}
		neg, err := GetSqrtRatioAtTick(-tick)
		if err != nil {
			t.Fatalf("tick %d: %v", -tick, err)
		}
		product := new(big.Int).Mul(pos, neg)
		diff := new(big.Int).Sub(product, q192)
		diff.Abs(diff)
		// Tolerance: one part in 2^64 of the product.
		limit := new(big.Int).Rsh(q192, 64)
		if diff.Cmp(limit) > 0 {
			t.Fatalf("tick %d: inverse drift %s", tick, diff)
		}
	}
}

func TestTickBoundsForSpacing(t *testing.T) {
	cases := []struct {
		spacing  int32
		min, max int32
	}{
		{1, -887272, 887272},
		{10, -887270, 887270},
		{60, -887220, 887220},
		{200, -887200, 887200},
	}
	for _, tc := range cases {
		min, err := MinTickForSpacing(tc.spacing)
		if err != nil {
			t.Fatalf("spacing %d: %v", tc.spacing, err)
		}
		max, err := MaxTickForSpacing(tc.spacing)
		if err != nil {
			t.Fatalf("spacing %d: %v", tc.spacing, err)
		}
		if min != tc.min || max != tc.max {
			t.Fatalf("spacing %d: got [%d, %d], want [%d, %d]",
				tc.spacing, min, max, tc.min, tc.max)
		}
	}
}

func TestTickBoundsRejectBadSpacing(t *testing.T) {
	if _, err := MinTickForSpacing(0); !errors.Is(err, ErrInvalidTickSpacing) {
		t.Fatalf("expected spacing error, got %v", err)
	}
	if _, err := MaxTickForSpacing(-60); !errors.Is(err, ErrInvalidTickSpacing) {
		t.Fatalf("expected spacing error, got %v", err)
	}
}
