package format

import (
	"math/big"
	"strings"
	"testing"
)

// q96Ratio builds floor(num/den * 2^96).
func q96Ratio(num, den int64) *big.Int {
	r := new(big.Int).Lsh(big.NewInt(num), 96)
	return r.Div(r, big.NewInt(den))
}

func TestFixedPointToDecimalStringFloorAtCutoff(t *testing.T) {
	// 1.2345 arrives as floor(1.2345*2^96), whose exact expansion is
	// 1.23449999...; the digit after the budget is dropped, not
	// rounded up.
	got := FixedPointToDecimalString(q96Ratio(12345, 10000))
	if got != "1.2344" {
		t.Fatalf("floor cutoff mismatch: %q", got)
	}
}

func TestFixedPointToDecimalStringUnit(t *testing.T) {
	got := FixedPointToDecimalString(new(big.Int).Lsh(big.NewInt(1), 96))
	if got != "1.0000" {
		t.Fatalf("unit ratio mismatch: %q", got)
	}
}

func TestFixedPointToDecimalStringMidRange(t *testing.T) {
	cases := []struct {
		num, den int64
		want     string
	}{
		{5, 1, "5.0000"},
		{42, 1, "42.000"},
		{987, 1, "987.00"},
		{1234, 1, "1234.0"},
		{12500, 1, "12500"},
		{99999, 1, "99999"},
		{25, 2, "12.500"},
		{1, 2, "0.50000"},
	}
	for _, tc := range cases {
		got := FixedPointToDecimalString(q96Ratio(tc.num, tc.den))
		if got != tc.want {
			t.Fatalf("%d/%d: got %q, want %q", tc.num, tc.den, got, tc.want)
		}
	}
}

func TestFixedPointToDecimalStringZeroFill(t *testing.T) {
	// The sixth significant digit and beyond become zero fill, not
	// dropped characters.
	got := FixedPointToDecimalString(new(big.Int).Lsh(big.NewInt(123456), 96))
	if got != "123450" {
		t.Fatalf("six digits: %q", got)
	}

	big30, ok := new(big.Int).SetString("338483191916734087425918273912", 10)
	if !ok {
		t.Fatalf("parse literal")
	}
	got = FixedPointToDecimalString(new(big.Int).Lsh(big30, 96))
	want := "33848" + strings.Repeat("0", 25)
	if got != want {
		t.Fatalf("thirty digits: got %q, want %q", got, want)
	}
}

func TestFixedPointToDecimalStringBelowOne(t *testing.T) {
	// Just below one: no leading zeros, five nines.
	justBelow := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 96), big.NewInt(1))
	if got := FixedPointToDecimalString(justBelow); got != "0.99999" {
		t.Fatalf("just below one: %q", got)
	}

	// 1.2345e-15: fourteen verbatim zeros, then five truncated
	// significant digits.
	small := new(big.Int).Lsh(big.NewInt(12345), 96)
	small.Div(small, new(big.Int).Exp(big.NewInt(10), big.NewInt(19), nil))
	want := "0." + strings.Repeat("0", 14) + "12344"
	if got := FixedPointToDecimalString(small); got != want {
		t.Fatalf("small ratio: got %q, want %q", got, want)
	}

	// The smallest representable positive ratio, 2^-96: 28 zeros.
	tiny := FixedPointToDecimalString(big.NewInt(1))
	want = "0." + strings.Repeat("0", 28) + "12621"
	if tiny != want {
		t.Fatalf("tiny ratio: got %q, want %q", tiny, want)
	}
}

func TestFixedPointToDecimalStringZero(t *testing.T) {
	if got := FixedPointToDecimalString(big.NewInt(0)); got != "0" {
		t.Fatalf("zero ratio: %q", got)
	}
}

func TestFixedPointToDecimalStringDeterministic(t *testing.T) {
	ratio := q96Ratio(12345, 10000)
	first := FixedPointToDecimalString(ratio)
	for i := 0; i < 3; i++ {
		if got := FixedPointToDecimalString(ratio); got != first {
			t.Fatalf("output changed between calls: %q != %q", got, first)
		}
	}
}

func TestFixedPointToDecimalStringSignificantDigitBudget(t *testing.T) {
	cases := []*big.Int{
		q96Ratio(12345, 10000),
		q96Ratio(7, 3),
		q96Ratio(1, 700),
		new(big.Int).Lsh(big.NewInt(876543), 96),
	}
	for _, ratio := range cases {
		got := FixedPointToDecimalString(ratio)
		trimmed := strings.TrimLeft(strings.Replace(got, ".", "", 1), "0")
		trimmed = strings.TrimRight(trimmed, "0")
		if len(trimmed) > SignificantDigits {
			t.Fatalf("%s carries more than %d significant digits: %q",
				ratio, SignificantDigits, got)
		}
	}
}

func TestFixedPointToDecimalStringRejectsNegative(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for negative ratio")
		}
	}()
	FixedPointToDecimalString(big.NewInt(-1))
}
