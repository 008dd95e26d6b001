package format

import "testing"

func TestFeeToPercentString(t *testing.T) {
	cases := []struct {
		fee  uint32
		want string
	}{
		{0, "0%"},
		{1, "0.0001%"},
		{30, "0.003%"},
		{100, "0.01%"},
		{500, "0.05%"},
		{2500, "0.25%"},
		{3000, "0.3%"},
		{10000, "1%"},
		{17000, "1.7%"},
		{100000, "10%"},
		{400000, "40%"},
		{1000000, "100%"},
		{10000000, "1000%"},
	}
	for _, tc := range cases {
		if got := FeeToPercentString(tc.fee); got != tc.want {
			t.Fatalf("fee %d: got %q, want %q", tc.fee, got, tc.want)
		}
	}
}
