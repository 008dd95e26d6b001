package format

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

func TestAddressToString(t *testing.T) {
	cases := []struct {
		addr common.Address
		want string
	}{
		{
			common.HexToAddress("0xFFfFfFffFFfffFFfFFfFFFFFffFFFffffFfFFFfF"),
			"0xffffffffffffffffffffffffffffffffffffffff",
		},
		{
			common.HexToAddress("0x1111111111111111111111111111111111111111"),
			"0x1111111111111111111111111111111111111111",
		},
		{
			common.Address{},
			"0x0000000000000000000000000000000000000000",
		},
		{
			common.HexToAddress("0xAbCd000000000000000000000000000000000001"),
			"0xabcd000000000000000000000000000000000001",
		},
	}
	for _, tc := range cases {
		got := AddressToString(tc.addr)
		if got != tc.want {
			t.Fatalf("address mismatch: got %q, want %q", got, tc.want)
		}
		if len(got) != 42 {
			t.Fatalf("address length %d: %q", len(got), got)
		}
	}
}
