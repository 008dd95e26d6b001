package format

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// AddressToString renders an address as a 0x-prefixed, zero-padded,
// 40-digit lowercase hex string. Downstream consumers compare these
// strings byte for byte, so no checksum casing is applied.
func AddressToString(addr common.Address) string {
	return hexutil.Encode(addr[:])
}
