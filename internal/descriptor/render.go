package descriptor

import (
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/0x0042/uniswap-v3-periphery/internal/model"
)

// RenderPosition renders the token URI document for a stored position
// record. Address and numeric fields arrive as strings and are
// validated here before formatting.
func RenderPosition(record model.PositionRecord, now time.Time) (model.RenderedDocument, error) {
	tokenID, ok := new(big.Int).SetString(record.TokenID, 10)
	if !ok {
		return model.RenderedDocument{}, fmt.Errorf("invalid token id: %s", record.TokenID)
	}
	liquidity, ok := new(big.Int).SetString(record.Liquidity, 10)
	if !ok {
		return model.RenderedDocument{}, fmt.Errorf("invalid liquidity: %s", record.Liquidity)
	}
	for _, addr := range []string{record.Token0, record.Token1, record.PoolAddress} {
		if !common.IsHexAddress(addr) {
			return model.RenderedDocument{}, fmt.Errorf("invalid address: %s", addr)
		}
	}

	params := URIParams{
		TokenID:      tokenID,
		Token0:       common.HexToAddress(record.Token0),
		Token1:       common.HexToAddress(record.Token1),
		Token0Symbol: record.Token0Symbol,
		Token1Symbol: record.Token1Symbol,
		Fee:          record.Fee,
		TickLower:    record.TickLower,
		TickUpper:    record.TickUpper,
		TickSpacing:  record.TickSpacing,
		Liquidity:    liquidity,
		PoolAddress:  common.HexToAddress(record.PoolAddress),
	}

	doc, err := BuildDocument(params)
	if err != nil {
		return model.RenderedDocument{}, err
	}
	uri, err := EncodeTokenURI(doc)
	if err != nil {
		return model.RenderedDocument{}, err
	}

	return model.RenderedDocument{
		ChainID:    record.ChainID,
		TokenID:    record.TokenID,
		Name:       doc.Name,
		TokenURI:   uri,
		RenderedAt: now.UTC().Format(time.RFC3339),
	}, nil
}
