package descriptor

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/0x0042/uniswap-v3-periphery/internal/format"
)

const protocolName = "Uniswap V3"

// The token URI carries a placeholder image; SVG rendering is a
// separate concern.
const placeholderImage = "data:image/svg+xml;utf8,<svg xmlns='http://www.w3.org/2000/svg' width='290' height='500'/>"

// URIParams carries everything the token URI document embeds.
type URIParams struct {
	TokenID      *big.Int
	Token0       common.Address
	Token1       common.Address
	Token0Symbol string
	Token1Symbol string
	Fee          uint32
	TickLower    int32
	TickUpper    int32
	TickSpacing  int32
	Liquidity    *big.Int
	PoolAddress  common.Address
}

// Document is the JSON envelope wrapped by the token URI.
type Document struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// BuildDocument assembles the name and description from the formatted
// tick, fee and address strings. The formatter outputs are embedded
// verbatim; no further numeric transformation happens here.
func BuildDocument(params URIParams) (Document, error) {
	lower, err := format.TickToDecimalString(params.TickLower, params.TickSpacing)
	if err != nil {
		return Document{}, fmt.Errorf("tick lower: %w", err)
	}
	upper, err := format.TickToDecimalString(params.TickUpper, params.TickSpacing)
	if err != nil {
		return Document{}, fmt.Errorf("tick upper: %w", err)
	}

	feeStr := format.FeeToPercentString(params.Fee)

	name := fmt.Sprintf("%s - %s - %s/%s - %s<>%s",
		protocolName, feeStr, params.Token0Symbol, params.Token1Symbol, lower, upper)

	liquidity := "0"
	if params.Liquidity != nil {
		liquidity = params.Liquidity.String()
	}
	tokenID := "0"
	if params.TokenID != nil {
		tokenID = params.TokenID.String()
	}

	description := fmt.Sprintf(
		"This NFT represents a liquidity position in a %s %s-%s pool. "+
			"The owner of this NFT can modify or redeem the position.\n\n"+
			"Pool Address: %s\n"+
			"%s Address: %s\n"+
			"%s Address: %s\n"+
			"Fee Tier: %s\n"+
			"Token ID: %s\n"+
			"Liquidity: %s\n",
		protocolName, params.Token0Symbol, params.Token1Symbol,
		format.AddressToString(params.PoolAddress),
		params.Token0Symbol, format.AddressToString(params.Token0),
		params.Token1Symbol, format.AddressToString(params.Token1),
		feeStr,
		tokenID,
		liquidity,
	)

	return Document{
		Name:        name,
		Description: description,
		Image:       placeholderImage,
	}, nil
}

// EncodeTokenURI wraps a document as a base64 JSON data URI.
func EncodeTokenURI(doc Document) (string, error) {
	payload, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshal document: %w", err)
	}
	return "data:application/json;base64," + base64.StdEncoding.EncodeToString(payload), nil
}

// ConstructTokenURI renders the document as a base64 JSON data URI.
func ConstructTokenURI(params URIParams) (string, error) {
	doc, err := BuildDocument(params)
	if err != nil {
		return "", err
	}
	return EncodeTokenURI(doc)
}
