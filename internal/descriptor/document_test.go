package descriptor

import (
	"encoding/base64"
	"encoding/json"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

func testParams() URIParams {
	return URIParams{
		TokenID:      big.NewInt(42),
		Token0:       common.HexToAddress("0x1111111111111111111111111111111111111111"),
		Token1:       common.HexToAddress("0x2222222222222222222222222222222222222222"),
		Token0Symbol: "USDC",
		Token1Symbol: "WETH",
		Fee:          3000,
		TickLower:    -887220,
		TickUpper:    887220,
		TickSpacing:  60,
		Liquidity:    big.NewInt(123456789),
		PoolAddress:  common.HexToAddress("0x3333333333333333333333333333333333333333"),
	}
}

func TestBuildDocumentName(t *testing.T) {
	doc, err := BuildDocument(testParams())
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	want := "Uniswap V3 - 0.3% - USDC/WETH - MIN<>MAX"
	if doc.Name != want {
		t.Fatalf("name mismatch: got %q, want %q", doc.Name, want)
	}
}

func TestBuildDocumentNameInnerTicks(t *testing.T) {
	params := testParams()
	params.Fee = 500
	params.TickLower = -60
	params.TickUpper = 60

	doc, err := BuildDocument(params)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	want := "Uniswap V3 - 0.05% - USDC/WETH - 0.99401<>1.0060"
	if doc.Name != want {
		t.Fatalf("name mismatch: got %q, want %q", doc.Name, want)
	}
}

func TestBuildDocumentDescription(t *testing.T) {
	doc, err := BuildDocument(testParams())
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	for _, fragment := range []string{
		"Pool Address: 0x3333333333333333333333333333333333333333",
		"USDC Address: 0x1111111111111111111111111111111111111111",
		"WETH Address: 0x2222222222222222222222222222222222222222",
		"Fee Tier: 0.3%",
		"Token ID: 42",
		"Liquidity: 123456789",
	} {
		if !strings.Contains(doc.Description, fragment) {
			t.Fatalf("description missing %q:\n%s", fragment, doc.Description)
		}
	}
}

func TestBuildDocumentRejectsBadTicks(t *testing.T) {
	params := testParams()
	params.TickLower = -887271
	if _, err := BuildDocument(params); err == nil {
		t.Fatalf("expected error for out-of-range tick")
	}
}

func TestConstructTokenURI(t *testing.T) {
	uri, err := ConstructTokenURI(testParams())
	if err != nil {
		t.Fatalf("construct: %v", err)
	}

	const prefix = "data:application/json;base64,"
	if !strings.HasPrefix(uri, prefix) {
		t.Fatalf("uri prefix mismatch: %q", uri)
	}

	payload, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, prefix))
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}

	var doc Document
	if err := json.Unmarshal(payload, &doc); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if doc.Name != "Uniswap V3 - 0.3% - USDC/WETH - MIN<>MAX" {
		t.Fatalf("payload name mismatch: %q", doc.Name)
	}
	if doc.Image == "" {
		t.Fatalf("payload image missing")
	}
}
