package model

// PositionRecord captures one NFT liquidity position as stored or
// supplied by the caller. Addresses are 0x-prefixed lowercase hex;
// Liquidity and TokenID are decimal strings since they exceed 64 bits.
type PositionRecord struct {
	ChainID      uint64 `json:"chain_id"`
	TokenID      string `json:"token_id"`
	PoolAddress  string `json:"pool_address"`
	Token0       string `json:"token0"`
	Token1       string `json:"token1"`
	Token0Symbol string `json:"token0_symbol"`
	Token1Symbol string `json:"token1_symbol"`
	Fee          uint32 `json:"fee"`
	TickSpacing  int32  `json:"tick_spacing"`
	TickLower    int32  `json:"tick_lower"`
	TickUpper    int32  `json:"tick_upper"`
	Liquidity    string `json:"liquidity"`
}

// RenderedDocument pairs a position with its rendered token URI.
type RenderedDocument struct {
	ChainID    uint64 `json:"chain_id"`
	TokenID    string `json:"token_id"`
	Name       string `json:"name"`
	TokenURI   string `json:"token_uri"`
	RenderedAt string `json:"rendered_at"`
}
