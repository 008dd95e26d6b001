package dex

import (
	"bytes"
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"go.uber.org/zap"

	"github.com/0x0042/uniswap-v3-periphery/internal/chain"
	"github.com/0x0042/uniswap-v3-periphery/internal/model"
)

// TokenMetaCache caches token metadata by address.
type TokenMetaCache struct {
	mu   sync.RWMutex
	data map[common.Address]model.TokenMeta
}

func NewTokenMetaCache() *TokenMetaCache {
	return &TokenMetaCache{data: make(map[common.Address]model.TokenMeta)}
}

func (c *TokenMetaCache) Get(address common.Address) (model.TokenMeta, bool) {
	c.mu.RLock()
	meta, ok := c.data[address]
	c.mu.RUnlock()
	return meta, ok
}

func (c *TokenMetaCache) Set(address common.Address, meta model.TokenMeta) {
	c.mu.Lock()
	c.data[address] = meta
	c.mu.Unlock()
}

// FetchPosition loads one position from the NonfungiblePositionManager,
// resolving its pool through the factory and its token symbols through
// the token cache.
func FetchPosition(
	ctx context.Context,
	chainClient *chain.Client,
	manager common.Address,
	tokenID *big.Int,
	tokenCache *TokenMetaCache,
	logger *zap.Logger,
) (model.PositionRecord, error) {
	if chainClient == nil {
		return model.PositionRecord{}, fmt.Errorf("chain client is nil")
	}
	if tokenID == nil || tokenID.Sign() < 0 {
		return model.PositionRecord{}, fmt.Errorf("invalid token id")
	}

	managerABI, err := PositionManagerABI()
	if err != nil {
		return model.PositionRecord{}, fmt.Errorf("parse manager abi: %w", err)
	}

	values, err := callMethod(ctx, chainClient, manager, managerABI, "positions", tokenID)
	if err != nil {
		return model.PositionRecord{}, err
	}
	if len(values) != 12 {
		return model.PositionRecord{}, fmt.Errorf("unexpected positions values: %d", len(values))
	}

	token0, err := asAddress(values[2])
	if err != nil {
		return model.PositionRecord{}, fmt.Errorf("token0: %w", err)
	}
	token1, err := asAddress(values[3])
	if err != nil {
		return model.PositionRecord{}, fmt.Errorf("token1: %w", err)
	}
	feeInt, err := asBigInt(values[4])
	if err != nil {
		return model.PositionRecord{}, fmt.Errorf("fee: %w", err)
	}
	tickLowerInt, err := asBigInt(values[5])
	if err != nil {
		return model.PositionRecord{}, fmt.Errorf("tick lower: %w", err)
	}
	tickUpperInt, err := asBigInt(values[6])
	if err != nil {
		return model.PositionRecord{}, fmt.Errorf("tick upper: %w", err)
	}
	liquidity, err := asBigInt(values[7])
	if err != nil {
		return model.PositionRecord{}, fmt.Errorf("liquidity: %w", err)
	}

	tickLower, err := int24FromBig(tickLowerInt)
	if err != nil {
		return model.PositionRecord{}, fmt.Errorf("tick lower: %w", err)
	}
	tickUpper, err := int24FromBig(tickUpperInt)
	if err != nil {
		return model.PositionRecord{}, fmt.Errorf("tick upper: %w", err)
	}

	pool, err := resolvePool(ctx, chainClient, manager, managerABI, token0, token1, feeInt)
	if err != nil {
		return model.PositionRecord{}, err
	}

	poolMeta, err := FetchPoolMeta(ctx, chainClient, pool)
	if err != nil {
		return model.PositionRecord{}, err
	}

	record := model.PositionRecord{
		TokenID:     tokenID.String(),
		PoolAddress: hexutil.Encode(pool[:]),
		Token0:      hexutil.Encode(token0[:]),
		Token1:      hexutil.Encode(token1[:]),
		Fee:         uint32(feeInt.Uint64()),
		TickSpacing: poolMeta.TickSpacing,
		TickLower:   tickLower,
		TickUpper:   tickUpper,
		Liquidity:   liquidity.String(),
	}

	if chainID, err := chainClient.GetChainID(ctx); err == nil {
		record.ChainID = chainID.Uint64()
	} else if logger != nil {
		logger.Debug("chain id fetch failed", zap.Error(err))
	}

	record.Token0Symbol = tokenSymbol(ctx, chainClient, token0, tokenCache, logger)
	record.Token1Symbol = tokenSymbol(ctx, chainClient, token1, tokenCache, logger)

	return record, nil
}

func resolvePool(
	ctx context.Context,
	chainClient *chain.Client,
	manager common.Address,
	managerABI abi.ABI,
	token0, token1 common.Address,
	fee *big.Int,
) (common.Address, error) {
	values, err := callMethod(ctx, chainClient, manager, managerABI, "factory")
	if err != nil {
		return common.Address{}, err
	}
	factory, err := asAddress(values[0])
	if err != nil {
		return common.Address{}, fmt.Errorf("factory: %w", err)
	}

	parsedFactoryABI, err := FactoryABI()
	if err != nil {
		return common.Address{}, fmt.Errorf("parse factory abi: %w", err)
	}

	values, err = callMethod(ctx, chainClient, factory, parsedFactoryABI, "getPool", token0, token1, fee)
	if err != nil {
		return common.Address{}, err
	}
	pool, err := asAddress(values[0])
	if err != nil {
		return common.Address{}, fmt.Errorf("pool: %w", err)
	}
	if pool == (common.Address{}) {
		return common.Address{}, fmt.Errorf("pool not found for %s/%s fee %s", token0.Hex(), token1.Hex(), fee)
	}
	return pool, nil
}

// FetchPoolMeta loads pool metadata including current liquidity and slot0.
func FetchPoolMeta(ctx context.Context, chainClient *chain.Client, pool common.Address) (model.PoolMeta, error) {
	if chainClient == nil {
		return model.PoolMeta{}, fmt.Errorf("chain client is nil")
	}

	poolABI, err := V3PoolABI()
	if err != nil {
		return model.PoolMeta{}, fmt.Errorf("parse pool abi: %w", err)
	}

	meta := model.PoolMeta{Address: hexutil.Encode(pool[:])}

	values, err := callMethod(ctx, chainClient, pool, poolABI, "token0")
	if err != nil {
		return model.PoolMeta{}, err
	}
	token0, err := asAddress(values[0])
	if err != nil {
		return model.PoolMeta{}, fmt.Errorf("token0: %w", err)
	}
	meta.Token0 = hexutil.Encode(token0[:])

	values, err = callMethod(ctx, chainClient, pool, poolABI, "token1")
	if err != nil {
		return model.PoolMeta{}, err
	}
	token1, err := asAddress(values[0])
	if err != nil {
		return model.PoolMeta{}, fmt.Errorf("token1: %w", err)
	}
	meta.Token1 = hexutil.Encode(token1[:])

	values, err = callMethod(ctx, chainClient, pool, poolABI, "fee")
	if err != nil {
		return model.PoolMeta{}, err
	}
	feeInt, err := asBigInt(values[0])
	if err != nil {
		return model.PoolMeta{}, fmt.Errorf("fee: %w", err)
	}
	meta.Fee = uint32(feeInt.Uint64())

	values, err = callMethod(ctx, chainClient, pool, poolABI, "tickSpacing")
	if err != nil {
		return model.PoolMeta{}, err
	}
	tickSpacingInt, err := asBigInt(values[0])
	if err != nil {
		return model.PoolMeta{}, fmt.Errorf("tick spacing: %w", err)
	}
	meta.TickSpacing, err = int24FromBig(tickSpacingInt)
	if err != nil {
		return model.PoolMeta{}, fmt.Errorf("tick spacing: %w", err)
	}

	if values, err := callMethod(ctx, chainClient, pool, poolABI, "liquidity"); err == nil {
		if liq, err := asBigInt(values[0]); err == nil {
			meta.Liquidity = liq.String()
		}
	}

	if values, err := callMethod(ctx, chainClient, pool, poolABI, "slot0"); err == nil && len(values) >= 2 {
		sqrt, errSqrt := asBigInt(values[0])
		tickInt, errTick := asBigInt(values[1])
		if errSqrt == nil && errTick == nil {
			if tick, err := int24FromBig(tickInt); err == nil {
				meta.Slot0 = &model.PoolSlot0{
					SqrtPriceX96: sqrt.String(),
					Tick:         tick,
				}
			}
		}
	}

	return meta, nil
}

func tokenSymbol(
	ctx context.Context,
	chainClient *chain.Client,
	token common.Address,
	tokenCache *TokenMetaCache,
	logger *zap.Logger,
) string {
	if tokenCache != nil {
		if meta, ok := tokenCache.Get(token); ok {
			return meta.Symbol
		}
	}

	log := logger
	if log == nil {
		log = zap.NewNop()
	}

	meta, err := FetchTokenMeta(ctx, chainClient, token)
	if err != nil {
		log.Warn("token metadata fetch failed", zap.String("token", token.Hex()), zap.Error(err))
	}
	if tokenCache != nil {
		tokenCache.Set(token, meta)
	}
	return meta.Symbol
}

// FetchTokenMeta loads token metadata via ERC20 calls, falling back to
// the bytes32 symbol variant for legacy tokens.
func FetchTokenMeta(ctx context.Context, chainClient *chain.Client, token common.Address) (model.TokenMeta, error) {
	meta := model.TokenMeta{Address: hexutil.Encode(token[:])}
	if chainClient == nil {
		return meta, fmt.Errorf("chain client is nil")
	}

	stringABI, err := erc20ABIStringInstance()
	if err != nil {
		return meta, fmt.Errorf("parse erc20 string abi: %w", err)
	}
	bytes32ABI, err := erc20ABIBytes32Instance()
	if err != nil {
		return meta, fmt.Errorf("parse erc20 bytes32 abi: %w", err)
	}

	values, err := callMethod(ctx, chainClient, token, stringABI, "decimals")
	if err != nil {
		return meta, err
	}
	decimals, err := asUint8(values[0])
	if err != nil {
		return meta, err
	}
	meta.Decimals = decimals

	if values, err := callMethod(ctx, chainClient, token, stringABI, "symbol"); err == nil {
		if symbol, ok := values[0].(string); ok {
			meta.Symbol = symbol
			return meta, nil
		}
	}
	values, err = callMethod(ctx, chainClient, token, bytes32ABI, "symbol")
	if err != nil {
		return meta, fmt.Errorf("symbol: %w", err)
	}
	if symbol, ok := bytes32ToString(values[0]); ok {
		meta.Symbol = symbol
	}

	return meta, nil
}

func callMethod(
	ctx context.Context,
	chainClient *chain.Client,
	to common.Address,
	parsed abi.ABI,
	method string,
	args ...interface{},
) ([]interface{}, error) {
	data, err := parsed.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	msg := ethereum.CallMsg{To: &to, Data: data}
	resp, err := chainClient.CallContract(ctx, msg, nil)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}
	values, err := parsed.Unpack(method, resp)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	return values, nil
}

func bytes32ToString(value interface{}) (string, bool) {
	switch v := value.(type) {
	case [32]byte:
		return string(bytes.TrimRight(v[:], "\x00")), true
	case []byte:
		return string(bytes.TrimRight(v, "\x00")), true
	default:
		return "", false
	}
}

func asAddress(value interface{}) (common.Address, error) {
	switch v := value.(type) {
	case common.Address:
		return v, nil
	case *common.Address:
		return *v, nil
	default:
		return common.Address{}, fmt.Errorf("unsupported address type %T", value)
	}
}

func asBigInt(value interface{}) (*big.Int, error) {
	switch v := value.(type) {
	case *big.Int:
		return new(big.Int).Set(v), nil
	case big.Int:
		return new(big.Int).Set(&v), nil
	case uint8:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint16:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	case int8:
		return big.NewInt(int64(v)), nil
	case int16:
		return big.NewInt(int64(v)), nil
	case int32:
		return big.NewInt(int64(v)), nil
	case int64:
		return big.NewInt(v), nil
	default:
		return nil, fmt.Errorf("unsupported int type %T", value)
	}
}

func asUint8(value interface{}) (uint8, error) {
	switch v := value.(type) {
	case uint8:
		return v, nil
	case uint16:
		return uint8(v), nil
	case uint32:
		return uint8(v), nil
	case uint64:
		return uint8(v), nil
	case *big.Int:
		return uint8(v.Uint64()), nil
	default:
		return 0, fmt.Errorf("unsupported uint8 type %T", value)
	}
}

func int24FromBig(value *big.Int) (int32, error) {
	min := big.NewInt(-1 << 23)
	max := big.NewInt((1 << 23) - 1)
	if value.Cmp(min) < 0 || value.Cmp(max) > 0 {
		return 0, fmt.Errorf("int24 overflow: %s", value.String())
	}
	return int32(value.Int64()), nil
}
