package main

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/0x0042/uniswap-v3-periphery/internal/chain"
	"github.com/0x0042/uniswap-v3-periphery/internal/config"
	"github.com/0x0042/uniswap-v3-periphery/internal/descriptor"
	"github.com/0x0042/uniswap-v3-periphery/internal/dex"
	"github.com/0x0042/uniswap-v3-periphery/internal/model"
	"github.com/0x0042/uniswap-v3-periphery/internal/storage"
)

func runRender(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadRender(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.RPCURL == "" {
		return fmt.Errorf("rpc url is required")
	}
	if !common.IsHexAddress(cfg.Manager) {
		return fmt.Errorf("invalid manager address: %s", cfg.Manager)
	}
	tokenID, ok := new(big.Int).SetString(cfg.TokenID, 10)
	if !ok {
		return fmt.Errorf("invalid token id: %s", cfg.TokenID)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	chainClient, err := chain.NewClient(ctx, cfg.RPCURL)
	if err != nil {
		return fmt.Errorf("connect rpc: %w", err)
	}
	defer chainClient.Close()

	logger.Info("render start",
		zap.String("rpc", cfg.RPCURL),
		zap.String("manager", cfg.Manager),
		zap.String("token_id", cfg.TokenID),
	)

	record, err := dex.FetchPosition(ctx, chainClient, common.HexToAddress(cfg.Manager), tokenID, dex.NewTokenMetaCache(), logger)
	if err != nil {
		return fmt.Errorf("fetch position: %w", err)
	}

	doc, err := descriptor.RenderPosition(record, time.Now())
	if err != nil {
		return fmt.Errorf("render position: %w", err)
	}

	if cfg.Out == "" {
		fmt.Println(doc.TokenURI)
	} else {
		sink := storage.NewJsonlStorage(cfg.Out)
		if err := sink.PutDocumentBatch([]model.RenderedDocument{doc}); err != nil {
			return err
		}
	}

	logger.Info("render complete",
		zap.String("token_id", doc.TokenID),
		zap.String("name", doc.Name),
		zap.String("out", cfg.Out),
	)

	return nil
}
