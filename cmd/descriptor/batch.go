package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/0x0042/uniswap-v3-periphery/internal/config"
	"github.com/0x0042/uniswap-v3-periphery/internal/descriptor"
	"github.com/0x0042/uniswap-v3-periphery/internal/model"
	"github.com/0x0042/uniswap-v3-periphery/internal/storage"
	"github.com/0x0042/uniswap-v3-periphery/internal/storage/postgres"
)

func runBatch(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadBatch(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.PGDSN == "" {
		return fmt.Errorf("pg dsn is required")
	}
	if cfg.ChainID == 0 {
		return fmt.Errorf("chain id is required")
	}
	if cfg.BatchSize <= 0 {
		return fmt.Errorf("batch size must be positive")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := postgres.NewStore(ctx, cfg.PGDSN)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer store.Close()

	var sink *storage.JsonlStorage
	if cfg.Out != "" {
		sink = storage.NewJsonlStorage(cfg.Out)
	}

	logger.Info("batch start",
		zap.Uint64("chain_id", cfg.ChainID),
		zap.Int("batch_size", cfg.BatchSize),
		zap.String("out", cfg.Out),
	)

	cursor := "0"
	var rendered, failed int
	for {
		positions, err := store.LoadPositions(ctx, cfg.ChainID, cursor, cfg.BatchSize)
		if err != nil {
			return fmt.Errorf("load positions: %w", err)
		}
		if len(positions) == 0 {
			break
		}

		docs := make([]model.RenderedDocument, 0, len(positions))
		for _, position := range positions {
			doc, err := descriptor.RenderPosition(position, time.Now())
			if err != nil {
				failed++
				logger.Warn("render failed",
					zap.String("token_id", position.TokenID),
					zap.Error(err),
				)
				continue
			}
			docs = append(docs, doc)
		}

		if err := store.UpsertDocuments(ctx, docs); err != nil {
			return fmt.Errorf("upsert documents: %w", err)
		}
		if sink != nil {
			if err := sink.PutDocumentBatch(docs); err != nil {
				return err
			}
		}

		rendered += len(docs)
		cursor = positions[len(positions)-1].TokenID
		if len(positions) < cfg.BatchSize {
			break
		}
	}

	logger.Info("batch complete",
		zap.Int("rendered", rendered),
		zap.Int("failed", failed),
	)

	return nil
}
