package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	root := &cobra.Command{
		Use:          "descriptor",
		Short:        "V3 position descriptor renderer",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "Render the token URI for one position",
		RunE:  runRender,
	}

	renderCmd.Flags().String("rpc", "", "RPC URL")
	renderCmd.Flags().String("manager", "", "NonfungiblePositionManager address")
	renderCmd.Flags().String("token-id", "", "position token id")
	renderCmd.Flags().String("out", "", "output JSONL path (stdout when empty)")
	renderCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(renderCmd)

	batchCmd := &cobra.Command{
		Use:   "batch",
		Short: "Render token URIs for stored positions",
		RunE:  runBatch,
	}

	batchCmd.Flags().String("pg-dsn", "", "Postgres DSN")
	batchCmd.Flags().Uint64("chain-id", 0, "chain id of the stored positions")
	batchCmd.Flags().Int("batch-size", 500, "positions per batch")
	batchCmd.Flags().String("out", "", "optional JSONL copy of rendered documents")
	batchCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(batchCmd)

	priceCmd := &cobra.Command{
		Use:   "price",
		Short: "Format a tick or fee without touching the chain",
		RunE:  runPrice,
	}

	priceCmd.Flags().Int32("tick", 0, "tick index")
	priceCmd.Flags().Int32("tick-spacing", 1, "tick spacing")
	priceCmd.Flags().Uint32("fee", 0, "fee in millionths (printed when set)")

	root.AddCommand(priceCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
