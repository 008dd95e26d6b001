package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// RenderConfig holds configuration for the render command.
type RenderConfig struct {
	RPCURL   string
	Manager  string
	TokenID  string
	Out      string
	LogLevel string
}

// BatchConfig holds configuration for the batch command.
type BatchConfig struct {
	PGDSN     string
	ChainID   uint64
	BatchSize int
	Out       string
	LogLevel  string
}

// LoadRender merges config file, environment variables, and flags into
// RenderConfig.
func LoadRender(cfgFile string, flags *pflag.FlagSet) (RenderConfig, error) {
	v, err := newViper(cfgFile, flags)
	if err != nil {
		return RenderConfig{}, err
	}

	return RenderConfig{
		RPCURL:   v.GetString("rpc"),
		Manager:  v.GetString("manager"),
		TokenID:  v.GetString("token-id"),
		Out:      v.GetString("out"),
		LogLevel: v.GetString("log-level"),
	}, nil
}

// LoadBatch merges config file, environment variables, and flags into
// BatchConfig.
func LoadBatch(cfgFile string, flags *pflag.FlagSet) (BatchConfig, error) {
	v, err := newViper(cfgFile, flags)
	if err != nil {
		return BatchConfig{}, err
	}

	return BatchConfig{
		PGDSN:     v.GetString("pg-dsn"),
		ChainID:   v.GetUint64("chain-id"),
		BatchSize: v.GetInt("batch-size"),
		Out:       v.GetString("out"),
		LogLevel:  v.GetString("log-level"),
	}, nil
}

func newViper(cfgFile string, flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("DESCRIPTOR")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("batch-size", 500)
	v.SetDefault("log-level", "info")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	return v, nil
}
