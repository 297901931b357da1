package config

import (
	"time"

	"github.com/spf13/pflag"
)

// TokenomicsConfig holds configuration for the tokenomics command.
type TokenomicsConfig struct {
	MarketCapUsd string
	Supply       string
	EthPriceUsd  string
	AmountIn     string
	Airdrop      bool
	Policy       string
	// Per-share overrides applied on top of the selected policy.
	CreatorBps        *uint16
	CreatorBpsAirdrop *uint16
	AirdropBps        *uint16
	TickSpacing       int
	Format            string
	RPCURL            string
	Factory           string
	MaxRetries        int
	RetryBackoff      time.Duration
	Out               string
	PGDSN             string
	LogLevel          string
}

// LoadTokenomics merges config file, environment variables, and flags into TokenomicsConfig.
func LoadTokenomics(cfgFile string, flags *pflag.FlagSet) (TokenomicsConfig, error) {
	v, err := newViper(cfgFile, flags, map[string]interface{}{
		"supply":        "1000000000",
		"policy":        "default",
		"tick-spacing":  200,
		"format":        "human",
		"max-retries":   3,
		"retry-backoff": 500 * time.Millisecond,
		"log-level":     "info",
	})
	if err != nil {
		return TokenomicsConfig{}, err
	}

	cfg := TokenomicsConfig{
		MarketCapUsd: v.GetString("market-cap-usd"),
		Supply:       v.GetString("supply"),
		EthPriceUsd:  v.GetString("eth-price-usd"),
		AmountIn:     v.GetString("amount-in"),
		Airdrop:      v.GetBool("airdrop"),
		Policy:       v.GetString("policy"),
		TickSpacing:  v.GetInt("tick-spacing"),
		Format:       v.GetString("format"),
		RPCURL:       v.GetString("rpc"),
		Factory:      v.GetString("factory"),
		MaxRetries:   v.GetInt("max-retries"),
		RetryBackoff: v.GetDuration("retry-backoff"),
		Out:          v.GetString("out"),
		PGDSN:        v.GetString("pg-dsn"),
		LogLevel:     v.GetString("log-level"),
	}

	if cfg.CreatorBps, err = optionalUint16(v, "creator-bps"); err != nil {
		return TokenomicsConfig{}, err
	}
	if cfg.CreatorBpsAirdrop, err = optionalUint16(v, "creator-bps-airdrop"); err != nil {
		return TokenomicsConfig{}, err
	}
	if cfg.AirdropBps, err = optionalUint16(v, "airdrop-bps"); err != nil {
		return TokenomicsConfig{}, err
	}

	return cfg, nil
}
