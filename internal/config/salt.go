package config

import (
	"time"

	"github.com/spf13/pflag"
)

// SaltConfig holds configuration for the salt command.
type SaltConfig struct {
	RPCURL       string
	Factory      string
	Creator      string
	Name         string
	Symbol       string
	MerkleRoot   string
	Supply       string
	PairToken    string
	MaxAttempts  uint64
	Timeout      time.Duration
	MaxRetries   int
	RetryBackoff time.Duration
	InitialTick  string
	PlanID       string
	AmountIn     string
	Out          string
	PGDSN        string
	LogLevel     string
}

// LoadSalt merges config file, environment variables, and flags into SaltConfig.
func LoadSalt(cfgFile string, flags *pflag.FlagSet) (SaltConfig, error) {
	v, err := newViper(cfgFile, flags, map[string]interface{}{
		"supply":        "1000000000",
		"max-attempts":  uint64(100000),
		"timeout":       5 * time.Minute,
		"max-retries":   3,
		"retry-backoff": 500 * time.Millisecond,
		"log-level":     "info",
	})
	if err != nil {
		return SaltConfig{}, err
	}

	return SaltConfig{
		RPCURL:       v.GetString("rpc"),
		Factory:      v.GetString("factory"),
		Creator:      v.GetString("creator"),
		Name:         v.GetString("name"),
		Symbol:       v.GetString("symbol"),
		MerkleRoot:   v.GetString("merkle-root"),
		Supply:       v.GetString("supply"),
		PairToken:    v.GetString("pair-token"),
		MaxAttempts:  v.GetUint64("max-attempts"),
		Timeout:      v.GetDuration("timeout"),
		MaxRetries:   v.GetInt("max-retries"),
		RetryBackoff: v.GetDuration("retry-backoff"),
		InitialTick:  v.GetString("initial-tick"),
		PlanID:       v.GetString("plan-id"),
		AmountIn:     v.GetString("amount-in"),
		Out:          v.GetString("out"),
		PGDSN:        v.GetString("pg-dsn"),
		LogLevel:     v.GetString("log-level"),
	}, nil
}
