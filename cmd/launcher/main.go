package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "launcher",
		Short:        "Token launch planner: tokenomics, initial tick and salt search",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	tokenomicsCmd := &cobra.Command{
		Use:   "tokenomics",
		Short: "Derive initial tick, supply split and launch purchase impact",
		RunE:  runTokenomics,
	}

	tokenomicsCmd.Flags().String("market-cap-usd", "", "target market cap in USD (e.g. 35000)")
	tokenomicsCmd.Flags().String("supply", "1000000000", "total supply in whole tokens")
	tokenomicsCmd.Flags().String("eth-price-usd", "", "ETH price in USD (e.g. 2253.88)")
	tokenomicsCmd.Flags().Bool("airdrop", false, "reserve an airdrop allocation")
	tokenomicsCmd.Flags().String("amount-in", "", "ETH spent buying at launch (optional)")
	tokenomicsCmd.Flags().String("policy", "default", "allocation policy (default, micro, factory)")
	tokenomicsCmd.Flags().Int("creator-bps", 0, "override creator share without airdrop (bps)")
	tokenomicsCmd.Flags().Int("creator-bps-airdrop", 0, "override creator share with airdrop (bps)")
	tokenomicsCmd.Flags().Int("airdrop-bps", 0, "override airdrop share (bps)")
	tokenomicsCmd.Flags().Int("tick-spacing", 200, "pool tick spacing")
	tokenomicsCmd.Flags().String("format", "human", "output format (human, raw)")
	tokenomicsCmd.Flags().String("rpc", "", "RPC URL, required for --policy factory")
	tokenomicsCmd.Flags().String("factory", "", "token factory address, required for --policy factory")
	tokenomicsCmd.Flags().Int("max-retries", 3, "maximum retry attempts per eth_call")
	tokenomicsCmd.Flags().Duration("retry-backoff", 500*time.Millisecond, "initial retry backoff")
	tokenomicsCmd.Flags().String("out", "", "append the launch plan to this JSONL file")
	tokenomicsCmd.Flags().String("pg-dsn", "", "Postgres DSN for storing launch plans")
	tokenomicsCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(tokenomicsCmd)

	tickCmd := &cobra.Command{
		Use:   "tick",
		Short: "Convert between prices, ticks and sqrt ratios",
		RunE:  runTick,
	}

	tickCmd.Flags().String("price", "", "price in ETH per token (e.g. 0.000035)")
	tickCmd.Flags().String("tick", "", "tick to convert into a sqrt ratio")
	tickCmd.Flags().Int("tick-spacing", 200, "pool tick spacing")
	tickCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(tickCmd)

	saltCmd := &cobra.Command{
		Use:   "salt",
		Short: "Search for a salt whose token address sorts below the pair token",
		RunE:  runSalt,
	}

	saltCmd.Flags().String("rpc", "", "RPC URL")
	saltCmd.Flags().String("factory", "", "token factory address")
	saltCmd.Flags().String("creator", "", "token creator address")
	saltCmd.Flags().String("name", "", "token name")
	saltCmd.Flags().String("symbol", "", "token symbol")
	saltCmd.Flags().String("merkle-root", "", "airdrop merkle root (defaults to zero hash)")
	saltCmd.Flags().String("supply", "1000000000", "total supply in whole tokens")
	saltCmd.Flags().String("pair-token", "", "pair token address (defaults to the factory's)")
	saltCmd.Flags().Uint64("max-attempts", 100000, "maximum salts to try, 0 for unbounded")
	saltCmd.Flags().Duration("timeout", 5*time.Minute, "search timeout, 0 for none")
	saltCmd.Flags().Int("max-retries", 3, "maximum retry attempts per eth_call")
	saltCmd.Flags().Duration("retry-backoff", 500*time.Millisecond, "initial retry backoff")
	saltCmd.Flags().String("initial-tick", "", "initial tick, prints launch calldata when set")
	saltCmd.Flags().String("plan-id", "", "take the initial tick from a stored launch plan (requires --pg-dsn)")
	saltCmd.Flags().String("amount-in", "", "ETH spent buying at launch, selects launch-and-buy calldata")
	saltCmd.Flags().String("out", "", "append the result to this JSONL file")
	saltCmd.Flags().String("pg-dsn", "", "Postgres DSN for storing salt results")
	saltCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(saltCmd)

	return root
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

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339)
}
