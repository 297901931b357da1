package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

// chdir isolates the test from a config.* file in the working directory.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func tokenomicsFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("tokenomics", pflag.ContinueOnError)
	flags.String("market-cap-usd", "", "")
	flags.String("supply", "1000000000", "")
	flags.String("eth-price-usd", "", "")
	flags.Bool("airdrop", false, "")
	flags.String("policy", "default", "")
	flags.Int("creator-bps", 0, "")
	flags.Int("creator-bps-airdrop", 0, "")
	flags.Int("airdrop-bps", 0, "")
	flags.Int("tick-spacing", 200, "")
	flags.String("log-level", "info", "")
	return flags
}

func TestLoadTokenomicsFlagsAndDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	flags := tokenomicsFlags()
	if err := flags.Parse([]string{"--market-cap-usd", "35000", "--eth-price-usd", "2253.88", "--creator-bps", "1500"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := LoadTokenomics("", flags)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.MarketCapUsd != "35000" || cfg.EthPriceUsd != "2253.88" || cfg.Supply != "1000000000" {
		t.Fatalf("unexpected values: %+v", cfg)
	}
	if cfg.TickSpacing != 200 || cfg.Policy != "default" || cfg.Format != "human" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.CreatorBps == nil || *cfg.CreatorBps != 1500 {
		t.Fatalf("creator override missing: %v", cfg.CreatorBps)
	}
	if cfg.AirdropBps != nil || cfg.CreatorBpsAirdrop != nil {
		t.Fatalf("unset overrides should be nil")
	}
	if cfg.RetryBackoff != 500*time.Millisecond {
		t.Fatalf("unexpected retry backoff: %s", cfg.RetryBackoff)
	}
}

func TestLoadTokenomicsEnvAndFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "launcher.yaml")
	content := "market-cap-usd: \"1000000\"\nsupply: \"1000000\"\npolicy: micro\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("LAUNCHER_ETH_PRICE_USD", "2000")
	t.Setenv("LAUNCHER_AIRDROP_BPS", "10")

	cfg, err := LoadTokenomics(path, tokenomicsFlags())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.MarketCapUsd != "1000000" || cfg.Supply != "1000000" || cfg.Policy != "micro" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.EthPriceUsd != "2000" {
		t.Fatalf("env value not applied: %+v", cfg)
	}
	if cfg.AirdropBps == nil || *cfg.AirdropBps != 10 {
		t.Fatalf("env override not applied: %v", cfg.AirdropBps)
	}
}

func TestLoadTokenomicsRejectsOutOfRangeBps(t *testing.T) {
	chdir(t, t.TempDir())
	flags := tokenomicsFlags()
	if err := flags.Parse([]string{"--creator-bps", "70000"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if _, err := LoadTokenomics("", flags); err == nil {
		t.Fatalf("expected range error")
	}
}

func TestLoadTickMissingConfigFile(t *testing.T) {
	if _, err := LoadTick(filepath.Join(t.TempDir(), "missing.yaml"), nil); err == nil {
		t.Fatalf("expected error for missing explicit config file")
	}
}

func TestLoadSaltDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("LAUNCHER_FACTORY", "0x9999999999999999999999999999999999999999")
	t.Setenv("LAUNCHER_PLAN_ID", "0xabc")

	cfg, err := LoadSalt("", nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Factory != "0x9999999999999999999999999999999999999999" {
		t.Fatalf("factory not read from env: %+v", cfg)
	}
	if cfg.PlanID != "0xabc" {
		t.Fatalf("plan id not read from env: %+v", cfg)
	}
	if cfg.MaxAttempts != 100000 || cfg.Timeout != 5*time.Minute || cfg.MaxRetries != 3 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}
