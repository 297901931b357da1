package tokenomics

import (
	"testing"
)

func TestHumanize(t *testing.T) {
	engine := newTestEngine(t, DefaultConfig())
	res, err := engine.Calculate(Params{
		TargetMarketCapUsd: wei(1_000_000),
		TotalSupply:        wei(1_000_000),
		EthPriceUsd:        wei(2000),
	})
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}

	got := Humanize(res)
	if got.Supply.Total != "1000000.0" || got.Supply.Creator != "200000.0" || got.Supply.Airdrop != "0.0" || got.Supply.LP != "800000.0" {
		t.Fatalf("supply mismatch: %+v", got.Supply)
	}
	if got.Allocation.Creator != 20 || got.Allocation.Airdrop != 0 || got.Allocation.LP != 80 {
		t.Fatalf("allocation mismatch: %+v", got.Allocation)
	}
	if got.Price.TargetEth != "0.0005" || got.Price.TargetUsd != "1.0" || got.Price.ActualEth != "0.000490728750695322" {
		t.Fatalf("price mismatch: %+v", got.Price)
	}
	if got.MarketCap.TargetUsd != "1000000.0" || got.MarketCap.TargetEth != "500.0" {
		t.Fatalf("market cap mismatch: %+v", got.MarketCap)
	}
	if got.Tick != -76200 || got.Swap != nil {
		t.Fatalf("unexpected tick or swap: %d %v", got.Tick, got.Swap)
	}
}

func TestSerialize(t *testing.T) {
	engine := newTestEngine(t, DefaultConfig())
	res, err := engine.Calculate(Params{
		TargetMarketCapUsd: wei(1_000_000),
		TotalSupply:        wei(1_000_000),
		EthPriceUsd:        wei(2000),
		AmountInEth:        wei(10),
	})
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}

	got := Serialize(res)
	if got.Supply.Total != "1000000000000000000000000" {
		t.Fatalf("total mismatch: %s", got.Supply.Total)
	}
	if got.Allocation.Creator != "10000" || got.Allocation.LP != "0" {
		t.Fatalf("allocation mismatch: %+v", got.Allocation)
	}
	if got.Price.TargetEth != "500000000000000" || got.Price.ActualEth != "490728750695322" {
		t.Fatalf("price mismatch: %+v", got.Price)
	}
	if got.Swap == nil || got.Swap.FeeAmount != "30000000000000000" || got.Swap.TokensOut != "800000000000000000000000" {
		t.Fatalf("swap mismatch: %+v", got.Swap)
	}
	if got.Swap.Degenerate {
		t.Fatalf("swap should not be degenerate")
	}
}
