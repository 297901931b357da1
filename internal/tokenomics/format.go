package tokenomics

import (
	"math/big"

	"tokenLauncher/internal/fixedpoint"
	"tokenLauncher/internal/model"
)

func str(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}

func units(v *big.Int) string {
	return fixedpoint.FormatUnits(v, fixedpoint.Decimals)
}

// Serialize renders a result with every integer as a base-10 string.
func Serialize(r *Result) model.TokenomicsRecord {
	record := model.TokenomicsRecord{
		Supply: model.SupplyRecord{
			Total:   str(r.Supply.Total),
			Creator: str(r.Supply.Creator),
			Airdrop: str(r.Supply.Airdrop),
			LP:      str(r.Supply.LP),
		},
		Allocation: model.AllocationRecord{
			Creator: str(r.Allocation.Creator),
			Airdrop: str(r.Allocation.Airdrop),
			LP:      str(r.Allocation.LP),
		},
		Price: model.PriceRecord{
			TargetEth: str(r.Price.TargetEth),
			TargetUsd: str(r.Price.TargetUsd),
			ActualEth: str(r.Price.ActualEth),
			ActualUsd: str(r.Price.ActualUsd),
		},
		Tick: r.Tick,
		MarketCap: model.MarketCapRecord{
			TargetEth: str(r.MarketCap.TargetEth),
			TargetUsd: str(r.MarketCap.TargetUsd),
			ActualEth: str(r.MarketCap.ActualEth),
			ActualUsd: str(r.MarketCap.ActualUsd),
		},
	}
	if r.Swap != nil {
		record.Swap = swapRecord(r.Swap, str)
	}
	return record
}

// Humanize renders a result in token, ETH and USD units with allocations as percentages.
func Humanize(r *Result) model.TokenomicsSummary {
	summary := model.TokenomicsSummary{
		Supply: model.SupplyRecord{
			Total:   units(r.Supply.Total),
			Creator: units(r.Supply.Creator),
			Airdrop: units(r.Supply.Airdrop),
			LP:      units(r.Supply.LP),
		},
		Allocation: model.AllocationPercent{
			Creator: fixedpoint.BpsToPercent(r.Allocation.Creator),
			Airdrop: fixedpoint.BpsToPercent(r.Allocation.Airdrop),
			LP:      fixedpoint.BpsToPercent(r.Allocation.LP),
		},
		Price: model.PriceRecord{
			TargetEth: units(r.Price.TargetEth),
			TargetUsd: units(r.Price.TargetUsd),
			ActualEth: units(r.Price.ActualEth),
			ActualUsd: units(r.Price.ActualUsd),
		},
		Tick: r.Tick,
		MarketCap: model.MarketCapRecord{
			TargetEth: units(r.MarketCap.TargetEth),
			TargetUsd: units(r.MarketCap.TargetUsd),
			ActualEth: units(r.MarketCap.ActualEth),
			ActualUsd: units(r.MarketCap.ActualUsd),
		},
	}
	if r.Swap != nil {
		summary.Swap = swapRecord(r.Swap, units)
	}
	return summary
}

func swapRecord(s *SwapSimulation, render func(*big.Int) string) *model.SwapRecord {
	return &model.SwapRecord{
		AmountInEth:       render(s.Input.AmountInEth),
		FeeAmount:         render(s.Input.FeeAmount),
		AmountInAfterFee:  render(s.Input.AmountInAfterFee),
		TokensOut:         render(s.Output.TokensOut),
		PriceImpact:       render(s.Output.PriceImpact),
		MarketCapAfterEth: render(s.MarketCapAfter.Eth),
		MarketCapAfterUsd: render(s.MarketCapAfter.Usd),
		Degenerate:        s.Degenerate,
	}
}
