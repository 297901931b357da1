package model

// SupplyRecord is a supply split. Values are raw integers or human decimals depending on the
// enclosing record.
type SupplyRecord struct {
	Total   string `json:"total"`
	Creator string `json:"creator"`
	Airdrop string `json:"airdrop"`
	LP      string `json:"lp"`
}

// AllocationRecord holds allocation shares in basis points.
type AllocationRecord struct {
	Creator string `json:"creator"`
	Airdrop string `json:"airdrop"`
	LP      string `json:"lp"`
}

// AllocationPercent holds allocation shares as percentages (0-100).
type AllocationPercent struct {
	Creator float64 `json:"creator"`
	Airdrop float64 `json:"airdrop"`
	LP      float64 `json:"lp"`
}

// PriceRecord is a per-token price quote.
type PriceRecord struct {
	TargetEth string `json:"target_eth"`
	TargetUsd string `json:"target_usd"`
	ActualEth string `json:"actual_eth"`
	ActualUsd string `json:"actual_usd"`
}

// MarketCapRecord is the supply valued at target and actual prices.
type MarketCapRecord struct {
	TargetEth string `json:"target_eth"`
	TargetUsd string `json:"target_usd"`
	ActualEth string `json:"actual_eth"`
	ActualUsd string `json:"actual_usd"`
}

// SwapRecord describes a purchase made at launch.
type SwapRecord struct {
	AmountInEth       string `json:"amount_in_eth"`
	FeeAmount         string `json:"fee_amount"`
	AmountInAfterFee  string `json:"amount_in_after_fee"`
	TokensOut         string `json:"tokens_out"`
	PriceImpact       string `json:"price_impact"`
	MarketCapAfterEth string `json:"market_cap_after_eth"`
	MarketCapAfterUsd string `json:"market_cap_after_usd"`
	Degenerate        bool   `json:"degenerate,omitempty"`
}

// TokenomicsRecord is a tokenomics result with every integer as a base-10 string.
type TokenomicsRecord struct {
	Supply     SupplyRecord     `json:"supply"`
	Allocation AllocationRecord `json:"allocation"`
	Price      PriceRecord      `json:"price"`
	Tick       int              `json:"tick"`
	MarketCap  MarketCapRecord  `json:"market_cap"`
	Swap       *SwapRecord      `json:"swap,omitempty"`
}

// TokenomicsSummary is a tokenomics result in token, ETH and USD units.
type TokenomicsSummary struct {
	Supply     SupplyRecord      `json:"supply"`
	Allocation AllocationPercent `json:"allocation"`
	Price      PriceRecord       `json:"price"`
	Tick       int               `json:"tick"`
	MarketCap  MarketCapRecord   `json:"market_cap"`
	Swap       *SwapRecord       `json:"swap,omitempty"`
}
