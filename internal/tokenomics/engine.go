package tokenomics

import (
	"fmt"
	"math/big"

	"go.uber.org/zap"

	"tokenLauncher/internal/fixedpoint"
	"tokenLauncher/internal/tickmath"
)

// Config controls how the engine splits supply and aligns ticks.
type Config struct {
	Policy      AllocationPolicy
	TickSpacing int
}

// DefaultConfig returns the default policy with the launch pools' tick spacing.
func DefaultConfig() Config {
	return Config{Policy: DefaultPolicy, TickSpacing: tickmath.DefaultTickSpacing}
}

// Params are the inputs of a tokenomics calculation. Amounts are 1e18-scaled.
type Params struct {
	TargetMarketCapUsd *big.Int
	TotalSupply        *big.Int
	EthPriceUsd        *big.Int
	HasAirdrop         bool
	// AmountInEth is an optional purchase made at launch. Nil or zero skips the swap estimate.
	AmountInEth *big.Int
}

// SwapInput describes the purchase after fees.
type SwapInput struct {
	AmountInEth      *big.Int
	FeeAmount        *big.Int
	AmountInAfterFee *big.Int
}

// SwapOutput is what the buyer receives.
type SwapOutput struct {
	TokensOut   *big.Int
	PriceImpact *big.Int
}

// MarketCapAfter is the market cap at the post-purchase price.
type MarketCapAfter struct {
	Eth *big.Int
	Usd *big.Int
}

// SwapSimulation is the purchase part of a Result.
type SwapSimulation struct {
	Input          SwapInput
	Output         SwapOutput
	MarketCapAfter MarketCapAfter
	Degenerate     bool
}

// Result is a consistent snapshot: every price field comes from the same aligned tick.
type Result struct {
	Supply     TokenAllocation
	Allocation AllocationBps
	Price      PriceQuote
	Tick       int
	MarketCap  MarketCap
	Swap       *SwapSimulation
}

// Engine computes launch tokenomics. It holds only immutable config and is safe for
// concurrent use.
type Engine struct {
	cfg    Config
	logger *zap.Logger
}

func NewEngine(cfg Config, logger *zap.Logger) (*Engine, error) {
	if cfg.TickSpacing == 0 {
		cfg.TickSpacing = tickmath.DefaultTickSpacing
	}
	if cfg.TickSpacing < 0 {
		return nil, fmt.Errorf("%w: %d", tickmath.ErrInvalidTickSpacing, cfg.TickSpacing)
	}
	if err := cfg.Policy.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{cfg: cfg, logger: logger}, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Calculate derives the initial tick, the supply split and, when a purchase amount is given,
// the effect of buying at launch.
func (e *Engine) Calculate(p Params) (*Result, error) {
	derived, err := DerivePrice(p.TargetMarketCapUsd, p.TotalSupply, p.EthPriceUsd, e.cfg.TickSpacing)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("derived price",
		zap.String("target_market_cap_usd", p.TargetMarketCapUsd.String()),
		zap.String("total_supply", p.TotalSupply.String()),
		zap.String("eth_price_usd", p.EthPriceUsd.String()),
		zap.String("target_price_eth", derived.Price.TargetEth.String()),
		zap.Int("raw_tick", derived.RawTick),
		zap.Int("tick", derived.Tick),
		zap.String("sqrt_price_x96", derived.SqrtPriceX96.String()),
		zap.String("actual_price_eth", derived.Price.ActualEth.String()),
	)

	alloc, err := CalculateAllocations(p.TotalSupply, p.HasAirdrop, e.cfg.Policy)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Tick:      derived.Tick,
		Price:     derived.Price,
		MarketCap: derived.MarketCap,
	}

	if !fixedpoint.IsZero(p.AmountInEth) {
		est, err := SimulateSwap(p.AmountInEth, alloc.LP, derived.SqrtPriceX96)
		if err != nil {
			return nil, fmt.Errorf("simulate swap: %w", err)
		}
		e.logSwap(p.AmountInEth, alloc.LP, est)

		alloc = alloc.afterPurchase(est.TokensOut)
		mcapAfterEth := fixedpoint.MulDiv(p.TotalSupply, est.NewPriceEth, fixedpoint.Scale)
		result.Swap = &SwapSimulation{
			Input: SwapInput{
				AmountInEth:      new(big.Int).Set(p.AmountInEth),
				FeeAmount:        est.FeeAmount,
				AmountInAfterFee: est.AmountInAfterFee,
			},
			Output: SwapOutput{
				TokensOut:   est.TokensOut,
				PriceImpact: est.PriceImpact,
			},
			MarketCapAfter: MarketCapAfter{
				Eth: mcapAfterEth,
				Usd: fixedpoint.MulDiv(mcapAfterEth, p.EthPriceUsd, fixedpoint.Scale),
			},
			Degenerate: est.Degenerate,
		}
	}

	result.Supply = alloc
	result.Allocation = alloc.Bps()
	return result, nil
}

func (e *Engine) logSwap(amountIn, lpSupply *big.Int, est SwapEstimate) {
	fields := []zap.Field{
		zap.String("amount_in_eth", amountIn.String()),
		zap.String("lp_supply", lpSupply.String()),
		zap.String("liquidity", est.Liquidity.String()),
		zap.String("tokens_out", est.TokensOut.String()),
	}
	if est.Degenerate {
		e.logger.Warn("pool liquidity too low, using minimal swap estimate", fields...)
	}
	if est.Clamped {
		e.logger.Warn("price adjustment clamped", fields...)
	}
	if est.Capped {
		e.logger.Warn("swap output capped at pool supply", fields...)
	}
	e.logger.Debug("simulated swap", append(fields,
		zap.String("sqrt_price_next", est.SqrtPriceNext.String()),
		zap.String("price_impact", est.PriceImpact.String()),
	)...)
}
