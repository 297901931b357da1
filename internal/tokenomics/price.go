package tokenomics

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"

	"tokenLauncher/internal/fixedpoint"
	"tokenLauncher/internal/tickmath"
)

// PriceQuote is a per-token price in ETH and USD, both 1e18-scaled. Target is the continuous
// price, Actual the price at the aligned tick.
type PriceQuote struct {
	TargetEth *big.Int
	TargetUsd *big.Int
	ActualEth *big.Int
	ActualUsd *big.Int
}

// MarketCap is the total supply valued at the target and actual prices.
type MarketCap struct {
	TargetEth *big.Int
	TargetUsd *big.Int
	ActualEth *big.Int
	ActualUsd *big.Int
}

// PriceDerivation is everything derived from a single tick alignment.
type PriceDerivation struct {
	RawTick      int
	Tick         int
	SqrtPriceX96 *big.Int
	Price        PriceQuote
	MarketCap    MarketCap
}

// TargetPriceEth returns marketCap*1e36/(supply*ethPrice) rounded half-up, never below 1 wei.
func TargetPriceEth(targetMarketCapUsd, totalSupply, ethPriceUsd *big.Int) *big.Int {
	numerator := new(big.Int).Mul(targetMarketCapUsd, fixedpoint.Scale)
	numerator.Mul(numerator, fixedpoint.Scale)
	denominator := new(big.Int).Mul(totalSupply, ethPriceUsd)

	price := decimal.NewFromBigInt(numerator, 0).
		DivRound(decimal.NewFromBigInt(denominator, 0), 0).
		BigInt()
	if price.Sign() < 1 {
		price.SetInt64(1)
	}
	return price
}

// DerivePrice converts a target market cap into a spacing-aligned tick and reports the prices
// and market caps implied by that tick.
func DerivePrice(targetMarketCapUsd, totalSupply, ethPriceUsd *big.Int, tickSpacing int) (PriceDerivation, error) {
	switch {
	case fixedpoint.IsZero(targetMarketCapUsd) || targetMarketCapUsd.Sign() < 0:
		return PriceDerivation{}, ErrZeroMarketCap
	case fixedpoint.IsZero(totalSupply) || totalSupply.Sign() < 0:
		return PriceDerivation{}, ErrZeroSupply
	case fixedpoint.IsZero(ethPriceUsd) || ethPriceUsd.Sign() < 0:
		return PriceDerivation{}, ErrZeroEthPrice
	}
	if tickSpacing <= 0 {
		return PriceDerivation{}, fmt.Errorf("%w: %d", tickmath.ErrInvalidTickSpacing, tickSpacing)
	}

	targetEth := TargetPriceEth(targetMarketCapUsd, totalSupply, ethPriceUsd)

	rawTick, err := tickmath.GetTickAtSqrtRatio(tickmath.EncodePriceToX96(targetEth))
	if err != nil {
		return PriceDerivation{}, fmt.Errorf("target price %s: %w", targetEth, err)
	}
	tick := tickmath.AlignTickDown(rawTick, tickSpacing)
	if tick < tickmath.MinTick {
		tick += tickSpacing
	}

	sqrtPrice, err := tickmath.GetSqrtRatioAtTick(tick)
	if err != nil {
		return PriceDerivation{}, err
	}

	actualEth := tickmath.PriceFromSqrtRatio(sqrtPrice)
	actualMcapEth := fixedpoint.MulDiv(totalSupply, actualEth, fixedpoint.Scale)

	return PriceDerivation{
		RawTick:      rawTick,
		Tick:         tick,
		SqrtPriceX96: sqrtPrice,
		Price: PriceQuote{
			TargetEth: targetEth,
			TargetUsd: fixedpoint.MulDiv(targetEth, ethPriceUsd, fixedpoint.Scale),
			ActualEth: actualEth,
			ActualUsd: fixedpoint.MulDiv(actualEth, ethPriceUsd, fixedpoint.Scale),
		},
		MarketCap: MarketCap{
			TargetEth: fixedpoint.MulDiv(targetMarketCapUsd, fixedpoint.Scale, ethPriceUsd),
			TargetUsd: new(big.Int).Set(targetMarketCapUsd),
			ActualEth: actualMcapEth,
			ActualUsd: fixedpoint.MulDiv(actualMcapEth, ethPriceUsd, fixedpoint.Scale),
		},
	}, nil
}
