package tokenomics

import (
	"math/big"

	"tokenLauncher/internal/fixedpoint"
	"tokenLauncher/internal/tickmath"
)

var (
	// PoolFee is the pool fee in millionths (0.3%).
	PoolFee        = big.NewInt(3000)
	feeDenominator = big.NewInt(1_000_000)

	// fallbackDivisor sizes the fallback purchase at one millionth of the pool.
	fallbackDivisor = big.NewInt(1_000_000)
	q48             = new(big.Int).Lsh(big.NewInt(1), 48)
	halfScale       = new(big.Int).Rsh(fixedpoint.Scale, 1)
)

// SwapEstimate is the single-tick estimate of buying tokens with ETH.
type SwapEstimate struct {
	FeeAmount        *big.Int
	AmountInAfterFee *big.Int
	Liquidity        *big.Int
	SqrtPriceNext    *big.Int
	TokensOut        *big.Int
	NewPriceEth      *big.Int
	PriceImpact      *big.Int

	// Degenerate is set when reserves or liquidity round to zero and the fallback was used.
	Degenerate bool
	// Clamped is set when the price adjustment was limited to half a unit.
	Clamped bool
	// Capped is set when the estimate exceeded the pool and was cut to lpSupply.
	Capped bool
}

// PoolFeeAmount returns the fee charged on amountIn.
func PoolFeeAmount(amountIn *big.Int) *big.Int {
	return fixedpoint.MulDiv(amountIn, PoolFee, feeDenominator)
}

// SimulateSwap estimates the result of spending amountInEth against a pool holding lpSupply
// tokens at currentSqrtPrice (Q64.96). The pool is modelled as a virtual constant-product pair.
// Reserves that round to zero never fail; they produce a minimal fallback estimate instead.
func SimulateSwap(amountInEth, lpSupply, currentSqrtPrice *big.Int) (SwapEstimate, error) {
	if amountInEth == nil || amountInEth.Sign() <= 0 {
		return SwapEstimate{}, ErrZeroAmount
	}
	if lpSupply == nil || lpSupply.Sign() <= 0 {
		return SwapEstimate{}, ErrZeroSupply
	}
	if currentSqrtPrice == nil || currentSqrtPrice.Sign() <= 0 {
		return SwapEstimate{}, ErrZeroSqrtPrice
	}

	feeAmount := PoolFeeAmount(amountInEth)
	amountInAfterFee := new(big.Int).Sub(amountInEth, feeAmount)

	reserveToken := lpSupply
	reserveEth := fixedpoint.MulDiv(lpSupply, currentSqrtPrice, fixedpoint.Q96)
	if reserveEth.Sign() <= 0 {
		return fallbackSwap(feeAmount, amountInAfterFee, lpSupply, currentSqrtPrice), nil
	}

	liquidity := fixedpoint.Sqrt(new(big.Int).Mul(reserveToken, reserveEth))
	liquidity = fixedpoint.MulDiv(liquidity, q48, fixedpoint.Scale)
	if liquidity.Sign() <= 0 {
		return fallbackSwap(feeAmount, amountInAfterFee, lpSupply, currentSqrtPrice), nil
	}

	est := SwapEstimate{
		FeeAmount:        feeAmount,
		AmountInAfterFee: amountInAfterFee,
		Liquidity:        liquidity,
	}

	adjustment := fixedpoint.MulDiv(amountInAfterFee, currentSqrtPrice, liquidity)
	if adjustment.Cmp(fixedpoint.Scale) >= 0 {
		adjustment = new(big.Int).Set(halfScale)
		est.Clamped = true
	}

	est.SqrtPriceNext = fixedpoint.MulDiv(currentSqrtPrice, fixedpoint.Scale, new(big.Int).Add(fixedpoint.Scale, adjustment))

	delta := new(big.Int).Sub(currentSqrtPrice, est.SqrtPriceNext)
	est.TokensOut = fixedpoint.MulDiv(liquidity, delta, fixedpoint.Scale)
	if est.TokensOut.Cmp(lpSupply) > 0 {
		est.TokensOut = new(big.Int).Set(lpSupply)
		est.Capped = true
	}

	est.NewPriceEth = tickmath.PriceFromSqrtRatio(est.SqrtPriceNext)
	est.PriceImpact = fixedpoint.MulDiv(amountInEth, fixedpoint.Scale, liquidity)
	return est, nil
}

func fallbackSwap(feeAmount, amountInAfterFee, lpSupply, currentSqrtPrice *big.Int) SwapEstimate {
	return SwapEstimate{
		FeeAmount:        feeAmount,
		AmountInAfterFee: amountInAfterFee,
		Liquidity:        new(big.Int),
		SqrtPriceNext:    new(big.Int).Set(currentSqrtPrice),
		TokensOut:        new(big.Int).Quo(lpSupply, fallbackDivisor),
		NewPriceEth:      tickmath.PriceFromSqrtRatio(currentSqrtPrice),
		PriceImpact:      big.NewInt(1),
		Degenerate:       true,
	}
}
