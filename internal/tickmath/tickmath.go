package tickmath

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/holiman/uint256"

	"tokenLauncher/internal/fixedpoint"
)

const (
	// MinTick is the minimum tick that may be passed to GetSqrtRatioAtTick.
	MinTick = -887272
	// MaxTick is the maximum tick that may be passed to GetSqrtRatioAtTick.
	MaxTick = -MinTick
)

var (
	// MinSqrtRatio is the sqrt ratio at MinTick.
	MinSqrtRatio = big.NewInt(4295128739)
	// MaxSqrtRatio is the sqrt ratio at MaxTick, the exclusive upper bound of valid ratios.
	MaxSqrtRatio, _ = new(big.Int).SetString("1461446703485210103287273052203988822378723970342", 10)

	ErrInvalidTick        = errors.New("invalid tick")
	ErrInvalidSqrtRatio   = errors.New("invalid sqrt ratio")
	ErrInvalidTickSpacing = errors.New("invalid tick spacing")
	ErrInvalidPrice       = errors.New("invalid price")
)

// sqrt(1.0001^-(2^i)) in UQ128.128, one factor per bit of |tick|.
var sqrtRatioFactors = [20]*uint256.Int{
	uint256.MustFromHex("0xfffcb933bd6fad37aa2d162d1a594001"),
	uint256.MustFromHex("0xfff97272373d413259a46990580e213a"),
	uint256.MustFromHex("0xfff2e50f5f656932ef12357cf3c7fdcc"),
	uint256.MustFromHex("0xffe5caca7e10e4e61c3624eaa0941cd0"),
	uint256.MustFromHex("0xffcb9843d60f6159c9db58835c926644"),
	uint256.MustFromHex("0xff973b41fa98c081472e6896dfb254c0"),
	uint256.MustFromHex("0xff2ea16466c96a3843ec78b326b52861"),
	uint256.MustFromHex("0xfe5dee046a99a2a811c461f1969c3053"),
	uint256.MustFromHex("0xfcbe86c7900a88aedcffc83b479aa3a4"),
	uint256.MustFromHex("0xf987a7253ac413176f2b074cf7815e54"),
	uint256.MustFromHex("0xf3392b0822b70005940c7a398e4b70f3"),
	uint256.MustFromHex("0xe7159475a2c29b7443b29c7fa6e889d9"),
	uint256.MustFromHex("0xd097f3bdfd2022b8845ad8f792aa5825"),
	uint256.MustFromHex("0xa9f746462d870fdf8a65dc1f90e061e5"),
	uint256.MustFromHex("0x70d869a156d2a1b890bb3df62baf32f7"),
	uint256.MustFromHex("0x31be135f97d08fd981231505542fcfa6"),
	uint256.MustFromHex("0x9aa508b5b7a84e1c677de54f3e99bc9"),
	uint256.MustFromHex("0x5d6af8dedb81196699c329225ee604"),
	uint256.MustFromHex("0x2216e584f5fa1ea926041bedfe98"),
	uint256.MustFromHex("0x48a170391f7dc42444e8fa2"),
}

var (
	logSqrt10001Multiplier, _ = new(big.Int).SetString("255738958999603826347141", 10)
	tickLowOffset, _          = new(big.Int).SetString("3402992956809132418596140100660247210", 10)
	tickHighOffset, _         = new(big.Int).SetString("291339464771989622907027621153398088495", 10)
)

// GetSqrtRatioAtTick returns sqrt(1.0001^tick) as a Q64.96 value.
func GetSqrtRatioAtTick(tick int) (*big.Int, error) {
	if tick < MinTick || tick > MaxTick {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTick, tick)
	}

	absTick := tick
	if tick < 0 {
		absTick = -tick
	}

	ratio := new(uint256.Int)
	if absTick&1 != 0 {
		ratio.Set(sqrtRatioFactors[0])
	} else {
		ratio.Lsh(uint256.NewInt(1), 128)
	}
	for i := 1; i < len(sqrtRatioFactors); i++ {
		if absTick&(1<<i) != 0 {
			ratio.Mul(ratio, sqrtRatioFactors[i])
			ratio.Rsh(ratio, 128)
		}
	}

	if tick > 0 {
		maxUint256 := new(uint256.Int).Not(new(uint256.Int))
		ratio.Div(maxUint256, ratio)
	}

	// Q128 -> Q96, rounding up so the result never undershoots the true ratio.
	roundUp := ratio.Uint64()&0xffffffff != 0
	ratio.Rsh(ratio, 32)
	if roundUp {
		ratio.AddUint64(ratio, 1)
	}
	return ratio.ToBig(), nil
}

// GetTickAtSqrtRatio returns the greatest tick whose sqrt ratio is <= sqrtRatioX96.
func GetTickAtSqrtRatio(sqrtRatioX96 *big.Int) (int, error) {
	if sqrtRatioX96 == nil || sqrtRatioX96.Cmp(MinSqrtRatio) < 0 || sqrtRatioX96.Cmp(MaxSqrtRatio) >= 0 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidSqrtRatio, sqrtRatioX96)
	}

	sqrtRatioX128 := new(big.Int).Lsh(sqrtRatioX96, 32)
	msb := sqrtRatioX128.BitLen() - 1

	r := new(big.Int)
	if msb >= 128 {
		r.Rsh(sqrtRatioX128, uint(msb-127))
	} else {
		r.Lsh(sqrtRatioX128, uint(127-msb))
	}

	log2 := new(big.Int).Lsh(big.NewInt(int64(msb-128)), 64)
	f := new(big.Int)
	for i := 0; i < 14; i++ {
		r.Mul(r, r)
		r.Rsh(r, 127)
		f.Rsh(r, 128)
		log2.Or(log2, new(big.Int).Lsh(f, uint(63-i)))
		r.Rsh(r, uint(f.Uint64()))
	}

	logSqrt10001 := new(big.Int).Mul(log2, logSqrt10001Multiplier)

	tickLow := new(big.Int).Sub(logSqrt10001, tickLowOffset)
	tickLow.Rsh(tickLow, 128)
	tickHigh := new(big.Int).Add(logSqrt10001, tickHighOffset)
	tickHigh.Rsh(tickHigh, 128)

	low := int(tickLow.Int64())
	high := int(tickHigh.Int64())
	if low == high {
		return low, nil
	}

	ratioAtHigh, err := GetSqrtRatioAtTick(high)
	if err != nil {
		return low, nil
	}
	if ratioAtHigh.Cmp(sqrtRatioX96) <= 0 {
		return high, nil
	}
	return low, nil
}

// EncodePriceToX96 converts a 1e18-scaled price (quote per base) into a Q64.96 sqrt ratio.
func EncodePriceToX96(price *big.Int) *big.Int {
	if fixedpoint.IsZero(price) || price.Sign() < 0 {
		return new(big.Int)
	}
	scaled := new(big.Int).Lsh(price, 192)
	scaled.Quo(scaled, fixedpoint.Scale)
	return fixedpoint.Sqrt(scaled)
}

// PriceFromSqrtRatio converts a Q64.96 sqrt ratio back into a 1e18-scaled price, rounding down.
func PriceFromSqrtRatio(sqrtRatioX96 *big.Int) *big.Int {
	if sqrtRatioX96 == nil {
		return new(big.Int)
	}
	squared := new(big.Int).Mul(sqrtRatioX96, sqrtRatioX96)
	return fixedpoint.MulDiv(squared, fixedpoint.Scale, fixedpoint.Q192)
}
