package fixedpoint

import (
	"math/big"
)

// Decimals is the implied decimal count of every amount crossing the package boundary.
const Decimals = 18

var (
	// Scale is 10^18, the fixed-point unit for supplies, prices and market caps.
	Scale = Pow10(Decimals)
	// Q96 is 2^96, the unit of a Q64.96 sqrt price.
	Q96 = new(big.Int).Lsh(big.NewInt(1), 96)
	// Q192 is 2^192, the unit of a squared Q64.96 sqrt price.
	Q192 = new(big.Int).Lsh(big.NewInt(1), 192)
	// BpsDenominator is 100% expressed in basis points.
	BpsDenominator = big.NewInt(10_000)
)

// Pow10 returns 10^n.
func Pow10(n int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}

// Sqrt returns floor(sqrt(x)), or zero for non-positive input.
func Sqrt(x *big.Int) *big.Int {
	if x == nil || x.Sign() <= 0 {
		return new(big.Int)
	}
	return new(big.Int).Sqrt(x)
}

// MulDiv returns a*b/d truncated toward zero.
func MulDiv(a, b, d *big.Int) *big.Int {
	out := new(big.Int).Mul(a, b)
	return out.Quo(out, d)
}

// IsZero reports whether v is nil or zero.
func IsZero(v *big.Int) bool {
	return v == nil || v.Sign() == 0
}

// Clone copies v, mapping nil to zero.
func Clone(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v)
}
