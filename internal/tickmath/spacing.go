package tickmath

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"tokenLauncher/internal/fixedpoint"
)

// DefaultTickSpacing is the spacing of the launch pools' fee tier.
const DefaultTickSpacing = 200

// PriceToInitialTick maps a 1e18-scaled price (quote per base) to the nearest tick that is a
// multiple of tickSpacing. Ties go toward positive infinity; a multiple beyond the tick range
// is replaced by the nearest one inside it.
func PriceToInitialTick(price *big.Int, tickSpacing int) (int, error) {
	if tickSpacing <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidTickSpacing, tickSpacing)
	}
	if price == nil || price.Sign() <= 0 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidPrice, price)
	}

	sqrtRatio := EncodePriceToX96(price)
	tick, err := GetTickAtSqrtRatio(sqrtRatio)
	if err != nil {
		return 0, fmt.Errorf("price %s: %w", price, err)
	}
	return clampToRange(RoundTickToSpacing(tick, tickSpacing), tickSpacing), nil
}

// clampToRange steps a spacing-aligned tick back inside [MinTick, MaxTick] when rounding
// overshot a limit that is not itself a multiple of the spacing.
func clampToRange(tick, spacing int) int {
	if tick > MaxTick {
		return tick - spacing
	}
	if tick < MinTick {
		return tick + spacing
	}
	return tick
}

// InitialTickFromString parses a human price such as "0.000035" and returns its initial tick.
func InitialTickFromString(price string, tickSpacing int) (int, error) {
	scaled, err := fixedpoint.ParseUnits(price, fixedpoint.Decimals)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidPrice, err)
	}
	return PriceToInitialTick(scaled, tickSpacing)
}

// RoundTickToSpacing returns the multiple of spacing nearest to tick.
func RoundTickToSpacing(tick, spacing int) int {
	return floorDiv(2*tick+spacing, 2*spacing) * spacing
}

// AlignTickDown returns the greatest multiple of spacing that is <= tick.
func AlignTickDown(tick, spacing int) int {
	return floorDiv(tick, spacing) * spacing
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// ParseTick parses a textual tick. Fractional or out-of-range values are rejected.
func ParseTick(s string) (int, error) {
	s = strings.TrimSpace(s)
	tick, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTick, s)
	}
	if tick < MinTick || tick > MaxTick {
		return 0, fmt.Errorf("%w: %d", ErrInvalidTick, tick)
	}
	return tick, nil
}
