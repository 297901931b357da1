package fixedpoint

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseUnits converts a human decimal string ("0.0005", "35000") into an integer scaled by
// 10^decimals. Digits beyond the requested precision are truncated.
func ParseUnits(value string, decimals int32) (*big.Int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, fmt.Errorf("empty amount")
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", value, err)
	}
	if d.Sign() < 0 {
		return nil, fmt.Errorf("negative amount: %s", value)
	}
	return d.Shift(decimals).BigInt(), nil
}

// FormatUnits renders a scaled integer in human units, keeping at least one fractional digit
// ("1000000.0", "0.0005").
func FormatUnits(value *big.Int, decimals int32) string {
	if value == nil {
		return "0.0"
	}
	text := decimal.NewFromBigInt(value, -decimals).String()
	if !strings.Contains(text, ".") {
		text += ".0"
	}
	return text
}

// BpsToPercent converts basis points into a percentage (2000 -> 20).
func BpsToPercent(bps *big.Int) float64 {
	if bps == nil {
		return 0
	}
	return decimal.NewFromBigInt(bps, -2).InexactFloat64()
}
