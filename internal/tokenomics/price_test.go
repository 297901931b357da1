package tokenomics

import (
	"errors"
	"math/big"
	"testing"

	"tokenLauncher/internal/tickmath"
)

func TestDerivePrice(t *testing.T) {
	got, err := DerivePrice(wei(1_000_000), wei(1_000_000), wei(2000), tickmath.DefaultTickSpacing)
	if err != nil {
		t.Fatalf("derive: %v", err)
	}

	if got.RawTick != -76013 || got.Tick != -76200 {
		t.Fatalf("tick mismatch: raw %d aligned %d", got.RawTick, got.Tick)
	}
	expectBig(t, "sqrt price", got.SqrtPriceX96, "1755093813046398424555436057")
	expectBig(t, "target eth", got.Price.TargetEth, "500000000000000")
	expectBig(t, "target usd", got.Price.TargetUsd, "1000000000000000000")
	expectBig(t, "actual eth", got.Price.ActualEth, "490728750695322")
	expectBig(t, "actual usd", got.Price.ActualUsd, "981457501390644000")
	expectBig(t, "mcap target eth", got.MarketCap.TargetEth, "500000000000000000000")
	expectBig(t, "mcap target usd", got.MarketCap.TargetUsd, "1000000000000000000000000")
	expectBig(t, "mcap actual eth", got.MarketCap.ActualEth, "490728750695322000000")
	expectBig(t, "mcap actual usd", got.MarketCap.ActualUsd, "981457501390644000000000")
}

func TestDerivePriceScenarios(t *testing.T) {
	cases := []struct {
		name      string
		mcap      *big.Int
		supply    *big.Int
		ethPrice  *big.Int
		tick      int
		targetEth string
		actualEth string
	}{
		{name: "small cap", mcap: wei(35_000), supply: wei(1_000_000_000), ethPrice: wei(2000), tick: -178800, targetEth: "17500000000", actualEth: "17187111599"},
		{name: "large cap", mcap: wei(1_000_000_000), supply: wei(1_000_000), ethPrice: wei(2000), tick: -7000, targetEth: "500000000000000000", actualEth: "496602683422551563"},
		{name: "ten thousand", mcap: wei(10_000), supply: wei(1_000_000), ethPrice: wei(2000), tick: -122200, targetEth: "5000000000000", actualEth: "4933859378695"},
	}

	for _, tc := range cases {
		got, err := DerivePrice(tc.mcap, tc.supply, tc.ethPrice, tickmath.DefaultTickSpacing)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if got.Tick != tc.tick {
			t.Fatalf("%s: tick got %d want %d", tc.name, got.Tick, tc.tick)
		}
		expectBig(t, tc.name+" target", got.Price.TargetEth, tc.targetEth)
		expectBig(t, tc.name+" actual", got.Price.ActualEth, tc.actualEth)
		if got.Price.ActualEth.Cmp(got.Price.TargetEth) > 0 {
			t.Fatalf("%s: aligned price above target", tc.name)
		}
		if got.Tick%tickmath.DefaultTickSpacing != 0 {
			t.Fatalf("%s: tick %d not aligned", tc.name, got.Tick)
		}
	}
}

func TestDerivePriceClampsToOneWei(t *testing.T) {
	supply := new(big.Int).Mul(wei(1), new(big.Int).Exp(big.NewInt(10), big.NewInt(30), nil))
	got, err := DerivePrice(wei(1), supply, wei(1_000_000), tickmath.DefaultTickSpacing)
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	expectBig(t, "target eth", got.Price.TargetEth, "1")
	if got.Tick != -414600 {
		t.Fatalf("tick mismatch: %d", got.Tick)
	}
}

func TestDerivePriceErrors(t *testing.T) {
	cases := []struct {
		name     string
		mcap     *big.Int
		supply   *big.Int
		ethPrice *big.Int
		spacing  int
		want     error
	}{
		{name: "zero mcap", mcap: big.NewInt(0), supply: wei(1), ethPrice: wei(1), spacing: 200, want: ErrZeroMarketCap},
		{name: "nil mcap", supply: wei(1), ethPrice: wei(1), spacing: 200, want: ErrZeroMarketCap},
		{name: "zero supply", mcap: wei(1), supply: big.NewInt(0), ethPrice: wei(1), spacing: 200, want: ErrZeroSupply},
		{name: "zero eth price", mcap: wei(1), supply: wei(1), ethPrice: big.NewInt(0), spacing: 200, want: ErrZeroEthPrice},
		{name: "bad spacing", mcap: wei(1), supply: wei(1), ethPrice: wei(1), spacing: 0, want: tickmath.ErrInvalidTickSpacing},
	}

	for _, tc := range cases {
		if _, err := DerivePrice(tc.mcap, tc.supply, tc.ethPrice, tc.spacing); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestTargetPriceEthRounding(t *testing.T) {
	e36 := new(big.Int).Exp(big.NewInt(10), big.NewInt(36), nil)
	cases := []struct {
		mcap, supply int64
		want         string
	}{
		{mcap: 1, supply: 2, want: "1"},
		{mcap: 3, supply: 2, want: "2"},
		{mcap: 5, supply: 4, want: "1"},
		{mcap: 1, supply: 4, want: "1"},
	}

	for _, tc := range cases {
		got := TargetPriceEth(big.NewInt(tc.mcap), big.NewInt(tc.supply), e36)
		if got.String() != tc.want {
			t.Fatalf("%d/%d: got %s want %s", tc.mcap, tc.supply, got, tc.want)
		}
	}
}
