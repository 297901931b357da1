package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tokenLauncher/internal/config"
	"tokenLauncher/internal/fixedpoint"
	"tokenLauncher/internal/tickmath"
)

type tickOutput struct {
	Price        string `json:"price,omitempty"`
	Tick         int    `json:"tick"`
	TickSpacing  int    `json:"tick_spacing,omitempty"`
	SqrtPriceX96 string `json:"sqrt_price_x96"`
	TickPrice    string `json:"tick_price"`
}

func runTick(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadTick(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	out, err := convertTick(cfg)
	if err != nil {
		return err
	}

	logger.Debug("tick converted", zap.Int("tick", out.Tick), zap.String("sqrt_price_x96", out.SqrtPriceX96))

	return writeJSON(cmd.OutOrStdout(), out)
}

func convertTick(cfg config.TickConfig) (tickOutput, error) {
	var out tickOutput
	switch {
	case cfg.Price != "" && cfg.Tick != "":
		return out, fmt.Errorf("--price and --tick are mutually exclusive")
	case cfg.Price != "":
		tick, err := tickmath.InitialTickFromString(cfg.Price, cfg.TickSpacing)
		if err != nil {
			return out, err
		}
		out.Price = cfg.Price
		out.Tick = tick
		out.TickSpacing = cfg.TickSpacing
	case cfg.Tick != "":
		tick, err := tickmath.ParseTick(cfg.Tick)
		if err != nil {
			return out, err
		}
		out.Tick = tick
	default:
		return out, fmt.Errorf("one of --price or --tick is required")
	}

	sqrtRatio, err := tickmath.GetSqrtRatioAtTick(out.Tick)
	if err != nil {
		return out, err
	}
	out.SqrtPriceX96 = sqrtRatio.String()
	out.TickPrice = fixedpoint.FormatUnits(tickmath.PriceFromSqrtRatio(sqrtRatio), fixedpoint.Decimals)
	return out, nil
}
