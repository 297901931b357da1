package main

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tokenLauncher/internal/chain"
	"tokenLauncher/internal/config"
	"tokenLauncher/internal/factory"
	"tokenLauncher/internal/fixedpoint"
	"tokenLauncher/internal/model"
	"tokenLauncher/internal/storage"
	"tokenLauncher/internal/storage/postgres"
	"tokenLauncher/internal/tokenomics"
)

func runTokenomics(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadTokenomics(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	params, err := tokenomicsParams(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	policy, chainID, err := resolvePolicy(ctx, cfg, logger)
	if err != nil {
		return err
	}

	engine, err := tokenomics.NewEngine(tokenomics.Config{Policy: policy, TickSpacing: cfg.TickSpacing}, logger)
	if err != nil {
		return err
	}

	result, err := engine.Calculate(params)
	if err != nil {
		return err
	}

	logger.Info("tokenomics calculated",
		zap.Int("tick", result.Tick),
		zap.Bool("airdrop", params.HasAirdrop),
		zap.Bool("swap", result.Swap != nil),
	)

	var out interface{}
	switch cfg.Format {
	case "human", "":
		out = tokenomics.Humanize(result)
	case "raw":
		out = tokenomics.Serialize(result)
	default:
		return fmt.Errorf("unknown format %q", cfg.Format)
	}
	if err := writeJSON(cmd.OutOrStdout(), out); err != nil {
		return err
	}

	if cfg.Out == "" && cfg.PGDSN == "" {
		return nil
	}

	plan := model.LaunchPlan{
		TargetMarketCapUsd: params.TargetMarketCapUsd.String(),
		TotalSupply:        params.TotalSupply.String(),
		EthPriceUsd:        params.EthPriceUsd.String(),
		HasAirdrop:         params.HasAirdrop,
		TickSpacing:        engine.Config().TickSpacing,
		CreatorBps:         policy.CreatorBps,
		CreatorBpsAirdrop:  policy.CreatorBpsWithAirdrop,
		AirdropBps:         policy.AirdropBps,
		ChainID:            chainID,
		Tokenomics:         tokenomics.Serialize(result),
		CreatedAt:          nowRFC3339(),
	}
	if params.AmountInEth != nil {
		plan.AmountInEth = params.AmountInEth.String()
	}
	plan.ID = plan.PlanID()

	if cfg.Out != "" {
		if err := storage.NewJsonlStorage(cfg.Out).PutPlans([]model.LaunchPlan{plan}); err != nil {
			return fmt.Errorf("write plan: %w", err)
		}
		logger.Info("launch plan written", zap.String("id", plan.ID), zap.String("out", cfg.Out))
	}

	if cfg.PGDSN != "" {
		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.EnsureSchema(ctx); err != nil {
			return err
		}
		if err := store.UpsertLaunchPlans(ctx, []model.LaunchPlan{plan}); err != nil {
			return err
		}
		logger.Info("launch plan stored", zap.String("id", plan.ID))
	}

	return nil
}

func tokenomicsParams(cfg config.TokenomicsConfig) (tokenomics.Params, error) {
	if cfg.MarketCapUsd == "" {
		return tokenomics.Params{}, fmt.Errorf("market cap is required")
	}
	if cfg.EthPriceUsd == "" {
		return tokenomics.Params{}, fmt.Errorf("eth price is required")
	}

	marketCap, err := fixedpoint.ParseUnits(cfg.MarketCapUsd, fixedpoint.Decimals)
	if err != nil {
		return tokenomics.Params{}, fmt.Errorf("market cap: %w", err)
	}
	supply, err := fixedpoint.ParseUnits(cfg.Supply, fixedpoint.Decimals)
	if err != nil {
		return tokenomics.Params{}, fmt.Errorf("supply: %w", err)
	}
	ethPrice, err := fixedpoint.ParseUnits(cfg.EthPriceUsd, fixedpoint.Decimals)
	if err != nil {
		return tokenomics.Params{}, fmt.Errorf("eth price: %w", err)
	}

	var amountIn *big.Int
	if cfg.AmountIn != "" {
		if amountIn, err = fixedpoint.ParseUnits(cfg.AmountIn, fixedpoint.Decimals); err != nil {
			return tokenomics.Params{}, fmt.Errorf("amount in: %w", err)
		}
	}

	return tokenomics.Params{
		TargetMarketCapUsd: marketCap,
		TotalSupply:        supply,
		EthPriceUsd:        ethPrice,
		HasAirdrop:         cfg.Airdrop,
		AmountInEth:        amountIn,
	}, nil
}

// resolvePolicy selects a preset (or reads the factory's fee config) and applies per-share
// overrides on top. The chain ID is non-zero only when the factory was queried.
func resolvePolicy(ctx context.Context, cfg config.TokenomicsConfig, logger *zap.Logger) (tokenomics.AllocationPolicy, uint64, error) {
	var (
		policy  tokenomics.AllocationPolicy
		chainID uint64
	)
	if cfg.Policy == "factory" {
		feeConfig, id, err := readFeeConfig(ctx, cfg, logger)
		if err != nil {
			return tokenomics.AllocationPolicy{}, 0, err
		}
		policy = tokenomics.PolicyFromFeeConfig(feeConfig)
		chainID = id
		logger.Info("policy from factory fee config",
			zap.Uint64("chain_id", chainID),
			zap.Uint16("creator_bps", policy.CreatorBps),
			zap.Uint16("creator_bps_with_airdrop", policy.CreatorBpsWithAirdrop),
			zap.Uint16("airdrop_bps", policy.AirdropBps),
		)
	} else {
		var err error
		if policy, err = tokenomics.PolicyByName(cfg.Policy); err != nil {
			return tokenomics.AllocationPolicy{}, 0, err
		}
	}

	if cfg.CreatorBps != nil {
		policy.CreatorBps = *cfg.CreatorBps
	}
	if cfg.CreatorBpsAirdrop != nil {
		policy.CreatorBpsWithAirdrop = *cfg.CreatorBpsAirdrop
	}
	if cfg.AirdropBps != nil {
		policy.AirdropBps = *cfg.AirdropBps
	}

	return policy, chainID, policy.Validate()
}

func readFeeConfig(ctx context.Context, cfg config.TokenomicsConfig, logger *zap.Logger) (factory.FeeConfig, uint64, error) {
	if cfg.RPCURL == "" {
		return factory.FeeConfig{}, 0, fmt.Errorf("rpc url is required for the factory policy")
	}
	address, err := chain.ParseAddress(cfg.Factory)
	if err != nil {
		return factory.FeeConfig{}, 0, fmt.Errorf("factory: %w", err)
	}

	client, err := chain.NewClient(ctx, cfg.RPCURL)
	if err != nil {
		return factory.FeeConfig{}, 0, fmt.Errorf("connect rpc: %w", err)
	}
	defer client.Close()

	chainID, err := client.GetChainID(ctx)
	if err != nil {
		return factory.FeeConfig{}, 0, fmt.Errorf("chain id: %w", err)
	}

	f, err := factory.New(client, address, factory.Options{
		MaxRetries:   cfg.MaxRetries,
		RetryBackoff: cfg.RetryBackoff,
	}, logger)
	if err != nil {
		return factory.FeeConfig{}, 0, err
	}
	feeConfig, err := f.DefaultFeeConfig(ctx)
	if err != nil {
		return factory.FeeConfig{}, 0, fmt.Errorf("fee config from %s: %w", f.Address().Hex(), err)
	}
	return feeConfig, chainID.Uint64(), nil
}
