package main

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tokenLauncher/internal/chain"
	"tokenLauncher/internal/config"
	"tokenLauncher/internal/factory"
	"tokenLauncher/internal/fixedpoint"
	"tokenLauncher/internal/model"
	"tokenLauncher/internal/salt"
	"tokenLauncher/internal/storage"
	"tokenLauncher/internal/storage/postgres"
	"tokenLauncher/internal/tickmath"
)

func runSalt(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadSalt(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.RPCURL == "" {
		return fmt.Errorf("rpc url is required")
	}
	factoryAddress, err := chain.ParseAddress(cfg.Factory)
	if err != nil {
		return fmt.Errorf("factory: %w", err)
	}
	params, err := saltParams(cfg)
	if err != nil {
		return err
	}
	pairToken, err := chain.ParseOptionalAddress(cfg.PairToken)
	if err != nil {
		return fmt.Errorf("pair token: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	var (
		store *postgres.Store
		plans planLoader
	)
	if cfg.PGDSN != "" {
		if store, err = postgres.NewStore(ctx, cfg.PGDSN); err != nil {
			return err
		}
		defer store.Close()

		if err := store.EnsureSchema(ctx); err != nil {
			return err
		}
		plans = store
	}

	initialTick, hasTick, err := resolveInitialTick(ctx, cfg, plans)
	if err != nil {
		return err
	}

	chainClient, err := chain.NewClient(ctx, cfg.RPCURL)
	if err != nil {
		return fmt.Errorf("connect rpc: %w", err)
	}
	defer chainClient.Close()

	chainID, err := chainClient.GetChainID(ctx)
	if err != nil {
		return fmt.Errorf("chain id: %w", err)
	}

	f, err := factory.New(chainClient, factoryAddress, factory.Options{
		MaxRetries:   cfg.MaxRetries,
		RetryBackoff: cfg.RetryBackoff,
	}, logger)
	if err != nil {
		return err
	}

	if pairToken == (common.Address{}) {
		if pairToken, err = f.DefaultPairToken(ctx); err != nil {
			return fmt.Errorf("default pair token: %w", err)
		}
	}

	logger.Info("salt search start",
		zap.Uint64("chain_id", chainID.Uint64()),
		zap.String("factory", f.Address().Hex()),
		zap.String("creator", params.Creator.Hex()),
		zap.String("pair_token", pairToken.Hex()),
		zap.Uint64("max_attempts", cfg.MaxAttempts),
		zap.Duration("timeout", cfg.Timeout),
	)

	found, err := salt.FindValidSalt(ctx, f, params, salt.Options{
		PairToken:   pairToken,
		MaxAttempts: cfg.MaxAttempts,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	record := model.SaltRecord{
		ChainID:          chainID.Uint64(),
		Factory:          f.Address().Hex(),
		Creator:          params.Creator.Hex(),
		Name:             params.Name,
		Symbol:           params.Symbol,
		MerkleRoot:       params.MerkleRoot.Hex(),
		Supply:           params.Supply.String(),
		PairToken:        pairToken.Hex(),
		Salt:             found.Salt.Hex(),
		PredictedAddress: found.PredictedAddress.Hex(),
		Attempts:         found.Attempts,
		PlanID:           cfg.PlanID,
		CreatedAt:        nowRFC3339(),
	}

	if hasTick {
		calldata, err := launchCalldata(initialTick, cfg.AmountIn, params, found.Salt)
		if err != nil {
			return err
		}
		record.LaunchCalldata = hexutil.Encode(calldata)
	}

	if err := writeJSON(cmd.OutOrStdout(), record); err != nil {
		return err
	}

	if cfg.Out != "" {
		if err := storage.NewJsonlStorage(cfg.Out).PutSalts([]model.SaltRecord{record}); err != nil {
			return fmt.Errorf("write salt: %w", err)
		}
	}

	if store != nil {
		if err := store.UpsertSaltResults(ctx, []model.SaltRecord{record}); err != nil {
			return err
		}
	}

	return nil
}

// planLoader reads stored launch plans. *postgres.Store satisfies it.
type planLoader interface {
	LoadLaunchPlan(ctx context.Context, planID string) (model.TokenomicsRecord, bool, error)
}

// resolveInitialTick returns the tick given by --initial-tick or by the stored plan named by
// --plan-id. The boolean is false when neither is set.
func resolveInitialTick(ctx context.Context, cfg config.SaltConfig, plans planLoader) (int, bool, error) {
	switch {
	case cfg.InitialTick != "" && cfg.PlanID != "":
		return 0, false, fmt.Errorf("--initial-tick and --plan-id are mutually exclusive")
	case cfg.InitialTick != "":
		tick, err := tickmath.ParseTick(cfg.InitialTick)
		if err != nil {
			return 0, false, err
		}
		return tick, true, nil
	case cfg.PlanID != "":
		if plans == nil {
			return 0, false, fmt.Errorf("--plan-id requires --pg-dsn")
		}
		record, ok, err := plans.LoadLaunchPlan(ctx, cfg.PlanID)
		if err != nil {
			return 0, false, fmt.Errorf("load plan %s: %w", cfg.PlanID, err)
		}
		if !ok {
			return 0, false, fmt.Errorf("plan %s not found", cfg.PlanID)
		}
		if record.Tick < tickmath.MinTick || record.Tick > tickmath.MaxTick {
			return 0, false, fmt.Errorf("plan %s: %w: %d", cfg.PlanID, tickmath.ErrInvalidTick, record.Tick)
		}
		return record.Tick, true, nil
	default:
		return 0, false, nil
	}
}

func saltParams(cfg config.SaltConfig) (salt.Params, error) {
	creator, err := chain.ParseAddress(cfg.Creator)
	if err != nil {
		return salt.Params{}, fmt.Errorf("creator: %w", err)
	}
	if cfg.Name == "" || cfg.Symbol == "" {
		return salt.Params{}, fmt.Errorf("name and symbol are required")
	}
	merkleRoot, err := chain.ParseHash(cfg.MerkleRoot)
	if err != nil {
		return salt.Params{}, fmt.Errorf("merkle root: %w", err)
	}
	supply, err := fixedpoint.ParseUnits(cfg.Supply, fixedpoint.Decimals)
	if err != nil {
		return salt.Params{}, fmt.Errorf("supply: %w", err)
	}
	if supply.Sign() <= 0 {
		return salt.Params{}, fmt.Errorf("supply must be positive")
	}

	return salt.Params{
		Creator:    creator,
		Name:       cfg.Name,
		Symbol:     cfg.Symbol,
		MerkleRoot: merkleRoot,
		Supply:     supply,
	}, nil
}

func launchCalldata(tick int, amountIn string, params salt.Params, found common.Hash) ([]byte, error) {
	var amount *big.Int
	if amountIn != "" {
		var err error
		if amount, err = fixedpoint.ParseUnits(amountIn, fixedpoint.Decimals); err != nil {
			return nil, fmt.Errorf("amount in: %w", err)
		}
	}

	return factory.PackLaunch(factory.LaunchArgs{
		Name:        params.Name,
		Symbol:      params.Symbol,
		MerkleRoot:  params.MerkleRoot,
		Supply:      params.Supply,
		InitialTick: tick,
		Salt:        found,
		Creator:     params.Creator,
		AmountIn:    amount,
	})
}
