package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tokenLauncher/internal/model"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS launch_plans (
	plan_id TEXT PRIMARY KEY,
	target_market_cap_usd NUMERIC NOT NULL,
	total_supply NUMERIC NOT NULL,
	eth_price_usd NUMERIC NOT NULL,
	has_airdrop BOOLEAN NOT NULL,
	amount_in_eth NUMERIC,
	tick_spacing INTEGER NOT NULL,
	creator_bps INTEGER NOT NULL,
	creator_bps_with_airdrop INTEGER NOT NULL,
	airdrop_bps INTEGER NOT NULL,
	chain_id BIGINT,
	initial_tick INTEGER NOT NULL,
	tokenomics JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS salt_results (
	chain_id BIGINT NOT NULL,
	factory TEXT NOT NULL,
	salt TEXT NOT NULL,
	creator TEXT NOT NULL,
	name TEXT NOT NULL,
	symbol TEXT NOT NULL,
	merkle_root TEXT NOT NULL,
	supply NUMERIC NOT NULL,
	pair_token TEXT NOT NULL,
	predicted_address TEXT NOT NULL,
	attempts BIGINT NOT NULL,
	plan_id TEXT,
	launch_calldata TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (chain_id, factory, salt)
);`

// Store provides Postgres persistence for launch plans and salts.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the tables used by the store when they are missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, schemaSQL)
	return err
}

// UpsertLaunchPlans inserts or replaces launch plans keyed by plan ID.
func (s *Store) UpsertLaunchPlans(ctx context.Context, plans []model.LaunchPlan) error {
	if len(plans) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, plan := range plans {
		args, err := launchPlanArgs(plan)
		if err != nil {
			return err
		}
		batch.Queue(`
			INSERT INTO launch_plans (
				plan_id, target_market_cap_usd, total_supply, eth_price_usd, has_airdrop, amount_in_eth,
				tick_spacing, creator_bps, creator_bps_with_airdrop, airdrop_bps, chain_id, initial_tick,
				tokenomics, created_at, updated_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,COALESCE($14::timestamptz, now()),now())
			ON CONFLICT (plan_id)
			DO UPDATE SET
				chain_id = COALESCE(EXCLUDED.chain_id, launch_plans.chain_id),
				initial_tick = EXCLUDED.initial_tick,
				tokenomics = EXCLUDED.tokenomics,
				updated_at = now()
		`, args...)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range plans {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// UpsertSaltResults records accepted salts keyed by factory and salt.
func (s *Store) UpsertSaltResults(ctx context.Context, records []model.SaltRecord) error {
	if len(records) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, r := range records {
		batch.Queue(`
			INSERT INTO salt_results (
				chain_id, factory, salt, creator, name, symbol, merkle_root, supply, pair_token,
				predicted_address, attempts, plan_id, launch_calldata, created_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,COALESCE($14::timestamptz, now()))
			ON CONFLICT (chain_id, factory, salt)
			DO UPDATE SET
				predicted_address = EXCLUDED.predicted_address,
				attempts = EXCLUDED.attempts,
				launch_calldata = COALESCE(EXCLUDED.launch_calldata, salt_results.launch_calldata)
		`,
			int64(r.ChainID),
			r.Factory,
			r.Salt,
			r.Creator,
			r.Name,
			r.Symbol,
			r.MerkleRoot,
			r.Supply,
			r.PairToken,
			r.PredictedAddress,
			int64(r.Attempts),
			nullableString(r.PlanID),
			nullableString(r.LaunchCalldata),
			nullableString(r.CreatedAt),
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range records {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// LoadLaunchPlan returns the stored tokenomics for a plan ID.
func (s *Store) LoadLaunchPlan(ctx context.Context, planID string) (model.TokenomicsRecord, bool, error) {
	if planID == "" {
		return model.TokenomicsRecord{}, false, fmt.Errorf("plan id required")
	}
	var raw []byte
	row := s.pool.QueryRow(ctx, `SELECT tokenomics FROM launch_plans WHERE plan_id=$1`, planID)
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.TokenomicsRecord{}, false, nil
		}
		return model.TokenomicsRecord{}, false, err
	}
	record, err := decodeTokenomics(raw)
	if err != nil {
		return model.TokenomicsRecord{}, false, err
	}
	return record, true, nil
}

func decodeTokenomics(raw []byte) (model.TokenomicsRecord, error) {
	var record model.TokenomicsRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return model.TokenomicsRecord{}, fmt.Errorf("decode tokenomics: %w", err)
	}
	return record, nil
}

func launchPlanArgs(plan model.LaunchPlan) ([]interface{}, error) {
	id := plan.ID
	if id == "" {
		id = plan.PlanID()
	}
	tokenomics, err := json.Marshal(plan.Tokenomics)
	if err != nil {
		return nil, fmt.Errorf("marshal tokenomics: %w", err)
	}
	return []interface{}{
		id,
		plan.TargetMarketCapUsd,
		plan.TotalSupply,
		plan.EthPriceUsd,
		plan.HasAirdrop,
		nullableString(plan.AmountInEth),
		plan.TickSpacing,
		int32(plan.CreatorBps),
		int32(plan.CreatorBpsAirdrop),
		int32(plan.AirdropBps),
		nullableChainID(plan.ChainID),
		plan.Tokenomics.Tick,
		tokenomics,
		nullableString(plan.CreatedAt),
	}, nil
}

func nullableString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func nullableChainID(v uint64) *int64 {
	if v == 0 {
		return nil
	}
	id := int64(v)
	return &id
}
