package model

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
)

// LaunchPlan is a persisted tokenomics calculation together with its inputs.
type LaunchPlan struct {
	ID                 string           `json:"id"`
	TargetMarketCapUsd string           `json:"target_market_cap_usd"`
	TotalSupply        string           `json:"total_supply"`
	EthPriceUsd        string           `json:"eth_price_usd"`
	HasAirdrop         bool             `json:"has_airdrop"`
	AmountInEth        string           `json:"amount_in_eth,omitempty"`
	TickSpacing        int              `json:"tick_spacing"`
	CreatorBps         uint16           `json:"creator_bps"`
	CreatorBpsAirdrop  uint16           `json:"creator_bps_with_airdrop"`
	AirdropBps         uint16           `json:"airdrop_bps"`
	// ChainID is set when the policy was read from a deployed factory.
	ChainID            uint64           `json:"chain_id,omitempty"`
	Tokenomics         TokenomicsRecord `json:"tokenomics"`
	CreatedAt          string           `json:"created_at"`
}

// PlanID returns a stable identifier derived from the plan inputs, so recomputing the same
// plan overwrites the previous row.
func (p LaunchPlan) PlanID() string {
	key := fmt.Sprintf("%s|%s|%s|%t|%s|%d|%d|%d|%d",
		p.TargetMarketCapUsd, p.TotalSupply, p.EthPriceUsd, p.HasAirdrop, p.AmountInEth,
		p.TickSpacing, p.CreatorBps, p.CreatorBpsAirdrop, p.AirdropBps)
	return crypto.Keccak256Hash([]byte(key)).Hex()
}

// MarshalJSON encodes the plan, filling in the ID when it is missing.
func (p LaunchPlan) MarshalJSON() ([]byte, error) {
	type Alias LaunchPlan
	if p.ID == "" {
		p.ID = p.PlanID()
	}
	return json.Marshal(Alias(p))
}

// SaltRecord is the outcome of a salt search.
type SaltRecord struct {
	ChainID          uint64 `json:"chain_id"`
	Factory          string `json:"factory"`
	Creator          string `json:"creator"`
	Name             string `json:"name"`
	Symbol           string `json:"symbol"`
	MerkleRoot       string `json:"merkle_root"`
	Supply           string `json:"supply"`
	PairToken        string `json:"pair_token"`
	Salt             string `json:"salt"`
	PredictedAddress string `json:"predicted_address"`
	Attempts         uint64 `json:"attempts"`
	PlanID           string `json:"plan_id,omitempty"`
	LaunchCalldata   string `json:"launch_calldata,omitempty"`
	CreatedAt        string `json:"created_at"`
}
