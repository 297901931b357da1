package model

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestLaunchPlanJSONRoundTrip(t *testing.T) {
	original := LaunchPlan{
		ID:                 "0xabc123",
		TargetMarketCapUsd: "1000000000000000000000000",
		TotalSupply:        "1000000000000000000000000",
		EthPriceUsd:        "2000000000000000000000",
		HasAirdrop:         true,
		TickSpacing:        200,
		CreatorBps:         2000,
		CreatorBpsAirdrop:  1000,
		AirdropBps:         1000,
		Tokenomics: TokenomicsRecord{
			Supply:     SupplyRecord{Total: "10", Creator: "1", Airdrop: "1", LP: "8"},
			Allocation: AllocationRecord{Creator: "1000", Airdrop: "1000", LP: "8000"},
			Price:      PriceRecord{TargetEth: "500000000000000", TargetUsd: "1", ActualEth: "490728750695322", ActualUsd: "1"},
			Tick:       -76200,
			MarketCap:  MarketCapRecord{TargetEth: "1", TargetUsd: "2", ActualEth: "3", ActualUsd: "4"},
		},
		CreatedAt: "2024-01-01T00:00:00Z",
	}

	b, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded LaunchPlan
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if !reflect.DeepEqual(original, decoded) {
		t.Fatalf("round-trip mismatch: %+v != %+v", original, decoded)
	}
}

func TestLaunchPlanIDFilledOnMarshal(t *testing.T) {
	plan := LaunchPlan{
		TargetMarketCapUsd: "1",
		TotalSupply:        "2",
		EthPriceUsd:        "3",
		TickSpacing:        200,
	}

	b, err := json.Marshal(plan)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded["id"] != plan.PlanID() {
		t.Fatalf("id mismatch: %v != %s", decoded["id"], plan.PlanID())
	}
	if len(plan.PlanID()) != 66 {
		t.Fatalf("unexpected id length: %s", plan.PlanID())
	}

	other := plan
	other.HasAirdrop = true
	if other.PlanID() == plan.PlanID() {
		t.Fatalf("different inputs should produce different ids")
	}
}

func TestTokenomicsRecordStringFields(t *testing.T) {
	record := TokenomicsRecord{
		Supply: SupplyRecord{Total: "1000000000000000000000000"},
		Tick:   -76200,
		Swap:   &SwapRecord{TokensOut: "800000000000000000000000"},
	}

	data, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	supply, ok := decoded["supply"].(map[string]interface{})
	if !ok {
		t.Fatalf("supply should be an object")
	}
	if _, ok := supply["total"].(string); !ok {
		t.Fatalf("supply.total should be string")
	}
	swap, ok := decoded["swap"].(map[string]interface{})
	if !ok {
		t.Fatalf("swap should be present")
	}
	if _, ok := swap["tokens_out"].(string); !ok {
		t.Fatalf("swap.tokens_out should be string")
	}
	if _, ok := swap["degenerate"]; ok {
		t.Fatalf("degenerate should be omitted when false")
	}
}
