package tokenomics

import (
	"fmt"
	"math/big"

	"tokenLauncher/internal/factory"
	"tokenLauncher/internal/fixedpoint"
)

// AllocationPolicy holds the creator and airdrop shares in basis points. The liquidity pool
// receives whatever is left.
type AllocationPolicy struct {
	CreatorBps            uint16 `json:"creator_bps"`
	CreatorBpsWithAirdrop uint16 `json:"creator_bps_with_airdrop"`
	AirdropBps            uint16 `json:"airdrop_bps"`
}

var (
	// DefaultPolicy gives the creator 20%, or 10% plus a 10% airdrop.
	DefaultPolicy = AllocationPolicy{CreatorBps: 2000, CreatorBpsWithAirdrop: 1000, AirdropBps: 1000}
	// MicroPolicy keeps almost the entire supply in the pool.
	MicroPolicy = AllocationPolicy{CreatorBps: 69, CreatorBpsWithAirdrop: 46, AirdropBps: 23}
)

// PolicyByName resolves a named preset.
func PolicyByName(name string) (AllocationPolicy, error) {
	switch name {
	case "", "default":
		return DefaultPolicy, nil
	case "micro":
		return MicroPolicy, nil
	default:
		return AllocationPolicy{}, fmt.Errorf("%w: unknown preset %q", ErrInvalidPolicy, name)
	}
}

// PolicyFromFeeConfig derives a policy from the factory's default fee config. With an airdrop
// the airdrop share is carved out of the creator share.
func PolicyFromFeeConfig(cfg factory.FeeConfig) AllocationPolicy {
	withAirdrop := uint16(0)
	if cfg.CreatorBaseBps > cfg.AirdropBps {
		withAirdrop = cfg.CreatorBaseBps - cfg.AirdropBps
	}
	return AllocationPolicy{
		CreatorBps:            cfg.CreatorBaseBps,
		CreatorBpsWithAirdrop: withAirdrop,
		AirdropBps:            cfg.AirdropBps,
	}
}

// Validate checks that no combination of shares exceeds the whole supply.
func (p AllocationPolicy) Validate() error {
	if p.CreatorBps > 10_000 {
		return fmt.Errorf("%w: creator share %d bps", ErrInvalidPolicy, p.CreatorBps)
	}
	if int(p.CreatorBpsWithAirdrop)+int(p.AirdropBps) > 10_000 {
		return fmt.Errorf("%w: creator %d bps + airdrop %d bps", ErrInvalidPolicy, p.CreatorBpsWithAirdrop, p.AirdropBps)
	}
	return nil
}

// TokenAllocation splits a total supply. Creator+Airdrop+LP always equals Total.
type TokenAllocation struct {
	Creator *big.Int
	Airdrop *big.Int
	LP      *big.Int
	Total   *big.Int
}

// AllocationBps is a TokenAllocation expressed in basis points of the total.
type AllocationBps struct {
	Creator *big.Int
	Airdrop *big.Int
	LP      *big.Int
}

// CalculateAllocations splits totalSupply according to policy. Rounding dust goes to the pool.
func CalculateAllocations(totalSupply *big.Int, hasAirdrop bool, policy AllocationPolicy) (TokenAllocation, error) {
	if totalSupply == nil || totalSupply.Sign() <= 0 {
		return TokenAllocation{}, ErrZeroSupply
	}
	if err := policy.Validate(); err != nil {
		return TokenAllocation{}, err
	}

	creatorBps := policy.CreatorBps
	airdropBps := uint16(0)
	if hasAirdrop {
		creatorBps = policy.CreatorBpsWithAirdrop
		airdropBps = policy.AirdropBps
	}

	creator := fixedpoint.MulDiv(totalSupply, big.NewInt(int64(creatorBps)), fixedpoint.BpsDenominator)
	airdrop := fixedpoint.MulDiv(totalSupply, big.NewInt(int64(airdropBps)), fixedpoint.BpsDenominator)
	lp := new(big.Int).Sub(totalSupply, creator)
	lp.Sub(lp, airdrop)

	return TokenAllocation{
		Creator: creator,
		Airdrop: airdrop,
		LP:      lp,
		Total:   new(big.Int).Set(totalSupply),
	}, nil
}

// Bps converts the allocation into basis points. The pool absorbs the truncation so the three
// shares sum to 10000.
func (a TokenAllocation) Bps() AllocationBps {
	if fixedpoint.IsZero(a.Total) {
		return AllocationBps{Creator: new(big.Int), Airdrop: new(big.Int), LP: new(big.Int)}
	}
	creator := fixedpoint.MulDiv(a.Creator, fixedpoint.BpsDenominator, a.Total)
	airdrop := fixedpoint.MulDiv(a.Airdrop, fixedpoint.BpsDenominator, a.Total)
	lp := new(big.Int).Sub(fixedpoint.BpsDenominator, creator)
	lp.Sub(lp, airdrop)
	return AllocationBps{Creator: creator, Airdrop: airdrop, LP: lp}
}

func (a TokenAllocation) afterPurchase(tokensOut *big.Int) TokenAllocation {
	return TokenAllocation{
		Creator: new(big.Int).Add(a.Creator, tokensOut),
		Airdrop: a.Airdrop,
		LP:      new(big.Int).Sub(a.LP, tokensOut),
		Total:   a.Total,
	}
}
