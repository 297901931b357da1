package factory

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"tokenLauncher/internal/salt"
)

// Caller performs read-only contract calls. *chain.Client satisfies it.
type Caller interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// Options configure retries of failed eth_calls.
type Options struct {
	MaxRetries   int
	RetryBackoff time.Duration
}

// FeeConfig mirrors the factory's defaultFeeConfig() tuple.
type FeeConfig struct {
	CreatorLPFeeBps uint16
	ProtocolBaseBps uint16
	CreatorBaseBps  uint16
	AirdropBps      uint16
	HasAirdrop      bool
	FeeToken        common.Address
	Creator         common.Address
}

// LaunchArgs are the arguments of a launch transaction.
type LaunchArgs struct {
	Name        string
	Symbol      string
	MerkleRoot  common.Hash
	Supply      *big.Int
	InitialTick int
	Salt        common.Hash
	Creator     common.Address
	// AmountIn is an optional purchase made in the same transaction.
	AmountIn *big.Int
}

// Factory reads from a deployed token factory.
type Factory struct {
	caller  Caller
	address common.Address
	opts    Options
	logger  *zap.Logger
}

var _ salt.Oracle = (*Factory)(nil)

func New(caller Caller, address common.Address, opts Options, logger *zap.Logger) (*Factory, error) {
	if caller == nil {
		return nil, fmt.Errorf("caller is nil")
	}
	if address == (common.Address{}) {
		return nil, fmt.Errorf("factory address is required")
	}
	if _, err := ABI(); err != nil {
		return nil, fmt.Errorf("parse factory abi: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Factory{caller: caller, address: address, opts: opts, logger: logger}, nil
}

// Address returns the factory contract address.
func (f *Factory) Address() common.Address {
	return f.address
}

// PredictTokenAddress returns the address the factory would deploy the token at.
func (f *Factory) PredictTokenAddress(ctx context.Context, req salt.PredictRequest) (common.Address, error) {
	supply := req.Supply
	if supply == nil {
		supply = new(big.Int)
	}
	values, err := f.call(ctx, "predictTokenAddress",
		req.Creator,
		req.Name,
		req.Symbol,
		[32]byte(req.MerkleRoot),
		supply,
		[32]byte(req.Salt),
	)
	if err != nil {
		return common.Address{}, err
	}
	addr, err := asAddress(values[0])
	if err != nil {
		return common.Address{}, fmt.Errorf("predicted address: %w", err)
	}
	return addr, nil
}

// DefaultPairToken returns the asset new tokens are paired with.
func (f *Factory) DefaultPairToken(ctx context.Context) (common.Address, error) {
	values, err := f.call(ctx, "defaultPairToken")
	if err != nil {
		return common.Address{}, err
	}
	addr, err := asAddress(values[0])
	if err != nil {
		return common.Address{}, fmt.Errorf("pair token: %w", err)
	}
	return addr, nil
}

// DefaultFeeConfig returns the fee and allocation defaults applied to new tokens.
func (f *Factory) DefaultFeeConfig(ctx context.Context) (FeeConfig, error) {
	values, err := f.call(ctx, "defaultFeeConfig")
	if err != nil {
		return FeeConfig{}, err
	}
	if len(values) != 7 {
		return FeeConfig{}, fmt.Errorf("fee config: expected 7 values, got %d", len(values))
	}

	var cfg FeeConfig
	bps := []*uint16{&cfg.CreatorLPFeeBps, &cfg.ProtocolBaseBps, &cfg.CreatorBaseBps, &cfg.AirdropBps}
	for i, dst := range bps {
		if *dst, err = asUint16(values[i]); err != nil {
			return FeeConfig{}, fmt.Errorf("fee config field %d: %w", i, err)
		}
	}
	if cfg.HasAirdrop, err = asBool(values[4]); err != nil {
		return FeeConfig{}, fmt.Errorf("fee config has airdrop: %w", err)
	}
	if cfg.FeeToken, err = asAddress(values[5]); err != nil {
		return FeeConfig{}, fmt.Errorf("fee config fee token: %w", err)
	}
	if cfg.Creator, err = asAddress(values[6]); err != nil {
		return FeeConfig{}, fmt.Errorf("fee config creator: %w", err)
	}
	return cfg, nil
}

// PackLaunch encodes launch calldata for an external signer. A positive AmountIn selects the
// launch-and-buy entry point, which must be sent with AmountIn as value.
func PackLaunch(args LaunchArgs) ([]byte, error) {
	parsed, err := ABI()
	if err != nil {
		return nil, fmt.Errorf("parse factory abi: %w", err)
	}
	if args.Supply == nil || args.Supply.Sign() <= 0 {
		return nil, fmt.Errorf("supply must be positive")
	}
	tick, err := int24ToBig(args.InitialTick)
	if err != nil {
		return nil, fmt.Errorf("initial tick: %w", err)
	}

	params := []interface{}{
		args.Name,
		args.Symbol,
		[32]byte(args.MerkleRoot),
		args.Supply,
		tick,
		[32]byte(args.Salt),
		args.Creator,
	}
	method := "launchRainbowSuperToken"
	if args.AmountIn != nil && args.AmountIn.Sign() > 0 {
		method = "launchRainbowSuperTokenAndBuy"
		params = append(params, args.AmountIn)
	}

	data, err := parsed.Pack(method, params...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	return data, nil
}

func (f *Factory) call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	parsed, err := ABI()
	if err != nil {
		return nil, fmt.Errorf("parse factory abi: %w", err)
	}
	data, err := parsed.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}

	msg := ethereum.CallMsg{To: &f.address, Data: data}
	var resp []byte
	err = withRetry(ctx, f.opts.MaxRetries, f.opts.RetryBackoff, func(ctx context.Context) error {
		out, err := f.caller.CallContract(ctx, msg, nil)
		if err != nil {
			f.logger.Warn("factory call failed",
				zap.String("method", method),
				zap.String("factory", f.address.Hex()),
				zap.Error(err),
			)
			return err
		}
		resp = out
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}

	return unpack(parsed, method, resp)
}

func unpack(parsed abi.ABI, method string, resp []byte) ([]interface{}, error) {
	values, err := parsed.Unpack(method, resp)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("unpack %s: empty result", method)
	}
	return values, nil
}
