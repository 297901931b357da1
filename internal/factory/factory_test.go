package factory

import (
	"bytes"
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"tokenLauncher/internal/salt"
)

var (
	factoryAddr = common.HexToAddress("0x9999999999999999999999999999999999999999")
	creatorAddr = common.HexToAddress("0x1111111111111111111111111111111111111111")
	pairAddr    = common.HexToAddress("0x4200000000000000000000000000000000000006")
)

type fakeCaller struct {
	t        *testing.T
	failures int
	calls    int
	handle   func(method string, args []interface{}) []interface{}
}

func (c *fakeCaller) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	c.calls++
	if c.failures > 0 {
		c.failures--
		return nil, errors.New("temporary rpc failure")
	}
	if msg.To == nil || *msg.To != factoryAddr {
		c.t.Fatalf("unexpected call target: %v", msg.To)
	}

	parsed, err := ABI()
	if err != nil {
		c.t.Fatalf("abi: %v", err)
	}
	method, err := parsed.MethodById(msg.Data[:4])
	if err != nil {
		c.t.Fatalf("unknown selector: %v", err)
	}
	args, err := method.Inputs.Unpack(msg.Data[4:])
	if err != nil {
		c.t.Fatalf("unpack inputs: %v", err)
	}
	out, err := method.Outputs.Pack(c.handle(method.Name, args)...)
	if err != nil {
		c.t.Fatalf("pack outputs: %v", err)
	}
	return out, nil
}

func newTestFactory(t *testing.T, caller *fakeCaller, opts Options) *Factory {
	t.Helper()
	f, err := New(caller, factoryAddr, opts, nil)
	if err != nil {
		t.Fatalf("new factory: %v", err)
	}
	return f
}

func predictFromArgs(args []interface{}) common.Address {
	creator := args[0].(common.Address)
	merkle := args[3].([32]byte)
	supply := args[4].(*big.Int)
	saltBytes := args[5].([32]byte)
	hash := crypto.Keccak256(
		creator.Bytes(),
		[]byte(args[1].(string)),
		[]byte(args[2].(string)),
		merkle[:],
		common.BigToHash(supply).Bytes(),
		saltBytes[:],
	)
	return common.BytesToAddress(hash[12:])
}

func TestPredictTokenAddress(t *testing.T) {
	var gotArgs []interface{}
	caller := &fakeCaller{t: t, handle: func(method string, args []interface{}) []interface{} {
		if method != "predictTokenAddress" {
			t.Fatalf("unexpected method %s", method)
		}
		gotArgs = args
		return []interface{}{predictFromArgs(args)}
	}}
	f := newTestFactory(t, caller, Options{})

	req := salt.PredictRequest{
		Creator:    creatorAddr,
		Name:       "Test Token",
		Symbol:     "TEST",
		MerkleRoot: common.HexToHash("0x01"),
		Supply:     big.NewInt(1_000_000),
		Salt:       common.HexToHash("0x02"),
	}
	addr, err := f.PredictTokenAddress(context.Background(), req)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if addr != predictFromArgs(gotArgs) {
		t.Fatalf("address mismatch: %s", addr.Hex())
	}
	if gotArgs[0].(common.Address) != creatorAddr || gotArgs[1].(string) != "Test Token" || gotArgs[2].(string) != "TEST" {
		t.Fatalf("argument mismatch: %v", gotArgs)
	}
	if gotArgs[4].(*big.Int).Int64() != 1_000_000 {
		t.Fatalf("supply mismatch: %v", gotArgs[4])
	}
	if common.Hash(gotArgs[5].([32]byte)) != req.Salt {
		t.Fatalf("salt mismatch")
	}
}

func TestDefaultPairToken(t *testing.T) {
	caller := &fakeCaller{t: t, handle: func(method string, _ []interface{}) []interface{} {
		if method != "defaultPairToken" {
			t.Fatalf("unexpected method %s", method)
		}
		return []interface{}{pairAddr}
	}}
	f := newTestFactory(t, caller, Options{})

	got, err := f.DefaultPairToken(context.Background())
	if err != nil {
		t.Fatalf("pair token: %v", err)
	}
	if got != pairAddr {
		t.Fatalf("pair token mismatch: %s", got.Hex())
	}
}

func TestFactoryAddress(t *testing.T) {
	f := newTestFactory(t, &fakeCaller{t: t}, Options{})
	if f.Address() != factoryAddr {
		t.Fatalf("address mismatch: %s", f.Address().Hex())
	}
}

func TestDefaultFeeConfig(t *testing.T) {
	feeToken := common.HexToAddress("0x2222222222222222222222222222222222222222")
	caller := &fakeCaller{t: t, handle: func(string, []interface{}) []interface{} {
		return []interface{}{uint16(100), uint16(50), uint16(2000), uint16(1000), true, feeToken, creatorAddr}
	}}
	f := newTestFactory(t, caller, Options{})

	got, err := f.DefaultFeeConfig(context.Background())
	if err != nil {
		t.Fatalf("fee config: %v", err)
	}
	want := FeeConfig{
		CreatorLPFeeBps: 100,
		ProtocolBaseBps: 50,
		CreatorBaseBps:  2000,
		AirdropBps:      1000,
		HasAirdrop:      true,
		FeeToken:        feeToken,
		Creator:         creatorAddr,
	}
	if got != want {
		t.Fatalf("fee config mismatch: %+v != %+v", got, want)
	}
}

func TestCallRetries(t *testing.T) {
	caller := &fakeCaller{t: t, failures: 2, handle: func(string, []interface{}) []interface{} {
		return []interface{}{pairAddr}
	}}
	f := newTestFactory(t, caller, Options{MaxRetries: 2, RetryBackoff: time.Millisecond})

	if _, err := f.DefaultPairToken(context.Background()); err != nil {
		t.Fatalf("expected success after retries: %v", err)
	}
	if caller.calls != 3 {
		t.Fatalf("expected 3 calls, got %d", caller.calls)
	}
}

func TestCallRetriesExhausted(t *testing.T) {
	caller := &fakeCaller{t: t, failures: 10, handle: func(string, []interface{}) []interface{} {
		return []interface{}{pairAddr}
	}}
	f := newTestFactory(t, caller, Options{MaxRetries: 1, RetryBackoff: time.Millisecond})

	if _, err := f.DefaultPairToken(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	if caller.calls != 2 {
		t.Fatalf("expected 2 calls, got %d", caller.calls)
	}
}

func TestCallCancelledDuringBackoff(t *testing.T) {
	caller := &fakeCaller{t: t, failures: 10}
	f := newTestFactory(t, caller, Options{MaxRetries: 5, RetryBackoff: time.Hour})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := f.DefaultPairToken(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestFactoryAsSaltOracle(t *testing.T) {
	caller := &fakeCaller{t: t, handle: func(_ string, args []interface{}) []interface{} {
		return []interface{}{predictFromArgs(args)}
	}}
	f := newTestFactory(t, caller, Options{})

	res, err := salt.FindValidSalt(context.Background(), f, salt.Params{
		Creator: creatorAddr,
		Name:    "Test Token",
		Symbol:  "TEST",
		Supply:  big.NewInt(1_000_000),
	}, salt.Options{PairToken: pairAddr, MaxAttempts: 10_000})
	if err != nil {
		t.Fatalf("find salt: %v", err)
	}
	if !salt.Less(res.PredictedAddress, pairAddr) {
		t.Fatalf("predicted address %s not below pair token", res.PredictedAddress.Hex())
	}
}

func TestPackLaunch(t *testing.T) {
	parsed, err := ABI()
	if err != nil {
		t.Fatalf("abi: %v", err)
	}

	args := LaunchArgs{
		Name:        "Test Token",
		Symbol:      "TEST",
		Supply:      big.NewInt(1_000_000),
		InitialTick: -76200,
		Salt:        common.HexToHash("0x03"),
		Creator:     creatorAddr,
	}

	data, err := PackLaunch(args)
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	method := parsed.Methods["launchRainbowSuperToken"]
	if !bytes.Equal(data[:4], method.ID) {
		t.Fatalf("selector mismatch")
	}
	values, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		t.Fatalf("unpack: %v", err)
	}
	if values[4].(*big.Int).Int64() != -76200 {
		t.Fatalf("tick mismatch: %v", values[4])
	}
	if values[6].(common.Address) != creatorAddr {
		t.Fatalf("creator mismatch")
	}

	args.AmountIn = big.NewInt(1e18)
	data, err = PackLaunch(args)
	if err != nil {
		t.Fatalf("pack and buy: %v", err)
	}
	method = parsed.Methods["launchRainbowSuperTokenAndBuy"]
	if !bytes.Equal(data[:4], method.ID) {
		t.Fatalf("selector mismatch for launch and buy")
	}
	values, err = method.Inputs.Unpack(data[4:])
	if err != nil {
		t.Fatalf("unpack: %v", err)
	}
	if values[7].(*big.Int).Cmp(big.NewInt(1e18)) != 0 {
		t.Fatalf("amount mismatch: %v", values[7])
	}
}

func TestPackLaunchInvalid(t *testing.T) {
	if _, err := PackLaunch(LaunchArgs{Name: "x", Symbol: "X", InitialTick: 0}); err == nil {
		t.Fatalf("expected error for missing supply")
	}
	if _, err := PackLaunch(LaunchArgs{Supply: big.NewInt(1), InitialTick: 1 << 23}); err == nil {
		t.Fatalf("expected error for int24 overflow")
	}
}

func TestNewValidation(t *testing.T) {
	if _, err := New(nil, factoryAddr, Options{}, nil); err == nil {
		t.Fatalf("expected error for nil caller")
	}
	if _, err := New(&fakeCaller{t: t}, common.Address{}, Options{}, nil); err == nil {
		t.Fatalf("expected error for zero address")
	}
}
