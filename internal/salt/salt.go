package salt

import (
	"bytes"
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

var (
	// ErrMaxAttempts is returned when the attempt budget runs out before a salt is found.
	ErrMaxAttempts = errors.New("no valid salt within attempt limit")
	// ErrInvalidPairToken is returned for the zero pair token, which no address sorts below.
	ErrInvalidPairToken = errors.New("pair token must be non-zero")
)

// PredictRequest is the input of a deterministic deployment address prediction.
type PredictRequest struct {
	Creator    common.Address
	Name       string
	Symbol     string
	MerkleRoot common.Hash
	Supply     *big.Int
	Salt       common.Hash
}

// Oracle predicts the address a token would be deployed at.
type Oracle interface {
	PredictTokenAddress(ctx context.Context, req PredictRequest) (common.Address, error)
}

// OracleFunc adapts a function to the Oracle interface.
type OracleFunc func(ctx context.Context, req PredictRequest) (common.Address, error)

func (f OracleFunc) PredictTokenAddress(ctx context.Context, req PredictRequest) (common.Address, error) {
	return f(ctx, req)
}

// Params identify the token whose salt is being searched.
type Params struct {
	Creator    common.Address
	Name       string
	Symbol     string
	MerkleRoot common.Hash
	Supply     *big.Int
}

func (p Params) request(salt common.Hash) PredictRequest {
	return PredictRequest{
		Creator:    p.Creator,
		Name:       p.Name,
		Symbol:     p.Symbol,
		MerkleRoot: p.MerkleRoot,
		Supply:     p.Supply,
		Salt:       salt,
	}
}

// Options bound and configure a search.
type Options struct {
	// PairToken is the pool's other asset. The token address must sort below it.
	PairToken common.Address
	// MaxAttempts caps oracle calls. Zero means unbounded; the context then ends the search.
	MaxAttempts uint64
	// Random supplies candidate salts. Defaults to crypto/rand.
	Random io.Reader
	Logger *zap.Logger
}

// Result is an accepted salt.
type Result struct {
	Salt             common.Hash
	PredictedAddress common.Address
	Attempts         uint64
}

// Less reports whether a sorts below b as a 160-bit unsigned integer.
func Less(a, b common.Address) bool {
	return bytes.Compare(a.Bytes(), b.Bytes()) < 0
}

// FindValidSalt draws random salts until the oracle predicts an address below opts.PairToken.
// The context is checked before every attempt and passed to the oracle.
func FindValidSalt(ctx context.Context, oracle Oracle, params Params, opts Options) (Result, error) {
	if oracle == nil {
		return Result{}, fmt.Errorf("oracle is nil")
	}
	if opts.PairToken == (common.Address{}) {
		return Result{}, ErrInvalidPairToken
	}
	random := opts.Random
	if random == nil {
		random = rand.Reader
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	for attempt := uint64(1); ; attempt++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		var candidate common.Hash
		if _, err := io.ReadFull(random, candidate[:]); err != nil {
			return Result{}, fmt.Errorf("read random salt: %w", err)
		}

		predicted, err := oracle.PredictTokenAddress(ctx, params.request(candidate))
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return Result{}, ctxErr
			}
			return Result{}, fmt.Errorf("predict token address (attempt %d): %w", attempt, err)
		}

		if Less(predicted, opts.PairToken) {
			logger.Info("found valid salt",
				zap.String("salt", candidate.Hex()),
				zap.String("predicted_address", predicted.Hex()),
				zap.Uint64("attempts", attempt),
			)
			return Result{Salt: candidate, PredictedAddress: predicted, Attempts: attempt}, nil
		}
		logger.Debug("salt rejected",
			zap.String("salt", candidate.Hex()),
			zap.String("predicted_address", predicted.Hex()),
			zap.Uint64("attempt", attempt),
		)

		if attemptsExhausted(attempt, opts.MaxAttempts) {
			return Result{}, fmt.Errorf("%w: %d", ErrMaxAttempts, opts.MaxAttempts)
		}
	}
}

// attemptsExhausted reports whether attempt was the last one allowed. Zero means unbounded.
func attemptsExhausted(attempt, maxAttempts uint64) bool {
	return maxAttempts != 0 && attempt >= maxAttempts
}
