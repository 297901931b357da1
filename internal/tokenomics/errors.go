package tokenomics

import "errors"

var (
	ErrZeroSupply    = errors.New("total supply must be greater than zero")
	ErrZeroMarketCap = errors.New("target market cap must be greater than zero")
	ErrZeroEthPrice  = errors.New("eth price must be greater than zero")
	ErrZeroAmount    = errors.New("swap amount must be greater than zero")
	ErrZeroSqrtPrice = errors.New("sqrt price must be greater than zero")
	ErrInvalidPolicy = errors.New("invalid allocation policy")
)
