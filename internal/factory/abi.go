package factory

import (
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const factoryABIJSON = `[
  {
    "inputs": [
      {"internalType": "address", "name": "creator", "type": "address"},
      {"internalType": "string", "name": "name", "type": "string"},
      {"internalType": "string", "name": "symbol", "type": "string"},
      {"internalType": "bytes32", "name": "merkleroot", "type": "bytes32"},
      {"internalType": "uint256", "name": "supply", "type": "uint256"},
      {"internalType": "bytes32", "name": "salt", "type": "bytes32"}
    ],
    "name": "predictTokenAddress",
    "outputs": [{"internalType": "address", "name": "", "type": "address"}],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [],
    "name": "defaultPairToken",
    "outputs": [{"internalType": "address", "name": "", "type": "address"}],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [],
    "name": "defaultFeeConfig",
    "outputs": [
      {"internalType": "uint16", "name": "creatorLPFeeBps", "type": "uint16"},
      {"internalType": "uint16", "name": "protocolBaseBps", "type": "uint16"},
      {"internalType": "uint16", "name": "creatorBaseBps", "type": "uint16"},
      {"internalType": "uint16", "name": "airdropBps", "type": "uint16"},
      {"internalType": "bool", "name": "hasAirdrop", "type": "bool"},
      {"internalType": "address", "name": "feeToken", "type": "address"},
      {"internalType": "address", "name": "creator", "type": "address"}
    ],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [
      {"internalType": "string", "name": "name", "type": "string"},
      {"internalType": "string", "name": "symbol", "type": "string"},
      {"internalType": "bytes32", "name": "merkleroot", "type": "bytes32"},
      {"internalType": "uint256", "name": "supply", "type": "uint256"},
      {"internalType": "int24", "name": "initialTick", "type": "int24"},
      {"internalType": "bytes32", "name": "salt", "type": "bytes32"},
      {"internalType": "address", "name": "creator", "type": "address"}
    ],
    "name": "launchRainbowSuperToken",
    "outputs": [{"internalType": "address", "name": "", "type": "address"}],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [
      {"internalType": "string", "name": "name", "type": "string"},
      {"internalType": "string", "name": "symbol", "type": "string"},
      {"internalType": "bytes32", "name": "merkleroot", "type": "bytes32"},
      {"internalType": "uint256", "name": "supply", "type": "uint256"},
      {"internalType": "int24", "name": "initialTick", "type": "int24"},
      {"internalType": "bytes32", "name": "salt", "type": "bytes32"},
      {"internalType": "address", "name": "creator", "type": "address"},
      {"internalType": "uint256", "name": "amountIn", "type": "uint256"}
    ],
    "name": "launchRainbowSuperTokenAndBuy",
    "outputs": [{"internalType": "address", "name": "", "type": "address"}],
    "stateMutability": "payable",
    "type": "function"
  }
]`

var (
	factoryABI     abi.ABI
	factoryABIOnce sync.Once
	factoryABIErr  error
)

// ABI returns the parsed token factory ABI.
func ABI() (abi.ABI, error) {
	factoryABIOnce.Do(func() {
		factoryABI, factoryABIErr = abi.JSON(strings.NewReader(factoryABIJSON))
	})
	return factoryABI, factoryABIErr
}
