// Package token describes ERC-20 tokens known to the bridge.
package token

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// SupportedToken is cached ERC-20 metadata for a token on a chain.
type SupportedToken struct {
	ChainID  uint64 `json:"chainId"`
	Token    string `json:"token"`
	Name     string `json:"name,omitempty"`
	Symbol   string `json:"symbol,omitempty"`
	Decimals uint8  `json:"decimals"`
}

// Info is metadata read from an ERC-20 contract.
type Info struct {
	Name     string
	Symbol   string
	Decimals uint8
}

// NormalizeAddress returns the checksummed form of an address.
func NormalizeAddress(address string) string {
	return common.HexToAddress(address).Hex()
}

// IsAddress reports whether s is a 0x-prefixed hex address.
func IsAddress(s string) bool {
	return strings.HasPrefix(s, "0x") && common.IsHexAddress(s)
}

// Deployment is a wrapped token deployment that has been signed for broadcast but
// whose connection is not registered yet. WrappedToken is empty until it is mined.
type Deployment struct {
	Key           string
	SourceChainID uint64
	SourceToken   string
	TargetChainID uint64
	TxHash        string
	RawTx         []byte
	WrappedToken  string
}
