// Package signer produces the EIP-712 attestations the destination bridge verifies.
package signer

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

// DomainVersion is the fixed EIP-712 domain version.
const DomainVersion = "1"

var eip712Domain = []apitypes.Type{
	{Name: "name", Type: "string"},
	{Name: "version", Type: "string"},
	{Name: "chainId", Type: "uint256"},
	{Name: "verifyingContract", Type: "address"},
}

var allowanceType = []apitypes.Type{
	{Name: "receiver", Type: "address"},
	{Name: "amount", Type: "uint256"},
	{Name: "token", Type: "address"},
	{Name: "nonce", Type: "uint256"},
}

var tokenCreationType = []apitypes.Type{
	{Name: "from", Type: "address"},
	{Name: "name", Type: "string"},
	{Name: "symbol", Type: "string"},
}

// Domain identifies the chain and contract a signature is valid for.
type Domain struct {
	ChainID           *big.Int
	VerifyingContract common.Address
}

// Allowance authorizes receiver to claim amount of token with the given nonce.
type Allowance struct {
	Receiver common.Address
	Amount   *big.Int
	Token    common.Address
	Nonce    *big.Int
}

// TokenCreation authorizes deployment of a wrapped token.
type TokenCreation struct {
	From   common.Address
	Name   string
	Symbol string
}

// Signer signs typed data with the validator key.
type Signer struct {
	key        *ecdsa.PrivateKey
	address    common.Address
	domainName string
}

// New creates a signer for key under the named domain.
func New(key *ecdsa.PrivateKey, domainName string) *Signer {
	return &Signer{
		key:        key,
		address:    crypto.PubkeyToAddress(key.PublicKey),
		domainName: domainName,
	}
}

// Address returns the validator address.
func (s *Signer) Address() common.Address {
	return s.address
}

// AllowanceTypedData builds the Allowance payload.
func (s *Signer) AllowanceTypedData(a Allowance, d Domain) apitypes.TypedData {
	return apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": eip712Domain,
			"Allowance":    allowanceType,
		},
		PrimaryType: "Allowance",
		Domain:      s.domain(d),
		Message: apitypes.TypedDataMessage{
			"receiver": a.Receiver.Hex(),
			"amount":   new(big.Int).Set(a.Amount),
			"token":    a.Token.Hex(),
			"nonce":    new(big.Int).Set(a.Nonce),
		},
	}
}

// TokenCreationTypedData builds the TokenCreation payload.
func (s *Signer) TokenCreationTypedData(tc TokenCreation, d Domain) apitypes.TypedData {
	return apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain":  eip712Domain,
			"TokenCreation": tokenCreationType,
		},
		PrimaryType: "TokenCreation",
		Domain:      s.domain(d),
		Message: apitypes.TypedDataMessage{
			"from":   tc.From.Hex(),
			"name":   tc.Name,
			"symbol": tc.Symbol,
		},
	}
}

// SignAllowance signs an Allowance. The returned signature is r || s || v with v in {27, 28}.
func (s *Signer) SignAllowance(a Allowance, d Domain) ([]byte, error) {
	if a.Amount == nil || a.Nonce == nil {
		return nil, fmt.Errorf("allowance amount and nonce are required")
	}
	return s.sign(s.AllowanceTypedData(a, d))
}

// SignTokenCreation signs a TokenCreation.
func (s *Signer) SignTokenCreation(tc TokenCreation, d Domain) ([]byte, error) {
	return s.sign(s.TokenCreationTypedData(tc, d))
}

func (s *Signer) domain(d Domain) apitypes.TypedDataDomain {
	return apitypes.TypedDataDomain{
		Name:              s.domainName,
		Version:           DomainVersion,
		ChainId:           (*math.HexOrDecimal256)(new(big.Int).Set(d.ChainID)),
		VerifyingContract: d.VerifyingContract.Hex(),
	}
}

func (s *Signer) sign(td apitypes.TypedData) ([]byte, error) {
	hash, _, err := apitypes.TypedDataAndHash(td)
	if err != nil {
		return nil, fmt.Errorf("failed to hash %s: %w", td.PrimaryType, err)
	}
	sig, err := crypto.Sign(hash, s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign %s: %w", td.PrimaryType, err)
	}
	sig[crypto.RecoveryIDOffset] += 27
	return sig, nil
}

// Recover returns the address that produced sig over td.
func Recover(td apitypes.TypedData, sig []byte) (common.Address, error) {
	if len(sig) != crypto.SignatureLength {
		return common.Address{}, fmt.Errorf("invalid signature length %d", len(sig))
	}
	hash, _, err := apitypes.TypedDataAndHash(td)
	if err != nil {
		return common.Address{}, err
	}
	normalized := append([]byte(nil), sig...)
	if normalized[crypto.RecoveryIDOffset] >= 27 {
		normalized[crypto.RecoveryIDOffset] -= 27
	}
	pub, err := crypto.SigToPub(hash, normalized)
	if err != nil {
		return common.Address{}, err
	}
	return crypto.PubkeyToAddress(*pub), nil
}
