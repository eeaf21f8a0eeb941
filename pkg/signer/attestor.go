package signer

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Chain is the destination-chain view needed to attest a claim.
type Chain interface {
	EVMChainID() *big.Int
	Governance(ctx context.Context) (common.Address, error)
	GovernanceNonce(ctx context.Context, governance, receiver common.Address) (*big.Int, error)
}

// Attestor signs attestations for a destination chain, reading the verifying
// contract and nonce from the chain right before signing.
type Attestor struct {
	signer *Signer
}

// NewAttestor creates an attestor backed by signer.
func NewAttestor(signer *Signer) *Attestor {
	return &Attestor{signer: signer}
}

// Address returns the validator address.
func (a *Attestor) Address() common.Address {
	return a.signer.Address()
}

func (a *Attestor) domain(ctx context.Context, chain Chain) (Domain, error) {
	governance, err := chain.Governance(ctx)
	if err != nil {
		return Domain{}, err
	}
	return Domain{ChainID: chain.EVMChainID(), VerifyingContract: governance}, nil
}

// AttestAllowance signs an allowance for receiver on the destination chain and returns it hex encoded.
func (a *Attestor) AttestAllowance(ctx context.Context, chain Chain, receiver common.Address, amount *big.Int, token common.Address) (string, error) {
	domain, err := a.domain(ctx, chain)
	if err != nil {
		return "", err
	}
	nonce, err := chain.GovernanceNonce(ctx, domain.VerifyingContract, receiver)
	if err != nil {
		return "", err
	}

	sig, err := a.signer.SignAllowance(Allowance{
		Receiver: receiver,
		Amount:   amount,
		Token:    token,
		Nonce:    nonce,
	}, domain)
	if err != nil {
		return "", fmt.Errorf("failed to sign allowance: %w", err)
	}
	return hexutil.Encode(sig), nil
}

// AttestTokenCreation signs the creation of a wrapped token on the destination chain.
func (a *Attestor) AttestTokenCreation(ctx context.Context, chain Chain, name, symbol string) ([]byte, error) {
	domain, err := a.domain(ctx, chain)
	if err != nil {
		return nil, err
	}
	sig, err := a.signer.SignTokenCreation(TokenCreation{
		From:   a.signer.Address(),
		Name:   name,
		Symbol: symbol,
	}, domain)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token creation: %w", err)
	}
	return sig, nil
}
