// Package relayer watches bridge events on every configured chain, holds each Lock and
// Burn back until it is final, and turns it into a claimable attestation.
package relayer

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/chainsafe/token-bridge-validator/pkg/ethereum"
	"github.com/chainsafe/token-bridge-validator/pkg/signer"
	"github.com/chainsafe/token-bridge-validator/pkg/token"
	"github.com/chainsafe/token-bridge-validator/pkg/transaction"
)

// Chain is the gateway surface the relayer drives on one ledger.
type Chain interface {
	signer.Chain
	ChainID() uint64
	Name() string
	BlockNumber(ctx context.Context) (uint64, error)
	StreamLogs(ctx context.Context, q ethereum.LogQuery, fromBlock uint64, sink chan<- ethereum.LogBatch) error
	WaitForConfirmations(ctx context.Context, txHash common.Hash, n uint64) (*types.Receipt, error)

	TransferQuery(kind ethereum.EventKind, targetChainID uint64) ethereum.LogQuery
	ClaimQuery(kind ethereum.EventKind) ethereum.LogQuery
	TokenConnectionQuery() ethereum.LogQuery
	DecodeTransfer(kind ethereum.EventKind, log types.Log) (*ethereum.TransferEvent, error)
	DecodeClaim(kind ethereum.EventKind, log types.Log) (*ethereum.ClaimEvent, error)
	DecodeTokenConnection(log types.Log) (*ethereum.TokenConnectionEvent, error)
}

// Store is the slice of the transaction store the relayer writes through.
type Store interface {
	Create(ctx context.Context, tx *transaction.BridgeTransaction) (bool, error)
	Update(ctx context.Context, tx *transaction.BridgeTransaction) error
	FindByClaimTxHash(ctx context.Context, claimTxHash string, txType transaction.Type, targetChainID uint64) (*transaction.BridgeTransaction, error)
	ListByStatus(ctx context.Context, status transaction.Status) ([]*transaction.BridgeTransaction, error)
	CountByStatus(ctx context.Context) (map[transaction.Status]int, error)
	GetCheckpoint(ctx context.Context, chainID uint64, eventKind string) (uint64, bool, error)
	SetCheckpoint(ctx context.Context, chainID uint64, eventKind string, block uint64) error
}

// Resolver maps tokens between chains.
type Resolver interface {
	ResolveTargetToken(ctx context.Context, sourceChainID uint64, sourceToken common.Address, targetChainID uint64) (common.Address, error)
	ResolveSourceToken(ctx context.Context, burnChainID uint64, wrappedToken common.Address, homeChainID uint64) (common.Address, error)
}

// Attestor signs claim allowances.
type Attestor interface {
	AttestAllowance(ctx context.Context, chain signer.Chain, receiver common.Address, amount *big.Int, token common.Address) (string, error)
}

// TokenCache fills the supported-token cache.
type TokenCache interface {
	EnsureTokenIsSupported(ctx context.Context, chainID uint64, address string) (*token.SupportedToken, error)
}
