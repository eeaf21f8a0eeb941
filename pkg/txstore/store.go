// Package txstore persists bridge transactions and listener checkpoints in PostgreSQL.
package txstore

import (
	"context"
	"errors"

	"github.com/chainsafe/token-bridge-validator/pkg/transaction"
)

var (
	// ErrTransactionNotFound is returned when no record matches a lookup.
	ErrTransactionNotFound = errors.New("bridge transaction not found")
	// ErrStaleUpdate is returned when the stored status no longer allows the requested update.
	ErrStaleUpdate = errors.New("bridge transaction status changed concurrently")
)

// CheckpointStore tracks the last fully dispatched block per chain and event kind.
type CheckpointStore interface {
	GetCheckpoint(ctx context.Context, chainID uint64, eventKind string) (uint64, bool, error)
	SetCheckpoint(ctx context.Context, chainID uint64, eventKind string, block uint64) error
}

// Store defines bridge transaction persistence
type Store interface {
	CheckpointStore
	Create(ctx context.Context, tx *transaction.BridgeTransaction) (bool, error)
	Update(ctx context.Context, tx *transaction.BridgeTransaction) error
	FindByBridgeTxHash(ctx context.Context, key transaction.Key) (*transaction.BridgeTransaction, error)
	FindByClaimTxHash(ctx context.Context, claimTxHash string, txType transaction.Type, targetChainID uint64) (*transaction.BridgeTransaction, error)
	ListByAccount(ctx context.Context, address string) ([]*transaction.BridgeTransaction, error)
	ListByStatus(ctx context.Context, status transaction.Status) ([]*transaction.BridgeTransaction, error)
	CountByStatus(ctx context.Context) (map[transaction.Status]int, error)
}

var _ Store = (*pgStore)(nil)
