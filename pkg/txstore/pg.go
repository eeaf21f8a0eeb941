package txstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"github.com/chainsafe/token-bridge-validator/pkg/transaction"
)

type pgStore struct {
	db *bun.DB
}

// NewStore creates a new postgres implementation of the transaction store
func NewStore(db *bun.DB) *pgStore {
	return &pgStore{db: db}
}

// Create inserts a record. It reports false without error when the idempotency key already exists.
func (s *pgStore) Create(ctx context.Context, tx *transaction.BridgeTransaction) (bool, error) {
	dao := toTransactionDao(tx)

	res, err := s.db.NewInsert().
		Model(dao).
		On("CONFLICT (bridge_tx_hash, type, source_chain_id, target_chain_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to create bridge transaction: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return false, nil
	}

	tx.ID = dao.ID.String()
	return true, nil
}

// Update replaces the mutable fields of the record matched by its idempotency key.
// The stored status must be a legal predecessor of the new one.
func (s *pgStore) Update(ctx context.Context, tx *transaction.BridgeTransaction) error {
	dao := toTransactionDao(tx)
	dao.UpdatedAt = time.Now().UTC()

	res, err := s.db.NewUpdate().
		Model(dao).
		Column("status", "claim_tx_hash", "target_token", "signatures", "updated_at").
		Where("bridge_tx_hash = ?", dao.BridgeTxHash).
		Where("type = ?", dao.Type).
		Where("source_chain_id = ?", dao.SourceChainID).
		Where("target_chain_id = ?", dao.TargetChainID).
		Where("status IN (?)", bun.In(statusStrings(transaction.Predecessors(tx.Status)))).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update bridge transaction: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		exists, err := s.exists(ctx, tx.Key())
		if err != nil {
			return err
		}
		if !exists {
			return ErrTransactionNotFound
		}
		return fmt.Errorf("%w: %s", ErrStaleUpdate, tx.Key())
	}

	tx.UpdatedAt = dao.UpdatedAt
	return nil
}

// FindByBridgeTxHash looks a record up by its idempotency key.
func (s *pgStore) FindByBridgeTxHash(ctx context.Context, key transaction.Key) (*transaction.BridgeTransaction, error) {
	dao := new(TransactionDao)
	err := s.db.NewSelect().
		Model(dao).
		Where("lower(bridge_tx_hash) = lower(?)", key.BridgeTxHash).
		Where("type = ?", string(key.Type)).
		Where("source_chain_id = ?", key.SourceChainID).
		Where("target_chain_id = ?", key.TargetChainID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get bridge transaction: %w", err)
	}
	return toTransaction(dao)
}

// FindByClaimTxHash looks a record up by the hash of its completing claim on the target chain.
func (s *pgStore) FindByClaimTxHash(
	ctx context.Context,
	claimTxHash string,
	txType transaction.Type,
	targetChainID uint64,
) (*transaction.BridgeTransaction, error) {
	dao := new(TransactionDao)
	err := s.db.NewSelect().
		Model(dao).
		Where("lower(claim_tx_hash) = lower(?)", claimTxHash).
		Where("type = ?", string(txType)).
		Where("target_chain_id = ?", targetChainID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get claim transaction: %w", err)
	}
	return toTransaction(dao)
}

// ListByAccount returns all records initiated by address, newest first.
func (s *pgStore) ListByAccount(ctx context.Context, address string) ([]*transaction.BridgeTransaction, error) {
	var daos []TransactionDao
	err := s.db.NewSelect().
		Model(&daos).
		Where("lower(from_address) = ?", strings.ToLower(address)).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bridge transactions: %w", err)
	}
	return toTransactions(daos)
}

// ListByStatus returns all records in the given status, oldest first.
func (s *pgStore) ListByStatus(ctx context.Context, status transaction.Status) ([]*transaction.BridgeTransaction, error) {
	var daos []TransactionDao
	err := s.db.NewSelect().
		Model(&daos).
		Where("status = ?", string(status)).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bridge transactions by status: %w", err)
	}
	return toTransactions(daos)
}

// CountByStatus returns the number of records per status.
func (s *pgStore) CountByStatus(ctx context.Context) (map[transaction.Status]int, error) {
	var rows []struct {
		Status string `bun:"status"`
		Count  int    `bun:"count"`
	}
	err := s.db.NewSelect().
		Model((*TransactionDao)(nil)).
		Column("status").
		ColumnExpr("count(*) AS count").
		Group("status").
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to count bridge transactions: %w", err)
	}

	counts := make(map[transaction.Status]int, len(rows))
	for _, r := range rows {
		counts[transaction.Status(r.Status)] = r.Count
	}
	return counts, nil
}

// GetCheckpoint returns the last fully dispatched block for a listener.
func (s *pgStore) GetCheckpoint(ctx context.Context, chainID uint64, eventKind string) (uint64, bool, error) {
	dao := new(ChainStateDao)
	err := s.db.NewSelect().
		Model(dao).
		Where("chain_id = ?", chainID).
		Where("event_kind = ?", eventKind).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to get chain state: %w", err)
	}
	return dao.LastBlock, true, nil
}

// SetCheckpoint stores the last fully dispatched block for a listener.
func (s *pgStore) SetCheckpoint(ctx context.Context, chainID uint64, eventKind string, block uint64) error {
	dao := &ChainStateDao{
		ChainID:   chainID,
		EventKind: eventKind,
		LastBlock: block,
		UpdatedAt: time.Now().UTC(),
	}
	_, err := s.db.NewInsert().
		Model(dao).
		On("CONFLICT (chain_id, event_kind) DO UPDATE").
		Set("last_block = EXCLUDED.last_block").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set chain state: %w", err)
	}
	return nil
}

func (s *pgStore) exists(ctx context.Context, key transaction.Key) (bool, error) {
	exists, err := s.db.NewSelect().
		Model((*TransactionDao)(nil)).
		Where("bridge_tx_hash = ?", key.BridgeTxHash).
		Where("type = ?", string(key.Type)).
		Where("source_chain_id = ?", key.SourceChainID).
		Where("target_chain_id = ?", key.TargetChainID).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check bridge transaction exists: %w", err)
	}
	return exists, nil
}

func statusStrings(statuses []transaction.Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
