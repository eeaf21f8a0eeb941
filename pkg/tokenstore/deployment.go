package tokenstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/chainsafe/token-bridge-validator/pkg/token"
)

// DeploymentDao maps to the 'token_deployments' table.
type DeploymentDao struct {
	bun.BaseModel `bun:"table:token_deployments,alias:td"`
	Key           string    `bun:"key,pk,type:varchar(128)"`
	SourceChainID uint64    `bun:"source_chain_id,notnull"`
	SourceToken   string    `bun:"source_token,notnull,type:varchar(42)"`
	TargetChainID uint64    `bun:"target_chain_id,notnull"`
	TxHash        string    `bun:"tx_hash,notnull,type:varchar(66)"`
	RawTx         []byte    `bun:"raw_tx,notnull,type:bytea"`
	WrappedToken  string    `bun:"wrapped_token,nullzero,type:varchar(42)"`
	CreatedAt     time.Time `bun:"created_at,notnull,nullzero,default:current_timestamp"`
	UpdatedAt     time.Time `bun:"updated_at,notnull,nullzero,default:current_timestamp"`
}

func toDeploymentDao(d *token.Deployment) *DeploymentDao {
	dao := &DeploymentDao{
		Key:           d.Key,
		SourceChainID: d.SourceChainID,
		SourceToken:   token.NormalizeAddress(d.SourceToken),
		TargetChainID: d.TargetChainID,
		TxHash:        d.TxHash,
		RawTx:         d.RawTx,
		UpdatedAt:     time.Now().UTC(),
	}
	if d.WrappedToken != "" {
		dao.WrappedToken = token.NormalizeAddress(d.WrappedToken)
	}
	return dao
}

func toDeployment(dao *DeploymentDao) *token.Deployment {
	return &token.Deployment{
		Key:           dao.Key,
		SourceChainID: dao.SourceChainID,
		SourceToken:   dao.SourceToken,
		TargetChainID: dao.TargetChainID,
		TxHash:        dao.TxHash,
		RawTx:         dao.RawTx,
		WrappedToken:  dao.WrappedToken,
	}
}

// GetDeployment returns the pending deployment for key or ErrDeploymentNotFound.
func (s *pgStore) GetDeployment(ctx context.Context, key string) (*token.Deployment, error) {
	dao := new(DeploymentDao)
	err := s.db.NewSelect().Model(dao).Where("key = ?", key).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDeploymentNotFound
		}
		return nil, fmt.Errorf("failed to get token deployment: %w", err)
	}
	return toDeployment(dao), nil
}

// SaveDeployment inserts or replaces the deployment stored under d.Key.
func (s *pgStore) SaveDeployment(ctx context.Context, d *token.Deployment) error {
	_, err := s.db.NewInsert().
		Model(toDeploymentDao(d)).
		On("CONFLICT (key) DO UPDATE").
		Set("tx_hash = EXCLUDED.tx_hash").
		Set("raw_tx = EXCLUDED.raw_tx").
		Set("wrapped_token = EXCLUDED.wrapped_token").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save token deployment: %w", err)
	}
	return nil
}

// DeleteDeployment removes the deployment stored under key. A missing row is not an error.
func (s *pgStore) DeleteDeployment(ctx context.Context, key string) error {
	_, err := s.db.NewDelete().Model((*DeploymentDao)(nil)).Where("key = ?", key).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete token deployment: %w", err)
	}
	return nil
}
