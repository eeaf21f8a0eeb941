package tokenstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/uptrace/bun"

	"github.com/chainsafe/token-bridge-validator/pkg/token"
)

type pgStore struct {
	db *bun.DB
}

// NewStore creates a new postgres implementation of the token store
func NewStore(db *bun.DB) *pgStore {
	return &pgStore{db: db}
}

// Create caches a token. It reports false when the token is already cached for the chain.
func (s *pgStore) Create(ctx context.Context, t *token.SupportedToken) (bool, error) {
	res, err := s.db.NewInsert().
		Model(toSupportedTokenDao(t)).
		On("CONFLICT DO NOTHING").
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to create supported token: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n > 0, nil
}

func (s *pgStore) Get(ctx context.Context, chainID uint64, address string) (*token.SupportedToken, error) {
	dao := new(SupportedTokenDao)
	err := s.db.NewSelect().
		Model(dao).
		Where("chain_id = ?", chainID).
		Where("lower(token) = ?", strings.ToLower(address)).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to get supported token: %w", err)
	}
	return toSupportedToken(dao), nil
}

func (s *pgStore) List(ctx context.Context, opts ...QueryOption) ([]*token.SupportedToken, error) {
	options := &QueryOptions{}
	for _, opt := range opts {
		opt(options)
	}

	var daos []SupportedTokenDao
	query := s.db.NewSelect().Model(&daos)
	if options.ChainID != nil {
		query = query.Where("chain_id = ?", *options.ChainID)
	}
	if options.Symbol != nil {
		query = query.Where("lower(symbol) = ?", strings.ToLower(*options.Symbol))
	}

	if err := query.Order("chain_id ASC", "id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list supported tokens: %w", err)
	}

	tokens := make([]*token.SupportedToken, len(daos))
	for i := range daos {
		tokens[i] = toSupportedToken(&daos[i])
	}
	return tokens, nil
}
