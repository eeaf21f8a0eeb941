// Package tokenstore caches ERC-20 metadata of tokens the bridge has seen.
package tokenstore

import (
	"context"
	"errors"

	"github.com/chainsafe/token-bridge-validator/pkg/token"
)

var (
	// ErrTokenNotFound is returned when a token is not cached for the chain.
	ErrTokenNotFound = errors.New("supported token not found")
	// ErrDeploymentNotFound is returned when no deployment is pending for a key.
	ErrDeploymentNotFound = errors.New("token deployment not found")
)

// Store defines supported token persistence
type Store interface {
	Create(ctx context.Context, t *token.SupportedToken) (bool, error)
	Get(ctx context.Context, chainID uint64, address string) (*token.SupportedToken, error)
	List(ctx context.Context, opts ...QueryOption) ([]*token.SupportedToken, error)
}

// DeploymentStore persists wrapped token deployments between broadcast and registration
type DeploymentStore interface {
	GetDeployment(ctx context.Context, key string) (*token.Deployment, error)
	SaveDeployment(ctx context.Context, d *token.Deployment) error
	DeleteDeployment(ctx context.Context, key string) error
}

// QueryOptions defines filters for listing tokens
type QueryOptions struct {
	ChainID *uint64
	Symbol  *string
}

// QueryOption is a functional option for listing tokens
type QueryOption func(*QueryOptions)

// WithChainID restricts the listing to one chain
func WithChainID(chainID uint64) QueryOption {
	return func(opts *QueryOptions) {
		opts.ChainID = &chainID
	}
}

// WithSymbol restricts the listing to a case-insensitive symbol
func WithSymbol(symbol string) QueryOption {
	return func(opts *QueryOptions) {
		opts.Symbol = &symbol
	}
}

var (
	_ Store           = (*pgStore)(nil)
	_ DeploymentStore = (*pgStore)(nil)
)
