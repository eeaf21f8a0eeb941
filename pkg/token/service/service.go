// Package service implements the supported-token cache and its HTTP surface.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	apperrors "github.com/chainsafe/token-bridge-validator/pkg/app/errors"
	"github.com/chainsafe/token-bridge-validator/pkg/token"
	"github.com/chainsafe/token-bridge-validator/pkg/tokenstore"
)

var (
	ErrUnsupportedChain = errors.New("unsupported chain")
	ErrInvalidToken     = errors.New("invalid token address")
)

// Store is the narrow data-access interface for the token service.
//
//go:generate mockery --name Store --output mocks --outpkg mocks --filename mock_store.go --with-expecter
type Store interface {
	Create(ctx context.Context, t *token.SupportedToken) (bool, error)
	Get(ctx context.Context, chainID uint64, address string) (*token.SupportedToken, error)
	List(ctx context.Context, opts ...tokenstore.QueryOption) ([]*token.SupportedToken, error)
}

// Chain reads ERC-20 metadata from one ledger.
//
//go:generate mockery --name Chain --output mocks --outpkg mocks --filename mock_chain.go --with-expecter
type Chain interface {
	TokenInfo(ctx context.Context, address common.Address) (token.Info, error)
}

// Service defines the supported-token operations
//
//go:generate mockery --name Service --output mocks --outpkg mocks --filename mock_service.go --with-expecter
type Service interface {
	EnsureTokenIsSupported(ctx context.Context, chainID uint64, address string) (*token.SupportedToken, error)
	GetSupportedTokens(ctx context.Context, chainID uint64) ([]*token.SupportedToken, error)
	GetSupportedToken(ctx context.Context, chainID uint64, address string) (*token.SupportedToken, error)
	CreateSupportedToken(ctx context.Context, chainID uint64, address string) (*token.SupportedToken, error)
}

type tokenService struct {
	store  Store
	chains map[uint64]Chain
	logger *zap.Logger
}

// NewService creates a new token service reading metadata through the given chains.
func NewService(store Store, chains map[uint64]Chain, logger *zap.Logger) Service {
	return &tokenService{
		store:  store,
		chains: chains,
		logger: logger,
	}
}

// EnsureTokenIsSupported caches token metadata if it is not cached yet and returns the cached entry.
func (s *tokenService) EnsureTokenIsSupported(ctx context.Context, chainID uint64, address string) (*token.SupportedToken, error) {
	chain, ok := s.chains[chainID]
	if !ok {
		return nil, apperrors.BadRequestError(ErrUnsupportedChain, fmt.Sprintf("chain %d is not supported", chainID))
	}
	if !token.IsAddress(address) {
		return nil, apperrors.BadRequestError(ErrInvalidToken, "invalid token address")
	}
	address = token.NormalizeAddress(address)

	cached, err := s.store.Get(ctx, chainID, address)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, tokenstore.ErrTokenNotFound) {
		return nil, fmt.Errorf("failed to get supported token: %w", err)
	}

	info, err := chain.TokenInfo(ctx, common.HexToAddress(address))
	if err != nil {
		return nil, apperrors.DependencyError(err, "failed to read token metadata")
	}

	st := &token.SupportedToken{
		ChainID:  chainID,
		Token:    address,
		Name:     info.Name,
		Symbol:   info.Symbol,
		Decimals: info.Decimals,
	}
	created, err := s.store.Create(ctx, st)
	if err != nil {
		return nil, fmt.Errorf("failed to create supported token: %w", err)
	}
	if created {
		s.logger.Info("Supported token cached",
			zap.Uint64("chain_id", chainID),
			zap.String("token", address),
			zap.String("symbol", info.Symbol))
	}
	return st, nil
}

// GetSupportedTokens lists cached tokens of a chain.
func (s *tokenService) GetSupportedTokens(ctx context.Context, chainID uint64) ([]*token.SupportedToken, error) {
	tokens, err := s.store.List(ctx, tokenstore.WithChainID(chainID))
	if err != nil {
		return nil, fmt.Errorf("failed to list supported tokens: %w", err)
	}
	return tokens, nil
}

// GetSupportedToken returns one cached token.
func (s *tokenService) GetSupportedToken(ctx context.Context, chainID uint64, address string) (*token.SupportedToken, error) {
	if !token.IsAddress(address) {
		return nil, apperrors.BadRequestError(ErrInvalidToken, "invalid token address")
	}
	st, err := s.store.Get(ctx, chainID, address)
	if err != nil {
		if errors.Is(err, tokenstore.ErrTokenNotFound) {
			return nil, apperrors.ResourceNotFoundError(err, "token not supported")
		}
		return nil, fmt.Errorf("failed to get supported token: %w", err)
	}
	return st, nil
}

// CreateSupportedToken caches a token on request.
func (s *tokenService) CreateSupportedToken(ctx context.Context, chainID uint64, address string) (*token.SupportedToken, error) {
	return s.EnsureTokenIsSupported(ctx, chainID, address)
}
