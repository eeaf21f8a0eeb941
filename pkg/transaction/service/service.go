// Package service implements the claim query API over the transaction store.
package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/chainsafe/token-bridge-validator/internal/metrics"
	apperrors "github.com/chainsafe/token-bridge-validator/pkg/app/errors"
	"github.com/chainsafe/token-bridge-validator/pkg/token"
	"github.com/chainsafe/token-bridge-validator/pkg/transaction"
	"github.com/chainsafe/token-bridge-validator/pkg/txstore"
)

var ErrNotClaimable = errors.New("transaction is not claimable")

// Store is the narrow data-access interface for the claim service.
//
//go:generate mockery --name Store --output mocks --outpkg mocks --filename mock_store.go --with-expecter
type Store interface {
	FindByBridgeTxHash(ctx context.Context, key transaction.Key) (*transaction.BridgeTransaction, error)
	ListByAccount(ctx context.Context, address string) ([]*transaction.BridgeTransaction, error)
	Update(ctx context.Context, tx *transaction.BridgeTransaction) error
}

// TokenCache reads and fills the supported-token cache.
//
//go:generate mockery --name TokenCache --output mocks --outpkg mocks --filename mock_token_cache.go --with-expecter
type TokenCache interface {
	EnsureTokenIsSupported(ctx context.Context, chainID uint64, address string) (*token.SupportedToken, error)
	GetSupportedToken(ctx context.Context, chainID uint64, address string) (*token.SupportedToken, error)
}

// Service defines the claim query operations
//
//go:generate mockery --name Service --output mocks --outpkg mocks --filename mock_service.go --with-expecter
type Service interface {
	GetTransactions(ctx context.Context, account string) ([]transaction.View, error)
	GetPendingAttestation(ctx context.Context, key transaction.Key) (*transaction.Attestation, error)
	AcknowledgeClaim(ctx context.Context, txType transaction.Type, req *transaction.ClaimRequest) (*transaction.View, error)
}

type claimService struct {
	store      Store
	tokens     TokenCache
	chainNames map[uint64]string
	logger     *zap.Logger
}

// NewService creates a new claim service
func NewService(store Store, tokens TokenCache, chainNames map[uint64]string, logger *zap.Logger) Service {
	return &claimService{
		store:      store,
		tokens:     tokens,
		chainNames: chainNames,
		logger:     logger,
	}
}

// GetTransactions returns the account's bridge transactions, newest first.
func (s *claimService) GetTransactions(ctx context.Context, account string) ([]transaction.View, error) {
	if !token.IsAddress(account) {
		return nil, apperrors.BadRequestError(nil, "invalid account address")
	}

	txs, err := s.store.ListByAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	views := make([]transaction.View, 0, len(txs))
	for _, tx := range txs {
		views = append(views, s.view(ctx, tx))
	}
	return views, nil
}

// GetPendingAttestation returns the signatures for a record whose finality has cleared.
func (s *claimService) GetPendingAttestation(ctx context.Context, key transaction.Key) (*transaction.Attestation, error) {
	if !transaction.IsTxHash(key.BridgeTxHash) {
		return nil, apperrors.BadRequestError(nil, "invalid transaction hash")
	}

	tx, err := s.find(ctx, key)
	if err != nil {
		return nil, err
	}
	if tx.Status == transaction.StatusWaitingFinality {
		return nil, apperrors.ResourceNotFoundError(nil, "transaction is waiting for finality")
	}

	att := transaction.NewAttestation(tx)
	return &att, nil
}

// AcknowledgeClaim records the claim transaction of a claimable record and marks it CLAIMED.
func (s *claimService) AcknowledgeClaim(ctx context.Context, txType transaction.Type, req *transaction.ClaimRequest) (*transaction.View, error) {
	if !transaction.IsTxHash(req.BridgeTxHash) || !transaction.IsTxHash(req.ClaimTxHash) {
		return nil, apperrors.BadRequestError(nil, "invalid transaction hash")
	}

	key := transaction.Key{
		BridgeTxHash:  req.BridgeTxHash,
		Type:          txType,
		SourceChainID: req.SourceChainID,
		TargetChainID: req.TargetChainID,
	}
	tx, err := s.find(ctx, key)
	if err != nil {
		return nil, err
	}

	switch tx.Status {
	case transaction.StatusWaitingClaim:
	case transaction.StatusClaimed:
		return nil, doesNotExist(fmt.Errorf("already claimed by %s", tx.ClaimTxHash))
	default:
		return nil, apperrors.ConflictError(fmt.Errorf("%w: %s", ErrNotClaimable, tx.Status), "transaction is not claimable")
	}

	if err := tx.MarkClaimed(req.ClaimTxHash); err != nil {
		return nil, apperrors.ConflictError(err, "transaction is not claimable")
	}
	if err := s.store.Update(ctx, tx); err != nil {
		// a concurrent acknowledgement won the update
		if errors.Is(err, txstore.ErrStaleUpdate) || errors.Is(err, txstore.ErrTransactionNotFound) {
			return nil, doesNotExist(err)
		}
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	metrics.TransactionsTotal.WithLabelValues(string(tx.Type), string(tx.Status)).Inc()

	if _, err := s.tokens.EnsureTokenIsSupported(ctx, tx.TargetChainID, tx.TargetToken); err != nil {
		s.logger.Warn("Failed to cache target token",
			zap.Uint64("chain_id", tx.TargetChainID),
			zap.String("token", tx.TargetToken),
			zap.Error(err))
	}

	v := s.view(ctx, tx)
	return &v, nil
}

func (s *claimService) find(ctx context.Context, key transaction.Key) (*transaction.BridgeTransaction, error) {
	tx, err := s.store.FindByBridgeTxHash(ctx, key)
	if err != nil {
		if errors.Is(err, txstore.ErrTransactionNotFound) {
			return nil, doesNotExist(err)
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}
	return tx, nil
}

func doesNotExist(cause error) error {
	return apperrors.ResourceNotFoundError(
		fmt.Errorf("%w: %w", transaction.ErrTransactionDoesNotExist, cause),
		transaction.ErrTransactionDoesNotExist.Error())
}

func (s *claimService) view(ctx context.Context, tx *transaction.BridgeTransaction) transaction.View {
	return transaction.NewView(tx, s.chainNames,
		s.cachedToken(ctx, tx.SourceChainID, tx.SourceToken),
		s.cachedToken(ctx, tx.TargetChainID, tx.TargetToken))
}

func (s *claimService) cachedToken(ctx context.Context, chainID uint64, address string) *token.SupportedToken {
	if !token.IsAddress(address) {
		return nil
	}
	st, err := s.tokens.GetSupportedToken(ctx, chainID, address)
	if err != nil {
		return nil
	}
	return st
}
