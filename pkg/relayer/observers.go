package relayer

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/chainsafe/token-bridge-validator/pkg/ethereum"
	"github.com/chainsafe/token-bridge-validator/pkg/transaction"
	"github.com/chainsafe/token-bridge-validator/pkg/txstore"
)

// observeClaim logs a Mint or Release against the record it completes. It never changes state.
func (e *Engine) observeClaim(ctx context.Context, ev *ethereum.ClaimEvent) error {
	txType := transaction.TypeLock
	if ev.Kind == ethereum.EventRelease {
		txType = transaction.TypeBurn
	}
	logger := e.logger.With(
		zap.String("claim_tx_hash", ev.TxHash.Hex()),
		zap.String("event_type", string(ev.Kind)),
		zap.Uint64("chain_id", ev.ChainID),
		zap.String("receiver", ev.Receiver.Hex()))

	tx, err := e.store.FindByClaimTxHash(ctx, ev.TxHash.Hex(), txType, ev.ChainID)
	if err != nil {
		if errors.Is(err, txstore.ErrTransactionNotFound) {
			logger.Info("Observed claim with no acknowledged bridge transaction")
			return nil
		}
		return fmt.Errorf("failed to find claimed transaction: %w", err)
	}

	switch tx.Status {
	case transaction.StatusWaitingClaim, transaction.StatusClaimed:
		logger.Info("Claim confirmed on target chain",
			zap.String("bridge_tx_hash", tx.BridgeTxHash),
			zap.String("status", string(tx.Status)))
	default:
		logger.Warn("Claim observed for a transaction that is not claimable",
			zap.String("bridge_tx_hash", tx.BridgeTxHash),
			zap.String("status", string(tx.Status)))
	}
	return nil
}

// observeTokenConnection caches both tokens of a newly registered connection.
func (e *Engine) observeTokenConnection(ctx context.Context, ev *ethereum.TokenConnectionEvent) error {
	e.logger.Info("Token connection registered",
		zap.Uint64("chain_id", ev.ChainID),
		zap.String("source_token", ev.SourceToken.Hex()),
		zap.Uint64("source_chain_id", ev.SourceChainID),
		zap.String("target_token", ev.TargetToken.Hex()),
		zap.Uint64("target_chain_id", ev.TargetChainID))

	for _, t := range []struct {
		chainID uint64
		address string
	}{
		{ev.SourceChainID, ev.SourceToken.Hex()},
		{ev.TargetChainID, ev.TargetToken.Hex()},
	} {
		if _, err := e.tokens.EnsureTokenIsSupported(ctx, t.chainID, t.address); err != nil {
			e.logger.Warn("Failed to cache connected token",
				zap.Uint64("chain_id", t.chainID),
				zap.String("token", t.address),
				zap.Error(err))
		}
	}
	return nil
}
