package relayer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/chainsafe/token-bridge-validator/internal/metrics"
	"github.com/chainsafe/token-bridge-validator/pkg/ethereum"
	"github.com/chainsafe/token-bridge-validator/pkg/transaction"
	"github.com/chainsafe/token-bridge-validator/pkg/txstore"
)

const writeTimeout = 10 * time.Second

// ProcessorConfig is the finality policy of the processor.
type ProcessorConfig struct {
	Confirmations  uint64
	ReceiptTimeout time.Duration
}

// Processor records Lock and Burn events and runs one finality guard per record.
type Processor struct {
	chains   map[uint64]Chain
	store    Store
	resolver Resolver
	attestor Attestor
	tokens   TokenCache
	cfg      ProcessorConfig
	logger   *zap.Logger

	mu       sync.Mutex
	inflight map[transaction.Key]struct{}
	wg       sync.WaitGroup
}

// NewProcessor creates a new processor
func NewProcessor(
	chains map[uint64]Chain,
	store Store,
	resolver Resolver,
	attestor Attestor,
	tokens TokenCache,
	cfg ProcessorConfig,
	logger *zap.Logger,
) *Processor {
	return &Processor{
		chains:   chains,
		store:    store,
		resolver: resolver,
		attestor: attestor,
		tokens:   tokens,
		cfg:      cfg,
		logger:   logger,
		inflight: make(map[transaction.Key]struct{}),
	}
}

// HandleTransfer records a Lock or Burn and starts its finality guard.
// A redelivered event matches the existing record and is ignored.
func (p *Processor) HandleTransfer(ctx context.Context, ev *ethereum.TransferEvent) error {
	txType := transaction.TypeLock
	if ev.Kind == ethereum.EventBurn {
		txType = transaction.TypeBurn
	}
	key := transaction.Key{
		BridgeTxHash:  ev.TxHash.Hex(),
		Type:          txType,
		SourceChainID: ev.ChainID,
		TargetChainID: ev.TargetChainID,
	}
	logger := p.logger.With(
		zap.String("bridge_tx_hash", key.BridgeTxHash),
		zap.String("type", string(txType)),
		zap.Uint64("source_chain_id", key.SourceChainID),
		zap.Uint64("target_chain_id", key.TargetChainID))

	tx := transaction.New(key, ev.From.Hex(), ev.Token.Hex(), ev.Amount)
	created, err := p.store.Create(ctx, tx)
	if err != nil {
		return fmt.Errorf("failed to create bridge transaction: %w", err)
	}
	if !created {
		logger.Info("Duplicate event delivery, ignoring")
		return nil
	}

	metrics.TransactionsTotal.WithLabelValues(string(tx.Type), string(tx.Status)).Inc()
	logger.Info("Bridge transaction recorded",
		zap.String("from", tx.From),
		zap.String("token", tx.SourceToken),
		zap.String("amount", ev.Amount.String()),
		zap.Uint64("block", ev.BlockNumber))

	p.Guard(ctx, tx)
	return nil
}

// Guard starts the finality guard of tx unless one is already running in this process.
func (p *Processor) Guard(ctx context.Context, tx *transaction.BridgeTransaction) {
	key := tx.Key()

	p.mu.Lock()
	if _, ok := p.inflight[key]; ok {
		p.mu.Unlock()
		return
	}
	p.inflight[key] = struct{}{}
	p.wg.Add(1)
	p.mu.Unlock()

	go func() {
		defer func() {
			p.mu.Lock()
			delete(p.inflight, key)
			p.mu.Unlock()
			p.wg.Done()
		}()
		p.finalize(ctx, tx)
	}()
}

// Recover re-drives every record still waiting for finality.
func (p *Processor) Recover(ctx context.Context) (int, error) {
	txs, err := p.store.ListByStatus(ctx, transaction.StatusWaitingFinality)
	if err != nil {
		return 0, fmt.Errorf("failed to list waiting transactions: %w", err)
	}
	for _, tx := range txs {
		p.Guard(ctx, tx)
	}
	return len(txs), nil
}

// Wait blocks until every running guard has returned.
func (p *Processor) Wait() {
	p.wg.Wait()
}

func (p *Processor) finalize(ctx context.Context, tx *transaction.BridgeTransaction) {
	logger := p.logger.With(
		zap.String("bridge_tx_hash", tx.BridgeTxHash),
		zap.String("type", string(tx.Type)),
		zap.Uint64("source_chain_id", tx.SourceChainID),
		zap.Uint64("target_chain_id", tx.TargetChainID))

	src, ok := p.chains[tx.SourceChainID]
	if !ok {
		logger.Error("Source chain is not configured")
		return
	}
	dst, ok := p.chains[tx.TargetChainID]
	if !ok {
		logger.Error("Target chain is not configured")
		return
	}

	if _, err := p.tokens.EnsureTokenIsSupported(ctx, tx.SourceChainID, tx.SourceToken); err != nil {
		logger.Warn("Failed to cache source token", zap.String("token", tx.SourceToken), zap.Error(err))
	}

	start := time.Now()
	waitCtx, cancel := context.WithTimeout(ctx, p.cfg.ReceiptTimeout)
	receipt, err := src.WaitForConfirmations(waitCtx, common.HexToHash(tx.BridgeTxHash), p.cfg.Confirmations)
	cancel()

	switch {
	case errors.Is(err, ethereum.ErrTransactionReverted):
		metrics.FinalityWait.WithLabelValues(src.Name()).Observe(time.Since(start).Seconds())
		logger.Warn("Originating transaction reverted, marking failed")
		if err := tx.MarkFailed(); err != nil {
			logger.Error("Failed to mark transaction failed", zap.Error(err))
			return
		}
		p.save(ctx, tx, logger)
		return
	case err != nil:
		if ctx.Err() == nil {
			logger.Warn("Finality not reached, leaving transaction for the next sweep", zap.Error(err))
			metrics.ErrorsTotal.WithLabelValues("finality_guard", "confirmations").Inc()
		}
		return
	}
	metrics.FinalityWait.WithLabelValues(src.Name()).Observe(time.Since(start).Seconds())
	logger.Info("Originating transaction final", zap.Uint64("block", receipt.BlockNumber.Uint64()))

	targetToken, err := p.resolveTargetToken(ctx, tx)
	if err != nil {
		logger.Error("Failed to resolve target token", zap.Error(err))
		metrics.ErrorsTotal.WithLabelValues("finality_guard", "resolve_token").Inc()
		return
	}

	sig, err := p.attestor.AttestAllowance(ctx, dst, common.HexToAddress(tx.From), tx.Amount, targetToken)
	if err != nil {
		logger.Error("Failed to sign allowance", zap.Error(err))
		metrics.ErrorsTotal.WithLabelValues("finality_guard", "sign").Inc()
		return
	}
	metrics.SignaturesIssued.WithLabelValues(dst.Name()).Inc()

	if err := tx.MarkClaimable(targetToken.Hex(), []string{sig}); err != nil {
		logger.Error("Failed to mark transaction claimable", zap.Error(err))
		return
	}
	if p.save(ctx, tx, logger) {
		logger.Info("Attestation ready", zap.String("target_token", tx.TargetToken))
	}
}

func (p *Processor) resolveTargetToken(ctx context.Context, tx *transaction.BridgeTransaction) (common.Address, error) {
	sourceToken := common.HexToAddress(tx.SourceToken)
	if tx.Type == transaction.TypeBurn {
		return p.resolver.ResolveSourceToken(ctx, tx.SourceChainID, sourceToken, tx.TargetChainID)
	}
	return p.resolver.ResolveTargetToken(ctx, tx.SourceChainID, sourceToken, tx.TargetChainID)
}

// save persists a transition. The write outlives ctx so shutdown cannot cut it in half.
func (p *Processor) save(ctx context.Context, tx *transaction.BridgeTransaction, logger *zap.Logger) bool {
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
	defer cancel()

	if err := p.store.Update(writeCtx, tx); err != nil {
		if errors.Is(err, txstore.ErrStaleUpdate) {
			logger.Info("Transaction already moved on, dropping update", zap.String("status", string(tx.Status)))
			return false
		}
		logger.Error("Failed to update transaction", zap.Error(err))
		metrics.ErrorsTotal.WithLabelValues("finality_guard", "store").Inc()
		return false
	}
	metrics.TransactionsTotal.WithLabelValues(string(tx.Type), string(tx.Status)).Inc()
	return true
}
