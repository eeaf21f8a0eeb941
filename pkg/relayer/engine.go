package relayer

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/chainsafe/token-bridge-validator/internal/metrics"
	"github.com/chainsafe/token-bridge-validator/pkg/config"
	"github.com/chainsafe/token-bridge-validator/pkg/ethereum"
	"github.com/chainsafe/token-bridge-validator/pkg/transaction"
)

// Engine runs one listener per directed route and event kind, plus the
// per-chain claim and token connection observers.
type Engine struct {
	config    *config.Config
	chains    map[uint64]Chain
	store     Store
	processor *Processor
	tokens    TokenCache
	logger    *zap.Logger

	ready atomic.Bool
}

// NewEngine creates a new relayer engine
func NewEngine(
	cfg *config.Config,
	chains map[uint64]Chain,
	store Store,
	processor *Processor,
	tokens TokenCache,
	logger *zap.Logger,
) *Engine {
	return &Engine{
		config:    cfg,
		chains:    chains,
		store:     store,
		processor: processor,
		tokens:    tokens,
		logger:    logger,
	}
}

// IsReady reports whether every listener has been started.
func (e *Engine) IsReady() bool {
	return e.ready.Load()
}

// listener binds a log query to its handler and checkpoint.
type listener struct {
	chain      Chain
	query      ethereum.LogQuery
	checkpoint string
	handle     func(ctx context.Context, log types.Log) error
}

// Run starts every listener and blocks until ctx is cancelled or a listener fails.
// Running finality guards are awaited before it returns.
func (e *Engine) Run(ctx context.Context) error {
	e.logger.Info("Starting relayer engine")
	defer e.processor.Wait()

	n, err := e.processor.Recover(ctx)
	if err != nil {
		return err
	}
	e.logger.Info("Recovered transactions waiting for finality", zap.Int("count", n))

	listeners, err := e.listeners()
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, l := range listeners {
		g.Go(func() error {
			return e.listen(gctx, l)
		})
	}
	g.Go(func() error {
		e.reconcile(gctx)
		return nil
	})

	e.ready.Store(true)
	e.logger.Info("Relayer engine started", zap.Int("listeners", len(listeners)))

	err = g.Wait()
	e.ready.Store(false)
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		err = nil
	}
	e.logger.Info("Relayer engine stopped")
	return err
}

func (e *Engine) listeners() ([]listener, error) {
	var out []listener
	for _, route := range e.config.DirectedRoutes() {
		src, ok := e.chains[route.SourceChainID]
		if !ok {
			return nil, fmt.Errorf("route source chain %d has no gateway", route.SourceChainID)
		}
		if _, ok := e.chains[route.TargetChainID]; !ok {
			return nil, fmt.Errorf("route target chain %d has no gateway", route.TargetChainID)
		}
		for _, kind := range []ethereum.EventKind{ethereum.EventLock, ethereum.EventBurn} {
			out = append(out, listener{
				chain:      src,
				query:      src.TransferQuery(kind, route.TargetChainID),
				checkpoint: fmt.Sprintf("%s:%d", kind, route.TargetChainID),
				handle: func(ctx context.Context, log types.Log) error {
					ev, err := src.DecodeTransfer(kind, log)
					if err != nil {
						return err
					}
					metrics.EventsDetected.WithLabelValues(src.Name(), string(kind)).Inc()
					return e.processor.HandleTransfer(ctx, ev)
				},
			})
		}
	}

	for _, c := range e.chains {
		for _, kind := range []ethereum.EventKind{ethereum.EventMint, ethereum.EventRelease} {
			out = append(out, listener{
				chain:      c,
				query:      c.ClaimQuery(kind),
				checkpoint: string(kind),
				handle: func(ctx context.Context, log types.Log) error {
					ev, err := c.DecodeClaim(kind, log)
					if err != nil {
						return err
					}
					metrics.EventsDetected.WithLabelValues(c.Name(), string(kind)).Inc()
					return e.observeClaim(ctx, ev)
				},
			})
		}
		out = append(out, listener{
			chain:      c,
			query:      c.TokenConnectionQuery(),
			checkpoint: string(ethereum.EventTokenConnection),
			handle: func(ctx context.Context, log types.Log) error {
				ev, err := c.DecodeTokenConnection(log)
				if err != nil {
					return err
				}
				metrics.EventsDetected.WithLabelValues(c.Name(), string(ethereum.EventTokenConnection)).Inc()
				return e.observeTokenConnection(ctx, ev)
			},
		})
	}
	return out, nil
}

// listen streams l's logs from its resume point and dispatches them in chain order.
func (e *Engine) listen(ctx context.Context, l listener) error {
	logger := e.logger.With(
		zap.String("chain", l.chain.Name()),
		zap.String("listener", l.checkpoint))

	from, err := e.startBlock(ctx, l, logger)
	if err != nil {
		return err
	}
	logger.Info("Listener started", zap.Uint64("from_block", from))

	batches := make(chan ethereum.LogBatch, e.config.Relayer.EventBuffer)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return l.chain.StreamLogs(gctx, l.query, from, batches)
	})
	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case batch := <-batches:
				if err := e.dispatch(gctx, l, batch, logger); err != nil {
					return err
				}
			}
		}
	})
	return g.Wait()
}

// startBlock resumes after the checkpoint, falling back to start_block and then to the head.
func (e *Engine) startBlock(ctx context.Context, l listener, logger *zap.Logger) (uint64, error) {
	block, ok, err := e.store.GetCheckpoint(ctx, l.chain.ChainID(), l.checkpoint)
	if err != nil {
		return 0, fmt.Errorf("failed to load checkpoint: %w", err)
	}
	if ok {
		return block + 1, nil
	}

	if cfg, ok := e.config.Chain(l.chain.ChainID()); ok && cfg.StartBlock > 0 {
		return cfg.StartBlock, nil
	}

	var head uint64
	err = ethereum.Retry(ctx, ethereum.StreamRetry, logger, "block_number", func() error {
		var err error
		head, err = l.chain.BlockNumber(ctx)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to get latest block: %w", err)
	}
	return head, nil
}

// dispatch handles every log of a batch and then checkpoints its last block.
// Malformed events are skipped; anything else is retried until it succeeds.
func (e *Engine) dispatch(ctx context.Context, l listener, batch ethereum.LogBatch, logger *zap.Logger) error {
	for _, log := range batch.Logs {
		if log.Removed {
			continue
		}
		err := ethereum.Retry(ctx, ethereum.StreamRetry, logger, "handle_"+string(l.query.Kind), func() error {
			return l.handle(ctx, log)
		})
		if err == nil {
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if errors.Is(err, ethereum.ErrInvalidEvent) || ethereum.IsPermanent(err) {
			logger.Warn("Skipping event",
				zap.String("tx_hash", log.TxHash.Hex()),
				zap.Uint("log_index", log.Index),
				zap.Error(err))
			metrics.ErrorsTotal.WithLabelValues("listener", "invalid_event").Inc()
			continue
		}
		return err
	}

	err := ethereum.Retry(ctx, ethereum.StreamRetry, logger, "set_checkpoint", func() error {
		return e.store.SetCheckpoint(ctx, l.chain.ChainID(), l.checkpoint, batch.ToBlock)
	})
	if err != nil {
		return fmt.Errorf("failed to save checkpoint: %w", err)
	}
	metrics.LastProcessedBlock.WithLabelValues(l.chain.Name(), l.checkpoint).Set(float64(batch.ToBlock))
	return nil
}

// reconcile periodically re-drives stuck records and publishes the pending gauge.
func (e *Engine) reconcile(ctx context.Context) {
	ticker := time.NewTicker(e.config.Relayer.ReconcileInterval)
	defer ticker.Stop()

	e.runReconciliation(ctx, false)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.runReconciliation(ctx, true)
		}
	}
}

func (e *Engine) runReconciliation(ctx context.Context, redrive bool) {
	counts, err := e.store.CountByStatus(ctx)
	if err != nil {
		e.logger.Error("Reconciliation failed", zap.Error(err))
		return
	}
	for _, s := range []transaction.Status{
		transaction.StatusWaitingFinality,
		transaction.StatusWaitingClaim,
		transaction.StatusClaimed,
		transaction.StatusFailed,
	} {
		metrics.PendingTransactions.WithLabelValues(string(s)).Set(float64(counts[s]))
	}

	if !redrive || counts[transaction.StatusWaitingFinality] == 0 {
		return
	}
	n, err := e.processor.Recover(ctx)
	if err != nil {
		e.logger.Error("Reconciliation failed", zap.Error(err))
		return
	}
	e.logger.Info("Reconciliation summary",
		zap.Int("waiting_finality", n),
		zap.Int("waiting_claim", counts[transaction.StatusWaitingClaim]))
}
