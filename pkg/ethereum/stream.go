package ethereum

import (
	"context"
	"fmt"
	"math/big"
	"time"

	geth "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/chainsafe/token-bridge-validator/internal/metrics"
)

// LogQuery selects the logs of one contract event.
type LogQuery struct {
	Kind    EventKind
	Address common.Address
	Topics  [][]common.Hash
}

// LogBatch is every matching log of an inclusive block range, in chain order.
// A consumer that has handled a batch may checkpoint ToBlock.
type LogBatch struct {
	FromBlock uint64
	ToBlock   uint64
	Logs      []types.Log
}

// StreamLogs delivers matching logs from fromBlock onwards until ctx is done.
// Ranges are scanned with eth_getLogs in chunks of max_block_range. New heads arrive over
// the WebSocket endpoint when one is configured and the poll ticker otherwise.
// Transient RPC failures and dropped head subscriptions are retried with backoff.
func (c *Client) StreamLogs(ctx context.Context, q LogQuery, fromBlock uint64, sink chan<- LogBatch) error {
	logger := c.logger.With(zap.String("event_type", string(q.Kind)))
	logger.Info("Starting log stream", zap.Uint64("from_block", fromBlock))

	wake := make(chan struct{}, 1)
	go c.watchHeads(ctx, q.Kind, wake, logger)

	ticker := time.NewTicker(c.config.PollingInterval)
	defer ticker.Stop()

	next := fromBlock
	for {
		var err error
		next, err = c.catchUp(ctx, q, next, sink, logger)
		if err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		case <-wake:
		}
	}
}

// catchUp scans [next, head] and returns the next block to scan.
func (c *Client) catchUp(ctx context.Context, q LogQuery, next uint64, sink chan<- LogBatch, logger *zap.Logger) (uint64, error) {
	var head uint64
	err := Retry(ctx, StreamRetry, logger, "block_number", func() error {
		var err error
		head, err = c.backend.BlockNumber(ctx)
		return err
	})
	if err != nil {
		return next, fmt.Errorf("failed to get latest block: %w", err)
	}

	for next <= head {
		to := next + c.config.MaxBlockRange - 1
		if to > head {
			to = head
		}

		var logs []types.Log
		err := Retry(ctx, StreamRetry, logger, "filter_logs", func() error {
			var err error
			logs, err = c.backend.FilterLogs(ctx, geth.FilterQuery{
				FromBlock: new(big.Int).SetUint64(next),
				ToBlock:   new(big.Int).SetUint64(to),
				Addresses: []common.Address{q.Address},
				Topics:    q.Topics,
			})
			return err
		})
		if err != nil {
			return next, fmt.Errorf("failed to filter %s logs: %w", q.Kind, err)
		}

		select {
		case sink <- LogBatch{FromBlock: next, ToBlock: to, Logs: logs}:
		case <-ctx.Done():
			return next, ctx.Err()
		}
		next = to + 1
	}
	return next, nil
}

// watchHeads nudges the stream on every new head and re-subscribes when the subscription drops.
func (c *Client) watchHeads(ctx context.Context, kind EventKind, wake chan<- struct{}, logger *zap.Logger) {
	if c.heads == nil {
		return
	}

	first := true
	for ctx.Err() == nil {
		if !first {
			metrics.SubscriptionReconnects.WithLabelValues(c.config.Name, string(kind)).Inc()
		}
		first = false

		headers := make(chan *types.Header, 16)
		var sub geth.Subscription
		err := Retry(ctx, StreamRetry, logger, "subscribe_new_head", func() error {
			var err error
			sub, err = c.heads.SubscribeNewHead(ctx, headers)
			return err
		})
		if err != nil {
			return
		}

		if err := forwardHeads(ctx, sub, headers, wake); err != nil {
			logger.Warn("Head subscription dropped, reconnecting", zap.Error(err))
		}
	}
}

func forwardHeads(ctx context.Context, sub geth.Subscription, headers <-chan *types.Header, wake chan<- struct{}) error {
	defer sub.Unsubscribe()
	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-sub.Err():
			if err == nil {
				err = fmt.Errorf("subscription closed")
			}
			return err
		case <-headers:
			select {
			case wake <- struct{}{}:
			default:
			}
		}
	}
}
