package ethereum

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"
)

var (
	// ErrPermanent marks a failure that retrying cannot fix, e.g. a reverted call or a malformed request.
	ErrPermanent = errors.New("permanent chain error")
	// ErrTransactionReverted is returned when a mined transaction has a failed status.
	ErrTransactionReverted = errors.New("transaction reverted")
	// ErrTransactionDropped is returned for a signed transaction whose nonce was consumed by another one.
	ErrTransactionDropped = errors.New("transaction dropped")
	// ErrInvalidEvent is returned when a log does not decode into a well-formed event.
	ErrInvalidEvent = errors.New("invalid event")
)

// json-rpc codes that will not succeed on retry
var permanentRPCCodes = map[int]struct{}{
	-32600: {}, // invalid request
	-32601: {}, // method not found
	-32602: {}, // invalid params
	3:      {}, // execution reverted
}

// IsPermanent reports whether err should stop a retry loop.
func IsPermanent(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrPermanent) || errors.Is(err, ErrTransactionReverted) || errors.Is(err, ErrTransactionDropped) ||
		errors.Is(err, ErrInvalidEvent) || errors.Is(err, bind.ErrNoCode) {
		return true
	}
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		if _, ok := permanentRPCCodes[rpcErr.ErrorCode()]; ok {
			return true
		}
	}
	return strings.Contains(err.Error(), "execution reverted")
}

// geth and most clients answer a rebroadcast of a pooled or mined transaction with one of these
func isKnownTransaction(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "already known") || strings.Contains(msg, "known transaction")
}

func isNonceTooLow(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "nonce too low")
}

// RetryPolicy bounds the exponential backoff of one retry loop.
type RetryPolicy struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	// MaxElapsedTime of zero retries until the context is done.
	MaxElapsedTime time.Duration
}

var (
	// CallRetry is used for reads and writes that must eventually surface an error.
	CallRetry = RetryPolicy{InitialInterval: 500 * time.Millisecond, MaxInterval: 10 * time.Second, MaxElapsedTime: 2 * time.Minute}
	// StreamRetry is used by log streams that must never give up on their own.
	StreamRetry = RetryPolicy{InitialInterval: time.Second, MaxInterval: time.Minute}
)

func (p RetryPolicy) backOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.InitialInterval
	b.MaxInterval = p.MaxInterval
	b.MaxElapsedTime = p.MaxElapsedTime
	return backoff.WithContext(b, ctx)
}

// Retry runs fn until it succeeds, fails permanently, the policy gives up or ctx is done.
func Retry(ctx context.Context, policy RetryPolicy, logger *zap.Logger, op string, fn func() error) error {
	attempt := 0
	return backoff.RetryNotify(func() error {
		attempt++
		err := fn()
		if IsPermanent(err) {
			return backoff.Permanent(err)
		}
		return err
	}, policy.backOff(ctx), func(err error, next time.Duration) {
		logger.Warn("Transient chain error, retrying",
			zap.String("operation", op),
			zap.Int("attempt", attempt),
			zap.Duration("retry_in", next),
			zap.Error(err))
	})
}
