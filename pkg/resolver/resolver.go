// Package resolver maps a source token to its wrapped counterpart on a target chain,
// deploying and registering the wrapped token when no mapping exists yet.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/chainsafe/token-bridge-validator/internal/metrics"
	"github.com/chainsafe/token-bridge-validator/pkg/ethereum"
	"github.com/chainsafe/token-bridge-validator/pkg/signer"
	"github.com/chainsafe/token-bridge-validator/pkg/token"
	"github.com/chainsafe/token-bridge-validator/pkg/tokenstore"
)

const (
	wrappedNamePrefix   = "Bridge"
	wrappedSymbolPrefix = "b"

	defaultTimeout = 10 * time.Minute
)

var (
	// ErrUnknownChain is returned for a chain id with no configured gateway.
	ErrUnknownChain = errors.New("unknown chain")
	// ErrUnmapped is returned when a wrapped token has no registered source token.
	ErrUnmapped = errors.New("token has no registered connection")
)

// Chain is the gateway surface the resolver drives.
type Chain interface {
	signer.Chain
	ChainID() uint64
	Name() string
	TokenInfo(ctx context.Context, address common.Address) (token.Info, error)
	LookupTargetToken(ctx context.Context, sourceToken common.Address, targetChainID uint64) (common.Address, error)
	LookupSourceToken(ctx context.Context, wrappedToken common.Address, targetChainID uint64) (common.Address, error)
	RegisterTargetToken(ctx context.Context, sourceToken common.Address, targetChainID uint64, targetToken common.Address) error
	SubmitCreateToken(ctx context.Context, name, symbol string, signatures [][]byte, record func(hash common.Hash, raw []byte) error) (common.Hash, error)
	CreatedToken(ctx context.Context, raw []byte) (common.Address, error)
}

// TokenCreationAttestor signs wrapped token deployments.
type TokenCreationAttestor interface {
	AttestTokenCreation(ctx context.Context, chain signer.Chain, name, symbol string) ([]byte, error)
}

// Resolver is safe for concurrent use. Resolution of one (source chain, token, target chain)
// key runs at most once at a time in this process, and under Locker across processes.
// A deployment is recorded before it is broadcast and forgotten once it is registered,
// so an interrupted resolution resumes the same deployment.
type Resolver struct {
	chains      map[uint64]Chain
	attestor    TokenCreationAttestor
	locker      Locker
	deployments tokenstore.DeploymentStore
	timeout     time.Duration
	logger      *zap.Logger

	group singleflight.Group
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithDeployments persists pending deployments in store. The default keeps them in memory.
func WithDeployments(store tokenstore.DeploymentStore) Option {
	return func(r *Resolver) {
		r.deployments = store
	}
}

// WithTimeout bounds one resolution, including waiting for a deployment to be mined.
func WithTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// New creates a resolver over the given chains. A nil locker serializes in-process only.
func New(chains []Chain, attestor TokenCreationAttestor, locker Locker, logger *zap.Logger, opts ...Option) *Resolver {
	byID := make(map[uint64]Chain, len(chains))
	for _, c := range chains {
		byID[c.ChainID()] = c
	}
	if locker == nil {
		locker = NopLocker{}
	}
	r := &Resolver{
		chains:      byID,
		attestor:    attestor,
		locker:      locker,
		deployments: newMemoryDeployments(),
		timeout:     defaultTimeout,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func resolutionKey(sourceChainID uint64, sourceToken common.Address, targetChainID uint64) string {
	return fmt.Sprintf("%d:%s:%d", sourceChainID, strings.ToLower(sourceToken.Hex()), targetChainID)
}

func (r *Resolver) chain(id uint64) (Chain, error) {
	c, ok := r.chains[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownChain, id)
	}
	return c, nil
}

// ResolveTargetToken returns the wrapped token of sourceToken on targetChainID,
// deploying and registering one if the source registry has no mapping.
// It never returns the zero address without an error.
//
// The shared resolution is detached from ctx and bounded by the resolver timeout:
// a caller giving up only stops its own wait.
func (r *Resolver) ResolveTargetToken(ctx context.Context, sourceChainID uint64, sourceToken common.Address, targetChainID uint64) (common.Address, error) {
	key := resolutionKey(sourceChainID, sourceToken, targetChainID)
	ch := r.group.DoChan(key, func() (any, error) {
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
		defer cancel()
		return r.resolveTarget(rctx, key, sourceChainID, sourceToken, targetChainID)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return common.Address{}, res.Err
		}
		return res.Val.(common.Address), nil
	case <-ctx.Done():
		return common.Address{}, ctx.Err()
	}
}

func (r *Resolver) resolveTarget(ctx context.Context, key string, sourceChainID uint64, sourceToken common.Address, targetChainID uint64) (common.Address, error) {
	src, err := r.chain(sourceChainID)
	if err != nil {
		return common.Address{}, err
	}
	dst, err := r.chain(targetChainID)
	if err != nil {
		return common.Address{}, err
	}

	unlock, err := r.locker.Lock(ctx, key)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to acquire resolution lock: %w", err)
	}
	defer unlock()

	logger := r.logger.With(
		zap.String("token", sourceToken.Hex()),
		zap.Uint64("source_chain_id", sourceChainID),
		zap.Uint64("target_chain_id", targetChainID))

	existing, err := src.LookupTargetToken(ctx, sourceToken, targetChainID)
	if err != nil {
		return common.Address{}, err
	}
	if existing != (common.Address{}) {
		r.forget(ctx, key, logger)
		return existing, nil
	}

	wrapped, err := r.resume(ctx, key, dst, logger)
	if err != nil {
		return common.Address{}, err
	}
	if wrapped == (common.Address{}) {
		wrapped, err = r.deploy(ctx, key, src, dst, sourceToken, targetChainID, logger)
		if err != nil {
			return common.Address{}, err
		}
	}

	if err := src.RegisterTargetToken(ctx, sourceToken, targetChainID, wrapped); err != nil {
		return common.Address{}, fmt.Errorf("failed to register wrapped token %s: %w", wrapped.Hex(), err)
	}
	logger.Info("Registered token connection", zap.String("wrapped_token", wrapped.Hex()))

	r.forget(ctx, key, logger)
	return wrapped, nil
}

// resume returns the wrapped token of a recorded deployment, waiting for it to be mined
// when needed. It returns the zero address when nothing usable is recorded.
func (r *Resolver) resume(ctx context.Context, key string, dst Chain, logger *zap.Logger) (common.Address, error) {
	d, err := r.deployments.GetDeployment(ctx, key)
	if errors.Is(err, tokenstore.ErrDeploymentNotFound) {
		return common.Address{}, nil
	}
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to read pending deployment: %w", err)
	}
	if d.WrappedToken != "" {
		return common.HexToAddress(d.WrappedToken), nil
	}

	logger = logger.With(zap.String("tx_hash", d.TxHash))
	logger.Info("Resuming wrapped token deployment")

	wrapped, err := dst.CreatedToken(ctx, d.RawTx)
	switch {
	case errors.Is(err, ethereum.ErrTransactionReverted), errors.Is(err, ethereum.ErrTransactionDropped):
		logger.Warn("Recorded wrapped token deployment will never succeed, deploying again", zap.Error(err))
		if err := r.deployments.DeleteDeployment(ctx, key); err != nil {
			return common.Address{}, err
		}
		return common.Address{}, nil
	case err != nil:
		return common.Address{}, fmt.Errorf("failed to await wrapped token deployment %s: %w", d.TxHash, err)
	}
	return r.deployed(ctx, d, dst, wrapped, logger)
}

func (r *Resolver) deploy(
	ctx context.Context,
	key string,
	src, dst Chain,
	sourceToken common.Address,
	targetChainID uint64,
	logger *zap.Logger,
) (common.Address, error) {
	info, err := src.TokenInfo(ctx, sourceToken)
	if err != nil {
		return common.Address{}, err
	}
	name := wrappedNamePrefix + info.Name
	symbol := wrappedSymbolPrefix + info.Symbol

	sig, err := r.attestor.AttestTokenCreation(ctx, dst, name, symbol)
	if err != nil {
		return common.Address{}, err
	}

	logger.Info("No wrapped token registered, deploying one",
		zap.String("name", name),
		zap.String("symbol", symbol))

	d := &token.Deployment{
		Key:           key,
		SourceChainID: src.ChainID(),
		SourceToken:   sourceToken.Hex(),
		TargetChainID: targetChainID,
	}
	_, err = dst.SubmitCreateToken(ctx, name, symbol, [][]byte{sig}, func(hash common.Hash, raw []byte) error {
		d.TxHash = hash.Hex()
		d.RawTx = raw
		return r.deployments.SaveDeployment(ctx, d)
	})
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to create wrapped token: %w", err)
	}

	wrapped, err := dst.CreatedToken(ctx, d.RawTx)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to create wrapped token: %w", err)
	}
	return r.deployed(ctx, d, dst, wrapped, logger)
}

// deployed records the mined address of d so a failed registration is retried without a redeploy.
func (r *Resolver) deployed(ctx context.Context, d *token.Deployment, dst Chain, wrapped common.Address, logger *zap.Logger) (common.Address, error) {
	if wrapped == (common.Address{}) {
		return common.Address{}, fmt.Errorf("token factory returned the zero address")
	}
	metrics.WrappedTokensCreated.WithLabelValues(dst.Name()).Inc()
	logger.Info("Wrapped token deployed", zap.String("wrapped_token", wrapped.Hex()))

	d.WrappedToken = wrapped.Hex()
	if err := r.deployments.SaveDeployment(ctx, d); err != nil {
		// the recorded transaction still leads back to this address
		logger.Warn("Failed to record deployed wrapped token", zap.Error(err))
	}
	return wrapped, nil
}

func (r *Resolver) forget(ctx context.Context, key string, logger *zap.Logger) {
	if err := r.deployments.DeleteDeployment(ctx, key); err != nil {
		logger.Warn("Failed to clear pending deployment", zap.Error(err))
	}
}

// ResolveSourceToken returns the original token behind wrappedToken burned on burnChainID
// for release on homeChainID. The mapping lives in the home chain's registry, where the
// wrapped token was registered when it was first deployed.
func (r *Resolver) ResolveSourceToken(ctx context.Context, burnChainID uint64, wrappedToken common.Address, homeChainID uint64) (common.Address, error) {
	if _, err := r.chain(burnChainID); err != nil {
		return common.Address{}, err
	}
	home, err := r.chain(homeChainID)
	if err != nil {
		return common.Address{}, err
	}

	original, err := home.LookupSourceToken(ctx, wrappedToken, homeChainID)
	if err != nil {
		return common.Address{}, err
	}
	if original == (common.Address{}) {
		return common.Address{}, fmt.Errorf("%w: %s on chain %d", ErrUnmapped, wrappedToken.Hex(), burnChainID)
	}
	return original, nil
}
