package resolver

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/chainsafe/token-bridge-validator/pkg/ethereum"
	"github.com/chainsafe/token-bridge-validator/pkg/signer"
	"github.com/chainsafe/token-bridge-validator/pkg/token"
	"github.com/chainsafe/token-bridge-validator/pkg/tokenstore"
)

type connKey struct {
	token   common.Address
	chainID uint64
}

type fakeChain struct {
	id uint64

	mu         sync.Mutex
	targets    map[connKey]common.Address
	sources    map[connKey]common.Address
	created    []string
	createAddr common.Address
	createWait time.Duration
	// minedFn runs before CreatedToken returns createAddr
	minedFn    func(ctx context.Context, raw []byte) error
	registerFn func() error
	lookupErr  error
}

func newFakeChain(id uint64) *fakeChain {
	return &fakeChain{
		id:      id,
		targets: make(map[connKey]common.Address),
		sources: make(map[connKey]common.Address),
	}
}

func (f *fakeChain) ChainID() uint64      { return f.id }
func (f *fakeChain) Name() string         { return fmt.Sprintf("chain-%d", f.id) }
func (f *fakeChain) EVMChainID() *big.Int { return new(big.Int).SetUint64(f.id) }
func (f *fakeChain) Governance(context.Context) (common.Address, error) {
	return common.HexToAddress("0x00000000000000000000000000000000000000aa"), nil
}
func (f *fakeChain) GovernanceNonce(context.Context, common.Address, common.Address) (*big.Int, error) {
	return big.NewInt(0), nil
}

func (f *fakeChain) TokenInfo(context.Context, common.Address) (token.Info, error) {
	return token.Info{Name: "Token", Symbol: "TKN", Decimals: 18}, nil
}

func (f *fakeChain) LookupTargetToken(_ context.Context, src common.Address, targetChainID uint64) (common.Address, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lookupErr != nil {
		return common.Address{}, f.lookupErr
	}
	return f.targets[connKey{src, targetChainID}], nil
}

func (f *fakeChain) LookupSourceToken(_ context.Context, wrapped common.Address, targetChainID uint64) (common.Address, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sources[connKey{wrapped, targetChainID}], nil
}

func (f *fakeChain) RegisterTargetToken(_ context.Context, src common.Address, targetChainID uint64, tgt common.Address) error {
	if f.registerFn != nil {
		if err := f.registerFn(); err != nil {
			return err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.targets[connKey{src, targetChainID}] = tgt
	return nil
}

func (f *fakeChain) SubmitCreateToken(
	_ context.Context,
	name, symbol string,
	_ [][]byte,
	record func(common.Hash, []byte) error,
) (common.Hash, error) {
	time.Sleep(f.createWait)
	f.mu.Lock()
	hash := common.BigToHash(big.NewInt(int64(len(f.created) + 1)))
	f.mu.Unlock()

	if err := record(hash, hash.Bytes()); err != nil {
		return common.Hash{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, name+"/"+symbol)
	return hash, nil
}

func (f *fakeChain) CreatedToken(ctx context.Context, raw []byte) (common.Address, error) {
	f.mu.Lock()
	mined := f.minedFn
	f.mu.Unlock()
	if mined != nil {
		if err := mined(ctx, raw); err != nil {
			return common.Address{}, err
		}
	}
	return f.createAddr, nil
}

func (f *fakeChain) createdCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created)
}

type fakeAttestor struct {
	calls atomic.Int32
}

func (a *fakeAttestor) AttestTokenCreation(context.Context, signer.Chain, string, string) ([]byte, error) {
	a.calls.Add(1)
	return make([]byte, 65), nil
}

var (
	srcToken = common.HexToAddress("0x1111111111111111111111111111111111111111")
	wrapped  = common.HexToAddress("0x2222222222222222222222222222222222222222")
)

func setup(opts ...Option) (*Resolver, *fakeChain, *fakeChain, *fakeAttestor) {
	a := newFakeChain(1)
	b := newFakeChain(2)
	b.createAddr = wrapped
	att := &fakeAttestor{}
	return New([]Chain{a, b}, att, nil, zap.NewNop(), opts...), a, b, att
}

// blockUntil holds CreatedToken until release is closed or its context ends.
func blockUntil(release <-chan struct{}) func(context.Context, []byte) error {
	return func(ctx context.Context, _ []byte) error {
		select {
		case <-release:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func TestResolveTargetToken_ExistingMapping(t *testing.T) {
	r, a, b, att := setup()
	a.targets[connKey{srcToken, 2}] = wrapped

	got, err := r.ResolveTargetToken(context.Background(), 1, srcToken, 2)
	require.NoError(t, err)
	assert.Equal(t, wrapped, got)
	assert.Zero(t, b.createdCount())
	assert.Zero(t, att.calls.Load())
}

func TestResolveTargetToken_DeploysAndRegisters(t *testing.T) {
	r, a, b, att := setup()

	got, err := r.ResolveTargetToken(context.Background(), 1, srcToken, 2)
	require.NoError(t, err)
	assert.Equal(t, wrapped, got)
	assert.Equal(t, []string{"BridgeToken/bTKN"}, b.created)
	assert.Equal(t, wrapped, a.targets[connKey{srcToken, 2}])
	assert.EqualValues(t, 1, att.calls.Load())
}

func TestResolveTargetToken_ConcurrentCallsDeployOnce(t *testing.T) {
	r, _, b, _ := setup()
	b.createWait = 50 * time.Millisecond

	var wg sync.WaitGroup
	results := make([]common.Address, 10)
	errs := make([]error, 10)
	for i := range 10 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = r.ResolveTargetToken(context.Background(), 1, srcToken, 2)
		}(i)
	}
	wg.Wait()

	for i := range 10 {
		require.NoError(t, errs[i])
		assert.Equal(t, wrapped, results[i])
	}
	assert.Equal(t, 1, b.createdCount())
}

func TestResolveTargetToken_RetryAfterRegisterFailureDoesNotRedeploy(t *testing.T) {
	r, a, b, _ := setup()
	fail := true
	a.registerFn = func() error {
		if fail {
			return errors.New("nonce too low")
		}
		return nil
	}

	_, err := r.ResolveTargetToken(context.Background(), 1, srcToken, 2)
	require.Error(t, err)
	assert.Equal(t, 1, b.createdCount())

	fail = false
	got, err := r.ResolveTargetToken(context.Background(), 1, srcToken, 2)
	require.NoError(t, err)
	assert.Equal(t, wrapped, got)
	assert.Equal(t, 1, b.createdCount())
}

func TestResolveTargetToken_LookupError(t *testing.T) {
	r, a, b, _ := setup()
	a.lookupErr = errors.New("rpc down")

	_, err := r.ResolveTargetToken(context.Background(), 1, srcToken, 2)
	require.Error(t, err)
	assert.Zero(t, b.createdCount())
}

func TestResolveTargetToken_UnknownChain(t *testing.T) {
	r, _, _, _ := setup()

	_, err := r.ResolveTargetToken(context.Background(), 1, srcToken, 9)
	assert.ErrorIs(t, err, ErrUnknownChain)
}

func TestResolveSourceToken(t *testing.T) {
	r, a, _, _ := setup()
	a.sources[connKey{wrapped, 1}] = srcToken

	got, err := r.ResolveSourceToken(context.Background(), 2, wrapped, 1)
	require.NoError(t, err)
	assert.Equal(t, srcToken, got)
}

func TestResolveSourceToken_Unmapped(t *testing.T) {
	r, _, _, _ := setup()

	_, err := r.ResolveSourceToken(context.Background(), 2, wrapped, 1)
	assert.ErrorIs(t, err, ErrUnmapped)
}

func TestResolveTargetToken_CallerCancelledWhileMiningDeploysOnce(t *testing.T) {
	r, a, b, _ := setup()
	release := make(chan struct{})
	b.minedFn = blockUntil(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := r.ResolveTargetToken(ctx, 1, srcToken, 2)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, b.createdCount())

	// the detached resolution carries on and registers the deployment
	close(release)
	require.Eventually(t, func() bool {
		got, err := a.LookupTargetToken(context.Background(), srcToken, 2)
		return err == nil && got == wrapped
	}, time.Second, 5*time.Millisecond)

	got, err := r.ResolveTargetToken(context.Background(), 1, srcToken, 2)
	require.NoError(t, err)
	assert.Equal(t, wrapped, got)
	assert.Equal(t, 1, b.createdCount())
}

func TestResolveTargetToken_WaiterKeepsItsOwnContext(t *testing.T) {
	r, _, b, _ := setup()
	release := make(chan struct{})
	b.minedFn = blockUntil(release)

	short, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	shortErr := make(chan error, 1)
	go func() {
		_, err := r.ResolveTargetToken(short, 1, srcToken, 2)
		shortErr <- err
	}()

	type result struct {
		addr common.Address
		err  error
	}
	long := make(chan result, 1)
	go func() {
		addr, err := r.ResolveTargetToken(context.Background(), 1, srcToken, 2)
		long <- result{addr, err}
	}()

	assert.ErrorIs(t, <-shortErr, context.DeadlineExceeded)
	close(release)

	res := <-long
	require.NoError(t, res.err)
	assert.Equal(t, wrapped, res.addr)
	assert.Equal(t, 1, b.createdCount())
}

func TestResolveTargetToken_RestartResumesRecordedDeployment(t *testing.T) {
	store := newMemoryDeployments()
	r, a, b, _ := setup(WithDeployments(store), WithTimeout(30*time.Millisecond))
	b.minedFn = blockUntil(make(chan struct{}))

	_, err := r.ResolveTargetToken(context.Background(), 1, srcToken, 2)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Equal(t, 1, b.createdCount())

	pending, err := store.GetDeployment(context.Background(), resolutionKey(1, srcToken, 2))
	require.NoError(t, err)
	assert.NotEmpty(t, pending.TxHash)
	assert.Empty(t, pending.WrappedToken)

	// a fresh process sharing the store sees the transaction mined
	var awaited [][]byte
	b.minedFn = func(_ context.Context, raw []byte) error {
		awaited = append(awaited, raw)
		return nil
	}
	restarted := New([]Chain{a, b}, &fakeAttestor{}, nil, zap.NewNop(), WithDeployments(store))

	got, err := restarted.ResolveTargetToken(context.Background(), 1, srcToken, 2)
	require.NoError(t, err)
	assert.Equal(t, wrapped, got)
	assert.Equal(t, 1, b.createdCount())
	require.Len(t, awaited, 1)
	assert.Equal(t, pending.RawTx, awaited[0])

	_, err = store.GetDeployment(context.Background(), resolutionKey(1, srcToken, 2))
	assert.ErrorIs(t, err, tokenstore.ErrDeploymentNotFound)
}

func TestResolveTargetToken_DroppedDeploymentIsReplaced(t *testing.T) {
	store := newMemoryDeployments()
	key := resolutionKey(1, srcToken, 2)
	require.NoError(t, store.SaveDeployment(context.Background(), &token.Deployment{
		Key:    key,
		TxHash: "0xdead",
		RawTx:  []byte{0xde, 0xad},
	}))

	r, a, b, _ := setup(WithDeployments(store))
	b.minedFn = func(_ context.Context, raw []byte) error {
		if string(raw) == string([]byte{0xde, 0xad}) {
			return fmt.Errorf("%w: 0xdead", ethereum.ErrTransactionDropped)
		}
		return nil
	}

	got, err := r.ResolveTargetToken(context.Background(), 1, srcToken, 2)
	require.NoError(t, err)
	assert.Equal(t, wrapped, got)
	assert.Equal(t, 1, b.createdCount())
	assert.Equal(t, wrapped, a.targets[connKey{srcToken, 2}])
}

func TestResolveTargetToken_RecordFailurePreventsBroadcast(t *testing.T) {
	r, _, b, _ := setup(WithDeployments(failingDeployments{}))

	_, err := r.ResolveTargetToken(context.Background(), 1, srcToken, 2)
	require.Error(t, err)
	assert.Zero(t, b.createdCount())
}

type failingDeployments struct{}

func (failingDeployments) GetDeployment(context.Context, string) (*token.Deployment, error) {
	return nil, tokenstore.ErrDeploymentNotFound
}

func (failingDeployments) SaveDeployment(context.Context, *token.Deployment) error {
	return errors.New("database is down")
}

func (failingDeployments) DeleteDeployment(context.Context, string) error { return nil }
