package ethereum

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	geth "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/chainsafe/token-bridge-validator/internal/metrics"
	"github.com/chainsafe/token-bridge-validator/pkg/config"
	"github.com/chainsafe/token-bridge-validator/pkg/ethereum/contracts"
)

const (
	bridgeAddr   = "0x00000000000000000000000000000000000000b1"
	registryAddr = "0x00000000000000000000000000000000000000b2"
)

// fakeBackend implements the calls the client makes; anything else panics on the nil embed.
type fakeBackend struct {
	Backend

	mu       sync.Mutex
	head     uint64
	receipts map[common.Hash]*types.Receipt
	logs     []types.Log
	queries  []geth.FilterQuery
	sent     []common.Hash
	sendErr  error
}

func newFakeBackend(head uint64) *fakeBackend {
	return &fakeBackend{head: head, receipts: map[common.Hash]*types.Receipt{}}
}

func (f *fakeBackend) ChainID(context.Context) (*big.Int, error) { return big.NewInt(11155111), nil }
func (f *fakeBackend) Close()                                    {}

func (f *fakeBackend) BlockNumber(context.Context) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.head, nil
}

func (f *fakeBackend) setHead(h uint64) {
	f.mu.Lock()
	f.head = h
	f.mu.Unlock()
}

func (f *fakeBackend) TransactionReceipt(_ context.Context, hash common.Hash) (*types.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.receipts[hash]
	if !ok {
		return nil, geth.NotFound
	}
	return r, nil
}

func (f *fakeBackend) SendTransaction(_ context.Context, tx *types.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, tx.Hash())
	return f.sendErr
}

func (f *fakeBackend) FilterLogs(_ context.Context, q geth.FilterQuery) ([]types.Log, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	var out []types.Log
	for _, l := range f.logs {
		if l.BlockNumber >= q.FromBlock.Uint64() && l.BlockNumber <= q.ToBlock.Uint64() {
			out = append(out, l)
		}
	}
	return out, nil
}

func newTestClient(t *testing.T, backend *fakeBackend) *Client {
	t.Helper()
	return newTestClientWithHeads(t, backend, nil, 5*time.Millisecond)
}

func newTestClientWithHeads(t *testing.T, backend *fakeBackend, heads Backend, pollingInterval time.Duration) *Client {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	cfg := &config.ChainConfig{
		ChainID:          1,
		Name:             "sepolia",
		RPCURL:           "http://localhost:8545",
		BridgeContract:   bridgeAddr,
		RegistryContract: registryAddr,
		PollingInterval:  pollingInterval,
		MaxBlockRange:    10,
	}
	c, err := NewClientWithBackend(context.Background(), cfg, backend, heads, key, zap.NewNop())
	require.NoError(t, err)
	return c
}

func transferLog(t *testing.T, kind string, from common.Address, targetChainID uint16, tok common.Address, amount *big.Int, block uint64) types.Log {
	t.Helper()
	parsed, err := contracts.BridgeMetaData.GetAbi()
	require.NoError(t, err)

	data, err := abi.Arguments{parsed.Events[kind].Inputs[2], parsed.Events[kind].Inputs[3]}.Pack(tok, amount)
	require.NoError(t, err)

	return types.Log{
		Address: common.HexToAddress(bridgeAddr),
		Topics: []common.Hash{
			parsed.Events[kind].ID,
			common.BytesToHash(from.Bytes()),
			common.BigToHash(big.NewInt(int64(targetChainID))),
		},
		Data:        data,
		BlockNumber: block,
		TxHash:      common.BigToHash(new(big.Int).SetUint64(block)),
	}
}

func TestConfirmations(t *testing.T) {
	assert.Equal(t, uint64(0), Confirmations(9, 10))
	assert.Equal(t, uint64(1), Confirmations(10, 10))
	assert.Equal(t, uint64(7), Confirmations(16, 10))
}

func TestWaitForConfirmations_WaitsForDepth(t *testing.T) {
	backend := newFakeBackend(100)
	c := newTestClient(t, backend)
	hash := common.HexToHash("0x01")

	done := make(chan *types.Receipt, 1)
	go func() {
		r, err := c.WaitForConfirmations(context.Background(), hash, 7)
		assert.NoError(t, err)
		done <- r
	}()

	backend.mu.Lock()
	backend.receipts[hash] = &types.Receipt{Status: types.ReceiptStatusSuccessful, BlockNumber: big.NewInt(100)}
	backend.mu.Unlock()

	select {
	case <-done:
		t.Fatal("returned before reaching confirmation depth")
	case <-time.After(50 * time.Millisecond):
	}

	backend.setHead(106)
	select {
	case r := <-done:
		assert.Equal(t, uint64(100), r.BlockNumber.Uint64())
	case <-time.After(time.Second):
		t.Fatal("did not return after reaching confirmation depth")
	}
}

func TestWaitForConfirmations_Reverted(t *testing.T) {
	backend := newFakeBackend(200)
	c := newTestClient(t, backend)
	hash := common.HexToHash("0x02")
	backend.receipts[hash] = &types.Receipt{Status: types.ReceiptStatusFailed, BlockNumber: big.NewInt(150)}

	r, err := c.WaitForConfirmations(context.Background(), hash, 7)
	require.ErrorIs(t, err, ErrTransactionReverted)
	assert.NotNil(t, r)
}

func TestWaitForConfirmations_Cancelled(t *testing.T) {
	c := newTestClient(t, newFakeBackend(1))
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.WaitForConfirmations(ctx, common.HexToHash("0x03"), 7)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDecodeTransfer(t *testing.T) {
	c := newTestClient(t, newFakeBackend(1))
	from := common.HexToAddress("0x1111111111111111111111111111111111111111")
	tok := common.HexToAddress("0x2222222222222222222222222222222222222222")

	ev, err := c.DecodeTransfer(EventLock, transferLog(t, "Lock", from, 80, tok, big.NewInt(10), 5))
	require.NoError(t, err)
	assert.Equal(t, from, ev.From)
	assert.Equal(t, tok, ev.Token)
	assert.Equal(t, uint64(80), ev.TargetChainID)
	assert.Equal(t, uint64(1), ev.ChainID)
	assert.Equal(t, int64(10), ev.Amount.Int64())
}

func TestDecodeTransfer_Invalid(t *testing.T) {
	c := newTestClient(t, newFakeBackend(1))
	from := common.HexToAddress("0x1111111111111111111111111111111111111111")
	tok := common.HexToAddress("0x2222222222222222222222222222222222222222")

	tests := []struct {
		name string
		kind EventKind
		log  types.Log
	}{
		{"zero amount", EventLock, transferLog(t, "Lock", from, 80, tok, big.NewInt(0), 5)},
		{"zero token", EventLock, transferLog(t, "Lock", from, 80, common.Address{}, big.NewInt(1), 5)},
		{"targets itself", EventLock, transferLog(t, "Lock", from, 1, tok, big.NewInt(1), 5)},
		{"wrong event", EventBurn, transferLog(t, "Lock", from, 80, tok, big.NewInt(1), 5)},
		{"not a transfer kind", EventMint, transferLog(t, "Lock", from, 80, tok, big.NewInt(1), 5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.DecodeTransfer(tt.kind, tt.log)
			assert.ErrorIs(t, err, ErrInvalidEvent)
			assert.True(t, IsPermanent(err))
		})
	}
}

func TestTransferQuery_FiltersTargetChain(t *testing.T) {
	c := newTestClient(t, newFakeBackend(1))
	q := c.TransferQuery(EventBurn, 80)

	require.Len(t, q.Topics, 3)
	assert.Nil(t, q.Topics[1])
	assert.Equal(t, common.BigToHash(big.NewInt(80)), q.Topics[2][0])
	assert.Equal(t, common.HexToAddress(bridgeAddr), q.Address)
}

type codedError struct{ code int }

func (e codedError) Error() string  { return "rpc error" }
func (e codedError) ErrorCode() int { return e.code }

var _ rpc.Error = codedError{}

func TestIsPermanent(t *testing.T) {
	assert.False(t, IsPermanent(nil))
	assert.False(t, IsPermanent(errors.New("i/o timeout")))
	assert.False(t, IsPermanent(codedError{code: -32000}))
	assert.True(t, IsPermanent(codedError{code: 3}))
	assert.True(t, IsPermanent(errors.New("execution reverted: not a validator")))
	assert.True(t, IsPermanent(ErrPermanent))
}

func TestRetry_StopsOnPermanent(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), CallRetry, zap.NewNop(), "test", func() error {
		calls++
		return ErrPermanent
	})
	assert.ErrorIs(t, err, ErrPermanent)
	assert.Equal(t, 1, calls)
}

func TestRetry_RetriesTransient(t *testing.T) {
	policy := RetryPolicy{InitialInterval: time.Millisecond, MaxInterval: time.Millisecond, MaxElapsedTime: time.Second}
	calls := 0
	err := Retry(context.Background(), policy, zap.NewNop(), "test", func() error {
		calls++
		if calls < 3 {
			return errors.New("connection refused")
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestStreamLogs_ChunksAndResumes(t *testing.T) {
	backend := newFakeBackend(25)
	c := newTestClient(t, backend)
	from := common.HexToAddress("0x1111111111111111111111111111111111111111")
	tok := common.HexToAddress("0x2222222222222222222222222222222222222222")
	backend.logs = []types.Log{
		transferLog(t, "Lock", from, 80, tok, big.NewInt(1), 3),
		transferLog(t, "Lock", from, 80, tok, big.NewInt(2), 18),
		transferLog(t, "Lock", from, 80, tok, big.NewInt(3), 30),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sink := make(chan LogBatch, 16)
	errCh := make(chan error, 1)
	go func() { errCh <- c.StreamLogs(ctx, c.TransferQuery(EventLock, 80), 1, sink) }()

	var batches []LogBatch
	for len(batches) < 3 {
		batches = append(batches, <-sink)
	}
	assert.Equal(t, LogBatch{FromBlock: 1, ToBlock: 10, Logs: backend.logs[:1]}, batches[0])
	assert.Equal(t, uint64(11), batches[1].FromBlock)
	assert.Len(t, batches[1].Logs, 1)
	assert.Equal(t, uint64(25), batches[2].ToBlock)
	assert.Empty(t, batches[2].Logs)

	backend.setHead(31)
	b := <-sink
	assert.Equal(t, uint64(26), b.FromBlock)
	require.Len(t, b.Logs, 1)
	assert.Equal(t, uint64(30), b.Logs[0].BlockNumber)

	cancel()
	assert.ErrorIs(t, <-errCh, context.Canceled)
}

// fakeSub is a head subscription the test can drop.
type fakeSub struct {
	headers chan<- *types.Header
	errCh   chan error
}

func (s *fakeSub) Err() <-chan error { return s.errCh }
func (s *fakeSub) Unsubscribe()      {}

type fakeHeads struct {
	Backend

	subscribed chan *fakeSub
}

func (f *fakeHeads) Close() {}

func (f *fakeHeads) SubscribeNewHead(_ context.Context, ch chan<- *types.Header) (geth.Subscription, error) {
	sub := &fakeSub{headers: ch, errCh: make(chan error, 1)}
	f.subscribed <- sub
	return sub, nil
}

func recv[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the stream")
		var zero T
		return zero
	}
}

func TestStreamLogs_ResubscribesAfterDroppedHeadSubscription(t *testing.T) {
	backend := newFakeBackend(5)
	heads := &fakeHeads{subscribed: make(chan *fakeSub, 4)}
	// the poll ticker never fires, so only heads move the stream forward
	c := newTestClientWithHeads(t, backend, heads, time.Hour)

	from := common.HexToAddress("0x1111111111111111111111111111111111111111")
	tok := common.HexToAddress("0x2222222222222222222222222222222222222222")
	backend.logs = []types.Log{transferLog(t, "Lock", from, 80, tok, big.NewInt(7), 10)}
	reconnects := metrics.SubscriptionReconnects.WithLabelValues("sepolia", string(EventLock))
	before := testutil.ToFloat64(reconnects)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sink := make(chan LogBatch, 16)
	errCh := make(chan error, 1)
	go func() { errCh <- c.StreamLogs(ctx, c.TransferQuery(EventLock, 80), 1, sink) }()

	first := recv(t, heads.subscribed)
	b := recv(t, sink)
	assert.Equal(t, uint64(5), b.ToBlock)
	assert.Empty(t, b.Logs)

	first.errCh <- errors.New("websocket: close 1006 (abnormal closure)")
	second := recv(t, heads.subscribed)
	assert.Equal(t, before+1, testutil.ToFloat64(reconnects))

	backend.setHead(12)
	second.headers <- &types.Header{Number: big.NewInt(12)}

	b = recv(t, sink)
	assert.Equal(t, uint64(6), b.FromBlock)
	assert.Equal(t, uint64(12), b.ToBlock)
	require.Len(t, b.Logs, 1)
	assert.Equal(t, uint64(10), b.Logs[0].BlockNumber)

	cancel()
	assert.ErrorIs(t, recv(t, errCh), context.Canceled)
}

func signedTx(t *testing.T, nonce uint64) (*types.Transaction, []byte) {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	to := common.HexToAddress(bridgeAddr)
	tx, err := types.SignNewTx(key, types.NewEIP155Signer(big.NewInt(11155111)), &types.LegacyTx{
		Nonce:    nonce,
		To:       &to,
		Gas:      3_000_000,
		GasPrice: big.NewInt(1),
	})
	require.NoError(t, err)
	raw, err := tx.MarshalBinary()
	require.NoError(t, err)
	return tx, raw
}

func TestCreatedToken_RecoversAddressOfRecordedTransaction(t *testing.T) {
	backend := newFakeBackend(40)
	backend.sendErr = errors.New("already known")
	c := newTestClient(t, backend)
	tx, raw := signedTx(t, 3)
	created := common.HexToAddress("0x0000000000000000000000000000000000000c0c")
	backend.receipts[tx.Hash()] = &types.Receipt{
		Status:      types.ReceiptStatusSuccessful,
		BlockNumber: big.NewInt(39),
		Logs: []*types.Log{{
			Topics: []common.Hash{contracts.TokenCreatedID, common.BytesToHash(created.Bytes())},
		}},
	}

	got, err := c.CreatedToken(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, created, got)
	assert.Equal(t, []common.Hash{tx.Hash()}, backend.sent)
}

func TestCreatedToken_NonceReusedElsewhere(t *testing.T) {
	backend := newFakeBackend(40)
	backend.sendErr = errors.New("nonce too low: next nonce 9, tx nonce 3")
	c := newTestClient(t, backend)
	_, raw := signedTx(t, 3)

	_, err := c.CreatedToken(context.Background(), raw)
	assert.ErrorIs(t, err, ErrTransactionDropped)
	assert.True(t, IsPermanent(err))
}

func TestCreatedToken_Malformed(t *testing.T) {
	c := newTestClient(t, newFakeBackend(1))

	_, err := c.CreatedToken(context.Background(), []byte{0x01})
	assert.ErrorIs(t, err, ErrPermanent)
}
