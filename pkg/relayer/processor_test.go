package relayer

import (
	"context"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/chainsafe/token-bridge-validator/pkg/ethereum"
	"github.com/chainsafe/token-bridge-validator/pkg/transaction"
)

var (
	alice        = common.HexToAddress("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC")
	homeToken    = common.HexToAddress("0x59F2f1fCfE2474fD5F0b9BA1E73ca90b143Eb8d0")
	wrappedToken = common.HexToAddress("0x8464135c8F25Da09e49BC8782676a84730C318bC")
	lockHash     = common.HexToHash("0x01")
)

type harness struct {
	chainA, chainB *MockChain
	store          *MockStore
	resolver       *MockResolver
	attestor       *MockAttestor
	tokens         *MockTokens
	processor      *Processor
}

func newHarness() *harness {
	h := &harness{
		chainA:   &MockChain{ID: 4},
		chainB:   &MockChain{ID: 3},
		store:    NewMockStore(),
		attestor: &MockAttestor{},
		tokens:   &MockTokens{},
		resolver: &MockResolver{
			ResolveTargetTokenFunc: func(context.Context, uint64, common.Address, uint64) (common.Address, error) {
				return wrappedToken, nil
			},
			ResolveSourceTokenFunc: func(context.Context, uint64, common.Address, uint64) (common.Address, error) {
				return homeToken, nil
			},
		},
	}
	h.processor = NewProcessor(
		map[uint64]Chain{4: h.chainA, 3: h.chainB},
		h.store, h.resolver, h.attestor, h.tokens,
		ProcessorConfig{Confirmations: 7, ReceiptTimeout: time.Minute},
		zap.NewNop())
	return h
}

func lockEvent() *ethereum.TransferEvent {
	return &ethereum.TransferEvent{
		Kind:          ethereum.EventLock,
		ChainID:       4,
		TargetChainID: 3,
		From:          alice,
		Token:         homeToken,
		Amount:        big.NewInt(10),
		TxHash:        lockHash,
		BlockNumber:   100,
	}
}

func lockKey() transaction.Key {
	return transaction.Key{BridgeTxHash: lockHash.Hex(), Type: transaction.TypeLock, SourceChainID: 4, TargetChainID: 3}
}

func TestProcessor_HappyPathLock(t *testing.T) {
	h := newHarness()
	var gotConfirmations uint64
	h.chainA.WaitForConfirmationsFunc = func(_ context.Context, hash common.Hash, n uint64) (*types.Receipt, error) {
		gotConfirmations = n
		return &types.Receipt{Status: types.ReceiptStatusSuccessful, BlockNumber: big.NewInt(100)}, nil
	}

	require.NoError(t, h.processor.HandleTransfer(context.Background(), lockEvent()))
	h.processor.Wait()

	tx := h.store.get(lockKey())
	require.NotNil(t, tx)
	assert.Equal(t, transaction.StatusWaitingClaim, tx.Status)
	assert.Equal(t, wrappedToken.Hex(), tx.TargetToken)
	assert.Equal(t, []string{"0xsig"}, tx.Signatures)
	assert.Equal(t, uint64(7), gotConfirmations)
	assert.Equal(t, 1, h.attestor.count())
	assert.Contains(t, h.tokens.seen(), "4/"+homeToken.Hex())
}

func TestProcessor_DuplicateDeliveryIsIgnored(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	require.NoError(t, h.processor.HandleTransfer(ctx, lockEvent()))
	h.processor.Wait()
	require.NoError(t, h.processor.HandleTransfer(ctx, lockEvent()))
	h.processor.Wait()

	assert.Equal(t, 1, h.store.count())
	assert.Equal(t, 1, h.attestor.count())
}

func TestProcessor_FinalityGate(t *testing.T) {
	h := newHarness()
	release := make(chan struct{})
	h.chainA.WaitForConfirmationsFunc = func(ctx context.Context, _ common.Hash, _ uint64) (*types.Receipt, error) {
		select {
		case <-release:
			return &types.Receipt{Status: types.ReceiptStatusSuccessful, BlockNumber: big.NewInt(100)}, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	require.NoError(t, h.processor.HandleTransfer(context.Background(), lockEvent()))

	time.Sleep(50 * time.Millisecond)
	tx := h.store.get(lockKey())
	require.NotNil(t, tx)
	assert.Equal(t, transaction.StatusWaitingFinality, tx.Status)
	assert.Equal(t, transaction.NotAvailable, tx.TargetToken)
	assert.Zero(t, h.attestor.count())

	close(release)
	h.processor.Wait()
	assert.Equal(t, transaction.StatusWaitingClaim, h.store.get(lockKey()).Status)
}

func TestProcessor_RevertedLockFails(t *testing.T) {
	h := newHarness()
	h.chainA.WaitForConfirmationsFunc = func(context.Context, common.Hash, uint64) (*types.Receipt, error) {
		return nil, ethereum.ErrTransactionReverted
	}
	h.resolver.ResolveTargetTokenFunc = func(context.Context, uint64, common.Address, uint64) (common.Address, error) {
		t.Error("resolver must not run for a reverted transaction")
		return common.Address{}, nil
	}

	require.NoError(t, h.processor.HandleTransfer(context.Background(), lockEvent()))
	h.processor.Wait()

	tx := h.store.get(lockKey())
	assert.Equal(t, transaction.StatusFailed, tx.Status)
	assert.Empty(t, tx.Signatures)
	assert.Zero(t, h.attestor.count())
}

func TestProcessor_BurnResolvesHomeToken(t *testing.T) {
	h := newHarness()
	var mu sync.Mutex
	var args []uint64
	h.resolver.ResolveTargetTokenFunc = nil
	h.resolver.ResolveSourceTokenFunc = func(_ context.Context, burnChainID uint64, wrapped common.Address, homeChainID uint64) (common.Address, error) {
		mu.Lock()
		args = []uint64{burnChainID, homeChainID}
		mu.Unlock()
		assert.Equal(t, wrappedToken, wrapped)
		return homeToken, nil
	}

	ev := &ethereum.TransferEvent{
		Kind:          ethereum.EventBurn,
		ChainID:       3,
		TargetChainID: 4,
		From:          alice,
		Token:         wrappedToken,
		Amount:        big.NewInt(5),
		TxHash:        common.HexToHash("0x02"),
	}
	require.NoError(t, h.processor.HandleTransfer(context.Background(), ev))
	h.processor.Wait()

	tx := h.store.get(transaction.Key{BridgeTxHash: ev.TxHash.Hex(), Type: transaction.TypeBurn, SourceChainID: 3, TargetChainID: 4})
	require.NotNil(t, tx)
	assert.Equal(t, transaction.StatusWaitingClaim, tx.Status)
	assert.Equal(t, homeToken.Hex(), tx.TargetToken)
	assert.Equal(t, []uint64{3, 4}, args)
}

func TestProcessor_ResolutionFailureLeavesRecordWaiting(t *testing.T) {
	h := newHarness()
	h.resolver.ResolveTargetTokenFunc = func(context.Context, uint64, common.Address, uint64) (common.Address, error) {
		return common.Address{}, assert.AnError
	}

	require.NoError(t, h.processor.HandleTransfer(context.Background(), lockEvent()))
	h.processor.Wait()

	assert.Equal(t, transaction.StatusWaitingFinality, h.store.get(lockKey()).Status)
	assert.Zero(t, h.attestor.count())

	h.resolver.ResolveTargetTokenFunc = func(context.Context, uint64, common.Address, uint64) (common.Address, error) {
		return wrappedToken, nil
	}
	n, err := h.processor.Recover(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	h.processor.Wait()

	assert.Equal(t, transaction.StatusWaitingClaim, h.store.get(lockKey()).Status)
}

func TestProcessor_GuardRunsOncePerRecord(t *testing.T) {
	h := newHarness()
	release := make(chan struct{})
	var mu sync.Mutex
	waits := 0
	h.chainA.WaitForConfirmationsFunc = func(context.Context, common.Hash, uint64) (*types.Receipt, error) {
		mu.Lock()
		waits++
		mu.Unlock()
		<-release
		return &types.Receipt{Status: types.ReceiptStatusSuccessful, BlockNumber: big.NewInt(1)}, nil
	}

	require.NoError(t, h.processor.HandleTransfer(context.Background(), lockEvent()))
	for range 3 {
		_, err := h.processor.Recover(context.Background())
		require.NoError(t, err)
	}
	close(release)
	h.processor.Wait()

	assert.Equal(t, 1, waits)
	assert.Equal(t, 1, h.attestor.count())
}

func TestProcessor_ShutdownLeavesRecordWaiting(t *testing.T) {
	h := newHarness()
	h.chainA.WaitForConfirmationsFunc = func(ctx context.Context, _ common.Hash, _ uint64) (*types.Receipt, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, h.processor.HandleTransfer(ctx, lockEvent()))
	cancel()
	h.processor.Wait()

	assert.Equal(t, transaction.StatusWaitingFinality, h.store.get(lockKey()).Status)
}
