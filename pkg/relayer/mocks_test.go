package relayer

import (
	"context"
	"fmt"
	"math/big"
	"slices"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/chainsafe/token-bridge-validator/pkg/ethereum"
	"github.com/chainsafe/token-bridge-validator/pkg/signer"
	"github.com/chainsafe/token-bridge-validator/pkg/token"
	"github.com/chainsafe/token-bridge-validator/pkg/transaction"
	"github.com/chainsafe/token-bridge-validator/pkg/txstore"
)

// MockChain is a function-field implementation of Chain
type MockChain struct {
	ID uint64

	BlockNumberFunc           func(ctx context.Context) (uint64, error)
	StreamLogsFunc            func(ctx context.Context, q ethereum.LogQuery, fromBlock uint64, sink chan<- ethereum.LogBatch) error
	WaitForConfirmationsFunc  func(ctx context.Context, txHash common.Hash, n uint64) (*types.Receipt, error)
	DecodeTransferFunc        func(kind ethereum.EventKind, log types.Log) (*ethereum.TransferEvent, error)
	DecodeClaimFunc           func(kind ethereum.EventKind, log types.Log) (*ethereum.ClaimEvent, error)
	DecodeTokenConnectionFunc func(log types.Log) (*ethereum.TokenConnectionEvent, error)
}

func (m *MockChain) ChainID() uint64 { return m.ID }

func (m *MockChain) Name() string { return fmt.Sprintf("chain-%d", m.ID) }

func (m *MockChain) EVMChainID() *big.Int { return new(big.Int).SetUint64(m.ID) }

func (m *MockChain) Governance(context.Context) (common.Address, error) {
	return common.HexToAddress("0x00000000000000000000000000000000000000aa"), nil
}

func (m *MockChain) GovernanceNonce(context.Context, common.Address, common.Address) (*big.Int, error) {
	return big.NewInt(0), nil
}

func (m *MockChain) BlockNumber(ctx context.Context) (uint64, error) {
	if m.BlockNumberFunc != nil {
		return m.BlockNumberFunc(ctx)
	}
	return 0, nil
}

func (m *MockChain) StreamLogs(ctx context.Context, q ethereum.LogQuery, fromBlock uint64, sink chan<- ethereum.LogBatch) error {
	if m.StreamLogsFunc != nil {
		return m.StreamLogsFunc(ctx, q, fromBlock, sink)
	}
	<-ctx.Done()
	return ctx.Err()
}

func (m *MockChain) WaitForConfirmations(ctx context.Context, txHash common.Hash, n uint64) (*types.Receipt, error) {
	if m.WaitForConfirmationsFunc != nil {
		return m.WaitForConfirmationsFunc(ctx, txHash, n)
	}
	return &types.Receipt{Status: types.ReceiptStatusSuccessful, BlockNumber: big.NewInt(1)}, nil
}

func (m *MockChain) TransferQuery(kind ethereum.EventKind, targetChainID uint64) ethereum.LogQuery {
	return ethereum.LogQuery{Kind: kind, Topics: [][]common.Hash{nil, nil, {common.BigToHash(new(big.Int).SetUint64(targetChainID))}}}
}

func (m *MockChain) ClaimQuery(kind ethereum.EventKind) ethereum.LogQuery {
	return ethereum.LogQuery{Kind: kind}
}

func (m *MockChain) TokenConnectionQuery() ethereum.LogQuery {
	return ethereum.LogQuery{Kind: ethereum.EventTokenConnection}
}

func (m *MockChain) DecodeTransfer(kind ethereum.EventKind, log types.Log) (*ethereum.TransferEvent, error) {
	if m.DecodeTransferFunc != nil {
		return m.DecodeTransferFunc(kind, log)
	}
	return nil, ethereum.ErrInvalidEvent
}

func (m *MockChain) DecodeClaim(kind ethereum.EventKind, log types.Log) (*ethereum.ClaimEvent, error) {
	if m.DecodeClaimFunc != nil {
		return m.DecodeClaimFunc(kind, log)
	}
	return nil, ethereum.ErrInvalidEvent
}

func (m *MockChain) DecodeTokenConnection(log types.Log) (*ethereum.TokenConnectionEvent, error) {
	if m.DecodeTokenConnectionFunc != nil {
		return m.DecodeTokenConnectionFunc(log)
	}
	return nil, ethereum.ErrInvalidEvent
}

// MockStore is an in-memory Store enforcing the idempotency key and status guard
type MockStore struct {
	mu          sync.Mutex
	txs         map[transaction.Key]*transaction.BridgeTransaction
	checkpoints map[string]uint64
	creates     int
}

func NewMockStore() *MockStore {
	return &MockStore{
		txs:         make(map[transaction.Key]*transaction.BridgeTransaction),
		checkpoints: make(map[string]uint64),
	}
}

func normKey(k transaction.Key) transaction.Key {
	k.BridgeTxHash = strings.ToLower(k.BridgeTxHash)
	return k
}

func clone(tx *transaction.BridgeTransaction) *transaction.BridgeTransaction {
	c := *tx
	c.Amount = new(big.Int).Set(tx.Amount)
	c.Signatures = slices.Clone(tx.Signatures)
	return &c
}

func (s *MockStore) Create(_ context.Context, tx *transaction.BridgeTransaction) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creates++
	k := normKey(tx.Key())
	if _, ok := s.txs[k]; ok {
		return false, nil
	}
	s.txs[k] = clone(tx)
	return true, nil
}

func (s *MockStore) Update(_ context.Context, tx *transaction.BridgeTransaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.txs[normKey(tx.Key())]
	if !ok {
		return txstore.ErrTransactionNotFound
	}
	if !slices.Contains(transaction.Predecessors(tx.Status), cur.Status) {
		return txstore.ErrStaleUpdate
	}
	s.txs[normKey(tx.Key())] = clone(tx)
	return nil
}

func (s *MockStore) FindByClaimTxHash(_ context.Context, claimTxHash string, txType transaction.Type, targetChainID uint64) (*transaction.BridgeTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, tx := range s.txs {
		if strings.EqualFold(tx.ClaimTxHash, claimTxHash) && tx.Type == txType && tx.TargetChainID == targetChainID {
			return clone(tx), nil
		}
	}
	return nil, txstore.ErrTransactionNotFound
}

func (s *MockStore) ListByStatus(_ context.Context, status transaction.Status) ([]*transaction.BridgeTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*transaction.BridgeTransaction
	for _, tx := range s.txs {
		if tx.Status == status {
			out = append(out, clone(tx))
		}
	}
	return out, nil
}

func (s *MockStore) CountByStatus(context.Context) (map[transaction.Status]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[transaction.Status]int)
	for _, tx := range s.txs {
		out[tx.Status]++
	}
	return out, nil
}

func (s *MockStore) GetCheckpoint(_ context.Context, chainID uint64, eventKind string) (uint64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.checkpoints[fmt.Sprintf("%d/%s", chainID, eventKind)]
	return b, ok, nil
}

func (s *MockStore) SetCheckpoint(_ context.Context, chainID uint64, eventKind string, block uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkpoints[fmt.Sprintf("%d/%s", chainID, eventKind)] = block
	return nil
}

func (s *MockStore) get(k transaction.Key) *transaction.BridgeTransaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, ok := s.txs[normKey(k)]
	if !ok {
		return nil
	}
	return clone(tx)
}

func (s *MockStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.txs)
}

func (s *MockStore) put(tx *transaction.BridgeTransaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txs[normKey(tx.Key())] = clone(tx)
}

// MockResolver is a function-field implementation of Resolver
type MockResolver struct {
	ResolveTargetTokenFunc func(ctx context.Context, sourceChainID uint64, sourceToken common.Address, targetChainID uint64) (common.Address, error)
	ResolveSourceTokenFunc func(ctx context.Context, burnChainID uint64, wrappedToken common.Address, homeChainID uint64) (common.Address, error)
}

func (m *MockResolver) ResolveTargetToken(ctx context.Context, sourceChainID uint64, sourceToken common.Address, targetChainID uint64) (common.Address, error) {
	if m.ResolveTargetTokenFunc != nil {
		return m.ResolveTargetTokenFunc(ctx, sourceChainID, sourceToken, targetChainID)
	}
	return common.Address{}, fmt.Errorf("unexpected ResolveTargetToken")
}

func (m *MockResolver) ResolveSourceToken(ctx context.Context, burnChainID uint64, wrappedToken common.Address, homeChainID uint64) (common.Address, error) {
	if m.ResolveSourceTokenFunc != nil {
		return m.ResolveSourceTokenFunc(ctx, burnChainID, wrappedToken, homeChainID)
	}
	return common.Address{}, fmt.Errorf("unexpected ResolveSourceToken")
}

// MockAttestor counts issued signatures
type MockAttestor struct {
	mu    sync.Mutex
	calls []common.Address

	AttestAllowanceFunc func(ctx context.Context, chain signer.Chain, receiver common.Address, amount *big.Int, token common.Address) (string, error)
}

func (m *MockAttestor) AttestAllowance(ctx context.Context, chain signer.Chain, receiver common.Address, amount *big.Int, token common.Address) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, token)
	m.mu.Unlock()
	if m.AttestAllowanceFunc != nil {
		return m.AttestAllowanceFunc(ctx, chain, receiver, amount, token)
	}
	return "0xsig", nil
}

func (m *MockAttestor) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// MockTokens records cache requests
type MockTokens struct {
	mu       sync.Mutex
	requests []string
}

func (m *MockTokens) EnsureTokenIsSupported(_ context.Context, chainID uint64, address string) (*token.SupportedToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, fmt.Sprintf("%d/%s", chainID, address))
	return &token.SupportedToken{ChainID: chainID, Token: address}, nil
}

func (m *MockTokens) seen() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.requests)
}
