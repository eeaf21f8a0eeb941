// Package transaction holds the bridge transaction model and its status lifecycle.
package transaction

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// NotAvailable is the placeholder target token before resolution.
const NotAvailable = "N/A"

var (
	// ErrTransactionDoesNotExist is returned when a claim references an unknown bridge transaction.
	ErrTransactionDoesNotExist = errors.New("transaction does not exist")
	// ErrInvalidTransition is returned when a status change is not allowed by the lifecycle.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Type is the direction of the originating action.
type Type string

const (
	TypeLock Type = "LOCK"
	TypeBurn Type = "BURN"
)

// ParseType parses a case-insensitive transaction type.
func ParseType(s string) (Type, error) {
	switch Type(strings.ToUpper(s)) {
	case TypeLock:
		return TypeLock, nil
	case TypeBurn:
		return TypeBurn, nil
	default:
		return "", fmt.Errorf("unknown transaction type %q", s)
	}
}

// Status is the lifecycle state of a bridge transaction.
type Status string

const (
	StatusWaitingFinality Status = "WAITING_FINALITY"
	StatusWaitingClaim    Status = "WAITING_CLAIM"
	StatusClaimed         Status = "CLAIMED"
	StatusFailed          Status = "FAILED"
)

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == StatusClaimed || s == StatusFailed
}

var transitions = map[Status][]Status{
	StatusWaitingFinality: {StatusWaitingClaim, StatusFailed},
	StatusWaitingClaim:    {StatusClaimed},
}

// CanTransition reports whether from -> to is a legal lifecycle step.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Key is the idempotency key of a bridge transaction.
type Key struct {
	BridgeTxHash  string
	Type          Type
	SourceChainID uint64
	TargetChainID uint64
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s/%d/%d", k.Type, k.BridgeTxHash, k.SourceChainID, k.TargetChainID)
}

// BridgeTransaction is one record per bridge-initiating event.
type BridgeTransaction struct {
	ID            string
	BridgeTxHash  string
	ClaimTxHash   string
	Type          Type
	Status        Status
	From          string
	SourceChainID uint64
	TargetChainID uint64
	Amount        *big.Int
	SourceToken   string
	TargetToken   string
	Signatures    []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// New creates a record for a freshly observed Lock or Burn event.
func New(key Key, from, sourceToken string, amount *big.Int) *BridgeTransaction {
	now := time.Now().UTC()
	return &BridgeTransaction{
		BridgeTxHash:  key.BridgeTxHash,
		Type:          key.Type,
		Status:        StatusWaitingFinality,
		From:          from,
		SourceChainID: key.SourceChainID,
		TargetChainID: key.TargetChainID,
		Amount:        new(big.Int).Set(amount),
		SourceToken:   sourceToken,
		TargetToken:   NotAvailable,
		Signatures:    []string{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Key returns the idempotency key of the record.
func (t *BridgeTransaction) Key() Key {
	return Key{
		BridgeTxHash:  t.BridgeTxHash,
		Type:          t.Type,
		SourceChainID: t.SourceChainID,
		TargetChainID: t.TargetChainID,
	}
}

func (t *BridgeTransaction) transition(to Status) error {
	if !CanTransition(t.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, t.Status, to)
	}
	t.Status = to
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// MarkClaimable attaches the resolved target token and attestations.
func (t *BridgeTransaction) MarkClaimable(targetToken string, signatures []string) error {
	if err := t.transition(StatusWaitingClaim); err != nil {
		return err
	}
	t.TargetToken = targetToken
	t.Signatures = append([]string(nil), signatures...)
	return nil
}

// MarkFailed records that the originating transaction did not succeed on-chain.
func (t *BridgeTransaction) MarkFailed() error {
	return t.transition(StatusFailed)
}

// MarkClaimed records the completing claim transaction on the target chain.
func (t *BridgeTransaction) MarkClaimed(claimTxHash string) error {
	if err := t.transition(StatusClaimed); err != nil {
		return err
	}
	t.ClaimTxHash = claimTxHash
	return nil
}

// Predecessors returns the statuses a record may hold before being saved as to.
// A status is its own predecessor so that re-saving is idempotent.
func Predecessors(to Status) []Status {
	prev := []Status{to}
	for from := range transitions {
		if CanTransition(from, to) {
			prev = append(prev, from)
		}
	}
	return prev
}

// IsTxHash reports whether s is a 0x-prefixed 32-byte hex hash.
func IsTxHash(s string) bool {
	b, err := hexutil.Decode(s)
	return err == nil && len(b) == common.HashLength
}
