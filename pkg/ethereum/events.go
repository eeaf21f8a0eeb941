package ethereum

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/chainsafe/token-bridge-validator/pkg/ethereum/contracts"
)

// EventKind names a listened contract event. It is also the checkpoint key.
type EventKind string

const (
	EventLock            EventKind = contracts.EventLock
	EventBurn            EventKind = contracts.EventBurn
	EventMint            EventKind = contracts.EventMint
	EventRelease         EventKind = contracts.EventRelease
	EventTokenConnection EventKind = contracts.EventTokenConnectionRegistered
)

// TransferEvent is a validated Lock or Burn observed on ChainID.
type TransferEvent struct {
	Kind          EventKind
	ChainID       uint64
	TargetChainID uint64
	From          common.Address
	Token         common.Address
	Amount        *big.Int
	TxHash        common.Hash
	BlockNumber   uint64
	LogIndex      uint
}

// ClaimEvent is a validated Mint or Release observed on ChainID.
type ClaimEvent struct {
	Kind        EventKind
	ChainID     uint64
	Receiver    common.Address
	Token       common.Address
	Amount      *big.Int
	TxHash      common.Hash
	BlockNumber uint64
}

// TokenConnectionEvent is a validated TokenConnectionRegistered observed on ChainID.
type TokenConnectionEvent struct {
	ChainID       uint64
	SourceToken   common.Address
	TargetToken   common.Address
	SourceChainID uint64
	TargetChainID uint64
	TxHash        common.Hash
	BlockNumber   uint64
}

func invalid(kind EventKind, log types.Log, format string, args ...any) error {
	return fmt.Errorf("%w: %s in tx %s: %s", ErrInvalidEvent, kind, log.TxHash.Hex(), fmt.Sprintf(format, args...))
}

// DecodeTransfer decodes and validates a Lock or Burn log.
func (c *Client) DecodeTransfer(kind EventKind, log types.Log) (*TransferEvent, error) {
	if kind != EventLock && kind != EventBurn {
		return nil, fmt.Errorf("%w: %s is not a transfer event", ErrInvalidEvent, kind)
	}
	ev, err := c.bridge.ParseTransfer(string(kind), log)
	if err != nil {
		return nil, invalid(kind, log, "%v", err)
	}
	switch {
	case ev.Token == (common.Address{}):
		return nil, invalid(kind, log, "zero token address")
	case ev.Amount == nil || ev.Amount.Sign() <= 0:
		return nil, invalid(kind, log, "non-positive amount")
	case ev.TargetChainId == 0 || uint64(ev.TargetChainId) == c.ChainID():
		return nil, invalid(kind, log, "bad target chain %d", ev.TargetChainId)
	}
	return &TransferEvent{
		Kind:          kind,
		ChainID:       c.ChainID(),
		TargetChainID: uint64(ev.TargetChainId),
		From:          ev.From,
		Token:         ev.Token,
		Amount:        ev.Amount,
		TxHash:        log.TxHash,
		BlockNumber:   log.BlockNumber,
		LogIndex:      log.Index,
	}, nil
}

// DecodeClaim decodes and validates a Mint or Release log.
func (c *Client) DecodeClaim(kind EventKind, log types.Log) (*ClaimEvent, error) {
	if kind != EventMint && kind != EventRelease {
		return nil, fmt.Errorf("%w: %s is not a claim event", ErrInvalidEvent, kind)
	}
	ev, err := c.bridge.ParseClaim(string(kind), log)
	if err != nil {
		return nil, invalid(kind, log, "%v", err)
	}
	if ev.Amount == nil || ev.Amount.Sign() < 0 {
		return nil, invalid(kind, log, "negative amount")
	}
	return &ClaimEvent{
		Kind:        kind,
		ChainID:     c.ChainID(),
		Receiver:    ev.Receiver,
		Token:       ev.Token,
		Amount:      ev.Amount,
		TxHash:      log.TxHash,
		BlockNumber: log.BlockNumber,
	}, nil
}

// DecodeTokenConnection decodes and validates a TokenConnectionRegistered log.
func (c *Client) DecodeTokenConnection(log types.Log) (*TokenConnectionEvent, error) {
	ev, err := c.registry.ParseTokenConnection(log)
	if err != nil {
		return nil, invalid(EventTokenConnection, log, "%v", err)
	}
	if ev.SourceToken == (common.Address{}) || ev.TargetToken == (common.Address{}) {
		return nil, invalid(EventTokenConnection, log, "zero token address")
	}
	return &TokenConnectionEvent{
		ChainID:       c.ChainID(),
		SourceToken:   ev.SourceToken,
		TargetToken:   ev.TargetToken,
		SourceChainID: uint64(ev.SourceChainId),
		TargetChainID: uint64(ev.TargetChainId),
		TxHash:        log.TxHash,
		BlockNumber:   log.BlockNumber,
	}, nil
}

// TransferQuery selects Lock or Burn logs of this chain's bridge heading to targetChainID.
func (c *Client) TransferQuery(kind EventKind, targetChainID uint64) LogQuery {
	return LogQuery{
		Kind:    kind,
		Address: c.bridge.Address(),
		Topics: [][]common.Hash{
			{c.bridge.EventID(string(kind))},
			nil,
			{common.BigToHash(new(big.Int).SetUint64(targetChainID))},
		},
	}
}

// ClaimQuery selects Mint or Release logs of this chain's bridge.
func (c *Client) ClaimQuery(kind EventKind) LogQuery {
	return LogQuery{
		Kind:    kind,
		Address: c.bridge.Address(),
		Topics:  [][]common.Hash{{c.bridge.EventID(string(kind))}},
	}
}

// TokenConnectionQuery selects TokenConnectionRegistered logs of this chain's registry.
func (c *Client) TokenConnectionQuery() LogQuery {
	return LogQuery{
		Kind:    EventTokenConnection,
		Address: c.registry.Address(),
		Topics:  [][]common.Hash{{c.registry.EventID(contracts.EventTokenConnectionRegistered)}},
	}
}
