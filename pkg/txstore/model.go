package txstore

import (
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/chainsafe/token-bridge-validator/pkg/transaction"
)

// TransactionDao maps to the 'bridge_transactions' table.
// The bridge_tx_key unique group is the idempotency key.
type TransactionDao struct {
	bun.BaseModel `bun:"table:bridge_transactions,alias:bt"`
	ID            uuid.UUID `bun:"id,pk,type:uuid"`
	BridgeTxHash  string    `bun:"bridge_tx_hash,notnull,type:varchar(66),unique:bridge_tx_key"`
	Type          string    `bun:"type,notnull,type:varchar(8),unique:bridge_tx_key"`
	SourceChainID uint64    `bun:"source_chain_id,notnull,unique:bridge_tx_key"`
	TargetChainID uint64    `bun:"target_chain_id,notnull,unique:bridge_tx_key"`
	ClaimTxHash   *string   `bun:"claim_tx_hash,type:varchar(66)"`
	Status        string    `bun:"status,notnull,type:varchar(20)"`
	FromAddress   string    `bun:"from_address,notnull,type:varchar(42)"`
	Amount        string    `bun:"amount,notnull,type:numeric(78,0)"`
	SourceToken   string    `bun:"source_token,notnull,type:varchar(42)"`
	TargetToken   string    `bun:"target_token,notnull,type:varchar(42)"`
	Signatures    []string  `bun:"signatures,array,type:text[]"`
	CreatedAt     time.Time `bun:"created_at,notnull,nullzero,default:current_timestamp"`
	UpdatedAt     time.Time `bun:"updated_at,notnull,nullzero,default:current_timestamp"`
}

// ChainStateDao maps to the 'chain_state' table. One row per chain and listened event kind.
type ChainStateDao struct {
	bun.BaseModel `bun:"table:chain_state,alias:cs"`
	ChainID       uint64    `bun:"chain_id,pk"`
	EventKind     string    `bun:"event_kind,pk,type:varchar(32)"`
	LastBlock     uint64    `bun:"last_block,notnull"`
	UpdatedAt     time.Time `bun:"updated_at,notnull,nullzero,default:current_timestamp"`
}

func toTransactionDao(tx *transaction.BridgeTransaction) *TransactionDao {
	dao := &TransactionDao{
		BridgeTxHash:  tx.BridgeTxHash,
		Type:          string(tx.Type),
		SourceChainID: tx.SourceChainID,
		TargetChainID: tx.TargetChainID,
		Status:        string(tx.Status),
		FromAddress:   tx.From,
		Amount:        "0",
		SourceToken:   tx.SourceToken,
		TargetToken:   tx.TargetToken,
		Signatures:    tx.Signatures,
		CreatedAt:     tx.CreatedAt,
		UpdatedAt:     tx.UpdatedAt,
	}
	if id, err := uuid.Parse(tx.ID); err == nil {
		dao.ID = id
	} else {
		dao.ID = uuid.New()
	}
	if tx.Amount != nil {
		dao.Amount = tx.Amount.String()
	}
	if tx.ClaimTxHash != "" {
		dao.ClaimTxHash = &tx.ClaimTxHash
	}
	if dao.Signatures == nil {
		dao.Signatures = []string{}
	}
	return dao
}

func toTransaction(dao *TransactionDao) (*transaction.BridgeTransaction, error) {
	amount, ok := new(big.Int).SetString(dao.Amount, 10)
	if !ok {
		return nil, fmt.Errorf("invalid stored amount %q for %s", dao.Amount, dao.BridgeTxHash)
	}

	tx := &transaction.BridgeTransaction{
		ID:            dao.ID.String(),
		BridgeTxHash:  dao.BridgeTxHash,
		Type:          transaction.Type(dao.Type),
		Status:        transaction.Status(dao.Status),
		From:          dao.FromAddress,
		SourceChainID: dao.SourceChainID,
		TargetChainID: dao.TargetChainID,
		Amount:        amount,
		SourceToken:   dao.SourceToken,
		TargetToken:   dao.TargetToken,
		Signatures:    dao.Signatures,
		CreatedAt:     dao.CreatedAt,
		UpdatedAt:     dao.UpdatedAt,
	}
	if dao.ClaimTxHash != nil {
		tx.ClaimTxHash = *dao.ClaimTxHash
	}
	if tx.Signatures == nil {
		tx.Signatures = []string{}
	}
	return tx, nil
}

func toTransactions(daos []TransactionDao) ([]*transaction.BridgeTransaction, error) {
	txs := make([]*transaction.BridgeTransaction, 0, len(daos))
	for i := range daos {
		tx, err := toTransaction(&daos[i])
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, nil
}
