package tokenstore

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/chainsafe/token-bridge-validator/pkg/token"
)

// SupportedTokenDao maps to the 'supported_tokens' table.
// Uniqueness is enforced on (chain_id, lower(token)) by the migration.
type SupportedTokenDao struct {
	bun.BaseModel `bun:"table:supported_tokens,alias:st"`
	ID            int64     `bun:"id,pk,autoincrement"`
	ChainID       uint64    `bun:"chain_id,notnull"`
	Token         string    `bun:"token,notnull,type:varchar(42)"`
	Name          string    `bun:"name,notnull,type:varchar(255)"`
	Symbol        string    `bun:"symbol,notnull,type:varchar(64)"`
	Decimals      uint8     `bun:"decimals,notnull,type:smallint"`
	CreatedAt     time.Time `bun:"created_at,notnull,nullzero,default:current_timestamp"`
}

func toSupportedTokenDao(t *token.SupportedToken) *SupportedTokenDao {
	return &SupportedTokenDao{
		ChainID:  t.ChainID,
		Token:    token.NormalizeAddress(t.Token),
		Name:     t.Name,
		Symbol:   t.Symbol,
		Decimals: t.Decimals,
	}
}

func toSupportedToken(dao *SupportedTokenDao) *token.SupportedToken {
	return &token.SupportedToken{
		ChainID:  dao.ChainID,
		Token:    dao.Token,
		Name:     dao.Name,
		Symbol:   dao.Symbol,
		Decimals: dao.Decimals,
	}
}
