package relayerdb

import (
	"context"
	"log"

	"github.com/uptrace/bun"

	mghelper "github.com/chainsafe/token-bridge-validator/pkg/pgutil/migrations"
	"github.com/chainsafe/token-bridge-validator/pkg/tokenstore"
)

// SupportedTokenIndex keeps one row per chain and case-insensitive address.
const SupportedTokenIndex = "idx_supported_tokens_chain_token"

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		log.Println("creating supported_tokens table...")
		if err := mghelper.CreateSchema(ctx, db, &tokenstore.SupportedTokenDao{}); err != nil {
			return err
		}
		return mghelper.CreateModelUniqueExprIndex(ctx, db, &tokenstore.SupportedTokenDao{},
			SupportedTokenIndex, "chain_id", "lower(token)")
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping supported_tokens table...")
		return mghelper.DropTables(ctx, db, &tokenstore.SupportedTokenDao{})
	})
}
