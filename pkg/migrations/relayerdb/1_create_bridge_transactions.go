package relayerdb

import (
	"context"
	"log"

	"github.com/uptrace/bun"

	mghelper "github.com/chainsafe/token-bridge-validator/pkg/pgutil/migrations"
	"github.com/chainsafe/token-bridge-validator/pkg/txstore"
)

// account history, claim matching and the recovery sweep read by these columns
var indexedColumns = []string{"from_address", "claim_tx_hash", "status"}

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		log.Println("creating bridge_transactions table...")
		if err := mghelper.CreateSchema(ctx, db, &txstore.TransactionDao{}); err != nil {
			return err
		}
		return mghelper.CreateModelIndexes(ctx, db, &txstore.TransactionDao{}, indexedColumns...)
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping bridge_transactions table...")
		if err := mghelper.DropModelIndexes(ctx, db, &txstore.TransactionDao{}, indexedColumns...); err != nil {
			return err
		}
		return mghelper.DropTables(ctx, db, &txstore.TransactionDao{})
	})
}
