package relayerdb

import (
	"context"
	"log"

	"github.com/uptrace/bun"

	mghelper "github.com/chainsafe/token-bridge-validator/pkg/pgutil/migrations"
	"github.com/chainsafe/token-bridge-validator/pkg/tokenstore"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		log.Println("creating token_deployments table...")
		return mghelper.CreateSchema(ctx, db, &tokenstore.DeploymentDao{})
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping token_deployments table...")
		return mghelper.DropTables(ctx, db, &tokenstore.DeploymentDao{})
	})
}
