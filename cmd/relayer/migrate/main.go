package main

import (
	"context"
	"flag"
	"log"

	"github.com/uptrace/bun/migrate"

	"github.com/chainsafe/token-bridge-validator/pkg/config"
	"github.com/chainsafe/token-bridge-validator/pkg/migrations/relayerdb"
	"github.com/chainsafe/token-bridge-validator/pkg/pgutil"
	mghelper "github.com/chainsafe/token-bridge-validator/pkg/pgutil/migrations"
)

func main() {
	cfgPath := flag.String("config", "config.example.yaml", "Path to configuration file")
	flag.Usage = mghelper.Usage
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("error reading configuration file: %s", err.Error())
	}

	db, err := pgutil.ConnectDB(context.Background(), &cfg.Database, nil)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	log.Printf("Running migrations for relayer database (%s)...\n", cfg.Database.Database)

	migrator := migrate.NewMigrator(db, relayerdb.Migrations)
	if err := mghelper.RunMigrations(context.Background(), migrator, flag.Args()...); err != nil {
		mghelper.Exitf("%s", err)
	}
}
