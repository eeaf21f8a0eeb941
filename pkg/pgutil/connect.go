package pgutil

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"go.uber.org/zap"

	"github.com/chainsafe/token-bridge-validator/pkg/config"
)

const (
	applicationName       = "bridge-validator"
	defaultConnectTimeout = 10 * time.Second
)

// ConnectDB opens a pooled connection to the relayer database and pings it
// within the configured connect timeout. Zero pool settings keep database/sql defaults.
func ConnectDB(ctx context.Context, cfg *config.DatabaseConfig, logger *zap.Logger) (*bun.DB, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}

	sqldb := sql.OpenDB(newConnector(cfg, timeout))
	if cfg.MaxOpenConns > 0 {
		sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqldb.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqldb.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	db := bun.NewDB(sqldb, pgdialect.New())

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database %s at %s: %w", cfg.Database, address(cfg), err)
	}

	logger.Info("Connected to database",
		zap.String("database", cfg.Database),
		zap.String("addr", address(cfg)),
		zap.Int("max_open_conns", cfg.MaxOpenConns))
	return db, nil
}

// newConnector passes credentials as options so they never need DSN escaping.
func newConnector(cfg *config.DatabaseConfig, timeout time.Duration) *pgdriver.Connector {
	return pgdriver.NewConnector(
		pgdriver.WithNetwork("tcp"),
		pgdriver.WithAddr(address(cfg)),
		pgdriver.WithUser(cfg.User),
		pgdriver.WithPassword(cfg.Password),
		pgdriver.WithDatabase(cfg.Database),
		pgdriver.WithInsecure(cfg.SSLMode == "" || cfg.SSLMode == "disable"),
		pgdriver.WithApplicationName(applicationName),
		pgdriver.WithDialTimeout(timeout),
	)
}

func address(cfg *config.DatabaseConfig) string {
	return cfg.Host + ":" + strconv.Itoa(cfg.Port)
}
