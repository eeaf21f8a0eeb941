// Package relayer implements app.Runner for the validator relayer process.
package relayer

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	apphttp "github.com/chainsafe/token-bridge-validator/pkg/app/http"
	"github.com/chainsafe/token-bridge-validator/pkg/config"
	"github.com/chainsafe/token-bridge-validator/pkg/ethereum"
	"github.com/chainsafe/token-bridge-validator/pkg/pgutil"
	"github.com/chainsafe/token-bridge-validator/pkg/relayer"
	"github.com/chainsafe/token-bridge-validator/pkg/resolver"
	"github.com/chainsafe/token-bridge-validator/pkg/signer"
	tokenservice "github.com/chainsafe/token-bridge-validator/pkg/token/service"
	"github.com/chainsafe/token-bridge-validator/pkg/tokenstore"
	txservice "github.com/chainsafe/token-bridge-validator/pkg/transaction/service"
	"github.com/chainsafe/token-bridge-validator/pkg/txstore"
)

const requestTimeout = 60 * time.Second

// Server holds configuration for the relayer process.
type Server struct {
	cfg *config.Config
}

// NewServer initializes a new relayer Server.
func NewServer(cfg *config.Config) *Server {
	return &Server{cfg: cfg}
}

// Run starts the relayer engine and the HTTP server.
// It blocks until an OS shutdown signal is received or either of them fails.
func (s *Server) Run() error {
	if s.cfg == nil {
		return fmt.Errorf("nil config")
	}
	cfg := s.cfg

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting bridge validator relayer", zap.Int("chains", len(cfg.Chains)))

	key, err := parsePrivateKey(cfg.Validator.PrivateKey)
	if err != nil {
		return err
	}

	db, err := pgutil.ConnectDB(ctx, &cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("connect relayer db: %w", err)
	}
	defer func() { _ = db.Close() }()

	txStore := txstore.NewStore(db)
	tokenStore := tokenstore.NewStore(db)

	clients := make([]*ethereum.Client, 0, len(cfg.Chains))
	defer func() {
		for _, c := range clients {
			c.Close()
		}
	}()
	for i := range cfg.Chains {
		c, err := ethereum.NewClient(ctx, &cfg.Chains[i], key, logger)
		if err != nil {
			return fmt.Errorf("initialize chain %s: %w", cfg.Chains[i].Name, err)
		}
		clients = append(clients, c)
	}

	attestor := signer.NewAttestor(signer.New(key, cfg.Validator.SignatureDomain))
	logger.Info("Validator identity loaded", zap.String("address", attestor.Address().Hex()))

	var locker resolver.Locker
	if cfg.Redis.Enabled() {
		redisLocker, err := resolver.NewRedisLocker(ctx, cfg.Redis.URL, cfg.Redis.LockTTL, logger)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer func() { _ = redisLocker.Close() }()
		locker = redisLocker
		logger.Info("Distributed token resolution lock enabled")
	}

	var (
		resolverChains = make([]resolver.Chain, 0, len(clients))
		tokenChains    = make(map[uint64]tokenservice.Chain, len(clients))
		relayerChains  = make(map[uint64]relayer.Chain, len(clients))
	)
	for _, c := range clients {
		resolverChains = append(resolverChains, c)
		tokenChains[c.ChainID()] = c
		relayerChains[c.ChainID()] = c
	}

	tokens := tokenservice.NewLog(tokenservice.NewService(tokenStore, tokenChains, logger), logger)
	claims := txservice.NewLog(txservice.NewService(txStore, tokens, cfg.ChainNames(), logger), logger)

	processor := relayer.NewProcessor(
		relayerChains,
		txStore,
		resolver.New(resolverChains, attestor, locker, logger,
			resolver.WithDeployments(tokenStore),
			resolver.WithTimeout(cfg.Relayer.ReceiptTimeout)),
		attestor,
		tokens,
		relayer.ProcessorConfig{
			Confirmations:  cfg.Validator.Confirmations,
			ReceiptTimeout: cfg.Relayer.ReceiptTimeout,
		},
		logger,
	)
	engine := relayer.NewEngine(cfg, relayerChains, txStore, processor, tokens, logger)

	router := s.newRouter(engine, tokens, claims, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return engine.Run(gctx)
	})
	g.Go(func() error {
		return apphttp.ServeAndWait(gctx, router, logger, &cfg.Server)
	})

	err = g.Wait()
	logger.Info("Relayer stopped")
	return err
}

func (s *Server) newRouter(
	engine *relayer.Engine,
	tokens tokenservice.Service,
	claims txservice.Service,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Get("/ready", func(w http.ResponseWriter, _ *http.Request) {
		if !engine.IsReady() {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("NOT_READY"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	})

	if s.cfg.Monitoring.Enabled {
		r.Handle("/metrics", promhttp.Handler())
		logger.Info("Metrics enabled", zap.String("path", "/metrics"))
	}

	tokenservice.RegisterRoutes(r, tokens, logger)
	txservice.RegisterRoutes(r, claims, logger)

	return r
}

func parsePrivateKey(hexKey string) (*ecdsa.PrivateKey, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid validator private key: %w", err)
	}
	return key, nil
}
