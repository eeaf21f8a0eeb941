package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Environment variables that override secrets from the config file.
const (
	EnvValidatorPrivateKey = "VALIDATOR_PRIVATE_KEY"
	EnvDatabasePassword    = "DATABASE_PASSWORD"
)

// Config represents the validator relayer configuration
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	Validator  ValidatorConfig  `yaml:"validator"`
	Chains     []ChainConfig    `yaml:"chains" validate:"required,min=2,dive"`
	Routes     []RouteConfig    `yaml:"routes" validate:"dive"`
	Relayer    RelayerConfig    `yaml:"relayer"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `yaml:"host" default:"0.0.0.0"`
	Port            int           `yaml:"port" default:"8080" validate:"gt=0,lte=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"30s"`
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host" default:"localhost" validate:"required"`
	Port     int    `yaml:"port" default:"5432" validate:"gt=0"`
	User     string `yaml:"user" default:"postgres"`
	Password string `yaml:"password"`
	Database string `yaml:"database" default:"bridge_validator" validate:"required"`
	SSLMode  string `yaml:"ssl_mode" default:"disable" validate:"oneof=disable require verify-ca verify-full"`

	MaxOpenConns    int           `yaml:"max_open_conns" default:"20" validate:"gt=0"`
	MaxIdleConns    int           `yaml:"max_idle_conns" default:"5" validate:"gte=0,ltefield=MaxOpenConns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" default:"30m" validate:"gte=0"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout" default:"10s" validate:"gt=0"`
}

// RedisConfig enables the distributed token resolution lock when URL is set.
type RedisConfig struct {
	URL     string        `yaml:"url"`
	LockTTL time.Duration `yaml:"lock_ttl" default:"10m"`
}

// Enabled reports whether a redis URL was configured.
func (c RedisConfig) Enabled() bool {
	return c.URL != ""
}

// ValidatorConfig holds the validator identity and attestation policy.
type ValidatorConfig struct {
	PrivateKey      string `yaml:"private_key"`
	Confirmations   uint64 `yaml:"confirmations" default:"7" validate:"gte=1"`
	SignatureDomain string `yaml:"signature_domain" default:"Governance" validate:"required"`
}

// ChainConfig describes one EVM ledger the validator watches and writes to.
type ChainConfig struct {
	ChainID          uint64        `yaml:"chain_id" validate:"required,lte=65535"`
	Name             string        `yaml:"name" validate:"required"`
	RPCURL           string        `yaml:"rpc_url" validate:"required,url"`
	WSURL            string        `yaml:"ws_url" validate:"omitempty,url"`
	BridgeContract   string        `yaml:"bridge_contract" validate:"required,eth_addr"`
	RegistryContract string        `yaml:"registry_contract" validate:"required,eth_addr"`
	StartBlock       uint64        `yaml:"start_block"`
	PollingInterval  time.Duration `yaml:"polling_interval" default:"5s" validate:"gt=0"`
	MaxBlockRange    uint64        `yaml:"max_block_range" default:"2000" validate:"gt=0"`
	GasLimit         uint64        `yaml:"gas_limit" default:"3000000"`
	MaxGasPrice      string        `yaml:"max_gas_price" validate:"omitempty,numeric"`
}

// RouteConfig is one directed pair of chains the relayer serves.
type RouteConfig struct {
	SourceChainID uint64 `yaml:"source_chain_id" validate:"required"`
	TargetChainID uint64 `yaml:"target_chain_id" validate:"required,nefield=SourceChainID"`
}

// RelayerConfig contains listener and recovery settings
type RelayerConfig struct {
	ReconcileInterval time.Duration `yaml:"reconcile_interval" default:"5m" validate:"gt=0"`
	ReceiptTimeout    time.Duration `yaml:"receipt_timeout" default:"10m" validate:"gt=0"`
	EventBuffer       int           `yaml:"event_buffer" default:"128" validate:"gt=0"`
}

// MonitoringConfig contains monitoring and metrics settings
type MonitoringConfig struct {
	Enabled bool `yaml:"enabled" default:"true"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level      string `yaml:"level" default:"info"`
	Format     string `yaml:"format" default:"json" validate:"oneof=json console"`
	OutputPath string `yaml:"output_path" default:"stdout"`
	Sampling   bool   `yaml:"sampling"`
}

// Load reads configuration from a YAML file and the environment
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes raw YAML, applies defaults and environment overrides, and validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := setDefaults(&cfg); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}

	if v := os.Getenv(EnvValidatorPrivateKey); v != "" {
		cfg.Validator.PrivateKey = v
	}
	if v := os.Getenv(EnvDatabasePassword); v != "" {
		cfg.Database.Password = v
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(cfg *Config) error {
	if err := defaults.Set(cfg); err != nil {
		return err
	}
	// chain entries are defaulted individually
	for i := range cfg.Chains {
		if err := defaults.Set(&cfg.Chains[i]); err != nil {
			return err
		}
	}
	return nil
}

func validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return err
	}

	if cfg.Validator.PrivateKey == "" {
		return errors.New("validator.private_key is required")
	}

	seen := make(map[uint64]struct{}, len(cfg.Chains))
	for _, c := range cfg.Chains {
		if _, ok := seen[c.ChainID]; ok {
			return fmt.Errorf("duplicate chain_id %d", c.ChainID)
		}
		seen[c.ChainID] = struct{}{}
	}

	for _, r := range cfg.Routes {
		if _, ok := seen[r.SourceChainID]; !ok {
			return fmt.Errorf("route source chain %d is not configured", r.SourceChainID)
		}
		if _, ok := seen[r.TargetChainID]; !ok {
			return fmt.Errorf("route target chain %d is not configured", r.TargetChainID)
		}
	}

	return nil
}

// Chain returns the configuration for the given chain id.
func (c *Config) Chain(chainID uint64) (*ChainConfig, bool) {
	for i := range c.Chains {
		if c.Chains[i].ChainID == chainID {
			return &c.Chains[i], true
		}
	}
	return nil, false
}

// ChainNames maps chain ids to their configured display names.
func (c *Config) ChainNames() map[uint64]string {
	names := make(map[uint64]string, len(c.Chains))
	for _, ch := range c.Chains {
		names[ch.ChainID] = ch.Name
	}
	return names
}

// DirectedRoutes returns the configured routes, or every ordered pair of chains when none are listed.
func (c *Config) DirectedRoutes() []RouteConfig {
	if len(c.Routes) > 0 {
		return c.Routes
	}
	var routes []RouteConfig
	for _, src := range c.Chains {
		for _, dst := range c.Chains {
			if src.ChainID == dst.ChainID {
				continue
			}
			routes = append(routes, RouteConfig{SourceChainID: src.ChainID, TargetChainID: dst.ChainID})
		}
	}
	return routes
}
