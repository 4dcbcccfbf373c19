package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Store    StoreConfig    `mapstructure:"store"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Session  SessionConfig  `mapstructure:"session"`
	Admin    AdminConfig    `mapstructure:"admin"`
	Ledger   LedgerConfig   `mapstructure:"ledger"`
	Transfer TransferConfig `mapstructure:"transfer"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Device   DeviceConfig   `mapstructure:"device"`
	Events   EventsConfig   `mapstructure:"events"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

// Store drivers.
const (
	StoreDriverMemory   = "memory"
	StoreDriverFile     = "file"
	StoreDriverRedis    = "redis"
	StoreDriverPostgres = "postgres"
)

// StoreConfig selects where the wallet document lives.
type StoreConfig struct {
	Driver     string `mapstructure:"driver"`      // memory, file, redis, postgres
	Path       string `mapstructure:"path"`        // file driver
	Key        string `mapstructure:"key"`         // redis driver
	DocumentID string `mapstructure:"document_id"` // postgres driver
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// SessionConfig configures the admin session token.
type SessionConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
}

// AdminConfig is used when the document carries no admin credentials.
type AdminConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type LedgerConfig struct {
	RewardAmount int64 `mapstructure:"reward_amount"`
}

type TransferConfig struct {
	SettleDelay time.Duration `mapstructure:"settle_delay"`
}

type CatalogConfig struct {
	ShuffleInterval time.Duration `mapstructure:"shuffle_interval"`
}

type DeviceConfig struct {
	DefaultOwner string `mapstructure:"default_owner"`
}

type EventsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Stream  string `mapstructure:"stream"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: MVW_ (Movie Wallet).
// Nested keys use underscore: MVW_STORE_DRIVER, MVW_SESSION_SECRET, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("store.driver", StoreDriverFile)
	v.SetDefault("store.path", "data/movie-wallet.json")
	v.SetDefault("store.key", "movieWallState")
	v.SetDefault("store.document_id", "default")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "movie_wallet")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 1)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("session.secret", "movie-wallet-dev-secret")
	v.SetDefault("session.expiry", "12h")
	v.SetDefault("session.issuer", "movie-wallet")
	v.SetDefault("admin.username", "admin")
	v.SetDefault("admin.password", "admin123")
	v.SetDefault("ledger.reward_amount", 100)
	v.SetDefault("transfer.settle_delay", "3s")
	v.SetDefault("catalog.shuffle_interval", "1h")
	v.SetDefault("device.default_owner", "Movie Wall Admin")
	v.SetDefault("events.enabled", false)
	v.SetDefault("events.stream", "ledger.events")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: MVW_STORE_DRIVER -> store.driver
	v.SetEnvPrefix("MVW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case StoreDriverMemory, StoreDriverFile, StoreDriverRedis, StoreDriverPostgres:
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if c.Ledger.RewardAmount <= 0 {
		return fmt.Errorf("ledger.reward_amount must be positive, got %d", c.Ledger.RewardAmount)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("unknown server mode %q", c.Server.Mode)
	}
	if c.Transfer.SettleDelay < 0 {
		return fmt.Errorf("transfer.settle_delay must not be negative, got %s", c.Transfer.SettleDelay)
	}
	if c.Catalog.ShuffleInterval <= 0 {
		return fmt.Errorf("catalog.shuffle_interval must be positive, got %s", c.Catalog.ShuffleInterval)
	}
	return nil
}
