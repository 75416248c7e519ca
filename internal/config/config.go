package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/feral-file/ff-yield-ledger/internal/domain"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug       bool   `mapstructure:"debug"`
	SentryDSN   string `mapstructure:"sentry_dsn"`
	Environment string `mapstructure:"environment"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	ConsumerName   string        `mapstructure:"consumer_name"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
	AckWait        time.Duration `mapstructure:"ack_wait"`
	MaxDeliver     int           `mapstructure:"max_deliver"`
}

// TemporalConfig holds Temporal configuration
type TemporalConfig struct {
	HostPort                           string  `mapstructure:"host_port"`
	Namespace                          string  `mapstructure:"namespace"`
	CommissionTaskQueue                string  `mapstructure:"commission_task_queue"`
	MaxConcurrentActivityExecutionSize int     `mapstructure:"max_concurrent_activity_execution_size"`
	WorkerActivitiesPerSecond          float64 `mapstructure:"worker_activities_per_second"`
	MaxConcurrentActivityTaskPollers   int     `mapstructure:"max_concurrent_activity_task_pollers"`
}

// RedisConfig holds the balance cache configuration. An empty Addr disables the cache.
type RedisConfig struct {
	Addr       string        `mapstructure:"addr"`
	Password   string        `mapstructure:"password"`
	DB         int           `mapstructure:"db"`
	BalanceTTL time.Duration `mapstructure:"balance_ttl"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string          `mapstructure:"host"`
	Port         int             `mapstructure:"port"`
	ReadTimeout  int             `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int             `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int             `mapstructure:"idle_timeout"`  // in seconds
	RateLimit    RateLimitConfig `mapstructure:"rate_limit"`
	// AllowedOrigins restricts CORS; empty allows every origin
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// RateLimitConfig holds the per-client request limit of the API. Zero disables limiting.
// The limit is shared across API replicas through Redis when redis.addr is set.
type RateLimitConfig struct {
	RequestsPerSecond int    `mapstructure:"requests_per_second"`
	Burst             int    `mapstructure:"burst"`
	KeyPrefix         string `mapstructure:"key_prefix"`
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string   `mapstructure:"jwt_public_key"`
	APIKeys      []string `mapstructure:"api_keys"`
}

// WorkerConfig holds worker pool configuration
type WorkerConfig struct {
	WorkerPoolSize  int `mapstructure:"pool_size"`
	WorkerQueueSize int `mapstructure:"queue_size"`
}

// MetricsConfig holds the prometheus endpoint configuration of non-HTTP services
type MetricsConfig struct {
	Address string `mapstructure:"address"`
}

// CommissionConfig holds the referral commission configuration
type CommissionConfig struct {
	Mode  domain.CommissionMode `mapstructure:"mode"`
	Rates []string              `mapstructure:"rates"` // level 1 first; empty means the default schedule
}

// FarmingProductConfig describes one farming product
type FarmingProductConfig struct {
	ID        string `mapstructure:"id"`
	Name      string `mapstructure:"name"`
	Currency  string `mapstructure:"currency"`
	DailyRate string `mapstructure:"daily_rate"`
	MinAmount string `mapstructure:"min_amount"`
}

// FarmingConfig holds the farming product catalogue
type FarmingConfig struct {
	Products []FarmingProductConfig `mapstructure:"products"` // empty means the default catalogue
}

// LedgerConfig holds the settings every ledger service shares
type LedgerConfig struct {
	Currencies map[string]int32 `mapstructure:"currencies"`
	Commission CommissionConfig `mapstructure:"commission"`
	Farming    FarmingConfig    `mapstructure:"farming"`
}

// AccrualConfig holds the accrual sweeper configuration
type AccrualConfig struct {
	Schedule    string        `mapstructure:"schedule"`
	UnitTimeout time.Duration `mapstructure:"unit_timeout"`
	BatchSize   int           `mapstructure:"batch_size"`
	Worker      WorkerConfig  `mapstructure:"worker"`
}

// ReconciliationConfig holds the reconciliation sweeper configuration
type ReconciliationConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	Schedule  string        `mapstructure:"schedule"`
	BatchSize int           `mapstructure:"batch_size"`
	Timeout   time.Duration `mapstructure:"timeout"`
	Worker    WorkerConfig  `mapstructure:"worker"`
}

// APIConfig holds configuration for the API server
type APIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Ledger     LedgerConfig   `mapstructure:",squash"`
	Server     ServerConfig   `mapstructure:"server"`
	Database   DatabaseConfig `mapstructure:"database"`
	Temporal   TemporalConfig `mapstructure:"temporal"`
	NATS       NATSConfig     `mapstructure:"nats"`
	Redis      RedisConfig    `mapstructure:"redis"`
	Auth       AuthConfig     `mapstructure:"auth"`
}

// SchedulerConfig holds configuration for the scheduler
type SchedulerConfig struct {
	BaseConfig     `mapstructure:",squash"`
	Ledger         LedgerConfig         `mapstructure:",squash"`
	Database       DatabaseConfig       `mapstructure:"database"`
	Temporal       TemporalConfig       `mapstructure:"temporal"`
	NATS           NATSConfig           `mapstructure:"nats"`
	Redis          RedisConfig          `mapstructure:"redis"`
	Accrual        AccrualConfig        `mapstructure:"accrual"`
	Reconciliation ReconciliationConfig `mapstructure:"reconciliation"`
	Metrics        MetricsConfig        `mapstructure:"metrics"`
}

// DepositBridgeConfig holds configuration for the deposit bridge
type DepositBridgeConfig struct {
	BaseConfig `mapstructure:",squash"`
	Ledger     LedgerConfig   `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
	NATS       NATSConfig     `mapstructure:"nats"`
	Temporal   TemporalConfig `mapstructure:"temporal"`
	Redis      RedisConfig    `mapstructure:"redis"`
	Metrics    MetricsConfig  `mapstructure:"metrics"`
}

// PropagationConfig bounds the activity of a commission workflow
type PropagationConfig struct {
	ActivityTimeout time.Duration `mapstructure:"activity_timeout"`
	MaxAttempts     int32         `mapstructure:"max_attempts"` // zero retries until the run timeout
}

// CommissionWorkerConfig holds configuration for the Temporal commission worker
type CommissionWorkerConfig struct {
	BaseConfig  `mapstructure:",squash"`
	Ledger      LedgerConfig      `mapstructure:",squash"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Temporal    TemporalConfig    `mapstructure:"temporal"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Propagation PropagationConfig `mapstructure:"propagation"`
}

// LoadAPIConfig loads configuration for the API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	setCommonDefaults(v)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("server.rate_limit.requests_per_second", 50)
	v.SetDefault("server.rate_limit.burst", 100)
	v.SetDefault("server.rate_limit.key_prefix", "ff:ledger:ratelimit:")

	var cfg APIConfig
	if err := readAndUnmarshal(v, &cfg); err != nil {
		return nil, err
	}
	if err := validateCommon(cfg.Database, cfg.Ledger); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadSchedulerConfig loads configuration for the scheduler
func LoadSchedulerConfig(configFile string, envPath string) (*SchedulerConfig, error) {
	v := configureViper("scheduler", configFile, envPath)

	setCommonDefaults(v)
	v.SetDefault("accrual.schedule", "@every 5m")
	v.SetDefault("accrual.unit_timeout", "30s")
	v.SetDefault("accrual.batch_size", 500)
	v.SetDefault("accrual.worker.pool_size", 16)
	v.SetDefault("accrual.worker.queue_size", 1024)
	v.SetDefault("reconciliation.enabled", true)
	v.SetDefault("reconciliation.schedule", "@every 1h")
	v.SetDefault("reconciliation.batch_size", 200)
	v.SetDefault("reconciliation.timeout", "30s")
	v.SetDefault("reconciliation.worker.pool_size", 4)
	v.SetDefault("reconciliation.worker.queue_size", 256)
	v.SetDefault("metrics.address", ":9090")

	var cfg SchedulerConfig
	if err := readAndUnmarshal(v, &cfg); err != nil {
		return nil, err
	}
	if err := validateCommon(cfg.Database, cfg.Ledger); err != nil {
		return nil, err
	}
	if cfg.Accrual.Schedule == "" {
		return nil, errors.New("accrual.schedule is required")
	}
	if cfg.Accrual.UnitTimeout <= 0 {
		return nil, errors.New("accrual.unit_timeout must be positive")
	}

	return &cfg, nil
}

// LoadDepositBridgeConfig loads configuration for the deposit bridge
func LoadDepositBridgeConfig(configFile string, envPath string) (*DepositBridgeConfig, error) {
	v := configureViper("deposit-bridge", configFile, envPath)

	setCommonDefaults(v)
	v.SetDefault("nats.consumer_name", "deposit-bridge")
	v.SetDefault("nats.ack_wait", "30s")
	v.SetDefault("nats.max_deliver", 10)
	v.SetDefault("metrics.address", ":9091")

	var cfg DepositBridgeConfig
	if err := readAndUnmarshal(v, &cfg); err != nil {
		return nil, err
	}
	if err := validateCommon(cfg.Database, cfg.Ledger); err != nil {
		return nil, err
	}
	if cfg.NATS.URL == "" {
		return nil, errors.New("nats.url is required")
	}

	return &cfg, nil
}

// LoadCommissionWorkerConfig loads configuration for the commission worker
func LoadCommissionWorkerConfig(configFile string, envPath string) (*CommissionWorkerConfig, error) {
	v := configureViper("worker", configFile, envPath)

	setCommonDefaults(v)
	v.SetDefault("temporal.max_concurrent_activity_execution_size", 20)
	v.SetDefault("temporal.worker_activities_per_second", 50)
	v.SetDefault("temporal.max_concurrent_activity_task_pollers", 4)
	v.SetDefault("propagation.activity_timeout", "30s")
	v.SetDefault("propagation.max_attempts", 0)

	var cfg CommissionWorkerConfig
	if err := readAndUnmarshal(v, &cfg); err != nil {
		return nil, err
	}
	if err := validateCommon(cfg.Database, cfg.Ledger); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// CurrencyScales returns the configured minimum-unit scales
func (c LedgerConfig) CurrencyScales() (domain.CurrencyScales, error) {
	return domain.NewCurrencyScales(c.Currencies)
}

// CommissionRates returns the configured commission schedule
func (c LedgerConfig) CommissionRates() (domain.CommissionRates, error) {
	return domain.ParseCommissionRates(c.Commission.Rates)
}

// FarmingCatalog returns the configured farming products
func (c LedgerConfig) FarmingCatalog() (domain.FarmingCatalog, error) {
	scales, err := c.CurrencyScales()
	if err != nil {
		return nil, err
	}

	products := make([]domain.FarmingProduct, 0, len(c.Farming.Products))
	for i, p := range c.Farming.Products {
		currency, err := domain.ParseCurrency(p.Currency)
		if err != nil {
			return nil, fmt.Errorf("invalid farming.products[%d].currency: %w", i, err)
		}
		rate, err := decimal.NewFromString(p.DailyRate)
		if err != nil {
			return nil, fmt.Errorf("invalid farming.products[%d].daily_rate: %w", i, err)
		}
		minAmount := decimal.Zero
		if p.MinAmount != "" {
			minAmount, err = decimal.NewFromString(p.MinAmount)
			if err != nil {
				return nil, fmt.Errorf("invalid farming.products[%d].min_amount: %w", i, err)
			}
		}
		products = append(products, domain.FarmingProduct{
			ID:        p.ID,
			Name:      p.Name,
			Currency:  currency,
			DailyRate: rate,
			MinAmount: minAmount,
		})
	}
	return domain.NewFarmingCatalog(products, scales)
}

func setCommonDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "LEDGER_EVENTS")
	v.SetDefault("temporal.host_port", "localhost:7233")
	v.SetDefault("temporal.namespace", "default")
	v.SetDefault("temporal.commission_task_queue", "commission-propagation")
	v.SetDefault("redis.balance_ttl", "30s")
	v.SetDefault("commission.mode", string(domain.CommissionModeAtomic))
}

// readAndUnmarshal reads the config file, tolerating its absence, and decodes into out
func readAndUnmarshal(v *viper.Viper, out interface{}) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := v.Unmarshal(out); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return nil
}

// validateCommon checks the fields every service requires
func validateCommon(db DatabaseConfig, ledger LedgerConfig) error {
	if db.Host == "" {
		return errors.New("database.host is required")
	}
	if db.DBName == "" {
		return errors.New("database.dbname is required")
	}
	if !domain.IsValidCommissionMode(ledger.Commission.Mode) {
		return fmt.Errorf("invalid commission.mode %q", ledger.Commission.Mode)
	}
	if _, err := ledger.CurrencyScales(); err != nil {
		return fmt.Errorf("invalid currencies: %w", err)
	}
	if _, err := ledger.CommissionRates(); err != nil {
		return fmt.Errorf("invalid commission.rates: %w", err)
	}
	if _, err := ledger.FarmingCatalog(); err != nil {
		return fmt.Errorf("invalid farming.products: %w", err)
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	loadEnv(envPath, service)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	v.SetEnvPrefix("FF_LEDGER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars binds every known key so env-only deployments decode into the config structs
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		"environment",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.consumer_name",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		"nats.ack_wait",
		"nats.max_deliver",
		// Temporal
		"temporal.host_port",
		"temporal.namespace",
		"temporal.commission_task_queue",
		"temporal.max_concurrent_activity_execution_size",
		"temporal.worker_activities_per_second",
		"temporal.max_concurrent_activity_task_pollers",
		// Redis
		"redis.addr",
		"redis.password",
		"redis.db",
		"redis.balance_ttl",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		"server.rate_limit.requests_per_second",
		"server.rate_limit.burst",
		"server.rate_limit.key_prefix",
		"server.allowed_origins",
		// Auth
		"auth.jwt_public_key",
		"auth.api_keys",
		// Ledger
		"commission.mode",
		"commission.rates",
		"currencies.ton",
		"currencies.uni",
		// Accrual
		"accrual.schedule",
		"accrual.unit_timeout",
		"accrual.batch_size",
		"accrual.worker.pool_size",
		"accrual.worker.queue_size",
		// Reconciliation
		"reconciliation.enabled",
		"reconciliation.schedule",
		"reconciliation.batch_size",
		"reconciliation.timeout",
		"reconciliation.worker.pool_size",
		"reconciliation.worker.queue_size",
		// Metrics
		"metrics.address",
		// Propagation
		"propagation.activity_timeout",
		"propagation.max_attempts",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		_ = godotenv.Overload(filepath.Join(envPath, envFile))
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// Address returns the HTTP listen address
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
