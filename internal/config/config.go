package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/feral-file/darkpool-indexer/internal/domain"
)

// Queue backends
const (
	QueueBackendMemory = "memory"
	QueueBackendSQS    = "sqs"
	QueueBackendNATS   = "nats"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadHost        string        `mapstructure:"read_host"` // optional replica for user state reads
	ReadPort        int           `mapstructure:"read_port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// SQSConfig holds the SQS FIFO queue configuration
type SQSConfig struct {
	QueueURL string `mapstructure:"queue_url"`
	Region   string `mapstructure:"region"`
	Endpoint string `mapstructure:"endpoint"` // local stacks only
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	SubjectPrefix  string        `mapstructure:"subject_prefix"`
	ConsumerName   string        `mapstructure:"consumer_name"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
	MaxDeliver     int           `mapstructure:"max_deliver"`
	DedupWindow    time.Duration `mapstructure:"dedup_window"`
}

// QueueConfig selects and configures the message queue backend
type QueueConfig struct {
	Backend           string        `mapstructure:"backend"`
	PollInterval      time.Duration `mapstructure:"poll_interval"`
	VisibilityTimeout time.Duration `mapstructure:"visibility_timeout"`
	BatchSize         int           `mapstructure:"batch_size"`
	SQS               SQSConfig     `mapstructure:"sqs"`
	NATS              NATSConfig    `mapstructure:"nats"`
}

// ConsumerConfig holds the queue consumer configuration
type ConsumerConfig struct {
	PoolSize             int           `mapstructure:"pool_size"`
	QueueSize            int           `mapstructure:"queue_size"`
	DeferWindow          time.Duration `mapstructure:"defer_window"`
	TransientRetryWindow time.Duration `mapstructure:"transient_retry_window"`
}

// ChainConfig holds the darkpool chain configuration
type ChainConfig struct {
	RPCURL               string        `mapstructure:"rpc_url"`
	WebSocketURL         string        `mapstructure:"ws_url"`
	DarkpoolAddress      string        `mapstructure:"darkpool_address"`
	ChainID              uint64        `mapstructure:"chain_id"`
	StartBlock           uint64        `mapstructure:"start_block"`
	Confirmations        uint64        `mapstructure:"confirmations"`
	PollInterval         time.Duration `mapstructure:"poll_interval"`
	MaxBlockRange        uint64        `mapstructure:"max_block_range"`
	BlockHeadTTL         time.Duration `mapstructure:"block_head_ttl"`
	BlockHeadStaleWindow time.Duration `mapstructure:"block_head_stale_window"`
	// RouteCacheSize bounds the predicted fact routes kept in memory
	RouteCacheSize int `mapstructure:"route_cache_size"`
}

// Address returns the darkpool contract address
func (c ChainConfig) Address() common.Address {
	return common.HexToAddress(c.DarkpoolAddress)
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// AuthConfig holds the request signing configuration
type AuthConfig struct {
	// HMACKey is the base64-encoded shared key. Empty disables authentication.
	HMACKey       string        `mapstructure:"hmac_key"`
	MaxExpiration time.Duration `mapstructure:"max_expiration"`
}

// Key decodes the HMAC key
func (c AuthConfig) Key() ([]byte, error) {
	if c.HMACKey == "" {
		return nil, nil
	}
	key, err := base64.StdEncoding.DecodeString(c.HMACKey)
	if err != nil {
		return nil, fmt.Errorf("invalid auth.hmac_key: %w", err)
	}
	return key, nil
}

// TemporalConfig holds Temporal configuration
type TemporalConfig struct {
	Enabled                            bool    `mapstructure:"enabled"`
	HostPort                           string  `mapstructure:"host_port"`
	Namespace                          string  `mapstructure:"namespace"`
	TaskQueue                          string  `mapstructure:"task_queue"`
	MaxConcurrentActivityExecutionSize int     `mapstructure:"max_concurrent_activity_execution_size"`
	WorkerActivitiesPerSecond          float64 `mapstructure:"worker_activities_per_second"`
}

// BackfillConfig holds the in-process backfill configuration
type BackfillConfig struct {
	PoolSize  int           `mapstructure:"pool_size"`
	QueueSize int           `mapstructure:"queue_size"`
	Timeout   time.Duration `mapstructure:"timeout"`
	MaxSlots  uint64        `mapstructure:"max_slots"`
}

// MetricsConfig controls the prometheus endpoint
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// IndexerConfig holds configuration for darkpool-indexer
type IndexerConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
	Queue      QueueConfig    `mapstructure:"queue"`
	Consumer   ConsumerConfig `mapstructure:"consumer"`
	Chain      ChainConfig    `mapstructure:"chain"`
	Server     ServerConfig   `mapstructure:"server"`
	Auth       AuthConfig     `mapstructure:"auth"`
	Temporal   TemporalConfig `mapstructure:"temporal"`
	Backfill   BackfillConfig `mapstructure:"backfill"`
	Metrics    MetricsConfig  `mapstructure:"metrics"`
}

// ListenerConfig holds configuration for chain-listener
type ListenerConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
	Queue      QueueConfig    `mapstructure:"queue"`
	Chain      ChainConfig    `mapstructure:"chain"`
	Metrics    MetricsConfig  `mapstructure:"metrics"`
	// MetricsAddr is where the listener serves /metrics
	MetricsAddr string `mapstructure:"metrics_addr"`
}

// LoadIndexerConfig loads configuration for darkpool-indexer
func LoadIndexerConfig(configFile string, envPath string) (*IndexerConfig, error) {
	v := configureViper("darkpool-indexer", configFile, envPath)
	setCommonDefaults(v)

	v.SetDefault("consumer.pool_size", 16)
	v.SetDefault("consumer.queue_size", 1024)
	v.SetDefault("consumer.defer_window", "10s")
	v.SetDefault("consumer.transient_retry_window", "30s")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("auth.max_expiration", "5m")
	v.SetDefault("temporal.host_port", "localhost:7233")
	v.SetDefault("temporal.namespace", "default")
	v.SetDefault("temporal.task_queue", "darkpool-backfill")
	v.SetDefault("temporal.max_concurrent_activity_execution_size", 8)
	v.SetDefault("temporal.worker_activities_per_second", 10)
	v.SetDefault("backfill.pool_size", 4)
	v.SetDefault("backfill.queue_size", 256)
	v.SetDefault("backfill.timeout", "30m")
	v.SetDefault("backfill.max_slots", 100000)

	var config IndexerConfig
	if err := load(v, &config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// LoadListenerConfig loads configuration for chain-listener
func LoadListenerConfig(configFile string, envPath string) (*ListenerConfig, error) {
	v := configureViper("chain-listener", configFile, envPath)
	setCommonDefaults(v)
	v.SetDefault("metrics_addr", ":9090")

	var config ListenerConfig
	if err := load(v, &config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks the keys the indexer cannot run without
func (c *IndexerConfig) Validate() error {
	var errs []error
	errs = append(errs, c.Database.validate(), c.Queue.validate(), c.Chain.validate())
	if _, err := c.Auth.Key(); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return domain.NewSetupError("validate config", err)
	}
	return nil
}

// Validate checks the keys the listener cannot run without
func (c *ListenerConfig) Validate() error {
	if err := errors.Join(c.Database.validate(), c.Queue.validate(), c.Chain.validate()); err != nil {
		return domain.NewSetupError("validate config", err)
	}
	return nil
}

func (c DatabaseConfig) validate() error {
	if c.Host == "" || c.DBName == "" {
		return errors.New("database.host and database.dbname are required")
	}
	return nil
}

func (c QueueConfig) validate() error {
	switch c.Backend {
	case QueueBackendMemory:
		return nil
	case QueueBackendSQS:
		if c.SQS.QueueURL == "" {
			return errors.New("queue.sqs.queue_url is required")
		}
		if !strings.HasSuffix(c.SQS.QueueURL, ".fifo") {
			return errors.New("queue.sqs.queue_url must name a FIFO queue")
		}
	case QueueBackendNATS:
		if c.NATS.URL == "" {
			return errors.New("queue.nats.url is required")
		}
	default:
		return fmt.Errorf("unknown queue.backend %q", c.Backend)
	}
	return nil
}

func (c ChainConfig) validate() error {
	if c.RPCURL == "" {
		return errors.New("chain.rpc_url is required")
	}
	if !common.IsHexAddress(c.DarkpoolAddress) {
		return fmt.Errorf("chain.darkpool_address %q is not an address", c.DarkpoolAddress)
	}
	return nil
}

func setCommonDefaults(v *viper.Viper) {
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.conn_max_idle_time", "10m")
	v.SetDefault("queue.backend", QueueBackendSQS)
	v.SetDefault("queue.poll_interval", "1s")
	v.SetDefault("queue.visibility_timeout", "30s")
	v.SetDefault("queue.batch_size", 10)
	v.SetDefault("queue.sqs.region", "us-east-2")
	v.SetDefault("queue.nats.stream_name", "DARKPOOL_MESSAGES")
	v.SetDefault("queue.nats.subject_prefix", "darkpool.messages")
	v.SetDefault("queue.nats.consumer_name", "darkpool-indexer")
	v.SetDefault("queue.nats.max_reconnects", 10)
	v.SetDefault("queue.nats.reconnect_wait", "2s")
	v.SetDefault("queue.nats.max_deliver", 10)
	v.SetDefault("queue.nats.dedup_window", "5m")
	v.SetDefault("chain.confirmations", 0)
	v.SetDefault("chain.poll_interval", "2s")
	v.SetDefault("chain.max_block_range", 1000)
	v.SetDefault("chain.block_head_ttl", "1s")
	v.SetDefault("chain.block_head_stale_window", "1m")
	v.SetDefault("chain.route_cache_size", 65536)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}

func load(v *viper.Viper, out interface{}) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// env-only deployment
	}

	if err := v.Unmarshal(out); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return nil
}

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

	v.SetEnvPrefix("DARKPOOL_INDEXER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars binds every key so env-only deployments unmarshal fully
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		"metrics_addr",
		"database.host",
		"database.port",
		"database.read_host",
		"database.read_port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		"queue.backend",
		"queue.poll_interval",
		"queue.visibility_timeout",
		"queue.batch_size",
		"queue.sqs.queue_url",
		"queue.sqs.region",
		"queue.sqs.endpoint",
		"queue.nats.url",
		"queue.nats.stream_name",
		"queue.nats.subject_prefix",
		"queue.nats.consumer_name",
		"queue.nats.max_reconnects",
		"queue.nats.reconnect_wait",
		"queue.nats.connection_name",
		"queue.nats.max_deliver",
		"queue.nats.dedup_window",
		"consumer.pool_size",
		"consumer.queue_size",
		"consumer.defer_window",
		"consumer.transient_retry_window",
		"chain.rpc_url",
		"chain.ws_url",
		"chain.darkpool_address",
		"chain.chain_id",
		"chain.start_block",
		"chain.confirmations",
		"chain.poll_interval",
		"chain.max_block_range",
		"chain.block_head_ttl",
		"chain.block_head_stale_window",
		"chain.route_cache_size",
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		"auth.hmac_key",
		"auth.max_expiration",
		"temporal.enabled",
		"temporal.host_port",
		"temporal.namespace",
		"temporal.task_queue",
		"temporal.max_concurrent_activity_execution_size",
		"temporal.worker_activities_per_second",
		"backfill.pool_size",
		"backfill.queue_size",
		"backfill.timeout",
		"backfill.max_slots",
		"metrics.enabled",
		"metrics.path",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads .env, .env.local and .env.<service>.local from envPath
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

// ReadDSN returns the read-replica connection string, or "" when no replica is configured.
// If ReadPort is not configured, it falls back to Port.
func (c *DatabaseConfig) ReadDSN() string {
	if c.ReadHost == "" {
		return ""
	}
	port := c.ReadPort
	if port == 0 {
		port = c.Port
	}

	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.ReadHost, port, c.User, c.Password, c.DBName, c.SSLMode)
}
