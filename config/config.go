package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment Configuration
	Environment EnvironmentConfig

	// Server Configuration
	Server ServerConfig
	Logger LoggerConfig

	// Storage Configuration
	Postgres PostgresConfig
	Redis    RedisConfig
	MinIO    MinIOConfig

	// WebSocket Configuration
	WebSocket WebSocketConfig

	// Authentication Configuration
	JWT JWTConfig

	// Alerting Configuration
	Monitoring MonitoringConfig
	Discord    DiscordConfig

	// Observability Configuration
	Metrics MetricsConfig
	Tracing TracingConfig
}

// EnvironmentConfig is the configuration for the deployment environment.
type EnvironmentConfig struct {
	Name string
}

// ServerConfig is the configuration for the HTTP server
type ServerConfig struct {
	Host            string
	Port            int
	Mode            string
	ShutdownTimeout time.Duration
}

// LoggerConfig is the configuration for the logger
type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
	Output       string
	FilePath     string
	MaxSizeMB    int
	MaxBackups   int
	MaxAgeDays   int
	Compress     bool
}

// PostgresConfig is the configuration for the business data database
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig is the configuration for Redis
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	UseTLS   bool

	// Connection pool settings
	MaxRetries      int
	MinIdleConns    int
	PoolSize        int
	PoolTimeout     time.Duration
	ConnMaxIdleTime time.Duration
	ConnMaxLifetime time.Duration
}

// MinIOConfig is the configuration for the report object storage
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Region    string
	Bucket    string
}

// WebSocketConfig is the configuration for WebSocket connections
type WebSocketConfig struct {
	PingInterval    time.Duration
	PongWait        time.Duration
	WriteWait       time.Duration
	MaxMessageSize  int64
	ReadBufferSize  int
	WriteBufferSize int
	MaxConnections  int

	MaxConnectionsPerUser int
	ConnectionRateLimit   int
	RateLimitWindow       time.Duration
	// AllowedOrigins are accepted in every environment; outside production localhost is accepted too.
	AllowedOrigins []string
}

// JWTConfig is the configuration for the JWT
type JWTConfig struct {
	SecretKey string
}

// MonitoringConfig is the configuration for the alert engine and monitoring sessions
type MonitoringConfig struct {
	DefaultInterval         time.Duration
	MinInterval             time.Duration
	AlertTTL                time.Duration
	ErrorEventWindow        time.Duration
	SnapshotCacheTTL        time.Duration
	AutomatedActionsEnabled bool
	NotifyMinSeverity       string
	EventChannelPrefix      string
}

// DiscordConfig is the configuration for Discord webhook notifications
type DiscordConfig struct {
	WebhookID    string
	WebhookToken string
}

// MetricsConfig is the configuration for the Prometheus endpoint
type MetricsConfig struct {
	Enabled bool
	Path    string
}

// TracingConfig is the configuration for OpenTelemetry tracing
type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	Insecure    bool
	ServiceName string
	SampleRate  float64
}

// Load loads configuration using Viper
func Load() (*Config, error) {
	// Set config file name and paths
	viper.SetConfigName("alert-config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/alert-srv/")

	// Enable environment variable override
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set defaults
	setDefaults()

	// Read config file (optional - will use env vars if file not found)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment
	cfg.Environment.Name = viper.GetString("environment.name")

	// Server
	cfg.Server.Host = viper.GetString("server.host")
	cfg.Server.Port = viper.GetInt("server.port")
	cfg.Server.Mode = viper.GetString("server.mode")
	cfg.Server.ShutdownTimeout = viper.GetDuration("server.shutdown_timeout")

	// Logger
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")
	cfg.Logger.Output = viper.GetString("logger.output")
	cfg.Logger.FilePath = viper.GetString("logger.file_path")
	cfg.Logger.MaxSizeMB = viper.GetInt("logger.max_size_mb")
	cfg.Logger.MaxBackups = viper.GetInt("logger.max_backups")
	cfg.Logger.MaxAgeDays = viper.GetInt("logger.max_age_days")
	cfg.Logger.Compress = viper.GetBool("logger.compress")

	// Postgres
	cfg.Postgres.Host = viper.GetString("postgres.host")
	cfg.Postgres.Port = viper.GetInt("postgres.port")
	cfg.Postgres.User = viper.GetString("postgres.user")
	cfg.Postgres.Password = viper.GetString("postgres.password")
	cfg.Postgres.DBName = viper.GetString("postgres.dbname")
	cfg.Postgres.SSLMode = viper.GetString("postgres.sslmode")

	// Redis
	cfg.Redis.Host = viper.GetString("redis.host")
	cfg.Redis.Port = viper.GetInt("redis.port")
	cfg.Redis.Password = viper.GetString("redis.password")
	cfg.Redis.DB = viper.GetInt("redis.db")
	cfg.Redis.UseTLS = viper.GetBool("redis.use_tls")
	cfg.Redis.MaxRetries = viper.GetInt("redis.max_retries")
	cfg.Redis.MinIdleConns = viper.GetInt("redis.min_idle_conns")
	cfg.Redis.PoolSize = viper.GetInt("redis.pool_size")
	cfg.Redis.PoolTimeout = viper.GetDuration("redis.pool_timeout")
	cfg.Redis.ConnMaxIdleTime = viper.GetDuration("redis.conn_max_idle_time")
	cfg.Redis.ConnMaxLifetime = viper.GetDuration("redis.conn_max_lifetime")

	// MinIO
	cfg.MinIO.Endpoint = viper.GetString("minio.endpoint")
	cfg.MinIO.AccessKey = viper.GetString("minio.access_key")
	cfg.MinIO.SecretKey = viper.GetString("minio.secret_key")
	cfg.MinIO.UseSSL = viper.GetBool("minio.use_ssl")
	cfg.MinIO.Region = viper.GetString("minio.region")
	cfg.MinIO.Bucket = viper.GetString("minio.bucket")

	// WebSocket
	cfg.WebSocket.PingInterval = viper.GetDuration("websocket.ping_interval")
	cfg.WebSocket.PongWait = viper.GetDuration("websocket.pong_wait")
	cfg.WebSocket.WriteWait = viper.GetDuration("websocket.write_wait")
	cfg.WebSocket.MaxMessageSize = viper.GetInt64("websocket.max_message_size")
	cfg.WebSocket.ReadBufferSize = viper.GetInt("websocket.read_buffer_size")
	cfg.WebSocket.WriteBufferSize = viper.GetInt("websocket.write_buffer_size")
	cfg.WebSocket.MaxConnections = viper.GetInt("websocket.max_connections")
	cfg.WebSocket.MaxConnectionsPerUser = viper.GetInt("websocket.max_connections_per_user")
	cfg.WebSocket.ConnectionRateLimit = viper.GetInt("websocket.connection_rate_limit")
	cfg.WebSocket.RateLimitWindow = viper.GetDuration("websocket.rate_limit_window")
	cfg.WebSocket.AllowedOrigins = viper.GetStringSlice("websocket.allowed_origins")

	// JWT
	cfg.JWT.SecretKey = viper.GetString("jwt.secret_key")

	// Monitoring
	cfg.Monitoring.DefaultInterval = viper.GetDuration("monitoring.default_interval")
	cfg.Monitoring.MinInterval = viper.GetDuration("monitoring.min_interval")
	cfg.Monitoring.AlertTTL = viper.GetDuration("monitoring.alert_ttl")
	cfg.Monitoring.ErrorEventWindow = viper.GetDuration("monitoring.error_event_window")
	cfg.Monitoring.SnapshotCacheTTL = viper.GetDuration("monitoring.snapshot_cache_ttl")
	cfg.Monitoring.AutomatedActionsEnabled = viper.GetBool("monitoring.automated_actions_enabled")
	cfg.Monitoring.NotifyMinSeverity = viper.GetString("monitoring.notify_min_severity")
	cfg.Monitoring.EventChannelPrefix = viper.GetString("monitoring.event_channel_prefix")

	// Discord
	cfg.Discord.WebhookID = viper.GetString("discord.webhook_id")
	cfg.Discord.WebhookToken = viper.GetString("discord.webhook_token")

	// Metrics
	cfg.Metrics.Enabled = viper.GetBool("metrics.enabled")
	cfg.Metrics.Path = viper.GetString("metrics.path")

	// Tracing
	cfg.Tracing.Enabled = viper.GetBool("tracing.enabled")
	cfg.Tracing.Endpoint = viper.GetString("tracing.endpoint")
	cfg.Tracing.Insecure = viper.GetBool("tracing.insecure")
	cfg.Tracing.ServiceName = viper.GetString("tracing.service_name")
	cfg.Tracing.SampleRate = viper.GetFloat64("tracing.sample_rate")

	// Validate required fields
	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults() {
	// Environment
	viper.SetDefault("environment.name", "production")

	// Server
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "release")
	viper.SetDefault("server.shutdown_timeout", 15*time.Second)

	// Logger
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.mode", "production")
	viper.SetDefault("logger.encoding", "json")
	viper.SetDefault("logger.color_enabled", false)
	viper.SetDefault("logger.output", "stderr")
	viper.SetDefault("logger.max_size_mb", 100)
	viper.SetDefault("logger.max_backups", 3)
	viper.SetDefault("logger.max_age_days", 7)
	viper.SetDefault("logger.compress", true)

	// Postgres
	viper.SetDefault("postgres.host", "localhost")
	viper.SetDefault("postgres.port", 5432)
	viper.SetDefault("postgres.sslmode", "disable")

	// Redis
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.use_tls", false)
	viper.SetDefault("redis.max_retries", 3)
	viper.SetDefault("redis.min_idle_conns", 10)
	viper.SetDefault("redis.pool_size", 100)
	viper.SetDefault("redis.pool_timeout", 4*time.Second)
	viper.SetDefault("redis.conn_max_idle_time", 5*time.Minute)
	viper.SetDefault("redis.conn_max_lifetime", 30*time.Minute)

	// MinIO
	viper.SetDefault("minio.use_ssl", false)
	viper.SetDefault("minio.region", "us-east-1")
	viper.SetDefault("minio.bucket", "alert-reports")

	// WebSocket
	viper.SetDefault("websocket.ping_interval", 30*time.Second)
	viper.SetDefault("websocket.pong_wait", 60*time.Second)
	viper.SetDefault("websocket.write_wait", 10*time.Second)
	viper.SetDefault("websocket.max_message_size", 4096)
	viper.SetDefault("websocket.read_buffer_size", 1024)
	viper.SetDefault("websocket.write_buffer_size", 1024)
	viper.SetDefault("websocket.max_connections", 10000)
	viper.SetDefault("websocket.max_connections_per_user", 10)
	viper.SetDefault("websocket.connection_rate_limit", 20)
	viper.SetDefault("websocket.rate_limit_window", time.Minute)

	// Monitoring
	viper.SetDefault("monitoring.default_interval", 10*time.Second)
	viper.SetDefault("monitoring.min_interval", time.Second)
	viper.SetDefault("monitoring.alert_ttl", 24*time.Hour)
	viper.SetDefault("monitoring.error_event_window", time.Minute)
	viper.SetDefault("monitoring.snapshot_cache_ttl", 5*time.Second)
	viper.SetDefault("monitoring.automated_actions_enabled", true)
	viper.SetDefault("monitoring.notify_min_severity", "high")
	viper.SetDefault("monitoring.event_channel_prefix", "alert:events:")

	// Metrics
	viper.SetDefault("metrics.enabled", true)
	viper.SetDefault("metrics.path", "/metrics")

	// Tracing
	viper.SetDefault("tracing.enabled", false)
	viper.SetDefault("tracing.endpoint", "localhost:4318")
	viper.SetDefault("tracing.insecure", true)
	viper.SetDefault("tracing.service_name", "alert-srv")
	viper.SetDefault("tracing.sample_rate", 1.0)
}

func validate(cfg *Config) error {
	// Validate JWT
	if cfg.JWT.SecretKey == "" {
		return fmt.Errorf("jwt.secret_key is required")
	}
	if len(cfg.JWT.SecretKey) < 32 {
		return fmt.Errorf("jwt.secret_key must be at least 32 characters for security")
	}

	// Validate Postgres
	if cfg.Postgres.DBName == "" {
		return fmt.Errorf("postgres.dbname is required")
	}

	// Validate Redis
	if cfg.Redis.Host == "" {
		return fmt.Errorf("redis.host is required")
	}
	if cfg.Redis.Port == 0 {
		return fmt.Errorf("redis.port is required")
	}

	// Validate Monitoring
	if cfg.Monitoring.MinInterval <= 0 {
		return fmt.Errorf("monitoring.min_interval must be positive")
	}
	if cfg.Monitoring.DefaultInterval < cfg.Monitoring.MinInterval {
		return fmt.Errorf("monitoring.default_interval must be at least monitoring.min_interval")
	}
	if cfg.Monitoring.AlertTTL <= 0 {
		return fmt.Errorf("monitoring.alert_ttl must be positive")
	}
	switch cfg.Monitoring.NotifyMinSeverity {
	case "critical", "high", "medium", "low", "none":
	default:
		return fmt.Errorf("monitoring.notify_min_severity must be one of critical, high, medium, low, none")
	}

	// Validate Tracing
	if cfg.Tracing.Enabled && (cfg.Tracing.SampleRate < 0 || cfg.Tracing.SampleRate > 1) {
		return fmt.Errorf("tracing.sample_rate must be between 0 and 1")
	}

	return nil
}
