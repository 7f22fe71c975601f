package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Log         LogConfig         `mapstructure:"log"`
	Auth        AuthConfig        `mapstructure:"auth"`
	RateLimit   RateLimitConfig   `mapstructure:"rate_limit"`
	Providers   ProvidersConfig   `mapstructure:"providers"`
	Idempotency IdempotencyConfig `mapstructure:"idempotency"`
	Signature   SignatureConfig   `mapstructure:"signature"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// AuthConfig holds service-to-service authentication configuration
type AuthConfig struct {
	// Secret is the shared HMAC secret used to verify caller tokens
	Secret string `mapstructure:"secret"`
	// Issuer is the expected token issuer; empty disables the issuer check
	Issuer string `mapstructure:"issuer"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// SendLimit is the number of send requests allowed per app per window
	SendLimit  int           `mapstructure:"send_limit"`
	SendWindow time.Duration `mapstructure:"send_window"`
}

// ProvidersConfig holds configuration for the upstream delivery providers
type ProvidersConfig struct {
	Transactional  ProviderConfig `mapstructure:"transactional"`
	Broadcast      ProviderConfig `mapstructure:"broadcast"`
	BrandDirectory ProviderConfig `mapstructure:"brand_directory"`
}

// ProviderConfig holds connection settings for one upstream service
type ProviderConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Token   string        `mapstructure:"token"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// IdempotencyConfig holds idempotency cache settings
type IdempotencyConfig struct {
	// TTL is how long a cached send outcome is honored
	TTL time.Duration `mapstructure:"ttl"`
	// SweepInterval is how often expired entries are purged in the background
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

// SignatureConfig holds outgoing signature/footer settings
type SignatureConfig struct {
	// HouseApp is the app ID that receives the full branded signature block
	HouseApp string `mapstructure:"house_app"`
	// FromAddress is the default sender for transactional email
	FromAddress string `mapstructure:"from_address"`
	// FromName is the display name for the default sender
	FromName string `mapstructure:"from_name"`
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set config file name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/email-gateway")

	// Set defaults
	setDefaults(v)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	// Bind environment variables
	v.SetEnvPrefix("EMAILGW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)

	// Redis defaults
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Rate limiting defaults
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.send_limit", 120)
	v.SetDefault("rate_limit.send_window", time.Minute)

	// Provider defaults
	v.SetDefault("providers.transactional.timeout", 10*time.Second)
	v.SetDefault("providers.broadcast.timeout", 10*time.Second)
	v.SetDefault("providers.brand_directory.timeout", 5*time.Second)

	// Idempotency defaults
	v.SetDefault("idempotency.ttl", 24*time.Hour)
	v.SetDefault("idempotency.sweep_interval", time.Hour)

	// Signature defaults
	v.SetDefault("signature.house_app", "house")
	v.SetDefault("signature.from_address", "no-reply@example.com")
	v.SetDefault("signature.from_name", "Email Gateway")
}
