package config

import (
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/yaml.v3"
)

const (
	CONFIG_PATH = "./res/config.yaml"

	DefaultMaxClients        = 50
	DefaultIdleTimeout       = 5 * time.Minute
	DefaultConnectTimeout    = 5 * time.Second
	DefaultDisconnectTimeout = 5 * time.Second
	DefaultSweepInterval     = time.Minute
	DefaultMaxDriverPoolSize = 20
	DefaultPageSize          = 20
	DefaultMaxPageSize       = 500
	DefaultSampleSize        = 500
	DefaultTokenTTL          = 24 * time.Hour
	DefaultRateLimitIdleTTL  = 10 * time.Minute
)

// ServiceConfig holds the configuration for the service.
type ServiceConfig struct {
	ServiceName string          `yaml:"service_name" validate:"required"`
	LogLevel    string          `yaml:"loglevel" validate:"required"`
	Host        string          `yaml:"host" validate:"required"`
	Port        string          `yaml:"port" validate:"required"`
	Pool        PoolConfig      `yaml:"pool"`
	Query       QueryConfig     `yaml:"query"`
	RateLimit   RateLimitConfig `yaml:"rate_limit"`
	Auth        AuthConfig      `yaml:"auth"`
}

// PoolConfig bounds the cache of live MongoDB clients.
type PoolConfig struct {
	MaxClients        int                `yaml:"max_clients" validate:"min=1"`
	IdleTimeout       time.Duration      `yaml:"idle_timeout" validate:"gt=0"`
	ConnectTimeout    time.Duration      `yaml:"connect_timeout" validate:"gt=0"`
	DisconnectTimeout time.Duration      `yaml:"disconnect_timeout" validate:"gt=0"`
	SweepInterval     time.Duration      `yaml:"sweep_interval" validate:"gte=0"`
	MaxDriverPoolSize uint64             `yaml:"max_driver_pool_size"`
	DenyLocalhost     bool               `yaml:"deny_localhost"`
	Options           MongoServerOptions `yaml:"mongo_server_options"`
}

// QueryConfig bounds document reads.
type QueryConfig struct {
	DefaultPageSize int64 `yaml:"default_page_size" validate:"min=1"`
	MaxPageSize     int64 `yaml:"max_page_size" validate:"gtefield=DefaultPageSize"`
	SampleSize      int   `yaml:"sample_size" validate:"min=1"`
}

type RateLimitConfig struct {
	Enabled           bool          `yaml:"enabled"`
	RequestsPerSecond float64       `yaml:"rps" validate:"required_if=Enabled true"`
	Burst             int           `yaml:"burst" validate:"required_if=Enabled true"`
	IdleTTL           time.Duration `yaml:"idle_ttl"`
}

type AuthConfig struct {
	Enabled        bool          `yaml:"enabled"`
	PrivateKeyPath string        `yaml:"private_key_path" validate:"required_if=Enabled true"`
	TokenTTL       time.Duration `yaml:"token_ttl"`
}

type MongoServerOptions struct {
	APIVersion           string `yaml:"api_version"`
	SetStrict            bool   `yaml:"set_strict"`
	SetDeprecationErrors bool   `yaml:"set_deprecation_errors"`
}

// ReadLocalConfig reads the service configuration from a YAML file at the specified path.
// It unmarshals the YAML content into a ServiceConfig struct, fills unset limits with
// their defaults and returns it.
func ReadLocalConfig(configPath string) (*ServiceConfig, error) {
	config := &ServiceConfig{}

	yamlFile, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	err = yaml.Unmarshal(yamlFile, config)
	if err != nil {
		return nil, err
	}

	config.ApplyDefaults()
	return config, nil
}

// ApplyDefaults fills zero-valued limits.
func (c *ServiceConfig) ApplyDefaults() {
	if c.Pool.MaxClients == 0 {
		c.Pool.MaxClients = DefaultMaxClients
	}
	if c.Pool.IdleTimeout == 0 {
		c.Pool.IdleTimeout = DefaultIdleTimeout
	}
	if c.Pool.ConnectTimeout == 0 {
		c.Pool.ConnectTimeout = DefaultConnectTimeout
	}
	if c.Pool.DisconnectTimeout == 0 {
		c.Pool.DisconnectTimeout = DefaultDisconnectTimeout
	}
	if c.Pool.MaxDriverPoolSize == 0 {
		c.Pool.MaxDriverPoolSize = DefaultMaxDriverPoolSize
	}
	if c.Query.DefaultPageSize == 0 {
		c.Query.DefaultPageSize = DefaultPageSize
	}
	if c.Query.MaxPageSize == 0 {
		c.Query.MaxPageSize = DefaultMaxPageSize
	}
	if c.Query.SampleSize == 0 {
		c.Query.SampleSize = DefaultSampleSize
	}
	if c.RateLimit.IdleTTL == 0 {
		c.RateLimit.IdleTTL = DefaultRateLimitIdleTTL
	}
	if c.Auth.TokenTTL == 0 {
		c.Auth.TokenTTL = DefaultTokenTTL
	}
}

// BuildServerAPIOptions returns nil when no API version is configured.
func BuildServerAPIOptions(cfg MongoServerOptions) *options.ServerAPIOptions {
	if cfg.APIVersion == "" {
		return nil
	}

	opts := options.ServerAPI(options.ServerAPIVersion(cfg.APIVersion))
	opts.SetStrict(cfg.SetStrict)
	opts.SetDeprecationErrors(cfg.SetDeprecationErrors)

	return opts
}
