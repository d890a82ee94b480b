package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr     string `mapstructure:"addr"`
	LogLevel string `mapstructure:"log_level"`
}

type DatabaseConfig struct {
	URL             string        `mapstructure:"url"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	TxTimeout       time.Duration `mapstructure:"tx_timeout"`
}

// RedisConfig configures the shared subject-access cache. An empty URL keeps the
// cache in process.
type RedisConfig struct {
	URL          string        `mapstructure:"url"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type KafkaConfig struct {
	Brokers       []string      `mapstructure:"brokers"`
	Topic         string        `mapstructure:"topic"`
	Partitions    int32         `mapstructure:"partitions"`
	Replication   int16         `mapstructure:"replication"`
	RelayInterval time.Duration `mapstructure:"relay_interval"`
	RelayBatch    int           `mapstructure:"relay_batch"`
}

type AccessConfig struct {
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// FinalizeConfig holds the outcome sets that relax pre-finalize validation.
type FinalizeConfig struct {
	NoGroundsOutcomes []string `mapstructure:"no_grounds_outcomes"`
	NoQualityOutcomes []string `mapstructure:"no_quality_outcomes"`
}

// LegacyConfig identifies the legacy case-tracking system that mirrors assignment state.
type LegacyConfig struct {
	SystemName           string `mapstructure:"system_name"`
	DefaultDeadlineWeeks int    `mapstructure:"default_deadline_weeks"`
}

// Config is the top-level service configuration.
type Config struct {
	Server   Server         `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Access   AccessConfig   `mapstructure:"access"`
	Finalize FinalizeConfig `mapstructure:"finalize"`
	Legacy   LegacyConfig   `mapstructure:"legacy"`
}

const EnvPrefix = "KABAL"

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.log_level", "info")

	v.SetDefault("database.url", "")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 30*time.Minute)
	v.SetDefault("database.tx_timeout", 5*time.Second)

	v.SetDefault("redis.url", "")
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 2)
	v.SetDefault("redis.dial_timeout", 5*time.Second)
	v.SetDefault("redis.read_timeout", 3*time.Second)
	v.SetDefault("redis.write_timeout", 3*time.Second)

	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.topic", "klage.behandling-events.v1")
	v.SetDefault("kafka.partitions", 3)
	v.SetDefault("kafka.replication", 1)
	v.SetDefault("kafka.relay_interval", 2*time.Second)
	v.SetDefault("kafka.relay_batch", 100)

	v.SetDefault("access.cache_ttl", 10*time.Minute)

	v.SetDefault("finalize.no_grounds_outcomes", []string{"TRUKKET", "RETUR", "HEVET"})
	v.SetDefault("finalize.no_quality_outcomes", []string{"TRUKKET", "RETUR", "HEVET", "HENVIST"})

	v.SetDefault("legacy.system_name", "IT01")
	v.SetDefault("legacy.default_deadline_weeks", 12)
}

// Load reads configuration from path (optional YAML) and KABAL_* environment
// variables. Environment wins over the file; a missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			var pathErr *os.PathError
			if !errors.As(err, &notFound) && !errors.As(err, &pathErr) {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Legacy.SystemName == "" {
		return errors.New("legacy.system_name must not be empty")
	}
	if c.Legacy.DefaultDeadlineWeeks <= 0 {
		return errors.New("legacy.default_deadline_weeks must be positive")
	}
	if c.Access.CacheTTL <= 0 {
		return errors.New("access.cache_ttl must be positive")
	}
	return nil
}
