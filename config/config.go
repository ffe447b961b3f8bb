package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. CHARSHEET_HTTP_PORT.
const EnvPrefix = "CHARSHEET"

type Config struct {
	HTTPPort       int            `mapstructure:"http_port"`
	GRPCPort       int            `mapstructure:"grpc_port"`
	LogLevel       string         `mapstructure:"log_level"`
	BcryptCost     int            `mapstructure:"bcrypt_cost"`
	HealthInterval time.Duration  `mapstructure:"health_interval"`
	Database       DatabaseConfig `mapstructure:"database"`
}

type DatabaseConfig struct {
	Driver      string `mapstructure:"driver"` // mysql or sqlite
	URL         string `mapstructure:"url"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("http_port", 8080)
	v.SetDefault("grpc_port", 50051)
	v.SetDefault("log_level", "info")
	v.SetDefault("bcrypt_cost", 12)
	v.SetDefault("health_interval", "10s")
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.url", "root:root@tcp(127.0.0.1:3306)/charsheet?charset=utf8mb4&parseTime=True&loc=Local")
	v.SetDefault("database.auto_migrate", true)
}

// Load reads configuration from defaults, an optional config file and the
// environment, in increasing order of precedence. When configFile is empty,
// config.yaml is looked up in . and ./config and may be absent.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	SetDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variable overrides
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Plain PORT and DATABASE_URL are honoured as well, as most hosting
	// platforms inject those.
	if err := v.BindEnv("http_port", EnvPrefix+"_HTTP_PORT", "PORT"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("database.url", EnvPrefix+"_DATABASE_URL", "DATABASE_URL"); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail much later at startup.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.URL == "" {
		return errors.New("database url is required")
	}
	if c.HTTPPort <= 0 || c.GRPCPort <= 0 {
		return errors.New("http_port and grpc_port must be positive")
	}
	if c.HealthInterval <= 0 {
		return errors.New("health_interval must be positive")
	}
	return nil
}
