package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Log     Logger   `mapstructure:"logger"`
	DB      Database `mapstructure:"database"`
	API     API      `mapstructure:"api"`
	Cache   Cache    `mapstructure:"cache"`
	Journal Journal  `mapstructure:"journal"`
}

type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type Database struct {
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"name"`
	SSLMode         string `mapstructure:"ssl_mode"`
	TimeZone        string `mapstructure:"time_zone"`
	Path            string `mapstructure:"path"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime string `mapstructure:"conn_max_lifetime"`
	LogLevel        string `mapstructure:"log_level"`
	MigrationsPath  string `mapstructure:"migrations_path"`
}

type API struct {
	Port      int       `mapstructure:"port"`
	Prefix    string    `mapstructure:"prefix"`
	RateLimit RateLimit `mapstructure:"rate_limit"`
}

type RateLimit struct {
	Enabled   bool          `mapstructure:"enabled"`
	PerSecond float64       `mapstructure:"per_second"`
	Burst     int           `mapstructure:"burst"`
	ExpiresIn time.Duration `mapstructure:"expires_in"`
}

type Cache struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
	SummaryExpiration time.Duration `mapstructure:"summary_expiration"`
}

type Journal struct {
	// TimeZone decides which calendar month "now" falls in when no period is given.
	TimeZone string `mapstructure:"time_zone"`
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.encoding", "json")

	v.SetDefault("database.driver", DriverPostgres)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "trading_journal")
	v.SetDefault("database.time_zone", "")
	v.SetDefault("database.max_idle_conns", 0)
	v.SetDefault("database.max_open_conns", 0)
	v.SetDefault("database.conn_max_lifetime", "")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.path", "journal.db")
	v.SetDefault("database.log_level", "Warn")
	v.SetDefault("database.migrations_path", "file://migrations")

	v.SetDefault("api.port", 8000)
	v.SetDefault("api.prefix", "/api")
	v.SetDefault("api.rate_limit.enabled", true)
	v.SetDefault("api.rate_limit.per_second", 10)
	v.SetDefault("api.rate_limit.burst", 30)
	v.SetDefault("api.rate_limit.expires_in", 3*time.Minute)

	v.SetDefault("cache.default_expiration", 5*time.Minute)
	v.SetDefault("cache.cleanup_interval", 10*time.Minute)
	v.SetDefault("cache.summary_expiration", 5*time.Minute)

	v.SetDefault("journal.time_zone", "Local")
}

// Load reads config.yaml from the working directory, then lets environment
// variables (DATABASE_HOST, API_PORT, ...) override it. A .env file is
// optional.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AddConfigPath(".")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver %q", c.DB.Driver)
	}
	if c.API.Port <= 0 {
		return fmt.Errorf("invalid api port %d", c.API.Port)
	}
	if _, err := c.Journal.Location(); err != nil {
		return fmt.Errorf("invalid journal time zone %q: %w", c.Journal.TimeZone, err)
	}
	return nil
}

func (j Journal) Location() (*time.Location, error) {
	if j.TimeZone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(j.TimeZone)
}
