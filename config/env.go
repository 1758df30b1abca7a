package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"
)

// Config holds every setting read from the environment (.env is loaded by main).
type Config struct {
	Port     string `mapstructure:"port"`
	AppEnv   string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	DBDriver    string `mapstructure:"db_driver"`
	DatabaseURL string `mapstructure:"database_url"`
	MySQLURL    string `mapstructure:"mysql_url"`
	DBHost      string `mapstructure:"db_host"`
	DBPort      string `mapstructure:"db_port"`
	DBUser      string `mapstructure:"db_user"`
	DBPass      string `mapstructure:"db_pass"`
	DBName      string `mapstructure:"db_name"`
	DBSSLMode   string `mapstructure:"db_sslmode"`
	DBSeed      bool   `mapstructure:"db_seed"`

	CORSOrigins string `mapstructure:"cors_origins"`
	SyncCron    string `mapstructure:"sync_cron"`
	HotelTZ     string `mapstructure:"hotel_tz"`
}

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Load reads the configuration. Every key maps to the upper-cased env var of
// the same name (db_driver -> DB_DRIVER).
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("port", "8080")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("db_driver", DriverMySQL)
	v.SetDefault("database_url", "")
	v.SetDefault("mysql_url", "")
	v.SetDefault("db_host", "127.0.0.1")
	v.SetDefault("db_port", "")
	v.SetDefault("db_user", "root")
	v.SetDefault("db_pass", "")
	v.SetDefault("db_name", "hotel_reservasi")
	v.SetDefault("db_sslmode", "disable")
	v.SetDefault("db_seed", true)
	v.SetDefault("cors_origins", "")
	v.SetDefault("sync_cron", "@every 15m")
	v.SetDefault("hotel_tz", "Asia/Jakarta")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))
	switch cfg.DBDriver {
	case DriverMySQL, DriverPostgres, DriverMemory:
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (mysql, postgres or memory)", cfg.DBDriver)
	}
	if cfg.DBPort == "" {
		cfg.DBPort = "3306"
		if cfg.DBDriver == DriverPostgres {
			cfg.DBPort = "5432"
		}
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// Location is the hotel's timezone; "today" for booking rules is taken there.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.HotelTZ)
	if err != nil {
		return nil, fmt.Errorf("invalid HOTEL_TZ %q: %w", c.HotelTZ, err)
	}
	return loc, nil
}
