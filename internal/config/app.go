package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type HTTPServer struct {
	Port string `mapstructure:"port"`
}

type DbServer struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Pass     string `mapstructure:"pass"`
	Name     string `mapstructure:"name"`
	MaxConns int32  `mapstructure:"max_conns"`
}

func (config *DbServer) GetConnectionStr() string {
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=disable",
		config.User, config.Pass, config.Host, config.Port, config.Name,
	)
}

// Cache selects and tunes the rate cache backend. Backend is either
// "memory" (in-process ristretto) or "redis".
type Cache struct {
	Backend    string `mapstructure:"backend"`
	TTLSeconds int    `mapstructure:"ttl_seconds"`
	MaxItems   int64  `mapstructure:"max_items"`
	RedisAddr  string `mapstructure:"redis_addr"`
	RedisPass  string `mapstructure:"redis_pass"`
	RedisDB    int    `mapstructure:"redis_db"`
}

func (c Cache) TTL() time.Duration { return time.Duration(c.TTLSeconds) * time.Second }

type Provider struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type Rates struct {
	BaseCurrency       string   `mapstructure:"base_currency"`
	DefaultTargets     []string `mapstructure:"default_targets"`
	RefreshIntervalSec int      `mapstructure:"refresh_interval_seconds"`
}

type Logging struct {
	Level string `mapstructure:"level"`
}

type AppConfig struct {
	HTTPServer HTTPServer `mapstructure:"http_server"`
	DbServer   DbServer   `mapstructure:"db_server"`
	Cache      Cache      `mapstructure:"cache"`
	Provider   Provider   `mapstructure:"provider"`
	Rates      Rates      `mapstructure:"rates"`
	Logging    Logging    `mapstructure:"logging"`
}

func Init() (*AppConfig, error) {
	var cfg AppConfig

	// .env is optional outside local development.
	_ = godotenv.Load()

	viper.SetConfigFile("config.yaml")
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	viper.SetDefault("db_server.max_conns", 10)
	viper.SetDefault("cache.backend", "memory")
	viper.SetDefault("cache.ttl_seconds", 3600)
	viper.SetDefault("cache.max_items", 10000)
	viper.SetDefault("provider.timeout_seconds", 10)
	viper.SetDefault("rates.base_currency", "USD")
	viper.SetDefault("rates.refresh_interval_seconds", 3600)
	viper.SetDefault("logging.level", "info")

	// db server env vars
	_ = viper.BindEnv("db_server.host", "DB_HOST")
	_ = viper.BindEnv("db_server.port", "DB_PORT")
	_ = viper.BindEnv("db_server.user", "DB_USER")
	_ = viper.BindEnv("db_server.pass", "DB_PASS")
	_ = viper.BindEnv("db_server.name", "DB_NAME")
	_ = viper.BindEnv("db_server.max_conns", "DB_MAX_CONNS")

	// cache env vars
	_ = viper.BindEnv("cache.backend", "CACHE_BACKEND")
	_ = viper.BindEnv("cache.ttl_seconds", "CACHE_TTL_SECONDS")
	_ = viper.BindEnv("cache.redis_addr", "REDIS_ADDR")
	_ = viper.BindEnv("cache.redis_pass", "REDIS_PASS")
	_ = viper.BindEnv("cache.redis_db", "REDIS_DB")

	// provider env vars
	_ = viper.BindEnv("provider.base_url", "PROVIDER_BASE_URL")
	_ = viper.BindEnv("provider.timeout_seconds", "PROVIDER_TIMEOUT_SECONDS")

	// rates env vars
	_ = viper.BindEnv("rates.base_currency", "BASE_CURRENCY")
	_ = viper.BindEnv("rates.refresh_interval_seconds", "REFRESH_INTERVAL_SECONDS")

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if cfg.Provider.BaseURL == "" {
		return nil, fmt.Errorf("provider base url is required")
	}

	return &cfg, nil
}
