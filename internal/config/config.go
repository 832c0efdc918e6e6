package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Shop     ShopConfig     `mapstructure:"shop"`
	Input    InputConfig    `mapstructure:"input"`
	Output   OutputConfig   `mapstructure:"output"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// ShopConfig holds everything about the shopping search endpoint
type ShopConfig struct {
	BaseURL              string   `mapstructure:"base_url"`
	SearchPath           string   `mapstructure:"search_path"`
	Country              string   `mapstructure:"country"`
	Language             string   `mapstructure:"language"`
	CurrencySymbol       string   `mapstructure:"currency_symbol"`
	Timeout              int      `mapstructure:"timeout"`
	MaxRetries           int      `mapstructure:"max_retries"`
	MaxWorkers           int      `mapstructure:"max_workers"`
	MaxRequestsPerSecond int      `mapstructure:"max_requests_per_second"`
	UserAgent            string   `mapstructure:"user_agent"`
	RespectRobots        bool     `mapstructure:"respect_robots"`
	OutlierDeviation     float64  `mapstructure:"outlier_deviation"`
	Proxies              []string `mapstructure:"proxies"`
}

// InputConfig locates the device list to look up
type InputConfig struct {
	DevicesFile string `mapstructure:"devices_file"`
}

// OutputConfig locates the result CSV
type OutputConfig struct {
	File string `mapstructure:"file"`
}

// DatabaseConfig holds the optional price history sink
type DatabaseConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

// RedisConfig holds the optional price cache
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
	TTL      int    `mapstructure:"ttl"`
}

// MetricsConfig holds the optional prometheus endpoint
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
}

// Load loads configuration from YAML file with environment variable overrides
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil, fmt.Errorf("config.yaml file not found in current directory")
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("shop.base_url", "https://www.google.com")
	viper.SetDefault("shop.search_path", "/search")
	viper.SetDefault("shop.country", "de")
	viper.SetDefault("shop.language", "de")
	viper.SetDefault("shop.currency_symbol", "€")
	viper.SetDefault("shop.timeout", 30)
	viper.SetDefault("shop.max_retries", 3)
	viper.SetDefault("shop.max_workers", 1)
	viper.SetDefault("shop.max_requests_per_second", 2)
	viper.SetDefault("shop.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	viper.SetDefault("shop.respect_robots", false)
	viper.SetDefault("shop.outlier_deviation", 0.0)

	viper.SetDefault("input.devices_file", "devices.csv")
	viper.SetDefault("output.file", "prices.csv")

	viper.SetDefault("database.enabled", false)
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.name", "phoneprices")
	viper.SetDefault("database.user", "phoneprices_user")
	viper.SetDefault("database.password", "phoneprices_pass")

	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.database", 0)
	viper.SetDefault("redis.ttl", 86400)

	viper.SetDefault("metrics.enabled", false)
	viper.SetDefault("metrics.addr", ":2112")
}
