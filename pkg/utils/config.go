package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NSQ      NSQConfig
	Checkout CheckoutConfig
	Gateway  GatewayConfig
	Ledger   LedgerConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type NSQConfig struct {
	Enabled bool
	Address string
	Topic   string
}

type CheckoutConfig struct {
	// SessionExpireSeconds is the card checkout session lifetime,
	// clamped to [1800, 82800] at load time.
	SessionExpireSeconds int
	// BookingExpireSeconds is how long a pending booking survives before
	// the reaper removes it: session lifetime plus a 10 minute grace.
	BookingExpireSeconds int
	ReaperIntervalSec    int
}

type GatewayConfig struct {
	URL       string
	SecretKey string
	Currency  string
}

type LedgerConfig struct {
	TronAPIURL string
	EthRPCURL  string
	// CacheTTLSeconds controls how long wallet receiving addresses stay
	// in Redis before falling back to the database.
	CacheTTLSeconds int
}

const (
	minSessionExpireSeconds = 1800
	maxSessionExpireSeconds = 82800
	bookingExpireGrace      = 600
)

// ClampSessionExpire bounds the checkout session lifetime to a sane range.
// The card gateway rejects sessions shorter than 30 minutes or longer than 23 hours.
func ClampSessionExpire(seconds int) int {
	if seconds < minSessionExpireSeconds {
		return minSessionExpireSeconds
	}
	if seconds > maxSessionExpireSeconds {
		return maxSessionExpireSeconds
	}
	return seconds
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("NSQ_ENABLED", false)
	viper.SetDefault("NSQ_ADDRESS", "localhost:4150")
	viper.SetDefault("NSQ_TOPIC", "booking-events")
	viper.SetDefault("CHECKOUT_SESSION_EXPIRE_SECONDS", maxSessionExpireSeconds)
	viper.SetDefault("CHECKOUT_REAPER_INTERVAL_SECONDS", 300)
	viper.SetDefault("GATEWAY_CURRENCY", "USD")
	viper.SetDefault("TRON_API_URL", "https://api.trongrid.io")
	viper.SetDefault("WALLET_CACHE_TTL_SECONDS", 3600)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	sessionExpire := ClampSessionExpire(viper.GetInt("CHECKOUT_SESSION_EXPIRE_SECONDS"))

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASS"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		NSQ: NSQConfig{
			Enabled: viper.GetBool("NSQ_ENABLED"),
			Address: viper.GetString("NSQ_ADDRESS"),
			Topic:   viper.GetString("NSQ_TOPIC"),
		},
		Checkout: CheckoutConfig{
			SessionExpireSeconds: sessionExpire,
			BookingExpireSeconds: sessionExpire + bookingExpireGrace,
			ReaperIntervalSec:    viper.GetInt("CHECKOUT_REAPER_INTERVAL_SECONDS"),
		},
		Gateway: GatewayConfig{
			URL:       viper.GetString("GATEWAY_URL"),
			SecretKey: viper.GetString("GATEWAY_SECRET_KEY"),
			Currency:  viper.GetString("GATEWAY_CURRENCY"),
		},
		Ledger: LedgerConfig{
			TronAPIURL:      viper.GetString("TRON_API_URL"),
			EthRPCURL:       viper.GetString("ETH_RPC_URL"),
			CacheTTLSeconds: viper.GetInt("WALLET_CACHE_TTL_SECONDS"),
		},
	}

	return config, nil
}
