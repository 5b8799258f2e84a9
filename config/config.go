package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Mongo multi-document transactions need a replica set; on standalone
	// deployments the orchestrator falls back to claim-then-insert.
	MongoTransactions bool `mapstructure:"MONGO_TRANSACTIONS"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Stripe.
	StripeKey        string `mapstructure:"STRIPE_KEY"`
	OnboardRefresh   string `mapstructure:"ONBOARD_REFRESH_URL"`
	OnboardReturn    string `mapstructure:"ONBOARD_RETURN_URL"`
	DefaultCurrency  string `mapstructure:"DEFAULT_CURRENCY"`
	PlatformFeeRate  float64
	FeeRateBasisPts  int `mapstructure:"FEE_RATE_BASIS_POINTS"`

	// Google Maps API key for the distance-matrix proxy.
	GoogleAPIKey string `mapstructure:"GOOGLE_API_KEY"`

	// Stale-claim sweep.
	ClaimSweepAfterMin int    `mapstructure:"CLAIM_SWEEP_AFTER_MIN"`
	ClaimSweepCron     string `mapstructure:"CLAIM_SWEEP_CRON"`
}

// FirebaseServiceAccountKeyPath locates the FCM credentials file.
var FirebaseServiceAccountKeyPath = "serviceAccountKey.json"

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("MONGO_TRANSACTIONS", false)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("GOOGLE_API_KEY", "")
	viper.SetDefault("STRIPE_KEY", "")
	viper.SetDefault("ONBOARD_REFRESH_URL", "https://autobook.app/onboard/refresh")
	viper.SetDefault("ONBOARD_RETURN_URL", "https://autobook.app/onboard/complete")
	viper.SetDefault("DEFAULT_CURRENCY", "eur")
	viper.SetDefault("FEE_RATE_BASIS_POINTS", 250)
	viper.SetDefault("CLAIM_SWEEP_AFTER_MIN", 15)
	viper.SetDefault("CLAIM_SWEEP_CRON", "@every 5m")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig.PlatformFeeRate = float64(AppConfig.FeeRateBasisPts) / 10000
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
