package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Env                string
	Port               string
	DBURL              string
	JWTSecret          string
	AccessExpiryMin    int
	RefreshExpiryMin   int
	CodeExpiryMin      int
	RateLimitMax       int
	RateLimitWindowMin int
	SweepIntervalMin   int
	RedisAddr          string
	TwilioAccountSID   string
	TwilioAuthToken    string
	TwilioFromNumber   string
}

func Load() *Config {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	return &Config{
		Env:                getEnv("ENV", "development"),
		Port:               getEnv("PORT", "3000"),
		DBURL:              mustGetEnv("DB_URL"),
		JWTSecret:          mustGetEnv("JWT_SECRET"),
		AccessExpiryMin:    getEnvAsInt("ACCESS_TOKEN_EXPIRY", 60),
		RefreshExpiryMin:   getEnvAsInt("REFRESH_TOKEN_EXPIRY", 10080),
		CodeExpiryMin:      getEnvAsInt("CODE_EXPIRY", 10),
		RateLimitMax:       getEnvAsInt("RATE_LIMIT_MAX", 5),
		RateLimitWindowMin: getEnvAsInt("RATE_LIMIT_WINDOW", 15),
		SweepIntervalMin:   getEnvAsInt("SWEEP_INTERVAL", 60),
		RedisAddr:          getEnv("REDIS_ADDR", ""),
		TwilioAccountSID:   getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:    getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioFromNumber:   getEnv("TWILIO_FROM_NUMBER", ""),
	}
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func mustGetEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Fatalf("Missing required environment variable: %s", key)
	return ""
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}
