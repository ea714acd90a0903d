package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// JWTConfig defines the issuer/audience/secret triple for operator tokens.
type JWTConfig struct {
	Issuer   string
	Audience string
	Secret   []byte
}

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr                 string
	StoreDriver          string
	DataDir              string
	DatabaseDSN          string
	MongoURI             string
	MongoDatabase        string
	EvaluationCollection string
	StoreTimeout         time.Duration
	IDStrategy           string
	SnowflakeNode        int64
	InvertPublicWifi     bool
	AllowedOrigins       []string
	RateLimitRequests    int
	RateLimitWindow      time.Duration
	MaxRequestBody       int64
	AdminJWT             *JWTConfig
	MessengerEndpoint    string
	MessengerDestination string
	MessengerTimeout     time.Duration
	MetricsEnabled       bool
	ServerLog            *log.Logger
}

// Load reads a local .env file if present, then environment variables, and
// returns a fully populated Config. Malformed values fall back to defaults.
func Load() Config {
	_ = godotenv.Load()

	logger := log.New(os.Stdout, "[secucheck-api] ", log.LstdFlags|log.Lshortfile)

	addr := strings.TrimSpace(os.Getenv("HTTP_ADDR"))
	if addr == "" {
		if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
			addr = ":" + port
		} else {
			addr = ":5000"
		}
	}

	var adminJWT *JWTConfig
	if secret := strings.TrimSpace(os.Getenv("ADMIN_JWT_SECRET")); secret != "" {
		adminJWT = &JWTConfig{
			Issuer:   envOrDefault("ADMIN_JWT_ISSUER", "secucheck-admin"),
			Audience: strings.TrimSpace(os.Getenv("ADMIN_JWT_AUDIENCE")),
			Secret:   []byte(secret),
		}
	}

	cfg := Config{
		Addr:                 addr,
		StoreDriver:          strings.ToLower(envOrDefault("STORE_DRIVER", "file")),
		DataDir:              envOrDefault("DATA_DIR", "./data"),
		DatabaseDSN:          strings.TrimSpace(os.Getenv("DB_DSN")),
		MongoURI:             envOrDefault("MONGO_URI", "mongodb://mongo:27017"),
		MongoDatabase:        envOrDefault("MONGO_DB", "secucheck"),
		EvaluationCollection: envOrDefault("EVALUATION_COLLECTION", "evaluations"),
		StoreTimeout:         parseDuration(logger, "STORE_TIMEOUT", 10*time.Second),
		IDStrategy:           strings.ToLower(envOrDefault("ID_STRATEGY", "snowflake")),
		SnowflakeNode:        int64(parseInt(logger, "SNOWFLAKE_NODE", 1)),
		InvertPublicWifi:     parseBool(logger, "SCORING_PUBLIC_WIFI_INVERTED", false),
		AllowedOrigins:       parseList("API_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		RateLimitRequests:    parseInt(logger, "RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:      parseDuration(logger, "RATE_LIMIT_WINDOW", 15*time.Minute),
		MaxRequestBody:       int64(parseInt(logger, "MAX_REQUEST_BODY", 10<<10)),
		AdminJWT:             adminJWT,
		MessengerEndpoint:    strings.TrimRight(strings.TrimSpace(os.Getenv("MESSENGER_GATEWAY_URL")), "/"),
		MessengerDestination: envOrDefault("MESSENGER_DESTINATION", "discord"),
		MessengerTimeout:     parseDuration(logger, "MESSENGER_TIMEOUT", 3*time.Second),
		MetricsEnabled:       parseBool(logger, "METRICS_ENABLED", true),
		ServerLog:            logger,
	}

	cfg.ServerLog.Printf("loaded config: addr=%q store=%q idStrategy=%q invertPublicWifi=%t admin=%t messenger=%q",
		cfg.Addr, cfg.StoreDriver, cfg.IDStrategy, cfg.InvertPublicWifi, cfg.AdminJWT != nil, cfg.MessengerEndpoint)

	return cfg
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}

func parseDuration(logger *log.Logger, key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		logger.Printf("ignoring %s=%q: want a positive duration", key, raw)
		return fallback
	}
	return parsed
}

func parseInt(logger *log.Logger, key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < 0 {
		logger.Printf("ignoring %s=%q: want a non-negative integer", key, raw)
		return fallback
	}
	return parsed
}

func parseBool(logger *log.Logger, key string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		logger.Printf("ignoring %s=%q: want true or false", key, raw)
		return fallback
	}
	return parsed
}
