package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins string

	DBHost    string
	DBUser    string
	DBPass    string
	DBName    string
	DBPort    string
	DBSSLMode string

	RedisURL string

	MeiliSearchHost string
	MeiliMasterKey  string

	CloudinaryCloudName    string
	CloudinaryUploadFolder string

	JWTSecret string
	JWTTTL    time.Duration

	// Cache TTL classes, see internal/cache.
	CacheItemTTL  time.Duration
	CacheListTTL  time.Duration
	CacheCountTTL time.Duration
	CacheNameTTL  time.Duration
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		DBHost:    getEnv("DB_HOST", "localhost"),
		DBUser:    getEnv("DB_USER", "postgres"),
		DBPass:    os.Getenv("DB_PASS"),
		DBName:    getEnv("DB_NAME", "devhub"),
		DBPort:    getEnv("DB_PORT", "5432"),
		DBSSLMode: getEnv("DB_SSLMODE", "disable"),

		RedisURL: os.Getenv("REDIS_URL"),

		MeiliSearchHost: getEnv("MEILISEARCH_HOST", "http://localhost:7700"),
		MeiliMasterKey:  os.Getenv("MEILI_MASTER_KEY"),

		CloudinaryCloudName:    os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryUploadFolder: getEnv("CLOUDINARY_UPLOAD_FOLDER", "devhub"),

		JWTSecret: getEnv("JWT_SECRET", "change-me"),
	}

	var err error
	cfg.JWTTTL, err = parseDuration(getEnv("JWT_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
	}

	cfg.CacheItemTTL, err = parseDuration(getEnv("CACHE_ITEM_TTL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_ITEM_TTL: %w", err)
	}
	cfg.CacheListTTL, err = parseDuration(getEnv("CACHE_LIST_TTL", "30m"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_LIST_TTL: %w", err)
	}
	cfg.CacheCountTTL, err = parseDuration(getEnv("CACHE_COUNT_TTL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_COUNT_TTL: %w", err)
	}
	cfg.CacheNameTTL, err = parseDuration(getEnv("CACHE_NAME_TTL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_NAME_TTL: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func parseDuration(s string) (time.Duration, error) {
	return time.ParseDuration(s)
}
