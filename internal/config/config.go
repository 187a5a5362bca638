package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Media    MediaConfig
	Cache    CacheConfig
	GitHub   GitHubConfig
	App      AppConfig
}

type ServerConfig struct {
	Port         string
	MaxUploadMB  int
	CORSOrigins  []string
	ShutdownWait time.Duration
}

type DatabaseConfig struct {
	URL            string
	MaxConns       int
	MigrateOnStart bool
}

type MediaConfig struct {
	Endpoint          string
	AccessKey         string
	SecretKey         string
	UseSSL            bool
	Bucket            string
	PublicURL         string
	BannerCollection  string
	GalleryCollection string
}

type CacheConfig struct {
	RedisURL string
	TTL      time.Duration
}

type GitHubConfig struct {
	Enabled bool
	Token   string
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			MaxUploadMB:  getEnvAsInt("MAX_UPLOAD_MB", 32),
			CORSOrigins:  getEnvAsList("CORS_ORIGINS", []string{"*"}),
			ShutdownWait: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			URL:            getEnv("DATABASE_URL", ""),
			MaxConns:       getEnvAsInt("DB_MAX_CONNS", 10),
			MigrateOnStart: getEnvAsBool("MIGRATE_ON_START", true),
		},
		Media: MediaConfig{
			Endpoint:          getEnv("MEDIA_ENDPOINT", "localhost:9000"),
			AccessKey:         getEnv("MEDIA_ACCESS_KEY", ""),
			SecretKey:         getEnv("MEDIA_SECRET_KEY", ""),
			UseSSL:            getEnvAsBool("MEDIA_USE_SSL", false),
			Bucket:            getEnv("MEDIA_BUCKET", "portfolio"),
			PublicURL:         getEnv("MEDIA_PUBLIC_URL", ""),
			BannerCollection:  getEnv("MEDIA_BANNER_COLLECTION", "portfolio-project-images"),
			GalleryCollection: getEnv("MEDIA_GALLERY_COLLECTION", "portfolio-project-galleries"),
		},
		Cache: CacheConfig{
			RedisURL: getEnv("REDIS_URL", ""),
			TTL:      getEnvAsDuration("CACHE_TTL", time.Minute),
		},
		GitHub: GitHubConfig{
			Enabled: getEnvAsBool("GITHUB_LOOKUP", true),
			Token:   getEnv("GITHUB_TOKEN", ""),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Media.Endpoint == "" || c.Media.Bucket == "" {
		return fmt.Errorf("MEDIA_ENDPOINT and MEDIA_BUCKET are required")
	}
	if c.Media.BannerCollection == "" || c.Media.GalleryCollection == "" {
		return fmt.Errorf("media collections must not be empty")
	}
	if c.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("MAX_UPLOAD_MB must be positive")
	}
	return nil
}

// SlogLevel maps LOG_LEVEL to a slog level; unknown values mean info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// IsProduction reports whether APP_ENV names a production deployment.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.App.Environment, "production")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		slog.Warn("invalid integer, using default", "key", key, "default", defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		slog.Warn("invalid boolean, using default", "key", key, "default", defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		slog.Warn("invalid duration, using default", "key", key, "default", defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
