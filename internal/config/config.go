package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Storage  StorageConfig
	Redis    RedisConfig
	Mail     MailConfig
}

type ServerConfig struct {
	Port      int
	Env       string
	BodyLimit int
}

// DatabaseConfig holds the MongoDB connection. An empty URI leaves the
// process running without a store.
type DatabaseConfig struct {
	URI  string
	Name string
}

type AuthConfig struct {
	FirebaseProjectID string
	JWTSecret         string
}

type StorageConfig struct {
	Driver         string
	UploadDir      string
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
	TokenTTL time.Duration
}

type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Workers  int
}

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:      getEnvAsInt("PORT", 8080),
			Env:       getEnv("ENV", "development"),
			BodyLimit: getEnvAsInt("BODY_LIMIT", 500*1024*1024),
		},
		Database: DatabaseConfig{
			URI:  getEnv("MONGO_URI", ""),
			Name: getEnv("MONGO_DB", "talentbridge"),
		},
		Auth: AuthConfig{
			FirebaseProjectID: getEnv("FIREBASE_PROJECT_ID", ""),
			JWTSecret:         getEnv("JWT_SECRET", ""),
		},
		Storage: StorageConfig{
			Driver:         getEnv("STORAGE_DRIVER", StorageLocal),
			UploadDir:      getEnv("UPLOAD_DIR", "./uploads"),
			MinioEndpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			MinioAccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			MinioSecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			MinioBucket:    getEnv("MINIO_BUCKET", "uploads"),
			MinioUseSSL:    getEnvAsBool("MINIO_USE_SSL", false),
		},
		Redis: RedisConfig{
			Address:  getEnv("REDIS_ADDRESS", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			TokenTTL: getEnvAsDuration("TOKEN_CACHE_TTL", 5*time.Minute),
		},
		Mail: MailConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnvAsInt("SMTP_PORT", 587),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("MAIL_FROM", "no-reply@talentbridge.local"),
			Workers:  getEnvAsInt("MAIL_WORKERS", 2),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.Storage.Driver {
	case StorageLocal, StorageMinio:
	default:
		return fmt.Errorf("unknown storage driver: %q", c.Storage.Driver)
	}

	if c.Mail.Workers < 1 {
		c.Mail.Workers = 1
	}

	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
