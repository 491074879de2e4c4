package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm/logger"
)

// DevJWTSecret signs local tokens outside production when JWT_SECRET is unset
const DevJWTSecret = "digital_menu_dev_secret"

// DBConfig holds database configuration
type DBConfig struct {
	URL             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	LogLevel        logger.LogLevel
}

// IsPostgres reports whether URL points at a Postgres server rather than a SQLite file
func (c DBConfig) IsPostgres() bool {
	return strings.HasPrefix(c.URL, "postgres://") ||
		strings.HasPrefix(c.URL, "postgresql://") ||
		strings.HasPrefix(c.URL, "host=")
}

type ServerConfig struct {
	Port        string
	Env         string
	CORSOrigins []string
}

// AuthConfig selects the identity provider. Mode is "local" (accounts table + JWT)
// or "gotrue" (remote Supabase/GoTrue auth server).
type AuthConfig struct {
	Mode          string
	JWTSecret     string
	TokenTTL      time.Duration
	CookieName    string
	GoTrueURL     string
	GoTrueAPIKey  string
	GoTrueTimeout time.Duration
	SecureCookie  bool
}

// StorageConfig selects where dish images go. Driver is "local" or "s3".
type StorageConfig struct {
	Driver    string
	Bucket    string
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	PublicURL string
	UploadDir string
}

type LogConfig struct {
	Level string
}

type Config struct {
	ServiceName string
	Server      ServerConfig
	DB          DBConfig
	Auth        AuthConfig
	Storage     StorageConfig
	Log         LogConfig
}

// Load reads configuration from the environment, loading .env first when present
func Load() *Config {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	port := getEnv("PORT", "8080")
	return &Config{
		ServiceName: "digital-menu-api",
		Server: ServerConfig{
			Port:        port,
			Env:         getEnv("APP_ENV", "development"),
			CORSOrigins: getEnvAsList("CORS_ORIGINS", []string{"http://localhost:5173"}),
		},
		DB: DBConfig{
			URL:             getEnv("DATABASE_URL", "digital_menu.db"),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 20),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", time.Hour),
			LogLevel:        getEnvAsLogLevel("DB_LOG_LEVEL", logger.Warn),
		},
		Auth: AuthConfig{
			Mode:          getEnv("AUTH_MODE", "local"),
			JWTSecret:     getEnv("JWT_SECRET", DevJWTSecret),
			TokenTTL:      getEnvAsDuration("JWT_TTL", 24*time.Hour),
			CookieName:    getEnv("AUTH_COOKIE", "access_token"),
			GoTrueURL:     strings.TrimRight(getEnv("SUPABASE_URL", ""), "/"),
			GoTrueAPIKey:  getEnv("SUPABASE_ANON_KEY", ""),
			GoTrueTimeout: getEnvAsDuration("AUTH_TIMEOUT", 5*time.Second),
			SecureCookie:  getEnv("APP_ENV", "development") == "production",
		},
		Storage: StorageConfig{
			Driver:    getEnv("STORAGE_DRIVER", "local"),
			Bucket:    getEnv("STORAGE_BUCKET", "menu-images"),
			Endpoint:  getEnv("S3_ENDPOINT", ""),
			Region:    getEnv("S3_REGION", "auto"),
			AccessKey: getEnv("S3_ACCESS_KEY", ""),
			SecretKey: getEnv("S3_SECRET_KEY", ""),
			PublicURL: strings.TrimRight(getEnv("STORAGE_PUBLIC_URL", "http://localhost:"+port+"/uploads"), "/"),
			UploadDir: getEnv("UPLOAD_DIR", "uploads"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}
}

// Validate fails fast on settings the selected drivers cannot run without
func (c *Config) Validate() error {
	switch c.Auth.Mode {
	case "local":
		if c.Auth.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required when AUTH_MODE=local")
		}
		if c.Server.Env == "production" && c.Auth.JWTSecret == DevJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set to a private value in production")
		}
	case "gotrue":
		if c.Auth.GoTrueURL == "" || c.Auth.GoTrueAPIKey == "" {
			return fmt.Errorf("SUPABASE_URL and SUPABASE_ANON_KEY are required when AUTH_MODE=gotrue")
		}
	default:
		return fmt.Errorf("unknown AUTH_MODE %q", c.Auth.Mode)
	}

	switch c.Storage.Driver {
	case "local":
	case "s3":
		if c.Storage.Endpoint == "" || c.Storage.AccessKey == "" || c.Storage.SecretKey == "" {
			return fmt.Errorf("S3_ENDPOINT, S3_ACCESS_KEY and S3_SECRET_KEY are required when STORAGE_DRIVER=s3")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}
	return nil
}

// LogFields returns the non-secret part of the configuration for the startup log line
func (c *Config) LogFields() []zap.Field {
	return []zap.Field{
		zap.String("service", c.ServiceName),
		zap.String("environment", c.Server.Env),
		zap.String("port", c.Server.Port),
		zap.Bool("postgres", c.DB.IsPostgres()),
		zap.String("auth_mode", c.Auth.Mode),
		zap.String("storage_driver", c.Storage.Driver),
		zap.String("storage_bucket", c.Storage.Bucket),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if v, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return v
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return v
	}
	return fallback
}

func getEnvAsList(key string, fallback []string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvAsLogLevel(key string, fallback logger.LogLevel) logger.LogLevel {
	switch getEnv(key, "") {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "warn":
		return logger.Warn
	case "info":
		return logger.Info
	default:
		return fallback
	}
}
