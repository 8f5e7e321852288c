package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// Config chứa toàn bộ application configuration
// Struct này được populate từ environment variables
type Config struct {
	App     AppConfig
	Redis   RedisConfig
	JWT     JWTConfig
	Session SessionConfig
	Email   EmailConfig
	Media   MediaConfig
	MinIO   MinIOConfig
	CORS    CORSConfig
}

type AppConfig struct {
	Name            string
	Environment     string // development, staging, production
	Port            string
	Version         string
	LogLevel        string
	SiteURL         string // used for absolute links in emails
	MaintenanceMode bool
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret            string
	AccessTokenExpiry int // minutes
}

type SessionConfig struct {
	CookieName string
	TTL        time.Duration
}

// =====================================================
// EMAIL CONFIGURATION
// =====================================================

type EmailConfig struct {
	Backend      string // console, smtp
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	From         string
	ContactEmail string
}

// =====================================================
// MEDIA CONFIGURATION
// =====================================================

type MediaConfig struct {
	Backend string // local, minio
	Root    string // local directory for uploads
	URL     string // public prefix, e.g. /media/
}

type MinIOConfig struct {
	Endpoint  string // localhost:9000
	AccessKey string // minioadmin
	SecretKey string // minioadmin
	Bucket    string // localbiz
	UseSSL    bool   // false for local
}

type CORSConfig struct {
	AllowedOrigins []string
}

// Load đọc config từ environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:            getEnv("APP_NAME", "LocalBiz"),
			Environment:     getEnv("APP_ENV", "development"),
			Port:            getEnv("APP_PORT", "8080"),
			Version:         getEnv("APP_VERSION", "1.0.0"),
			LogLevel:        getEnv("LOG_LEVEL", "info"),
			SiteURL:         strings.TrimRight(getEnv("SITE_URL", "http://localhost:8080"), "/"),
			MaintenanceMode: getEnvBool("MAINTENANCE_MODE", false),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:            getEnv("JWT_SECRET", defaultJWTSecret),
			AccessTokenExpiry: getEnvInt("JWT_ACCESS_EXPIRY", 60), // minutes
		},
		Session: SessionConfig{
			CookieName: getEnv("SESSION_COOKIE_NAME", "localbiz_session"),
			TTL:        getEnvDuration("SESSION_TTL", 24*time.Hour),
		},
		Email: EmailConfig{
			Backend:      getEnv("EMAIL_BACKEND", "console"),
			SMTPHost:     getEnv("SMTP_HOST", "localhost"),
			SMTPPort:     getEnv("SMTP_PORT", "1025"),
			SMTPUsername: getEnv("SMTP_USERNAME", ""),
			SMTPPassword: getEnv("SMTP_PASSWORD", ""),
			From:         getEnv("DEFAULT_FROM_EMAIL", "noreply@localbiz.com"),
			ContactEmail: getEnv("CONTACT_EMAIL", "contact@localbiz.com"),
		},
		Media: MediaConfig{
			Backend: getEnv("MEDIA_BACKEND", "local"),
			Root:    getEnv("MEDIA_ROOT", "./media"),
			URL:     getEnv("MEDIA_URL", "/media/"),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "localbiz"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		},
	}

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate kiểm tra config có hợp lệ không
func (c *Config) Validate() error {
	switch c.Email.Backend {
	case "console", "smtp":
	default:
		return fmt.Errorf("unknown EMAIL_BACKEND %q (expected console or smtp)", c.Email.Backend)
	}

	switch c.Media.Backend {
	case "local", "minio":
	default:
		return fmt.Errorf("unknown MEDIA_BACKEND %q (expected local or minio)", c.Media.Backend)
	}

	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}

	// Production environment phải có JWT secret
	if c.IsProduction() {
		if c.JWT.Secret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if os.Getenv("DB_PASSWORD") == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
