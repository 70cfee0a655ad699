package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App       AppConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	Logger    LoggerConfig
	Auth      AuthConfig
	Admin     AdminConfig
	RateLimit RateLimitConfig
	Email     EmailConfig
	Blob      BlobConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
	APIPrefix             string
	CORSOrigins           string
	BodyLimitMB           int
}

// MongoConfig holds document store connection values.
type MongoConfig struct {
	URI               string
	Database          string
	MaxPoolSize       uint64
	ConnectTimeoutSec int
	EnsureIndexes     bool
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	BcryptCost            int
	OTPTTLMinutes         int
	CookieName            string
}

// AdminConfig seeds the initial administrator account.
type AdminConfig struct {
	Bootstrap bool
	Email     string
	Password  string
	Name      string
}

// RateLimitConfig bounds OTP issuance and login attempts per client.
type RateLimitConfig struct {
	Requests      int
	WindowSeconds int
}

// EmailConfig selects and configures the mail transport.
type EmailConfig struct {
	Transport     string
	From          string
	FromName      string
	SMTPHost      string
	SMTPPort      int
	SMTPUser      string
	SMTPPass      string
	SMTPUseTLS    bool
	MailerSendKey string
}

// BlobConfig selects and configures binary storage.
type BlobConfig struct {
	Provider            string
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	LocalDir            string
	PublicBaseURL       string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "asset-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
			APIPrefix:             getEnv("API_PREFIX", "/api/v1"),
			CORSOrigins:           getEnv("CORS_ORIGINS", "http://localhost:3000"),
			BodyLimitMB:           getEnvAsInt("HTTP_BODY_LIMIT_MB", 50),
		},
		Mongo: MongoConfig{
			URI:               getEnv("MONGODB_URI", "mongodb://127.0.0.1:27017"),
			Database:          getEnv("MONGODB_DATABASE", "assets"),
			MaxPoolSize:       uint64(getEnvAsInt("MONGODB_MAX_POOL_SIZE", 50)),
			ConnectTimeoutSec: getEnvAsInt("MONGODB_CONNECT_TIMEOUT_SECONDS", 20),
			EnsureIndexes:     getEnvAsBool("MONGODB_ENSURE_INDEXES", true),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:             getEnv("AUTH_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 3*24*60),
			BcryptCost:            getEnvAsInt("AUTH_BCRYPT_COST", 10),
			OTPTTLMinutes:         getEnvAsInt("AUTH_OTP_TTL_MINUTES", 10),
			CookieName:            getEnv("AUTH_COOKIE_NAME", "token"),
		},
		Admin: AdminConfig{
			Bootstrap: getEnvAsBool("ADMIN_BOOTSTRAP", false),
			Email:     os.Getenv("ADMIN_EMAIL"),
			Password:  os.Getenv("ADMIN_PASSWORD"),
			Name:      getEnv("ADMIN_NAME", "Administrator"),
		},
		RateLimit: RateLimitConfig{
			Requests:      getEnvAsInt("RATE_LIMIT_REQUESTS", 5),
			WindowSeconds: getEnvAsInt("RATE_LIMIT_WINDOW_SECONDS", 900),
		},
		Email: EmailConfig{
			Transport:     strings.ToLower(getEnv("MAIL_TRANSPORT", "log")),
			From:          getEnv("MAIL_FROM", "noreply@example.com"),
			FromName:      getEnv("MAIL_FROM_NAME", "Asset Service"),
			SMTPHost:      getEnv("SMTP_HOST", "127.0.0.1"),
			SMTPPort:      getEnvAsInt("SMTP_PORT", 1025),
			SMTPUser:      os.Getenv("SMTP_USER"),
			SMTPPass:      os.Getenv("SMTP_PASS"),
			SMTPUseTLS:    getEnvAsBool("SMTP_USE_TLS", false),
			MailerSendKey: os.Getenv("MAILERSEND_API_KEY"),
		},
		Blob: BlobConfig{
			Provider:            strings.ToLower(getEnv("BLOB_PROVIDER", "local")),
			CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
			CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
			CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),
			LocalDir:            getEnv("BLOB_LOCAL_DIR", "uploads"),
			PublicBaseURL:       getEnv("BLOB_PUBLIC_BASE_URL", "http://localhost:8080/uploads"),
		},
	}

	if cfg.App.IsProduction() && cfg.Auth.JWTSecret == "dev-secret" {
		return nil, fmt.Errorf("AUTH_JWT_SECRET must be set in production")
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// IsProduction reports whether the service runs in production mode.
func (a AppConfig) IsProduction() bool {
	return strings.EqualFold(a.Env, "production")
}

// TokenTTL returns the session lifetime.
func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.AccessTokenTTLMinutes) * time.Minute
}

// OTPTTL returns how long an issued one-time code stays valid.
func (a AuthConfig) OTPTTL() time.Duration {
	if a.OTPTTLMinutes <= 0 {
		return 10 * time.Minute
	}
	return time.Duration(a.OTPTTLMinutes) * time.Minute
}

// Window returns the rate limit window.
func (r RateLimitConfig) Window() time.Duration {
	return time.Duration(r.WindowSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
