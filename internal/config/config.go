package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	HTTPPort    string
	LogLevel    string

	// FrontendURL is the browser origin allowed to call this API.
	FrontendURL string

	// BaseURL, when set, overrides request-derived link construction for
	// uploaded assets. Recommended behind reverse proxies.
	BaseURL string

	// TrustedProxies lists proxy addresses whose forwarded headers are
	// honored when deriving scheme/host. Empty disables proxy trust.
	TrustedProxies []string

	UploadDir      string
	UploadMaxBytes int64

	// AuthJWTSecret verifies identity tokens minted by the external auth
	// provider. The service never issues tokens itself.
	AuthJWTSecret string

	RedisAddr string

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
	DBConnMaxIdleTime int
}

// DefaultUploadMaxBytes caps uploaded images at 5 MiB.
const DefaultUploadMaxBytes = 5 << 20

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		AppName:        getenv("APP_SERVICE", "productify"),
		AppVersion:     getenv("APP_VERSION", "0.1.0"),
		Environment:    getenv("ENVIRONMENT", "development"),
		HTTPPort:       getenv("HTTP_PORT", "8080"),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		FrontendURL:    strings.TrimSpace(getenv("FRONTEND_URL", "")),
		BaseURL:        strings.TrimSpace(getenv("BASE_URL", "")),
		TrustedProxies: parseList(getenv("TRUSTED_PROXIES", "")),
		UploadDir:      getenv("UPLOAD_DIR", "uploads"),
		UploadMaxBytes: getenvInt64("UPLOAD_MAX_BYTES", DefaultUploadMaxBytes),
		AuthJWTSecret:  strings.TrimSpace(getenv("AUTH_JWT_SECRET", "")),
		RedisAddr:      strings.TrimSpace(getenv("REDIS_ADDR", "")),

		DBType:     getenv("DATABASE_TYPE", "postgres"),
		DBHost:     getenv("DATABASE_HOST", "localhost"),
		DBPort:     getenv("DATABASE_PORT", "5432"),
		DBName:     getenv("DATABASE_NAME", "productify"),
		DBUser:     getenv("DATABASE_USER", "postgres"),
		DBPassword: getenv("DATABASE_PASSWORD", "postgres"),
		DBSSLMode:  getenv("DATABASE_SSLMODE", "disable"),
	}

	return cfg
}

// TrustProxies reports whether forwarded headers should be honored.
func (c Config) TrustProxies() bool {
	return len(c.TrustedProxies) > 0
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt64(key string, def int64) int64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return def
	}
	return parsed
}

func parseList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
