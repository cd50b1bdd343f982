package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures process level configuration. It is built once at startup
// and passed explicitly into services; nothing mutates it afterwards.
type Server struct {
	Addr string

	// JWT configuration
	JWTSigningKey string
	JWTAlgorithm  string
	TokenTTL      time.Duration

	// QR generation configuration
	MaxDataLength          int
	DefaultSize            string
	DefaultFormat          string
	DefaultErrorCorrection string
	GenerationTimeout      time.Duration

	// Credential pair for token issuance. PasswordHash, when set, takes
	// precedence over the plaintext password and must be a bcrypt hash.
	AuthUsername     string
	AuthPassword     string
	AuthPasswordHash string

	LogLevel string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	cfg := Server{
		Addr:                   getEnv("QRGATE_ADDR", ":8080"),
		JWTSigningKey:          getEnv("JWT_SECRET_KEY", "dev-secret-key-change-in-production"),
		JWTAlgorithm:           getEnv("JWT_ALGORITHM", "HS256"),
		TokenTTL:               getDuration("TOKEN_TTL", 30*time.Minute),
		MaxDataLength:          getInt("MAX_DATA_LENGTH", 2000),
		DefaultSize:            getEnv("DEFAULT_SIZE", "medium"),
		DefaultFormat:          getEnv("DEFAULT_FORMAT", "png"),
		DefaultErrorCorrection: getEnv("DEFAULT_ERROR_CORRECTION", "M"),
		GenerationTimeout:      time.Duration(getInt("GENERATION_TIMEOUT_MS", 500)) * time.Millisecond,
		AuthUsername:           getEnv("AUTH_USERNAME", "admin"),
		AuthPassword:           os.Getenv("AUTH_PASSWORD"),
		AuthPasswordHash:       os.Getenv("AUTH_PASSWORD_HASH"),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
