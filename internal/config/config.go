package config

import (
	"crypto/rsa"
	"encoding/base64"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/spawlov/auth-service/internal/utils"
)

const AppName = "auth-service"

// Config holds all application configuration.
type Config struct {
	AppPort string
	DBUrl   string

	RSAPrivateKey *rsa.PrivateKey
	RSAPublicKey  *rsa.PublicKey

	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration

	LoginRateLimitMax    int
	LoginRateLimitWindow time.Duration

	CORSAllowedOrigins []string
}

// Defaults for time-based configuration.
const (
	DefaultAccessTokenExpiry    = 15 * time.Minute
	DefaultRefreshTokenExpiry   = 30 * 24 * time.Hour
	DefaultLoginRateLimitMax    = 5
	DefaultLoginRateLimitWindow = 60 * time.Second
)

// LoadConfig reads the environment and returns a *Config. Missing required
// values are fatal: the service must not come up half-configured.
func LoadConfig() *Config {
	utils.Logger.Info("Loading config for app: ", AppName)

	appPort := os.Getenv("APP_PORT")
	if appPort == "" {
		utils.Logger.Fatal("APP_PORT env var is missing")
	}
	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		utils.Logger.Fatal("DB_URL env var is missing")
	}

	privateKey := loadRSAPrivateKey("JWT_PRIVATE_KEY_B64")
	publicKey := loadRSAPublicKey("JWT_PUBLIC_KEY_B64")

	return &Config{
		AppPort:              appPort,
		DBUrl:                dbURL,
		RSAPrivateKey:        privateKey,
		RSAPublicKey:         publicKey,
		AccessTokenExpiry:    envDuration("ACCESS_TOKEN_EXPIRY", DefaultAccessTokenExpiry),
		RefreshTokenExpiry:   envDuration("REFRESH_TOKEN_EXPIRY", DefaultRefreshTokenExpiry),
		LoginRateLimitMax:    envInt("LOGIN_RATE_LIMIT_MAX", DefaultLoginRateLimitMax),
		LoginRateLimitWindow: envDuration("LOGIN_RATE_LIMIT_WINDOW", DefaultLoginRateLimitWindow),
		CORSAllowedOrigins:   envList("CORS_ALLOWED_ORIGINS", []string{"*"}),
	}
}

// RSA keys arrive as base64-encoded PEM so they survive env-var transport.
func loadRSAPrivateKey(envVar string) *rsa.PrivateKey {
	pemBytes := decodePEMEnv(envVar)
	key, err := jwt.ParseRSAPrivateKeyFromPEM(pemBytes)
	if err != nil {
		utils.Logger.WithError(err).Fatalf("Failed to parse RSA private key from %s", envVar)
	}
	return key
}

func loadRSAPublicKey(envVar string) *rsa.PublicKey {
	pemBytes := decodePEMEnv(envVar)
	key, err := jwt.ParseRSAPublicKeyFromPEM(pemBytes)
	if err != nil {
		utils.Logger.WithError(err).Fatalf("Failed to parse RSA public key from %s", envVar)
	}
	return key
}

func decodePEMEnv(envVar string) []byte {
	raw := os.Getenv(envVar)
	if raw == "" {
		utils.Logger.Fatalf("%s env var is missing", envVar)
	}
	pemBytes, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		utils.Logger.WithError(err).Fatalf("Failed to base64-decode %s", envVar)
	}
	return pemBytes
}

func envDuration(envVar string, fallback time.Duration) time.Duration {
	raw := os.Getenv(envVar)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		utils.Logger.Warnf("Invalid %s '%s', using default %v", envVar, raw, fallback)
		return fallback
	}
	return d
}

func envInt(envVar string, fallback int) int {
	raw := os.Getenv(envVar)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		utils.Logger.Warnf("Invalid %s '%s', using default %d", envVar, raw, fallback)
		return fallback
	}
	return n
}

func envList(envVar string, fallback []string) []string {
	raw := os.Getenv(envVar)
	if raw == "" {
		return fallback
	}
	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
