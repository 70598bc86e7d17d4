package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	DatabaseURL    string
	JWTSecret      string
	JWTExpiresIn   time.Duration
	Port           string
	Env            string
	LogLevel       string
	RequestTimeout time.Duration
	BcryptCost     int

	Storage StorageConfig

	// RedisURL enables token revocation on logout when set.
	RedisURL string

	AdminEmail    string
	AdminPassword string
}

type StorageConfig struct {
	Endpoint  string
	Port      int
	UseSSL    bool
	AccessKey string
	SecretKey string
	Region    string
	PublicURL string
}

// Enabled reports whether an object store was configured.
func (s StorageConfig) Enabled() bool { return s.Endpoint != "" }

// URL is the endpoint base URL built from host, port and scheme.
func (s StorageConfig) URL() string {
	scheme := "http"
	if s.UseSSL {
		scheme = "https"
	}
	if s.Port == 0 {
		return fmt.Sprintf("%s://%s", scheme, s.Endpoint)
	}
	return fmt.Sprintf("%s://%s:%d", scheme, s.Endpoint, s.Port)
}

func (c *Config) IsProduction() bool { return c.Env == "production" }

// Load reads the environment, after merging a .env file when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		Port:          getenv("PORT", "8080"),
		Env:           getenv("APP_ENV", "development"),
		LogLevel:      getenv("LOG_LEVEL", "info"),
		RedisURL:      os.Getenv("REDIS_URL"),
		AdminEmail:    getenv("ADMIN_EMAIL", "admin@culturepassport.local"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		Storage: StorageConfig{
			Endpoint:  os.Getenv("STORAGE_ENDPOINT"),
			AccessKey: os.Getenv("STORAGE_ACCESS_KEY"),
			SecretKey: os.Getenv("STORAGE_SECRET_KEY"),
			Region:    getenv("STORAGE_REGION", "us-east-1"),
			PublicURL: os.Getenv("STORAGE_PUBLIC_URL"),
		},
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}

	var err error
	if cfg.JWTExpiresIn, err = durationEnv("JWT_EXPIRES_IN", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.RequestTimeout, err = durationEnv("REQUEST_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.BcryptCost, err = intEnv("BCRYPT_COST", bcrypt.DefaultCost); err != nil {
		return nil, err
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return nil, fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if cfg.Storage.Port, err = intEnv("STORAGE_PORT", 0); err != nil {
		return nil, err
	}
	if cfg.Storage.UseSSL, err = boolEnv("STORAGE_USE_SSL", false); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s: invalid duration %q", key, v)
	}
	return d, nil
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid number %q", key, v)
	}
	return n, nil
}

func boolEnv(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: invalid boolean %q", key, v)
	}
	return b, nil
}
