package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	//App
	Env string // dev / staging / prod
	//HTTP
	HTTPAddr string
	//Auth / Security
	JWTSecret       string
	JWTIssuer       string
	SessionTokenTTL time.Duration
	OTPTTL          time.Duration
	BcryptCost      int

	// Infrastructure. DBAddr is the only one that is required: without
	// Postgres the service cannot persist accounts or books. Redis and
	// RabbitMQ are optional and degrade (no cache / rate limit, log-only
	// mail) when unset.
	DBAddr        string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RabbitURL     string

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration

	// Rate limiting
	RLEnabled    bool
	RLLimit      int
	RLWindow     time.Duration
	RLLoginLimit int
	RLResendOTP  int
	RLAuthWindow time.Duration

	// Catalog cache
	CacheDetailsTTL time.Duration
	CacheListTTL    time.Duration
}

func Load() (*Config, error) {
	// .env is a local-dev convenience; absence is not an error.
	_ = godotenv.Load()

	cfg := &Config{
		Env:      getEnv("ENV", "dev"),
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
	}

	// required values
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("missing required env var: JWT_SECRET")
	}
	cfg.JWTIssuer = getEnv("JWT_ISSUER", "bookapi")

	cfg.DBAddr = os.Getenv("DB_ADDR")
	if cfg.DBAddr == "" {
		return nil, fmt.Errorf("missing required env var: DB_ADDR")
	}

	// optional infra
	cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.RabbitURL = os.Getenv("RABBIT_URL")

	var err error
	if cfg.RedisDB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}

	if cfg.SessionTokenTTL, err = getDuration("SESSION_TOKEN_TTL", time.Hour); err != nil {
		return nil, err
	}
	if cfg.OTPTTL, err = getDuration("OTP_TTL", 10*time.Minute); err != nil {
		return nil, err
	}
	if cfg.BcryptCost, err = getInt("BCRYPT_COST", 12); err != nil {
		return nil, err
	}

	if cfg.HTTPReadTimeout, err = getDuration("HTTP_READ_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.HTTPWriteTimeout, err = getDuration("HTTP_WRITE_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.HTTPIdleTimeout, err = getDuration("HTTP_IDLE_TIMEOUT", time.Minute); err != nil {
		return nil, err
	}

	cfg.RLEnabled = getEnv("RATE_LIMIT_ENABLED", "true") == "true"
	if cfg.RLLimit, err = getInt("RATE_LIMIT_PER_IP", 120); err != nil {
		return nil, err
	}
	if cfg.RLWindow, err = getDuration("RATE_LIMIT_WINDOW", time.Minute); err != nil {
		return nil, err
	}
	if cfg.RLLoginLimit, err = getInt("RATE_LIMIT_LOGIN", 10); err != nil {
		return nil, err
	}
	if cfg.RLResendOTP, err = getInt("RATE_LIMIT_RESEND_OTP", 3); err != nil {
		return nil, err
	}
	if cfg.RLAuthWindow, err = getDuration("RATE_LIMIT_AUTH_WINDOW", time.Minute); err != nil {
		return nil, err
	}

	if cfg.CacheDetailsTTL, err = getDuration("CACHE_BOOK_TTL", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.CacheListTTL, err = getDuration("CACHE_LIST_TTL", 15*time.Second); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %q: %w", key, v, err)
	}
	return d, nil
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for %s: %q: %w", key, v, err)
	}
	return n, nil
}
