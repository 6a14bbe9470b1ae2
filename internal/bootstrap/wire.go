package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/Ansan-Yabesh/BookAPI/internal/application/account"
	"github.com/Ansan-Yabesh/BookAPI/internal/application/book"
	"github.com/Ansan-Yabesh/BookAPI/internal/config"
	"github.com/Ansan-Yabesh/BookAPI/internal/infrastructure/db/postgres"
	"github.com/Ansan-Yabesh/BookAPI/internal/infrastructure/memory"
	"github.com/Ansan-Yabesh/BookAPI/internal/infrastructure/messaging/rabbitmq"
	"github.com/Ansan-Yabesh/BookAPI/internal/infrastructure/redis"
	"github.com/Ansan-Yabesh/BookAPI/internal/infrastructure/security"
	"github.com/Ansan-Yabesh/BookAPI/internal/logger"
	http_handlers "github.com/Ansan-Yabesh/BookAPI/internal/transport/http/handlers"
	"github.com/Ansan-Yabesh/BookAPI/internal/transport/http/middleware"
	"github.com/Ansan-Yabesh/BookAPI/internal/transport/http/router"
)

/*
========================
 Public entry (prod)
========================
*/

func NewServer() (*http.Server, func(), error) {
	return newServer(defaultDeps())
}

// NewServerWithDeps allows injecting dependencies for testing
func NewServerWithDeps(deps Deps) (*http.Server, func(), error) {
	return newServer(deps)
}

/*
========================
 Dependency injection
========================
*/

type Deps struct {
	LoadConfig func() (*config.Config, error)

	NewDB func(addr string, debug bool) (DBCloser, error)

	NewRedis func(addr, password string, db int) RedisClient

	NewNotifier func(rabbitURL string) (account.Notifier, error)

	NewRouter func(router.Deps) (http.Handler, error)
}

type DBCloser interface {
	Close() error
}

type RedisClient interface {
	Ping(ctx context.Context) error
	Close() error
}

/*
========================
 Core bootstrap logic
========================
*/

func newServer(deps Deps) (*http.Server, func(), error) {
	// 0) config
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	// 1) db
	db, err := deps.NewDB(cfg.DBAddr, cfg.Env == "dev")
	if err != nil {
		return nil, nil, err
	}

	cleanupFns := []func(){
		func() { _ = db.Close() },
	}

	sqlDB, ok := db.(*sql.DB)
	if !ok {
		runCleanup(cleanupFns)
		return nil, nil, errors.New("bootstrap: NewDB did not return *sql.DB")
	}

	accountRepo := postgres.NewAccountRepo(sqlDB)
	bookRepo := postgres.NewBookRepo(sqlDB)

	// 2) redis (best-effort)
	var redisCli RedisClient
	if deps.NewRedis != nil && cfg.RedisAddr != "" {
		c := deps.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := c.Ping(ctx); err != nil {
			logger.Logger.Warn().Err(err).Msg("redis unavailable; cache and rate limits disabled")
			_ = c.Close()
		} else {
			logger.Logger.Info().Msg("redis connected")
			redisCli = c
			cleanupFns = append(cleanupFns, func() { _ = c.Close() })
		}
	}

	var bookCache book.Cache
	var fwLimiter middleware.RateLimiter
	if redisCli != nil {
		rc, ok := redisCli.(*redis.Client)
		if !ok {
			runCleanup(cleanupFns)
			return nil, nil, errors.New("bootstrap: NewRedis did not return *redis.Client")
		}
		bookCache = redis.NewCache(rc)
		fwLimiter = redis.NewFixedWindowLimiter(rc)
	}

	// 3) notifier (degrades to log-only in dev)
	var notifier account.Notifier
	if deps.NewNotifier != nil && cfg.RabbitURL != "" {
		notifier, err = deps.NewNotifier(cfg.RabbitURL)
		if err != nil {
			if cfg.Env == "dev" {
				logger.Logger.Warn().Err(err).Msg("rabbitmq unavailable; using log notifier")
				notifier = memory.NewLogNotifier()
			} else {
				runCleanup(cleanupFns)
				return nil, nil, err
			}
		} else if c, ok := notifier.(interface{ Close() error }); ok {
			cleanupFns = append(cleanupFns, func() { _ = c.Close() })
		}
	} else {
		logger.Logger.Warn().Msg("RABBIT_URL unset; mail goes to the log")
		notifier = memory.NewLogNotifier()
	}

	// 4) security
	logger.Logger.Info().Str("issuer", cfg.JWTIssuer).Msg("initializing jwt signer")
	hasher := security.NewBcryptHasher(cfg.BcryptCost)
	signer := security.NewJWTSigner(cfg.JWTSecret, cfg.JWTIssuer)

	// seed (dev only)
	if cfg.Env == "dev" {
		postgres.SeedAccounts(context.Background(), accountRepo, hasher)
	}

	// 5) services
	accountSvc := account.NewService(
		accountRepo,
		hasher,
		signer,
		notifier,
		account.Config{
			SessionTTL: cfg.SessionTokenTTL,
			OTPTTL:     cfg.OTPTTL,
		},
	).WithLogger(logger.Logger)

	bookSvc := book.NewService(
		bookRepo,
		bookCache,
		book.Config{
			CacheDetailsTTL: cfg.CacheDetailsTTL,
			CacheListTTL:    cfg.CacheListTTL,
		},
	).WithLogger(logger.Logger)

	// 6) handlers + router
	authH := http_handlers.NewAuthHandler(accountSvc)
	bookH := http_handlers.NewBookHandler(bookSvc)
	healthH := http_handlers.NewHealthHandler(sqlDB)

	mux, err := deps.NewRouter(router.Deps{
		Health:   healthH,
		Auth:     authH,
		Books:    bookH,
		Verifier: signer,
		Limiter:  fwLimiter,
		Rate: router.RateConfig{
			Enabled:     cfg.RLEnabled,
			Limit:       cfg.RLLimit,
			Window:      cfg.RLWindow,
			LoginLimit:  cfg.RLLoginLimit,
			ResendLimit: cfg.RLResendOTP,
			AuthWindow:  cfg.RLAuthWindow,
		},
	})
	if err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	// 7) server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	cleanup := func() {
		runCleanup(cleanupFns)
	}

	return srv, cleanup, nil
}

/*
========================
 Default deps (prod)
========================
*/

func defaultDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		NewDB: func(addr string, debug bool) (DBCloser, error) {
			return config.NewDB(addr, debug)
		},
		NewRedis: func(addr, password string, db int) RedisClient {
			return redis.New(addr, password, db)
		},
		NewNotifier: func(url string) (account.Notifier, error) {
			return rabbitmq.NewNotifier(url)
		},
		NewRouter: func(d router.Deps) (http.Handler, error) {
			return router.New(d)
		},
	}
}

/*
========================
 helpers
========================
*/

func runCleanup(fns []func()) {
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
