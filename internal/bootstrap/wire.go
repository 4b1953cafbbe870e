package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/ultimatetechie/ecommerce-api/internal/application/accounts"
	"github.com/ultimatetechie/ecommerce-api/internal/application/catalog"
	"github.com/ultimatetechie/ecommerce-api/internal/config"
	"github.com/ultimatetechie/ecommerce-api/internal/infrastructure/db/postgres"
	"github.com/ultimatetechie/ecommerce-api/internal/infrastructure/memory"
	rabbitmq_pub "github.com/ultimatetechie/ecommerce-api/internal/infrastructure/messaging/rabbitmq"
	"github.com/ultimatetechie/ecommerce-api/internal/infrastructure/redis"
	"github.com/ultimatetechie/ecommerce-api/internal/infrastructure/security"
	"github.com/ultimatetechie/ecommerce-api/internal/logger"
	"github.com/ultimatetechie/ecommerce-api/internal/metrics"
	http_handlers "github.com/ultimatetechie/ecommerce-api/internal/transport/http/handlers"
	"github.com/ultimatetechie/ecommerce-api/internal/transport/http/middleware"
	"github.com/ultimatetechie/ecommerce-api/internal/transport/http/response"
	"github.com/ultimatetechie/ecommerce-api/internal/transport/http/router"
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

	NewDB func(addr string) (DBCloser, error)

	NewRedis func(addr, password string, db int) RedisClient

	NewPublisher func(rabbitURL string) (accounts.EventPublisher, error)

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
	db, err := deps.NewDB(cfg.DBAddr)
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
	metrics.SetDependencyHealth("postgres", true)

	// 2) repos
	userRepo := postgres.NewUserRepo(sqlDB)
	productRepo := postgres.NewProductRepo(sqlDB)

	// 3) redis (best-effort; rate limiting disabled without it)
	var redisCli RedisClient
	if deps.NewRedis != nil && cfg.RedisAddr != "" {
		c := deps.NewRedis(cfg.RedisAddr, "", 0)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := c.Ping(ctx); err != nil {
			logger.Logger.Warn().Err(err).Msg("redis unavailable; rate limiting disabled")
			metrics.SetDependencyHealth("redis", false)
			_ = c.Close()
		} else {
			logger.Logger.Info().Msg("redis connected")
			metrics.SetDependencyHealth("redis", true)
			redisCli = c
			cleanupFns = append(cleanupFns, func() { _ = c.Close() })
		}
	}

	// 4) publisher
	var pub accounts.EventPublisher
	if cfg.RabbitURL != "" {
		pub, err = deps.NewPublisher(cfg.RabbitURL)
		if err != nil {
			if cfg.Env == "dev" {
				logger.Logger.Warn().Err(err).Msg("rabbitmq unavailable; using in-memory publisher")
				metrics.SetDependencyHealth("rabbitmq", false)
				pub = memory.NewPublisher()
			} else {
				runCleanup(cleanupFns)
				return nil, nil, err
			}
		} else {
			metrics.SetDependencyHealth("rabbitmq", true)
		}
	} else {
		pub = memory.NewPublisher()
	}

	if c, ok := pub.(interface{ Close() error }); ok {
		cleanupFns = append(cleanupFns, func() { _ = c.Close() })
	}

	// 5) security
	hasher := security.NewBcryptHasher(cfg.BcryptCost)
	issuer := security.NewJWTIssuer(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, "ecommerce-api")

	// 6) services
	accountsSvc := accounts.NewService(
		userRepo,
		hasher,
		issuer,
		pub,
		accounts.Config{
			AccessTTL:  cfg.AccessTokenTTL,
			RefreshTTL: cfg.RefreshTokenTTL,
		},
	)

	accountsSvc = accountsSvc.WithAudit(func(action string, fields map[string]string) {
		evt := logger.Logger.Info().
			Bool("audit", true).
			Str("action", action)
		for k, v := range fields {
			evt = evt.Str(k, v)
		}
		evt.Msg("audit")
	})

	catalogSvc := catalog.NewService(productRepo)

	// 7) handlers + middleware
	secureCookies := cfg.Env != "dev"

	usersH := http_handlers.NewUserHandler(accountsSvc, secureCookies)
	productsH := http_handlers.NewProductHandler(catalogSvc)
	healthH := http_handlers.NewHealthHandler(sqlDB)

	authMW := middleware.Auth(issuer, response.WriteError)

	// rate limit (fail-open); the limiter needs the concrete client for
	// its INCR pipeline, so an injected stand-in runs without throttles
	var fwLimiter *redis.FixedWindowLimiter
	if redisCli != nil {
		if rc, ok := redisCli.(*redis.Client); ok {
			fwLimiter = redis.NewFixedWindowLimiter(rc)
		} else {
			logger.Logger.Warn().Msg("redis client does not support rate limiting; throttles disabled")
		}
	}

	rl := func(key string, limit int, window time.Duration) func(http.Handler) http.Handler {
		if fwLimiter == nil {
			return nil
		}
		return middleware.RateLimitFixedWindow(
			fwLimiter,
			middleware.FixedWindowConfig{
				RouteKey: key,
				Limit:    limit,
				Window:   window,
			},
			response.WriteError,
		)
	}

	// 8) router
	mux, err := deps.NewRouter(router.Deps{
		Health:   healthH,
		Users:    usersH,
		Products: productsH,

		RequestIDMW: middleware.RequestID,
		MetricsMW:   middleware.Metrics,
		AuthMW:      authMW,

		LoginLimitMW:  rl("user.login", cfg.LoginRateLimit, cfg.RateLimitWindow),
		SignupLimitMW: rl("user.signup", cfg.SignupRateLimit, cfg.RateLimitWindow),
	})
	if err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	// 9) server
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
		NewDB: func(addr string) (DBCloser, error) {
			return config.NewDB(addr)
		},
		NewRedis: func(addr, password string, db int) RedisClient {
			return redis.New(addr, password, db)
		},
		NewPublisher: func(url string) (accounts.EventPublisher, error) {
			return rabbitmq_pub.NewPublisher(url)
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
