// Command api serves the Simonta account API.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"

	"github.com/simonta/simonta-api/handler"
	"github.com/simonta/simonta-api/locales"
	"github.com/simonta/simonta-api/pkg/clientip"
	"github.com/simonta/simonta-api/pkg/config"
	"github.com/simonta/simonta-api/pkg/environment"
	"github.com/simonta/simonta-api/pkg/httpserver"
	"github.com/simonta/simonta-api/pkg/i18n"
	"github.com/simonta/simonta-api/pkg/jwt"
	"github.com/simonta/simonta-api/pkg/logger"
	"github.com/simonta/simonta-api/pkg/lookups"
	"github.com/simonta/simonta-api/pkg/pg"
	"github.com/simonta/simonta-api/pkg/ratelimiter"
	"github.com/simonta/simonta-api/pkg/rbac"
	"github.com/simonta/simonta-api/pkg/redis"
	"github.com/simonta/simonta-api/pkg/request"
	"github.com/simonta/simonta-api/pkg/requestid"
	"github.com/simonta/simonta-api/pkg/validator"
	"github.com/simonta/simonta-api/svc/account"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("api stopped", logger.Error(err))
		os.Exit(1)
	}
}

func loadSettings() (settings, error) {
	var s settings
	err := errors.Join(
		config.Load(&s.app),
		config.Load(&s.log),
		config.Load(&s.http),
		config.Load(&s.pg),
		config.Load(&s.redis),
		config.Load(&s.lookups),
		config.Load(&s.jwt),
		config.Load(&s.ip),
		config.Load(&s.limit),
	)
	return s, err
}

func run(ctx context.Context) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	env := environment.Parse(cfg.app.Env)
	logOpts := append([]logger.Option{logger.WithEnvironment(env, cfg.app.Name)}, logger.FromConfig(cfg.log)...)
	logOpts = append(logOpts, logger.WithContextExtractors(
		requestid.LoggerExtractor(),
		clientip.LoggerExtractor(),
		rbac.LoggerExtractor(),
	))
	log := logger.New(logOpts...)
	logger.SetAsDefault(log)

	pool, err := pg.Connect(ctx, cfg.pg)
	if err != nil {
		return err
	}
	defer pool.Close()

	if cfg.app.AutoMigrate {
		if err := pg.Migrate(ctx, pool, account.Migrations(), cfg.pg, log.With(logger.Component("migrate"))); err != nil {
			return err
		}
	}

	checks := []httpserver.Check{{Name: "postgres", Run: pg.Healthcheck(pool)}}

	var (
		store     validator.Lookups = lookups.NewPostgres(pool, account.LookupSchema(), lookups.WithTimeout(cfg.lookups.Timeout))
		throttles ratelimiter.Store
	)
	if cfg.redis.Enabled() {
		rdb, err := redis.Connect(ctx, cfg.redis)
		if err != nil {
			return err
		}
		defer rdb.Close()

		store = lookups.NewCached(store, rdb,
			lookups.WithCacheTTL(cfg.lookups.CacheTTL),
			lookups.WithCachePrefix(cfg.lookups.CachePrefix),
			lookups.WithCachedEntities(account.EntityDesa),
			lookups.WithCacheLogger(log.With(logger.Component("lookups"))),
		)
		checks = append(checks, httpserver.Check{Name: "redis", Run: redis.Healthcheck(rdb)})
		throttles = ratelimiter.NewRedisStore(rdb, cfg.limit.Prefix)
	} else {
		mem := ratelimiter.NewMemoryStore()
		defer mem.Close()
		throttles = mem
	}
	limiter, err := ratelimiter.New(throttles, cfg.limit)
	if err != nil {
		return err
	}
	breaker := lookups.NewBreaker(store, cfg.lookups.BreakerSettings("lookups"))
	checks = append(checks, httpserver.Check{Name: "lookups", Run: breaker.Healthcheck()})

	tr, err := i18n.NewTranslator(ctx, locales.Source(),
		i18n.WithDefaultLanguage(cfg.app.DefaultLanguage),
		i18n.WithLogger(log),
	)
	if err != nil {
		return err
	}
	negotiator, err := i18n.NewNegotiator(locales.Supported, cfg.app.DefaultLanguage)
	if err != nil {
		return err
	}

	resolver := validator.NewResolver(validator.WithTranslator(tr, cfg.app.DefaultLanguage))
	pipeline := request.NewPipeline(breaker,
		request.WithResolver(resolver),
		request.WithLogger(log.With(logger.Component("request"))),
		request.WithTimeout(cfg.app.RequestTimeout),
	)

	svcOpts := []account.ServiceOption{
		account.WithResolver(resolver),
		account.WithBcryptCost(cfg.app.BcryptCost),
		account.WithLogger(log.With(logger.Component("account"))),
	}
	policyOpts, err := policyOptions(ctx, cfg.app.AuthzEngine, log)
	if err != nil {
		return err
	}
	svc := account.NewService(pipeline, account.NewPostgresStorage(pool), append(svcOpts, policyOpts...)...)

	tokens, err := jwt.New(cfg.jwt)
	if err != nil {
		return err
	}

	errorHandler := handler.NewErrorHandler(log, tr)
	throttle := ratelimiter.Middleware(limiter, ratelimiter.ByClientIP("auth"),
		ratelimiter.WithLogger(log),
		ratelimiter.WithLimitHandler(func(w http.ResponseWriter, req *http.Request) {
			errorHandler(handler.NewContext(w, req), handler.ErrTooManyRequests)
		}),
	)
	accounts := account.NewHandler(svc,
		account.WithTokenIssuer(tokens),
		account.WithErrorHandler(errorHandler),
		account.WithMaxBodyBytes(cfg.http.MaxBodyBytes),
		account.WithThrottle(throttle),
	)

	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		clientip.NewFromConfig(cfg.ip).Middleware,
		i18n.Middleware(negotiator),
	)
	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(log, cfg.app.ReadyTimeout, checks...))
	r.Group(func(r chi.Router) {
		r.Use(jwt.Middleware(tokens, jwt.WithErrorHandler(invalidToken(errorHandler))))
		r.Mount("/api", accounts.Routes())
	})
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		errorHandler(handler.NewContext(w, req), handler.ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		errorHandler(handler.NewContext(w, req), handler.ErrMethodNotAllowed)
	})

	srv := httpserver.NewFromConfig(cfg.http, httpserver.WithLogger(log))
	return srv.Run(ctx, r)
}

// policyOptions selects the authorization backend of the account service.
// invalidToken renders rejected bearer tokens through the application error
// handler so the 401 body is localized like every other error.
func invalidToken(eh handler.ErrorHandler[handler.Context]) jwt.ErrorHandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
		eh(handler.NewContext(w, r), errors.Join(handler.ErrUnauthorized, err))
	}
}

func policyOptions(ctx context.Context, engine string, log *slog.Logger) ([]account.ServiceOption, error) {
	switch engine {
	case "", authzBuiltin:
		return nil, nil
	case authzPermissions:
		auth, err := rbac.NewAuthorizer(ctx, rbac.NewInMemRoleSource(account.RolePermissions()))
		if err != nil {
			return nil, err
		}
		return []account.ServiceOption{
			account.WithUpdatePolicy(rbac.PermissionOrOwner(auth, account.PermUsersUpdate+".any", account.PermUsersUpdate+".self")),
			account.WithReadPolicy(rbac.PermissionOrOwner(auth, account.PermUsersRead+".any", account.PermUsersRead+".self")),
		}, nil
	case authzCasbin:
		e, err := rbac.NewCasbinEnforcer(account.PolicyRules(), nil)
		if err != nil {
			return nil, err
		}
		return []account.ServiceOption{
			account.WithUpdatePolicy(rbac.NewCasbinPolicy(e, account.PermUsersUpdate, log)),
			account.WithReadPolicy(rbac.NewCasbinPolicy(e, account.PermUsersRead, log)),
		}, nil
	default:
		return nil, errors.New("unknown AUTHZ_ENGINE " + engine)
	}
}
