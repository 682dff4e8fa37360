package main

import (
	"time"

	"github.com/simonta/simonta-api/pkg/clientip"
	"github.com/simonta/simonta-api/pkg/httpserver"
	"github.com/simonta/simonta-api/pkg/jwt"
	"github.com/simonta/simonta-api/pkg/logger"
	"github.com/simonta/simonta-api/pkg/lookups"
	"github.com/simonta/simonta-api/pkg/pg"
	"github.com/simonta/simonta-api/pkg/ratelimiter"
	"github.com/simonta/simonta-api/pkg/redis"
)

// Authorization engines selectable with AUTHZ_ENGINE.
const (
	authzBuiltin     = "builtin"
	authzPermissions = "permissions"
	authzCasbin      = "casbin"
)

type appConfig struct {
	Name            string        `env:"APP_NAME" envDefault:"simonta-api"`
	Env             string        `env:"APP_ENV" envDefault:"development"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"5s"`   // bound on one validated operation
	ReadyTimeout    time.Duration `env:"READY_TIMEOUT" envDefault:"3s"`     // bound on /health/ready checks
	AuthzEngine     string        `env:"AUTHZ_ENGINE" envDefault:"builtin"` // builtin, permissions or casbin
	BcryptCost      int           `env:"BCRYPT_COST" envDefault:"10"`
	DefaultLanguage string        `env:"DEFAULT_LANGUAGE" envDefault:"id"`
	AutoMigrate     bool          `env:"AUTO_MIGRATE" envDefault:"true"`
}

// settings groups every config section of the service.
type settings struct {
	app     appConfig
	log     logger.Config
	http    httpserver.Config
	pg      pg.Config
	redis   redis.Config
	lookups lookups.Config
	jwt     jwt.Config
	ip      clientip.Config
	limit   ratelimiter.Config
}
