package jwt

import "time"

type Config struct {
	Secret string        `env:"JWT_SECRET,required"` // HMAC key, at least 32 bytes
	Issuer string        `env:"JWT_ISSUER" envDefault:"simonta-api"`
	TTL    time.Duration `env:"JWT_TTL" envDefault:"24h"`
	Leeway time.Duration `env:"JWT_LEEWAY" envDefault:"30s"` // tolerated clock skew
}
