package ratelimiter

import (
	"encoding/json"
	"hash/fnv"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/simonta/simonta-api/pkg/clientip"
	"github.com/simonta/simonta-api/pkg/logger"
)

// maxKeyLength bounds keys; longer keys are hashed.
const maxKeyLength = 64

// KeyFunc extracts the bucket key of a request. An empty key skips the
// limiter.
type KeyFunc func(r *http.Request) string

// ByClientIP keys buckets by scope and the address stored by
// clientip.Middleware, falling back to RemoteAddr.
func ByClientIP(scope string) KeyFunc {
	direct := clientip.New()
	return func(r *http.Request) string {
		ip := clientip.FromContext(r.Context())
		if ip == "" {
			ip = direct.IP(r)
		}
		if ip == "" {
			return ""
		}
		return compact(scope + ":" + ip)
	}
}

func compact(key string) string {
	if len(key) <= maxKeyLength {
		return key
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	return strconv.FormatUint(h.Sum64(), 36)
}

type middlewareOptions struct {
	onLimit http.HandlerFunc
	logger  *slog.Logger
	now     func() time.Time
}

type MiddlewareOption func(*middlewareOptions)

// WithLimitHandler writes the response for rejected requests. The rate
// limit headers are already set when it runs.
func WithLimitHandler(h http.HandlerFunc) MiddlewareOption {
	return func(o *middlewareOptions) {
		if h != nil {
			o.onLimit = h
		}
	}
}

func WithLogger(l *slog.Logger) MiddlewareOption {
	return func(o *middlewareOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// Middleware admits requests through l. Store failures let the request
// through and are logged, so an unavailable Redis does not lock users out.
func Middleware(l *Limiter, key KeyFunc, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	o := middlewareOptions{
		onLimit: tooManyRequests,
		logger:  slog.New(slog.DiscardHandler),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			k := key(r)
			if k == "" {
				next.ServeHTTP(w, r)
				return
			}

			res, err := l.Allow(r.Context(), k)
			if err != nil {
				o.logger.WarnContext(r.Context(), "rate limiter unavailable",
					logger.Component("ratelimiter"),
					logger.Error(err),
				)
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(max(0, res.Remaining)))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

			if !res.Allowed() {
				retry := int(res.RetryAfter(o.now()).Round(time.Second).Seconds())
				h.Set("Retry-After", strconv.Itoa(max(1, retry)))
				o.onLimit(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func tooManyRequests(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusTooManyRequests)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": "too_many_requests", "message": "Too many attempts, please retry later"},
	})
}
