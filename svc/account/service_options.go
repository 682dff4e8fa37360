package account

import (
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/simonta/simonta-api/pkg/rbac"
	"github.com/simonta/simonta-api/pkg/validator"
)

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithResolver sets the resolver used for errors raised after validation.
// Pass the same resolver the pipeline uses so messages stay consistent.
func WithResolver(r *validator.Resolver) ServiceOption {
	return func(s *Service) {
		if r != nil {
			s.resolver = r
		}
	}
}

// WithUpdatePolicy replaces the default AdminOrOwner policy of UpdateUser.
func WithUpdatePolicy(p rbac.Policy) ServiceOption {
	return func(s *Service) {
		if p != nil {
			s.updatePolicy = p
		}
	}
}

// WithReadPolicy replaces the default AdminOrOwner policy of GetUser.
func WithReadPolicy(p rbac.Policy) ServiceOption {
	return func(s *Service) {
		if p != nil {
			s.readPolicy = p
		}
	}
}

// WithBcryptCost sets the password hashing cost. Values outside bcrypt's
// range are ignored.
func WithBcryptCost(cost int) ServiceOption {
	return func(s *Service) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			s.bcryptCost = cost
		}
	}
}

func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
