package request

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/simonta/simonta-api/pkg/i18n"
	"github.com/simonta/simonta-api/pkg/logger"
	"github.com/simonta/simonta-api/pkg/rbac"
	"github.com/simonta/simonta-api/pkg/validator"
)

// Pipeline holds the collaborators shared by every operation. It keeps no
// per-request state and is safe for concurrent use.
type Pipeline struct {
	lookups  validator.Lookups
	resolver *validator.Resolver
	logger   *slog.Logger
	timeout  time.Duration
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithResolver sets the message resolver. Default renders built-in
// Indonesian phrases.
func WithResolver(r *validator.Resolver) Option {
	return func(p *Pipeline) {
		if r != nil {
			p.resolver = r
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithTimeout bounds a whole Run invocation. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(p *Pipeline) {
		if d >= 0 {
			p.timeout = d
		}
	}
}

// NewPipeline returns a Pipeline using lookups for external rules.
func NewPipeline(lookups validator.Lookups, opts ...Option) *Pipeline {
	p := &Pipeline{
		lookups:  lookups,
		resolver: validator.NewResolver(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes op for actor against resource (nil for create operations).
//
// Denied outcomes return before any rule is evaluated. Field errors are
// resolved in the language stored in ctx by the i18n middleware. The error
// return is reserved for failures that are not the caller's fault, such as
// validator.ErrLookupUnavailable.
func Run[T any](ctx context.Context, p *Pipeline, op Operation[T], actor *rbac.Actor, resource *rbac.Resource, in validator.Input) (Result[T], error) {
	var res Result[T]
	if op.Rules == nil {
		return res, ErrNoRules
	}
	if op.Decode == nil {
		return res, ErrNoDecode
	}

	start := time.Now()
	log := p.logger.With(logger.Operation(op.Name))
	if actor != nil {
		log = log.With(logger.Role(actor.Role), logger.UserID(actor.ID))
	}

	if op.Policy != nil {
		var target rbac.Resource
		if resource != nil {
			target = *resource
		}
		if rbac.Authorize(actor, target, op.Policy) == rbac.Deny {
			res.Outcome = Denied
			log.InfoContext(ctx, "operation denied", logger.Outcome(res.Outcome.String()))
			return res, nil
		}
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	rs, err := op.Rules(in)
	if err != nil {
		return res, errors.Join(ErrRuleSet, err)
	}

	eval, err := validator.Evaluate(ctx, rs, in, p.lookups)
	if err != nil {
		log.ErrorContext(ctx, "validation aborted", logger.Error(err), logger.Duration(time.Since(start)))
		return res, err
	}

	if !eval.Valid() {
		res.Outcome = Invalid
		res.Errors = p.resolver.WithLanguage(i18n.Locale(ctx)).ResolveAll(eval.Errors, op.Labels, op.Messages)
		log.InfoContext(ctx, "operation rejected",
			logger.Outcome(res.Outcome.String()),
			logger.Fields(res.Errors.Fields()),
			logger.Count(len(res.Errors)),
			logger.Duration(time.Since(start)),
		)
		return res, nil
	}

	value, err := op.Decode(eval.Record)
	if err != nil {
		return res, errors.Join(ErrDecode, err)
	}

	res.Outcome = Valid
	res.Value = value
	log.DebugContext(ctx, "operation validated",
		logger.Outcome(res.Outcome.String()),
		logger.Duration(time.Since(start)),
	)
	return res, nil
}
