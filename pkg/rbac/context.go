package rbac

import (
	"context"
	"log/slog"
)

type actorCtxKey struct{}

// WithActor stores the authenticated actor in the context.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorCtxKey{}, actor)
}

// ActorFromContext returns the actor stored by WithActor.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorCtxKey{}).(Actor)
	return actor, ok
}

// ActorPtrFromContext is ActorFromContext returning nil for anonymous requests.
func ActorPtrFromContext(ctx context.Context) *Actor {
	if actor, ok := ActorFromContext(ctx); ok {
		return &actor
	}
	return nil
}

// LoggerExtractor returns a logger.ContextExtractor adding an "actor" group
// with the user id and role of authenticated requests.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		actor, ok := ActorFromContext(ctx)
		if !ok {
			return slog.Attr{}, false
		}
		return slog.Group("actor", slog.Int64("user_id", actor.ID), slog.String("role", actor.Role)), true
	}
}
