package identity

import (
	"context"

	"assignment-service/internal/user"
)

type contextKey string

// actorKey is the context key for the resolved actor
const actorKey contextKey = "actor"

// WithActor returns a context carrying the resolved actor.
func WithActor(ctx context.Context, actor *user.User) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// ActorFromContext extracts the resolved actor from the context. The second
// return is false when the request is anonymous.
func ActorFromContext(ctx context.Context) (*user.User, bool) {
	actor, ok := ctx.Value(actorKey).(*user.User)
	return actor, ok && actor != nil
}
