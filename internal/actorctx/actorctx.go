package actorctx

import (
	"context"
	"errors"
)

var ErrNoActor = errors.New("no actor in context")

// Actor is the authenticated caller: the tenant it acts for and its contact identity.
type Actor struct {
	TenantID  int64
	TenantKey string
	ContactID *int64
	UserID    string
}

type ctxKey struct{}

func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, ctxKey{}, a)
}

func From(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(ctxKey{}).(Actor)

	return a, ok && a.TenantID != 0
}

// MustFrom returns ErrNoActor when the context carries no tenant-scoped actor.
func MustFrom(ctx context.Context) (Actor, error) {
	a, ok := From(ctx)
	if !ok {
		return Actor{}, ErrNoActor
	}
	return a, nil
}

type requestIDKey struct{}

// WithRequestID carries the inbound request id so background work can log it.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
