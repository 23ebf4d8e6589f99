package postgres

import (
	"context"
	"fmt"

	"github.com/geocoder89/eventclone/internal/observability"
	"github.com/geocoder89/eventclone/internal/store"
	"github.com/geocoder89/eventclone/internal/tenancy"
)

// Sessions resolves a tenant key to its connection string and opens a session on
// the matching pool.
type Sessions struct {
	conns tenancy.ConnStringStore
	pools *Pools
	prom  *observability.Prom
}

func NewSessions(conns tenancy.ConnStringStore, pools *Pools, prom *observability.Prom) *Sessions {
	return &Sessions{conns: conns, pools: pools, prom: prom}
}

var _ store.SessionFactory = (*Sessions)(nil)

func (s *Sessions) Open(ctx context.Context, tenantKey string) (*store.Session, error) {
	dsn, err := s.conns.ConnString(ctx, tenantKey)
	if err != nil {
		return nil, fmt.Errorf("open session %q: %w", tenantKey, err)
	}

	pool, err := s.pools.Get(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open session %q: %w", tenantKey, err)
	}

	return store.NewSession(NewGateway(pool, s.prom)), nil
}
