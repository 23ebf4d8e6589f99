package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/geocoder89/eventclone/internal/store"
	"github.com/geocoder89/eventclone/internal/tenancy"
)

// Sessions opens sessions over one in-memory DB per tenant key.
type Sessions struct {
	mu  sync.RWMutex
	dbs map[string]*DB
}

func NewSessions() *Sessions {
	return &Sessions{dbs: make(map[string]*DB)}
}

var _ store.SessionFactory = (*Sessions)(nil)

// Register binds a tenant key to a DB and returns it.
func (s *Sessions) Register(tenantKey string, db *DB) *DB {
	s.mu.Lock()
	s.dbs[tenantKey] = db
	s.mu.Unlock()
	return db
}

func (s *Sessions) Open(ctx context.Context, tenantKey string) (*store.Session, error) {
	s.mu.RLock()
	db, ok := s.dbs[tenantKey]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("open session %q: %w", tenantKey, tenancy.ErrUnknownTenant)
	}
	return store.NewSession(db), nil
}
