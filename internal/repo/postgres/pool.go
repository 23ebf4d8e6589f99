package postgres

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPool opens a pool and pings it before returning.
func NewPool(ctx context.Context, dsn string, maxConns int32) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}

// Pools keeps one pool per connection string. Tenants that share a database share
// its pool.
type Pools struct {
	maxConns int32
	onOpen   func(ctx context.Context, pool *pgxpool.Pool) error

	mu    sync.Mutex
	pools map[string]*pgxpool.Pool
}

func NewPools(maxConns int32) *Pools {
	return &Pools{
		maxConns: maxConns,
		pools:    make(map[string]*pgxpool.Pool),
	}
}

// OnOpen sets a hook run once for every pool Get opens. Pools registered with Add
// skip it. A failing hook closes the pool and fails the Get.
func (p *Pools) OnOpen(fn func(ctx context.Context, pool *pgxpool.Pool) error) {
	p.mu.Lock()
	p.onOpen = fn
	p.mu.Unlock()
}

func (p *Pools) Get(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if pool, ok := p.pools[dsn]; ok {
		return pool, nil
	}

	pool, err := NewPool(ctx, dsn, p.maxConns)
	if err != nil {
		return nil, fmt.Errorf("open tenant pool: %w", err)
	}
	if p.onOpen != nil {
		if err := p.onOpen(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("prepare tenant pool: %w", err)
		}
	}
	p.pools[dsn] = pool
	return pool, nil
}

// Add registers an already opened pool, e.g. the default one built at startup.
func (p *Pools) Add(dsn string, pool *pgxpool.Pool) {
	p.mu.Lock()
	p.pools[dsn] = pool
	p.mu.Unlock()
}

func (p *Pools) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for dsn, pool := range p.pools {
		pool.Close()
		delete(p.pools, dsn)
	}
}
