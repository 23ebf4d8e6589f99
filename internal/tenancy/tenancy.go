package tenancy

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownTenant = errors.New("unknown tenant")

// ConnStringStore resolves a tenant connection key to a database connection string.
type ConnStringStore interface {
	ConnString(ctx context.Context, tenantKey string) (string, error)
}

// StaticStore serves connection strings from configuration. Keys without an entry
// resolve to the fallback when one is set.
type StaticStore struct {
	dsns     map[string]string
	fallback string
}

func NewStaticStore(dsns map[string]string, fallback string) *StaticStore {
	m := make(map[string]string, len(dsns))
	for k, v := range dsns {
		m[k] = v
	}
	return &StaticStore{dsns: m, fallback: fallback}
}

func (s *StaticStore) ConnString(_ context.Context, tenantKey string) (string, error) {
	if dsn, ok := s.dsns[tenantKey]; ok {
		return dsn, nil
	}
	if s.fallback != "" {
		return s.fallback, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTenant, tenantKey)
}

// ParseDSNs parses "key=dsn,key=dsn". Only the first '=' of an entry separates the key.
func ParseDSNs(raw string) (map[string]string, error) {
	out := make(map[string]string)

	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		key, dsn, ok := strings.Cut(part, "=")
		key = strings.TrimSpace(key)
		dsn = strings.TrimSpace(dsn)
		if !ok || key == "" || dsn == "" {
			return nil, fmt.Errorf("invalid tenant dsn entry %q", part)
		}
		out[key] = dsn
	}
	return out, nil
}
