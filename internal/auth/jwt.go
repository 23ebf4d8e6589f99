package auth

import (
	"errors"
	"time"

	"github.com/geocoder89/eventclone/internal/actorctx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrInvalidTokenType = errors.New("invalid token type")
	ErrMissingTenant    = errors.New("token carries no tenant")
)

// Claims identify the caller and the tenant it acts for.
type Claims struct {
	UserID    string `json:"sub"`
	TenantID  int64  `json:"tenant_id"`
	TenantKey string `json:"tenant_key"`
	ContactID *int64 `json:"contact_id,omitempty"`
	TokenType string `json:"typ"`
	JTI       string `json:"jti"`
	jwt.RegisteredClaims
}

// Actor maps the claims to the tenant-scoped caller.
func (c *Claims) Actor() actorctx.Actor {
	return actorctx.Actor{
		TenantID:  c.TenantID,
		TenantKey: c.TenantKey,
		ContactID: c.ContactID,
		UserID:    c.UserID,
	}
}

type Manager struct {
	secret    []byte
	accessTTL time.Duration
}

func NewManager(secret string, accessTTL time.Duration) *Manager {
	return &Manager{
		secret:    []byte(secret),
		accessTTL: accessTTL,
	}
}

func (m *Manager) GenerateAccessToken(a actorctx.Actor) (string, error) {
	now := time.Now().UTC()

	claims := Claims{
		UserID:    a.UserID,
		TenantID:  a.TenantID,
		TenantKey: a.TenantKey,
		ContactID: a.ContactID,
		TokenType: "access",
		JTI:       uuid.NewString(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
			Subject:   a.UserID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *Manager) ParseAndValidate(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		// Enforce HS256
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// VerifyAccessToken accepts only access tokens that name a tenant.
func (m *Manager) VerifyAccessToken(tokenStr string) (*Claims, error) {
	claims, err := m.ParseAndValidate(tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != "access" {
		return nil, ErrInvalidTokenType
	}
	if claims.TenantID <= 0 || claims.TenantKey == "" {
		return nil, ErrMissingTenant
	}
	return claims, nil
}
