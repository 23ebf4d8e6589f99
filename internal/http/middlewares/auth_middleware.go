package middlewares

import (
	"strings"

	"github.com/geocoder89/eventclone/internal/actorctx"
	"github.com/geocoder89/eventclone/internal/auth"
	"github.com/geocoder89/eventclone/internal/http/handlers"
	"github.com/gin-gonic/gin"
)

// TokenVerifier is satisfied by *auth.Manager.
type TokenVerifier interface {
	VerifyAccessToken(token string) (*auth.Claims, error)
}

type AuthMiddleware struct {
	jwt TokenVerifier
}

func NewAuthMiddleware(jwt TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt}
}

// RequireAuth resolves the bearer token into an actor on the request context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		raw = strings.TrimSpace(raw)
		if !ok || raw == "" {
			handlers.RespondUnauthorized(c, "Missing or invalid Authorization header")
			return
		}

		claims, err := m.jwt.VerifyAccessToken(raw)
		if err != nil {
			handlers.RespondUnauthorized(c, "Invalid or expired access token")
			return
		}

		actor := claims.Actor()
		c.Set(CtxTenantKey, actor.TenantKey)
		c.Set(CtxUserID, actor.UserID)
		c.Request = c.Request.WithContext(actorctx.WithActor(c.Request.Context(), actor))

		c.Next()
	}
}
