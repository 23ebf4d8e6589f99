package middlewares

import (
	"log/slog"
	"time"

	"github.com/geocoder89/eventclone/internal/actorctx"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-Id"

// RequestID echoes the caller's X-Request-Id or mints one, and carries it on the
// request context so background copies can log it.
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		ctx.Writer.Header().Set(requestIDHeader, id)
		ctx.Set(CtxRequestID, id)
		ctx.Request = ctx.Request.WithContext(actorctx.WithRequestID(ctx.Request.Context(), id))

		ctx.Next()
	}
}

func RequestLogger(log *slog.Logger) gin.HandlerFunc {
	if log == nil {
		log = slog.Default()
	}

	return func(ctx *gin.Context) {
		start := time.Now()

		ctx.Next()

		route := ctx.FullPath()
		if route == "" {
			route = ctx.Request.URL.Path
		}

		attrs := []any{
			"method", ctx.Request.Method,
			"route", route,
			"status", ctx.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"request_id", ctx.GetString(CtxRequestID),
		}
		if tenant := ctx.GetString(CtxTenantKey); tenant != "" {
			attrs = append(attrs, "tenant_key", tenant)
		}
		if len(ctx.Errors) > 0 {
			attrs = append(attrs, "err", ctx.Errors.String())
			log.ErrorContext(ctx.Request.Context(), "http_request", attrs...)
			return
		}

		log.InfoContext(ctx.Request.Context(), "http_request", attrs...)
	}
}
