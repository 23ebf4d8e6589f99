package observability

import (
	"context"
	"log/slog"

	"github.com/geocoder89/eventclone/internal/actorctx"
	"go.opentelemetry.io/otel/trace"
)

// ContextHandler stamps records with what the context knows about the work being
// logged: the active span, the inbound request id and the acting tenant. Keys the
// caller already set on the record are left alone.
type ContextHandler struct {
	next slog.Handler
}

func NewContextHandler(next slog.Handler) *ContextHandler {
	return &ContextHandler{next: next}
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	var extra []slog.Attr

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		extra = append(extra,
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}
	if id := actorctx.RequestID(ctx); id != "" {
		extra = append(extra, slog.String("request_id", id))
	}
	if a, ok := actorctx.From(ctx); ok && a.TenantKey != "" {
		extra = append(extra, slog.String("tenant_key", a.TenantKey))
	}

	if len(extra) > 0 {
		r.AddAttrs(missing(r, extra)...)
	}
	return h.next.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{next: h.next.WithAttrs(attrs)}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{next: h.next.WithGroup(name)}
}

// missing drops the attrs whose key the record already carries.
func missing(r slog.Record, attrs []slog.Attr) []slog.Attr {
	seen := make(map[string]bool, r.NumAttrs())
	r.Attrs(func(a slog.Attr) bool {
		seen[a.Key] = true
		return true
	})

	out := attrs[:0]
	for _, a := range attrs {
		if !seen[a.Key] {
			out = append(out, a)
		}
	}
	return out
}
