package middlewares

// Gin context keys set by this package.
const (
	CtxRequestID = "request_id"
	CtxTenantKey = "tenant_key"
	CtxUserID    = "user_id"
)
