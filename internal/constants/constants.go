package constants

const (
	// ContextKeyClaims is the gin context key holding the verified token claims.
	ContextKeyClaims = "claims"
	// ContextKeyRequestID is the gin context key holding the request id.
	ContextKeyRequestID = "request_id"

	HeaderRequestID = "X-Request-ID"

	RoleAdmin = "admin"
	RoleUser  = "user"
)
