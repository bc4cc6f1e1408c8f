package constants

// Context keys and headers
const (
	ContextKeyUserID    = "user_id"
	ContextKeyRequestID = "request_id"

	HeaderUserID    = "X-User-ID"
	HeaderRequestID = "X-Request-ID"
)

// Pagination limits. Skip starts at zero; limit must be at least MinPageSize.
const (
	MinPageSize = 1

	DefaultPageSize = 10
	MaxPageSize     = 100

	DefaultTaskPageSize = 20

	DefaultTechnologyPageSize = 100
	MaxTechnologyPageSize     = 500
)

// Validation
const (
	MinPasswordLength = 6
	MaxPasswordBytes  = 72 // bcrypt input limit
	DefaultTaxRate    = 21.0
)
