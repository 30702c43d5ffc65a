package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100

	// HTTP Headers
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderUserAgent     = "User-Agent"

	ContentTypeJSON = "application/json"

	// Context keys
	ContextKeyUserID    = "user_id"
	ContextKeyUserSID   = "user_sid"
	ContextKeyUserRole  = "user_role"
	ContextKeyRequestID = "request_id"

	// Database table names
	TableUsers      = "users"
	TableComplaints = "complaints"
	TableSequences  = "sequences"

	// Sequence names
	SequenceComplaintHumanID = "complaint_human_id"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgResourceNotFound    = "Resource not found"
	ErrMsgMethodNotAllowed    = "Method not allowed"
	ErrMsgUnauthorized        = "Not authorized, no token"
	ErrMsgTokenInvalid        = "Not authorized, token failed"
	ErrMsgForbidden           = "Not authorized to access this resource"
	ErrMsgValidationFailed    = "Validation failed"
)
