package constant

import "time"

type contextKey string

const (
	ContextKeyUserID     contextKey = "user_id"
	ContextKeyNationalID contextKey = "national_id"
	ContextKeyUserRole   contextKey = "user_role"
	ContextKeyTokenID    contextKey = "token_id"
)

const (
	RoleStudent  = "student"
	RoleLecturer = "lecturer"
	RoleStaff    = "staff"
)

const (
	RequestParamPage    = "page"
	RequestParamLimit   = "limit"
	RequestParamSortBy  = "sort_by"
	RequestParamSortDir = "sort_dir"
)

const (
	RequestParamID           = "id"
	RequestParamCode         = "code"
	RequestParamDate         = "date"
	RequestParamStartTime    = "start_time"
	RequestParamEndTime      = "end_time"
	RequestParamRoomCode     = "room_code"
	RequestParamSlotDuration = "slot_duration"
	RequestMaxMemory         = 10 << 20 // 10 MB
)

const (
	DefaultValuePage    = 1
	DefaultValueLimit   = 10
	MaxValueLimit       = 100
	DefaultValueSortBy  = "created_at"
	DefaultValueSortDir = "DESC"
)

// Audit columns shared by every table.
const (
	FieldCreatedAt  = "created_at"
	FieldModifiedAt = "modified_at"
	FieldModifiedBy = "modified_by"
)

// PqErrorCodeExclusionViolation is raised by the no-overlap constraint on
// reservations.
const PqErrorCodeExclusionViolation = "23P01"

const (
	DateFormat     = time.RFC3339
	CalendarFormat = time.DateOnly
)

const (
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelHandlerScopeName    = "handler"
	OtelEventScopeName      = "event"
	OtelExternalScopeName   = "external"

	OtelQueryAttributeKey = "query"
	OtelS3ScopeName       = "s3"
	OtelLockScopeName     = "lock"
)

const (
	RequestHeaderAuthorization      = "Authorization"
	RequestHeaderUserAgent          = "User-Agent"
	RequestHeaderContentType        = "Content-Type"
	RequestHeaderRateLimit          = "X-RateLimit-Limit"
	RequestHeaderRateLimitRemaining = "X-RateLimit-Remaining"
	RequestHeaderRateLimitWindow    = "X-RateLimit-Window"
	RequestHeaderRequestID          = "X-Request-ID"
	RequestHeaderForwardedFor       = "X-Forwarded-For"
	RequestHeaderRealIP             = "X-Real-IP"
	RequestHeaderAPIKey             = "X-API-Key"
)

const (
	ContentTypeJSON = "application/json"
	FormFile        = "image"
)

const (
	ResponseErrorPrepareShutdown      = "SERVER PREPARING TO SHUT DOWN"
	ResponseErrorUnhealthy            = "SERVER UNHEALTHY"
	ResponseErrorRequestLimitExceeded = "REQUEST LIMIT EXCEEDED"
)

const (
	ServerEnvDevelopment = "development"
	ServerEnvProduction  = "production"
)

const (
	Empty = ""
)
