package dto

// ErrorCode represents standardized error codes
type ErrorCode string

// Standard error codes shown on error pages and in JSON responses
const (
	ErrorCodeResourceNotFound ErrorCode = "RES_001"
	ErrorCodeForbidden        ErrorCode = "AUTH_009"
	ErrorCodeInternalServer   ErrorCode = "SRV_001"
)

// ErrorPage is the view model of the error template.
type ErrorPage struct {
	Status  int
	Code    ErrorCode
	Heading string
	Message string
}

// HealthResponse is the body of the liveness endpoint.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}
