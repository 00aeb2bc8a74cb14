package utils

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Response defines the standard API response envelope.
type Response struct {
	Success bool        `json:"success"`
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
	Meta    Meta        `json:"meta"`
}

// ErrorInfo provides details for error responses.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Meta contains request-scoped metadata.
type Meta struct {
	RequestID  string      `json:"requestId"`
	Timestamp  string      `json:"timestamp"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination holds pagination metadata for list responses.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// Success writes a success response with the standard envelope.
func Success(c *gin.Context, code int, message string, data interface{}) {
	write(c, code, Response{Success: true, Message: message, Data: data})
}

// SuccessWithPagination writes one table page. Out of range page and limit
// values fall back to the first page of ten rows.
func SuccessWithPagination(c *gin.Context, code int, message string, data interface{}, page, limit, totalItems int) {
	write(c, code, Response{Success: true, Message: message, Data: data}, NewPagination(page, limit, totalItems))
}

// NewPagination computes the pagination block for totalItems rows.
func NewPagination(page, limit, totalItems int) *Pagination {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return &Pagination{
		Page:       page,
		Limit:      limit,
		TotalItems: totalItems,
		TotalPages: (totalItems + limit - 1) / limit,
	}
}

// Error writes an error response with provided API error code and message.
func Error(c *gin.Context, code int, errCode, message string) {
	write(c, code, Response{Message: message, Error: &ErrorInfo{Code: errCode, Message: message}})
}

// write stamps the status code and request metadata onto resp.
func write(c *gin.Context, code int, resp Response, pagination ...*Pagination) {
	resp.Code = code
	resp.Meta = Meta{RequestID: getRequestID(c), Timestamp: time.Now().Format(time.RFC3339)}
	if len(pagination) > 0 {
		resp.Meta.Pagination = pagination[0]
	}
	c.JSON(code, resp)
}

func getRequestID(c *gin.Context) string {
	if id := c.GetString("request_id"); id != "" {
		return id
	}
	return uuid.New().String()[:8]
}

// IST is the business timezone used for "today" boundaries and timestamps.
var IST = time.FixedZone("IST", 5*3600+1800)

// NowISO returns the current time in ISO 8601 format with IST timezone.
func NowISO() string {
	return time.Now().In(IST).Format("2006-01-02T15:04:05+05:30")
}

// RespondError maps a service error onto the response envelope. Unknown
// errors surface as a generic failure without retry hints.
func RespondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		Error(c, 404, "NOT_FOUND", "Resource not found")
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrInvalidRole):
		Error(c, 400, "INVALID_REQUEST", err.Error())
	case errors.Is(err, ErrUploadTooLarge):
		Error(c, 413, "UPLOAD_TOO_LARGE", "Uploaded file is too large")
	case errors.Is(err, ErrOrderNotPaid):
		Error(c, 409, "ORDER_NOT_PAID", "Shipping status can only be changed for paid orders")
	case errors.Is(err, ErrInvalidCredentials):
		Error(c, 401, "INVALID_CREDENTIALS", "Invalid email or password")
	case errors.Is(err, ErrNoPanelAccess):
		Error(c, 403, "NO_ACCESS", "You do not have access to the admin panel")
	case errors.Is(err, ErrInvalidToken), errors.Is(err, ErrTokenRevoked):
		Error(c, 401, "INVALID_TOKEN", "Invalid or expired token")
	case errors.Is(err, ErrResetTokenInvalid):
		Error(c, 400, "RESET_TOKEN_INVALID", "Reset link is invalid or has expired")
	case errors.Is(err, ErrForbidden):
		Error(c, 403, "FORBIDDEN", "Insufficient role")
	case errors.Is(err, ErrSuperAdminImmutable):
		Error(c, 403, "SUPER_ADMIN_IMMUTABLE", "Super admin roles cannot be changed")
	case errors.Is(err, ErrRemoteFunction):
		Error(c, 502, "ROLE_FUNCTION_FAILED", err.Error())
	case errors.Is(err, ErrStorageUnavailable):
		Error(c, 503, "STORAGE_UNAVAILABLE", "Object storage is not configured")
	default:
		Error(c, 500, "INTERNAL_ERROR", fallback)
	}
}
