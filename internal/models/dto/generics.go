// Package dto contains Data Transfer Objects for API responses
package dto

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// BaseResponse holds the fields shared by every envelope
type BaseResponse struct {
	Success   bool      `json:"success"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
}

// SuccessResponse wraps a single payload
type SuccessResponse struct {
	BaseResponse
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ErrorResponse is returned for every failed request
type ErrorResponse struct {
	BaseResponse
	Error   string      `json:"error"`
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// PaginatedResponse wraps one page of a listing
type PaginatedResponse struct {
	BaseResponse
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
	Facets     interface{} `json:"facets,omitempty"`
	Message    string      `json:"message,omitempty"`
}

// Pagination describes where a page sits in the listing
type Pagination struct {
	CurrentPage  int   `json:"current_page" example:"1"`
	PerPage      int   `json:"per_page" example:"12"`
	TotalPages   int   `json:"total_pages" example:"5"`
	TotalRecords int64 `json:"total_records" example:"50"`
	HasNext      bool  `json:"has_next" example:"true"`
	HasPrev      bool  `json:"has_prev" example:"false"`
}

// NewPagination fills the derived next/prev flags
func NewPagination(current, perPage, totalPages int, total int64) Pagination {
	return Pagination{
		CurrentPage:  current,
		PerPage:      perPage,
		TotalPages:   totalPages,
		TotalRecords: total,
		HasNext:      current < totalPages,
		HasPrev:      current > 1,
	}
}

// HealthResponse is the healthcheck payload
type HealthResponse struct {
	BaseResponse
	Status  string            `json:"status" example:"OK"`
	Service string            `json:"service" example:"Community Portal API"`
	Version string            `json:"version" example:"1.0.0"`
	Uptime  string            `json:"uptime,omitempty" example:"1h30m45s"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// AuthErrorResponse is returned by the admin auth middleware
type AuthErrorResponse struct {
	BaseResponse
	Error   string `json:"error" example:"unauthorized"`
	Code    int    `json:"code" example:"401"`
	Message string `json:"message" example:"Invalid or expired token"`
}

// RateLimitErrorResponse is returned when a client exceeds its quota
type RateLimitErrorResponse struct {
	BaseResponse
	Error      string    `json:"error" example:"rate_limit_exceeded"`
	Code       int       `json:"code" example:"429"`
	Message    string    `json:"message" example:"Too many requests"`
	RetryAfter string    `json:"retry_after" example:"60s"`
	Limit      int       `json:"limit" example:"120"`
	Remaining  int       `json:"remaining" example:"0"`
	ResetTime  time.Time `json:"reset_time" example:"2024-01-01T12:01:00Z"`
}

func newBase(c *gin.Context, success bool) BaseResponse {
	return BaseResponse{
		Success:   success,
		Timestamp: time.Now().UTC(),
		RequestID: getRequestID(c),
	}
}

// NewSuccessResponse builds a success envelope
func NewSuccessResponse(c *gin.Context, data interface{}, message string) SuccessResponse {
	return SuccessResponse{
		BaseResponse: newBase(c, true),
		Data:         data,
		Message:      message,
	}
}

// NewErrorResponse builds an error envelope
func NewErrorResponse(c *gin.Context, code int, error string, message string, details interface{}) ErrorResponse {
	return ErrorResponse{
		BaseResponse: newBase(c, false),
		Error:        error,
		Code:         code,
		Message:      message,
		Details:      details,
	}
}

// NewPaginatedResponse builds a listing envelope
func NewPaginatedResponse(c *gin.Context, data interface{}, pagination Pagination, facets interface{}, message string) PaginatedResponse {
	return PaginatedResponse{
		BaseResponse: newBase(c, true),
		Data:         data,
		Pagination:   pagination,
		Facets:       facets,
		Message:      message,
	}
}

// NewHealthResponse builds the healthcheck payload
func NewHealthResponse(c *gin.Context, status, service, version, uptime string, checks map[string]string) HealthResponse {
	return HealthResponse{
		BaseResponse: newBase(c, status == "OK"),
		Status:       status,
		Service:      service,
		Version:      version,
		Uptime:       uptime,
		Checks:       checks,
	}
}

// NewAuthErrorResponse builds a 401 envelope
func NewAuthErrorResponse(c *gin.Context, message string) AuthErrorResponse {
	return AuthErrorResponse{
		BaseResponse: newBase(c, false),
		Error:        "unauthorized",
		Code:         http.StatusUnauthorized,
		Message:      message,
	}
}

// NewRateLimitErrorResponse builds a 429 envelope
func NewRateLimitErrorResponse(c *gin.Context, retryAfter string, limit, remaining int, resetTime time.Time) RateLimitErrorResponse {
	return RateLimitErrorResponse{
		BaseResponse: newBase(c, false),
		Error:        "rate_limit_exceeded",
		Code:         http.StatusTooManyRequests,
		Message:      "Too many requests",
		RetryAfter:   retryAfter,
		Limit:        limit,
		Remaining:    remaining,
		ResetTime:    resetTime,
	}
}

func getRequestID(c *gin.Context) string {
	if requestID, exists := c.Get("request_id"); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return ""
}
