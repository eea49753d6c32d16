package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes
const (
	CodeSuccess            = 0
	CodeParamError         = 1000
	CodeAuthFailed         = 1001
	CodePermissionDenied   = 1002
	CodeResourceNotFound   = 1003
	CodeInsufficientCredit = 1004
	CodeDuplicateAction    = 1005
	CodeGatewayError       = 1006
	CodeServerError        = 5000
)

// Default message per code
var codeMessages = map[int]string{
	CodeSuccess:            "success",
	CodeParamError:         "invalid request",
	CodeAuthFailed:         "authentication failed",
	CodePermissionDenied:   "permission denied",
	CodeResourceNotFound:   "resource not found",
	CodeInsufficientCredit: "no credits remaining",
	CodeDuplicateAction:    "duplicate action",
	CodeGatewayError:       "external service error",
	CodeServerError:        "internal server error",
}

// Response is the unified JSON envelope.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// PageData wraps paginated listings.
type PageData struct {
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
	Items    interface{} `json:"items"`
}

// Success 200 with data
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    CodeSuccess,
		Message: "success",
		Data:    data,
	})
}

// SuccessWithMessage 200 with a custom message
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    CodeSuccess,
		Message: message,
		Data:    data,
	})
}

// SuccessPage 200 with a paginated payload
func SuccessPage(c *gin.Context, total int64, page, pageSize int, items interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    CodeSuccess,
		Message: "success",
		Data: PageData{
			Total:    total,
			Page:     page,
			PageSize: pageSize,
			Items:    items,
		},
	})
}

// Error generic error response
func Error(c *gin.Context, code int, message string) {
	if message == "" {
		message = codeMessages[code]
	}
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
		Data:    nil,
	})
}

// ParamError malformed input
func ParamError(c *gin.Context, message string) {
	Error(c, CodeParamError, message)
}

// AuthError missing or invalid credentials
func AuthError(c *gin.Context, message string) {
	Error(c, CodeAuthFailed, message)
}

// PermissionError caller does not own the resource
func PermissionError(c *gin.Context, message string) {
	Error(c, CodePermissionDenied, message)
}

// NotFoundError record absent
func NotFoundError(c *gin.Context, message string) {
	Error(c, CodeResourceNotFound, message)
}

// InsufficientCreditError the HTTP 402 equivalent
func InsufficientCreditError(c *gin.Context, message string) {
	Error(c, CodeInsufficientCredit, message)
}

// DuplicateError repeated action
func DuplicateError(c *gin.Context, message string) {
	Error(c, CodeDuplicateAction, message)
}

// GatewayError external payment/AI provider failure
func GatewayError(c *gin.Context, message string) {
	Error(c, CodeGatewayError, message)
}

// ServerError internal failure
func ServerError(c *gin.Context, message string) {
	Error(c, CodeServerError, message)
}
