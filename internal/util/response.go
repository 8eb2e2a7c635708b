package util

import (
	"creai_edu_backend/pkg/logger"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一响应结构
type Response struct {
	Success    bool         `json:"success"`
	Message    string       `json:"message,omitempty"`
	Data       interface{}  `json:"data,omitempty"`
	Pagination interface{}  `json:"pagination,omitempty"`
	Errors     []FieldError `json:"errors,omitempty"`
	Meta       interface{}  `json:"meta,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

func SuccessPage(c *gin.Context, data interface{}, pagination interface{}) {
	c.JSON(http.StatusOK, Response{
		Success:    true,
		Data:       data,
		Pagination: pagination,
	})
}

func Created(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Success: false,
		Message: message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func ValidationFailed(c *gin.Context, details []FieldError) {
	c.JSON(http.StatusBadRequest, Response{
		Success: false,
		Message: "Validation failed",
		Errors:  details,
	})
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	resp := Response{Success: false, Message: "Internal server error"}
	if gin.Mode() == gin.DebugMode {
		resp.Meta = gin.H{"originalMessage": err.Error()}
	}
	c.JSON(http.StatusInternalServerError, resp)
}

// HandleError 将领域错误映射为 HTTP 状态码，未知错误统一返回 500
func HandleError(c *gin.Context, err error) {
	var de *DomainError
	if !errors.As(err, &de) {
		LogInternalError(c, err)
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrNotPublished):
		status = http.StatusNotFound
	case errors.Is(err, ErrValidation), errors.Is(err, ErrUnsafeInput), errors.Is(err, ErrInvalidTransition):
		status = http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, ErrUpstream):
		status = http.StatusBadGateway
	default:
		LogInternalError(c, err)
		return
	}

	c.JSON(status, Response{
		Success: false,
		Message: de.Message,
		Errors:  de.Details,
	})
}
