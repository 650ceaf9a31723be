package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fyerfyer/seo-evaluator/api/model"
	"github.com/fyerfyer/seo-evaluator/internal/models"
)

// 定义应用中的错误类型常量
const (
	ErrorTypeValidation    = "VALIDATION_ERROR"     // 输入验证错误
	ErrorTypeNotFound      = "NOT_FOUND_ERROR"      // 资源不存在错误
	ErrorTypeTooLarge      = "PAYLOAD_TOO_LARGE"    // 请求内容过大
	ErrorTypeUnsupported   = "UNSUPPORTED_DOCUMENT" // 不支持的文档类型
	ErrorTypeInternal      = "INTERNAL_ERROR"       // 内部服务器错误
	ErrorTypeCancelled     = "REQUEST_CANCELLED"    // 请求被取消或超时
	ErrorTypeBusiness      = "BUSINESS_ERROR"       // 业务逻辑错误
	statusClientClosedConn = 499
)

// AppError 应用错误结构体
type AppError struct {
	Type    string // 错误类型
	Message string // 错误消息
	Details string // 详细错误信息
	Code    int    // 错误代码
}

// Error 实现error接口的方法
func (e AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// NewValidationError 创建输入验证错误
func NewValidationError(message string, details ...string) AppError {
	return AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Details: strings.Join(details, "; "),
		Code:    http.StatusBadRequest,
	}
}

// NewNotFoundError 创建资源不存在错误
func NewNotFoundError(message string) AppError {
	return AppError{
		Type:    ErrorTypeNotFound,
		Message: message,
		Code:    http.StatusNotFound,
	}
}

// NewInternalError 创建内部服务器错误
func NewInternalError(message string, details ...string) AppError {
	return AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Details: strings.Join(details, "; "),
		Code:    http.StatusInternalServerError,
	}
}

// NewBusinessError 创建业务逻辑错误
func NewBusinessError(message string, details ...string) AppError {
	return AppError{
		Type:    ErrorTypeBusiness,
		Message: message,
		Details: strings.Join(details, "; "),
		Code:    http.StatusBadRequest,
	}
}

// FromServiceError 将服务层错误映射为应用错误
func FromServiceError(err error) AppError {
	var appErr AppError
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.As(err, &maxBytesErr):
		return AppError{
			Type:    ErrorTypeTooLarge,
			Message: fmt.Sprintf("request body exceeds %d bytes", maxBytesErr.Limit),
			Code:    http.StatusRequestEntityTooLarge,
		}
	case errors.Is(err, models.ErrEmptyContent),
		errors.Is(err, models.ErrEmptyKeyword),
		errors.Is(err, models.ErrEmptyBatch):
		return NewValidationError(err.Error())
	case errors.Is(err, models.ErrContentTooLarge),
		errors.Is(err, models.ErrBatchTooLarge):
		return AppError{Type: ErrorTypeTooLarge, Message: err.Error(), Code: http.StatusRequestEntityTooLarge}
	case errors.Is(err, models.ErrUnsupportedDocument):
		return AppError{Type: ErrorTypeUnsupported, Message: err.Error(), Code: http.StatusUnsupportedMediaType}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return AppError{Type: ErrorTypeCancelled, Message: err.Error(), Code: statusClientClosedConn}
	default:
		return NewInternalError("Internal server error", err.Error())
	}
}

// ErrorMiddleware 统一错误处理中间件
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 捕获 panic
		defer func() {
			if err := recover(); err != nil {
				log.WithFields(logrus.Fields{
					FieldError:   err,
					"stack":      string(debug.Stack()),
					FieldPath:    c.Request.URL.Path,
					FieldTraceID: GetTraceID(c),
				}).Error("Panic recovered in API request")

				errorResponse := model.NewErrorResponse(
					http.StatusInternalServerError,
					"An unexpected error occurred",
				)

				// 在开发环境中可以返回详细错误
				if gin.Mode() == gin.DebugMode {
					errorResponse.Message = fmt.Sprintf("Panic: %v", err)
				}
				errorResponse.TraceID = GetTraceID(c)

				c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse)
			}
		}()

		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		// 取最后一个错误进行处理
		err := c.Errors.Last().Err
		traceID := GetTraceID(c)
		appErr := FromServiceError(err)

		entry := log.WithFields(logrus.Fields{
			"error_type":  appErr.Type,
			FieldTraceID:  traceID,
			FieldPath:     c.Request.URL.Path,
			FieldStatus:   appErr.Code,
			"error_cause": err.Error(),
		})
		if appErr.Code >= http.StatusInternalServerError {
			entry.Error(appErr.Message)
		} else {
			entry.Warn(appErr.Message)
		}

		message := appErr.Message
		if appErr.Type == ErrorTypeInternal && gin.Mode() == gin.DebugMode {
			message = err.Error()
		} else if appErr.Details != "" && appErr.Type != ErrorTypeInternal {
			message = appErr.Message + ": " + appErr.Details
		}

		errResp := model.NewErrorResponse(appErr.Code, message)
		errResp.TraceID = traceID
		c.AbortWithStatusJSON(appErr.Code, errResp)
	}
}

// HandleError 在处理器中使用的错误处理辅助函数
func HandleError(c *gin.Context, err error) {
	_ = c.Error(err)
}
