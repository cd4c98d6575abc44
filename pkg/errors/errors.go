package errors

import (
	"errors"
	"time"

	pkgapp "github.com/haierkeys/fast-note-pad/pkg/app"
	"github.com/haierkeys/fast-note-pad/pkg/code"

	"github.com/gin-gonic/gin"
)

// AppError 统一应用错误结构体
// 包含错误码、消息、详情和时间戳；Cause 只用于日志，不会返回给调用方
type AppError struct {
	// Code 错误码
	Code int `json:"code"`
	// Message 错误消息
	Message string `json:"message"`
	// Details 错误详情（可选）
	Details []string `json:"details,omitempty"`
	// Cause 原始错误（不序列化到JSON）
	Cause error `json:"-"`
	// Timestamp 错误发生时间
	Timestamp time.Time `json:"timestamp"`

	codeObj *code.Code
}

// Error 实现 error 接口，包含原始错误便于日志排查
func (e *AppError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap 实现 errors.Unwrap 接口，支持错误链路追踪
func (e *AppError) Unwrap() error {
	return e.Cause
}

// CodeObj 返回对应的 Code 对象
func (e *AppError) CodeObj() *code.Code {
	return e.codeObj
}

// NewAppError 从 Code 对象创建 AppError
func NewAppError(c *code.Code, cause error) *AppError {
	return &AppError{
		Code:      c.Code(),
		Message:   c.Msg(),
		Details:   c.Details(),
		Cause:     cause,
		Timestamp: time.Now(),
		codeObj:   c,
	}
}

// ToCode 将任意错误转换为对外可见的 Code
// AppError 只暴露其 Code，不暴露 Cause；未知错误统一为服务器内部错误
func ToCode(err error) *code.Code {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.codeObj != nil {
		if len(appErr.Details) > 0 {
			return appErr.codeObj.WithDetails(appErr.Details...)
		}
		return appErr.codeObj
	}

	var codeErr *code.Code
	if errors.As(err, &codeErr) {
		return codeErr
	}

	return code.ErrorServerInternal
}

// ErrorResponse 统一错误响应处理
// 将错误转换为 Code 并以统一结构返回（TraceID 由 Response 从 gin.Context 读取）
func ErrorResponse(c *gin.Context, err error) {
	pkgapp.NewResponse(c).ToResponse(ToCode(err))
}

// IsAppError 检查错误是否为 AppError 类型
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 从错误链中获取 AppError
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}
