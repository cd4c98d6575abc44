// Package api_router 提供 HTTP API 路由处理器
package api_router

import (
	"context"

	"github.com/haierkeys/fast-note-pad/internal/app"
	"github.com/haierkeys/fast-note-pad/internal/middleware"
	apperrors "github.com/haierkeys/fast-note-pad/pkg/errors"
	"github.com/haierkeys/fast-note-pad/pkg/logger"

	"go.uber.org/zap"
)

// Handler 基础 Handler 结构体，封装 App Container
// 所有 API Handler 都应该嵌入此结构体以获得依赖注入能力
type Handler struct {
	App *app.App
}

// NewHandler 创建基础 Handler 实例
func NewHandler(a *app.App) *Handler {
	return &Handler{App: a}
}

// logError 记录业务错误
// 服务端错误（5xx）记录原始错误链，客户端错误只记录警告
func (h *Handler) logError(ctx context.Context, method, uid string, err error) {
	fields := []zap.Field{
		zap.String(logger.FieldMethod, method),
		zap.String(logger.FieldTraceID, middleware.GetTraceID(ctx)),
		zap.String(logger.FieldUID, uid),
		zap.Error(err),
	}

	if apperrors.ToCode(err).StatusCode() >= 500 {
		h.App.Logger().Error(method, fields...)
		return
	}
	h.App.Logger().Warn(method, fields...)
}
