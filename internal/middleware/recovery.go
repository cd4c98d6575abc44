package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/haierkeys/fast-note-pad/pkg/app"
	"github.com/haierkeys/fast-note-pad/pkg/code"
	"github.com/haierkeys/fast-note-pad/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecoveryWithLogger 创建带日志器的 Recovery 中间件（支持依赖注入）
// panic 的内容只写入日志，响应中只返回通用的服务器内部错误
func RecoveryWithLogger(lg *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery
		defer func() {
			if err := recover(); err != nil {
				fields := []zap.Field{
					zap.Int("status", c.Writer.Status()),
					zap.String("router", path),
					zap.String("method", c.Request.Method),
					zap.String("query", query),
					zap.String("ip", c.ClientIP()),
					zap.String("user-agent", c.Request.UserAgent()),
					zap.String(logger.FieldTraceID, c.GetString(app.TraceIDKey)),
					zap.String("errors", c.Errors.ByType(gin.ErrorTypePrivate).String()), // 记录错误的上下文
					zap.String("stack", string(debug.Stack())),                           // 错误堆栈
				}

				switch v := err.(type) {
				case error:
					lg.Error("Recovered from panic", append(fields, zap.Error(v))...)
				default:
					// 如果是其它类型的 panic（如非错误类型的 panic）
					lg.Error("Recovered from unknown panic", append(fields, zap.String("panic_value", fmt.Sprintf("%v", v)))...)
				}

				// 返回统一的错误响应
				app.NewResponse(c).ToResponse(code.ErrorServerInternal)
				c.Abort()
			}
		}()

		c.Next()
	}
}
