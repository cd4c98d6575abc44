package routers

import (
	"time"

	"github.com/haierkeys/fast-note-pad/internal/app"
	"github.com/haierkeys/fast-note-pad/internal/middleware"
	"github.com/haierkeys/fast-note-pad/internal/routers/api_router"
	"github.com/haierkeys/fast-note-pad/pkg/limiter"

	ut "github.com/go-playground/universal-translator"
	"github.com/gin-gonic/gin"
)

// newMethodLimiters 笔记接口全局限流，所有客户端共享一个令牌桶
// 按路径前缀匹配，/api/note 同时覆盖 /api/note/pin 与 /api/notes*
func newMethodLimiters(capacity int64) limiter.Face {
	l := limiter.NewMethodLimiter()
	if capacity <= 0 {
		return l
	}
	return l.AddBuckets(
		limiter.BucketRule{
			Key:          "/api/note",
			FillInterval: time.Second,
			Capacity:     capacity,
			Quantum:      capacity,
		},
	)
}

func NewRouter(appContainer *app.App, uni *ut.UniversalTranslator) *gin.Engine {

	// 获取配置
	cfg := appContainer.Config()
	httpMetrics := middleware.NewHTTPMetrics(appContainer.Registry, cfg.Metrics.Namespace)

	r := gin.New()
	r.Use(middleware.RecoveryWithLogger(appContainer.Logger()))

	api := r.Group("/api")
	{
		api.Use(middleware.AppInfoWithConfig(app.Name, appContainer.Version().Version))
		api.Use(middleware.TraceMiddlewareWithConfig(cfg.Tracer.Enabled, cfg.Tracer.Header)) // Trace ID 中间件
		api.Use(httpMetrics.Handler())
		api.Use(middleware.LangWithTranslator(uni))
		api.Use(middleware.RateLimiter(newMethodLimiters(cfg.App.RateLimitCapacity)))
		api.Use(middleware.ContextTimeout(cfg.GetContextTimeout()))
		api.Use(middleware.AccessLogWithLogger(appContainer.Logger()))

		// 创建 Handlers（注入 App Container）
		noteHandler := api_router.NewNoteHandler(appContainer)
		healthHandler := api_router.NewHealthHandler(appContainer)
		versionHandler := api_router.NewVersionHandler(appContainer)

		// 无需认证
		api.GET("/health", healthHandler.Check)
		api.GET("/version", versionHandler.ServerVersion)

		auth := api.Group("", middleware.UserAuthTokenWithManager(appContainer.TokenManager))
		auth.POST("/note", noteHandler.Create)
		auth.GET("/note", noteHandler.Get)
		auth.PUT("/note", noteHandler.UpdateContent)
		auth.PUT("/note/pin", noteHandler.UpdatePin)
		auth.DELETE("/note", noteHandler.Delete)
		auth.GET("/notes", noteHandler.List)
		auth.GET("/notes/stats", noteHandler.Stats)
	}

	r.NoRoute(middleware.LangWithTranslator(uni), middleware.NoFound())

	return r
}
