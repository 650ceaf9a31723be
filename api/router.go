package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fyerfyer/seo-evaluator/api/handler"
	"github.com/fyerfyer/seo-evaluator/api/middleware"
)

// SetupRouter 设置API路由
// 配置所有的API端点并应用中间件
func SetupRouter(evalHandler *handler.EvaluationHandler) (*gin.Engine, error) {
	if err := handler.RegisterValidators(); err != nil {
		return nil, err
	}

	router := gin.New()

	// 应用全局中间件，追踪ID需要先于日志和错误处理设置
	router.Use(middleware.SetTraceID())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorMiddleware())
	router.Use(Cors())

	// 在调试模式下记录请求体和响应体
	if gin.Mode() == gin.DebugMode {
		router.Use(middleware.RequestBodyLog())
		router.Use(middleware.ResponseLogger())
	}

	api := router.Group("/api")
	{
		evalGroup := api.Group("/evaluate")
		{
			// 评估单篇文章 - POST /api/evaluate
			evalGroup.POST("", middleware.BodyLimit(evalHandler.BodyLimit()), evalHandler.Evaluate)

			// 评估上传文档 - POST /api/evaluate/file
			evalGroup.POST("/file", middleware.BodyLimit(evalHandler.UploadLimit()), evalHandler.EvaluateFile)

			// 批量评估 - POST /api/evaluate/batch
			evalGroup.POST("/batch", middleware.BodyLimit(evalHandler.BatchBodyLimit()), evalHandler.EvaluateBatch)
		}

		// 评估项说明 - GET /api/criteria
		api.GET("/criteria", evalHandler.ListCriteria)

		// 健康检查 - GET /api/health
		api.GET("/health", evalHandler.Health)
	}

	return router, nil
}

// Cors 跨域资源共享中间件
func Cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Trace-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
