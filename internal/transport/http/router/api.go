package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	mdw "emptycup-directory/internal/transport/http/middleware"
)

const (
	apiName    = "EmptyCup Designer Shortlist API"
	apiVersion = "1.0.0"
)

func NewAPIEngine(l *zap.Logger, reg *Registry) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		mdw.SimpleRecovery(l),
		mdw.Metrics(),
		mdw.AccessLog(l),
		cors.Default(),
	)

	// 健康检查
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	// 启动页探测的就是这个地址：<api base>/health
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "message": "EmptyCup API is running"})
	})
	r.GET("/api/info", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": apiName,
			"version": apiVersion,
			"endpoints": gin.H{
				"health":          "/api/health",
				"designers":       "/api/v1/designers",
				"designer_detail": "/api/v1/designers/{id}",
				"sessions":        "/api/v1/sessions",
				"shortlist":       "/api/v1/sessions/{sid}/shortlist/{id}",
				"hide":            "/api/v1/sessions/{sid}/hide/{id}",
				"undo":            "/api/v1/sessions/{sid}/undo",
				"report":          "/api/v1/sessions/{sid}/report",
			},
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 前缀
	api := r.Group("/api/v1")
	api.Use(mdw.RateLimitPerIP(20, 40))

	reg.MountAllAPI(api)

	return r
}
