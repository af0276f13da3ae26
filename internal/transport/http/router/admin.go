package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"emptycup-directory/internal/core/server"
	mdw "emptycup-directory/internal/transport/http/middleware"
)

// NewAdminEngine 访问日志与 panic 恢复走 ginzap（见 server.NewRouter）
func NewAdminEngine(l *zap.Logger, reg *Registry) *gin.Engine {
	r := server.NewRouter(l)

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(50, 100),
		mdw.ConcurrencyLimit(50),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(30*time.Second),
		mdw.Metrics(),
	)

	// 健康检查
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })

	// 管理端 v1（登录公开，其余由模块自行挂 AuthJWT("admin")）
	admin := r.Group("/admin/v1")
	reg.MountAllAdmin(admin)

	return r
}
