package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"emptycup-directory/internal/bootstrap"
	"emptycup-directory/internal/core/auth"
	"emptycup-directory/internal/core/config"
	"emptycup-directory/internal/core/database"
	"emptycup-directory/internal/core/logger"
	"emptycup-directory/internal/core/server"
	"emptycup-directory/internal/service"
	"emptycup-directory/internal/transport/http/handler"
	"emptycup-directory/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := bootstrap.NewLogger(cfg)
	defer cleanup()
	defer logger.RedirectStdLog(log, zapcore.InfoLevel)()
	gin.DefaultWriter = logger.ToWriter(log, zapcore.DebugLevel)
	gin.DefaultErrorWriter = logger.ToWriter(log, zapcore.ErrorLevel)
	if cfg.App.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// DB 连接（失败直接 Fatal）
	db, err := bootstrap.OpenDB(cfg)
	if err != nil {
		log.Fatal("db open", zap.Error(err))
	}
	defer database.Close(db)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	designers, err := bootstrap.Catalog(ctx, cfg, db, log)
	if err != nil {
		log.Fatal("catalog init", zap.Error(err))
	}

	// 写操作后要清用户端的目录缓存
	c := bootstrap.OpenCache(ctx, cfg, log)
	if c != nil {
		defer c.Close()
	}
	_, inv, err := bootstrap.NewSource(cfg, designers, c)
	if err != nil {
		log.Fatal("directory source", zap.Error(err))
	}

	// 依赖
	if cfg.Admin.PasswordHash == "" {
		log.Warn("admin.password_hash is empty, admin login disabled")
	}
	jwter := auth.NewJWTer(cfg.JWT.Secret, cfg.JWT.Issuer, time.Duration(cfg.JWT.AccessTokenTTLMin)*time.Minute)
	catalog := service.NewCatalogService(designers, inv, log)
	adminH := handler.NewAdminHandler(catalog, jwter, handler.Credentials{
		Username:     cfg.Admin.Username,
		PasswordHash: cfg.Admin.PasswordHash,
	}, log)

	// 路由（后台端）
	r := router.NewAdminEngine(log, router.NewRegistry(adminH))

	// HTTP Server
	addr := server.Addr(cfg.App.Admin.Host, cfg.App.Admin.Port)
	srv := server.BuildServer(addr, r, 5*time.Second, 30*time.Second, 60*time.Second, log)

	baseURL := server.HumanURL(cfg.App.Admin.Host, cfg.App.Admin.Port)
	log.Info("admin api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("admin_v1", baseURL+"/admin/v1"),
	)

	if err := server.Serve(ctx, srv, log, 10*time.Second); err != nil {
		log.Fatal("admin api FAILED", zap.Error(err))
	}
	log.Info("admin api stopped gracefully")
}
