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
	"emptycup-directory/internal/core/config"
	"emptycup-directory/internal/core/database"
	"emptycup-directory/internal/core/logger"
	"emptycup-directory/internal/core/server"
	"emptycup-directory/internal/health"
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

	// 数据库（失败直接 Fatal）
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

	// 缓存可选
	c := bootstrap.OpenCache(ctx, cfg, log)
	if c != nil {
		defer c.Close()
	}

	src, inv, err := bootstrap.NewSource(cfg, designers, c)
	if err != nil {
		log.Fatal("directory source", zap.Error(err))
	}
	catalog := service.NewCatalogService(designers, inv, log)

	mgr := service.NewManager(service.Options{
		Source:     src,
		Prober:     health.NewProber(cfg.Directory.APIBaseURL, log),
		UndoWindow: time.Duration(cfg.Directory.UndoWindowSec) * time.Second,
		TTL:        time.Duration(cfg.Directory.SessionTTLMin) * time.Minute,
		Logger:     log,
	})
	go mgr.Run(ctx, time.Minute)

	reg := router.NewRegistry(
		handler.NewDesignerHandler(catalog),
		handler.NewSessionHandler(mgr, log),
	)
	r := router.NewAPIEngine(log, reg)

	// HTTP Server
	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
		log,
	)

	baseURL := server.HumanURL(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	log.Info("user api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/api/health"),
		zap.String("api_v1", baseURL+"/api/v1"),
		zap.String("source", cfg.Directory.Source),
	)

	if err := server.Serve(ctx, srv, log, 10*time.Second); err != nil {
		log.Fatal("user api FAILED", zap.Error(err))
	}
	log.Info("user api stopped gracefully")
}
