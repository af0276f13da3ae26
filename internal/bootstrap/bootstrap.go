// Package bootstrap 各个二进制共用的装配逻辑：日志、数据库、缓存、数据源。
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"emptycup-directory/internal/core/cache"
	"emptycup-directory/internal/core/config"
	"emptycup-directory/internal/core/database"
	"emptycup-directory/internal/core/logger"
	"emptycup-directory/internal/listing"
	"emptycup-directory/internal/repo"
)

const (
	SourceDB   = "db"
	SourceURL  = "url"
	SourceFile = "file"
)

func NewLogger(cfg *config.Config) (*zap.Logger, func()) {
	return logger.NewWithRotate(cfg.Log.Level, cfg.Log.JSON,
		cfg.Log.File, cfg.Log.MaxSizeMB, cfg.Log.MaxBackups, cfg.Log.MaxAgeDays, cfg.Log.Compress)
}

func OpenDB(cfg *config.Config) (*gorm.DB, error) {
	return database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
}

// Catalog 打开设计师仓库；按配置自动迁移并写入示例数据
func Catalog(ctx context.Context, cfg *config.Config, db *gorm.DB, l *zap.Logger) (*repo.DesignerRepo, error) {
	r := repo.NewDesignerRepo(db)
	if cfg.DB.AutoMigrate {
		if err := r.Migrate(); err != nil {
			return nil, fmt.Errorf("automigrate: %w", err)
		}
		l.Info("automigrate done")
	}
	if cfg.DB.SeedSample {
		n, err := r.SeedIfEmpty(ctx)
		if err != nil {
			return nil, fmt.Errorf("seed designers: %w", err)
		}
		if n > 0 {
			l.Info("sample designers seeded", zap.Int("count", n))
		}
	}
	return r, nil
}

// OpenCache 未配置或连不上时返回 nil，调用方直接读库
func OpenCache(ctx context.Context, cfg *config.Config, l *zap.Logger) *cache.Cache {
	if cfg.Redis.Addr == "" {
		return nil
	}
	c := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := c.Ping(pctx); err != nil {
		l.Warn("redis unavailable, catalog cache disabled", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		_ = c.Close()
		return nil
	}
	l.Info("redis connected", zap.String("addr", cfg.Redis.Addr))
	return c
}

// NewSource 按 directory.source 选择档案来源；db 源同时是缓存失效器
func NewSource(cfg *config.Config, r *repo.DesignerRepo, c *cache.Cache) (listing.Source, *listing.RepoSource, error) {
	switch cfg.Directory.Source {
	case SourceDB, "":
		rs := &listing.RepoSource{Repo: r, Cache: c, TTL: time.Duration(cfg.Directory.CacheTTLSec) * time.Second}
		return rs, rs, nil
	case SourceURL:
		if cfg.Directory.DataURL == "" {
			return nil, nil, fmt.Errorf("directory.data_url is required for source %q", SourceURL)
		}
		return &listing.HTTPSource{URL: cfg.Directory.DataURL}, nil, nil
	case SourceFile:
		if cfg.Directory.DataFile == "" {
			return nil, nil, fmt.Errorf("directory.data_file is required for source %q", SourceFile)
		}
		return &listing.FileSource{Path: cfg.Directory.DataFile}, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown directory.source %q", cfg.Directory.Source)
	}
}
