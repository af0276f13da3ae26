package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"emptycup-directory/internal/bootstrap"
	"emptycup-directory/internal/core/config"
	"emptycup-directory/internal/core/database"
	"emptycup-directory/internal/repo"
)

var (
	configPath string
	cfg        *config.Config
	log        *zap.Logger
	flushLog   func()
)

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRoot().ExecuteContext(ctx)
}

func NewRoot() *cobra.Command {
	root := &cobra.Command{
		Use:          "ctl",
		Short:        "EmptyCup designer directory tooling",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			c, err := config.Read(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			cfg = c
			log, flushLog = bootstrap.NewLogger(cfg)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if flushLog != nil {
				flushLog()
			}
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $CONFIG_PATH or ./configs/config.local.yaml)")

	root.AddCommand(importCmd(), seedCmd(), probeCmd(), hashPasswordCmd())
	return root
}

// withCatalog 打开数据库 + 仓库，执行完关闭
func withCatalog(ctx context.Context, fn func(r *repo.DesignerRepo) error) error {
	db, err := bootstrap.OpenDB(cfg)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer database.Close(db)

	r := repo.NewDesignerRepo(db)
	if err := r.Migrate(); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return fn(r)
}
