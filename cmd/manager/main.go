package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/allinone/manager/internal/config"
	"github.com/allinone/manager/internal/db"
	"github.com/allinone/manager/internal/handler"
	"github.com/allinone/manager/internal/job"
	"github.com/allinone/manager/internal/repo"
	"github.com/allinone/manager/internal/schedule"
	"github.com/allinone/manager/internal/service"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "manager",
		Short: "AllInOneManager backend server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)

			conn, err := db.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			// Migrations and the admin seed must finish before the listener
			// starts, otherwise an early request can hit a missing table.
			if err := db.ApplyMigrations(conn); err != nil {
				return fmt.Errorf("migrations: %w", err)
			}
			if err := db.SeedAdmin(cmd.Context(), conn, cfg.AdminSeed.Email, cfg.AdminSeed.Password); err != nil {
				return fmt.Errorf("seed admin: %w", err)
			}
			return runServer(cfg, conn)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json (optional, env vars override)")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func runServer(cfg *config.Config, conn *sql.DB) error {
	userRepo := repo.NewUserRepo(conn)
	appRepo := repo.NewAppRepo(conn)
	notificationRepo := repo.NewNotificationRepo(conn)

	jwtSecret := []byte(cfg.JWTSecret)
	jwtTTL := time.Hour * time.Duration(cfg.JWTTTLHours)
	authService := service.NewAuthService(userRepo, jwtSecret, jwtTTL)
	userService := service.NewUserService(userRepo)
	appService := service.NewAppService(appRepo)
	notificationService := service.NewNotificationService(notificationRepo)

	router := handler.NewRouter(handler.RouterDeps{
		Health:               handler.NewHealthHandler(time.Now()),
		Auth:                 handler.NewAuthHandler(authService),
		Users:                handler.NewUserHandler(userService),
		Apps:                 handler.NewAppHandler(appService),
		Notifications:        handler.NewNotificationHandler(notificationService),
		JWTSecret:            jwtSecret,
		CORSOrigins:          cfg.CORSOrigins,
		Dev:                  !cfg.IsProd(),
		OpenNotifications:    cfg.OpenNotifications,
		LoginRateLimitWindow: time.Duration(cfg.LoginRateLimitSeconds) * time.Second,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := schedule.NewScheduler()
	if cfg.NotificationRetentionDays > 0 {
		retention := job.NewNotificationRetentionJob(notificationService, cfg.NotificationRetentionDays)
		if err := scheduler.AddJob(retention, "13 3 * * *"); err != nil {
			return fmt.Errorf("schedule retention job: %w", err)
		}
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	addr := fmt.Sprintf("0.0.0.0:%d", cfg.Port)
	server := &http.Server{Addr: addr, Handler: router}

	errCh := make(chan error, 1)
	go func() {
		logutil.GetLogger(ctx).Info("http server listening",
			zap.String("addr", addr), zap.String("env", cfg.Env))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logutil.GetLogger(context.Background()).Info("server stopping...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
