package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"charsheet-restful/auth"
	"charsheet-restful/config"
	"charsheet-restful/controllers"
	"charsheet-restful/database"
	grpcserver "charsheet-restful/grpc_server"
	"charsheet-restful/metrics"
	"charsheet-restful/repositories"
	"charsheet-restful/services"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

func newServeCmd(v *viper.Viper, configFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and the gRPC health endpoint",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v, *configFile)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}

	cmd.Flags().Int("http-port", 0, "HTTP listen port (overrides http_port)")
	cmd.Flags().Int("grpc-port", 0, "gRPC listen port (overrides grpc_port)")
	cmd.Flags().String("log-level", "", "log level: debug, info, warn, error")
	_ = v.BindPFlag("http_port", cmd.Flags().Lookup("http-port"))
	_ = v.BindPFlag("grpc_port", cmd.Flags().Lookup("grpc-port"))
	_ = v.BindPFlag("log_level", cmd.Flags().Lookup("log-level"))
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	db, err := database.Open(cfg.Database, logger)
	if err != nil {
		return err
	}
	defer database.Close(db) //nolint:errcheck

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			return err
		}
		logger.Info("Database connection successful and migrations complete.")
	}

	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	authService := services.NewAuthService(repositories.NewUserRepository(db), hasher)
	characterService := services.NewCharacterService(repositories.NewCharacterRepository(db))

	registry := metrics.NewRegistry()
	container := controllers.NewContainer(controllers.ContainerOptions{
		AuthService:      authService,
		CharacterService: characterService,
		Logger:           logger,
		Metrics:          metrics.New(registry),
		Gatherer:         registry,
	})

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	monitor := grpcserver.NewHealthMonitor(sqlDB, cfg.HealthInterval, logger)
	grpcSrv := grpcserver.NewServer(logger, monitor)

	httpSrv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           container,
		ReadHeaderTimeout: 10 * time.Second,
	}
	grpcLis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		return fmt.Errorf("listen grpc: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go monitor.Run(ctx)

	errCh := make(chan error, 2)
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", httpSrv.Addr), zap.Int("bcrypt_cost", hasher.Cost()))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()
	go func() {
		logger.Info("gRPC server listening", zap.String("addr", grpcLis.Addr().String()))
		if err := grpcSrv.Serve(grpcLis); err != nil {
			errCh <- fmt.Errorf("grpc server: %w", err)
		}
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("Shutting down")
	case serveErr = <-errCh:
		logger.Error("Server failed", zap.Error(serveErr))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP shutdown incomplete", zap.Error(err))
	}
	grpcSrv.GracefulStop()
	return serveErr
}
