package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hrms-payroll-go/internal/config"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/employee"
	appHTTP "github.com/cmlabs-hris/hrms-payroll-go/internal/handler/http"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/pkg/cron"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/pkg/sequence"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/pkg/sse"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/pkg/storage"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/repository/postgresql"
	serviceAuth "github.com/cmlabs-hris/hrms-payroll-go/internal/service/auth"
	employeeService "github.com/cmlabs-hris/hrms-payroll-go/internal/service/employee"
	notificationService "github.com/cmlabs-hris/hrms-payroll-go/internal/service/notification"
	payrollService "github.com/cmlabs-hris/hrms-payroll-go/internal/service/payroll"
	"github.com/go-chi/httplog/v3"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logFormat := httplog.SchemaECS.Concise(!cfg.IsProduction())
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hrms-payroll"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	counter, closeCounter, err := newLoginIDCounter(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer closeCounter()

	fileStorage, err := newFileStorage(ctx, cfg.Storage)
	if err != nil {
		return err
	}

	scheduler := cron.NewScheduler()
	if purger, ok := fileStorage.(storage.Purger); ok {
		if err := scheduler.AddJob("purge_payroll_exports", time.Hour, payrollService.NewExportRetentionJob(purger, cfg.Storage.ExportRetention)); err != nil {
			return err
		}
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	txManager := postgresql.NewTxManager(db)

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		return fmt.Errorf("init jwt: %w", err)
	}

	loginIDs, err := employee.NewLoginIDGenerator(cfg.LoginID.Prefix, counter)
	if err != nil {
		return fmt.Errorf("init login id generator: %w", err)
	}

	hub := sse.NewHub()
	dispatcher := notificationService.NewDispatcher(hub, notificationService.Config{})
	defer dispatcher.Stop()

	authService := serviceAuth.NewAuthService(userRepo, JWTService)
	employeeSvc := employeeService.NewEmployeeService(txManager, employeeRepo, userRepo, loginIDs)
	payrollSvc := payrollService.NewPayrollService(payrollRepo, employeeRepo, fileStorage, dispatcher, cfg.Storage.ExportURLExpiry)

	router := appHTTP.NewRouter(JWTService, appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(authService),
		Payroll:      appHTTP.NewPayrollHandler(payrollSvc),
		Employee:     appHTTP.NewEmployeeHandler(employeeSvc),
		Notification: appHTTP.NewNotificationHandler(hub),
	}, appHTTP.RouterOptions{
		Logger:         logger,
		LogLevel:       slog.LevelInfo,
		AllowedOrigins: cfg.App.AllowedOrigins,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server running", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// newLoginIDCounter uses Redis when configured so serials survive restarts.
func newLoginIDCounter(ctx context.Context, cfg config.RedisConfig) (sequence.Counter, func(), error) {
	if cfg.Addr == "" {
		slog.Warn("REDIS_ADDR not set, login id serials are kept in memory")
		return sequence.NewMemoryCounter(), func() {}, nil
	}

	client, err := database.NewRedisClient(ctx, database.RedisOptions{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}
	return sequence.NewRedisCounter(client, cfg.Namespace), func() {
		if err := client.Close(); err != nil {
			slog.Error("failed to close redis client", "error", err)
		}
	}, nil
}

// newFileStorage picks the export backend. Local files are only reachable
// through the authenticated /api/v1/payroll/exports route.
func newFileStorage(ctx context.Context, cfg config.StorageConfig) (storage.FileStorage, error) {
	switch cfg.Type {
	case config.StorageMinio:
		minioStorage, err := storage.NewMinioStorage(ctx, storage.MinioConfig{
			Endpoint:        cfg.MinioEndpoint,
			AccessKeyID:     cfg.MinioAccessKey,
			SecretAccessKey: cfg.MinioSecretKey,
			Bucket:          cfg.MinioBucket,
			UseSSL:          cfg.MinioUseSSL,
			Prefix:          cfg.MinioPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("init minio storage: %w", err)
		}
		return minioStorage, nil
	default:
		localStorage, err := storage.NewLocalStorage(cfg.BasePath, cfg.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("init local storage: %w", err)
		}
		return localStorage, nil
	}
}
