package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/classroom-api/internal/handler"
	"github.com/noah-isme/classroom-api/internal/middleware"
	"github.com/noah-isme/classroom-api/internal/repository"
	"github.com/noah-isme/classroom-api/internal/service"
	"github.com/noah-isme/classroom-api/pkg/config"
	"github.com/noah-isme/classroom-api/pkg/database"
	"github.com/noah-isme/classroom-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/classroom-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/classroom-api/pkg/middleware/requestid"
	"github.com/noah-isme/classroom-api/pkg/ratelimit"
	"github.com/noah-isme/classroom-api/pkg/tracing"
)

// @title Classroom API
// @version 1.0.0
// @description Departments, subjects, classes and class rosters.
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logr); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logr *zap.Logger) error {
	shutdownTracing, err := tracing.Init(ctx, cfg.Telemetry, cfg.Env, logr)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logr.Warn("tracer shutdown failed", zap.Error(err))
		}
	}()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			return err
		}
		logr.Info("database schema applied")
	}

	metrics := service.NewMetricsService()
	rt := service.Runtime{Logger: logr, Metrics: metrics, QueryTimeout: cfg.Database.QueryTimeout}
	validate := validator.New()

	users := repository.NewUserRepository(db)
	deps := routeDeps{
		auth:        service.NewAuthService(service.AuthConfig{Secret: cfg.Auth.Secret, Issuer: cfg.Auth.Issuer}),
		departments: handler.NewDepartmentHandler(service.NewDepartmentService(repository.NewDepartmentRepository(db), validate, rt)),
		subjects:    handler.NewSubjectHandler(service.NewSubjectService(repository.NewSubjectRepository(db), validate, rt)),
		users:       handler.NewUserHandler(service.NewUserService(users, rt)),
		classes: handler.NewClassHandler(service.NewClassService(
			repository.NewClassRepository(db),
			repository.NewMembershipRepository(db),
			users,
			validate,
			rt,
			service.ClassOptions{InviteCodeAttempts: cfg.Classes.InviteCodeMaxAttempts},
		)),
		observability: handler.NewMetricsHandler(metrics, db),
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(middleware.Recovery())
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	if cfg.Telemetry.Enabled {
		r.Use(tracing.Middleware(cfg.Telemetry.ServiceName))
	}
	r.Use(middleware.Metrics(metrics, "/metrics", "/health", "/ready"))

	if cfg.RateLimit.Enabled {
		client, err := ratelimit.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer client.Close()
		limiter := ratelimit.NewLimiter(ratelimit.NewRedisCounter(client, "classroom"), cfg.RateLimit.Requests, cfg.RateLimit.Window)
		deps.limit = middleware.RateLimit(limiter, metrics, logr)
	}

	registerRoutes(r, cfg, deps)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logr.Info("server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
