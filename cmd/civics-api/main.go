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
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/adityasinghr651/civics-api/api/swagger"
	"github.com/adityasinghr651/civics-api/internal/handler"
	"github.com/adityasinghr651/civics-api/internal/middleware"
	"github.com/adityasinghr651/civics-api/internal/repository"
	"github.com/adityasinghr651/civics-api/internal/service"
	"github.com/adityasinghr651/civics-api/pkg/config"
	"github.com/adityasinghr651/civics-api/pkg/database"
	"github.com/adityasinghr651/civics-api/pkg/logger"
	"github.com/adityasinghr651/civics-api/pkg/mailer"
	corsmiddleware "github.com/adityasinghr651/civics-api/pkg/middleware/cors"
	"github.com/adityasinghr651/civics-api/pkg/middleware/ratelimit"
	reqidmiddleware "github.com/adityasinghr651/civics-api/pkg/middleware/requestid"
)

// @title Civics API
// @version 1.0.0
// @description Citizen civic-issue reporting with email notifications
// @BasePath /
// @schemes http

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

	// Store selection happens exactly once, here. A configured but
	// unreachable database degrades to the in-memory fallback; it does not
	// abort startup.
	var store service.ReportStore
	if cfg.Database.Configured() {
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			logr.Warn("database unreachable, falling back to in-memory store", zap.Error(err))
		} else {
			defer db.Close()
			store = repository.NewReportRepository(db)
			logr.Info("connected to postgres", zap.String("database", cfg.Database.Name))
		}
	}
	if store == nil {
		store = repository.NewMemoryReportRepository()
		logr.Warn("durable store not configured, reports will not survive restarts")
	}

	// A configured but unreachable mail transport is fatal, unlike a failed
	// individual send.
	var transport service.MailTransport
	if cfg.Mail.Configured() {
		smtp, err := mailer.NewSMTP(cfg.Mail)
		if err != nil {
			logr.Fatal("failed to build smtp client", zap.Error(err))
		}
		verifyCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		if err := smtp.Verify(verifyCtx); err != nil {
			cancel()
			logr.Fatal("smtp transport unreachable", zap.Error(err))
		}
		cancel()
		transport = smtp
		logr.Info("mailer is ready to send emails")
	} else {
		logr.Warn("mailer credentials not configured, email notifications are disabled")
	}

	metrics := service.NewMetricsService()
	notifier := service.NewNotifierService(transport, cfg.Mail.AdminEmail, logr, metrics)
	reports := service.NewReportService(store, notifier, validator.New(), logr)

	if cfg.Relay.Enabled {
		if cfg.Database.Configured() {
			relay := service.NewChangeRelay(database.DSN(cfg.Database), cfg.Relay.Channel, store, notifier, logr, metrics)
			go func() {
				if err := relay.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					logr.Error("change relay exited", zap.Error(err))
				}
			}()
		} else {
			logr.Warn("change relay enabled but no database configured, relay not started")
		}
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", handler.Health)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group("/api")
	if cfg.RateLimit.Enabled {
		api.Use(ratelimit.New(cfg.RateLimit.Requests, cfg.RateLimit.Window).Middleware())
	}
	handler.NewReportHandler(reports).Register(api)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not Found"})
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logr.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("forced shutdown", zap.Error(err))
	}
	logr.Info("server closed")
}
