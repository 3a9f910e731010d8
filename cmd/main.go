package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blogsapi/api/handler"
	apiMiddleware "blogsapi/api/middleware"
	"blogsapi/api/routes"
	"blogsapi/config"
	"blogsapi/internal/metrics"
	"blogsapi/internal/repository"
	"blogsapi/internal/service"
	"blogsapi/internal/telemetry"
	"blogsapi/internal/utils"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const serviceName = "blogsapi"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.WithError(err).Fatal("failed to load configuration")
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	shutdownTracing, err := telemetry.Init(ctx, serviceName, cfg.OTLPEndpoint, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to initialise tracing")
	}

	db, err := config.ConnectionDb(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to database")
	}
	defer func() {
		if err := config.CloseDb(db); err != nil {
			logger.WithError(err).Warn("failed to close database")
		}
	}()
	if cfg.AutoMigrate {
		if err := config.Migrate(ctx, db); err != nil {
			logger.WithError(err).Fatal("failed to migrate database")
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	appMetrics := metrics.New(registry)

	validate := utils.NewValidator()
	accessManager := utils.JWTManager{
		Secret:         []byte(cfg.Token.SecretKey),
		Issuer:         cfg.Token.Issuer,
		Audience:       cfg.Token.Audience,
		AccessTokenTTL: cfg.Token.AccessTokenTTL(),
	}

	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	securityRepo := repository.NewSecurityLogRepository(db)
	blogRepo := repository.NewBlogRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	passwordHasher := service.BcryptPasswordHasher{}

	authService := service.NewAuthService(
		userRepo,
		sessionRepo,
		securityRepo,
		passwordHasher,
		service.JWTAccessIssuer{Manager: &accessManager},
		appMetrics,
		service.RealClock{},
		service.AuthConfig{
			RefreshWindow:      cfg.Token.RefreshWindow,
			RotateRefreshToken: cfg.Token.RotateRefresh,
		},
	)
	userService := service.NewUserService(userRepo, passwordHasher)
	blogService := service.NewBlogService(blogRepo, userRepo)
	postService := service.NewPostService(postRepo, blogRepo, userRepo)
	commentService := service.NewCommentService(commentRepo, postRepo)

	app := echo.New()
	app.HideBanner = true
	app.HidePort = true
	app.Use(echoMiddleware.Recover())
	app.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogStatus:   true,
		LogMethod:   true,
		LogURI:      true,
		LogRemoteIP: true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			entry := logger.WithFields(logrus.Fields{
				"status":  v.Status,
				"method":  v.Method,
				"uri":     v.URI,
				"ip":      v.RemoteIP,
				"latency": v.Latency.String(),
			})
			if v.Error != nil {
				entry.WithError(v.Error).Error("request")
				return nil
			}
			entry.Info("request")
			return nil
		},
	}))
	app.Use(apiMiddleware.RequestMetrics(appMetrics))

	router := &routes.Router{
		Echo:           app,
		Auth:           handler.NewAuthHandler(authService, validate),
		Users:          handler.NewUserHandler(userService, validate),
		Blogs:          handler.NewBlogHandler(blogService, validate),
		Posts:          handler.NewPostHandler(postService, commentService, validate),
		AuthMiddleware: apiMiddleware.AuthMiddleware{JWT: &accessManager},
		Gatherer:       registry,
	}
	router.RegisterRoutes()

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           otelhttp.NewHandler(app, serviceName),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.WithField("addr", cfg.HTTPAddr).Info("server started")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server stopped")
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("graceful shutdown failed")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.WithError(err).Warn("failed to flush traces")
	}
}
