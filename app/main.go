package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"warranty-console/internal/integrations/warrantyapi"
	"warranty-console/internal/listeners"
	"warranty-console/internal/repositories"
	"warranty-console/internal/routes"
	"warranty-console/pkg/config"
	"warranty-console/pkg/customvalidator"
	"warranty-console/pkg/database/postgresql"
	apperrors "warranty-console/pkg/errors"
	"warranty-console/pkg/eventbus"
	applogger "warranty-console/pkg/logger"
	"warranty-console/pkg/middleware"
	"warranty-console/pkg/service"
	"warranty-console/pkg/utils"
)

func main() {
	cfg := config.New()
	logger := applogger.NewLogger(cfg.Log)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.RecoverWithConfig(echomw.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("panic recovered",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Internal server error", err, nil)
				_ = utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		ExposeHeaders:    []string{echo.HeaderContentDisposition, "X-Export-Rows"},
	}))
	e.Use(middleware.InjectLogger(logger))
	e.Use(middleware.AccessLog(logger.Named("http")))

	v := validator.New()
	if err := customvalidator.RegisterCustomValidations(v); err != nil {
		logger.Fatal("failed to register validation rules", zap.Error(err))
	}
	e.Validator = utils.NewValidator(v)

	dbConn, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN, logger)
	if err != nil {
		logger.Fatal("failed to connect to PostgreSQL", zap.Error(err))
	}
	defer dbConn.Close()
	if err := postgresql.Migrate(ctx, dbConn, logger.Named("migrations")); err != nil {
		logger.Fatal("failed to apply migrations", zap.Error(err))
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	if _, err := redisClient.Ping(ctx).Result(); err != nil {
		logger.Fatal("failed to connect to Redis", zap.Error(err), zap.String("address", cfg.Redis.Address))
	}

	if cfg.JWT.SecretKey == "" {
		logger.Warn("JWT_SECRET is empty, every request will be rejected")
	}

	bus := eventbus.New(logger.Named("eventbus"))
	logRepo := repositories.NewActivityLogRepository(dbConn, logger)
	listeners.NewActivityLogListener(logRepo, logger).Register(bus)

	routes.InitRouter(e, routes.Deps{
		API:    warrantyapi.New(cfg.Upstream, logger),
		Cache:  repositories.NewRedisCacheRepository(redisClient),
		Logs:   logRepo,
		JWT:    service.NewJWTService(cfg.JWT.SecretKey),
		Bus:    bus,
		Config: cfg,
		Logger: logger,
	})

	go func() {
		logger.Info("server started", zap.String("port", cfg.Server.Port))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}
	if err := bus.Wait(shutdownCtx); err != nil {
		logger.Warn("activity log writes did not finish", zap.Error(err))
	}
}
