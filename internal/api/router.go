package api

import (
	"context"
	"fmt"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/inkwell/content-service/docs"
	"github.com/inkwell/content-service/internal/api/handler"
	"github.com/inkwell/content-service/internal/api/middleware"
	"github.com/inkwell/content-service/internal/auth/password"
	"github.com/inkwell/content-service/internal/auth/token"
	"github.com/inkwell/content-service/internal/core/service"
	mongodb "github.com/inkwell/content-service/internal/infrastructure/db/mongo"
	redisdb "github.com/inkwell/content-service/internal/infrastructure/db/redis"
	"github.com/inkwell/content-service/internal/infrastructure/queue"
	"github.com/inkwell/content-service/internal/pkg/config"
)

// NewRouter builds the Echo instance with all routes registered and returns
// it together with the audit dispatcher, which the caller must Start.
func NewRouter(ctx context.Context, db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) (*echo.Echo, *queue.Dispatcher, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("content"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	postRepo := mongodb.NewPostRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)

	if err := userRepo.EnsureIndexes(ctx); err != nil {
		return nil, nil, fmt.Errorf("ensure user indexes: %w", err)
	}
	if err := postRepo.EnsureIndexes(ctx); err != nil {
		return nil, nil, fmt.Errorf("ensure post indexes: %w", err)
	}

	tokens, err := token.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return nil, nil, err
	}
	hasher := password.NewHasher(cfg.BcryptCost)
	reservation := redisdb.NewEmailReservation(rdb)
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, auditRepo, log)

	accountService := service.NewAccountService(userRepo, postRepo, hasher, tokens, reservation, dispatcher, log)
	postService := service.NewPostService(postRepo, dispatcher, log)

	accountHandler := handler.NewAccountHandler(accountService)
	postHandler := handler.NewPostHandler(postService)
	authGate := middleware.Auth(tokens, log)

	// --- Public routes ---
	e.POST("/auth/register", accountHandler.Register)
	e.POST("/auth/login", accountHandler.Login)
	e.GET("/users", accountHandler.List)

	// --- Protected routes ---
	user := e.Group("/user", authGate)
	user.GET("/settings", accountHandler.Settings)
	user.PUT("/update", accountHandler.Update)
	user.DELETE("/delete", accountHandler.Delete)

	posts := e.Group("/posts", authGate)
	posts.POST("", postHandler.Create)
	posts.GET("", postHandler.List)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e, dispatcher, nil
}
