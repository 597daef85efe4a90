package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/notehub/notes-api/internal/api/handler"
	"github.com/notehub/notes-api/internal/api/middleware"
	"github.com/notehub/notes-api/internal/core/domain"
	"github.com/notehub/notes-api/internal/core/service"
	mongodb "github.com/notehub/notes-api/internal/infrastructure/db/mongo"
	redisdb "github.com/notehub/notes-api/internal/infrastructure/db/redis"
)

const sessionTTL = 24 * time.Hour

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:8080"},
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddleware("notes_api"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	noteRepo := mongodb.NewNoteRepository(db)
	userCache := redisdb.NewUserCache(rdb)

	authService := service.NewAuthService(userRepo, jwtSecret, sessionTTL, log)
	sessionService := service.NewSessionService(userRepo, userCache, jwtSecret, log)
	noteService := service.NewNoteService(noteRepo, log)
	userService := service.NewUserService(userRepo, noteRepo, authService, userCache, log)

	authHandler := handler.NewAuthHandler(authService, sessionTTL)
	noteHandler := handler.NewNoteHandler(noteService)
	userHandler := handler.NewUserHandler(userService)

	session := middleware.Session(sessionService)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	api := e.Group("/api")
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.POST("/logout", authHandler.Logout)
	api.GET("/user", authHandler.CurrentUser, session)

	// --- Note routes (session required) ---
	notes := api.Group("/notes", session)
	notes.POST("", noteHandler.Create)
	notes.GET("", noteHandler.List)
	notes.GET("/:id", noteHandler.Get)
	notes.PATCH("/:id", noteHandler.Update)
	notes.DELETE("/:id", noteHandler.Delete)

	// --- User routes (session required; create/list are admin only) ---
	users := api.Group("/users", session)
	users.POST("", userHandler.Create, adminOnly)
	users.GET("", userHandler.List, adminOnly)
	users.GET("/:id", userHandler.Get)
	users.PATCH("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	// --- Observability (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
