package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/vaultkeep/notes-service/docs"
	"github.com/vaultkeep/notes-service/internal/api/handler"
	"github.com/vaultkeep/notes-service/internal/api/middleware"
	"github.com/vaultkeep/notes-service/internal/core/domain"
	"github.com/vaultkeep/notes-service/internal/core/ports"
	"github.com/vaultkeep/notes-service/internal/core/token"
	"github.com/vaultkeep/notes-service/internal/infrastructure/http/handlers"
)

// Services bundles the use-case implementations the router exposes.
type Services struct {
	Auth  ports.AuthService
	Notes ports.NoteService
}

// NewRouter builds and returns the Echo instance with all routes registered.
// The token codec is shared between the authenticator middleware and the
// login flow; both receive it explicitly.
func NewRouter(services Services, codec *token.Codec, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("vaultkeep"))

	authenticate := middleware.Authenticate(codec, log)

	// --- Auth routes (public) ---
	authHandler := handler.NewAuthHandler(services.Auth)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Notes (any authenticated principal) ---
	noteHandler := handler.NewNoteHandler(services.Notes)
	notes := e.Group("/notes", authenticate, middleware.RequireAuthenticated())
	notes.GET("", noteHandler.List)
	notes.POST("", noteHandler.Create)
	notes.GET("/search", noteHandler.Search)
	notes.GET("/:id", noteHandler.Get)
	notes.PUT("/:id", noteHandler.Update)
	notes.DELETE("/:id", noteHandler.Delete)

	// --- Admin surface (ADMIN role required) ---
	admin := e.Group("/admin", authenticate, middleware.RequireRole(domain.RoleAdmin))
	admin.GET("/users", authHandler.ListUsers)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	readinessHandler := handlers.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
