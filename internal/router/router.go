package router

import (
	"github.com/anonto42/warbler/internal/handlers"
	"github.com/anonto42/warbler/internal/middleware"
	"github.com/anonto42/warbler/internal/services"
	"github.com/anonto42/warbler/internal/session"
	"github.com/anonto42/warbler/internal/views"
	"github.com/anonto42/warbler/validators"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// Dependencies are the collaborators the routes are built from. Verifier, Health and
// AllowedOrigins are optional.
type Dependencies struct {
	Logger   *zap.Logger
	Repos    services.Repositories
	Sessions *session.Manager
	Verifier handlers.TokenVerifier
	Health   handlers.HealthChecker

	// AllowedOrigins may call the app cross-origin with credentials.
	AllowedOrigins []string
	SecureCookies  bool
}

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, deps Dependencies) {
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(eMiddleware.Recover())
	if len(deps.AllowedOrigins) > 0 {
		e.Use(eMiddleware.CORSWithConfig(eMiddleware.CORSConfig{
			AllowOrigins:     deps.AllowedOrigins,
			AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderXCSRFToken},
			AllowCredentials: true,
		}))
	}
	e.Use(middleware.NoCache())
	e.Use(middleware.CSRF(deps.SecureCookies, deps.AllowedOrigins))
	e.Use(middleware.Identity(deps.Logger, deps.Sessions, deps.Repos.Users))
	deps.Logger.Info("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, deps Dependencies) error {
	renderer, err := views.NewRenderer()
	if err != nil {
		return err
	}
	e.Renderer = renderer
	e.Validator = validators.NewValidator()
	e.HTTPErrorHandler = handlers.ErrorHandler(deps.Logger)

	svc := services.New(deps.Logger, deps.Repos)

	// Health check and assets - always accessible
	e.GET("/health", handlers.NewHealthHandler(deps.Health).HealthCheck)
	e.StaticFS("/static", views.Static())

	root := e.Group("")
	handlers.NewFeedHandler(svc.Feed, svc.Social).RegisterFeedRoutes(root)
	handlers.NewAuthHandler(svc.Credentials, deps.Verifier).RegisterAuthRoutes(root)
	deps.Logger.Info("Auth routes configured.")

	// --- Protected routes (require a logged-in session) ---
	users := e.Group("/users", middleware.RequireLogin())
	handlers.NewUserHandler(svc.Credentials, svc.Social, svc.Feed).RegisterUserRoutes(users)
	deps.Logger.Info("User routes configured.")

	handlers.NewFollowHandler(svc.Social).RegisterFollowRoutes(users)
	deps.Logger.Info("Follow routes configured.")

	handlers.NewLikeHandler(svc.Social).RegisterLikeRoutes(users)
	deps.Logger.Info("Like routes configured.")

	messages := e.Group("/messages", middleware.RequireLogin())
	handlers.NewMessageHandler(svc.Messages, svc.Social).RegisterMessageRoutes(messages)
	deps.Logger.Info("Message routes configured.")

	deps.Logger.Info("All routes configured.")
	return nil
}
