package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/devfollow/social-network/internal/api/handler"
	"github.com/devfollow/social-network/internal/api/metrics"
	"github.com/devfollow/social-network/internal/api/middleware"
	"github.com/devfollow/social-network/internal/api/session"
	"github.com/devfollow/social-network/internal/core/ports"
	"github.com/devfollow/social-network/internal/infrastructure/http/handlers"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Auth     ports.AuthService
	Profiles ports.ProfileService
	Posts    ports.PostService
	Follows  ports.FollowService
	Tokens   ports.TokenService
	Sessions *session.Manager

	// Registry receives the HTTP and application metrics served on /metrics.
	Registry *prometheus.Registry
	// Checks are the readiness probes, keyed by dependency name.
	Checks map[string]handlers.Check

	Log zerolog.Logger
}

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	m := metrics.New(d.Registry)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "social",
		Subsystem:  "http",
		Registerer: d.Registry,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))
	e.Use(d.Sessions.Middleware())

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth, d.Profiles, d.Sessions, m, d.Log)
	profileHandler := handler.NewProfileHandler(d.Profiles, m, d.Log)
	followHandler := handler.NewFollowHandler(d.Follows, d.Sessions, m, d.Log)
	postHandler := handler.NewPostHandler(d.Posts, d.Sessions, m, d.Log)

	mustBeLoggedIn := middleware.MustBeLoggedIn(d.Sessions)
	apiMustBeLoggedIn := middleware.APIMustBeLoggedIn(d.Tokens, m, d.Log)

	// --- Web routes ---
	e.GET("/", authHandler.Home)
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)
	e.POST("/logout", authHandler.Logout)

	profile := e.Group("/profile/:username",
		middleware.ProfileUser(d.Auth, d.Log),
		middleware.SharedProfileData(d.Profiles, m, d.Log),
	)
	profile.GET("", profileHandler.PostsScreen)
	profile.GET("/followers", profileHandler.FollowersScreen)
	profile.GET("/following", profileHandler.FollowingScreen)

	e.POST("/addFollow/:username", followHandler.Add, mustBeLoggedIn)
	e.POST("/removeFollow/:username", followHandler.Remove, mustBeLoggedIn)
	e.POST("/create-post", postHandler.Create, mustBeLoggedIn)

	// --- API routes ---
	e.POST("/doesUsernameExist", authHandler.DoesUsernameExist)
	e.POST("/doesEmailExist", authHandler.DoesEmailExist)

	api := e.Group("/api")
	api.POST("/login", authHandler.APILogin)
	api.GET("/postsByAuthor/:username", profileHandler.PostsByUsername)
	api.POST("/create-post", postHandler.APICreate, apiMustBeLoggedIn)

	// --- Operations ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(d.Checks)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Registry}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
