package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/pokedex/pokedex-api/docs"
	"github.com/pokedex/pokedex-api/internal/api/handler"
	"github.com/pokedex/pokedex-api/internal/api/middleware"
	"github.com/pokedex/pokedex-api/internal/core/ports"
)

// Services are the core ports the HTTP layer drives.
type Services struct {
	Auth      ports.AuthService
	Catalog   ports.CatalogService
	Favorites ports.FavoriteService
	Stats     ports.StatsService
	Teams     ports.TeamService
	Sessions  ports.SessionIssuer
}

// Options tune the ambient parts of the router.
type Options struct {
	Logger zerolog.Logger
	// HealthChecks are pinged by GET /health/ready.
	HealthChecks []handler.DependencyCheck
	// AssetsDir is served under /assets when set.
	AssetsDir string
	// AuthRequestsPerMinute limits /api/auth/* per client IP. Zero disables it.
	AuthRequestsPerMinute int
	// Registry receives the HTTP metrics. Nil means the default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	promConfig := echoprometheus.MiddlewareConfig{Subsystem: "pokedex"}
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if opts.Registry != nil {
		promConfig.Registerer = opts.Registry
		gatherer = opts.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLogger(opts.Logger))
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddlewareWithConfig(promConfig))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(svc.Auth)
	pokemonHandler := handler.NewPokemonHandler(svc.Catalog)
	favoriteHandler := handler.NewFavoriteHandler(svc.Favorites)
	statsHandler := handler.NewStatsHandler(svc.Stats)
	teamHandler := handler.NewTeamHandler(svc.Teams)
	requireAuth := middleware.Auth(svc.Sessions)

	api := e.Group("/api")

	// --- Catalog ---
	pokemons := api.Group("/pokemons")
	pokemons.GET("", pokemonHandler.List)
	pokemons.GET("/:id", pokemonHandler.Get)
	pokemons.POST("", pokemonHandler.Create, requireAuth)
	pokemons.PUT("/:id", pokemonHandler.Update, requireAuth)
	pokemons.DELETE("/:id", pokemonHandler.Delete, requireAuth)

	api.GET("/stats", statsHandler.Overview)

	// --- Auth ---
	auth := api.Group("/auth")
	if opts.AuthRequestsPerMinute > 0 {
		auth.Use(middleware.RateLimit(opts.AuthRequestsPerMinute))
	}
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", authHandler.Me, requireAuth)
	auth.DELETE("/me", authHandler.DeleteAccount, requireAuth)
	auth.PUT("/password", authHandler.ChangePassword, requireAuth)

	// --- Favorites ---
	favorites := api.Group("/favorites", requireAuth)
	favorites.GET("", favoriteHandler.List)
	favorites.POST("/:pokemonId", favoriteHandler.Add)
	favorites.DELETE("/:pokemonId", favoriteHandler.Remove)

	// --- Teams ---
	teams := api.Group("/teams", requireAuth)
	teams.GET("", teamHandler.List)
	teams.POST("", teamHandler.Create)
	teams.GET("/:id", teamHandler.Get)
	teams.PUT("/:id", teamHandler.Update)
	teams.DELETE("/:id", teamHandler.Delete)
	teams.PATCH("/:id/name", teamHandler.Rename)
	teams.POST("/:id/members", teamHandler.AddMember)
	teams.DELETE("/:id/members/:index", teamHandler.RemoveMember)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(opts.HealthChecks...)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	if opts.AssetsDir != "" {
		e.Static("/assets", opts.AssetsDir)
	}

	return e
}
