package app

import (
	"github.com/apper-canvas/staffsync-program-correct/internal/auth"
	"github.com/apper-canvas/staffsync-program-correct/internal/config"
	"github.com/apper-canvas/staffsync-program-correct/internal/directory"
	"github.com/apper-canvas/staffsync-program-correct/internal/employee"
	"github.com/apper-canvas/staffsync-program-correct/internal/middleware"
	"github.com/apper-canvas/staffsync-program-correct/internal/preference"
	"github.com/apper-canvas/staffsync-program-correct/internal/recordstore"
	"github.com/apper-canvas/staffsync-program-correct/internal/session"
	"github.com/apper-canvas/staffsync-program-correct/internal/workspace"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Dependencies are the connections the modules are built on.
type Dependencies struct {
	Records   recordstore.Store[employee.Employee]
	Redis     redis.Cmdable
	Publisher employee.EventPublisher
}

// registerModules builds every module on deps and mounts its routes. The
// returned registry owns the per-session state and must be closed on
// shutdown.
func registerModules(
	router *gin.Engine,
	cfg *config.Configuration,
	deps Dependencies,
	logger *zap.Logger,
) (*workspace.Registry, error) {
	publisher := deps.Publisher
	if publisher == nil {
		publisher = employee.NewNoopEventPublisher()
	}

	// --- Core ---
	gateway := employee.NewGateway(deps.Records, logger)
	workspaces := workspace.NewRegistry(gateway, publisher, logger)

	policy, err := session.NewRoutePolicy()
	if err != nil {
		return nil, err
	}

	// --- Services ---
	authService := auth.NewService(auth.NewHMACVerifier(cfg.AuthTokenSecret), workspaces, cfg.Directory.DefaultPageSize, logger)
	preferenceService := preference.NewService(preference.NewRedisRepository(deps.Redis), cfg.Directory.ThemePrefersDark, logger)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, cfg.IsProduction())
	preferenceHandler := preference.NewHandler(preferenceService, logger)
	directoryHandler := directory.NewHandler(directory.Options{
		ListPageSize:   cfg.Directory.ListPageSize,
		SearchDebounce: cfg.Directory.SearchDebounce,
		NotFoundDelay:  cfg.Directory.NotFoundRedirectDelay,
	}, logger)

	// --- Routes Registration ---
	router.Use(
		middleware.RequestID(),
		middleware.Session(workspaces),
		middleware.ContextLogger(logger),
	)
	router.GET(cfg.MetricsPath, gin.WrapH(promhttp.Handler()))

	guard := middleware.RouteGuard(policy)
	pages := router.Group("", guard)
	{
		auth.RegisterRoutes(pages, authHandler)
		preference.RegisterRoutes(pages, preferenceHandler)
		directory.RegisterRoutes(pages, directoryHandler, deps.Redis)
	}
	router.NoRoute(guard, directoryHandler.NotFound)

	return workspaces, nil
}

// NewRouter returns an engine with every module mounted on deps.
func NewRouter(cfg *config.Configuration, deps Dependencies, logger *zap.Logger) (*gin.Engine, *workspace.Registry, error) {
	router := gin.New()
	router.Use(gin.Recovery())
	workspaces, err := registerModules(router, cfg, deps, logger)
	if err != nil {
		return nil, nil, err
	}
	return router, workspaces, nil
}
