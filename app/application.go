package app

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"
	"outdooradvisor.app/api"
	"outdooradvisor.app/config"
	"outdooradvisor.app/database"
	"outdooradvisor.app/metrics"
	"outdooradvisor.app/providers"
	"outdooradvisor.app/providers/cache"
	"outdooradvisor.app/repository"
	"outdooradvisor.app/scheduler"
	"outdooradvisor.app/service"
)

// Application represents the main application with all its dependencies
type Application struct {
	config      *config.Config
	db          *gorm.DB
	server      *api.Server
	scheduler   *scheduler.Scheduler
	memoryCache *cache.MemoryCache
}

// NewApplication creates and initializes a new application instance
func NewApplication() (*Application, error) {
	app := &Application{}

	if err := app.loadConfiguration(); err != nil {
		return nil, err
	}

	if err := app.initializeDatabase(); err != nil {
		return nil, err
	}

	if err := app.initializeServices(); err != nil {
		return nil, err
	}

	return app, nil
}

func (app *Application) loadConfiguration() error {
	slog.Info("Loading configuration...")

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return fmt.Errorf("load application configuration: %w", err)
	}

	app.config = cfg
	slog.Info("Configuration loaded successfully")
	return nil
}

func (app *Application) initializeDatabase() error {
	slog.Info("Initializing database...")

	db, err := database.InitDB(app.config.Database)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		return fmt.Errorf("initialize database connection: %w", err)
	}

	if err := database.RunMigrations(db); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		return fmt.Errorf("run database migrations: %w", err)
	}

	app.db = db
	slog.Info("Database initialized successfully")
	return nil
}

func (app *Application) initializeServices() error {
	slog.Info("Initializing services...")

	providerManager, err := providers.NewProviderManager(&app.config.Weather)
	if err != nil {
		return fmt.Errorf("create provider manager: %w", err)
	}

	bundleStore, err := app.createBundleStore()
	if err != nil {
		return fmt.Errorf("create bundle store: %w", err)
	}

	cacheMetrics := metrics.NewCacheMetrics(app.config.Cache.Type)
	forecastCache := providers.NewForecastCache(providerManager, bundleStore, cacheMetrics, &app.config.Cache)

	matcher := service.NewWindowMatcher(&app.config.Matcher)
	classifier := service.NewSuitabilityClassifier(&app.config.Activity)
	advisoryService := service.NewAdvisoryService(forecastCache, matcher, classifier, providerManager, cacheMetrics)

	eventRepo := repository.NewEventRepository(app.db)

	app.server = api.NewServer(app.db, app.config, advisoryService, eventRepo)
	app.scheduler = scheduler.NewScheduler(app.config, eventRepo, advisoryService, app.createNotifier())

	slog.Info("Services initialized successfully")
	return nil
}

// createNotifier selects the advisory delivery channel
func (app *Application) createNotifier() service.NotifierInterface {
	if app.config.Email.Enabled {
		slog.Debug("Creating email notifier...")
		return scheduler.NewEmailNotifier(providers.NewSMTPEmailProvider(&app.config.Email))
	}
	slog.Debug("Creating log notifier...")
	return scheduler.NewLogNotifier()
}

// createBundleStore selects the configured forecast bundle storage backend
func (app *Application) createBundleStore() (cache.BundleStoreInterface, error) {
	switch app.config.Cache.Type {
	case "redis":
		slog.Debug("Creating Redis bundle store...")
		return cache.NewRedisCache(&cache.RedisCacheConfig{
			Addr:         app.config.Cache.RedisAddr,
			Password:     app.config.Cache.RedisPassword,
			DB:           app.config.Cache.RedisDB,
			DialTimeout:  app.config.Cache.RedisDialTimeout,
			ReadTimeout:  app.config.Cache.RedisReadTimeout,
			WriteTimeout: app.config.Cache.RedisWriteTimeout,
		})
	default:
		slog.Debug("Creating in-memory bundle store...")
		app.memoryCache = cache.NewMemoryCache()
		return cache.NewBundleStore(app.memoryCache), nil
	}
}

// Start starts the application
func (app *Application) Start() error {
	slog.Info("Starting application...")

	slog.Info("Starting scheduler...")
	app.scheduler.Start()

	slog.Info("Starting HTTP server", "port", app.config.Server.Port)
	return app.server.Start()
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	slog.Info("Shutting down application...")

	if app.scheduler != nil {
		app.scheduler.Stop()
	}

	if app.memoryCache != nil {
		app.memoryCache.Stop()
	}

	if app.db != nil {
		if err := database.CloseDB(app.db); err != nil {
			slog.Warn("Error closing database", "error", err)
		}
	}

	slog.Info("Application shutdown complete")
	return nil
}

// Config returns the application configuration
func (app *Application) Config() *config.Config {
	return app.config
}
