package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/matan1995el-lgtm/aliexpres/internal/config"
	"github.com/matan1995el-lgtm/aliexpres/internal/handler"
	"github.com/matan1995el-lgtm/aliexpres/internal/middleware"
	"github.com/matan1995el-lgtm/aliexpres/internal/repository"
	"github.com/matan1995el-lgtm/aliexpres/internal/service"
	"github.com/matan1995el-lgtm/aliexpres/internal/store"
	"github.com/matan1995el-lgtm/aliexpres/internal/worker"
)

// main is the application entrypoint for the shopping tracker API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Str("store", cfg.StoreDriver).Msg("starting tracker api")

	// 3. Open the document store
	st, err := openStore(cfg)
	if err != nil {
		log.Error().Err(err).Msg("store connection failed")
		fmt.Fprintf(os.Stderr, "store connection failed: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()
	log.Info().Msg("store connected successfully")

	// 4. Initialize repositories and load persisted collections
	productRepo := repository.NewProductRepository(st)
	favoriteRepo := repository.NewFavoriteRepository(st)
	profileRepo := repository.NewProfileRepository(st)
	settingsRepo := repository.NewSettingsRepository(st)
	activityRepo := repository.NewActivityRepository(st)
	reminderRepo := repository.NewReminderRepository(st)
	historyRepo := repository.NewSearchHistoryRepository(st)
	savedRepo := repository.NewSavedSearchRepository(st)

	loadCtx, loadCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer loadCancel()
	loaders := map[string]func(context.Context) error{
		"products":       productRepo.Load,
		"favorites":      favoriteRepo.Load,
		"profiles":       profileRepo.Load,
		"settings":       settingsRepo.Load,
		"activities":     activityRepo.Load,
		"reminders":      reminderRepo.Load,
		"search_history": historyRepo.Load,
		"saved_searches": savedRepo.Load,
	}
	for name, load := range loaders {
		if err := load(loadCtx); err != nil {
			log.Error().Err(err).Str("collection", name).Msg("failed to load collection")
			fmt.Fprintf(os.Stderr, "failed to load collection %s: %v\n", name, err)
			os.Exit(1)
		}
	}
	log.Info().Msg("collections loaded")

	// 5. Initialize services
	productSvc := service.NewProductService(productRepo, activityRepo)
	favoriteSvc := service.NewFavoriteService(favoriteRepo, activityRepo)
	profileSvc := service.NewProfileService(profileRepo, productRepo)
	settingsSvc := service.NewSettingsService(settingsRepo)
	searchSvc := service.NewSearchService(productRepo, favoriteRepo, profileRepo, historyRepo, savedRepo)
	insightSvc := service.NewInsightService(productRepo, favoriteRepo)
	exportSvc := service.NewExportService(productRepo, favoriteRepo, profileRepo, activityRepo, settingsRepo)
	reminderSvc := service.NewReminderService(reminderRepo)

	// 6. Initialize handlers
	handlers := &Handlers{
		Health:   handler.NewHealthHandler(st, cfg.StoreDriver),
		Product:  handler.NewProductHandler(productSvc),
		Favorite: handler.NewFavoriteHandler(favoriteSvc),
		Profile:  handler.NewProfileHandler(profileSvc),
		Settings: handler.NewSettingsHandler(settingsSvc),
		Search:   handler.NewSearchHandler(searchSvc),
		Insight:  handler.NewInsightHandler(insightSvc),
		Export:   handler.NewExportHandler(exportSvc),
		Reminder: handler.NewReminderHandler(reminderSvc),
		Activity: handler.NewActivityHandler(activityRepo),
	}

	// 7. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowedHosts))
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers)

	// 8. Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 9. Start workers
	go worker.NewReminderWorker(reminderSvc, cfg.Worker.ReminderCheckInterval).Start(ctx)

	// 10. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 11. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 12. Cancel context to stop workers
	cancel()

	// 13. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health   *handler.HealthHandler
	Product  *handler.ProductHandler
	Favorite *handler.FavoriteHandler
	Profile  *handler.ProfileHandler
	Settings *handler.SettingsHandler
	Search   *handler.SearchHandler
	Insight  *handler.InsightHandler
	Export   *handler.ExportHandler
	Reminder *handler.ReminderHandler
	Activity *handler.ActivityHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers) {
	router.GET("/v1/health", handlers.Health.GetHealth)

	// Products
	products := router.Group("/v1/products")
	{
		products.GET("", handlers.Product.List)
		products.POST("", handlers.Product.Create)
		products.GET("/:id", handlers.Product.Get)
		products.PUT("/:id", handlers.Product.Update)
		products.DELETE("/:id", handlers.Product.Delete)
		products.GET("/:id/badges", handlers.Insight.ProductBadges)
	}

	// Favorites
	favorites := router.Group("/v1/favorites")
	{
		favorites.GET("", handlers.Favorite.List)
		favorites.POST("", handlers.Favorite.Create)
		favorites.GET("/:id", handlers.Favorite.Get)
		favorites.PUT("/:id", handlers.Favorite.Update)
		favorites.DELETE("/:id", handlers.Favorite.Delete)
		favorites.GET("/:id/history", handlers.Favorite.History)
	}

	// Filter profiles
	profiles := router.Group("/v1/profiles")
	{
		profiles.GET("", handlers.Profile.List)
		profiles.POST("", handlers.Profile.Create)
		profiles.GET("/:id", handlers.Profile.Get)
		profiles.PUT("/:id", handlers.Profile.Update)
		profiles.DELETE("/:id", handlers.Profile.Delete)
		profiles.GET("/:id/apply", handlers.Profile.Apply)
	}

	// Settings and customs
	router.GET("/v1/settings", handlers.Settings.Get)
	router.PUT("/v1/settings", handlers.Settings.Save)
	router.POST("/v1/customs/quote", handlers.Settings.Quote)

	// Search
	search := router.Group("/v1/search")
	{
		search.GET("", handlers.Search.Global)
		search.GET("/relevance", handlers.Search.Relevance)
		search.GET("/fuzzy", handlers.Search.Fuzzy)
		search.GET("/suggestions", handlers.Search.Suggest)
		search.GET("/history", handlers.Search.Recent)
		search.GET("/history/popular", handlers.Search.Popular)
		search.DELETE("/history", handlers.Search.ClearHistory)
		search.GET("/saved", handlers.Search.SavedSearches)
		search.POST("/saved", handlers.Search.SaveSearch)
		search.DELETE("/saved/:id", handlers.Search.DeleteSavedSearch)
		search.POST("/saved/:id/use", handlers.Search.UseSavedSearch)
	}

	// Insights
	insights := router.Group("/v1/insights")
	{
		insights.GET("/badges", handlers.Insight.Badges)
		insights.GET("/recommendations", handlers.Insight.Recommendations)
		insights.GET("/stats", handlers.Insight.Stats)
		insights.GET("/top-product", handlers.Insight.TopProduct)
	}

	// Export / import
	router.GET("/v1/export", handlers.Export.Export)
	router.POST("/v1/import", handlers.Export.Import)
	router.GET("/v1/export/csv", handlers.Export.ExportCSV)
	router.POST("/v1/import/csv", handlers.Export.ImportCSV)

	// Reminders
	reminders := router.Group("/v1/reminders")
	{
		reminders.GET("", handlers.Reminder.List)
		reminders.POST("", handlers.Reminder.Create)
		reminders.PUT("/:id", handlers.Reminder.Update)
		reminders.DELETE("/:id", handlers.Reminder.Delete)
		reminders.POST("/:id/snooze", handlers.Reminder.Snooze)
	}

	// Activity feed
	router.GET("/v1/activities", handlers.Activity.List)
	router.DELETE("/v1/activities", handlers.Activity.Clear)
}

// openStore builds the document store selected by STORE_DRIVER. The postgres
// driver also runs schema migrations before use.
func openStore(cfg *config.Config) (store.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pg, err := store.NewPostgresStore(&cfg.DB)
		if err != nil {
			return nil, err
		}
		if err := runMigrations(pg.DB()); err != nil {
			pg.Close()
			return nil, err
		}
		log.Info().Msg("migrations completed successfully")
		return pg, nil
	case config.DriverMemory:
		return store.NewMemoryStore(), nil
	default:
		return store.NewRedisStore(&cfg.Redis)
	}
}

// runMigrations runs database migrations using golang-migrate.
func runMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	// Run migrations
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
