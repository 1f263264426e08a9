package cmd

import (
	"fmt"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/username/fraudsight/src/config"
	"github.com/username/fraudsight/src/database"
	"github.com/username/fraudsight/src/handlers"
	"github.com/username/fraudsight/src/logger"
	"github.com/username/fraudsight/src/services"
	"github.com/username/fraudsight/src/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard API server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)

	logger.L.Info("FraudSight backend server starting...")

	logger.L.Info("Initializing database...", "path", config.Cfg.DatabasePath)
	db, err := database.Open(config.Cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db, config.Cfg.DatabasePath); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	viewCache := cache.New(config.Cfg.CacheExpiration, config.Cfg.CacheCleanupInterval)
	service := services.NewDashboardService(store.New(db), viewCache)

	limiter := rate.NewLimiter(rate.Every(config.Cfg.RateLimitInterval), config.Cfg.RateLimitBurst)
	router := handlers.NewRouter(service, limiter)

	serverAddr := ":" + config.Cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.L.Info("Server starting", "address", serverAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("starting server: %w", err)
	}
	return nil
}
