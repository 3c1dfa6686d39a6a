package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/agrovista/agrovista/pkg/dashboard"
	"github.com/agrovista/agrovista/pkg/database"
	"github.com/agrovista/agrovista/pkg/readings"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the AgroVista server",
	Long:  `Start the AgroVista server to manage parcels and serve sensor dashboards.`,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	jwtSecret := getEnv("JWT_SECRET", "")
	if jwtSecret == "" || jwtSecret == "change_me_in_production" {
		return errors.New("JWT_SECRET environment variable is not set or has an invalid value")
	}

	readingsBaseURL := getEnv("READINGS_BASE_URL", "")
	if readingsBaseURL == "" {
		return errors.New("READINGS_BASE_URL environment variable is not set")
	}
	readingsAPIKey := getEnv("READINGS_API_KEY", "")

	dbManager := cmd.Context().Value("dbManager").(*database.Manager)

	// Run migrations
	if err := dbManager.Init(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	// Load the full historical datasets once and start the live rotation
	readingsClient := readings.NewClient(readingsBaseURL, readingsAPIKey)
	dashboardService := dashboard.NewService(readingsClient)
	dashboardService.Load(cmd.Context())

	// Setup Router
	routeManager := NewRouteManager(dbManager, dashboardService)
	routeManager.Setup()

	// Get server port
	port := getEnv("SERVER_PORT", "8059")
	addr := ":" + port

	// Start server
	server := &http.Server{
		Handler:      routeManager.Router,
		Addr:         addr,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Shutdown signal received")

		dashboardService.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("Starting AgroVista server on %s...", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
