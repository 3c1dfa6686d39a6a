package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/agrovista/agrovista/pkg/database"
)

var rootCmd = &cobra.Command{
	Use:   "agrovista",
	Short: "AgroVista - Agricultural IoT Monitoring System",
	Long: `AgroVista is an agricultural IoT monitoring system that manages
land parcels and serves live and historical sensor telemetry dashboards.`,
}

func main() {
	// Optional .env for local development; real deployments set the
	// environment directly
	_ = godotenv.Load()

	dbManager, err := database.NewManager()
	if err != nil {
		fmt.Printf("Failed to initialize database: %v\n", err)
		os.Exit(1)
	}
	defer dbManager.Close()

	ctx := context.WithValue(context.Background(), "dbManager", dbManager)
	rootCmd.SetContext(ctx)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
