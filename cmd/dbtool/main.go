package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"fleet-sim-service/internal/adapters/repositories"
	"fleet-sim-service/internal/config"
	"fleet-sim-service/internal/platform/db"
	"fleet-sim-service/internal/seed"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dbtool",
	Short: "Database administration for the fleet simulation service",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found (using environment variables)")
		}
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Initialize the schema and load fleet seed data",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close()

		log.Println("Initializing database schema...")
		if err := repositories.InitSchema(database); err != nil {
			return err
		}
		log.Println("Schema ready.")

		seedPath := config.Get("SEED_PATH", "data/seeds/fleet.json")
		log.Printf("Seeding database from %s...", seedPath)
		if err := repositories.SeedFromJSON(database, seedPath); err != nil {
			return err
		}
		log.Println("Seeding complete.")

		return nil
	},
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Populate the database with clearly labeled demo data",
	Long: `Generates a reproducible fake fleet (drivers, routes, pending orders)
and writes it to the database. Demo records are labeled as such; this
command is the only way demo data enters the system.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		drivers, _ := cmd.Flags().GetInt("drivers")
		routes, _ := cmd.Flags().GetInt("routes")
		orders, _ := cmd.Flags().GetInt("orders")
		randSeed, _ := cmd.Flags().GetInt64("seed")

		if drivers < 1 || routes < 1 || orders < 1 {
			return fmt.Errorf("demo: drivers, routes and orders must all be positive")
		}

		database, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close()

		if err := repositories.InitSchema(database); err != nil {
			return err
		}

		fleet := seed.GenerateDemoFleet(drivers, routes, orders, randSeed)
		if err := repositories.UpsertFleet(database, fleet.Drivers, fleet.Routes, fleet.Orders); err != nil {
			return err
		}

		log.Printf("Demo fleet written: drivers=%d routes=%d orders=%d seed=%d",
			drivers, routes, orders, randSeed)
		return nil
	},
}

func openDatabase() (*sql.DB, error) {
	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	return db.Open(databaseURL)
}

func init() {
	demoCmd.Flags().Int("drivers", 10, "Number of demo drivers")
	demoCmd.Flags().Int("routes", 5, "Number of demo routes")
	demoCmd.Flags().Int("orders", 40, "Number of demo orders")
	demoCmd.Flags().Int64("seed", 42, "Random seed for reproducible demo data")

	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(demoCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
