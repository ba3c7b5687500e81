package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"fleet-sim-service/internal/adapters/cache"
	"fleet-sim-service/internal/adapters/events"
	"fleet-sim-service/internal/adapters/repositories"
	"fleet-sim-service/internal/api"
	"fleet-sim-service/internal/config"
	"fleet-sim-service/internal/platform/db"
	"fleet-sim-service/internal/ports"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis, Kafka) behind ports
// and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	rules, err := config.LoadRules(os.Getenv("RULES_PATH"))
	if err != nil {
		log.Fatal(err)
	}

	database, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	// Schema init is idempotent; optional seed data for local runs.
	if err := repositories.InitSchema(database); err != nil {
		log.Fatal(err)
	}
	if seedPath := os.Getenv("SEED_PATH"); seedPath != "" {
		if err := repositories.SeedFromJSON(database, seedPath); err != nil {
			log.Fatal(err)
		}
	}

	repo := repositories.NewPostgresFleetRepository(database)
	store := repositories.NewPostgresSimulationStore(database)

	// The dashboard cache and the event stream are optional; the
	// service runs fine on Postgres alone.
	var resultCache ports.ResultCache
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		client, err := cache.NewClient(context.Background(), redisURL)
		if err != nil {
			log.Fatal(err)
		}
		defer client.Close()
		resultCache = cache.NewRedisResultCache(client, 15*time.Minute)
	}

	var publisher ports.EventPublisher = events.NopPublisher{}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		topic := config.Get("KAFKA_TOPIC", "simulation-results")
		saramaPublisher, err := events.NewSaramaPublisher(strings.Split(brokers, ","), topic)
		if err != nil {
			log.Fatal(err)
		}
		defer saramaPublisher.Close()
		publisher = saramaPublisher
	}

	router := api.NewRouter(repo, store, resultCache, publisher, rules)

	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
