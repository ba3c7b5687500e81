package api

import (
	"net/http"

	"fleet-sim-service/internal/api/handlers"
	"fleet-sim-service/internal/config"
	"fleet-sim-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	repo ports.FleetRepository,
	store ports.SimulationStore,
	cache ports.ResultCache,
	publisher ports.EventPublisher,
	rules *config.Rules,
) http.Handler {
	mux := http.NewServeMux()

	fleetHandler := &handlers.FleetHandler{Repo: repo}
	simHandler := &handlers.SimulationHandler{
		Repo:      repo,
		Store:     store,
		Cache:     cache,
		Publisher: publisher,
		Rules:     rules,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/drivers", fleetHandler.ListDrivers)
	mux.HandleFunc("/routes", fleetHandler.ListRoutes)
	mux.HandleFunc("/orders", fleetHandler.ListOrders)
	mux.HandleFunc("/simulations", simHandler.Simulations)
	mux.HandleFunc("/simulations/latest", simHandler.Latest)
	mux.HandleFunc("/simulations/", simHandler.Delete)

	return loggingMiddleware(mux)
}
