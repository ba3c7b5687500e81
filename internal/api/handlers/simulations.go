package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"fleet-sim-service/internal/api/dto"
	"fleet-sim-service/internal/config"
	"fleet-sim-service/internal/domain"
	"fleet-sim-service/internal/ports"
	"fleet-sim-service/internal/services"
)

// SimulationHandler runs delivery simulations and serves the stored
// history. Store, Cache and Publisher are optional; a nil port skips
// that side effect.
type SimulationHandler struct {
	Repo      ports.FleetRepository
	Store     ports.SimulationStore
	Cache     ports.ResultCache
	Publisher ports.EventPublisher
	Rules     *config.Rules
}

// Simulations dispatches the collection endpoint: POST runs a new
// simulation, GET lists the history.
func (h *SimulationHandler) Simulations(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.run(w, r)
	case http.MethodGet:
		h.history(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *SimulationHandler) run(w http.ResponseWriter, r *http.Request) {
	var raw services.RawSimulationRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			writeJSON(w, r, http.StatusBadRequest, dto.ErrorResponse{
				Error: typeErr.Field + " has the wrong type",
				Code:  services.CodeInvalidType,
				Field: typeErr.Field,
			})
			return
		}
		writeJSON(w, r, http.StatusBadRequest, dto.ErrorResponse{
			Error: "request body is required and must be a JSON object",
			Code:  services.CodeMissingBody,
			Field: "body",
		})
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeJSON(w, r, http.StatusBadRequest, dto.ErrorResponse{
			Error: "body must contain only one JSON object",
			Code:  services.CodeMissingBody,
			Field: "body",
		})
		return
	}

	req, verr := services.ValidateRequest(&raw)
	if verr != nil {
		writeJSON(w, r, http.StatusBadRequest, dto.ErrorResponse{
			Error: verr.Message,
			Code:  verr.Code,
			Field: verr.Field,
		})
		return
	}

	report, err := services.Simulate(r.Context(), req, h.Repo, h.Rules)
	if err != nil {
		var simErr *services.SimulationError
		if errors.As(err, &simErr) {
			res := dto.ErrorResponse{
				Error:   simErr.Message,
				Code:    simErr.Code,
				Details: simErr.Details,
			}
			if simErr.Code == services.CodeInsufficientDrivers {
				res.AvailableDrivers = &simErr.AvailableDrivers
				res.RequestedDrivers = &simErr.RequestedDrivers
			}
			writeJSON(w, r, http.StatusBadRequest, res)
			return
		}

		log.Printf("simulation failed: %v", err)
		writeJSON(w, r, http.StatusInternalServerError, dto.ErrorResponse{
			Error: "internal server error during simulation",
			Code:  "SIMULATION_ERROR",
		})
		return
	}

	result := &domain.SimulationResult{
		Parameters: req,
		Results:    report.KPIs,
		CreatedAt:  report.Metadata.SimulationTimestamp,
	}

	// History, cache and events are best-effort; the report still goes
	// out when one of them fails.
	if h.Store != nil {
		if err := h.Store.Save(r.Context(), result); err != nil {
			log.Printf("save simulation result failed: %v", err)
		}
	}
	if h.Cache != nil {
		if err := h.Cache.SetLatest(r.Context(), result); err != nil {
			log.Printf("cache simulation result failed: %v", err)
		}
	}
	if h.Publisher != nil {
		if err := h.Publisher.SimulationCompleted(r.Context(), result); err != nil {
			log.Printf("publish simulation result failed: %v", err)
		}
	}

	writeJSON(w, r, http.StatusOK, dto.SimulationResponse{
		Success: true,
		Data:    report.KPIs,
		Metadata: dto.SimulationMetadata{
			SimulationTimestamp:   report.Metadata.SimulationTimestamp.Format("2006-01-02T15:04:05.000Z07:00"),
			TotalDriversAvailable: report.Metadata.DriversAvailable,
			TotalRoutesProcessed:  report.Metadata.RoutesProcessed,
			TotalOrdersProcessed:  report.Metadata.OrdersProcessed,
			OrdersSkipped:         report.Metadata.OrdersSkipped,
		},
	})
}

func (h *SimulationHandler) history(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		writeError(w, r, http.StatusNotFound, "simulation history is not configured")
		return
	}

	list, err := h.Store.List(r.Context())
	if err != nil {
		log.Printf("list simulations failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ListSimulationsResponse{Simulations: list})
}

// Latest serves the most recent simulation result, cache first.
func (h *SimulationHandler) Latest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if h.Cache != nil {
		res, err := h.Cache.Latest(r.Context())
		if err != nil {
			log.Printf("latest simulation cache lookup failed: %v", err)
		} else if res != nil {
			writeJSON(w, r, http.StatusOK, res)
			return
		}
	}

	if h.Store == nil {
		writeError(w, r, http.StatusNotFound, "no simulation results available")
		return
	}

	list, err := h.Store.List(r.Context())
	if err != nil {
		log.Printf("latest simulation store lookup failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	if len(list) == 0 {
		writeError(w, r, http.StatusNotFound, "no simulation results available")
		return
	}

	writeJSON(w, r, http.StatusOK, list[0])
}

// Delete removes one stored simulation result (/simulations/{id}).
func (h *SimulationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		w.Header().Set("Allow", http.MethodDelete)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/simulations/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, r, http.StatusBadRequest, "simulation id is required")
		return
	}

	if h.Store == nil {
		writeError(w, r, http.StatusNotFound, "simulation history is not configured")
		return
	}

	if err := h.Store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "simulation result not found")
			return
		}
		log.Printf("delete simulation failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
