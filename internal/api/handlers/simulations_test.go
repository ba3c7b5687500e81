package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fleet-sim-service/internal/api/dto"
	"fleet-sim-service/internal/config"
	"fleet-sim-service/internal/domain"
	"fleet-sim-service/internal/ports"
)

type fakeFleetRepo struct {
	drivers []*domain.Driver
	routes  []*domain.Route
	orders  []*domain.Order
	err     error
}

func (f *fakeFleetRepo) ActiveDrivers(ctx context.Context) ([]*domain.Driver, error) {
	return f.drivers, f.err
}

func (f *fakeFleetRepo) AllRoutes(ctx context.Context) ([]*domain.Route, error) {
	return f.routes, f.err
}

func (f *fakeFleetRepo) PendingOrders(ctx context.Context) ([]*domain.Order, error) {
	return f.orders, f.err
}

type fakeSimulationStore struct {
	results []*domain.SimulationResult
	err     error
}

func (s *fakeSimulationStore) Save(ctx context.Context, res *domain.SimulationResult) error {
	if s.err != nil {
		return s.err
	}
	s.results = append([]*domain.SimulationResult{res}, s.results...)
	return nil
}

func (s *fakeSimulationStore) List(ctx context.Context) ([]*domain.SimulationResult, error) {
	return s.results, s.err
}

func (s *fakeSimulationStore) Delete(ctx context.Context, id string) error {
	if s.err != nil {
		return s.err
	}
	for i, res := range s.results {
		if res.ID == id {
			s.results = append(s.results[:i], s.results[i+1:]...)
			return nil
		}
	}
	return ports.ErrNotFound
}

func healthyRepo() *fakeFleetRepo {
	return &fakeFleetRepo{
		drivers: []*domain.Driver{
			{ID: "d1", Name: "Asha", PastSevenDayHours: 10, Status: domain.DriverActive},
			{ID: "d2", Name: "Binod", PastSevenDayHours: 20, Status: domain.DriverActive},
			{ID: "d3", Name: "Chitra", PastSevenDayHours: 30, Status: domain.DriverActive},
		},
		routes: []*domain.Route{
			{ID: "r1", Name: "North loop", DistanceKM: 10, TrafficLevel: domain.TrafficLow, BaseTimeMinutes: 30},
		},
		orders: []*domain.Order{
			{ID: "o1", ValueRs: 1500, AssignedRoute: "r1", Status: domain.OrderPending},
		},
	}
}

func newSimulationHandler(repo *fakeFleetRepo, store *fakeSimulationStore) *SimulationHandler {
	h := &SimulationHandler{Repo: repo, Rules: config.DefaultRules()}
	if store != nil {
		h.Store = store
	}
	return h
}

func postSimulation(t *testing.T, h *SimulationHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/simulations", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Simulations(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var res dto.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	return res
}

func TestRunSimulationSuccess(t *testing.T) {
	store := &fakeSimulationStore{}
	h := newSimulationHandler(healthyRepo(), store)

	rec := postSimulation(t, h, `{"numberOfDrivers": 3, "routeStartTime": "09:00", "maxHoursPerDriver": 8}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var res dto.SimulationResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !res.Success {
		t.Error("success = false, want true")
	}
	if res.Data.TotalDeliveries != 1 {
		t.Errorf("totalDeliveries = %d, want 1", res.Data.TotalDeliveries)
	}
	if res.Data.OverallProfit != 1600 {
		t.Errorf("overallProfit = %v, want 1600", res.Data.OverallProfit)
	}
	if res.Metadata.TotalDriversAvailable != 3 || res.Metadata.TotalRoutesProcessed != 1 || res.Metadata.TotalOrdersProcessed != 1 {
		t.Errorf("metadata = %+v", res.Metadata)
	}
	if res.Metadata.SimulationTimestamp == "" {
		t.Error("metadata timestamp is empty")
	}

	if len(store.results) != 1 {
		t.Fatalf("stored %d results, want 1", len(store.results))
	}
	if store.results[0].Results.TotalDeliveries != 1 {
		t.Errorf("stored KPIs = %+v", store.results[0].Results)
	}
}

func TestRunSimulationMalformedBody(t *testing.T) {
	h := newSimulationHandler(healthyRepo(), nil)

	rec := postSimulation(t, h, `{"numberOfDrivers":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if res := decodeError(t, rec); res.Code != "MISSING_BODY" {
		t.Errorf("code = %q, want MISSING_BODY", res.Code)
	}
}

func TestRunSimulationWrongFieldType(t *testing.T) {
	h := newSimulationHandler(healthyRepo(), nil)

	rec := postSimulation(t, h, `{"numberOfDrivers": "three", "routeStartTime": "09:00", "maxHoursPerDriver": 8}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	res := decodeError(t, rec)
	if res.Code != "INVALID_TYPE" {
		t.Errorf("code = %q, want INVALID_TYPE", res.Code)
	}
	if res.Field != "numberOfDrivers" {
		t.Errorf("field = %q, want numberOfDrivers", res.Field)
	}
}

func TestRunSimulationValidationFailure(t *testing.T) {
	h := newSimulationHandler(healthyRepo(), nil)

	rec := postSimulation(t, h, `{"numberOfDrivers": 0, "routeStartTime": "09:00", "maxHoursPerDriver": 8}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	res := decodeError(t, rec)
	if res.Code != "INVALID_RANGE" {
		t.Errorf("code = %q, want INVALID_RANGE", res.Code)
	}
	if res.Field != "numberOfDrivers" {
		t.Errorf("field = %q, want numberOfDrivers", res.Field)
	}
}

func TestRunSimulationInsufficientDrivers(t *testing.T) {
	repo := healthyRepo()
	repo.drivers = repo.drivers[:2]
	h := newSimulationHandler(repo, nil)

	rec := postSimulation(t, h, `{"numberOfDrivers": 5, "routeStartTime": "09:00", "maxHoursPerDriver": 8}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	res := decodeError(t, rec)
	if res.Code != "INSUFFICIENT_DRIVERS" {
		t.Errorf("code = %q, want INSUFFICIENT_DRIVERS", res.Code)
	}
	if res.AvailableDrivers == nil || *res.AvailableDrivers != 2 {
		t.Errorf("availableDrivers = %v, want 2", res.AvailableDrivers)
	}
	if res.RequestedDrivers == nil || *res.RequestedDrivers != 5 {
		t.Errorf("requestedDrivers = %v, want 5", res.RequestedDrivers)
	}
}

func TestRunSimulationRepoFailure(t *testing.T) {
	h := newSimulationHandler(&fakeFleetRepo{err: context.DeadlineExceeded}, nil)

	rec := postSimulation(t, h, `{"numberOfDrivers": 1, "routeStartTime": "09:00", "maxHoursPerDriver": 8}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if res := decodeError(t, rec); res.Code != "SIMULATION_ERROR" {
		t.Errorf("code = %q, want SIMULATION_ERROR", res.Code)
	}
}

func TestSimulationsMethodNotAllowed(t *testing.T) {
	h := newSimulationHandler(healthyRepo(), nil)

	req := httptest.NewRequest(http.MethodPut, "/simulations", nil)
	rec := httptest.NewRecorder()
	h.Simulations(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != "GET, POST" {
		t.Errorf("Allow = %q, want %q", allow, "GET, POST")
	}
}

func TestHistoryListsStoredResults(t *testing.T) {
	store := &fakeSimulationStore{results: []*domain.SimulationResult{
		{ID: "sim-2"},
		{ID: "sim-1"},
	}}
	h := newSimulationHandler(healthyRepo(), store)

	req := httptest.NewRequest(http.MethodGet, "/simulations", nil)
	rec := httptest.NewRecorder()
	h.Simulations(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var res dto.ListSimulationsResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(res.Simulations) != 2 || res.Simulations[0].ID != "sim-2" {
		t.Errorf("simulations = %+v", res.Simulations)
	}
}

func TestLatestFallsBackToStore(t *testing.T) {
	store := &fakeSimulationStore{results: []*domain.SimulationResult{{ID: "sim-9"}}}
	h := newSimulationHandler(healthyRepo(), store)

	req := httptest.NewRequest(http.MethodGet, "/simulations/latest", nil)
	rec := httptest.NewRecorder()
	h.Latest(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var res domain.SimulationResult
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.ID != "sim-9" {
		t.Errorf("ID = %q, want sim-9", res.ID)
	}
}

func TestLatestEmptyHistory(t *testing.T) {
	h := newSimulationHandler(healthyRepo(), &fakeSimulationStore{})

	req := httptest.NewRequest(http.MethodGet, "/simulations/latest", nil)
	rec := httptest.NewRecorder()
	h.Latest(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestDeleteSimulation(t *testing.T) {
	store := &fakeSimulationStore{results: []*domain.SimulationResult{{ID: "sim-1"}}}
	h := newSimulationHandler(healthyRepo(), store)

	req := httptest.NewRequest(http.MethodDelete, "/simulations/sim-1", nil)
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204: %s", rec.Code, rec.Body.String())
	}
	if len(store.results) != 0 {
		t.Errorf("store still holds %d results", len(store.results))
	}
}

func TestDeleteSimulationNotFound(t *testing.T) {
	h := newSimulationHandler(healthyRepo(), &fakeSimulationStore{})

	req := httptest.NewRequest(http.MethodDelete, "/simulations/ghost", nil)
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
