package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"flight-inventory-service/internal/domain/entity"
	"flight-inventory-service/internal/infrastructure/persistence"
	"flight-inventory-service/internal/interface/repository"
	"flight-inventory-service/internal/usecase/command"
	"flight-inventory-service/internal/usecase/query"
	"flight-inventory-service/pkg/api"
	"flight-inventory-service/pkg/logger"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  *api.Error      `json:"error"`
}

type stubIndex struct {
	docs []entity.Document
}

func (s *stubIndex) Upsert(context.Context, entity.Document) error        { return nil }
func (s *stubIndex) Remove(context.Context, entity.Kind, string) error    { return nil }
func (s *stubIndex) IDs(context.Context, entity.Kind) ([]string, error)   { return nil, nil }
func (s *stubIndex) Search(_ context.Context, kind entity.Kind, _ string, limit int) ([]entity.Document, error) {
	var out []entity.Document
	for _, d := range s.docs {
		if d.Kind == kind && len(out) < limit {
			out = append(out, d)
		}
	}
	return out, nil
}

// newTestAPI mounts every entity resource and the search endpoint over a
// fresh in-memory store
func newTestAPI(t *testing.T, index *stubIndex) http.Handler {
	t.Helper()

	db, err := persistence.OpenStore(persistence.StoreOptions{
		Driver:       persistence.DriverSQLite,
		DSN:          persistence.MemoryStoreDSN("http_" + strings.ReplaceAll(t.Name(), "/", "_")),
		MaxOpenConns: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = persistence.CloseStore(db) })
	require.NoError(t, repository.AutoMigrate(db))

	airlines := repository.NewGormAirlineRepository(db)
	airports := repository.NewGormAirportRepository(db)
	aircrafts := repository.NewGormAircraftRepository(db)
	flights := repository.NewGormFlightRepository(db)

	log := logger.NewNop()
	timeout := 5 * time.Second
	reads := query.NewService(airlines, airports, aircrafts, flights, index, nil, timeout, log)

	resources := []interface {
		Prefix() string
		Routes(r chi.Router)
	}{
		NewAirlineResource(command.NewHandler[entity.Airline](entity.KindAirline, timeout, log, nil), command.NewAirlineStore(airlines), reads, log),
		NewAirportResource(command.NewHandler[entity.Airport](entity.KindAirport, timeout, log, nil), command.NewAirportStore(airports), reads, log),
		NewAircraftResource(command.NewHandler[entity.Aircraft](entity.KindAircraft, timeout, log, nil), command.NewAircraftStore(aircrafts), reads, log),
		NewFlightResource(command.NewHandler[entity.Flight](entity.KindFlight, timeout, log, nil), command.NewFlightStore(flights), reads, log),
		NewSearchHandler(reads, log),
	}

	mux := chi.NewRouter()
	for _, res := range resources {
		mux.Route("/api/v1"+res.Prefix(), res.Routes)
	}
	return mux
}

func do(t *testing.T, h http.Handler, method, path, body string) (int, envelope) {
	t.Helper()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(method, path, strings.NewReader(body)))

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

const flightBody = `{
	"flight_number": "IR712",
	"flight_type": "international",
	"trip_type": "direct",
	"cabin_type": "economy",
	"departure_airport": "IKA",
	"arrival_airport": "IST",
	"airline": "IR",
	"aircraft": "A320",
	"departure_datetime": "2025-03-01T08:00:00Z",
	"arrival_datetime": "2025-03-01T11:30:00Z",
	"base_price": 500,
	"tax": "50",
	"discount": "10",
	"baggage_limit_kg": "23.5"
}`

// seedReferences creates the airline, airports and aircraft flightBody refers to
func seedReferences(t *testing.T, h http.Handler) {
	t.Helper()

	for _, req := range []struct{ path, body string }{
		{"/api/v1/airlines/", `{"airline_code":"IR","airline_name":"Iran Air"}`},
		{"/api/v1/airports/", `{"airport_code":"IKA","airport_name":"Imam Khomeini","airport_city":"Tehran","airport_country":"Iran"}`},
		{"/api/v1/airports/", `{"airport_code":"IST","airport_name":"Istanbul","airport_city":"Istanbul","airport_country":"Turkey"}`},
		{"/api/v1/aircrafts/", `{"aircraft_model":"A320","aircraft_capacity":180,"aircraft_manufacturer":"Airbus"}`},
	} {
		status, env := do(t, h, http.MethodPost, req.path, req.body)
		require.Equal(t, http.StatusCreated, status, "%s: %+v", req.path, env.Error)
	}
}
