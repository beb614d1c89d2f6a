package http

import (
	"net/http"
	"testing"

	"flight-inventory-service/internal/domain/entity"
	"flight-inventory-service/internal/usecase/command"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAirlineResource_UpdateUndoRedo(t *testing.T) {
	h := newTestAPI(t, &stubIndex{})

	status, env := do(t, h, http.MethodPost, "/api/v1/airlines/", `{"airline_code":"IR","airline_name":"Iran Air"}`)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "success", env.Status)
	assert.Equal(t, "Iran Air", decodeData[entity.Airline](t, env).Name)

	status, env = do(t, h, http.MethodPatch, "/api/v1/airlines/IR", `{"airline_name":"Iran Air Tours"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Iran Air Tours", decodeData[entity.Airline](t, env).Name)

	_, env = do(t, h, http.MethodGet, "/api/v1/airlines/history", "")
	assert.Equal(t, command.History{Undo: []string{"UpdateAirline IR", "CreateAirline IR"}, Redo: []string{}}, decodeData[command.History](t, env))

	status, env = do(t, h, http.MethodPost, "/api/v1/airlines/undo", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"UpdateAirline IR"}, decodeData[command.History](t, env).Redo)

	_, env = do(t, h, http.MethodGet, "/api/v1/airlines/IR", "")
	assert.Equal(t, "Iran Air", decodeData[entity.Airline](t, env).Name)

	status, env = do(t, h, http.MethodPost, "/api/v1/airlines/redo", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Iran Air Tours", decodeData[entity.Airline](t, env).Name)
}

func TestAirlineResource_List(t *testing.T) {
	h := newTestAPI(t, &stubIndex{})

	_, env := do(t, h, http.MethodGet, "/api/v1/airlines/", "")
	assert.JSONEq(t, `[]`, string(env.Data))

	seedReferences(t, h)
	_, env = do(t, h, http.MethodGet, "/api/v1/airlines/", "")
	airlines := decodeData[[]entity.Airline](t, env)
	require.Len(t, airlines, 1)
	assert.Equal(t, "IR", airlines[0].Code)
}

func TestResource_ErrorMapping(t *testing.T) {
	h := newTestAPI(t, &stubIndex{})
	seedReferences(t, h)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		code   string
	}{
		{"duplicate key", http.MethodPost, "/api/v1/airlines/", `{"airline_code":"IR","airline_name":"Dup"}`, http.StatusConflict, "DUPLICATE_KEY"},
		{"not found", http.MethodGet, "/api/v1/airports/XXX", "", http.StatusNotFound, "NOT_FOUND"},
		{"update missing", http.MethodPatch, "/api/v1/aircrafts/B747", `{"aircraft_capacity":400}`, http.StatusNotFound, "NOT_FOUND"},
		{"validation", http.MethodPost, "/api/v1/airports/", `{"airport_code":"THR"}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"malformed body", http.MethodPost, "/api/v1/airlines/", `{"airline_code":`, http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown field", http.MethodPatch, "/api/v1/airlines/IR", `{"airline_code":"XX"}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"empty redo", http.MethodPost, "/api/v1/airlines/redo", "", http.StatusConflict, "EMPTY_HISTORY"},
		{"empty undo", http.MethodPost, "/api/v1/flights/undo", "", http.StatusConflict, "EMPTY_HISTORY"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := do(t, h, tt.method, tt.path, tt.body)

			assert.Equal(t, tt.status, status)
			assert.Equal(t, "error", env.Status)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.code, env.Error.Code)
		})
	}
}

func TestFlightResource_CreateAndDelete(t *testing.T) {
	h := newTestAPI(t, &stubIndex{})
	seedReferences(t, h)

	status, env := do(t, h, http.MethodPost, "/api/v1/flights/", flightBody)
	require.Equal(t, http.StatusCreated, status, "%+v", env.Error)
	created := decodeData[entity.Flight](t, env)
	assert.Equal(t, int64(675), created.FinalPrice)

	_, env = do(t, h, http.MethodGet, "/api/v1/flights/IR712", "")
	fetched := decodeData[entity.Flight](t, env)
	require.NotNil(t, fetched.Aircraft)
	assert.Equal(t, 180, fetched.Aircraft.Capacity)
	assert.Equal(t, "IKA", fetched.DepartureAirportCode)

	status, env = do(t, h, http.MethodDelete, "/api/v1/airlines/IR", "")
	assert.Equal(t, http.StatusConflict, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "IN_USE", env.Error.Code)

	status, env = do(t, h, http.MethodDelete, "/api/v1/flights/IR712", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]string{"message": "Flight IR712 deleted successfully."}, decodeData[map[string]string](t, env))

	status, env = do(t, h, http.MethodPost, "/api/v1/flights/redo", "")
	assert.Equal(t, http.StatusConflict, status)

	status, _ = do(t, h, http.MethodPost, "/api/v1/flights/undo", "")
	require.Equal(t, http.StatusOK, status)
	status, env = do(t, h, http.MethodPost, "/api/v1/flights/redo", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]string{"message": "Flight IR712 deleted successfully."}, decodeData[map[string]string](t, env))
}

func TestFlightResource_MissingReference(t *testing.T) {
	h := newTestAPI(t, &stubIndex{})

	status, env := do(t, h, http.MethodPost, "/api/v1/flights/", flightBody)

	assert.Equal(t, http.StatusNotFound, status)
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Message, "IKA")
}
