package command

import (
	"strings"
	"testing"
	"time"

	"flight-inventory-service/internal/domain/entity"
	"flight-inventory-service/internal/infrastructure/persistence"
	"flight-inventory-service/internal/interface/repository"
	"flight-inventory-service/pkg/logger"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	db        *gorm.DB
	airlines  Store[entity.Airline]
	airports  Store[entity.Airport]
	aircrafts Store[entity.Aircraft]
	flights   Store[entity.Flight]
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := persistence.OpenStore(persistence.StoreOptions{
		Driver:       persistence.DriverSQLite,
		DSN:          persistence.MemoryStoreDSN("command_" + strings.ReplaceAll(t.Name(), "/", "_")),
		MaxOpenConns: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = persistence.CloseStore(db) })
	require.NoError(t, repository.AutoMigrate(db))

	return &testEnv{
		db:        db,
		airlines:  NewAirlineStore(repository.NewGormAirlineRepository(db)),
		airports:  NewAirportStore(repository.NewGormAirportRepository(db)),
		aircrafts: NewAircraftStore(repository.NewGormAircraftRepository(db)),
		flights:   NewFlightStore(repository.NewGormFlightRepository(db)),
	}
}

func newTestHandler[T any](kind entity.Kind) *Handler[T] {
	return NewHandler[T](kind, 5*time.Second, logger.NewNop(), nil)
}

func ptr[T any](v T) *T { return &v }

func sampleFlight() entity.Flight {
	dep := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	return entity.Flight{
		FlightNumber:         "IR712",
		FlightType:           entity.FlightTypeInternational,
		TripType:             entity.TripTypeDirect,
		CabinType:            entity.CabinTypeEconomy,
		DepartureAirportCode: "IKA",
		ArrivalAirportCode:   "IST",
		AirlineCode:          "IR",
		AircraftModel:        "A320",
		DepartureAt:          dep,
		ArrivalAt:            dep.Add(3 * time.Hour),
		BasePrice:            500,
		Tax:                  decimal.NewFromInt(50),
		Discount:             decimal.NewFromInt(10),
		BaggageLimitKg:       decimal.RequireFromString("23.5"),
		Rules:                "no refunds",
	}
}
