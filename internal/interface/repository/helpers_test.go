package repository

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"flight-inventory-service/internal/domain/entity"
	"flight-inventory-service/internal/infrastructure/persistence"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := persistence.OpenStore(persistence.StoreOptions{
		Driver:       persistence.DriverSQLite,
		DSN:          persistence.MemoryStoreDSN(strings.ReplaceAll(t.Name(), "/", "_")),
		MaxOpenConns: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = persistence.CloseStore(db) })

	require.NoError(t, AutoMigrate(db))
	return db
}

type fixtures struct {
	airlines  *GormAirlineRepository
	airports  *GormAirportRepository
	aircrafts *GormAircraftRepository
	flights   *GormFlightRepository
}

func newFixtures(db *gorm.DB) fixtures {
	return fixtures{
		airlines:  NewGormAirlineRepository(db).(*GormAirlineRepository),
		airports:  NewGormAirportRepository(db).(*GormAirportRepository),
		aircrafts: NewGormAircraftRepository(db).(*GormAircraftRepository),
		flights:   NewGormFlightRepository(db).(*GormFlightRepository),
	}
}

// seed creates IR, IKA, IST and A320 and returns a flight referencing them
func (f fixtures) seed(t *testing.T) *entity.Flight {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, f.airlines.Create(ctx, &entity.Airline{Name: "Iran Air", Code: "IR", Rules: "standard"}))
	require.NoError(t, f.airports.Create(ctx, &entity.Airport{Name: "Imam Khomeini", Code: "IKA", City: "Tehran", Country: "Iran"}))
	require.NoError(t, f.airports.Create(ctx, &entity.Airport{Name: "Istanbul", Code: "IST", City: "Istanbul", Country: "Turkey"}))
	require.NoError(t, f.aircrafts.Create(ctx, &entity.Aircraft{Model: "A320", Capacity: 180, Manufacturer: "Airbus"}))

	dep := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	flight := &entity.Flight{
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
	}
	flight.Reprice()
	return flight
}

type change struct {
	kind     entity.Kind
	key      string
	isCreate bool
	deleted  bool
}

type recordingListener struct {
	mu      sync.Mutex
	changes []change
}

func (l *recordingListener) OnCommit(kind entity.Kind, key string, isCreate bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.changes = append(l.changes, change{kind: kind, key: key, isCreate: isCreate})
}

func (l *recordingListener) OnDelete(kind entity.Kind, key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.changes = append(l.changes, change{kind: kind, key: key, deleted: true})
}

func (l *recordingListener) recorded() []change {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]change(nil), l.changes...)
}
