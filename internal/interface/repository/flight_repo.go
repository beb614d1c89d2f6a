package repository

import (
	"context"
	"fmt"

	"flight-inventory-service/internal/domain/entity"
	"flight-inventory-service/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormFlightRepository implements the FlightRepository interface
type GormFlightRepository struct {
	db *gorm.DB
}

// NewGormFlightRepository creates a new GORM flight repository
func NewGormFlightRepository(db *gorm.DB) repository.FlightRepository {
	return &GormFlightRepository{
		db: db,
	}
}

// Create inserts a new flight after resolving its references by key
func (r *GormFlightRepository) Create(ctx context.Context, flight *entity.Flight) error {
	op := fmt.Sprintf("create flight %s", flight.FlightNumber)

	var model Flights
	if err := r.resolve(ctx, op, flight, &model); err != nil {
		return err
	}
	fillFlight(&model, flight)

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&model).Error; err != nil {
		return referenceError(op, err, false)
	}

	flight.ID = model.ID
	flight.CreatedAt = model.CreatedAt
	flight.UpdatedAt = model.UpdatedAt
	return nil
}

// GetByNumber finds a flight by number with its references loaded
func (r *GormFlightRepository) GetByNumber(ctx context.Context, number string) (*entity.Flight, error) {
	var model Flights
	err := r.preloaded(ctx).Where("flight_number = ?", number).First(&model).Error
	if err != nil {
		return nil, storeError(fmt.Sprintf("flight %s", number), err)
	}
	return model.toEntity(), nil
}

// Update saves every mutable field of the flight identified by its number
func (r *GormFlightRepository) Update(ctx context.Context, flight *entity.Flight) error {
	op := fmt.Sprintf("update flight %s", flight.FlightNumber)

	var model Flights
	if err := r.db.WithContext(ctx).Where("flight_number = ?", flight.FlightNumber).First(&model).Error; err != nil {
		return storeError(op, err)
	}
	if err := r.resolve(ctx, op, flight, &model); err != nil {
		return err
	}
	fillFlight(&model, flight)

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(&model).Error; err != nil {
		return referenceError(op, err, false)
	}
	flight.ID = model.ID
	flight.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete removes the flight
func (r *GormFlightRepository) Delete(ctx context.Context, number string) error {
	op := fmt.Sprintf("delete flight %s", number)

	var model Flights
	if err := r.db.WithContext(ctx).Where("flight_number = ?", number).First(&model).Error; err != nil {
		return storeError(op, err)
	}
	if err := r.db.WithContext(ctx).Delete(&model).Error; err != nil {
		return storeError(op, err)
	}
	return nil
}

// List returns every flight ordered by number with references loaded
func (r *GormFlightRepository) List(ctx context.Context) ([]*entity.Flight, error) {
	var models []Flights
	if err := r.preloaded(ctx).Order("flight_number").Find(&models).Error; err != nil {
		return nil, storeError("list flights", err)
	}

	flights := make([]*entity.Flight, 0, len(models))
	for i := range models {
		flights = append(flights, models[i].toEntity())
	}
	return flights, nil
}

// ListNumbersByReference returns the numbers of flights referencing the given airline, airport or aircraft
func (r *GormFlightRepository) ListNumbersByReference(ctx context.Context, kind entity.Kind, key string) ([]string, error) {
	q := r.db.WithContext(ctx).Model(&Flights{})
	switch kind {
	case entity.KindAirline:
		q = q.Joins("JOIN airlines ON airlines.id = flights.airline_id").
			Where("airlines.airline_code = ?", key)
	case entity.KindAirport:
		q = q.Joins("JOIN airports ON airports.id = flights.departure_airport_id OR airports.id = flights.arrival_airport_id").
			Where("airports.airport_code = ?", key)
	case entity.KindAircraft:
		q = q.Joins("JOIN aircrafts ON aircrafts.id = flights.aircraft_id").
			Where("aircrafts.aircraft_model = ?", key)
	default:
		return nil, nil
	}

	var numbers []string
	if err := q.Distinct().Order("flights.flight_number").Pluck("flights.flight_number", &numbers).Error; err != nil {
		return nil, storeError(fmt.Sprintf("flights referencing %s %s", kind, key), err)
	}
	return numbers, nil
}

func (r *GormFlightRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("DepartureAirport").
		Preload("ArrivalAirport").
		Preload("Airline").
		Preload("Aircraft")
}

// resolve looks up the referenced rows by business key and sets their ids on model
func (r *GormFlightRepository) resolve(ctx context.Context, op string, flight *entity.Flight, model *Flights) error {
	db := r.db.WithContext(ctx)

	var dep, arr Airports
	if err := db.Where("airport_code = ?", flight.DepartureAirportCode).First(&dep).Error; err != nil {
		return storeError(fmt.Sprintf("%s: departure airport %s", op, flight.DepartureAirportCode), err)
	}
	if err := db.Where("airport_code = ?", flight.ArrivalAirportCode).First(&arr).Error; err != nil {
		return storeError(fmt.Sprintf("%s: arrival airport %s", op, flight.ArrivalAirportCode), err)
	}
	var airline Airlines
	if err := db.Where("airline_code = ?", flight.AirlineCode).First(&airline).Error; err != nil {
		return storeError(fmt.Sprintf("%s: airline %s", op, flight.AirlineCode), err)
	}
	var aircraft Aircrafts
	if err := db.Where("aircraft_model = ?", flight.AircraftModel).First(&aircraft).Error; err != nil {
		return storeError(fmt.Sprintf("%s: aircraft %s", op, flight.AircraftModel), err)
	}

	model.DepartureAirportID = dep.ID
	model.ArrivalAirportID = arr.ID
	model.AirlineID = airline.ID
	model.AircraftID = aircraft.ID

	flight.DepartureAirport = dep.toEntity()
	flight.ArrivalAirport = arr.toEntity()
	flight.Airline = airline.toEntity()
	flight.Aircraft = aircraft.toEntity()
	return nil
}

func fillFlight(model *Flights, flight *entity.Flight) {
	model.FlightNumber = flight.FlightNumber
	model.FlightType = string(flight.FlightType)
	model.TripType = string(flight.TripType)
	model.CabinType = string(flight.CabinType)
	model.DepartureAt = flight.DepartureAt
	model.ArrivalAt = flight.ArrivalAt
	model.BasePrice = flight.BasePrice
	model.Tax = flight.Tax
	model.Discount = flight.Discount
	model.BaggageLimitKg = flight.BaggageLimitKg
	model.Rules = flight.Rules
	model.FinalPrice = flight.FinalPrice
}
