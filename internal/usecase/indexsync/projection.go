package indexsync

import (
	"context"
	"fmt"

	"flight-inventory-service/internal/domain/entity"
	"flight-inventory-service/internal/domain/repository"
)

// Projector reads the latest committed state of an entity as an index document
type Projector interface {
	Project(ctx context.Context, kind entity.Kind, key string) (entity.Document, error)
	Keys(ctx context.Context, kind entity.Kind) ([]string, error)
	// Referencing returns the numbers of flights that embed the given entity
	Referencing(ctx context.Context, kind entity.Kind, key string) ([]string, error)
}

// StoreProjector projects entities straight from the entity store
type StoreProjector struct {
	airlines  repository.AirlineRepository
	airports  repository.AirportRepository
	aircrafts repository.AircraftRepository
	flights   repository.FlightRepository
}

// NewStoreProjector creates a projector over the four entity repositories
func NewStoreProjector(
	airlines repository.AirlineRepository,
	airports repository.AirportRepository,
	aircrafts repository.AircraftRepository,
	flights repository.FlightRepository,
) *StoreProjector {
	return &StoreProjector{
		airlines:  airlines,
		airports:  airports,
		aircrafts: aircrafts,
		flights:   flights,
	}
}

// Project returns domain.ErrNotFound (wrapped) when the entity no longer exists
func (p *StoreProjector) Project(ctx context.Context, kind entity.Kind, key string) (entity.Document, error) {
	switch kind {
	case entity.KindAirline:
		a, err := p.airlines.GetByCode(ctx, key)
		if err != nil {
			return entity.Document{}, err
		}
		return AirlineDocument(a), nil
	case entity.KindAirport:
		a, err := p.airports.GetByCode(ctx, key)
		if err != nil {
			return entity.Document{}, err
		}
		return AirportDocument(a), nil
	case entity.KindAircraft:
		a, err := p.aircrafts.GetByModel(ctx, key)
		if err != nil {
			return entity.Document{}, err
		}
		return AircraftDocument(a), nil
	case entity.KindFlight:
		f, err := p.flights.GetByNumber(ctx, key)
		if err != nil {
			return entity.Document{}, err
		}
		return FlightDocument(f), nil
	}
	return entity.Document{}, fmt.Errorf("unknown kind %q", kind)
}

// Keys lists the business keys of every stored entity of kind
func (p *StoreProjector) Keys(ctx context.Context, kind entity.Kind) ([]string, error) {
	var keys []string
	switch kind {
	case entity.KindAirline:
		all, err := p.airlines.List(ctx)
		if err != nil {
			return nil, err
		}
		for _, a := range all {
			keys = append(keys, a.Key())
		}
	case entity.KindAirport:
		all, err := p.airports.List(ctx)
		if err != nil {
			return nil, err
		}
		for _, a := range all {
			keys = append(keys, a.Key())
		}
	case entity.KindAircraft:
		all, err := p.aircrafts.List(ctx)
		if err != nil {
			return nil, err
		}
		for _, a := range all {
			keys = append(keys, a.Key())
		}
	case entity.KindFlight:
		all, err := p.flights.List(ctx)
		if err != nil {
			return nil, err
		}
		for _, f := range all {
			keys = append(keys, f.Key())
		}
	default:
		return nil, fmt.Errorf("unknown kind %q", kind)
	}
	return keys, nil
}

func (p *StoreProjector) Referencing(ctx context.Context, kind entity.Kind, key string) ([]string, error) {
	return p.flights.ListNumbersByReference(ctx, kind, key)
}

// AirlineDocument projects an airline
func AirlineDocument(a *entity.Airline) entity.Document {
	var logo interface{}
	if a.Logo != nil {
		logo = *a.Logo
	}
	return entity.Document{
		Kind: entity.KindAirline,
		ID:   a.Code,
		Fields: map[string]interface{}{
			"airline_name":  a.Name,
			"airline_code":  a.Code,
			"airline_rules": a.Rules,
			"airline_logo":  logo,
		},
	}
}

// AirportDocument projects an airport
func AirportDocument(a *entity.Airport) entity.Document {
	return entity.Document{
		Kind: entity.KindAirport,
		ID:   a.Code,
		Fields: map[string]interface{}{
			"airport_name":    a.Name,
			"airport_code":    a.Code,
			"airport_city":    a.City,
			"airport_country": a.Country,
		},
	}
}

// AircraftDocument projects an aircraft
func AircraftDocument(a *entity.Aircraft) entity.Document {
	return entity.Document{
		Kind: entity.KindAircraft,
		ID:   a.Model,
		Fields: map[string]interface{}{
			"aircraft_model":        a.Model,
			"aircraft_capacity":     a.Capacity,
			"aircraft_manufacturer": a.Manufacturer,
		},
	}
}

// FlightDocument projects a flight with the name and code of its airports
// and airline and the model and capacity of its aircraft embedded.
func FlightDocument(f *entity.Flight) entity.Document {
	fields := map[string]interface{}{
		"flight_number":      f.FlightNumber,
		"flight_type":        string(f.FlightType),
		"trip_type":          string(f.TripType),
		"cabin_type":         string(f.CabinType),
		"departure_airport":  airportRef(f.DepartureAirport, f.DepartureAirportCode),
		"arrival_airport":    airportRef(f.ArrivalAirport, f.ArrivalAirportCode),
		"departure_datetime": f.DepartureAt.UTC(),
		"arrival_datetime":   f.ArrivalAt.UTC(),
		"base_price":         f.BasePrice,
		"final_price":        f.FinalPrice,
		"baggage_limit_kg":   f.BaggageLimitKg.InexactFloat64(),
		"flight_rules":       f.Rules,
	}

	airline := map[string]interface{}{"code": f.AirlineCode}
	if f.Airline != nil {
		airline["name"] = f.Airline.Name
	}
	fields["airline"] = airline

	fields["aircraft"] = map[string]interface{}{
		"model":    f.AircraftModel,
		"capacity": f.Capacity(),
	}

	return entity.Document{Kind: entity.KindFlight, ID: f.FlightNumber, Fields: fields}
}

func airportRef(a *entity.Airport, code string) map[string]interface{} {
	ref := map[string]interface{}{"code": code}
	if a != nil {
		ref["name"] = a.Name
	}
	return ref
}
