package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// FlightType distinguishes domestic from international flights
type FlightType string

const (
	FlightTypeDomestic      FlightType = "domestic"
	FlightTypeInternational FlightType = "international"
)

// TripType distinguishes direct from indirect trips
type TripType string

const (
	TripTypeDirect   TripType = "direct"
	TripTypeIndirect TripType = "indirect"
)

// CabinType is the cabin class sold on a flight
type CabinType string

const (
	CabinTypeEconomy  CabinType = "economy"
	CabinTypeBusiness CabinType = "business"
	CabinTypeFirst    CabinType = "first"
)

// Flight represents a scheduled flight. The airport, airline and aircraft
// references are held by business key; the pointer fields are filled on reads.
type Flight struct {
	ID                   uint            `json:"-"`
	FlightNumber         string          `json:"flight_number" validate:"required,max=50"`
	FlightType           FlightType      `json:"flight_type" validate:"required,oneof=domestic international"`
	TripType             TripType        `json:"trip_type" validate:"required,oneof=direct indirect"`
	CabinType            CabinType       `json:"cabin_type" validate:"required,oneof=economy business first"`
	DepartureAirportCode string          `json:"departure_airport" validate:"required,max=10"`
	ArrivalAirportCode   string          `json:"arrival_airport" validate:"required,max=10"`
	AirlineCode          string          `json:"airline" validate:"required,max=10"`
	AircraftModel        string          `json:"aircraft" validate:"required,max=255"`
	DepartureAt          time.Time       `json:"departure_datetime" validate:"required"`
	ArrivalAt            time.Time       `json:"arrival_datetime" validate:"required,gtfield=DepartureAt"`
	BasePrice            int64           `json:"base_price" validate:"gte=0"`
	Tax                  decimal.Decimal `json:"tax"`
	Discount             decimal.Decimal `json:"discount"`
	BaggageLimitKg       decimal.Decimal `json:"baggage_limit_kg"`
	Rules                string          `json:"flight_rules"`
	FinalPrice           int64           `json:"final_price"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`

	DepartureAirport *Airport  `json:"departure_airport_detail,omitempty" validate:"-"`
	ArrivalAirport   *Airport  `json:"arrival_airport_detail,omitempty" validate:"-"`
	Airline          *Airline  `json:"airline_detail,omitempty" validate:"-"`
	Aircraft         *Aircraft `json:"aircraft_detail,omitempty" validate:"-"`
}

// Key returns the flight number
func (f *Flight) Key() string { return f.FlightNumber }

// Capacity is the seat capacity of the aircraft operating the flight, 0 when not loaded
func (f *Flight) Capacity() int {
	if f.Aircraft == nil {
		return 0
	}
	return f.Aircraft.Capacity
}

// Reprice recomputes and stores the final price
func (f *Flight) Reprice() {
	f.FinalPrice = ComputeFinalPrice(f.BasePrice, f.Tax, f.Discount)
}

var hundred = decimal.NewFromInt(100)

// ComputeFinalPrice applies the discount, then the tax, to base and rounds half to even
func ComputeFinalPrice(base int64, tax, discount decimal.Decimal) int64 {
	one := decimal.NewFromInt(1)
	discounted := decimal.NewFromInt(base).Mul(one.Sub(discount.Div(hundred)))
	return discounted.Mul(one.Add(tax.Div(hundred))).RoundBank(0).IntPart()
}

// FlightPatch holds the flight fields an update sets
type FlightPatch struct {
	FlightType     *FlightType      `json:"flight_type,omitempty" validate:"omitempty,oneof=domestic international"`
	TripType       *TripType        `json:"trip_type,omitempty" validate:"omitempty,oneof=direct indirect"`
	CabinType      *CabinType       `json:"cabin_type,omitempty" validate:"omitempty,oneof=economy business first"`
	DepartureAt    *time.Time       `json:"departure_datetime,omitempty"`
	ArrivalAt      *time.Time       `json:"arrival_datetime,omitempty"`
	BasePrice      *int64           `json:"base_price,omitempty" validate:"omitempty,gte=0"`
	Tax            *decimal.Decimal `json:"tax,omitempty"`
	Discount       *decimal.Decimal `json:"discount,omitempty"`
	BaggageLimitKg *decimal.Decimal `json:"baggage_limit_kg,omitempty"`
	Rules          *string          `json:"flight_rules,omitempty"`
}

// Apply writes the set fields onto f and reprices it when a price input changed
func (p FlightPatch) Apply(f *Flight) {
	if p.FlightType != nil {
		f.FlightType = *p.FlightType
	}
	if p.TripType != nil {
		f.TripType = *p.TripType
	}
	if p.CabinType != nil {
		f.CabinType = *p.CabinType
	}
	if p.DepartureAt != nil {
		f.DepartureAt = *p.DepartureAt
	}
	if p.ArrivalAt != nil {
		f.ArrivalAt = *p.ArrivalAt
	}
	if p.BasePrice != nil {
		f.BasePrice = *p.BasePrice
	}
	if p.Tax != nil {
		f.Tax = *p.Tax
	}
	if p.Discount != nil {
		f.Discount = *p.Discount
	}
	if p.BaggageLimitKg != nil {
		f.BaggageLimitKg = *p.BaggageLimitKg
	}
	if p.Rules != nil {
		f.Rules = *p.Rules
	}
	if p.BasePrice != nil || p.Tax != nil || p.Discount != nil {
		f.Reprice()
	}
}

func (p FlightPatch) Capture(f *Flight) FlightPatch {
	var prev FlightPatch
	if p.FlightType != nil {
		prev.FlightType = ptr(f.FlightType)
	}
	if p.TripType != nil {
		prev.TripType = ptr(f.TripType)
	}
	if p.CabinType != nil {
		prev.CabinType = ptr(f.CabinType)
	}
	if p.DepartureAt != nil {
		prev.DepartureAt = ptr(f.DepartureAt)
	}
	if p.ArrivalAt != nil {
		prev.ArrivalAt = ptr(f.ArrivalAt)
	}
	if p.BasePrice != nil {
		prev.BasePrice = ptr(f.BasePrice)
	}
	if p.Tax != nil {
		prev.Tax = ptr(f.Tax)
	}
	if p.Discount != nil {
		prev.Discount = ptr(f.Discount)
	}
	if p.BaggageLimitKg != nil {
		prev.BaggageLimitKg = ptr(f.BaggageLimitKg)
	}
	if p.Rules != nil {
		prev.Rules = ptr(f.Rules)
	}
	return prev
}
