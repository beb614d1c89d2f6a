package repository

import (
	"time"

	"flight-inventory-service/internal/domain/entity"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Airlines GORM model for database mapping
type Airlines struct {
	ID        uint    `gorm:"primaryKey"`
	Code      string  `gorm:"column:airline_code;size:10;not null;uniqueIndex"`
	Name      string  `gorm:"column:airline_name;size:255;not null"`
	Rules     string  `gorm:"column:airline_rules;type:text"`
	Logo      *string `gorm:"column:airline_logo;size:255"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the default table name
func (Airlines) TableName() string {
	return "airlines"
}

func (m *Airlines) EntityKind() entity.Kind { return entity.KindAirline }
func (m *Airlines) EntityKey() string       { return m.Code }

func (m *Airlines) toEntity() *entity.Airline {
	return &entity.Airline{
		ID:        m.ID,
		Name:      m.Name,
		Code:      m.Code,
		Rules:     m.Rules,
		Logo:      m.Logo,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// Airports GORM model for database mapping
type Airports struct {
	ID        uint   `gorm:"primaryKey"`
	Code      string `gorm:"column:airport_code;size:10;not null;uniqueIndex"`
	Name      string `gorm:"column:airport_name;size:255;not null"`
	City      string `gorm:"column:airport_city;size:255;not null"`
	Country   string `gorm:"column:airport_country;size:255;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the default table name
func (Airports) TableName() string {
	return "airports"
}

func (m *Airports) EntityKind() entity.Kind { return entity.KindAirport }
func (m *Airports) EntityKey() string       { return m.Code }

func (m *Airports) toEntity() *entity.Airport {
	return &entity.Airport{
		ID:        m.ID,
		Name:      m.Name,
		Code:      m.Code,
		City:      m.City,
		Country:   m.Country,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// Aircrafts GORM model for database mapping
type Aircrafts struct {
	ID           uint   `gorm:"primaryKey"`
	Model        string `gorm:"column:aircraft_model;size:255;not null;uniqueIndex"`
	Capacity     int    `gorm:"column:aircraft_capacity;not null"`
	Manufacturer string `gorm:"column:aircraft_manufacturer;size:255;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName overrides the default table name
func (Aircrafts) TableName() string {
	return "aircrafts"
}

func (m *Aircrafts) EntityKind() entity.Kind { return entity.KindAircraft }
func (m *Aircrafts) EntityKey() string       { return m.Model }

func (m *Aircrafts) toEntity() *entity.Aircraft {
	return &entity.Aircraft{
		ID:           m.ID,
		Model:        m.Model,
		Capacity:     m.Capacity,
		Manufacturer: m.Manufacturer,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// Flights GORM model for database mapping. Referenced rows may not be deleted
// while a flight points at them.
type Flights struct {
	ID                 uint            `gorm:"primaryKey"`
	FlightNumber       string          `gorm:"column:flight_number;size:50;not null;uniqueIndex"`
	FlightType         string          `gorm:"column:flight_type;size:15;not null"`
	TripType           string          `gorm:"column:trip_type;size:15;not null"`
	CabinType          string          `gorm:"column:cabin_type;size:20;not null"`
	DepartureAirportID uint            `gorm:"column:departure_airport_id;not null;index"`
	DepartureAirport   Airports        `gorm:"foreignKey:DepartureAirportID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	ArrivalAirportID   uint            `gorm:"column:arrival_airport_id;not null;index"`
	ArrivalAirport     Airports        `gorm:"foreignKey:ArrivalAirportID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	AirlineID          uint            `gorm:"column:airline_id;not null;index"`
	Airline            Airlines        `gorm:"foreignKey:AirlineID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	AircraftID         uint            `gorm:"column:aircraft_id;not null;index"`
	Aircraft           Aircrafts       `gorm:"foreignKey:AircraftID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	DepartureAt        time.Time       `gorm:"column:departure_datetime;not null"`
	ArrivalAt          time.Time       `gorm:"column:arrival_datetime;not null"`
	BasePrice          int64           `gorm:"column:base_price;not null"`
	Tax                decimal.Decimal `gorm:"column:tax;type:numeric(5,2);not null;default:0"`
	Discount           decimal.Decimal `gorm:"column:discount;type:numeric(10,2);not null;default:0"`
	BaggageLimitKg     decimal.Decimal `gorm:"column:baggage_limit_kg;type:numeric(10,2);not null"`
	Rules              string          `gorm:"column:flight_rules;type:text"`
	FinalPrice         int64           `gorm:"column:final_price;not null"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName overrides the default table name
func (Flights) TableName() string {
	return "flights"
}

func (m *Flights) EntityKind() entity.Kind { return entity.KindFlight }
func (m *Flights) EntityKey() string       { return m.FlightNumber }

// toEntity expects the four references to be preloaded
func (m *Flights) toEntity() *entity.Flight {
	return &entity.Flight{
		ID:                   m.ID,
		FlightNumber:         m.FlightNumber,
		FlightType:           entity.FlightType(m.FlightType),
		TripType:             entity.TripType(m.TripType),
		CabinType:            entity.CabinType(m.CabinType),
		DepartureAirportCode: m.DepartureAirport.Code,
		ArrivalAirportCode:   m.ArrivalAirport.Code,
		AirlineCode:          m.Airline.Code,
		AircraftModel:        m.Aircraft.Model,
		DepartureAt:          m.DepartureAt,
		ArrivalAt:            m.ArrivalAt,
		BasePrice:            m.BasePrice,
		Tax:                  m.Tax,
		Discount:             m.Discount,
		BaggageLimitKg:       m.BaggageLimitKg,
		Rules:                m.Rules,
		FinalPrice:           m.FinalPrice,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
		DepartureAirport:     m.DepartureAirport.toEntity(),
		ArrivalAirport:       m.ArrivalAirport.toEntity(),
		Airline:              m.Airline.toEntity(),
		Aircraft:             m.Aircraft.toEntity(),
	}
}

// AutoMigrate creates or updates the inventory tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&Airlines{}, &Airports{}, &Aircrafts{}, &Flights{})
}
