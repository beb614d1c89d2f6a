package entity

import "time"

// Airport represents an airport entity
type Airport struct {
	ID        uint      `json:"-"`
	Name      string    `json:"airport_name" validate:"required,max=255"`
	Code      string    `json:"airport_code" validate:"required,max=10"`
	City      string    `json:"airport_city" validate:"required,max=255"`
	Country   string    `json:"airport_country" validate:"required,max=255"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Key returns the airport code
func (a *Airport) Key() string { return a.Code }

// AirportPatch holds the airport fields an update sets
type AirportPatch struct {
	Name    *string `json:"airport_name,omitempty" validate:"omitempty,min=1,max=255"`
	City    *string `json:"airport_city,omitempty" validate:"omitempty,min=1,max=255"`
	Country *string `json:"airport_country,omitempty" validate:"omitempty,min=1,max=255"`
}

func (p AirportPatch) Apply(a *Airport) {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.City != nil {
		a.City = *p.City
	}
	if p.Country != nil {
		a.Country = *p.Country
	}
}

func (p AirportPatch) Capture(a *Airport) AirportPatch {
	var prev AirportPatch
	if p.Name != nil {
		prev.Name = ptr(a.Name)
	}
	if p.City != nil {
		prev.City = ptr(a.City)
	}
	if p.Country != nil {
		prev.Country = ptr(a.Country)
	}
	return prev
}
