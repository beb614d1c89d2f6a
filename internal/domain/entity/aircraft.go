package entity

import "time"

// Aircraft represents an aircraft model operated on flights
type Aircraft struct {
	ID           uint      `json:"-"`
	Model        string    `json:"aircraft_model" validate:"required,max=255"`
	Capacity     int       `json:"aircraft_capacity" validate:"gt=0"`
	Manufacturer string    `json:"aircraft_manufacturer" validate:"required,max=255"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Key returns the aircraft model name
func (a *Aircraft) Key() string { return a.Model }

// AircraftPatch holds the aircraft fields an update sets
type AircraftPatch struct {
	Capacity     *int    `json:"aircraft_capacity,omitempty" validate:"omitempty,gt=0"`
	Manufacturer *string `json:"aircraft_manufacturer,omitempty" validate:"omitempty,min=1,max=255"`
}

func (p AircraftPatch) Apply(a *Aircraft) {
	if p.Capacity != nil {
		a.Capacity = *p.Capacity
	}
	if p.Manufacturer != nil {
		a.Manufacturer = *p.Manufacturer
	}
}

func (p AircraftPatch) Capture(a *Aircraft) AircraftPatch {
	var prev AircraftPatch
	if p.Capacity != nil {
		prev.Capacity = ptr(a.Capacity)
	}
	if p.Manufacturer != nil {
		prev.Manufacturer = ptr(a.Manufacturer)
	}
	return prev
}
