package entity

import "time"

// Airline represents an airline entity
type Airline struct {
	ID        uint      `json:"-"`
	Name      string    `json:"airline_name" validate:"required,max=255"`
	Code      string    `json:"airline_code" validate:"required,max=10"`
	Rules     string    `json:"airline_rules"`
	Logo      *string   `json:"airline_logo,omitempty" validate:"omitempty,max=255"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Key returns the airline code
func (a *Airline) Key() string { return a.Code }

// AirlinePatch holds the airline fields an update sets; nil fields are left alone
type AirlinePatch struct {
	Name  *string `json:"airline_name,omitempty" validate:"omitempty,min=1,max=255"`
	Rules *string `json:"airline_rules,omitempty"`
	Logo  *string `json:"airline_logo,omitempty" validate:"omitempty,max=255"`
}

// Apply writes the set fields onto a
func (p AirlinePatch) Apply(a *Airline) {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Rules != nil {
		a.Rules = *p.Rules
	}
	if p.Logo != nil {
		// an empty logo clears it
		a.Logo = nil
		if *p.Logo != "" {
			a.Logo = ptr(*p.Logo)
		}
	}
}

// Capture returns a patch restoring, on a, every field p sets
func (p AirlinePatch) Capture(a *Airline) AirlinePatch {
	var prev AirlinePatch
	if p.Name != nil {
		prev.Name = ptr(a.Name)
	}
	if p.Rules != nil {
		prev.Rules = ptr(a.Rules)
	}
	if p.Logo != nil {
		prev.Logo = ptr("")
		if a.Logo != nil {
			prev.Logo = ptr(*a.Logo)
		}
	}
	return prev
}

func ptr[T any](v T) *T { return &v }
