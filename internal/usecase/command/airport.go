package command

import "flight-inventory-service/internal/domain/entity"

// NewCreateAirport returns a command creating airport
func NewCreateAirport(store Store[entity.Airport], airport entity.Airport) Command[entity.Airport] {
	airport.ID = 0
	return &createCommand[entity.Airport]{store: store, key: airport.Code, fields: airport}
}

// NewUpdateAirport returns a command applying patch to the airport with code
func NewUpdateAirport(store Store[entity.Airport], code string, patch entity.AirportPatch) Command[entity.Airport] {
	return &updateCommand[entity.Airport, entity.AirportPatch]{store: store, key: code, patch: patch}
}

// NewDeleteAirport returns a command deleting the airport with code
func NewDeleteAirport(store Store[entity.Airport], code string) Command[entity.Airport] {
	return &deleteCommand[entity.Airport]{store: store, key: code}
}
