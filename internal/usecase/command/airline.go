package command

import "flight-inventory-service/internal/domain/entity"

// NewCreateAirline returns a command creating airline
func NewCreateAirline(store Store[entity.Airline], airline entity.Airline) Command[entity.Airline] {
	airline.ID = 0
	return &createCommand[entity.Airline]{store: store, key: airline.Code, fields: airline}
}

// NewUpdateAirline returns a command applying patch to the airline with code
func NewUpdateAirline(store Store[entity.Airline], code string, patch entity.AirlinePatch) Command[entity.Airline] {
	return &updateCommand[entity.Airline, entity.AirlinePatch]{store: store, key: code, patch: patch}
}

// NewDeleteAirline returns a command deleting the airline with code
func NewDeleteAirline(store Store[entity.Airline], code string) Command[entity.Airline] {
	return &deleteCommand[entity.Airline]{store: store, key: code}
}
