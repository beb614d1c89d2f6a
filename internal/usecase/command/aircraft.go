package command

import "flight-inventory-service/internal/domain/entity"

// NewCreateAircraft returns a command creating aircraft
func NewCreateAircraft(store Store[entity.Aircraft], aircraft entity.Aircraft) Command[entity.Aircraft] {
	aircraft.ID = 0
	return &createCommand[entity.Aircraft]{store: store, key: aircraft.Model, fields: aircraft}
}

// NewUpdateAircraft returns a command applying patch to the aircraft with model
func NewUpdateAircraft(store Store[entity.Aircraft], model string, patch entity.AircraftPatch) Command[entity.Aircraft] {
	return &updateCommand[entity.Aircraft, entity.AircraftPatch]{store: store, key: model, patch: patch}
}

// NewDeleteAircraft returns a command deleting the aircraft with model
func NewDeleteAircraft(store Store[entity.Aircraft], model string) Command[entity.Aircraft] {
	return &deleteCommand[entity.Aircraft]{store: store, key: model}
}
