package command

import "flight-inventory-service/internal/domain/entity"

// NewCreateFlight returns a command creating flight. The final price is
// computed from the captured price inputs.
func NewCreateFlight(store Store[entity.Flight], flight entity.Flight) Command[entity.Flight] {
	flight.ID = 0
	flight.DepartureAirport, flight.ArrivalAirport = nil, nil
	flight.Airline, flight.Aircraft = nil, nil
	flight.Reprice()
	return &createCommand[entity.Flight]{store: store, key: flight.FlightNumber, fields: flight}
}

// NewUpdateFlight returns a command applying patch to the flight with number.
// The final price is recomputed when base price, tax or discount change.
func NewUpdateFlight(store Store[entity.Flight], number string, patch entity.FlightPatch) Command[entity.Flight] {
	return &updateCommand[entity.Flight, entity.FlightPatch]{store: store, key: number, patch: patch}
}

// NewDeleteFlight returns a command deleting the flight with number
func NewDeleteFlight(store Store[entity.Flight], number string) Command[entity.Flight] {
	return &deleteCommand[entity.Flight]{store: store, key: number}
}
