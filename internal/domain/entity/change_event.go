package entity

import "time"

// ChangeOp is the kind of change published for an entity
type ChangeOp string

const (
	ChangeUpsert ChangeOp = "upsert"
	ChangeDelete ChangeOp = "delete"
)

// ChangeEvent describes one committed change as published on the change feed.
// Fields holds the projected document for upserts and is empty for deletes.
type ChangeEvent struct {
	ID         string                 `json:"event_id"`
	Kind       Kind                   `json:"kind"`
	Key        string                 `json:"key"`
	Op         ChangeOp               `json:"op"`
	Fields     map[string]interface{} `json:"fields,omitempty"`
	OccurredAt time.Time              `json:"occurred_at"`
}
