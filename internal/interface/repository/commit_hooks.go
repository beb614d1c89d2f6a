package repository

import (
	"flight-inventory-service/internal/domain/entity"
	"flight-inventory-service/internal/domain/repository"

	"gorm.io/gorm"
)

const commitCallback = "gorm:commit_or_rollback_transaction"

// changeTracked is implemented by the models whose commits are published
type changeTracked interface {
	EntityKind() entity.Kind
	EntityKey() string
}

type commitOp int

const (
	opCreate commitOp = iota
	opUpdate
	opDelete
)

// RegisterCommitHooks publishes every committed create, update and delete of
// an inventory model to listener. The hooks run after the statement's own
// transaction has been committed, so rolled back writes are never published.
func RegisterCommitHooks(db *gorm.DB, listener repository.ChangeListener) error {
	cb := db.Callback()

	if err := cb.Create().After(commitCallback).
		Register("inventory:publish_create", publish(listener, opCreate)); err != nil {
		return err
	}
	if err := cb.Update().After(commitCallback).
		Register("inventory:publish_update", publish(listener, opUpdate)); err != nil {
		return err
	}
	return cb.Delete().After(commitCallback).
		Register("inventory:publish_delete", publish(listener, opDelete))
}

func publish(listener repository.ChangeListener, op commitOp) func(*gorm.DB) {
	return func(tx *gorm.DB) {
		if tx.Error != nil || tx.RowsAffected == 0 || tx.Statement == nil {
			return
		}
		tracked, ok := tx.Statement.Dest.(changeTracked)
		if !ok {
			return
		}

		key := tracked.EntityKey()
		if key == "" {
			return
		}
		switch op {
		case opDelete:
			listener.OnDelete(tracked.EntityKind(), key)
		default:
			listener.OnCommit(tracked.EntityKind(), key, op == opCreate)
		}
	}
}
