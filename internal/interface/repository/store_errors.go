package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"flight-inventory-service/internal/domain"

	"gorm.io/gorm"
)

// storeError maps a GORM error onto the domain taxonomy, keeping the cause in the chain
func storeError(op string, err error) error {
	if err == nil {
		return nil
	}

	var netErr net.Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", op, domain.ErrDuplicateKey)
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled),
		errors.Is(err, driver.ErrBadConn),
		errors.As(err, &netErr):
		return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// referenceError maps a foreign key violation on write to NotFound (a missing
// referenced entity) and on delete to InUse (a flight still points at the row)
func referenceError(op string, err error, deleting bool) error {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		if deleting {
			return fmt.Errorf("%s: %w", op, domain.ErrInUse)
		}
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return storeError(op, err)
}
