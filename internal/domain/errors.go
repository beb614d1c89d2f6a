package domain

import "errors"

// AppError is an error carrying the HTTP status it maps to
type AppError struct {
	Message string
	Code    int
}

func (e *AppError) Error() string {
	return e.Message
}

// Command and store errors
var (
	ErrDuplicateKey = &AppError{
		Message: "an entity with this identifier already exists",
		Code:    409, // StatusConflict
	}
	ErrNotFound = &AppError{
		Message: "entity not found",
		Code:    404, // StatusNotFound
	}
	ErrEmptyHistory = &AppError{
		Message: "nothing to undo or redo",
		Code:    409, // StatusConflict
	}
	ErrStoreUnavailable = &AppError{
		Message: "entity store unavailable",
		Code:    503, // StatusServiceUnavailable
	}
	ErrInUse = &AppError{
		Message: "entity is still referenced by a flight",
		Code:    409, // StatusConflict
	}
	ErrInvalidInput = &AppError{
		Message: "invalid input",
		Code:    400, // StatusBadRequest
	}
)

// StatusCode returns the HTTP status of the first AppError in err's chain, or 500
func StatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return 500
}
