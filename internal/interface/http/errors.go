// Package http contains the HTTP delivery of the inventory commands, queries
// and index administration.
package http

import (
	"context"
	"errors"
	"net/http"

	"flight-inventory-service/internal/domain"
	"flight-inventory-service/pkg/api"
	"flight-inventory-service/pkg/logger"
)

var errorCodes = []struct {
	err  error
	code string
}{
	{domain.ErrDuplicateKey, "DUPLICATE_KEY"},
	{domain.ErrNotFound, "NOT_FOUND"},
	{domain.ErrEmptyHistory, "EMPTY_HISTORY"},
	{domain.ErrInUse, "IN_USE"},
	{domain.ErrInvalidInput, "INVALID_INPUT"},
	{domain.ErrStoreUnavailable, "STORE_UNAVAILABLE"},
}

// writeError maps err onto its status and error code. Internal errors are not
// echoed to the client.
func writeError(ctx context.Context, w http.ResponseWriter, a api.Api, log logger.Logger, err error) {
	status := domain.StatusCode(err)
	apiErr := &api.Error{Code: "INTERNAL_ERROR", Message: "internal server error"}
	for _, c := range errorCodes {
		if errors.Is(err, c.err) {
			apiErr = &api.Error{Code: c.code, Message: err.Error()}
			break
		}
	}

	if status >= http.StatusInternalServerError {
		log.Error("Request failed", "status", status, "error", err)
	}
	a.Error(ctx, w, status, apiErr)
}
