package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Response represents the standard API response format
type Response struct {
	RequestID string `json:"request_id"`
	Status    string `json:"status"`
	Data      any    `json:"data,omitempty"`
	Error     *Error `json:"error,omitempty"`
}

// Error represents the standard error format
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Api writes standard API responses
type Api interface {
	Success(ctx context.Context, w http.ResponseWriter, data any)
	Created(ctx context.Context, w http.ResponseWriter, data any)
	Error(ctx context.Context, w http.ResponseWriter, statusCode int, apiErr *Error)
	BadRequest(ctx context.Context, w http.ResponseWriter, message string)
	NotFound(ctx context.Context, w http.ResponseWriter, message string)
}

type api struct{}

// New creates a new instance of the API response handler
func New() Api {
	return &api{}
}

func (a *api) write(ctx context.Context, w http.ResponseWriter, statusCode int, response Response) {
	response.RequestID = middleware.GetReqID(ctx)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	// the status line is already sent; an encoding failure leaves a truncated body
	_ = json.NewEncoder(w).Encode(response)
}

// Success sends a 200 OK response with data
func (a *api) Success(ctx context.Context, w http.ResponseWriter, data any) {
	a.write(ctx, w, http.StatusOK, Response{Status: StatusSuccess, Data: data})
}

// Created sends a 201 Created response with data
func (a *api) Created(ctx context.Context, w http.ResponseWriter, data any) {
	a.write(ctx, w, http.StatusCreated, Response{Status: StatusSuccess, Data: data})
}

// Error sends an error response with specific HTTP status code and error details
func (a *api) Error(ctx context.Context, w http.ResponseWriter, statusCode int, apiErr *Error) {
	a.write(ctx, w, statusCode, Response{Status: StatusError, Error: apiErr})
}

// BadRequest sends a 400 Bad Request response
func (a *api) BadRequest(ctx context.Context, w http.ResponseWriter, message string) {
	a.Error(ctx, w, http.StatusBadRequest, &Error{Code: "BAD_REQUEST", Message: message})
}

// NotFound sends a 404 Not Found response
func (a *api) NotFound(ctx context.Context, w http.ResponseWriter, message string) {
	a.Error(ctx, w, http.StatusNotFound, &Error{Code: "NOT_FOUND", Message: message})
}
