package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/osse101/PlantTycoon_Go/internal/domain"
	"github.com/osse101/PlantTycoon_Go/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs err and writes the mapped status and message
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	status, msg := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(opName+" failed", "error", err)
	} else {
		log.Info(opName+" rejected", "error", err)
	}
	respondError(w, status, msg)
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgAlreadyGrowingError = "You are already growing a plant. Take care of it first!"
	ErrMsgNoActivePlantError  = "You are not growing a plant. Use seed to get one."
	ErrMsgUnknownPlantError   = "That plant doesn't exist."
	ErrMsgUnknownProductError = "That product doesn't exist or can't be used that way."
	ErrMsgOutOfStockError     = "You don't have any of that product left. Buy some first!"
	ErrMsgNotEnoughPointsErr  = "You don't have enough Gro-cash."
	ErrMsgInvalidAmountError  = "The amount must be a positive number."
	ErrMsgNoBankAccountError  = "You don't have a bank account to deposit into."
	ErrMsgPersistenceError    = "Your garden could not be saved. Please try again."
	ErrMsgInvalidInputError   = "Invalid request. Please check your inputs."
)

// mapServiceErrorToUserMessage maps domain errors to HTTP status codes and
// messages users can act on.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrAlreadyGrowing):
		return http.StatusConflict, ErrMsgAlreadyGrowingError
	case errors.Is(err, domain.ErrNoActivePlant):
		return http.StatusConflict, ErrMsgNoActivePlantError
	case errors.Is(err, domain.ErrUnknownPlant):
		return http.StatusNotFound, ErrMsgUnknownPlantError
	case errors.Is(err, domain.ErrUnknownProduct):
		return http.StatusNotFound, ErrMsgUnknownProductError
	case errors.Is(err, domain.ErrOutOfStock):
		return http.StatusConflict, ErrMsgOutOfStockError
	case errors.Is(err, domain.ErrInsufficientPoints):
		return http.StatusPaymentRequired, ErrMsgNotEnoughPointsErr
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest, ErrMsgInvalidAmountError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	case errors.Is(err, domain.ErrNoExternalAccount):
		return http.StatusUnprocessableEntity, ErrMsgNoBankAccountError
	case errors.Is(err, domain.ErrPersistence):
		return http.StatusInternalServerError, ErrMsgPersistenceError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
