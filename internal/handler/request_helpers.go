package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/osse101/PlantTycoon_Go/internal/logger"
)

// MaxRequestBodyBytes bounds JSON bodies accepted by the garden routes
const MaxRequestBodyBytes = 1 << 16

// DecodeAndValidateRequest decodes a JSON request body and validates it.
// If it returns an error, the response has already been written.
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxRequestBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(req); err != nil {
		log.Warn(fmt.Sprintf("Failed to decode %s request", actionName), "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}

	log.Debug(fmt.Sprintf("%s request decoded", actionName))

	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return err
	}

	return nil
}

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// GetQueryParam retrieves a required query parameter.
// If ok is false, the response has already been written.
func GetQueryParam(r *http.Request, w http.ResponseWriter, paramName string) (string, bool) {
	value := r.URL.Query().Get(paramName)
	if value == "" {
		logger.FromContext(r.Context()).Warn(fmt.Sprintf("Missing %s query parameter", paramName))
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingQueryParam, paramName))
		return "", false
	}
	return value, true
}

// getUserIDParam reads and validates the user_id query parameter
func getUserIDParam(r *http.Request, w http.ResponseWriter) (string, bool) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return "", false
	}
	if err := GetValidator().ValidateVar(userID, "userid"); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: map[string]string{"user_id": fmt.Sprintf("Must be 1-%d characters without spaces", MaxUserIDLength)},
		})
		return "", false
	}
	return userID, true
}

// handleAction decodes and validates REQ, runs the action and writes its
// result with status 200.
func handleAction[REQ any, RES any](
	w http.ResponseWriter,
	r *http.Request,
	opName string,
	action func(context.Context, REQ) (RES, error),
) {
	var req REQ
	if err := DecodeAndValidateRequest(r, w, &req, opName); err != nil {
		return
	}

	res, err := action(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, opName, err)
		return
	}

	respondJSON(w, http.StatusOK, res)
}
