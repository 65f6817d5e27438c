package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"taxatlas/internal/taxerr"
)

// ErrorResponse represents an HTTP error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	Field string `json:"field,omitempty"`
}

// writeError writes an error response with an explicit status
func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := ErrorResponse{Error: err.Error(), Code: "INTERNAL_ERROR"}

	var te *taxerr.Error
	if errors.As(err, &te) {
		resp.Code = string(te.Code)
		resp.Field = te.Field
	}

	_ = json.NewEncoder(w).Encode(resp)
}

// writeTaxErr writes a taxatlas error with automatic status mapping
func writeTaxErr(w http.ResponseWriter, err error) {
	writeError(w, statusFor(taxerr.CodeOf(err)), err)
}

// statusFor maps error codes to HTTP status codes
func statusFor(code taxerr.Code) int {
	switch code {
	case taxerr.ValidationFailed:
		return http.StatusBadRequest
	case taxerr.AuthFailed:
		return http.StatusUnauthorized
	case taxerr.ParseFailed:
		return http.StatusBadRequest
	case taxerr.StorageFailed, taxerr.BuildFailed:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// writeJSON writes a success response
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
