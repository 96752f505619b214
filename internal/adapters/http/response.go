package http

import (
	"encoding/json"
	"net/http"

	"github.com/merkato/storefront/internal/domain"
)

type apiError struct {
	Status  string            `json:"status"`
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeSuccess(w http.ResponseWriter, statusCode int, data any) {
	writeJSON(w, statusCode, map[string]any{
		"status": "success",
		"data":   data,
	})
}

func writeMessage(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]any{
		"status":  "success",
		"message": message,
	})
}

func writeError(w http.ResponseWriter, statusCode int, code, message string) {
	writeJSON(w, statusCode, apiError{
		Status:  "error",
		Code:    code,
		Message: message,
	})
}

// writeFieldErrors renders per-field validation failures so form UIs can
// place each message next to its input.
func writeFieldErrors(w http.ResponseWriter, fe domain.FieldErrors) {
	writeJSON(w, http.StatusBadRequest, apiError{
		Status:  "error",
		Code:    "VALIDATION_ERROR",
		Message: "one or more fields are invalid",
		Fields:  fe,
	})
}
