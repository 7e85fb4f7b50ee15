package types

import (
	"encoding/json"
	"net/http"

	"github.com/bhujal/registry/internal/validation"
)

// APIResponse is the envelope for every JSON body except the bare owners list.
type APIResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message,omitempty"`
	Count   *int      `json:"count,omitempty"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
}

type APIError struct {
	Code    string                  `json:"code"`
	Message string                  `json:"message"`
	Fields  []validation.FieldError `json:"fields,omitempty"`
}

// Counted sets Count to n.
func Counted(n int) *int { return &n }

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteFailure writes an error envelope. The message is repeated at the top
// level for clients that only read "message".
func WriteFailure(w http.ResponseWriter, status int, apiErr *APIError) {
	WriteJSON(w, status, APIResponse{Success: false, Message: apiErr.Message, Error: apiErr})
}
