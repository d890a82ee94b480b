// Package httputil writes JSON responses and maps domain error codes to HTTP
// statuses for handlers mounted on the service.
package httputil

import (
	"encoding/json"
	"net/http"

	dErrors "kabal/pkg/domain-errors"
)

var statusByCode = map[dErrors.Code]int{
	dErrors.CodeBadRequest:         http.StatusBadRequest,
	dErrors.CodeForbidden:          http.StatusForbidden,
	dErrors.CodeNotFound:           http.StatusNotFound,
	dErrors.CodeConflict:           http.StatusConflict,
	dErrors.CodeCaseTerminal:       http.StatusConflict,
	dErrors.CodeBusinessRule:       http.StatusUnprocessableEntity,
	dErrors.CodeValidation:         http.StatusUnprocessableEntity,
	dErrors.CodeIntegration:        http.StatusBadGateway,
	dErrors.CodeTimeout:            http.StatusGatewayTimeout,
	dErrors.CodeInvariantViolation: http.StatusInternalServerError,
	dErrors.CodeInternal:           http.StatusInternalServerError,
}

// StatusFor returns the HTTP status for err's outermost domain code.
func StatusFor(err error) int {
	if status, ok := statusByCode[dErrors.CodeOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// WriteJSON encodes v with status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error       string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

// WriteError writes err as {error, error_description}. The description is the
// domain message alone; server-side failures carry only the code so causes do
// not leak.
func WriteError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	body := errorBody{Error: string(dErrors.CodeOf(err))}
	if status < http.StatusInternalServerError {
		body.Description = dErrors.MessageOf(err)
	}
	WriteJSON(w, status, body)
}
