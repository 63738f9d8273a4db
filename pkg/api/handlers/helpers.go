// Package handlers provides HTTP handlers for the Quanta Docs API.
package handlers

import (
	"encoding/json"
	"net/http"

	vfserrors "github.com/Clay-Ferguson/quanta-docs/pkg/vfs/errors"
)

// ErrorBody is the wire shape of every failed request.
type ErrorBody struct {
	Error string `json:"error"`
}

// decodeJSONBody decodes a JSON request body into the provided pointer.
// Returns true if successful, false if decoding fails (error response is
// written automatically).
func decodeJSONBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		WriteJSON(w, http.StatusBadRequest, ErrorBody{Error: "invalid request body"})
		return false
	}
	return true
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteJSONOK writes a 200 OK JSON response.
func WriteJSONOK(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, data)
}

// WriteError maps a service error to its HTTP status and writes the error
// body. StoreError messages are safe to show verbatim; anything else is
// replaced with a generic diagnostic so internals never leak.
func WriteError(w http.ResponseWriter, err error) {
	code := vfserrors.CodeOf(err)
	status := statusForCode(code)
	msg := "internal server error"
	if code != 0 {
		msg = err.Error()
	}
	WriteJSON(w, status, ErrorBody{Error: msg})
}

// statusForCode maps an engine error code to an HTTP status.
func statusForCode(code vfserrors.ErrorCode) int {
	switch code {
	case vfserrors.ErrNotFound:
		return http.StatusNotFound
	case vfserrors.ErrAlreadyExists, vfserrors.ErrConflict:
		return http.StatusConflict
	case vfserrors.ErrInvalidName, vfserrors.ErrInvalidPath, vfserrors.ErrBadArgument:
		return http.StatusBadRequest
	case vfserrors.ErrUnauthorized:
		return http.StatusForbidden
	case vfserrors.ErrUnavailable:
		return http.StatusServiceUnavailable
	case vfserrors.ErrTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// BadRequest writes a 400 error body.
func BadRequest(w http.ResponseWriter, msg string) {
	WriteJSON(w, http.StatusBadRequest, ErrorBody{Error: msg})
}

// Unauthorized writes a 401 error body.
func Unauthorized(w http.ResponseWriter, msg string) {
	WriteJSON(w, http.StatusUnauthorized, ErrorBody{Error: msg})
}

// InternalServerError writes a 500 error body.
func InternalServerError(w http.ResponseWriter, msg string) {
	WriteJSON(w, http.StatusInternalServerError, ErrorBody{Error: msg})
}
