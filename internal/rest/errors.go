package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// ErrorResponse is the JSON envelope returned for every failed request.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// Sentinel errors for the persistence failure taxonomy. Services wrap these
// with context; WriteError maps them to a status and a fixed message.
var (
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("not found")
	ErrAlreadyExists    = errors.New("already exists")
	ErrQuotaExceeded    = errors.New("quota exceeded")
	ErrCancelled        = errors.New("cancelled")
	ErrDataLoss         = errors.New("data loss")
	// ErrDataIntegrity marks a partially applied cascade, which can leave
	// orphaned splits behind. Distinct from a plain persistence failure.
	ErrDataIntegrity = errors.New("data integrity violation")
)

type errorMapping struct {
	code    string
	status  int
	message string
}

var errorTable = []struct {
	sentinel error
	mapping  errorMapping
}{
	{ErrUnauthenticated, errorMapping{"unauthenticated", http.StatusUnauthorized, "You must be signed in to do that"}},
	{ErrPermissionDenied, errorMapping{"permission-denied", http.StatusForbidden, "You do not have permission to do that"}},
	{ErrNotFound, errorMapping{"not-found", http.StatusNotFound, "The requested record does not exist"}},
	{ErrAlreadyExists, errorMapping{"already-exists", http.StatusConflict, "A record with this identity already exists"}},
	{ErrQuotaExceeded, errorMapping{"quota-exceeded", http.StatusTooManyRequests, "Too many requests, please try again later"}},
	{ErrCancelled, errorMapping{"cancelled", http.StatusRequestTimeout, "The operation was cancelled"}},
	{ErrDataLoss, errorMapping{"data-loss", http.StatusInternalServerError, "Stored data could not be read back"}},
	{ErrDataIntegrity, errorMapping{"data-integrity", http.StatusInternalServerError, "The operation was only partially applied; some records may be inconsistent"}},
}

// ValidationError rejects a request before any mutation is issued. It names
// the offending field so the client can surface field-level detail.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// WriteError renders err as an ErrorResponse with the appropriate status.
// Unrecognized errors become an opaque 500; the detail stays in the log.
func WriteError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Code:    "validation",
			Message: validationErr.Message,
			Field:   validationErr.Field,
		})
		return
	}

	for _, entry := range errorTable {
		if errors.Is(err, entry.sentinel) {
			writeJSON(w, entry.mapping.status, ErrorResponse{
				Code:    entry.mapping.code,
				Message: entry.mapping.message,
			})
			return
		}
	}

	log.Errorf("unhandled error: %v", err)
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Code:    "internal",
		Message: "Something went wrong, please try again",
	})
}

func writeJSON(w http.ResponseWriter, status int, body ErrorResponse) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Errorf("failed to encode error response: %v", err)
	}
}
