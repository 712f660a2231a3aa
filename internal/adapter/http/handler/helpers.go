package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/iho/payproc/internal/adapter/http/dto"
	"github.com/iho/payproc/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// writeDomainError writes err with the status mapDomainError assigns to it.
// Unmapped errors are reported without their text.
func writeDomainError(w http.ResponseWriter, message string, err error) {
	status := mapDomainError(err)
	details := err.Error()
	if status == http.StatusInternalServerError {
		details = "internal error"
	}
	writeError(w, status, message, details)
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrPaymentNotFound),
		errors.Is(err, domain.ErrMoveNotFound),
		errors.Is(err, domain.ErrStatementLineNotFound),
		errors.Is(err, domain.ErrReconciliationNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrEmptyBatch),
		errors.Is(err, domain.ErrBatchTooLarge),
		errors.Is(err, domain.ErrDuplicateID),
		errors.Is(err, domain.ErrUnknownChangeField),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrAmountTooLarge),
		errors.Is(err, domain.ErrInvalidPaymentKind),
		errors.Is(err, domain.ErrMissingStatementData):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrLineAlreadyReconciled),
		errors.Is(err, domain.ErrMovePosted),
		errors.Is(err, domain.ErrMoveNotPosted):
		return http.StatusConflict
	case errors.Is(err, domain.ErrPeriodNotFound),
		errors.Is(err, domain.ErrRateNotFound),
		errors.Is(err, domain.ErrCurrencyNotFound),
		errors.Is(err, domain.ErrUnbalancedMove),
		errors.Is(err, domain.ErrUnbalancedReconcile):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
