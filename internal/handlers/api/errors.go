package api

import (
	"errors"
	"net/http"

	"github.com/KirkDiggler/secretsanta/internal/assignment"
	"github.com/KirkDiggler/secretsanta/internal/services/exchange"
)

// statusFor maps service errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, exchange.ErrInvalidInput),
		errors.Is(err, assignment.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, exchange.ErrNotOrganizer),
		errors.Is(err, exchange.ErrNotAllowed):
		return http.StatusForbidden
	case errors.Is(err, exchange.ErrEventNotFound),
		errors.Is(err, exchange.ErrParticipantNotFound):
		return http.StatusNotFound
	case errors.Is(err, exchange.ErrInvalidPhase),
		errors.Is(err, exchange.ErrDrawAlreadyCompleted),
		errors.Is(err, exchange.ErrPhaseConflict),
		errors.Is(err, exchange.ErrDuplicateParticipant),
		errors.Is(err, exchange.ErrNotEnoughParticipants):
		return http.StatusConflict
	case errors.Is(err, assignment.ErrInfeasibleConstraints):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
