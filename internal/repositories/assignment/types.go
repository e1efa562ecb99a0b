package assignment

import (
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/secretsanta/internal/models"
)

var (
	// ErrAssignmentsNotFound is returned when an event has no assignment set
	ErrAssignmentsNotFound = errors.New("assignments not found")

	// ErrAssignmentsExist is returned when a conditional save finds a set already stored
	ErrAssignmentsExist = errors.New("assignments already exist for event")

	// ErrDrawMismatch is returned when a replace finds a different draw than expected
	ErrDrawMismatch = errors.New("stored draw does not match expected draw")

	// ErrGiverNotFound is returned when a reveal names a giver outside the set
	ErrGiverNotFound = errors.New("giver not found in assignments")
)

// SaveAssignmentsInput contains parameters for storing a new assignment set
type SaveAssignmentsInput struct {
	Set *models.AssignmentSet
}

// ReplaceAssignmentsInput contains parameters for replacing a set after a redraw
type ReplaceAssignmentsInput struct {
	Set            *models.AssignmentSet
	ExpectedDrawID string
}

// GetAssignmentsInput contains parameters for retrieving an assignment set
type GetAssignmentsInput struct {
	EventID string
}

// MarkRevealedInput contains parameters for recording a reveal
type MarkRevealedInput struct {
	EventID string
	GiverID string
	At      time.Time
}

// MarkRevealedOutput contains the stored reveal time
type MarkRevealedOutput struct {
	// RevealedAt is the first reveal time, which may predate At
	RevealedAt time.Time

	// FirstReveal is true when this call stored the reveal
	FirstReveal bool
}

// DeleteAssignmentsInput contains parameters for deleting an assignment set
type DeleteAssignmentsInput struct {
	EventID string

	// DrawID, when set, restricts the delete to that draw
	DrawID string
}

func validateSet(set *models.AssignmentSet) error {
	if set == nil {
		return errors.New("assignment set cannot be nil")
	}
	if set.EventID == "" {
		return errors.New("event ID cannot be empty")
	}
	if set.DrawID == "" {
		return errors.New("draw ID cannot be empty")
	}
	if len(set.Assignments) == 0 {
		return errors.New("assignment set cannot be empty")
	}
	for _, a := range set.Assignments {
		if a == nil || a.GiverID == "" || a.ReceiverID == "" {
			return errors.New("assignments need a giver and a receiver")
		}
		if a.EventID != set.EventID {
			return fmt.Errorf("assignment for giver %s belongs to event %q", a.GiverID, a.EventID)
		}
	}
	return nil
}
