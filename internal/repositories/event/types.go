package event

import (
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/secretsanta/internal/models"
)

var (
	// ErrEventNotFound is returned when an event is not found
	ErrEventNotFound = errors.New("event not found")

	// ErrPhaseConflict is returned when the stored phase is not the expected one
	ErrPhaseConflict = errors.New("event phase changed concurrently")
)

type SaveEventInput struct {
	Event *models.Event
}

type GetEventInput struct {
	EventID string
}

// UpdateEventInput carries a mutation to run against the latest stored event.
// Returning an error from Mutate aborts the update and is returned unchanged.
type UpdateEventInput struct {
	EventID string
	Mutate  func(event *models.Event) error
}

type TransitionPhaseInput struct {
	EventID string
	From    models.EventPhase
	To      models.EventPhase
	At      time.Time
}

type DeleteEventInput struct {
	EventID string
}

type ListEventsByPhaseInput struct {
	Phase models.EventPhase
}

type ListEventsByOrganizerInput struct {
	OrganizerEmail string
}

type ListEventsOutput struct {
	Events []*models.Event
}

// applyTransition checks and applies a phase change in place
func applyTransition(event *models.Event, input *TransitionPhaseInput) error {
	if event.Phase != input.From {
		return fmt.Errorf("%w: expected %s, found %s", ErrPhaseConflict, input.From, event.Phase)
	}
	if !input.From.CanTransitionTo(input.To) {
		return fmt.Errorf("%w: %s -> %s is not allowed", ErrPhaseConflict, input.From, input.To)
	}

	at := input.At
	event.Phase = input.To
	event.UpdatedAt = at
	switch input.To {
	case models.EventPhaseDrawn:
		event.DrawnAt = &at
	case models.EventPhaseCompleted:
		event.CompletedAt = &at
	case models.EventPhaseDraft, models.EventPhaseActive:
		event.DrawnAt = nil
	}
	return nil
}
