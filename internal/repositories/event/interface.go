package event

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/secretsanta/internal/repositories/event Repository

import (
	"context"

	"github.com/KirkDiggler/secretsanta/internal/models"
)

// Repository defines the interface for event data persistence
type Repository interface {
	// SaveEvent persists an event, replacing any stored version
	SaveEvent(ctx context.Context, input *SaveEventInput) error

	// GetEvent retrieves an event by ID
	GetEvent(ctx context.Context, input *GetEventInput) (*models.Event, error)

	// UpdateEvent applies a mutation to the stored event atomically
	UpdateEvent(ctx context.Context, input *UpdateEventInput) (*models.Event, error)

	// TransitionPhase moves an event between phases if it is still in the expected phase
	TransitionPhase(ctx context.Context, input *TransitionPhaseInput) (*models.Event, error)

	// DeleteEvent removes an event
	DeleteEvent(ctx context.Context, input *DeleteEventInput) error

	// ListEventsByPhase retrieves all events currently in a phase
	ListEventsByPhase(ctx context.Context, input *ListEventsByPhaseInput) (*ListEventsOutput, error)

	// ListEventsByOrganizer retrieves all events organized by an email address
	ListEventsByOrganizer(ctx context.Context, input *ListEventsByOrganizerInput) (*ListEventsOutput, error)
}
