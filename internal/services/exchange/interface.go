package exchange

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/secretsanta/internal/services/exchange Service

import "context"

// Service defines the interface for gift exchange operations
type Service interface {
	// CreateEvent creates a new event in draft
	CreateEvent(ctx context.Context, input *CreateEventInput) (*CreateEventOutput, error)

	// GetEvent returns an event with its participants and exclusions
	GetEvent(ctx context.Context, input *GetEventInput) (*GetEventOutput, error)

	// ListOrganizerEvents returns every event an organizer runs
	ListOrganizerEvents(ctx context.Context, input *ListOrganizerEventsInput) (*ListOrganizerEventsOutput, error)

	// DeleteEvent removes an event and its assignments
	DeleteEvent(ctx context.Context, input *DeleteEventInput) (*DeleteEventOutput, error)

	// AddParticipant registers a new participant
	AddParticipant(ctx context.Context, input *AddParticipantInput) (*AddParticipantOutput, error)

	// RemoveParticipant removes a participant and any exclusions naming them
	RemoveParticipant(ctx context.Context, input *RemoveParticipantInput) (*RemoveParticipantOutput, error)

	// UpdateWishlist replaces a participant's wishlist
	UpdateWishlist(ctx context.Context, input *UpdateWishlistInput) (*UpdateWishlistOutput, error)

	// AddExclusion forbids two participants from drawing each other
	AddExclusion(ctx context.Context, input *AddExclusionInput) (*AddExclusionOutput, error)

	// RemoveExclusion lifts an exclusion
	RemoveExclusion(ctx context.Context, input *RemoveExclusionInput) (*RemoveExclusionOutput, error)

	// ActivateEvent opens a draft event for drawing
	ActivateEvent(ctx context.Context, input *ActivateEventInput) (*ActivateEventOutput, error)

	// ReopenEvent sends an active event back to draft
	ReopenEvent(ctx context.Context, input *ReopenEventInput) (*ReopenEventOutput, error)

	// RunDraw generates and stores the assignments for an event, at most once per event
	RunDraw(ctx context.Context, input *RunDrawInput) (*RunDrawOutput, error)

	// CompleteEvent ends the exchange and makes every pairing visible
	CompleteEvent(ctx context.Context, input *CompleteEventInput) (*CompleteEventOutput, error)

	// CompletePastEvents completes drawn events whose date has passed
	CompletePastEvents(ctx context.Context, input *CompletePastEventsInput) (*CompletePastEventsOutput, error)

	// GetVisibleAssignments returns the assignments a viewer may see
	GetVisibleAssignments(ctx context.Context, input *GetVisibleAssignmentsInput) (*GetVisibleAssignmentsOutput, error)
}
