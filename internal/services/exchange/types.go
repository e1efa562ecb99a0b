package exchange

import (
	"time"

	"github.com/KirkDiggler/secretsanta/internal/assignment"
	"github.com/KirkDiggler/secretsanta/internal/common/clock"
	"github.com/KirkDiggler/secretsanta/internal/common/shortid"
	"github.com/KirkDiggler/secretsanta/internal/common/uuid"
	"github.com/KirkDiggler/secretsanta/internal/models"
	assignmentRepo "github.com/KirkDiggler/secretsanta/internal/repositories/assignment"
	eventRepo "github.com/KirkDiggler/secretsanta/internal/repositories/event"
	"go.uber.org/zap"
)

// Config holds configuration for the exchange service
type Config struct {
	// Repository dependencies
	EventRepo      eventRepo.Repository
	AssignmentRepo assignmentRepo.Repository

	// Engine draws assignments; nil builds one from MaxDrawAttempts
	Engine *assignment.Engine

	// MaxDrawAttempts bounds the randomized phase of the draw
	MaxDrawAttempts int

	// Service dependencies
	Clock            clock.Clock
	UUIDGenerator    uuid.Generator
	ShortIDGenerator shortid.Generator

	// Logger is optional; nil disables logging
	Logger *zap.Logger
}

// Actor identifies who is calling. Either field may be empty; the web
// surface knows an email and the Discord surface knows a user ID.
type Actor struct {
	Email         string
	DiscordUserID string
}

// CreateEventInput contains parameters for creating an event
type CreateEventInput struct {
	Name               string
	OrganizerEmail     string
	OrganizerDiscordID string
	EventDate          *time.Time
	BudgetNote         string
}

// CreateEventOutput contains the created event
type CreateEventOutput struct {
	Event *models.Event
}

type GetEventInput struct {
	EventID string
}

type GetEventOutput struct {
	Event *models.Event
}

type ListOrganizerEventsInput struct {
	OrganizerEmail string
}

type ListOrganizerEventsOutput struct {
	Events []*models.Event
}

type DeleteEventInput struct {
	EventID string
	Actor   Actor
}

type DeleteEventOutput struct {
	Success bool
}

// AddParticipantInput contains parameters for registering a participant
type AddParticipantInput struct {
	EventID       string
	Actor         Actor
	Name          string
	Email         string
	DiscordUserID string
	Wishlist      []string
}

// AddParticipantOutput contains the new participant and the updated event
type AddParticipantOutput struct {
	Participant *models.Participant
	Event       *models.Event
}

type RemoveParticipantInput struct {
	EventID       string
	Actor         Actor
	ParticipantID string
}

type RemoveParticipantOutput struct {
	Event *models.Event
}

// UpdateWishlistInput replaces a wishlist. The participant may edit their own
// wishlist; the organizer may edit anyone's.
type UpdateWishlistInput struct {
	EventID       string
	Actor         Actor
	ParticipantID string
	Wishlist      []string
}

type UpdateWishlistOutput struct {
	Participant *models.Participant
}

type AddExclusionInput struct {
	EventID string
	Actor   Actor
	Pair    models.ExclusionPair
}

type AddExclusionOutput struct {
	Event *models.Event
}

type RemoveExclusionInput struct {
	EventID string
	Actor   Actor
	Pair    models.ExclusionPair
}

type RemoveExclusionOutput struct {
	Event *models.Event
}

type ActivateEventInput struct {
	EventID string
	Actor   Actor
}

type ActivateEventOutput struct {
	Event *models.Event
}

type ReopenEventInput struct {
	EventID string
	Actor   Actor
}

type ReopenEventOutput struct {
	Event *models.Event
}

// RunDrawInput contains parameters for drawing an event
type RunDrawInput struct {
	EventID string
	Actor   Actor

	// Redraw replaces the assignments of an already drawn event
	Redraw bool

	// Seed makes the draw reproducible in tests; nil draws a fresh seed.
	// No outer surface sets it.
	Seed *int64
}

// RunDrawOutput describes the stored draw without revealing any pairing.
// The seed stays with the stored set, since it and the roster replay the draw.
type RunDrawOutput struct {
	Event    *models.Event
	DrawID   string
	Strategy models.DrawStrategy
	Attempts int
}

type CompleteEventInput struct {
	EventID string
	Actor   Actor
}

type CompleteEventOutput struct {
	Event *models.Event
}

// CompletePastEventsInput contains parameters for the completion sweep
type CompletePastEventsInput struct {
	// Now is the cutoff; zero uses the service clock
	Now time.Time
}

type CompletePastEventsOutput struct {
	CompletedEventIDs []string
}

// GetVisibleAssignmentsInput identifies the viewer by email or Discord user
type GetVisibleAssignmentsInput struct {
	EventID string
	Viewer  Actor
}

// VisibleAssignment is an assignment with the participant details a giver needs
type VisibleAssignment struct {
	GiverID          string
	GiverName        string
	ReceiverID       string
	ReceiverName     string
	ReceiverWishlist []string
	RevealedAt       *time.Time
}

// GetVisibleAssignmentsOutput contains what the viewer may see
type GetVisibleAssignmentsOutput struct {
	EventID string
	Phase   models.EventPhase
	Scope   assignment.VisibilityScope

	// ViewerParticipantID is empty when the viewer holds no participant record
	ViewerParticipantID string

	// Assignments is never nil
	Assignments []*VisibleAssignment

	// FirstReveal is true when this call is the first time the viewer saw their receiver
	FirstReveal bool
}
