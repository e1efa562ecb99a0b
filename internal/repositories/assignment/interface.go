package assignment

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/secretsanta/internal/repositories/assignment Repository

import (
	"context"

	"github.com/KirkDiggler/secretsanta/internal/models"
)

// Repository defines the interface for assignment set persistence.
// A set is written whole or not at all.
type Repository interface {
	// SaveAssignmentsIfAbsent stores a set only if the event has none yet
	SaveAssignmentsIfAbsent(ctx context.Context, input *SaveAssignmentsInput) error

	// ReplaceAssignments swaps the stored set for a new draw if the stored draw is the expected one
	ReplaceAssignments(ctx context.Context, input *ReplaceAssignmentsInput) error

	// GetAssignments retrieves the set for an event with reveal times filled in
	GetAssignments(ctx context.Context, input *GetAssignmentsInput) (*models.AssignmentSet, error)

	// MarkRevealed records the first time a giver saw their receiver
	MarkRevealed(ctx context.Context, input *MarkRevealedInput) (*MarkRevealedOutput, error)

	// DeleteAssignments removes the set for an event
	DeleteAssignments(ctx context.Context, input *DeleteAssignmentsInput) error
}
