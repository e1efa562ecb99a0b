package assignment

import (
	"github.com/KirkDiggler/secretsanta/internal/models"
)

// VisibilityScope describes how much of an assignment set a viewer may see
type VisibilityScope string

const (
	// VisibilityNone means the viewer sees no assignments
	VisibilityNone VisibilityScope = "none"

	// VisibilityOwn means the viewer sees only the record where they are the giver
	VisibilityOwn VisibilityScope = "own"

	// VisibilityAll means the viewer sees every record
	VisibilityAll VisibilityScope = "all"
)

// ResolveInput contains parameters for resolving visible assignments
type ResolveInput struct {
	// Assignments is the full set for one event, possibly empty
	Assignments []*models.Assignment

	// Phase is the current phase of the event
	Phase models.EventPhase

	// ViewerParticipantID is the viewer's participant id in this event, empty if they hold none
	ViewerParticipantID string

	// ViewerIsOrganizer reports whether the viewer organizes the event
	ViewerIsOrganizer bool
}

// ScopeFor decides what a viewer may see. Holding a participant record is the
// only capability that matters before completion; organizing the event grants
// nothing extra, so an organizer cannot peek at pairings.
//
// viewerIsOrganizer is part of the signature so callers state who is asking,
// but it is never consulted.
func ScopeFor(phase models.EventPhase, viewerParticipantID string, viewerIsOrganizer bool) VisibilityScope {
	if phase == models.EventPhaseCompleted {
		return VisibilityAll
	}
	if viewerParticipantID != "" {
		return VisibilityOwn
	}
	return VisibilityNone
}

// ResolveVisibleAssignments returns the assignments the viewer may see, in the
// order they were given. The result is never nil and the records are copies,
// so callers may stamp them without touching the input.
func ResolveVisibleAssignments(input *ResolveInput) []*models.Assignment {
	visible := []*models.Assignment{}
	if input == nil {
		return visible
	}

	switch ScopeFor(input.Phase, input.ViewerParticipantID, input.ViewerIsOrganizer) {
	case VisibilityAll:
		for _, a := range input.Assignments {
			if a != nil {
				visible = append(visible, copyAssignment(a))
			}
		}
	case VisibilityOwn:
		for _, a := range input.Assignments {
			if a != nil && a.GiverID == input.ViewerParticipantID {
				visible = append(visible, copyAssignment(a))
				break
			}
		}
	}

	return visible
}

func copyAssignment(a *models.Assignment) *models.Assignment {
	out := *a
	if a.RevealedAt != nil {
		revealedAt := *a.RevealedAt
		out.RevealedAt = &revealedAt
	}
	return &out
}
