package models

// EventPhase represents where an event is in its lifecycle
type EventPhase string

const (
	// EventPhaseDraft indicates the organizer is still setting the event up
	EventPhaseDraft EventPhase = "draft"

	// EventPhaseActive indicates the event is open and ready to be drawn
	EventPhaseActive EventPhase = "active"

	// EventPhaseDrawn indicates assignments exist and each giver may see their own receiver
	EventPhaseDrawn EventPhase = "drawn"

	// EventPhaseCompleted indicates the exchange happened and every pairing is public
	EventPhaseCompleted EventPhase = "completed"
)

// EventPhases lists every phase in lifecycle order
var EventPhases = []EventPhase{
	EventPhaseDraft,
	EventPhaseActive,
	EventPhaseDrawn,
	EventPhaseCompleted,
}

// Valid reports whether p is a known phase
func (p EventPhase) Valid() bool {
	switch p {
	case EventPhaseDraft, EventPhaseActive, EventPhaseDrawn, EventPhaseCompleted:
		return true
	default:
		return false
	}
}

// IsEditable reports whether participants and exclusions may still change
func (p EventPhase) IsEditable() bool {
	return p == EventPhaseDraft || p == EventPhaseActive
}

// AllowsDraw reports whether assignments may be generated from this phase.
// Drawing again from drawn requires an explicit redraw.
func (p EventPhase) AllowsDraw(redraw bool) bool {
	switch p {
	case EventPhaseActive:
		return true
	case EventPhaseDrawn:
		return redraw
	default:
		return false
	}
}

// CanTransitionTo reports whether moving from p to next is a legal lifecycle step
func (p EventPhase) CanTransitionTo(next EventPhase) bool {
	switch p {
	case EventPhaseDraft:
		return next == EventPhaseActive
	case EventPhaseActive:
		return next == EventPhaseDraft || next == EventPhaseDrawn
	case EventPhaseDrawn:
		return next == EventPhaseDrawn || next == EventPhaseCompleted
	default:
		return false
	}
}
