package models

import (
	"time"
)

// DrawStrategy records which search produced an assignment set
type DrawStrategy string

const (
	// DrawStrategyRandom indicates a uniformly shuffled candidate was accepted
	DrawStrategyRandom DrawStrategy = "random"

	// DrawStrategyBacktrack indicates the exhaustive fallback search found the set
	DrawStrategyBacktrack DrawStrategy = "backtrack"
)

// Assignment records that the giver buys a gift for the receiver
type Assignment struct {
	// EventID is the event the assignment belongs to
	EventID string

	// GiverID is the participant giving the gift
	GiverID string

	// ReceiverID is the participant receiving the gift
	ReceiverID string

	// RevealedAt is when the giver first saw their receiver
	RevealedAt *time.Time
}

// AssignmentSet is the complete result of one draw for an event
type AssignmentSet struct {
	// EventID is the event that was drawn
	EventID string

	// DrawID identifies this particular draw; a redraw produces a new one
	DrawID string

	// Assignments holds one record per participant as giver
	Assignments []*Assignment

	// Seed is the random seed the draw used, for replaying it
	Seed int64

	// Strategy is the search that produced the set
	Strategy DrawStrategy

	// Attempts is the number of random candidates tried before acceptance
	Attempts int

	// CreatedAt is when the set was generated
	CreatedAt time.Time
}

// ForGiver returns the assignment where id is the giver, or nil
func (s *AssignmentSet) ForGiver(id string) *Assignment {
	if s == nil {
		return nil
	}
	for _, a := range s.Assignments {
		if a.GiverID == id {
			return a
		}
	}
	return nil
}
