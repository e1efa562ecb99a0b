package models

import (
	"time"
)

// Event represents a gift exchange organized by one person
type Event struct {
	// ID is the unique identifier for the event
	ID string

	// Name is the display name of the event
	Name string

	// OrganizerEmail identifies the organizer on the web surface
	OrganizerEmail string

	// OrganizerDiscordID identifies the organizer on the Discord surface
	OrganizerDiscordID string

	// Phase is the current lifecycle phase
	Phase EventPhase

	// Participants contains everyone taking part, in the order they were added
	Participants []*Participant

	// Exclusions contains the canonical pairs that may not give to each other
	Exclusions []ExclusionPair

	// EventDate is when gifts are exchanged; once passed a drawn event is completed
	EventDate *time.Time

	// BudgetNote is free text shown to participants, e.g. a price limit
	BudgetNote string

	// CreatedAt is when the event was created
	CreatedAt time.Time

	// UpdatedAt is when the event was last updated
	UpdatedAt time.Time

	// DrawnAt is when the current assignment set was drawn
	DrawnAt *time.Time

	// CompletedAt is when the event moved to completed
	CompletedAt *time.Time
}

// FindParticipant returns the participant with the given id, or nil
func (e *Event) FindParticipant(id string) *Participant {
	if id == "" {
		return nil
	}
	for _, p := range e.Participants {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// ParticipantByEmail returns the participant registered under email, or nil
func (e *Event) ParticipantByEmail(email string) *Participant {
	for _, p := range e.Participants {
		if p.HasEmail(email) {
			return p
		}
	}
	return nil
}

// ParticipantByDiscordID returns the participant linked to a Discord user, or nil
func (e *Event) ParticipantByDiscordID(discordUserID string) *Participant {
	if discordUserID == "" {
		return nil
	}
	for _, p := range e.Participants {
		if p.DiscordUserID == discordUserID {
			return p
		}
	}
	return nil
}

// IsOrganizer reports whether either identity belongs to the organizer
func (e *Event) IsOrganizer(email, discordUserID string) bool {
	if normalized := NormalizeEmail(email); normalized != "" && normalized == NormalizeEmail(e.OrganizerEmail) {
		return true
	}
	return discordUserID != "" && discordUserID == e.OrganizerDiscordID
}

// ParticipantIDs returns participant ids in insertion order
func (e *Event) ParticipantIDs() []string {
	ids := make([]string, 0, len(e.Participants))
	for _, p := range e.Participants {
		ids = append(ids, p.ID)
	}
	return ids
}
