package models

import "strings"

// Participant represents a person taking part in a gift exchange.
// Identity is by ID; two participants may share a name.
type Participant struct {
	// ID is the stable identifier of the participant within the event
	ID string

	// Name is the display name of the participant
	Name string

	// Email is optional and is how the web surface recognizes the participant
	Email string

	// DiscordUserID is optional and is how the Discord surface recognizes the participant
	DiscordUserID string

	// Wishlist holds gift ideas in the participant's preferred order
	Wishlist []string
}

// NormalizeEmail lower-cases and trims an email so lookups are stable
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// HasEmail reports whether the participant is reachable at email
func (p *Participant) HasEmail(email string) bool {
	normalized := NormalizeEmail(email)
	return normalized != "" && NormalizeEmail(p.Email) == normalized
}
