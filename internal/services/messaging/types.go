package messaging

import "github.com/KirkDiggler/secretsanta/internal/random"

// MessageTone represents the tone of a message
type MessageTone string

const (
	// ToneNeutral is a neutral tone
	ToneNeutral MessageTone = "neutral"

	// ToneFestive is a cheerful holiday tone
	ToneFestive MessageTone = "festive"
)

// ErrorType names the failure a message explains
type ErrorType string

const (
	ErrorTypeEventNotFound ErrorType = "event_not_found"
	ErrorTypeNotOrganizer  ErrorType = "not_organizer"
	ErrorTypeAlreadyDrawn  ErrorType = "already_drawn"
	ErrorTypeNotReady      ErrorType = "not_ready"
	ErrorTypeConflict      ErrorType = "conflict"
	ErrorTypeInfeasible    ErrorType = "infeasible"
	ErrorTypeUnknown       ErrorType = "unknown"
)

// Config holds configuration for the messaging service
type Config struct {
	// Random picks among message variants; nil seeds from the clock
	Random *random.Source
}

// GetRevealMessageInput contains parameters for a reveal message
type GetRevealMessageInput struct {
	// ReceiverName is who the giver buys for
	ReceiverName string

	// FirstReveal is true the first time the giver sees their receiver
	FirstReveal bool

	// PreferredTone is optional; empty means festive
	PreferredTone MessageTone
}

// GetRevealMessageOutput contains the reveal message
type GetRevealMessageOutput struct {
	Message string
	Tone    MessageTone
}

// GetDrawMessageInput contains parameters for a draw announcement
type GetDrawMessageInput struct {
	EventName        string
	ParticipantCount int

	// Redraw announces a replacement draw
	Redraw bool
}

// GetDrawMessageOutput contains the draw announcement
type GetDrawMessageOutput struct {
	Title   string
	Message string
}

// GetErrorMessageInput contains parameters for an error message
type GetErrorMessageInput struct {
	ErrorType     ErrorType
	PreferredTone MessageTone
}

// GetErrorMessageOutput contains the error message
type GetErrorMessageOutput struct {
	Message string
	Tone    MessageTone
}
