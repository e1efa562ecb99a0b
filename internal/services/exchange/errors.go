package exchange

// ExchangeError is a custom error type for gift exchange errors
type ExchangeError string

// Error implements the error interface
func (e ExchangeError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrEventNotFound         ExchangeError = "event not found"
	ErrNotOrganizer          ExchangeError = "only the organizer can do that"
	ErrNotAllowed            ExchangeError = "viewer may not change this participant"
	ErrInvalidPhase          ExchangeError = "event is not in a phase that allows this"
	ErrParticipantNotFound   ExchangeError = "participant not found"
	ErrDuplicateParticipant  ExchangeError = "participant already registered"
	ErrNotEnoughParticipants ExchangeError = "at least two participants are needed"
	ErrDrawAlreadyCompleted  ExchangeError = "assignments have already been drawn for this event"
	ErrPhaseConflict         ExchangeError = "event changed concurrently, try again"
	ErrInvalidInput          ExchangeError = "invalid input"
	ErrNilConfig             ExchangeError = "config cannot be nil"
	ErrNilEventRepo          ExchangeError = "event repository cannot be nil"
	ErrNilAssignmentRepo     ExchangeError = "assignment repository cannot be nil"
	ErrNilClock              ExchangeError = "clock cannot be nil"
	ErrNilUUIDGenerator      ExchangeError = "UUID generator cannot be nil"
	ErrNilShortIDGenerator   ExchangeError = "short ID generator cannot be nil"
)
