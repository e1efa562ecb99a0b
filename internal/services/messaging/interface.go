package messaging

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/secretsanta/internal/services/messaging Service

// Service is the interface for the messaging service
type Service interface {
	// GetRevealMessage returns the line shown above a giver's receiver
	GetRevealMessage(ctx context.Context, input *GetRevealMessageInput) (*GetRevealMessageOutput, error)

	// GetDrawMessage returns the channel announcement for a finished draw
	GetDrawMessage(ctx context.Context, input *GetDrawMessageInput) (*GetDrawMessageOutput, error)

	// GetErrorMessage returns a user-friendly error message
	GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error)
}
