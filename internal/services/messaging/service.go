package messaging

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/KirkDiggler/secretsanta/internal/random"
)

// service implements the Service interface
type service struct {
	mu     sync.Mutex
	random *random.Source
}

// NewService creates a new messaging service
func NewService(cfg *Config) (Service, error) {
	source := random.New(nil)
	if cfg != nil && cfg.Random != nil {
		source = cfg.Random
	}

	return &service{
		random: source,
	}, nil
}

// GetRevealMessage returns the line shown above a giver's receiver
func (s *service) GetRevealMessage(ctx context.Context, input *GetRevealMessageInput) (*GetRevealMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	if input.ReceiverName == "" {
		return nil, errors.New("receiver name cannot be empty")
	}

	tone := input.PreferredTone
	if tone == "" {
		tone = ToneFestive
	}

	var messages []string
	switch {
	case tone == ToneNeutral:
		messages = []string{
			"You are buying a gift for **%s**.",
		}
	case input.FirstReveal:
		messages = []string{
			"Drumroll please... you are buying a gift for **%s**! 🥁",
			"The hat has spoken: your giftee is **%s**! 🎩",
			"Ho ho ho! This year you are Santa for **%s**. 🎅",
			"Guess who got you? Just kidding, *you* got **%s**! 🎁",
		}
	default:
		messages = []string{
			"Still **%s**! No swaps, we checked. 😉",
			"Reminder: you are buying a gift for **%s**.",
			"Forgot already? It's **%s**. Your secret is safe with me. 🤫",
		}
	}

	return &GetRevealMessageOutput{
		Message: fmt.Sprintf(s.pick(messages), input.ReceiverName),
		Tone:    tone,
	}, nil
}

// GetDrawMessage returns the channel announcement for a finished draw
func (s *service) GetDrawMessage(ctx context.Context, input *GetDrawMessageInput) (*GetDrawMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	title := fmt.Sprintf("🎄 Names drawn for %s", input.EventName)
	messages := []string{
		"%d names went into the hat and every one came out with a giftee. Click below to see yours!",
		"The elves have finished sorting %d participants. Click below to find out who you are shopping for!",
		"All %d of you now have someone to spoil. Click below to peek, and keep it to yourself!",
	}
	if input.Redraw {
		title = fmt.Sprintf("🔄 Names redrawn for %s", input.EventName)
		messages = []string{
			"Fresh start! The hat was shaken again for all %d participants. Your old giftee no longer counts, click below to see the new one.",
			"Names have been redrawn for %d participants. Click below to see who you have now!",
		}
	}

	return &GetDrawMessageOutput{
		Title:   title,
		Message: fmt.Sprintf(s.pick(messages), input.ParticipantCount),
	}, nil
}

// GetErrorMessage returns a user-friendly error message
func (s *service) GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	tone := input.PreferredTone
	if tone == "" {
		tone = ToneFestive
	}

	var messages []string
	switch input.ErrorType {
	case ErrorTypeEventNotFound:
		messages = []string{
			"I couldn't find that exchange. Check the event ID.",
			"That exchange isn't on my list, naughty or nice. Check the event ID.",
		}
	case ErrorTypeNotOrganizer:
		messages = []string{
			"Only the organizer can do that.",
			"Nice try, but only the head elf (the organizer) can do that.",
		}
	case ErrorTypeAlreadyDrawn:
		messages = []string{
			"Names have already been drawn for this exchange. Use `redraw: True` to draw again.",
			"The hat is already empty! Use `redraw: True` if you really want to draw again.",
		}
	case ErrorTypeNotReady:
		messages = []string{
			"The exchange isn't ready for that yet.",
			"Not so fast! The exchange isn't at that stage yet.",
		}
	case ErrorTypeConflict:
		messages = []string{
			"The exchange changed while I was working on it. Please try again.",
			"Someone else was busy in the workshop at the same time. Please try again.",
		}
	case ErrorTypeInfeasible:
		messages = []string{
			"The exclusions rule out every possible draw. Remove an exclusion or add participants.",
		}
	default:
		messages = []string{
			"Something went wrong. Please try again later.",
			"The sleigh hit a snag. Please try again later.",
		}
	}

	// Neutral always uses the plain first variant
	message := messages[0]
	if tone != ToneNeutral {
		message = s.pick(messages)
	}

	return &GetErrorMessageOutput{
		Message: message,
		Tone:    tone,
	}, nil
}

func (s *service) pick(messages []string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return messages[s.random.Intn(len(messages))]
}
