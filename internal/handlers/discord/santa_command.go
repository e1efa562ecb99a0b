package discord

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/KirkDiggler/secretsanta/internal/assignment"
	"github.com/KirkDiggler/secretsanta/internal/services/exchange"
	"github.com/KirkDiggler/secretsanta/internal/services/messaging"
	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// Subcommand and option names
const (
	subcommandReveal   = "reveal"
	subcommandDraw     = "draw"
	subcommandComplete = "complete"
	subcommandStatus   = "status"

	optionEventID = "event_id"
	optionRedraw  = "redraw"
)

// ButtonRevealPrefix starts the custom ID of the reveal button; the event ID follows
const ButtonRevealPrefix = "santa_reveal:"

// interactionTimeout keeps a slow store from outliving Discord's response window
const interactionTimeout = 2500 * time.Millisecond

// SantaCommand handles the /santa command
type SantaCommand struct {
	BaseCommand
	exchangeService  exchange.Service
	messagingService messaging.Service
	logger           *zap.Logger
}

// NewSantaCommand creates a new santa command handler
func NewSantaCommand(exchangeService exchange.Service, messagingService messaging.Service, logger *zap.Logger) *SantaCommand {
	if logger == nil {
		logger = zap.NewNop()
	}

	eventOption := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        optionEventID,
		Description: "The gift exchange ID",
		Required:    true,
	}

	return &SantaCommand{
		BaseCommand: BaseCommand{
			Name:        "santa",
			Description: "Secret Santa gift exchange",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        subcommandReveal,
					Description: "Privately see who you are buying a gift for",
					Options:     []*discordgo.ApplicationCommandOption{eventOption},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        subcommandDraw,
					Description: "Draw names for an exchange you organize",
					Options: []*discordgo.ApplicationCommandOption{
						eventOption,
						{
							Type:        discordgo.ApplicationCommandOptionBoolean,
							Name:        optionRedraw,
							Description: "Replace an existing draw",
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        subcommandComplete,
					Description: "End an exchange and show every pairing",
					Options:     []*discordgo.ApplicationCommandOption{eventOption},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        subcommandStatus,
					Description: "Show where an exchange stands",
					Options:     []*discordgo.ApplicationCommandOption{eventOption},
				},
			},
		},
		exchangeService:  exchangeService,
		messagingService: messagingService,
		logger:           logger,
	}
}

// Handle processes a Discord interaction for the santa command
func (c *SantaCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name || len(data.Options) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), interactionTimeout)
	defer cancel()

	response, err := c.Dispatch(ctx, interactionUserID(i), data.Options[0])
	if err != nil {
		return RespondWithError(s, i, c.userMessage(ctx, err))
	}
	return Respond(s, i, response)
}

// HandleRevealButton answers the reveal button posted with a draw
func (c *SantaCommand) HandleRevealButton(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	eventID := strings.TrimPrefix(i.MessageComponentData().CustomID, ButtonRevealPrefix)

	ctx, cancel := context.WithTimeout(context.Background(), interactionTimeout)
	defer cancel()

	response, err := c.Reveal(ctx, eventID, interactionUserID(i))
	if err != nil {
		return RespondWithError(s, i, c.userMessage(ctx, err))
	}
	return Respond(s, i, response)
}

// Dispatch runs a subcommand for a Discord user and builds the response
func (c *SantaCommand) Dispatch(ctx context.Context, userID string, sub *discordgo.ApplicationCommandInteractionDataOption) (*discordgo.InteractionResponseData, error) {
	options := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(sub.Options))
	for _, option := range sub.Options {
		options[option.Name] = option
	}

	var eventID string
	if option, ok := options[optionEventID]; ok {
		eventID = strings.TrimSpace(option.StringValue())
	}
	if eventID == "" {
		return nil, fmt.Errorf("%w: event_id is required", exchange.ErrInvalidInput)
	}

	switch sub.Name {
	case subcommandReveal:
		return c.Reveal(ctx, eventID, userID)
	case subcommandDraw:
		redraw := false
		if option, ok := options[optionRedraw]; ok {
			redraw = option.BoolValue()
		}
		return c.Draw(ctx, eventID, userID, redraw)
	case subcommandComplete:
		return c.Complete(ctx, eventID, userID)
	case subcommandStatus:
		return c.Status(ctx, eventID)
	default:
		return nil, fmt.Errorf("%w: unknown subcommand %s", exchange.ErrInvalidInput, sub.Name)
	}
}

// Reveal shows the caller their own assignment, privately
func (c *SantaCommand) Reveal(ctx context.Context, eventID, userID string) (*discordgo.InteractionResponseData, error) {
	output, err := c.exchangeService.GetVisibleAssignments(ctx, &exchange.GetVisibleAssignmentsInput{
		EventID: eventID,
		Viewer:  exchange.Actor{DiscordUserID: userID},
	})
	if err != nil {
		return nil, err
	}

	if output.FirstReveal {
		c.logger.Info("assignment revealed",
			zap.String("event_id", eventID),
			zap.String("participant_id", output.ViewerParticipantID))
	}

	var headline string
	if output.Scope == assignment.VisibilityOwn && len(output.Assignments) > 0 {
		message, err := c.messagingService.GetRevealMessage(ctx, &messaging.GetRevealMessageInput{
			ReceiverName: output.Assignments[0].ReceiverName,
			FirstReveal:  output.FirstReveal,
		})
		if err != nil {
			return nil, err
		}
		headline = message.Message
	}

	return renderReveal(output, headline), nil
}

// Draw runs the draw for an organizer and posts a reveal button to the channel
func (c *SantaCommand) Draw(ctx context.Context, eventID, userID string, redraw bool) (*discordgo.InteractionResponseData, error) {
	output, err := c.exchangeService.RunDraw(ctx, &exchange.RunDrawInput{
		EventID: eventID,
		Actor:   exchange.Actor{DiscordUserID: userID},
		Redraw:  redraw,
	})
	if err != nil {
		return nil, err
	}

	announcement, err := c.messagingService.GetDrawMessage(ctx, &messaging.GetDrawMessageInput{
		EventName:        output.Event.Name,
		ParticipantCount: len(output.Event.Participants),
		Redraw:           redraw,
	})
	if err != nil {
		return nil, err
	}

	return renderDraw(output, announcement), nil
}

// Complete ends the exchange for an organizer
func (c *SantaCommand) Complete(ctx context.Context, eventID, userID string) (*discordgo.InteractionResponseData, error) {
	output, err := c.exchangeService.CompleteEvent(ctx, &exchange.CompleteEventInput{
		EventID: eventID,
		Actor:   exchange.Actor{DiscordUserID: userID},
	})
	if err != nil {
		return nil, err
	}

	return renderStatus(output.Event, "The exchange is over! Use `/santa reveal` to see every pairing."), nil
}

// Status shows the event phase and roster without any pairing
func (c *SantaCommand) Status(ctx context.Context, eventID string) (*discordgo.InteractionResponseData, error) {
	output, err := c.exchangeService.GetEvent(ctx, &exchange.GetEventInput{
		EventID: eventID,
	})
	if err != nil {
		return nil, err
	}

	return renderStatus(output.Event, ""), nil
}

// userMessage turns service errors into something a Discord user can act on
func (c *SantaCommand) userMessage(ctx context.Context, err error) string {
	var errorType messaging.ErrorType
	switch {
	case errors.Is(err, exchange.ErrInvalidInput), errors.Is(err, assignment.ErrValidation):
		return err.Error()
	case errors.Is(err, exchange.ErrEventNotFound):
		errorType = messaging.ErrorTypeEventNotFound
	case errors.Is(err, exchange.ErrNotOrganizer):
		errorType = messaging.ErrorTypeNotOrganizer
	case errors.Is(err, exchange.ErrDrawAlreadyCompleted):
		errorType = messaging.ErrorTypeAlreadyDrawn
	case errors.Is(err, exchange.ErrInvalidPhase), errors.Is(err, exchange.ErrNotEnoughParticipants):
		errorType = messaging.ErrorTypeNotReady
	case errors.Is(err, exchange.ErrPhaseConflict):
		errorType = messaging.ErrorTypeConflict
	case errors.Is(err, assignment.ErrInfeasibleConstraints):
		errorType = messaging.ErrorTypeInfeasible
	default:
		c.logger.Error("santa command failed", zap.Error(err))
		errorType = messaging.ErrorTypeUnknown
	}

	output, msgErr := c.messagingService.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{
		ErrorType: errorType,
	})
	if msgErr != nil {
		return "Something went wrong. Please try again later."
	}
	return output.Message
}
