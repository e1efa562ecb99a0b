package discord

import (
	"fmt"
	"strings"
	"time"

	"github.com/KirkDiggler/secretsanta/internal/assignment"
	"github.com/KirkDiggler/secretsanta/internal/models"
	"github.com/KirkDiggler/secretsanta/internal/services/exchange"
	"github.com/KirkDiggler/secretsanta/internal/services/messaging"
	"github.com/bwmarrin/discordgo"
)

// Discord rejects embed field values longer than this
const maxFieldLength = 1024

// renderReveal builds the private answer to a reveal request.
// headline introduces the giver's own receiver.
func renderReveal(output *exchange.GetVisibleAssignmentsOutput, headline string) *discordgo.InteractionResponseData {
	embed := &discordgo.MessageEmbed{
		Title: "🎁 Secret Santa",
		Color: colorFestive,
	}

	switch output.Scope {
	case assignment.VisibilityOwn:
		if len(output.Assignments) == 0 {
			embed.Description = "You are not part of this draw."
			break
		}
		own := output.Assignments[0]
		embed.Description = headline
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Wishlist",
			Value: renderWishlist(own.ReceiverWishlist),
		})
		embed.Footer = &discordgo.MessageEmbedFooter{Text: "Keep it secret!"}
	case assignment.VisibilityAll:
		lines := make([]string, 0, len(output.Assignments))
		for _, a := range output.Assignments {
			lines = append(lines, fmt.Sprintf("%s ➜ %s", a.GiverName, a.ReceiverName))
		}
		embed.Description = "Every pairing of this exchange:"
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Pairings",
			Value: truncateField(strings.Join(lines, "\n")),
		})
	default:
		embed.Description = revealUnavailable(output.Phase)
	}

	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{embed},
		Flags:  discordgo.MessageFlagsEphemeral,
	}
}

func revealUnavailable(phase models.EventPhase) string {
	switch phase {
	case models.EventPhaseDraft, models.EventPhaseActive:
		return "Names haven't been drawn yet. Check back after the draw."
	default:
		return "There is nothing for you to see in this exchange."
	}
}

// renderDraw announces a draw in the channel. Pairings stay private behind the reveal button.
func renderDraw(output *exchange.RunDrawOutput, announcement *messaging.GetDrawMessageOutput) *discordgo.InteractionResponseData {
	event := output.Event

	embed := &discordgo.MessageEmbed{
		Title:       announcement.Title,
		Description: announcement.Message,
		Color:       colorFestive,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Participants", Value: fmt.Sprintf("%d", len(event.Participants)), Inline: true},
		},
	}
	if event.EventDate != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Exchange date",
			Value:  event.EventDate.Format(time.DateOnly),
			Inline: true,
		})
	}
	if event.BudgetNote != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Budget",
			Value:  event.BudgetNote,
			Inline: true,
		})
	}

	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    "Reveal my person",
						Style:    discordgo.SuccessButton,
						CustomID: ButtonRevealPrefix + event.ID,
						Emoji: &discordgo.ComponentEmoji{
							Name: "🎁",
						},
					},
				},
			},
		},
	}
}

// renderStatus shows the public state of an event
func renderStatus(event *models.Event, note string) *discordgo.InteractionResponseData {
	names := make([]string, 0, len(event.Participants))
	for _, p := range event.Participants {
		names = append(names, p.Name)
	}
	roster := "No participants yet"
	if len(names) > 0 {
		roster = truncateField(strings.Join(names, ", "))
	}

	embed := &discordgo.MessageEmbed{
		Title:       event.Name,
		Description: note,
		Color:       colorFestive,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Status", Value: phaseLabel(event.Phase), Inline: true},
			{Name: "Participants", Value: roster},
		},
	}
	if event.EventDate != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Exchange date",
			Value:  event.EventDate.Format(time.DateOnly),
			Inline: true,
		})
	}

	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{embed},
	}
}

func phaseLabel(phase models.EventPhase) string {
	switch phase {
	case models.EventPhaseDraft:
		return "📝 Setting up"
	case models.EventPhaseActive:
		return "✅ Ready to draw"
	case models.EventPhaseDrawn:
		return "🎁 Names drawn"
	case models.EventPhaseCompleted:
		return "🎉 Completed"
	default:
		return string(phase)
	}
}

func renderWishlist(wishlist []string) string {
	if len(wishlist) == 0 {
		return "No wishes yet, surprise them!"
	}
	lines := make([]string, 0, len(wishlist))
	for _, wish := range wishlist {
		lines = append(lines, "• "+wish)
	}
	return truncateField(strings.Join(lines, "\n"))
}

func truncateField(value string) string {
	runes := []rune(value)
	if len(runes) <= maxFieldLength {
		return value
	}
	return string(runes[:maxFieldLength-1]) + "…"
}
