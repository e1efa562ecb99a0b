package api

import (
	"time"

	"github.com/KirkDiggler/secretsanta/internal/models"
	"github.com/KirkDiggler/secretsanta/internal/services/exchange"
)

type createEventRequest struct {
	Name               string     `json:"name" binding:"required"`
	OrganizerDiscordID string     `json:"organizerDiscordId"`
	EventDate          *time.Time `json:"eventDate"`
	BudgetNote         string     `json:"budgetNote"`
}

type addParticipantRequest struct {
	Name          string   `json:"name" binding:"required"`
	Email         string   `json:"email"`
	DiscordUserID string   `json:"discordUserId"`
	Wishlist      []string `json:"wishlist"`
}

type wishlistRequest struct {
	Wishlist []string `json:"wishlist"`
}

type exclusionRequest struct {
	A string `json:"a" binding:"required"`
	B string `json:"b" binding:"required"`
}

// drawRequest has no seed; a seed sent by the caller is dropped
type drawRequest struct {
	Redraw bool `json:"redraw"`
}

type participantResponse struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Wishlist []string `json:"wishlist"`
}

type exclusionResponse struct {
	A string `json:"a"`
	B string `json:"b"`
}

type eventResponse struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	Phase        models.EventPhase     `json:"phase"`
	EventDate    *time.Time            `json:"eventDate,omitempty"`
	BudgetNote   string                `json:"budgetNote,omitempty"`
	Participants []participantResponse `json:"participants"`
	Exclusions   []exclusionResponse   `json:"exclusions"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
	DrawnAt      *time.Time            `json:"drawnAt,omitempty"`
	CompletedAt  *time.Time            `json:"completedAt,omitempty"`
}

type drawResponse struct {
	Event    eventResponse       `json:"event"`
	DrawID   string              `json:"drawId"`
	Strategy models.DrawStrategy `json:"strategy"`
	Attempts int                 `json:"attempts"`
}

type assignmentResponse struct {
	GiverID          string     `json:"giverId"`
	GiverName        string     `json:"giverName"`
	ReceiverID       string     `json:"receiverId"`
	ReceiverName     string     `json:"receiverName"`
	ReceiverWishlist []string   `json:"receiverWishlist"`
	RevealedAt       *time.Time `json:"revealedAt,omitempty"`
}

type assignmentsResponse struct {
	EventID     string               `json:"eventId"`
	Phase       models.EventPhase    `json:"phase"`
	Scope       string               `json:"scope"`
	FirstReveal bool                 `json:"firstReveal"`
	Assignments []assignmentResponse `json:"assignments"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toEventResponse(event *models.Event) eventResponse {
	response := eventResponse{
		ID:           event.ID,
		Name:         event.Name,
		Phase:        event.Phase,
		EventDate:    event.EventDate,
		BudgetNote:   event.BudgetNote,
		Participants: make([]participantResponse, 0, len(event.Participants)),
		Exclusions:   make([]exclusionResponse, 0, len(event.Exclusions)),
		CreatedAt:    event.CreatedAt,
		UpdatedAt:    event.UpdatedAt,
		DrawnAt:      event.DrawnAt,
		CompletedAt:  event.CompletedAt,
	}
	for _, p := range event.Participants {
		wishlist := p.Wishlist
		if wishlist == nil {
			wishlist = []string{}
		}
		response.Participants = append(response.Participants, participantResponse{
			ID:       p.ID,
			Name:     p.Name,
			Wishlist: wishlist,
		})
	}
	for _, pair := range event.Exclusions {
		response.Exclusions = append(response.Exclusions, exclusionResponse{A: pair.A, B: pair.B})
	}
	return response
}

func toAssignmentsResponse(output *exchange.GetVisibleAssignmentsOutput) assignmentsResponse {
	response := assignmentsResponse{
		EventID:     output.EventID,
		Phase:       output.Phase,
		Scope:       string(output.Scope),
		FirstReveal: output.FirstReveal,
		Assignments: make([]assignmentResponse, 0, len(output.Assignments)),
	}
	for _, a := range output.Assignments {
		wishlist := a.ReceiverWishlist
		if wishlist == nil {
			wishlist = []string{}
		}
		response.Assignments = append(response.Assignments, assignmentResponse{
			GiverID:          a.GiverID,
			GiverName:        a.GiverName,
			ReceiverID:       a.ReceiverID,
			ReceiverName:     a.ReceiverName,
			ReceiverWishlist: wishlist,
			RevealedAt:       a.RevealedAt,
		})
	}
	return response
}
