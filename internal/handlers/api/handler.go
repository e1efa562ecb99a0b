package api

import (
	"errors"
	"net/http"

	"github.com/KirkDiggler/secretsanta/internal/models"
	"github.com/KirkDiggler/secretsanta/internal/services/exchange"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHeader carries the caller's email. Authentication happens upstream.
const UserHeader = "X-User-Email"

const userEmailKey = "userEmail"

// Config holds configuration for the HTTP handler
type Config struct {
	Service exchange.Service
	Logger  *zap.Logger
}

// Handler serves the gift exchange over HTTP
type Handler struct {
	service exchange.Service
	logger  *zap.Logger
}

// New creates a new HTTP handler
func New(cfg *Config) (*Handler, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Service == nil {
		return nil, errors.New("exchange service cannot be nil")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Handler{
		service: cfg.Service,
		logger:  logger,
	}, nil
}

// RegisterRoutes registers all the application routes
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/healthz", h.Health)

	events := router.Group("/events", h.requireUser)
	{
		events.POST("", h.CreateEvent)
		events.GET("", h.ListEvents)
		events.GET("/:eventID", h.GetEvent)
		events.DELETE("/:eventID", h.DeleteEvent)

		events.POST("/:eventID/participants", h.AddParticipant)
		events.DELETE("/:eventID/participants/:participantID", h.RemoveParticipant)
		events.PUT("/:eventID/participants/:participantID/wishlist", h.UpdateWishlist)

		events.POST("/:eventID/exclusions", h.AddExclusion)
		events.DELETE("/:eventID/exclusions", h.RemoveExclusion)

		events.POST("/:eventID/activate", h.ActivateEvent)
		events.POST("/:eventID/reopen", h.ReopenEvent)
		events.POST("/:eventID/draw", h.RunDraw)
		events.POST("/:eventID/complete", h.CompleteEvent)

		events.GET("/:eventID/assignments", h.GetAssignments)
	}
}

// requireUser rejects requests without a caller identity
func (h *Handler) requireUser(c *gin.Context) {
	email := models.NormalizeEmail(c.GetHeader(UserHeader))
	if email == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: "missing " + UserHeader + " header"})
		return
	}
	c.Set(userEmailKey, email)
	c.Next()
}

func actor(c *gin.Context) exchange.Actor {
	return exchange.Actor{Email: c.GetString(userEmailKey)}
}

// fail writes an error response; unexpected errors are logged and hidden
func (h *Handler) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err))
		c.JSON(status, errorResponse{Error: "internal error"})
		return
	}
	c.JSON(status, errorResponse{Error: err.Error()})
}

func (h *Handler) badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
}

// Health reports that the process is serving
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// CreateEvent creates an event organized by the caller
func (h *Handler) CreateEvent(c *gin.Context) {
	var request createEventRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.badRequest(c, err)
		return
	}

	output, err := h.service.CreateEvent(c.Request.Context(), &exchange.CreateEventInput{
		Name:               request.Name,
		OrganizerEmail:     c.GetString(userEmailKey),
		OrganizerDiscordID: request.OrganizerDiscordID,
		EventDate:          request.EventDate,
		BudgetNote:         request.BudgetNote,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, toEventResponse(output.Event))
}

// ListEvents lists the events the caller organizes
func (h *Handler) ListEvents(c *gin.Context) {
	output, err := h.service.ListOrganizerEvents(c.Request.Context(), &exchange.ListOrganizerEventsInput{
		OrganizerEmail: c.GetString(userEmailKey),
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	events := make([]eventResponse, 0, len(output.Events))
	for _, event := range output.Events {
		events = append(events, toEventResponse(event))
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

// GetEvent returns an event
func (h *Handler) GetEvent(c *gin.Context) {
	output, err := h.service.GetEvent(c.Request.Context(), &exchange.GetEventInput{
		EventID: c.Param("eventID"),
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, toEventResponse(output.Event))
}

// DeleteEvent removes an event
func (h *Handler) DeleteEvent(c *gin.Context) {
	_, err := h.service.DeleteEvent(c.Request.Context(), &exchange.DeleteEventInput{
		EventID: c.Param("eventID"),
		Actor:   actor(c),
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// AddParticipant registers a participant
func (h *Handler) AddParticipant(c *gin.Context) {
	var request addParticipantRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.badRequest(c, err)
		return
	}

	output, err := h.service.AddParticipant(c.Request.Context(), &exchange.AddParticipantInput{
		EventID:       c.Param("eventID"),
		Actor:         actor(c),
		Name:          request.Name,
		Email:         request.Email,
		DiscordUserID: request.DiscordUserID,
		Wishlist:      request.Wishlist,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, toEventResponse(output.Event))
}

// RemoveParticipant removes a participant
func (h *Handler) RemoveParticipant(c *gin.Context) {
	output, err := h.service.RemoveParticipant(c.Request.Context(), &exchange.RemoveParticipantInput{
		EventID:       c.Param("eventID"),
		Actor:         actor(c),
		ParticipantID: c.Param("participantID"),
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, toEventResponse(output.Event))
}

// UpdateWishlist replaces a participant's wishlist
func (h *Handler) UpdateWishlist(c *gin.Context) {
	var request wishlistRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.badRequest(c, err)
		return
	}

	output, err := h.service.UpdateWishlist(c.Request.Context(), &exchange.UpdateWishlistInput{
		EventID:       c.Param("eventID"),
		Actor:         actor(c),
		ParticipantID: c.Param("participantID"),
		Wishlist:      request.Wishlist,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, participantResponse{
		ID:       output.Participant.ID,
		Name:     output.Participant.Name,
		Wishlist: output.Participant.Wishlist,
	})
}

// AddExclusion forbids a pair from drawing each other
func (h *Handler) AddExclusion(c *gin.Context) {
	var request exclusionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.badRequest(c, err)
		return
	}

	output, err := h.service.AddExclusion(c.Request.Context(), &exchange.AddExclusionInput{
		EventID: c.Param("eventID"),
		Actor:   actor(c),
		Pair:    models.ExclusionPair{A: request.A, B: request.B},
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, toEventResponse(output.Event))
}

// RemoveExclusion lifts an exclusion
func (h *Handler) RemoveExclusion(c *gin.Context) {
	var request exclusionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.badRequest(c, err)
		return
	}

	output, err := h.service.RemoveExclusion(c.Request.Context(), &exchange.RemoveExclusionInput{
		EventID: c.Param("eventID"),
		Actor:   actor(c),
		Pair:    models.ExclusionPair{A: request.A, B: request.B},
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, toEventResponse(output.Event))
}

// ActivateEvent opens an event for drawing
func (h *Handler) ActivateEvent(c *gin.Context) {
	output, err := h.service.ActivateEvent(c.Request.Context(), &exchange.ActivateEventInput{
		EventID: c.Param("eventID"),
		Actor:   actor(c),
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, toEventResponse(output.Event))
}

// ReopenEvent returns an event to draft
func (h *Handler) ReopenEvent(c *gin.Context) {
	output, err := h.service.ReopenEvent(c.Request.Context(), &exchange.ReopenEventInput{
		EventID: c.Param("eventID"),
		Actor:   actor(c),
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, toEventResponse(output.Event))
}

// RunDraw draws the event. The response never contains pairings.
func (h *Handler) RunDraw(c *gin.Context) {
	var request drawRequest
	// An empty body is a plain first draw
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&request); err != nil {
			h.badRequest(c, err)
			return
		}
	}

	output, err := h.service.RunDraw(c.Request.Context(), &exchange.RunDrawInput{
		EventID: c.Param("eventID"),
		Actor:   actor(c),
		Redraw:  request.Redraw,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, drawResponse{
		Event:    toEventResponse(output.Event),
		DrawID:   output.DrawID,
		Strategy: output.Strategy,
		Attempts: output.Attempts,
	})
}

// CompleteEvent completes an event
func (h *Handler) CompleteEvent(c *gin.Context) {
	output, err := h.service.CompleteEvent(c.Request.Context(), &exchange.CompleteEventInput{
		EventID: c.Param("eventID"),
		Actor:   actor(c),
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, toEventResponse(output.Event))
}

// GetAssignments returns the assignments visible to the caller
func (h *Handler) GetAssignments(c *gin.Context) {
	output, err := h.service.GetVisibleAssignments(c.Request.Context(), &exchange.GetVisibleAssignmentsInput{
		EventID: c.Param("eventID"),
		Viewer:  actor(c),
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, toAssignmentsResponse(output))
}
