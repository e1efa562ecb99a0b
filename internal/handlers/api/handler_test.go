package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/KirkDiggler/secretsanta/internal/assignment"
	"github.com/KirkDiggler/secretsanta/internal/models"
	"github.com/KirkDiggler/secretsanta/internal/services/exchange"
	"github.com/KirkDiggler/secretsanta/internal/services/exchange/mocks"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type HandlerTestSuite struct {
	suite.Suite
	mockCtrl    *gomock.Controller
	mockService *mocks.MockService
	router      *gin.Engine

	testTime  time.Time
	testEvent *models.Event
	organizer exchange.Actor
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.mockCtrl = gomock.NewController(s.T())
	s.mockService = mocks.NewMockService(s.mockCtrl)

	handler, err := New(&Config{Service: s.mockService})
	s.Require().NoError(err)

	s.router = gin.New()
	handler.RegisterRoutes(s.router)

	s.testTime = time.Date(2025, 12, 1, 9, 30, 0, 0, time.UTC)
	s.organizer = exchange.Actor{Email: "organizer@example.com"}
	s.testEvent = &models.Event{
		ID:             "event-1",
		Name:           "Office Secret Santa",
		OrganizerEmail: "organizer@example.com",
		Phase:          models.EventPhaseActive,
		Participants: []*models.Participant{
			{ID: "p1", Name: "Alice", Email: "alice@example.com"},
			{ID: "p2", Name: "Bob", Email: "bob@example.com", Wishlist: []string{"tea"}},
		},
		CreatedAt: s.testTime,
		UpdatedAt: s.testTime,
	}
}

func (s *HandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *HandlerTestSuite) do(method, path, email string, body any) *httptest.ResponseRecorder {
	var payload bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&payload).Encode(body))
	}

	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set("Content-Type", "application/json")
	if email != "" {
		req.Header.Set(UserHeader, email)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerTestSuite) TestHealth() {
	rec := s.do(http.MethodGet, "/healthz", "", nil)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *HandlerTestSuite) TestMissingUser() {
	rec := s.do(http.MethodGet, "/events/event-1", "", nil)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *HandlerTestSuite) TestCreateEvent() {
	s.mockService.EXPECT().
		CreateEvent(gomock.Any(), &exchange.CreateEventInput{
			Name:           "Office Secret Santa",
			OrganizerEmail: "organizer@example.com",
			BudgetNote:     "20 EUR",
		}).
		Return(&exchange.CreateEventOutput{Event: s.testEvent}, nil)

	rec := s.do(http.MethodPost, "/events", "Organizer@Example.com", map[string]any{
		"name":       "Office Secret Santa",
		"budgetNote": "20 EUR",
	})
	s.Require().Equal(http.StatusCreated, rec.Code)

	var response eventResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("event-1", response.ID)
	s.Len(response.Participants, 2)
	s.Equal([]string{}, response.Participants[0].Wishlist)
	s.NotContains(rec.Body.String(), "alice@example.com")
}

func (s *HandlerTestSuite) TestCreateEvent_MissingName() {
	rec := s.do(http.MethodPost, "/events", "organizer@example.com", map[string]any{})
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerTestSuite) TestAddExclusion() {
	s.mockService.EXPECT().
		AddExclusion(gomock.Any(), &exchange.AddExclusionInput{
			EventID: "event-1",
			Actor:   s.organizer,
			Pair:    models.ExclusionPair{A: "p2", B: "p1"},
		}).
		Return(&exchange.AddExclusionOutput{Event: s.testEvent}, nil)

	rec := s.do(http.MethodPost, "/events/event-1/exclusions", "organizer@example.com", map[string]string{"a": "p2", "b": "p1"})
	s.Equal(http.StatusOK, rec.Code)
}

func (s *HandlerTestSuite) TestRunDraw() {
	drawn := *s.testEvent
	drawn.Phase = models.EventPhaseDrawn

	s.mockService.EXPECT().
		RunDraw(gomock.Any(), &exchange.RunDrawInput{
			EventID: "event-1",
			Actor:   s.organizer,
			Redraw:  true,
		}).
		Return(&exchange.RunDrawOutput{
			Event:    &drawn,
			DrawID:   "draw-1",
			Strategy: models.DrawStrategyRandom,
			Attempts: 2,
		}, nil)

	rec := s.do(http.MethodPost, "/events/event-1/draw", "organizer@example.com", map[string]any{"redraw": true})
	s.Require().Equal(http.StatusOK, rec.Code)

	var response drawResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("draw-1", response.DrawID)
	s.Equal(models.EventPhaseDrawn, response.Event.Phase)
	s.NotContains(rec.Body.String(), "receiver")
	s.NotContains(rec.Body.String(), "seed")
}

func (s *HandlerTestSuite) TestRunDraw_CallerSeedIsDropped() {
	drawn := *s.testEvent
	drawn.Phase = models.EventPhaseDrawn

	// A seed in the body must never reach the service
	s.mockService.EXPECT().
		RunDraw(gomock.Any(), &exchange.RunDrawInput{
			EventID: "event-1",
			Actor:   s.organizer,
		}).
		Return(&exchange.RunDrawOutput{
			Event:    &drawn,
			DrawID:   "draw-1",
			Strategy: models.DrawStrategyRandom,
			Attempts: 1,
		}, nil)

	rec := s.do(http.MethodPost, "/events/event-1/draw", "organizer@example.com", map[string]any{"seed": 7})
	s.Require().Equal(http.StatusOK, rec.Code)

	var body map[string]any
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.NotContains(body, "seed")
	s.ElementsMatch([]string{"event", "drawId", "strategy", "attempts"}, keys(body))
}

func keys(body map[string]any) []string {
	out := make([]string, 0, len(body))
	for k := range body {
		out = append(out, k)
	}
	return out
}

func (s *HandlerTestSuite) TestRunDraw_EmptyBody() {
	s.mockService.EXPECT().
		RunDraw(gomock.Any(), &exchange.RunDrawInput{EventID: "event-1", Actor: s.organizer}).
		Return(nil, exchange.ErrDrawAlreadyCompleted)

	rec := s.do(http.MethodPost, "/events/event-1/draw", "organizer@example.com", nil)
	s.Equal(http.StatusConflict, rec.Code)
}

func (s *HandlerTestSuite) TestGetAssignments() {
	revealedAt := s.testTime
	s.mockService.EXPECT().
		GetVisibleAssignments(gomock.Any(), &exchange.GetVisibleAssignmentsInput{
			EventID: "event-1",
			Viewer:  exchange.Actor{Email: "alice@example.com"},
		}).
		Return(&exchange.GetVisibleAssignmentsOutput{
			EventID:     "event-1",
			Phase:       models.EventPhaseDrawn,
			Scope:       assignment.VisibilityOwn,
			FirstReveal: true,
			Assignments: []*exchange.VisibleAssignment{
				{GiverID: "p1", GiverName: "Alice", ReceiverID: "p2", ReceiverName: "Bob", ReceiverWishlist: []string{"tea"}, RevealedAt: &revealedAt},
			},
		}, nil)

	rec := s.do(http.MethodGet, "/events/event-1/assignments", "alice@example.com", nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var response assignmentsResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("own", response.Scope)
	s.True(response.FirstReveal)
	s.Require().Len(response.Assignments, 1)
	s.Equal("Bob", response.Assignments[0].ReceiverName)
}

func (s *HandlerTestSuite) TestGetAssignments_EmptyIsArray() {
	s.mockService.EXPECT().
		GetVisibleAssignments(gomock.Any(), gomock.Any()).
		Return(&exchange.GetVisibleAssignmentsOutput{
			EventID:     "event-1",
			Phase:       models.EventPhaseDrawn,
			Scope:       assignment.VisibilityNone,
			Assignments: []*exchange.VisibleAssignment{},
		}, nil)

	rec := s.do(http.MethodGet, "/events/event-1/assignments", "organizer@example.com", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"assignments":[]`)
}

func (s *HandlerTestSuite) TestDeleteEvent() {
	s.mockService.EXPECT().
		DeleteEvent(gomock.Any(), &exchange.DeleteEventInput{EventID: "event-1", Actor: s.organizer}).
		Return(&exchange.DeleteEventOutput{Success: true}, nil)

	rec := s.do(http.MethodDelete, "/events/event-1", "organizer@example.com", nil)
	s.Equal(http.StatusNoContent, rec.Code)
}

func (s *HandlerTestSuite) TestServiceErrorStatus() {
	s.mockService.EXPECT().
		CompleteEvent(gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("%w: event is active", exchange.ErrInvalidPhase))

	rec := s.do(http.MethodPost, "/events/event-1/complete", "organizer@example.com", nil)
	s.Equal(http.StatusConflict, rec.Code)
	s.Contains(rec.Body.String(), "event is active")
}

func (s *HandlerTestSuite) TestInternalErrorIsHidden() {
	s.mockService.EXPECT().
		GetEvent(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("redis: connection refused"))

	rec := s.do(http.MethodGet, "/events/event-1", "organizer@example.com", nil)
	s.Equal(http.StatusInternalServerError, rec.Code)
	s.NotContains(rec.Body.String(), "redis")
}

func TestStatusFor(t *testing.T) {
	testCases := []struct {
		err  error
		want int
	}{
		{err: exchange.ErrInvalidInput, want: http.StatusBadRequest},
		{err: fmt.Errorf("%w: self pair", assignment.ErrValidation), want: http.StatusBadRequest},
		{err: exchange.ErrNotOrganizer, want: http.StatusForbidden},
		{err: exchange.ErrNotAllowed, want: http.StatusForbidden},
		{err: exchange.ErrEventNotFound, want: http.StatusNotFound},
		{err: exchange.ErrParticipantNotFound, want: http.StatusNotFound},
		{err: exchange.ErrDrawAlreadyCompleted, want: http.StatusConflict},
		{err: exchange.ErrPhaseConflict, want: http.StatusConflict},
		{err: exchange.ErrDuplicateParticipant, want: http.StatusConflict},
		{err: exchange.ErrNotEnoughParticipants, want: http.StatusConflict},
		{err: fmt.Errorf("%w: nope", assignment.ErrInfeasibleConstraints), want: http.StatusUnprocessableEntity},
		{err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			assert.Equal(t, tc.want, statusFor(tc.err))
		})
	}
}
