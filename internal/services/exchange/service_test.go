package exchange

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/KirkDiggler/secretsanta/internal/assignment"
	clockMocks "github.com/KirkDiggler/secretsanta/internal/common/clock/mocks"
	shortidMocks "github.com/KirkDiggler/secretsanta/internal/common/shortid/mocks"
	uuidMocks "github.com/KirkDiggler/secretsanta/internal/common/uuid/mocks"
	"github.com/KirkDiggler/secretsanta/internal/models"
	assignmentRepo "github.com/KirkDiggler/secretsanta/internal/repositories/assignment"
	assignmentMocks "github.com/KirkDiggler/secretsanta/internal/repositories/assignment/mocks"
	eventRepo "github.com/KirkDiggler/secretsanta/internal/repositories/event"
	eventMocks "github.com/KirkDiggler/secretsanta/internal/repositories/event/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ExchangeServiceTestSuite struct {
	suite.Suite
	mockCtrl           *gomock.Controller
	mockEventRepo      *eventMocks.MockRepository
	mockAssignmentRepo *assignmentMocks.MockRepository
	mockClock          *clockMocks.MockClock
	mockUUID           *uuidMocks.MockGenerator
	mockShortID        *shortidMocks.MockGenerator
	service            Service
	ctx                context.Context

	// Test data
	testTime      time.Time
	testEventID   string
	testOrganizer Actor
	testSeed      int64

	// Reusable test fixtures
	draftEvent  *models.Event
	activeEvent *models.Event
	drawnEvent  *models.Event
}

func (s *ExchangeServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockEventRepo = eventMocks.NewMockRepository(s.mockCtrl)
	s.mockAssignmentRepo = assignmentMocks.NewMockRepository(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockGenerator(s.mockCtrl)
	s.mockShortID = shortidMocks.NewMockGenerator(s.mockCtrl)

	s.ctx = context.Background()

	// Initialize test data
	s.testTime = time.Date(2025, 12, 1, 9, 30, 0, 0, time.UTC)
	s.testEventID = "test-event-id"
	s.testOrganizer = Actor{Email: "organizer@example.com"}
	s.testSeed = 42

	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()

	s.draftEvent = s.newEvent(models.EventPhaseDraft)
	s.activeEvent = s.newEvent(models.EventPhaseActive)
	s.drawnEvent = s.newEvent(models.EventPhaseDrawn)

	svc, err := New(&Config{
		EventRepo:        s.mockEventRepo,
		AssignmentRepo:   s.mockAssignmentRepo,
		Clock:            s.mockClock,
		UUIDGenerator:    s.mockUUID,
		ShortIDGenerator: s.mockShortID,
	})
	s.Require().NoError(err)
	s.service = svc
}

func (s *ExchangeServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestExchangeServiceSuite(t *testing.T) {
	suite.Run(t, new(ExchangeServiceTestSuite))
}

func (s *ExchangeServiceTestSuite) newEvent(phase models.EventPhase) *models.Event {
	return &models.Event{
		ID:             s.testEventID,
		Name:           "Office Secret Santa",
		OrganizerEmail: "organizer@example.com",
		Phase:          phase,
		Participants: []*models.Participant{
			{ID: "p1", Name: "Alice", Email: "alice@example.com", Wishlist: []string{"tea"}},
			{ID: "p2", Name: "Bob", Email: "bob@example.com"},
			{ID: "p3", Name: "Charlie", Email: "charlie@example.com", DiscordUserID: "discord-charlie"},
			{ID: "p4", Name: "Diana", Email: "diana@example.com", Wishlist: []string{"books", "plants"}},
		},
		Exclusions: []models.ExclusionPair{{A: "p1", B: "p2"}},
		CreatedAt:  s.testTime.Add(-48 * time.Hour),
		UpdatedAt:  s.testTime.Add(-48 * time.Hour),
	}
}

func cloneEvent(event *models.Event) *models.Event {
	clone := *event
	clone.Participants = make([]*models.Participant, len(event.Participants))
	for i, p := range event.Participants {
		participant := *p
		participant.Wishlist = append([]string(nil), p.Wishlist...)
		clone.Participants[i] = &participant
	}
	clone.Exclusions = append([]models.ExclusionPair(nil), event.Exclusions...)
	return &clone
}

func (s *ExchangeServiceTestSuite) expectGet(event *models.Event) {
	s.mockEventRepo.EXPECT().
		GetEvent(s.ctx, &eventRepo.GetEventInput{EventID: event.ID}).
		Return(cloneEvent(event), nil)
}

// expectUpdate runs the service's mutation against a copy of stored
func (s *ExchangeServiceTestSuite) expectUpdate(stored *models.Event) {
	s.mockEventRepo.EXPECT().
		UpdateEvent(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *eventRepo.UpdateEventInput) (*models.Event, error) {
			s.Equal(stored.ID, input.EventID)
			event := cloneEvent(stored)
			if err := input.Mutate(event); err != nil {
				return nil, err
			}
			return event, nil
		})
}

func (s *ExchangeServiceTestSuite) TestNew_RequiresDependencies() {
	full := Config{
		EventRepo:        s.mockEventRepo,
		AssignmentRepo:   s.mockAssignmentRepo,
		Clock:            s.mockClock,
		UUIDGenerator:    s.mockUUID,
		ShortIDGenerator: s.mockShortID,
	}

	testCases := []struct {
		name    string
		mutate  func(cfg *Config) *Config
		wantErr error
	}{
		{name: "nil config", mutate: func(*Config) *Config { return nil }, wantErr: ErrNilConfig},
		{name: "event repo", mutate: func(cfg *Config) *Config { cfg.EventRepo = nil; return cfg }, wantErr: ErrNilEventRepo},
		{name: "assignment repo", mutate: func(cfg *Config) *Config { cfg.AssignmentRepo = nil; return cfg }, wantErr: ErrNilAssignmentRepo},
		{name: "clock", mutate: func(cfg *Config) *Config { cfg.Clock = nil; return cfg }, wantErr: ErrNilClock},
		{name: "uuid", mutate: func(cfg *Config) *Config { cfg.UUIDGenerator = nil; return cfg }, wantErr: ErrNilUUIDGenerator},
		{name: "short id", mutate: func(cfg *Config) *Config { cfg.ShortIDGenerator = nil; return cfg }, wantErr: ErrNilShortIDGenerator},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			cfg := full
			_, err := New(tc.mutate(&cfg))
			s.Equal(tc.wantErr, err)
		})
	}
}

func (s *ExchangeServiceTestSuite) TestCreateEvent() {
	eventDate := s.testTime.Add(7 * 24 * time.Hour)
	s.mockUUID.EXPECT().NewUUID().Return(s.testEventID)
	s.mockEventRepo.EXPECT().
		SaveEvent(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *eventRepo.SaveEventInput) error {
			s.Equal(s.testEventID, input.Event.ID)
			s.Equal(models.EventPhaseDraft, input.Event.Phase)
			return nil
		})

	output, err := s.service.CreateEvent(s.ctx, &CreateEventInput{
		Name:           "  Office Secret Santa ",
		OrganizerEmail: "Organizer@Example.com",
		EventDate:      &eventDate,
		BudgetNote:     "around 20 EUR",
	})
	s.Require().NoError(err)
	s.Equal("Office Secret Santa", output.Event.Name)
	s.Equal("organizer@example.com", output.Event.OrganizerEmail)
	s.Equal(models.EventPhaseDraft, output.Event.Phase)
	s.Empty(output.Event.Participants)
	s.NotNil(output.Event.Participants)
	s.Equal(s.testTime, output.Event.CreatedAt)
	s.Equal(&eventDate, output.Event.EventDate)
}

func (s *ExchangeServiceTestSuite) TestCreateEvent_InvalidInput() {
	testCases := []struct {
		name  string
		input *CreateEventInput
	}{
		{name: "nil input", input: nil},
		{name: "no name", input: &CreateEventInput{Name: "  ", OrganizerEmail: "organizer@example.com"}},
		{name: "no organizer", input: &CreateEventInput{Name: "Party"}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.service.CreateEvent(s.ctx, tc.input)
			s.ErrorIs(err, ErrInvalidInput)
		})
	}
}

func (s *ExchangeServiceTestSuite) TestGetEvent_NotFound() {
	s.mockEventRepo.EXPECT().
		GetEvent(s.ctx, &eventRepo.GetEventInput{EventID: "missing"}).
		Return(nil, eventRepo.ErrEventNotFound)

	_, err := s.service.GetEvent(s.ctx, &GetEventInput{EventID: "missing"})
	s.ErrorIs(err, ErrEventNotFound)
}

func (s *ExchangeServiceTestSuite) TestAddParticipant() {
	s.mockShortID.EXPECT().NewID().Return("p5", nil)
	s.expectUpdate(s.activeEvent)

	output, err := s.service.AddParticipant(s.ctx, &AddParticipantInput{
		EventID:  s.testEventID,
		Actor:    s.testOrganizer,
		Name:     "Eve",
		Email:    " EVE@example.com",
		Wishlist: []string{"puzzles", " ", "tea "},
	})
	s.Require().NoError(err)
	s.Equal("p5", output.Participant.ID)
	s.Equal("eve@example.com", output.Participant.Email)
	s.Equal([]string{"puzzles", "tea"}, output.Participant.Wishlist)
	s.Len(output.Event.Participants, 5)
	s.Equal(s.testTime, output.Event.UpdatedAt)
}

func (s *ExchangeServiceTestSuite) TestAddParticipant_Rejections() {
	testCases := []struct {
		name    string
		stored  *models.Event
		input   *AddParticipantInput
		wantErr error
	}{
		{
			name:    "not organizer",
			stored:  s.activeEvent,
			input:   &AddParticipantInput{EventID: s.testEventID, Actor: Actor{Email: "alice@example.com"}, Name: "Eve"},
			wantErr: ErrNotOrganizer,
		},
		{
			name:    "duplicate email",
			stored:  s.activeEvent,
			input:   &AddParticipantInput{EventID: s.testEventID, Actor: s.testOrganizer, Name: "Alice Again", Email: "ALICE@example.com"},
			wantErr: ErrDuplicateParticipant,
		},
		{
			name:    "duplicate Discord user",
			stored:  s.activeEvent,
			input:   &AddParticipantInput{EventID: s.testEventID, Actor: s.testOrganizer, Name: "Chuck", DiscordUserID: "discord-charlie"},
			wantErr: ErrDuplicateParticipant,
		},
		{
			name:    "already drawn",
			stored:  s.drawnEvent,
			input:   &AddParticipantInput{EventID: s.testEventID, Actor: s.testOrganizer, Name: "Eve"},
			wantErr: ErrInvalidPhase,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.mockShortID.EXPECT().NewID().Return("p5", nil)
			s.expectUpdate(tc.stored)

			_, err := s.service.AddParticipant(s.ctx, tc.input)
			s.ErrorIs(err, tc.wantErr)
		})
	}
}

func (s *ExchangeServiceTestSuite) TestAddParticipant_EventNotFound() {
	s.mockShortID.EXPECT().NewID().Return("p5", nil)
	s.mockEventRepo.EXPECT().UpdateEvent(s.ctx, gomock.Any()).Return(nil, eventRepo.ErrEventNotFound)

	_, err := s.service.AddParticipant(s.ctx, &AddParticipantInput{
		EventID: s.testEventID,
		Actor:   s.testOrganizer,
		Name:    "Eve",
	})
	s.ErrorIs(err, ErrEventNotFound)
}

func (s *ExchangeServiceTestSuite) TestRemoveParticipant_DropsExclusions() {
	s.expectUpdate(s.draftEvent)

	output, err := s.service.RemoveParticipant(s.ctx, &RemoveParticipantInput{
		EventID:       s.testEventID,
		Actor:         s.testOrganizer,
		ParticipantID: "p2",
	})
	s.Require().NoError(err)
	s.Equal([]string{"p1", "p3", "p4"}, output.Event.ParticipantIDs())
	s.Empty(output.Event.Exclusions)
}

func (s *ExchangeServiceTestSuite) TestRemoveParticipant_Unknown() {
	s.expectUpdate(s.draftEvent)

	_, err := s.service.RemoveParticipant(s.ctx, &RemoveParticipantInput{
		EventID:       s.testEventID,
		Actor:         s.testOrganizer,
		ParticipantID: "nobody",
	})
	s.ErrorIs(err, ErrParticipantNotFound)
}

func (s *ExchangeServiceTestSuite) TestUpdateWishlist() {
	testCases := []struct {
		name    string
		stored  *models.Event
		actor   Actor
		wantErr error
	}{
		{name: "participant edits own list after the draw", stored: s.drawnEvent, actor: Actor{Email: "diana@example.com"}},
		{name: "organizer edits any list", stored: s.activeEvent, actor: s.testOrganizer},
		{name: "other participant", stored: s.activeEvent, actor: Actor{Email: "alice@example.com"}, wantErr: ErrNotAllowed},
		{name: "completed event", stored: s.newEvent(models.EventPhaseCompleted), actor: Actor{Email: "diana@example.com"}, wantErr: ErrInvalidPhase},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.expectUpdate(tc.stored)

			output, err := s.service.UpdateWishlist(s.ctx, &UpdateWishlistInput{
				EventID:       s.testEventID,
				Actor:         tc.actor,
				ParticipantID: "p4",
				Wishlist:      []string{"a scarf"},
			})
			if tc.wantErr != nil {
				s.ErrorIs(err, tc.wantErr)
				return
			}
			s.Require().NoError(err)
			s.Equal([]string{"a scarf"}, output.Participant.Wishlist)
		})
	}
}

func (s *ExchangeServiceTestSuite) TestAddExclusion_Normalizes() {
	s.expectUpdate(s.activeEvent)

	output, err := s.service.AddExclusion(s.ctx, &AddExclusionInput{
		EventID: s.testEventID,
		Actor:   s.testOrganizer,
		Pair:    models.ExclusionPair{A: "p4", B: "p3"},
	})
	s.Require().NoError(err)
	s.Equal([]models.ExclusionPair{{A: "p1", B: "p2"}, {A: "p3", B: "p4"}}, output.Event.Exclusions)
}

func (s *ExchangeServiceTestSuite) TestAddExclusion_Rejections() {
	testCases := []struct {
		name    string
		pair    models.ExclusionPair
		wantErr error
	}{
		{name: "unknown participant", pair: models.ExclusionPair{A: "p1", B: "ghost"}, wantErr: ErrParticipantNotFound},
		{name: "self pair", pair: models.ExclusionPair{A: "p3", B: "p3"}, wantErr: assignment.ErrValidation},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.expectUpdate(s.activeEvent)

			_, err := s.service.AddExclusion(s.ctx, &AddExclusionInput{
				EventID: s.testEventID,
				Actor:   s.testOrganizer,
				Pair:    tc.pair,
			})
			s.ErrorIs(err, tc.wantErr)
		})
	}
}

func (s *ExchangeServiceTestSuite) TestRemoveExclusion() {
	s.expectUpdate(s.activeEvent)

	output, err := s.service.RemoveExclusion(s.ctx, &RemoveExclusionInput{
		EventID: s.testEventID,
		Actor:   s.testOrganizer,
		Pair:    models.ExclusionPair{A: "p2", B: "p1"},
	})
	s.Require().NoError(err)
	s.Empty(output.Event.Exclusions)

	s.expectUpdate(s.activeEvent)
	_, err = s.service.RemoveExclusion(s.ctx, &RemoveExclusionInput{
		EventID: s.testEventID,
		Actor:   s.testOrganizer,
		Pair:    models.ExclusionPair{A: "p3", B: "p4"},
	})
	s.ErrorIs(err, ErrInvalidInput)
}

func (s *ExchangeServiceTestSuite) TestActivateEvent() {
	s.expectGet(s.draftEvent)
	s.mockAssignmentRepo.EXPECT().
		DeleteAssignments(s.ctx, &assignmentRepo.DeleteAssignmentsInput{EventID: s.testEventID}).
		Return(assignmentRepo.ErrAssignmentsNotFound)
	s.expectUpdate(s.draftEvent)

	output, err := s.service.ActivateEvent(s.ctx, &ActivateEventInput{
		EventID: s.testEventID,
		Actor:   s.testOrganizer,
	})
	s.Require().NoError(err)
	s.Equal(models.EventPhaseActive, output.Event.Phase)
}

func (s *ExchangeServiceTestSuite) TestActivateEvent_Rejections() {
	lonely := s.newEvent(models.EventPhaseDraft)
	lonely.Participants = lonely.Participants[:1]
	lonely.Exclusions = nil

	// Two people who may not give to each other can never be drawn
	blocked := s.newEvent(models.EventPhaseDraft)
	blocked.Participants = blocked.Participants[:2]

	testCases := []struct {
		name    string
		stored  *models.Event
		wantErr error
	}{
		{name: "too few participants", stored: lonely, wantErr: ErrNotEnoughParticipants},
		{name: "infeasible exclusions", stored: blocked, wantErr: assignment.ErrInfeasibleConstraints},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.expectGet(tc.stored)
			s.mockAssignmentRepo.EXPECT().DeleteAssignments(s.ctx, gomock.Any()).Return(assignmentRepo.ErrAssignmentsNotFound)
			s.expectUpdate(tc.stored)

			_, err := s.service.ActivateEvent(s.ctx, &ActivateEventInput{
				EventID: s.testEventID,
				Actor:   s.testOrganizer,
			})
			s.ErrorIs(err, tc.wantErr)
		})
	}
}

func (s *ExchangeServiceTestSuite) TestActivateEvent_WrongPhase() {
	s.expectGet(s.activeEvent)

	_, err := s.service.ActivateEvent(s.ctx, &ActivateEventInput{
		EventID: s.testEventID,
		Actor:   s.testOrganizer,
	})
	s.ErrorIs(err, ErrInvalidPhase)
}

func (s *ExchangeServiceTestSuite) TestReopenEvent() {
	s.expectGet(s.activeEvent)
	reopened := s.newEvent(models.EventPhaseDraft)
	s.mockEventRepo.EXPECT().
		TransitionPhase(s.ctx, &eventRepo.TransitionPhaseInput{
			EventID: s.testEventID,
			From:    models.EventPhaseActive,
			To:      models.EventPhaseDraft,
			At:      s.testTime,
		}).
		Return(reopened, nil)

	output, err := s.service.ReopenEvent(s.ctx, &ReopenEventInput{
		EventID: s.testEventID,
		Actor:   s.testOrganizer,
	})
	s.Require().NoError(err)
	s.Equal(models.EventPhaseDraft, output.Event.Phase)
}

func (s *ExchangeServiceTestSuite) TestRunDraw_FirstDraw() {
	s.expectGet(s.activeEvent)
	s.mockUUID.EXPECT().NewUUID().Return("draw-1")

	var stored *models.AssignmentSet
	s.mockAssignmentRepo.EXPECT().
		SaveAssignmentsIfAbsent(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *assignmentRepo.SaveAssignmentsInput) error {
			stored = input.Set
			return nil
		})
	s.expectUpdate(s.activeEvent)

	output, err := s.service.RunDraw(s.ctx, &RunDrawInput{
		EventID: s.testEventID,
		Actor:   s.testOrganizer,
		Seed:    &s.testSeed,
	})
	s.Require().NoError(err)
	s.Equal("draw-1", output.DrawID)
	s.Equal(models.EventPhaseDrawn, output.Event.Phase)
	s.Require().NotNil(output.Event.DrawnAt)
	s.Equal(s.testTime, *output.Event.DrawnAt)

	s.Require().NotNil(stored)
	s.Equal("draw-1", stored.DrawID)
	s.Equal(s.testEventID, stored.EventID)
	s.Equal(s.testSeed, stored.Seed)
	s.NoError(assignment.Verify(s.activeEvent.Participants, s.activeEvent.Exclusions, stored.Assignments))
}

func (s *ExchangeServiceTestSuite) TestRunDraw_OutputCannotReplayPairings() {
	s.expectGet(s.activeEvent)
	s.mockUUID.EXPECT().NewUUID().Return("draw-1")

	var stored *models.AssignmentSet
	s.mockAssignmentRepo.EXPECT().
		SaveAssignmentsIfAbsent(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *assignmentRepo.SaveAssignmentsInput) error {
			stored = input.Set
			return nil
		})
	s.expectUpdate(s.activeEvent)

	output, err := s.service.RunDraw(s.ctx, &RunDrawInput{
		EventID: s.testEventID,
		Actor:   s.testOrganizer,
	})
	s.Require().NoError(err)
	s.Require().NotNil(stored)

	// Anything the organizer gets back is the event plus draw metadata
	encoded, err := json.Marshal(output)
	s.Require().NoError(err)
	s.NotContains(string(encoded), "Seed")
	s.NotContains(string(encoded), strconv.FormatInt(stored.Seed, 10))
	s.NotContains(string(encoded), "ReceiverID")

	// The seed the output leaves out is the one that would replay the draw
	replayed, err := assignment.NewEngine(nil).Generate(&assignment.GenerateInput{
		Participants: output.Event.Participants,
		Exclusions:   output.Event.Exclusions,
		Seed:         &stored.Seed,
	})
	s.Require().NoError(err)
	s.Equal(pairings(stored.Assignments), pairings(replayed.Assignments))
}

func pairings(assignments []*models.Assignment) map[string]string {
	pairs := make(map[string]string, len(assignments))
	for _, a := range assignments {
		pairs[a.GiverID] = a.ReceiverID
	}
	return pairs
}

func (s *ExchangeServiceTestSuite) TestRunDraw_SameSeedSameAssignments() {
	var sets []*models.AssignmentSet
	for i := 0; i < 2; i++ {
		s.expectGet(s.activeEvent)
		s.mockUUID.EXPECT().NewUUID().Return("draw")
		s.mockAssignmentRepo.EXPECT().
			SaveAssignmentsIfAbsent(s.ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, input *assignmentRepo.SaveAssignmentsInput) error {
				sets = append(sets, input.Set)
				return nil
			})
		s.expectUpdate(s.activeEvent)

		_, err := s.service.RunDraw(s.ctx, &RunDrawInput{
			EventID: s.testEventID,
			Actor:   s.testOrganizer,
			Seed:    &s.testSeed,
		})
		s.Require().NoError(err)
	}

	s.Require().Len(sets, 2)
	s.Equal(sets[0].Assignments, sets[1].Assignments)
}

func (s *ExchangeServiceTestSuite) TestRunDraw_LosingConcurrentDraw() {
	s.expectGet(s.activeEvent)
	s.mockUUID.EXPECT().NewUUID().Return("draw-2")
	s.mockAssignmentRepo.EXPECT().
		SaveAssignmentsIfAbsent(s.ctx, gomock.Any()).
		Return(assignmentRepo.ErrAssignmentsExist)

	_, err := s.service.RunDraw(s.ctx, &RunDrawInput{
		EventID: s.testEventID,
		Actor:   s.testOrganizer,
	})
	s.ErrorIs(err, ErrDrawAlreadyCompleted)
}

func (s *ExchangeServiceTestSuite) TestRunDraw_PhaseChecks() {
	testCases := []struct {
		name    string
		stored  *models.Event
		actor   Actor
		wantErr error
	}{
		{name: "drawn without redraw", stored: s.drawnEvent, actor: s.testOrganizer, wantErr: ErrDrawAlreadyCompleted},
		{name: "completed", stored: s.newEvent(models.EventPhaseCompleted), actor: s.testOrganizer, wantErr: ErrDrawAlreadyCompleted},
		{name: "draft", stored: s.draftEvent, actor: s.testOrganizer, wantErr: ErrInvalidPhase},
		{name: "participant is not organizer", stored: s.activeEvent, actor: Actor{Email: "alice@example.com"}, wantErr: ErrNotOrganizer},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.expectGet(tc.stored)

			_, err := s.service.RunDraw(s.ctx, &RunDrawInput{
				EventID: s.testEventID,
				Actor:   tc.actor,
			})
			s.ErrorIs(err, tc.wantErr)
		})
	}
}

func (s *ExchangeServiceTestSuite) TestRunDraw_Infeasible() {
	stored := s.newEvent(models.EventPhaseActive)
	stored.Participants = stored.Participants[:3]
	s.expectGet(stored)

	_, err := s.service.RunDraw(s.ctx, &RunDrawInput{
		EventID: s.testEventID,
		Actor:   s.testOrganizer,
		Seed:    &s.testSeed,
	})
	s.ErrorIs(err, assignment.ErrInfeasibleConstraints)
}

func (s *ExchangeServiceTestSuite) TestRunDraw_Redraw() {
	s.expectGet(s.drawnEvent)
	s.mockAssignmentRepo.EXPECT().
		GetAssignments(s.ctx, &assignmentRepo.GetAssignmentsInput{EventID: s.testEventID}).
		Return(&models.AssignmentSet{EventID: s.testEventID, DrawID: "draw-1"}, nil)
	s.mockUUID.EXPECT().NewUUID().Return("draw-2")
	s.mockAssignmentRepo.EXPECT().
		ReplaceAssignments(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *assignmentRepo.ReplaceAssignmentsInput) error {
			s.Equal("draw-1", input.ExpectedDrawID)
			s.Equal("draw-2", input.Set.DrawID)
			return nil
		})
	s.expectUpdate(s.drawnEvent)

	output, err := s.service.RunDraw(s.ctx, &RunDrawInput{
		EventID: s.testEventID,
		Actor:   s.testOrganizer,
		Redraw:  true,
	})
	s.Require().NoError(err)
	s.Equal("draw-2", output.DrawID)
	s.Equal(models.EventPhaseDrawn, output.Event.Phase)
}

func (s *ExchangeServiceTestSuite) TestRunDraw_RedrawLosesToAnotherRedraw() {
	s.expectGet(s.drawnEvent)
	s.mockAssignmentRepo.EXPECT().
		GetAssignments(s.ctx, gomock.Any()).
		Return(&models.AssignmentSet{EventID: s.testEventID, DrawID: "draw-1"}, nil)
	s.mockUUID.EXPECT().NewUUID().Return("draw-3")
	s.mockAssignmentRepo.EXPECT().
		ReplaceAssignments(s.ctx, gomock.Any()).
		Return(assignmentRepo.ErrDrawMismatch)

	_, err := s.service.RunDraw(s.ctx, &RunDrawInput{
		EventID: s.testEventID,
		Actor:   s.testOrganizer,
		Redraw:  true,
	})
	s.ErrorIs(err, ErrDrawAlreadyCompleted)
}

func (s *ExchangeServiceTestSuite) TestRunDraw_RosterChangedWithdrawsDraw() {
	s.expectGet(s.activeEvent)
	s.mockUUID.EXPECT().NewUUID().Return("draw-1")
	s.mockAssignmentRepo.EXPECT().SaveAssignmentsIfAbsent(s.ctx, gomock.Any()).Return(nil)

	// A participant joined while the draw was running
	grown := s.newEvent(models.EventPhaseActive)
	grown.Participants = append(grown.Participants, &models.Participant{ID: "p5", Name: "Eve"})
	s.expectUpdate(grown)

	s.mockAssignmentRepo.EXPECT().
		DeleteAssignments(s.ctx, &assignmentRepo.DeleteAssignmentsInput{EventID: s.testEventID, DrawID: "draw-1"}).
		Return(nil)

	_, err := s.service.RunDraw(s.ctx, &RunDrawInput{
		EventID: s.testEventID,
		Actor:   s.testOrganizer,
	})
	s.ErrorIs(err, ErrPhaseConflict)
}

func (s *ExchangeServiceTestSuite) TestCompleteEvent() {
	s.expectGet(s.drawnEvent)
	completed := s.newEvent(models.EventPhaseCompleted)
	s.mockEventRepo.EXPECT().
		TransitionPhase(s.ctx, &eventRepo.TransitionPhaseInput{
			EventID: s.testEventID,
			From:    models.EventPhaseDrawn,
			To:      models.EventPhaseCompleted,
			At:      s.testTime,
		}).
		Return(completed, nil)

	output, err := s.service.CompleteEvent(s.ctx, &CompleteEventInput{
		EventID: s.testEventID,
		Actor:   s.testOrganizer,
	})
	s.Require().NoError(err)
	s.Equal(models.EventPhaseCompleted, output.Event.Phase)
}

func (s *ExchangeServiceTestSuite) TestCompleteEvent_Rejections() {
	s.Run("active event", func() {
		s.expectGet(s.activeEvent)
		_, err := s.service.CompleteEvent(s.ctx, &CompleteEventInput{EventID: s.testEventID, Actor: s.testOrganizer})
		s.ErrorIs(err, ErrInvalidPhase)
	})

	s.Run("concurrent change", func() {
		s.expectGet(s.drawnEvent)
		s.mockEventRepo.EXPECT().TransitionPhase(s.ctx, gomock.Any()).Return(nil, eventRepo.ErrPhaseConflict)
		_, err := s.service.CompleteEvent(s.ctx, &CompleteEventInput{EventID: s.testEventID, Actor: s.testOrganizer})
		s.ErrorIs(err, ErrPhaseConflict)
	})
}

func (s *ExchangeServiceTestSuite) TestCompletePastEvents() {
	past := s.testTime.Add(-time.Hour)
	future := s.testTime.Add(time.Hour)

	due := s.newEvent(models.EventPhaseDrawn)
	due.ID = "due"
	due.EventDate = &past

	raced := s.newEvent(models.EventPhaseDrawn)
	raced.ID = "raced"
	raced.EventDate = &past

	upcoming := s.newEvent(models.EventPhaseDrawn)
	upcoming.ID = "upcoming"
	upcoming.EventDate = &future

	undated := s.newEvent(models.EventPhaseDrawn)
	undated.ID = "undated"

	s.mockEventRepo.EXPECT().
		ListEventsByPhase(s.ctx, &eventRepo.ListEventsByPhaseInput{Phase: models.EventPhaseDrawn}).
		Return(&eventRepo.ListEventsOutput{Events: []*models.Event{due, raced, upcoming, undated}}, nil)
	s.mockEventRepo.EXPECT().
		TransitionPhase(s.ctx, &eventRepo.TransitionPhaseInput{EventID: "due", From: models.EventPhaseDrawn, To: models.EventPhaseCompleted, At: s.testTime}).
		Return(&models.Event{ID: "due", Phase: models.EventPhaseCompleted}, nil)
	s.mockEventRepo.EXPECT().
		TransitionPhase(s.ctx, &eventRepo.TransitionPhaseInput{EventID: "raced", From: models.EventPhaseDrawn, To: models.EventPhaseCompleted, At: s.testTime}).
		Return(nil, eventRepo.ErrPhaseConflict)

	output, err := s.service.CompletePastEvents(s.ctx, &CompletePastEventsInput{})
	s.Require().NoError(err)
	s.Equal([]string{"due"}, output.CompletedEventIDs)
}

func (s *ExchangeServiceTestSuite) drawnSet() *models.AssignmentSet {
	return &models.AssignmentSet{
		EventID: s.testEventID,
		DrawID:  "draw-1",
		Assignments: []*models.Assignment{
			{EventID: s.testEventID, GiverID: "p1", ReceiverID: "p3"},
			{EventID: s.testEventID, GiverID: "p2", ReceiverID: "p4"},
			{EventID: s.testEventID, GiverID: "p3", ReceiverID: "p2"},
			{EventID: s.testEventID, GiverID: "p4", ReceiverID: "p1"},
		},
	}
}

func (s *ExchangeServiceTestSuite) TestGetVisibleAssignments_ParticipantSeesOwn() {
	s.expectGet(s.drawnEvent)
	s.mockAssignmentRepo.EXPECT().
		GetAssignments(s.ctx, &assignmentRepo.GetAssignmentsInput{EventID: s.testEventID}).
		Return(s.drawnSet(), nil)
	s.mockAssignmentRepo.EXPECT().
		MarkRevealed(s.ctx, &assignmentRepo.MarkRevealedInput{EventID: s.testEventID, GiverID: "p2", At: s.testTime}).
		Return(&assignmentRepo.MarkRevealedOutput{RevealedAt: s.testTime, FirstReveal: true}, nil)

	output, err := s.service.GetVisibleAssignments(s.ctx, &GetVisibleAssignmentsInput{
		EventID: s.testEventID,
		Viewer:  Actor{Email: "Bob@Example.com"},
	})
	s.Require().NoError(err)
	s.Equal(assignment.VisibilityOwn, output.Scope)
	s.Equal("p2", output.ViewerParticipantID)
	s.True(output.FirstReveal)
	s.Require().Len(output.Assignments, 1)
	s.Equal("p2", output.Assignments[0].GiverID)
	s.Equal("Diana", output.Assignments[0].ReceiverName)
	s.Equal([]string{"books", "plants"}, output.Assignments[0].ReceiverWishlist)
	s.Require().NotNil(output.Assignments[0].RevealedAt)
	s.Equal(s.testTime, *output.Assignments[0].RevealedAt)
}

func (s *ExchangeServiceTestSuite) TestGetVisibleAssignments_RepeatViewKeepsFirstReveal() {
	firstSeen := s.testTime.Add(-time.Hour)
	set := s.drawnSet()
	set.Assignments[2].RevealedAt = &firstSeen

	s.expectGet(s.drawnEvent)
	s.mockAssignmentRepo.EXPECT().GetAssignments(s.ctx, gomock.Any()).Return(set, nil)

	output, err := s.service.GetVisibleAssignments(s.ctx, &GetVisibleAssignmentsInput{
		EventID: s.testEventID,
		Viewer:  Actor{DiscordUserID: "discord-charlie"},
	})
	s.Require().NoError(err)
	s.False(output.FirstReveal)
	s.Require().Len(output.Assignments, 1)
	s.Equal("Bob", output.Assignments[0].ReceiverName)
	s.Equal(firstSeen, *output.Assignments[0].RevealedAt)
}

func (s *ExchangeServiceTestSuite) TestGetVisibleAssignments_OrganizerSeesNothingBeforeCompletion() {
	s.expectGet(s.drawnEvent)
	s.mockAssignmentRepo.EXPECT().GetAssignments(s.ctx, gomock.Any()).Return(s.drawnSet(), nil)

	output, err := s.service.GetVisibleAssignments(s.ctx, &GetVisibleAssignmentsInput{
		EventID: s.testEventID,
		Viewer:  s.testOrganizer,
	})
	s.Require().NoError(err)
	s.Equal(assignment.VisibilityNone, output.Scope)
	s.NotNil(output.Assignments)
	s.Empty(output.Assignments)
}

func (s *ExchangeServiceTestSuite) TestGetVisibleAssignments_CompletedShowsAll() {
	s.expectGet(s.newEvent(models.EventPhaseCompleted))
	s.mockAssignmentRepo.EXPECT().GetAssignments(s.ctx, gomock.Any()).Return(s.drawnSet(), nil)

	output, err := s.service.GetVisibleAssignments(s.ctx, &GetVisibleAssignmentsInput{
		EventID: s.testEventID,
		Viewer:  Actor{Email: "stranger@example.com"},
	})
	s.Require().NoError(err)
	s.Equal(assignment.VisibilityAll, output.Scope)
	s.Len(output.Assignments, 4)
	s.Equal("Alice", output.Assignments[0].GiverName)
	s.Equal("Charlie", output.Assignments[0].ReceiverName)
}

func (s *ExchangeServiceTestSuite) TestGetVisibleAssignments_NotDrawnYet() {
	s.expectGet(s.activeEvent)

	output, err := s.service.GetVisibleAssignments(s.ctx, &GetVisibleAssignmentsInput{
		EventID: s.testEventID,
		Viewer:  Actor{Email: "alice@example.com"},
	})
	s.Require().NoError(err)
	s.Equal(assignment.VisibilityOwn, output.Scope)
	s.Empty(output.Assignments)
}

func (s *ExchangeServiceTestSuite) TestDeleteEvent() {
	s.expectGet(s.drawnEvent)
	s.mockAssignmentRepo.EXPECT().
		DeleteAssignments(s.ctx, &assignmentRepo.DeleteAssignmentsInput{EventID: s.testEventID}).
		Return(nil)
	s.mockEventRepo.EXPECT().
		DeleteEvent(s.ctx, &eventRepo.DeleteEventInput{EventID: s.testEventID}).
		Return(nil)

	output, err := s.service.DeleteEvent(s.ctx, &DeleteEventInput{
		EventID: s.testEventID,
		Actor:   s.testOrganizer,
	})
	s.Require().NoError(err)
	s.True(output.Success)
}

func (s *ExchangeServiceTestSuite) TestListOrganizerEvents() {
	s.mockEventRepo.EXPECT().
		ListEventsByOrganizer(s.ctx, &eventRepo.ListEventsByOrganizerInput{OrganizerEmail: "organizer@example.com"}).
		Return(&eventRepo.ListEventsOutput{Events: []*models.Event{s.draftEvent}}, nil)

	output, err := s.service.ListOrganizerEvents(s.ctx, &ListOrganizerEventsInput{OrganizerEmail: "organizer@example.com"})
	s.Require().NoError(err)
	s.Len(output.Events, 1)

	_, err = s.service.ListOrganizerEvents(s.ctx, &ListOrganizerEventsInput{})
	s.True(errors.Is(err, ErrInvalidInput))
}
