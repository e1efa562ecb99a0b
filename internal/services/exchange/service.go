package exchange

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/KirkDiggler/secretsanta/internal/assignment"
	"github.com/KirkDiggler/secretsanta/internal/common/clock"
	"github.com/KirkDiggler/secretsanta/internal/common/shortid"
	"github.com/KirkDiggler/secretsanta/internal/common/uuid"
	"github.com/KirkDiggler/secretsanta/internal/models"
	assignmentRepo "github.com/KirkDiggler/secretsanta/internal/repositories/assignment"
	eventRepo "github.com/KirkDiggler/secretsanta/internal/repositories/event"
	"go.uber.org/zap"
)

// service implements the Service interface
type service struct {
	eventRepo        eventRepo.Repository
	assignmentRepo   assignmentRepo.Repository
	engine           *assignment.Engine
	clock            clock.Clock
	uuidGenerator    uuid.Generator
	shortIDGenerator shortid.Generator
	logger           *zap.Logger
}

// New creates a new exchange service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.EventRepo == nil {
		return nil, ErrNilEventRepo
	}
	if cfg.AssignmentRepo == nil {
		return nil, ErrNilAssignmentRepo
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}
	if cfg.ShortIDGenerator == nil {
		return nil, ErrNilShortIDGenerator
	}

	engine := cfg.Engine
	if engine == nil {
		engine = assignment.NewEngine(&assignment.Config{
			MaxAttempts: cfg.MaxDrawAttempts,
		})
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &service{
		eventRepo:        cfg.EventRepo,
		assignmentRepo:   cfg.AssignmentRepo,
		engine:           engine,
		clock:            cfg.Clock,
		uuidGenerator:    cfg.UUIDGenerator,
		shortIDGenerator: cfg.ShortIDGenerator,
		logger:           logger,
	}, nil
}

// CreateEvent creates a new event in draft
func (s *service) CreateEvent(ctx context.Context, input *CreateEventInput) (*CreateEventOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input cannot be nil", ErrInvalidInput)
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: event name is required", ErrInvalidInput)
	}

	organizerEmail := models.NormalizeEmail(input.OrganizerEmail)
	if organizerEmail == "" && input.OrganizerDiscordID == "" {
		return nil, fmt.Errorf("%w: organizer email or Discord user is required", ErrInvalidInput)
	}

	now := s.clock.Now()
	event := &models.Event{
		ID:                 s.uuidGenerator.NewUUID(),
		Name:               name,
		OrganizerEmail:     organizerEmail,
		OrganizerDiscordID: input.OrganizerDiscordID,
		Phase:              models.EventPhaseDraft,
		Participants:       []*models.Participant{},
		Exclusions:         []models.ExclusionPair{},
		EventDate:          input.EventDate,
		BudgetNote:         strings.TrimSpace(input.BudgetNote),
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	err := s.eventRepo.SaveEvent(ctx, &eventRepo.SaveEventInput{
		Event: event,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("event created",
		zap.String("event_id", event.ID),
		zap.String("organizer", organizerEmail))

	return &CreateEventOutput{
		Event: event,
	}, nil
}

// GetEvent returns an event with its participants and exclusions
func (s *service) GetEvent(ctx context.Context, input *GetEventInput) (*GetEventOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input cannot be nil", ErrInvalidInput)
	}

	event, err := s.getEvent(ctx, input.EventID)
	if err != nil {
		return nil, err
	}

	return &GetEventOutput{
		Event: event,
	}, nil
}

// ListOrganizerEvents returns every event an organizer runs
func (s *service) ListOrganizerEvents(ctx context.Context, input *ListOrganizerEventsInput) (*ListOrganizerEventsOutput, error) {
	if input == nil || models.NormalizeEmail(input.OrganizerEmail) == "" {
		return nil, fmt.Errorf("%w: organizer email is required", ErrInvalidInput)
	}

	output, err := s.eventRepo.ListEventsByOrganizer(ctx, &eventRepo.ListEventsByOrganizerInput{
		OrganizerEmail: input.OrganizerEmail,
	})
	if err != nil {
		return nil, err
	}

	return &ListOrganizerEventsOutput{
		Events: output.Events,
	}, nil
}

// DeleteEvent removes an event and its assignments
func (s *service) DeleteEvent(ctx context.Context, input *DeleteEventInput) (*DeleteEventOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input cannot be nil", ErrInvalidInput)
	}

	event, err := s.getEvent(ctx, input.EventID)
	if err != nil {
		return nil, err
	}
	if err := requireOrganizer(event, input.Actor); err != nil {
		return nil, err
	}

	if err := s.clearAssignments(ctx, event.ID); err != nil {
		return nil, err
	}

	err = s.eventRepo.DeleteEvent(ctx, &eventRepo.DeleteEventInput{
		EventID: event.ID,
	})
	if err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	s.logger.Info("event deleted", zap.String("event_id", event.ID))

	return &DeleteEventOutput{
		Success: true,
	}, nil
}

// AddParticipant registers a new participant
func (s *service) AddParticipant(ctx context.Context, input *AddParticipantInput) (*AddParticipantOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input cannot be nil", ErrInvalidInput)
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: participant name is required", ErrInvalidInput)
	}

	participantID, err := s.shortIDGenerator.NewID()
	if err != nil {
		return nil, err
	}

	participant := &models.Participant{
		ID:            participantID,
		Name:          name,
		Email:         models.NormalizeEmail(input.Email),
		DiscordUserID: strings.TrimSpace(input.DiscordUserID),
		Wishlist:      cleanWishlist(input.Wishlist),
	}

	now := s.clock.Now()
	event, err := s.updateEvent(ctx, input.EventID, func(event *models.Event) error {
		if err := requireOrganizer(event, input.Actor); err != nil {
			return err
		}
		if err := requireEditable(event); err != nil {
			return err
		}
		if participant.Email != "" && event.ParticipantByEmail(participant.Email) != nil {
			return fmt.Errorf("%w: %s", ErrDuplicateParticipant, participant.Email)
		}
		if participant.DiscordUserID != "" && event.ParticipantByDiscordID(participant.DiscordUserID) != nil {
			return fmt.Errorf("%w: Discord user %s", ErrDuplicateParticipant, participant.DiscordUserID)
		}
		if event.FindParticipant(participant.ID) != nil {
			return fmt.Errorf("%w: id %s", ErrDuplicateParticipant, participant.ID)
		}

		event.Participants = append(event.Participants, participant)
		event.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("participant added",
		zap.String("event_id", event.ID),
		zap.String("participant_id", participant.ID))

	return &AddParticipantOutput{
		Participant: participant,
		Event:       event,
	}, nil
}

// RemoveParticipant removes a participant and any exclusions naming them
func (s *service) RemoveParticipant(ctx context.Context, input *RemoveParticipantInput) (*RemoveParticipantOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input cannot be nil", ErrInvalidInput)
	}

	now := s.clock.Now()
	event, err := s.updateEvent(ctx, input.EventID, func(event *models.Event) error {
		if err := requireOrganizer(event, input.Actor); err != nil {
			return err
		}
		if err := requireEditable(event); err != nil {
			return err
		}

		index := slices.IndexFunc(event.Participants, func(p *models.Participant) bool {
			return p.ID == input.ParticipantID
		})
		if index < 0 {
			return fmt.Errorf("%w: %s", ErrParticipantNotFound, input.ParticipantID)
		}

		event.Participants = slices.Delete(event.Participants, index, index+1)
		event.Exclusions = slices.DeleteFunc(event.Exclusions, func(pair models.ExclusionPair) bool {
			return pair.Involves(input.ParticipantID)
		})
		event.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &RemoveParticipantOutput{
		Event: event,
	}, nil
}

// UpdateWishlist replaces a participant's wishlist
func (s *service) UpdateWishlist(ctx context.Context, input *UpdateWishlistInput) (*UpdateWishlistOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input cannot be nil", ErrInvalidInput)
	}

	now := s.clock.Now()
	var updated *models.Participant
	_, err := s.updateEvent(ctx, input.EventID, func(event *models.Event) error {
		if event.Phase == models.EventPhaseCompleted {
			return fmt.Errorf("%w: event is %s", ErrInvalidPhase, event.Phase)
		}

		participant := event.FindParticipant(input.ParticipantID)
		if participant == nil {
			return fmt.Errorf("%w: %s", ErrParticipantNotFound, input.ParticipantID)
		}

		if !isSelf(participant, input.Actor) && !event.IsOrganizer(input.Actor.Email, input.Actor.DiscordUserID) {
			return ErrNotAllowed
		}

		participant.Wishlist = cleanWishlist(input.Wishlist)
		event.UpdatedAt = now
		updated = participant
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &UpdateWishlistOutput{
		Participant: updated,
	}, nil
}

// AddExclusion forbids two participants from drawing each other
func (s *service) AddExclusion(ctx context.Context, input *AddExclusionInput) (*AddExclusionOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input cannot be nil", ErrInvalidInput)
	}

	now := s.clock.Now()
	event, err := s.updateEvent(ctx, input.EventID, func(event *models.Event) error {
		if err := requireOrganizer(event, input.Actor); err != nil {
			return err
		}
		if err := requireEditable(event); err != nil {
			return err
		}
		for _, id := range []string{input.Pair.A, input.Pair.B} {
			if event.FindParticipant(id) == nil {
				return fmt.Errorf("%w: %s", ErrParticipantNotFound, id)
			}
		}

		// Feasibility is checked at draw time; the roster may still grow
		pairs := append(slices.Clone(event.Exclusions), input.Pair)
		set, err := assignment.NormalizeExclusions(event.ParticipantIDs(), pairs)
		if err != nil {
			return err
		}

		event.Exclusions = set.Pairs()
		event.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &AddExclusionOutput{
		Event: event,
	}, nil
}

// RemoveExclusion lifts an exclusion
func (s *service) RemoveExclusion(ctx context.Context, input *RemoveExclusionInput) (*RemoveExclusionOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input cannot be nil", ErrInvalidInput)
	}

	target := input.Pair.Canonical()
	now := s.clock.Now()
	event, err := s.updateEvent(ctx, input.EventID, func(event *models.Event) error {
		if err := requireOrganizer(event, input.Actor); err != nil {
			return err
		}
		if err := requireEditable(event); err != nil {
			return err
		}

		before := len(event.Exclusions)
		event.Exclusions = slices.DeleteFunc(event.Exclusions, func(pair models.ExclusionPair) bool {
			return pair.Canonical() == target
		})
		if len(event.Exclusions) == before {
			return fmt.Errorf("%w: no exclusion between %s and %s", ErrInvalidInput, target.A, target.B)
		}

		event.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &RemoveExclusionOutput{
		Event: event,
	}, nil
}

// ActivateEvent opens a draft event for drawing. Any assignment set left
// behind by an interrupted draw is cleared first, while no draw can run.
func (s *service) ActivateEvent(ctx context.Context, input *ActivateEventInput) (*ActivateEventOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input cannot be nil", ErrInvalidInput)
	}

	current, err := s.getEvent(ctx, input.EventID)
	if err != nil {
		return nil, err
	}
	if err := requireOrganizer(current, input.Actor); err != nil {
		return nil, err
	}
	if current.Phase != models.EventPhaseDraft {
		return nil, fmt.Errorf("%w: event is %s", ErrInvalidPhase, current.Phase)
	}

	if err := s.clearAssignments(ctx, current.ID); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	event, err := s.updateEvent(ctx, input.EventID, func(event *models.Event) error {
		if event.Phase != models.EventPhaseDraft {
			return fmt.Errorf("%w: event is %s", ErrInvalidPhase, event.Phase)
		}
		if len(event.Participants) < 2 {
			return fmt.Errorf("%w: event has %d", ErrNotEnoughParticipants, len(event.Participants))
		}
		if _, err := assignment.ValidateExclusions(event.ParticipantIDs(), event.Exclusions); err != nil {
			return err
		}

		event.Phase = models.EventPhaseActive
		event.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("event activated", zap.String("event_id", event.ID))

	return &ActivateEventOutput{
		Event: event,
	}, nil
}

// ReopenEvent sends an active event back to draft
func (s *service) ReopenEvent(ctx context.Context, input *ReopenEventInput) (*ReopenEventOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input cannot be nil", ErrInvalidInput)
	}

	event, err := s.transition(ctx, input.EventID, input.Actor, models.EventPhaseActive, models.EventPhaseDraft)
	if err != nil {
		return nil, err
	}

	return &ReopenEventOutput{
		Event: event,
	}, nil
}

// RunDraw generates assignments for an event and stores them at most once.
//
// The first draw is stored with a conditional write that fails if any set
// already exists, so of two concurrent draws exactly one succeeds and the other
// gets ErrDrawAlreadyCompleted. A redraw replaces the stored set only if it is
// still the draw that was read. The event moves to drawn only if its roster is
// unchanged since the snapshot was taken; otherwise the new set is withdrawn.
func (s *service) RunDraw(ctx context.Context, input *RunDrawInput) (*RunDrawOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input cannot be nil", ErrInvalidInput)
	}

	snapshot, err := s.getEvent(ctx, input.EventID)
	if err != nil {
		return nil, err
	}
	if err := requireOrganizer(snapshot, input.Actor); err != nil {
		return nil, err
	}

	if !snapshot.Phase.AllowsDraw(input.Redraw) {
		switch snapshot.Phase {
		case models.EventPhaseDrawn, models.EventPhaseCompleted:
			return nil, fmt.Errorf("%w: event is %s", ErrDrawAlreadyCompleted, snapshot.Phase)
		default:
			return nil, fmt.Errorf("%w: event is %s", ErrInvalidPhase, snapshot.Phase)
		}
	}

	var expectedDrawID string
	if snapshot.Phase == models.EventPhaseDrawn {
		current, err := s.assignmentRepo.GetAssignments(ctx, &assignmentRepo.GetAssignmentsInput{
			EventID: snapshot.ID,
		})
		switch {
		case err == nil:
			expectedDrawID = current.DrawID
		case errors.Is(err, assignmentRepo.ErrAssignmentsNotFound):
			// Drawn with nothing stored; store as a first draw
		default:
			return nil, err
		}
	}

	generated, err := s.engine.Generate(&assignment.GenerateInput{
		EventID:      snapshot.ID,
		Participants: snapshot.Participants,
		Exclusions:   snapshot.Exclusions,
		Seed:         input.Seed,
	})
	if err != nil {
		s.logger.Warn("draw failed",
			zap.String("event_id", snapshot.ID),
			zap.Int("participants", len(snapshot.Participants)),
			zap.Int("exclusions", len(snapshot.Exclusions)),
			zap.Error(err))
		return nil, err
	}

	now := s.clock.Now()
	set := &models.AssignmentSet{
		EventID:     snapshot.ID,
		DrawID:      s.uuidGenerator.NewUUID(),
		Assignments: generated.Assignments,
		Seed:        generated.Seed,
		Strategy:    generated.Strategy,
		Attempts:    generated.Attempts,
		CreatedAt:   now,
	}

	if err := s.storeDraw(ctx, set, expectedDrawID); err != nil {
		return nil, err
	}

	event, err := s.updateEvent(ctx, snapshot.ID, func(event *models.Event) error {
		if event.Phase != snapshot.Phase || !event.Phase.CanTransitionTo(models.EventPhaseDrawn) {
			return fmt.Errorf("%w: event moved to %s during the draw", ErrPhaseConflict, event.Phase)
		}
		if !sameRoster(event, snapshot) {
			return fmt.Errorf("%w: participants or exclusions changed during the draw", ErrPhaseConflict)
		}

		event.Phase = models.EventPhaseDrawn
		event.DrawnAt = &now
		event.UpdatedAt = now
		return nil
	})
	if err != nil {
		s.withdrawDraw(ctx, set, expectedDrawID)
		return nil, err
	}

	s.logger.Info("draw stored",
		zap.String("event_id", event.ID),
		zap.String("draw_id", set.DrawID),
		zap.String("strategy", string(set.Strategy)),
		zap.Int("attempts", set.Attempts),
		zap.Int("participants", len(set.Assignments)),
		zap.Bool("redraw", expectedDrawID != ""))

	return &RunDrawOutput{
		Event:    event,
		DrawID:   set.DrawID,
		Strategy: set.Strategy,
		Attempts: set.Attempts,
	}, nil
}

// storeDraw writes a first draw conditionally, or replaces expectedDrawID
func (s *service) storeDraw(ctx context.Context, set *models.AssignmentSet, expectedDrawID string) error {
	if expectedDrawID == "" {
		err := s.assignmentRepo.SaveAssignmentsIfAbsent(ctx, &assignmentRepo.SaveAssignmentsInput{
			Set: set,
		})
		if errors.Is(err, assignmentRepo.ErrAssignmentsExist) {
			return ErrDrawAlreadyCompleted
		}
		return err
	}

	err := s.assignmentRepo.ReplaceAssignments(ctx, &assignmentRepo.ReplaceAssignmentsInput{
		Set:            set,
		ExpectedDrawID: expectedDrawID,
	})
	if errors.Is(err, assignmentRepo.ErrDrawMismatch) || errors.Is(err, assignmentRepo.ErrAssignmentsNotFound) {
		return fmt.Errorf("%w: another redraw finished first", ErrDrawAlreadyCompleted)
	}
	return err
}

// withdrawDraw removes a first draw whose event could not be moved to drawn.
// A replaced set cannot be rolled back and is left in place.
func (s *service) withdrawDraw(ctx context.Context, set *models.AssignmentSet, expectedDrawID string) {
	if expectedDrawID != "" {
		s.logger.Error("redraw stored but event not updated",
			zap.String("event_id", set.EventID),
			zap.String("draw_id", set.DrawID))
		return
	}

	err := s.assignmentRepo.DeleteAssignments(ctx, &assignmentRepo.DeleteAssignmentsInput{
		EventID: set.EventID,
		DrawID:  set.DrawID,
	})
	if err != nil && !errors.Is(err, assignmentRepo.ErrAssignmentsNotFound) {
		s.logger.Error("failed to withdraw draw",
			zap.String("event_id", set.EventID),
			zap.String("draw_id", set.DrawID),
			zap.Error(err))
	}
}

// CompleteEvent ends the exchange and makes every pairing visible
func (s *service) CompleteEvent(ctx context.Context, input *CompleteEventInput) (*CompleteEventOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input cannot be nil", ErrInvalidInput)
	}

	event, err := s.transition(ctx, input.EventID, input.Actor, models.EventPhaseDrawn, models.EventPhaseCompleted)
	if err != nil {
		return nil, err
	}

	s.logger.Info("event completed", zap.String("event_id", event.ID))

	return &CompleteEventOutput{
		Event: event,
	}, nil
}

// CompletePastEvents completes drawn events whose date has passed. A failure
// on one event is logged and the sweep moves on.
func (s *service) CompletePastEvents(ctx context.Context, input *CompletePastEventsInput) (*CompletePastEventsOutput, error) {
	now := s.clock.Now()
	if input != nil && !input.Now.IsZero() {
		now = input.Now
	}

	drawn, err := s.eventRepo.ListEventsByPhase(ctx, &eventRepo.ListEventsByPhaseInput{
		Phase: models.EventPhaseDrawn,
	})
	if err != nil {
		return nil, err
	}

	output := &CompletePastEventsOutput{
		CompletedEventIDs: []string{},
	}
	for _, event := range drawn.Events {
		if event.EventDate == nil || now.Before(*event.EventDate) {
			continue
		}

		_, err := s.eventRepo.TransitionPhase(ctx, &eventRepo.TransitionPhaseInput{
			EventID: event.ID,
			From:    models.EventPhaseDrawn,
			To:      models.EventPhaseCompleted,
			At:      now,
		})
		if err != nil {
			if errors.Is(err, eventRepo.ErrPhaseConflict) || errors.Is(err, eventRepo.ErrEventNotFound) {
				s.logger.Debug("event changed before sweep", zap.String("event_id", event.ID), zap.Error(err))
				continue
			}
			s.logger.Error("failed to complete past event", zap.String("event_id", event.ID), zap.Error(err))
			continue
		}

		output.CompletedEventIDs = append(output.CompletedEventIDs, event.ID)
	}

	if len(output.CompletedEventIDs) > 0 {
		s.logger.Info("completed past events", zap.Strings("event_ids", output.CompletedEventIDs))
	}

	return output, nil
}

// GetVisibleAssignments returns the assignments a viewer may see. The first
// time a giver is shown their own receiver the reveal time is recorded.
func (s *service) GetVisibleAssignments(ctx context.Context, input *GetVisibleAssignmentsInput) (*GetVisibleAssignmentsOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input cannot be nil", ErrInvalidInput)
	}

	event, err := s.getEvent(ctx, input.EventID)
	if err != nil {
		return nil, err
	}

	var viewerID string
	if viewer := participantFor(event, input.Viewer); viewer != nil {
		viewerID = viewer.ID
	}
	isOrganizer := event.IsOrganizer(input.Viewer.Email, input.Viewer.DiscordUserID)

	output := &GetVisibleAssignmentsOutput{
		EventID:             event.ID,
		Phase:               event.Phase,
		Scope:               assignment.ScopeFor(event.Phase, viewerID, isOrganizer),
		ViewerParticipantID: viewerID,
		Assignments:         []*VisibleAssignment{},
	}

	// Nothing has been drawn yet
	if event.Phase.IsEditable() {
		return output, nil
	}

	set, err := s.assignmentRepo.GetAssignments(ctx, &assignmentRepo.GetAssignmentsInput{
		EventID: event.ID,
	})
	if err != nil {
		if errors.Is(err, assignmentRepo.ErrAssignmentsNotFound) {
			return output, nil
		}
		return nil, err
	}

	visible := assignment.ResolveVisibleAssignments(&assignment.ResolveInput{
		Assignments:         set.Assignments,
		Phase:               event.Phase,
		ViewerParticipantID: viewerID,
		ViewerIsOrganizer:   isOrganizer,
	})

	for _, a := range visible {
		if viewerID != "" && a.GiverID == viewerID && a.RevealedAt == nil {
			revealed, err := s.assignmentRepo.MarkRevealed(ctx, &assignmentRepo.MarkRevealedInput{
				EventID: event.ID,
				GiverID: viewerID,
				At:      s.clock.Now(),
			})
			if err != nil {
				return nil, err
			}
			a.RevealedAt = &revealed.RevealedAt
			output.FirstReveal = revealed.FirstReveal
		}

		output.Assignments = append(output.Assignments, describe(event, a))
	}

	return output, nil
}

// getEvent loads an event and maps repository errors
func (s *service) getEvent(ctx context.Context, eventID string) (*models.Event, error) {
	if eventID == "" {
		return nil, fmt.Errorf("%w: event ID is required", ErrInvalidInput)
	}

	event, err := s.eventRepo.GetEvent(ctx, &eventRepo.GetEventInput{
		EventID: eventID,
	})
	if err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	return event, nil
}

// updateEvent runs mutate against the latest stored event. Errors returned
// by mutate come back unchanged.
func (s *service) updateEvent(ctx context.Context, eventID string, mutate func(event *models.Event) error) (*models.Event, error) {
	if eventID == "" {
		return nil, fmt.Errorf("%w: event ID is required", ErrInvalidInput)
	}

	event, err := s.eventRepo.UpdateEvent(ctx, &eventRepo.UpdateEventInput{
		EventID: eventID,
		Mutate:  mutate,
	})
	if err != nil {
		return nil, mapRepoError(err)
	}

	return event, nil
}

// transition moves an organizer's event between two phases
func (s *service) transition(ctx context.Context, eventID string, actor Actor, from, to models.EventPhase) (*models.Event, error) {
	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := requireOrganizer(event, actor); err != nil {
		return nil, err
	}
	if event.Phase != from {
		return nil, fmt.Errorf("%w: event is %s", ErrInvalidPhase, event.Phase)
	}

	updated, err := s.eventRepo.TransitionPhase(ctx, &eventRepo.TransitionPhaseInput{
		EventID: eventID,
		From:    from,
		To:      to,
		At:      s.clock.Now(),
	})
	if err != nil {
		return nil, mapRepoError(err)
	}

	return updated, nil
}

// clearAssignments removes any stored set for an event
func (s *service) clearAssignments(ctx context.Context, eventID string) error {
	err := s.assignmentRepo.DeleteAssignments(ctx, &assignmentRepo.DeleteAssignmentsInput{
		EventID: eventID,
	})
	if err != nil && !errors.Is(err, assignmentRepo.ErrAssignmentsNotFound) {
		return err
	}
	return nil
}

func mapRepoError(err error) error {
	switch {
	case errors.Is(err, eventRepo.ErrEventNotFound):
		return ErrEventNotFound
	case errors.Is(err, eventRepo.ErrPhaseConflict):
		return fmt.Errorf("%w: %v", ErrPhaseConflict, err)
	default:
		return err
	}
}

func requireOrganizer(event *models.Event, actor Actor) error {
	if !event.IsOrganizer(actor.Email, actor.DiscordUserID) {
		return ErrNotOrganizer
	}
	return nil
}

func requireEditable(event *models.Event) error {
	if !event.Phase.IsEditable() {
		return fmt.Errorf("%w: event is %s", ErrInvalidPhase, event.Phase)
	}
	return nil
}

// participantFor finds the viewer's participant record by email, then Discord user
func participantFor(event *models.Event, actor Actor) *models.Participant {
	if p := event.ParticipantByEmail(actor.Email); p != nil {
		return p
	}
	return event.ParticipantByDiscordID(actor.DiscordUserID)
}

func isSelf(participant *models.Participant, actor Actor) bool {
	if participant.HasEmail(actor.Email) {
		return true
	}
	return actor.DiscordUserID != "" && participant.DiscordUserID == actor.DiscordUserID
}

// sameRoster reports whether the draw inputs of two event versions match
func sameRoster(a, b *models.Event) bool {
	return slices.Equal(a.ParticipantIDs(), b.ParticipantIDs()) &&
		slices.Equal(a.Exclusions, b.Exclusions)
}

// cleanWishlist trims entries and drops blanks
func cleanWishlist(items []string) []string {
	cleaned := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			cleaned = append(cleaned, item)
		}
	}
	return cleaned
}

func describe(event *models.Event, a *models.Assignment) *VisibleAssignment {
	visible := &VisibleAssignment{
		GiverID:    a.GiverID,
		ReceiverID: a.ReceiverID,
		RevealedAt: a.RevealedAt,
	}
	if giver := event.FindParticipant(a.GiverID); giver != nil {
		visible.GiverName = giver.Name
	}
	if receiver := event.FindParticipant(a.ReceiverID); receiver != nil {
		visible.ReceiverName = receiver.Name
		visible.ReceiverWishlist = slices.Clone(receiver.Wishlist)
	}
	return visible
}
