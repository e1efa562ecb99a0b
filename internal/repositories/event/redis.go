package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KirkDiggler/secretsanta/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	eventKeyPrefix     = "event:"
	phaseKeyPrefix     = "events_by_phase:"
	organizerKeyPrefix = "organizer_events:"

	// maxWatchRetries bounds optimistic retries when another writer touches the event
	maxWatchRetries = 5
)

// Config holds configuration for the Redis event repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed event repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

func eventKey(eventID string) string {
	return fmt.Sprintf("%s%s", eventKeyPrefix, eventID)
}

func phaseKey(phase models.EventPhase) string {
	return fmt.Sprintf("%s%s", phaseKeyPrefix, phase)
}

func organizerKey(email string) string {
	return fmt.Sprintf("%s%s", organizerKeyPrefix, models.NormalizeEmail(email))
}

// queueWrite adds the event body and its index entries to a transaction
func queueWrite(ctx context.Context, pipe redis.Pipeliner, event *models.Event, eventJSON []byte) {
	pipe.Set(ctx, eventKey(event.ID), eventJSON, 0)

	// An event lives in exactly one phase set
	for _, phase := range models.EventPhases {
		if phase == event.Phase {
			pipe.SAdd(ctx, phaseKey(phase), event.ID)
		} else {
			pipe.SRem(ctx, phaseKey(phase), event.ID)
		}
	}

	if event.OrganizerEmail != "" {
		pipe.SAdd(ctx, organizerKey(event.OrganizerEmail), event.ID)
	}
}

// SaveEvent persists an event to Redis
func (r *redisRepository) SaveEvent(ctx context.Context, input *SaveEventInput) error {
	if input == nil || input.Event == nil {
		return errors.New("input and event cannot be nil")
	}

	if input.Event.ID == "" {
		return errors.New("event ID cannot be empty")
	}

	eventJSON, err := json.Marshal(input.Event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		queueWrite(ctx, pipe, input.Event, eventJSON)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save event: %w", err)
	}

	return nil
}

// GetEvent retrieves an event by ID from Redis
func (r *redisRepository) GetEvent(ctx context.Context, input *GetEventInput) (*models.Event, error) {
	if input == nil || input.EventID == "" {
		return nil, errors.New("input and event ID cannot be empty")
	}

	eventJSON, err := r.client.Get(ctx, eventKey(input.EventID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	var event models.Event
	if err := json.Unmarshal(eventJSON, &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}

	return &event, nil
}

// UpdateEvent reads, mutates and writes an event under WATCH so a concurrent
// writer forces a retry instead of a lost update
func (r *redisRepository) UpdateEvent(ctx context.Context, input *UpdateEventInput) (*models.Event, error) {
	if input == nil || input.EventID == "" || input.Mutate == nil {
		return nil, errors.New("input, event ID and mutate cannot be empty")
	}

	key := eventKey(input.EventID)
	var updated *models.Event

	txf := func(tx *redis.Tx) error {
		eventJSON, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return ErrEventNotFound
			}
			return fmt.Errorf("failed to get event: %w", err)
		}

		var event models.Event
		if err := json.Unmarshal(eventJSON, &event); err != nil {
			return fmt.Errorf("failed to unmarshal event: %w", err)
		}

		if err := input.Mutate(&event); err != nil {
			return err
		}
		// The id is the key; a mutation cannot move the event
		event.ID = input.EventID

		newJSON, err := json.Marshal(&event)
		if err != nil {
			return fmt.Errorf("failed to marshal event: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			queueWrite(ctx, pipe, &event, newJSON)
			return nil
		})
		if err != nil {
			return err
		}

		updated = &event
		return nil
	}

	for i := 0; i < maxWatchRetries; i++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return updated, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, err
	}

	return nil, fmt.Errorf("%w: gave up after %d retries", ErrPhaseConflict, maxWatchRetries)
}

// TransitionPhase moves the event to a new phase only if it is still in the expected one
func (r *redisRepository) TransitionPhase(ctx context.Context, input *TransitionPhaseInput) (*models.Event, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	return r.UpdateEvent(ctx, &UpdateEventInput{
		EventID: input.EventID,
		Mutate: func(event *models.Event) error {
			return applyTransition(event, input)
		},
	})
}

// DeleteEvent removes an event from Redis
func (r *redisRepository) DeleteEvent(ctx context.Context, input *DeleteEventInput) error {
	if input == nil || input.EventID == "" {
		return errors.New("input and event ID cannot be empty")
	}

	// Get the event first to find its organizer index
	event, err := r.GetEvent(ctx, &GetEventInput{
		EventID: input.EventID,
	})
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, eventKey(input.EventID))
	for _, phase := range models.EventPhases {
		pipe.SRem(ctx, phaseKey(phase), input.EventID)
	}
	if event.OrganizerEmail != "" {
		pipe.SRem(ctx, organizerKey(event.OrganizerEmail), input.EventID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	return nil
}

// ListEventsByPhase retrieves all events in a phase from Redis
func (r *redisRepository) ListEventsByPhase(ctx context.Context, input *ListEventsByPhaseInput) (*ListEventsOutput, error) {
	if input == nil || !input.Phase.Valid() {
		return nil, errors.New("input must name a valid phase")
	}

	eventIDs, err := r.client.SMembers(ctx, phaseKey(input.Phase)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get event IDs for phase %s: %w", input.Phase, err)
	}

	return r.getEvents(ctx, eventIDs)
}

// ListEventsByOrganizer retrieves all events for an organizer from Redis
func (r *redisRepository) ListEventsByOrganizer(ctx context.Context, input *ListEventsByOrganizerInput) (*ListEventsOutput, error) {
	if input == nil || models.NormalizeEmail(input.OrganizerEmail) == "" {
		return nil, errors.New("input and organizer email cannot be empty")
	}

	eventIDs, err := r.client.SMembers(ctx, organizerKey(input.OrganizerEmail)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get event IDs for organizer: %w", err)
	}

	return r.getEvents(ctx, eventIDs)
}

// getEvents fetches events in one pipeline, skipping ids deleted in between
func (r *redisRepository) getEvents(ctx context.Context, eventIDs []string) (*ListEventsOutput, error) {
	if len(eventIDs) == 0 {
		return &ListEventsOutput{
			Events: []*models.Event{},
		}, nil
	}

	pipe := r.client.Pipeline()
	commands := make([]*redis.StringCmd, len(eventIDs))
	for i, eventID := range eventIDs {
		commands[i] = pipe.Get(ctx, eventKey(eventID))
	}

	// redis.Nil from a single GET is handled per command below
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}

	events := make([]*models.Event, 0, len(eventIDs))
	for i, cmd := range commands {
		eventJSON, err := cmd.Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, fmt.Errorf("failed to get event %s: %w", eventIDs[i], err)
		}

		var event models.Event
		if err := json.Unmarshal(eventJSON, &event); err != nil {
			return nil, fmt.Errorf("failed to unmarshal event %s: %w", eventIDs[i], err)
		}
		events = append(events, &event)
	}

	return &ListEventsOutput{
		Events: events,
	}, nil
}
