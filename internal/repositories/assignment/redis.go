package assignment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/secretsanta/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	assignmentsKeyPrefix = "assignments:"
	revealsKeyPrefix     = "assignment_reveals:"

	maxWatchRetries = 5
)

// Config holds configuration for the Redis assignment repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis.
//
// The whole set lives in one JSON value so it is written atomically with
// SETNX. Reveal times live in a hash per draw, written with HSETNX so the
// first reveal wins.
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed assignment repository
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

func assignmentsKey(eventID string) string {
	return fmt.Sprintf("%s%s", assignmentsKeyPrefix, eventID)
}

func revealsKey(eventID, drawID string) string {
	return fmt.Sprintf("%s%s:%s", revealsKeyPrefix, eventID, drawID)
}

// marshalSet encodes a set without reveal times, which are stored separately
func marshalSet(set *models.AssignmentSet) ([]byte, error) {
	stored := *set
	stored.Assignments = make([]*models.Assignment, len(set.Assignments))
	for i, a := range set.Assignments {
		record := *a
		record.RevealedAt = nil
		stored.Assignments[i] = &record
	}

	setJSON, err := json.Marshal(&stored)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal assignment set: %w", err)
	}
	return setJSON, nil
}

func unmarshalSet(setJSON []byte) (*models.AssignmentSet, error) {
	var set models.AssignmentSet
	if err := json.Unmarshal(setJSON, &set); err != nil {
		return nil, fmt.Errorf("failed to unmarshal assignment set: %w", err)
	}
	return &set, nil
}

// SaveAssignmentsIfAbsent stores the set only if the event has none
func (r *redisRepository) SaveAssignmentsIfAbsent(ctx context.Context, input *SaveAssignmentsInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}
	if err := validateSet(input.Set); err != nil {
		return err
	}

	setJSON, err := marshalSet(input.Set)
	if err != nil {
		return err
	}

	stored, err := r.client.SetNX(ctx, assignmentsKey(input.Set.EventID), setJSON, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to save assignments: %w", err)
	}
	if !stored {
		return ErrAssignmentsExist
	}

	return nil
}

// watch runs txf under WATCH on key, retrying when another writer interferes
func (r *redisRepository) watch(ctx context.Context, key string, txf func(tx *redis.Tx) error) error {
	for i := 0; i < maxWatchRetries; i++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("assignments at %s kept changing after %d retries: %w", key, maxWatchRetries, redis.TxFailedErr)
}

// ReplaceAssignments swaps in a new draw if the stored one is still ExpectedDrawID
func (r *redisRepository) ReplaceAssignments(ctx context.Context, input *ReplaceAssignmentsInput) error {
	if input == nil || input.ExpectedDrawID == "" {
		return errors.New("input and expected draw ID cannot be empty")
	}
	if err := validateSet(input.Set); err != nil {
		return err
	}

	setJSON, err := marshalSet(input.Set)
	if err != nil {
		return err
	}

	key := assignmentsKey(input.Set.EventID)
	return r.watch(ctx, key, func(tx *redis.Tx) error {
		currentJSON, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return ErrAssignmentsNotFound
			}
			return fmt.Errorf("failed to get assignments: %w", err)
		}

		current, err := unmarshalSet(currentJSON)
		if err != nil {
			return err
		}
		if current.DrawID != input.ExpectedDrawID {
			return fmt.Errorf("%w: expected %s, found %s", ErrDrawMismatch, input.ExpectedDrawID, current.DrawID)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, setJSON, 0)
			pipe.Del(ctx, revealsKey(current.EventID, current.DrawID))
			return nil
		})
		return err
	})
}

// GetAssignments retrieves the set for an event and merges in reveal times
func (r *redisRepository) GetAssignments(ctx context.Context, input *GetAssignmentsInput) (*models.AssignmentSet, error) {
	if input == nil || input.EventID == "" {
		return nil, errors.New("input and event ID cannot be empty")
	}

	setJSON, err := r.client.Get(ctx, assignmentsKey(input.EventID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrAssignmentsNotFound
		}
		return nil, fmt.Errorf("failed to get assignments: %w", err)
	}

	set, err := unmarshalSet(setJSON)
	if err != nil {
		return nil, err
	}

	reveals, err := r.client.HGetAll(ctx, revealsKey(set.EventID, set.DrawID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get reveals: %w", err)
	}

	for _, a := range set.Assignments {
		raw, ok := reveals[a.GiverID]
		if !ok {
			continue
		}
		revealedAt, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse reveal time for %s: %w", a.GiverID, err)
		}
		a.RevealedAt = &revealedAt
	}

	return set, nil
}

// MarkRevealed stores the reveal time unless one is already recorded
func (r *redisRepository) MarkRevealed(ctx context.Context, input *MarkRevealedInput) (*MarkRevealedOutput, error) {
	if input == nil || input.EventID == "" || input.GiverID == "" {
		return nil, errors.New("input, event ID and giver ID cannot be empty")
	}

	key := assignmentsKey(input.EventID)
	var output *MarkRevealedOutput

	err := r.watch(ctx, key, func(tx *redis.Tx) error {
		setJSON, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return ErrAssignmentsNotFound
			}
			return fmt.Errorf("failed to get assignments: %w", err)
		}

		set, err := unmarshalSet(setJSON)
		if err != nil {
			return err
		}
		if set.ForGiver(input.GiverID) == nil {
			return ErrGiverNotFound
		}

		hashKey := revealsKey(set.EventID, set.DrawID)
		at := input.At.UTC().Format(time.RFC3339Nano)

		var setCmd *redis.BoolCmd
		var getCmd *redis.StringCmd
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			setCmd = pipe.HSetNX(ctx, hashKey, input.GiverID, at)
			getCmd = pipe.HGet(ctx, hashKey, input.GiverID)
			return nil
		})
		if err != nil {
			return err
		}

		revealedAt, err := time.Parse(time.RFC3339Nano, getCmd.Val())
		if err != nil {
			return fmt.Errorf("failed to parse reveal time: %w", err)
		}

		output = &MarkRevealedOutput{
			RevealedAt:  revealedAt,
			FirstReveal: setCmd.Val(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return output, nil
}

// DeleteAssignments removes the set and its reveals
func (r *redisRepository) DeleteAssignments(ctx context.Context, input *DeleteAssignmentsInput) error {
	if input == nil || input.EventID == "" {
		return errors.New("input and event ID cannot be empty")
	}

	key := assignmentsKey(input.EventID)
	return r.watch(ctx, key, func(tx *redis.Tx) error {
		setJSON, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return ErrAssignmentsNotFound
			}
			return fmt.Errorf("failed to get assignments: %w", err)
		}

		set, err := unmarshalSet(setJSON)
		if err != nil {
			return err
		}
		if input.DrawID != "" && set.DrawID != input.DrawID {
			return fmt.Errorf("%w: expected %s, found %s", ErrDrawMismatch, input.DrawID, set.DrawID)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key)
			pipe.Del(ctx, revealsKey(set.EventID, set.DrawID))
			return nil
		})
		return err
	})
}
