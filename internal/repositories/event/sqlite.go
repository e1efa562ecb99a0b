package event

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/secretsanta/internal/models"
)

const createEventsTableSQL = `
CREATE TABLE IF NOT EXISTS events (
	id TEXT PRIMARY KEY,
	organizer_email TEXT NOT NULL DEFAULT '',
	phase TEXT NOT NULL,
	body TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_events_phase ON events(phase);
CREATE INDEX IF NOT EXISTS idx_events_organizer ON events(organizer_email);
`

// SQLiteConfig holds configuration for the SQLite event repository
type SQLiteConfig struct {
	DB *sql.DB
}

// sqliteRepository implements the Repository interface using SQLite.
// The event is stored as a JSON body; phase and organizer are copied into
// columns for the list queries.
type sqliteRepository struct {
	db *sql.DB
}

// NewSQLite creates a new SQLite-backed event repository and its table
func NewSQLite(ctx context.Context, cfg *SQLiteConfig) (*sqliteRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.DB == nil {
		return nil, errors.New("database cannot be nil")
	}

	if _, err := cfg.DB.ExecContext(ctx, createEventsTableSQL); err != nil {
		return nil, fmt.Errorf("failed to create events table: %w", err)
	}

	return &sqliteRepository{
		db: cfg.DB,
	}, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsertEvent(ctx context.Context, db execer, event *models.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO events (id, organizer_email, phase, body, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			organizer_email = excluded.organizer_email,
			phase = excluded.phase,
			body = excluded.body,
			updated_at = excluded.updated_at`,
		event.ID,
		models.NormalizeEmail(event.OrganizerEmail),
		string(event.Phase),
		string(body),
		event.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to save event: %w", err)
	}
	return nil
}

// SaveEvent persists an event to SQLite
func (r *sqliteRepository) SaveEvent(ctx context.Context, input *SaveEventInput) error {
	if input == nil || input.Event == nil {
		return errors.New("input and event cannot be nil")
	}

	if input.Event.ID == "" {
		return errors.New("event ID cannot be empty")
	}

	return upsertEvent(ctx, r.db, input.Event)
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func loadEvent(ctx context.Context, db queryer, eventID string) (*models.Event, error) {
	var body string
	err := db.QueryRowContext(ctx, `SELECT body FROM events WHERE id = ?`, eventID).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	var event models.Event
	if err := json.Unmarshal([]byte(body), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	return &event, nil
}

// GetEvent retrieves an event by ID from SQLite
func (r *sqliteRepository) GetEvent(ctx context.Context, input *GetEventInput) (*models.Event, error) {
	if input == nil || input.EventID == "" {
		return nil, errors.New("input and event ID cannot be empty")
	}

	return loadEvent(ctx, r.db, input.EventID)
}

// UpdateEvent runs the mutation inside a write transaction
func (r *sqliteRepository) UpdateEvent(ctx context.Context, input *UpdateEventInput) (*models.Event, error) {
	if input == nil || input.EventID == "" || input.Mutate == nil {
		return nil, errors.New("input, event ID and mutate cannot be empty")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	event, err := loadEvent(ctx, tx, input.EventID)
	if err != nil {
		return nil, err
	}

	if err := input.Mutate(event); err != nil {
		return nil, err
	}
	event.ID = input.EventID

	if err := upsertEvent(ctx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit event update: %w", err)
	}

	return event, nil
}

// TransitionPhase moves the event to a new phase only if it is still in the expected one
func (r *sqliteRepository) TransitionPhase(ctx context.Context, input *TransitionPhaseInput) (*models.Event, error) {
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

// DeleteEvent removes an event from SQLite
func (r *sqliteRepository) DeleteEvent(ctx context.Context, input *DeleteEventInput) error {
	if input == nil || input.EventID == "" {
		return errors.New("input and event ID cannot be empty")
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, input.EventID)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if affected == 0 {
		return ErrEventNotFound
	}

	return nil
}

// ListEventsByPhase retrieves all events in a phase from SQLite
func (r *sqliteRepository) ListEventsByPhase(ctx context.Context, input *ListEventsByPhaseInput) (*ListEventsOutput, error) {
	if input == nil || !input.Phase.Valid() {
		return nil, errors.New("input must name a valid phase")
	}

	return r.listEvents(ctx, `SELECT body FROM events WHERE phase = ? ORDER BY id`, string(input.Phase))
}

// ListEventsByOrganizer retrieves all events for an organizer from SQLite
func (r *sqliteRepository) ListEventsByOrganizer(ctx context.Context, input *ListEventsByOrganizerInput) (*ListEventsOutput, error) {
	if input == nil || models.NormalizeEmail(input.OrganizerEmail) == "" {
		return nil, errors.New("input and organizer email cannot be empty")
	}

	return r.listEvents(ctx, `SELECT body FROM events WHERE organizer_email = ? ORDER BY id`, models.NormalizeEmail(input.OrganizerEmail))
}

func (r *sqliteRepository) listEvents(ctx context.Context, query string, args ...any) (*ListEventsOutput, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	events := []*models.Event{}
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}

		var event models.Event
		if err := json.Unmarshal([]byte(body), &event); err != nil {
			return nil, fmt.Errorf("failed to unmarshal event: %w", err)
		}
		events = append(events, &event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	return &ListEventsOutput{
		Events: events,
	}, nil
}
