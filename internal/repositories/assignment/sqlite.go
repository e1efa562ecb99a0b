package assignment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/secretsanta/internal/models"
)

const createAssignmentTablesSQL = `
CREATE TABLE IF NOT EXISTS assignment_sets (
	event_id TEXT PRIMARY KEY,
	draw_id TEXT NOT NULL,
	seed INTEGER NOT NULL,
	strategy TEXT NOT NULL,
	attempts INTEGER NOT NULL,
	created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS assignments (
	event_id TEXT NOT NULL REFERENCES assignment_sets(event_id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	giver_id TEXT NOT NULL,
	receiver_id TEXT NOT NULL,
	revealed_at TEXT,
	PRIMARY KEY (event_id, giver_id),
	UNIQUE (event_id, receiver_id)
);
`

// SQLiteConfig holds configuration for the SQLite assignment repository
type SQLiteConfig struct {
	DB *sql.DB
}

// sqliteRepository implements the Repository interface using SQLite.
// The set header and its rows are written in one transaction, and the
// header's primary key makes the first writer win.
type sqliteRepository struct {
	db *sql.DB
}

// NewSQLite creates a new SQLite-backed assignment repository and its tables
func NewSQLite(ctx context.Context, cfg *SQLiteConfig) (*sqliteRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.DB == nil {
		return nil, errors.New("database cannot be nil")
	}

	if _, err := cfg.DB.ExecContext(ctx, createAssignmentTablesSQL); err != nil {
		return nil, fmt.Errorf("failed to create assignment tables: %w", err)
	}

	return &sqliteRepository{
		db: cfg.DB,
	}, nil
}

func insertRows(ctx context.Context, tx *sql.Tx, set *models.AssignmentSet) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO assignments (event_id, position, giver_id, receiver_id, revealed_at)
		VALUES (?, ?, ?, ?, NULL)`)
	if err != nil {
		return fmt.Errorf("failed to prepare assignment insert: %w", err)
	}
	defer stmt.Close()

	for i, a := range set.Assignments {
		if _, err := stmt.ExecContext(ctx, set.EventID, i, a.GiverID, a.ReceiverID); err != nil {
			return fmt.Errorf("failed to insert assignment for %s: %w", a.GiverID, err)
		}
	}
	return nil
}

// SaveAssignmentsIfAbsent stores the set only if the event has none
func (r *sqliteRepository) SaveAssignmentsIfAbsent(ctx context.Context, input *SaveAssignmentsInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}
	if err := validateSet(input.Set); err != nil {
		return err
	}
	set := input.Set

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO assignment_sets (event_id, draw_id, seed, strategy, attempts, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(event_id) DO NOTHING`,
		set.EventID, set.DrawID, set.Seed, string(set.Strategy), set.Attempts,
		set.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to save assignment set: %w", err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to save assignment set: %w", err)
	}
	if inserted == 0 {
		return ErrAssignmentsExist
	}

	if err := insertRows(ctx, tx, set); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit assignments: %w", err)
	}
	return nil
}

// ReplaceAssignments swaps in a new draw if the stored one is still ExpectedDrawID
func (r *sqliteRepository) ReplaceAssignments(ctx context.Context, input *ReplaceAssignmentsInput) error {
	if input == nil || input.ExpectedDrawID == "" {
		return errors.New("input and expected draw ID cannot be empty")
	}
	if err := validateSet(input.Set); err != nil {
		return err
	}
	set := input.Set

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var currentDrawID string
	err = tx.QueryRowContext(ctx, `SELECT draw_id FROM assignment_sets WHERE event_id = ?`, set.EventID).Scan(&currentDrawID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrAssignmentsNotFound
		}
		return fmt.Errorf("failed to get assignment set: %w", err)
	}
	if currentDrawID != input.ExpectedDrawID {
		return fmt.Errorf("%w: expected %s, found %s", ErrDrawMismatch, input.ExpectedDrawID, currentDrawID)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM assignments WHERE event_id = ?`, set.EventID); err != nil {
		return fmt.Errorf("failed to clear assignments: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE assignment_sets
		SET draw_id = ?, seed = ?, strategy = ?, attempts = ?, created_at = ?
		WHERE event_id = ?`,
		set.DrawID, set.Seed, string(set.Strategy), set.Attempts,
		set.CreatedAt.UTC().Format(time.RFC3339Nano), set.EventID,
	)
	if err != nil {
		return fmt.Errorf("failed to update assignment set: %w", err)
	}

	if err := insertRows(ctx, tx, set); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit assignments: %w", err)
	}
	return nil
}

// GetAssignments retrieves the set for an event in draw order
func (r *sqliteRepository) GetAssignments(ctx context.Context, input *GetAssignmentsInput) (*models.AssignmentSet, error) {
	if input == nil || input.EventID == "" {
		return nil, errors.New("input and event ID cannot be empty")
	}

	// The header and rows must come from the same draw
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	set := &models.AssignmentSet{EventID: input.EventID}
	var strategy, createdAt string
	err = tx.QueryRowContext(ctx, `
		SELECT draw_id, seed, strategy, attempts, created_at
		FROM assignment_sets WHERE event_id = ?`, input.EventID,
	).Scan(&set.DrawID, &set.Seed, &strategy, &set.Attempts, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAssignmentsNotFound
		}
		return nil, fmt.Errorf("failed to get assignment set: %w", err)
	}
	set.Strategy = models.DrawStrategy(strategy)
	if set.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse draw time: %w", err)
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT giver_id, receiver_id, revealed_at
		FROM assignments WHERE event_id = ? ORDER BY position`, input.EventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		a := &models.Assignment{EventID: input.EventID}
		var revealedAt sql.NullString
		if err := rows.Scan(&a.GiverID, &a.ReceiverID, &revealedAt); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		if revealedAt.Valid {
			t, err := time.Parse(time.RFC3339Nano, revealedAt.String)
			if err != nil {
				return nil, fmt.Errorf("failed to parse reveal time for %s: %w", a.GiverID, err)
			}
			a.RevealedAt = &t
		}
		set.Assignments = append(set.Assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get assignments: %w", err)
	}
	rows.Close()

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit assignment read: %w", err)
	}
	return set, nil
}

// MarkRevealed stores the reveal time unless one is already recorded
func (r *sqliteRepository) MarkRevealed(ctx context.Context, input *MarkRevealedInput) (*MarkRevealedOutput, error) {
	if input == nil || input.EventID == "" || input.GiverID == "" {
		return nil, errors.New("input, event ID and giver ID cannot be empty")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE assignments SET revealed_at = ?
		WHERE event_id = ? AND giver_id = ? AND revealed_at IS NULL`,
		input.At.UTC().Format(time.RFC3339Nano), input.EventID, input.GiverID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to mark reveal: %w", err)
	}
	updated, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to mark reveal: %w", err)
	}

	var revealedAt sql.NullString
	err = tx.QueryRowContext(ctx, `
		SELECT revealed_at FROM assignments WHERE event_id = ? AND giver_id = ?`,
		input.EventID, input.GiverID,
	).Scan(&revealedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, r.missingGiver(ctx, tx, input.EventID)
		}
		return nil, fmt.Errorf("failed to read reveal: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit reveal: %w", err)
	}

	at, err := time.Parse(time.RFC3339Nano, revealedAt.String)
	if err != nil {
		return nil, fmt.Errorf("failed to parse reveal time: %w", err)
	}

	return &MarkRevealedOutput{
		RevealedAt:  at,
		FirstReveal: updated == 1,
	}, nil
}

// missingGiver tells an unknown event apart from an unknown giver
func (r *sqliteRepository) missingGiver(ctx context.Context, tx *sql.Tx, eventID string) error {
	var exists int
	err := tx.QueryRowContext(ctx, `SELECT 1 FROM assignment_sets WHERE event_id = ?`, eventID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrAssignmentsNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get assignment set: %w", err)
	}
	return ErrGiverNotFound
}

// DeleteAssignments removes the set and its rows
func (r *sqliteRepository) DeleteAssignments(ctx context.Context, input *DeleteAssignmentsInput) error {
	if input == nil || input.EventID == "" {
		return errors.New("input and event ID cannot be empty")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if input.DrawID != "" {
		var currentDrawID string
		err := tx.QueryRowContext(ctx, `SELECT draw_id FROM assignment_sets WHERE event_id = ?`, input.EventID).Scan(&currentDrawID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrAssignmentsNotFound
			}
			return fmt.Errorf("failed to get assignment set: %w", err)
		}
		if currentDrawID != input.DrawID {
			return fmt.Errorf("%w: expected %s, found %s", ErrDrawMismatch, input.DrawID, currentDrawID)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM assignments WHERE event_id = ?`, input.EventID); err != nil {
		return fmt.Errorf("failed to delete assignments: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM assignment_sets WHERE event_id = ?`, input.EventID)
	if err != nil {
		return fmt.Errorf("failed to delete assignment set: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete assignment set: %w", err)
	}
	if deleted == 0 {
		return ErrAssignmentsNotFound
	}

	return tx.Commit()
}
