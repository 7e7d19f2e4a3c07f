package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dnestruev/VALERA-2.0/infrastructure/tracing"
	"github.com/dnestruev/VALERA-2.0/internal/model"
	_ "github.com/lib/pq"

	"github.com/Masterminds/squirrel"
)

type DefaultRepository struct {
	db *sql.DB
}

func NewDefaultRepository(pg *sql.DB) *DefaultRepository {
	return &DefaultRepository{pg}
}

func (d *DefaultRepository) UserExists(ctx context.Context, userID model.UserID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`
	err := d.db.QueryRowContext(ctx, query, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to get user '%d' exists: %w", userID, err)
	}
	return exists, nil
}

func (d *DefaultRepository) CreateUser(ctx context.Context, user model.User) error {
	query := `
		INSERT INTO users (id, username, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (id) DO NOTHING
	`
	if _, err := d.db.ExecContext(ctx, query, user.ID, user.Username); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (d *DefaultRepository) CreateNote(ctx context.Context, note model.Note) (model.NoteID, error) {
	query := `
		INSERT INTO notes (user_id, text, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id
	`

	var noteID model.NoteID
	err := d.db.QueryRowContext(ctx, query, note.UserID, note.Text).Scan(&noteID)
	if err != nil {
		return 0, fmt.Errorf("failed to create note: %w", err)
	}

	return noteID, nil
}

func (d *DefaultRepository) ListNotes(ctx context.Context, userID model.UserID) ([]model.Note, error) {
	ctx, span := tracing.StartSpan(ctx, "ListNotes_repo")
	defer span.End()

	queryBuilder := squirrel.
		Select("id",
			"user_id",
			"text",
			"created_at").
		From("notes").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("id").
		PlaceholderFormat(squirrel.Dollar)

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	var notes []model.Note
	for rows.Next() {
		var note model.Note
		if err = rows.Scan(&note.ID, &note.UserID, &note.Text, &note.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, note)
	}

	return notes, nil
}

func (d *DefaultRepository) SetPremiumUntil(ctx context.Context, userID model.UserID, until time.Time) error {
	query := `
		INSERT INTO users (id, username, premium_until, created_at)
		VALUES ($1, '', $2, NOW())
		ON CONFLICT (id) DO UPDATE SET premium_until = EXCLUDED.premium_until
	`

	if _, err := d.db.ExecContext(ctx, query, userID, until); err != nil {
		return fmt.Errorf("failed to set premium for user %d: %w", userID, err)
	}

	return nil
}

func (d *DefaultRepository) GetPremiumUntil(ctx context.Context, userID model.UserID) (*time.Time, error) {
	var until sql.NullTime
	query := `SELECT premium_until FROM users WHERE id = $1`
	err := d.db.QueryRowContext(ctx, query, userID).Scan(&until)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get premium for user '%d': %w", userID, err)
	}

	if !until.Valid {
		return nil, nil
	}
	return &until.Time, nil
}
