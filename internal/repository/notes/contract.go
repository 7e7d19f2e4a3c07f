package notes

import (
	"context"
	"time"

	"github.com/dnestruev/VALERA-2.0/internal/model"
)

type (
	Repository interface {
		UserExists(ctx context.Context, userID model.UserID) (bool, error)
		CreateUser(ctx context.Context, user model.User) error
		CreateNote(ctx context.Context, note model.Note) (model.NoteID, error)
		ListNotes(ctx context.Context, userID model.UserID) ([]model.Note, error)
		SetPremiumUntil(ctx context.Context, userID model.UserID, until time.Time) error
		GetPremiumUntil(ctx context.Context, userID model.UserID) (*time.Time, error)
	}
)
