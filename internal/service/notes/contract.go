package notes

import (
	"context"
	"time"

	"github.com/dnestruev/VALERA-2.0/internal/model"
)

type (
	Service interface {
		EnsureUserExists(ctx context.Context, user model.User) error
		Create(ctx context.Context, note model.Note) (model.NoteID, error)
		List(ctx context.Context, userID model.UserID) ([]model.Note, error)
		SetPremiumUntil(ctx context.Context, userID model.UserID, until time.Time) error
		GetPremiumUntil(ctx context.Context, userID model.UserID) (*time.Time, error)
	}
)
