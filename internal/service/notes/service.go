package notes

import (
	"context"
	"time"

	"github.com/dnestruev/VALERA-2.0/internal/model"
	"github.com/dnestruev/VALERA-2.0/internal/repository/notes"
)

type DefaultService struct {
	repo notes.Repository
}

func NewDefaultService(repo notes.Repository) *DefaultService {
	return &DefaultService{repo: repo}
}

func (d *DefaultService) EnsureUserExists(ctx context.Context, user model.User) error {
	exists, err := d.repo.UserExists(ctx, user.ID)
	if err != nil {
		return err
	}

	if !exists {
		err = d.repo.CreateUser(ctx, model.User{
			ID:       user.ID,
			Username: user.Username,
		})

		if err != nil {
			return err
		}
	}

	return nil
}

func (d *DefaultService) Create(ctx context.Context, note model.Note) (model.NoteID, error) {
	return d.repo.CreateNote(ctx, note)
}

func (d *DefaultService) List(ctx context.Context, userID model.UserID) ([]model.Note, error) {
	return d.repo.ListNotes(ctx, userID)
}

func (d *DefaultService) SetPremiumUntil(ctx context.Context, userID model.UserID, until time.Time) error {
	return d.repo.SetPremiumUntil(ctx, userID, until)
}

func (d *DefaultService) GetPremiumUntil(ctx context.Context, userID model.UserID) (*time.Time, error) {
	return d.repo.GetPremiumUntil(ctx, userID)
}
