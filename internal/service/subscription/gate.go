package subscription

import (
	"context"
	"time"

	"github.com/dnestruev/VALERA-2.0/internal/model"
	"github.com/dnestruev/VALERA-2.0/internal/service/notes"
)

// Gate decides whether a user currently has an active premium subscription.
// The stored expiry is read fresh on every check, no caching.
type Gate struct {
	notes notes.Service
	now   func() time.Time
}

func NewGate(notes notes.Service) *Gate {
	return &Gate{notes: notes, now: time.Now}
}

// IsActive reports true iff the user has a stored expiry strictly in the future.
func (g *Gate) IsActive(ctx context.Context, userID model.UserID) (bool, error) {
	until, err := g.notes.GetPremiumUntil(ctx, userID)
	if err != nil {
		return false, err
	}

	if until == nil {
		return false, nil
	}

	return g.now().Before(*until), nil
}

// PremiumUntil returns the stored expiry, nil when the user was never subscribed.
func (g *Gate) PremiumUntil(ctx context.Context, userID model.UserID) (*time.Time, error) {
	return g.notes.GetPremiumUntil(ctx, userID)
}
