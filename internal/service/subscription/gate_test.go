package subscription

import (
	"context"
	"testing"
	"time"

	"github.com/dnestruev/VALERA-2.0/internal/model"
)

type fakeNotesService struct {
	premium map[model.UserID]time.Time
}

func (f *fakeNotesService) EnsureUserExists(context.Context, model.User) error { return nil }

func (f *fakeNotesService) Create(context.Context, model.Note) (model.NoteID, error) { return 0, nil }

func (f *fakeNotesService) List(context.Context, model.UserID) ([]model.Note, error) {
	return nil, nil
}

func (f *fakeNotesService) SetPremiumUntil(_ context.Context, userID model.UserID, until time.Time) error {
	f.premium[userID] = until
	return nil
}

func (f *fakeNotesService) GetPremiumUntil(_ context.Context, userID model.UserID) (*time.Time, error) {
	until, ok := f.premium[userID]
	if !ok {
		return nil, nil
	}
	return &until, nil
}

func TestIsActive(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		expiry *time.Time
		want   bool
	}{
		{name: "no record", expiry: nil, want: false},
		{name: "expired", expiry: timePtr(now.Add(-time.Hour)), want: false},
		{name: "expires right now", expiry: timePtr(now), want: false},
		{name: "active", expiry: timePtr(now.Add(time.Hour)), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serv := &fakeNotesService{premium: make(map[model.UserID]time.Time)}
			if tt.expiry != nil {
				serv.premium[42] = *tt.expiry
			}

			gate := NewGate(serv)
			gate.now = func() time.Time { return now }

			active, err := gate.IsActive(context.Background(), 42)
			if err != nil {
				t.Fatalf("IsActive returned error: %v", err)
			}
			if active != tt.want {
				t.Fatalf("IsActive = %v, want %v", active, tt.want)
			}
		})
	}
}

func timePtr(t time.Time) *time.Time {
	return &t
}
