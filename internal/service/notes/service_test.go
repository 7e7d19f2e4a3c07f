package notes

import (
	"context"
	"testing"
	"time"

	"github.com/dnestruev/VALERA-2.0/internal/model"
)

type fakeRepo struct {
	users           map[model.UserID]model.User
	notes           []model.Note
	premium         map[model.UserID]time.Time
	nextNoteID      model.NoteID
	createUserCalls int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:   make(map[model.UserID]model.User),
		premium: make(map[model.UserID]time.Time),
	}
}

func (f *fakeRepo) UserExists(_ context.Context, userID model.UserID) (bool, error) {
	_, ok := f.users[userID]
	return ok, nil
}

func (f *fakeRepo) CreateUser(_ context.Context, user model.User) error {
	f.createUserCalls++
	if _, ok := f.users[user.ID]; ok {
		return nil
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeRepo) CreateNote(_ context.Context, note model.Note) (model.NoteID, error) {
	f.nextNoteID++
	note.ID = f.nextNoteID
	f.notes = append(f.notes, note)
	return note.ID, nil
}

func (f *fakeRepo) ListNotes(_ context.Context, userID model.UserID) ([]model.Note, error) {
	var out []model.Note
	for _, note := range f.notes {
		if note.UserID == userID {
			out = append(out, note)
		}
	}
	return out, nil
}

func (f *fakeRepo) SetPremiumUntil(_ context.Context, userID model.UserID, until time.Time) error {
	f.premium[userID] = until
	return nil
}

func (f *fakeRepo) GetPremiumUntil(_ context.Context, userID model.UserID) (*time.Time, error) {
	until, ok := f.premium[userID]
	if !ok {
		return nil, nil
	}
	return &until, nil
}

func TestEnsureUserExistsIdempotent(t *testing.T) {
	repo := newFakeRepo()
	serv := NewDefaultService(repo)
	ctx := context.Background()

	user := model.User{ID: 100, Username: "valera"}
	if err := serv.EnsureUserExists(ctx, user); err != nil {
		t.Fatalf("first EnsureUserExists returned error: %v", err)
	}
	if err := serv.EnsureUserExists(ctx, user); err != nil {
		t.Fatalf("second EnsureUserExists returned error: %v", err)
	}

	if len(repo.users) != 1 {
		t.Fatalf("expected exactly one user record, got %d", len(repo.users))
	}
	if repo.createUserCalls != 1 {
		t.Fatalf("expected a single CreateUser call, got %d", repo.createUserCalls)
	}
}

func TestNotesBelongToOwner(t *testing.T) {
	repo := newFakeRepo()
	serv := NewDefaultService(repo)
	ctx := context.Background()

	for _, note := range []model.Note{
		{UserID: 1, Text: "купить хлеб"},
		{UserID: 2, Text: "чужая заметка"},
		{UserID: 1, Text: "позвонить маме"},
	} {
		if _, err := serv.Create(ctx, note); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
	}

	list, err := serv.List(ctx, 1)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	if len(list) != 2 {
		t.Fatalf("expected 2 notes for user 1, got %d", len(list))
	}
	if list[0].Text != "купить хлеб" || list[1].Text != "позвонить маме" {
		t.Fatalf("notes out of insertion order or wrong owner: %+v", list)
	}
	for _, note := range list {
		if note.UserID != 1 {
			t.Fatalf("note of user %d leaked into user 1 listing", note.UserID)
		}
	}
}

func TestListNotesUnknownOwnerEmpty(t *testing.T) {
	serv := NewDefaultService(newFakeRepo())

	list, err := serv.List(context.Background(), 999)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected no notes for unknown owner, got %d", len(list))
	}
}

func TestGetPremiumUntilAbsent(t *testing.T) {
	serv := NewDefaultService(newFakeRepo())

	until, err := serv.GetPremiumUntil(context.Background(), 5)
	if err != nil {
		t.Fatalf("GetPremiumUntil returned error: %v", err)
	}
	if until != nil {
		t.Fatalf("expected nil expiry for user without premium, got %v", until)
	}
}
