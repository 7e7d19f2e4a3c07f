package model

import "time"

type (
	UserID int64
	NoteID int64

	User struct {
		ID           UserID
		Username     string
		PremiumUntil *time.Time
	}

	Note struct {
		ID        NoteID
		UserID    UserID
		Text      string
		CreatedAt time.Time
	}
)
