package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID     uuid.UUID
	AuthID string
	Email  string
	Name   string

	// Career profile, filled in during onboarding
	Industry   string
	Experience int
	Bio        string
	Skills     []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) IsOnboarded() bool {
	return u.Industry != ""
}
