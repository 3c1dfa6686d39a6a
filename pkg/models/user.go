package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an authenticated dashboard account.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
