package domain

import (
	"time"

	"github.com/google/uuid"
)

// Contact belongs to exactly one user. OwnerID is never serialized.
type Contact struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"-"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
