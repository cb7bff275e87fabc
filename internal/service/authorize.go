package service

import (
	"github.com/google/uuid"
	"github.com/vedran77/contacts/internal/apperr"
	"github.com/vedran77/contacts/internal/domain"
)

type Decision int

const (
	Deny Decision = iota
	Allow
)

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

// Authorize allows an operation only when the caller owns the resource.
// The nil identity never owns anything.
func Authorize(identity, resourceOwnerID uuid.UUID) Decision {
	if identity == uuid.Nil || identity != resourceOwnerID {
		return Deny
	}
	return Allow
}

var ErrNotContactOwner = apperr.Forbidden("User not authorized to access this contact")

// authorizeContact must be given a contact read within the current
// operation, never one cached from an earlier request.
func authorizeContact(identity uuid.UUID, c *domain.Contact) error {
	if Authorize(identity, c.OwnerID) != Allow {
		return ErrNotContactOwner
	}
	return nil
}
