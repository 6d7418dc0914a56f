package services

import (
	"taskhub/backend/internal/models"

	"github.com/gofrs/uuid"
)

// CanAccess is the single ownership rule applied across tasks and
// comments: admins may act on anything, everyone else only on entities
// whose owner they are. Existence of the target is always checked
// before this gate so probing a missing id yields not-found rather
// than denied.
//
// Comments inherit the owner of their parent task; comment authorship
// plays no part in authorization.
func CanAccess(actor *models.User, resourceOwnerID uuid.UUID) bool {
	if actor == nil {
		return false
	}
	return actor.IsAdmin() || actor.ID == resourceOwnerID
}
