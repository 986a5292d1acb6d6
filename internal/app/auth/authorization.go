package auth

import (
	"github.com/yigit/brainora/internal/app/models"
	"github.com/yigit/brainora/internal/pkg/apperrors"
)

// Owned is implemented by records that remember who created them.
type Owned interface {
	OwnerID() *int64
}

// CanModify reports whether user may delete or edit a record owned by ownerID.
// Admins may modify anything; everyone else only what they uploaded. A record
// whose uploader was deleted (nil owner) is admin-only.
func CanModify(user *models.User, ownerID *int64) bool {
	if user == nil {
		return false
	}
	if user.IsAdmin() {
		return true
	}
	return ownerID != nil && *ownerID == user.ID
}

// Authorize returns a forbidden error when user may not modify record.
func Authorize(user *models.User, record Owned, action string) error {
	if CanModify(user, record.OwnerID()) {
		return nil
	}
	return apperrors.NewForbiddenError("You do not have permission to " + action + ".")
}
