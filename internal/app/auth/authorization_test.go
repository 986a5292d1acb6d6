package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yigit/brainora/internal/app/models"
	"github.com/yigit/brainora/internal/pkg/apperrors"
)

func TestCanModify(t *testing.T) {
	owner := int64(10)

	tests := []struct {
		name  string
		user  *models.User
		owner *int64
		want  bool
	}{
		{"anonymous", nil, &owner, false},
		{"owner", &models.User{ID: 10}, &owner, true},
		{"other user", &models.User{ID: 11}, &owner, false},
		{"staff", &models.User{ID: 11, IsStaff: true}, &owner, true},
		{"superuser", &models.User{ID: 11, IsSuperuser: true}, &owner, true},
		{"orphaned record, regular user", &models.User{ID: 10}, nil, false},
		{"orphaned record, admin", &models.User{ID: 1, IsStaff: true}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanModify(tt.user, tt.owner))
		})
	}
}

func TestAuthorize(t *testing.T) {
	owner := int64(3)
	paper := &models.Paper{UploadedBy: &owner}

	assert.NoError(t, Authorize(&models.User{ID: 3}, paper, "delete this paper"))

	err := Authorize(&models.User{ID: 4}, paper, "delete this paper")
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.Equal(t, "You do not have permission to delete this paper.", err.Error())
}
