package services

import (
	"context"
	"fmt"

	"github.com/yigit/brainora/internal/app/models"
	"github.com/yigit/brainora/internal/app/models/dto"
	"github.com/yigit/brainora/internal/pkg/filestorage"
	"github.com/yigit/brainora/internal/pkg/logger"
	"github.com/yigit/brainora/internal/pkg/metrics"
)

// UserService defines the interface for profile operations
type UserService interface {
	Get(ctx context.Context, id int64) (*models.User, error)
	// UpdateProfile validates and applies the profile form to user.
	UpdateProfile(ctx context.Context, user *models.User, form dto.ProfileForm) (*models.User, error)
}

type userServiceImpl struct {
	users        UserStore
	storage      filestorage.FileStorage
	maxFileBytes int64
}

// NewUserService creates a new user service instance
func NewUserService(users UserStore, storage filestorage.FileStorage, maxFileBytes int64) UserService {
	return &userServiceImpl{users: users, storage: storage, maxFileBytes: maxFileBytes}
}

func (s *userServiceImpl) Get(ctx context.Context, id int64) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *userServiceImpl) UpdateProfile(ctx context.Context, user *models.User, form dto.ProfileForm) (*models.User, error) {
	form.Normalize()
	if err := form.Validate(s.maxFileBytes).OrNil(); err != nil {
		return nil, err
	}

	updated := *user
	updated.FirstName = form.FirstName
	updated.LastName = form.LastName
	updated.CollegeID = form.CollegeID
	updated.Semester = form.SemesterValue()
	updated.Bio = form.Bio

	var newKey string
	switch {
	case form.ProfilePicture != nil:
		key, err := s.storage.Save(ctx, form.ProfilePicture, filestorage.DirProfiles)
		metrics.RecordUpload("profile_picture", err)
		if err != nil {
			return nil, fmt.Errorf("failed to store profile picture: %w", err)
		}
		newKey = key
		updated.ProfilePicture = key
	case form.ClearPicture:
		updated.ProfilePicture = ""
	}

	if err := s.users.UpdateProfile(ctx, &updated); err != nil {
		removeStoredFile(ctx, s.storage, filestorage.DirProfiles, newKey)
		return nil, err
	}

	if user.ProfilePicture != "" && user.ProfilePicture != updated.ProfilePicture {
		removeStoredFile(ctx, s.storage, filestorage.DirProfiles, user.ProfilePicture)
	}

	logger.Info().Int64("userID", user.ID).Msg("Profile updated")
	return &updated, nil
}
