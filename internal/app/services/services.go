package services

import (
	"context"
	"time"

	"github.com/yigit/brainora/internal/app/models"
	"github.com/yigit/brainora/internal/app/repositories"
	"github.com/yigit/brainora/internal/pkg/filestorage"
	"github.com/yigit/brainora/internal/pkg/logger"
	"github.com/yigit/brainora/internal/pkg/metrics"
)

// Store interfaces are satisfied by the concrete types in the repositories
// package and by in-memory fakes in tests.

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	FindByIdentifier(ctx context.Context, identifier string) ([]models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	UpdateProfile(ctx context.Context, user *models.User) error
	UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error
}

type CourseStore interface {
	List(ctx context.Context, filter repositories.CourseFilter) ([]models.Course, error)
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	Count(ctx context.Context) (int64, error)
}

type PaperStore interface {
	List(ctx context.Context, filter repositories.PaperFilter) ([]models.Paper, error)
	GetByID(ctx context.Context, id int64) (*models.Paper, error)
	Delete(ctx context.Context, id int64) error
}

type ActivityStore interface {
	List(ctx context.Context, filter repositories.ActivityFilter) ([]models.Activity, error)
	GetByID(ctx context.Context, id int64) (*models.Activity, error)
	Delete(ctx context.Context, id int64) error
}

type ResourceStore interface {
	List(ctx context.Context, filter repositories.ResourceFilter) ([]models.Resource, error)
	GetByID(ctx context.Context, id int64) (*models.Resource, error)
	Create(ctx context.Context, res *models.Resource) error
	Delete(ctx context.Context, id int64) error
}

type SessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	Get(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Services groups every application service.
type Services struct {
	Auth       AuthService
	Users      UserService
	Courses    CourseService
	Papers     PaperService
	Activities ActivityService
	Resources  ResourceService
}

// removeStoredFile deletes a file and swallows the error. A failure leaves an
// orphaned file behind, which never blocks deleting the owning record.
func removeStoredFile(ctx context.Context, storage filestorage.FileStorage, kind, key string) {
	if key == "" || storage == nil {
		return
	}
	if err := storage.Delete(ctx, key); err != nil {
		logger.Warn().Err(err).Str("kind", kind).Str("key", key).Msg("Failed to remove stored file")
		metrics.RecordFileDeleteFailure(kind)
	}
}
