package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/yigit/brainora/internal/app/auth"
	"github.com/yigit/brainora/internal/app/models"
	"github.com/yigit/brainora/internal/app/repositories"
	"github.com/yigit/brainora/internal/pkg/calendar"
	"github.com/yigit/brainora/internal/pkg/filestorage"
	"github.com/yigit/brainora/internal/pkg/logger"
)

// ActivityService defines the interface for college activity operations
type ActivityService interface {
	// Upcoming returns events and deadlines from now on, nearest first.
	Upcoming(ctx context.Context, limit uint64) ([]models.Activity, error)
	// RecentAnnouncements returns the newest announcements by creation time.
	RecentAnnouncements(ctx context.Context, limit uint64) ([]models.Activity, error)
	// List returns all activities, newest date first, optionally of one type.
	List(ctx context.Context, activityType string) ([]models.Activity, error)
	Get(ctx context.Context, id int64) (*models.Activity, error)
	Delete(ctx context.Context, user *models.User, id int64) error
	// Calendar renders all activities as an iCalendar document.
	Calendar(ctx context.Context, baseURL string) (string, error)
}

type activityServiceImpl struct {
	activities ActivityStore
	storage    filestorage.FileStorage
	now        func() time.Time
}

// NewActivityService creates a new activity service instance
func NewActivityService(activities ActivityStore, storage filestorage.FileStorage) ActivityService {
	return &activityServiceImpl{activities: activities, storage: storage, now: time.Now}
}

func (s *activityServiceImpl) Upcoming(ctx context.Context, limit uint64) ([]models.Activity, error) {
	now := s.now()
	return s.activities.List(ctx, repositories.ActivityFilter{
		Types: models.UpcomingActivityTypes,
		From:  &now,
		Order: repositories.ActivityOrderDateAsc,
		Limit: limit,
	})
}

func (s *activityServiceImpl) RecentAnnouncements(ctx context.Context, limit uint64) ([]models.Activity, error) {
	return s.activities.List(ctx, repositories.ActivityFilter{
		Types: []models.ActivityType{models.ActivityAnnouncement},
		Order: repositories.ActivityOrderCreatedDesc,
		Limit: limit,
	})
}

func (s *activityServiceImpl) List(ctx context.Context, activityType string) ([]models.Activity, error) {
	filter := repositories.ActivityFilter{Order: repositories.ActivityOrderDateDesc}
	if activityType != "" {
		filter.Types = []models.ActivityType{models.ActivityType(activityType)}
	}
	return s.activities.List(ctx, filter)
}

func (s *activityServiceImpl) Get(ctx context.Context, id int64) (*models.Activity, error) {
	return s.activities.GetByID(ctx, id)
}

func (s *activityServiceImpl) Delete(ctx context.Context, user *models.User, id int64) error {
	activity, err := s.activities.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := auth.Authorize(user, activity, "delete this activity"); err != nil {
		logger.Warn().Int64("activityID", id).Int64("userID", user.ID).Msg("Rejected activity delete")
		return err
	}

	removeStoredFile(ctx, s.storage, filestorage.DirActivities, activity.Image)
	if err := s.activities.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info().Int64("activityID", id).Int64("userID", user.ID).Msg("Activity deleted")
	return nil
}

func (s *activityServiceImpl) Calendar(ctx context.Context, baseURL string) (string, error) {
	activities, err := s.activities.List(ctx, repositories.ActivityFilter{Order: repositories.ActivityOrderDateAsc})
	if err != nil {
		return "", err
	}

	host := hostOf(baseURL)
	events := make([]calendar.Event, 0, len(activities))
	for _, a := range activities {
		events = append(events, calendar.Event{
			UID:         fmt.Sprintf("activity-%d@%s", a.ID, host),
			Title:       a.Title,
			Description: a.Description,
			Location:    a.Location,
			Category:    a.ActivityType.Label(),
			URL:         strings.TrimRight(baseURL, "/") + "/activities/",
			Start:       a.Date,
			Created:     a.CreatedAt,
			Updated:     a.UpdatedAt,
		})
	}
	return calendar.Build("Brainora Activities", "-//Brainora//Activities//EN", events), nil
}

func hostOf(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return "brainora"
	}
	return u.Host
}
