// Package seed loads the sample courses and activities and the optional
// administrator account at startup.
package seed

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/yigit/brainora/internal/app/models"
	"github.com/yigit/brainora/internal/pkg/apperrors"
	"github.com/yigit/brainora/internal/pkg/auth"
)

type CourseStore interface {
	Create(ctx context.Context, course *models.Course) error
}

type ActivityStore interface {
	TitleExists(ctx context.Context, title string) (bool, error)
	Create(ctx context.Context, activity *models.Activity) error
}

type UserStore interface {
	FindByIdentifier(ctx context.Context, identifier string) ([]models.User, error)
	Create(ctx context.Context, user *models.User) error
	SetAdmin(ctx context.Context, userID int64, admin bool) error
}

// Stores are satisfied by the concrete repositories.
type Stores struct {
	Courses    CourseStore
	Activities ActivityStore
	Users      UserStore
}

// Options selects what gets seeded. The admin account is skipped unless
// username and password are both set.
type Options struct {
	SampleData    bool
	AdminUsername string
	AdminEmail    string
	AdminPassword string
}

var sampleCourses = []models.Course{
	{
		Code:        "CS101",
		Title:       "Introduction to Computer Science",
		Semester:    1,
		Instructor:  "Dr. John Smith",
		Description: "Fundamental concepts of computer science and programming.",
		Credits:     4,
	},
	{
		Code:        "CS102",
		Title:       "Data Structures",
		Semester:    1,
		Instructor:  "Dr. Jane Doe",
		Description: "Learn about arrays, linked lists, trees, and graphs.",
		Credits:     4,
	},
	{
		Code:        "CS201",
		Title:       "Database Management Systems",
		Semester:    2,
		Instructor:  "Dr. Michael Johnson",
		Description: "Relational databases, SQL, and normalization.",
		Credits:     3,
	},
}

// sampleActivities are dated relative to now.
func sampleActivities(now time.Time) []models.Activity {
	day := 24 * time.Hour
	return []models.Activity{
		{
			Title:        "Semester Exam Starts",
			ActivityType: models.ActivityDeadline,
			Description:  "Final examinations for Semester 1 begin.",
			Date:         now.Add(15 * day),
			Location:     "Main Campus",
		},
		{
			Title:        "Tech Talk: AI & Machine Learning",
			ActivityType: models.ActivityEvent,
			Description:  "Guest speaker from leading tech company discussing AI applications.",
			Date:         now.Add(7 * day),
			Location:     "Auditorium Hall",
		},
		{
			Title:        "Assignment 1 Due",
			ActivityType: models.ActivityDeadline,
			Description:  "Submit assignment on Data Structures. Marks: 10",
			Date:         now.Add(3 * day),
		},
		{
			Title:        "Winter Holidays Declaration",
			ActivityType: models.ActivityAnnouncement,
			Description:  "College will remain closed from Dec 20 to Jan 5.",
			Date:         now,
		},
	}
}

// CreateDefaultData seeds whatever opts asks for. Existing rows are left
// alone, so it is safe to run on every start. Failures are collected and
// returned together.
func CreateDefaultData(ctx context.Context, stores Stores, opts Options, lgr zerolog.Logger) error {
	var finalErr error

	if opts.SampleData {
		lgr.Info().Msg("Checking/Creating sample courses and activities...")
		finalErr = errors.Join(finalErr, createCourses(ctx, stores.Courses, lgr))
		finalErr = errors.Join(finalErr, createActivities(ctx, stores.Activities, time.Now(), lgr))
	}

	if opts.AdminUsername != "" && opts.AdminPassword != "" {
		finalErr = errors.Join(finalErr, ensureAdmin(ctx, stores.Users, opts, lgr))
	}

	return finalErr
}

func createCourses(ctx context.Context, courses CourseStore, lgr zerolog.Logger) error {
	var finalErr error
	created := 0
	for _, c := range sampleCourses {
		course := c
		err := courses.Create(ctx, &course)
		switch {
		case err == nil:
			created++
		case errors.Is(err, apperrors.ErrResourceAlreadyExists):
		default:
			lgr.Error().Err(err).Str("code", course.Code).Msg("Error creating sample course")
			finalErr = errors.Join(finalErr, err)
		}
	}
	lgr.Info().Int("created", created).Msg("Sample courses checked")
	return finalErr
}

func createActivities(ctx context.Context, activities ActivityStore, now time.Time, lgr zerolog.Logger) error {
	var finalErr error
	created := 0
	for _, a := range sampleActivities(now) {
		activity := a
		exists, err := activities.TitleExists(ctx, activity.Title)
		if err != nil {
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if exists {
			continue
		}
		if err := activities.Create(ctx, &activity); err != nil {
			lgr.Error().Err(err).Str("title", activity.Title).Msg("Error creating sample activity")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		created++
	}
	lgr.Info().Int("created", created).Msg("Sample activities checked")
	return finalErr
}

// ensureAdmin creates the administrator, or promotes an existing user with
// the same username.
func ensureAdmin(ctx context.Context, users UserStore, opts Options, lgr zerolog.Logger) error {
	username := strings.TrimSpace(opts.AdminUsername)

	matches, err := users.FindByIdentifier(ctx, username)
	if err != nil {
		return err
	}
	for _, u := range matches {
		if u.Username != username {
			continue
		}
		if u.IsAdmin() {
			return nil
		}
		lgr.Info().Str("username", username).Msg("Promoting existing user to administrator")
		return users.SetAdmin(ctx, u.ID, true)
	}

	hash, err := auth.HashPassword(opts.AdminPassword)
	if err != nil {
		return err
	}
	admin := &models.User{
		Username:    username,
		Email:       strings.TrimSpace(opts.AdminEmail),
		Password:    hash,
		IsActive:    true,
		IsStaff:     true,
		IsSuperuser: true,
	}
	if err := users.Create(ctx, admin); err != nil {
		lgr.Error().Err(err).Str("username", username).Msg("Error creating administrator")
		return err
	}
	lgr.Info().Int64("userID", admin.ID).Str("username", username).Msg("Administrator created")
	return nil
}
