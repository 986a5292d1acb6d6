package routes

import (
	"context"

	"github.com/yigit/brainora/internal/app/models"
	"github.com/yigit/brainora/internal/app/models/dto"
	"github.com/yigit/brainora/internal/app/services"
	"github.com/yigit/brainora/internal/pkg/apperrors"
)

// ── Mock AuthService ──

type mockAuthService struct {
	users      map[string]*models.User // identifier → user
	passwords  map[string]string
	sessions   map[string]*models.User // token → user
	registerFn func(form dto.SignupForm) (*models.User, error)
	ended      []string
}

func (m *mockAuthService) Authenticate(_ context.Context, identifier, password string) (*models.User, error) {
	u, ok := m.users[identifier]
	if !ok || m.passwords[identifier] != password {
		return nil, apperrors.ErrInvalidCredentials
	}
	return u, nil
}

func (m *mockAuthService) Register(_ context.Context, form dto.SignupForm) (*models.User, error) {
	return m.registerFn(form)
}

func (m *mockAuthService) StartSession(_ context.Context, user *models.User, _, _ string) (*services.SessionInfo, error) {
	token := "token-" + user.Username
	if m.sessions == nil {
		m.sessions = map[string]*models.User{}
	}
	m.sessions[token] = user
	return &services.SessionInfo{Session: &models.Session{ID: "sid", UserID: user.ID}, Token: token, ExpiresAt: farFuture}, nil
}

func (m *mockAuthService) ResolveSession(_ context.Context, token string) (*models.Session, *models.User, error) {
	u, ok := m.sessions[token]
	if !ok {
		return nil, nil, apperrors.ErrSessionInvalid
	}
	return &models.Session{ID: "sid", UserID: u.ID}, u, nil
}

func (m *mockAuthService) EndSession(_ context.Context, token string) error {
	m.ended = append(m.ended, token)
	delete(m.sessions, token)
	return nil
}

func (m *mockAuthService) PurgeExpiredSessions(context.Context) (int64, error) { return 0, nil }

// ── Mock CourseService ──

type mockCourseService struct {
	courses      []models.Course
	lastSemester int
	lastSearch   string
}

func (m *mockCourseService) ListForSemester(_ context.Context, semester int, search string) ([]models.Course, error) {
	m.lastSemester, m.lastSearch = semester, search
	var out []models.Course
	for _, c := range m.courses {
		if c.Semester == semester {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockCourseService) Detail(_ context.Context, id int64) (*models.Course, []models.Paper, error) {
	for _, c := range m.courses {
		if c.ID == id {
			c := c
			return &c, nil, nil
		}
	}
	return nil, nil, apperrors.ErrCourseNotFound
}

func (m *mockCourseService) Count(context.Context) (int64, error) { return int64(len(m.courses)), nil }

// ── Mock PaperService ──

type mockPaperService struct {
	lastQuery services.PaperQuery
	deleteErr error
	deleted   []int64
}

func (m *mockPaperService) List(_ context.Context, q services.PaperQuery) ([]models.Paper, error) {
	m.lastQuery = q
	return nil, nil
}

func (m *mockPaperService) Recent(context.Context, int, uint64) ([]models.Paper, error) {
	return nil, nil
}

func (m *mockPaperService) Get(_ context.Context, id int64) (*models.Paper, error) {
	return &models.Paper{ID: id, Title: "Midsem 2023"}, nil
}

func (m *mockPaperService) Delete(_ context.Context, _ *models.User, id int64) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, id)
	return nil
}

// ── Mock ActivityService ──

type mockActivityService struct {
	lastType string
}

func (m *mockActivityService) Upcoming(context.Context, uint64) ([]models.Activity, error) {
	return nil, nil
}

func (m *mockActivityService) RecentAnnouncements(context.Context, uint64) ([]models.Activity, error) {
	return nil, nil
}

func (m *mockActivityService) List(_ context.Context, activityType string) ([]models.Activity, error) {
	m.lastType = activityType
	return nil, nil
}

func (m *mockActivityService) Get(_ context.Context, id int64) (*models.Activity, error) {
	return nil, apperrors.ErrActivityNotFound
}

func (m *mockActivityService) Delete(context.Context, *models.User, int64) error {
	return apperrors.ErrActivityNotFound
}

func (m *mockActivityService) Calendar(context.Context, string) (string, error) {
	return "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n", nil
}

// ── Mock ResourceService ──

type mockResourceService struct {
	services.ResourceService // unknown category listings use the real service
	uploadErr                error
	uploaded                 []dto.ResourceUploadForm
	deleteErr                error
}

func (m *mockResourceService) Upload(_ context.Context, user *models.User, form dto.ResourceUploadForm) (*models.Resource, error) {
	if m.uploadErr != nil {
		return nil, m.uploadErr
	}
	m.uploaded = append(m.uploaded, form)
	return &models.Resource{ID: 1, Title: form.Title, Category: models.Category(form.Category), UploadedBy: &user.ID}, nil
}

func (m *mockResourceService) Recent(context.Context, uint64) ([]models.Resource, error) {
	return nil, nil
}

func (m *mockResourceService) Get(_ context.Context, id int64) (*models.Resource, error) {
	return &models.Resource{ID: id, Title: "Notes"}, nil
}

func (m *mockResourceService) Delete(context.Context, *models.User, int64) error {
	return m.deleteErr
}

// ── Mock UserService ──

type mockUserService struct {
	updateErr error
}

func (m *mockUserService) Get(_ context.Context, id int64) (*models.User, error) {
	return &models.User{ID: id}, nil
}

func (m *mockUserService) UpdateProfile(_ context.Context, user *models.User, form dto.ProfileForm) (*models.User, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	updated := *user
	updated.FirstName = form.FirstName
	return &updated, nil
}
