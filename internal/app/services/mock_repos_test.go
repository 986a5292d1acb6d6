package services

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yigit/brainora/internal/app/models"
	"github.com/yigit/brainora/internal/app/repositories"
	"github.com/yigit/brainora/internal/pkg/apperrors"
)

// ── Mock UserStore ──

type mockUserStore struct {
	users     map[int64]*models.User
	nextID    int64
	lastLogin map[int64]time.Time
}

func newMockUserStore(users ...*models.User) *mockUserStore {
	m := &mockUserStore{users: make(map[int64]*models.User), lastLogin: make(map[int64]time.Time)}
	for _, u := range users {
		_ = m.Create(context.Background(), u)
	}
	return m
}

func (m *mockUserStore) Create(_ context.Context, user *models.User) error {
	for _, u := range m.users {
		if u.Username == user.Username {
			return apperrors.ErrUsernameExists
		}
	}
	m.nextID++
	user.ID = m.nextID
	m.users[user.ID] = user
	return nil
}

func (m *mockUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (m *mockUserStore) FindByIdentifier(_ context.Context, identifier string) ([]models.User, error) {
	var result []models.User
	for id := int64(1); id <= m.nextID; id++ {
		u, ok := m.users[id]
		if !ok {
			continue
		}
		if u.Username == identifier || u.Email == identifier {
			result = append(result, *u)
		}
		if len(result) == 2 {
			break
		}
	}
	return result, nil
}

func (m *mockUserStore) EmailExists(_ context.Context, email string) (bool, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserStore) UsernameExists(_ context.Context, username string) (bool, error) {
	for _, u := range m.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserStore) UpdateProfile(_ context.Context, user *models.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return apperrors.ErrUserNotFound
	}
	clone := *user
	m.users[user.ID] = &clone
	return nil
}

func (m *mockUserStore) UpdateLastLogin(_ context.Context, userID int64, at time.Time) error {
	m.lastLogin[userID] = at
	return nil
}

// ── Mock SessionStore ──

type mockSessionStore struct {
	sessions map[string]*models.Session
}

func newMockSessionStore() *mockSessionStore {
	return &mockSessionStore{sessions: make(map[string]*models.Session)}
}

func (m *mockSessionStore) Create(_ context.Context, session *models.Session) error {
	m.sessions[session.ID] = session
	return nil
}

func (m *mockSessionStore) Get(_ context.Context, id string) (*models.Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	if s.Expired(time.Now()) {
		return nil, apperrors.ErrSessionExpired
	}
	return s, nil
}

func (m *mockSessionStore) Delete(_ context.Context, id string) error {
	delete(m.sessions, id)
	return nil
}

func (m *mockSessionStore) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for id, s := range m.sessions {
		if s.Expired(now) {
			delete(m.sessions, id)
			n++
		}
	}
	return n, nil
}

// ── Mock CourseStore ──

type mockCourseStore struct {
	courses    []models.Course
	lastFilter repositories.CourseFilter
}

func (m *mockCourseStore) List(_ context.Context, filter repositories.CourseFilter) ([]models.Course, error) {
	m.lastFilter = filter
	var result []models.Course
	for _, c := range m.courses {
		if filter.Semester != nil && c.Semester != *filter.Semester {
			continue
		}
		if s := strings.ToLower(filter.Search); s != "" &&
			!strings.Contains(strings.ToLower(c.Code+"|"+c.Title+"|"+c.Instructor), s) {
			continue
		}
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Semester != result[j].Semester {
			return result[i].Semester < result[j].Semester
		}
		return result[i].Code < result[j].Code
	})
	return result, nil
}

func (m *mockCourseStore) GetByID(_ context.Context, id int64) (*models.Course, error) {
	for _, c := range m.courses {
		if c.ID == id {
			clone := c
			return &clone, nil
		}
	}
	return nil, apperrors.ErrCourseNotFound
}

func (m *mockCourseStore) Count(_ context.Context) (int64, error) {
	return int64(len(m.courses)), nil
}

// ── Mock PaperStore ──

type mockPaperStore struct {
	papers     map[int64]*models.Paper
	lastFilter repositories.PaperFilter
}

func newMockPaperStore(papers ...models.Paper) *mockPaperStore {
	m := &mockPaperStore{papers: make(map[int64]*models.Paper)}
	for i := range papers {
		p := papers[i]
		m.papers[p.ID] = &p
	}
	return m
}

func (m *mockPaperStore) List(_ context.Context, filter repositories.PaperFilter) ([]models.Paper, error) {
	m.lastFilter = filter
	var result []models.Paper
	for _, p := range m.papers {
		if filter.CourseID != nil && p.CourseID != *filter.CourseID {
			continue
		}
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockPaperStore) GetByID(_ context.Context, id int64) (*models.Paper, error) {
	if p, ok := m.papers[id]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, apperrors.ErrPaperNotFound
}

func (m *mockPaperStore) Delete(_ context.Context, id int64) error {
	if _, ok := m.papers[id]; !ok {
		return apperrors.ErrPaperNotFound
	}
	delete(m.papers, id)
	return nil
}

// ── Mock ActivityStore ──

type mockActivityStore struct {
	activities map[int64]*models.Activity
	lastFilter repositories.ActivityFilter
}

func newMockActivityStore(activities ...models.Activity) *mockActivityStore {
	m := &mockActivityStore{activities: make(map[int64]*models.Activity)}
	for i := range activities {
		a := activities[i]
		m.activities[a.ID] = &a
	}
	return m
}

func (m *mockActivityStore) List(_ context.Context, filter repositories.ActivityFilter) ([]models.Activity, error) {
	m.lastFilter = filter
	var result []models.Activity
	for _, a := range m.activities {
		result = append(result, *a)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (m *mockActivityStore) GetByID(_ context.Context, id int64) (*models.Activity, error) {
	if a, ok := m.activities[id]; ok {
		clone := *a
		return &clone, nil
	}
	return nil, apperrors.ErrActivityNotFound
}

func (m *mockActivityStore) Delete(_ context.Context, id int64) error {
	if _, ok := m.activities[id]; !ok {
		return apperrors.ErrActivityNotFound
	}
	delete(m.activities, id)
	return nil
}

// ── Mock ResourceStore ──

type mockResourceStore struct {
	resources  map[int64]*models.Resource
	nextID     int64
	createErr  error
	lastFilter repositories.ResourceFilter
}

func newMockResourceStore(resources ...models.Resource) *mockResourceStore {
	m := &mockResourceStore{resources: make(map[int64]*models.Resource)}
	for i := range resources {
		r := resources[i]
		m.resources[r.ID] = &r
		if r.ID > m.nextID {
			m.nextID = r.ID
		}
	}
	return m
}

func (m *mockResourceStore) List(_ context.Context, filter repositories.ResourceFilter) ([]models.Resource, error) {
	m.lastFilter = filter
	var result []models.Resource
	for _, r := range m.resources {
		if filter.Category != "" && r.Category != filter.Category {
			continue
		}
		result = append(result, *r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (m *mockResourceStore) GetByID(_ context.Context, id int64) (*models.Resource, error) {
	if r, ok := m.resources[id]; ok {
		clone := *r
		return &clone, nil
	}
	return nil, apperrors.ErrResourceItemAbsent
}

func (m *mockResourceStore) Create(_ context.Context, res *models.Resource) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	res.ID = m.nextID
	res.CreatedAt = time.Now()
	clone := *res
	m.resources[res.ID] = &clone
	return nil
}

func (m *mockResourceStore) Delete(_ context.Context, id int64) error {
	if _, ok := m.resources[id]; !ok {
		return apperrors.ErrResourceItemAbsent
	}
	delete(m.resources, id)
	return nil
}

// ── Mock FileStorage ──

type mockStorage struct {
	files     map[string]bool
	deleteErr error
	saved     int
}

func newMockStorage(keys ...string) *mockStorage {
	m := &mockStorage{files: make(map[string]bool)}
	for _, k := range keys {
		m.files[k] = true
	}
	return m
}

func (m *mockStorage) Save(_ context.Context, fh *multipart.FileHeader, dir string) (string, error) {
	if fh == nil {
		return "", nil
	}
	m.saved++
	key := dir + "/" + fh.Filename
	m.files[key] = true
	return key, nil
}

func (m *mockStorage) Delete(_ context.Context, key string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.files, key)
	return nil
}

func (m *mockStorage) URL(key string) string {
	return "/media/" + key
}

var errBoom = errors.New("boom")

func int64Ptr(v int64) *int64 { return &v }

func uploadHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["file"][0]
}
