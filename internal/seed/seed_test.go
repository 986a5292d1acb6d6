package seed

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yigit/brainora/internal/app/models"
	"github.com/yigit/brainora/internal/pkg/apperrors"
	"github.com/yigit/brainora/internal/pkg/auth"
)

type fakeCourses struct{ byCode map[string]models.Course }

func (f *fakeCourses) Create(_ context.Context, c *models.Course) error {
	if _, ok := f.byCode[c.Code]; ok {
		return apperrors.ErrResourceAlreadyExists
	}
	c.ID = int64(len(f.byCode) + 1)
	f.byCode[c.Code] = *c
	return nil
}

type fakeActivities struct{ byTitle map[string]models.Activity }

func (f *fakeActivities) TitleExists(_ context.Context, title string) (bool, error) {
	_, ok := f.byTitle[title]
	return ok, nil
}

func (f *fakeActivities) Create(_ context.Context, a *models.Activity) error {
	f.byTitle[a.Title] = *a
	return nil
}

type fakeUsers struct {
	users    []models.User
	promoted []int64
}

func (f *fakeUsers) FindByIdentifier(_ context.Context, identifier string) ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		if u.Username == identifier || u.Email == identifier {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUsers) Create(_ context.Context, u *models.User) error {
	u.ID = int64(len(f.users) + 1)
	f.users = append(f.users, *u)
	return nil
}

func (f *fakeUsers) SetAdmin(_ context.Context, id int64, admin bool) error {
	if admin {
		f.promoted = append(f.promoted, id)
	}
	return nil
}

func newStores() (Stores, *fakeCourses, *fakeActivities, *fakeUsers) {
	c := &fakeCourses{byCode: map[string]models.Course{}}
	a := &fakeActivities{byTitle: map[string]models.Activity{}}
	u := &fakeUsers{}
	return Stores{Courses: c, Activities: a, Users: u}, c, a, u
}

func TestMain(m *testing.M) {
	auth.BcryptCost = bcrypt.MinCost
	m.Run()
}

func TestCreateDefaultData_SampleDataIsIdempotent(t *testing.T) {
	stores, courses, activities, _ := newStores()
	opts := Options{SampleData: true}

	require.NoError(t, CreateDefaultData(context.Background(), stores, opts, zerolog.Nop()))
	require.NoError(t, CreateDefaultData(context.Background(), stores, opts, zerolog.Nop()))

	assert.Len(t, courses.byCode, 3)
	assert.Equal(t, 2, courses.byCode["CS201"].Semester)
	assert.Len(t, activities.byTitle, 4)
	assert.Equal(t, models.ActivityAnnouncement, activities.byTitle["Winter Holidays Declaration"].ActivityType)
}

func TestCreateDefaultData_Disabled(t *testing.T) {
	stores, courses, activities, users := newStores()

	require.NoError(t, CreateDefaultData(context.Background(), stores, Options{AdminUsername: "root"}, zerolog.Nop()))

	assert.Empty(t, courses.byCode)
	assert.Empty(t, activities.byTitle)
	assert.Empty(t, users.users)
}

func TestCreateDefaultData_Admin(t *testing.T) {
	t.Run("creates a hashed superuser", func(t *testing.T) {
		stores, _, _, users := newStores()
		opts := Options{AdminUsername: "root", AdminEmail: "root@college.edu", AdminPassword: "admin-pass"}

		require.NoError(t, CreateDefaultData(context.Background(), stores, opts, zerolog.Nop()))

		require.Len(t, users.users, 1)
		admin := users.users[0]
		assert.True(t, admin.IsAdmin())
		assert.True(t, admin.IsActive)
		assert.True(t, auth.CheckPassword(admin.Password, "admin-pass"))
	})

	t.Run("promotes an existing user", func(t *testing.T) {
		stores, _, _, users := newStores()
		users.users = []models.User{{ID: 9, Username: "root", IsActive: true}}

		require.NoError(t, CreateDefaultData(context.Background(), stores, Options{AdminUsername: "root", AdminPassword: "x"}, zerolog.Nop()))

		assert.Len(t, users.users, 1)
		assert.Equal(t, []int64{9}, users.promoted)
	})
}
