package web

import (
	"bytes"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/brainora/internal/app/models"
	"github.com/yigit/brainora/internal/app/models/dto"
	"github.com/yigit/brainora/internal/app/team"
	"github.com/yigit/brainora/internal/pkg/flash"
	"github.com/yigit/brainora/internal/pkg/validation"
)

type prefixResolver string

func (p prefixResolver) URL(key string) string { return string(p) + key }

func render(t *testing.T, name string, page dto.Page) string {
	t.Helper()
	tmpl := MustTemplates(FuncMap(prefixResolver("/media/")))
	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, name, page))
	return buf.String()
}

func TestTemplates_AllPagesDefined(t *testing.T) {
	tmpl := MustTemplates(FuncMap(nil))
	for _, name := range []string{
		"home.html", "login.html", "signup.html", "dashboard.html", "upload.html",
		"courses.html", "course_detail.html", "papers.html", "resource_list.html",
		"activities.html", "delete_confirm.html", "profile.html", "edit_profile.html",
		"privacy_policy.html", "about.html", "member.html", "whatsapp.html",
		"telegram_premium.html", "error.html",
	} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestHome_AnonymousAndMessages(t *testing.T) {
	out := render(t, "home.html", dto.Page{
		Title:    "Home",
		Nav:      "home",
		Messages: []flash.Message{{Level: flash.LevelError, Text: "Invalid username/email or password."}},
		Data: dto.HomePage{
			TotalCourses: 3,
			UpcomingActivities: []models.Activity{{
				ID: 1, Title: "Tech Fest", ActivityType: models.ActivityEvent, Date: time.Date(2030, 3, 1, 10, 0, 0, 0, time.UTC),
			}},
		},
	})

	assert.Contains(t, out, "Tech Fest")
	assert.Contains(t, out, "3 courses available")
	assert.Contains(t, out, "alert-danger")
	assert.Contains(t, out, "Invalid username/email or password.")
	assert.Contains(t, out, `href="/signup/"`)
	assert.NotContains(t, out, `href="/logout/"`)
}

func TestDashboard_Authenticated(t *testing.T) {
	user := &models.User{ID: 1, Username: "asha", FirstName: "Asha", ProfilePicture: "profiles/a.png"}
	out := render(t, "dashboard.html", dto.Page{
		Title: "Dashboard",
		Nav:   "dashboard",
		User:  user,
		Data: dto.DashboardPage{
			Semester: 3,
			Courses:  []models.Course{{ID: 7, Code: "CS201", Title: "Data Structures", Credits: 4}},
			RecentPapers: []models.Paper{{
				ID: 2, CourseID: 7, CourseCode: "CS201", Title: "Midsem 2023", PaperType: models.PaperMidterm, Year: 2023, File: "papers/m.pdf",
			}},
			Upload: dto.UploadPage{Categories: models.Categories},
		},
	})

	assert.Contains(t, out, "Hello, Asha")
	assert.Contains(t, out, "Semester 3")
	assert.Contains(t, out, "/media/profiles/a.png")
	assert.Contains(t, out, "/media/papers/m.pdf")
	assert.Contains(t, out, "Midterm Exam")
	assert.Contains(t, out, `action="/upload_resource/"`)
	assert.Contains(t, out, `enctype="multipart/form-data"`)
	assert.Contains(t, out, "Whatsapp Community")
}

func TestSignup_FieldErrors(t *testing.T) {
	var errs validation.Errors
	errs.Add("username", "A user with that username already exists.")
	out := render(t, "signup.html", dto.Page{
		Data: dto.SignupPage{Form: dto.SignupForm{Username: "taken"}, Errors: errs},
	})

	assert.Contains(t, out, `value="taken"`)
	assert.Contains(t, out, "A user with that username already exists.")
}

func TestError_Page(t *testing.T) {
	out := render(t, "error.html", dto.Page{
		Title: "Page not found",
		Data:  dto.ErrorPage{Status: http.StatusNotFound, Code: dto.ErrorCodeResourceNotFound, Heading: "Page not found"},
	})
	assert.Contains(t, out, "404")
	assert.Contains(t, out, "RES_001")
}

func TestAbout_ListsMembers(t *testing.T) {
	members := team.Default().All()
	require.NotEmpty(t, members)
	out := render(t, "about.html", dto.Page{Data: dto.TeamPage{Members: members}})
	assert.Contains(t, out, "/about/member/"+members[0].Slug+"/")
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "abc…", truncate("abcdef", 3))
	assert.Equal(t, "abc", truncate("abc", 3))
	assert.Equal(t, "", formatDate(time.Time{}))
	assert.Equal(t, "Mar 1, 2030", formatDate(time.Date(2030, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, semesters())
	assert.Equal(t, "A", initial(&models.User{Username: "asha"}))
	assert.Equal(t, "?", initial(nil))
}

func TestStatic_ServesAssets(t *testing.T) {
	f, err := Static().Open("css/style.css")
	require.NoError(t, err)
	defer f.Close()
}
