package dto

import (
	"github.com/yigit/brainora/internal/app/models"
	"github.com/yigit/brainora/internal/app/team"
	"github.com/yigit/brainora/internal/pkg/flash"
	"github.com/yigit/brainora/internal/pkg/validation"
)

// Page is the root value every template receives.
type Page struct {
	Title    string
	Nav      string
	User     *models.User
	Messages []flash.Message
	Data     interface{}
}

// IsAuthenticated is used by the layout to switch the navigation.
func (p Page) IsAuthenticated() bool {
	return p.User != nil
}

type HomePage struct {
	UpcomingActivities  []models.Activity
	RecentAnnouncements []models.Activity
	TotalCourses        int
}

type LoginPage struct {
	Identifier string
	Next       string
}

type SignupPage struct {
	Form   SignupForm
	Errors validation.Errors
}

type DashboardPage struct {
	Semester           int
	Courses            []models.Course
	RecentPapers       []models.Paper
	UpcomingActivities []models.Activity
	Resources          []models.Resource
	Upload             UploadPage
}

// UploadPage feeds the upload form, standalone or embedded in the dashboard.
type UploadPage struct {
	Categories []models.Category
	Selected   string
}

type CoursesPage struct {
	Courses      []models.Course
	SearchQuery  string
	UserSemester int
}

type CourseDetailPage struct {
	Course models.Course
	Papers []models.Paper
}

type PapersPage struct {
	Papers         []models.Paper
	Courses        []models.Course
	PaperTypes     []models.PaperType
	SelectedType   string
	SelectedCourse string
}

type ResourceListPage struct {
	Category    models.Category
	Heading     string
	Known       bool
	Resources   []models.Resource
	SearchQuery string
}

type ActivitiesPage struct {
	Activities    []models.Activity
	ActivityTypes []models.ActivityType
	SelectedType  string
}

// DeleteConfirmPage asks before deleting a paper, activity or resource.
type DeleteConfirmPage struct {
	Kind      string
	Name      string
	ActionURL string
	CancelURL string
}

type ProfilePage struct {
	Profile *models.User
}

type EditProfilePage struct {
	Form   ProfileForm
	Errors validation.Errors
}

type TeamPage struct {
	Members []team.Member
}

type MemberPage struct {
	Member team.Member
}
