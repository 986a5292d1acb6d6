package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yigit/brainora/internal/app/models/dto"
	"github.com/yigit/brainora/internal/app/services"
	"github.com/yigit/brainora/internal/app/session"
	"github.com/yigit/brainora/internal/middleware"
)

// CourseController handles course listing and detail pages
type CourseController struct {
	courseService services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService) *CourseController {
	return &CourseController{courseService: courseService}
}

// List shows the courses of the user's semester, narrowed by ?search=.
func (c *CourseController) List(ctx *gin.Context) {
	semester := session.User(ctx).EffectiveSemester()
	search := strings.TrimSpace(ctx.Query("search"))

	courses, err := c.courseService.ListForSemester(ctx.Request.Context(), semester, search)
	if err != nil {
		middleware.HandlePageError(ctx, err)
		return
	}

	render(ctx, http.StatusOK, "courses.html", "Courses", "courses", dto.CoursesPage{
		Courses:      courses,
		SearchQuery:  search,
		UserSemester: semester,
	})
}

// Detail shows a course and its papers. Unknown ids render the 404 page.
func (c *CourseController) Detail(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	course, papers, err := c.courseService.Detail(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandlePageError(ctx, err)
		return
	}

	render(ctx, http.StatusOK, "course_detail.html", course.Code, "courses", dto.CourseDetailPage{
		Course: *course,
		Papers: papers,
	})
}
