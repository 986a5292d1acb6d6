package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/brainora/internal/app/models"
	"github.com/yigit/brainora/internal/app/models/dto"
	"github.com/yigit/brainora/internal/app/services"
	"github.com/yigit/brainora/internal/app/session"
	"github.com/yigit/brainora/internal/middleware"
	"github.com/yigit/brainora/internal/pkg/flash"
)

// Listing sizes of the home page and the dashboard.
const (
	homeUpcomingLimit      = 6
	homeAnnouncementLimit  = 5
	dashboardPaperLimit    = 5
	dashboardActivityLimit = 5
	dashboardResourceLimit = 50
)

const (
	msgUploadSucceeded  = "Resource uploaded successfully."
	msgUploadUnreadable = "file: The upload could not be read."
	msgUploadFailed     = "Could not upload the resource. Please try again."
)

// PageController serves the home page, the dashboard and the resource upload.
type PageController struct {
	courses    services.CourseService
	papers     services.PaperService
	activities services.ActivityService
	resources  services.ResourceService
	logger     zerolog.Logger
}

// NewPageController creates a new PageController
func NewPageController(svc *services.Services, logger zerolog.Logger) *PageController {
	return &PageController{
		courses:    svc.Courses,
		papers:     svc.Papers,
		activities: svc.Activities,
		resources:  svc.Resources,
		logger:     logger,
	}
}

// Home is public.
func (c *PageController) Home(ctx *gin.Context) {
	rctx := ctx.Request.Context()

	upcoming, err := c.activities.Upcoming(rctx, homeUpcomingLimit)
	if err != nil {
		middleware.HandlePageError(ctx, err)
		return
	}
	announcements, err := c.activities.RecentAnnouncements(rctx, homeAnnouncementLimit)
	if err != nil {
		middleware.HandlePageError(ctx, err)
		return
	}
	total, err := c.courses.Count(rctx)
	if err != nil {
		middleware.HandlePageError(ctx, err)
		return
	}

	render(ctx, http.StatusOK, "home.html", "Home", "home", dto.HomePage{
		UpcomingActivities:  upcoming,
		RecentAnnouncements: announcements,
		TotalCourses:        int(total),
	})
}

// Dashboard shows the semester's courses and papers, upcoming activities and
// the latest resources.
func (c *PageController) Dashboard(ctx *gin.Context) {
	rctx := ctx.Request.Context()
	semester := session.User(ctx).EffectiveSemester()

	courses, err := c.courses.ListForSemester(rctx, semester, "")
	if err != nil {
		middleware.HandlePageError(ctx, err)
		return
	}
	papers, err := c.papers.Recent(rctx, semester, dashboardPaperLimit)
	if err != nil {
		middleware.HandlePageError(ctx, err)
		return
	}
	upcoming, err := c.activities.Upcoming(rctx, dashboardActivityLimit)
	if err != nil {
		middleware.HandlePageError(ctx, err)
		return
	}
	resources, err := c.resources.Recent(rctx, dashboardResourceLimit)
	if err != nil {
		middleware.HandlePageError(ctx, err)
		return
	}

	render(ctx, http.StatusOK, "dashboard.html", "Dashboard", "dashboard", dto.DashboardPage{
		Semester:           semester,
		Courses:            courses,
		RecentPapers:       papers,
		UpcomingActivities: upcoming,
		Resources:          resources,
		Upload:             dto.UploadPage{Categories: models.Categories},
	})
}

// UploadPage renders the standalone upload form. ?category= preselects a category.
func (c *PageController) UploadPage(ctx *gin.Context) {
	render(ctx, http.StatusOK, "upload.html", "Upload", "upload", dto.UploadPage{
		Categories: models.Categories,
		Selected:   ctx.Query("category"),
	})
}

// UploadResource handles the upload form. It always ends on the dashboard;
// problems are reported as flash messages.
func (c *PageController) UploadResource(ctx *gin.Context) {
	var form dto.ResourceUploadForm
	if err := ctx.ShouldBind(&form); err != nil {
		c.logger.Warn().Err(err).Msg("Unreadable upload form")
		flash.Error(ctx, msgUploadUnreadable)
		redirect(ctx, dashboardPath)
		return
	}

	file, err := ctx.FormFile("file")
	switch {
	case err == nil:
		form.File = file
	case !errors.Is(err, http.ErrMissingFile):
		c.logger.Warn().Err(err).Msg("Unreadable upload file")
		flash.Error(ctx, msgUploadUnreadable)
		redirect(ctx, dashboardPath)
		return
	}

	if _, err := c.resources.Upload(ctx.Request.Context(), session.User(ctx), form); err != nil {
		flashFormErrors(ctx, err, msgUploadFailed)
		redirect(ctx, dashboardPath)
		return
	}

	flash.Success(ctx, msgUploadSucceeded)
	redirect(ctx, dashboardPath)
}

// UploadRedirect answers GET /upload_resource/, which only accepts POST.
func (c *PageController) UploadRedirect(ctx *gin.Context) {
	redirect(ctx, dashboardPath)
}
