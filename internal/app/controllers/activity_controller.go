package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/brainora/internal/app/models"
	"github.com/yigit/brainora/internal/app/models/dto"
	"github.com/yigit/brainora/internal/app/services"
	"github.com/yigit/brainora/internal/middleware"
)

const calendarFileName = "brainora-activities.ics"

// ActivityController handles college activity pages and the calendar feed
type ActivityController struct {
	activityService services.ActivityService
	baseURL         string
}

// NewActivityController creates a new ActivityController. baseURL is used
// for the links and event ids of the calendar feed.
func NewActivityController(activityService services.ActivityService, baseURL string) *ActivityController {
	return &ActivityController{activityService: activityService, baseURL: baseURL}
}

// List shows every activity, optionally of one ?type=.
func (c *ActivityController) List(ctx *gin.Context) {
	activityType := ctx.Query("type")

	activities, err := c.activityService.List(ctx.Request.Context(), activityType)
	if err != nil {
		middleware.HandlePageError(ctx, err)
		return
	}

	render(ctx, http.StatusOK, "activities.html", "Activities", "activities", dto.ActivitiesPage{
		Activities:    activities,
		ActivityTypes: models.ActivityTypes,
		SelectedType:  activityType,
	})
}

// Calendar serves all activities as an iCalendar file.
func (c *ActivityController) Calendar(ctx *gin.Context) {
	body, err := c.activityService.Calendar(ctx.Request.Context(), c.baseURL)
	if err != nil {
		middleware.HandlePageError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="`+calendarFileName+`"`)
	ctx.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(body))
}

func (c *ActivityController) DeleteConfirm(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	activity, err := c.activityService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandlePageError(ctx, err)
		return
	}
	renderDeleteConfirm(ctx, "activity", activity.Title, activitiesPath)
}

func (c *ActivityController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	handleDelete(ctx, c.activityService.Delete, id, "activity", activitiesPath)
}
