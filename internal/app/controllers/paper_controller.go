package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/brainora/internal/app/models"
	"github.com/yigit/brainora/internal/app/models/dto"
	"github.com/yigit/brainora/internal/app/services"
	"github.com/yigit/brainora/internal/app/session"
	"github.com/yigit/brainora/internal/middleware"
)

// PaperController handles previous-year paper pages
type PaperController struct {
	paperService  services.PaperService
	courseService services.CourseService
}

// NewPaperController creates a new PaperController
func NewPaperController(paperService services.PaperService, courseService services.CourseService) *PaperController {
	return &PaperController{paperService: paperService, courseService: courseService}
}

// List shows the semester's papers. ?type= and ?course= narrow the list; a
// course that is not an id is ignored.
func (c *PaperController) List(ctx *gin.Context) {
	rctx := ctx.Request.Context()
	semester := session.User(ctx).EffectiveSemester()
	query := services.PaperQuery{
		Semester: semester,
		Type:     ctx.Query("type"),
		Course:   ctx.Query("course"),
	}

	papers, err := c.paperService.List(rctx, query)
	if err != nil {
		middleware.HandlePageError(ctx, err)
		return
	}
	courses, err := c.courseService.ListForSemester(rctx, semester, "")
	if err != nil {
		middleware.HandlePageError(ctx, err)
		return
	}

	render(ctx, http.StatusOK, "papers.html", "Papers", "papers", dto.PapersPage{
		Papers:         papers,
		Courses:        courses,
		PaperTypes:     models.PaperTypes,
		SelectedType:   query.Type,
		SelectedCourse: query.Course,
	})
}

// DeleteConfirm asks before deleting a paper.
func (c *PaperController) DeleteConfirm(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	paper, err := c.paperService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandlePageError(ctx, err)
		return
	}
	renderDeleteConfirm(ctx, "paper", paper.Title, papersPath)
}

// Delete removes a paper owned by the user, or any paper for admins.
func (c *PaperController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	handleDelete(ctx, c.paperService.Delete, id, "paper", papersPath)
}
