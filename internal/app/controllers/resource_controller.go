package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yigit/brainora/internal/app/models/dto"
	"github.com/yigit/brainora/internal/app/services"
	"github.com/yigit/brainora/internal/middleware"
)

// ResourceController handles the per-category resource pages
type ResourceController struct {
	resourceService services.ResourceService
}

// NewResourceController creates a new ResourceController
func NewResourceController(resourceService services.ResourceService) *ResourceController {
	return &ResourceController{resourceService: resourceService}
}

// List shows one category. Unknown slugs render an empty page titled after
// the slug.
func (c *ResourceController) List(ctx *gin.Context) {
	search := strings.TrimSpace(ctx.Query("search"))

	listing, err := c.resourceService.ListByCategory(ctx.Request.Context(), ctx.Param("category"), search)
	if err != nil {
		middleware.HandlePageError(ctx, err)
		return
	}

	render(ctx, http.StatusOK, "resource_list.html", listing.Heading, "", dto.ResourceListPage{
		Category:    listing.Category,
		Heading:     listing.Heading,
		Known:       listing.Known,
		Resources:   listing.Resources,
		SearchQuery: search,
	})
}

func (c *ResourceController) DeleteConfirm(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	res, err := c.resourceService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandlePageError(ctx, err)
		return
	}
	renderDeleteConfirm(ctx, "resource", res.Title, dashboardPath)
}

func (c *ResourceController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	handleDelete(ctx, c.resourceService.Delete, id, "resource", dashboardPath)
}
