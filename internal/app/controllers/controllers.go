// Package controllers handles HTTP request handling
package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/brainora/internal/app/models"
	"github.com/yigit/brainora/internal/app/models/dto"
	"github.com/yigit/brainora/internal/app/session"
	"github.com/yigit/brainora/internal/middleware"
	"github.com/yigit/brainora/internal/pkg/apperrors"
	"github.com/yigit/brainora/internal/pkg/flash"
	"github.com/yigit/brainora/internal/pkg/helpers"
	"github.com/yigit/brainora/internal/pkg/logger"
	"github.com/yigit/brainora/internal/pkg/validation"
)

const (
	dashboardPath  = "/dashboard/"
	papersPath     = "/papers/"
	activitiesPath = "/activities/"
	profilePath    = "/profile/"
	aboutPath      = "/about/"
)

// page builds the root value every template receives.
func page(c *gin.Context, title, nav string, data interface{}) dto.Page {
	return dto.Page{
		Title:    title,
		Nav:      nav,
		User:     session.User(c),
		Messages: flash.Consume(c),
		Data:     data,
	}
}

func render(c *gin.Context, status int, tmpl, title, nav string, data interface{}) {
	c.HTML(status, tmpl, page(c, title, nav, data))
}

// redirect persists queued flash messages and sends a 302.
func redirect(c *gin.Context, location string) {
	flash.Persist(c)
	c.Redirect(http.StatusFound, location)
}

// flashFormErrors queues one message per field error. Errors that are not
// validation errors get a single generic message.
func flashFormErrors(c *gin.Context, err error, fallback string) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		for _, msg := range verrs.Messages() {
			flash.Error(c, msg)
		}
		return
	}
	logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Form submission failed")
	flash.Error(c, fallback)
}

// pathID reads a positive id path parameter. It renders the 404 page and
// returns false when the parameter is not one.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, ok := helpers.ParseID(c.Param(name))
	if !ok {
		middleware.HandlePageError(c, apperrors.ErrResourceNotFound)
	}
	return id, ok
}

// deleteFunc is the shape shared by the paper, activity and resource deletes.
type deleteFunc func(ctx context.Context, user *models.User, id int64) error

func renderDeleteConfirm(c *gin.Context, kind, name, cancelURL string) {
	render(c, http.StatusOK, "delete_confirm.html", "Delete "+kind, "", dto.DeleteConfirmPage{
		Kind:      kind,
		Name:      name,
		ActionURL: c.Request.URL.Path,
		CancelURL: cancelURL,
	})
}

// handleDelete runs del for the current user. A permission error becomes a
// flash message; every outcome except a missing record ends in a redirect.
func handleDelete(c *gin.Context, del deleteFunc, id int64, kind, location string) {
	user := session.User(c)

	err := del(c.Request.Context(), user, id)
	switch {
	case err == nil:
		flash.Success(c, helpers.Humanize(kind)+" deleted successfully.")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		flash.Error(c, err.Error())
	case apperrors.NotFound(err):
		middleware.HandlePageError(c, err)
		return
	default:
		logger.Error().Err(err).Str("kind", kind).Int64("id", id).Msg("Failed to delete record")
		flash.Error(c, "Could not delete the "+kind+". Please try again.")
	}

	redirect(c, location)
}
