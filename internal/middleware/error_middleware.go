package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/brainora/internal/app/models/dto"
	"github.com/yigit/brainora/internal/app/session"
	"github.com/yigit/brainora/internal/pkg/apperrors"
	"github.com/yigit/brainora/internal/pkg/logger"
)

// ErrorTemplate is the template used for every error page.
const ErrorTemplate = "error.html"

// RenderError renders the error page and aborts the chain.
func RenderError(c *gin.Context, status int, code dto.ErrorCode, heading, message string) {
	c.HTML(status, ErrorTemplate, dto.Page{
		Title: heading,
		User:  session.User(c),
		Data: dto.ErrorPage{
			Status:  status,
			Code:    code,
			Heading: heading,
			Message: message,
		},
	})
	c.Abort()
}

// HandlePageError maps an application error onto an error page.
func HandlePageError(c *gin.Context, err error) {
	var custom *apperrors.CustomError

	switch {
	case apperrors.NotFound(err):
		RenderError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound,
			"Page not found", "The page you are looking for does not exist.")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		message := "You do not have permission to do that."
		if errors.As(err, &custom) {
			message = custom.Error()
		}
		RenderError(c, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied", message)
	default:
		_ = c.Error(err)
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled request error")
		RenderError(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer,
			"Something went wrong", "An unexpected error occurred. Please try again later.")
	}
}

// NotFoundHandler serves unmatched routes.
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		HandlePageError(c, apperrors.ErrResourceNotFound)
	}
}

// Recovery turns panics into the 500 page instead of a dropped connection.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("Recovered from panic")
		RenderError(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer,
			"Something went wrong", "An unexpected error occurred. Please try again later.")
	})
}
