package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/brainora/internal/app/models/dto"
	"github.com/yigit/brainora/internal/app/services"
	"github.com/yigit/brainora/internal/app/session"
	"github.com/yigit/brainora/internal/middleware"
	"github.com/yigit/brainora/internal/pkg/flash"
	"github.com/yigit/brainora/internal/pkg/validation"
)

// UserController handles the profile pages of the logged-in user
type UserController struct {
	userService services.UserService
	logger      zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(userService services.UserService, logger zerolog.Logger) *UserController {
	return &UserController{userService: userService, logger: logger}
}

// Profile shows the current user.
func (c *UserController) Profile(ctx *gin.Context) {
	render(ctx, http.StatusOK, "profile.html", "Profile", "profile", dto.ProfilePage{Profile: session.User(ctx)})
}

// EditProfilePage renders the profile form filled with the current values.
func (c *UserController) EditProfilePage(ctx *gin.Context) {
	render(ctx, http.StatusOK, "edit_profile.html", "Edit profile", "profile", dto.EditProfilePage{
		Form: dto.ProfileFormFor(session.User(ctx)),
	})
}

// EditProfile applies the profile form.
func (c *UserController) EditProfile(ctx *gin.Context) {
	user := session.User(ctx)

	var form dto.ProfileForm
	if err := ctx.ShouldBind(&form); err != nil {
		c.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Invalid profile payload")
	}

	var verrs validation.Errors
	if file, err := ctx.FormFile("profile_picture"); err == nil {
		form.ProfilePicture = file
	} else if !errors.Is(err, http.ErrMissingFile) {
		verrs.Add("profile_picture", "The upload could not be read.")
	}

	if len(verrs) == 0 {
		updated, err := c.userService.UpdateProfile(ctx.Request.Context(), user, form)
		if err == nil {
			c.logger.Info().Int64("userID", updated.ID).Msg("Profile updated")
			flash.Success(ctx, "Profile updated successfully.")
			redirect(ctx, profilePath)
			return
		}
		if !errors.As(err, &verrs) {
			middleware.HandlePageError(ctx, err)
			return
		}
	}

	render(ctx, http.StatusOK, "edit_profile.html", "Edit profile", "profile", dto.EditProfilePage{
		Form:   form,
		Errors: verrs,
	})
}
