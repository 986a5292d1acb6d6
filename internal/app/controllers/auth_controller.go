package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/brainora/internal/app/models"
	"github.com/yigit/brainora/internal/app/models/dto"
	"github.com/yigit/brainora/internal/app/services"
	"github.com/yigit/brainora/internal/app/session"
	"github.com/yigit/brainora/internal/middleware"
	"github.com/yigit/brainora/internal/pkg/apperrors"
	"github.com/yigit/brainora/internal/pkg/flash"
	"github.com/yigit/brainora/internal/pkg/helpers"
	"github.com/yigit/brainora/internal/pkg/validation"
)

const msgInvalidLogin = "Invalid username/email or password."

// AuthController handles authentication related operations
type AuthController struct {
	authService services.AuthService
	cookie      middleware.SessionCookie
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, cookie middleware.SessionCookie, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		cookie:      cookie,
		logger:      logger,
	}
}

// LoginPage renders the login form. Logged-in users go straight to the dashboard.
func (c *AuthController) LoginPage(ctx *gin.Context) {
	if session.From(ctx).Authenticated() {
		redirect(ctx, dashboardPath)
		return
	}
	render(ctx, http.StatusOK, "login.html", "Log in", "login", dto.LoginPage{Next: ctx.Query("next")})
}

// Login handles the login form
func (c *AuthController) Login(ctx *gin.Context) {
	if session.From(ctx).Authenticated() {
		redirect(ctx, dashboardPath)
		return
	}

	var form dto.LoginForm
	if err := ctx.ShouldBind(&form); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid login payload")
	}
	form.Identifier = strings.TrimSpace(form.Identifier)

	fail := func() {
		flash.Error(ctx, msgInvalidLogin)
		render(ctx, http.StatusOK, "login.html", "Log in", "login", dto.LoginPage{Identifier: form.Identifier, Next: form.Next})
	}

	if errs := validation.Struct(&form); len(errs) > 0 {
		fail()
		return
	}

	user, err := c.authService.Authenticate(ctx.Request.Context(), form.Identifier, form.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			fail()
			return
		}
		middleware.HandlePageError(ctx, err)
		return
	}

	if !c.startSession(ctx, user) {
		return
	}

	flash.Success(ctx, "Welcome back, "+user.DisplayName()+"!")
	redirect(ctx, helpers.SafeRedirect(form.Next, dashboardPath))
}

// SignupPage renders the registration form.
func (c *AuthController) SignupPage(ctx *gin.Context) {
	if session.From(ctx).Authenticated() {
		redirect(ctx, dashboardPath)
		return
	}
	render(ctx, http.StatusOK, "signup.html", "Sign up", "signup", dto.SignupPage{})
}

// Signup handles user registration and logs the new user in.
func (c *AuthController) Signup(ctx *gin.Context) {
	if session.From(ctx).Authenticated() {
		redirect(ctx, dashboardPath)
		return
	}

	var form dto.SignupForm
	if err := ctx.ShouldBind(&form); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid signup payload")
	}

	user, err := c.authService.Register(ctx.Request.Context(), form)
	if err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			form.Password, form.Password2 = "", ""
			render(ctx, http.StatusOK, "signup.html", "Sign up", "signup", dto.SignupPage{Form: form, Errors: verrs})
			return
		}
		middleware.HandlePageError(ctx, err)
		return
	}

	if !c.startSession(ctx, user) {
		return
	}

	flash.Success(ctx, "Account created successfully! Welcome to Brainora.")
	redirect(ctx, dashboardPath)
}

// Logout ends the session and returns to the login page.
func (c *AuthController) Logout(ctx *gin.Context) {
	if token := c.cookie.Read(ctx); token != "" {
		if err := c.authService.EndSession(ctx.Request.Context(), token); err != nil {
			c.logger.Warn().Err(err).Msg("Failed to end session")
		}
	}
	c.cookie.Clear(ctx)

	flash.Info(ctx, "You have been logged out successfully.")
	redirect(ctx, middleware.LoginPath)
}

// startSession issues the session cookie for user. On failure it renders the
// error page and returns false.
func (c *AuthController) startSession(ctx *gin.Context, user *models.User) bool {
	info, err := c.authService.StartSession(ctx.Request.Context(), user, ctx.ClientIP(), ctx.Request.UserAgent())
	if err != nil {
		c.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to start session")
		middleware.HandlePageError(ctx, err)
		return false
	}
	c.cookie.Set(ctx, info.Token, info.ExpiresAt)
	return true
}
