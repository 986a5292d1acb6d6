package middleware

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yigit/brainora/internal/app/models"
	"github.com/yigit/brainora/internal/app/session"
	"github.com/yigit/brainora/internal/pkg/apperrors"
	"github.com/yigit/brainora/internal/pkg/logger"
)

// LoginPath is where anonymous requests to protected pages are sent.
const LoginPath = "/login/"

// SessionCookie describes the cookie carrying the signed session token.
type SessionCookie struct {
	Name   string
	Secure bool
}

// Read returns the raw token, empty when the cookie is absent.
func (sc SessionCookie) Read(c *gin.Context) string {
	v, err := c.Cookie(sc.Name)
	if err != nil {
		return ""
	}
	return v
}

// Set writes the token with an absolute expiry.
func (sc SessionCookie) Set(c *gin.Context, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	if maxAge <= 0 {
		maxAge = -1
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sc.Name, token, maxAge, "/", "", sc.Secure, true)
}

// Clear removes the cookie from the browser.
func (sc SessionCookie) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sc.Name, "", -1, "/", "", sc.Secure, true)
}

// SessionResolver turns a session token into its user.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*models.Session, *models.User, error)
}

// AuthMiddleware attaches the session value to every request and guards
// protected routes.
type AuthMiddleware struct {
	resolver SessionResolver
	cookie   SessionCookie
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(resolver SessionResolver, cookie SessionCookie) *AuthMiddleware {
	return &AuthMiddleware{resolver: resolver, cookie: cookie}
}

// LoadSession resolves the session cookie. Requests with a missing or
// unusable cookie continue as anonymous.
func (m *AuthMiddleware) LoadSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sc := &session.Context{}

		if token := m.cookie.Read(c); token != "" {
			s, user, err := m.resolver.ResolveSession(c.Request.Context(), token)
			switch {
			case err == nil:
				sc.Session, sc.User = s, user
			case apperrors.Is(err, apperrors.ErrSessionNotFound,
				apperrors.ErrSessionExpired, apperrors.ErrSessionInvalid, apperrors.ErrAccountDisabled):
				m.cookie.Clear(c)
			default:
				logger.Error().Err(err).Msg("Failed to resolve session")
			}
		}

		session.Set(c, sc)
		c.Next()
	}
}

// RequireAuth redirects anonymous requests to the login page, remembering
// where they were headed.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if session.From(c).Authenticated() {
			c.Next()
			return
		}

		next := c.Request.URL.RequestURI()
		c.Redirect(http.StatusFound, LoginPath+"?next="+url.QueryEscape(next))
		c.Abort()
	}
}
