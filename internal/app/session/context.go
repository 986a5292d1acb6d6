package session

import (
	"github.com/gin-gonic/gin"

	"github.com/yigit/brainora/internal/app/models"
)

const contextKey = "brainora.session"

// Context is the per-request session value. A nil User means the request is
// anonymous.
type Context struct {
	Session *models.Session
	User    *models.User
}

// Authenticated reports whether a user is logged in.
func (sc *Context) Authenticated() bool {
	return sc != nil && sc.User != nil
}

// Set stores sc on the gin context.
func Set(c *gin.Context, sc *Context) {
	c.Set(contextKey, sc)
}

// From returns the session value of the request, anonymous when none was set.
func From(c *gin.Context) *Context {
	if v, ok := c.Get(contextKey); ok {
		if sc, ok := v.(*Context); ok && sc != nil {
			return sc
		}
	}
	return &Context{}
}

// User is shorthand for From(c).User.
func User(c *gin.Context) *models.User {
	return From(c).User
}
