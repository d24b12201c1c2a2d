package middleware

import (
	"net/http"

	"github.com/apper-canvas/staffsync-program-correct/internal/session"

	"github.com/gin-gonic/gin"
)

// RouteGuard enforces the route policy. Anonymous visitors of a member page
// are redirected to the login page with the page as redirect target; any
// other path an anonymous visitor may not open goes to the plain login page.
// Unknown paths of signed-in members fall through to the not-found handler.
func RouteGuard(policy *session.RoutePolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		role := session.RoleAnonymous
		if _, ok := CurrentWorkspace(c); ok {
			role = session.RoleMember
		}

		if policy.Allowed(role, path) {
			c.Next()
			return
		}

		if role == session.RoleAnonymous {
			target := session.PathLogin
			if policy.IsProtected(path) {
				target = session.LoginRedirect(c.Request.URL.RequestURI())
			}
			c.Redirect(http.StatusFound, target)
			c.Abort()
			return
		}

		c.Next()
	}
}
