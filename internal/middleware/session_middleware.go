package middleware

import (
	"github.com/apper-canvas/staffsync-program-correct/internal/session"
	"github.com/apper-canvas/staffsync-program-correct/internal/shared/contextutil"
	"github.com/apper-canvas/staffsync-program-correct/internal/workspace"

	"github.com/gin-gonic/gin"
)

// WorkspaceLookup finds the workspace behind a session cookie.
type WorkspaceLookup interface {
	Get(id string) (*workspace.Workspace, error)
}

// Session resolves the session cookie to a signed-in workspace. Requests
// without one continue as anonymous.
func Session(workspaces WorkspaceLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(session.CookieName)
		if err != nil || id == "" {
			c.Next()
			return
		}

		ws, err := workspaces.Get(id)
		if err != nil {
			c.Next()
			return
		}
		user, ok := ws.Session.Snapshot()
		if !ok {
			c.Next()
			return
		}

		uid := user.ID()
		c.Set(ContextWorkspace, ws)
		c.Set(ContextUserID, uid)
		c.Request = c.Request.WithContext(contextutil.WithUserID(c.Request.Context(), uid))
		c.Next()
	}
}

// CurrentWorkspace returns the workspace set by Session.
func CurrentWorkspace(c *gin.Context) (*workspace.Workspace, bool) {
	v, ok := c.Get(ContextWorkspace)
	if !ok {
		return nil, false
	}
	ws, ok := v.(*workspace.Workspace)
	return ws, ok && ws != nil
}
