// Package directory serves the signed-in pages of the employee directory:
// dashboard, employee list and detail, the employee forms and the live list
// socket. Every handler works on the workspace of the calling session.
package directory

import (
	"context"
	"strconv"
	"time"

	"github.com/apper-canvas/staffsync-program-correct/internal/employee"
	employeeerrors "github.com/apper-canvas/staffsync-program-correct/internal/employee/errors"
	"github.com/apper-canvas/staffsync-program-correct/internal/employeelist"
	"github.com/apper-canvas/staffsync-program-correct/internal/middleware"
	"github.com/apper-canvas/staffsync-program-correct/internal/shared/apperror"
	"github.com/apper-canvas/staffsync-program-correct/internal/shared/response"
	"github.com/apper-canvas/staffsync-program-correct/internal/workspace"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const PathEmployees = "/employees"

type Options struct {
	ListPageSize   int
	SearchDebounce time.Duration
	NotFoundDelay  time.Duration
	// Now is the clock used by the dashboard. Defaults to time.Now.
	Now func() time.Time
}

type Handler struct {
	opts     Options
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

func NewHandler(opts Options, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("directory.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("directory.handler")
	}
	if opts.ListPageSize <= 0 {
		opts.ListPageSize = employeelist.DefaultPerPage
	}
	if opts.SearchDebounce <= 0 {
		opts.SearchDebounce = employeelist.DefaultDebounce
	}
	if opts.NotFoundDelay <= 0 {
		opts.NotFoundDelay = 10 * time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Handler{
		opts: opts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: l,
	}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("directory request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// workspace returns the caller's workspace or answers 401.
func (h *Handler) workspace(c *gin.Context) (*workspace.Workspace, bool) {
	ws, ok := middleware.CurrentWorkspace(c)
	if !ok {
		h.writeServiceError(c, apperror.ErrUnauthorized)
		return nil, false
	}
	return ws, true
}

func parseEmployeeID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, employeeerrors.ErrInvalidEmployeeID
	}
	return id, nil
}

// recordFor finds id in the cached page or current slot before asking the
// record store. A store fetch leaves the current slot empty afterwards.
func recordFor(ctx context.Context, ws *workspace.Workspace, id int64) (employee.Employee, error) {
	st := ws.Employees.Snapshot()
	if st.Current != nil && st.Current.ID == id {
		return *st.Current, nil
	}
	for _, e := range st.Employees {
		if e.ID == id {
			return e, nil
		}
	}

	defer ws.Employees.ClearCurrent()
	return ws.Employees.FetchEmployeeByID(ctx, id)
}
