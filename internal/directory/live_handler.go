package directory

import (
	"context"
	"errors"
	"sync"

	"github.com/apper-canvas/staffsync-program-correct/internal/employee"
	"github.com/apper-canvas/staffsync-program-correct/internal/employeelist"
	"github.com/apper-canvas/staffsync-program-correct/internal/employeestore"
	"github.com/apper-canvas/staffsync-program-correct/internal/shared/contextutil"
	"github.com/apper-canvas/staffsync-program-correct/internal/workspace"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	CommandSearch     = "search"
	CommandDepartment = "department"
	CommandPage       = "page"
	CommandSort       = "sort"
	CommandClear      = "clear"
	CommandQuery      = "query"

	MessageList  = "list"
	MessageError = "error"

	liveReadLimit = 4096
)

var errUnknownCommand = errors.New("unknown command")

// LiveCommand is one list interaction sent by the browser.
type LiveCommand struct {
	Type  string              `json:"type"`
	Value string              `json:"value,omitempty"`
	Page  int                 `json:"page,omitempty"`
	Query *employeelist.Query `json:"query,omitempty"`
}

type LiveMessage struct {
	Type  string             `json:"type"`
	List  *employeelist.View `json:"list,omitempty"`
	Error string             `json:"error,omitempty"`
}

// LiveEmployees upgrades to a websocket that drives the employee list.
// Query changes are debounced into fetches; every store change is pushed
// as a fresh list view.
func (h *Handler) LiveEmployees(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Debug("websocket upgrade failed", zap.Error(err))
		return
	}

	ctx := contextutil.WithRequestID(ws.Context(), contextutil.GetRequestID(c.Request.Context()))
	ctx = contextutil.WithUserID(ctx, contextutil.GetUserID(c.Request.Context()))
	h.serveLive(ctx, ws, conn)
}

func (h *Handler) serveLive(ctx context.Context, ws *workspace.Workspace, conn *websocket.Conn) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer conn.Close()

	log := h.logger.With(zap.String("session_id", ws.ID))
	list := employeelist.New(ctx, ws.Employees, h.opts.ListPageSize, h.opts.SearchDebounce, h.logger)
	defer list.Close()

	dirty := make(chan struct{}, 1)
	notify := func() {
		select {
		case dirty <- struct{}{}:
		default:
		}
	}
	failures := make(chan string, 4)

	unsubscribe := ws.Employees.Subscribe(func(employeestore.State) { notify() })
	defer unsubscribe()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer conn.Close()
		for {
			var msg LiveMessage
			select {
			case <-ctx.Done():
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			case <-dirty:
				view := list.Render(ws.Employees.Snapshot())
				msg = LiveMessage{Type: MessageList, List: &view}
			case text := <-failures:
				msg = LiveMessage{Type: MessageError, Error: text}
			}
			if err := conn.WriteJSON(msg); err != nil {
				log.Debug("websocket write failed", zap.Error(err))
				cancel()
				return
			}
		}
	}()

	notify()
	list.Start()

	conn.SetReadLimit(liveReadLimit)
	for {
		var cmd LiveCommand
		if err := conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug("websocket read failed", zap.Error(err))
			}
			break
		}
		ws.Touch()
		if err := applyCommand(list, cmd); err != nil {
			select {
			case failures <- err.Error():
			default:
			}
			continue
		}
		notify()
	}

	cancel()
	wg.Wait()
}

func applyCommand(list *employeelist.Controller, cmd LiveCommand) error {
	switch cmd.Type {
	case CommandSearch:
		list.SetSearch(cmd.Value)
	case CommandDepartment:
		list.SetDepartment(cmd.Value)
	case CommandPage:
		list.SetPage(cmd.Page)
	case CommandSort:
		if _, ok := employee.Columns[cmd.Value]; !ok {
			return errors.New("unknown sort field " + cmd.Value)
		}
		list.ToggleSort(cmd.Value)
	case CommandClear:
		list.ClearFilters()
	case CommandQuery:
		if cmd.Query == nil {
			return errors.New("query is required")
		}
		q := cmd.Query.Normalize()
		if _, ok := employee.Columns[q.SortField]; !ok {
			return errors.New("unknown sort field " + q.SortField)
		}
		list.Replace(q)
	default:
		return errUnknownCommand
	}
	return nil
}
