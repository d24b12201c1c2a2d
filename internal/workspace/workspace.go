// Package workspace keeps the in-memory state of one authenticated browser
// session: its session store, its employee store and its open forms.
package workspace

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/apper-canvas/staffsync-program-correct/internal/employee"
	"github.com/apper-canvas/staffsync-program-correct/internal/employeeform"
	"github.com/apper-canvas/staffsync-program-correct/internal/employeestore"
	"github.com/apper-canvas/staffsync-program-correct/internal/session"
	workspaceerrors "github.com/apper-canvas/staffsync-program-correct/internal/workspace/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Workspace struct {
	ID        string
	Session   *session.Store
	Employees *employeestore.Store
	Forms     *employeeform.Registry

	ctx      context.Context
	cancel   context.CancelFunc
	lastSeen atomic.Int64
}

// Touch records activity on the session.
func (w *Workspace) Touch() {
	w.lastSeen.Store(time.Now().UnixNano())
}

// LastSeen is the time of the most recent Touch.
func (w *Workspace) LastSeen() time.Time {
	return time.Unix(0, w.lastSeen.Load())
}

// Context is cancelled when the workspace is closed. Background work started
// on behalf of the session runs under it.
func (w *Workspace) Context() context.Context {
	return w.ctx
}

func (w *Workspace) close() {
	w.cancel()
	w.Forms.CloseAll()
	w.Employees.Close()
	w.Session.Clear()
}

// Registry maps session ids to live workspaces.
type Registry struct {
	mu         sync.RWMutex
	workspaces map[string]*Workspace

	gateway   employee.Gateway
	publisher employee.EventPublisher
	logger    *zap.Logger
}

func NewRegistry(gateway employee.Gateway, publisher employee.EventPublisher, logger ...*zap.Logger) *Registry {
	l := zap.L().Named("workspace.registry")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("workspace.registry")
	}
	return &Registry{
		workspaces: make(map[string]*Workspace),
		gateway:    gateway,
		publisher:  publisher,
		logger:     l,
	}
}

// Open creates a workspace with a fresh session id.
func (r *Registry) Open() *Workspace {
	id := uuid.NewString()
	ctx, cancel := context.WithCancel(context.Background())

	store := employeestore.New(r.gateway, r.publisher, r.logger)
	ws := &Workspace{
		ID:        id,
		Session:   session.NewStore(),
		Employees: store,
		Forms:     employeeform.NewRegistry(store, r.logger),
		ctx:       ctx,
		cancel:    cancel,
	}
	ws.Touch()

	r.mu.Lock()
	r.workspaces[id] = ws
	r.mu.Unlock()
	openWorkspaces.Inc()

	r.logger.Debug("workspace opened", zap.String("session_id", id))
	return ws
}

// Get returns the workspace for id and marks it as active.
func (r *Registry) Get(id string) (*Workspace, error) {
	r.mu.RLock()
	ws, ok := r.workspaces[id]
	r.mu.RUnlock()
	if !ok {
		return nil, workspaceerrors.ErrWorkspaceNotFound
	}
	ws.Touch()
	return ws, nil
}

// Close disposes the workspace. Unknown ids are ignored.
func (r *Registry) Close(id string) {
	r.mu.Lock()
	ws, ok := r.workspaces[id]
	delete(r.workspaces, id)
	r.mu.Unlock()

	if !ok {
		return
	}
	ws.close()
	openWorkspaces.Dec()
	r.logger.Debug("workspace closed", zap.String("session_id", id))
}

// ReapIdle closes every workspace last seen before cutoff and reports how
// many were closed.
func (r *Registry) ReapIdle(cutoff time.Time) int {
	r.mu.Lock()
	var idle []*Workspace
	for id, ws := range r.workspaces {
		if ws.LastSeen().Before(cutoff) {
			idle = append(idle, ws)
			delete(r.workspaces, id)
		}
	}
	r.mu.Unlock()

	for _, ws := range idle {
		ws.close()
		openWorkspaces.Dec()
		r.logger.Debug("idle workspace reaped", zap.String("session_id", ws.ID))
	}
	return len(idle)
}

// StartReaper closes workspaces idle for longer than maxIdle, checking every
// interval. The returned stop blocks until the reaper has exited.
func (r *Registry) StartReaper(interval, maxIdle time.Duration) (stop func()) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				if n := r.ReapIdle(now.Add(-maxIdle)); n > 0 {
					r.logger.Info("idle sessions closed", zap.Int("count", n))
				}
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}
}

func (r *Registry) CloseAll() {
	r.mu.Lock()
	all := r.workspaces
	r.workspaces = make(map[string]*Workspace)
	r.mu.Unlock()

	for _, ws := range all {
		ws.close()
		openWorkspaces.Dec()
	}
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.workspaces)
}
