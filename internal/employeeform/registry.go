package employeeform

import (
	"sync"

	"github.com/apper-canvas/staffsync-program-correct/internal/employee"
	formerrors "github.com/apper-canvas/staffsync-program-correct/internal/employeeform/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Registry holds the open forms of one workspace.
type Registry struct {
	mu     sync.RWMutex
	forms  map[string]*Controller
	writer EmployeeWriter
	logger *zap.Logger
}

func NewRegistry(writer EmployeeWriter, logger ...*zap.Logger) *Registry {
	l := zap.L().Named("employeeform.registry")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employeeform.registry")
	}
	return &Registry{
		forms:  make(map[string]*Controller),
		writer: writer,
		logger: l,
	}
}

// Open creates a controller and keeps it until it is closed or submitted.
func (r *Registry) Open(opts Options) (*Controller, error) {
	id := uuid.NewString()

	userSuccess := opts.OnSuccess
	opts.OnSuccess = func(e employee.Employee) {
		r.remove(id)
		if userSuccess != nil {
			userSuccess(e)
		}
	}

	c, err := NewController(id, r.writer, opts, r.logger)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.forms[id] = c
	r.mu.Unlock()

	r.logger.Debug("form opened", zap.String("form_id", id), zap.String("mode", string(c.mode)), zap.Bool("wizard", c.wizard))
	return c, nil
}

func (r *Registry) Get(id string) (*Controller, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.forms[id]
	if !ok {
		return nil, formerrors.ErrFormNotFound
	}
	return c, nil
}

// Close disposes one form. Closing an unknown id is not an error.
func (r *Registry) Close(id string) {
	c := r.remove(id)
	if c != nil {
		c.Close()
	}
}

// CloseAll disposes every open form.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	forms := r.forms
	r.forms = make(map[string]*Controller)
	r.mu.Unlock()

	for _, c := range forms {
		c.Close()
	}
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.forms)
}

func (r *Registry) remove(id string) *Controller {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.forms[id]
	delete(r.forms, id)
	return c
}
