// Package employeestore holds the per-workspace employee collection cache and
// the actions that move it through the record service gateway.
package employeestore

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/apper-canvas/staffsync-program-correct/internal/employee"
	"github.com/apper-canvas/staffsync-program-correct/internal/events"
	"github.com/apper-canvas/staffsync-program-correct/internal/shared/apperror"
	"github.com/apper-canvas/staffsync-program-correct/internal/shared/contextutil"

	"go.uber.org/zap"
)

var ErrStoreClosed = errors.New("employee store is closed")

// Listener receives a snapshot after every transition.
type Listener func(State)

type Store struct {
	mu        sync.Mutex
	state     State
	closed    bool
	listeners map[int]Listener
	nextID    int

	gateway   employee.Gateway
	publisher employee.EventPublisher
	logger    *zap.Logger
}

func New(gateway employee.Gateway, publisher employee.EventPublisher, logger ...*zap.Logger) *Store {
	l := zap.L().Named("employeestore.store")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employeestore.store")
	}
	if publisher == nil {
		publisher = employee.NewNoopEventPublisher()
	}
	return &Store{
		state:     initialState(),
		listeners: make(map[int]Listener),
		gateway:   gateway,
		publisher: publisher,
		logger:    l,
	}
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Subscribe registers fn for future transitions and returns a function that
// removes it.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return func() {}
	}
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Close drops all listeners. Later transitions are ignored and later actions
// fail with ErrStoreClosed.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	clear(s.listeners)
}

func (s *Store) apply(mutate func(*State)) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	mutate(&s.state)
	snap := s.state.clone()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
}

func (s *Store) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Store) FetchStarted() {
	s.apply(func(st *State) {
		st.Loading = true
		st.Error = ""
	})
}

// FetchSucceeded replaces the cached page and recomputes department stats
// from it.
func (s *Store) FetchSucceeded(records []employee.Employee, total int) {
	records = slices.Clone(records)
	if records == nil {
		records = []employee.Employee{}
	}
	s.apply(func(st *State) {
		st.Loading = false
		st.Employees = records
		st.TotalCount = total
		st.DepartmentStats = departmentStats(records)
	})
}

func (s *Store) FetchFailed(message string) {
	s.apply(func(st *State) {
		st.Loading = false
		st.Error = message
	})
}

func (s *Store) OneFetchSucceeded(record employee.Employee) {
	s.apply(func(st *State) {
		st.Loading = false
		st.Current = &record
	})
}

// Created appends record to the cached page without re-sorting.
func (s *Store) Created(record employee.Employee) {
	s.apply(func(st *State) {
		st.Loading = false
		st.Employees = append(st.Employees, record)
		st.TotalCount++
	})
}

// Updated replaces the cached record with the same ID. A record that is not
// on the cached page is ignored.
func (s *Store) Updated(record employee.Employee) {
	s.apply(func(st *State) {
		st.Loading = false
		idx := slices.IndexFunc(st.Employees, func(e employee.Employee) bool { return e.ID == record.ID })
		if idx >= 0 {
			st.Employees[idx] = record
		}
	})
}

// Deleted removes the cached record with id. An id that is not on the cached
// page leaves the state unchanged.
func (s *Store) Deleted(id int64) {
	s.apply(func(st *State) {
		st.Loading = false
		idx := slices.IndexFunc(st.Employees, func(e employee.Employee) bool { return e.ID == id })
		if idx < 0 {
			return
		}
		st.Employees = slices.Delete(st.Employees, idx, idx+1)
		st.TotalCount--
	})
}

func (s *Store) ClearCurrent() {
	s.apply(func(st *State) {
		st.Current = nil
	})
}

// FetchEmployees loads one page. Overlapping calls are not coalesced; the
// response that arrives last determines the cached page.
func (s *Store) FetchEmployees(ctx context.Context, opts employee.ListOptions) (employee.ListResult, error) {
	if s.isClosed() {
		return employee.ListResult{}, ErrStoreClosed
	}

	s.FetchStarted()
	start := time.Now()
	res, err := s.gateway.List(ctx, opts)
	storeActionLatency.WithLabelValues("fetch_employees").Observe(time.Since(start).Seconds())
	recordAction("fetch_employees", err)

	if err != nil {
		s.logger.Warn("fetch employees failed",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.Error(err),
		)
		s.FetchFailed(errorMessage(err))
		return employee.ListResult{}, err
	}

	s.FetchSucceeded(res.Records, res.TotalCount)
	return res, nil
}

func (s *Store) FetchEmployeeByID(ctx context.Context, id int64) (employee.Employee, error) {
	if s.isClosed() {
		return employee.Employee{}, ErrStoreClosed
	}

	s.FetchStarted()
	start := time.Now()
	record, err := s.gateway.GetByID(ctx, id)
	storeActionLatency.WithLabelValues("fetch_employee").Observe(time.Since(start).Seconds())
	recordAction("fetch_employee", err)

	if err != nil {
		s.logger.Warn("fetch employee failed",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.Int64("employee_id", id),
			zap.Error(err),
		)
		s.FetchFailed(errorMessage(err))
		return employee.Employee{}, err
	}

	s.OneFetchSucceeded(record)
	return record, nil
}

// AddEmployee creates draft through the gateway. Failures are returned to the
// caller and leave the state untouched.
func (s *Store) AddEmployee(ctx context.Context, draft employee.Employee) (employee.Employee, error) {
	if s.isClosed() {
		return employee.Employee{}, ErrStoreClosed
	}

	start := time.Now()
	record, err := s.gateway.Create(ctx, draft)
	storeActionLatency.WithLabelValues("add_employee").Observe(time.Since(start).Seconds())
	recordAction("add_employee", err)
	if err != nil {
		return employee.Employee{}, err
	}

	s.Created(record)
	s.publish(ctx, events.EmployeeCreated, record)
	return record, nil
}

func (s *Store) ModifyEmployee(ctx context.Context, record employee.Employee) (employee.Employee, error) {
	if s.isClosed() {
		return employee.Employee{}, ErrStoreClosed
	}

	start := time.Now()
	updated, err := s.gateway.Update(ctx, record)
	storeActionLatency.WithLabelValues("modify_employee").Observe(time.Since(start).Seconds())
	recordAction("modify_employee", err)
	if err != nil {
		return employee.Employee{}, err
	}

	s.Updated(updated)
	s.publish(ctx, events.EmployeeUpdated, updated)
	return updated, nil
}

func (s *Store) RemoveEmployee(ctx context.Context, id int64) error {
	if s.isClosed() {
		return ErrStoreClosed
	}

	start := time.Now()
	err := s.gateway.Delete(ctx, id)
	storeActionLatency.WithLabelValues("remove_employee").Observe(time.Since(start).Seconds())
	recordAction("remove_employee", err)
	if err != nil {
		return err
	}

	s.Deleted(id)
	s.publish(ctx, events.EmployeeDeleted, employee.Employee{ID: id})
	return nil
}

// publish is best effort; a broker failure never fails the mutation.
func (s *Store) publish(ctx context.Context, eventType string, record employee.Employee) {
	event := events.EmployeeLifecycleEvent{
		EventType:  eventType,
		RequestID:  contextutil.GetRequestID(ctx),
		EmployeeID: record.ID,
		FullName:   record.FullName(),
		Department: record.Department,
		ActorID:    contextutil.GetUserID(ctx),
		OccurredAt: time.Now().UTC(),
	}
	if err := s.publisher.PublishEmployeeLifecycle(ctx, event); err != nil {
		s.logger.Warn("publish employee lifecycle event failed",
			zap.String("event_type", eventType),
			zap.Int64("employee_id", record.ID),
			zap.Error(err),
		)
	}
}

// errorMessage is the text shown to the user for a failed fetch.
func errorMessage(err error) string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
