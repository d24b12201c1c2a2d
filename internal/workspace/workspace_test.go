package workspace_test

import (
	"context"
	"testing"
	"time"

	"github.com/apper-canvas/staffsync-program-correct/internal/employee"
	employeeMock "github.com/apper-canvas/staffsync-program-correct/internal/employee/mock"
	"github.com/apper-canvas/staffsync-program-correct/internal/employeeform"
	"github.com/apper-canvas/staffsync-program-correct/internal/employeestore"
	"github.com/apper-canvas/staffsync-program-correct/internal/session"
	"github.com/apper-canvas/staffsync-program-correct/internal/workspace"
	workspaceerrors "github.com/apper-canvas/staffsync-program-correct/internal/workspace/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func newRegistry(t *testing.T) (*workspace.Registry, *employeeMock.MockGateway) {
	ctrl := gomock.NewController(t)
	gw := employeeMock.NewMockGateway(ctrl)
	return workspace.NewRegistry(gw, employee.NewNoopEventPublisher(), zap.NewNop()), gw
}

func TestRegistry_OpenGet(t *testing.T) {
	reg, _ := newRegistry(t)

	ws := reg.Open()
	require.NotEmpty(t, ws.ID)
	assert.Equal(t, 1, reg.Len())

	got, err := reg.Get(ws.ID)
	require.NoError(t, err)
	assert.Same(t, ws, got)

	other := reg.Open()
	assert.NotEqual(t, ws.ID, other.ID)
	assert.NotSame(t, ws.Employees, other.Employees)
	assert.Equal(t, 2, reg.Len())
}

func TestRegistry_GetUnknown(t *testing.T) {
	reg, _ := newRegistry(t)

	_, err := reg.Get("missing")
	assert.ErrorIs(t, err, workspaceerrors.ErrWorkspaceNotFound)
}

func TestRegistry_CloseDisposesState(t *testing.T) {
	reg, _ := newRegistry(t)
	ws := reg.Open()

	require.NoError(t, ws.Session.SetUser(session.User{"id": "u1"}))
	_, err := ws.Forms.Open(employeeform.Options{})
	require.NoError(t, err)

	reg.Close(ws.ID)

	assert.Equal(t, 0, reg.Len())
	assert.False(t, ws.Session.IsAuthenticated())
	assert.Equal(t, 0, ws.Forms.Len())
	assert.ErrorIs(t, ws.Context().Err(), context.Canceled)

	_, err = ws.Employees.FetchEmployees(context.Background(), employee.ListOptions{})
	assert.ErrorIs(t, err, employeestore.ErrStoreClosed)

	_, err = reg.Get(ws.ID)
	assert.Error(t, err)

	// closing twice is harmless
	reg.Close(ws.ID)
}

func TestRegistry_CloseAll(t *testing.T) {
	reg, _ := newRegistry(t)
	a := reg.Open()
	b := reg.Open()

	reg.CloseAll()

	assert.Equal(t, 0, reg.Len())
	assert.Error(t, a.Context().Err())
	assert.Error(t, b.Context().Err())
}

func TestRegistry_GetMarksActivity(t *testing.T) {
	reg, _ := newRegistry(t)
	ws := reg.Open()
	opened := ws.LastSeen()
	require.False(t, opened.IsZero())

	time.Sleep(2 * time.Millisecond)
	_, err := reg.Get(ws.ID)
	require.NoError(t, err)

	assert.True(t, ws.LastSeen().After(opened))
}

func TestRegistry_ReapIdle(t *testing.T) {
	reg, _ := newRegistry(t)
	stale := reg.Open()
	require.NoError(t, stale.Session.SetUser(session.User{"id": "u1"}))

	time.Sleep(2 * time.Millisecond)
	cutoff := time.Now()
	time.Sleep(2 * time.Millisecond)
	fresh := reg.Open()

	assert.Equal(t, 1, reg.ReapIdle(cutoff))
	assert.Equal(t, 1, reg.Len())

	_, err := reg.Get(stale.ID)
	assert.ErrorIs(t, err, workspaceerrors.ErrWorkspaceNotFound)
	assert.False(t, stale.Session.IsAuthenticated())
	assert.ErrorIs(t, stale.Context().Err(), context.Canceled)

	_, err = reg.Get(fresh.ID)
	assert.NoError(t, err)
	assert.Zero(t, reg.ReapIdle(cutoff))
}

func TestRegistry_StartReaper(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	reg, _ := newRegistry(t)
	ws := reg.Open()

	stop := reg.StartReaper(5*time.Millisecond, time.Millisecond)
	assert.Eventually(t, func() bool { return reg.Len() == 0 }, time.Second, 5*time.Millisecond)
	assert.Error(t, ws.Context().Err())

	stop()
	stop()
}

func TestWorkspace_FormsSubmitThroughEmployeeStore(t *testing.T) {
	reg, gw := newRegistry(t)
	ws := reg.Open()

	created := employee.Employee{ID: 9, FirstName: "Ada", LastName: "Lovelace", Department: "Engineering"}
	gw.EXPECT().Create(gomock.Any(), gomock.Any()).Return(created, nil)

	c, err := ws.Forms.Open(employeeform.Options{})
	require.NoError(t, err)
	for name, value := range map[string]string{
		"firstName":      "Ada",
		"lastName":       "Lovelace",
		"email":          "ada@example.com",
		"phone":          "5551234567",
		"department":     "Engineering",
		"position":       "Software Engineer",
		"startDate":      "2024-01-15",
		"employmentType": employee.EmploymentFullTime,
	} {
		require.NoError(t, c.SetField(name, value))
	}

	res, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace has been added successfully", res.Message)

	st := ws.Employees.Snapshot()
	require.Len(t, st.Employees, 1)
	assert.Equal(t, int64(9), st.Employees[0].ID)
	assert.Equal(t, 1, st.TotalCount)
}
