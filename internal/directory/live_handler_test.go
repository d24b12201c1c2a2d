package directory_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/apper-canvas/staffsync-program-correct/internal/directory"
	"github.com/apper-canvas/staffsync-program-correct/internal/employee"
	"github.com/apper-canvas/staffsync-program-correct/internal/employeelist"
	"github.com/apper-canvas/staffsync-program-correct/internal/session"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func dialLive(t *testing.T, env *testEnv) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(env.router)
	t.Cleanup(srv.Close)

	header := http.Header{}
	header.Add("Cookie", (&http.Cookie{Name: session.CookieName, Value: env.ws.ID}).String())

	conn, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws/employees", header)
	require.NoError(t, err)
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readUntil reads live messages until one satisfies done.
func readUntil(t *testing.T, conn *websocket.Conn, done func(directory.LiveMessage) bool) directory.LiveMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	for {
		var msg directory.LiveMessage
		require.NoError(t, conn.ReadJSON(&msg))
		if done(msg) {
			return msg
		}
	}
}

func TestHandler_LiveEmployees(t *testing.T) {
	env := setupEnv(t)
	grace := ada()
	grace.ID, grace.FirstName, grace.LastName = 8, "Grace", "Hopper"

	env.gateway.EXPECT().
		List(gomock.Any(), matching(func(opts employee.ListOptions) bool { return opts.Search == "" })).
		Return(employee.ListResult{Records: []employee.Employee{ada(), grace}, TotalCount: 2}, nil)
	env.gateway.EXPECT().
		List(gomock.Any(), matching(func(opts employee.ListOptions) bool { return opts.Search == "grace" })).
		Return(employee.ListResult{Records: []employee.Employee{grace}, TotalCount: 1}, nil)

	conn := dialLive(t, env)

	first := readUntil(t, conn, func(m directory.LiveMessage) bool {
		return m.Type == directory.MessageList && !m.List.Loading && len(m.List.Employees) == 2
	})
	assert.Equal(t, 2, first.List.TotalCount)
	assert.Equal(t, employee.FieldLastName, first.List.Query.SortField)

	require.NoError(t, conn.WriteJSON(directory.LiveCommand{Type: directory.CommandSearch, Value: "grace"}))

	filtered := readUntil(t, conn, func(m directory.LiveMessage) bool {
		return m.Type == directory.MessageList && !m.List.Loading && m.List.TotalCount == 1
	})
	assert.Equal(t, "grace", filtered.List.Query.Search)
	require.Len(t, filtered.List.Employees, 1)
	assert.Equal(t, "Hopper", filtered.List.Employees[0].LastName)

	require.NoError(t, conn.WriteJSON(directory.LiveCommand{Type: "shuffle"}))
	failed := readUntil(t, conn, func(m directory.LiveMessage) bool { return m.Type == directory.MessageError })
	assert.Equal(t, "unknown command", failed.Error)

	require.NoError(t, conn.WriteJSON(directory.LiveCommand{Type: directory.CommandSort, Value: "salary"}))
	failed = readUntil(t, conn, func(m directory.LiveMessage) bool { return m.Type == directory.MessageError })
	assert.Equal(t, "unknown sort field salary", failed.Error)

	require.NoError(t, conn.WriteJSON(directory.LiveCommand{
		Type:  directory.CommandQuery,
		Query: &employeelist.Query{Page: 1, SortField: "salary", SortOrder: "desc"},
	}))
	failed = readUntil(t, conn, func(m directory.LiveMessage) bool { return m.Type == directory.MessageError })
	assert.Equal(t, "unknown sort field salary", failed.Error)
}

func TestHandler_LiveEmployeesRequiresSession(t *testing.T) {
	env := setupEnv(t)
	srv := httptest.NewServer(env.router)
	defer srv.Close()

	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws/employees", nil)

	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
