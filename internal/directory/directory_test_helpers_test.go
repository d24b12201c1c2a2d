package directory_test

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/apper-canvas/staffsync-program-correct/internal/directory"
	"github.com/apper-canvas/staffsync-program-correct/internal/employee"
	employeeMock "github.com/apper-canvas/staffsync-program-correct/internal/employee/mock"
	"github.com/apper-canvas/staffsync-program-correct/internal/middleware"
	"github.com/apper-canvas/staffsync-program-correct/internal/session"
	"github.com/apper-canvas/staffsync-program-correct/internal/workspace"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	router   *gin.Engine
	gateway  *employeeMock.MockGateway
	registry *workspace.Registry
	ws       *workspace.Workspace
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	gw := employeeMock.NewMockGateway(ctrl)
	reg := workspace.NewRegistry(gw, employee.NewNoopEventPublisher(), zap.NewNop())
	t.Cleanup(reg.CloseAll)

	ws := reg.Open()
	require.NoError(t, ws.Session.SetUser(session.User{"userId": "u-1", "firstName": "Ada"}))

	h := directory.NewHandler(directory.Options{
		ListPageSize:   10,
		SearchDebounce: 10 * time.Millisecond,
		NotFoundDelay:  10 * time.Second,
		Now:            func() time.Time { return fixedNow },
	}, zap.NewNop())

	r := gin.New()
	r.Use(middleware.Session(reg))
	directory.RegisterRoutes(r.Group(""), h, nil)
	r.NoRoute(h.NotFound)

	return &testEnv{router: r, gateway: gw, registry: reg, ws: ws}
}

type envelope struct {
	Ok     bool            `json:"ok"`
	Data   json.RawMessage `json:"data"`
	Meta   map[string]any  `json:"meta"`
	Notice *struct {
		Level   string `json:"level"`
		Message string `json:"message"`
	} `json:"notice"`
	Error *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

func (e *testEnv) do(t *testing.T, method, target string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: e.ws.ID})
	return e.serve(t, req)
}

func (e *testEnv) serve(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

func validFields() map[string]string {
	return map[string]string{
		"firstName":      "Ada",
		"lastName":       "Lovelace",
		"email":          "ada@example.com",
		"phone":          "5551234567",
		"department":     "Engineering",
		"position":       "Software Engineer",
		"startDate":      "2024-01-15",
		"employmentType": "Full-time",
	}
}

func ada() employee.Employee {
	return employee.Employee{
		ID:             7,
		FirstName:      "Ada",
		LastName:       "Lovelace",
		Email:          "ada@example.com",
		Phone:          "5551234567",
		Department:     "Engineering",
		Position:       "Software Engineer",
		StartDate:      "2024-01-15",
		EmploymentType: "Full-time",
		CreatedOn:      time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
	}
}

var pngDataURL = "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngHeader)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

type predicate[T any] func(T) bool

// matching adapts a typed predicate to a gomock matcher.
func matching[T any](fn func(T) bool) gomock.Matcher {
	return predicate[T](fn)
}

func (p predicate[T]) Matches(x any) bool {
	v, ok := x.(T)
	return ok && p(v)
}

func (p predicate[T]) String() string {
	return "matches predicate"
}
