package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/apper-canvas/staffsync-program-correct/internal/employee"
	employeeMock "github.com/apper-canvas/staffsync-program-correct/internal/employee/mock"
	"github.com/apper-canvas/staffsync-program-correct/internal/middleware"
	"github.com/apper-canvas/staffsync-program-correct/internal/session"
	"github.com/apper-canvas/staffsync-program-correct/internal/shared/contextutil"
	"github.com/apper-canvas/staffsync-program-correct/internal/workspace"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func newRegistry(t *testing.T) *workspace.Registry {
	ctrl := gomock.NewController(t)
	reg := workspace.NewRegistry(employeeMock.NewMockGateway(ctrl), employee.NewNoopEventPublisher(), zap.NewNop())
	t.Cleanup(reg.CloseAll)
	return reg
}

func signedIn(t *testing.T, reg *workspace.Registry) *workspace.Workspace {
	ws := reg.Open()
	require.NoError(t, ws.Session.SetUser(session.User{"userId": "u-1", "firstName": "Ada"}))
	return ws
}

func request(r *gin.Engine, method, target, sessionID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: sessionID})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := newRegistry(t)
	ws := signedIn(t, reg)
	anonymous := reg.Open()

	r := gin.New()
	r.Use(middleware.Session(reg))
	r.GET("/ping", func(c *gin.Context) {
		got, ok := middleware.CurrentWorkspace(c)
		id := ""
		if ok {
			id = got.ID
		}
		c.JSON(http.StatusOK, gin.H{
			"workspace": id,
			"user":      c.GetString(middleware.ContextUserID),
			"ctxUser":   contextutil.GetUserID(c.Request.Context()),
		})
	})

	tests := []struct {
		name      string
		cookie    string
		workspace string
		user      string
	}{
		{"no cookie", "", "", ""},
		{"unknown session", "nope", "", ""},
		{"session without user", anonymous.ID, "", ""},
		{"signed in", ws.ID, ws.ID, "u-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := request(r, http.MethodGet, "/ping", tt.cookie)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), `"workspace":"`+tt.workspace+`"`)
			assert.Contains(t, w.Body.String(), `"user":"`+tt.user+`"`)
			assert.Contains(t, w.Body.String(), `"ctxUser":"`+tt.user+`"`)
		})
	}
}

func TestRouteGuard(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := newRegistry(t)
	ws := signedIn(t, reg)
	policy, err := session.NewRoutePolicy()
	require.NoError(t, err)

	r := gin.New()
	r.Use(middleware.Session(reg), middleware.RouteGuard(policy))
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	r.GET("/login", ok)
	r.GET("/dashboard", ok)
	r.GET("/employees/:id", ok)
	r.NoRoute(middleware.RouteGuard(policy), func(c *gin.Context) { c.Status(http.StatusNotFound) })

	tests := []struct {
		name     string
		target   string
		cookie   string
		status   int
		location string
	}{
		{"anonymous on auth page", "/login", "", http.StatusOK, ""},
		{"anonymous on protected page", "/dashboard", "", http.StatusFound, "/login?redirect=%2Fdashboard"},
		{"anonymous keeps query", "/employees/7?tab=info", "", http.StatusFound, "/login?redirect=%2Femployees%2F7%3Ftab%3Dinfo"},
		{"anonymous on unknown page", "/nowhere", "", http.StatusFound, "/login"},
		{"member on protected page", "/dashboard", ws.ID, http.StatusOK, ""},
		{"member on auth page", "/login", ws.ID, http.StatusOK, ""},
		{"member on unknown page", "/nowhere", ws.ID, http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := request(r, http.MethodGet, tt.target, tt.cookie)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.location, w.Header().Get("Location"))
		})
	}
}

func TestRequestIDAndContextLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.ContextLogger(zap.NewNop()))
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, contextutil.GetRequestID(c.Request.Context()))
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(middleware.HeaderRequestID, "rid-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "rid-1", w.Body.String())
	assert.Equal(t, "rid-1", w.Header().Get(middleware.HeaderRequestID))

	w = request(r, http.MethodGet, "/ping", "")
	assert.NotEmpty(t, w.Body.String())
	assert.Equal(t, w.Body.String(), w.Header().Get(middleware.HeaderRequestID))
}

func TestRateLimitByIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ping", middleware.RateLimitByIP(0.001, 2), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, request(r, http.MethodGet, "/ping", "").Code)
	assert.Equal(t, http.StatusOK, request(r, http.MethodGet, "/ping", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, request(r, http.MethodGet, "/ping", "").Code)
}

func TestRateLimitByUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := newRegistry(t)
	ws := signedIn(t, reg)

	r := gin.New()
	r.Use(middleware.Session(reg))
	r.GET("/ping", middleware.RateLimitByUser(0.001, 1), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, request(r, http.MethodGet, "/ping", ws.ID).Code)
	assert.Equal(t, http.StatusTooManyRequests, request(r, http.MethodGet, "/ping", ws.ID).Code)
	// anonymous requests are not limited by user
	assert.Equal(t, http.StatusOK, request(r, http.MethodGet, "/ping", "").Code)
	assert.Equal(t, http.StatusOK, request(r, http.MethodGet, "/ping", "").Code)
}
