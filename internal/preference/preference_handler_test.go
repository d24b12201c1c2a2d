package preference_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/apper-canvas/staffsync-program-correct/internal/middleware"
	"github.com/apper-canvas/staffsync-program-correct/internal/preference"
	prefMock "github.com/apper-canvas/staffsync-program-correct/internal/preference/mock"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setupHandler(t *testing.T, userID string) (*gin.Engine, *prefMock.MockService) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	svc := prefMock.NewMockService(ctrl)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set(middleware.ContextUserID, userID)
		}
		c.Next()
	})
	preference.RegisterRoutes(r.Group(""), preference.NewHandler(svc))
	return r, svc
}

func TestHandler_GetTheme(t *testing.T) {
	r, svc := setupHandler(t, "u-1")
	svc.EXPECT().GetTheme(gomock.Any(), "u-1", "dark").
		Return(preference.ThemeResponse{DarkMode: true, Source: preference.SourceClientHint}, nil)

	req := httptest.NewRequest(http.MethodGet, "/preferences/theme", nil)
	req.Header.Set(preference.HeaderPrefersColorScheme, "dark")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, preference.HeaderPrefersColorScheme, w.Header().Get("Accept-CH"))
	assert.JSONEq(t, `{"ok":true,"data":{"darkMode":true,"source":"client-hint"}}`, w.Body.String())
}

func TestHandler_UpdateTheme(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		r, svc := setupHandler(t, "u-1")
		svc.EXPECT().SetTheme(gomock.Any(), "u-1", false).
			Return(preference.ThemeResponse{DarkMode: false, Source: preference.SourceSaved}, nil)

		req := httptest.NewRequest(http.MethodPut, "/preferences/theme", strings.NewReader(`{"darkMode":false}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing value", func(t *testing.T) {
		r, _ := setupHandler(t, "u-1")

		req := httptest.NewRequest(http.MethodPut, "/preferences/theme", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
