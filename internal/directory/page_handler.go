package directory

import (
	"fmt"
	"net/http"

	"github.com/apper-canvas/staffsync-program-correct/internal/dashboard"
	"github.com/apper-canvas/staffsync-program-correct/internal/employee"
	"github.com/apper-canvas/staffsync-program-correct/internal/shared/apperror"
	"github.com/apper-canvas/staffsync-program-correct/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// Page describes an auth-flow page; the browser renders the provider's
// widget into it.
type Page struct {
	Page     string `json:"page"`
	Title    string `json:"title"`
	Message  string `json:"message,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

type HomeView struct {
	Title       string            `json:"title"`
	Subtitle    string            `json:"subtitle"`
	Employees   int               `json:"employees"`
	Departments int               `json:"departments"`
	Featured    *employee.Summary `json:"featuredEmployee,omitempty"`
}

type NotFoundDetails struct {
	RedirectTo           string `json:"redirectTo"`
	RedirectAfterSeconds int    `json:"redirectAfterSeconds"`
}

func (h *Handler) Login(c *gin.Context) {
	response.Success(c, http.StatusOK, Page{Page: "login", Title: "Sign in to StaffSync", Redirect: c.Query("redirect")}, nil)
}

func (h *Handler) Signup(c *gin.Context) {
	response.Success(c, http.StatusOK, Page{Page: "signup", Title: "Create your StaffSync account", Redirect: c.Query("redirect")}, nil)
}

func (h *Handler) Callback(c *gin.Context) {
	response.Success(c, http.StatusOK, Page{Page: "callback", Title: "Signing you in"}, nil)
}

func (h *Handler) ErrorPage(c *gin.Context) {
	msg := c.Query("message")
	if msg == "" {
		msg = "Authentication failed"
	}
	response.Success(c, http.StatusOK, Page{Page: "error", Title: "Authentication error", Message: msg}, nil)
}

// Dashboard summarises the cached employee page for the signed-in user.
func (h *Handler) Dashboard(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	user, _ := ws.Session.Snapshot()
	response.Success(c, http.StatusOK, dashboard.Build(ws.Employees.Snapshot(), user, h.opts.Now()), nil)
}

func (h *Handler) Home(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	st := ws.Employees.Snapshot()
	view := HomeView{
		Title:       "Welcome to StaffSync",
		Subtitle:    "Your centralized employee management system",
		Employees:   st.TotalCount,
		Departments: len(employee.Departments()),
	}
	if recent := dashboard.Build(st, nil, h.opts.Now()).Recent; len(recent) > 0 {
		view.Featured = &recent[0]
	}
	response.Success(c, http.StatusOK, view, nil)
}

// NotFound answers unknown member paths and asks the browser to go home
// after the configured delay.
func (h *Handler) NotFound(c *gin.Context) {
	secs := int(h.opts.NotFoundDelay.Seconds())
	c.Header("Refresh", fmt.Sprintf("%d; url=/", secs))
	response.Error(c, http.StatusNotFound, apperror.CodeNotFound, "Page Not Found",
		NotFoundDetails{RedirectTo: "/", RedirectAfterSeconds: secs})
}
