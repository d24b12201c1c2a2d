package directory

import (
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/apper-canvas/staffsync-program-correct/internal/employee"
	"github.com/apper-canvas/staffsync-program-correct/internal/employeeform"
	formerrors "github.com/apper-canvas/staffsync-program-correct/internal/employeeform/errors"
	"github.com/apper-canvas/staffsync-program-correct/internal/employeelist"
	"github.com/apper-canvas/staffsync-program-correct/internal/shared/apperror"
	"github.com/apper-canvas/staffsync-program-correct/internal/shared/response"
	"github.com/apper-canvas/staffsync-program-correct/internal/workspace"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ListRequest struct {
	Page       int    `form:"page" binding:"omitempty,min=1"`
	Search     string `form:"search"`
	Department string `form:"department"`
	SortField  string `form:"sortField"`
	SortOrder  string `form:"sortOrder" binding:"omitempty,oneof=asc desc ASC DESC"`
}

// DetailView is the employee detail page. On failure the page shows Error
// with a link back to ReturnTo.
type DetailView struct {
	Employee *employee.EmployeeResponse `json:"employee,omitempty"`
	Error    string                     `json:"error,omitempty"`
	NotFound bool                       `json:"notFound,omitempty"`
	ReturnTo string                     `json:"returnTo"`
}

// EmployeeForm is the body of the single-shot create and edit forms. Fields
// holds values by field name; Photo is an optional image data URL.
type EmployeeForm struct {
	Fields map[string]string `json:"fields" binding:"required"`
	Photo  *string           `json:"photo"`
}

type MutationResult struct {
	Employee *employee.EmployeeResponse `json:"employee,omitempty"`
	Next     string                     `json:"next,omitempty"`
}

func (h *Handler) ListEmployees(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}

	var req ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}
	q := employeelist.Query{
		Page:       req.Page,
		Search:     strings.TrimSpace(req.Search),
		Department: req.Department,
		SortField:  req.SortField,
		SortOrder:  req.SortOrder,
	}.Normalize()
	if _, known := employee.Columns[q.SortField]; !known {
		h.writeServiceError(c, apperror.InvalidField("Sort Field"))
		return
	}

	if _, err := ws.Employees.FetchEmployees(c.Request.Context(), q.Options(h.opts.ListPageSize)); err != nil {
		h.writeServiceError(c, err)
		return
	}

	view := employeelist.RenderQuery(q, h.opts.ListPageSize, ws.Employees.Snapshot())
	meta := response.NewPaginationMeta(int64(view.TotalCount), q.Page, h.opts.ListPageSize)
	response.Success(c, http.StatusOK, view, &meta)
}

// GetEmployee loads one employee into the current slot for the duration of
// the request.
func (h *Handler) GetEmployee(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	id, err := parseEmployeeID(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	defer ws.Employees.ClearCurrent()
	if _, err := ws.Employees.FetchEmployeeByID(c.Request.Context(), id); err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("employee detail failed", zap.Int64("employee_id", id), zap.Error(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message,
			DetailView{Error: ws.Employees.Snapshot().Error, ReturnTo: PathEmployees})
		return
	}

	current := ws.Employees.Snapshot().Current
	if current == nil || current.ID != id {
		response.Error(c, http.StatusNotFound, apperror.CodeNotFound, "Employee Not Found",
			DetailView{NotFound: true, ReturnTo: PathEmployees})
		return
	}

	resp := employee.ToResponse(*current)
	response.Success(c, http.StatusOK, DetailView{Employee: &resp, ReturnTo: PathEmployees}, nil)
}

func (h *Handler) CreateEmployee(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	var req EmployeeForm
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	h.submitOnce(c, ws, employeeform.Options{Mode: employeeform.ModeCreate}, req, http.StatusCreated)
}

func (h *Handler) UpdateEmployee(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	id, err := parseEmployeeID(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	var req EmployeeForm
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	record, err := recordFor(c.Request.Context(), ws, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.submitOnce(c, ws, employeeform.Options{Mode: employeeform.ModeEdit, Initial: &record}, req, http.StatusOK)
}

// submitOnce drives a throwaway form: fill, submit, dispose.
func (h *Handler) submitOnce(c *gin.Context, ws *workspace.Workspace, opts employeeform.Options, req EmployeeForm, status int) {
	form, err := ws.Forms.Open(opts)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	defer ws.Forms.Close(form.ID())

	if err := applyFields(form, req.Fields); err != nil {
		h.writeServiceError(c, err)
		return
	}
	if req.Photo != nil {
		if err := applyPhoto(form, *req.Photo); err != nil {
			h.writeServiceError(c, err)
			return
		}
	}

	res, err := form.Submit(c.Request.Context())
	if err != nil {
		h.writeSubmitError(c, err)
		return
	}

	resp := employee.ToResponse(res.Record)
	response.SuccessWithNotice(c, status, MutationResult{Employee: &resp}, response.SuccessNotice(res.Message))
}

func (h *Handler) DeleteEmployee(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	id, err := parseEmployeeID(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if err := ws.Employees.RemoveEmployee(c.Request.Context(), id); err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("delete employee failed", zap.Int64("employee_id", id), zap.Error(err))
		response.ErrorWithNotice(c, httpErr.Status, httpErr.Code, httpErr.Message, nil,
			response.ErrorNotice("Failed to delete employee: "+httpErr.Message))
		return
	}

	response.SuccessWithNotice(c, http.StatusOK, MutationResult{Next: PathEmployees},
		response.SuccessNotice("Employee deleted successfully"))
}

// writeSubmitError answers a failed submit. Validation failures carry the
// field messages; store failures carry the "Failed to ..." notice.
func (h *Handler) writeSubmitError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.ErrorWithNotice(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details,
		response.ErrorNotice(httpErr.Message))
}

// applyFields sets values in form order so a department never clears a
// position given in the same request.
func applyFields(form *employeeform.Controller, fields map[string]string) error {
	for name := range fields {
		if !isEditable(name) {
			return apperror.Wrap(fmt.Errorf("field %q", name), formerrors.ErrUnknownField.Code,
				formerrors.ErrUnknownField.Message, formerrors.ErrUnknownField.HTTPStatus)
		}
	}
	for _, name := range employeeform.EditableFields() {
		value, ok := fields[name]
		if !ok {
			continue
		}
		if err := form.SetField(name, value); err != nil {
			return err
		}
	}
	return nil
}

func applyPhoto(form *employeeform.Controller, dataURL string) error {
	if dataURL == "" {
		return form.RemovePhoto()
	}
	r, err := employeeform.DecodePhotoDataURL(dataURL)
	if err != nil {
		return err
	}
	return form.AttachPhoto(r)
}

func isEditable(name string) bool {
	return slices.Contains(employeeform.EditableFields(), name)
}
