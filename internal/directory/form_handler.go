package directory

import (
	"net/http"

	"github.com/apper-canvas/staffsync-program-correct/internal/employee"
	"github.com/apper-canvas/staffsync-program-correct/internal/employeeform"
	formerrors "github.com/apper-canvas/staffsync-program-correct/internal/employeeform/errors"
	"github.com/apper-canvas/staffsync-program-correct/internal/shared/apperror"
	"github.com/apper-canvas/staffsync-program-correct/internal/shared/response"
	"github.com/apper-canvas/staffsync-program-correct/internal/workspace"

	"github.com/gin-gonic/gin"
)

const photoFormField = "photo"

type OpenFormRequest struct {
	Mode       employeeform.Mode `json:"mode" binding:"omitempty,oneof=create edit"`
	Wizard     bool              `json:"wizard"`
	EmployeeID int64             `json:"employeeId" binding:"omitempty,min=1"`
}

type UpdateFormRequest struct {
	Fields map[string]string `json:"fields" binding:"required"`
}

type SubmitView struct {
	Employee employee.EmployeeResponse `json:"employee"`
	Form     employeeform.View         `json:"form"`
}

// OpenForm starts a create or edit form, optionally as the three-step
// wizard. Edit forms start from the employee's stored values.
func (h *Handler) OpenForm(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	var req OpenFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	opts := employeeform.Options{Mode: req.Mode, Wizard: req.Wizard}
	if req.Mode == employeeform.ModeEdit {
		if req.EmployeeID == 0 {
			h.writeServiceError(c, formerrors.ErrEditRequiresRecord)
			return
		}
		record, err := recordFor(c.Request.Context(), ws, req.EmployeeID)
		if err != nil {
			h.writeServiceError(c, err)
			return
		}
		opts.Initial = &record
	}

	form, err := ws.Forms.Open(opts)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, form.View(), nil)
}

func (h *Handler) form(c *gin.Context) (*workspace.Workspace, *employeeform.Controller, bool) {
	ws, ok := h.workspace(c)
	if !ok {
		return nil, nil, false
	}
	form, err := ws.Forms.Get(c.Param("formId"))
	if err != nil {
		h.writeServiceError(c, err)
		return nil, nil, false
	}
	return ws, form, true
}

func (h *Handler) GetForm(c *gin.Context) {
	_, form, ok := h.form(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, form.View(), nil)
}

func (h *Handler) UpdateForm(c *gin.Context) {
	_, form, ok := h.form(c)
	if !ok {
		return
	}
	var req UpdateFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}
	if err := applyFields(form, req.Fields); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, form.View(), nil)
}

// UploadPhoto takes the picked image from the multipart field "photo".
func (h *Handler) UploadPhoto(c *gin.Context) {
	_, form, ok := h.form(c)
	if !ok {
		return
	}
	fh, err := c.FormFile(photoFormField)
	if err != nil {
		h.writeServiceError(c, apperror.RequiredField("Photo"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		h.writeServiceError(c, apperror.InvalidField("Photo"))
		return
	}
	defer f.Close()

	if err := form.AttachPhoto(f); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, form.View(), nil)
}

func (h *Handler) RemovePhoto(c *gin.Context) {
	_, form, ok := h.form(c)
	if !ok {
		return
	}
	if err := form.RemovePhoto(); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, form.View(), nil)
}

func (h *Handler) NextStep(c *gin.Context) {
	_, form, ok := h.form(c)
	if !ok {
		return
	}
	if err := form.Next(); err != nil {
		h.writeSubmitError(c, err)
		return
	}
	response.Success(c, http.StatusOK, form.View(), nil)
}

func (h *Handler) PreviousStep(c *gin.Context) {
	_, form, ok := h.form(c)
	if !ok {
		return
	}
	if err := form.Back(); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, form.View(), nil)
}

func (h *Handler) SubmitForm(c *gin.Context) {
	_, form, ok := h.form(c)
	if !ok {
		return
	}
	res, err := form.Submit(c.Request.Context())
	if err != nil {
		h.writeSubmitError(c, err)
		return
	}
	response.SuccessWithNotice(c, http.StatusOK,
		SubmitView{Employee: employee.ToResponse(res.Record), Form: form.View()},
		response.SuccessNotice(res.Message))
}

func (h *Handler) CloseForm(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	ws.Forms.Close(c.Param("formId"))
	c.Status(http.StatusNoContent)
}
