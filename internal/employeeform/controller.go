// Package employeeform drives the create and edit forms for an employee,
// both the single-page form and the three-step wizard.
package employeeform

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"sync"

	"github.com/apper-canvas/staffsync-program-correct/internal/employee"
	formerrors "github.com/apper-canvas/staffsync-program-correct/internal/employeeform/errors"
	"github.com/apper-canvas/staffsync-program-correct/internal/shared/apperror"
	"github.com/apper-canvas/staffsync-program-correct/internal/shared/contextutil"

	"go.uber.org/zap"
)

type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

type Phase string

const (
	PhaseEditing    Phase = "editing"
	PhaseValidating Phase = "validating"
	PhaseSubmitting Phase = "submitting"
	PhaseSucceeded  Phase = "succeeded"
)

const (
	FirstStep = 1
	LastStep  = 3
)

// EmployeeWriter is the part of the employee store a form submits through.
//
//go:generate mockgen -source=controller.go -destination=mock/employee_writer_mock.go -package=mock
type EmployeeWriter interface {
	AddEmployee(ctx context.Context, draft employee.Employee) (employee.Employee, error)
	ModifyEmployee(ctx context.Context, record employee.Employee) (employee.Employee, error)
}

type Options struct {
	Mode    Mode
	Wizard  bool
	Initial *employee.Employee
	// OnSuccess runs once after a successful submit.
	OnSuccess func(employee.Employee)
}

// SubmitResult is a successful submit and the message to show for it.
type SubmitResult struct {
	Record  employee.Employee
	Message string
}

type View struct {
	ID              string            `json:"id"`
	Mode            Mode              `json:"mode"`
	Wizard          bool              `json:"wizard"`
	Step            int               `json:"step,omitempty"`
	Phase           Phase             `json:"phase"`
	Values          Draft             `json:"values"`
	Errors          map[string]string `json:"errors"`
	Submitting      bool              `json:"submitting"`
	SubmitError     string            `json:"submitError,omitempty"`
	PhotoPreview    string            `json:"photoPreview,omitempty"`
	Departments     []string          `json:"departments"`
	PositionOptions []string          `json:"positionOptions"`
	EmploymentTypes []string          `json:"employmentTypes"`
}

type Controller struct {
	mu          sync.Mutex
	id          string
	mode        Mode
	wizard      bool
	step        int
	phase       Phase
	draft       Draft
	errors      map[string]string
	submitError string
	preview     string
	closed      bool

	writer    EmployeeWriter
	onSuccess func(employee.Employee)
	logger    *zap.Logger
}

func NewController(id string, writer EmployeeWriter, opts Options, logger ...*zap.Logger) (*Controller, error) {
	l := zap.L().Named("employeeform.controller")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employeeform.controller")
	}

	mode := opts.Mode
	if mode == "" {
		mode = ModeCreate
	}

	draft := emptyDraft()
	if mode == ModeEdit {
		if opts.Initial == nil || opts.Initial.ID == 0 {
			return nil, formerrors.ErrEditRequiresRecord
		}
		draft = draftFrom(*opts.Initial)
	} else if opts.Initial != nil {
		draft = draftFrom(*opts.Initial)
		draft.ID = 0
	}

	c := &Controller{
		id:        id,
		mode:      mode,
		wizard:    opts.Wizard,
		phase:     PhaseEditing,
		draft:     draft,
		errors:    map[string]string{},
		preview:   draft.Photo,
		writer:    writer,
		onSuccess: opts.OnSuccess,
		logger:    l.With(zap.String("form_id", id)),
	}
	if c.wizard {
		c.step = FirstStep
	}
	return c, nil
}

func (c *Controller) ID() string {
	return c.id
}

func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

func (c *Controller) viewLocked() View {
	positions := employee.PositionsFor(c.draft.Department)
	if positions == nil {
		positions = []string{}
	}
	return View{
		ID:              c.id,
		Mode:            c.mode,
		Wizard:          c.wizard,
		Step:            c.step,
		Phase:           c.phase,
		Values:          c.draft,
		Errors:          maps.Clone(c.errors),
		Submitting:      c.phase == PhaseSubmitting,
		SubmitError:     c.submitError,
		PhotoPreview:    c.preview,
		Departments:     employee.Departments(),
		PositionOptions: positions,
		EmploymentTypes: employee.EmploymentTypes(),
	}
}

func (c *Controller) editable() error {
	if c.closed || c.phase == PhaseSucceeded {
		return formerrors.ErrFormClosed
	}
	if c.phase == PhaseSubmitting {
		return formerrors.ErrSubmitInProgress
	}
	return nil
}

// SetField assigns one value and clears that field's error. Changing the
// department also clears the position.
func (c *Controller) SetField(name, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.editable(); err != nil {
		return err
	}
	if !c.draft.set(name, value) {
		return apperror.Wrap(fmt.Errorf("field %q", name), formerrors.ErrUnknownField.Code,
			formerrors.ErrUnknownField.Message, formerrors.ErrUnknownField.HTTPStatus)
	}
	delete(c.errors, name)
	if name == employee.FieldDepartment {
		delete(c.errors, employee.FieldPosition)
	}
	return nil
}

// AttachPhoto stores an uploaded image as the draft photo and its preview.
func (c *Controller) AttachPhoto(r io.Reader) error {
	dataURL, err := EncodePhoto(r)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.editable(); err != nil {
		return err
	}
	c.draft.Photo = dataURL
	c.preview = dataURL
	return nil
}

func (c *Controller) RemovePhoto() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.editable(); err != nil {
		return err
	}
	c.draft.Photo = ""
	c.preview = ""
	return nil
}

// Validate checks every field, replaces the error map and reports whether
// the draft is valid.
func (c *Controller) Validate() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.validateLocked(0)
}

// ValidateStep checks the fields of one wizard step only.
func (c *Controller) ValidateStep(step int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.validateLocked(step)
}

// validateLocked checks one step, or all fields when step is 0.
func (c *Controller) validateLocked(step int) bool {
	prev := c.phase
	c.phase = PhaseValidating

	if step == 0 {
		c.errors = ValidateDraft(c.draft)
	} else {
		c.errors = ValidateDraftStep(c.draft, step)
	}

	c.phase = prev
	return len(c.errors) == 0
}

// Next advances the wizard when the current step is valid.
func (c *Controller) Next() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.editable(); err != nil {
		return err
	}
	if !c.wizard || c.step >= LastStep {
		return nil
	}
	if !c.validateLocked(c.step) {
		return apperror.NewValidationError(MsgFixBeforeContinuing, maps.Clone(c.errors))
	}
	c.step++
	return nil
}

// Back moves the wizard one step back without validating.
func (c *Controller) Back() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.editable(); err != nil {
		return err
	}
	if c.wizard && c.step > FirstStep {
		c.step--
	}
	return nil
}

// Submit validates every field and sends the draft to the employee store
// exactly once. On success the controller is closed; on failure it returns
// to editing with its values kept.
func (c *Controller) Submit(ctx context.Context) (SubmitResult, error) {
	c.mu.Lock()
	if err := c.editable(); err != nil {
		c.mu.Unlock()
		return SubmitResult{}, err
	}
	if c.wizard && c.step != LastStep {
		c.mu.Unlock()
		return SubmitResult{}, formerrors.ErrNotOnFinalStep
	}
	if !c.validateLocked(0) {
		fields := maps.Clone(c.errors)
		c.mu.Unlock()
		return SubmitResult{}, apperror.NewValidationError(MsgFixBeforeSubmitting, fields)
	}

	c.phase = PhaseSubmitting
	c.submitError = ""
	draft := c.draft
	mode := c.mode
	c.mu.Unlock()

	rid := contextutil.GetRequestID(ctx)
	c.logger.Debug("form submit started", zap.String("request_id", rid), zap.String("mode", string(mode)))

	var (
		record employee.Employee
		err    error
	)
	if mode == ModeEdit {
		record, err = c.writer.ModifyEmployee(ctx, draft.toEmployee())
	} else {
		record, err = c.writer.AddEmployee(ctx, draft.toEmployee())
	}

	c.mu.Lock()
	if err != nil {
		c.phase = PhaseEditing
		c.submitError = failureMessage(mode, err)
		msg := c.submitError
		c.mu.Unlock()

		c.logger.Warn("form submit failed", zap.String("request_id", rid), zap.Error(err))
		return SubmitResult{}, wrapSubmitError(err, msg)
	}

	c.phase = PhaseSucceeded
	c.closed = true
	onSuccess := c.onSuccess
	c.mu.Unlock()

	c.logger.Info("form submitted", zap.String("request_id", rid), zap.Int64("employee_id", record.ID))
	if onSuccess != nil {
		onSuccess(record)
	}

	return SubmitResult{Record: record, Message: successMessage(mode, draft)}, nil
}

// Close disposes the controller. Later calls fail with ErrFormClosed.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *Controller) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func successMessage(mode Mode, d Draft) string {
	verb := "added"
	if mode == ModeEdit {
		verb = "updated"
	}
	return fmt.Sprintf("%s %s has been %s successfully", d.FirstName, d.LastName, verb)
}

func failureMessage(mode Mode, err error) string {
	verb := "add"
	if mode == ModeEdit {
		verb = "update"
	}

	reason := "An error occurred"
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		reason = appErr.Message
	} else if err.Error() != "" {
		reason = err.Error()
	}
	return fmt.Sprintf("Failed to %s employee: %s", verb, reason)
}

// wrapSubmitError keeps the status of the underlying failure and replaces
// its message with the user-facing one.
func wrapSubmitError(err error, msg string) error {
	httpErr := apperror.ToHTTP(err)
	return apperror.Wrap(err, httpErr.Code, msg, httpErr.Status)
}
