package employeeform

import (
	"errors"
	"regexp"
	"sync"

	"github.com/apper-canvas/staffsync-program-correct/internal/employee"
	"github.com/apper-canvas/staffsync-program-correct/internal/shared/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

const (
	MsgFixBeforeSubmitting = "Please fix the errors before submitting"
	MsgFixBeforeContinuing = "Please fix the errors before continuing"
)

var looseEmailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// messages maps "<field>.<tag>" to the text shown under the field.
var messages = map[string]string{
	"firstName.notblank":            "First name is required",
	"lastName.notblank":             "Last name is required",
	"email.notblank":                "Email is required",
	"email.looseemail":              "Email address is invalid",
	"phone.notblank":                "Phone number is required",
	"phone.phone10":                 "Phone number should be 10 digits",
	"department.required":           "Department is required",
	"department.department":         "Department is invalid",
	"position.required":             "Position is required",
	"position.position":             "Position is invalid for the selected department",
	"startDate.required":            "Start date is required",
	"startDate.datetime":            "Start date is invalid",
	"employmentType.required":       "Employment type is required",
	"employmentType.employmenttype": "Employment type is invalid",
}

// stepFields lists the fields checked on each wizard step. Step 3 has no
// rules.
var stepFields = map[int][]string{
	1: {employee.FieldFirstName, employee.FieldLastName, employee.FieldEmail, employee.FieldPhone},
	2: {employee.FieldDepartment, employee.FieldPosition, employee.FieldStartDate, employee.FieldEmploymentType},
	3: {},
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func rules() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(apperror.JSONTagName)

		_ = v.RegisterValidation("notblank", validators.NotBlank)
		_ = v.RegisterValidation("looseemail", func(fl validator.FieldLevel) bool {
			return looseEmailPattern.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
			return len(employee.PhoneDigits(fl.Field().String())) == 10
		})
		_ = v.RegisterValidation("department", func(fl validator.FieldLevel) bool {
			return employee.IsDepartment(fl.Field().String())
		})
		_ = v.RegisterValidation("employmenttype", func(fl validator.FieldLevel) bool {
			return employee.IsEmploymentType(fl.Field().String())
		})
		v.RegisterStructValidation(positionInDepartment, Draft{})

		validate = v
	})
	return validate
}

func positionInDepartment(sl validator.StructLevel) {
	d := sl.Current().Interface().(Draft)
	if d.Position == "" || !employee.IsDepartment(d.Department) {
		return
	}
	if !employee.IsPosition(d.Department, d.Position) {
		sl.ReportError(d.Position, employee.FieldPosition, "Position", "position", "")
	}
}

// ValidateDraft runs every rule and returns the failing fields with their
// messages. An empty map means the draft is valid.
func ValidateDraft(d Draft) map[string]string {
	out := make(map[string]string)

	err := rules().Struct(d)
	if err == nil {
		return out
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		out["_"] = err.Error()
		return out
	}

	for _, fe := range errs {
		field := fe.Field()
		if _, seen := out[field]; seen {
			continue
		}
		msg, ok := messages[field+"."+fe.Tag()]
		if !ok {
			msg = "Invalid value"
		}
		out[field] = msg
	}
	return out
}

// ValidateDraftStep is ValidateDraft restricted to the fields of one wizard
// step.
func ValidateDraftStep(d Draft, step int) map[string]string {
	all := ValidateDraft(d)
	out := make(map[string]string)
	for _, f := range stepFields[step] {
		if msg, ok := all[f]; ok {
			out[f] = msg
		}
	}
	return out
}
