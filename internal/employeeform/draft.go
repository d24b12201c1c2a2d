package employeeform

import (
	"github.com/apper-canvas/staffsync-program-correct/internal/employee"
)

// Draft holds the values being edited. It is never persisted.
type Draft struct {
	ID             int64  `json:"Id,omitzero"`
	FirstName      string `json:"firstName" validate:"notblank"`
	LastName       string `json:"lastName" validate:"notblank"`
	Email          string `json:"email" validate:"notblank,looseemail"`
	Phone          string `json:"phone" validate:"notblank,phone10"`
	Department     string `json:"department" validate:"required,department"`
	Position       string `json:"position" validate:"required"`
	StartDate      string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EmploymentType string `json:"employmentType" validate:"required,employmenttype"`
	Photo          string `json:"photo,omitempty"`
}

func emptyDraft() Draft {
	return Draft{EmploymentType: employee.DefaultEmploymentType}
}

func draftFrom(e employee.Employee) Draft {
	d := Draft{
		ID:             e.ID,
		FirstName:      e.FirstName,
		LastName:       e.LastName,
		Email:          e.Email,
		Phone:          e.Phone,
		Department:     e.Department,
		Position:       e.Position,
		StartDate:      e.StartDate.String(),
		EmploymentType: e.EmploymentType,
		Photo:          e.Photo,
	}
	if d.EmploymentType == "" {
		d.EmploymentType = employee.DefaultEmploymentType
	}
	return d
}

func (d Draft) toEmployee() employee.Employee {
	return employee.Employee{
		ID:             d.ID,
		FirstName:      d.FirstName,
		LastName:       d.LastName,
		Email:          d.Email,
		Phone:          d.Phone,
		Department:     d.Department,
		Position:       d.Position,
		StartDate:      employee.ParseDate(d.StartDate),
		EmploymentType: d.EmploymentType,
		Photo:          d.Photo,
	}
}

// set assigns one field by its json name. It reports false for names that
// are not editable text fields.
func (d *Draft) set(name, value string) bool {
	switch name {
	case employee.FieldFirstName:
		d.FirstName = value
	case employee.FieldLastName:
		d.LastName = value
	case employee.FieldEmail:
		d.Email = value
	case employee.FieldPhone:
		d.Phone = value
	case employee.FieldDepartment:
		d.Department = value
		d.Position = ""
	case employee.FieldPosition:
		d.Position = value
	case employee.FieldStartDate:
		d.StartDate = value
	case employee.FieldEmploymentType:
		d.EmploymentType = value
	default:
		return false
	}
	return true
}

// EditableFields lists the text fields in form order. Department precedes
// position so that applying them in order keeps the chosen position.
func EditableFields() []string {
	return []string{
		employee.FieldFirstName,
		employee.FieldLastName,
		employee.FieldEmail,
		employee.FieldPhone,
		employee.FieldDepartment,
		employee.FieldPosition,
		employee.FieldStartDate,
		employee.FieldEmploymentType,
	}
}
