package employee

import (
	"strings"
	"time"
)

// Employee is one row of the record store's employee table. JSON names are
// the record store's field names.
type Employee struct {
	ID             int64     `gorm:"column:id;primaryKey;autoIncrement" json:"Id,omitzero"`
	FirstName      string    `gorm:"column:first_name" json:"firstName"`
	LastName       string    `gorm:"column:last_name" json:"lastName"`
	Email          string    `gorm:"column:email;uniqueIndex" json:"email"`
	Phone          string    `gorm:"column:phone" json:"phone"`
	Department     string    `gorm:"column:department;index" json:"department"`
	Position       string    `gorm:"column:position" json:"position"`
	StartDate      Date      `gorm:"column:start_date;type:date" json:"startDate"`
	EmploymentType string    `gorm:"column:employment_type" json:"employmentType"`
	Photo          string    `gorm:"column:photo" json:"photo,omitempty"`
	CreatedOn      time.Time `gorm:"column:created_on;<-:create;autoCreateTime" json:"CreatedOn,omitzero"`
}

func (Employee) TableName() string {
	return "employee"
}

func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// Columns maps record-store field names to table columns.
var Columns = map[string]string{
	FieldID:             "id",
	FieldFirstName:      "first_name",
	FieldLastName:       "last_name",
	FieldEmail:          "email",
	FieldPhone:          "phone",
	FieldDepartment:     "department",
	FieldPosition:       "position",
	FieldStartDate:      "start_date",
	FieldEmploymentType: "employment_type",
	FieldPhoto:          "photo",
	FieldCreatedOn:      "created_on",
}

const (
	FieldID             = "Id"
	FieldFirstName      = "firstName"
	FieldLastName       = "lastName"
	FieldEmail          = "email"
	FieldPhone          = "phone"
	FieldDepartment     = "department"
	FieldPosition       = "position"
	FieldStartDate      = "startDate"
	FieldEmploymentType = "employmentType"
	FieldPhoto          = "photo"
	FieldCreatedOn      = "CreatedOn"
)

// ListFields is the projection requested for every list fetch.
var ListFields = []string{
	FieldID,
	FieldFirstName,
	FieldLastName,
	FieldEmail,
	FieldPhone,
	FieldDepartment,
	FieldPosition,
	FieldStartDate,
	FieldEmploymentType,
	FieldPhoto,
	FieldCreatedOn,
}
