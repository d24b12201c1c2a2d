package employee

import "time"

// EmployeeResponse is the detail view of one employee with display fields
// precomputed.
type EmployeeResponse struct {
	Employee
	FullName           string `json:"fullName"`
	FormattedPhone     string `json:"formattedPhone"`
	FormattedStartDate string `json:"formattedStartDate"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		Employee:           e,
		FullName:           e.FullName(),
		FormattedPhone:     FormatPhone(e.Phone),
		FormattedStartDate: FormatDate(e.StartDate.String()),
	}
}

// Summary is the compact row shown in recent-hire lists.
type Summary struct {
	ID         int64     `json:"Id"`
	FullName   string    `json:"fullName"`
	Department string    `json:"department"`
	Position   string    `json:"position"`
	Photo      string    `json:"photo,omitempty"`
	CreatedOn  time.Time `json:"CreatedOn"`
}

func ToSummary(e Employee) Summary {
	return Summary{
		ID:         e.ID,
		FullName:   e.FullName(),
		Department: e.Department,
		Position:   e.Position,
		Photo:      e.Photo,
		CreatedOn:  e.CreatedOn,
	}
}
