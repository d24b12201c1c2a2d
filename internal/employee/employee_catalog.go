package employee

import "slices"

const (
	EmploymentFullTime   = "Full-time"
	EmploymentPartTime   = "Part-time"
	EmploymentContract   = "Contract"
	EmploymentInternship = "Internship"

	DefaultEmploymentType = EmploymentFullTime
)

var departments = []string{
	"Engineering",
	"Marketing",
	"Finance",
	"Human Resources",
	"Operations",
	"Product",
	"Sales",
	"Customer Support",
}

var positions = map[string][]string{
	"Engineering":      {"Software Engineer", "QA Engineer", "DevOps Engineer", "Engineering Manager"},
	"Marketing":        {"Marketing Specialist", "Content Writer", "SEO Specialist", "Marketing Manager"},
	"Finance":          {"Accountant", "Financial Analyst", "Payroll Specialist", "Finance Manager"},
	"Human Resources":  {"HR Coordinator", "Recruiter", "HR Specialist", "HR Manager"},
	"Operations":       {"Operations Coordinator", "Logistics Specialist", "Operations Analyst", "Operations Manager"},
	"Product":          {"Product Manager", "UX Designer", "Product Analyst", "Product Director"},
	"Sales":            {"Sales Representative", "Account Executive", "Sales Coordinator", "Sales Manager"},
	"Customer Support": {"Support Agent", "Technical Support", "Support Coordinator", "Support Manager"},
}

var employmentTypes = []string{
	EmploymentFullTime,
	EmploymentPartTime,
	EmploymentContract,
	EmploymentInternship,
}

// Departments returns the fixed department list in display order.
func Departments() []string {
	return slices.Clone(departments)
}

// PositionsFor returns the positions offered by department, or nil for an
// unknown department.
func PositionsFor(department string) []string {
	return slices.Clone(positions[department])
}

func IsDepartment(department string) bool {
	return slices.Contains(departments, department)
}

func IsPosition(department, position string) bool {
	return slices.Contains(positions[department], position)
}

func EmploymentTypes() []string {
	return slices.Clone(employmentTypes)
}

func IsEmploymentType(t string) bool {
	return slices.Contains(employmentTypes, t)
}
