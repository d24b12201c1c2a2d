package employeestore

import (
	"maps"
	"slices"

	"github.com/apper-canvas/staffsync-program-correct/internal/employee"
)

// State is the employee collection cache for one workspace. Employees is the
// most recently fetched page, not the whole table. DepartmentStats counts
// that page only.
type State struct {
	Employees       []employee.Employee `json:"employees"`
	Current         *employee.Employee  `json:"currentEmployee"`
	Loading         bool                `json:"loading"`
	Error           string              `json:"error,omitempty"`
	TotalCount      int                 `json:"totalCount"`
	DepartmentStats map[string]int      `json:"departmentStats"`
}

func initialState() State {
	return State{
		Employees:       []employee.Employee{},
		DepartmentStats: map[string]int{},
	}
}

func (s State) clone() State {
	out := s
	out.Employees = slices.Clone(s.Employees)
	if out.Employees == nil {
		out.Employees = []employee.Employee{}
	}
	if s.Current != nil {
		cur := *s.Current
		out.Current = &cur
	}
	out.DepartmentStats = maps.Clone(s.DepartmentStats)
	if out.DepartmentStats == nil {
		out.DepartmentStats = map[string]int{}
	}
	return out
}

func departmentStats(records []employee.Employee) map[string]int {
	stats := make(map[string]int)
	for _, e := range records {
		if e.Department == "" {
			continue
		}
		stats[e.Department]++
	}
	return stats
}
