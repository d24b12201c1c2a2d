// Package dashboard builds the landing summary from the employee store.
package dashboard

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/apper-canvas/staffsync-program-correct/internal/employee"
	"github.com/apper-canvas/staffsync-program-correct/internal/employeestore"
)

const (
	RecentLimit  = 5
	fallbackName = "User"
)

type Summary struct {
	WelcomeName     string             `json:"welcomeName"`
	TotalEmployees  int                `json:"totalEmployees"`
	DepartmentCount int                `json:"departmentCount"`
	NewThisMonth    int                `json:"newThisMonth"`
	DepartmentStats map[string]int     `json:"departmentStats"`
	Recent          []employee.Summary `json:"recentEmployees"`
	Loading         bool               `json:"loading"`
	Error           string             `json:"error,omitempty"`
}

// WelcomeName is the user's firstName, or "User" when absent.
func WelcomeName(user map[string]any) string {
	if name, ok := user["firstName"].(string); ok && strings.TrimSpace(name) != "" {
		return name
	}
	return fallbackName
}

// Build summarises st for user. Department figures describe the loaded page
// only. now decides the "new this month" window.
func Build(st employeestore.State, user map[string]any, now time.Time) Summary {
	recent := slices.Clone(st.Employees)
	slices.SortStableFunc(recent, func(a, b employee.Employee) int {
		return cmp.Compare(b.CreatedOn.UnixNano(), a.CreatedOn.UnixNano())
	})
	if len(recent) > RecentLimit {
		recent = recent[:RecentLimit]
	}

	summaries := make([]employee.Summary, 0, len(recent))
	for _, e := range recent {
		summaries = append(summaries, employee.ToSummary(e))
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	newThisMonth := 0
	for _, e := range st.Employees {
		if !e.CreatedOn.Before(monthStart) {
			newThisMonth++
		}
	}

	return Summary{
		WelcomeName:     WelcomeName(user),
		TotalEmployees:  st.TotalCount,
		DepartmentCount: len(st.DepartmentStats),
		NewThisMonth:    newThisMonth,
		DepartmentStats: st.DepartmentStats,
		Recent:          summaries,
		Loading:         st.Loading,
		Error:           st.Error,
	}
}
