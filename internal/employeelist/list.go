// Package employeelist is the view-model behind the employee list page:
// paging, search, department filter and sort, with every change debounced
// into one fetch.
package employeelist

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/apper-canvas/staffsync-program-correct/internal/employee"
	"github.com/apper-canvas/staffsync-program-correct/internal/employeestore"
	"github.com/apper-canvas/staffsync-program-correct/internal/recordstore"

	"go.uber.org/zap"
)

const (
	DefaultPerPage   = 10
	DefaultSortField = employee.FieldLastName
	DefaultDebounce  = 300 * time.Millisecond
)

// Fetcher is the part of the employee store the list needs.
type Fetcher interface {
	FetchEmployees(ctx context.Context, opts employee.ListOptions) (employee.ListResult, error)
}

type Query struct {
	Page       int    `json:"page"`
	Search     string `json:"search"`
	Department string `json:"department"`
	SortField  string `json:"sortField"`
	SortOrder  string `json:"sortOrder"`
}

func DefaultQuery() Query {
	return Query{Page: 1, SortField: DefaultSortField, SortOrder: recordstore.DirectionAsc}
}

// Normalize fills in the first page and the default sort and upper-cases
// the sort order.
func (q Query) Normalize() Query {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.SortField == "" {
		q.SortField = DefaultSortField
	}
	q.SortOrder = strings.ToUpper(q.SortOrder)
	if q.SortOrder == "" {
		q.SortOrder = recordstore.DirectionAsc
	}
	return q
}

// Options converts q into gateway list options for a page of perPage rows.
func (q Query) Options(perPage int) employee.ListOptions {
	page := q.Page
	if page < 1 {
		page = 1
	}
	return employee.ListOptions{
		Limit:      perPage,
		Offset:     (page - 1) * perPage,
		Search:     q.Search,
		Department: q.Department,
		SortField:  q.SortField,
		SortOrder:  q.SortOrder,
	}
}

type Controller struct {
	mu      sync.Mutex
	ctx     context.Context
	query   Query
	perPage int

	fetcher   Fetcher
	debouncer *Debouncer
	logger    *zap.Logger
}

// New returns a list controller whose fetches run under ctx. Nothing is
// fetched until Start or a query change.
func New(ctx context.Context, fetcher Fetcher, perPage int, debounce time.Duration, logger ...*zap.Logger) *Controller {
	l := zap.L().Named("employeelist.controller")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employeelist.controller")
	}
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Controller{
		ctx:       ctx,
		query:     DefaultQuery(),
		perPage:   perPage,
		fetcher:   fetcher,
		debouncer: NewDebouncer(debounce),
		logger:    l,
	}
}

func (c *Controller) PerPage() int {
	return c.perPage
}

func (c *Controller) Query() Query {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// Start schedules the initial fetch.
func (c *Controller) Start() {
	c.schedule()
}

func (c *Controller) SetSearch(search string) {
	c.update(func(q *Query) { q.Search = search })
}

func (c *Controller) SetDepartment(department string) {
	c.update(func(q *Query) { q.Department = department })
}

func (c *Controller) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	c.update(func(q *Query) { q.Page = page })
}

// ToggleSort flips the direction when field is already the sort field and
// otherwise sorts by field ascending.
func (c *Controller) ToggleSort(field string) {
	c.update(func(q *Query) {
		if q.SortField == field {
			if q.SortOrder == recordstore.DirectionAsc {
				q.SortOrder = recordstore.DirectionDesc
			} else {
				q.SortOrder = recordstore.DirectionAsc
			}
			return
		}
		q.SortField = field
		q.SortOrder = recordstore.DirectionAsc
	})
}

func (c *Controller) ClearFilters() {
	c.update(func(q *Query) {
		q.Search = ""
		q.Department = ""
	})
}

// Replace swaps the whole query, keeping defaults for empty sort fields.
func (c *Controller) Replace(q Query) {
	q = q.Normalize()
	c.update(func(cur *Query) { *cur = q })
}

// Close drops any pending fetch. A fetch already in flight completes.
func (c *Controller) Close() {
	c.debouncer.Stop()
}

func (c *Controller) update(mutate func(*Query)) {
	c.mu.Lock()
	mutate(&c.query)
	c.mu.Unlock()
	c.schedule()
}

func (c *Controller) schedule() {
	c.debouncer.Trigger(c.fetchNow)
}

func (c *Controller) fetchNow() {
	opts := c.Query().Options(c.perPage)
	if _, err := c.fetcher.FetchEmployees(c.ctx, opts); err != nil {
		c.logger.Warn("list fetch failed",
			zap.Int("offset", opts.Offset),
			zap.String("search", opts.Search),
			zap.Error(err),
		)
	}
}

type View struct {
	Query             Query               `json:"query"`
	Employees         []employee.Employee `json:"employees"`
	Loading           bool                `json:"loading"`
	Error             string              `json:"error,omitempty"`
	TotalCount        int                 `json:"totalCount"`
	TotalPages        int                 `json:"totalPages"`
	PerPage           int                 `json:"perPage"`
	DepartmentOptions []string            `json:"departmentOptions"`
}

// Render combines the query with a store snapshot.
func (c *Controller) Render(st employeestore.State) View {
	return RenderQuery(c.Query(), c.perPage, st)
}

// RenderQuery builds the list view for q from a store snapshot.
func RenderQuery(q Query, perPage int, st employeestore.State) View {
	return View{
		Query:             q,
		Employees:         st.Employees,
		Loading:           st.Loading,
		Error:             st.Error,
		TotalCount:        st.TotalCount,
		TotalPages:        TotalPages(st.TotalCount, perPage),
		PerPage:           perPage,
		DepartmentOptions: DepartmentOptions(st.Employees),
	}
}

func TotalPages(total, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

// DepartmentOptions returns the distinct non-empty departments of the loaded
// page in order of first appearance.
func DepartmentOptions(records []employee.Employee) []string {
	out := []string{}
	for _, e := range records {
		if e.Department == "" || slices.Contains(out, e.Department) {
			continue
		}
		out = append(out, e.Department)
	}
	return out
}
