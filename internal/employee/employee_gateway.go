package employee

import (
	"context"
	"strings"

	employeeerrors "github.com/apper-canvas/staffsync-program-correct/internal/employee/errors"
	"github.com/apper-canvas/staffsync-program-correct/internal/recordstore"
	"github.com/apper-canvas/staffsync-program-correct/internal/shared/apperror"
	"github.com/apper-canvas/staffsync-program-correct/internal/shared/contextutil"

	"go.uber.org/zap"
)

const DefaultListLimit = 20

type ListOptions struct {
	Limit      int
	Offset     int
	Search     string
	Department string
	SortField  string
	SortOrder  string
}

type ListResult struct {
	Records    []Employee
	TotalCount int
}

// Gateway is the only path to the record store for employee data. Every
// failure is returned as a remote query error; nothing is retried or cached.
//
//go:generate mockgen -source=employee_gateway.go -destination=mock/employee_gateway_mock.go -package=mock
type Gateway interface {
	List(ctx context.Context, opts ListOptions) (ListResult, error)
	GetByID(ctx context.Context, id int64) (Employee, error)
	Create(ctx context.Context, draft Employee) (Employee, error)
	Update(ctx context.Context, record Employee) (Employee, error)
	Delete(ctx context.Context, id int64) error
}

type gateway struct {
	store  recordstore.Store[Employee]
	logger *zap.Logger
}

func NewGateway(store recordstore.Store[Employee], logger ...*zap.Logger) Gateway {
	l := zap.L().Named("employee.gateway")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.gateway")
	}
	return &gateway{store: store, logger: l}
}

// BuildListQuery translates list options into the record store's query
// language.
func BuildListQuery(opts ListOptions) recordstore.Query {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}

	q := recordstore.Query{
		Fields: ListFields,
		Paging: recordstore.Paging{Limit: limit, Offset: offset},
	}

	if opts.Search != "" {
		group := recordstore.WhereGroup{Operator: recordstore.GroupOr}
		for _, field := range []string{FieldFirstName, FieldLastName, FieldEmail} {
			group.SubGroups = append(group.SubGroups, recordstore.SubGroup{
				Conditions: []recordstore.Condition{{
					FieldName: field,
					Operator:  recordstore.OperatorContains,
					Values:    []string{opts.Search},
				}},
			})
		}
		q.WhereGroups = []recordstore.WhereGroup{group}
	}

	if opts.Department != "" {
		q.Where = append(q.Where, recordstore.Condition{
			FieldName: FieldDepartment,
			Operator:  recordstore.OperatorExactMatch,
			Values:    []string{opts.Department},
		})
	}

	if opts.SortField != "" {
		direction := strings.ToUpper(opts.SortOrder)
		if direction == "" {
			direction = recordstore.DirectionAsc
		}
		q.OrderBy = []recordstore.OrderBy{{Field: opts.SortField, Direction: direction}}
	}

	return q
}

func (g *gateway) List(ctx context.Context, opts ListOptions) (ListResult, error) {
	rid := contextutil.GetRequestID(ctx)
	q := BuildListQuery(opts)

	g.logger.Debug("fetch employees requested",
		zap.String("request_id", rid),
		zap.Int("limit", q.Paging.Limit),
		zap.Int("offset", q.Paging.Offset),
		zap.String("search", opts.Search),
		zap.String("department", opts.Department),
		zap.String("sort_field", opts.SortField),
	)

	page, err := g.store.Fetch(ctx, q)
	if err != nil {
		g.logger.Error("fetch employees failed", zap.String("request_id", rid), zap.Error(err))
		return ListResult{}, apperror.RemoteQuery(err)
	}

	records := page.Records
	if records == nil {
		records = []Employee{}
	}
	return ListResult{Records: records, TotalCount: page.TotalCount}, nil
}

func (g *gateway) GetByID(ctx context.Context, id int64) (Employee, error) {
	record, err := g.store.Get(ctx, id)
	if err != nil {
		g.logger.Error("fetch employee failed",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.Int64("employee_id", id),
			zap.Error(err),
		)
		return Employee{}, apperror.RemoteQuery(err)
	}
	return record, nil
}

func (g *gateway) Create(ctx context.Context, draft Employee) (Employee, error) {
	draft.ID = 0
	record, err := g.store.Create(ctx, draft)
	if err != nil {
		g.logger.Error("create employee failed",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.String("email", draft.Email),
			zap.Error(err),
		)
		return Employee{}, apperror.RemoteQuery(err)
	}

	g.logger.Info("employee created",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.Int64("employee_id", record.ID),
	)
	return record, nil
}

func (g *gateway) Update(ctx context.Context, record Employee) (Employee, error) {
	if record.ID == 0 {
		return Employee{}, employeeerrors.ErrEmployeeIDRequired
	}

	updated, err := g.store.Update(ctx, record)
	if err != nil {
		g.logger.Error("update employee failed",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.Int64("employee_id", record.ID),
			zap.Error(err),
		)
		return Employee{}, apperror.RemoteQuery(err)
	}
	return updated, nil
}

func (g *gateway) Delete(ctx context.Context, id int64) error {
	if err := g.store.Delete(ctx, id); err != nil {
		g.logger.Error("delete employee failed",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.Int64("employee_id", id),
			zap.Error(err),
		)
		return apperror.RemoteQuery(err)
	}
	return nil
}
