package recordstore

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const uniqueViolation = "23505"

// GormStore serves the record-store query language from a PostgreSQL table.
// Columns maps record-store field names (firstName) to table columns
// (first_name); only mapped fields may be selected, filtered or sorted.
type GormStore[T any] struct {
	db       *gorm.DB
	columns  map[string]string
	idColumn string
}

func NewGormStore[T any](db *gorm.DB, idColumn string, columns map[string]string) *GormStore[T] {
	return &GormStore[T]{db: db, columns: columns, idColumn: idColumn}
}

func (s *GormStore[T]) Fetch(ctx context.Context, q Query) (Page[T], error) {
	where, err := s.whereExpressions(q)
	if err != nil {
		return Page[T]{}, err
	}
	selects, err := s.selectColumns(q.Fields)
	if err != nil {
		return Page[T]{}, err
	}
	orders, err := s.orderColumns(q.OrderBy)
	if err != nil {
		return Page[T]{}, err
	}

	var total int64
	countTx := s.db.WithContext(ctx).Model(new(T))
	if len(where) > 0 {
		countTx = countTx.Clauses(clause.Where{Exprs: where})
	}
	if err := countTx.Count(&total).Error; err != nil {
		return Page[T]{}, mapGormError(err)
	}

	findTx := s.db.WithContext(ctx).Model(new(T))
	if len(where) > 0 {
		findTx = findTx.Clauses(clause.Where{Exprs: where})
	}
	if len(selects) > 0 {
		findTx = findTx.Select(selects)
	}
	for _, o := range orders {
		findTx = findTx.Order(o)
	}
	if q.Paging.Limit > 0 {
		findTx = findTx.Limit(q.Paging.Limit)
	}
	if q.Paging.Offset > 0 {
		findTx = findTx.Offset(q.Paging.Offset)
	}

	var records []T
	if err := findTx.Find(&records).Error; err != nil {
		return Page[T]{}, mapGormError(err)
	}

	return Page[T]{Records: records, TotalCount: int(total)}, nil
}

func (s *GormStore[T]) Get(ctx context.Context, id int64) (T, error) {
	var record T
	err := s.db.WithContext(ctx).
		Where(clause.Eq{Column: clause.Column{Name: s.idColumn}, Value: id}).
		First(&record).Error
	return record, mapGormError(err)
}

func (s *GormStore[T]) Create(ctx context.Context, record T) (T, error) {
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return record, mapGormError(err)
	}
	return record, nil
}

// Update writes every updatable column of record and returns the row as
// stored.
func (s *GormStore[T]) Update(ctx context.Context, record T) (T, error) {
	res := s.db.WithContext(ctx).Model(&record).Select("*").Updates(&record)
	if res.Error != nil {
		return record, mapGormError(res.Error)
	}
	if res.RowsAffected == 0 {
		return record, ErrRecordNotFound
	}

	// First keys on the primary key already set on stored.
	stored := record
	if err := s.db.WithContext(ctx).First(&stored).Error; err != nil {
		return record, mapGormError(err)
	}
	return stored, nil
}

func (s *GormStore[T]) Delete(ctx context.Context, ids ...int64) error {
	if len(ids) == 0 {
		return ErrMissingID
	}
	res := s.db.WithContext(ctx).
		Where(clause.IN{Column: clause.Column{Name: s.idColumn}, Values: toAny(ids)}).
		Delete(new(T))
	if res.Error != nil {
		return mapGormError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (s *GormStore[T]) selectColumns(fields []string) ([]string, error) {
	cols := make([]string, 0, len(fields))
	for _, f := range fields {
		col, ok := s.columns[f]
		if !ok {
			return nil, &UnknownFieldError{Field: f}
		}
		cols = append(cols, col)
	}
	return cols, nil
}

func (s *GormStore[T]) orderColumns(orderBy []OrderBy) ([]clause.OrderByColumn, error) {
	out := make([]clause.OrderByColumn, 0, len(orderBy))
	for _, o := range orderBy {
		col, ok := s.columns[o.Field]
		if !ok {
			return nil, &UnknownFieldError{Field: o.Field}
		}
		out = append(out, clause.OrderByColumn{
			Column: clause.Column{Name: col},
			Desc:   strings.EqualFold(o.Direction, DirectionDesc),
		})
	}
	return out, nil
}

func (s *GormStore[T]) whereExpressions(q Query) ([]clause.Expression, error) {
	exprs := make([]clause.Expression, 0, len(q.WhereGroups)+len(q.Where))

	for _, g := range q.WhereGroups {
		subs := make([]clause.Expression, 0, len(g.SubGroups))
		for _, sg := range g.SubGroups {
			conds := make([]clause.Expression, 0, len(sg.Conditions))
			for _, c := range sg.Conditions {
				expr, err := s.conditionExpression(c)
				if err != nil {
					return nil, err
				}
				conds = append(conds, expr)
			}
			if len(conds) > 0 {
				subs = append(subs, join(sg.Operator, conds))
			}
		}
		if len(subs) > 0 {
			exprs = append(exprs, join(g.Operator, subs))
		}
	}

	for _, c := range q.Where {
		expr, err := s.conditionExpression(c)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}

	return exprs, nil
}

func (s *GormStore[T]) conditionExpression(c Condition) (clause.Expression, error) {
	col, ok := s.columns[c.FieldName]
	if !ok {
		return nil, &UnknownFieldError{Field: c.FieldName}
	}

	alternatives := make([]clause.Expression, 0, len(c.Values))
	for _, v := range c.Values {
		switch c.Operator {
		case OperatorContains:
			alternatives = append(alternatives, clause.Expr{
				SQL:  "? ILIKE ?",
				Vars: []any{clause.Column{Name: col}, "%" + escapeLike(v) + "%"},
			})
		case OperatorExactMatch:
			alternatives = append(alternatives, clause.Eq{Column: clause.Column{Name: col}, Value: v})
		default:
			return nil, errors.New("unsupported operator " + c.Operator)
		}
	}
	return join(GroupOr, alternatives), nil
}

func join(operator string, exprs []clause.Expression) clause.Expression {
	if len(exprs) == 1 {
		return exprs[0]
	}
	if strings.EqualFold(operator, GroupOr) {
		return clause.Or(exprs...)
	}
	return clause.And(exprs...)
}

func escapeLike(v string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(v)
}

func toAny(ids []int64) []any {
	out := make([]any, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return out
}

func mapGormError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRecordNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrConflict
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") {
		return ErrConflict
	}

	return err
}
