// Package recordstore is the boundary to the record service that owns the
// employee table. It defines the service's query language and two backends:
// a self-hosted PostgreSQL table accessed through gorm and the vendor's
// hosted HTTP API.
package recordstore

import "context"

const (
	OperatorContains   = "Contains"
	OperatorExactMatch = "ExactMatch"

	GroupOr  = "OR"
	GroupAnd = "AND"

	DirectionAsc  = "ASC"
	DirectionDesc = "DESC"
)

type Paging struct {
	Limit  int
	Offset int
}

type Condition struct {
	FieldName string
	Operator  string
	Values    []string
}

// SubGroup is a set of conditions joined by Operator (AND when empty).
type SubGroup struct {
	Conditions []Condition
	Operator   string
}

// WhereGroup joins its sub-groups with Operator (AND when empty).
type WhereGroup struct {
	Operator  string
	SubGroups []SubGroup
}

type OrderBy struct {
	Field     string
	Direction string
}

// Query is a single fetch request. Where conditions and where groups are
// AND-ed together.
type Query struct {
	Fields      []string
	Paging      Paging
	WhereGroups []WhereGroup
	Where       []Condition
	OrderBy     []OrderBy
}

// Page is one page of records plus the number of records matching the
// query's filters across all pages.
type Page[T any] struct {
	Records    []T
	TotalCount int
}

type Store[T any] interface {
	Fetch(ctx context.Context, q Query) (Page[T], error)
	Get(ctx context.Context, id int64) (T, error)
	Create(ctx context.Context, record T) (T, error)
	Update(ctx context.Context, record T) (T, error)
	Delete(ctx context.Context, ids ...int64) error
}
