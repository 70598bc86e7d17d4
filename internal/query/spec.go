// Package query turns lists of (column, operator, value) predicates into
// parameterized gorm conditions. Every role-scoped read goes through Spec,
// so explicit filters and scoping are always ANDed together.
package query

import (
	"fmt"
	"reflect"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Op string

const (
	Eq     Op = "="
	NotEq  Op = "<>"
	Gte    Op = ">="
	Lte    Op = "<="
	In     Op = "IN"
	NotIn  Op = "NOT IN"
	IsNull Op = "IS NULL"
)

type Predicate struct {
	Column string
	Op     Op
	Value  any
}

// Subquery can stand in for the value of an In/NotIn predicate:
// SELECT Column FROM Table WHERE <Where...>.
type Subquery struct {
	Table  string
	Column string
	Where  []Predicate
}

// Spec is immutable; every builder method returns a new value.
type Spec struct {
	Predicates []Predicate
	Order      string
	Limit      int
}

func (s Spec) Where(column string, op Op, value any) Spec {
	preds := make([]Predicate, len(s.Predicates), len(s.Predicates)+1)
	copy(preds, s.Predicates)
	s.Predicates = append(preds, Predicate{Column: column, Op: op, Value: value})
	return s
}

func (s Spec) Eq(column string, value any) Spec { return s.Where(column, Eq, value) }

// EqIfSet adds an equality filter only for non-empty values, which is how
// optional query-string filters are applied.
func (s Spec) EqIfSet(column, value string) Spec {
	if value == "" {
		return s
	}
	return s.Eq(column, value)
}

func (s Spec) In(column string, values any) Spec { return s.Where(column, In, values) }

// And merges other's predicates into s. Ordering and limit of s win when set.
func (s Spec) And(other Spec) Spec {
	out := s
	out.Predicates = make([]Predicate, 0, len(s.Predicates)+len(other.Predicates))
	out.Predicates = append(out.Predicates, s.Predicates...)
	out.Predicates = append(out.Predicates, other.Predicates...)
	if out.Order == "" {
		out.Order = other.Order
	}
	if out.Limit == 0 {
		out.Limit = other.Limit
	}
	return out
}

func (s Spec) OrderBy(order string) Spec {
	s.Order = order
	return s
}

func (s Spec) WithLimit(n int) Spec {
	s.Limit = n
	return s
}

func (s Spec) Empty() bool { return len(s.Predicates) == 0 }

// Apply adds the predicates, ordering and limit to tx.
func (s Spec) Apply(tx *gorm.DB) *gorm.DB {
	if exprs := Expressions(tx, s.Predicates); len(exprs) > 0 {
		tx = tx.Clauses(clause.Where{Exprs: exprs})
	}
	if s.Order != "" {
		tx = tx.Order(s.Order)
	}
	if s.Limit > 0 {
		tx = tx.Limit(s.Limit)
	}
	return tx
}

// Expressions is the single translation point from predicates to SQL.
func Expressions(tx *gorm.DB, preds []Predicate) []clause.Expression {
	exprs := make([]clause.Expression, 0, len(preds))
	for _, p := range preds {
		exprs = append(exprs, expression(tx, p))
	}
	return exprs
}

func expression(tx *gorm.DB, p Predicate) clause.Expression {
	col := clause.Column{Name: p.Column}
	switch p.Op {
	case Eq:
		return clause.Eq{Column: col, Value: p.Value}
	case NotEq:
		return clause.Neq{Column: col, Value: p.Value}
	case Gte:
		return clause.Gte{Column: col, Value: p.Value}
	case Lte:
		return clause.Lte{Column: col, Value: p.Value}
	case IsNull:
		return clause.Expr{SQL: "? IS NULL", Vars: []any{col}}
	case In, NotIn:
		if sub, ok := p.Value.(Subquery); ok {
			return clause.Expr{
				SQL:  fmt.Sprintf("? %s (?)", p.Op),
				Vars: []any{col, sub.build(tx)},
			}
		}
		values := toSlice(p.Value)
		if p.Op == NotIn {
			if len(values) == 0 {
				return clause.Expr{SQL: "TRUE"}
			}
			return clause.Not(clause.IN{Column: col, Values: values})
		}
		if len(values) == 0 {
			// IN () matches nothing
			return clause.Expr{SQL: "FALSE"}
		}
		return clause.IN{Column: col, Values: values}
	}
	panic(fmt.Sprintf("query: unsupported operator %q", p.Op))
}

func (s Subquery) build(tx *gorm.DB) *gorm.DB {
	sub := tx.Session(&gorm.Session{NewDB: true}).Table(s.Table).Select(s.Column)
	if exprs := Expressions(tx, s.Where); len(exprs) > 0 {
		sub = sub.Clauses(clause.Where{Exprs: exprs})
	}
	return sub
}

func toSlice(v any) []any {
	if vs, ok := v.([]any); ok {
		return vs
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return []any{v}
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}
