// Package querybuilder renders the small set of PostgreSQL statements the
// repositories need, with $n placeholders numbered in argument order.
package querybuilder

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// writer accumulates statement text and its positional arguments.
type writer struct {
	strings.Builder
	args []any
}

func (w *writer) bind(value any) {
	w.args = append(w.args, value)
	w.WriteByte('$')
	w.WriteString(strconv.Itoa(len(w.args)))
}

// expr copies raw SQL, binding one argument per '?'. Surplus '?' stay as-is.
func (w *writer) expr(sql string, args []any) {
	for i := 0; i < len(sql); i++ {
		if sql[i] == '?' && len(args) > 0 {
			w.bind(args[0])
			args = args[1:]
			continue
		}
		w.WriteByte(sql[i])
	}
}

func (w *writer) where(conditions []Condition) {
	for i, cond := range conditions {
		if i == 0 {
			w.WriteString(" WHERE ")
		} else {
			w.WriteString(" AND ")
		}
		cond(w)
	}
}

func (w *writer) list(items []string) {
	w.WriteString(strings.Join(items, ", "))
}

// Condition is one AND-ed predicate.
type Condition func(w *writer)

func Eq(column string, value any) Condition {
	return func(w *writer) {
		w.WriteString(column)
		w.WriteString(" = ")
		w.bind(value)
	}
}

func IsNull(column string) Condition {
	return func(w *writer) {
		w.WriteString(column)
		w.WriteString(" IS NULL")
	}
}

// Expr is a raw predicate; each '?' takes the next argument.
func Expr(sql string, args ...any) Condition {
	return func(w *writer) { w.expr(sql, args) }
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: columns}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	switch {
	case len(b.columns) == 0:
		return "", nil, errors.New("select: columns are required")
	case strings.TrimSpace(b.table) == "":
		return "", nil, errors.New("select: table is required")
	}

	var w writer
	w.WriteString("SELECT ")
	w.list(b.columns)
	w.WriteString(" FROM ")
	w.WriteString(b.table)
	w.where(b.where)
	if len(b.orderBy) > 0 {
		w.WriteString(" ORDER BY ")
		w.list(b.orderBy)
	}
	if b.limit > 0 {
		w.WriteString(" LIMIT ")
		w.WriteString(strconv.Itoa(b.limit))
	}
	return w.String(), w.args, nil
}

type InsertBuilder struct {
	table   string
	columns []string
	values  []any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = columns
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.values = values
	return b
}

// Suffix is appended verbatim, e.g. "ON CONFLICT DO NOTHING".
func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(b.table) == "":
		return "", nil, errors.New("insert: table is required")
	case len(b.columns) == 0:
		return "", nil, errors.New("insert: columns are required")
	case len(b.values) != len(b.columns):
		return "", nil, fmt.Errorf("insert: %d values for %d columns", len(b.values), len(b.columns))
	}

	var w writer
	w.WriteString("INSERT INTO ")
	w.WriteString(b.table)
	w.WriteString(" (")
	w.list(b.columns)
	w.WriteString(") VALUES (")
	for i, value := range b.values {
		if i > 0 {
			w.WriteString(", ")
		}
		w.bind(value)
	}
	w.WriteByte(')')
	if b.suffix != "" {
		w.WriteByte(' ')
		w.WriteString(b.suffix)
	}
	return w.String(), w.args, nil
}

type UpdateBuilder struct {
	table string
	sets  []func(w *writer)
	where []Condition
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, func(w *writer) {
		w.WriteString(column)
		w.WriteString(" = ")
		w.bind(value)
	})
	return b
}

func (b *UpdateBuilder) SetExpr(column, sql string, args ...any) *UpdateBuilder {
	b.sets = append(b.sets, func(w *writer) {
		w.WriteString(column)
		w.WriteString(" = ")
		w.expr(sql, args)
	})
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

// ToSQL refuses to render an UPDATE without a WHERE clause.
func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(b.table) == "":
		return "", nil, errors.New("update: table is required")
	case len(b.sets) == 0:
		return "", nil, errors.New("update: at least one SET is required")
	case len(b.where) == 0:
		return "", nil, errors.New("update: where clause is required")
	}

	var w writer
	w.WriteString("UPDATE ")
	w.WriteString(b.table)
	w.WriteString(" SET ")
	for i, set := range b.sets {
		if i > 0 {
			w.WriteString(", ")
		}
		set(&w)
	}
	w.where(b.where)
	return w.String(), w.args, nil
}

// SoftDelete stamps deleted_at on live rows matching conditions.
func SoftDelete(table string, conditions ...Condition) (string, []any, error) {
	return Update(table).
		SetExpr("deleted_at", "NOW()").
		Where(append([]Condition{IsNull("deleted_at")}, conditions...)...).
		ToSQL()
}
