// Package query turns request parameters into validated filters and SQL predicates.
package query

import (
	"fmt"
	"strings"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE wildcards so value matches literally.
func EscapeLike(value string) string {
	return likeEscaper.Replace(value)
}

// Contains returns a LIKE pattern matching value anywhere in a column.
func Contains(value string) string {
	return "%" + EscapeLike(value) + "%"
}

// Builder accumulates AND-ed conditions and SET assignments with positional arguments.
type Builder struct {
	assignments []string
	conditions  []string
	args        []interface{}
}

// Arg registers a value and returns its placeholder.
func (b *Builder) Arg(value interface{}) string {
	b.args = append(b.args, value)
	return fmt.Sprintf("$%d", len(b.args))
}

// Set adds column = value to the SET list.
func (b *Builder) Set(column string, value interface{}) {
	b.assignments = append(b.assignments, fmt.Sprintf("%s = %s", column, b.Arg(value)))
}

// SetExpr adds a literal assignment such as updated_at = NOW().
func (b *Builder) SetExpr(assignment string) {
	b.assignments = append(b.assignments, assignment)
}

// Assignments renders the comma-separated SET list.
func (b *Builder) Assignments() string {
	return strings.Join(b.assignments, ", ")
}

// Eq adds column = value.
func (b *Builder) Eq(column string, value interface{}) {
	b.conditions = append(b.conditions, fmt.Sprintf("%s = %s", column, b.Arg(value)))
}

// ILike adds a case-insensitive substring match of value against any of columns.
func (b *Builder) ILike(value string, columns ...string) {
	if len(columns) == 0 {
		return
	}
	placeholder := b.Arg(Contains(value))
	parts := make([]string, len(columns))
	for i, column := range columns {
		parts[i] = fmt.Sprintf(`%s ILIKE %s ESCAPE '\'`, column, placeholder)
	}
	if len(parts) == 1 {
		b.conditions = append(b.conditions, parts[0])
		return
	}
	b.conditions = append(b.conditions, "("+strings.Join(parts, " OR ")+")")
}

// Where renders the WHERE clause; with no conditions it matches every row.
func (b *Builder) Where() string {
	clause := "WHERE 1=1"
	if len(b.conditions) > 0 {
		clause += " AND " + strings.Join(b.conditions, " AND ")
	}
	return clause
}

// Args returns the positional arguments in placeholder order.
func (b *Builder) Args() []interface{} {
	return b.args
}
