package utils

import (
	"fmt"
	"strings"
)

// JoinWithAnd joins a slice of strings with AND operator
func JoinWithAnd(clauses []string) string {
	return strings.Join(clauses, " AND ")
}

// JoinWithOr joins a slice of strings with OR operator
func JoinWithOr(clauses []string) string {
	return strings.Join(clauses, " OR ")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE wildcards so user input matches literally.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// Where collects AND-ed conditions with numbered ($1, $2, ...) arguments.
type Where struct {
	conditions []string
	args       []any
}

// Arg binds v and returns its placeholder.
func (w *Where) Arg(v any) string {
	w.args = append(w.args, v)
	return fmt.Sprintf("$%d", len(w.args))
}

// Add appends a raw condition; placeholders must come from Arg.
func (w *Where) Add(condition string) {
	w.conditions = append(w.conditions, condition)
}

func (w *Where) Eq(column string, v any) {
	w.Add(column + " = " + w.Arg(v))
}

// ContainsAny adds "(c1 ILIKE $n OR c2 ILIKE $n ...)" for a case-insensitive substring match.
func (w *Where) ContainsAny(columns []string, term string) {
	placeholder := w.Arg("%" + EscapeLike(term) + "%")
	parts := make([]string, len(columns))
	for i, col := range columns {
		parts[i] = col + " ILIKE " + placeholder
	}
	w.Add("(" + JoinWithOr(parts) + ")")
}

// SQL renders "WHERE ..." or an empty string.
func (w *Where) SQL() string {
	if len(w.conditions) == 0 {
		return ""
	}
	return "WHERE " + JoinWithAnd(w.conditions)
}

func (w *Where) Args() []any {
	return w.args
}

// Next is the index the next Arg call would use, for LIMIT/OFFSET placeholders.
func (w *Where) Next() int {
	return len(w.args) + 1
}
