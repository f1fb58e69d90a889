package postgres

import (
	"fmt"
	"strings"
	"time"

	"github.com/javnievic/comparte-tu-tiempo/internal/domain/repository"
)

// offerQuery accumulates WHERE conditions with numbered pgx placeholders.
type offerQuery struct {
	conds []string
	args  []any
}

// add appends a condition, replacing each ? with the next $n placeholder.
func (q *offerQuery) add(expr string, vals ...any) {
	for _, v := range vals {
		q.args = append(q.args, v)
		expr = strings.Replace(expr, "?", fmt.Sprintf("$%d", len(q.args)), 1)
	}
	q.conds = append(q.conds, expr)
}

// offerPredicates returns the ordered predicate transforms for a filter.
// Each transform is independently toggled by the presence of its parameter;
// the conditions that remain compose with AND. All values travel as bound
// arguments, never as interpolated SQL.
func offerPredicates(f repository.OfferFilter) []func(*offerQuery) {
	return []func(*offerQuery){
		func(q *offerQuery) {
			if f.UserID != "" {
				q.add("user_id = ?", f.UserID)
			}
		},
		func(q *offerQuery) {
			if f.IsOnline != nil {
				q.add("is_online = ?", *f.IsOnline)
			}
		},
		func(q *offerQuery) {
			if f.IsActive != nil {
				q.add("is_active = ?", *f.IsActive)
			}
		},
		func(q *offerQuery) {
			if f.Location != "" {
				q.add("location ILIKE ?", "%"+escapeLike(f.Location)+"%")
			}
		},
		func(q *offerQuery) {
			if f.MinDuration > 0 {
				q.add("duration_minutes >= ?", int64(f.MinDuration/time.Minute))
			}
		},
		func(q *offerQuery) {
			if f.MaxDuration > 0 {
				q.add("duration_minutes <= ?", int64(f.MaxDuration/time.Minute))
			}
		},
		func(q *offerQuery) {
			if !f.FromDate.IsZero() {
				q.add("publish_date >= ?", f.FromDate)
			}
		},
		func(q *offerQuery) {
			if !f.ToDate.IsZero() {
				// inclusive upper bound on a date: strictly before the next day
				q.add("publish_date < ?", f.ToDate.AddDate(0, 0, 1))
			}
		},
		func(q *offerQuery) {
			if f.Query != "" {
				p := "%" + escapeLike(f.Query) + "%"
				q.add("(title ILIKE ? OR description ILIKE ?)", p, p)
			}
		},
	}
}

// buildOfferWhere runs the predicate transforms and renders the WHERE clause.
// An empty filter yields an empty clause and no arguments.
func buildOfferWhere(f repository.OfferFilter) (string, []any) {
	q := &offerQuery{}
	for _, apply := range offerPredicates(f) {
		apply(q)
	}
	if len(q.conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(q.conds, " AND "), q.args
}

// escapeLike neutralizes LIKE metacharacters so user input always matches
// as a literal substring.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
