package dbkit

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/orderkit/orderkit/logkit"
	"github.com/orderkit/orderkit/orderkit"
)

// Select is a postgres select statement that an orderkit.Ordering can order:
//
//	q := dbkit.NewSelect("id", "name").From("users")
//	c.Ordering().WithSink(q).DeclareAll(columns, "name", orderkit.Ascending)
//	rows, err := db.Query(ctx, q)
type Select struct {
	builder squirrel.SelectBuilder
	columns map[string]string
	orders  []orderColumn
}

func NewSelect(columns ...string) *Select {
	return &Select{
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).Select(columns...),
	}
}

func (s *Select) From(table string) *Select {
	s.builder = s.builder.From(table)
	return s
}

// Where adds a condition, see squirrel.SelectBuilder.Where.
func (s *Select) Where(pred interface{}, args ...interface{}) *Select {
	s.builder = s.builder.Where(pred, args...)
	return s
}

func (s *Select) Limit(limit uint64) *Select {
	s.builder = s.builder.Limit(limit)
	return s
}

func (s *Select) Offset(offset uint64) *Select {
	s.builder = s.builder.Offset(offset)
	return s
}

// OrderColumns maps ordering keys to sql columns, e.g. "name" to "users.display_name".
// Once set, OrderBy ignores keys that are not mapped.
func (s *Select) OrderColumns(columns map[string]string) *Select {
	s.columns = columns
	return s
}

// OrderBy appends an ORDER BY term. Invalid directions and unmapped keys are ignored.
func (s *Select) OrderBy(column string, direction orderkit.Direction) {
	if s.columns != nil {
		mapped, found := s.columns[column]
		if !found {
			return
		}
		column = mapped
	}

	if o, ok := validOrder(column, direction); ok {
		s.orders = append(s.orders, o)
	}
}

// Ordered reports whether OrderBy added any term.
func (s *Select) Ordered() bool {
	return len(s.orders) > 0
}

func (s *Select) ToSql() (string, []interface{}, error) {
	builder := s.builder
	for _, o := range s.orders {
		builder = builder.OrderBy(o.sql())
	}
	return builder.ToSql()
}

func (s *Select) String() string {
	sql, _, err := s.ToSql()
	if err != nil {
		return err.Error()
	}
	return sql
}

// Query runs s on db. The rows belong to ctx, not to the logged pg.sql operation.
func (s *Select) Query(ctx context.Context, db *sql.DB) (*sql.Rows, error) {
	op, done := logkit.Operation(ctx, "pg.sql", logkit.Stringer("sql", s))
	defer done()

	query, args, err := s.ToSql()
	if err != nil {
		return nil, logkit.Error(op, "SQL Error", logkit.Err(err))
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, logkit.Error(op, "SQL Error", logkit.Err(err), logkit.String("sql", query))
	}
	return rows, nil
}
