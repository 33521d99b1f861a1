package dbkit

import (
	"strings"

	"github.com/lib/pq"
	"github.com/orderkit/orderkit/orderkit"
)

type orderColumn struct {
	column    string
	direction orderkit.Direction
}

func (o orderColumn) sql() string {
	return QuoteColumn(o.column) + " " + string(o.direction)
}

// QuoteColumn quotes every dotted part of column, so users.name becomes "users"."name".
func QuoteColumn(column string) string {
	parts := strings.Split(column, ".")
	for i, part := range parts {
		parts[i] = pq.QuoteIdentifier(part)
	}
	return strings.Join(parts, ".")
}

// validOrder returns the order column for a sink call, or false if direction is not ASC or DESC.
func validOrder(column string, direction orderkit.Direction) (orderColumn, bool) {
	d, ok := orderkit.ParseDirection(string(direction))
	if !ok || column == "" {
		return orderColumn{}, false
	}
	return orderColumn{column: column, direction: d}, true
}
