package dbkit

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	// postgres driver
	_ "github.com/lib/pq"
	"github.com/orderkit/orderkit/cachekit"
	"github.com/orderkit/orderkit/orderkit"
)

type Postgres struct {
	db         *sql.DB
	columns    *cachekit.Cache
	columnsTTL time.Duration
}

func OpenPostgres(u *url.URL) (*Postgres, error) {
	db, err := sql.Open("postgres", u.String())
	if err != nil {
		return nil, err
	}
	err = db.Ping()
	if err != nil {
		return nil, err
	}
	return &Postgres{db: db, columns: cachekit.NewNoOpCache()}, nil
}

// CacheColumns keeps the column names loaded by TableColumns in c for ttl.
func (p *Postgres) CacheColumns(c *cachekit.Cache, ttl time.Duration) {
	p.columns = c
	p.columnsTTL = ttl
}

func (p *Postgres) DB() *sql.DB {
	return p.db
}

func (p *Postgres) Close() error {
	return p.db.Close()
}

// Query runs the select statement s.
func (p *Postgres) Query(ctx context.Context, s *Select) (*sql.Rows, error) {
	return s.Query(ctx, p.db)
}

// TableColumns returns a column for every column of the public table, in table order,
// titled by Caption.
func (p *Postgres) TableColumns(ctx context.Context, table string) ([]orderkit.Column, error) {
	var names []string
	cache := p.columns
	if cache == nil {
		cache = cachekit.NewNoOpCache()
	}
	err := cache.GetGob(ctx, table, p.columnsTTL, &names, func() (interface{}, error) {
		names, err := p.columnNames(ctx, table)
		if err != nil || len(names) == 0 {
			return nil, err
		}
		return names, nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not load columns of %v: %w", table, err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("table not found: %v", table)
	}

	result := make([]orderkit.Column, 0, len(names))
	for _, name := range names {
		result = append(result, orderkit.Column{Key: name, Title: orderkit.Label(Caption(name))})
	}
	return result, nil
}

func (p *Postgres) columnNames(ctx context.Context, table string) ([]string, error) {
	q := NewSelect("column_name").
		From("information_schema.columns").
		Where(squirrel.Eq{"table_schema": "public", "table_name": table})
	q.OrderBy("ordinal_position", orderkit.Ascending)

	rows, err := q.Query(ctx, p.db)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Caption makes a column title from a column name, e.g. last_seen_ip becomes "Last seen IP".
func Caption(name string) string {
	parts := strings.Split(name, "_")
	for i, p := range parts {
		switch p {
		case "id", "ip", "url":
			parts[i] = strings.ToUpper(p)
		default:
			if i == 0 && p != "" {
				parts[i] = strings.ToUpper(p[0:1]) + p[1:]
			}
		}
	}
	return strings.Join(parts, " ")
}
