package main

import (
	"context"
	"database/sql"
	"html/template"
	"time"

	"github.com/orderkit/orderkit/cachekit"
	"github.com/orderkit/orderkit/dbkit"
	"github.com/orderkit/orderkit/langkit"
	"github.com/orderkit/orderkit/logkit"
	"github.com/orderkit/orderkit/orderkit"
	"github.com/orderkit/orderkit/sitekit/web"
	"github.com/orderkit/orderkit/textkit"
	"github.com/spf13/cobra"
)

const pageSize = 50

const tableView = `<!DOCTYPE html>
<html>
  <head><title>{{.Table}}</title></head>
  <body>
    <h1>{{.Table}}</h1>
    {{.Links}}
    <table>
      <thead><tr>{{range .Columns}}<th>{{.Title}}</th>{{end}}</tr></thead>
      <tbody>{{range .Rows}}<tr>{{range .}}<td title="{{.}}">{{shorten . 80 true}}</td>{{end}}</tr>{{end}}</tbody>
    </table>
  </body>
</html>`

type tablePage struct {
	Table   string
	Links   template.HTML
	Columns []orderkit.Column
	Rows    [][]string
}

func newServeCommand(opts *options) *cobra.Command {
	var addr string
	var columnsTTL time.Duration

	cmd := &cobra.Command{
		Use:     "serve DATABASE_URL",
		Short:   "Serves the tables of a postgres database as sortable lists at /<table>",
		Example: "orderkit serve postgres://user@host/db?sslmode=disable --addr :8080",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openPostgres(args[0])
			if err != nil {
				return err
			}
			defer db.Close()
			db.CacheColumns(cachekit.NewMemoryCache(1024*1024).GetCache("columns"), columnsTTL)

			site, err := newTableSite(db, opts)
			if err != nil {
				return err
			}

			return listen(cmd.Context(), site, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "address to listen on")
	cmd.Flags().DurationVar(&columnsTTL, "columns-ttl", time.Minute, "how long to cache the columns of a table, 0 keeps them forever")
	return cmd
}

func listen(ctx context.Context, site *web.Site, addr string) error {
	logkit.Info(ctx, "listening", logkit.String("addr", addr))
	return site.ListenAndServe(addr)
}

func newTableSite(db *dbkit.Postgres, opts *options) (*web.Site, error) {
	config, err := opts.config()
	if err != nil {
		return nil, err
	}
	direction, err := opts.defaultDirection()
	if err != nil {
		return nil, err
	}

	site := web.NewSite(false)
	site.Ordering = config
	site.BufferedEventsFilter = web.QuietPathsFilter("/favicon.ico")
	site.Views.EnableMinify()
	site.Views.SetFunc("shorten", textkit.Shorten)
	if err := site.Views.Add("table", tableView); err != nil {
		return nil, err
	}
	if opts.views != "" {
		if err := site.Views.AddDirectory(opts.views); err != nil {
			return nil, err
		}
	}

	if opts.translations != "" {
		module, err := langkit.NewModule(opts.translations, true)
		if err != nil {
			return nil, err
		}
		site.Translations = func(c *web.Context) orderkit.Translator {
			if config.Locale != "" {
				return module.FindTranslations(config.Locale)
			}
			return module.FindAccepted(c.Request.Header.Get("Accept-Language"))
		}
	}

	site.AddRoute(web.Route{Path: "/:table", Template: "table", Action: func(c *web.Context) {
		table := c.RouteArg("table")
		columns, err := db.TableColumns(c, table)
		if err != nil {
			logkit.Info(c, "unknown table", logkit.String("table", table), logkit.Err(err))
			c.NotFound()
			return
		}

		names := make([]string, 0, len(columns))
		for _, column := range columns {
			names = append(names, dbkit.QuoteColumn(column.Key))
		}
		page := c.Form.Int("page", 1, 1000000, 1)
		q := dbkit.NewSelect(names...).
			From(dbkit.QuoteColumn(table)).
			Limit(pageSize).
			Offset(uint64((page - 1) * pageSize))

		c.Ordering().WithSink(q).DeclareAll(columns, opts.defaultOrder, direction)

		rows, err := q.Query(c, db.DB())
		c.CheckErr(err)
		defer rows.Close()

		data := tablePage{Table: table, Columns: columns}
		for rows.Next() {
			values := make([]sql.NullString, len(columns))
			dest := make([]interface{}, len(columns))
			for i := range values {
				dest[i] = &values[i]
			}
			c.CheckErr(rows.Scan(dest...))

			row := make([]string, len(values))
			for i, v := range values {
				row[i] = v.String
			}
			data.Rows = append(data.Rows, row)
		}
		c.CheckErr(rows.Err())

		data.Links, err = c.RenderOrdering("")
		c.CheckErr(err)
		c.CheckErr(c.Render(data))
	}})

	return site, nil
}
