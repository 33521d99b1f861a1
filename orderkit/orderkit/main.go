package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/orderkit/orderkit/dbkit"
	"github.com/orderkit/orderkit/langkit"
	"github.com/orderkit/orderkit/logkit"
	"github.com/orderkit/orderkit/orderkit"
	"github.com/orderkit/orderkit/sitekit/web"
	"github.com/spf13/cobra"
)

func main() {
	cmd := NewOrderkitCommand()
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err.Error())
		os.Exit(-1)
	}
}

type options struct {
	configFile     string
	orderParam     string
	directionParam string
	locale         string
	translations   string
	views          string
	columns        []string
	defaultOrder   string
	direction      string
	verbose        bool
}

// NewOrderkitCommand builds the orderkit command tree.
func NewOrderkitCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "orderkit",
		Short: "Builds the sort links and ORDER BY clauses of list views",
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "path to a toml config file")
	flags.StringVar(&opts.orderParam, "order-param", "", "query parameter holding the order")
	flags.StringVar(&opts.directionParam, "direction-param", "", "query parameter holding the direction")
	flags.StringVar(&opts.locale, "locale", "", "locale of the captions")
	flags.StringVar(&opts.translations, "translations", "", "directory of <locale>.po files")
	flags.StringArrayVar(&opts.columns, "column", []string{}, "sortable column as key=Title or key=Ascending|Descending")
	flags.StringVar(&opts.defaultOrder, "default", "", "key of the default order")
	flags.StringVar(&opts.direction, "direction", "", "default direction, ASC or DESC")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log to stderr")

	cmd.AddCommand(newLinksCommand(opts))
	cmd.AddCommand(newSQLCommand(opts))
	cmd.AddCommand(newColumnsCommand(opts))
	cmd.AddCommand(newServeCommand(opts))
	return cmd
}

func newLinksCommand(opts *options) *cobra.Command {
	var asJSON bool
	var view string

	cmd := &cobra.Command{
		Use:     "links URL",
		Short:   "Prints the sort links of the list at URL",
		Example: "orderkit links 'https://example.com/users?order=name' --column name=Name --column age=Age",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, "orderkit.links", func(ctx context.Context) error {
				o, err := opts.ordering(ctx, args[0], nil)
				if err != nil {
					return err
				}

				if asJSON {
					enc := json.NewEncoder(cmd.OutOrStdout())
					enc.SetIndent("", "  ")
					enc.SetEscapeHTML(false)
					return enc.Encode(o.LinkViewModel())
				}

				var renderer orderkit.ViewRenderer
				if opts.views != "" {
					views := web.NewViews()
					if err := views.AddDirectory(opts.views); err != nil {
						return err
					}
					renderer = views
				}
				html, err := o.Links(renderer, view)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), html)
				return err
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the view model as json")
	cmd.Flags().StringVar(&view, "view", "", "name of the view to render")
	cmd.Flags().StringVar(&opts.views, "views", "", "directory of .tmpl views")
	return cmd
}

func newSQLCommand(opts *options) *cobra.Command {
	var table string
	var selectColumns []string

	cmd := &cobra.Command{
		Use:     "sql URL",
		Short:   "Prints the select statement for the list at URL",
		Example: "orderkit sql '/users?order=name&order_direction=DESC' --table users --column name=Name",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, "orderkit.sql", func(ctx context.Context) error {
				q := dbkit.NewSelect(selectColumns...).From(table)
				if _, err := opts.ordering(ctx, args[0], q); err != nil {
					return err
				}

				sql, _, err := q.ToSql()
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), sql)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&table, "table", "", "table to select from")
	cmd.Flags().StringSliceVar(&selectColumns, "select", []string{"*"}, "columns to select")
	cmd.MarkFlagRequired("table")
	return cmd
}

func newColumnsCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "columns DATABASE_URL TABLE",
		Short:   "Prints the columns of a postgres table as --column flags",
		Example: "orderkit columns postgres://user@host/db?sslmode=disable users",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, "orderkit.columns", func(ctx context.Context) error {
				db, err := openPostgres(args[0])
				if err != nil {
					return err
				}
				defer db.Close()

				columns, err := db.TableColumns(ctx, args[1])
				if err != nil {
					return err
				}
				for _, c := range columns {
					fmt.Fprintln(cmd.OutOrStdout(), columnFlag(c))
				}
				return nil
			})
		},
	}
}

// run runs f inside an operation that logs to stderr with --verbose.
func (opts *options) run(cmd *cobra.Command, name string, f func(ctx context.Context) error) error {
	var output logkit.Output = logkit.NewWriterOutput(cmd.ErrOrStderr(), false)
	if !opts.verbose {
		output = logkit.NewBufferedOutput(output, quiet)
	}

	ctx, done := logkit.OperationWithOutput(context.Background(), name, output)
	defer done()
	return f(ctx)
}

func quiet(events []logkit.Event) []logkit.Event {
	return nil
}

// config returns the settings from the config file, the environment and the flags, in that order.
func (opts *options) config() (orderkit.Config, error) {
	config := orderkit.DefaultConfig()
	if opts.configFile != "" {
		var err error
		if config, err = orderkit.LoadConfig(opts.configFile); err != nil {
			return config, err
		}
	}
	config = config.FromEnv()

	if opts.orderParam != "" {
		config.OrderParam = opts.orderParam
	}
	if opts.directionParam != "" {
		config.DirectionParam = opts.directionParam
	}
	if opts.locale != "" {
		config.Locale = opts.locale
	}
	return config, config.Validate()
}

func (opts *options) ordering(ctx context.Context, rawurl string, sink orderkit.Sink) (*orderkit.Ordering, error) {
	config, err := opts.config()
	if err != nil {
		return nil, err
	}

	columns, err := parseColumns(opts.columns)
	if err != nil {
		return nil, err
	}

	direction, err := opts.defaultDirection()
	if err != nil {
		return nil, err
	}

	r, err := orderkit.NewURLRequest(rawurl)
	if err != nil {
		return nil, err
	}

	o := orderkit.New(ctx, r)
	config.Apply(o)
	if opts.translations != "" {
		module, err := langkit.NewModule(opts.translations, false)
		if err != nil {
			return nil, err
		}
		o.SetTranslator(module.FindTranslations(o.Locale()))
	}
	if sink != nil {
		o.SetSink(sink)
	}

	return o.DeclareAll(columns, opts.defaultOrder, direction), nil
}

func (opts *options) defaultDirection() (orderkit.Direction, error) {
	if opts.direction == "" {
		return "", nil
	}
	d, ok := orderkit.ParseDirection(opts.direction)
	if !ok {
		return "", fmt.Errorf("invalid direction: %v", opts.direction)
	}
	return d, nil
}

func parseColumns(values []string) ([]orderkit.Column, error) {
	result := make([]orderkit.Column, 0, len(values))
	for _, value := range values {
		c, err := parseColumn(value)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, nil
}

// parseColumn reads "key", "key=Title" or "key=Ascending|Descending".
func parseColumn(value string) (orderkit.Column, error) {
	parts := strings.SplitN(value, "=", 2)
	key := strings.TrimSpace(parts[0])
	if key == "" {
		return orderkit.Column{}, fmt.Errorf("invalid column: %q", value)
	}
	if len(parts) == 1 {
		return orderkit.Column{Key: key, Title: orderkit.Label(dbkit.Caption(key))}, nil
	}

	if titles := strings.SplitN(parts[1], "|", 2); len(titles) == 2 {
		return orderkit.Column{Key: key, Title: orderkit.Labels(titles[0], titles[1])}, nil
	}
	return orderkit.Column{Key: key, Title: orderkit.Label(parts[1])}, nil
}

// columnFlag formats c as a shell quoted --column flag.
func columnFlag(c orderkit.Column) string {
	value := strings.ReplaceAll(c.Key+"="+c.Title.String(), "'", `'\''`)
	return "--column '" + value + "'"
}

func openPostgres(dsn string) (*dbkit.Postgres, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return nil, fmt.Errorf("unsupported database: %v", u.Scheme)
	}
	return dbkit.OpenPostgres(u)
}
