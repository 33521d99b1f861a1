package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/orderkit/orderkit/dbkit"
	"github.com/orderkit/orderkit/logkit"
	"github.com/orderkit/orderkit/orderkit"
	"github.com/orderkit/orderkit/testkit"
)

func execute(t *testing.T, args ...string) (string, error) {
	var out bytes.Buffer
	cmd := NewOrderkitCommand()
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseColumn(t *testing.T) {
	c, err := parseColumn("name=Name")
	testkit.NoError(t, err)
	testkit.Equal(t, c.Key, "name")
	testkit.Equal(t, c.Title, orderkit.Label("Name"))

	c, err = parseColumn("created=Oldest|Newest")
	testkit.NoError(t, err)
	testkit.Equal(t, c.Title, orderkit.Labels("Oldest", "Newest"))

	c, err = parseColumn("last_seen")
	testkit.NoError(t, err)
	testkit.Equal(t, c.Title.String(), "Last seen")

	_, err = parseColumn("=Name")
	testkit.Error(t, err)
}

func TestColumnFlag(t *testing.T) {
	testkit.Equal(t, columnFlag(orderkit.Column{Key: "last_seen", Title: orderkit.Label("Last seen")}), "--column 'last_seen=Last seen'")
	testkit.Equal(t, columnFlag(orderkit.Column{Key: "owner's", Title: orderkit.Label("Owner's")}), `--column 'owner'\''s=Owner'\''s'`)

	c, err := parseColumn("owner's=Owner's")
	testkit.NoError(t, err)
	testkit.Equal(t, columnFlag(c), `--column 'owner'\''s=Owner'\''s'`)
}

func TestLinksCommand(t *testing.T) {
	out, err := execute(t, "links", "/users?order=age&order_direction=DESC", "--column", "name=Name", "--column", "age=Age")
	testkit.NoError(t, err)
	testkit.Contains(t, out, `<option value="/users?order=age&amp;order_direction=DESC" selected>Age ↓</option>`)
	testkit.NotContains(t, out, "orderkit.links")

	out, err = execute(t, "links", "/users?page=2", "--column", "name", "--default", "name", "--direction", "desc", "--json")
	testkit.NoError(t, err)
	testkit.Contains(t, out, `"DisableAction": "/users?page=2"`)
	testkit.Contains(t, out, `"AscURL": "/users?page=2&order=name&order_direction=ASC"`)
	testkit.Contains(t, out, `"Active": "DESC"`)

	_, err = execute(t, "links", "/users", "--direction", "up")
	testkit.Error(t, err)
}

func TestLinksCommandViews(t *testing.T) {
	dir := t.TempDir()
	testkit.NoError(t, os.MkdirAll(filepath.Join(dir, "admin"), 0755))
	testkit.NoError(t, os.WriteFile(filepath.Join(dir, "admin", "list.tmpl"), []byte(`{{range .Orders}}[{{.Key}}]{{end}}`), 0644))

	out, err := execute(t, "links", "/users", "--column", "name", "--column", "age", "--views", dir, "--view", "admin::list")
	testkit.NoError(t, err)
	testkit.Equal(t, out, "[name][age]\n")
}

func TestLinksCommandTranslations(t *testing.T) {
	out, err := execute(t, "links", "/users", "--column", "name=Name", "--translations", "../../langkit/testmodule", "--locale", "da_DK")
	testkit.NoError(t, err)
	testkit.Contains(t, out, `<option value="/users">Standard</option>`)
}

func TestSQLCommand(t *testing.T) {
	out, err := execute(t, "sql", "/users?order=name&order_direction=DESC", "--table", "users", "--select", "id,name", "--column", "name", "--column", "age")
	testkit.NoError(t, err)
	testkit.Equal(t, out, "SELECT id, name FROM users ORDER BY \"name\" DESC\n")

	out, err = execute(t, "sql", "/users?sort=age", "--table", "users", "--order-param", "sort", "--column", "name", "--column", "age", "-v")
	testkit.NoError(t, err)
	testkit.Contains(t, out, "SELECT * FROM users ORDER BY \"age\" ASC\n")
	testkit.Contains(t, out, "orderkit.sql: ordering query (order: age, direction: ASC)")

	_, err = execute(t, "sql", "/users")
	testkit.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orderkit.toml")
	testkit.NoError(t, os.WriteFile(path, []byte("order_param = \"sort\"\ndirection_param = \"dir\"\n"), 0644))

	out, err := execute(t, "sql", "/users?sort=name&dir=desc", "--table", "users", "--column", "name", "--config", path)
	testkit.NoError(t, err)
	testkit.Equal(t, out, "SELECT * FROM users ORDER BY \"name\" DESC\n")

	// flags win over the file
	out, err = execute(t, "sql", "/users?order=name", "--table", "users", "--column", "name", "--config", path, "--order-param", "order")
	testkit.NoError(t, err)
	testkit.Equal(t, out, "SELECT * FROM users ORDER BY \"name\" ASC\n")

	_, err = execute(t, "sql", "/users", "--table", "users", "--config", filepath.Join(t.TempDir(), "missing.toml"))
	testkit.Error(t, err)
}

func TestOpenPostgresScheme(t *testing.T) {
	_, err := openPostgres("mysql://localhost/db")
	testkit.Error(t, err)
}

func TestTableView(t *testing.T) {
	site, err := newTableSite(&dbkit.Postgres{}, &options{})
	testkit.NoError(t, err)

	long := strings.Repeat("word ", 30)
	html, err := site.Views.RenderView("table", tablePage{
		Table:   "users",
		Columns: []orderkit.Column{{Key: "bio", Title: orderkit.Label("Bio")}},
		Rows:    [][]string{{long}},
	})
	testkit.NoError(t, err)
	testkit.Contains(t, string(html), "<th>Bio</th>")
	testkit.Contains(t, string(html), strings.Repeat("word ", 14)+"word...")
}

func TestListen(t *testing.T) {
	site, err := newTableSite(&dbkit.Postgres{}, &options{})
	testkit.NoError(t, err)

	var out bytes.Buffer
	ctx, done := logkit.OperationWithOutput(context.Background(), "orderkit.serve", logkit.NewWriterOutput(&out, false))
	defer done()

	testkit.Error(t, listen(ctx, site, "127.0.0.1:-1"))
	testkit.Contains(t, out.String(), "orderkit.serve: listening (addr: 127.0.0.1:-1)")
}
