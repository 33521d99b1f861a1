package dbkit

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/orderkit/orderkit/cachekit"
	"github.com/orderkit/orderkit/envkit"
	"github.com/orderkit/orderkit/orderkit"
	"github.com/orderkit/orderkit/testkit"
)

var userColumns = []orderkit.Column{
	{Key: "name", Title: orderkit.Label("Name")},
	{Key: "created", Title: orderkit.Labels("Oldest", "Newest")},
}

func orderingFor(t *testing.T, rawurl string, sink orderkit.Sink) *orderkit.Ordering {
	r, err := orderkit.NewURLRequest(rawurl)
	testkit.NoError(t, err)
	return orderkit.New(context.Background(), r).WithSink(sink)
}

func TestSelectOrdered(t *testing.T) {
	q := NewSelect("id", "name").From("users").Where(squirrel.Eq{"deleted": false}).Limit(10)
	orderingFor(t, "/users?order=name&order_direction=DESC", q).DeclareAll(userColumns, "created", orderkit.Ascending)

	sql, args, err := q.ToSql()
	testkit.NoError(t, err)
	testkit.Equal(t, sql, `SELECT id, name FROM users WHERE deleted = $1 ORDER BY "name" DESC LIMIT 10`)
	testkit.Equal(t, args, []interface{}{false})
	testkit.Assert(t, q.Ordered())
}

func TestSelectDefaultOrder(t *testing.T) {
	q := NewSelect("*").From("users").OrderColumns(map[string]string{
		"name":    "users.display_name",
		"created": "users.created_at",
	})
	orderingFor(t, "/users", q).DeclareAll(userColumns, "created", orderkit.Descending)

	testkit.Equal(t, q.String(), `SELECT * FROM users ORDER BY "users"."created_at" DESC`)
}

func TestSelectUnordered(t *testing.T) {
	q := NewSelect("*").From("users")
	orderingFor(t, "/users", q).DeclareAll(userColumns, "", "")

	testkit.Equal(t, q.Ordered(), false)
	testkit.Equal(t, q.String(), "SELECT * FROM users")
}

func TestSelectIgnoresBadInput(t *testing.T) {
	q := NewSelect("*").From("users").OrderColumns(map[string]string{"name": "name"})
	q.OrderBy("password", orderkit.Ascending)
	q.OrderBy("name", orderkit.Direction("; drop table users"))
	testkit.Equal(t, q.Ordered(), false)

	q = NewSelect("*").From("users")
	q.OrderBy(`na"me`, orderkit.Ascending)
	testkit.Equal(t, q.String(), `SELECT * FROM users ORDER BY "na""me" ASC`)
}

func TestQuoteColumn(t *testing.T) {
	testkit.Equal(t, QuoteColumn("name"), `"name"`)
	testkit.Equal(t, QuoteColumn("public.users.name"), `"public"."users"."name"`)
}

func TestCaption(t *testing.T) {
	testkit.Equal(t, Caption("display_name"), "Display name")
	testkit.Equal(t, Caption("id"), "ID")
	testkit.Equal(t, Caption("last_seen_ip"), "Last seen IP")
	testkit.Equal(t, Caption("avatar_url"), "Avatar URL")
}

type user struct {
	Name      string
	Age       int
	Score     float64
	Admin     bool
	CreatedAt time.Time
	Email     *string
}

func names(users []user) []string {
	result := make([]string, 0, len(users))
	for _, u := range users {
		result = append(result, u.Name)
	}
	return result
}

func TestSorter(t *testing.T) {
	now := time.Now()
	email := "x@example.com"
	users := []user{
		{Name: "carol", Age: 30, CreatedAt: now, Email: &email},
		{Name: "alice", Age: 25, CreatedAt: now.Add(-time.Hour)},
		{Name: "bob", Age: 30, CreatedAt: now.Add(time.Hour), Admin: true},
	}

	s := &Sorter{}
	orderingFor(t, "/users?order=name", s).DeclareAll(userColumns, "", "")
	testkit.NoError(t, s.Sort(users))
	testkit.Equal(t, names(users), []string{"alice", "bob", "carol"})

	s = &Sorter{}
	orderingFor(t, "/users?order=created&order_direction=DESC", s).DeclareAll(userColumns, "", "")
	testkit.Error(t, s.Sort(users))
	s.Fields = map[string]string{"created": "CreatedAt"}
	testkit.NoError(t, s.Sort(users))
	testkit.Equal(t, names(users), []string{"bob", "carol", "alice"})

	// equal values fall through to the next key
	s = &Sorter{}
	s.OrderBy("age", orderkit.Descending)
	s.OrderBy("name", orderkit.Ascending)
	testkit.NoError(t, s.Sort(users))
	testkit.Equal(t, names(users), []string{"bob", "carol", "alice"})

	s = &Sorter{}
	s.OrderBy("email", orderkit.Ascending)
	s.OrderBy("admin", orderkit.Descending)
	testkit.NoError(t, s.Sort(users))
	testkit.Equal(t, names(users), []string{"bob", "alice", "carol"})

	// pointers to structs
	pointers := []*user{&users[0], &users[1], &users[2]}
	s = &Sorter{}
	s.OrderBy("created_at", orderkit.Ascending)
	testkit.NoError(t, s.Sort(pointers))
	testkit.Equal(t, pointers[0].Name, "alice")
}

func TestSorterErrors(t *testing.T) {
	s := &Sorter{}
	s.OrderBy("missing", orderkit.Ascending)
	testkit.Error(t, s.Sort([]user{{}, {}}))
	testkit.Error(t, s.Sort("not a slice"))
	testkit.Error(t, s.Sort([]int{2, 1}))

	s = &Sorter{}
	s.OrderBy("name", orderkit.Direction("sideways"))
	testkit.NoError(t, s.Sort([]int{2, 1}))

	// nil elements are rejected before sorting
	s = &Sorter{}
	s.OrderBy("name", orderkit.Ascending)
	users := []*user{{Name: "b"}, nil, {Name: "a"}}
	testkit.Error(t, s.Sort(users))
	testkit.Equal(t, users[0].Name, "b")

	// unexported fields can't be read
	type note struct {
		Title   string
		created time.Time
	}
	s = &Sorter{}
	s.OrderBy("created", orderkit.Ascending)
	testkit.Error(t, s.Sort([]note{{created: time.Now()}, {created: time.Now().Add(-time.Hour)}}))

	s = &Sorter{Fields: map[string]string{"created": "created"}}
	s.OrderBy("created", orderkit.Ascending)
	testkit.Error(t, s.Sort([]note{{created: time.Now()}, {created: time.Now().Add(-time.Hour)}}))
}

func TestPostgres(t *testing.T) {
	// to run against a database, e.g.: ORDERKIT_TEST_POSTGRES=postgres://root@127.0.0.1:26257/orderkit?sslmode=disable
	dsn := envkit.String("ORDERKIT_TEST_POSTGRES", "")
	if dsn == "" {
		t.Skip("ORDERKIT_TEST_POSTGRES not set")
	}

	u, err := url.Parse(dsn)
	testkit.NoError(t, err)
	p, err := OpenPostgres(u)
	testkit.NoError(t, err)
	defer p.Close()

	ctx := context.Background()
	_, err = p.DB().ExecContext(ctx, "drop table if exists orderkit_users")
	testkit.NoError(t, err)
	_, err = p.DB().ExecContext(ctx, "create table orderkit_users (id int primary key, display_name text not null)")
	testkit.NoError(t, err)
	_, err = p.DB().ExecContext(ctx, "insert into orderkit_users values (1, 'bob'), (2, 'alice'), (3, 'carol')")
	testkit.NoError(t, err)

	columns, err := p.TableColumns(ctx, "orderkit_users")
	testkit.NoError(t, err)
	testkit.Equal(t, len(columns), 2)
	testkit.Equal(t, columns[1].Key, "display_name")
	testkit.Equal(t, columns[1].Title.String(), "Display name")

	q := NewSelect("display_name").From("orderkit_users")
	orderingFor(t, "/users?order=display_name&order_direction=DESC", q).DeclareAll(columns, "id", orderkit.Ascending)
	rows, err := p.Query(ctx, q)
	testkit.NoError(t, err)
	defer rows.Close()

	var result []string
	for rows.Next() {
		var name string
		testkit.NoError(t, rows.Scan(&name))
		result = append(result, name)
	}
	testkit.NoError(t, rows.Err())
	testkit.Equal(t, result, []string{"carol", "bob", "alice"})

	_, err = p.TableColumns(ctx, "orderkit_missing")
	testkit.Error(t, err)
}

func TestCachedColumns(t *testing.T) {
	ctx := context.Background()
	cache := cachekit.NewMemoryCache(1024 * 1024).GetCache("columns")
	cache.Set(ctx, "users", nil, time.Minute)

	var names []string
	err := cache.GetGob(ctx, "accounts", time.Minute, &names, func() (interface{}, error) {
		return []string{"id", "last_seen_ip"}, nil
	})
	testkit.NoError(t, err)

	// served from the cache, the database is never touched
	p := &Postgres{}
	p.CacheColumns(cache, time.Minute)
	columns, err := p.TableColumns(ctx, "accounts")
	testkit.NoError(t, err)
	testkit.Equal(t, columns, []orderkit.Column{
		{Key: "id", Title: orderkit.Label("ID")},
		{Key: "last_seen_ip", Title: orderkit.Label("Last seen IP")},
	})

	_, err = p.TableColumns(ctx, "users")
	testkit.Error(t, err)
}
