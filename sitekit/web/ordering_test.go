package web

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/orderkit/orderkit/langkit"
	"github.com/orderkit/orderkit/logkit"
	"github.com/orderkit/orderkit/orderkit"
	"github.com/orderkit/orderkit/testkit"
)

type recordingSink struct {
	calls []string
}

func (s *recordingSink) OrderBy(column string, direction orderkit.Direction) {
	s.calls = append(s.calls, column+" "+string(direction))
}

type upperTranslator struct{}

func (upperTranslator) Get(original string, formatArgs ...interface{}) string {
	return strings.ToUpper(original)
}

var userColumns = []orderkit.Column{
	{Key: "name", Title: orderkit.Label("Name")},
	{Key: "age", Title: orderkit.Label("Age")},
}

func getOrderingSite(t *testing.T) *Site {
	site := NewSite(true)
	testkit.NoError(t, site.Views.Add("users", `<h1>Users</h1>{{.Links}}<p>{{.Applied}}</p>`))

	site.AddRoute(Route{Path: "/users", Template: "users", Action: func(c *Context) {
		sink := &recordingSink{}
		c.Ordering().WithSink(sink).DeclareAll(userColumns, "name", orderkit.Ascending)

		links, err := c.RenderOrdering("")
		c.CheckErr(err)
		c.CheckErr(c.Render(map[string]interface{}{
			"Links":   links,
			"Applied": strings.Join(sink.calls, ","),
		}))
	}})
	site.AddRoute(Route{Path: "/users.json", Action: func(c *Context) {
		c.Ordering().DeclareAll(userColumns, "", "")
		c.CheckErr(c.JSON(c.Ordering().LinkViewModel()))
	}})
	site.AddRoute(Route{Path: "/same", Action: func(c *Context) {
		fmt.Fprint(c, c.Ordering() == c.Ordering())
	}})
	site.AddRoute(Route{Path: "/reset", Action: func(c *Context) {
		c.Redirect(c.Ordering().DisableURL())
	}})
	return site
}

func TestOrderingPage(t *testing.T) {
	session := NewTestSession(t, getOrderingSite(t))

	session.Get("/users?page=2&order=age&order_direction=DESC").
		AssertCode(200).
		AssertBodyContains(`<option value="/users?page=2">Default</option>`).
		AssertBodyContains(`<option value="/users?page=2&amp;order=age&amp;order_direction=DESC" selected>Age ↓</option>`).
		AssertBodyContains(`<option value="/users?page=2&amp;order=name&amp;order_direction=ASC">Name ↑</option>`).
		AssertBodyContains(`<p>age DESC</p>`)

	// the default order applies without parameters
	session.Get("/users").
		AssertBodyContains(`<option value="/users?order=name&amp;order_direction=ASC" selected>Name ↑</option>`).
		AssertBodyContains(`<p>name ASC</p>`)

	session.Get("/same").AssertBodyEquals("true")
	session.Get("/reset?order=age&order_direction=ASC&q=x").AssertCode(302)
}

func TestOrderingCurrentURL(t *testing.T) {
	session := NewTestSession(t, getOrderingSite(t))

	req, err := http.NewRequest("GET", "/users.json?order=age", nil)
	testkit.NoError(t, err)
	req.Host = "example.com"
	req.Header.Set("X-Forwarded-Proto", "https")

	session.Request(req).
		AssertBodyContains(`"DisableAction":"https://example.com/users.json"`).
		AssertBodyContains(`"Key":"age"`).
		AssertBodyContains(`"Active":"ASC"`)
}

func TestOrderingSiteConfig(t *testing.T) {
	site := getOrderingSite(t)
	site.Ordering.OrderParam = "sort"
	site.Ordering.DirectionParam = "dir"
	site.Ordering.View = "compact"
	site.Translations = func(c *Context) orderkit.Translator { return upperTranslator{} }
	testkit.NoError(t, site.Views.Add("compact", `<a href="{{.DisableAction}}">{{.DisableTitle}}</a>{{range .Orders}}<a href="{{.DescURL}}">{{.Title}}</a>{{end}}`))

	session := NewTestSession(t, site)
	session.Get("/users?sort=age&dir=desc").
		AssertBodyContains(`<a href="/users">DEFAULT</a>`).
		AssertBodyContains(`<a href="/users?sort=age&amp;dir=DESC">Age</a>`).
		AssertBodyContains(`<p>age DESC</p>`)
}

func TestOrderingAction(t *testing.T) {
	site := NewSite(true)
	site.Ordering.DefaultDirection = "DESC"
	session := NewTestSession(t, site)

	req, _ := http.NewRequest("GET", "/list?order=name", nil)
	session.Action(func(c *Context) {
		o := c.Ordering()
		o.Declare("name", orderkit.Label("Name"), false, "")
		testkit.Equal(t, o.Order("name").Active, orderkit.Descending)
		testkit.Equal(t, c.CurrentURL(), "/list")
		testkit.Equal(t, c.Form.String("order", ""), "name")
		testkit.Equal(t, c.Form.Int("page", 1, 10, 1), 1)
	}, req)
}

func TestOrderingTranslations(t *testing.T) {
	module, err := langkit.NewModule("../../langkit/testmodule", false)
	testkit.NoError(t, err)

	site := getOrderingSite(t)
	site.Translations = func(c *Context) orderkit.Translator {
		return module.FindAccepted(c.Request.Header.Get("Accept-Language"))
	}
	session := NewTestSession(t, site)

	req, err := http.NewRequest("GET", "/users", nil)
	testkit.NoError(t, err)
	req.Header.Set("Accept-Language", "da-DK,da;q=0.9,en;q=0.8")
	session.Request(req).AssertBodyContains(`<option value="/users">Standard</option>`)

	session.Get("/users").AssertBodyContains(`<option value="/users">Default</option>`)
}

func TestOrderingMalformedQuery(t *testing.T) {
	var messages []string
	site := getOrderingSite(t)
	site.BufferedEventsFilter = func(events []logkit.Event) []logkit.Event {
		for _, e := range events {
			messages = append(messages, e.Message)
		}
		return nil
	}
	session := NewTestSession(t, site)

	session.Get("/users.json?order=age&bad=%zz").
		AssertCode(200).
		AssertBodyContains(`"Key":"age"`).
		AssertBodyContains(`"Active":"ASC"`)
	testkit.Contains(t, strings.Join(messages, "\n"), "invalid request parameters")
}
