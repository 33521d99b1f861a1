package orderkit

import (
	"net/url"
	"testing"

	"github.com/orderkit/orderkit/testkit"
)

func TestNewURLRequest(t *testing.T) {
	r, err := NewURLRequest("https://example.com/users?page=2#top")
	testkit.NoError(t, err)
	testkit.Equal(t, r.CurrentURL(), "https://example.com/users")
	testkit.Equal(t, r.AllParameters().Get("page"), "2")

	_, err = NewURLRequest("http://[::1")
	testkit.Error(t, err)
}

func TestEncodeQuery(t *testing.T) {
	params := url.Values{
		"b":     {"2"},
		"a":     {"x y", "z&w"},
		"order": {"name"},
	}
	testkit.Equal(t, encodeQuery(params), "a=x+y&a=z%26w&b=2&order=name")
	testkit.Equal(t, encodeQuery(params, "order", "missing"), "a=x+y&a=z%26w&b=2&order=name")
	testkit.Equal(t, encodeQuery(params, "a"), "b=2&order=name&a=x+y&a=z%26w")
	testkit.Equal(t, encodeQuery(url.Values{}), "")

	testkit.Equal(t, joinURL("/users", ""), "/users")
	testkit.Equal(t, joinURL("/users", "a=1"), "/users?a=1")
}

func TestParseDirection(t *testing.T) {
	d, ok := ParseDirection(" desc ")
	testkit.Assert(t, ok)
	testkit.Equal(t, d, Descending)
	testkit.Equal(t, d.Reverse(), Ascending)

	_, ok = ParseDirection("")
	testkit.Equal(t, ok, false)
}
