package orderkit

import (
	"net/url"
	"sort"
	"strings"
)

// Request gives read access to the current request.
type Request interface {
	// AllParameters returns the input parameters of the request. Callers may not modify the result.
	AllParameters() url.Values
	// CurrentURL returns the url of the request without the query string.
	CurrentURL() string
}

// URLRequest is a Request that never changes, built from a url.
type URLRequest struct {
	url    string
	params url.Values
}

// NewURLRequest parses rawurl into a URLRequest.
func NewURLRequest(rawurl string) (*URLRequest, error) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return nil, err
	}

	params := u.Query()
	u.RawQuery = ""
	u.ForceQuery = false
	u.Fragment = ""
	return &URLRequest{url: u.String(), params: params}, nil
}

func (r *URLRequest) AllParameters() url.Values {
	return r.params
}

func (r *URLRequest) CurrentURL() string {
	return r.url
}

// copyValues returns a copy of values that can be modified freely.
func copyValues(values url.Values) url.Values {
	c := make(url.Values, len(values))
	for k, v := range values {
		c[k] = append([]string(nil), v...)
	}
	return c
}

// encodeQuery writes params in key order, then each key of last in the given order.
// Keys of last are skipped in the first pass.
func encodeQuery(params url.Values, last ...string) string {
	skip := make(map[string]bool, len(last))
	for _, k := range last {
		skip[k] = true
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		if !skip[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range last {
		if _, found := params[k]; found {
			keys = append(keys, k)
		}
	}

	var sb strings.Builder
	for _, k := range keys {
		for _, v := range params[k] {
			if sb.Len() > 0 {
				sb.WriteByte('&')
			}
			sb.WriteString(url.QueryEscape(k))
			sb.WriteByte('=')
			sb.WriteString(url.QueryEscape(v))
		}
	}
	return sb.String()
}

func joinURL(base string, query string) string {
	if query == "" {
		return base
	}
	return base + "?" + query
}
