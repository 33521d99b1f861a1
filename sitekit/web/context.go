package web

import (
	"encoding/json"
	"html/template"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/orderkit/orderkit/logkit"
	"github.com/orderkit/orderkit/orderkit"
)

const orderingDataKey = "web.ordering"

type Context struct {
	*logkit.Context
	Site    *Site
	Route   *Route
	params  httprouter.Params
	data    map[string]interface{}
	w       http.ResponseWriter
	Request *http.Request

	Form     formInputReader
	PostForm formInputReader
	Cookies  cookieInputReader
}

func CreateContext(ctx *logkit.Context, site *Site, route *Route, w http.ResponseWriter, req *http.Request, params httprouter.Params) *Context {
	return &Context{
		Context:  ctx,
		Site:     site,
		Route:    route,
		params:   params,
		w:        w,
		Request:  req,
		Form:     formInputReader{request: req, usePostForm: false},
		PostForm: formInputReader{request: req, usePostForm: true},
		Cookies:  cookieInputReader{request: req},
	}
}

func (c *Context) RemoveData(key string) {
	if c.data != nil {
		delete(c.data, key)
	}
}

func (c *Context) SetData(key string, value interface{}) {
	if c.data == nil {
		c.data = make(map[string]interface{})
	}

	c.data[key] = value
}

func (c *Context) GetData(key string) (interface{}, bool) {
	v, ok := c.data[key]
	return v, ok
}

func (c *Context) RouteArg(name string) string {
	return c.params.ByName(name)
}

func (c *Context) RouteArgInt64(name string) (int64, error) {
	return strconv.ParseInt(c.params.ByName(name), 10, 64)
}

// AllParameters returns the query and form parameters of the request. The body of a form
// post is read on the first call. Malformed pairs are skipped.
func (c *Context) AllParameters() url.Values {
	if err := c.Request.ParseForm(); err != nil {
		logkit.Debug(c, "invalid request parameters", logkit.Err(err))
	}
	return c.Request.Form
}

// CurrentURL returns the url of the request without the query string.
// The scheme follows TLS or the X-Forwarded-Proto header. Without a host only the path is returned.
func (c *Context) CurrentURL() string {
	if c.Request.Host == "" {
		return c.Request.URL.Path
	}

	scheme := "http"
	if c.Request.TLS != nil || c.Request.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	u := url.URL{Scheme: scheme, Host: c.Request.Host, Path: c.Request.URL.Path}
	return u.String()
}

// Ordering returns the ordering of this request. It is created on first use from Site.Ordering,
// and the same instance is returned for the rest of the request.
func (c *Context) Ordering() *orderkit.Ordering {
	if v, ok := c.GetData(orderingDataKey); ok {
		return v.(*orderkit.Ordering)
	}

	o := orderkit.New(c.Context, c)
	if c.Site != nil {
		c.Site.Ordering.Apply(o)
		if c.Site.Translations != nil {
			if translator := c.Site.Translations(c); translator != nil {
				o.SetTranslator(translator)
			}
		}
	}

	c.SetData(orderingDataKey, o)
	return o
}

// RenderOrdering renders the links of the request's ordering with the named view of the site.
func (c *Context) RenderOrdering(view string) (template.HTML, error) {
	var renderer orderkit.ViewRenderer
	if c.Site != nil && c.Site.Views != nil {
		renderer = c.Site.Views
	}
	return c.Ordering().Links(renderer, view)
}

func (c *Context) Header() http.Header {
	return c.w.Header()
}

func (c *Context) Write(data []byte) (int, error) {
	return c.w.Write(data)
}

func (c *Context) WriteString(value string) (int, error) {
	return io.WriteString(c.w, value)
}

func (c *Context) WriteHeader(statusCode int) {
	c.w.WriteHeader(statusCode)
}

func (c *Context) Render(data interface{}) error {
	return c.RenderTemplate(c.Route.Template, data)
}

func (c *Context) Cookie(name string) (*http.Cookie, error) {
	return c.Request.Cookie(name)
}

func (c *Context) JSON(data interface{}) error {
	bytes, err := json.Marshal(data)
	if err != nil {
		return err
	}

	c.Header().Set("Content-Type", "application/json")
	_, err = c.Write(bytes)
	return err
}

func (c *Context) RenderTemplate(view string, data interface{}) error {
	if c.Site.TemplateDataWrapper != nil {
		var err error
		data, err = c.Site.TemplateDataWrapper(c, data)
		if err != nil {
			return logkit.Error(c, "Site.TemplateDataWrapper error", logkit.Err(err))
		}
	}

	if err := c.Site.Views.Render(c.w, view, data); err != nil {
		return logkit.Error(c, "RenderTemplate error", logkit.Err(err), logkit.String("view", view))
	}
	return nil
}

func (c *Context) RedirectPermanent(urlStr string) {
	http.Redirect(c, c.Request, urlStr, 301)
}

func (c *Context) Redirect(urlStr string) {
	http.Redirect(c, c.Request, urlStr, 302)
}

func (c *Context) NotFound() {
	if c.Site.NotFound.Action != nil {
		c.w.WriteHeader(404)
		c.Site.runRoute(&c.Site.NotFound, c.w, c.Request, make(httprouter.Params, 0), true)
	} else {
		http.NotFound(c, c.Request)
	}
}

func (c *Context) CheckErr(err error) {
	if err != nil {
		panic(err.Error())
	}
}

func (c *Context) ServerError(err string, code int) {
	if c.Site.Development {
		logkit.Warn(c, "ServerError", logkit.String("err", err), logkit.Int("code", code))
	}
	if c.Site.ServerError.Action != nil {
		c.w.WriteHeader(code)
		c.Site.runRoute(&c.Site.ServerError, c.w, c.Request, make(httprouter.Params, 0), true)
	} else {
		http.Error(c, err, code)
	}
}
