package web

import (
	"bytes"
	"testing"

	"github.com/orderkit/orderkit/orderkit"
	"github.com/orderkit/orderkit/testkit"
)

func TestViews(t *testing.T) {
	v := NewViews()
	testkit.Assert(t, v.Has(orderkit.DefaultView))

	testkit.NoError(t, v.AddDirectory("testviews"))
	testkit.Assert(t, v.Has("ordering::compact"))
	testkit.Assert(t, v.Has("page"))
	testkit.Equal(t, v.Has("notes"), false)

	model := orderkit.LinkViewModel{Orders: []orderkit.Spec{{Key: "name", Title: "Name"}}}
	html, err := v.RenderView("ordering::compact", model)
	testkit.NoError(t, err)
	testkit.Contains(t, string(html), "<li>name</li>")

	var buf bytes.Buffer
	testkit.NoError(t, v.Render(&buf, "page", "<b>"))
	testkit.Equal(t, buf.String(), "<p>&lt;b&gt;</p>\n")

	_, err = v.RenderView("unknown", nil)
	testkit.Error(t, err)

	testkit.NoError(t, v.Add("broken", "{{if}}"))
	_, err = v.RenderView("broken", nil)
	testkit.Error(t, err)
}

func TestViewsMinify(t *testing.T) {
	v := NewViews()
	v.EnableMinify()
	testkit.NoError(t, v.AddFile("compact", "testviews/ordering/compact.tmpl"))

	html, err := v.RenderView("compact", orderkit.LinkViewModel{Orders: []orderkit.Spec{{Title: "Age"}, {Title: "Name"}}})
	testkit.NoError(t, err)
	testkit.NotContains(t, string(html), "\n")
	testkit.Contains(t, string(html), "<li>age</li>")
	testkit.Contains(t, string(html), "<li>name</li>")
}

func TestViewsFunc(t *testing.T) {
	v := NewViews()
	testkit.NoError(t, v.Add("shout", `{{shout .}}`))
	v.SetFunc("shout", func(s string) string { return s + "!" })

	html, err := v.RenderView("shout", "hi")
	testkit.NoError(t, err)
	testkit.Equal(t, string(html), "hi!")
}
