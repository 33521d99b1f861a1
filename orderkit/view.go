package orderkit

import (
	"bytes"
	"fmt"
	"html/template"
)

// DefaultView is the name of the built-in link list view.
const DefaultView = "ordering::list"

// Translator translates user facing captions.
type Translator interface {
	Get(original string, formatArgs ...interface{}) string
}

// ViewRenderer renders the named view with data.
type ViewRenderer interface {
	RenderView(name string, data interface{}) (template.HTML, error)
}

// LinkViewModel is the data handed to the link list view.
type LinkViewModel struct {
	Orders        []Spec
	DisableAction string
	DisableTitle  string
}

// ListTemplate renders a LinkViewModel as a select box that navigates on change.
const ListTemplate = `<select onchange="location = this.value;" class="form-control">` +
	`<option value="{{.DisableAction}}">{{.DisableTitle}}</option>` +
	`{{range .Orders}}` +
	`<option value="{{.AscURL}}"{{if .AscActive}} selected{{end}}>{{.AscTitle}}</option>` +
	`<option value="{{.DescURL}}"{{if .DescActive}} selected{{end}}>{{.DescTitle}}</option>` +
	`{{end}}` +
	`</select>`

var listTemplate = template.Must(template.New(DefaultView).Parse(ListTemplate))

// LinkViewModel returns the data for the link list view.
func (o *Ordering) LinkViewModel() LinkViewModel {
	orders := make([]Spec, 0, len(o.keys))
	for _, key := range o.keys {
		orders = append(orders, *o.orders[key])
	}
	return LinkViewModel{
		Orders:        orders,
		DisableAction: o.DisableURL(),
		DisableTitle:  o.translate("Default"),
	}
}

// Links renders the link list with the named view. An empty view uses ViewName().
// A nil renderer always uses the built-in list template.
func (o *Ordering) Links(renderer ViewRenderer, view string) (template.HTML, error) {
	if renderer == nil {
		return RenderList(o.LinkViewModel())
	}
	if view == "" {
		view = o.ViewName()
	}
	return renderer.RenderView(view, o.LinkViewModel())
}

// RenderList renders model with the built-in list template.
func RenderList(model LinkViewModel) (template.HTML, error) {
	var buf bytes.Buffer
	if err := listTemplate.Execute(&buf, model); err != nil {
		return "", fmt.Errorf("orderkit: render %v: %w", DefaultView, err)
	}
	return template.HTML(buf.String()), nil
}

func (o *Ordering) translate(caption string) string {
	if o.translator == nil {
		return caption
	}
	return o.translator.Get(caption)
}
