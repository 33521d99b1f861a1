// Package orderkit builds the sort links of list views from the current request, and applies
// the selected order to a query.
//
// An Ordering is created per request:
//
//	ordering := orderkit.New(ctx, request).WithSink(query)
//	ordering.DeclareAll([]orderkit.Column{
//		{Key: "name", Title: orderkit.Label("Name")},
//		{Key: "created", Title: orderkit.Labels("Newest", "Oldest")},
//	}, "created", orderkit.Descending)
//	html, err := ordering.Links(nil, "")
package orderkit

import (
	"context"

	"github.com/orderkit/orderkit/logkit"
)

const (
	// DefaultOrderName is the default query parameter holding the order.
	DefaultOrderName = "order"
	// DefaultDirectionName is the default query parameter holding the direction.
	DefaultDirectionName = "order_direction"
)

// Sink receives the selected order, typically a query builder.
type Sink interface {
	OrderBy(column string, direction Direction)
}

// Ordering holds the sortable columns of one list view, and knows which one the current
// request asks for. It reads request state into its own fields, so it must not be shared
// between requests.
type Ordering struct {
	ctx        context.Context
	request    Request
	sink       Sink
	translator Translator

	orderName        string
	directionName    string
	currentOrder     string
	defaultOrder     string
	defaultDirection Direction
	baseURL          string
	viewName         string
	locale           string

	keys   []string
	orders map[string]*Spec
}

// New creates an Ordering for request. ctx is used for logging.
func New(ctx context.Context, request Request) *Ordering {
	return &Ordering{
		ctx:              ctx,
		request:          request,
		orderName:        DefaultOrderName,
		directionName:    DefaultDirectionName,
		defaultDirection: Ascending,
		orders:           make(map[string]*Spec),
	}
}

// Declare adds the sortable column key. If key is the current order it is marked active,
// and the attached sink (if any) is ordered by it.
// Declaring a key again replaces the previous declaration in place.
func (o *Ordering) Declare(key string, title Title, isDefault bool, defaultDirection Direction) {
	if isDefault {
		o.defaultOrder = key
	}
	if defaultDirection != "" {
		o.defaultDirection = defaultDirection
	}

	var active Direction
	if current := o.CurrentOrder(); current != "" && key == current {
		active = o.apply(key, o.CurrentDirection())
	}

	ascTitle, descTitle := title.captions()
	spec := &Spec{
		Key:       key,
		Title:     title.String(),
		AscTitle:  ascTitle,
		AscURL:    o.AscURL(key),
		DescTitle: descTitle,
		DescURL:   o.DescURL(key),
		Active:    active,
	}

	if _, found := o.orders[key]; !found {
		o.keys = append(o.keys, key)
	}
	o.orders[key] = spec
}

// DeclareAll declares columns in order. The column with the key defaultOrder becomes the default order.
func (o *Ordering) DeclareAll(columns []Column, defaultOrder string, defaultDirection Direction) *Ordering {
	for _, c := range columns {
		o.Declare(c.Key, c.Title, defaultOrder != "" && c.Key == defaultOrder, defaultDirection)
	}
	return o
}

// apply orders the sink by column and returns the direction the column is active in.
// An invalid direction leaves the column inactive.
func (o *Ordering) apply(column string, direction Direction) Direction {
	valid, ok := ParseDirection(string(direction))
	if !ok {
		logkit.Warn(o.ctx, "ordering skipped, invalid direction", logkit.String("order", column), logkit.String("direction", string(direction)))
		return ""
	}
	if o.sink == nil {
		return valid
	}

	logkit.Debug(o.ctx, "ordering query", logkit.String("order", column), logkit.Stringer("direction", valid))
	o.sink.OrderBy(column, valid)
	return valid
}

// CurrentOrder returns the order asked for by the request, or the default order.
// The first non-empty result is kept for the lifetime of the Ordering.
func (o *Ordering) CurrentOrder() string {
	if o.currentOrder != "" {
		return o.currentOrder
	}

	current := o.defaultOrder
	if values, found := o.request.AllParameters()[o.orderName]; found && len(values) > 0 {
		current = values[0]
	}
	o.currentOrder = current
	return current
}

// CurrentDirection returns the direction asked for by the request, or the default direction.
// Unlike CurrentOrder it reads the request on every call.
func (o *Ordering) CurrentDirection() Direction {
	if values, found := o.request.AllParameters()[o.directionName]; found && len(values) > 0 {
		if direction, ok := ParseDirection(values[0]); ok {
			return direction
		}
		logkit.Debug(o.ctx, "invalid order direction, using default", logkit.String("direction", values[0]))
	}
	return o.defaultDirection
}

// AscURL returns the url that orders the list by key, ascending.
func (o *Ordering) AscURL(key string) string {
	return o.orderURL(key, Ascending)
}

// DescURL returns the url that orders the list by key, descending.
func (o *Ordering) DescURL(key string) string {
	return o.orderURL(key, Descending)
}

// DisableURL returns the current url without any order, which shows the list in its default order.
func (o *Ordering) DisableURL() string {
	params := copyValues(o.request.AllParameters())
	params.Del(o.orderName)
	params.Del(o.directionName)
	return joinURL(o.CurrentURL(), encodeQuery(params))
}

func (o *Ordering) orderURL(key string, direction Direction) string {
	params := copyValues(o.request.AllParameters())
	params.Set(o.orderName, key)
	params.Set(o.directionName, string(direction))
	return joinURL(o.CurrentURL(), encodeQuery(params, o.orderName, o.directionName))
}

// Orders returns the declared columns in declaration order.
func (o *Ordering) Orders() []*Spec {
	result := make([]*Spec, 0, len(o.keys))
	for _, key := range o.keys {
		result = append(result, o.orders[key])
	}
	return result
}

// Order returns the declared column key, or nil.
func (o *Ordering) Order(key string) *Spec {
	return o.orders[key]
}

func (o *Ordering) HasOrder(key string) bool {
	_, found := o.orders[key]
	return found
}

func (o *Ordering) RemoveOrder(key string) {
	if _, found := o.orders[key]; !found {
		return
	}
	delete(o.orders, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

// -------------------------------------

// WithSink attaches sink and returns the Ordering, for chaining.
func (o *Ordering) WithSink(sink Sink) *Ordering {
	o.SetSink(sink)
	return o
}

func (o *Ordering) SetSink(sink Sink) {
	o.sink = sink
}

func (o *Ordering) Sink() Sink {
	return o.sink
}

func (o *Ordering) HasSink() bool {
	return o.sink != nil
}

func (o *Ordering) SetOrderName(name string) {
	o.orderName = name
}

func (o *Ordering) OrderName() string {
	return o.orderName
}

func (o *Ordering) SetDirectionName(name string) {
	o.directionName = name
}

func (o *Ordering) DirectionName() string {
	return o.directionName
}

func (o *Ordering) SetDefaultOrder(key string) {
	o.defaultOrder = key
}

func (o *Ordering) DefaultOrder() string {
	return o.defaultOrder
}

func (o *Ordering) SetDefaultDirection(direction Direction) {
	o.defaultDirection = direction
}

func (o *Ordering) DefaultDirection() Direction {
	return o.defaultDirection
}

// SetBaseURL overrides the url of the request when building links.
func (o *Ordering) SetBaseURL(baseURL string) {
	o.baseURL = baseURL
}

// CurrentURL returns the base url, or the url of the request.
func (o *Ordering) CurrentURL() string {
	if o.baseURL != "" {
		return o.baseURL
	}
	return o.request.CurrentURL()
}

func (o *Ordering) SetViewName(name string) {
	o.viewName = name
}

// ViewName returns the configured view name, or DefaultView.
func (o *Ordering) ViewName() string {
	if o.viewName != "" {
		return o.viewName
	}
	return DefaultView
}

func (o *Ordering) SetLocale(locale string) {
	o.locale = locale
}

func (o *Ordering) Locale() string {
	return o.locale
}

func (o *Ordering) SetTranslator(translator Translator) {
	o.translator = translator
}

func (o *Ordering) Translator() Translator {
	return o.translator
}

func (o *Ordering) SetRequest(request Request) {
	o.request = request
}

func (o *Ordering) Request() Request {
	return o.request
}
