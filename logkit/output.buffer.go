package logkit

import "sync"

// BufferedEventsFilter decides which of the buffered events of an operation get passed on.
type BufferedEventsFilter func([]Event) []Event

type outputBuffer struct {
	sync.Mutex
	parent   Output
	buffered []Event
	filter   BufferedEventsFilter
}

// NewBufferedOutput holds back all events of an operation until it completes,
// then passes the (filtered) events on to parent.
func NewBufferedOutput(parent Output, filter BufferedEventsFilter) Output {
	return &outputBuffer{
		parent: parent,
		filter: filter,
	}
}

func (d *outputBuffer) Event(evt Event) {
	d.Lock()
	d.buffered = append(d.buffered, evt)

	root := evt.Type == EventTypeCompleteOperation && evt.Operation.Output == d && (evt.Operation.Parent == nil || evt.Operation.Parent.Output != d)
	if !root {
		d.Unlock()
		return
	}

	events := d.buffered
	d.buffered = nil
	d.Unlock()

	if d.filter != nil {
		events = d.filter(events)
	}
	for _, e := range events {
		d.parent.Event(e)
	}
}
