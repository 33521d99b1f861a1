package logkit

import (
	"io"
	"sync"
	"time"
)

// SlowOperation is the duration above which completed operations are reported.
var SlowOperation = time.Millisecond * 20

type WriterOutput struct {
	sync.Mutex
	output io.Writer
	colors bool
}

func NewWriterOutput(output io.Writer, terminalColors bool) Output {
	return &WriterOutput{output: output, colors: terminalColors}
}

func (d *WriterOutput) Event(evt Event) {
	d.Lock()
	defer d.Unlock()

	switch evt.Type {
	case EventTypeBeginOperation:
		d.writePrefix(evt.Operation)
		PrintValues(d.output, evt.Operation.Fields)
		io.WriteString(d.output, "\n")
	case EventTypeCompleteOperation:
		t := evt.Operation.End.Sub(evt.Operation.Start)
		if t > SlowOperation {
			d.writePrefix(evt.Operation)
			io.WriteString(d.output, " finished in ")
			io.WriteString(d.output, t.String())
			io.WriteString(d.output, "\n")
		}
	default:
		if d.colors {
			colorOutput(d.output, evt.Type)
		}
		d.writePrefix(evt.Operation)
		if d.colors {
			d.output.Write(termReset)
			colorOutput(d.output, evt.Type)
		}
		if evt.Operation.Parent != nil {
			io.WriteString(d.output, ": ")
		}
		io.WriteString(d.output, evt.Message)
		if d.colors {
			d.output.Write(termReset)
		}
		PrintValues(d.output, evt.Fields)
		io.WriteString(d.output, "\n")
	}
}

func (d *WriterOutput) writePrefix(operation *Context) {
	if d.colors {
		d.output.Write(termBold)
		d.writePath(operation)
		d.output.Write(termNotBold)
	} else {
		d.writePath(operation)
	}
}

func (d *WriterOutput) writePath(operation *Context) {
	if operation.Parent != nil && operation.Parent.Name != "" {
		d.writePath(operation.Parent)
		io.WriteString(d.output, "→")
	}
	io.WriteString(d.output, operation.Name)
}
