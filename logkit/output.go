package logkit

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"time"
)

const maxStringPrintLength = 30

var (
	termReset   = []byte("\033[0;5;0m")
	termBold    = []byte("\033[1m")
	termNotBold = []byte("\033[0m")
	termRed     = []byte("\033[31;1m")
	termYellow  = []byte("\033[33m")
	termGray    = []byte("\033[90m")
)

type Output interface {
	Event(msg Event)
}

func PrintValues(w io.Writer, fields []Field) {
	for i, field := range fields {
		if i == 0 {
			io.WriteString(w, " (")
		} else {
			io.WriteString(w, ", ")
		}

		io.WriteString(w, field.Key)
		io.WriteString(w, ": ")
		PrintValue(w, field)
	}
	if len(fields) > 0 {
		io.WriteString(w, ")")
	}
}

func PrintValue(w io.Writer, field Field) {
	switch field.FieldType {
	case FieldTypeString:
		io.WriteString(w, field.Str)
	case FieldTypeInt64:
		io.WriteString(w, strconv.FormatInt(field.Integer, 10))
	case FieldTypeBytes:
		b := field.Value.([]byte)
		if hex.EncodedLen(len(b)) > maxStringPrintLength {
			io.WriteString(w, hex.EncodeToString(b[:maxStringPrintLength/2]))
			io.WriteString(w, "...")
		} else {
			io.WriteString(w, hex.EncodeToString(b))
		}
	case FieldTypeStringer:
		io.WriteString(w, field.Value.(fmt.Stringer).String())
	case FieldTypeDuration:
		io.WriteString(w, time.Duration(field.Integer).String())
	case FieldTypeBool:
		if field.Integer == 1 {
			io.WriteString(w, "true")
		} else {
			io.WriteString(w, "false")
		}
	case FieldTypeTime, FieldTypeErr, FieldTypeInterface:
		fmt.Fprintf(w, "%v", field.Value)
	default:
		panic(fmt.Sprintf("unknown field type: %v", field.FieldType))
	}
}

func colorOutput(w io.Writer, t EventType) {
	switch t {
	case EventTypeDebug:
		w.Write(termGray)
	case EventTypeWarn:
		w.Write(termYellow)
	case EventTypeError:
		w.Write(termRed)
	}
}
