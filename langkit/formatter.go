package langkit

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
)

// formatters caches parsed formatters by their input text.
type formatters struct {
	sync.RWMutex
	m map[string]*formatter
}

func newFormatters() *formatters {
	return &formatters{m: make(map[string]*formatter)}
}

func (f *formatters) get(input string) *formatter {
	f.RLock()
	v, found := f.m[input]
	f.RUnlock()
	if !found {
		v = newFormatter(input)
		f.Lock()
		f.m[input] = v
		f.Unlock()
	}
	return v
}

const (
	segmentText    = -1
	segmentPlural  = 0
	segmentInvalid = -2
)

// segment is literal text, the plural count, or the n'th (1-based) format argument.
type segment struct {
	text   string
	arg    int
	format string
}

type formatter struct {
	original string
	segments []segment
}

var directiveRegexp = regexp.MustCompile(`\{([a-z0-9]+)(:([a-z0-9]+))?\}`)

func newFormatter(input string) *formatter {
	f := &formatter{original: input}
	cur := 0
	for _, m := range directiveRegexp.FindAllStringSubmatchIndex(input, -1) {
		if text := input[cur:m[0]]; text != "" {
			f.segments = append(f.segments, segment{text: text, arg: segmentText})
		}
		cur = m[1]

		name := input[m[2]:m[3]]
		s := segment{text: input[m[0]:m[1]], arg: segmentInvalid}
		if m[6] != -1 {
			s.format = input[m[6]:m[7]]
		}
		if name == "plural" {
			s.arg = segmentPlural
		} else if n, err := strconv.Atoi(name); err == nil && n > 0 {
			s.arg = n
		}
		f.segments = append(f.segments, s)
	}
	if text := input[cur:]; text != "" {
		f.segments = append(f.segments, segment{text: text, arg: segmentText})
	}
	return f
}

func (f *formatter) formatPlural(count int, args ...interface{}) string {
	var sb strings.Builder
	for _, s := range f.segments {
		switch {
		case s.arg == segmentText:
			sb.WriteString(s.text)
		case s.arg == segmentPlural:
			writeValue(&sb, count, s.format)
		case s.arg == segmentInvalid:
			sb.WriteString("[INVALID: " + s.text + "]")
		case s.arg > len(args):
			sb.WriteString(fmt.Sprintf("[INVALID: missing format arg {%v}]", s.arg))
		default:
			writeValue(&sb, args[s.arg-1], s.format)
		}
	}
	return sb.String()
}

func (f *formatter) format(args ...interface{}) string {
	return f.formatPlural(0, args...)
}

func writeValue(sb *strings.Builder, value interface{}, format string) {
	if format == "" {
		switch v := value.(type) {
		case int:
			sb.WriteString(strconv.Itoa(v))
			return
		case int64:
			sb.WriteString(strconv.FormatInt(v, 10))
			return
		case float64:
			sb.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
			return
		case string:
			sb.WriteString(v)
			return
		}
	}

	sb.WriteString(fmt.Sprintf("%v", value))
}
