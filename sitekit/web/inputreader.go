package web

import (
	"net/http"
	"strconv"
	"strings"
)

// InputReader makes it easy to read input
type InputReader interface {
	String(name string, fallback string) string
	Bool(name string, fallback bool) bool
	Int(name string, min, max, fallback int) int
}

type formInputReader struct {
	request     *http.Request
	usePostForm bool
}

func (f formInputReader) get(name string) string {
	f.request.ParseForm()
	if f.usePostForm {
		return f.request.PostForm.Get(name)
	}
	return f.request.Form.Get(name)
}

func (f formInputReader) String(name string, fallback string) string {
	return readString(f.get(name), fallback)
}

func (f formInputReader) Bool(name string, fallback bool) bool {
	return readBool(f.get(name), fallback)
}

func (f formInputReader) Int(name string, min, max, fallback int) int {
	return readInt(f.get(name), min, max, fallback)
}

type cookieInputReader struct {
	request *http.Request
}

func (f cookieInputReader) get(name string) string {
	if c, err := f.request.Cookie(name); err == nil && c != nil {
		return c.Value
	}

	return ""
}

func (f cookieInputReader) String(name string, fallback string) string {
	return readString(f.get(name), fallback)
}

func (f cookieInputReader) Bool(name string, fallback bool) bool {
	return readBool(f.get(name), fallback)
}

func (f cookieInputReader) Int(name string, min, max, fallback int) int {
	return readInt(f.get(name), min, max, fallback)
}

func readString(v string, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

func readBool(v string, fallback bool) bool {
	if v != "" {
		l := strings.ToLower(v)
		return l == "true" || l == "1" || l == "on" || l == "yes"
	}
	return fallback
}

func readInt(v string, min, max, fallback int) int {
	if v == "" {
		return fallback
	}

	i, err := strconv.ParseInt(v, 10, 0)
	if err != nil {
		return fallback
	}

	if iInt := int(i); iInt >= min && iInt <= max {
		return iInt
	}
	return fallback
}
