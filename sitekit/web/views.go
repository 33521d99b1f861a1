package web

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/orderkit/orderkit/orderkit"
	"github.com/tdewolff/minify"
	"github.com/tdewolff/minify/html"
)

var (
	templateTagRegexp  = regexp.MustCompile("{{[^}]+}}")
	placeholderRegexp  = regexp.MustCompile("viewplaceholder[0-9]+x")
	viewFileExtension  = ".tmpl"
	viewNamespaceSplit = "::"
)

// Views is a set of named html templates. Views are parsed on first use, and can be rendered
// into a writer or, as an orderkit.ViewRenderer, into a string.
type Views struct {
	lock     sync.RWMutex
	sources  map[string]string
	cache    map[string]*template.Template
	funcMap  template.FuncMap
	minifier *minify.M
}

// NewViews returns a set holding the built-in ordering view under orderkit.DefaultView.
func NewViews() *Views {
	v := &Views{
		sources: make(map[string]string),
		cache:   make(map[string]*template.Template),
		funcMap: template.FuncMap{
			"lower": strings.ToLower,
		},
	}
	v.sources[orderkit.DefaultView] = orderkit.ListTemplate
	return v
}

// EnableMinify minifies the html of views added from now on. Template tags are left untouched.
func (v *Views) EnableMinify() {
	m := minify.New()
	m.Add("text/html", &html.Minifier{
		KeepDefaultAttrVals: true,
		KeepDocumentTags:    true,
		KeepEndTags:         true,
	})

	v.lock.Lock()
	defer v.lock.Unlock()
	v.minifier = m
}

func (v *Views) SetFunc(name string, fn interface{}) {
	v.lock.Lock()
	defer v.lock.Unlock()

	v.funcMap[name] = fn
	v.cache = make(map[string]*template.Template)
}

// Add sets the view name to source, replacing any view of that name.
func (v *Views) Add(name string, source string) error {
	v.lock.Lock()
	defer v.lock.Unlock()

	if v.minifier != nil {
		minified, err := v.minify(source)
		if err != nil {
			return fmt.Errorf("could not minify view %v: %w", name, err)
		}
		source = minified
	}

	v.sources[name] = source
	delete(v.cache, name)
	return nil
}

// AddFile adds the content of the file at path as the view name.
func (v *Views) AddFile(name string, path string) error {
	content, err := ioutil.ReadFile(path)
	if err != nil {
		return err
	}
	return v.Add(name, string(content))
}

// AddDirectory adds every .tmpl file below directory. The file ordering/list.tmpl becomes the
// view "ordering::list".
func (v *Views) AddDirectory(directory string) error {
	return filepath.Walk(directory, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || filepath.Ext(path) != viewFileExtension {
			return nil
		}

		rel, err := filepath.Rel(directory, path)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(filepath.ToSlash(rel), viewFileExtension)
		return v.AddFile(strings.Replace(name, "/", viewNamespaceSplit, -1), path)
	})
}

func (v *Views) Has(name string) bool {
	v.lock.RLock()
	defer v.lock.RUnlock()
	_, found := v.sources[name]
	return found
}

// Render writes the view name, executed with data, to w.
func (v *Views) Render(w io.Writer, name string, data interface{}) error {
	t, err := v.get(name)
	if err != nil {
		return err
	}
	return t.Execute(w, data)
}

// RenderView executes the view name with data.
func (v *Views) RenderView(name string, data interface{}) (template.HTML, error) {
	var buf bytes.Buffer
	if err := v.Render(&buf, name, data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func (v *Views) get(name string) (*template.Template, error) {
	v.lock.RLock()
	t, found := v.cache[name]
	v.lock.RUnlock()
	if found {
		return t, nil
	}

	v.lock.Lock()
	defer v.lock.Unlock()

	source, found := v.sources[name]
	if !found {
		return nil, fmt.Errorf("unknown view: %v", name)
	}
	t, err := template.New(name).Funcs(v.funcMap).Parse(source)
	if err != nil {
		return nil, fmt.Errorf("could not parse view %v: %w", name, err)
	}
	v.cache[name] = t
	return t, nil
}

func (v *Views) minify(source string) (string, error) {
	store := make(map[string]string)

	// replace template tags with placeholders
	source = templateTagRegexp.ReplaceAllStringFunc(source, func(tag string) string {
		id := fmt.Sprintf("viewplaceholder%dx", len(store))
		store[id] = tag
		return id
	})

	minified, err := v.minifier.String("text/html", source)
	if err != nil {
		return "", err
	}

	// put the template tags back
	return placeholderRegexp.ReplaceAllStringFunc(minified, func(id string) string {
		if tag, found := store[id]; found {
			return tag
		}
		return id
	}), nil
}
