package langkit

import (
	"fmt"
	"io/ioutil"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Module holds the translations of one directory, a <locale>.po file per locale.
type Module struct {
	sync.RWMutex
	translations map[string]Translations
	loaded       []string
}

// NewModule reads the .po files of path. With lazyLoad a file is parsed on first use.
func NewModule(path string, lazyLoad bool) (*Module, error) {
	m := &Module{translations: make(map[string]Translations)}
	files, err := ioutil.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("could not read translation files at path %v: %w", path, err)
	}

	for _, f := range files {
		ext := filepath.Ext(f.Name())
		if f.IsDir() || ext != ".po" {
			continue
		}

		locale := strings.TrimSuffix(f.Name(), ext)
		fullpath := filepath.Join(path, f.Name())
		translations, err := ReadPoFile(fullpath, lazyLoad)
		if err != nil {
			return nil, fmt.Errorf("could not read translations at path %v: %w", fullpath, err)
		}
		m.translations[locale] = translations
		m.loaded = append(m.loaded, locale)
	}
	sort.Strings(m.loaded)
	return m, nil
}

var noop = &NoTranslations{formatters: newFormatters()}

// Locales returns the locales that have a .po file.
func (m *Module) Locales() []string {
	return append([]string(nil), m.loaded...)
}

// FindTranslations returns the translations of locale. When there is no file for the exact
// locale, any file of the same language is used, e.g. da.po for da_DK. Unknown languages get
// texts back untranslated.
func (m *Module) FindTranslations(locale string) Translations {
	t, _ := m.find(locale)
	return t
}

// FindAccepted returns the translations of the first locale of an Accept-Language header
// that has translations.
func (m *Module) FindAccepted(acceptLanguage string) Translations {
	for _, part := range strings.Split(acceptLanguage, ",") {
		locale := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if locale == "" || locale == "*" {
			continue
		}
		if t, found := m.find(locale); found {
			return t
		}
	}
	return noop
}

func (m *Module) find(locale string) (Translations, bool) {
	m.RLock()
	t, found := m.translations[locale]
	m.RUnlock()
	if found {
		return t, t != noop
	}

	m.Lock()
	defer m.Unlock()

	t = noop
	l := getLang(locale)
	for _, k := range m.loaded {
		if getLang(k) == l {
			t = m.translations[k]
			break
		}
	}

	m.translations[locale] = t
	return t, t != noop
}

func getLang(locale string) string {
	parts := strings.Split(locale, "_")
	if len(parts) != 2 {
		parts = strings.Split(locale, "-")
	}
	if len(parts) == 2 {
		return strings.ToLower(parts[0])
	}

	return strings.ToLower(locale)
}
