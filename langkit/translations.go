package langkit

import (
	"fmt"
	"io/ioutil"
	"sync"

	"github.com/leonelquinteros/gotext"
)

// Translations translates texts of one locale. It satisfies orderkit.Translator.
type Translations interface {
	Get(original string, formatArgs ...interface{}) string
	GetPlural(original string, originalPlural string, count int, formatArgs ...interface{}) string
}

func ReadPoFile(filepath string, lazyLoad bool) (Translations, error) {
	t := &pofileTranslations{
		filepath:   filepath,
		formatters: newFormatters(),
	}
	if !lazyLoad {
		if err := t.load(); err != nil {
			return nil, err
		}
	}
	return t, nil
}

type pofileTranslations struct {
	filepath   string
	formatters *formatters
	once       sync.Once
	po         *gotext.Po
	err        error
}

func (t *pofileTranslations) load() error {
	t.once.Do(func() {
		bytes, err := ioutil.ReadFile(t.filepath)
		if err != nil {
			t.err = fmt.Errorf("could not read .po file at %v: %w", t.filepath, err)
			return
		}
		po := gotext.NewPo()
		po.Parse(bytes)
		t.po = po
	})
	return t.err
}

func (t *pofileTranslations) Get(original string, formatArgs ...interface{}) string {
	if err := t.load(); err != nil {
		panic(err)
	}

	return t.formatters.get(t.po.Get(original)).format(formatArgs...)
}

func (t *pofileTranslations) GetPlural(original string, originalPlural string, count int, formatArgs ...interface{}) string {
	if err := t.load(); err != nil {
		panic(err)
	}

	return t.formatters.get(t.po.GetN(original, originalPlural, count)).formatPlural(count, formatArgs...)
}

// NoTranslations returns texts untranslated, with their arguments filled in.
type NoTranslations struct {
	formatters *formatters
}

func (t *NoTranslations) Get(original string, formatArgs ...interface{}) string {
	return t.formatters.get(original).format(formatArgs...)
}

func (t *NoTranslations) GetPlural(original string, originalPlural string, count int, formatArgs ...interface{}) string {
	if count != 1 {
		return t.formatters.get(originalPlural).formatPlural(count, formatArgs...)
	}
	return t.formatters.get(original).formatPlural(count, formatArgs...)
}
