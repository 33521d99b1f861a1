// Package langkit translates user facing text using gettext .po files.
//
// Texts may contain numbered arguments, like "Ordered by {1}", and the plural count as {plural}.
package langkit

import "context"

type translationsKeyType byte

var translationsKey = translationsKeyType(0)

// WithTranslations returns a copy of ctx that carries t.
func WithTranslations(ctx context.Context, t Translations) context.Context {
	return context.WithValue(ctx, translationsKey, t)
}

// FromContext returns the translations carried by ctx, or translations that return texts untranslated.
func FromContext(ctx context.Context) Translations {
	if ctx != nil {
		if t, ok := ctx.Value(translationsKey).(Translations); ok {
			return t
		}
	}
	return noop
}

func Get(ctx context.Context, original string, formatArgs ...interface{}) string {
	return FromContext(ctx).Get(original, formatArgs...)
}

func GetPlural(ctx context.Context, original string, originalPlural string, count int, formatArgs ...interface{}) string {
	return FromContext(ctx).GetPlural(original, originalPlural, count, formatArgs...)
}
