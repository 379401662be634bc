package middleware

import (
	"context"
	"net/http"

	"github.com/quadrantlabs/lsq/internal/utils"
)

type ctxKey int

const localeKey ctxKey = 1

// Locale returns middleware that resolves the request locale from the
// lang query param or Accept-Language, restricted to the supported set,
// and stores it in the request context.
func Locale(supported []string, def string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			qLang := r.URL.Query().Get("lang")
			aLang := r.Header.Get("Accept-Language")
			locale := utils.DetermineLocale(qLang, aLang, supported, def)
			ctx := context.WithValue(r.Context(), localeKey, locale)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// LocaleFromContext retrieves the locale stored by Locale.
func LocaleFromContext(ctx context.Context) string {
	if v := ctx.Value(localeKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return "en"
}
