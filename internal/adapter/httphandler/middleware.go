package httphandler

import (
	"mime"
	"net/http"
)

// RequireJSON rejects request bodies not declared as JSON.
// Bodiless requests pass through untouched, so plain GETs and
// DELETEs never need a Content-Type header.
func RequireJSON(next http.Handler) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength == 0 {
			next.ServeHTTP(w, r)
			return
		}

		mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mt != "application/json" {
			http.Error(
				w, "expected application/json body",
				http.StatusUnsupportedMediaType,
			)
			return
		}

		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hf)
}
