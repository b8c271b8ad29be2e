package middleware

import "net/http"

// NewMaxBodySizeHandler returns a middleware that caps incoming request
// bodies at limit bytes. The cap is enforced lazily via http.MaxBytesReader:
// a handler reading past the limit gets an error, the client gets 413, and
// the connection is closed so the oversized body is not drained.
func NewMaxBodySizeHandler(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				http.Error(w, http.StatusText(http.StatusRequestEntityTooLarge), http.StatusRequestEntityTooLarge)
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
