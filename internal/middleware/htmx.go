package middleware

import "net/http"

// HTMX marks requests coming from htmx so handlers can return fragments. The
// response varies on HX-Request so caches keep pages and fragments apart.
func HTMX(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "HX-Request")
		is := r.Header.Get("HX-Request") == "true" && r.Header.Get("HX-Boosted") != "true"
		next.ServeHTTP(w, r.WithContext(WithHTMX(r.Context(), is)))
	})
}
