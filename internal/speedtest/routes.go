package speedtest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// SetupRoutes mounts the result endpoints. The ingest route takes the extra
// middleware chain (rate limiting) while reads stay unthrottled.
func SetupRoutes(h *Handler, ingestMiddleware ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.List)

	r.Group(func(r chi.Router) {
		for _, mw := range ingestMiddleware {
			r.Use(mw)
		}
		r.Post("/", h.Create)
	})

	return r
}
