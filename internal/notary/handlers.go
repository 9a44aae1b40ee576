package notary

import (
	"encoding/json"
	"net/http"

	"github.com/SpeedAtlas/SA-Backend/internal/logger"
	"github.com/go-chi/chi/v5"
)

// StatusHandler reports the caller's resolved address, or null when the
// caller has no identity. A failed lookup is a 500 with a null address so the
// UI can treat both the same way.
func StatusHandler(n Notary) http.HandlerFunc {
	log := logger.Component("notary")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		address, err := n.Address(r.Context(), r)
		if err != nil {
			log.Error().Err(err).Msg("address lookup failed")
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]any{"address": nil})
			return
		}

		if address == "" {
			_ = json.NewEncoder(w).Encode(map[string]any{"address": nil})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"address": address})
	}
}

// SetupRoutes mounts the identity endpoints.
func SetupRoutes(n Notary) http.Handler {
	r := chi.NewRouter()
	r.Get("/status", StatusHandler(n))
	return r
}
