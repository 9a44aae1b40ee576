package geolocate

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/SpeedAtlas/SA-Backend/internal/logger"
	"github.com/go-chi/chi/v5"
)

// LocationResponse echoes the resolved label and coordinates. Coordinates are
// null when the lookup could not determine them.
type LocationResponse struct {
	Location  string   `json:"location"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// LookupHandler resolves a location label. With latitude/longitude query
// params it reverse-geocodes them; without, it falls back to IP lookup.
// Upstream failures degrade to the "not available" label rather than 5xx,
// matching how the UI treats a missing location as non-fatal.
func LookupHandler(c *Client) http.HandlerFunc {
	log := logger.Component("geolocate")

	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		latStr, lngStr := q.Get("latitude"), q.Get("longitude")

		var resp LocationResponse

		if latStr != "" && lngStr != "" {
			lat, latErr := strconv.ParseFloat(latStr, 64)
			lng, lngErr := strconv.ParseFloat(lngStr, 64)
			if latErr != nil || lngErr != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid coordinates provided"})
				return
			}

			label, err := c.ReverseGeocode(r.Context(), lat, lng)
			if err != nil {
				log.Error().Err(err).Msg("reverse geocode failed")
				label = LocationUnavailable
			}
			resp = LocationResponse{Location: label, Latitude: &lat, Longitude: &lng}
		} else {
			loc, err := c.LookupIP(r.Context())
			if err != nil {
				log.Error().Err(err).Msg("ip lookup failed")
				loc = Location{Label: LocationUnavailable}
			}
			resp = LocationResponse{Location: loc.Label, Latitude: loc.Latitude, Longitude: loc.Longitude}
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// SetupRoutes mounts the location helper endpoint.
func SetupRoutes(c *Client) http.Handler {
	r := chi.NewRouter()
	r.Get("/", LookupHandler(c))
	return r
}
