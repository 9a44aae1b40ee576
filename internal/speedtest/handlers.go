package speedtest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/SpeedAtlas/SA-Backend/internal/logger"
	"github.com/SpeedAtlas/SA-Backend/internal/notary"
	"github.com/rs/zerolog"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
)

// Handler serves the speed-test result endpoints. Both the store and the
// notary are injected at construction.
type Handler struct {
	store  *Store
	notary notary.Notary
	log    zerolog.Logger
}

func NewHandler(store *Store, n notary.Notary) *Handler {
	return &Handler{
		store:  store,
		notary: n,
		log:    logger.Component("speedtest"),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// Create handles POST /results: resolve the caller, validate, notarize the
// timestamp, and persist exactly one row.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	address, err := h.notary.Address(r.Context(), r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized: could not get address")
		return
	}
	if address == "" {
		writeError(w, http.StatusUnauthorized, "Unauthorized: no address")
		return
	}

	var input SubmissionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validateSubmission(&input); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	city, country := splitLocation(input.Location)

	// Re-stamp the submission with the notary's clock; the stored timestamp
	// is never client-supplied.
	timestamp, err := h.notary.Now(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("trusted time lookup failed")
		writeError(w, http.StatusInternalServerError, "Failed to save speed test results")
		return
	}

	result := Result{
		Location:         strings.TrimSpace(input.Location),
		City:             city,
		Country:          country,
		DownloadSpeed:    *input.DownloadSpeed,
		UploadSpeed:      *input.UploadSpeed,
		Ping:             *input.Ping,
		Timestamp:        timestamp,
		SubmissionMinute: timestamp.Format("2006-01-02T15:04"),
		SubmissionID:     input.SubmissionID,
		Address:          address,
		Latitude:         input.Latitude,
		Longitude:        input.Longitude,
	}

	if err := h.store.Insert(r.Context(), &result); err != nil {
		if errors.Is(err, ErrDuplicateSubmission) {
			writeError(w, http.StatusConflict, "This result has already been submitted.")
			return
		}
		h.log.Error().Err(err).Str("submission_id", input.SubmissionID).Msg("insert failed")
		writeError(w, http.StatusInternalServerError, "Failed to save speed test results")
		return
	}

	h.log.Info().
		Str("address", address).
		Str("submission_id", result.SubmissionID).
		Float64("download", result.DownloadSpeed).
		Msg("stored speed test result")

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// ListResponse is the GET /results body.
type ListResponse struct {
	Results    []Result   `json:"results"`
	Pagination Pagination `json:"pagination"`
}

// List handles GET /results: store-side text filters, then the in-memory
// radius and leaderboard passes, then pagination. The radius and leaderboard
// stages run over the full matching set before slicing, which is fine at this
// table's expected size but would need a spatial index at larger scale.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page := parsePositiveInt(q.Get("page"), defaultPage)
	pageSize := parsePositiveInt(q.Get("pageSize"), defaultPageSize)

	var conds []Cond

	if q.Get("me") == "true" {
		address, err := h.notary.Address(r.Context(), r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized: could not get address")
			return
		}
		if address == "" {
			// No identity is an empty result set, not an error.
			writeJSON(w, http.StatusOK, ListResponse{
				Results:    []Result{},
				Pagination: Pagination{Page: page, PageSize: pageSize},
			})
			return
		}
		conds = append(conds, Cond{Column: "address", Op: OpEq, Value: address})
	}

	if v := q.Get("location"); v != "" {
		conds = append(conds, Cond{Column: "location", Op: OpLike, Value: v})
	}
	if v := q.Get("country"); v != "" {
		conds = append(conds, Cond{Column: "country", Op: OpLike, Value: v})
	}
	if v := q.Get("city"); v != "" {
		conds = append(conds, Cond{Column: "city", Op: OpLike, Value: v})
	}

	results, err := h.store.Search(r.Context(), conds)
	if err != nil {
		h.log.Error().Err(err).Msg("search failed")
		writeError(w, http.StatusInternalServerError, "Failed to fetch speed test results")
		return
	}

	if radius, lat, lng, ok := parseRadiusParams(q.Get("radius"), q.Get("latitude"), q.Get("longitude")); ok {
		results = FilterByRadius(results, lat, lng, radius)
	}

	if q.Get("leaderboard") == "true" {
		results = ReduceToLeaderboard(results)
	}

	pageSlice, pagination := Paginate(results, page, pageSize)

	writeJSON(w, http.StatusOK, ListResponse{Results: pageSlice, Pagination: pagination})
}

func parsePositiveInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// parseRadiusParams reports ok only when all three values are present and
// numeric; a partial radius query is ignored rather than rejected.
func parseRadiusParams(radiusStr, latStr, lngStr string) (radius, lat, lng float64, ok bool) {
	if radiusStr == "" || latStr == "" || lngStr == "" {
		return 0, 0, 0, false
	}
	radius, err := strconv.ParseFloat(radiusStr, 64)
	if err != nil {
		return 0, 0, 0, false
	}
	lat, err = strconv.ParseFloat(latStr, 64)
	if err != nil {
		return 0, 0, 0, false
	}
	lng, err = strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return 0, 0, 0, false
	}
	return radius, lat, lng, true
}
