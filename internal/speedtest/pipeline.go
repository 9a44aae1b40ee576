package speedtest

import "math"

// Pagination describes the page slice returned to the client. TotalResults
// counts the set after filtering and any leaderboard reduction, before
// slicing.
type Pagination struct {
	Page         int `json:"page"`
	PageSize     int `json:"pageSize"`
	TotalResults int `json:"totalResults"`
	TotalPages   int `json:"totalPages"`
}

// FilterByRadius keeps the results with coordinates within radiusKm of the
// given center. Records without coordinates never match. The incoming order
// is preserved.
func FilterByRadius(results []Result, lat, lng, radiusKm float64) []Result {
	filtered := make([]Result, 0, len(results))
	for _, r := range results {
		if !r.HasCoordinates() {
			continue
		}
		if HaversineKm(*r.Latitude, *r.Longitude, lat, lng) <= radiusKm {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// ReduceToLeaderboard collapses the set to at most one result per address:
// the one with the highest download speed. Ties keep the first result
// encountered, which on the store's descending-timestamp order is the most
// recent of the tied group. Output order follows each address's first
// appearance in the input.
func ReduceToLeaderboard(results []Result) []Result {
	bestIndex := make(map[string]int)
	order := make([]string, 0)
	for i, r := range results {
		best, seen := bestIndex[r.Address]
		if !seen {
			bestIndex[r.Address] = i
			order = append(order, r.Address)
			continue
		}
		if r.DownloadSpeed > results[best].DownloadSpeed {
			bestIndex[r.Address] = i
		}
	}

	reduced := make([]Result, 0, len(order))
	for _, addr := range order {
		reduced = append(reduced, results[bestIndex[addr]])
	}
	return reduced
}

// Paginate slices the ordered result set into the requested 1-indexed page
// and reports the totals. Slicing happens strictly after all filtering and
// reduction so repeated identical queries see stable pages.
func Paginate(results []Result, page, pageSize int) ([]Result, Pagination) {
	total := len(results)
	totalPages := int(math.Ceil(float64(total) / float64(pageSize)))

	offset := (page - 1) * pageSize
	if offset > total {
		offset = total
	}
	end := offset + pageSize
	if end > total {
		end = total
	}

	slice := results[offset:end]
	if slice == nil {
		// Keep the JSON encoding as [] rather than null.
		slice = []Result{}
	}

	return slice, Pagination{
		Page:         page,
		PageSize:     pageSize,
		TotalResults: total,
		TotalPages:   totalPages,
	}
}
