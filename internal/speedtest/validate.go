package speedtest

import (
	"strings"
)

// SubmissionInput is the inbound POST /results body. Numeric fields are
// pointers so a missing field is distinguishable from a legitimate zero.
type SubmissionInput struct {
	Location      string   `json:"location"`
	DownloadSpeed *float64 `json:"download_speed"`
	UploadSpeed   *float64 `json:"upload_speed"`
	Ping          *float64 `json:"ping"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	SubmissionID  string   `json:"submission_id"`
}

// validateSubmission checks the untrusted input and returns a
// ValidationError naming the offending field category.
func validateSubmission(in *SubmissionInput) error {
	if strings.TrimSpace(in.Location) == "" {
		return &ValidationError{Field: "location", Message: "Invalid location provided"}
	}
	if in.DownloadSpeed == nil || *in.DownloadSpeed < 0 {
		return &ValidationError{Field: "download_speed", Message: "Invalid download speed"}
	}
	if in.UploadSpeed == nil || *in.UploadSpeed < 0 {
		return &ValidationError{Field: "upload_speed", Message: "Invalid upload speed"}
	}
	if in.Ping == nil || *in.Ping < 0 {
		return &ValidationError{Field: "ping", Message: "Invalid ping value"}
	}
	if (in.Latitude == nil) != (in.Longitude == nil) {
		return &ValidationError{Field: "coordinates", Message: "Invalid coordinates provided"}
	}
	if in.SubmissionID == "" {
		return &ValidationError{Field: "submission_id", Message: "Invalid submission ID provided"}
	}
	return nil
}

// splitLocation derives the city and country from a "City, Region, Country"
// label. Missing segments default to "Unknown".
func splitLocation(location string) (city, country string) {
	parts := strings.Split(location, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	city, country = "Unknown", "Unknown"
	if len(parts) > 0 && parts[0] != "" {
		city = parts[0]
	}
	if len(parts) > 2 && parts[2] != "" {
		country = parts[2]
	}
	return city, country
}
