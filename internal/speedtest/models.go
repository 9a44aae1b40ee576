package speedtest

import (
	"time"
)

// Result is one submitted speed-test measurement. Rows are append-only: no
// update or delete path exists, and SubmissionID carries the uniqueness
// constraint that rejects duplicate submissions.
type Result struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Location         string    `gorm:"not null" json:"location"`
	Country          string    `json:"country"`
	City             string    `json:"city"`
	DownloadSpeed    float64   `gorm:"not null" json:"download_speed"`
	UploadSpeed      float64   `gorm:"not null" json:"upload_speed"`
	Ping             float64   `gorm:"not null" json:"ping"`
	Timestamp        time.Time `gorm:"not null;index" json:"timestamp"`
	SubmissionMinute string    `json:"submission_minute"`
	SubmissionID     string    `gorm:"uniqueIndex;not null" json:"submission_id"`
	Address          string    `gorm:"not null" json:"address"`
	Latitude         *float64  `json:"latitude"`
	Longitude        *float64  `json:"longitude"`
}

func (Result) TableName() string {
	return "speed_tests"
}

// HasCoordinates reports whether both latitude and longitude are present.
// Nullability is paired: a record either has both or neither.
func (r *Result) HasCoordinates() bool {
	return r.Latitude != nil && r.Longitude != nil
}
